// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package msolid implements radial-return stress updates for inelastic (creep, plasticity and
// viscoplasticity) models of solids with isotropic elasticity
package msolid

import (
	"sort"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/inelast/rmap"
)

// Model defines inelastic models integrated with the radial-return algorithm.
// Models are read-only after Init; data of one update is held by the Flow they create
type Model interface {
	Init(prms dbf.Params) error    // Init initialises model
	GetPrms() dbf.Params           // GetPrms gets (an example) of parameters
	InitIntVars(nsig int) *IntVars // InitIntVars allocates and initialises internal variables

	// Flow prepares the scalar problem of one update (trial state known; iv0 is read-only)
	Flow(pt *Point, tr *Trial, iv0 *IntVars) (Flow, error)
}

// Trial holds the trial state given to models
type Trial struct {
	Sig []float64 // trial stress σtr = C:(εe0 + Δε)
	Dev []float64 // deviator of the trial stress shifted by the backstress
	Q   float64   // effective trial stress: q of Dev
	G3  float64   // three times the shear modulus
}

// Flow holds the data of one model during one update
type Flow interface {

	// Finalize commits model specific internal variables. EpsI, Peq and Dp of iv are already set
	Finalize(Δp float64, Δεi []float64, iv *IntVars) error
}

// ScalarFlow is solved by the return-mapping solver
type ScalarFlow interface {
	Flow
	rmap.Problem
	Dq(trial, Δp float64) float64 // Dq returns ∂r/∂q: derivative of residual w.r.t the effective trial stress
}

// DirectionalFlow is implemented by scalar flows whose residual also depends on a(ξ), a function of
// the direction of the shifted trial deviator ξ. Da returns ∂r/∂a and sets dadξ = ∂a/∂ξ
type DirectionalFlow interface {
	Da(trial, Δp float64, dadξ []float64) float64
}

// DirectFlow solves its own equations (e.g. coupled systems)
type DirectFlow interface {
	Flow
	Solve(trial float64) (Δp, dΔpdq float64, err error)
}

// Limiter is implemented by models with their own time step limit
type Limiter interface {
	TimeStepLimit(pt *Point, iv0, iv *IntVars, maxInc float64) float64
}

// New allocates model by name
func New(name string) (model Model, err error) {
	allocator, ok := allocators[name]
	if !ok {
		return nil, chk.Err("model %q is not available in 'msolid' database", name)
	}
	return allocator(), nil
}

// Names returns the names of all available models
func Names() (names []string) {
	for name := range allocators {
		names = append(names, name)
	}
	sort.Strings(names)
	return
}

// allocators holds all available models
var allocators = map[string]func() Model{}

// flowBase implements the common parts of scalar flows
//  r is in strain units; Δp ∈ [0, q/3G]
type flowBase struct {
	G3 float64
}

func (o *flowBase) ReferenceResidual(trial, Δp float64) float64 { return trial/o.G3 - Δp }
func (o *flowBase) InitialGuess(trial float64) float64 { return 0 }
func (o *flowBase) MinPermissible(trial float64) float64 { return 0 }
func (o *flowBase) MaxPermissible(trial float64) float64 { return trial / o.G3 }
func (o *flowBase) IterationFinalize(Δp float64) {}

// elasticFlow is used when a model does not flow
type elasticFlow struct {
	flowBase
}

func (o *elasticFlow) Residual(trial, Δp float64) (r, drdx float64) { return 0, 1 }
func (o *elasticFlow) Dq(trial, Δp float64) float64 { return 0 }
func (o *elasticFlow) Finalize(Δp float64, Δεi []float64, iv *IntVars) error {
	return nil
}
