// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"math"
	"strconv"
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/inelast/rom"
)

// RomCreep implements creep with rates given by reduced-order models (surrogates)
//  rate = ROM(q - 3G Δp, T, ρ₀...)
//  where ρ are state variables (e.g. dislocation densities) updated explicitly with their own ROMs
type RomCreep struct {
	Rho0   []float64 // initial values of state variables
	MaxRel float64   // maximum relative change of state variables in one step (time step limit)
	Rom    *rom.Set  // surrogates
}

// add model to factory
func init() {
	allocators["rom-creep"] = func() Model { return new(RomCreep) }
}

// Init initialises model. Initial state variables are named "rho0", "rho1", ...
func (o *RomCreep) Init(prms dbf.Params) (err error) {
	o.MaxRel = 0.1
	rho := make(map[int]float64)
	for _, p := range prms {
		switch p.N {
		case "maxRel":
			o.MaxRel = p.V
		default:
			k, e := strconv.Atoi(strings.TrimPrefix(p.N, "rho"))
			if !strings.HasPrefix(p.N, "rho") || e != nil || k < 0 {
				return chk.Err("rom-creep: parameter named %q is incorrect\n", p.N)
			}
			rho[k] = p.V
		}
	}
	o.Rho0 = make([]float64, len(rho))
	for k := range o.Rho0 {
		v, ok := rho[k]
		if !ok {
			return chk.Err("rom-creep: rho%d is missing\n", k)
		}
		if v < 0 {
			return chk.Err("rom-creep: rho%d=%g must be non-negative\n", k, v)
		}
		o.Rho0[k] = v
	}
	if o.MaxRel <= 0 {
		return chk.Err("rom-creep: maxRel=%g must be positive\n", o.MaxRel)
	}
	return
}

// SetSurrogates sets the reduced-order models
func (o *RomCreep) SetSurrogates(set *rom.Set) (err error) {
	if set == nil || set.Creep == nil {
		return chk.Err("rom-creep: creep surrogate is required\n")
	}
	if len(set.States) != len(o.Rho0) {
		return chk.Err("rom-creep: %d state surrogates are required. %d given\n", len(o.Rho0), len(set.States))
	}
	o.Rom = set
	return
}

// GetPrms gets (an example) of parameters
func (o RomCreep) GetPrms() dbf.Params {
	return []*dbf.P{
		&dbf.P{N: "rho0", V: 6.0e12},
		&dbf.P{N: "rho1", V: 4.4e11},
		&dbf.P{N: "maxRel", V: 0.1},
	}
}

// InitIntVars initialises internal variables
func (o RomCreep) InitIntVars(nsig int) *IntVars {
	iv := NewIntVars(nsig, len(o.Rho0), 0)
	copy(iv.Alp, o.Rho0)
	return iv
}

// Flow prepares the scalar problem
func (o *RomCreep) Flow(pt *Point, tr *Trial, iv0 *IntVars) (Flow, error) {
	if o.Rom == nil {
		return nil, chk.Err("rom-creep: surrogates have not been set\n")
	}
	f := &romFlow{flowBase: flowBase{G3: tr.G3}, mdl: o, dt: pt.Dt, q: tr.Q}
	f.x = make([]float64, 2+len(o.Rho0))
	f.dx = make([]float64, len(f.x))
	f.x[1] = pt.Temp
	copy(f.x[2:], iv0.Alp)
	f.rho0 = iv0.Alp
	return f, nil
}

// TimeStepLimit combines the limit on Δp with the limit on the relative change of state variables
func (o *RomCreep) TimeStepLimit(pt *Point, iv0, iv *IntVars, maxInc float64) float64 {
	lim := StepLimit(pt.Dt, iv.Peq-iv0.Peq, maxInc)
	for k, ρ0 := range iv0.Alp {
		if ρ0 <= 0 {
			continue
		}
		rel := math.Abs(iv.Alp[k]-ρ0) / ρ0
		lim = math.Min(lim, StepLimit(pt.Dt, rel, o.MaxRel))
	}
	return lim
}

// romFlow solves r = ROM(q - 3G Δp, T, ρ) Δt - Δp
type romFlow struct {
	flowBase
	mdl  *RomCreep
	dt   float64
	q    float64   // effective trial stress
	x    []float64 // inputs {stress, temperature, ρ...}
	dx   []float64 // derivatives of output w.r.t inputs
	rho0 []float64 // state variables at the beginning of the step
}

func (o *romFlow) rate(s float64, dx []float64) float64 {
	o.x[0] = s
	return o.mdl.Rom.Creep.Eval(dx, o.x)
}

func (o *romFlow) Residual(trial, Δp float64) (r, drdx float64) {
	rate := o.rate(trial-o.G3*Δp, o.dx)
	return rate*o.dt - Δp, -o.G3*o.dx[0]*o.dt - 1.0
}

func (o *romFlow) Dq(trial, Δp float64) float64 {
	o.rate(trial-o.G3*Δp, o.dx)
	return o.dx[0] * o.dt
}

// Finalize updates state variables explicitly with the stress at the end of the step
func (o *romFlow) Finalize(Δp float64, Δεi []float64, iv *IntVars) error {
	o.x[0] = o.q - o.G3*Δp
	copy(o.x[2:], o.rho0)
	for k, ev := range o.mdl.Rom.States {
		iv.Alp[k] = math.Max(0, o.rho0[k]+ev.Eval(nil, o.x)*o.dt)
	}
	return nil
}
