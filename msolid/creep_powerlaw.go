// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// PowerLawCreep implements the power-law creep model
//  rate = A (q - 3G Δp)ⁿ exp(-Q/(R T)) (t - t0)ᵐ
type PowerLawCreep struct {
	A      float64 // coefficient
	N      float64 // stress exponent
	Q      float64 // activation energy
	R      float64 // gas constant
	M      float64 // time exponent
	T0     float64 // start time for the time dependence
	Tstart float64 // start time of the simulation
	Guess  float64 // multiplier of the last Δp used as initial guess; 0 means zero guess
}

// add model to factory
func init() {
	allocators["powerlaw-creep"] = func() Model { return new(PowerLawCreep) }
}

// creepNames are the parameters of PowerLawCreep
var creepNames = []string{"A", "n", "Q", "R", "m", "t0", "tstart", "guess"}

// Init initialises model
func (o *PowerLawCreep) Init(prms dbf.Params) (err error) {
	o.R = 8.3143
	for _, p := range prms {
		switch p.N {
		case "A":
			o.A = p.V
		case "n":
			o.N = p.V
		case "Q":
			o.Q = p.V
		case "R":
			o.R = p.V
		case "m":
			o.M = p.V
		case "t0":
			o.T0 = p.V
		case "tstart":
			o.Tstart = p.V
		case "guess":
			o.Guess = p.V
		default:
			return chk.Err("powerlaw-creep: parameter named %q is incorrect\n", p.N)
		}
	}
	if o.A < 0 || o.N <= 0 {
		return chk.Err("powerlaw-creep: A=%g must be non-negative and n=%g must be positive\n", o.A, o.N)
	}
	if o.Q != 0 && o.R <= 0 {
		return chk.Err("powerlaw-creep: gas constant R=%g must be positive\n", o.R)
	}
	if o.T0 < o.Tstart && !isInteger(o.M) {
		return chk.Err("powerlaw-creep: t0=%g must not be earlier than the start of the simulation (%g) with a non-integer m=%g\n", o.T0, o.Tstart, o.M)
	}
	return
}

// GetPrms gets (an example) of parameters
func (o PowerLawCreep) GetPrms() dbf.Params {
	return []*dbf.P{
		&dbf.P{N: "A", V: 1e-15},
		&dbf.P{N: "n", V: 4},
		&dbf.P{N: "Q", V: 3e5},
		&dbf.P{N: "m", V: 0},
	}
}

// InitIntVars initialises internal variables
func (o PowerLawCreep) InitIntVars(nsig int) *IntVars {
	return NewIntVars(nsig, 0, 0)
}

// Flow prepares the scalar problem
func (o *PowerLawCreep) Flow(pt *Point, tr *Trial, iv0 *IntVars) (Flow, error) {
	f := &creepFlow{flowBase: flowBase{G3: tr.G3}}
	f.ndt = o.factor(pt)
	f.N = o.N
	f.guess = o.Guess * iv0.Dp
	return f, nil
}

// factor returns A exp(-Q/(R T)) (t - t0)ᵐ Δt
func (o *PowerLawCreep) factor(pt *Point) float64 {
	return o.A * arrhenius(o.Q, o.R, pt.Temp) * math.Pow(pt.Time-o.T0, o.M) * pt.Dt
}

// arrhenius returns exp(-Q/(R T)); 1 if Q == 0
func arrhenius(Q, R, T float64) float64 {
	if Q == 0 {
		return 1
	}
	return math.Exp(-Q / (R * T))
}

// creepFlow solves r = Ã (q - 3G Δp)ⁿ - Δp with Ã = A exp(-Q/(R T)) (t - t0)ᵐ Δt
type creepFlow struct {
	flowBase
	ndt   float64 // Ã
	N     float64 // stress exponent
	guess float64 // initial guess
}

func (o *creepFlow) InitialGuess(trial float64) float64 { return o.guess }

func (o *creepFlow) Residual(trial, Δp float64) (r, drdx float64) {
	s := trial - o.G3*Δp
	r = o.ndt*math.Pow(s, o.N) - Δp
	drdx = -o.G3*o.ndt*o.N*math.Pow(s, o.N-1.0) - 1.0
	return
}

func (o *creepFlow) Dq(trial, Δp float64) float64 {
	return o.ndt * o.N * math.Pow(trial-o.G3*Δp, o.N-1.0)
}

func (o *creepFlow) Finalize(Δp float64, Δεi []float64, iv *IntVars) error {
	return nil
}
