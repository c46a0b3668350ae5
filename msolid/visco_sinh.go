// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// SinhVisco implements hyperbolic-sine viscoplasticity with linear isotropic hardening
//  rate = cα sinh(cβ (q - 3G Δp - h - σy))   if q - h₀ - σy > 0
type SinhVisco struct {
	Calp float64 // cα: rate coefficient
	Cbet float64 // cβ: stress coefficient
	Sy   float64 // σy: yield stress
	H    float64 // hardening modulus
}

// add model to factory
func init() {
	allocators["sinh-visco"] = func() Model { return new(SinhVisco) }
}

// Init initialises model
func (o *SinhVisco) Init(prms dbf.Params) (err error) {
	for _, p := range prms {
		switch p.N {
		case "calp":
			o.Calp = p.V
		case "cbet":
			o.Cbet = p.V
		case "sy":
			o.Sy = p.V
		case "H":
			o.H = p.V
		default:
			return chk.Err("sinh-visco: parameter named %q is incorrect\n", p.N)
		}
	}
	if o.Calp < 0 || o.Cbet <= 0 || o.Sy < 0 {
		return chk.Err("sinh-visco: calp=%g and sy=%g must be non-negative and cbet=%g must be positive\n", o.Calp, o.Sy, o.Cbet)
	}
	return
}

// GetPrms gets (an example) of parameters
func (o SinhVisco) GetPrms() dbf.Params {
	return []*dbf.P{
		&dbf.P{N: "calp", V: 1e-4},
		&dbf.P{N: "cbet", V: 0.05},
		&dbf.P{N: "sy", V: 100},
		&dbf.P{N: "H", V: 500},
	}
}

// InitIntVars initialises internal variables: α = {h}
func (o SinhVisco) InitIntVars(nsig int) *IntVars {
	return NewIntVars(nsig, 1, 0)
}

// Flow prepares the scalar problem
func (o *SinhVisco) Flow(pt *Point, tr *Trial, iv0 *IntVars) (Flow, error) {
	f := &sinhFlow{flowBase: flowBase{G3: tr.G3}, mdl: o, dt: pt.Dt, h0: iv0.Alp[0]}
	f.yield = tr.Q-f.h0-o.Sy > 0
	return f, nil
}

// sinhFlow solves r = cα sinh(cβ (q - 3G Δp - h₀ - H Δp - σy)) Δt - Δp
type sinhFlow struct {
	flowBase
	mdl   *SinhVisco
	dt    float64
	h0    float64
	yield bool
}

func (o *sinhFlow) arg(trial, Δp float64) float64 {
	return o.mdl.Cbet * (trial - o.G3*Δp - o.h0 - o.mdl.H*Δp - o.mdl.Sy)
}

func (o *sinhFlow) Residual(trial, Δp float64) (r, drdx float64) {
	if !o.yield {
		return 0, 1
	}
	x := o.arg(trial, Δp)
	r = o.mdl.Calp*math.Sinh(x)*o.dt - Δp
	drdx = -o.mdl.Calp*math.Cosh(x)*o.mdl.Cbet*(o.G3+o.mdl.H)*o.dt - 1.0
	return
}

func (o *sinhFlow) Dq(trial, Δp float64) float64 {
	if !o.yield {
		return 0
	}
	return o.mdl.Calp * math.Cosh(o.arg(trial, Δp)) * o.mdl.Cbet * o.dt
}

func (o *sinhFlow) Finalize(Δp float64, Δεi []float64, iv *IntVars) error {
	if o.yield {
		iv.Alp[0] = o.h0 + o.mdl.H*Δp
	}
	return nil
}
