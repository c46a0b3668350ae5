// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// hardening types
const (
	HardLinear   = 0 // h = H p
	HardFunction = 1 // h = f(p) - σy
	HardPower    = 2 // h = K (p₀ + p)^nh - σy with p₀ = (σy/K)^(1/nh)
	HardVoce     = 3 // h = Qv (1 - exp(-bv p))
)

// IsoPlast implements von Mises plasticity with isotropic hardening
//  f = q - h(p) - σy
type IsoPlast struct {
	Sy   float64 // σy: yield stress
	Htyp int     // hardening type
	H    float64 // linear hardening modulus
	K    float64 // power-law coefficient
	Nh   float64 // power-law exponent
	Qv   float64 // Voce saturation stress
	Bv   float64 // Voce rate
	Hfcn dbf.T   // flow stress function f(p) (HardFunction)
	p0   float64 // power-law offset
	hasH bool    // H was given
}

// add model to factory
func init() {
	allocators["iso-plast"] = func() Model { return new(IsoPlast) }
}

// isoNames are the parameters of IsoPlast
var isoNames = []string{"sy", "htyp", "H", "K", "nh", "Qv", "bv"}

// Init initialises model
func (o *IsoPlast) Init(prms dbf.Params) (err error) {
	for _, p := range prms {
		switch p.N {
		case "sy":
			o.Sy = p.V
		case "htyp":
			o.Htyp = int(p.V)
		case "H":
			o.H, o.hasH = p.V, true
		case "K":
			o.K = p.V
		case "nh":
			o.Nh = p.V
		case "Qv":
			o.Qv = p.V
		case "bv":
			o.Bv = p.V
		default:
			return chk.Err("iso-plast: parameter named %q is incorrect\n", p.N)
		}
	}
	if o.Sy < 0 {
		return chk.Err("iso-plast: yield stress sy=%g must be non-negative\n", o.Sy)
	}
	switch o.Htyp {
	case HardLinear, HardFunction:
	case HardPower:
		if o.K <= 0 || o.Nh <= 0 {
			return chk.Err("iso-plast: power-law hardening requires positive K=%g and nh=%g\n", o.K, o.Nh)
		}
		o.p0 = math.Pow(o.Sy/o.K, 1.0/o.Nh)
	case HardVoce:
		if o.Bv < 0 {
			return chk.Err("iso-plast: Voce rate bv=%g must be non-negative\n", o.Bv)
		}
	default:
		return chk.Err("iso-plast: hardening type htyp=%d is invalid. Options: 0=linear, 1=function, 2=power-law, 3=Voce\n", o.Htyp)
	}
	if o.Htyp == HardFunction && o.hasH {
		return chk.Err("iso-plast: linear hardening modulus H and hardening function are mutually exclusive\n")
	}
	return
}

// SetHardening sets the flow stress function f(p) for HardFunction
func (o *IsoPlast) SetHardening(f dbf.T) (err error) {
	if o.Htyp != HardFunction {
		return chk.Err("iso-plast: hardening function requires htyp=%d. htyp=%d is set\n", HardFunction, o.Htyp)
	}
	o.Hfcn = f
	return
}

// GetPrms gets (an example) of parameters
func (o IsoPlast) GetPrms() dbf.Params {
	return []*dbf.P{
		&dbf.P{N: "sy", V: 250},
		&dbf.P{N: "htyp", V: HardLinear},
		&dbf.P{N: "H", V: 1000},
	}
}

// InitIntVars initialises internal variables: α = {h}
func (o IsoPlast) InitIntVars(nsig int) *IntVars {
	return NewIntVars(nsig, 1, 0)
}

// Flow prepares the scalar problem
func (o *IsoPlast) Flow(pt *Point, tr *Trial, iv0 *IntVars) (Flow, error) {
	f, err := o.flow(tr, iv0)
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (o *IsoPlast) flow(tr *Trial, iv0 *IntVars) (*plastFlow, error) {
	if o.Htyp == HardFunction && o.Hfcn == nil {
		return nil, chk.Err("iso-plast: hardening function has not been set\n")
	}
	f := &plastFlow{flowBase: flowBase{G3: tr.G3}, mdl: o, p0: iv0.Peq, h0: iv0.Alp[0]}
	f.yield = tr.Q-f.h0-o.Sy > 0
	return f, nil
}

// Hardening returns h(p) and dh/dp, where h0 is the hardening at the beginning of the step
func (o *IsoPlast) Hardening(pOld, h0, Δp float64) (h, dh float64) {
	p := pOld + Δp
	switch o.Htyp {
	case HardLinear:
		return h0 + o.H*Δp, o.H
	case HardFunction:
		return o.Hfcn.F(p, nil) - o.Sy, o.Hfcn.G(p, nil)
	case HardPower:
		return o.K*math.Pow(o.p0+p, o.Nh) - o.Sy, o.K * o.Nh * math.Pow(o.p0+p, o.Nh-1.0)
	}
	e := math.Exp(-o.Bv * p)
	return o.Qv * (1.0 - e), o.Qv * o.Bv * e
}

// plastFlow solves r = (q - h(Δp) - σy - 3G Δp) / 3G if the trial state yields; otherwise r = 0
type plastFlow struct {
	flowBase
	mdl   *IsoPlast
	p0    float64 // accumulated plastic strain at the beginning of the step
	h0    float64 // hardening at the beginning of the step
	yield bool    // trial state is outside the yield surface
}

func (o *plastFlow) Residual(trial, Δp float64) (r, drdx float64) {
	if !o.yield {
		return 0, 1
	}
	h, dh := o.mdl.Hardening(o.p0, o.h0, Δp)
	r = (trial-h-o.mdl.Sy)/o.G3 - Δp
	drdx = -dh/o.G3 - 1.0
	return
}

func (o *plastFlow) Dq(trial, Δp float64) float64 {
	if !o.yield {
		return 0
	}
	return 1.0 / o.G3
}

func (o *plastFlow) Finalize(Δp float64, Δεi []float64, iv *IntVars) error {
	if o.yield {
		iv.Alp[0], _ = o.mdl.Hardening(o.p0, o.h0, Δp)
	}
	return nil
}
