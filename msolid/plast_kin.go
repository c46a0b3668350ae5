// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// KinPlast implements von Mises plasticity with isotropic hardening and Armstrong-Frederick
// kinematic hardening
//  f = q(σ - β) - h(p) - σy
//  Δβ = 2/3 C Δεi - γ β Δp
type KinPlast struct {
	IsoPlast
	C   float64 // kinematic hardening modulus
	Gam float64 // γ: dynamic recovery coefficient
}

// add model to factory
func init() {
	allocators["kin-plast"] = func() Model { return new(KinPlast) }
}

// Init initialises model
func (o *KinPlast) Init(prms dbf.Params) (err error) {
	kin, iso := splitPrms(prms, "C", "gam")
	for _, p := range kin {
		switch p.N {
		case "C":
			o.C = p.V
		case "gam":
			o.Gam = p.V
		}
	}
	if o.C < 0 || o.Gam < 0 {
		return chk.Err("kin-plast: C=%g and gam=%g must be non-negative\n", o.C, o.Gam)
	}
	return o.IsoPlast.Init(iso)
}

// GetPrms gets (an example) of parameters
func (o KinPlast) GetPrms() dbf.Params {
	return append(o.IsoPlast.GetPrms(),
		&dbf.P{N: "C", V: 20000},
		&dbf.P{N: "gam", V: 100},
	)
}

// InitIntVars initialises internal variables: α = {h} and β
func (o KinPlast) InitIntVars(nsig int) *IntVars {
	return NewIntVars(nsig, 1, nsig)
}

// Flow prepares the scalar problem. tr.Dev and tr.Q are already shifted by the old backstress
func (o *KinPlast) Flow(pt *Point, tr *Trial, iv0 *IntVars) (Flow, error) {
	base, err := o.IsoPlast.flow(tr, iv0)
	if err != nil {
		return nil, err
	}
	f := &kinFlow{plastFlow: base, C: o.C, Gam: o.Gam, β0: iv0.Back, ξ: tr.Dev}
	if tr.Q > 0 {
		f.βn = 1.5 * Dot(iv0.Back, tr.Dev) / tr.Q
	}
	return f, nil
}

// kinFlow solves r = r_iso - (C - γ β:n) Δp / 3G
type kinFlow struct {
	*plastFlow
	C   float64
	Gam float64
	β0  []float64 // backstress at the beginning of the step
	ξ   []float64 // trial deviator shifted by β₀
	βn  float64   // β₀:n with n = 3/2 ξ/q
}

func (o *kinFlow) Residual(trial, Δp float64) (r, drdx float64) {
	r, drdx = o.plastFlow.Residual(trial, Δp)
	if !o.yield {
		return
	}
	c := (o.C - o.Gam*o.βn) / o.G3
	return r - c*Δp, drdx - c
}

// Da returns ∂r/∂(β₀:n) and the derivative of β₀:n w.r.t. ξ
func (o *kinFlow) Da(trial, Δp float64, dadξ []float64) float64 {
	for i := range dadξ {
		dadξ[i] = 0
	}
	if !o.yield || trial <= 0 || o.Gam == 0 {
		return 0
	}
	trβ := Tr(o.β0)
	for i := range dadξ {
		n := 1.5 * o.ξ[i] / trial
		dadξ[i] = 1.5 * (o.β0[i] - trβ*Im[i]/3.0 - 2.0*o.βn*n/3.0) / trial
	}
	return o.Gam * Δp / o.G3
}

func (o *kinFlow) Finalize(Δp float64, Δεi []float64, iv *IntVars) error {
	if err := o.plastFlow.Finalize(Δp, Δεi, iv); err != nil {
		return err
	}
	for i := range iv.Back {
		iv.Back[i] = o.β0[i] + 2.0*o.C*Δεi[i]/3.0 - o.Gam*o.β0[i]*Δp
	}
	return nil
}
