// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/inelast/rmap"
)

// negative porosity policies
const (
	PorosityZero      = 0 // set negative porosity to zero
	PorosityInitial   = 1 // reset negative porosity to the initial value
	PorosityException = 2 // return a (recoverable) domain error
)

// pore shape factors
const (
	PoreLPS = 0 // Leblond-Perrin-Suquet: h(n) = (n-1)/(n+1) + 1/n
	PoreGTN = 1 // Gurson-Tvergaard-Needleman: h(n) = 1
)

// PorousVisco implements viscoplasticity of porous materials
//  rate = A Σⁿ⁻¹ (1 + 2f/3) q
//  Σ² = (1 + 2f/3) q² + f (3/2 M h(n) σh)²
//  where f is the porosity and σh = tr(σ)/3
type PorousVisco struct {
	A     float64 // coefficient
	N     float64 // exponent
	Q     float64 // activation energy
	R     float64 // gas constant
	M     float64 // multiplier of the hydrostatic stress
	F0    float64 // initial porosity
	Vtyp  int     // pore shape factor type
	Npol  int     // negative porosity policy
	hfact float64 // h(n)
}

// add model to factory
func init() {
	allocators["porous-visco"] = func() Model { return new(PorousVisco) }
}

// Init initialises model
func (o *PorousVisco) Init(prms dbf.Params) (err error) {
	o.R, o.M = 8.3143, 1
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
		case "M":
			o.M = p.V
		case "f0":
			o.F0 = p.V
		case "vtyp":
			o.Vtyp = int(p.V)
		case "npol":
			o.Npol = int(p.V)
		default:
			return chk.Err("porous-visco: parameter named %q is incorrect\n", p.N)
		}
	}
	if o.A < 0 || o.N <= 0 {
		return chk.Err("porous-visco: A=%g must be non-negative and n=%g must be positive\n", o.A, o.N)
	}
	if o.F0 < 0 || o.F0 >= 1 {
		return chk.Err("porous-visco: initial porosity f0=%g must be in [0, 1)\n", o.F0)
	}
	switch o.Vtyp {
	case PoreLPS:
		o.hfact = (o.N-1.0)/(o.N+1.0) + 1.0/o.N
	case PoreGTN:
		o.hfact = 1
	default:
		return chk.Err("porous-visco: vtyp=%d is invalid. Options: 0=LPS, 1=GTN\n", o.Vtyp)
	}
	if o.Npol < PorosityZero || o.Npol > PorosityException {
		return chk.Err("porous-visco: npol=%d is invalid. Options: 0=zero, 1=initial, 2=exception\n", o.Npol)
	}
	return
}

// GetPrms gets (an example) of parameters
func (o PorousVisco) GetPrms() dbf.Params {
	return []*dbf.P{
		&dbf.P{N: "A", V: 1e-12},
		&dbf.P{N: "n", V: 3},
		&dbf.P{N: "f0", V: 0.1},
		&dbf.P{N: "vtyp", V: PoreLPS},
		&dbf.P{N: "npol", V: PorosityZero},
	}
}

// InitIntVars initialises internal variables: α = {f}
func (o PorousVisco) InitIntVars(nsig int) *IntVars {
	iv := NewIntVars(nsig, 1, 0)
	iv.Alp[0] = o.F0
	return iv
}

// Porosity returns the porosity updated with the volumetric inelastic strain increment trΔεi and
// corrected with the negative porosity policy
func (o *PorousVisco) Porosity(fOld, trΔεi float64) (f float64, err error) {
	f = fOld + (1.0-fOld)*trΔεi
	if f < 0 {
		switch o.Npol {
		case PorosityZero:
			f = 0
		case PorosityInitial:
			f = o.F0
		default:
			return f, &rmap.Error{Kind: rmap.ErrDomain, Who: io.Sf("porous-visco: porosity=%g", f), X: f}
		}
	}
	if f >= 1 {
		return f, &rmap.Error{Kind: rmap.ErrDomain, Who: io.Sf("porous-visco: porosity=%g", f), X: f}
	}
	return
}

// Flow prepares the scalar problem using the porosity after the inelastic strains of other models
func (o *PorousVisco) Flow(pt *Point, tr *Trial, iv0 *IntVars) (Flow, error) {
	var trOther float64
	if pt.EpsIOther != nil {
		trOther = Tr(pt.EpsIOther)
	}
	fint, err := o.Porosity(iv0.Alp[0], trOther)
	if err != nil {
		return nil, err
	}
	σh := Tr(tr.Sig) / 3.0
	g := 1.5 * o.M * o.hfact * σh
	f := &porousFlow{flowBase: flowBase{G3: tr.G3}, N: o.N, fint: fint}
	f.ndt = o.A * arrhenius(o.Q, o.R, pt.Temp) * pt.Dt
	f.a = 1.0 + 2.0*fint/3.0
	f.b = fint * g * g
	return f, nil
}

// porousFlow solves r = Ã Σⁿ⁻¹ a q - Δp with q = qtr - 3G Δp, a = 1 + 2f/3 and Σ² = a q² + b
type porousFlow struct {
	flowBase
	N    float64
	ndt  float64 // Ã
	a, b float64
	fint float64 // intermediate porosity
}

// rate returns the rate times Δt and its derivative w.r.t q
func (o *porousFlow) rate(q float64) (g, dgdq float64) {
	Σ2 := o.a*q*q + o.b
	if Σ2 <= 0 {
		return 0, 0
	}
	Σ := math.Sqrt(Σ2)
	pw := math.Pow(Σ, o.N-1.0)
	g = o.ndt * pw * o.a * q
	dgdq = o.ndt * o.a * pw * (1.0 + (o.N-1.0)*o.a*q*q/Σ2)
	return
}

func (o *porousFlow) Residual(trial, Δp float64) (r, drdx float64) {
	g, dgdq := o.rate(trial - o.G3*Δp)
	return g - Δp, -o.G3*dgdq - 1.0
}

func (o *porousFlow) Dq(trial, Δp float64) float64 {
	_, dgdq := o.rate(trial - o.G3*Δp)
	return dgdq
}

// Finalize stores the porosity. The deviatoric flow of this model does not change the volume
func (o *porousFlow) Finalize(Δp float64, Δεi []float64, iv *IntVars) error {
	iv.Alp[0] = o.fint
	return nil
}
