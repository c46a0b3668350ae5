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

// CreepPlast implements coupled power-law creep and von Mises plasticity with isotropic hardening.
// The creep (c) and plastic (p) parts of Δp = c + p are found simultaneously from
//  R1 = Ã (q - 3G (c + p))ⁿ - c = 0
//  R2 = (q - 3G c - h(p) - σy) / 3G - p = 0    (only if the trial state yields)
type CreepPlast struct {
	Creep   PowerLawCreep // creep part
	Plast   IsoPlast      // plasticity part
	MaxIts  int           // maximum number of iterations
	AbsTol  float64       // absolute tolerance
	RelTol  float64       // relative tolerance
	Verbose bool          // show iterations
}

// add model to factory
func init() {
	allocators["creep-plast"] = func() Model { return new(CreepPlast) }
}

// Init initialises model
func (o *CreepPlast) Init(prms dbf.Params) (err error) {
	o.MaxIts, o.AbsTol, o.RelTol = 100, 1e-11, 1e-8
	own, rest := splitPrms(prms, "maxIts", "absTol", "relTol")
	for _, p := range own {
		switch p.N {
		case "maxIts":
			o.MaxIts = int(p.V)
		case "absTol":
			o.AbsTol = p.V
		case "relTol":
			o.RelTol = p.V
		}
	}
	if o.MaxIts < 1 {
		return chk.Err("creep-plast: maxIts=%d must be positive\n", o.MaxIts)
	}
	creep, plast := splitPrms(rest, creepNames...)
	if err = o.Creep.Init(creep); err != nil {
		return
	}
	return o.Plast.Init(plast)
}

// GetPrms gets (an example) of parameters
func (o CreepPlast) GetPrms() dbf.Params {
	return append(o.Creep.GetPrms(), o.Plast.GetPrms()...)
}

// InitIntVars initialises internal variables: α = {h, accumulated creep strain, accumulated plastic strain}
func (o CreepPlast) InitIntVars(nsig int) *IntVars {
	return NewIntVars(nsig, 3, 0)
}

// Flow prepares the coupled problem
func (o *CreepPlast) Flow(pt *Point, tr *Trial, iv0 *IntVars) (Flow, error) {
	if o.Plast.Htyp == HardFunction && o.Plast.Hfcn == nil {
		return nil, chk.Err("creep-plast: hardening function has not been set\n")
	}
	f := &creepPlastFlow{mdl: o, G3: tr.G3, ndt: o.Creep.factor(pt)}
	f.h0, f.pOld = iv0.Alp[0], iv0.Alp[2]
	f.yield = tr.Q-f.h0-o.Plast.Sy > 0
	return f, nil
}

// creepPlastFlow solves the coupled problem with Newton's method
type creepPlastFlow struct {
	mdl   *CreepPlast
	G3    float64 // 3G
	ndt   float64 // Ã
	h0    float64 // hardening at the beginning of the step
	pOld  float64 // accumulated plastic strain at the beginning of the step
	yield bool    // trial state is outside the yield surface
	c, p  float64 // solution

	// iteration of the creep-only solve at which plasticity was re-enabled; -1 if not re-enabled
	reactIt int
}

// residuals computes R1, R2 and the Jacobian
func (o *creepPlastFlow) residuals(q, c, p float64, plastic bool) (R1, R2, J11, J12, J21, J22, dcr float64) {
	n := o.mdl.Creep.N
	s := math.Max(q-o.G3*(c+p), 0)
	dcr = o.ndt * n * math.Pow(s, n-1.0)
	R1 = o.ndt*math.Pow(s, n) - c
	J11 = -o.G3*dcr - 1.0
	J12 = -o.G3 * dcr
	J21, J22 = 0, 1
	if plastic {
		h, dh := o.mdl.Plast.Hardening(o.pOld, o.h0, p)
		R2 = (q-o.G3*c-h-o.mdl.Plast.Sy)/o.G3 - p
		J21 = -1.0
		J22 = -dh/o.G3 - 1.0
	}
	return
}

// Solve solves the coupled system for {c, p} and returns Δp = c + p and dΔp/dq
func (o *creepPlastFlow) Solve(q float64) (Δp, dΔpdq float64, err error) {
	c, p := 0.0, 0.0
	plastic := o.yield
	reactivated := false
	o.reactIt = -1
	ref := q / o.G3
	var R1, R2, J11, J12, J21, J22, dcr, det float64
	for it := 0; it <= o.mdl.MaxIts; it++ {

		// residuals
		R1, R2, J11, J12, J21, J22, dcr = o.residuals(q, c, p, plastic)
		if math.IsNaN(R1) || math.IsInf(R1, 0) || math.IsNaN(R2) || math.IsInf(R2, 0) {
			return 0, 0, &rmap.Error{Kind: rmap.ErrNonFinite, Who: "creep-plast", It: it, X: c + p, Residual: R1 + R2, Reference: ref}
		}
		if o.mdl.Verbose {
			io.Pf("creep-plast: %4d c=%23.15e p=%23.15e R1=%23.15e R2=%23.15e\n", it, c, p, R1, R2)
		}

		// converged
		if o.converged(R1, ref) && o.converged(R2, ref) {

			// creep alone relaxed the stress, but the yield surface is still exceeded:
			// coupled solve from the creep solution with a new iteration budget
			if !plastic && o.yield && !reactivated && q-o.G3*c-o.h0-o.mdl.Plast.Sy > o.mdl.AbsTol*o.G3 {
				plastic, reactivated = true, true
				o.reactIt = it
				it = -1
				continue
			}
			o.c, o.p = c, p
			Δp = c + p
			dΔpdq = o.sensitivity(plastic, J11, J12, J21, J22, dcr)
			return
		}
		if it == o.mdl.MaxIts {
			break
		}

		// update
		if plastic {
			det = J11*J22 - J12*J21
			c += (-R1*J22 + J12*R2) / det
			p += (-J11*R2 + J21*R1) / det
		} else {
			c -= R1 / J11
		}

		// admissible values
		c = math.Max(c, 0)
		if p < 0 {
			p, plastic = 0, false
		}
		if c+p > ref {
			c = math.Max(ref-p, 0)
			p = ref - c
		}
	}
	return 0, 0, &rmap.Error{Kind: rmap.ErrMaxIterations, Who: "creep-plast", It: o.mdl.MaxIts, X: c + p, Residual: math.Abs(R1) + math.Abs(R2), Reference: ref}
}

// sensitivity computes dΔp/dq from J {dc/dq, dp/dq} = -{∂R1/∂q, ∂R2/∂q}
func (o *creepPlastFlow) sensitivity(plastic bool, J11, J12, J21, J22, dcr float64) float64 {
	if !plastic {
		return -dcr / J11
	}
	b1, b2 := -dcr, -1.0/o.G3
	det := J11*J22 - J12*J21
	dcdq := (b1*J22 - J12*b2) / det
	dpdq := (J11*b2 - J21*b1) / det
	return dcdq + dpdq
}

func (o *creepPlastFlow) converged(r, ref float64) bool {
	return math.Abs(r) < o.mdl.AbsTol || math.Abs(r) < o.mdl.RelTol*ref
}

// Finalize stores the hardening and the creep and plastic parts
func (o *creepPlastFlow) Finalize(Δp float64, Δεi []float64, iv *IntVars) error {
	if o.p > 0 {
		iv.Alp[0], _ = o.mdl.Plast.Hardening(o.pOld, o.h0, o.p)
	}
	iv.Alp[1] += o.c
	iv.Alp[2] += o.p
	return nil
}
