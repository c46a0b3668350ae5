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
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/utl"
	"github.com/cpmech/inelast/rmap"
)

// Multi combines several inelastic models sharing the same elasticity.
// Each model is updated with the strain increment minus the inelastic strain increments of all
// other models until the stresses of all models agree (fixed-point iterations). Weights scale the
// inelastic strain increments of the combined state only
type Multi struct {
	El     SmallElasticity // isotropic elasticity
	Rr     *RadialReturn   // radial-return engine
	Mdls   []Model         // models; e.g. creep before plasticity
	Names  []string        // names of models (messages only)
	Wei    []float64       // weights of models
	MaxIts int             // maximum number of fixed-point iterations
	AbsTol float64         // absolute tolerance on the stress spread
	RelTol float64         // tolerance on the stress spread relative to the first one
	Cycle  bool            // update only one model per time step: pt.Step % len(Mdls)
}

// NewMulti allocates and initialises a new combination of models.
//  prms -- elasticity {E, nu} or {K, G}, settings of the engine and the following:
//          maxIts, absTol, relTol, cycle, and weights w0, w1, ...
func NewMulti(ndim int, prms dbf.Params, mdls []Model, names []string) (o *Multi, err error) {
	if len(mdls) == 0 {
		return nil, chk.Err("multi: at least one model is required")
	}
	o = new(Multi)
	if err = o.El.Init(ndim, prms); err != nil {
		return nil, err
	}
	if err = o.init(prms, mdls, names); err != nil {
		return nil, err
	}
	return
}

// NewMultiD allocates a new combination of models using an elasticity tensor D in Mandel's basis
// (4x4 or 6x6) supplied by the caller. D must be isotropic within tol (relative to |D00|).
//  prms -- as in NewMulti, except that E, nu, K and G are not accepted
func NewMultiD(D [][]float64, tol float64, prms dbf.Params, mdls []Model, names []string) (o *Multi, err error) {
	if len(mdls) == 0 {
		return nil, chk.Err("multi: at least one model is required")
	}
	for _, p := range prms {
		if isName([]string{"E", "nu", "K", "G"}, p.N) {
			return nil, chk.Err("multi: parameter %q cannot be given together with the elasticity tensor", p.N)
		}
	}
	el, err := NewElasticityFromD(D, tol)
	if err != nil {
		return nil, chk.Err("multi: %v", err)
	}
	o = &Multi{El: *el}
	if err = o.init(prms, mdls, names); err != nil {
		return nil, err
	}
	return
}

// init initialises the engine and the settings of the combination
func (o *Multi) init(prms dbf.Params, mdls []Model, names []string) (err error) {
	o.Rr = NewRadialReturn(&o.El)
	if err = o.Rr.Init(prms); err != nil {
		return
	}
	o.Mdls = mdls
	o.Names = names
	if len(o.Names) != len(mdls) {
		o.Names = make([]string, len(mdls))
		for i := range mdls {
			o.Names[i] = io.Sf("model%d", i)
		}
	}
	o.Wei = make([]float64, len(mdls))
	for i := range o.Wei {
		o.Wei[i] = 1
	}
	o.MaxIts, o.AbsTol, o.RelTol = 30, 1e-8, 1e-6
	for _, p := range prms {
		switch p.N {
		case "maxIts":
			o.MaxIts = int(p.V)
		case "absTol":
			o.AbsTol = p.V
		case "relTol":
			o.RelTol = p.V
		case "cycle":
			o.Cycle = p.V > 0
		case "E", "nu", "K", "G":
		default:
			if isName(rrNames, p.N) {
				continue
			}
			k, e := strconv.Atoi(strings.TrimPrefix(p.N, "w"))
			if !strings.HasPrefix(p.N, "w") || e != nil || k < 0 {
				return chk.Err("multi: parameter named %q is incorrect", p.N)
			}
			if k >= len(mdls) {
				return chk.Err("multi: weight %q does not correspond to any of the %d models", p.N, len(mdls))
			}
			o.Wei[k] = p.V
		}
	}
	if o.MaxIts < 1 {
		return chk.Err("multi: maxIts=%d must be positive", o.MaxIts)
	}
	for k, w := range o.Wei {
		if w < 0 || math.IsNaN(w) {
			return chk.Err("multi: weight w%d=%g must be non-negative", k, w)
		}
	}
	return
}

// Nsig returns the number of stress components
func (o *Multi) Nsig() int { return o.El.Nsig }

// InitState allocates the state of one point with initial stress σ0 (may be nil)
func (o *Multi) InitState(σ0 []float64) (s *State, err error) {
	nsig := o.El.Nsig
	mech := make([]*IntVars, len(o.Mdls))
	for i, m := range o.Mdls {
		mech[i] = m.InitIntVars(nsig)
	}
	s = NewState(nsig, mech)
	if σ0 != nil {
		if len(σ0) != nsig {
			return nil, chk.Err("multi: initial stress must have %d components. %d given", nsig, len(σ0))
		}
		copy(s.Sig, σ0)
		o.El.Strain(s.EpsE, σ0)
	}
	return
}

// Update updates pt.New for the strain increment Δε. D is the tangent operator (may be nil)
func (o *Multi) Update(pt *Point, Δε []float64, D [][]float64) (err error) {
	nsig := o.El.Nsig
	if pt.EpsIOther == nil {
		pt.EpsIOther = make([]float64, nsig)
	}
	if len(o.Mdls) == 1 || o.Cycle {
		return o.single(pt, Δε, D)
	}
	return o.fixedPoint(pt, Δε, D)
}

// Propagate copies the internal variables of model idx from the old to the new state
func (o *Multi) Propagate(pt *Point, idx int) {
	pt.New.Mech[idx].Set(pt.Old.Mech[idx])
	pt.New.Mech[idx].Dp = 0
}

// TimeStepLimit returns the harmonic combination of the time step limits of all models
func (o *Multi) TimeStepLimit(pt *Point) float64 {
	var sum float64
	for i, m := range o.Mdls {
		lim := o.Rr.TimeStepLimit(pt, m, i)
		if lim < math.MaxFloat64 {
			sum += 1.0 / lim
		}
	}
	if sum == 0 {
		return math.MaxFloat64
	}
	return 1.0 / sum
}

// single updates one model (the only one or the current one in cycle mode)
func (o *Multi) single(pt *Point, Δε []float64, D [][]float64) (err error) {
	nsig := o.El.Nsig
	idx := 0
	if o.Cycle {
		idx = pt.Step % len(o.Mdls)
		for i := range o.Mdls {
			if i != idx {
				o.Propagate(pt, i)
			}
		}
	}
	for i := 0; i < nsig; i++ {
		pt.EpsIOther[i] = 0
	}
	Δεi := make([]float64, nsig)
	err = o.Rr.Update(pt, o.Mdls[idx], idx, Δε, pt.Old.EpsE, pt.New.Sig, Δεi, D)
	if err != nil {
		return
	}
	pt.Its = 1
	w := o.Wei[idx]
	o.combine(pt, Δε, [][]float64{Δεi}, []float64{w})
	if w != 1 && D != nil {
		o.El.CalcD(D)
	}
	return
}

// fixedPoint updates all models until their stresses agree
func (o *Multi) fixedPoint(pt *Point, Δε []float64, D [][]float64) (err error) {

	// auxiliary
	nsig, nm := o.El.Nsig, len(o.Mdls)
	Δεi := utl.Alloc(nm, nsig)
	σ := utl.Alloc(nm, nsig)
	Δεe := make([]float64, nsig)
	spread := make([]float64, nsig)
	var Dm [][][]float64
	if D != nil && o.Rr.Tangent == TangentFull {
		Dm = make([][][]float64, nm)
		for i := range Dm {
			Dm[i] = utl.Alloc(nsig, nsig)
		}
	}

	// iterations
	var nrm, ref float64
	converged := false
	for pt.Its = 1; pt.Its <= o.MaxIts; pt.Its++ {
		for i, m := range o.Mdls {

			// strain increment given to model i
			for k := 0; k < nsig; k++ {
				pt.EpsIOther[k] = 0
				for j := 0; j < nm; j++ {
					if j != i {
						pt.EpsIOther[k] += Δεi[j][k]
					}
				}
				Δεe[k] = Δε[k] - pt.EpsIOther[k]
			}

			// update model i
			var Di [][]float64
			if Dm != nil {
				Di = Dm[i]
			}
			err = o.Rr.Update(pt, m, i, Δεe, pt.Old.EpsE, σ[i], Δεi[i], Di)
			if err != nil {
				return
			}
		}

		// stress spread
		for k := 0; k < nsig; k++ {
			lo, hi := σ[0][k], σ[0][k]
			for i := 1; i < nm; i++ {
				lo, hi = math.Min(lo, σ[i][k]), math.Max(hi, σ[i][k])
			}
			spread[k] = hi - lo
		}
		nrm = la.Vector(spread).Norm()
		if pt.Its == 1 {
			ref = nrm
		}
		if o.Rr.Verbose {
			io.Pf("multi: eid=%d ipid=%d it=%3d spread=%23.15e\n", pt.Eid, pt.Ipid, pt.Its, nrm)
		}
		if nrm < o.AbsTol || nrm < o.RelTol*ref {
			converged = true
			break
		}
	}
	if !converged {
		pt.Its = o.MaxIts
		return &rmap.Error{Kind: rmap.ErrMultiModelNotConverged, Who: io.Sf("multi: eid=%d ipid=%d", pt.Eid, pt.Ipid), It: o.MaxIts, Residual: nrm, Reference: ref}
	}

	// combined state
	o.combine(pt, Δε, Δεi, o.Wei)

	// tangent: D = D[nm-1] C⁻¹ ... C⁻¹ D[0]
	if D != nil {
		if Dm == nil || !o.unitWeights() {
			o.El.CalcD(D)
			return
		}
		Ci := utl.Alloc(nsig, nsig)
		tmp := utl.Alloc(nsig, nsig)
		o.El.CalcDinv(Ci)
		for k := 0; k < nsig; k++ {
			copy(D[k], Dm[0][k])
		}
		for i := 1; i < nm; i++ {
			MatMul(tmp, Ci, D)
			MatMul(D, Dm[i], tmp)
		}
	}
	return
}

// unitWeights returns whether all weights are equal to one
func (o *Multi) unitWeights() bool {
	for _, w := range o.Wei {
		if w != 1 {
			return false
		}
	}
	return true
}

// combine computes the new elastic and inelastic strains and the new stress
func (o *Multi) combine(pt *Point, Δε []float64, Δεi [][]float64, wei []float64) {
	nsig := o.El.Nsig
	var sum float64
	for k := 0; k < nsig; k++ {
		sum = 0
		for i := range Δεi {
			sum += wei[i] * Δεi[i][k]
		}
		pt.New.EpsI[k] = pt.Old.EpsI[k] + sum
		pt.New.EpsE[k] = pt.Old.EpsE[k] + Δε[k] - sum
	}
	o.El.Stress(pt.New.Sig, pt.New.EpsE)
}
