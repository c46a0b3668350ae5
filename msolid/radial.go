// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"fmt"
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
	"github.com/cpmech/inelast/rmap"
)

// tangent operators
const (
	TangentElastic = 0 // partial: D = C
	TangentFull    = 1 // consistent tangent of the radial return
)

// RadialReturn implements the radial-return stress update of one inelastic model.
// The inelastic strain increment is Δεi = Δp n with n = 3/2 s/q, where Δp is found from a scalar
// equation in terms of the effective trial stress q
type RadialReturn struct {
	El  *SmallElasticity // isotropic elasticity
	Slv *rmap.Solver     // settings of the scalar solver

	// settings
	Tangent         int     // tangent operator: TangentElastic or TangentFull
	Substep         bool    // split the strain increment into substeps
	Adaptive        bool    // double the number of substeps on recoverable failures
	MaxSubInc       float64 // maximum equivalent strain increment of one substep
	MaxSubsteps     int     // maximum number of substeps
	MaxInelasticInc float64 // maximum Δp in one time step (time step limit)
	Qmin            float64 // effective trial stresses below Qmin do not flow
	Verbose         bool    // show messages
}

// NewRadialReturn returns a new engine with default settings
func NewRadialReturn(el *SmallElasticity) (o *RadialReturn) {
	o = new(RadialReturn)
	o.El = el
	o.Slv = rmap.NewSolver("radial-return")
	o.Tangent = TangentFull
	o.MaxSubInc = 1e-4
	o.MaxSubsteps = 64
	o.MaxInelasticInc = 1e-4
	o.Qmin = 1e-14
	return
}

// rrNames are the parameters of RadialReturn
var rrNames = []string{"rmAbsTol", "rmRelTol", "rmMaxIts", "rmAccept", "lineSearch", "bracket", "checkRange",
	"tangent", "substep", "adaptive", "maxSubInc", "maxSubsteps", "maxInelasticInc"}

// Init sets settings from parameters. Parameters of other components are ignored
func (o *RadialReturn) Init(prms dbf.Params) (err error) {
	for _, p := range prms {
		switch p.N {
		case "rmAbsTol":
			o.Slv.AbsTol = p.V
		case "rmRelTol":
			o.Slv.RelTol = p.V
		case "rmMaxIts":
			o.Slv.MaxIts = int(p.V)
		case "rmAccept":
			o.Slv.AcceptMult = p.V
		case "lineSearch":
			o.Slv.LineSearch = p.V > 0
		case "bracket":
			o.Slv.Bracket = p.V > 0
		case "checkRange":
			o.Slv.CheckRange = p.V > 0
		case "tangent":
			o.Tangent = int(p.V)
		case "substep":
			o.Substep = p.V > 0
		case "adaptive":
			o.Adaptive = p.V > 0
		case "maxSubInc":
			o.MaxSubInc = p.V
		case "maxSubsteps":
			o.MaxSubsteps = int(p.V)
		case "maxInelasticInc":
			o.MaxInelasticInc = p.V
		}
	}
	if o.Tangent != TangentElastic && o.Tangent != TangentFull {
		return chk.Err("radial return: tangent=%d is invalid. Options: 0=elastic, 1=full", o.Tangent)
	}
	if o.Slv.MaxIts < 1 {
		return chk.Err("radial return: rmMaxIts=%d must be positive", o.Slv.MaxIts)
	}
	if o.Substep && (o.MaxSubInc <= 0 || o.MaxSubsteps < 1) {
		return chk.Err("radial return: maxSubInc=%g and maxSubsteps=%d must be positive", o.MaxSubInc, o.MaxSubsteps)
	}
	if o.MaxInelasticInc <= 0 {
		return chk.Err("radial return: maxInelasticInc=%g must be positive", o.MaxInelasticInc)
	}
	return
}

// Update updates the state of model idx at point pt
//  Input:
//   mdl -- the model
//   idx -- index of model in pt.Old.Mech and pt.New.Mech
//   Δε  -- strain increment given to this model
//   εe0 -- elastic strain at the beginning of the step
//  Output:
//   σ   -- stress C:(εe0 + Δε - Δεi)
//   Δεi -- inelastic strain increment
//   D   -- tangent operator; may be nil
//   pt.New.Mech[idx] -- updated internal variables
func (o *RadialReturn) Update(pt *Point, mdl Model, idx int, Δε, εe0, σ, Δεi []float64, D [][]float64) (err error) {
	iv0, iv := pt.Old.Mech[idx], pt.New.Mech[idx]
	nsub := 1
	if o.Substep {
		nsub = o.nsubsteps(Δε)
	}
	for {
		err = o.substeps(nsub, pt, mdl, iv0, iv, Δε, εe0, σ, Δεi, D)
		if err == nil {
			break
		}
		if !o.Substep || !o.Adaptive || !rmap.IsRecoverable(err) || 2*nsub > o.MaxSubsteps {
			return fmt.Errorf("radial return failed: eid=%d ipid=%d nsub=%d: %w", pt.Eid, pt.Ipid, nsub, err)
		}
		nsub *= 2
		if o.Verbose {
			io.Pfyel("radial return: eid=%d ipid=%d: retrying with %d substeps\n", pt.Eid, pt.Ipid, nsub)
		}
	}
	iv.Dp = iv.Peq - iv0.Peq
	return
}

// TimeStepLimit returns the maximum time step for the last update of model idx
func (o *RadialReturn) TimeStepLimit(pt *Point, mdl Model, idx int) float64 {
	iv0, iv := pt.Old.Mech[idx], pt.New.Mech[idx]
	if lim, ok := mdl.(Limiter); ok {
		return lim.TimeStepLimit(pt, iv0, iv, o.MaxInelasticInc)
	}
	return StepLimit(pt.Dt, iv.Peq-iv0.Peq, o.MaxInelasticInc)
}

// StepLimit returns Δt maxInc / Δp or +∞ (math.MaxFloat64) if Δp ≈ 0
func StepLimit(Δt, Δp, maxInc float64) float64 {
	if math.Abs(Δp) < 1e-14 {
		return math.MaxFloat64
	}
	return Δt * maxInc / Δp
}

// nsubsteps computes the number of substeps from the equivalent strain increment
func (o *RadialReturn) nsubsteps(Δε []float64) int {
	n := int(math.Ceil(Peq(Δε) / o.MaxSubInc))
	return utl.Imax(1, utl.Imin(n, o.MaxSubsteps))
}

// substeps runs nsub substeps with equal strain and time increments
func (o *RadialReturn) substeps(nsub int, pt *Point, mdl Model, iv0, iv *IntVars, Δε, εe0, σ, Δεi []float64, D [][]float64) (err error) {
	if nsub == 1 {
		return o.step(pt, mdl, iv0, iv, Δε, εe0, σ, Δεi, D)
	}
	nsig := len(Δε)
	m := 1.0 / float64(nsub)
	δε := make([]float64, nsig)
	δεi := make([]float64, nsig)
	εe := make([]float64, nsig)
	copy(εe, εe0)
	for i := 0; i < nsig; i++ {
		δε[i] = m * Δε[i]
		Δεi[i] = 0
	}
	sub := *pt
	sub.Dt = m * pt.Dt
	if pt.EpsIOther != nil {
		sub.EpsIOther = make([]float64, nsig)
		for i := 0; i < nsig; i++ {
			sub.EpsIOther[i] = m * pt.EpsIOther[i]
		}
	}
	t0 := pt.Time - pt.Dt
	ivA := iv0.GetCopy()
	for k := 0; k < nsub; k++ {
		sub.Time = t0 + float64(k+1)*sub.Dt
		err = o.step(&sub, mdl, ivA, iv, δε, εe, σ, δεi, D)
		if err != nil {
			return
		}
		for i := 0; i < nsig; i++ {
			Δεi[i] += δεi[i]
			εe[i] += δε[i] - δεi[i]
		}
		ivA.Set(iv)
	}
	return
}

// step runs one radial return
func (o *RadialReturn) step(pt *Point, mdl Model, iv0, iv *IntVars, Δε, εe0, σ, Δεi []float64, D [][]float64) (err error) {

	// trial state
	nsig := len(Δε)
	iv.Set(iv0)
	εe := make([]float64, nsig)
	for i := 0; i < nsig; i++ {
		εe[i] = εe0[i] + Δε[i]
	}
	tr := &Trial{Sig: make([]float64, nsig), Dev: make([]float64, nsig), G3: 3.0 * o.El.G}
	o.El.Stress(tr.Sig, εe)
	if len(iv0.Back) > 0 {
		for i := 0; i < nsig; i++ {
			tr.Dev[i] = tr.Sig[i] - iv0.Back[i]
		}
		tr.Q = DevQ(tr.Dev, tr.Dev)
	} else {
		tr.Q = DevQ(tr.Dev, tr.Sig)
	}

	// model
	flow, err := mdl.Flow(pt, tr, iv0)
	if err != nil {
		return
	}

	// solve for Δp
	var Δp, dΔpdq, dΔpda float64
	var dadξ []float64
	if tr.Q > o.Qmin {
		switch f := flow.(type) {
		case DirectFlow:
			Δp, dΔpdq, err = f.Solve(tr.Q)
		case ScalarFlow:
			slv := o.Slv.GetCopy()
			slv.Verbose = o.Verbose
			Δp, err = slv.Solve(f, tr.Q)
			if err == nil && Δp > 0 {
				_, drdΔp := f.Residual(tr.Q, Δp)
				if drdΔp != 0 {
					dΔpdq = -f.Dq(tr.Q, Δp) / drdΔp
					if df, ok := f.(DirectionalFlow); ok {
						dadξ = make([]float64, nsig)
						dΔpda = -df.Da(tr.Q, Δp, dadξ) / drdΔp
					}
				}
			}
		default:
			chk.Panic("radial return: flow of type %T cannot be solved", flow)
		}
		if err != nil {
			return
		}
	}

	// inelastic strain increment
	for i := 0; i < nsig; i++ {
		Δεi[i] = 0
	}
	if Δp > 0 {
		c := 1.5 * Δp / tr.Q
		for i := 0; i < nsig; i++ {
			Δεi[i] = c * tr.Dev[i]
		}
	}

	// stress
	for i := 0; i < nsig; i++ {
		εe[i] = εe0[i] + Δε[i] - Δεi[i]
	}
	o.El.Stress(σ, εe)

	// internal variables
	for i := 0; i < nsig; i++ {
		iv.EpsI[i] = iv0.EpsI[i] + Δεi[i]
	}
	iv.Peq = iv0.Peq + Δp
	iv.Dp = Δp
	err = flow.Finalize(Δp, Δεi, iv)
	if err != nil {
		return
	}

	// tangent
	if D != nil {
		o.tangent(D, tr, Δp, dΔpdq, dΔpda, dadξ)
	}
	return
}

// tangent computes D = C - 4G² dΔp/dq n⊗n - (4G² Δp/q) (3/2 Psd - n⊗n) - 4G² dΔp/da n⊗∂a/∂ξ
func (o *RadialReturn) tangent(D [][]float64, tr *Trial, Δp, dΔpdq, dΔpda float64, dadξ []float64) {
	o.El.CalcD(D)
	if o.Tangent != TangentFull || Δp <= 0 || tr.Q <= o.Qmin {
		return
	}
	G := o.El.G
	a := 4.0 * G * G * dΔpdq
	b := 4.0 * G * G * Δp / tr.Q
	nsig := len(tr.Dev)
	var ni, nj float64
	for i := 0; i < nsig; i++ {
		ni = 1.5 * tr.Dev[i] / tr.Q
		for j := 0; j < nsig; j++ {
			nj = 1.5 * tr.Dev[j] / tr.Q
			D[i][j] -= a*ni*nj + b*(1.5*Psd[i][j]-ni*nj)
			if dadξ != nil {
				D[i][j] -= 4.0 * G * G * dΔpda * ni * dadξ[j]
			}
		}
	}
}
