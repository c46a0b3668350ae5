// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
	"github.com/cpmech/inelast/rmap"
)

// Driver runs strain paths through a combination of inelastic models
type Driver struct {

	// input
	Mat *Multi // material

	// settings
	MaxCuts   int       // maximum number of successive time step cuts
	Fractions []float64 // phase fractions given to all points
	Verbose   bool      // show messages
	TolD      float64   // tolerance to check D (relative to Young's modulus)
	HD        float64   // strain perturbation to check D
	VerD      bool      // verbose check of D

	// check D matrix
	TstD *testing.T // if != nil, do check consistent matrix

	// results
	Res   []*State    // states; Res[0] is the initial state
	Eps   [][]float64 // total strains
	Time  []float64   // times
	Dtmax []float64   // time step limits
	Ncuts int         // total number of time step cuts

	// auxiliary
	step int // number of successful updates
}

// Init initialises driver
func (o *Driver) Init(mat *Multi) (err error) {
	if mat == nil {
		return chk.Err("driver: material is required")
	}
	o.Mat = mat
	o.MaxCuts = 8
	o.TolD = 1e-6
	o.HD = 1e-7
	o.VerD = chk.Verbose
	return
}

// Run runs simulation
func (o *Driver) Run(pth *Path) (err error) {

	// initial state
	nsig := o.Mat.Nsig()
	if len(pth.Eps) < 2 || len(pth.Eps[0]) != nsig {
		return chk.Err("driver: path must be initialised with ndim=%d", nsig/2)
	}
	s0, err := o.Mat.InitState(nil)
	if err != nil {
		return
	}
	copy(s0.EpsE, pth.Eps[0])
	o.Mat.El.Stress(s0.Sig, s0.EpsE)
	o.Res = []*State{s0}
	o.Eps = [][]float64{append([]float64{}, pth.Eps[0]...)}
	o.Time = []float64{pth.Times[0]}
	o.Dtmax = []float64{math.MaxFloat64}
	o.Ncuts, o.step = 0, 0

	// update states
	var D [][]float64
	if o.TstD != nil {
		D = utl.Alloc(nsig, nsig)
	}
	ε := make([]float64, nsig)
	Δε := make([]float64, nsig)
	for k := 1; k < pth.Size(); k++ {
		for inc := 1; inc <= pth.Nincs; inc++ {

			// increment
			εold, told := o.Eps[len(o.Eps)-1], o.Time[len(o.Time)-1]
			t, temp := pth.At(ε, k, inc)
			for i := 0; i < nsig; i++ {
				Δε[i] = ε[i] - εold[i]
			}

			// update
			old := o.Res[len(o.Res)-1]
			ncuts := o.Ncuts
			pt, e := o.advance(old, t, t-told, temp, Δε, D, 0)
			if e != nil {
				return chk.Err("driver: station %d increment %d (t=%g) failed:\n%v", k, inc, t, e)
			}
			if o.Verbose {
				io.Pf("t=%10.4f q=%12.6f peq=%12.6e\n", t, Qeq(pt.New.Sig), pt.New.Peq())
			}

			// check consistent matrix (steps without cuts only)
			if o.TstD != nil && o.Ncuts == ncuts {
				o.checkD(old, t, t-told, temp, Δε, D, pt.Step)
			}

			// results
			o.Res = append(o.Res, pt.New)
			o.Eps = append(o.Eps, append([]float64{}, ε...))
			o.Time = append(o.Time, t)
			o.Dtmax = append(o.Dtmax, o.Mat.TimeStepLimit(pt))
		}
	}
	return
}

// advance updates the state from old; on recoverable failures, the step is cut in halves
func (o *Driver) advance(old *State, t, Δt, temp float64, Δε []float64, D [][]float64, level int) (pt *Point, err error) {
	pt = NewPoint(old, t, Δt, temp)
	pt.Step = o.step
	pt.Fractions = o.Fractions
	err = o.Mat.Update(pt, Δε, D)
	if err == nil {
		o.step++
		return
	}
	if !rmap.IsRecoverable(err) || level >= o.MaxCuts {
		return nil, err
	}
	o.Ncuts++
	if o.Verbose {
		io.Pfyel("driver: cutting time step: level=%d Δt=%g: %v\n", level+1, Δt/2.0, err)
	}
	half := make([]float64, len(Δε))
	for i := range Δε {
		half[i] = Δε[i] / 2.0
	}
	first, err := o.advance(old, t-Δt/2.0, Δt/2.0, temp, half, nil, level+1)
	if err != nil {
		return
	}
	second, err := o.advance(first.New, t, Δt/2.0, temp, half, D, level+1)
	if err != nil {
		return
	}
	second.Old = old
	second.Dt = Δt
	return second, nil
}

// checkD compares D with central differences of stresses w.r.t strain increments
func (o *Driver) checkD(old *State, t, Δt, temp float64, Δε []float64, D [][]float64, step int) {
	nsig := len(Δε)
	Δεtmp := make([]float64, nsig)
	σp := make([]float64, nsig)
	h := o.HD
	scale := o.Mat.El.E
	for j := 0; j < nsig; j++ {
		copy(Δεtmp, Δε)
		Δεtmp[j] = Δε[j] + h
		if !o.perturbed(σp, old, t, Δt, temp, Δεtmp, step) {
			return
		}
		σm := make([]float64, nsig)
		Δεtmp[j] = Δε[j] - h
		if !o.perturbed(σm, old, t, Δt, temp, Δεtmp, step) {
			return
		}
		for i := 0; i < nsig; i++ {
			dnum := (σp[i] - σm[i]) / (2.0 * h)
			chk.AnaNum(o.TstD, io.Sf("D%d%d @ t=%g", i, j, t), o.TolD, D[i][j]/scale, dnum/scale, o.VerD)
		}
	}
}

// perturbed runs one update without cuts and returns the stress
func (o *Driver) perturbed(σ []float64, old *State, t, Δt, temp float64, Δε []float64, step int) bool {
	pt := NewPoint(old, t, Δt, temp)
	pt.Step = step
	pt.Fractions = o.Fractions
	if err := o.Mat.Update(pt, Δε, nil); err != nil {
		o.TstD.Errorf("driver: perturbed update failed: %v\n", err)
		return false
	}
	copy(σ, pt.New.Sig)
	return true
}
