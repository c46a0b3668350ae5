// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package rmap implements the single-variable return-mapping solver used by radial-return
// stress updates
package rmap

import (
	"math"

	"github.com/cpmech/gosl/io"
)

// Problem defines the scalar equation r(trial, x) = 0 solved by the return-mapping algorithm.
// trial is the (effective) trial quantity, x is the unknown (e.g. effective inelastic strain increment)
type Problem interface {
	Residual(trial, x float64) (r, drdx float64) // residual and its derivative with respect to x
	ReferenceResidual(trial, x float64) float64  // scale of the residual for the relative tolerance
	InitialGuess(trial float64) float64          // initial value of x
	MinPermissible(trial float64) float64        // minimum admissible x
	MaxPermissible(trial float64) float64        // maximum admissible x
	IterationFinalize(x float64)                 // lets the problem track the current iterate
}

// Solver implements Newton's method with line search, range checking, bracketing and
// acceptable convergence for one scalar unknown
type Solver struct {

	// settings
	AbsTol     float64 // absolute tolerance on the residual
	RelTol     float64 // tolerance on residual/reference
	AcceptMult float64 // multiplier of tolerances for acceptable convergence
	MaxIts     int     // maximum number of iterations
	Nhist      int     // number of iterations in the window used to detect stalling
	MaxBisect  int     // maximum number of line-search bisections
	LineSearch bool    // bisect the Newton step while the residual does not decrease
	CheckRange bool    // keep x within [MinPermissible, MaxPermissible]
	Bracket    bool    // keep bracket of the root and bisect when Newton leaves it
	Verbose    bool    // print iterations
	Who        string  // name used in messages

	// results
	It         int       // number of iterations performed
	Acceptable bool      // converged with relaxed tolerances only
	Hist       []float64 // history of residuals
}

// NewSolver returns a solver with default settings
func NewSolver(who string) (o *Solver) {
	o = new(Solver)
	o.SetDefault()
	o.Who = who
	return
}

// SetDefault sets default settings
func (o *Solver) SetDefault() {
	o.AbsTol = 1e-11
	o.RelTol = 1e-8
	o.AcceptMult = 10
	o.MaxIts = 1000
	o.Nhist = 30
	o.MaxBisect = 10
	o.LineSearch = false
	o.CheckRange = true
	o.Bracket = true
}

// GetCopy returns a copy of the settings with cleared results
func (o *Solver) GetCopy() *Solver {
	c := *o
	c.It = 0
	c.Acceptable = false
	c.Hist = nil
	return &c
}

// Solve finds x such that r(trial, x) = 0
func (o *Solver) Solve(p Problem, trial float64) (x float64, err error) {

	// clear results
	o.It = 0
	o.Acceptable = false
	o.Hist = o.Hist[:0]

	// bounds and initial values
	xmin, xmax := p.MinPermissible(trial), p.MaxPermissible(trial)
	x = p.InitialGuess(trial)
	if o.CheckRange {
		x = math.Min(math.Max(x, xmin), xmax)
	}
	r, drdx := p.Residual(trial, x)
	ref := p.ReferenceResidual(trial, x)
	if !finite(r) {
		return x, o.fail(ErrNonFinite, x, r, ref)
	}
	p.IterationFinalize(x)
	o.Hist = append(o.Hist, r)
	if o.Verbose {
		io.Pf("%s: %4s%23s%23s%23s\n", o.Who, "it", "x", "residual", "reference")
		io.Pf("%s: %4d%23.15e%23.15e%23.15e\n", o.Who, 0, x, r, ref)
	}
	if o.converged(r, ref) {
		return
	}

	// bracket: xs has the sign of the initial residual; xo has the opposite sign
	sign0 := 1.0
	if r < 0 {
		sign0 = -1.0
	}
	xs, xo := x, x
	hasXo := false

	// iterations
	var xnew, rnew, dnew float64
	for o.It = 1; o.It <= o.MaxIts; o.It++ {

		// Newton step or bisection
		bracketed := o.Bracket && hasXo
		if drdx == 0 || !finite(drdx) {
			if !bracketed {
				return x, o.fail(ErrNonFinite, x, r, ref)
			}
			xnew = (xs + xo) / 2.0
		} else {
			xnew = x - r/drdx
			if bracketed && !within(xnew, xs, xo) {
				xnew = (xs + xo) / 2.0
			}
		}

		// stay within permissible range
		if o.CheckRange {
			if xnew > xmax {
				xnew = x + (xmax-x)/2.0
			}
			if xnew < xmin {
				xnew = x + (xmin-x)/2.0
			}
		}

		// new residual
		rnew, dnew = p.Residual(trial, xnew)
		if !finite(rnew) {
			return xnew, o.fail(ErrNonFinite, xnew, rnew, ref)
		}

		// line search
		if o.LineSearch && math.Abs(rnew) >= math.Abs(r) {
			xtry := xnew
			α := 1.0
			for k := 0; k < o.MaxBisect; k++ {
				α /= 2.0
				xnew = x + α*(xtry-x)
				rnew, dnew = p.Residual(trial, xnew)
				if !finite(rnew) {
					return xnew, o.fail(ErrNonFinite, xnew, rnew, ref)
				}
				if math.Abs(rnew) < math.Abs(r) {
					break
				}
			}
		}

		// growing residual: fall back to bisection
		if bracketed && math.Abs(rnew) > math.Abs(r) {
			xnew = (xs + xo) / 2.0
			rnew, dnew = p.Residual(trial, xnew)
			if !finite(rnew) {
				return xnew, o.fail(ErrNonFinite, xnew, rnew, ref)
			}
		}

		// accept iterate
		x, r, drdx = xnew, rnew, dnew
		ref = p.ReferenceResidual(trial, x)
		p.IterationFinalize(x)
		o.Hist = append(o.Hist, r)
		if o.Verbose {
			io.Pf("%s: %4d%23.15e%23.15e%23.15e\n", o.Who, o.It, x, r, ref)
		}

		// update bracket
		if r*sign0 > 0 {
			xs = x
		} else {
			xo = x
			hasXo = true
		}

		// check convergence
		if o.converged(r, ref) {
			return
		}
		if o.convergedAcceptable(r, ref) {
			o.Acceptable = true
			if o.Verbose {
				io.Pfyel("%s: acceptable convergence after %d iterations: residual=%g\n", o.Who, o.It, r)
			}
			return
		}
	}
	o.It = o.MaxIts
	return x, o.fail(ErrMaxIterations, x, r, ref)
}

// converged checks the absolute and relative tolerances
func (o *Solver) converged(r, ref float64) bool {
	return math.Abs(r) < o.AbsTol || math.Abs(r) < o.RelTol*math.Abs(ref)
}

// convergedAcceptable accepts a stalled iteration if the residual is within the relaxed tolerances
func (o *Solver) convergedAcceptable(r, ref float64) bool {
	n := len(o.Hist)
	if n <= o.Nhist {
		return false
	}
	if math.Abs(r)*10.0 < math.Abs(o.Hist[n-1-o.Nhist]) {
		return false // still making progress
	}
	return o.converged(r/o.AcceptMult, ref)
}

// fail returns a numerical error with the current iteration data
func (o *Solver) fail(kind error, x, r, ref float64) error {
	return &Error{Kind: kind, Who: o.Who, It: o.It, X: x, Residual: r, Reference: ref}
}

// auxiliary ///////////////////////////////////////////////////////////////////////////////////////

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func within(x, a, b float64) bool {
	if a > b {
		a, b = b, a
	}
	return x > a && x < b
}
