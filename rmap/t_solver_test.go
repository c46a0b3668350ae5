// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rmap

import (
	"errors"
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

// problem implements Problem with callbacks
type problem struct {
	fcn   func(trial, x float64) (float64, float64)
	ref   float64
	xmin  float64
	xmax  float64
	guess float64
	xlast float64
}

func (o *problem) Residual(trial, x float64) (float64, float64) { return o.fcn(trial, x) }
func (o *problem) ReferenceResidual(trial, x float64) float64 { return o.ref }
func (o *problem) InitialGuess(trial float64) float64 { return o.guess }
func (o *problem) MinPermissible(trial float64) float64 { return o.xmin }
func (o *problem) MaxPermissible(trial float64) float64 { return o.xmax }
func (o *problem) IterationFinalize(x float64) { o.xlast = x }

func Test_solver01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("solver01. cubic")

	p := &problem{
		fcn: func(trial, x float64) (float64, float64) {
			return trial - x*x*x - x, -3.0*x*x - 1.0
		},
		xmax: 10,
	}
	slv := NewSolver("cubic")
	slv.Verbose = chk.Verbose
	x, err := slv.Solve(p, 10)
	if err != nil {
		tst.Errorf("Solve failed: %v\n", err)
		return
	}
	chk.Float64(tst, "x", 1e-10, x, 2)
	chk.Float64(tst, "xlast", 1e-15, p.xlast, x)
	if slv.Acceptable {
		tst.Errorf("convergence should not be 'acceptable' only\n")
	}
	io.Pforan("it = %v\n", slv.It)
}

func Test_solver02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("solver02. power-law creep residual")

	// r(Δp) = A Δt (q - 3G Δp)ⁿ - Δp
	A, n, Δt, q, G3 := 1e-12, 5.0, 100.0, 100.0, 8e4
	p := &problem{
		fcn: func(trial, x float64) (float64, float64) {
			s := trial - G3*x
			r := A * math.Pow(s, n) * Δt
			return r - x, -G3*n*A*math.Pow(s, n-1)*Δt - 1.0
		},
		xmax: q / G3,
	}
	p.ref = q / G3

	// residual at zero
	r0, _ := p.Residual(q, 0)
	chk.Float64(tst, "r(0)", 1e-12, r0, 1.0)

	// solve
	slv := NewSolver("creep")
	slv.Verbose = chk.Verbose
	x, err := slv.Solve(p, q)
	if err != nil {
		tst.Errorf("Solve failed: %v\n", err)
		return
	}
	r, _ := p.Residual(q, x)
	io.Pforan("x = %v  r = %v  it = %d\n", x, r, slv.It)
	chk.Float64(tst, "r(x)", 1e-10, r, 0)
	if x <= 0 || x >= q/G3 {
		tst.Errorf("x=%g must be within (0, %g)\n", x, q/G3)
	}
}

func Test_solver03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("solver03. failures")

	// non-finite residual
	p := &problem{
		fcn: func(trial, x float64) (float64, float64) {
			if x > 0 {
				return math.NaN(), 1
			}
			return 1, -1
		},
		ref:  1,
		xmax: 10,
	}
	slv := NewSolver("nan")
	_, err := slv.Solve(p, 0)
	if !errors.Is(err, ErrNonFinite) {
		tst.Errorf("error should be ErrNonFinite. err = %v\n", err)
		return
	}
	if !IsRecoverable(err) {
		tst.Errorf("ErrNonFinite must be recoverable\n")
	}

	// zero derivative without bracket
	p.fcn = func(trial, x float64) (float64, float64) { return 1, 0 }
	_, err = slv.Solve(p, 0)
	if !errors.Is(err, ErrNonFinite) {
		tst.Errorf("error should be ErrNonFinite. err = %v\n", err)
		return
	}

	// no root within range
	p.fcn = func(trial, x float64) (float64, float64) { return 1, -1 }
	slv.MaxIts = 20
	_, err = slv.Solve(p, 0)
	if !errors.Is(err, ErrMaxIterations) {
		tst.Errorf("error should be ErrMaxIterations. err = %v\n", err)
		return
	}
	var e *Error
	if !errors.As(err, &e) {
		tst.Errorf("error should be *Error\n")
		return
	}
	chk.Int(tst, "it", e.It, 20)
	io.Pforan("err = %v\n", err)
}

func Test_solver04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("solver04. acceptable convergence")

	// residual stuck between AbsTol and AcceptMult*AbsTol
	floor := 5e-11
	p := &problem{
		fcn: func(trial, x float64) (float64, float64) {
			if math.Abs(1-x) > floor {
				return 1 - x, -1
			}
			return floor, -1e20
		},
		xmax: 2,
	}
	slv := NewSolver("stall")
	slv.Verbose = chk.Verbose
	x, err := slv.Solve(p, 0)
	if err != nil {
		tst.Errorf("Solve failed: %v\n", err)
		return
	}
	if !slv.Acceptable {
		tst.Errorf("convergence should be 'acceptable'\n")
	}
	chk.Float64(tst, "x", 1e-10, x, 1)
	chk.Int(tst, "it", slv.It, slv.Nhist+1)
}

func Test_solver05(tst *testing.T) {

	//verbose()
	chk.PrintTitle("solver05. line search and bracketing")

	// Newton diverges for atan when starting far from the root
	fcn := func(trial, x float64) (float64, float64) {
		d := x - trial
		return -math.Atan(d), -1.0 / (1.0 + d*d)
	}

	// plain Newton
	slv := NewSolver("atan")
	slv.CheckRange = false
	slv.Bracket = false
	slv.MaxIts = 50
	_, err := slv.Solve(&problem{fcn: fcn}, 2)
	if err == nil {
		tst.Errorf("plain Newton should have failed\n")
		return
	}
	if !IsRecoverable(err) {
		tst.Errorf("error should be recoverable: %v\n", err)
	}

	// line search
	slv.LineSearch = true
	x, err := slv.Solve(&problem{fcn: fcn}, 2)
	if err != nil {
		tst.Errorf("Solve with line search failed: %v\n", err)
		return
	}
	chk.Float64(tst, "x (line search)", 1e-10, x, 2)

	// bracketing
	slv.LineSearch = false
	slv.Bracket = true
	x, err = slv.Solve(&problem{fcn: fcn}, 2)
	if err != nil {
		tst.Errorf("Solve with bracketing failed: %v\n", err)
		return
	}
	chk.Float64(tst, "x (bracket)", 1e-10, x, 2)
}
