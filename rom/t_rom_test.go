// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rom

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
	"github.com/cpmech/gosl/io"
)

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

// checkGrad compares the gradient of ev with central differences
func checkGrad(tst *testing.T, msg string, tol float64, ev Evaluator, x []float64) {
	n := ev.Ninp()
	ana := make([]float64, n)
	ev.Eval(ana, x)
	xx := make([]float64, n)
	for i := 0; i < n; i++ {
		h := 1e-6 * (1.0 + x[i])
		copy(xx, x)
		xx[i] = x[i] + h
		fp := ev.Eval(nil, xx)
		xx[i] = x[i] - h
		fm := ev.Eval(nil, xx)
		chk.AnaNum(tst, io.Sf("%s: dy/dx%d", msg, i), tol, ana[i], (fp-fm)/(2.0*h), chk.Verbose)
	}
}

func model2() *Model {
	return &Model{
		Inputs: []*Input{
			{Name: "stress", Min: 1, Max: 100, Log: true},
			{Name: "temperature", Min: 800, Max: 1000},
		},
		Terms:  [][]int{{0, 0}, {1, 0}, {0, 1}, {2, 1}},
		Coefs:  []float64{-6, 2, 0.5, 0.1},
		OutLog: true,
	}
}

func Test_rom01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("rom01. Legendre polynomials")

	P := make([]float64, 4)
	dP := make([]float64, 4)
	Legendre(P, dP, 0.5)
	chk.Array(tst, "P", 1e-15, P, []float64{1, 0.5, -0.125, -0.4375})
	chk.Array(tst, "dP", 1e-15, dP, []float64{0, 1, 1.5, 0.375})

	Legendre(P, dP, 1)
	chk.Array(tst, "P(1)", 1e-15, P, []float64{1, 1, 1, 1})
	chk.Array(tst, "dP(1)", 1e-15, dP, []float64{0, 1, 3, 6})

	// explicit sums of gosl and central differences of the recurrence
	n := 7
	leg := fun.NewGeneralOrthoPoly("L", n-1, 0, 0)
	P, dP = make([]float64, n), make([]float64, n)
	Pp, Pm := make([]float64, n), make([]float64, n)
	h := 1e-6
	for _, x := range []float64{-1, -0.7, -0.2, 0, 0.3, 0.9, 1} {
		Legendre(P, dP, x)
		Legendre(Pp, make([]float64, n), x+h)
		Legendre(Pm, make([]float64, n), x-h)
		for k := 0; k < n; k++ {
			chk.Float64(tst, io.Sf("P%d(%g)", k, x), 1e-13, P[k], leg.P(k, x))
			chk.Float64(tst, io.Sf("dP%d(%g)", k, x), 1e-8, dP[k], (Pp[k]-Pm[k])/(2*h))
		}
	}
}

func Test_rom02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("rom02. Legendre surrogate")

	m := model2()
	err := m.Init()
	if err != nil {
		tst.Errorf("Init failed: %v\n", err)
		return
	}

	// centre of both ranges: x̃ = 0
	y := m.Eval(nil, []float64{10, 900})
	chk.Float64(tst, "y(centre)", 1e-20, y, 1e-6)

	// gradient
	checkGrad(tst, "model", 1e-6, m, []float64{20, 850})

	// clamping
	y1 := m.Eval(nil, []float64{100, 900})
	y2 := m.Eval(nil, []float64{1000, 900})
	chk.Float64(tst, "clamped", 1e-17, y2, y1)
	g := make([]float64, 2)
	m.Eval(g, []float64{1000, 900})
	chk.Float64(tst, "dy/dσ (clamped)", 1e-17, g[0], 0)

	// extrapolation
	m.Extrap = true
	y3 := m.Eval(nil, []float64{1000, 900})
	if y3 == y1 {
		tst.Errorf("extrapolated value should differ from clamped one\n")
	}

	// errors
	bad := model2()
	bad.Coefs = bad.Coefs[:2]
	if bad.Init() == nil {
		tst.Errorf("Init should have failed with inconsistent coefficients\n")
	}
	bad = model2()
	bad.Inputs[0].Min = 0
	if bad.Init() == nil {
		tst.Errorf("Init should have failed with non-positive minimum of logarithmic input\n")
	}
}

func Test_rom03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("rom03. partitioned surrogate")

	lower, upper := model2(), model2()
	upper.Coefs = []float64{-4, 1, 0.2, 0}
	if err := lower.Init(); err != nil {
		tst.Errorf("Init failed: %v\n", err)
		return
	}
	if err := upper.Init(); err != nil {
		tst.Errorf("Init failed: %v\n", err)
		return
	}
	p, err := NewPartitioned(lower, upper, 1, 900, 1)
	if err != nil {
		tst.Errorf("NewPartitioned failed: %v\n", err)
		return
	}

	// at the centre, the weights are equal
	x := []float64{30, 900}
	chk.Float64(tst, "y(centre)", 1e-17, p.Eval(nil, x), (lower.Eval(nil, x)+upper.Eval(nil, x))/2.0)

	// far from the centre, only one tile is active
	x = []float64{30, 800}
	chk.Float64(tst, "y(lower)", 1e-8, p.Eval(nil, x)/lower.Eval(nil, x), 1)
	x = []float64{30, 1000}
	chk.Float64(tst, "y(upper)", 1e-8, p.Eval(nil, x)/upper.Eval(nil, x), 1)

	// gradient
	checkGrad(tst, "partitioned", 1e-6, p, []float64{30, 905})

	// errors
	_, err = NewPartitioned(lower, upper, 2, 900, 1)
	if err == nil {
		tst.Errorf("NewPartitioned should have failed with wrong input index\n")
	}
}

func Test_rom04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("rom04. parse")

	data := []byte(`
creep:
  outlog: true
  inputs:
    - {name: stress, min: 1, max: 100, log: true}
    - {name: temperature, min: 800, max: 1000}
    - {name: rho, min: 1e10, max: 1e14, log: true}
  terms: [[0, 0, 0], [1, 0, 0], [0, 0, 1]]
  coefs: [-6, 2, 0.5]
states:
  - input: 1
    center: 900
    width: 10
    tiles:
      - inputs:
          - {name: stress, min: 1, max: 100, log: true}
          - {name: temperature, min: 800, max: 1000}
          - {name: rho, min: 1e10, max: 1e14, log: true}
        terms: [[0, 0, 0]]
        coefs: [1]
      - inputs:
          - {name: stress, min: 1, max: 100, log: true}
          - {name: temperature, min: 800, max: 1000}
          - {name: rho, min: 1e10, max: 1e14, log: true}
        terms: [[0, 0, 0]]
        coefs: [3]
`)
	set, err := Parse(data)
	if err != nil {
		tst.Errorf("Parse failed: %v\n", err)
		return
	}
	chk.Int(tst, "ninp", set.Creep.Ninp(), 3)
	chk.Int(tst, "nstates", len(set.States), 1)
	chk.Float64(tst, "creep(centre)", 1e-20, set.Creep.Eval(nil, []float64{10, 900, 1e12}), 1e-6)
	chk.Float64(tst, "state(centre)", 1e-15, set.States[0].Eval(nil, []float64{10, 900, 1e12}), 2)

	// wrong number of inputs
	_, err = Parse([]byte(`
creep:
  inputs: [{name: stress, min: 1, max: 100}]
  terms: [[0]]
  coefs: [1]
`))
	if err == nil {
		tst.Errorf("Parse should have failed with wrong number of inputs\n")
	}
}
