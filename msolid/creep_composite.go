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
)

// CompositeCreep implements power-law creep of a multi-phase material
//  rate = Σₖ hₖ Aₖ (q - 3G Δp)^nₖ exp(-Qₖ/(R T))
//  where hₖ are the phase fractions given in Point.Fractions
type CompositeCreep struct {
	A []float64 // coefficients
	N []float64 // stress exponents
	Q []float64 // activation energies
	R float64   // gas constant
}

// add model to factory
func init() {
	allocators["composite-creep"] = func() Model { return new(CompositeCreep) }
}

// Init initialises model. Parameters of phase k are named "A<k>", "n<k>" and "Q<k>"
func (o *CompositeCreep) Init(prms dbf.Params) (err error) {
	o.R = 8.3143
	A, N, Q := make(map[int]float64), make(map[int]float64), make(map[int]float64)
	for _, p := range prms {
		if p.N == "R" {
			o.R = p.V
			continue
		}
		var k int
		var key string
		for _, prefix := range []string{"A", "n", "Q"} {
			if strings.HasPrefix(p.N, prefix) {
				k, err = strconv.Atoi(p.N[len(prefix):])
				if err == nil {
					key = prefix
				}
				break
			}
		}
		switch key {
		case "A":
			A[k] = p.V
		case "n":
			N[k] = p.V
		case "Q":
			Q[k] = p.V
		default:
			return chk.Err("composite-creep: parameter named %q is incorrect\n", p.N)
		}
	}
	nph := len(A)
	if nph == 0 {
		return chk.Err("composite-creep: at least one phase (A0, n0) must be given\n")
	}
	o.A, o.N, o.Q = make([]float64, nph), make([]float64, nph), make([]float64, nph)
	for k := 0; k < nph; k++ {
		a, okA := A[k]
		n, okN := N[k]
		if !okA || !okN {
			return chk.Err("composite-creep: A%d and n%d must be given for all %d phases\n", k, k, nph)
		}
		if a < 0 || n <= 0 {
			return chk.Err("composite-creep: A%d=%g must be non-negative and n%d=%g must be positive\n", k, a, k, n)
		}
		o.A[k], o.N[k], o.Q[k] = a, n, Q[k]
	}
	if len(N) != nph || len(Q) > nph {
		return chk.Err("composite-creep: numbers of A, n and Q parameters are inconsistent\n")
	}
	return
}

// GetPrms gets (an example) of parameters
func (o CompositeCreep) GetPrms() dbf.Params {
	return []*dbf.P{
		&dbf.P{N: "A0", V: 1e-15},
		&dbf.P{N: "n0", V: 4},
		&dbf.P{N: "Q0", V: 0},
		&dbf.P{N: "A1", V: 1e-12},
		&dbf.P{N: "n1", V: 2},
		&dbf.P{N: "Q1", V: 0},
	}
}

// InitIntVars initialises internal variables
func (o CompositeCreep) InitIntVars(nsig int) *IntVars {
	return NewIntVars(nsig, 0, 0)
}

// Flow prepares the scalar problem
func (o *CompositeCreep) Flow(pt *Point, tr *Trial, iv0 *IntVars) (Flow, error) {
	nph := len(o.A)
	h := pt.Fractions
	if h == nil && nph == 1 {
		h = []float64{1}
	}
	if len(h) != nph {
		return nil, chk.Err("composite-creep: %d phase fractions are required. %d given\n", nph, len(h))
	}
	f := &compositeFlow{flowBase: flowBase{G3: tr.G3}, N: o.N}
	f.ndt = make([]float64, nph)
	for k := 0; k < nph; k++ {
		f.ndt[k] = h[k] * o.A[k] * arrhenius(o.Q[k], o.R, pt.Temp) * pt.Dt
	}
	return f, nil
}

// compositeFlow solves r = Σₖ Ãₖ (q - 3G Δp)^nₖ - Δp
type compositeFlow struct {
	flowBase
	ndt []float64 // Ãₖ
	N   []float64 // stress exponents
}

func (o *compositeFlow) Residual(trial, Δp float64) (r, drdx float64) {
	s := trial - o.G3*Δp
	r, drdx = -Δp, -1.0
	for k, n := range o.N {
		r += o.ndt[k] * math.Pow(s, n)
		drdx -= o.G3 * o.ndt[k] * n * math.Pow(s, n-1.0)
	}
	return
}

func (o *compositeFlow) Dq(trial, Δp float64) (res float64) {
	s := trial - o.G3*Δp
	for k, n := range o.N {
		res += o.ndt[k] * n * math.Pow(s, n-1.0)
	}
	return
}

func (o *compositeFlow) Finalize(Δp float64, Δεi []float64, iv *IntVars) error {
	return nil
}
