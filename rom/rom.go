// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package rom implements reduced-order (surrogate) models of material rates: Legendre polynomial
// expansions of normalised (optionally logarithmic) inputs
package rom

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
)

// Evaluator computes y(x) and, if dydx != nil, its gradient
type Evaluator interface {
	Ninp() int                          // number of inputs
	Eval(dydx, x []float64) (y float64) // Eval computes y and dy/dx
}

// Input holds the range and transformation of one input
type Input struct {
	Name string  `yaml:"name" json:"name"` // name; e.g. "stress"
	Min  float64 `yaml:"min" json:"min"`   // minimum value (physical units)
	Max  float64 `yaml:"max" json:"max"`   // maximum value (physical units)
	Log  bool    `yaml:"log" json:"log"`   // use log10 of input
}

// Model implements a Legendre polynomial surrogate
//  y = Σₜ cₜ Πᵢ P_{kₜᵢ}(x̃ᵢ)   with   x̃ = 2 (x' - x'min) / (x'max - x'min) - 1
//  where x' = log10(x) if Log; otherwise x' = x. If OutLog, the output is 10ʸ
type Model struct {
	Inputs []*Input  `yaml:"inputs" json:"inputs"` // inputs
	Terms  [][]int   `yaml:"terms" json:"terms"`   // degrees kₜᵢ of each term t and input i
	Coefs  []float64 `yaml:"coefs" json:"coefs"`   // coefficients cₜ
	OutLog bool      `yaml:"outlog" json:"outlog"` // output is log10 of the rate
	Extrap bool      `yaml:"extrap" json:"extrap"` // extrapolate outside [min, max]; otherwise clamp

	// derived
	deg    int       // maximum degree
	lo, hi []float64 // transformed ranges
}

// Init checks data and initialises auxiliary variables
func (o *Model) Init() (err error) {
	nin := len(o.Inputs)
	if nin == 0 {
		return chk.Err("rom: at least one input is required")
	}
	if len(o.Terms) != len(o.Coefs) {
		return chk.Err("rom: numbers of terms (%d) and coefficients (%d) must be equal", len(o.Terms), len(o.Coefs))
	}
	o.lo, o.hi = make([]float64, nin), make([]float64, nin)
	for i, inp := range o.Inputs {
		if inp.Max <= inp.Min {
			return chk.Err("rom: input %q: max=%g must be greater than min=%g", inp.Name, inp.Max, inp.Min)
		}
		o.lo[i], o.hi[i] = inp.Min, inp.Max
		if inp.Log {
			if inp.Min <= 0 {
				return chk.Err("rom: input %q: min=%g must be positive for logarithmic input", inp.Name, inp.Min)
			}
			o.lo[i], o.hi[i] = math.Log10(inp.Min), math.Log10(inp.Max)
		}
	}
	o.deg = 0
	for t, term := range o.Terms {
		if len(term) != nin {
			return chk.Err("rom: term %d must have %d degrees. %d given", t, nin, len(term))
		}
		for _, k := range term {
			if k < 0 {
				return chk.Err("rom: term %d has negative degree", t)
			}
			o.deg = utl.Imax(o.deg, k)
		}
	}
	return
}

// Ninp returns the number of inputs
func (o *Model) Ninp() int { return len(o.Inputs) }

// Eval computes y and dy/dx
func (o *Model) Eval(dydx, x []float64) (y float64) {

	// normalised inputs
	nin := len(o.Inputs)
	xt := make([]float64, nin)
	dxt := make([]float64, nin)
	for i, inp := range o.Inputs {
		v, d := x[i], 1.0
		if !o.Extrap {
			if v < inp.Min {
				v, d = inp.Min, 0
			}
			if v > inp.Max {
				v, d = inp.Max, 0
			}
		}
		if inp.Log {
			if v <= 0 {
				v, d = inp.Min, 0
			}
			d /= v * math.Ln10
			v = math.Log10(v)
		}
		xt[i] = 2.0*(v-o.lo[i])/(o.hi[i]-o.lo[i]) - 1.0
		dxt[i] = 2.0 * d / (o.hi[i] - o.lo[i])
	}

	// polynomials
	P := utl.Alloc(nin, o.deg+1)
	dP := utl.Alloc(nin, o.deg+1)
	for i := 0; i < nin; i++ {
		Legendre(P[i], dP[i], xt[i])
	}

	// output
	for t, term := range o.Terms {
		prod := o.Coefs[t]
		for i, k := range term {
			prod *= P[i][k]
		}
		y += prod
	}
	if dydx != nil {
		for i := 0; i < nin; i++ {
			dydx[i] = 0
			for t, term := range o.Terms {
				prod := o.Coefs[t] * dP[i][term[i]]
				for j, k := range term {
					if j != i {
						prod *= P[j][k]
					}
				}
				dydx[i] += prod
			}
			dydx[i] *= dxt[i]
		}
	}
	if o.OutLog {
		y = math.Pow(10, y)
		if dydx != nil {
			for i := 0; i < nin; i++ {
				dydx[i] *= y * math.Ln10
			}
		}
	}
	return
}

// Legendre computes Legendre polynomials P[k](x) and derivatives dP[k](x) for k = 0...len(P)-1
func Legendre(P, dP []float64, x float64) {
	n := len(P)
	P[0], dP[0] = 1, 0
	if n > 1 {
		P[1], dP[1] = x, 1
	}
	for k := 1; k < n-1; k++ {
		fk := float64(k)
		P[k+1] = ((2.0*fk+1.0)*x*P[k] - fk*P[k-1]) / (fk + 1.0)
		dP[k+1] = dP[k-1] + (2.0*fk+1.0)*P[k]
	}
}

// Partitioned blends two surrogates covering the lower and upper parts of one input
//  y = (1 - w) y_lower + w y_upper   with   w = 1 / (1 + exp(-(x[Input] - Center) / Width))
type Partitioned struct {
	Lower  Evaluator // surrogate of the lower tile
	Upper  Evaluator // surrogate of the upper tile
	Input  int       // index of the partitioned input
	Center float64   // centre of the transition
	Width  float64   // width of the transition
}

// NewPartitioned returns a new partitioned surrogate
func NewPartitioned(lower, upper Evaluator, input int, center, width float64) (o *Partitioned, err error) {
	if lower.Ninp() != upper.Ninp() {
		return nil, chk.Err("rom: tiles must have the same number of inputs: %d != %d", lower.Ninp(), upper.Ninp())
	}
	if input < 0 || input >= lower.Ninp() {
		return nil, chk.Err("rom: partitioned input index %d is out of range", input)
	}
	if width <= 0 {
		return nil, chk.Err("rom: width=%g of transition must be positive", width)
	}
	return &Partitioned{lower, upper, input, center, width}, nil
}

// Ninp returns the number of inputs
func (o *Partitioned) Ninp() int { return o.Lower.Ninp() }

// Eval computes y and dy/dx
func (o *Partitioned) Eval(dydx, x []float64) (y float64) {
	w := 1.0 / (1.0 + math.Exp(-(x[o.Input]-o.Center)/o.Width))
	var gl, gu []float64
	if dydx != nil {
		gl = make([]float64, len(dydx))
		gu = make([]float64, len(dydx))
	}
	yl := o.Lower.Eval(gl, x)
	yu := o.Upper.Eval(gu, x)
	y = (1.0-w)*yl + w*yu
	if dydx != nil {
		for i := range dydx {
			dydx[i] = (1.0-w)*gl[i] + w*gu[i]
		}
		dydx[o.Input] += w * (1.0 - w) / o.Width * (yu - yl)
	}
	return
}
