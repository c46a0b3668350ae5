// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"math"

	"github.com/cpmech/gosl/fun/dbf"
)

// Calc_G_from_Enu returns the shear modulus G for given Young's modulus E and Poisson's coefficient ν
func Calc_G_from_Enu(E, ν float64) float64 { return E / (2.0 * (1.0 + ν)) }

// Calc_K_from_Enu returns the bulk modulus K for given Young's modulus E and Poisson's coefficient ν
func Calc_K_from_Enu(E, ν float64) float64 { return E / (3.0 * (1.0 - 2.0*ν)) }

// Calc_E_from_KG returns Young's modulus E for given bulk K and shear G moduli
func Calc_E_from_KG(K, G float64) float64 { return 9.0 * K * G / (3.0*K + G) }

// Calc_nu_from_KG returns Poisson's coefficient ν for given bulk K and shear G moduli
func Calc_nu_from_KG(K, G float64) float64 { return (3.0*K - 2.0*G) / (6.0*K + 2.0*G) }

// Mandel tensors //////////////////////////////////////////////////////////////////////////////////
//  a = {a00, a11, a22, √2 a01, √2 a12, √2 a20}; with ndim == 2, only the first 4 components

var (
	SQ2 = math.Sqrt2 // √2

	// Im is the second order identity tensor
	Im = []float64{1, 1, 1, 0, 0, 0}

	// Psd is the symmetric-deviatoric projector Psym - Im⊗Im/3
	Psd = [][]float64{
		{2.0 / 3.0, -1.0 / 3.0, -1.0 / 3.0, 0, 0, 0},
		{-1.0 / 3.0, 2.0 / 3.0, -1.0 / 3.0, 0, 0, 0},
		{-1.0 / 3.0, -1.0 / 3.0, 2.0 / 3.0, 0, 0, 0},
		{0, 0, 0, 1, 0, 0},
		{0, 0, 0, 0, 1, 0},
		{0, 0, 0, 0, 0, 1},
	}
)

// Tr returns the trace of a
func Tr(a []float64) float64 {
	return a[0] + a[1] + a[2]
}

// Dot returns a:b
func Dot(a, b []float64) (res float64) {
	for i := 0; i < len(a); i++ {
		res += a[i] * b[i]
	}
	return
}

// DevQ computes s = dev(σ) and returns q = sqrt(3/2 s:s), the von Mises equivalent of σ
func DevQ(s, σ []float64) (q float64) {
	trσ := Tr(σ)
	for i := 0; i < len(σ); i++ {
		s[i] = σ[i] - trσ*Im[i]/3.0
	}
	return math.Sqrt(1.5 * Dot(s, s))
}

// Qeq returns the von Mises equivalent of σ
func Qeq(σ []float64) float64 {
	trσ := Tr(σ)
	var sum, s float64
	for i := 0; i < len(σ); i++ {
		s = σ[i] - trσ*Im[i]/3.0
		sum += s * s
	}
	return math.Sqrt(1.5 * sum)
}

// Peq returns the equivalent strain sqrt(2/3 e:e) with e = dev(ε)
func Peq(ε []float64) float64 {
	trε := Tr(ε)
	var sum, e float64
	for i := 0; i < len(ε); i++ {
		e = ε[i] - trε*Im[i]/3.0
		sum += e * e
	}
	return math.Sqrt(2.0 * sum / 3.0)
}

// Ten2Man converts components of a symmetric tensor to Mandel's basis
func Ten2Man(a []float64, a00, a11, a22, a01, a12, a20 float64) {
	a[0], a[1], a[2], a[3] = a00, a11, a22, a01*SQ2
	if len(a) > 4 {
		a[4], a[5] = a12*SQ2, a20*SQ2
	}
}

// MatMul computes c = a * b of square matrices
func MatMul(c, a, b [][]float64) {
	n := len(a)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			c[i][j] = 0
			for k := 0; k < n; k++ {
				c[i][j] += a[i][k] * b[k][j]
			}
		}
	}
}

// parameters //////////////////////////////////////////////////////////////////////////////////////

// splitPrms separates the parameters named in names from the others
func splitPrms(prms dbf.Params, names ...string) (in, out dbf.Params) {
	for _, p := range prms {
		if isName(names, p.N) {
			in = append(in, p)
		} else {
			out = append(out, p)
		}
	}
	return
}

// isName tells whether name is in names
func isName(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

// isInteger tells whether x has no fractional part
func isInteger(x float64) bool {
	return math.Trunc(x) == x
}
