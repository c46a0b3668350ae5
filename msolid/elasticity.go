// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// SmallElasticity implements isotropic linear elasticity for small strains
type SmallElasticity struct {
	Nsig int     // number of stress components
	E    float64 // Young's modulus
	Nu   float64 // Poisson's coefficient
	K    float64 // bulk modulus
	G    float64 // shear modulus
}

// Init initialises elasticity with either {E, nu} or {K, G}.
// Other parameters in prms are ignored
func (o *SmallElasticity) Init(ndim int, prms dbf.Params) (err error) {
	if ndim != 2 && ndim != 3 {
		return chk.Err("elasticity: ndim must be 2 or 3. ndim=%d is invalid", ndim)
	}
	o.Nsig = 2 * ndim
	var hasE, hasNu, hasK, hasG bool
	for _, p := range prms {
		switch p.N {
		case "E":
			o.E, hasE = p.V, true
		case "nu":
			o.Nu, hasNu = p.V, true
		case "K":
			o.K, hasK = p.V, true
		case "G":
			o.G, hasG = p.V, true
		}
	}
	switch {
	case hasE && hasNu && !hasK && !hasG:
		o.K = Calc_K_from_Enu(o.E, o.Nu)
		o.G = Calc_G_from_Enu(o.E, o.Nu)
	case hasK && hasG && !hasE && !hasNu:
		o.E = Calc_E_from_KG(o.K, o.G)
		o.Nu = Calc_nu_from_KG(o.K, o.G)
	default:
		return chk.Err("elasticity: either {E, nu} or {K, G} must be given (not both sets)")
	}
	if o.K <= 0 || o.G <= 0 {
		return chk.Err("elasticity: K=%g and G=%g must be positive", o.K, o.G)
	}
	return
}

// NewElasticityFromD extracts isotropic moduli from an elasticity matrix in Mandel's basis.
// An error is returned if D is not isotropic
func NewElasticityFromD(D [][]float64, tol float64) (o *SmallElasticity, err error) {
	n := len(D)
	if n != 4 && n != 6 {
		return nil, chk.Err("elasticity: D must be 4x4 or 6x6. n=%d is invalid", n)
	}
	o = new(SmallElasticity)
	o.Nsig = n
	o.G = D[3][3] / 2.0
	o.K = D[0][1] + 2.0*o.G/3.0
	scale := math.Max(math.Abs(D[0][0]), 1)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if math.Abs(D[i][j]-o.dij(i, j)) > tol*scale {
				return nil, chk.Err("elasticity: tensor is not isotropic: D[%d][%d]=%g != %g", i, j, D[i][j], o.dij(i, j))
			}
		}
	}
	if o.K <= 0 || o.G <= 0 {
		return nil, chk.Err("elasticity: K=%g and G=%g must be positive", o.K, o.G)
	}
	o.E = Calc_E_from_KG(o.K, o.G)
	o.Nu = Calc_nu_from_KG(o.K, o.G)
	return
}

// Stress computes σ = D : εe
func (o SmallElasticity) Stress(σ, εe []float64) {
	trε := Tr(εe)
	for i := 0; i < o.Nsig; i++ {
		σ[i] = o.K*trε*Im[i] + 2.0*o.G*(εe[i]-trε*Im[i]/3.0)
	}
}

// Strain computes εe = D⁻¹ : σ
func (o SmallElasticity) Strain(εe, σ []float64) {
	trσ := Tr(σ)
	for i := 0; i < o.Nsig; i++ {
		εe[i] = trσ*Im[i]/(9.0*o.K) + (σ[i]-trσ*Im[i]/3.0)/(2.0*o.G)
	}
}

// CalcD computes D = dσ/dεe
func (o SmallElasticity) CalcD(D [][]float64) {
	for i := 0; i < o.Nsig; i++ {
		for j := 0; j < o.Nsig; j++ {
			D[i][j] = o.dij(i, j)
		}
	}
}

// CalcDinv computes the compliance D⁻¹
func (o SmallElasticity) CalcDinv(Di [][]float64) {
	for i := 0; i < o.Nsig; i++ {
		for j := 0; j < o.Nsig; j++ {
			Di[i][j] = Psd[i][j]/(2.0*o.G) + Im[i]*Im[j]/(9.0*o.K)
		}
	}
}

func (o SmallElasticity) dij(i, j int) float64 {
	return 2.0*o.G*Psd[i][j] + o.K*Im[i]*Im[j]
}
