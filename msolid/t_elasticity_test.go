// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/utl"
)

func Test_elast01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("elast01. isotropic elasticity")

	var el SmallElasticity
	err := el.Init(3, dbf.Params{&dbf.P{N: "E", V: 1000}, &dbf.P{N: "nu", V: 0.25}})
	if err != nil {
		tst.Errorf("Init failed: %v\n", err)
		return
	}
	chk.Int(tst, "nsig", el.Nsig, 6)
	chk.Float64(tst, "K", 1e-12, el.K, 1000.0/1.5)
	chk.Float64(tst, "G", 1e-12, el.G, 400)

	var kg SmallElasticity
	err = kg.Init(3, dbf.Params{&dbf.P{N: "K", V: el.K}, &dbf.P{N: "G", V: el.G}})
	if err != nil {
		tst.Errorf("Init failed: %v\n", err)
		return
	}
	chk.Float64(tst, "E", 1e-12, kg.E, 1000)
	chk.Float64(tst, "nu", 1e-15, kg.Nu, 0.25)

	// D D⁻¹ = I
	D := utl.Alloc(6, 6)
	Di := utl.Alloc(6, 6)
	I := utl.Alloc(6, 6)
	el.CalcD(D)
	el.CalcDinv(Di)
	MatMul(I, D, Di)
	eye := utl.Alloc(6, 6)
	for i := 0; i < 6; i++ {
		eye[i][i] = 1
	}
	chk.Deep2(tst, "D D⁻¹", 1e-14, I, eye)

	// stress and strain
	εe := []float64{1e-3, -2e-3, 5e-4, 1e-4, -3e-4, 2e-4}
	σ := make([]float64, 6)
	el.Stress(σ, εe)
	for i := 0; i < 6; i++ {
		var s float64
		for j := 0; j < 6; j++ {
			s += D[i][j] * εe[j]
		}
		chk.Float64(tst, "σ = D ε", 1e-13, σ[i], s)
	}
	ε := make([]float64, 6)
	el.Strain(ε, σ)
	chk.Array(tst, "ε = D⁻¹ σ", 1e-16, ε, εe)

	// moduli from D
	other, err := NewElasticityFromD(D, 1e-12)
	if err != nil {
		tst.Errorf("NewElasticityFromD failed: %v\n", err)
		return
	}
	chk.Float64(tst, "K", 1e-12, other.K, el.K)
	chk.Float64(tst, "G", 1e-12, other.G, el.G)
	chk.Float64(tst, "E", 1e-12, other.E, 1000)
	chk.Float64(tst, "nu", 1e-15, other.Nu, 0.25)

	// errors
	D[0][0] += 10
	if _, err = NewElasticityFromD(D, 1e-12); err == nil {
		tst.Errorf("NewElasticityFromD with anisotropic tensor should have failed\n")
	}
	if _, err = NewElasticityFromD(utl.Alloc(3, 3), 1e-12); err == nil {
		tst.Errorf("NewElasticityFromD with 3x3 matrix should have failed\n")
	}
	for _, prms := range []dbf.Params{
		{&dbf.P{N: "E", V: 1000}, &dbf.P{N: "nu", V: 0.25}, &dbf.P{N: "K", V: 1000}},
		{&dbf.P{N: "E", V: 1000}},
		{&dbf.P{N: "K", V: -1}, &dbf.P{N: "G", V: 10}},
	} {
		if err = el.Init(2, prms); err == nil {
			tst.Errorf("Init with %v should have failed\n", prms)
		}
	}
	if err = el.Init(1, dbf.Params{&dbf.P{N: "K", V: 1}, &dbf.P{N: "G", V: 1}}); err == nil {
		tst.Errorf("Init with ndim=1 should have failed\n")
	}
}

func Test_mandel01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("mandel01. identity and deviatoric projector")

	// Psd : Im = 0 and Psd : Psd = Psd
	for _, nsig := range []int{4, 6} {
		for i := 0; i < nsig; i++ {
			var sum float64
			for j := 0; j < nsig; j++ {
				sum += Psd[i][j] * Im[j]
				var pp float64
				for k := 0; k < nsig; k++ {
					pp += Psd[i][k] * Psd[k][j]
				}
				chk.Float64(tst, "Psd:Psd", 1e-15, pp, Psd[i][j])
			}
			chk.Float64(tst, "Psd:Im", 1e-15, sum, 0)
		}
	}

	// uniaxial and pure shear
	σ := make([]float64, 6)
	Ten2Man(σ, 250, 0, 0, 0, 0, 0)
	chk.Float64(tst, "q(uniaxial)", 1e-13, Qeq(σ), 250)
	Ten2Man(σ, 0, 0, 0, 0, 0, 10)
	chk.Float64(tst, "q(shear)", 1e-13, Qeq(σ), 10*math.Sqrt(3.0))
	chk.Float64(tst, "√2 a20", 1e-15, σ[5], 10*SQ2)

	// hydrostatic
	s := make([]float64, 4)
	chk.Float64(tst, "q(hydrostatic)", 1e-13, DevQ(s, []float64{-5, -5, -5, 0}), 0)
	chk.Array(tst, "s(hydrostatic)", 1e-15, s, nil)
}
