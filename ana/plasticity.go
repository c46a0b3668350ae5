// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ana

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// LinHard implements the response of von Mises plasticity with linear isotropic hardening
// along a proportional deviatoric strain path
//
//  q = 3G εd                             if 3G εd ≤ σy
//  q = σy + 3G H/(3G+H) (εd - σy/3G)     otherwise
//
//  where εd = sqrt(2/3 e:e) is the equivalent deviatoric strain
type LinHard struct {
	G  float64 // shear modulus
	Sy float64 // yield stress
	H  float64 // hardening modulus
}

// Init initialises this structure
func (o *LinHard) Init(prms dbf.Params) (err error) {
	o.G = 3e4
	o.Sy = 250
	for _, p := range prms {
		switch p.N {
		case "G":
			o.G = p.V
		case "sy":
			o.Sy = p.V
		case "H":
			o.H = p.V
		default:
			return chk.Err("lin-hard: parameter named %q is incorrect", p.N)
		}
	}
	if o.G <= 0 || o.Sy < 0 || o.H < 0 {
		return chk.Err("lin-hard: G=%g must be positive and sy=%g and H=%g must be non-negative", o.G, o.Sy, o.H)
	}
	return
}

// Q returns the effective stress for the equivalent deviatoric strain εd
func (o LinHard) Q(εd float64) float64 {
	G3 := 3.0 * o.G
	if G3*εd <= o.Sy {
		return G3 * εd
	}
	return o.Sy + G3*o.H/(G3+o.H)*(εd-o.Sy/G3)
}

// Peq returns the accumulated plastic strain for the equivalent deviatoric strain εd
func (o LinHard) Peq(εd float64) float64 {
	return εd - o.Q(εd)/(3.0*o.G)
}
