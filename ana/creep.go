// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ana implements analytical solutions
package ana

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// CreepRelax implements the stress relaxation of a power-law creep material under a fixed
// deviatoric strain (time exponent m = 0 and no temperature dependence)
//
//  dq/dt = -3G A qⁿ  ⇒  q(t) = [q0^(1-n) + (n-1) 3G A t]^(1/(1-n))
//
type CreepRelax struct {
	A  float64 // coefficient
	N  float64 // stress exponent
	G  float64 // shear modulus
	Q0 float64 // initial effective stress
}

// Init initialises this structure
func (o *CreepRelax) Init(prms dbf.Params) (err error) {

	// default values
	o.A = 1e-12
	o.N = 5
	o.G = 3e4
	o.Q0 = 100

	// parameters
	for _, p := range prms {
		switch p.N {
		case "A":
			o.A = p.V
		case "n":
			o.N = p.V
		case "G":
			o.G = p.V
		case "q0":
			o.Q0 = p.V
		default:
			return chk.Err("creep-relax: parameter named %q is incorrect", p.N)
		}
	}
	if o.A < 0 || o.N <= 1 || o.G <= 0 || o.Q0 <= 0 {
		return chk.Err("creep-relax: A=%g, n-1=%g, G=%g and q0=%g must be positive", o.A, o.N-1, o.G, o.Q0)
	}
	return
}

// Q returns the effective stress at time t
func (o CreepRelax) Q(t float64) float64 {
	e := 1.0 - o.N
	return math.Pow(math.Pow(o.Q0, e)+(o.N-1.0)*3.0*o.G*o.A*t, 1.0/e)
}

// Peq returns the accumulated creep strain at time t: (q0 - q(t)) / 3G
func (o CreepRelax) Peq(t float64) float64 {
	return (o.Q0 - o.Q(t)) / (3.0 * o.G)
}
