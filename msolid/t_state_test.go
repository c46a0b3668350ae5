// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func Test_state01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("state01")

	nsig := 4
	state0 := NewState(nsig, []*IntVars{NewIntVars(nsig, 1, 0), NewIntVars(nsig, 2, nsig)})
	io.Pforan("state0 = %+v\n", state0)
	chk.Array(tst, "sig", 1.0e-17, state0.Sig, []float64{0, 0, 0, 0})
	chk.Array(tst, "epsE", 1.0e-17, state0.EpsE, []float64{0, 0, 0, 0})
	chk.Array(tst, "alp0", 1.0e-17, state0.Mech[0].Alp, []float64{0})
	chk.Array(tst, "back1", 1.0e-17, state0.Mech[1].Back, []float64{0, 0, 0, 0})
	if state0.Mech[0].Back != nil {
		tst.Errorf("model 0 must not have backstress\n")
		return
	}

	state0.Sig[0] = 10.0
	state0.Sig[1] = 11.0
	state0.Sig[2] = 12.0
	state0.Sig[3] = 13.0
	state0.Mech[0].Alp[0] = 20.0
	state0.Mech[0].Peq = 0.1
	state0.Mech[1].Peq = 0.2
	state0.Mech[1].Back[3] = 5.0

	state1 := state0.GetCopy()
	io.Pforan("state1 = %+v\n", state1)
	chk.Array(tst, "sig", 1.0e-17, state1.Sig, []float64{10, 11, 12, 13})
	chk.Array(tst, "alp0", 1.0e-17, state1.Mech[0].Alp, []float64{20})
	chk.Array(tst, "back1", 1.0e-17, state1.Mech[1].Back, []float64{0, 0, 0, 5})
	chk.Float64(tst, "peq", 1e-15, state1.Peq(), 0.3)

	// copies are independent
	state1.Mech[0].Alp[0] = 30.0
	chk.Float64(tst, "alp0 (original)", 1e-17, state0.Mech[0].Alp[0], 20)
}
