// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

// IntVars holds the internal variables of one inelastic model
type IntVars struct {
	EpsI []float64 // accumulated inelastic strain of this model [nsig]
	Peq  float64   // accumulated effective inelastic strain
	Dp   float64   // effective inelastic strain increment of the last update
	Alp  []float64 // α: model specific scalars (hardening, porosity, densities...) [nalp]
	Back []float64 // β: backstress [nsig]; nil if the model has no kinematic hardening
}

// NewIntVars allocates internal variables
//  nback -- number of backstress components; 0 means no backstress
func NewIntVars(nsig, nalp, nback int) *IntVars {
	var o IntVars
	o.EpsI = make([]float64, nsig)
	if nalp > 0 {
		o.Alp = make([]float64, nalp)
	}
	if nback > 0 {
		o.Back = make([]float64, nback)
	}
	return &o
}

// Set copies internal variables
//  Note: other must have been allocated with the same sizes
func (o *IntVars) Set(other *IntVars) {
	copy(o.EpsI, other.EpsI)
	o.Peq = other.Peq
	o.Dp = other.Dp
	copy(o.Alp, other.Alp)
	copy(o.Back, other.Back)
}

// GetCopy returns a copy of these internal variables
func (o *IntVars) GetCopy() *IntVars {
	other := NewIntVars(len(o.EpsI), len(o.Alp), len(o.Back))
	other.Set(o)
	return other
}

// State holds the state at one material point
type State struct {
	Sig  []float64  // σ: Cauchy stress [nsig]
	EpsE []float64  // elastic strain [nsig]
	EpsI []float64  // combined (weighted) inelastic strain [nsig]
	Mech []*IntVars // internal variables of each inelastic model
}

// NewState allocates state. mech are used as they are (not copied)
func NewState(nsig int, mech []*IntVars) *State {
	var state State
	state.Sig = make([]float64, nsig)
	state.EpsE = make([]float64, nsig)
	state.EpsI = make([]float64, nsig)
	state.Mech = mech
	return &state
}

// Set copies states
//  Note: 1) this and other states must have been pre-allocated with the same sizes
//        2) this method does not check for errors
func (o *State) Set(other *State) {
	copy(o.Sig, other.Sig)
	copy(o.EpsE, other.EpsE)
	copy(o.EpsI, other.EpsI)
	for i, m := range o.Mech {
		m.Set(other.Mech[i])
	}
}

// GetCopy returns a copy of this state
func (o *State) GetCopy() *State {
	mech := make([]*IntVars, len(o.Mech))
	for i, m := range o.Mech {
		mech[i] = m.GetCopy()
	}
	other := NewState(len(o.Sig), mech)
	other.Set(o)
	return other
}

// Peq returns the accumulated effective inelastic strain of all models
func (o *State) Peq() (res float64) {
	for _, m := range o.Mech {
		res += m.Peq
	}
	return
}
