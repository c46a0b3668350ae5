// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

// Point holds the data of one material point during one update
type Point struct {
	Time      float64   // time at the end of the step
	Dt        float64   // Δt: time step
	Temp      float64   // temperature
	Step      int       // time step number; selects the model in cycle mode
	Fractions []float64 // phase fractions (composite creep)
	Old       *State    // state at the beginning of the step (read-only)
	New       *State    // updated state
	Eid       int       // element id (messages only)
	Ipid      int       // integration point id (messages only)

	// Its is the number of fixed-point iterations of the last update by Multi
	Its int

	// EpsIOther holds the inelastic strain increment of all other models while one model
	// is being updated by Multi
	EpsIOther []float64
}

// NewPoint allocates a point with new state copied from old
func NewPoint(old *State, time, dt, temp float64) *Point {
	return &Point{
		Time:      time,
		Dt:        dt,
		Temp:      temp,
		Old:       old,
		New:       old.GetCopy(),
		EpsIOther: make([]float64, len(old.Sig)),
	}
}
