// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rmap

import (
	"errors"

	"github.com/cpmech/gosl/io"
)

// Numerical errors. All of them are recoverable at the time-step level: the caller may cut the
// time step and repeat the update from the "old" state.
var (
	// ErrMaxIterations indicates that the iteration cap was reached without convergence
	ErrMaxIterations = errors.New("rmap: maximum number of iterations exceeded")

	// ErrNonFinite indicates a NaN/Inf residual or a degenerate derivative
	ErrNonFinite = errors.New("rmap: non-finite residual or derivative")

	// ErrMultiModelNotConverged indicates that the stresses of several models did not agree
	ErrMultiModelNotConverged = errors.New("rmap: multiple inelastic models did not converge")

	// ErrDomain indicates a state variable outside its admissible domain (e.g. negative porosity)
	ErrDomain = errors.New("rmap: state variable out of admissible domain")
)

// Error wraps a numerical error with the iteration context
type Error struct {
	Kind      error   // one of the Err... sentinels
	Who       string  // model or component reporting the error
	It        int     // iteration number
	X         float64 // last iterate
	Residual  float64 // last residual
	Reference float64 // last reference residual
}

// Error implements the error interface
func (o *Error) Error() string {
	return io.Sf("%v: %s: it=%d x=%g residual=%g reference=%g", o.Kind, o.Who, o.It, o.X, o.Residual, o.Reference)
}

// Unwrap returns the sentinel error
func (o *Error) Unwrap() error {
	return o.Kind
}

// IsRecoverable tells whether err (or any error it wraps) may be handled by cutting the time step
func IsRecoverable(err error) bool {
	return errors.Is(err, ErrMaxIterations) ||
		errors.Is(err, ErrNonFinite) ||
		errors.Is(err, ErrMultiModelNotConverged) ||
		errors.Is(err, ErrDomain)
}
