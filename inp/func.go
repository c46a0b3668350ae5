// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// Prm holds one parameter as written in input files
type Prm struct {
	N string  `yaml:"n" json:"n"` // name
	V float64 `yaml:"v" json:"v"` // value
}

// Prms holds parameters as written in input files
type Prms []*Prm

// Params converts parameters to the format used by models
func (o Prms) Params() (res dbf.Params) {
	res = make(dbf.Params, len(o))
	for i, p := range o {
		res[i] = &dbf.P{N: p.N, V: p.V}
	}
	return
}

// FuncData holds function definition
type FuncData struct {
	Name string `yaml:"name" json:"name"` // name of function. ex: zero, load, myfunction1, etc.
	Type string `yaml:"type" json:"type"` // type of function. ex: cte, rmp
	Prms Prms   `yaml:"prms" json:"prms"` // parameters
}

// FuncsData holds functions
type FuncsData []*FuncData

// Get returns function by name
//  Note: dbf.New panics on unknown types or missing parameters; Get returns these as errors
func (o FuncsData) Get(name string) (fcn dbf.T, err error) {
	if name == "zero" || name == "none" {
		return &dbf.Zero, nil
	}
	for _, f := range o {
		if f.Name == name {
			return newFunc(f.Type, f.Prms.Params(), name)
		}
	}
	err = chk.Err("cannot find function named %q", name)
	return
}

// newFunc allocates a function and recovers from allocation panics
func newFunc(typ string, prms dbf.Params, name string) (fcn dbf.T, err error) {
	defer func() {
		if e := recover(); e != nil {
			fcn = nil
			err = chk.Err("cannot get function named %q because of the following error:\n%v", name, e)
		}
	}()
	fcn = dbf.New(typ, prms)
	return
}
