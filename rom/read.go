// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rom

import (
	"os"

	"github.com/cpmech/gosl/chk"
	"gopkg.in/yaml.v3"
)

// Entry holds one surrogate in a file: either a single model or two tiles
type Entry struct {
	Model  `yaml:",inline"`
	Tiles  []*Model `yaml:"tiles"`  // lower and upper tiles
	Input  int      `yaml:"input"`  // partitioned input
	Center float64  `yaml:"center"` // centre of the transition
	Width  float64  `yaml:"width"`  // width of the transition
}

// Evaluator initialises and returns the surrogate of this entry
func (o *Entry) Evaluator() (Evaluator, error) {
	if len(o.Tiles) == 0 {
		if err := o.Model.Init(); err != nil {
			return nil, err
		}
		return &o.Model, nil
	}
	if len(o.Tiles) != 2 {
		return nil, chk.Err("rom: partitioned surrogates require 2 tiles. %d given", len(o.Tiles))
	}
	for _, t := range o.Tiles {
		if err := t.Init(); err != nil {
			return nil, err
		}
	}
	return NewPartitioned(o.Tiles[0], o.Tiles[1], o.Input, o.Center, o.Width)
}

// File holds the surrogates of a creep model: the creep rate and the rates of state variables.
// Inputs are ordered as {stress, temperature, state variables...}
type File struct {
	Creep  *Entry   `yaml:"creep"`
	States []*Entry `yaml:"states"`
}

// Set holds initialised surrogates
type Set struct {
	Creep  Evaluator   // effective creep rate
	States []Evaluator // rates of state variables
}

// Read reads surrogates from a YAML (or JSON) file
func Read(fn string) (*Set, error) {
	b, err := os.ReadFile(fn)
	if err != nil {
		return nil, chk.Err("rom: cannot read file %q: %v", fn, err)
	}
	set, err := Parse(b)
	if err != nil {
		return nil, chk.Err("rom: file %q: %v", fn, err)
	}
	return set, nil
}

// Parse parses surrogates from YAML (or JSON) data
func Parse(b []byte) (o *Set, err error) {
	var f File
	if err = yaml.Unmarshal(b, &f); err != nil {
		return nil, err
	}
	if f.Creep == nil {
		return nil, chk.Err("rom: creep surrogate is missing")
	}
	o = new(Set)
	if o.Creep, err = f.Creep.Evaluator(); err != nil {
		return nil, err
	}
	nin := o.Creep.Ninp()
	if nin != 2+len(f.States) {
		return nil, chk.Err("rom: creep surrogate must have %d inputs (stress, temperature and %d states). %d given", 2+len(f.States), len(f.States), nin)
	}
	for k, e := range f.States {
		ev, err := e.Evaluator()
		if err != nil {
			return nil, err
		}
		if ev.Ninp() != nin {
			return nil, chk.Err("rom: state surrogate %d must have %d inputs. %d given", k, nin, ev.Ninp())
		}
		o.States = append(o.States, ev)
	}
	return
}
