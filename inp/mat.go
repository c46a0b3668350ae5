// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the input data of materials
package inp

import (
	"os"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/inelast/msolid"
	"github.com/cpmech/inelast/rom"
	"gopkg.in/yaml.v3"
)

// MultiModel is the name of materials combining other materials
const MultiModel = "multi"

// Material holds material data
type Material struct {

	// input
	Name    string    `yaml:"name" json:"name"`       // name of material
	Model   string    `yaml:"model" json:"model"`     // name of model; e.g. "powerlaw-creep", "iso-plast" or "multi"
	Extra   string    `yaml:"extra" json:"extra"`     // extra information; e.g. "!hfcn:hard !rom:creep.yaml"
	Prms    Prms      `yaml:"prms" json:"prms"`       // parameters
	Deps    []string  `yaml:"deps" json:"deps"`       // multi: names of materials in order of update
	Weights []float64 `yaml:"weights" json:"weights"` // multi: weights of deps; may be empty

	// derived
	Solid msolid.Model // actual model; nil for multi
}

// MatsData holds materials
type MatsData []*Material

// MatDb implements a database of materials
type MatDb struct {

	// input
	Functions FuncsData `yaml:"functions" json:"functions"` // all functions
	Materials MatsData  `yaml:"materials" json:"materials"` // all materials

	// derived
	Dir string // directory of database; files in keycodes are relative to Dir
}

// hardener is implemented by models with hardening given by a function
type hardener interface {
	SetHardening(f dbf.T) error
}

// ReadMat reads all materials data from a YAML (or JSON) file
func ReadMat(dir, fn string) (mdb *MatDb, err error) {

	// read file
	b, err := os.ReadFile(filepath.Join(dir, fn))
	if err != nil {
		return nil, chk.Err("cannot read materials file:\n%v", err)
	}

	// decode
	mdb = &MatDb{Dir: dir}
	if err = yaml.Unmarshal(b, mdb); err != nil {
		return nil, chk.Err("cannot parse materials file %q:\n%v", fn, err)
	}

	// check names
	names := make(map[string]bool)
	for _, m := range mdb.Materials {
		if m.Name == "" {
			return nil, chk.Err("material with model %q must have a name", m.Model)
		}
		if names[m.Name] {
			return nil, chk.Err("material named %q is duplicated", m.Name)
		}
		names[m.Name] = true
	}

	// alloc/init models
	for _, m := range mdb.Materials {
		if m.Model == MultiModel {
			continue
		}
		if err = mdb.initSolid(m); err != nil {
			return nil, err
		}
	}

	// check groups
	for _, m := range mdb.Materials {
		if m.Model != MultiModel {
			continue
		}
		if len(m.Deps) == 0 {
			return nil, chk.Err("multi material %q must have deps", m.Name)
		}
		if len(m.Weights) > 0 && len(m.Weights) != len(m.Deps) {
			return nil, chk.Err("multi material %q has %d weights for %d deps", m.Name, len(m.Weights), len(m.Deps))
		}
		for _, d := range m.Deps {
			dep := mdb.Get(d)
			if dep == nil {
				return nil, chk.Err("cannot find dep %q of multi material %q", d, m.Name)
			}
			if dep.Solid == nil {
				return nil, chk.Err("dep %q of multi material %q cannot be a multi material", d, m.Name)
			}
		}
	}
	return
}

// Get returns a material
//  Note: returns nil if not found
func (o MatDb) Get(name string) *Material {
	for _, mat := range o.Materials {
		if mat.Name == name {
			return mat
		}
	}
	return nil
}

// Multi allocates the combination of models of a multi material
func (o MatDb) Multi(name string, ndim int) (*msolid.Multi, error) {
	mat := o.Get(name)
	if mat == nil {
		return nil, chk.Err("cannot find material named %q", name)
	}
	if mat.Model != MultiModel {
		return nil, chk.Err("material %q must have model %q. %q is invalid", name, MultiModel, mat.Model)
	}
	prms := mat.Prms.Params()
	for i, w := range mat.Weights {
		prms = append(prms, &dbf.P{N: io.Sf("w%d", i), V: w})
	}
	mdls := make([]msolid.Model, len(mat.Deps))
	for i, d := range mat.Deps {
		mdls[i] = o.Get(d).Solid
	}
	mm, err := msolid.NewMulti(ndim, prms, mdls, mat.Deps)
	if err != nil {
		return nil, chk.Err("cannot allocate multi material %q:\n%v", name, err)
	}
	return mm, nil
}

// initSolid allocates and initialises the model of one material and handles keycodes
func (o MatDb) initSolid(m *Material) (err error) {
	m.Solid, err = msolid.New(m.Model)
	if err != nil {
		return
	}
	if err = m.Solid.Init(m.Prms.Params()); err != nil {
		return chk.Err("cannot initialise material %q:\n%v", m.Name, err)
	}

	// hardening function
	if fname, found := io.Keycode(m.Extra, "hfcn"); found {
		h, ok := m.Solid.(hardener)
		if !ok {
			return chk.Err("material %q: model %q does not accept hardening functions", m.Name, m.Model)
		}
		fcn, err := o.Functions.Get(fname)
		if err != nil {
			return err
		}
		if err = h.SetHardening(fcn); err != nil {
			return chk.Err("material %q:\n%v", m.Name, err)
		}
	}

	// surrogates
	if fn, found := io.Keycode(m.Extra, "rom"); found {
		rc, ok := m.Solid.(*msolid.RomCreep)
		if !ok {
			return chk.Err("material %q: model %q does not use surrogates", m.Name, m.Model)
		}
		set, err := rom.Read(filepath.Join(o.Dir, fn))
		if err != nil {
			return err
		}
		if err = rc.SetSurrogates(set); err != nil {
			return chk.Err("material %q:\n%v", m.Name, err)
		}
	}
	return
}
