// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"os"

	"github.com/cpmech/gosl/chk"
	"gopkg.in/yaml.v3"
)

// Path holds a strain path: total strains and temperatures given at stations (times)
type Path struct {

	// input
	Times []float64 `yaml:"times" json:"times"` // times of stations; Times[0] is the initial time
	Ex    []float64 `yaml:"ex" json:"ex"`       // εxx at stations
	Ey    []float64 `yaml:"ey" json:"ey"`       // εyy at stations
	Ez    []float64 `yaml:"ez" json:"ez"`       // εzz at stations
	Exy   []float64 `yaml:"exy" json:"exy"`     // εxy at stations (tensor component)
	Eyz   []float64 `yaml:"eyz" json:"eyz"`     // εyz at stations (tensor component)
	Ezx   []float64 `yaml:"ezx" json:"ezx"`     // εzx at stations (tensor component)
	Temps []float64 `yaml:"temps" json:"temps"` // temperatures at stations; may be empty
	Nincs int       `yaml:"nincs" json:"nincs"` // number of increments between stations

	// derived
	Eps [][]float64 `yaml:"-" json:"-"` // strains at stations in Mandel's basis
}

// ReadPath reads a path from a YAML (or JSON) file and initialises it
func ReadPath(fn string, ndim int) (o *Path, err error) {
	b, err := os.ReadFile(fn)
	if err != nil {
		return nil, chk.Err("cannot read path file %q: %v", fn, err)
	}
	o = new(Path)
	if err = yaml.Unmarshal(b, o); err != nil {
		return nil, chk.Err("cannot parse path file %q: %v", fn, err)
	}
	if err = o.Init(ndim); err != nil {
		return nil, err
	}
	return
}

// Init checks the path and computes strains in Mandel's basis
func (o *Path) Init(ndim int) (err error) {
	n := len(o.Times)
	if n < 2 {
		return chk.Err("path: at least 2 stations are required. %d given", n)
	}
	for i := 1; i < n; i++ {
		if o.Times[i] <= o.Times[i-1] {
			return chk.Err("path: times must be increasing: t[%d]=%g <= t[%d]=%g", i, o.Times[i], i-1, o.Times[i-1])
		}
	}
	comps := map[string]*[]float64{"ex": &o.Ex, "ey": &o.Ey, "ez": &o.Ez, "exy": &o.Exy, "eyz": &o.Eyz, "ezx": &o.Ezx, "temps": &o.Temps}
	for key, c := range comps {
		if len(*c) == 0 {
			*c = make([]float64, n)
		}
		if len(*c) != n {
			return chk.Err("path: %q must have %d values. %d given", key, n, len(*c))
		}
	}
	if ndim == 2 {
		for i := 0; i < n; i++ {
			if o.Eyz[i] != 0 || o.Ezx[i] != 0 {
				return chk.Err("path: eyz and ezx must be zero in 2D")
			}
		}
	}
	if o.Nincs < 1 {
		o.Nincs = 1
	}
	nsig := 2 * ndim
	o.Eps = make([][]float64, n)
	for i := 0; i < n; i++ {
		o.Eps[i] = make([]float64, nsig)
		Ten2Man(o.Eps[i], o.Ex[i], o.Ey[i], o.Ez[i], o.Exy[i], o.Eyz[i], o.Ezx[i])
	}
	return
}

// Size returns the number of stations
func (o *Path) Size() int { return len(o.Times) }

// At computes the strain ε, time and temperature at increment inc ∈ [1, Nincs] after station k-1
func (o *Path) At(ε []float64, k, inc int) (t, temp float64) {
	s := float64(inc) / float64(o.Nincs)
	for i := range ε {
		ε[i] = o.Eps[k-1][i] + s*(o.Eps[k][i]-o.Eps[k-1][i])
	}
	t = o.Times[k-1] + s*(o.Times[k]-o.Times[k-1])
	temp = o.Temps[k-1] + s*(o.Temps[k]-o.Temps[k-1])
	return
}
