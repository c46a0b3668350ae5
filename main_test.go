// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(args ...string) (string, error) {
	cmd := newRootCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func Test_cmd01(tst *testing.T) {

	chk.PrintTitle("cmd01. run")

	out, err := execute("run", "--dir", "inp/data", "--name", "steel")
	require.NoError(tst, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(tst, lines, 12)
	assert.Contains(tst, lines[0], "peq")
	assert.Contains(tst, lines[1], "+Inf")

	_, err = execute("run", "--dir", "inp/data", "--name", "creep")
	assert.Error(tst, err)
	_, err = execute("run", "--dir", "inp/data", "--name", "steel", "--path", "missing.yaml")
	assert.Error(tst, err)
	_, err = execute("run", "--dir", "inp/data")
	assert.Error(tst, err)
}

func Test_cmd02(tst *testing.T) {

	chk.PrintTitle("cmd02. prms")

	out, err := execute("prms")
	require.NoError(tst, err)
	assert.Contains(tst, out, "powerlaw-creep")
	assert.Contains(tst, out, "sinh-visco")

	out, err = execute("prms", "iso-plast")
	require.NoError(tst, err)
	assert.True(tst, strings.HasPrefix(out, "prms:\n"))
	assert.Contains(tst, out, "{n: sy, v:")

	_, err = execute("prms", "unknown")
	assert.Error(tst, err)
}
