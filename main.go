// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/cpmech/gosl/io"
	"github.com/cpmech/inelast/inp"
	"github.com/cpmech/inelast/msolid"
	"github.com/spf13/cobra"
)

// runInput holds the input data of the run command
type runInput struct {
	Dir     string // directory with materials and path files
	MatFn   string // materials filename
	MatName string // name of multi material
	PathFn  string // path filename
	Ndim    int    // space dimension
	Verbose bool   // show messages
}

func (o runInput) String() (l string) {
	l += "\nInput data\n"
	l += "==========\n"
	l += io.Sf("directory with materials and path files : Dir     = %v\n", o.Dir)
	l += io.Sf("materials filename                      : MatFn   = %v\n", o.MatFn)
	l += io.Sf("material name                           : MatName = %v\n", o.MatName)
	l += io.Sf("path filename                           : PathFn  = %v\n", o.PathFn)
	l += io.Sf("space dimension                         : Ndim    = %v\n", o.Ndim)
	l += "\n"
	return
}

// newRootCmd returns the inelast command with all subcommands
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "inelast",
		Short:         "Radial-return inelastic stress updates",
		Long:          `inelast runs strain paths through combinations of creep and plasticity models at one material point.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	var in runInput
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Runs a strain path through a multi material",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPath(cmd, &in)
		},
	}
	runCmd.Flags().StringVar(&in.Dir, "dir", ".", "directory with materials and path files")
	runCmd.Flags().StringVar(&in.MatFn, "mat", "materials.yaml", "materials filename")
	runCmd.Flags().StringVar(&in.MatName, "name", "", "name of multi material")
	runCmd.Flags().StringVar(&in.PathFn, "path", "path.yaml", "path filename")
	runCmd.Flags().IntVar(&in.Ndim, "ndim", 2, "space dimension: 2 or 3")
	runCmd.Flags().BoolVarP(&in.Verbose, "verbose", "v", false, "show messages")
	runCmd.MarkFlagRequired("name")

	prmsCmd := &cobra.Command{
		Use:   "prms [model]",
		Short: "Prints example parameters of a model or the names of all models",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return printPrms(cmd, args)
		},
	}

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(prmsCmd)
	return rootCmd
}

// runPath runs the driver and prints one line per increment
func runPath(cmd *cobra.Command, in *runInput) (err error) {
	out := cmd.OutOrStdout()
	if in.Verbose {
		fmt.Fprint(out, in)
	}
	mdb, err := inp.ReadMat(in.Dir, in.MatFn)
	if err != nil {
		return
	}
	mat, err := mdb.Multi(in.MatName, in.Ndim)
	if err != nil {
		return
	}
	pth, err := msolid.ReadPath(filepath.Join(in.Dir, in.PathFn), in.Ndim)
	if err != nil {
		return
	}
	mat.Rr.Verbose = in.Verbose
	var drv msolid.Driver
	if err = drv.Init(mat); err != nil {
		return
	}
	drv.Verbose = in.Verbose
	if err = drv.Run(pth); err != nil {
		return
	}
	fmt.Fprint(out, io.Sf("%12s%14s%14s%14s%14s\n", "time", "p", "q", "peq", "dtmax"))
	for k, s := range drv.Res {
		dtmax := drv.Dtmax[k]
		if dtmax == math.MaxFloat64 {
			dtmax = math.Inf(1)
		}
		fmt.Fprint(out, io.Sf("%12.6g%14.6g%14.6g%14.6e%14.6g\n", drv.Time[k], -msolid.Tr(s.Sig)/3.0, msolid.Qeq(s.Sig), s.Peq(), dtmax))
	}
	if drv.Ncuts > 0 {
		fmt.Fprint(out, io.Sf("number of time step cuts = %d\n", drv.Ncuts))
	}
	return
}

// printPrms prints parameters in the format of materials files
func printPrms(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if len(args) == 0 {
		for _, name := range msolid.Names() {
			fmt.Fprintln(out, name)
		}
		return nil
	}
	mdl, err := msolid.New(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(out, "prms:")
	for _, p := range mdl.GetPrms() {
		fmt.Fprint(out, io.Sf("  - {n: %s, v: %g}\n", p.N, p.V))
	}
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		io.PfRed("ERROR: %v\n", err)
		os.Exit(1)
	}
}
