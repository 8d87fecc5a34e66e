// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Gosph simulates the collision and gravitational reaccumulation of
// self-gravitating bodies: an SPH stabilization and fragmentation phase
// followed by an N-body reaccumulation phase.
package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// options carries the command-line contract.
type options struct {
	targetRadius   float64 // m
	targetPeriod   float64 // h
	impactorRadius float64 // m
	impactEnergy   float64 // Q/Q*_D
	impactSpeed    float64 // km/s
	impactAngle    float64 // deg
	particleCount  int
	stabTime       float64 // s
	fragTime       float64 // s
	reacTime       float64 // s
	resumeFrom     string
	outputDir      string
}

// shortForms maps the documented two-letter short flags onto the long
// names; pflag shorthands are single characters, so these are rewritten
// before parsing.
var shortForms = map[string]string{
	"-tr":  "--target-radius",
	"-tp":  "--target-period",
	"-ir":  "--impactor-radius",
	"-q":   "--impact-energy",
	"-v":   "--impact-speed",
	"-phi": "--impact-angle",
	"-n":   "--particle-count",
	"-st":  "--stabilization-time",
	"-ft":  "--fragmentation-time",
	"-rt":  "--reaccumulation-time",
	"-i":   "--resume-from",
	"-o":   "--output-dir",
}

func normalizeArgs(args []string) []string {
	out := make([]string, 0, len(args))
	for _, a := range args {
		if long, ok := shortForms[a]; ok {
			a = long
		}
		out = append(out, a)
	}
	return out
}

func newRootCommand(opts *options, log *logrus.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "gosph",
		Short:         "SPH collision and reaccumulation simulator",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validate(cmd, opts); err != nil {
				return err
			}
			return runPipeline(opts, log)
		},
	}
	f := cmd.Flags()
	f.Float64Var(&opts.targetRadius, "target-radius", 0, "target radius [m]")
	f.Float64Var(&opts.targetPeriod, "target-period", 0, "target rotation period [h]")
	f.Float64Var(&opts.impactorRadius, "impactor-radius", 0, "impactor radius [m]")
	f.Float64Var(&opts.impactEnergy, "impact-energy", 0, "impact energy [Q/Q*_D]")
	f.Float64Var(&opts.impactSpeed, "impact-speed", 0, "impact speed [km/s]")
	f.Float64Var(&opts.impactAngle, "impact-angle", 0, "impact angle [deg]")
	f.IntVar(&opts.particleCount, "particle-count", 10000, "number of SPH particles")
	f.Float64Var(&opts.stabTime, "stabilization-time", 0, "stabilization phase duration [s]")
	f.Float64Var(&opts.fragTime, "fragmentation-time", 0, "fragmentation phase duration [s]")
	f.Float64Var(&opts.reacTime, "reaccumulation-time", 0, "reaccumulation phase duration [s]")
	f.StringVar(&opts.resumeFrom, "resume-from", "", "resume from a dump file")
	f.StringVar(&opts.outputDir, "output-dir", ".", "output directory")
	return cmd
}

func validate(cmd *cobra.Command, opts *options) error {
	if cmd.Flags().Changed("impact-energy") {
		if !cmd.Flags().Changed("target-radius") || !cmd.Flags().Changed("impact-speed") {
			return errImpactEnergyNeedsContext
		}
	}
	if opts.resumeFrom == "" && opts.targetRadius <= 0 {
		return errTargetRadiusRequired
	}
	return nil
}

func main() {
	log, _ := newRunLogger()
	opts := &options{}
	cmd := newRootCommand(opts, log)
	cmd.SetArgs(normalizeArgs(os.Args[1:]))
	if err := cmd.Execute(); err != nil {
		log.Error(err.Error())
		os.Exit(-1)
	}
}
