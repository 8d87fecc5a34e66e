// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"math"
	"os"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/cpmech/gosl/fun"

	"github.com/cpmech/gosph/body"
	"github.com/cpmech/gosph/config"
	"github.com/cpmech/gosph/equation"
	"github.com/cpmech/gosph/finder"
	"github.com/cpmech/gosph/integrator"
	"github.com/cpmech/gosph/kernel"
	"github.com/cpmech/gosph/material"
	"github.com/cpmech/gosph/qty"
	"github.com/cpmech/gosph/run"
	"github.com/cpmech/gosph/sched"
	"github.com/cpmech/gosph/sph"
	"github.com/cpmech/gosph/ssf"
	"github.com/cpmech/gosph/stats"
	"github.com/cpmech/gosph/tensor"
	"github.com/cpmech/gosph/timestep"
)

var (
	errImpactEnergyNeedsContext = errors.New("gosph: --impact-energy requires --target-radius and --impact-speed")
	errTargetRadiusRequired     = errors.New("gosph: --target-radius is required unless resuming")
)

const bigG = 6.674e-11

func newRunLogger() (*logrus.Logger, uuid.UUID) {
	return run.NewLogger(logrus.InfoLevel)
}

// configTables builds the per-phase identifier tables with the
// command-line values folded in as defaults.
func configTables(opts *options) map[string]config.Table {
	impactorRadius := opts.impactorRadius
	if opts.impactEnergy > 0 {
		impactorRadius = impactorRadiusFromEnergy(opts.impactEnergy, opts.targetRadius, opts.impactSpeed*1e3, 2700)
	}
	return map[string]config.Table{
		config.TargetFile: {
			{Key: "radius", Kind: config.Float, Default: opts.targetRadius},
			{Key: "rotationPeriod", Kind: config.Float, Default: opts.targetPeriod},
			{Key: "density", Kind: config.Float, Default: 2700.0},
			{Key: "particleCnt", Kind: config.Int, Default: opts.particleCount},
			{Key: "eos", Kind: config.String, Default: "tillotson"},
			{Key: "rheology", Kind: config.String, Default: "hooke"},
			{Key: "damage", Kind: config.String, Default: "grady-kipp-scalar"},
			{Key: "shearModulus", Kind: config.Float, Default: 2.27e10},
		},
		config.ImpactorFile: {
			{Key: "radius", Kind: config.Float, Default: impactorRadius},
			{Key: "speed", Kind: config.Float, Default: opts.impactSpeed * 1e3},
			{Key: "angle", Kind: config.Float, Default: opts.impactAngle},
			{Key: "density", Kind: config.Float, Default: 2700.0},
		},
		config.StabFile: {
			{Key: "duration", Kind: config.Float, Default: opts.stabTime},
			{Key: "initialTimestep", Kind: config.Float, Default: 1e-3},
			{Key: "maxTimestep", Kind: config.Float, Default: 10.0},
			{Key: "courant", Kind: config.Float, Default: 0.2},
		},
		config.GeometryFile: {
			{Key: "separationFactor", Kind: config.Float, Default: 1.2},
			{Key: "useHaltonSeed", Kind: config.Bool, Default: false},
			{Key: "seed", Kind: config.Int, Default: 1234},
		},
		config.FragFile: {
			{Key: "duration", Kind: config.Float, Default: opts.fragTime},
			{Key: "initialTimestep", Kind: config.Float, Default: 1e-4},
			{Key: "maxTimestep", Kind: config.Float, Default: 1.0},
			{Key: "courant", Kind: config.Float, Default: 0.2},
			{Key: "avAlpha", Kind: config.Float, Default: 1.5},
			{Key: "avBeta", Kind: config.Float, Default: 3.0},
			{Key: "outputInterval", Kind: config.Float, Default: 60.0},
		},
		config.ReacFile: {
			{Key: "duration", Kind: config.Float, Default: opts.reacTime},
			{Key: "initialTimestep", Kind: config.Float, Default: 1.0},
			{Key: "maxTimestep", Kind: config.Float, Default: 3600.0},
			{Key: "openingAngle", Kind: config.Float, Default: 0.5},
			{Key: "leafSize", Kind: config.Int, Default: 8},
			{Key: "outputInterval", Kind: config.Float, Default: 3600.0},
		},
	}
}

// impactorRadiusFromEnergy inverts the Benz-Asphaug (1999) disruption
// scaling for basalt at 5 km/s: Q*_D = Qs*(R/1cm)^(-0.38)
// + Bg*rho*(R/1cm)^1.36 [erg/g, rho in g/cm^3], so a requested Q/Q*_D
// ratio and target radius fix the impactor mass via
// q = (m_i*v^2/2) / (M_t * Q*_D).
func impactorRadiusFromEnergy(q, targetRadius, speed, density float64) float64 {
	const (
		qs      = 3.5e7 // erg/g
		bg      = 0.3   // erg cm^3/g^2
		ergPerG = 1e-4  // J/kg
	)
	rcm := targetRadius * 100
	rhoCgs := density / 1000
	qstar := (qs*math.Pow(rcm, -0.38) + bg*rhoCgs*math.Pow(rcm, 1.36)) * ergPerG
	targetMass := 4.0 / 3.0 * math.Pi * math.Pow(targetRadius, 3) * density
	impactorMass := 2 * q * qstar * targetMass / (speed * speed)
	return math.Cbrt(3 * impactorMass / (4 * math.Pi * density))
}

func runPipeline(opts *options, log *logrus.Logger) error {
	if err := os.MkdirAll(opts.outputDir, 0755); err != nil {
		return err
	}
	if opts.resumeFrom != "" {
		return resume(opts, log)
	}

	tables := configTables(opts)
	values := make(map[string]config.Values, len(tables))
	anyCreated := false
	for _, name := range config.PhaseFiles {
		v, created, err := config.Ensure(filepath.Join(opts.outputDir, name), tables[name])
		if err != nil {
			return err
		}
		values[name] = v
		anyCreated = anyCreated || created
	}
	if anyCreated {
		log.Info("configuration files written; dry run only -- re-run to start the simulation")
		return nil
	}

	store, err := buildBodies(values)
	if err != nil {
		return err
	}

	if dur := values[config.StabFile].GetFloat("duration"); dur > 0 {
		if err := runSphPhase(opts, log, store, values, config.StabFile, "stab", dur, false); err != nil {
			return err
		}
	}
	if dur := values[config.FragFile].GetFloat("duration"); dur > 0 {
		if err := runSphPhase(opts, log, store, values, config.FragFile, "frag", dur, true); err != nil {
			return err
		}
	}
	if dur := values[config.ReacFile].GetFloat("duration"); dur > 0 {
		nbody, err := handoff(store)
		if err != nil {
			return err
		}
		if err := runNBodyPhase(opts, log, nbody, values[config.ReacFile], 0, dur); err != nil {
			return err
		}
	}
	return nil
}

// buildBodies creates the target and impactor stores per the loaded
// configuration.
func buildBodies(values map[string]config.Values) (*qty.Store, error) {
	tv := values[config.TargetFile]
	iv := values[config.ImpactorFile]
	gv := values[config.GeometryFile]

	mat := qty.NewMaterial("target")
	mat.Params["shear_modulus"] = tv.GetFloat("shearModulus")
	rho0 := tv.GetFloat("density")
	eos, err := material.NewEos(tv.GetString("eos"), tillotsonBasalt(rho0))
	if err != nil {
		return nil, err
	}
	mat.EoS = eos
	if name := tv.GetString("rheology"); name != "" {
		rhe, err := material.NewRheology(name, fun.Prms{})
		if err != nil {
			return nil, err
		}
		mat.Rheology = rhe
	}
	if name := tv.GetString("damage"); name != "" {
		dmg, err := material.NewDamage(name, fun.Prms{})
		if err != nil {
			return nil, err
		}
		mat.Damage = dmg
	}
	mat.Clamps[qty.Density] = qty.ClampRange{Min: 0.1 * rho0, Max: 10 * rho0}
	mat.Clamps[qty.Energy] = qty.ClampRange{Min: 0, Max: math.Inf(1)}
	mat.Clamps[qty.Damage] = qty.ClampRange{Min: 0, Max: 1}

	targetRadius := tv.GetFloat("radius")
	n := tv.GetInt("particleCnt")
	var dist body.Distribution = body.HexagonalLattice{}
	if gv.GetBool("useHaltonSeed") {
		dist = body.HaltonDistribution{Seed: gv.GetInt("seed")}
	}

	store := qty.NewStore()
	spin := 0.0
	if period := tv.GetFloat("rotationPeriod"); period > 0 {
		spin = 2 * math.Pi / (period * 3600)
	}
	if _, err := body.Make(store, body.Sphere{Radius: targetRadius}, dist, mat, n, body.Settings{
		Density:          rho0,
		AngularFrequency: spin,
		Flag:             0,
	}); err != nil {
		return nil, err
	}

	impactorRadius := iv.GetFloat("radius")
	if impactorRadius > 0 {
		imat := mat.Clone()
		imat.Name = "impactor"
		speed := iv.GetFloat("speed")
		angle := iv.GetFloat("angle") * math.Pi / 180
		sep := gv.GetFloat("separationFactor") * (targetRadius + impactorRadius)
		center := mgl64.Vec3{sep * math.Cos(angle), sep * math.Sin(angle), 0}
		nImp := int(float64(n) * math.Pow(impactorRadius/targetRadius, 3))
		if nImp < 100 {
			nImp = 100
		}
		if _, err := body.Make(store, body.Sphere{Center: center, Radius: impactorRadius}, dist, imat, nImp, body.Settings{
			Density:  iv.GetFloat("density"),
			Velocity: mgl64.Vec3{-speed * math.Cos(angle), -speed * math.Sin(angle), 0},
			Flag:     1,
		}); err != nil {
			return nil, err
		}
	}
	return store, nil
}

// tillotsonBasalt is the standard basalt parameter set.
func tillotsonBasalt(rho0 float64) fun.Prms {
	return fun.Prms{
		{N: "rho0", V: rho0},
		{N: "a", V: 0.5},
		{N: "b", V: 1.5},
		{N: "A", V: 2.67e10},
		{N: "B", V: 2.67e10},
		{N: "u0", V: 4.87e8},
		{N: "alpha", V: 5},
		{N: "beta", V: 5},
		{N: "u_iv", V: 4.72e6},
		{N: "u_cv", V: 1.82e7},
	}
}

// sphTerms assembles the equation set for an SPH phase.
func sphTerms(values map[string]config.Values, withStrength bool, gravKernel *kernel.GravityKernel) *equation.Holder {
	fv := values[config.FragFile]
	av := equation.NewArtificialViscosity(equation.AVStandard)
	if a := fv.GetFloat("avAlpha"); a > 0 {
		av.Alpha = a
	}
	if b := fv.GetFloat("avBeta"); b > 0 {
		av.Beta = b
	}
	terms := equation.NewHolder().
		Add(equation.NewPressureForce()).
		Add(av).
		Add(equation.NewContinuityEquation()).
		Add(equation.NewAdaptiveSmoothingLength()).
		Add(equation.NewNeighbourCountTerm())
	if withStrength {
		terms.Add(equation.NewSolidStress()).Add(equation.NewDamage())
		grav := equation.NewGravity(gravKernel)
		grav.G = bigG
		grav.Theta = values[config.ReacFile].GetFloat("openingAngle")
		grav.LeafSize = values[config.ReacFile].GetInt("leafSize")
		terms.Add(grav)
	}
	return terms
}

// runSphPhase drives one SPH phase and dumps its time series under
// prefix_####.ssf in the output directory.
func runSphPhase(opts *options, log *logrus.Logger, store *qty.Store, values map[string]config.Values, file, prefix string, duration float64, withStrength bool) error {
	pv := values[file]
	lut, err := kernel.NewLUT(kernel.CubicSpline{}, 40000)
	if err != nil {
		return err
	}
	gravKernel := kernel.NewGravityKernel(kernel.CubicSpline{}, 40000)
	terms := sphTerms(values, withStrength, gravKernel)

	scheduler := sched.NewThreadPool(0)
	solver, err := sph.NewSolver(scheduler, finder.NewDynamic(), lut, terms, nil, log)
	if err != nil {
		return err
	}
	if err := solver.CreateQuantities(store); err != nil {
		return err
	}

	crit := timestep.NewMulti(
		timestep.NewCourant(pv.GetFloat("courant")),
		timestep.NewDerivative(0.2),
		timestep.NewAcceleration(),
	)
	integ, err := integrator.NewPredictorCorrector(pv.GetFloat("initialTimestep"), pv.GetFloat("maxTimestep"), crit)
	if err != nil {
		return err
	}

	outInterval := pv.GetFloat("outputInterval")
	if outInterval <= 0 {
		outInterval = duration / 10
	}
	driver := &run.Driver{
		Store:      store,
		Solver:     solver,
		Integrator: integ,
		TimeStart:  0,
		TimeEnd:    duration,
		Output:     newSeriesOutput(opts.outputDir, prefix, ssf.RunSph, integ),
		Cadence:    run.LinearCadence{Interval: outInterval},
		Log:        log,
		LogWriter:  run.NewCsvLogWriter(filepath.Join(opts.outputDir, prefix+"_stats.csv")),
		Triggers:   []run.Trigger{run.NewDiagnosticsTrigger(log)},
		Stats:      stats.New(),
	}
	log.WithFields(logrus.Fields{"phase": prefix, "duration": duration, "particles": store.ParticleCount()}).Info("phase start")
	return driver.Run()
}

// handoff converts the SPH particles into hard spheres for the N-body
// phase: each sphere's radius is set so its volume equals the SPH
// particle's volume m/rho.
func handoff(store *qty.Store) (*qty.Store, error) {
	r, err := qty.GetValue[tensor.Vector4](store, qty.Position)
	if err != nil {
		return nil, err
	}
	v, err := qty.GetDt[tensor.Vector4](store, qty.Position)
	if err != nil {
		return nil, err
	}
	mass, err := qty.GetValue[float64](store, qty.Mass)
	if err != nil {
		return nil, err
	}
	rho, err := qty.GetValue[float64](store, qty.Density)
	if err != nil {
		return nil, err
	}

	n := len(r)
	pos := make([]tensor.Vector4, n)
	for i := range pos {
		radius := math.Cbrt(3 * mass[i] / (4 * math.Pi * rho[i]))
		pos[i] = tensor.Vector4{Spatial: r[i].Spatial, H: radius}
	}
	out := qty.NewStore()
	if err := qty.Insert(out, qty.Position, qty.Second, pos); err != nil {
		return nil, err
	}
	nv, err := qty.GetDt[tensor.Vector4](out, qty.Position)
	if err != nil {
		return nil, err
	}
	copy(nv, v)
	if err := qty.Insert(out, qty.Mass, qty.Zero, append([]float64(nil), mass...)); err != nil {
		return nil, err
	}
	for _, p := range store.Partitions() {
		if err := out.AppendPartitionRange(p.Mat, p.Begin, p.End); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// runNBodyPhase drives the reaccumulation phase: gravity only, leap-frog.
func runNBodyPhase(opts *options, log *logrus.Logger, store *qty.Store, pv config.Values, timeStart, duration float64) error {
	gravKernel := kernel.NewGravityKernel(kernel.CubicSpline{}, 40000)
	grav := equation.NewGravity(gravKernel)
	grav.G = bigG
	grav.Theta = pv.GetFloat("openingAngle")
	grav.LeafSize = pv.GetInt("leafSize")
	terms := equation.NewHolder().Add(grav)

	lut, err := kernel.NewLUT(kernel.CubicSpline{}, 40000)
	if err != nil {
		return err
	}
	solver, err := sph.NewSolver(sched.NewThreadPool(0), finder.NewKDTree(25), lut, terms, nil, log)
	if err != nil {
		return err
	}
	if err := solver.CreateQuantities(store); err != nil {
		return err
	}

	crit := timestep.NewMulti(timestep.NewAcceleration())
	integ, err := integrator.NewLeapFrog(pv.GetFloat("initialTimestep"), pv.GetFloat("maxTimestep"), crit)
	if err != nil {
		return err
	}
	outInterval := pv.GetFloat("outputInterval")
	if outInterval <= 0 {
		outInterval = duration / 10
	}
	driver := &run.Driver{
		Store:      store,
		Solver:     solver,
		Integrator: integ,
		TimeStart:  timeStart,
		TimeEnd:    timeStart + duration,
		Output:     newSeriesOutput(opts.outputDir, "reac", ssf.RunNBody, integ),
		Cadence:    run.LinearCadence{Interval: outInterval},
		Log:        log,
		LogWriter:  run.NewCsvLogWriter(filepath.Join(opts.outputDir, "reac_stats.csv")),
		Triggers:   []run.Trigger{run.NewDiagnosticsTrigger(log)},
		Stats:      stats.New(),
	}
	log.WithFields(logrus.Fields{"phase": "reac", "duration": duration, "particles": store.ParticleCount()}).Info("phase start")
	return driver.Run()
}

// resume loads a dump and continues the matching phase, routed by the
// dump's run-type tag.
func resume(opts *options, log *logrus.Logger) error {
	store, ov, err := ssf.Load(opts.resumeFrom)
	if err != nil {
		return err
	}
	_, index, err := config.ParseMask(opts.resumeFrom)
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"file": opts.resumeFrom, "type": ov.RunType.String(), "time": ov.Time, "index": index,
	}).Info("resuming")

	tables := configTables(opts)
	values := make(map[string]config.Values, len(tables))
	for _, name := range config.PhaseFiles {
		v, _, err := config.Ensure(filepath.Join(opts.outputDir, name), tables[name])
		if err != nil {
			return err
		}
		values[name] = v
	}

	switch ov.RunType {
	case ssf.RunNBody:
		pv := values[config.ReacFile]
		remaining := pv.GetFloat("duration") - ov.Time
		if remaining <= 0 {
			log.Info("nothing left to simulate")
			return nil
		}
		return runNBodyPhase(opts, log, store, pv, ov.Time, remaining)
	default:
		// SPH resume continues the fragmentation phase
		for _, p := range store.Partitions() {
			p.Mat.EoS, err = material.NewEos("tillotson", tillotsonBasalt(2700))
			if err != nil {
				return err
			}
		}
		fv := values[config.FragFile]
		remaining := fv.GetFloat("duration") - ov.Time
		if remaining <= 0 {
			log.Info("nothing left to simulate")
			return nil
		}
		return runSphPhase(opts, log, store, values, config.FragFile, "frag", remaining, true)
	}
}
