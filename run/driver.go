// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package run implements the run driver: the outer loop that owns the
// store, solver, integrator, timestep criteria, output scheduling,
// triggers and callbacks, plus the statistics record they share.
package run

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/gosph/integrator"
	"github.com/cpmech/gosph/qty"
	"github.com/cpmech/gosph/sph"
	"github.com/cpmech/gosph/stats"
)

// Callbacks lets an embedding application observe steps and request a
// stop; both hooks run on the driver thread between steps.
type Callbacks interface {
	OnTimeStep(store *qty.Store, st *stats.Stats)
	ShouldAbort() bool
}

// EndCondition composes a wallclock limit and a step count limit;
// either satisfied ends the run. Zero values disable a limit.
type EndCondition struct {
	WallclockLimit time.Duration
	StepLimit      int
}

func (e EndCondition) done(elapsed time.Duration, step int) bool {
	if e.WallclockLimit > 0 && elapsed >= e.WallclockLimit {
		return true
	}
	if e.StepLimit > 0 && step >= e.StepLimit {
		return true
	}
	return false
}

// Driver is the run's composition root.
type Driver struct {
	Store      *qty.Store
	Solver     *sph.Solver
	Integrator integrator.Integrator

	TimeStart float64
	TimeEnd   float64
	End       EndCondition

	Output  Output  // nil disables dumps
	Cadence Cadence // nil with non-nil Output dumps every step

	Log       *logrus.Logger
	LogWriter LogWriter
	Triggers  []Trigger
	Callbacks Callbacks
	Metrics   *Metrics

	Stats *stats.Stats
}

// Run executes the main loop until the end time, the end condition or
// an abort. Errors raised inside a step never escape the step boundary:
// they set the abort flag on the statistics record and end the run.
func (d *Driver) Run() (err error) {
	if d.Store == nil || d.Solver == nil || d.Integrator == nil {
		return chk.Err("run: driver needs a store, a solver and an integrator")
	}
	if d.Stats == nil {
		d.Stats = stats.New()
	}
	if d.LogWriter == nil {
		d.LogWriter = NullLogWriter{}
	}
	defer func() {
		if r := recover(); r != nil {
			err = chk.Err("run: step failed: %v", r)
			d.Stats.Set(stats.AbortRequested, 1)
			d.Stats.Set(stats.AbortReason, err.Error())
		}
		if cerr := d.LogWriter.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	t := d.TimeStart
	i := 0
	started := time.Now()
	nextOutput := positiveInf
	if d.Output != nil {
		nextOutput = t
		if d.Cadence != nil {
			nextOutput = d.Cadence.First(t)
		}
	}

	for t < d.TimeEnd && !d.End.done(time.Since(started), i) {
		d.Stats.Set(stats.RunTime, t)
		d.Stats.Set(stats.WallclockTime, time.Since(started).Seconds())
		d.Stats.Set(stats.StepIndex, i)
		if d.TimeEnd > d.TimeStart {
			d.Stats.Set(stats.Progress, (t-d.TimeStart)/(d.TimeEnd-d.TimeStart))
		}

		if d.Output != nil && t >= nextOutput {
			// dump a deep clone so the writer never races the
			// integrator's in-place mutation
			snapshot := d.Store.Clone(qty.CloneAll)
			if derr := d.Output.Dump(snapshot, d.Stats); derr != nil {
				d.warn("output failed", derr)
			}
			if d.Cadence != nil {
				nextOutput = d.Cadence.Next(nextOutput)
			}
		}

		dtUsed := d.Integrator.Timestep()
		if serr := d.Integrator.Step(d.Solver, d.Store, d.Stats); serr != nil {
			d.Stats.Set(stats.AbortRequested, 1)
			d.Stats.Set(stats.AbortReason, serr.Error())
			if d.Callbacks != nil {
				d.Callbacks.OnTimeStep(d.Store, d.Stats)
			}
			return serr
		}

		if werr := d.LogWriter.Write(d.Store, d.Stats); werr != nil {
			d.warn("log writer failed", werr)
		}
		if d.Metrics != nil {
			d.Metrics.Update(d.Store, d.Stats)
		}

		if terr := d.fireTriggers(); terr != nil {
			return terr
		}
		if d.Callbacks != nil {
			d.Callbacks.OnTimeStep(d.Store, d.Stats)
			if d.Callbacks.ShouldAbort() {
				break
			}
		}
		if d.Stats.GetInt(stats.AbortRequested, 0) != 0 {
			break
		}

		t += dtUsed
		i++
	}
	d.Stats.Set(stats.RunTime, t)
	d.Stats.Set(stats.StepIndex, i)
	return nil
}

// fireTriggers runs the registry once: fired one-time triggers are
// removed, and any trigger returned by an action is appended.
func (d *Driver) fireTriggers() error {
	var appended []Trigger
	kept := d.Triggers[:0]
	for _, tr := range d.Triggers {
		if !tr.Condition(d.Store, d.Stats) {
			kept = append(kept, tr)
			continue
		}
		extra, err := tr.Action(d.Store, d.Stats)
		if err != nil {
			return err
		}
		if extra != nil {
			appended = append(appended, extra)
		}
		if tr.Type() != OneTime {
			kept = append(kept, tr)
		}
	}
	d.Triggers = append(kept, appended...)
	return nil
}

func (d *Driver) warn(msg string, err error) {
	if d.Log != nil {
		d.Log.WithField("error", err.Error()).Warn(msg)
	}
}
