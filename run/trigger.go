// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package run

import (
	"math"

	"github.com/sirupsen/logrus"

	"github.com/cpmech/gosph/qty"
	"github.com/cpmech/gosph/stats"
	"github.com/cpmech/gosph/tensor"
)

// TriggerType tells the driver whether a fired trigger stays
// registered.
type TriggerType int

// Trigger lifetimes.
const (
	// Periodic triggers stay registered after firing.
	Periodic TriggerType = iota
	// OneTime triggers are removed after their first firing.
	OneTime
)

// Trigger is a per-step hook: when Condition holds, Action runs and may
// return a replacement trigger to append to the registry.
type Trigger interface {
	Type() TriggerType
	Condition(store *qty.Store, st *stats.Stats) bool
	Action(store *qty.Store, st *stats.Stats) (Trigger, error)
}

// DiagnosticsTrigger scans the state for runtime problems -- non-finite
// positions or energies, exploding neighbour counts -- and reports them
// through the log. It aborts the run only when AbortOnDiagnostic is
// set, per the error-handling design: diagnostics are loud but not
// fatal by default.
type DiagnosticsTrigger struct {
	Log               *logrus.Logger
	MaxNeighbours     int
	AbortOnDiagnostic bool

	findings []string
}

// NewDiagnosticsTrigger returns a DiagnosticsTrigger that tolerates up
// to 300 neighbours per particle.
func NewDiagnosticsTrigger(log *logrus.Logger) *DiagnosticsTrigger {
	return &DiagnosticsTrigger{Log: log, MaxNeighbours: 300}
}

// Type reports Periodic: diagnostics run every step.
func (d *DiagnosticsTrigger) Type() TriggerType { return Periodic }

// Condition scans for problems and remembers what it found.
func (d *DiagnosticsTrigger) Condition(store *qty.Store, st *stats.Stats) bool {
	d.findings = d.findings[:0]
	if r, err := qty.GetValue[tensor.Vector4](store, qty.Position); err == nil {
		for i := range r {
			if !finiteVec(r[i]) {
				d.findings = append(d.findings, "non-finite position")
				break
			}
		}
	}
	if u, err := qty.GetValue[float64](store, qty.Energy); err == nil {
		for i := range u {
			if math.IsNaN(u[i]) || math.IsInf(u[i], 0) {
				d.findings = append(d.findings, "non-finite energy")
				break
			}
		}
	}
	if maxN := st.GetInt(stats.NeighbourMax, 0); d.MaxNeighbours > 0 && maxN > d.MaxNeighbours {
		d.findings = append(d.findings, "neighbour count explosion")
	}
	return len(d.findings) > 0
}

// Action logs the findings and optionally raises the abort flag.
func (d *DiagnosticsTrigger) Action(store *qty.Store, st *stats.Stats) (Trigger, error) {
	for _, f := range d.findings {
		if d.Log != nil {
			d.Log.WithFields(logrus.Fields{
				"step":    st.GetInt(stats.StepIndex, -1),
				"time":    st.GetFloat(stats.RunTime, 0),
				"finding": f,
			}).Warn("diagnostics")
		}
	}
	if d.AbortOnDiagnostic {
		st.Set(stats.AbortRequested, 1)
		st.Set(stats.AbortReason, d.findings[0])
	}
	return nil, nil
}

func finiteVec(v tensor.Vector4) bool {
	for i := 0; i < 3; i++ {
		if math.IsNaN(v.Spatial[i]) || math.IsInf(v.Spatial[i], 0) {
			return false
		}
	}
	return !math.IsNaN(v.H) && !math.IsInf(v.H, 0)
}

// FuncTrigger adapts plain functions into a Trigger, for one-off hooks
// like "switch phases at t=3600".
type FuncTrigger struct {
	Kind TriggerType
	Cond func(store *qty.Store, st *stats.Stats) bool
	Act  func(store *qty.Store, st *stats.Stats) (Trigger, error)
}

// Type returns the configured lifetime.
func (f *FuncTrigger) Type() TriggerType { return f.Kind }

// Condition delegates to Cond.
func (f *FuncTrigger) Condition(store *qty.Store, st *stats.Stats) bool {
	return f.Cond(store, st)
}

// Action delegates to Act; a nil Act is a no-op.
func (f *FuncTrigger) Action(store *qty.Store, st *stats.Stats) (Trigger, error) {
	if f.Act == nil {
		return nil, nil
	}
	return f.Act(store, st)
}
