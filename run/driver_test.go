// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package run

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cpmech/gosph/equation"
	"github.com/cpmech/gosph/finder"
	"github.com/cpmech/gosph/integrator"
	"github.com/cpmech/gosph/kernel"
	"github.com/cpmech/gosph/qty"
	"github.com/cpmech/gosph/sched"
	"github.com/cpmech/gosph/sph"
	"github.com/cpmech/gosph/stats"
	"github.com/cpmech/gosph/tensor"
)

func testDriver(t *testing.T) *Driver {
	t.Helper()
	store := qty.NewStore()
	require.NoError(t, qty.Insert(store, qty.Position, qty.Second, []tensor.Vector4{
		tensor.NewVector4(0, 0, 0, 1),
		tensor.NewVector4(1, 0, 0, 1),
	}))
	require.NoError(t, qty.Insert(store, qty.Density, qty.First, []float64{1, 1}))
	require.NoError(t, qty.Insert(store, qty.Mass, qty.Zero, []float64{1, 1}))
	require.NoError(t, store.AppendPartition(qty.NewMaterial("m"), 2))

	lut, err := kernel.NewLUT(kernel.CubicSpline{}, 1000)
	require.NoError(t, err)
	terms := equation.NewHolder().Add(equation.NewContinuityEquation())
	solver, err := sph.NewSolver(sched.NewSequential(), finder.NewGrid(), lut, terms, nil, nil)
	require.NoError(t, err)
	require.NoError(t, solver.CreateQuantities(store))
	integ, err := integrator.NewEuler(0.1, 0.1, nil)
	require.NoError(t, err)

	return &Driver{
		Store:      store,
		Solver:     solver,
		Integrator: integ,
		TimeStart:  0,
		TimeEnd:    0.95,
		Stats:      stats.New(),
	}
}

type countingOutput struct {
	times []float64
}

func (o *countingOutput) Dump(store *qty.Store, st *stats.Stats) error {
	o.times = append(o.times, st.GetFloat(stats.RunTime, -1))
	return nil
}

type abortAfter struct {
	steps int
	seen  int
}

func (a *abortAfter) OnTimeStep(store *qty.Store, st *stats.Stats) { a.seen++ }
func (a *abortAfter) ShouldAbort() bool                            { return a.seen >= a.steps }

func TestDriver_RunsToEndTime(t *testing.T) {
	d := testDriver(t)
	require.NoError(t, d.Run())
	assert.Equal(t, 10, d.Stats.GetInt(stats.StepIndex, -1))
	assert.InDelta(t, 1.0, d.Stats.GetFloat(stats.RunTime, 0), 1e-6)
}

func TestDriver_StepLimitEndsRun(t *testing.T) {
	d := testDriver(t)
	d.End.StepLimit = 3
	require.NoError(t, d.Run())
	assert.Equal(t, 3, d.Stats.GetInt(stats.StepIndex, -1))
}

func TestDriver_CallbackAbortStopsLoop(t *testing.T) {
	d := testDriver(t)
	cb := &abortAfter{steps: 2}
	d.Callbacks = cb
	require.NoError(t, d.Run())
	assert.Equal(t, 2, cb.seen)
}

func TestDriver_LinearCadenceDumpCount(t *testing.T) {
	d := testDriver(t)
	out := &countingOutput{}
	d.Output = out
	d.Cadence = LinearCadence{Interval: 0.25}
	require.NoError(t, d.Run())
	// dumps at t=0, 0.25(->0.3), 0.5, 0.75(->0.8)
	assert.Len(t, out.times, 4)
	assert.Equal(t, 0.0, out.times[0])
}

func TestDriver_OneTimeTriggerFiresOnce(t *testing.T) {
	d := testDriver(t)
	fired := 0
	d.Triggers = []Trigger{&FuncTrigger{
		Kind: OneTime,
		Cond: func(store *qty.Store, st *stats.Stats) bool { return true },
		Act: func(store *qty.Store, st *stats.Stats) (Trigger, error) {
			fired++
			return nil, nil
		},
	}}
	require.NoError(t, d.Run())
	assert.Equal(t, 1, fired)
	assert.Empty(t, d.Triggers)
}

func TestDriver_TriggerCanAppendTrigger(t *testing.T) {
	d := testDriver(t)
	second := 0
	d.Triggers = []Trigger{&FuncTrigger{
		Kind: OneTime,
		Cond: func(store *qty.Store, st *stats.Stats) bool { return true },
		Act: func(store *qty.Store, st *stats.Stats) (Trigger, error) {
			return &FuncTrigger{
				Kind: OneTime,
				Cond: func(store *qty.Store, st *stats.Stats) bool { return true },
				Act: func(store *qty.Store, st *stats.Stats) (Trigger, error) {
					second++
					return nil, nil
				},
			}, nil
		},
	}}
	require.NoError(t, d.Run())
	assert.Equal(t, 1, second)
}

func TestDriver_CsvLogWriterWritesRows(t *testing.T) {
	d := testDriver(t)
	path := filepath.Join(t.TempDir(), "steps.csv")
	d.LogWriter = NewCsvLogWriter(path)
	require.NoError(t, d.Run())
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Len(t, lines, 11) // header + 10 steps
	assert.Contains(t, lines[0], "dt_criterion")
}

func TestDriver_MetricsUpdated(t *testing.T) {
	d := testDriver(t)
	reg := prometheus.NewRegistry()
	m, err := NewMetrics(reg)
	require.NoError(t, err)
	d.Metrics = m
	require.NoError(t, d.Run())
	families, err := reg.Gather()
	require.NoError(t, err)
	names := make(map[string]bool)
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["gosph_particle_count"])
}

func TestLogarithmicCadence_DoublesInterval(t *testing.T) {
	c := &LogarithmicCadence{FirstInterval: 1}
	t0 := c.First(0)
	t1 := c.Next(t0)
	t2 := c.Next(t1)
	t3 := c.Next(t2)
	assert.Equal(t, []float64{0, 1, 3, 7}, []float64{t0, t1, t2, t3})
}

func TestListCadence_ExhaustsList(t *testing.T) {
	c := NewListCadence([]float64{0.5, 0.1, 0.9})
	assert.Equal(t, 0.1, c.First(0))
	assert.Equal(t, 0.5, c.Next(0.1))
	assert.Equal(t, 0.9, c.Next(0.5))
	assert.True(t, c.Next(0.9) > 1e300)
}
