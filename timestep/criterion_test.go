// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package timestep

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cpmech/gosph/qty"
	"github.com/cpmech/gosph/stats"
	"github.com/cpmech/gosph/tensor"
)

func makeStore(t *testing.T, h []float64, cs []float64) *qty.Store {
	t.Helper()
	store := qty.NewStore()
	pos := make([]tensor.Vector4, len(h))
	for i := range pos {
		pos[i] = tensor.NewVector4(float64(i), 0, 0, h[i])
	}
	require.NoError(t, qty.Insert(store, qty.Position, qty.Second, pos))
	require.NoError(t, qty.Insert(store, qty.SoundSpeed, qty.Zero, cs))
	require.NoError(t, qty.Insert(store, qty.Density, qty.First, []float64{1, 1, 1}[:len(h)]))
	require.NoError(t, store.AppendPartition(qty.NewMaterial("m"), len(h)))
	return store
}

// With only Courant active, dt must equal C*min(h/cs).
func TestCourant_MinimumOverParticles(t *testing.T) {
	store := makeStore(t, []float64{1, 2, 0.5}, []float64{10, 10, 10})
	c := NewCourant(0.2)
	res, err := c.Compute(store, 1e6)
	require.NoError(t, err)
	assert.InDelta(t, 0.2*0.5/10, res.Dt, 1e-12)
	assert.Equal(t, 2, res.Particle)
}

func TestCourant_RejectsBadNumber(t *testing.T) {
	store := makeStore(t, []float64{1}, []float64{1})
	_, err := NewCourant(1.5).Compute(store, 1)
	assert.Error(t, err)
}

// A quantity with zero derivative everywhere must not bind: the
// criterion returns the configured maximum.
func TestDerivative_ZeroRateYieldsMaximum(t *testing.T) {
	store := makeStore(t, []float64{1, 1, 1}, []float64{0, 0, 0})
	d := NewDerivative(0.1)
	res, err := d.Compute(store, 42.0)
	require.NoError(t, err)
	assert.Equal(t, 42.0, res.Dt)
	assert.Equal(t, -1, res.Particle)
}

func TestDerivative_RecordsLimitingQuantityAndParticle(t *testing.T) {
	store := makeStore(t, []float64{1, 1, 1}, []float64{0, 0, 0})
	dRho, err := qty.GetDt[float64](store, qty.Density)
	require.NoError(t, err)
	dRho[1] = 4 // |1+0|/4 * 0.1 = 0.025
	d := NewDerivative(0.1)
	res, err := d.Compute(store, 1e6)
	require.NoError(t, err)
	assert.InDelta(t, 0.025, res.Dt, 1e-12)
	assert.Equal(t, qty.Density, res.Quantity)
	assert.Equal(t, 1, res.Particle)
}

func TestAcceleration_SqrtHoverA(t *testing.T) {
	store := makeStore(t, []float64{4, 4, 4}, []float64{0, 0, 0})
	acc, err := qty.GetD2t[tensor.Vector4](store, qty.Position)
	require.NoError(t, err)
	acc[0] = tensor.NewVector4(1, 0, 0, 0) // sqrt(4/1) = 2
	a := NewAcceleration()
	res, err := a.Compute(store, 1e6)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, res.Dt, 1e-12)
}

// The composite takes the minimum and records the governing criterion.
func TestMulti_RecordsWinner(t *testing.T) {
	store := makeStore(t, []float64{1, 1, 1}, []float64{100, 100, 100})
	m := NewMulti(NewCourant(0.5), NewDerivative(0.1))
	st := stats.New()
	dt, err := m.Select(store, 1.0, st)
	require.NoError(t, err)
	assert.InDelta(t, 0.5/100, dt, 1e-12)
	assert.Equal(t, "courant", st.GetString(stats.TimestepCriterion, ""))
	assert.InDelta(t, dt, st.GetFloat(stats.Timestep, 0), 1e-15)
}

// An empty composite selects the configured maximum.
func TestMulti_EmptySelectsMaximum(t *testing.T) {
	store := makeStore(t, []float64{1}, []float64{1})
	dt, err := NewMulti().Select(store, 0.125, stats.New())
	require.NoError(t, err)
	assert.Equal(t, 0.125, dt)
}
