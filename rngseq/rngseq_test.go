// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rngseq

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerator_SameSeedSameSequence(t *testing.T) {
	a := NewGenerator(42)
	b := NewGenerator(42)
	for i := 0; i < 100; i++ {
		assert.Equal(t, a.Uniform(0, 1), b.Uniform(0, 1))
	}
}

func TestHalton_SeekableByIndex(t *testing.T) {
	h, err := NewHalton(3, 0)
	require.NoError(t, err)
	// walking forward and jumping straight to an index must agree
	var walked []float64
	for i := 0; i < 50; i++ {
		walked = append(walked, h.At(i, nil)[0])
	}
	assert.Equal(t, walked[37], h.At(37, nil)[0])
	assert.Equal(t, walked[3], h.At(3, nil)[0])
}

func TestHalton_FirstBase2Points(t *testing.T) {
	h, err := NewHalton(1, 0)
	require.NoError(t, err)
	want := []float64{0.5, 0.25, 0.75, 0.125}
	for i, w := range want {
		assert.InDelta(t, w, h.At(i, nil)[0], 1e-15)
	}
}

func TestHalton_RejectsExcessiveDimension(t *testing.T) {
	_, err := NewHalton(0, 0)
	assert.Error(t, err)
	_, err = NewHalton(100, 0)
	assert.Error(t, err)
}

func TestHalton_OffsetShiftsSequence(t *testing.T) {
	a, err := NewHalton(2, 0)
	require.NoError(t, err)
	b, err := NewHalton(2, 5)
	require.NoError(t, err)
	assert.Equal(t, a.At(5, nil), b.At(0, nil))
}
