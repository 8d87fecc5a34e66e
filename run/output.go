// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package run

import (
	"math"
	"sort"

	"github.com/cpmech/gosph/qty"
	"github.com/cpmech/gosph/stats"
)

// Output is a dump-and-forget writer: it receives a snapshot of the
// store plus the statistics record and emits a file. The driver hands
// it a clone, so the simulation may keep mutating while it writes.
type Output interface {
	Dump(store *qty.Store, st *stats.Stats) error
}

// Cadence schedules output times.
type Cadence interface {
	// First returns the first output time at or after start.
	First(start float64) float64

	// Next returns the output time following prev.
	Next(prev float64) float64
}

// LinearCadence emits every Interval.
type LinearCadence struct {
	Interval float64
}

// First returns start.
func (c LinearCadence) First(start float64) float64 { return start }

// Next returns prev + Interval.
func (c LinearCadence) Next(prev float64) float64 { return prev + c.Interval }

// LogarithmicCadence emits at doubling intervals starting from
// FirstInterval.
type LogarithmicCadence struct {
	FirstInterval float64

	interval float64
}

// First returns start and resets the doubling interval.
func (c *LogarithmicCadence) First(start float64) float64 {
	c.interval = c.FirstInterval
	return start
}

// Next doubles the interval each call.
func (c *LogarithmicCadence) Next(prev float64) float64 {
	if c.interval == 0 {
		c.interval = c.FirstInterval
	}
	next := prev + c.interval
	c.interval *= 2
	return next
}

// ListCadence emits at an explicit sorted list of times; once the list
// is exhausted no further output happens.
type ListCadence struct {
	Times []float64

	cursor int
}

// NewListCadence returns a ListCadence over a sorted copy of times.
func NewListCadence(times []float64) *ListCadence {
	sorted := append([]float64(nil), times...)
	sort.Float64s(sorted)
	return &ListCadence{Times: sorted}
}

// First returns the first listed time at or after start.
func (c *ListCadence) First(start float64) float64 {
	c.cursor = sort.SearchFloat64s(c.Times, start)
	return c.at(c.cursor)
}

// Next advances the cursor.
func (c *ListCadence) Next(prev float64) float64 {
	c.cursor++
	return c.at(c.cursor)
}

func (c *ListCadence) at(i int) float64 {
	if i >= len(c.Times) {
		return positiveInf
	}
	return c.Times[i]
}

var positiveInf = math.Inf(1)
