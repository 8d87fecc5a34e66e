// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package stats implements the untyped key-value statistics record
// updated every step: run time, wallclock, timestep, limiting
// criterion, neighbour-count distribution, per-phase timing, progress.
// The solver writes it; logger and triggers read it.
package stats

import "time"

// Key names one statistics entry. The canonical keys below cover what
// the run driver, solver and timestep criteria record; triggers and
// callbacks may add their own.
type Key string

// Canonical statistics keys.
const (
	RunTime           Key = "run.time"           // simulated time [s]
	WallclockTime     Key = "run.wallclock"      // elapsed wallclock [s]
	Timestep          Key = "timestep.value"     // current dt [s]
	TimestepCriterion Key = "timestep.criterion" // criterion that limited dt
	TimestepQuantity  Key = "timestep.quantity"  // quantity that limited dt
	TimestepParticle  Key = "timestep.particle"  // particle that limited dt
	Progress          Key = "run.progress"       // fraction of t_end reached
	StepIndex         Key = "run.step"           // step counter
	NeighbourMin      Key = "neighbours.min"     // smallest neighbour count
	NeighbourMax      Key = "neighbours.max"     // largest neighbour count
	NeighbourMean     Key = "neighbours.mean"    // mean neighbour count
	TimeSphEval       Key = "phase.sph_eval"     // neighbour loop wallclock [s]
	TimeGravityEval   Key = "phase.gravity_eval" // gravity term wallclock [s]
	TimeFinderBuild   Key = "phase.finder_build" // finder rebuild wallclock [s]
	TimeReduction     Key = "phase.reduction"    // accumulator reduce wallclock [s]
	CollisionCount    Key = "collisions.total"   // collision events so far
	MergeCount        Key = "collisions.mergers" // merge events so far
	AbortRequested    Key = "run.abort"          // set when a step failed
	AbortReason       Key = "run.abort_reason"   // message attached to the failure
)

// Stats is the write-by-solver, read-by-logger record. It is accessed
// only from the driver goroutine between parallel sections, so it needs
// no locking (spec §5's shared-resource policy).
type Stats struct {
	entries map[Key]any
	order   []Key
}

// New returns an empty Stats record.
func New() *Stats {
	return &Stats{entries: make(map[Key]any)}
}

// Set stores value under key, replacing any previous entry.
func (s *Stats) Set(key Key, value any) {
	if _, ok := s.entries[key]; !ok {
		s.order = append(s.order, key)
	}
	s.entries[key] = value
}

// Has reports whether key has been set.
func (s *Stats) Has(key Key) bool {
	_, ok := s.entries[key]
	return ok
}

// Get returns the raw entry for key, or nil.
func (s *Stats) Get(key Key) any { return s.entries[key] }

// GetFloat returns the entry for key as a float64; missing or
// differently-typed entries yield def.
func (s *Stats) GetFloat(key Key, def float64) float64 {
	switch v := s.entries[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case time.Duration:
		return v.Seconds()
	}
	return def
}

// GetInt returns the entry for key as an int, or def.
func (s *Stats) GetInt(key Key, def int) int {
	switch v := s.entries[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	}
	return def
}

// GetString returns the entry for key as a string, or def.
func (s *Stats) GetString(key Key, def string) string {
	if v, ok := s.entries[key].(string); ok {
		return v
	}
	return def
}

// Increment adds delta to the integer entry under key, creating it at
// delta if absent.
func (s *Stats) Increment(key Key, delta int) {
	s.Set(key, s.GetInt(key, 0)+delta)
}

// Keys returns the set keys in first-set order.
func (s *Stats) Keys() []Key {
	out := make([]Key, len(s.order))
	copy(out, s.order)
	return out
}
