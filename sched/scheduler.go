// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sched implements the scheduler abstraction the solver and
// finders use for fork-join parallelism: sequential, a fixed thread
// pool, and a work-stealing pool. A scheduler is passed by reference to
// every parallel operation; it owns no data, only worker goroutines.
package sched

// Scheduler runs a parallel-for over [0,n) in chunks, calling body(lo,hi)
// once per chunk. Submit returns only after every chunk has completed
// (fork-join, no suspension points), matching spec §5.
type Scheduler interface {
	// Submit partitions [0,n) across workers and blocks until all
	// chunks have run body(lo, hi).
	Submit(n int, body func(lo, hi int))

	// NumWorkers reports how many workers Submit will use, so callers
	// can size one scratch buffer per worker ahead of time.
	NumWorkers() int
}
