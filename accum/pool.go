// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package accum

import "github.com/cpmech/gosph/qty"

// Pool hands out one Accumulated per worker, all declared against the
// same schema (the set of Insert calls the registered equation terms
// make during Create), and reduces them back into a single owner with
// Reduce. Mirrors pthm-soup's workerScratch/parallelState split: one
// scratch buffer set per worker, built once per solver pass and reused
// across the neighbour loop's chunks.
type Pool struct {
	workers []*Accumulated
}

// NewPool allocates n worker-local Accumulated instances.
func NewPool(n int) *Pool {
	p := &Pool{workers: make([]*Accumulated, n)}
	for i := range p.workers {
		p.workers[i] = New()
	}
	return p
}

// NumWorkers returns the number of worker slots in the pool.
func (p *Pool) NumWorkers() int { return len(p.workers) }

// Worker returns the i-th worker's Accumulated.
func (p *Pool) Worker(i int) *Accumulated { return p.workers[i] }

// DeclareOn runs declare against every worker's Accumulated, so each
// equation term's Insert[T] calls register identical schemas across the
// pool before Initialize.
func (p *Pool) DeclareOn(declare func(a *Accumulated) error) error {
	for _, w := range p.workers {
		if err := declare(w); err != nil {
			return err
		}
	}
	return nil
}

// InitializeAll re-allocates every worker's buffers to hold n entries,
// zeroing them for the next neighbour-loop pass.
func (p *Pool) InitializeAll(n int) {
	for _, w := range p.workers {
		w.Initialize(n)
	}
}

// Reduce sums all worker buffers into worker 0 in deterministic
// declaration order (see Accumulated.Sum) and stores the result into s.
// The canonical order -- summing workers strictly by index, and within
// each Accumulated summing buffers strictly by declaration order -- is
// what keeps repeated runs over the same particle set and worker count
// bit-reproducible, regardless of which worker happened to finish its
// chunk first.
func (p *Pool) Reduce(s *qty.Store) error {
	if len(p.workers) == 0 {
		return nil
	}
	owner := p.workers[0]
	if err := owner.Sum(p.workers[1:]); err != nil {
		return err
	}
	return owner.Store(s)
}
