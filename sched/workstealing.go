// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sched

import (
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// WorkStealing splits [0,n) into many small chunks (chunkSize each) and
// lets NumWorkers goroutines race to claim the next unclaimed chunk via
// a shared atomic cursor, so idle workers "steal" whatever chunk is next
// rather than sitting on a fixed contiguous range. This is the Go
// idiomatic replacement for the task-queue + mutex the source's own
// thread pool abstraction (original_source/lib/run/Worker.cpp) hand-rolls.
type WorkStealing struct {
	workers   int
	chunkSize int
}

// NewWorkStealing returns a WorkStealing scheduler. workers<=0 defaults
// to runtime.GOMAXPROCS(0); chunkSize<=0 defaults to 64.
func NewWorkStealing(workers, chunkSize int) *WorkStealing {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if chunkSize <= 0 {
		chunkSize = 64
	}
	return &WorkStealing{workers: workers, chunkSize: chunkSize}
}

// NumWorkers reports the configured worker count.
func (p *WorkStealing) NumWorkers() int { return p.workers }

// Submit claims chunks of p.chunkSize indices from a shared cursor until
// [0,n) is exhausted, running body once per claimed chunk. Returns once
// every chunk has been processed. The errgroup carries no context, so
// workers are joined but never cancelled early.
func (p *WorkStealing) Submit(n int, body func(lo, hi int)) {
	if n <= 0 {
		return
	}
	var cursor int64
	workers := p.workers
	if workers > n {
		workers = n
	}
	var g errgroup.Group
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for {
				lo := int(atomic.AddInt64(&cursor, int64(p.chunkSize))) - p.chunkSize
				if lo >= n {
					return nil
				}
				hi := lo + p.chunkSize
				if hi > n {
					hi = n
				}
				body(lo, hi)
			}
		})
	}
	_ = g.Wait() // worker bodies never return an error
}
