// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sched

import (
	"runtime"
	"sync"
)

// ThreadPool splits [0,n) into NumWorkers contiguous chunks and runs one
// goroutine per chunk, joining with a WaitGroup. Grounded on the
// snapshot/compute/apply chunk-dispatch shape used for per-tick entity
// physics in pthm-soup's game/parallel.go.
type ThreadPool struct {
	workers int
}

// NewThreadPool returns a ThreadPool using workers goroutines. workers<=0
// defaults to runtime.GOMAXPROCS(0).
func NewThreadPool(workers int) *ThreadPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &ThreadPool{workers: workers}
}

// NumWorkers reports the configured worker count.
func (p *ThreadPool) NumWorkers() int { return p.workers }

// Submit partitions [0,n) into p.workers contiguous chunks and runs them
// concurrently, returning once every chunk has completed.
func (p *ThreadPool) Submit(n int, body func(lo, hi int)) {
	if n <= 0 {
		return
	}
	workers := p.workers
	if workers > n {
		workers = n
	}
	chunk := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		if lo >= hi {
			continue
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			body(lo, hi)
		}(lo, hi)
	}
	wg.Wait()
}
