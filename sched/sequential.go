// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sched

// Sequential runs every chunk inline on the calling goroutine. Useful for
// debugging bit-reproducibility issues and for small particle counts
// where thread hand-off costs more than the work itself.
type Sequential struct{}

// NewSequential returns a Sequential scheduler.
func NewSequential() *Sequential { return &Sequential{} }

// Submit runs body(0, n) directly.
func (s *Sequential) Submit(n int, body func(lo, hi int)) {
	if n <= 0 {
		return
	}
	body(0, n)
}

// NumWorkers always reports 1.
func (s *Sequential) NumWorkers() int { return 1 }
