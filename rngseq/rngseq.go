// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package rngseq implements the random-sequence sources particle setup
// uses: a seeded uniform generator captured by value per use, and a
// seekable Halton low-discrepancy sequence for parallel, reproducible
// placement (any worker can jump straight to index i).
package rngseq

import "math/rand"

// Generator is a seeded uniform source. Each use constructs its own
// instance from the seed, so concurrent users never share state.
type Generator struct {
	seed int64
	rng  *rand.Rand
}

// NewGenerator returns a Generator seeded with seed.
func NewGenerator(seed int64) *Generator {
	return &Generator{seed: seed, rng: rand.New(rand.NewSource(seed))}
}

// Seed returns the seed this generator was constructed with, so a
// caller can hand an identically-seeded copy to another worker.
func (g *Generator) Seed() int64 { return g.seed }

// Uniform returns a sample from [lo, hi).
func (g *Generator) Uniform(lo, hi float64) float64 {
	return lo + (hi-lo)*g.rng.Float64()
}

// Intn returns a sample from [0, n).
func (g *Generator) Intn(n int) int { return g.rng.Intn(n) }
