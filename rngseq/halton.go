// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rngseq

import "github.com/cpmech/gosl/chk"

// haltonPrimes are the bases of the first Halton dimensions; dimensions
// beyond these correlate badly and are refused.
var haltonPrimes = []int{2, 3, 5, 7, 11, 13}

// Halton is a seekable low-discrepancy sequence in [0,1)^dim: At(i) is
// a pure function of i, so parallel workers can consume disjoint index
// ranges without any shared state. The offset acts as the seed,
// shifting the whole sequence.
type Halton struct {
	dim    int
	offset int
}

// NewHalton returns a Halton sequence of the given dimension, shifted
// by offset (the reproducibility seed; 0 gives the canonical sequence).
func NewHalton(dim int, offset int) (*Halton, error) {
	if dim < 1 || dim > len(haltonPrimes) {
		return nil, chk.Err("rngseq: Halton dimension %d outside [1,%d]", dim, len(haltonPrimes))
	}
	if offset < 0 {
		offset = -offset
	}
	return &Halton{dim: dim, offset: offset}, nil
}

// Dim returns the sequence dimension.
func (h *Halton) Dim() int { return h.dim }

// At returns the index-th point. dst is reused when it has the right
// length, otherwise a fresh slice is allocated.
func (h *Halton) At(index int, dst []float64) []float64 {
	if len(dst) != h.dim {
		dst = make([]float64, h.dim)
	}
	for d := 0; d < h.dim; d++ {
		dst[d] = radicalInverse(index+1+h.offset, haltonPrimes[d])
	}
	return dst
}

// radicalInverse mirrors the base-b digits of i across the radix point.
func radicalInverse(i, base int) float64 {
	inv := 1.0 / float64(base)
	f := inv
	r := 0.0
	for i > 0 {
		r += f * float64(i%base)
		i /= base
		f *= inv
	}
	return r
}
