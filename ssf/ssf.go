// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ssf implements the binary dump formats: the full .ssf dump (a
// versioned header, a quantity descriptor table and the raw buffers,
// all little-endian) and the lossy .scf compressed dump keeping only
// float32 positions, velocities and smoothing lengths.
package ssf

import (
	"github.com/google/uuid"

	"github.com/cpmech/gosph/qty"
)

// Magic numbers and the current format version.
var (
	magicSsf = [8]byte{'G', 'O', 'S', 'P', 'H', 'S', 'S', 'F'}
	magicScf = [8]byte{'G', 'O', 'S', 'P', 'H', 'S', 'C', 'F'}
)

// Version is the dump format version this package reads and writes.
const Version uint32 = 1

// RunType routes a resumed dump to the right driver.
type RunType uint32

// Supported run types.
const (
	RunSph RunType = iota
	RunNBody
)

func (rt RunType) String() string {
	switch rt {
	case RunSph:
		return "SPH"
	case RunNBody:
		return "N-BODY"
	}
	return "UNKNOWN"
}

// descriptor is one quantity's entry in the header table.
type descriptor struct {
	Tag   int32
	Kind  int32
	Order int32
}

// Overrides is the record a loaded dump attaches to its store: the run
// state the resuming driver must adopt instead of its configured
// defaults.
type Overrides struct {
	RunType  RunType
	RunId    uuid.UUID
	Time     float64
	Timestep float64
}

// componentCount returns how many scalar lanes one element of kind
// occupies in the dump.
func componentCount(kind qty.ValueType) int {
	switch kind {
	case qty.TFloat, qty.TSize:
		return 1
	case qty.TVector:
		return 4
	case qty.TSymmetricTensor, qty.TTracelessTensor:
		return 6
	}
	return 0
}
