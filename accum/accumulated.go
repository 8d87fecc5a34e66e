// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package accum holds the per-thread accumulation buffers that equation
// terms write into during the solver's parallel neighbour loop, and the
// canonical serial reduction that merges them back deterministically.
package accum

import (
	"fmt"

	"github.com/cpmech/gosph/qty"
)

// Source tags whether a buffer is private to its owning Accumulated (and
// therefore summed across workers on reduction) or shared by reference
// (written once, not summed) -- mirrors the two insertion modes the
// original solver's Accumulated type exposes.
type Source int

const (
	// Unique buffers are summed element-wise across all Accumulated
	// instances on Sum/reduce.
	Unique Source = iota
	// Shared buffers are written through a single logical owner; Sum
	// is a no-op on them (the value must already agree).
	Shared
)

type bufferKey struct {
	id    qty.Id
	order qty.Order
}

type buffer struct {
	kind   qty.ValueType
	source Source
	value  any // []T
}

// Accumulated holds one thread's scratch buffers for a single pass of
// the solver's neighbour loop: each equation term declares (during its
// own Create) which (quantity,order) pairs it writes, then Initialize
// allocates zeroed storage sized to the particle count for this pass.
type Accumulated struct {
	n       int
	buffers map[bufferKey]*buffer
	order   []bufferKey
}

// New returns an empty Accumulated with no declared buffers.
func New() *Accumulated {
	return &Accumulated{buffers: make(map[bufferKey]*buffer)}
}

// BufferCount returns the number of distinct (quantity,order) buffers
// declared so far.
func (a *Accumulated) BufferCount() int { return len(a.buffers) }

// Declaration describes one declared buffer, for callers that must make
// sure the quantity store carries a matching column before reduction.
type Declaration struct {
	Id     qty.Id
	Order  qty.Order
	Kind   qty.ValueType
	Source Source
}

// Declared returns every declared buffer in declaration order.
func (a *Accumulated) Declared() []Declaration {
	out := make([]Declaration, 0, len(a.order))
	for _, key := range a.order {
		buf := a.buffers[key]
		out = append(out, Declaration{Id: key.id, Order: key.order, Kind: buf.kind, Source: buf.source})
	}
	return out
}

// Insert declares a buffer of value type T for (id,order) with the given
// source. Repeated inserts of the identical (id,order,T,source) are a
// no-op; inserting the same (id,order) with a different type or a
// different order than a previous call for the same id is an error, to
// catch an equation term that contradicts another's declared schema.
func Insert[T any](a *Accumulated, id qty.Id, order qty.Order, source Source) error {
	kind := kindOf[T]()
	key := bufferKey{id: id, order: order}
	if existing, ok := a.buffers[key]; ok {
		if existing.kind != kind {
			return fmt.Errorf("accum: %s/%s already inserted with a different value type", id, order)
		}
		return nil
	}
	for k := range a.buffers {
		if k.id == id && k.order != order {
			return fmt.Errorf("accum: %s already inserted at order %s, cannot also insert at %s", id, k.order, order)
		}
	}
	a.buffers[key] = &buffer{kind: kind, source: source}
	a.order = append(a.order, key)
	if a.n > 0 {
		a.buffers[key].value = zeroOf(kind, a.n)
	}
	return nil
}

// Initialize (re-)allocates every declared buffer to hold n zeroed
// entries. Calling it multiple times is allowed, if a little wasteful.
func (a *Accumulated) Initialize(n int) {
	a.n = n
	for _, key := range a.order {
		buf := a.buffers[key]
		buf.value = zeroOf(buf.kind, n)
	}
}

// GetBuffer returns the live buffer for (id,order) as []T. It panics if
// the buffer was never declared, holds a different value type, or
// Initialize has not yet been called -- mirroring the original's
// assert-on-misuse contract, since this is purely a programming error
// internal to one solver pass.
func GetBuffer[T any](a *Accumulated, id qty.Id, order qty.Order) []T {
	key := bufferKey{id: id, order: order}
	buf, ok := a.buffers[key]
	if !ok {
		panic(fmt.Sprintf("accum: no buffer declared for %s/%s", id, order))
	}
	if buf.kind != kindOf[T]() {
		panic(fmt.Sprintf("accum: buffer %s/%s has a different value type", id, order))
	}
	if buf.value == nil {
		panic(fmt.Sprintf("accum: buffer %s/%s not initialized", id, order))
	}
	return buf.value.([]T)
}

// Sum reduces a set of worker-local Accumulated instances into a, adding
// each Unique buffer element-wise in the fixed declaration order
// recorded in the first Accumulated built for this pass (a itself), so
// repeated runs over the same input and worker count are bit-identical.
// Shared buffers are left untouched: they were written once by whichever
// worker owned that range and already hold the final value.
func (a *Accumulated) Sum(others []*Accumulated) error {
	for _, key := range a.order {
		dst := a.buffers[key]
		if dst.source != Unique {
			continue
		}
		for _, other := range others {
			src, ok := other.buffers[key]
			if !ok {
				return fmt.Errorf("accum: cannot sum, %s/%s missing from a contributor", key.id, key.order)
			}
			if err := addInto(dst.kind, dst.value, src.value); err != nil {
				return fmt.Errorf("accum: %s/%s: %w", key.id, key.order, err)
			}
		}
	}
	return nil
}

// Store writes every declared buffer into the matching quantity/order
// derivative slot of s, via qty.Insert-compatible setters. Store returns
// an error if s does not carry a column of the exact (id,order) shape a
// buffer declares -- this is the condition the original flags by
// assertion when a derivative order was under-registered.
func (a *Accumulated) Store(s *qty.Store) error {
	for _, key := range a.order {
		buf := a.buffers[key]
		if err := storeBuffer(s, key.id, key.order, buf.kind, buf.value); err != nil {
			return err
		}
	}
	return nil
}
