// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package qty implements the quantity store: a heterogeneous,
// quantity-keyed columnar container with material partitioning and
// derivative ordering, as laid out in the spec's data model.
package qty

import "github.com/cpmech/gosph/tensor"

// Id identifies a quantity by a stable tag, analogous to gofem's fixed
// set of solution-vector keys ("u", "pl", "pg", ...) but enumerated
// instead of stringly-typed, so the store can dispatch on it directly.
type Id int

// Canonical quantity identifiers.
const (
	Position Id = iota
	Mass
	Density
	Energy
	Pressure
	SoundSpeed
	Stress
	Damage
	VelocityDivergence
	VelocityGradient
	Flag
	NeighbourCount
)

var idNames = map[Id]string{
	Position:           "POSITION",
	Mass:               "MASS",
	Density:            "DENSITY",
	Energy:             "ENERGY",
	Pressure:           "PRESSURE",
	SoundSpeed:         "SOUND_SPEED",
	Stress:             "STRESS",
	Damage:             "DAMAGE",
	VelocityDivergence: "VELOCITY_DIVERGENCE",
	VelocityGradient:   "VELOCITY_GRADIENT",
	Flag:               "FLAG",
	NeighbourCount:     "NEIGHBOUR_CNT",
}

// String returns the quantity's stable tag name.
func (id Id) String() string {
	if n, ok := idNames[id]; ok {
		return n
	}
	return "UNKNOWN_QUANTITY"
}

// ValueType is the fixed value type a quantity's buffers hold.
type ValueType int

// Supported value types.
const (
	TFloat ValueType = iota
	TVector
	TSymmetricTensor
	TTracelessTensor
	TSize
)

func (t ValueType) String() string {
	switch t {
	case TFloat:
		return "Float"
	case TVector:
		return "Vector"
	case TSymmetricTensor:
		return "SymmetricTensor"
	case TTracelessTensor:
		return "TracelessTensor"
	case TSize:
		return "Size"
	default:
		return "Unknown"
	}
}

// Order is how many time derivatives a quantity owns alongside its value.
type Order int

// Supported orders.
const (
	Zero Order = iota
	First
	Second
)

func (o Order) String() string {
	switch o {
	case Zero:
		return "Zero"
	case First:
		return "First"
	case Second:
		return "Second"
	default:
		return "Unknown"
	}
}

// BufferCount returns how many buffers (value, dt, d2t) the order implies.
func (o Order) BufferCount() int {
	return int(o) + 1
}

// kindOf infers the ValueType of a generic parameter T via a type switch
// on an interface-boxed zero value of T -- the standard way to recover
// type information lost to Go generics' erasure-free-but-unswitchable
// type parameters.
func kindOf[T any]() ValueType {
	var zero T
	switch any(zero).(type) {
	case float64:
		return TFloat
	case tensor.Vector4:
		return TVector
	case tensor.SymmetricTensor:
		return TSymmetricTensor
	case tensor.TracelessTensor:
		return TTracelessTensor
	case uint64:
		return TSize
	default:
		panic("qty: unsupported quantity value type")
	}
}

// CanonicalSchema returns the declared (type, order) for the built-in
// quantity ids, used by Store.Insert to validate callers against the
// spec's fixed schema (e.g. Position is always a second-order Vector).
func CanonicalSchema(id Id) (ValueType, Order, bool) {
	schema, ok := canonicalSchema[id]
	if !ok {
		return 0, 0, false
	}
	return schema.kind, schema.order, true
}

type schemaEntry struct {
	kind  ValueType
	order Order
}

var canonicalSchema = map[Id]schemaEntry{
	Position:           {TVector, Second},
	Mass:               {TFloat, Zero},
	Density:            {TFloat, First},
	Energy:             {TFloat, First},
	Pressure:           {TFloat, Zero},
	SoundSpeed:         {TFloat, Zero},
	Stress:             {TTracelessTensor, First},
	Damage:             {TFloat, First},
	VelocityDivergence: {TFloat, Zero},
	VelocityGradient:   {TSymmetricTensor, Zero},
	Flag:               {TSize, Zero},
	NeighbourCount:     {TSize, Zero},
}
