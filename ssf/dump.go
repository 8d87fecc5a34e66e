// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ssf

import (
	"bufio"
	"encoding/binary"
	"io"
	"os"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/gosph/qty"
	"github.com/cpmech/gosph/tensor"
)

// Dump writes store to path in the .ssf format.
func Dump(path string, store *qty.Store, ov Overrides) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	if err := write(w, store, ov); err != nil {
		return err
	}
	return w.Flush()
}

func write(w io.Writer, store *qty.Store, ov Overrides) error {
	if _, err := w.Write(magicSsf[:]); err != nil {
		return err
	}
	le := binary.LittleEndian
	if err := binary.Write(w, le, Version); err != nil {
		return err
	}
	if err := binary.Write(w, le, uint32(ov.RunType)); err != nil {
		return err
	}
	if _, err := w.Write(ov.RunId[:]); err != nil {
		return err
	}
	if err := binary.Write(w, le, ov.Time); err != nil {
		return err
	}
	if err := binary.Write(w, le, ov.Timestep); err != nil {
		return err
	}
	if err := binary.Write(w, le, uint32(store.ParticleCount())); err != nil {
		return err
	}

	parts := store.Partitions()
	if err := binary.Write(w, le, uint32(len(parts))); err != nil {
		return err
	}
	for _, p := range parts {
		if err := binary.Write(w, le, uint32(p.Begin)); err != nil {
			return err
		}
		if err := binary.Write(w, le, uint32(p.End)); err != nil {
			return err
		}
	}

	ids := store.Ids()
	var descs []descriptor
	store.EachColumn(func(id qty.Id, kind qty.ValueType, order qty.Order) {
		descs = append(descs, descriptor{Tag: int32(id), Kind: int32(kind), Order: int32(order)})
	})
	if err := binary.Write(w, le, uint32(len(descs))); err != nil {
		return err
	}
	for _, d := range descs {
		if err := binary.Write(w, le, d); err != nil {
			return err
		}
	}

	for k, id := range ids {
		d := descs[k]
		for slot := qty.Zero; slot <= qty.Order(d.Order); slot++ {
			if err := writeBuffer(w, store, id, qty.ValueType(d.Kind), slot); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeBuffer(w io.Writer, store *qty.Store, id qty.Id, kind qty.ValueType, slot qty.Order) error {
	le := binary.LittleEndian
	switch kind {
	case qty.TFloat:
		v, err := getSlot[float64](store, id, slot)
		if err != nil {
			return err
		}
		return binary.Write(w, le, v)
	case qty.TVector:
		v, err := getSlot[tensor.Vector4](store, id, slot)
		if err != nil {
			return err
		}
		for _, e := range v {
			if err := binary.Write(w, le, [4]float64{e.Spatial[0], e.Spatial[1], e.Spatial[2], e.H}); err != nil {
				return err
			}
		}
		return nil
	case qty.TSymmetricTensor:
		v, err := getSlot[tensor.SymmetricTensor](store, id, slot)
		if err != nil {
			return err
		}
		for _, e := range v {
			if err := binary.Write(w, le, e.M); err != nil {
				return err
			}
		}
		return nil
	case qty.TTracelessTensor:
		v, err := getSlot[tensor.TracelessTensor](store, id, slot)
		if err != nil {
			return err
		}
		for _, e := range v {
			if err := binary.Write(w, le, e.M); err != nil {
				return err
			}
		}
		return nil
	case qty.TSize:
		v, err := getSlot[uint64](store, id, slot)
		if err != nil {
			return err
		}
		for _, e := range v {
			if err := binary.Write(w, le, uint32(e)); err != nil {
				return err
			}
		}
		return nil
	}
	return chk.Err("ssf: cannot serialize quantity %v: unknown value type", id)
}

func getSlot[T any](store *qty.Store, id qty.Id, slot qty.Order) ([]T, error) {
	switch slot {
	case qty.Zero:
		return qty.GetValue[T](store, id)
	case qty.First:
		return qty.GetDt[T](store, id)
	default:
		return qty.GetD2t[T](store, id)
	}
}
