// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ssf

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"io"
	"os"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/gosph/qty"
	"github.com/cpmech/gosph/tensor"
)

// Load reads a .ssf dump. The load is atomic: either a fully valid
// store and its overrides come back, or an error and no partial state.
func Load(path string) (*qty.Store, Overrides, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Overrides{}, err
	}
	defer f.Close()
	return read(bufio.NewReader(f))
}

func read(r io.Reader) (*qty.Store, Overrides, error) {
	var ov Overrides
	var magic [8]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return nil, ov, chk.Err("ssf: truncated header: %v", err)
	}
	if !bytes.Equal(magic[:], magicSsf[:]) {
		return nil, ov, chk.Err("ssf: bad magic %q", magic)
	}
	le := binary.LittleEndian
	var version uint32
	if err := binary.Read(r, le, &version); err != nil {
		return nil, ov, err
	}
	if version != Version {
		return nil, ov, chk.Err("ssf: unsupported version %d (want %d)", version, Version)
	}
	var runType uint32
	if err := binary.Read(r, le, &runType); err != nil {
		return nil, ov, err
	}
	ov.RunType = RunType(runType)
	if _, err := io.ReadFull(r, ov.RunId[:]); err != nil {
		return nil, ov, err
	}
	if err := binary.Read(r, le, &ov.Time); err != nil {
		return nil, ov, err
	}
	if err := binary.Read(r, le, &ov.Timestep); err != nil {
		return nil, ov, err
	}
	var count uint32
	if err := binary.Read(r, le, &count); err != nil {
		return nil, ov, err
	}

	var partCount uint32
	if err := binary.Read(r, le, &partCount); err != nil {
		return nil, ov, err
	}
	type span struct{ begin, end uint32 }
	parts := make([]span, partCount)
	for i := range parts {
		if err := binary.Read(r, le, &parts[i].begin); err != nil {
			return nil, ov, err
		}
		if err := binary.Read(r, le, &parts[i].end); err != nil {
			return nil, ov, err
		}
	}

	var descCount uint32
	if err := binary.Read(r, le, &descCount); err != nil {
		return nil, ov, err
	}
	descs := make([]descriptor, descCount)
	for i := range descs {
		if err := binary.Read(r, le, &descs[i]); err != nil {
			return nil, ov, err
		}
	}

	store := qty.NewStore()
	n := int(count)
	for _, d := range descs {
		if err := readQuantity(r, store, d, n); err != nil {
			return nil, ov, err
		}
	}
	for i, p := range parts {
		mat := qty.NewMaterial("loaded")
		if int(p.end) > n || p.begin > p.end {
			return nil, ov, chk.Err("ssf: partition %d range [%d,%d) exceeds particle count %d", i, p.begin, p.end, n)
		}
		if err := appendPartition(store, mat, int(p.begin), int(p.end)); err != nil {
			return nil, ov, err
		}
	}
	return store, ov, nil
}

// appendPartition rebuilds a loaded [begin,end) range; the store only
// grows partitions at the tail, which is exactly how the dump ordered
// them.
func appendPartition(store *qty.Store, mat *qty.Material, begin, end int) error {
	if begin != storePartitionEnd(store) {
		return chk.Err("ssf: partition begins at %d, expected %d (gaps are not allowed)", begin, storePartitionEnd(store))
	}
	return store.AppendPartitionRange(mat, begin, end)
}

func storePartitionEnd(store *qty.Store) int {
	parts := store.Partitions()
	if len(parts) == 0 {
		return 0
	}
	return parts[len(parts)-1].End
}

func readQuantity(r io.Reader, store *qty.Store, d descriptor, n int) error {
	id := qty.Id(d.Tag)
	kind := qty.ValueType(d.Kind)
	order := qty.Order(d.Order)
	switch kind {
	case qty.TFloat:
		return readTyped(r, store, id, order, n, readFloats)
	case qty.TVector:
		return readTyped(r, store, id, order, n, readVectors)
	case qty.TSymmetricTensor:
		return readTyped(r, store, id, order, n, readSymmetric)
	case qty.TTracelessTensor:
		return readTyped(r, store, id, order, n, readTraceless)
	case qty.TSize:
		return readTyped(r, store, id, order, n, readSizes)
	}
	return chk.Err("ssf: descriptor for %v has unknown value type %d", id, d.Kind)
}

// readTyped reads the value buffer, inserts the column, then fills the
// derivative slots in place.
func readTyped[T any](r io.Reader, store *qty.Store, id qty.Id, order qty.Order, n int, readBuf func(io.Reader, int) ([]T, error)) error {
	values, err := readBuf(r, n)
	if err != nil {
		return err
	}
	if err := qty.Insert(store, id, order, values); err != nil {
		return err
	}
	if order >= qty.First {
		dt, err := readBuf(r, n)
		if err != nil {
			return err
		}
		dst, err := qty.GetDt[T](store, id)
		if err != nil {
			return err
		}
		copy(dst, dt)
	}
	if order >= qty.Second {
		d2t, err := readBuf(r, n)
		if err != nil {
			return err
		}
		dst, err := qty.GetD2t[T](store, id)
		if err != nil {
			return err
		}
		copy(dst, d2t)
	}
	return nil
}

func readFloats(r io.Reader, n int) ([]float64, error) {
	out := make([]float64, n)
	if err := binary.Read(r, binary.LittleEndian, out); err != nil {
		return nil, chk.Err("ssf: truncated record: %v", err)
	}
	return out, nil
}

func readVectors(r io.Reader, n int) ([]tensor.Vector4, error) {
	raw := make([]float64, 4*n)
	if err := binary.Read(r, binary.LittleEndian, raw); err != nil {
		return nil, chk.Err("ssf: truncated record: %v", err)
	}
	out := make([]tensor.Vector4, n)
	for i := range out {
		out[i] = tensor.NewVector4(raw[4*i], raw[4*i+1], raw[4*i+2], raw[4*i+3])
	}
	return out, nil
}

func readSymmetric(r io.Reader, n int) ([]tensor.SymmetricTensor, error) {
	raw := make([]float64, 6*n)
	if err := binary.Read(r, binary.LittleEndian, raw); err != nil {
		return nil, chk.Err("ssf: truncated record: %v", err)
	}
	out := make([]tensor.SymmetricTensor, n)
	for i := range out {
		var m [6]float64
		copy(m[:], raw[6*i:6*i+6])
		out[i] = tensor.NewSymmetricTensor(m)
	}
	return out, nil
}

func readTraceless(r io.Reader, n int) ([]tensor.TracelessTensor, error) {
	raw := make([]float64, 6*n)
	if err := binary.Read(r, binary.LittleEndian, raw); err != nil {
		return nil, chk.Err("ssf: truncated record: %v", err)
	}
	out := make([]tensor.TracelessTensor, n)
	for i := range out {
		var m [6]float64
		copy(m[:], raw[6*i:6*i+6])
		out[i] = tensor.NewTracelessFromDeviatoric(m)
	}
	return out, nil
}

func readSizes(r io.Reader, n int) ([]uint64, error) {
	raw := make([]uint32, n)
	if err := binary.Read(r, binary.LittleEndian, raw); err != nil {
		return nil, chk.Err("ssf: truncated record: %v", err)
	}
	out := make([]uint64, n)
	for i := range out {
		out[i] = uint64(raw[i])
	}
	return out, nil
}
