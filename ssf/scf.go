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

// DumpCompressed writes the lossy .scf dump: per particle, position
// (3x float32), velocity (3x float32) and H (float32).
func DumpCompressed(path string, store *qty.Store) error {
	r, err := qty.GetValue[tensor.Vector4](store, qty.Position)
	if err != nil {
		return err
	}
	v, err := qty.GetDt[tensor.Vector4](store, qty.Position)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	le := binary.LittleEndian
	if _, err := w.Write(magicScf[:]); err != nil {
		return err
	}
	if err := binary.Write(w, le, Version); err != nil {
		return err
	}
	if err := binary.Write(w, le, uint32(len(r))); err != nil {
		return err
	}
	for i := range r {
		rec := [7]float32{
			float32(r[i].Spatial[0]), float32(r[i].Spatial[1]), float32(r[i].Spatial[2]),
			float32(v[i].Spatial[0]), float32(v[i].Spatial[1]), float32(v[i].Spatial[2]),
			float32(r[i].H),
		}
		if err := binary.Write(w, le, rec); err != nil {
			return err
		}
	}
	return w.Flush()
}

// LoadCompressed reads a .scf dump back into a minimal store carrying
// only the Position quantity (value and velocity).
func LoadCompressed(path string) (*qty.Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	r := bufio.NewReader(f)

	var magic [8]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return nil, chk.Err("scf: truncated header: %v", err)
	}
	if !bytes.Equal(magic[:], magicScf[:]) {
		return nil, chk.Err("scf: bad magic %q", magic)
	}
	le := binary.LittleEndian
	var version, count uint32
	if err := binary.Read(r, le, &version); err != nil {
		return nil, err
	}
	if version != Version {
		return nil, chk.Err("scf: unsupported version %d", version)
	}
	if err := binary.Read(r, le, &count); err != nil {
		return nil, err
	}

	pos := make([]tensor.Vector4, count)
	vel := make([]tensor.Vector4, count)
	for i := uint32(0); i < count; i++ {
		var rec [7]float32
		if err := binary.Read(r, le, &rec); err != nil {
			return nil, chk.Err("scf: truncated record %d: %v", i, err)
		}
		pos[i] = tensor.NewVector4(float64(rec[0]), float64(rec[1]), float64(rec[2]), float64(rec[6]))
		vel[i] = tensor.NewVector4(float64(rec[3]), float64(rec[4]), float64(rec[5]), 0)
	}

	store := qty.NewStore()
	if err := qty.Insert(store, qty.Position, qty.Second, pos); err != nil {
		return nil, err
	}
	v, err := qty.GetDt[tensor.Vector4](store, qty.Position)
	if err != nil {
		return nil, err
	}
	copy(v, vel)
	return store, nil
}
