// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mesh implements the triangle-mesh file contracts: ASCII PLY,
// the tab vertex/triangle format and Wavefront OBJ, as writers and the
// matching readers.
package mesh

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/cpmech/gosl/chk"
)

// Mesh is an indexed triangle mesh. Faces index Vertices from zero;
// the file formats renumber to their own conventions on write.
type Mesh struct {
	Vertices []mgl64.Vec3
	Faces    [][3]int
}

// Validate checks that every face references a valid vertex.
func (m *Mesh) Validate() error {
	for fi, f := range m.Faces {
		for _, v := range f {
			if v < 0 || v >= len(m.Vertices) {
				return chk.Err("mesh: face %d references vertex %d outside [0,%d)", fi, v, len(m.Vertices))
			}
		}
	}
	return nil
}
