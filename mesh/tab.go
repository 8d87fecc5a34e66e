// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/go-gl/mathgl/mgl64"
)

// WriteTab writes m in the tab format: a "vertex-count triangle-count"
// header, then an indexed vertex list and triangle list, both 1-based.
func WriteTab(path string, m *Mesh) error {
	if err := m.Validate(); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "%d %d\n", len(m.Vertices), len(m.Faces))
	for i, v := range m.Vertices {
		fmt.Fprintf(w, "%d %g %g %g\n", i+1, v[0], v[1], v[2])
	}
	for i, face := range m.Faces {
		fmt.Fprintf(w, "%d %d %d %d\n", i+1, face[0]+1, face[1]+1, face[2]+1)
	}
	return w.Flush()
}

// ReadTab parses a tab mesh file.
func ReadTab(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	sc := bufio.NewScanner(f)
	if !sc.Scan() {
		return nil, chk.Err("tab: %s: empty file", path)
	}
	header := strings.Fields(sc.Text())
	if len(header) != 2 {
		return nil, chk.Err("tab: %s: header must be 'vertices triangles'", path)
	}
	nVerts, err := strconv.Atoi(header[0])
	if err != nil {
		return nil, chk.Err("tab: %s: bad vertex count: %v", path, err)
	}
	nFaces, err := strconv.Atoi(header[1])
	if err != nil {
		return nil, chk.Err("tab: %s: bad triangle count: %v", path, err)
	}
	m := &Mesh{Vertices: make([]mgl64.Vec3, 0, nVerts), Faces: make([][3]int, 0, nFaces)}
	for i := 0; i < nVerts; i++ {
		if !sc.Scan() {
			return nil, chk.Err("tab: %s: truncated vertex list", path)
		}
		fields := strings.Fields(sc.Text())
		if len(fields) < 4 {
			return nil, chk.Err("tab: %s: vertex %d malformed", path, i+1)
		}
		var v mgl64.Vec3
		for k := 0; k < 3; k++ {
			v[k], err = strconv.ParseFloat(fields[k+1], 64)
			if err != nil {
				return nil, chk.Err("tab: %s: vertex %d: %v", path, i+1, err)
			}
		}
		m.Vertices = append(m.Vertices, v)
	}
	for i := 0; i < nFaces; i++ {
		if !sc.Scan() {
			return nil, chk.Err("tab: %s: truncated triangle list", path)
		}
		fields := strings.Fields(sc.Text())
		if len(fields) < 4 {
			return nil, chk.Err("tab: %s: triangle %d malformed", path, i+1)
		}
		var face [3]int
		for k := 0; k < 3; k++ {
			idx, err := strconv.Atoi(fields[k+1])
			if err != nil {
				return nil, chk.Err("tab: %s: triangle %d: %v", path, i+1, err)
			}
			face[k] = idx - 1
		}
		m.Faces = append(m.Faces, face)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}
