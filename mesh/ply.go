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

// WritePly writes m as ASCII PLY 1.0.
func WritePly(path string, m *Mesh) error {
	if err := m.Validate(); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	fmt.Fprintln(w, "ply")
	fmt.Fprintln(w, "format ascii 1.0")
	fmt.Fprintf(w, "element vertex %d\n", len(m.Vertices))
	fmt.Fprintln(w, "property float x")
	fmt.Fprintln(w, "property float y")
	fmt.Fprintln(w, "property float z")
	fmt.Fprintf(w, "element face %d\n", len(m.Faces))
	fmt.Fprintln(w, "property list int int vertex_index")
	fmt.Fprintln(w, "end_header")
	for _, v := range m.Vertices {
		fmt.Fprintf(w, "%g %g %g\n", v[0], v[1], v[2])
	}
	for _, face := range m.Faces {
		fmt.Fprintf(w, "3 %d %d %d\n", face[0], face[1], face[2])
	}
	return w.Flush()
}

// ReadPly parses an ASCII PLY file carrying the vertex/face layout
// WritePly emits.
func ReadPly(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	sc := bufio.NewScanner(f)

	if !sc.Scan() || strings.TrimSpace(sc.Text()) != "ply" {
		return nil, chk.Err("ply: %s: missing 'ply' magic", path)
	}
	nVerts, nFaces := -1, -1
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "format":
			if len(fields) < 3 || fields[1] != "ascii" {
				return nil, chk.Err("ply: %s: only 'format ascii 1.0' is supported", path)
			}
		case "element":
			if len(fields) != 3 {
				return nil, chk.Err("ply: %s: malformed element line", path)
			}
			n, err := strconv.Atoi(fields[2])
			if err != nil {
				return nil, chk.Err("ply: %s: bad element count %q", path, fields[2])
			}
			switch fields[1] {
			case "vertex":
				nVerts = n
			case "face":
				nFaces = n
			}
		case "end_header":
			goto body
		}
	}
	return nil, chk.Err("ply: %s: missing end_header", path)

body:
	if nVerts < 0 || nFaces < 0 {
		return nil, chk.Err("ply: %s: header lacks vertex or face element", path)
	}
	m := &Mesh{Vertices: make([]mgl64.Vec3, 0, nVerts), Faces: make([][3]int, 0, nFaces)}
	for i := 0; i < nVerts; i++ {
		if !sc.Scan() {
			return nil, chk.Err("ply: %s: truncated vertex list", path)
		}
		fields := strings.Fields(sc.Text())
		if len(fields) < 3 {
			return nil, chk.Err("ply: %s: vertex %d malformed", path, i)
		}
		var v mgl64.Vec3
		for k := 0; k < 3; k++ {
			v[k], err = strconv.ParseFloat(fields[k], 64)
			if err != nil {
				return nil, chk.Err("ply: %s: vertex %d: %v", path, i, err)
			}
		}
		m.Vertices = append(m.Vertices, v)
	}
	for i := 0; i < nFaces; i++ {
		if !sc.Scan() {
			return nil, chk.Err("ply: %s: truncated face list", path)
		}
		fields := strings.Fields(sc.Text())
		if len(fields) < 4 || fields[0] != "3" {
			return nil, chk.Err("ply: %s: face %d is not a triangle", path, i)
		}
		var face [3]int
		for k := 0; k < 3; k++ {
			face[k], err = strconv.Atoi(fields[k+1])
			if err != nil {
				return nil, chk.Err("ply: %s: face %d: %v", path, i, err)
			}
		}
		m.Faces = append(m.Faces, face)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}
