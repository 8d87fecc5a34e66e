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

// WriteObj writes m as Wavefront OBJ: "v x y z" and 1-based "f i j k"
// lines.
func WriteObj(path string, m *Mesh) error {
	if err := m.Validate(); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	for _, v := range m.Vertices {
		fmt.Fprintf(w, "v %g %g %g\n", v[0], v[1], v[2])
	}
	for _, face := range m.Faces {
		fmt.Fprintf(w, "f %d %d %d\n", face[0]+1, face[1]+1, face[2]+1)
	}
	return w.Flush()
}

// ReadObj parses the v/f subset of Wavefront OBJ; other line types are
// skipped.
func ReadObj(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	m := &Mesh{}
	sc := bufio.NewScanner(f)
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				return nil, chk.Err("obj: %s:%d: malformed vertex", path, line)
			}
			var v mgl64.Vec3
			for k := 0; k < 3; k++ {
				v[k], err = strconv.ParseFloat(fields[k+1], 64)
				if err != nil {
					return nil, chk.Err("obj: %s:%d: %v", path, line, err)
				}
			}
			m.Vertices = append(m.Vertices, v)
		case "f":
			if len(fields) < 4 {
				return nil, chk.Err("obj: %s:%d: malformed face", path, line)
			}
			var face [3]int
			for k := 0; k < 3; k++ {
				// tolerate the v/vt/vn syntax by keeping the vertex part
				part := strings.SplitN(fields[k+1], "/", 2)[0]
				idx, err := strconv.Atoi(part)
				if err != nil {
					return nil, chk.Err("obj: %s:%d: %v", path, line, err)
				}
				face[k] = idx - 1
			}
			m.Faces = append(m.Faces, face)
		}
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}
