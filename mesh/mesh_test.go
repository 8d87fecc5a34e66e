// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tetra() *Mesh {
	return &Mesh{
		Vertices: []mgl64.Vec3{
			{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, 0, 1},
		},
		Faces: [][3]int{
			{0, 1, 2}, {0, 1, 3}, {0, 2, 3}, {1, 2, 3},
		},
	}
}

func TestPly_RoundTripAndHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "t.ply")
	require.NoError(t, WritePly(path, tetra()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	for _, want := range []string{
		"ply", "format ascii 1.0", "element vertex 4",
		"property float x", "element face 4",
		"property list int int vertex_index", "end_header",
	} {
		assert.Contains(t, text, want)
	}

	m, err := ReadPly(path)
	require.NoError(t, err)
	assert.Equal(t, tetra(), m)
}

func TestTab_RoundTripOneBased(t *testing.T) {
	path := filepath.Join(t.TempDir(), "t.tab")
	require.NoError(t, WriteTab(path, tetra()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Equal(t, "4 4", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "1 "))
	assert.Equal(t, "1 1 2 3", lines[5]) // first triangle, 1-based

	m, err := ReadTab(path)
	require.NoError(t, err)
	assert.Equal(t, tetra(), m)
}

func TestObj_RoundTripOneBased(t *testing.T) {
	path := filepath.Join(t.TempDir(), "t.obj")
	require.NoError(t, WriteObj(path, tetra()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "v 0 0 0\n")
	assert.Contains(t, string(data), "f 1 2 3\n")

	m, err := ReadObj(path)
	require.NoError(t, err)
	assert.Equal(t, tetra(), m)
}

func TestValidate_RejectsOutOfRangeFace(t *testing.T) {
	m := tetra()
	m.Faces = append(m.Faces, [3]int{0, 1, 99})
	assert.Error(t, m.Validate())
	path := filepath.Join(t.TempDir(), "bad.ply")
	assert.Error(t, WritePly(path, m))
}

func TestReadPly_RejectsMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.ply")
	require.NoError(t, os.WriteFile(path, []byte("not a ply\n"), 0644))
	_, err := ReadPly(path)
	assert.Error(t, err)
}
