// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"

	"github.com/cpmech/gosl/chk"
)

// Mask names the files of an output time series: a prefix, a
// zero-padded index and an extension, as in "frag_0042.ssf".
type Mask struct {
	Prefix string
	Digits int
	Ext    string
}

var maskRe = regexp.MustCompile(`^(.*_)(\d+)\.([A-Za-z0-9]+)$`)

// ParseMask recovers the mask and the index from a single series
// filename.
func ParseMask(filename string) (Mask, int, error) {
	base := filepath.Base(filename)
	m := maskRe.FindStringSubmatch(base)
	if m == nil {
		return Mask{}, 0, chk.Err("config: %q does not match the prefix_####.ext mask", filename)
	}
	index, err := strconv.Atoi(m[2])
	if err != nil {
		return Mask{}, 0, err
	}
	return Mask{Prefix: m[1], Digits: len(m[2]), Ext: m[3]}, index, nil
}

// Format returns the filename for index.
func (m Mask) Format(index int) string {
	return fmt.Sprintf("%s%0*d.%s", m.Prefix, m.Digits, index, m.Ext)
}

// Enumerate lists the series files present in dir, sorted by index, and
// returns the matching indices.
func (m Mask) Enumerate(dir string) (files []string, indices []int, err error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, err
	}
	type hit struct {
		name  string
		index int
	}
	var hits []hit
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		got, idx, perr := ParseMask(e.Name())
		if perr != nil || got.Prefix != m.Prefix || got.Ext != m.Ext {
			continue
		}
		hits = append(hits, hit{name: e.Name(), index: idx})
	}
	sort.Slice(hits, func(a, b int) bool { return hits[a].index < hits[b].index })
	for _, h := range hits {
		files = append(files, h.name)
		indices = append(indices, h.index)
	}
	return files, indices, nil
}
