// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config implements the plain-text configuration contract: the
// per-phase .cnf key/value files written to the output directory on
// first run and read back on re-run, plus the output filename masks.
package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/cpmech/gosl/chk"
)

// Kind types a .cnf value.
type Kind int

// Supported value kinds.
const (
	Bool Kind = iota
	Int
	Float
	String
)

// Entry is one row of a file's identifier table: the key, its type and
// its default.
type Entry struct {
	Key     string
	Kind    Kind
	Default any
}

// Table is the identifier table of one .cnf file: the full enumeration
// of keys it may carry.
type Table []Entry

// Values holds the typed values of one parsed or to-be-written file.
type Values map[string]any

// The fixed per-phase file names.
const (
	TargetFile   = "target.cnf"
	ImpactorFile = "impactor.cnf"
	StabFile     = "stab.cnf"
	GeometryFile = "geometry.cnf"
	FragFile     = "frag.cnf"
	ReacFile     = "reac.cnf"
)

// PhaseFiles lists every per-phase configuration file, in pipeline
// order.
var PhaseFiles = []string{TargetFile, ImpactorFile, StabFile, GeometryFile, FragFile, ReacFile}

// Defaults returns a Values populated with every table default.
func (t Table) Defaults() Values {
	out := make(Values, len(t))
	for _, e := range t {
		out[e.Key] = e.Default
	}
	return out
}

func (t Table) find(key string) (Entry, bool) {
	for _, e := range t {
		if e.Key == key {
			return e, true
		}
	}
	return Entry{}, false
}

// Write emits values as a flat key = value file, keys sorted, so
// re-runs diff cleanly.
func Write(path string, table Table, values Values) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "# %s\n", filepath.Base(path))
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		e, ok := table.find(k)
		if !ok {
			return chk.Err("config: key %q is not in the identifier table of %s", k, filepath.Base(path))
		}
		s, err := formatValue(e.Kind, values[k])
		if err != nil {
			return chk.Err("config: %s: %v", k, err)
		}
		fmt.Fprintf(w, "%s = %s\n", k, s)
	}
	return w.Flush()
}

// Read parses a .cnf file against its identifier table. Keys absent
// from the file fall back to their defaults; unknown keys are an error.
func Read(path string, table Table) (Values, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	values := table.Defaults()
	sc := bufio.NewScanner(f)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		eq := strings.Index(text, "=")
		if eq < 0 {
			return nil, chk.Err("config: %s:%d: missing '='", path, line)
		}
		key := strings.TrimSpace(text[:eq])
		raw := strings.TrimSpace(text[eq+1:])
		e, ok := table.find(key)
		if !ok {
			return nil, chk.Err("config: %s:%d: unknown key %q", path, line, key)
		}
		v, err := parseValue(e.Kind, raw)
		if err != nil {
			return nil, chk.Err("config: %s:%d: %v", path, line, err)
		}
		values[key] = v
	}
	return values, sc.Err()
}

// Ensure loads path if it exists; otherwise it writes the defaults and
// reports created=true, the signal the caller turns into a dry run.
func Ensure(path string, table Table) (values Values, created bool, err error) {
	if _, serr := os.Stat(path); serr == nil {
		v, err := Read(path, table)
		return v, false, err
	} else if !os.IsNotExist(serr) {
		return nil, false, serr
	}
	defaults := table.Defaults()
	if err := Write(path, table, defaults); err != nil {
		return nil, false, err
	}
	return defaults, true, nil
}

func formatValue(kind Kind, v any) (string, error) {
	switch kind {
	case Bool:
		b, ok := v.(bool)
		if !ok {
			return "", fmt.Errorf("expected bool, have %T", v)
		}
		return strconv.FormatBool(b), nil
	case Int:
		i, ok := v.(int)
		if !ok {
			return "", fmt.Errorf("expected int, have %T", v)
		}
		return strconv.Itoa(i), nil
	case Float:
		f, ok := v.(float64)
		if !ok {
			return "", fmt.Errorf("expected float, have %T", v)
		}
		return strconv.FormatFloat(f, 'g', -1, 64), nil
	case String:
		s, ok := v.(string)
		if !ok {
			return "", fmt.Errorf("expected string, have %T", v)
		}
		return s, nil
	}
	return "", fmt.Errorf("unknown kind %d", kind)
}

func parseValue(kind Kind, raw string) (any, error) {
	switch kind {
	case Bool:
		return strconv.ParseBool(raw)
	case Int:
		return strconv.Atoi(raw)
	case Float:
		return strconv.ParseFloat(raw, 64)
	case String:
		return raw, nil
	}
	return nil, fmt.Errorf("unknown kind %d", kind)
}

// GetFloat returns the float value under key.
func (v Values) GetFloat(key string) float64 {
	f, _ := v[key].(float64)
	return f
}

// GetInt returns the int value under key.
func (v Values) GetInt(key string) int {
	i, _ := v[key].(int)
	return i
}

// GetBool returns the bool value under key.
func (v Values) GetBool(key string) bool {
	b, _ := v[key].(bool)
	return b
}

// GetString returns the string value under key.
func (v Values) GetString(key string) string {
	s, _ := v[key].(string)
	return s
}
