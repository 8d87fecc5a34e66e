// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"path/filepath"

	"github.com/google/uuid"

	"github.com/cpmech/gosph/config"
	"github.com/cpmech/gosph/integrator"
	"github.com/cpmech/gosph/qty"
	"github.com/cpmech/gosph/run"
	"github.com/cpmech/gosph/ssf"
	"github.com/cpmech/gosph/stats"
)

// seriesOutput dumps prefix_####.ssf files with a running index.
type seriesOutput struct {
	dir     string
	mask    config.Mask
	index   int
	runType ssf.RunType
	runId   uuid.UUID
	integ   integrator.Integrator
}

func newSeriesOutput(dir, prefix string, runType ssf.RunType, integ integrator.Integrator) run.Output {
	return &seriesOutput{
		dir:     dir,
		mask:    config.Mask{Prefix: prefix + "_", Digits: 4, Ext: "ssf"},
		runType: runType,
		runId:   uuid.New(),
		integ:   integ,
	}
}

// Dump writes the next file of the series.
func (o *seriesOutput) Dump(store *qty.Store, st *stats.Stats) error {
	path := filepath.Join(o.dir, o.mask.Format(o.index))
	o.index++
	return ssf.Dump(path, store, ssf.Overrides{
		RunType:  o.runType,
		RunId:    o.runId,
		Time:     st.GetFloat(stats.RunTime, 0),
		Timestep: o.integ.Timestep(),
	})
}
