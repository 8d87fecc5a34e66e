// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sph

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/cpmech/gosph/stats"
)

// profiler records per-phase wallclock for one solver pass and flushes
// it into the statistics record, with an optional structured trace.
type profiler struct {
	log    *logrus.Logger
	phases map[stats.Key]time.Duration
}

func newProfiler(log *logrus.Logger) *profiler {
	return &profiler{log: log, phases: make(map[stats.Key]time.Duration)}
}

// measure runs body and charges its wallclock to key.
func (p *profiler) measure(key stats.Key, body func() error) error {
	start := time.Now()
	err := body()
	p.phases[key] += time.Since(start)
	return err
}

// flush writes the recorded phases into st and resets them.
func (p *profiler) flush(st *stats.Stats) {
	for key, d := range p.phases {
		if st != nil {
			st.Set(key, d.Seconds())
		}
		if p.log != nil {
			p.log.WithFields(logrus.Fields{"phase": string(key), "seconds": d.Seconds()}).Debug("solver phase")
		}
		delete(p.phases, key)
	}
}
