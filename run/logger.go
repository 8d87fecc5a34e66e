// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package run

import (
	"os"

	"github.com/gocarina/gocsv"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/cpmech/gosph/qty"
	"github.com/cpmech/gosph/stats"
)

// NewLogger returns the run's single-writer structured logger, stamped
// with a fresh run id so interleaved logs from repeated runs stay
// separable.
func NewLogger(level logrus.Level) (*logrus.Logger, uuid.UUID) {
	log := logrus.New()
	log.SetLevel(level)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return log, uuid.New()
}

// LogWriter records one row per step from the store and statistics.
type LogWriter interface {
	Write(store *qty.Store, st *stats.Stats) error
	Close() error
}

// statsRow is the CSV schema of the per-step diagnostics log.
type statsRow struct {
	Step          int     `csv:"step"`
	Time          float64 `csv:"time"`
	Wallclock     float64 `csv:"wallclock"`
	Timestep      float64 `csv:"dt"`
	Criterion     string  `csv:"dt_criterion"`
	Particles     int     `csv:"particles"`
	NeighbourMin  int     `csv:"neigh_min"`
	NeighbourMax  int     `csv:"neigh_max"`
	NeighbourMean float64 `csv:"neigh_mean"`
	Progress      float64 `csv:"progress"`
}

// CsvLogWriter appends one statsRow per step and writes the whole table
// on Close.
type CsvLogWriter struct {
	Path string
	rows []*statsRow
}

// NewCsvLogWriter returns a CsvLogWriter targeting path.
func NewCsvLogWriter(path string) *CsvLogWriter {
	return &CsvLogWriter{Path: path}
}

// Write records the current step.
func (w *CsvLogWriter) Write(store *qty.Store, st *stats.Stats) error {
	w.rows = append(w.rows, &statsRow{
		Step:          st.GetInt(stats.StepIndex, 0),
		Time:          st.GetFloat(stats.RunTime, 0),
		Wallclock:     st.GetFloat(stats.WallclockTime, 0),
		Timestep:      st.GetFloat(stats.Timestep, 0),
		Criterion:     st.GetString(stats.TimestepCriterion, ""),
		Particles:     store.ParticleCount(),
		NeighbourMin:  st.GetInt(stats.NeighbourMin, 0),
		NeighbourMax:  st.GetInt(stats.NeighbourMax, 0),
		NeighbourMean: st.GetFloat(stats.NeighbourMean, 0),
		Progress:      st.GetFloat(stats.Progress, 0),
	})
	return nil
}

// Close writes the accumulated table to Path.
func (w *CsvLogWriter) Close() error {
	f, err := os.Create(w.Path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gocsv.MarshalFile(&w.rows, f)
}

// NullLogWriter discards every row.
type NullLogWriter struct{}

// Write discards the row.
func (NullLogWriter) Write(store *qty.Store, st *stats.Stats) error { return nil }

// Close is a no-op.
func (NullLogWriter) Close() error { return nil }
