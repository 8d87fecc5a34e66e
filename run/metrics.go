// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package run

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/cpmech/gosph/qty"
	"github.com/cpmech/gosph/stats"
)

// Metrics exports the per-step statistics as Prometheus gauges, fed
// once per step from the driver thread.
type Metrics struct {
	progress   prometheus.Gauge
	timestep   prometheus.Gauge
	particles  prometheus.Gauge
	neighbours prometheus.Gauge
	collisions prometheus.Gauge
}

// NewMetrics registers the gauges on reg (use
// prometheus.DefaultRegisterer for the process-wide one).
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		progress: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "gosph", Name: "run_progress", Help: "Fraction of the run completed.",
		}),
		timestep: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "gosph", Name: "timestep_seconds", Help: "Current timestep.",
		}),
		particles: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "gosph", Name: "particle_count", Help: "Particles in the store.",
		}),
		neighbours: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "gosph", Name: "neighbour_mean", Help: "Mean neighbour count.",
		}),
		collisions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "gosph", Name: "collisions_total", Help: "Collision events so far.",
		}),
	}
	for _, c := range []prometheus.Collector{m.progress, m.timestep, m.particles, m.neighbours, m.collisions} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Update feeds the gauges from the current statistics.
func (m *Metrics) Update(store *qty.Store, st *stats.Stats) {
	m.progress.Set(st.GetFloat(stats.Progress, 0))
	m.timestep.Set(st.GetFloat(stats.Timestep, 0))
	m.particles.Set(float64(store.ParticleCount()))
	m.neighbours.Set(st.GetFloat(stats.NeighbourMean, 0))
	m.collisions.Set(float64(st.GetInt(stats.CollisionCount, 0)))
}
