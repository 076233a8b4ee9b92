// Package metrics exposes Prometheus instrumentation for the rotation
// engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Collector holds the engine's Prometheus metrics. Register it once on
// a registry and share the instance.
type Collector struct {
	TimelineBuilds        prometheus.Counter
	TimelineBuildDuration prometheus.Histogram
	CacheRefreshes        prometheus.Counter
	CachedAssignments     prometheus.Gauge
	EventsCreated         prometheus.Counter
	PhasesCreated         prometheus.Counter
}

// NewCollector creates the metric set and registers it with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		TimelineBuilds: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "movieclub_timeline_builds_total",
			Help: "Number of timeline assemblies performed",
		}),
		TimelineBuildDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "movieclub_timeline_build_duration_seconds",
			Help:    "Time spent assembling the timeline",
			Buckets: prometheus.DefBuckets,
		}),
		CacheRefreshes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "movieclub_cache_refreshes_total",
			Help: "Number of rotation cache rebuilds",
		}),
		CachedAssignments: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "movieclub_cached_assignments",
			Help: "Months currently held in the rotation cache",
		}),
		EventsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "movieclub_events_created_total",
			Help: "Confirmed events created from cache assignments",
		}),
		PhasesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "movieclub_phases_created_total",
			Help: "Phase records lazily persisted",
		}),
	}

	reg.MustRegister(
		c.TimelineBuilds,
		c.TimelineBuildDuration,
		c.CacheRefreshes,
		c.CachedAssignments,
		c.EventsCreated,
		c.PhasesCreated,
	)

	return c
}

// NewNopCollector creates an unregistered metric set for tests.
func NewNopCollector() *Collector {
	return NewCollector(prometheus.NewRegistry())
}
