// Package metrics exposes Prometheus counters for the request gate, the
// session guard and permission checks.
//
//	m := metrics.New(true)
//	gate := middleware.Gate(middleware.GateConfig{Metrics: m, ...})
//	r.Handle("/metrics", m.Handler())
//
// Every recording method is a no-op on a nil *Collector, so components take
// an optional collector without branching.
package metrics
