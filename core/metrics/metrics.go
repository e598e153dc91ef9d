package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "accesscore"

// Gate decisions.
const (
	GateForwarded = "forwarded"
	GatePassed    = "passed"
	GateRejected  = "rejected"
	GateSkipped   = "skipped"
)

// Guard outcomes shared by session and permission guards.
const (
	OutcomeAllowed     = "allowed"
	OutcomeDenied      = "denied"
	OutcomeUnavailable = "unavailable"
)

// Collector owns the access-control metrics and their registry.
// A nil *Collector is valid and records nothing.
type Collector struct {
	registry        *prometheus.Registry
	gateDecisions   *prometheus.CounterVec
	sessionResolves *prometheus.CounterVec
	resolveDuration prometheus.Histogram
	permChecks      *prometheus.CounterVec
}

// New creates a collector on a fresh registry. withRuntime adds the Go and
// process collectors.
func New(withRuntime bool) *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		gateDecisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "gate",
			Name:      "decisions_total",
			Help:      "Request gate decisions by outcome.",
		}, []string{"decision"}),
		sessionResolves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "session",
			Name:      "resolutions_total",
			Help:      "Session resolutions by outcome.",
		}, []string{"outcome"}),
		resolveDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "session",
			Name:      "resolve_duration_seconds",
			Help:      "Latency of session store lookups.",
			Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1, 2},
		}),
		permChecks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "rbac",
			Name:      "checks_total",
			Help:      "Permission checks by outcome.",
		}, []string{"outcome"}),
	}

	c.registry.MustRegister(c.gateDecisions, c.sessionResolves, c.resolveDuration, c.permChecks)
	if withRuntime {
		c.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	return c
}

// GateDecision counts one gate decision.
func (c *Collector) GateDecision(decision string) {
	if c == nil {
		return
	}
	c.gateDecisions.WithLabelValues(decision).Inc()
}

// SessionResolved counts one session resolution. Latency is recorded only
// when a store lookup happened (took > 0).
func (c *Collector) SessionResolved(outcome string, took time.Duration) {
	if c == nil {
		return
	}
	c.sessionResolves.WithLabelValues(outcome).Inc()
	if took > 0 {
		c.resolveDuration.Observe(took.Seconds())
	}
}

// PermissionChecked counts one permission check.
func (c *Collector) PermissionChecked(outcome string) {
	if c == nil {
		return
	}
	c.permChecks.WithLabelValues(outcome).Inc()
}

// Registry exposes the underlying registry for tests and extra collectors.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
