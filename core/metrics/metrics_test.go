package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/accesscore/core/metrics"
)

func TestCollector(t *testing.T) {
	t.Parallel()

	c := metrics.New(false)
	c.GateDecision(metrics.GateRejected)
	c.GateDecision(metrics.GateRejected)
	c.GateDecision(metrics.GateForwarded)
	c.SessionResolved(metrics.OutcomeAllowed, 3*time.Millisecond)
	c.PermissionChecked(metrics.OutcomeDenied)

	expected := `
# HELP accesscore_gate_decisions_total Request gate decisions by outcome.
# TYPE accesscore_gate_decisions_total counter
accesscore_gate_decisions_total{decision="forwarded"} 1
accesscore_gate_decisions_total{decision="rejected"} 2
`
	require.NoError(t, testutil.GatherAndCompare(c.Registry(), strings.NewReader(expected), "accesscore_gate_decisions_total"))
	n, err := testutil.GatherAndCount(c.Registry(), "accesscore_session_resolve_duration_seconds", "accesscore_rbac_checks_total")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestCollector_Nil(t *testing.T) {
	t.Parallel()

	var c *metrics.Collector
	assert.NotPanics(t, func() {
		c.GateDecision(metrics.GatePassed)
		c.SessionResolved(metrics.OutcomeAllowed, time.Millisecond)
		c.PermissionChecked(metrics.OutcomeAllowed)
	})
}

func TestCollector_Handler(t *testing.T) {
	t.Parallel()

	c := metrics.New(true)
	c.PermissionChecked(metrics.OutcomeAllowed)

	w := httptest.NewRecorder()
	c.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `accesscore_rbac_checks_total{outcome="allowed"} 1`)
	assert.Contains(t, w.Body.String(), "go_goroutines")
}
