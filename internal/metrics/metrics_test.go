package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_RecordAuth(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordAuth(OpSignin, OutcomeSuccess)
	c.RecordAuth(OpSignin, OutcomeSuccess)
	c.RecordAuth(OpSignin, "INVALID_CREDENTIALS")

	assert.InDelta(t, 2, testutil.ToFloat64(c.authOutcomes.WithLabelValues(OpSignin, OutcomeSuccess)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(c.authOutcomes.WithLabelValues(OpSignin, "INVALID_CREDENTIALS")), 0)
	assert.Equal(t, 2, testutil.CollectAndCount(c.authOutcomes))
}

func TestCollector_RecordGate(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordGate(GateMissing)
	c.RecordGate(GateInvalid)
	c.RecordGate(GatePassed)
	c.RecordGate(GatePassed)

	expected := `
# HELP taskboard_session_gate_total Session gate decisions.
# TYPE taskboard_session_gate_total counter
taskboard_session_gate_total{result="invalid"} 1
taskboard_session_gate_total{result="missing"} 1
taskboard_session_gate_total{result="passed"} 2
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "taskboard_session_gate_total"))
}

func TestCollector_RecordRequest(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordRequest(http.MethodPost, "/signin", http.StatusOK, 15*time.Millisecond)

	assert.Equal(t, 1, testutil.CollectAndCount(c.requestDuration))
}

func TestHandler_ServesMetrics(t *testing.T) {
	reg := NewRegistry()
	c := NewCollector(reg)
	c.RecordAuth(OpSignup, OutcomeSuccess)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, req)

	resp := rec.Result()
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `taskboard_auth_outcomes_total{operation="signup",outcome="success"} 1`)
	assert.Contains(t, string(body), "go_goroutines")
}
