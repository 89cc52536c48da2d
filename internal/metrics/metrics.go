// Package metrics exposes Prometheus counters for the auth flows and the session gate.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Auth operations.
const (
	OpSignup       = "signup"
	OpSignin       = "signin"
	OpGoogleSignin = "google"
	OpLogout       = "logout"
)

// Session gate results.
const (
	GateMissing = "missing"
	GateInvalid = "invalid"
	GatePassed  = "passed"
)

// OutcomeSuccess labels a completed auth operation. Failures are labelled with their error code.
const OutcomeSuccess = "success"

// Recorder is what the delivery layer reports into.
type Recorder interface {
	RecordAuth(operation, outcome string)
	RecordGate(result string)
	RecordRequest(method, route string, status int, duration time.Duration)
}

// Collector is the Prometheus-backed Recorder.
type Collector struct {
	authOutcomes    *prometheus.CounterVec
	gateResults     *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// NewRegistry returns a registry carrying the Go runtime and process collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return reg
}

// NewCollector creates the collector and registers it on reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		authOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "taskboard_auth_outcomes_total",
			Help: "Auth operations by outcome.",
		}, []string{"operation", "outcome"}),
		gateResults: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "taskboard_session_gate_total",
			Help: "Session gate decisions.",
		}, []string{"result"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "taskboard_http_request_duration_seconds",
			Help:    "HTTP request latency by route and status.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}

	reg.MustRegister(c.authOutcomes, c.gateResults, c.requestDuration)

	return c
}

func (c *Collector) RecordAuth(operation, outcome string) {
	c.authOutcomes.WithLabelValues(operation, outcome).Inc()
}

func (c *Collector) RecordGate(result string) {
	c.gateResults.WithLabelValues(result).Inc()
}

func (c *Collector) RecordRequest(method, route string, status int, duration time.Duration) {
	c.requestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(duration.Seconds())
}

// Handler returns the scrape handler for gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
