package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

// Metrics holds the Prometheus metrics for the API.
type Metrics struct {
	registry             *prometheus.Registry
	httpRequestsTotal    *prometheus.CounterVec
	httpRequestDuration  *prometheus.HistogramVec
	httpRequestsInFlight *prometheus.GaugeVec
	importsTotal         *prometheus.CounterVec
}

// NewMetrics creates the metrics in reg, which also backs the /metrics
// endpoint. Passing a fresh registry keeps repeated construction (as in
// tests) from colliding with previously registered collectors.
func NewMetrics(reg *prometheus.Registry) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		registry: reg,
		httpRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "divelog_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status_code"},
		),
		httpRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "divelog_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),
		httpRequestsInFlight: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "divelog_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"method", "endpoint"},
		),
		importsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "divelog_imports_total",
				Help: "Total number of dive dump imports",
			},
			[]string{"family", "status"},
		),
	}
}

// RecordImport records a dive import attempt.
func (m *Metrics) RecordImport(family string, success bool) {
	if family == "" {
		family = "default"
	}
	status := statusSuccess
	if !success {
		status = statusError
	}
	m.importsTotal.WithLabelValues(family, status).Inc()
}

// InstrumentHandler wraps an HTTP handler with request metrics.
func (m *Metrics) InstrumentHandler(method, endpoint string, handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		gauge := m.httpRequestsInFlight.WithLabelValues(method, endpoint)
		gauge.Inc()
		defer gauge.Dec()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		handler(rw, r)

		duration := time.Since(start)
		m.httpRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
		m.httpRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
