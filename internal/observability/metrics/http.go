package metrics

import (
	"bufio"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type HTTPServerMetrics struct {
	registry *prometheus.Registry

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestInFlight prometheus.Gauge

	eligibilityRequestsTotal *prometheus.CounterVec
	eligibilityNoMatchTotal  *prometheus.CounterVec
	eligibleSchemes          *prometheus.HistogramVec
	eligibilityDuration      *prometheus.HistogramVec
	advisoryRequestsTotal    *prometheus.CounterVec
}

func NewHTTPServerMetrics(service string) *HTTPServerMetrics {
	registry := prometheus.NewRegistry()

	requestTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "agri",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests processed.",
		},
		[]string{"service", "method", "path", "status"},
	)
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "agri",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "method", "path"},
	)
	requestInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "agri",
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Number of in-flight HTTP requests.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	eligibilityRequestsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "agri",
			Subsystem: "eligibility",
			Name:      "requests_total",
			Help:      "Total successful eligibility match requests.",
		},
		[]string{"service"},
	)
	eligibilityNoMatchTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "agri",
			Subsystem: "eligibility",
			Name:      "no_match_total",
			Help:      "Total eligibility requests where no scheme matched.",
		},
		[]string{"service"},
	)
	eligibleSchemes := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "agri",
			Subsystem: "eligibility",
			Name:      "matched_schemes",
			Help:      "Distribution of matched schemes per eligibility request.",
			Buckets:   []float64{0, 1, 2, 3, 5, 8, 13, 21, 34},
		},
		[]string{"service"},
	)
	eligibilityDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "agri",
			Subsystem: "eligibility",
			Name:      "duration_seconds",
			Help:      "Eligibility match and ranking duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service"},
	)
	advisoryRequestsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "agri",
			Subsystem: "advisory",
			Name:      "requests_total",
			Help:      "Total advisory requests by outcome.",
		},
		[]string{"service", "status"},
	)

	registry.MustRegister(
		requestTotal,
		requestDuration,
		requestInFlight,
		eligibilityRequestsTotal,
		eligibilityNoMatchTotal,
		eligibleSchemes,
		eligibilityDuration,
		advisoryRequestsTotal,
	)

	return &HTTPServerMetrics{
		registry:                 registry,
		requestTotal:             requestTotal,
		requestDuration:          requestDuration,
		requestInFlight:          requestInFlight,
		eligibilityRequestsTotal: eligibilityRequestsTotal,
		eligibilityNoMatchTotal:  eligibilityNoMatchTotal,
		eligibleSchemes:          eligibleSchemes,
		eligibilityDuration:      eligibilityDuration,
		advisoryRequestsTotal:    advisoryRequestsTotal,
	}
}

func (m *HTTPServerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *HTTPServerMetrics) Middleware(service string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		path := normalizePath(r.URL.Path)
		recorder := &statusRecorder{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		m.requestInFlight.Inc()
		defer m.requestInFlight.Dec()

		next.ServeHTTP(recorder, r)

		m.requestTotal.WithLabelValues(
			service,
			r.Method,
			path,
			strconv.Itoa(recorder.statusCode),
		).Inc()
		m.requestDuration.WithLabelValues(service, r.Method, path).Observe(time.Since(start).Seconds())
	})
}

func normalizePath(path string) string {
	switch {
	case strings.HasPrefix(path, "/v1/imports/"):
		return "/v1/imports/{import_id}"
	default:
		return path
	}
}

func (m *HTTPServerMetrics) RecordEligibilityMatch(service string, matched int, duration time.Duration) {
	m.eligibilityRequestsTotal.WithLabelValues(service).Inc()
	m.eligibleSchemes.WithLabelValues(service).Observe(float64(matched))
	m.eligibilityDuration.WithLabelValues(service).Observe(duration.Seconds())

	if matched == 0 {
		m.eligibilityNoMatchTotal.WithLabelValues(service).Inc()
	}
}

func (m *HTTPServerMetrics) RecordAdvisoryRequest(service, status string) {
	if status == "" {
		status = "unknown"
	}
	m.advisoryRequestsTotal.WithLabelValues(service, status).Inc()
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (w *statusRecorder) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *statusRecorder) Flush() {
	flusher, ok := w.ResponseWriter.(http.Flusher)
	if ok {
		flusher.Flush()
	}
}

func (w *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hijacker, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("response writer does not implement http.Hijacker")
	}
	return hijacker.Hijack()
}

func (w *statusRecorder) Push(target string, opts *http.PushOptions) error {
	pusher, ok := w.ResponseWriter.(http.Pusher)
	if !ok {
		return http.ErrNotSupported
	}
	return pusher.Push(target, opts)
}
