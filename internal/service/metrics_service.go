package service

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation for the HTTP
// surface and the assignment job pipeline.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	jobTotal        *prometheus.CounterVec
	jobDuration     prometheus.Histogram
	lastScore       *prometheus.GaugeVec
}

// NewMetricsService registers core Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	jobTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "optimize_jobs_total",
		Help: "Total number of finished optimize jobs by terminal status",
	}, []string{"status"})

	jobDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "optimize_job_duration_seconds",
		Help:    "Wall time of optimize jobs from start to terminal state",
		Buckets: prometheus.DefBuckets,
	})

	lastScore := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "optimize_last_score",
		Help: "Score of the most recent completed optimize job per solver",
	}, []string{"solver"})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, jobTotal, jobDuration, lastScore, goroutines)

	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	return &MetricsService{
		registry:        registry,
		handler:         handler,
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		jobTotal:        jobTotal,
		jobDuration:     jobDuration,
		lastScore:       lastScore,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records request metrics.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// ObserveJob records a terminal job outcome.
func (m *MetricsService) ObserveJob(status string, solver string, duration time.Duration, score *float64) {
	if m == nil {
		return
	}
	m.jobTotal.WithLabelValues(status).Inc()
	m.jobDuration.Observe(duration.Seconds())
	if score != nil && solver != "" {
		m.lastScore.WithLabelValues(solver).Set(*score)
	}
}
