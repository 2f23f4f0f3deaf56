// Package metrics exposes Prometheus collectors for HTTP traffic and the
// extraction and resolution pipelines.
package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "examlens_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "examlens_http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 15, 60},
		},
		[]string{"method", "endpoint"},
	)

	ExtractionOutcomes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "examlens_extractions_total",
			Help: "Extraction requests by outcome",
		},
		[]string{"outcome"},
	)

	ModelCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "examlens_model_calls_total",
			Help: "Model calls by purpose and outcome",
		},
		[]string{"purpose", "outcome"},
	)

	ModelDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "examlens_model_call_duration_seconds",
			Help:    "Latency of model calls",
			Buckets: []float64{0.5, 1, 2, 5, 10, 30, 60, 120},
		},
		[]string{"purpose"},
	)

	ResolutionParseStage = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "examlens_resolution_parse_stage_total",
			Help: "Which letter-parser stage handled each resolution batch",
		},
		[]string{"stage"},
	)

	ArchiveFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "examlens_archive_failures_total",
			Help: "Best-effort PDF archive writes that failed",
		},
	)
)

var once sync.Once

// Init registers every collector with the default registry. Safe to call
// more than once.
func Init() {
	once.Do(func() {
		prometheus.MustRegister(
			RequestCounter,
			RequestDuration,
			ExtractionOutcomes,
			ModelCalls,
			ModelDuration,
			ResolutionParseStage,
			ArchiveFailures,
		)
	})
}

// ObserveModelCall records one model round trip.
func ObserveModelCall(purpose string, start time.Time, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	ModelCalls.WithLabelValues(purpose, outcome).Inc()
	ModelDuration.WithLabelValues(purpose).Observe(time.Since(start).Seconds())
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}
		RequestCounter.WithLabelValues(
			c.Request.Method,
			endpoint,
			strconv.Itoa(c.Writer.Status()),
		).Inc()
		RequestDuration.WithLabelValues(c.Request.Method, endpoint).Observe(time.Since(start).Seconds())
	}
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
