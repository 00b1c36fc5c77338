package monitoring

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups the collectors exported by the dashboard server.
type Metrics struct {
	FetchCounter    *prometheus.CounterVec
	FetchDuration   prometheus.Histogram
	RequestCounter  *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	gatherer prometheus.Gatherer
}

// New creates the collectors and registers them on reg. Passing a fresh
// prometheus.NewRegistry() keeps tests independent of the global registry.
func New(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		FetchCounter: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dashboard_fetch_total",
				Help: "Dashboard loads by outcome",
			},
			[]string{"outcome"},
		),
		FetchDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "dashboard_fetch_duration_seconds",
				Help:    "Duration of dashboard loads",
				Buckets: []float64{0.05, 0.1, 0.5, 1, 2, 5, 15},
			},
		),
		RequestCounter: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests",
				Buckets: []float64{0.1, 0.5, 1, 2, 5},
			},
			[]string{"method", "endpoint"},
		),
		gatherer: reg,
	}

	reg.MustRegister(m.FetchCounter, m.FetchDuration, m.RequestCounter, m.RequestDuration)
	return m
}

// ObserveFetch records one completed dashboard load.
func (m *Metrics) ObserveFetch(outcome string, duration time.Duration) {
	m.FetchCounter.WithLabelValues(outcome).Inc()
	m.FetchDuration.Observe(duration.Seconds())
}

// MetricsMiddleware records count and latency for every routed request.
func (m *Metrics) MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}

		m.RequestCounter.WithLabelValues(
			c.Request.Method,
			endpoint,
			strconv.Itoa(c.Writer.Status()),
		).Inc()

		m.RequestDuration.WithLabelValues(
			c.Request.Method,
			endpoint,
		).Observe(time.Since(start).Seconds())
	}
}

// PrometheusHandler exposes the registry in the text exposition format.
func (m *Metrics) PrometheusHandler() gin.HandlerFunc {
	h := promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
