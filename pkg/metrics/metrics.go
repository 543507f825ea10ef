// Package metrics provides Prometheus instrumentation for the Bistro API.
//
// Wire it up once in internal/server:
//
//	r.Use(metrics.Middleware())
//	r.Get("/metrics", "metrics", metrics.Handler())
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "bistro"

func opts(subsystem, name, help string) prometheus.Opts {
	return prometheus.Opts{Namespace: namespace, Subsystem: subsystem, Name: name, Help: help}
}

var (
	// RequestDuration tracks how long each HTTP request takes,
	// broken down by method, route path, and status code.
	RequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "Duration of HTTP requests in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	// RequestTotal counts all HTTP requests.
	RequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts(opts("http", "requests_total", "Total number of HTTP requests.")),
		[]string{"method", "path", "status"},
	)

	// RequestInFlight tracks how many requests are currently being served.
	RequestInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts(opts("http", "requests_in_flight", "Number of HTTP requests currently being served.")),
	)

	// PaymentIntents counts payment-intent handshakes by outcome,
	// labelled "ok" or "error".
	PaymentIntents = prometheus.NewCounterVec(
		prometheus.CounterOpts(opts("payments", "intents_total", "Total payment intents requested from the processor.")),
		[]string{"status"},
	)

	// PaymentsSettled counts recorded settlements.
	PaymentsSettled = prometheus.NewCounter(
		prometheus.CounterOpts(opts("payments", "settled_total", "Total payments recorded.")),
	)

	// CacheHits and CacheMisses track menu cache effectiveness.
	CacheHits = prometheus.NewCounter(
		prometheus.CounterOpts(opts("cache", "hits_total", "Total cache hits.")),
	)
	CacheMisses = prometheus.NewCounter(
		prometheus.CounterOpts(opts("cache", "misses_total", "Total cache misses.")),
	)
)

// DefaultRegistry is the Prometheus registry used by the API.
var DefaultRegistry = prometheus.NewRegistry()

func init() {
	DefaultRegistry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		RequestDuration,
		RequestTotal,
		RequestInFlight,
		PaymentIntents,
		PaymentsSettled,
		CacheHits,
		CacheMisses,
	)
}

// statusWriter captures the response status for labelling.
type statusWriter struct {
	http.ResponseWriter
	code int
}

func (w *statusWriter) WriteHeader(code int) {
	w.code = code
	w.ResponseWriter.WriteHeader(code)
}

// Middleware records the duration histogram, the request counter, and the
// in-flight gauge for every request.
func Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			RequestInFlight.Inc()
			defer RequestInFlight.Dec()

			sw := &statusWriter{ResponseWriter: w, code: http.StatusOK}
			start := time.Now()
			next.ServeHTTP(sw, r)

			labels := []string{r.Method, r.URL.Path, strconv.Itoa(sw.code)}
			RequestDuration.WithLabelValues(labels...).Observe(time.Since(start).Seconds())
			RequestTotal.WithLabelValues(labels...).Inc()
		})
	}
}

// Handler exposes the Prometheus scrape page for DefaultRegistry.
func Handler() http.HandlerFunc {
	return promhttp.HandlerFor(DefaultRegistry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	}).ServeHTTP
}
