// Package metrics exposes Prometheus collectors for the extraction tool.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	statusQueriesTotal *prometheus.CounterVec
	runsTotal          *prometheus.CounterVec
	sinkWritesTotal    *prometheus.CounterVec
	pollAttempts       prometheus.Histogram

	once sync.Once
)

// Init initializes the Prometheus metrics collectors.
// It is safe to call this function multiple times.
func Init() {
	once.Do(func() {
		statusQueriesTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "firecrawl_status_queries_total",
				Help: "Total number of job status queries, labeled by result.",
			},
			[]string{"result"},
		)

		runsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "firecrawl_runs_total",
				Help: "Total number of extraction runs, labeled by outcome.",
			},
			[]string{"outcome"},
		)

		sinkWritesTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "firecrawl_sink_writes_total",
				Help: "Total number of record writes, labeled by backend and result.",
			},
			[]string{"backend", "result"},
		)

		pollAttempts = promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "firecrawl_poll_attempts",
				Help:    "Histogram of status queries needed per polling session.",
				Buckets: []float64{1, 2, 5, 10, 20, 30},
			},
		)
	})
}

// Handler returns an http.Handler for exposing Prometheus metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveStatusQuery increments the status query counter for the given result.
func ObserveStatusQuery(result string) {
	statusQueriesTotal.WithLabelValues(result).Inc()
}

// ObserveRun increments the run counter for the given outcome.
func ObserveRun(outcome string) {
	runsTotal.WithLabelValues(outcome).Inc()
}

// ObserveSinkWrite increments the sink write counter.
func ObserveSinkWrite(backend, result string) {
	sinkWritesTotal.WithLabelValues(backend, result).Inc()
}

// ObservePollAttempts records how many status queries a polling session used.
func ObservePollAttempts(attempts int) {
	pollAttempts.Observe(float64(attempts))
}
