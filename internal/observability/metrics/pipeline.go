package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PipelineMetrics covers the retrieval pipeline: query outcomes, search
// latency and embedding admission waits. A nil receiver is a no-op so
// callers without a registry (tests, the CLI) can pass nothing.
type PipelineMetrics struct {
	registry *prometheus.Registry

	queriesTotal   *prometheus.CounterVec
	queryDuration  *prometheus.HistogramVec
	searchDuration prometheus.Histogram
	embedTotal     *prometheus.CounterVec
	admissionWait  prometheus.Histogram
}

func NewPipelineMetrics(service string) *PipelineMetrics {
	registry := prometheus.NewRegistry()

	queriesTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   "pda",
			Subsystem:   "pipeline",
			Name:        "queries_total",
			Help:        "Total pipeline invocations by outcome.",
			ConstLabels: prometheus.Labels{"service": service},
		},
		[]string{"outcome"},
	)
	queryDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace:   "pda",
			Subsystem:   "pipeline",
			Name:        "query_duration_seconds",
			Help:        "End-to-end free-text query duration by outcome.",
			Buckets:     prometheus.DefBuckets,
			ConstLabels: prometheus.Labels{"service": service},
		},
		[]string{"outcome"},
	)
	searchDuration := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace:   "pda",
			Subsystem:   "pipeline",
			Name:        "semantic_search_duration_seconds",
			Help:        "Duration of one semantic search round trip.",
			Buckets:     prometheus.DefBuckets,
			ConstLabels: prometheus.Labels{"service": service},
		},
	)
	embedTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   "pda",
			Subsystem:   "pipeline",
			Name:        "embedding_calls_total",
			Help:        "Embedding service calls by status.",
			ConstLabels: prometheus.Labels{"service": service},
		},
		[]string{"status"},
	)
	admissionWait := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace:   "pda",
			Subsystem:   "pipeline",
			Name:        "embedding_admission_wait_seconds",
			Help:        "Time embedding calls spent waiting on the rate budget.",
			Buckets:     []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 15, 60},
			ConstLabels: prometheus.Labels{"service": service},
		},
	)

	registry.MustRegister(queriesTotal, queryDuration, searchDuration, embedTotal, admissionWait)

	return &PipelineMetrics{
		registry:       registry,
		queriesTotal:   queriesTotal,
		queryDuration:  queryDuration,
		searchDuration: searchDuration,
		embedTotal:     embedTotal,
		admissionWait:  admissionWait,
	}
}

func (m *PipelineMetrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *PipelineMetrics) ObserveQuery(outcome string, duration time.Duration) {
	if m == nil {
		return
	}
	m.queriesTotal.WithLabelValues(outcome).Inc()
	m.queryDuration.WithLabelValues(outcome).Observe(duration.Seconds())
}

func (m *PipelineMetrics) ObserveSearch(duration time.Duration) {
	if m == nil {
		return
	}
	m.searchDuration.Observe(duration.Seconds())
}

func (m *PipelineMetrics) ObserveEmbedding(err error, wait time.Duration) {
	if m == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	m.embedTotal.WithLabelValues(status).Inc()
	m.admissionWait.Observe(wait.Seconds())
}
