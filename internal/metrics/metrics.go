// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package metrics counts what a run did and can dump the counters in
// Prometheus text format for a node-exporter textfile collector.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "get_papers_list"

// Fetch failure reasons.
const (
	ReasonHTTP      = "http"
	ReasonTransport = "transport"
	ReasonDecode    = "decode"
	ReasonNotFound  = "not_found"
)

// Recorder holds the run counters on a private registry. A nil *Recorder
// is valid and records nothing.
type Recorder struct {
	registry *prometheus.Registry

	IDsFound        prometheus.Counter
	RecordsFetched  prometheus.Counter
	RecordsKept     prometheus.Counter
	RecordsDropped  prometheus.Counter
	FetchFailures   *prometheus.CounterVec
	LLMRequests     *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

// New creates a Recorder with all collectors registered.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		IDsFound: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "search_ids_total",
			Help:      "PubMed IDs returned by esearch",
		}),
		RecordsFetched: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_fetched_total",
			Help:      "Records fetched and decoded from efetch",
		}),
		RecordsKept: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_kept_total",
			Help:      "Records with at least one non-academic author",
		}),
		RecordsDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_dropped_total",
			Help:      "Records with only academic authors",
		}),
		FetchFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "fetch_failures_total",
				Help:      "Per-record efetch failures",
			},
			[]string{"reason"},
		),
		LLMRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "llm_requests_total",
				Help:      "Language model calls",
			},
			[]string{"provider", "status"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "request_duration_seconds",
				Help:      "Upstream request duration in seconds",
				Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"endpoint"},
		),
	}
	r.registry.MustRegister(
		r.IDsFound,
		r.RecordsFetched,
		r.RecordsKept,
		r.RecordsDropped,
		r.FetchFailures,
		r.LLMRequests,
		r.RequestDuration,
	)
	return r
}

// ObserveIDs adds n to the search id counter.
func (r *Recorder) ObserveIDs(n int) {
	if r == nil {
		return
	}
	r.IDsFound.Add(float64(n))
}

// ObserveRecord counts a decoded record and whether it was kept.
func (r *Recorder) ObserveRecord(kept bool) {
	if r == nil {
		return
	}
	r.RecordsFetched.Inc()
	if kept {
		r.RecordsKept.Inc()
	} else {
		r.RecordsDropped.Inc()
	}
}

// ObserveFailure counts a skipped record.
func (r *Recorder) ObserveFailure(reason string) {
	if r == nil {
		return
	}
	r.FetchFailures.WithLabelValues(reason).Inc()
}

// ObserveLLM counts a language model call.
func (r *Recorder) ObserveLLM(provider string, err error) {
	if r == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	r.LLMRequests.WithLabelValues(provider, status).Inc()
}

// ObserveDuration records how long a request to endpoint took since start.
func (r *Recorder) ObserveDuration(endpoint string, start time.Time) {
	if r == nil {
		return
	}
	r.RequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
}

// WriteTextfile writes all metrics to path in the text exposition format.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("writing metrics to %s: %w", path, err)
	}
	return nil
}
