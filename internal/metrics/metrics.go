// Package metrics exposes Prometheus counters for the review pipeline.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// ModelCalls counts external generative-model invocations.
	ModelCalls = promauto.NewCounter(prometheus.CounterOpts{
		Name: "paperreview_model_calls_total",
		Help: "External generative model invocations.",
	})

	// ModelRetries counts retried model invocations.
	ModelRetries = promauto.NewCounter(prometheus.CounterOpts{
		Name: "paperreview_model_retries_total",
		Help: "Retried generative model invocations.",
	})

	// CacheHits counts prompt-cache hits.
	CacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "paperreview_prompt_cache_hits_total",
		Help: "Prompt cache hits that short-circuited a model call.",
	})

	// CacheMisses counts prompt-cache misses.
	CacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "paperreview_prompt_cache_misses_total",
		Help: "Prompt cache misses.",
	})

	// PapersProcessed counts orchestrated papers by outcome.
	PapersProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "paperreview_papers_processed_total",
		Help: "Papers run through the review pipeline, by outcome.",
	}, []string{"status"})
)

// Handler serves the default Prometheus registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
