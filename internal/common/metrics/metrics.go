// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worker_job_duration_seconds",
			Help: "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_jobs_active",
			Help: "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)
)

var (
	// SuggestionRequests is labelled by outcome: "personalised" or "fallback".
	SuggestionRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "suggestion_requests_total",
			Help: "Total number of suggestion requests by outcome",
		},
		[]string{"outcome"},
	)

	SuggestionFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "suggestion_fallbacks_total",
			Help: "Total number of requests served from the static fallback ranking",
		},
		[]string{"reason"},
	)

	SuggestionSourceFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "suggestion_source_failures_total",
			Help: "Total number of candidate or preference source failures",
		},
		[]string{"source", "reason"},
	)

	SuggestionPipelineDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "suggestion_pipeline_duration_seconds",
			Help:    "Duration of the suggestion pipeline in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"outcome"},
	)
)
