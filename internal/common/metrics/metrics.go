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

	RankingCandidatesScored = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ranking_candidates_scored",
			Help:    "Size of the candidate universe per ranking call",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		},
		[]string{"task_type"},
	)

	RankingFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ranking_fallback_total",
			Help: "Ranking calls that filled a list from the fallback path",
		},
		[]string{"fallback"},
	)

	CandidateCacheRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "candidate_cache_requests_total",
			Help: "Candidate cache lookups by result",
		},
		[]string{"result"},
	)
)

// ObserveRanking records universe size and which fallbacks fired.
func ObserveRanking(taskType string, total int, primaryFallback, relatedFallback bool) {
	RankingCandidatesScored.WithLabelValues(taskType).Observe(float64(total))
	if primaryFallback {
		RankingFallbacks.WithLabelValues("primary").Inc()
	}
	if relatedFallback {
		RankingFallbacks.WithLabelValues("related").Inc()
	}
}
