// Package metrics 定义搜索服务导出的 Prometheus 指标
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	SearchRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "hollowpress_search_requests_total",
		Help: "Total number of search requests by outcome",
	}, []string{"outcome"})

	SearchDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "hollowpress_search_duration_seconds",
		Help:    "Duration of search operations in seconds",
		Buckets: prometheus.DefBuckets,
	})

	CacheLookups = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "hollowpress_search_cache_lookups_total",
		Help: "Result cache lookups by result (hit or miss)",
	}, []string{"result"})

	SourceFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "hollowpress_search_source_failures_total",
		Help: "Content source failures by category",
	}, []string{"category"})

	SourceDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "hollowpress_search_source_duration_seconds",
		Help:    "Duration of candidate fetches per content source",
		Buckets: prometheus.DefBuckets,
	}, []string{"category"})

	TrendingTerms = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "hollowpress_trending_terms",
		Help: "Number of queries currently tracked for trending and suggestions",
	})

	JobRuns = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "hollowpress_cron_job_runs_total",
		Help: "Scheduled job executions by job and outcome",
	}, []string{"job", "outcome"})

	JobDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "hollowpress_cron_job_duration_seconds",
		Help:    "Duration of scheduled job executions",
		Buckets: prometheus.DefBuckets,
	}, []string{"job"})
)

// 请求结果标签
const (
	OutcomeOK       = "ok"
	OutcomeInvalid  = "invalid"
	OutcomeDegraded = "degraded"
	OutcomeError    = "error"
	OutcomePanic    = "panic"
)

func init() {
	prometheus.MustRegister(SearchRequests)
	prometheus.MustRegister(SearchDuration)
	prometheus.MustRegister(CacheLookups)
	prometheus.MustRegister(SourceFailures)
	prometheus.MustRegister(SourceDuration)
	prometheus.MustRegister(TrendingTerms)
	prometheus.MustRegister(JobRuns)
	prometheus.MustRegister(JobDuration)
}
