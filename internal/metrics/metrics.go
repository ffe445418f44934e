package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "podcast_runs_total",
		Help: "Pipeline runs by outcome",
	}, []string{"outcome"})

	StageDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "podcast_stage_duration_seconds",
		Help:    "Per-stage latency",
		Buckets: []float64{0.5, 1, 2, 5, 10, 30, 60, 120, 300, 600},
	}, []string{"stage"})

	SegmentsSkipped = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "speaker_segments_skipped_total",
		Help: "Segments excluded from speaker aggregation",
	}, []string{"reason"})

	SegmentsAggregated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "speaker_segments_aggregated_total",
		Help: "Segments merged into a speaker profile",
	})

	TranslationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "translation_request_duration_seconds",
		Help:    "Per-segment translation provider latency",
		Buckets: []float64{0.2, 0.5, 1, 2, 5, 10, 20, 60},
	})

	TranslationFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "translation_failures_total",
		Help: "Segments that received the failure sentinel",
	}, []string{"reason"})
)
