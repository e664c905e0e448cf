// Package metrics exposes Prometheus collectors for the re-embed pipeline.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

var (
	linksMatched = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tokembed_links_matched_total",
		Help: "Inbound messages carrying a video link, by link form",
	}, []string{"form"})

	reembeds = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tokembed_reembeds_total",
		Help: "Finished re-embed attempts by result and failing stage",
	}, []string{"result", "stage"})

	stageDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "tokembed_stage_duration_seconds",
		Help:    "Latency of each pipeline stage",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
	}, []string{"stage"})

	mediaBytes = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "tokembed_media_bytes",
		Help:    "Size of downloaded video files",
		Buckets: prometheus.ExponentialBuckets(256*1024, 2, 11),
	})
)

// RecordLinkMatched counts a message that carried a link of the given form.
func RecordLinkMatched(form string) {
	linksMatched.WithLabelValues(form).Inc()
}

// RecordReembed counts a finished attempt. stage is empty on success.
func RecordReembed(result, stage string) {
	if stage == "" {
		stage = "none"
	}
	reembeds.WithLabelValues(result, stage).Inc()
}

// ObserveStage records how long a stage took, starting at start.
func ObserveStage(stage string, start time.Time) {
	stageDuration.WithLabelValues(stage).Observe(time.Since(start).Seconds())
}

func ObserveMediaBytes(n int) {
	mediaBytes.Observe(float64(n))
}
