package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type metrics struct {
	requests  *prometheus.CounterVec
	emotions  *prometheus.CounterVec
	latency   prometheus.Histogram
	textBytes prometheus.Histogram
}

func newMetrics(reg prometheus.Registerer) *metrics {
	factory := promauto.With(reg)
	return &metrics{
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "emotion_api",
			Name:      "analyze_requests_total",
			Help:      "Emotion analysis requests by HTTP status code.",
		}, []string{"code"}),
		emotions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "emotion_api",
			Name:      "emotions_detected_total",
			Help:      "Dominant emotions returned by the analyzer.",
		}, []string{"emotion"}),
		latency: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "emotion_api",
			Name:      "analyze_duration_seconds",
			Help:      "Time spent analyzing a reflection.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12),
		}),
		textBytes: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "emotion_api",
			Name:      "reflection_text_bytes",
			Help:      "Size of accepted reflection texts.",
			Buckets:   prometheus.LinearBuckets(0, 100, 11),
		}),
	}
}
