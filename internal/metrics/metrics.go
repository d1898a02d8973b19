// Package metrics exposes Prometheus counters describing stream health.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "lakhbronze"

// Metrics counts what each resource read, dropped and emitted.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	entriesRead      *prometheus.CounterVec
	entriesSkipped   *prometheus.CounterVec
	containersFailed *prometheus.CounterVec
	recordsEmitted   *prometheus.CounterVec
	batchesEmitted   *prometheus.CounterVec
	resourceDuration *prometheus.HistogramVec
}

// New registers the collectors with reg. A nil registerer returns nil.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		return nil
	}
	labels := []string{"resource"}
	return &Metrics{
		entriesRead: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "entries_read_total",
			Help:      "Archive entries returned by the stream reader",
		}, labels),
		entriesSkipped: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "entries_skipped_total",
			Help:      "Matching archive entries skipped because their content was unavailable",
		}, labels),
		containersFailed: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "containers_failed_total",
			Help:      "Entries dropped because their container could not be read",
		}, labels),
		recordsEmitted: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_emitted_total",
			Help:      "Records handed downstream in batches",
		}, labels),
		batchesEmitted: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "batches_emitted_total",
			Help:      "Batches handed downstream",
		}, labels),
		resourceDuration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "resource_duration_seconds",
			Help:      "Wall time to produce all batches of a resource",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}, labels),
	}
}

func (m *Metrics) EntryRead(resource string) {
	if m == nil {
		return
	}
	m.entriesRead.WithLabelValues(resource).Inc()
}

func (m *Metrics) EntrySkipped(resource string) {
	if m == nil {
		return
	}
	m.entriesSkipped.WithLabelValues(resource).Inc()
}

func (m *Metrics) ContainerFailed(resource string) {
	if m == nil {
		return
	}
	m.containersFailed.WithLabelValues(resource).Inc()
}

// BatchEmitted counts one batch of n records.
func (m *Metrics) BatchEmitted(resource string, n int) {
	if m == nil {
		return
	}
	m.batchesEmitted.WithLabelValues(resource).Inc()
	m.recordsEmitted.WithLabelValues(resource).Add(float64(n))
}

func (m *Metrics) ResourceDone(resource string, d time.Duration) {
	if m == nil {
		return
	}
	m.resourceDuration.WithLabelValues(resource).Observe(d.Seconds())
}
