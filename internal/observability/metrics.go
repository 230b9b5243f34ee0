package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus instruments the pipeline orchestrator
// updates while driving a store operation. A nil *Metrics is valid
// everywhere these are used and simply skips recording, so embedding a
// Client without metrics costs nothing.
type Metrics struct {
	StoresTotal          *prometheus.CounterVec
	StoreDuration        prometheus.Histogram
	ChunksSubmittedTotal prometheus.Counter
	ChunkSubmitDuration  prometheus.Histogram
	ManifestsBuiltTotal  prometheus.Counter
	BytesSubmittedTotal  prometheus.Counter
	PreflightRejections  *prometheus.CounterVec
	CIDCalculationsTotal prometheus.Counter
}

// NewMetrics creates and registers the pipeline's Prometheus metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		StoresTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bulletin_stores_total",
				Help: "Store operations completed, by outcome",
			},
			[]string{"outcome"},
		),
		StoreDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "bulletin_store_duration_seconds",
				Help:    "Wall-clock time of a full store operation",
				Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60, 120, 300},
			},
		),
		ChunksSubmittedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "bulletin_chunks_submitted_total",
				Help: "Chunk extrinsics submitted",
			},
		),
		ChunkSubmitDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "bulletin_chunk_submit_duration_seconds",
				Help:    "Per-chunk submission latency to the chosen lifecycle milestone",
				Buckets: []float64{0.05, 0.1, 0.5, 1, 5, 10, 30, 60, 120},
			},
		),
		ManifestsBuiltTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "bulletin_manifests_built_total",
				Help: "DAG-PB manifests built and submitted",
			},
		),
		BytesSubmittedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "bulletin_bytes_submitted_total",
				Help: "Total bytes submitted in chunk and manifest extrinsics of the chunked path",
			},
		),
		PreflightRejections: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bulletin_preflight_rejections_total",
				Help: "Store calls rejected by the pre-flight guard, by reason",
			},
			[]string{"reason"},
		),
		CIDCalculationsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "bulletin_cid_calculations_total",
				Help: "CIDs computed for single-path payloads and chunks",
			},
		),
	}
}

// RecordStore records the outcome and duration of a completed store call.
func (m *Metrics) RecordStore(success bool, durationSeconds float64) {
	if m == nil {
		return
	}
	outcome := "success"
	if !success {
		outcome = "failure"
	}
	m.StoresTotal.WithLabelValues(outcome).Inc()
	m.StoreDuration.Observe(durationSeconds)
}

// RecordChunkSubmitted records a single chunk extrinsic submission.
func (m *Metrics) RecordChunkSubmitted(bytes int, durationSeconds float64) {
	if m == nil {
		return
	}
	m.ChunksSubmittedTotal.Inc()
	m.ChunkSubmitDuration.Observe(durationSeconds)
	m.BytesSubmittedTotal.Add(float64(bytes))
}

// RecordManifestBuilt records a manifest submission.
func (m *Metrics) RecordManifestBuilt(bytes int) {
	if m == nil {
		return
	}
	m.ManifestsBuiltTotal.Inc()
	m.BytesSubmittedTotal.Add(float64(bytes))
}

// RecordPreflightRejection records the pre-flight guard refusing a store.
func (m *Metrics) RecordPreflightRejection(reason string) {
	if m == nil {
		return
	}
	m.PreflightRejections.WithLabelValues(reason).Inc()
}

// RecordCIDCalculation records one CID computation.
func (m *Metrics) RecordCIDCalculation() {
	if m == nil {
		return
	}
	m.CIDCalculationsTotal.Inc()
}

// Handler exposes the Prometheus metrics endpoint for a host process that
// chooses to serve it; the SDK itself never starts an HTTP server.
func (m *Metrics) Handler() http.Handler {
	return promhttp.Handler()
}
