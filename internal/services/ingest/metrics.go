package ingest

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics exposed on /metrics.
type Metrics struct {
	SamplesIngested prometheus.Counter
	Duplicates      prometheus.Counter
	DecodeErrors    prometheus.Counter
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		SamplesIngested: factory.NewCounter(prometheus.CounterOpts{
			Name: "standgrow_ingest_samples_total",
			Help: "Raw sensor samples written to storage.",
		}),
		Duplicates: factory.NewCounter(prometheus.CounterOpts{
			Name: "standgrow_ingest_duplicates_total",
			Help: "Redelivered payloads dropped by the deduper.",
		}),
		DecodeErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "standgrow_ingest_decode_errors_total",
			Help: "Payloads that failed to decode as raw samples.",
		}),
	}
}
