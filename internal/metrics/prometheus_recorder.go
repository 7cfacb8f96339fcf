package metrics

import (
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	once             sync.Once
	documentDuration *prom.HistogramVec
	batchDuration    prom.Histogram
	documentResults  *prom.CounterVec
	batchOutcome     *prom.CounterVec
	waveSize         prom.Gauge
	waves            prom.Counter
}

// NewPrometheusRecorder constructs and registers Prometheus metrics (idempotent).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{}
	pr.once.Do(func() {
		pr.documentDuration = prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "sitemeta",
			Name:      "document_duration_seconds",
			Help:      "Per-document processing duration by stage",
			Buckets:   prom.DefBuckets,
		}, []string{"stage"})
		pr.batchDuration = prom.NewHistogram(prom.HistogramOpts{
			Namespace: "sitemeta",
			Name:      "batch_duration_seconds",
			Help:      "Total batch processing duration",
			Buckets:   prom.DefBuckets,
		})
		pr.documentResults = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "sitemeta",
			Name:      "document_results_total",
			Help:      "Document result counts by outcome",
		}, []string{"result"})
		pr.batchOutcome = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "sitemeta",
			Name:      "batch_outcomes_total",
			Help:      "Batch outcomes by final status",
		}, []string{"outcome"})
		pr.waveSize = prom.NewGauge(prom.GaugeOpts{
			Namespace: "sitemeta",
			Name:      "wave_size",
			Help:      "Configured document concurrency per wave",
		})
		pr.waves = prom.NewCounter(prom.CounterOpts{
			Namespace: "sitemeta",
			Name:      "waves_total",
			Help:      "Total processing waves executed",
		})
		reg.MustRegister(pr.documentDuration, pr.batchDuration, pr.documentResults, pr.batchOutcome, pr.waveSize, pr.waves)
	})
	return pr
}

func (p *PrometheusRecorder) ObserveDocumentDuration(stage string, d time.Duration) {
	if p == nil || p.documentDuration == nil {
		return
	}
	p.documentDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveBatchDuration(d time.Duration) {
	if p == nil || p.batchDuration == nil {
		return
	}
	p.batchDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncDocumentResult(result ResultLabel) {
	if p == nil || p.documentResults == nil {
		return
	}
	p.documentResults.WithLabelValues(string(result)).Inc()
}

func (p *PrometheusRecorder) IncBatchOutcome(outcome string) {
	if p == nil || p.batchOutcome == nil {
		return
	}
	p.batchOutcome.WithLabelValues(outcome).Inc()
}

func (p *PrometheusRecorder) SetWaveSize(n int) {
	if p == nil || p.waveSize == nil {
		return
	}
	p.waveSize.Set(float64(n))
}

func (p *PrometheusRecorder) IncWave() {
	if p == nil || p.waves == nil {
		return
	}
	p.waves.Inc()
}
