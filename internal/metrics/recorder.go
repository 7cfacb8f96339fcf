package metrics

import "time"

// ResultLabel enumerates document processing result categories for counters.
type ResultLabel string

const (
	ResultSuccess  ResultLabel = "success"
	ResultSkipped  ResultLabel = "skipped"
	ResultFailed   ResultLabel = "failed"
	ResultCanceled ResultLabel = "canceled"
)

// Recorder defines observability hooks for batch and per-document metrics.
// Implementations may forward to Prometheus, OpenTelemetry, etc. All methods
// must be safe for nil receivers when using the NoopRecorder (allowing
// optional injection).
type Recorder interface {
	ObserveDocumentDuration(stage string, d time.Duration)
	ObserveBatchDuration(d time.Duration)
	IncDocumentResult(result ResultLabel)
	IncBatchOutcome(outcome string) // outcome: success|partial|failed|canceled
	SetWaveSize(n int)
	IncWave()
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveDocumentDuration(string, time.Duration) {}
func (NoopRecorder) ObserveBatchDuration(time.Duration)            {}
func (NoopRecorder) IncDocumentResult(ResultLabel)                 {}
func (NoopRecorder) IncBatchOutcome(string)                        {}
func (NoopRecorder) SetWaveSize(int)                               {}
func (NoopRecorder) IncWave()                                      {}
