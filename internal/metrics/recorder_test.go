package metrics

import (
	"testing"
	"time"
)

type testRecorder struct {
	documentDurations map[string]int
	documentResults   map[ResultLabel]int
	batchDurations    int
	batchOutcomes     map[string]int
	waveSize          int
	waves             int
}

func newTestRecorder() *testRecorder {
	return &testRecorder{documentDurations: map[string]int{}, documentResults: map[ResultLabel]int{}, batchOutcomes: map[string]int{}}
}

func (t *testRecorder) ObserveDocumentDuration(stage string, _ time.Duration) {
	t.documentDurations[stage]++
}
func (t *testRecorder) ObserveBatchDuration(_ time.Duration) { t.batchDurations++ }
func (t *testRecorder) IncDocumentResult(result ResultLabel) { t.documentResults[result]++ }
func (t *testRecorder) IncBatchOutcome(outcome string)       { t.batchOutcomes[outcome]++ }
func (t *testRecorder) SetWaveSize(n int)                    { t.waveSize = n }
func (t *testRecorder) IncWave()                             { t.waves++ }

func TestRecorderInterfaces(t *testing.T) {
	var _ Recorder = NoopRecorder{}
	var _ Recorder = newTestRecorder()
	var _ Recorder = (*PrometheusRecorder)(nil)

	// Noop and nil Prometheus recorders must not panic.
	NoopRecorder{}.IncDocumentResult(ResultFailed)
	var p *PrometheusRecorder
	p.ObserveBatchDuration(time.Second)
	p.IncWave()
}
