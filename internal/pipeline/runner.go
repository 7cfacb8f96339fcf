package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/sitemeta/internal/config"
	"git.home.luguber.info/inful/sitemeta/internal/logfields"
	"git.home.luguber.info/inful/sitemeta/internal/metrics"
)

// Store persists resolved metadata for downstream consumers. Implementations
// must be safe for sequential calls; the runner never calls Save concurrently.
type Store interface {
	SaveDocument(ctx context.Context, batchID string, doc *Document) error
}

// Failure records one document's processing error.
type Failure struct {
	Path string
	Err  error
}

// Result summarizes one batch run.
type Result struct {
	BatchID   string
	Documents int
	Processed int
	Skipped   int
	Failed    int
	Duration  time.Duration
	Failures  []Failure
}

// Outcome returns the batch outcome label for metrics and logs.
func (r *Result) Outcome() string {
	switch {
	case r.Failed == 0:
		return "success"
	case r.Failed == r.Documents:
		return "failed"
	default:
		return "partial"
	}
}

// Runner executes document batches in fixed-size concurrent waves. Documents
// within a wave run in parallel; waves run strictly in sequence. A failure in
// one document is recorded against that document only and never aborts the
// batch; only context cancellation stops a run early.
type Runner struct {
	Site     *config.Site
	WaveSize int
	Timeout  time.Duration
	Recorder metrics.Recorder
	Store    Store
	Logger   *slog.Logger

	// processFn overrides the per-document processor in tests.
	processFn func(*Document) error
}

func NewRunner(cfg *config.Config) *Runner {
	return &Runner{
		Site:     &cfg.Site,
		WaveSize: cfg.Content.WaveSize,
		Timeout:  cfg.Content.Timeout,
		Recorder: metrics.NoopRecorder{},
		Logger:   slog.Default(),
	}
}

// Run processes all documents and returns a batch summary. The returned
// error is non-nil only when the context was canceled before completion.
func (r *Runner) Run(ctx context.Context, docs []*Document) (*Result, error) {
	start := time.Now()
	result := &Result{
		BatchID:   uuid.NewString(),
		Documents: len(docs),
	}

	waveSize := r.WaveSize
	if waveSize <= 0 {
		waveSize = config.DefaultWaveSize
	}
	r.Recorder.SetWaveSize(waveSize)

	log := r.Logger
	if log == nil {
		log = slog.Default()
	}
	log.Info("batch started",
		logfields.BatchID(result.BatchID),
		logfields.Documents(len(docs)),
		logfields.WaveSize(waveSize))

	process := r.processFn
	if process == nil {
		process = NewProcessor(r.Site).Process
	}
	for wave := 0; wave*waveSize < len(docs); wave++ {
		if err := ctx.Err(); err != nil {
			r.finish(log, result, start, "canceled")
			return result, err
		}

		lo := wave * waveSize
		hi := min(lo+waveSize, len(docs))
		batch := docs[lo:hi]

		log.Debug("processing wave",
			logfields.BatchID(result.BatchID),
			logfields.Wave(wave+1),
			logfields.Documents(len(batch)))

		var wg sync.WaitGroup
		wg.Add(len(batch))
		for _, doc := range batch {
			go func(doc *Document) {
				defer wg.Done()
				r.processOne(ctx, process, doc)
			}(doc)
		}
		wg.Wait()
		r.Recorder.IncWave()

		for _, doc := range batch {
			r.record(log, result, doc)
			if r.Store != nil && doc.Err == nil && doc.Meta != nil {
				if err := r.Store.SaveDocument(ctx, result.BatchID, doc); err != nil {
					log.Warn("metadata store write failed",
						logfields.Path(doc.Path),
						logfields.Error(err))
				}
			}
		}
	}

	r.finish(log, result, start, result.Outcome())
	return result, nil
}

// processOne runs the processor against a shadow copy of doc so a timed-out
// worker can never race a later wave; results are committed only on success.
func (r *Runner) processOne(ctx context.Context, process func(*Document) error, doc *Document) {
	start := time.Now()
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = config.DefaultDocumentTimeout
	}

	work := *doc
	done := make(chan error, 1)
	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				done <- fmt.Errorf("document processing panicked: %v", rec)
			}
		}()
		done <- process(&work)
	}()

	select {
	case err := <-done:
		if err != nil {
			doc.Err = err
		} else {
			*doc = work
		}
	case <-time.After(timeout):
		doc.Err = fmt.Errorf("document processing timed out after %s", timeout)
	case <-ctx.Done():
		doc.Err = ctx.Err()
	}
	doc.Duration = time.Since(start)
	r.Recorder.ObserveDocumentDuration("process", doc.Duration)
}

func (r *Runner) record(log *slog.Logger, result *Result, doc *Document) {
	switch {
	case errors.Is(doc.Err, context.Canceled) || errors.Is(doc.Err, context.DeadlineExceeded):
		result.Failed++
		result.Failures = append(result.Failures, Failure{Path: doc.Path, Err: doc.Err})
		r.Recorder.IncDocumentResult(metrics.ResultCanceled)
	case doc.Err != nil:
		result.Failed++
		result.Failures = append(result.Failures, Failure{Path: doc.Path, Err: doc.Err})
		r.Recorder.IncDocumentResult(metrics.ResultFailed)
		log.Warn("document failed",
			logfields.Path(doc.Path),
			logfields.Error(doc.Err))
	case doc.Skipped:
		result.Skipped++
		r.Recorder.IncDocumentResult(metrics.ResultSkipped)
	default:
		result.Processed++
		r.Recorder.IncDocumentResult(metrics.ResultSuccess)
	}
}

func (r *Runner) finish(log *slog.Logger, result *Result, start time.Time, outcome string) {
	result.Duration = time.Since(start)
	r.Recorder.ObserveBatchDuration(result.Duration)
	r.Recorder.IncBatchOutcome(outcome)
	log.Info("batch finished",
		logfields.BatchID(result.BatchID),
		logfields.Documents(result.Documents),
		logfields.Failed(result.Failed),
		logfields.Skipped(result.Skipped),
		logfields.DurationMS(float64(result.Duration.Milliseconds())))
}
