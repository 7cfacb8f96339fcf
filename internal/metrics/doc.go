// Package metrics provides observability hooks for batch metadata processing.
//
// The package implements the Null Object pattern so callers never need nil
// checks: components default to NoopRecorder, and a PrometheusRecorder can be
// injected when a scrape endpoint is wanted.
//
// Components receive a Recorder through dependency injection:
//
//	runner := pipeline.NewRunner(cfg, store)
//	runner.Recorder = metrics.NewPrometheusRecorder(registry)
//
// NoopRecorder methods inline away, so leaving metrics disabled costs nothing.
package metrics
