package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/sitemeta/internal/config"
	"git.home.luguber.info/inful/sitemeta/internal/loader"
	"git.home.luguber.info/inful/sitemeta/internal/logfields"
	"git.home.luguber.info/inful/sitemeta/internal/metastore"
	"git.home.luguber.info/inful/sitemeta/internal/metrics"
	"git.home.luguber.info/inful/sitemeta/internal/pipeline"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Output   string `short:"o" help:"Output directory for processed documents" default:"./public"`
	GitDates bool   `name:"git-dates" help:"Derive lastmod from git history for files without one"`
}

func (b *BuildCmd) Run(root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if b.GitDates {
		cfg.Content.GitDates = true
	}
	return runBuild(context.Background(), cfg, b.Output, metrics.NoopRecorder{})
}

// runBuild executes one full load/process/write pass.
func runBuild(ctx context.Context, cfg *config.Config, output string, recorder metrics.Recorder) error {
	docs, err := loader.New(&cfg.Content).Load()
	if err != nil {
		return err
	}

	runner := pipeline.NewRunner(cfg)
	runner.Recorder = recorder

	if cfg.Content.StorePath != "" {
		store, err := metastore.New(cfg.Content.StorePath)
		if err != nil {
			return fmt.Errorf("open metadata store: %w", err)
		}
		defer store.Close()
		runner.Store = store
	}

	result, err := runner.Run(ctx, docs)
	if err != nil {
		return err
	}

	if err := writeOutput(output, docs); err != nil {
		return err
	}

	for _, f := range result.Failures {
		slog.Warn("document not processed", logfields.Path(f.Path), logfields.Error(f.Err))
	}
	if result.Outcome() == "failed" {
		return fmt.Errorf("all %d documents failed", result.Documents)
	}
	slog.Info("build complete",
		logfields.BatchID(result.BatchID),
		logfields.Documents(result.Documents),
		logfields.Failed(result.Failed),
		logfields.Skipped(result.Skipped))
	return nil
}

func writeOutput(output string, docs []*pipeline.Document) error {
	for _, doc := range docs {
		dest := filepath.Join(output, filepath.FromSlash(doc.Path))
		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
		if err := os.WriteFile(dest, doc.HTML, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", doc.Path, err)
		}
	}
	return nil
}
