package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"git.home.luguber.info/inful/sitemeta/internal/config"
	"git.home.luguber.info/inful/sitemeta/internal/metrics"
	"git.home.luguber.info/inful/sitemeta/internal/watch"
)

// WatchCmd implements the 'watch' command: an initial build, then rebuilds
// driven by file events and an optional fixed interval.
type WatchCmd struct {
	Output      string        `short:"o" help:"Output directory for processed documents" default:"./public"`
	Interval    time.Duration `help:"Also rebuild on a fixed interval (0 disables)"`
	MetricsAddr string        `name:"metrics-addr" help:"Serve Prometheus metrics on this address (e.g. :9090)"`
}

func (w *WatchCmd) Run(root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var recorder metrics.Recorder = metrics.NoopRecorder{}
	if w.MetricsAddr != "" {
		registry := prom.NewRegistry()
		recorder = metrics.NewPrometheusRecorder(registry)
		go serveMetrics(w.MetricsAddr, registry)
	}

	rebuild := func(ctx context.Context) error {
		return runBuild(ctx, cfg, w.Output, recorder)
	}
	if err := rebuild(ctx); err != nil {
		return err
	}

	watcher, err := watch.New(cfg.Content.Dir, rebuild)
	if err != nil {
		return err
	}
	watcher.Interval = w.Interval
	if err := watcher.Start(ctx); err != nil {
		return err
	}
	defer watcher.Stop()

	<-ctx.Done()
	slog.Info("shutting down")
	return nil
}

func serveMetrics(addr string, registry *prom.Registry) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{EnableOpenMetrics: true}))
	slog.Info("metrics endpoint listening", "addr", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		slog.Error("metrics endpoint failed", "error", err)
	}
}
