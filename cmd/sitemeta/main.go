package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
)

// CLI is the top-level command grammar.
type CLI struct {
	Config  string `short:"c" help:"Configuration file path" default:"sitemeta.yaml"`
	Verbose bool   `short:"v" help:"Enable verbose logging"`

	Build BuildCmd `cmd:"" help:"Resolve metadata and inject head tags for all content"`
	Watch WatchCmd `cmd:"" help:"Rebuild continuously as content changes"`
	Init  InitCmd  `cmd:"" help:"Write an example configuration file"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("sitemeta"),
		kong.Description("SEO metadata resolution and head tag injection for static sites"),
		kong.UsageOnError(),
	)

	logLevel := slog.LevelInfo
	if cli.Verbose {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})))

	if err := ctx.Run(&cli); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}
