package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sitemeta/internal/config"
	"git.home.luguber.info/inful/sitemeta/internal/metrics"
)

func TestRunBuild_EndToEnd(t *testing.T) {
	contentDir := t.TempDir()
	outputDir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(contentDir, "post.md"), []byte(`---
title: First Post
type: article
author: Jane Doe
date: 2025-06-02
---
# First Post

Welcome to the site.
`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(contentDir, "about.html"),
		[]byte("<html><head><title>old</title></head><body>About us</body></html>"), 0o644))

	cfg, err := config.Parse([]byte(`
site:
  hostname: https://example.com
  social:
    site_name: Example
content:
  dir: ` + contentDir + `
  store_path: ` + filepath.Join(t.TempDir(), "meta.db") + `
`))
	require.NoError(t, err)

	require.NoError(t, runBuild(context.Background(), cfg, outputDir, metrics.NoopRecorder{}))

	post, err := os.ReadFile(filepath.Join(outputDir, "post.html"))
	require.NoError(t, err)
	assert.Contains(t, string(post), "<title>First Post</title>")
	assert.Contains(t, string(post), `property="og:type" content="article"`)
	assert.Contains(t, string(post), `rel="canonical" href="https://example.com/post"`)
	assert.Contains(t, string(post), "application/ld+json")

	about, err := os.ReadFile(filepath.Join(outputDir, "about.html"))
	require.NoError(t, err)
	assert.Contains(t, string(about), "About us")
	assert.Contains(t, string(about), `name="robots"`)
}
