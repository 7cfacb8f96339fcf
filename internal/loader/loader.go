// Package loader reads a content directory into pipeline documents. Markdown
// sources have their front matter split off and their body rendered into an
// HTML shell; HTML sources pass through as-is.
package loader

import (
	"bytes"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"git.home.luguber.info/inful/sitemeta/internal/config"
	"git.home.luguber.info/inful/sitemeta/internal/logfields"
	"git.home.luguber.info/inful/sitemeta/internal/pipeline"
)

type Loader struct {
	Dir      string
	GitDates bool
	Logger   *slog.Logger

	md goldmark.Markdown
}

func New(content *config.Content) *Loader {
	return &Loader{
		Dir:      content.Dir,
		GitDates: content.GitDates,
		Logger:   slog.Default(),
		md:       goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

// Load walks the content directory and returns one document per markdown or
// HTML file, in path order. Hidden directories are skipped. Malformed front
// matter never fails a load; the file degrades to a body-only document.
func (l *Loader) Load() ([]*pipeline.Document, error) {
	log := l.Logger
	if log == nil {
		log = slog.Default()
	}
	if l.md == nil {
		l.md = goldmark.New(goldmark.WithExtensions(extension.GFM))
	}

	var docs []*pipeline.Document
	err := filepath.WalkDir(l.Dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != l.Dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(l.Dir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		var doc *pipeline.Document
		switch pipeline.ClassifyPath(rel) {
		case pipeline.KindText:
			doc, err = l.loadMarkdown(log, path, rel)
		default:
			doc, err = l.loadRaw(path, rel)
		}
		if err != nil {
			return err
		}
		docs = append(docs, doc)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk content dir: %w", err)
	}

	if l.GitDates {
		l.attachGitDates(log, docs)
	}

	log.Info("content loaded", logfields.Path(l.Dir), logfields.Documents(len(docs)))
	return docs, nil
}

// loadRaw loads an HTML document or a pass-through asset. Non-HTML payloads
// keep their bytes so the build can copy them to the output unchanged; the
// orchestrator skips them.
func (l *Loader) loadRaw(path, rel string) (*pipeline.Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", rel, err)
	}
	doc := &pipeline.Document{
		Path:     rel,
		FilePath: path,
		HTML:     content,
		Kind:     pipeline.ClassifyPath(rel),
	}
	if doc.Kind == pipeline.KindHTML {
		doc.Body = content
	}
	return doc, nil
}

func (l *Loader) loadMarkdown(log *slog.Logger, path, rel string) (*pipeline.Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", rel, err)
	}

	fmRaw, body, had, err := SplitFrontMatter(content)
	if err != nil {
		log.Warn("front matter not terminated, treating file as body only",
			logfields.Path(rel), logfields.Error(err))
		body = content
		had = false
	}

	var fm map[string]any
	if had {
		fm, err = ParseFrontMatter(fmRaw)
		if err != nil {
			log.Warn("front matter unparsable, ignoring",
				logfields.Path(rel), logfields.Error(err))
			fm = nil
		}
	}

	var rendered bytes.Buffer
	if err := l.md.Convert(body, &rendered); err != nil {
		return nil, fmt.Errorf("render %s: %w", rel, err)
	}

	return &pipeline.Document{
		Path:        outputPath(rel),
		FilePath:    path,
		FrontMatter: fm,
		Body:        body,
		HTML:        htmlShell(rendered.Bytes()),
		Kind:        pipeline.KindText,
	}, nil
}

// outputPath maps a markdown source path to its site-relative output path.
func outputPath(rel string) string {
	ext := filepath.Ext(rel)
	return strings.TrimSuffix(rel, ext) + ".html"
}

func htmlShell(body []byte) []byte {
	var sb bytes.Buffer
	sb.WriteString("<!DOCTYPE html>\n<html>\n<head>\n</head>\n<body>\n")
	sb.Write(body)
	sb.WriteString("</body>\n</html>\n")
	return sb.Bytes()
}
