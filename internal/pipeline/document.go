package pipeline

import (
	"strings"
	"time"

	"git.home.luguber.info/inful/sitemeta/internal/seo"
)

// Kind classifies a document's payload for processing purposes.
type Kind string

const (
	// KindHTML documents get their head mutated in place.
	KindHTML Kind = "html"
	// KindText documents (markdown already rendered into an HTML shell)
	// are treated the same as KindHTML.
	KindText Kind = "text"
	// KindOther documents pass through untouched.
	KindOther Kind = "other"
)

// Document represents one file moving through the metadata pipeline.
type Document struct {
	// Path is the site-relative output path (e.g. "blog/post.html").
	Path string

	// FilePath is the absolute source path, when the document came from disk.
	FilePath string

	// FrontMatter is the parsed front matter tree. May be nil.
	FrontMatter map[string]any

	// Body is the plain text used for analysis (word counts, auto
	// description, heading extraction). For markdown sources this is the
	// markdown body; for HTML sources it equals HTML.
	Body []byte

	// HTML is the markup payload. Mutated in place by processing; after a
	// successful run it holds the final output.
	HTML []byte

	Kind Kind

	// Meta is the resolved metadata record, attached after processing for
	// downstream consumers (sitemap builders etc). Nil for skipped kinds.
	Meta *seo.Metadata

	// Skipped is set when the document was passed through unchanged.
	Skipped    bool
	SkipReason string

	// Err records a processing failure for this document only.
	Err error

	Duration time.Duration
}

// ClassifyPath guesses a document kind from its path extension.
func ClassifyPath(path string) Kind {
	switch strings.ToLower(pathExt(path)) {
	case ".html", ".htm":
		return KindHTML
	case ".md", ".markdown", ".txt":
		return KindText
	default:
		return KindOther
	}
}

func pathExt(path string) string {
	if i := strings.LastIndexByte(path, '.'); i >= 0 && !strings.ContainsRune(path[i:], '/') {
		return path[i:]
	}
	return ""
}
