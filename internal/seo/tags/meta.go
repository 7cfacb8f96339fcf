package tags

import (
	"fmt"
	"strings"

	"git.home.luguber.info/inful/sitemeta/internal/config"
	"git.home.luguber.info/inful/sitemeta/internal/seo"
)

// GenerateMeta derives the standard meta tag set: description, keywords,
// robots, author, viewport, canonical link, and the site-level presentation
// tags, followed by article-specific tags for article documents.
//
// Ordering is a contract: consumers position viewport, description, and
// robots ahead of everything else, then the canonical link, then the rest.
func GenerateMeta(m *seo.Metadata, site *config.Site) []Tag {
	if site == nil {
		site = &config.Site{}
	}
	l := &list{}

	l.meta("description", m.Description)
	l.meta("keywords", strings.Join(m.Keywords, ", "))
	l.meta("robots", m.Robots)
	l.meta("author", m.Author)

	viewport := site.Social.Viewport
	if viewport == "" {
		viewport = config.DefaultViewport
	}
	l.meta("viewport", viewport)

	l.link("canonical", m.CanonicalURL)

	l.meta("theme-color", site.ThemeColor)
	l.httpEquiv("content-language", site.Language)
	l.meta("publisher", site.Publisher)
	l.meta("copyright", site.Copyright)
	l.meta("googlebot", googlebotDirective(site.Googlebot))

	if m.ContentType == seo.ContentTypeArticle {
		l.meta("article:published_time", m.PublishDate)
		l.meta("article:modified_time", m.ModifiedDate)
		l.meta("article:author", m.Author)
		for _, kw := range m.Keywords {
			l.meta("article:tag", kw)
		}
	}

	return l.tags
}

// googlebotDirective joins the configured googlebot directive parts. The tag
// is omitted entirely when nothing is configured; explicit zero and -1
// values are emitted since both are meaningful to crawlers.
func googlebotDirective(g config.Googlebot) string {
	parts := []string{}
	if g.MaxSnippet != nil {
		parts = append(parts, fmt.Sprintf("max-snippet:%d", *g.MaxSnippet))
	}
	if g.MaxImagePreview != "" {
		parts = append(parts, "max-image-preview:"+g.MaxImagePreview)
	}
	if g.MaxVideoPreview != nil {
		parts = append(parts, fmt.Sprintf("max-video-preview:%d", *g.MaxVideoPreview))
	}
	return strings.Join(parts, ", ")
}
