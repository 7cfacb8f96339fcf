package seo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sitemeta/internal/config"
)

func TestResolve_SparseInputIsSelfConsistent(t *testing.T) {
	meta := Resolve("page.html", nil, nil, nil)

	assert.Equal(t, DefaultTitle, meta.Title)
	assert.Equal(t, ContentTypePage, meta.ContentType)
	assert.Equal(t, DefaultRobots, meta.Robots)
	assert.NotNil(t, meta.Keywords)
	assert.Empty(t, meta.Keywords)
	assert.Empty(t, meta.PublishDate)
	assert.Equal(t, 0, meta.WordCount)
	assert.Empty(t, meta.ReadingTime)
}

// TestResolve_PriorityLaw: when the override block defines a field, neither
// the card block nor the root field may influence the resolved value.
func TestResolve_PriorityLaw(t *testing.T) {
	fm := map[string]any{
		"title":       "Root Title",
		"description": "Root description",
		"card": map[string]any{
			"title":   "Card Title",
			"excerpt": "Card excerpt",
		},
		"seo": map[string]any{
			"title":       "Override Title",
			"description": "Override description",
		},
	}

	meta := Resolve("page.html", fm, nil, nil)
	assert.Equal(t, "Override Title", meta.Title)
	assert.Equal(t, "Override description", meta.Description)

	// Without the override block, the card block wins over the root field.
	delete(fm, "seo")
	meta = Resolve("page.html", fm, nil, nil)
	assert.Equal(t, "Card Title", meta.Title)
	assert.Equal(t, "Card excerpt", meta.Description)
}

func TestResolve_ConfigurableSEOProperty(t *testing.T) {
	site := &config.Site{SEOProperty: "meta"}
	fm := map[string]any{
		"title": "Root",
		"meta":  map[string]any{"title": "From Meta Block"},
		"seo":   map[string]any{"title": "Ignored"},
	}

	meta := Resolve("page.html", fm, nil, site)
	assert.Equal(t, "From Meta Block", meta.Title)
}

// Scenario: card-only front matter resolves title, date, and joined authors.
func TestResolve_CardBlock(t *testing.T) {
	fm := map[string]any{
		"card": map[string]any{
			"title":  "Architecture Philosophy",
			"date":   "2025-06-02",
			"author": []any{"Albert Einstein", "Isaac Newton"},
		},
	}

	meta := Resolve("posts/philosophy.html", fm, nil, nil)
	assert.Equal(t, "Architecture Philosophy", meta.Title)
	assert.Contains(t, meta.PublishDate, "2025-06-02")
	assert.Equal(t, "Albert Einstein, Isaac Newton", meta.Author)
	// Date plus author classifies as article.
	assert.Equal(t, ContentTypeArticle, meta.ContentType)
}

func TestResolve_Robots(t *testing.T) {
	tests := []struct {
		name string
		fm   map[string]any
		site *config.Site
		want string
	}{
		{
			name: "article type defaults to index,follow",
			fm:   map[string]any{"title": "Test", "type": "article"},
			want: "index,follow",
		},
		{
			name: "noIndex forces noindex,nofollow regardless of type",
			fm:   map[string]any{"title": "T", "noIndex": true, "type": "article"},
			want: "noindex,nofollow",
		},
		{
			name: "explicit robots string wins",
			fm:   map[string]any{"robots": "noarchive", "type": "article"},
			want: "noarchive",
		},
		{
			name: "site default used for local-business",
			fm:   map[string]any{"type": "local-business"},
			site: &config.Site{RobotsDefault: "index,nofollow"},
			want: "index,nofollow",
		},
		{
			name: "override noIndex beats root robots",
			fm: map[string]any{
				"robots": "index,follow",
				"seo":    map[string]any{"noIndex": true},
			},
			want: "noindex,nofollow",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta := Resolve("page.html", tt.fm, nil, tt.site)
			assert.Equal(t, tt.want, meta.Robots)
		})
	}
}

func TestResolve_ContentTypeHeuristic(t *testing.T) {
	tests := []struct {
		name string
		fm   map[string]any
		want ContentType
	}{
		{"date and author", map[string]any{"date": "2025-01-01", "author": "A"}, ContentTypeArticle},
		{"date and tags", map[string]any{"date": "2025-01-01", "tags": []any{"go"}}, ContentTypeArticle},
		{"date alone is a page", map[string]any{"date": "2025-01-01"}, ContentTypePage},
		{"price", map[string]any{"price": 9.99}, ContentTypeProduct},
		{"sku", map[string]any{"sku": "X-1"}, ContentTypeProduct},
		{"address", map[string]any{"address": "1 Main St"}, ContentTypeLocalBusiness},
		{"phone", map[string]any{"phone": "+1 555 0100"}, ContentTypeLocalBusiness},
		{"explicit wins over heuristic", map[string]any{"type": "page", "price": 5}, ContentTypePage},
		{"unknown explicit falls back to heuristic", map[string]any{"type": "banana", "sku": "X"}, ContentTypeProduct},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve("p.html", tt.fm, nil, nil).ContentType)
		})
	}
}

// TestResolve_KeywordNormalization: comma strings and arrays resolve
// identically; falsy values resolve to an empty, non-nil slice.
func TestResolve_KeywordNormalization(t *testing.T) {
	fromString := Resolve("p.html", map[string]any{"keywords": "a, b, c"}, nil, nil)
	fromArray := Resolve("p.html", map[string]any{"keywords": []any{"a", "b", "c"}}, nil, nil)

	assert.Equal(t, []string{"a", "b", "c"}, fromString.Keywords)
	assert.Equal(t, fromString.Keywords, fromArray.Keywords)

	empty := Resolve("p.html", map[string]any{"keywords": ""}, nil, nil)
	require.NotNil(t, empty.Keywords)
	assert.Empty(t, empty.Keywords)

	malformed := Resolve("p.html", map[string]any{"keywords": 42}, nil, nil)
	require.NotNil(t, malformed.Keywords)
	assert.Empty(t, malformed.Keywords)
}

func TestResolve_Image(t *testing.T) {
	site := &config.Site{Hostname: "https://example.com"}

	relative := Resolve("p.html", map[string]any{"seo": map[string]any{"image": "/x.jpg"}}, nil, site)
	assert.Equal(t, "https://example.com/x.jpg", relative.Image)

	// socialImage is consulted when image is absent from the override block.
	social := Resolve("p.html", map[string]any{"seo": map[string]any{"socialImage": "y.png"}}, nil, site)
	assert.Equal(t, "https://example.com/y.png", social.Image)

	absolute := Resolve("p.html", map[string]any{"image": "https://cdn.example.org/z.webp"}, nil, site)
	assert.Equal(t, "https://cdn.example.org/z.webp", absolute.Image)

	fallback := Resolve("p.html", nil, nil, &config.Site{
		Hostname: "https://example.com",
		Defaults: config.Defaults{SocialImage: "/default.png"},
	})
	assert.Equal(t, "https://example.com/default.png", fallback.Image)
}

func TestResolve_CanonicalURL(t *testing.T) {
	site := &config.Site{Hostname: "https://example.com"}

	tests := []struct {
		path string
		want string
	}{
		{"blog/post.html", "https://example.com/blog/post"},
		{"blog/post.htm", "https://example.com/blog/post"},
		{"index.html", "https://example.com/"},
		{"docs/index.html", "https://example.com/docs/"},
		{"a//b.html", "https://example.com/a/b"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			meta := Resolve(tt.path, nil, nil, site)
			assert.Equal(t, tt.want, meta.CanonicalURL)
		})
	}

	explicit := Resolve("blog/post.html", map[string]any{
		"seo": map[string]any{"canonical": "https://other.example/post"},
	}, nil, site)
	assert.Equal(t, "https://other.example/post", explicit.CanonicalURL)
}

func TestResolve_Dates(t *testing.T) {
	meta := Resolve("p.html", map[string]any{
		"publishDate":  "2025-03-01T10:30:00+02:00",
		"modifiedDate": "not a date",
	}, nil, nil)

	assert.Equal(t, "2025-03-01T08:30:00Z", meta.PublishDate)
	assert.Empty(t, meta.ModifiedDate, "unparsable dates must resolve to empty, not leak raw")

	lastmod := Resolve("p.html", map[string]any{"lastmod": "2025-04-05"}, nil, nil)
	assert.Contains(t, lastmod.ModifiedDate, "2025-04-05")
}

func TestResolve_BodyDerivedFields(t *testing.T) {
	body := []byte("<html><body><h1>Deriving Titles</h1><p>one two three four five</p></body></html>")
	meta := Resolve("p.html", nil, body, nil)

	assert.Equal(t, "Deriving Titles", meta.Title)
	assert.Equal(t, 7, meta.WordCount) // heading words count too
	assert.Equal(t, "1 min read", meta.ReadingTime)
	assert.Equal(t, "Deriving Titles one two three four five", meta.Description)
}

func TestResolve_DescriptionAutoGeneration(t *testing.T) {
	long := "<p>" + repeatWords("word", 60) + ". Tail sentence follows here.</p>"
	meta := Resolve("p.html", nil, []byte(long), nil)
	assert.LessOrEqual(t, len([]rune(meta.Description)), 163)

	// Explicit description suppresses auto-generation entirely.
	explicit := Resolve("p.html", map[string]any{"description": "short"}, []byte(long), nil)
	assert.Equal(t, "short", explicit.Description)
}

func TestResolve_FallbackDotPath(t *testing.T) {
	site := &config.Site{
		Fallbacks: config.Fallbacks{Title: "page.heading"},
	}
	fm := map[string]any{
		"page": map[string]any{"heading": "Nested Heading"},
	}

	meta := Resolve("p.html", fm, nil, site)
	assert.Equal(t, "Nested Heading", meta.Title)

	// A missing segment degrades silently.
	meta = Resolve("p.html", map[string]any{"page": "scalar"}, nil, site)
	assert.Equal(t, DefaultTitle, meta.Title)
}

func repeatWords(w string, n int) string {
	out := w
	for i := 1; i < n; i++ {
		out += " " + w
	}
	return out
}
