package tags

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"git.home.luguber.info/inful/sitemeta/internal/config"
	"git.home.luguber.info/inful/sitemeta/internal/seo"
)

func TestCardType(t *testing.T) {
	tests := []struct {
		name string
		m    *seo.Metadata
		site *config.Site
		want string
	}{
		{"image heuristic", &seo.Metadata{Image: "/x.jpg"}, &config.Site{}, cardSummaryLargeImage},
		{"video heuristic", &seo.Metadata{Twitter: seo.Twitter{VideoURL: "/v.mp4"}}, &config.Site{}, cardPlayer},
		{"app heuristic", &seo.Metadata{Twitter: seo.Twitter{AppIDiPhone: "123"}}, &config.Site{}, cardApp},
		{"plain summary", &seo.Metadata{}, &config.Site{}, cardSummary},
		{"image beats video", &seo.Metadata{Image: "/x.jpg", Twitter: seo.Twitter{VideoURL: "/v"}}, &config.Site{}, cardSummaryLargeImage},
		{"document override wins", &seo.Metadata{Image: "/x.jpg", Twitter: seo.Twitter{Card: "summary"}}, &config.Site{}, cardSummary},
		{"site override wins over heuristic", &seo.Metadata{Image: "/x.jpg"}, &config.Site{Social: config.Social{TwitterCard: "summary"}}, cardSummary},
		{"unrecognized falls back to summary", &seo.Metadata{Image: "/x.jpg", Twitter: seo.Twitter{Card: "gallery"}}, &config.Site{}, cardSummary},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cardType(tt.m, tt.site))
		})
	}
}

func TestNormalizeHandle(t *testing.T) {
	assert.Equal(t, "@example", normalizeHandle("example"))
	assert.Equal(t, "@example", normalizeHandle(" @example "))
	assert.Equal(t, "@example", normalizeHandle("@@example"))
	assert.Empty(t, normalizeHandle("  "))
}

func TestGenerateTwitter_Core(t *testing.T) {
	m := &seo.Metadata{
		Title:       "T",
		Description: "D",
		Image:       "https://example.com/x.jpg",
	}
	site := &config.Site{Social: config.Social{TwitterSite: "example"}}

	out := GenerateTwitter(m, site)

	assert.Equal(t, cardSummaryLargeImage, findTag(t, out, "twitter:card").Attr("content"))
	assert.Equal(t, "@example", findTag(t, out, "twitter:site").Attr("content"))
	assert.Equal(t, "T", findTag(t, out, "twitter:title").Attr("content"))
	assert.Equal(t, "D", findTag(t, out, "twitter:description").Attr("content"))
	assert.Equal(t, "https://example.com/x.jpg", findTag(t, out, "twitter:image").Attr("content"))
	assert.Equal(t, "T", findTag(t, out, "twitter:image:alt").Attr("content"), "alt falls back to title")
}

func TestGenerateTwitter_Creator(t *testing.T) {
	site := &config.Site{Social: config.Social{TwitterCreator: "sitecreator"}}

	override := GenerateTwitter(&seo.Metadata{Title: "T", Author: "Ada", Twitter: seo.Twitter{Creator: "doccreator"}}, site)
	assert.Equal(t, "@doccreator", findTag(t, override, "twitter:creator").Attr("content"))

	author := GenerateTwitter(&seo.Metadata{Title: "T", Author: "Ada"}, site)
	assert.Equal(t, "@Ada", findTag(t, author, "twitter:creator").Attr("content"))

	fallback := GenerateTwitter(&seo.Metadata{Title: "T"}, site)
	assert.Equal(t, "@sitecreator", findTag(t, fallback, "twitter:creator").Attr("content"))
}

// TestGenerateTwitter_TitleTruncation: the truncation law from the tag
// consumer's side.
func TestGenerateTwitter_TitleTruncation(t *testing.T) {
	long := strings.Repeat("word ", 20) // 100 chars
	out := GenerateTwitter(&seo.Metadata{Title: long}, nil)

	title := findTag(t, out, "twitter:title").Attr("content")
	assert.LessOrEqual(t, len([]rune(title)), 73)
	assert.True(t, strings.HasSuffix(title, "..."))

	short := GenerateTwitter(&seo.Metadata{Title: "Short"}, nil)
	assert.Equal(t, "Short", findTag(t, short, "twitter:title").Attr("content"))
}

func TestGenerateTwitter_DescriptionLimit(t *testing.T) {
	long := strings.Repeat("z", 300)
	site := &config.Site{Social: config.Social{TwitterDescriptionLength: 100}}
	out := GenerateTwitter(&seo.Metadata{Title: "T", Description: long}, site)

	desc := findTag(t, out, "twitter:description").Attr("content")
	assert.Equal(t, strings.Repeat("z", 100)+"...", desc)
}

func TestGenerateTwitter_AppCard(t *testing.T) {
	m := &seo.Metadata{
		Title: "T",
		Twitter: seo.Twitter{
			Card:            "app",
			AppName:         "MyApp",
			AppIDiPhone:     "111",
			AppIDGooglePlay: "com.example.app",
		},
	}
	site := &config.Site{Social: config.Social{TwitterAppID: "999"}}
	out := GenerateTwitter(m, site)

	assert.Equal(t, "app", findTag(t, out, "twitter:card").Attr("content"))
	assert.Equal(t, "MyApp", findTag(t, out, "twitter:app:name:iphone").Attr("content"))
	assert.Equal(t, "111", findTag(t, out, "twitter:app:id:iphone").Attr("content"))
	assert.Equal(t, "999", findTag(t, out, "twitter:app:id:ipad").Attr("content"), "site-level id fills missing platforms")
	assert.Equal(t, "com.example.app", findTag(t, out, "twitter:app:id:googleplay").Attr("content"))
}

func TestGenerateTwitter_PlayerCard(t *testing.T) {
	m := &seo.Metadata{
		Title: "T",
		Image: "https://example.com/thumb.jpg",
		Twitter: seo.Twitter{
			Card:         "player",
			PlayerURL:    "https://example.com/player",
			PlayerWidth:  "640",
			PlayerHeight: "360",
			PlayerStream: "https://example.com/stream.mp4",
		},
	}
	out := GenerateTwitter(m, nil)

	assert.Equal(t, "player", findTag(t, out, "twitter:card").Attr("content"))
	assert.Equal(t, "https://example.com/player", findTag(t, out, "twitter:player").Attr("content"))
	assert.Equal(t, "640", findTag(t, out, "twitter:player:width").Attr("content"))
	assert.Equal(t, "360", findTag(t, out, "twitter:player:height").Attr("content"))
	assert.Equal(t, "https://example.com/stream.mp4", findTag(t, out, "twitter:player:stream").Attr("content"))
	assert.Equal(t, "https://example.com/thumb.jpg", findTag(t, out, "twitter:image").Attr("content"))
}
