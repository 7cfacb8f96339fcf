package tags

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"git.home.luguber.info/inful/sitemeta/internal/config"
	"git.home.luguber.info/inful/sitemeta/internal/seo"
)

func TestGenerateOpenGraph_Core(t *testing.T) {
	m := &seo.Metadata{
		Title:        "T",
		Description:  "D",
		CanonicalURL: "https://example.com/t",
		ContentType:  seo.ContentTypePage,
	}
	site := &config.Site{Social: config.Social{SiteName: "Example", Locale: "en_US"}}

	out := GenerateOpenGraph(m, site)

	assert.Equal(t, "T", findTag(t, out, "og:title").Attr("content"))
	assert.Equal(t, "website", findTag(t, out, "og:type").Attr("content"))
	assert.Equal(t, "https://example.com/t", findTag(t, out, "og:url").Attr("content"))
	assert.Equal(t, "D", findTag(t, out, "og:description").Attr("content"))
	assert.Equal(t, "Example", findTag(t, out, "og:site_name").Attr("content"))
	assert.Equal(t, "en_US", findTag(t, out, "og:locale").Attr("content"))
	assert.False(t, hasTag(out, "og:image"))
}

// Scenario: a document with an image gets the full image tag group with
// default dimensions.
func TestGenerateOpenGraph_Image(t *testing.T) {
	m := &seo.Metadata{
		Title:       "T",
		Image:       "https://example.com/x.jpg",
		ContentType: seo.ContentTypePage,
	}
	out := GenerateOpenGraph(m, nil)

	assert.Equal(t, "https://example.com/x.jpg", findTag(t, out, "og:image").Attr("content"))
	assert.Equal(t, "1200", findTag(t, out, "og:image:width").Attr("content"))
	assert.Equal(t, "630", findTag(t, out, "og:image:height").Attr("content"))
	assert.Equal(t, "T", findTag(t, out, "og:image:alt").Attr("content"))
	assert.Equal(t, "image/jpeg", findTag(t, out, "og:image:type").Attr("content"))
}

func TestGenerateOpenGraph_ImageMIMETypes(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"/a.png", "image/png"},
		{"/a.webp", "image/webp"},
		{"/a.svg", "image/svg+xml"},
		{"/a.jpg?v=2", "image/jpeg"},
		{"/a.bin", ""},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.want, imageMIMEType(tt.url))
		})
	}
}

func TestGenerateOpenGraph_TypeMap(t *testing.T) {
	tests := []struct {
		ct   seo.ContentType
		want string
	}{
		{seo.ContentTypeArticle, "article"},
		{seo.ContentTypeProduct, "product"},
		{seo.ContentTypeProfile, "profile"},
		{seo.ContentTypePage, "website"},
		{seo.ContentTypeLocalBusiness, "business.business"},
		{seo.ContentType("mystery"), "website"},
	}
	for _, tt := range tests {
		t.Run(string(tt.ct), func(t *testing.T) {
			out := GenerateOpenGraph(&seo.Metadata{Title: "T", ContentType: tt.ct}, nil)
			assert.Equal(t, tt.want, findTag(t, out, "og:type").Attr("content"))
		})
	}
}

func TestGenerateOpenGraph_ArticleExtras(t *testing.T) {
	m := &seo.Metadata{
		Title:       "T",
		ContentType: seo.ContentTypeArticle,
		PublishDate: "2025-01-02T00:00:00Z",
		Author:      "Ada",
		Section:     "Engineering",
		Keywords:    []string{"go"},
		ReadingTime: "3 min read",
	}
	out := GenerateOpenGraph(m, nil)

	assert.Equal(t, "2025-01-02T00:00:00Z", findTag(t, out, "article:published_time").Attr("content"))
	assert.Equal(t, "Ada", findTag(t, out, "article:author").Attr("content"))
	assert.Equal(t, "Engineering", findTag(t, out, "article:section").Attr("content"))
	assert.Equal(t, "go", findTag(t, out, "article:tag").Attr("content"))
	assert.Equal(t, "3 min read", findTag(t, out, "article:reading_time").Attr("content"))
}

func TestGenerateOpenGraph_ProductAndProfileExtras(t *testing.T) {
	product := &seo.Metadata{
		Title:       "Widget",
		ContentType: seo.ContentTypeProduct,
		Product: seo.Product{
			Brand: "Acme", Availability: "in stock", Condition: "new",
			Price: "19.99", Currency: "EUR",
		},
	}
	out := GenerateOpenGraph(product, nil)
	assert.Equal(t, "Acme", findTag(t, out, "product:brand").Attr("content"))
	assert.Equal(t, "19.99", findTag(t, out, "product:price:amount").Attr("content"))
	assert.Equal(t, "EUR", findTag(t, out, "product:price:currency").Attr("content"))

	profile := &seo.Metadata{
		Title:       "Ada",
		ContentType: seo.ContentTypeProfile,
		Profile:     seo.Profile{FirstName: "Ada", LastName: "Lovelace", Username: "ada"},
	}
	out = GenerateOpenGraph(profile, nil)
	assert.Equal(t, "Ada", findTag(t, out, "profile:first_name").Attr("content"))
	assert.Equal(t, "Lovelace", findTag(t, out, "profile:last_name").Attr("content"))
	assert.Equal(t, "ada", findTag(t, out, "profile:username").Attr("content"))
}

func TestGenerateOpenGraph_Facebook(t *testing.T) {
	site := &config.Site{Social: config.Social{
		FacebookAppID:  "112233",
		FacebookAdmins: config.StringList{"a1", "a2"},
	}}
	out := GenerateOpenGraph(&seo.Metadata{Title: "T"}, site)

	assert.Equal(t, "112233", findTag(t, out, "fb:app_id").Attr("content"))

	var admins []string
	for _, tag := range out {
		if tag.Name() == "fb:admins" {
			admins = append(admins, tag.Attr("content"))
		}
	}
	assert.Equal(t, []string{"a1", "a2"}, admins)
}

func TestOGLocale(t *testing.T) {
	tests := []struct {
		name string
		site *config.Site
		want string
	}{
		{"default", &config.Site{}, "en_US"},
		{"explicit underscore", &config.Site{Social: config.Social{Locale: "de_DE"}}, "de_DE"},
		{"explicit hyphen normalized", &config.Site{Social: config.Social{Locale: "fr-FR"}}, "fr_FR"},
		{"language fallback", &config.Site{Language: "nb-NO"}, "nb_NO"},
		{"unparsable passes through", &config.Site{Social: config.Social{Locale: "??"}}, "??"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ogLocale(tt.site))
		})
	}
}
