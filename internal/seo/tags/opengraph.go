package tags

import (
	"path"
	"strings"

	"golang.org/x/text/language"

	"git.home.luguber.info/inful/sitemeta/internal/config"
	"git.home.luguber.info/inful/sitemeta/internal/seo"
)

// ogTypes maps content types to Open Graph object types. Unknown content
// types map to website.
var ogTypes = map[seo.ContentType]string{
	seo.ContentTypeArticle:       "article",
	seo.ContentTypeProduct:       "product",
	seo.ContentTypeProfile:       "profile",
	seo.ContentTypePage:          "website",
	seo.ContentTypeLocalBusiness: "business.business",
}

// imageMIMETypes maps image file extensions to og:image:type values.
var imageMIMETypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
	".svg":  "image/svg+xml",
	".avif": "image/avif",
}

const (
	defaultImageWidth  = "1200"
	defaultImageHeight = "630"
	defaultOGLocale    = "en_US"
)

// GenerateOpenGraph derives the Open Graph tag set.
func GenerateOpenGraph(m *seo.Metadata, site *config.Site) []Tag {
	if site == nil {
		site = &config.Site{}
	}
	l := &list{}

	l.property("og:title", m.Title)
	l.property("og:type", ogType(m.ContentType))
	l.property("og:url", m.CanonicalURL)
	l.property("og:description", m.Description)

	if m.Image != "" {
		l.property("og:image", m.Image)
		l.property("og:image:width", defaultImageWidth)
		l.property("og:image:height", defaultImageHeight)
		alt := m.ImageAlt
		if alt == "" {
			alt = m.Title
		}
		l.property("og:image:alt", alt)
		l.property("og:image:type", imageMIMEType(m.Image))
	}

	l.property("og:site_name", site.Social.SiteName)
	l.property("og:locale", ogLocale(site))

	switch m.ContentType {
	case seo.ContentTypeArticle:
		l.property("article:published_time", m.PublishDate)
		l.property("article:modified_time", m.ModifiedDate)
		l.property("article:author", m.Author)
		l.property("article:section", m.Section)
		for _, kw := range m.Keywords {
			l.property("article:tag", kw)
		}
		l.property("article:reading_time", m.ReadingTime)
	case seo.ContentTypeProduct:
		l.property("product:brand", m.Product.Brand)
		l.property("product:availability", m.Product.Availability)
		l.property("product:condition", m.Product.Condition)
		l.property("product:price:amount", m.Product.Price)
		l.property("product:price:currency", m.Product.Currency)
	case seo.ContentTypeProfile:
		l.property("profile:first_name", m.Profile.FirstName)
		l.property("profile:last_name", m.Profile.LastName)
		l.property("profile:username", m.Profile.Username)
	}

	l.property("fb:app_id", site.Social.FacebookAppID)
	for _, admin := range site.Social.FacebookAdmins {
		l.property("fb:admins", admin)
	}

	return l.tags
}

func ogType(ct seo.ContentType) string {
	if t, ok := ogTypes[ct]; ok {
		return t
	}
	return "website"
}

// imageMIMEType guesses the og:image:type from the URL's extension.
// Unknown extensions emit no type tag.
func imageMIMEType(imageURL string) string {
	ext := strings.ToLower(path.Ext(stripQuery(imageURL)))
	return imageMIMETypes[ext]
}

func stripQuery(u string) string {
	if i := strings.IndexAny(u, "?#"); i >= 0 {
		return u[:i]
	}
	return u
}

// ogLocale resolves the og:locale value: explicit social locale, then the
// site language, then en_US. Values are normalized through BCP 47 parsing to
// the underscore form Open Graph expects.
func ogLocale(site *config.Site) string {
	raw := site.Social.Locale
	if raw == "" {
		raw = site.Language
	}
	if raw == "" {
		return defaultOGLocale
	}
	return normalizeLocale(raw)
}

func normalizeLocale(raw string) string {
	tag, err := language.Parse(strings.ReplaceAll(raw, "_", "-"))
	if err != nil {
		return strings.ReplaceAll(raw, "-", "_")
	}
	return strings.ReplaceAll(tag.String(), "-", "_")
}
