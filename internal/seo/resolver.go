package seo

import (
	"strings"

	"git.home.luguber.info/inful/sitemeta/internal/config"
)

// Resolve builds the canonical metadata record for one document. It never
// fails: malformed front matter values degrade to defaults or empty fields.
//
// Each field walks a fixed priority chain, first non-empty wins:
// override block, card block, root field or configured fallback path, site
// default, auto-generation from the body.
func Resolve(path string, frontmatter map[string]any, content []byte, site *config.Site) *Metadata {
	if site == nil {
		site = &config.Site{}
	}
	f := newFields(frontmatter, site.SEOProperty)
	body := string(content)

	meta := &Metadata{}

	meta.Title = resolveTitle(f, body, site)
	meta.ContentType = resolveContentType(f)
	meta.Description = resolveDescription(f, body, site)
	meta.Image = resolveImage(f, site)
	meta.ImageAlt = resolveImageAlt(f)
	meta.CanonicalURL = resolveCanonical(f, path, site)
	meta.NoIndex = resolveNoIndex(f)
	meta.Robots = resolveRobots(f, meta.NoIndex, meta.ContentType, site)
	meta.PublishDate = resolvePublishDate(f, site)
	meta.ModifiedDate = resolveModifiedDate(f, site)
	meta.Author = resolveAuthor(f, site)
	meta.Keywords = resolveKeywords(f, site)

	meta.Section = resolveSection(f)
	meta.Product = resolveProduct(f)
	meta.Profile = resolveProfile(f)
	meta.Business = resolveBusiness(f)
	meta.Twitter = resolveTwitter(f)

	text := StripTags(body)
	meta.WordCount = countWords(text)
	meta.ReadingTime = readingTime(meta.WordCount)

	return meta
}

func resolveSection(f fields) string {
	v, ok := firstUsable(
		f.override("section"),
		f.root("section"),
		f.root("category"),
	)
	if !ok {
		return ""
	}
	return asString(v)
}

func resolveProduct(f fields) Product {
	pick := func(key string) string {
		v, ok := firstUsable(f.override(key), f.root(key))
		if !ok {
			return ""
		}
		return asString(v)
	}
	return Product{
		Brand:        pick("brand"),
		Availability: pick("availability"),
		Condition:    pick("condition"),
		Price:        pick("price"),
		Currency:     pick("currency"),
	}
}

func resolveProfile(f fields) Profile {
	block := asMap(f.block(f.seoKey)["profile"])
	pick := func(key string) string {
		if v, ok := block[key]; ok && usable(v) {
			return asString(v)
		}
		if v, ok := f.root(key)(); ok && usable(v) {
			return asString(v)
		}
		return ""
	}
	return Profile{
		FirstName: pick("firstName"),
		LastName:  pick("lastName"),
		Username:  pick("username"),
	}
}

func resolveBusiness(f fields) Business {
	pick := func(key string) string {
		v, ok := firstUsable(f.override(key), f.root(key))
		if !ok {
			return ""
		}
		return asString(v)
	}
	return Business{
		Address: pick("address"),
		Phone:   pick("phone"),
	}
}

// resolveTwitter reads the twitter sub-block of the override block plus the
// flat twitterCard/twitterCreator shorthands.
func resolveTwitter(f fields) Twitter {
	block := asMap(f.block(f.seoKey)["twitter"])
	pick := func(key string) string {
		if v, ok := block[key]; ok && usable(v) {
			return asString(v)
		}
		return ""
	}

	tw := Twitter{
		Card:    pick("card"),
		Creator: pick("creator"),

		AppName:          pick("appName"),
		AppIDiPhone:      pick("appIDiPhone"),
		AppIDiPad:        pick("appIDiPad"),
		AppIDGooglePlay:  pick("appIDGooglePlay"),
		AppURLiPhone:     pick("appURLiPhone"),
		AppURLiPad:       pick("appURLiPad"),
		AppURLGooglePlay: pick("appURLGooglePlay"),

		PlayerURL:    pick("playerURL"),
		PlayerWidth:  pick("playerWidth"),
		PlayerHeight: pick("playerHeight"),
		PlayerStream: pick("playerStream"),

		VideoURL:  pick("videoURL"),
		VideoType: pick("videoType"),
	}

	if tw.Card == "" {
		if v, ok := f.override("twitterCard")(); ok && usable(v) {
			tw.Card = asString(v)
		}
	}
	if tw.Creator == "" {
		if v, ok := f.override("twitterCreator")(); ok && usable(v) {
			tw.Creator = asString(v)
		}
	}
	return tw
}

func resolveTitle(f fields, body string, site *config.Site) string {
	v, ok := firstUsable(
		f.override("title"),
		f.card("title"),
		f.root("title"),
		f.path(site.Fallbacks.Title),
		constant(site.Defaults.Title),
		derived(func() string { return firstHeading(body) }),
	)
	if !ok {
		return DefaultTitle
	}
	if s := asString(v); s != "" {
		return s
	}
	return DefaultTitle
}

func resolveDescription(f fields, body string, site *config.Site) string {
	v, ok := firstUsable(
		f.override("description"),
		f.card("excerpt"),
		f.root("description"),
		f.path(site.Fallbacks.Description),
		constant(site.Defaults.Description),
	)
	if ok {
		if s := asString(v); s != "" {
			return s
		}
	}
	return autoDescription(body)
}

func resolveImage(f fields, site *config.Site) string {
	v, ok := firstUsable(
		f.override("image"),
		f.override("socialImage"),
		f.card("image"),
		f.root("image"),
		f.path(site.Fallbacks.Image),
		constant(site.Defaults.SocialImage),
	)
	if !ok {
		return ""
	}
	return absolutize(asString(v), site.Hostname)
}

func resolveImageAlt(f fields) string {
	v, ok := firstUsable(
		f.override("imageAlt"),
		f.card("imageAlt"),
	)
	if !ok {
		return ""
	}
	return asString(v)
}

func resolveCanonical(f fields, path string, site *config.Site) string {
	v, ok := firstUsable(
		f.override("canonical"),
		f.override("canonicalUrl"),
		f.root("canonical"),
	)
	if ok {
		if s := asString(v); s != "" {
			return s
		}
	}
	return canonicalFor(path, site.Hostname)
}

func resolveNoIndex(f fields) bool {
	if v, ok := f.override("noIndex")(); ok {
		return asBool(v)
	}
	if v, ok := f.root("noIndex")(); ok {
		return asBool(v)
	}
	return false
}

// resolveRobots: an explicit noIndex forces "noindex,nofollow" no matter
// what else is set; otherwise explicit directive, per-type default, site
// default, terminal default.
func resolveRobots(f fields, noIndex bool, ct ContentType, site *config.Site) string {
	if noIndex {
		return "noindex,nofollow"
	}
	v, ok := firstUsable(
		f.override("robots"),
		f.root("robots"),
	)
	if ok {
		if s := asString(v); s != "" {
			return s
		}
	}
	switch ct {
	case ContentTypeArticle, ContentTypePage, ContentTypeProduct:
		return DefaultRobots
	}
	if site.RobotsDefault != "" {
		return site.RobotsDefault
	}
	return DefaultRobots
}

func resolveContentType(f fields) ContentType {
	v, ok := firstUsable(
		f.override("type"),
		f.card("type"),
		f.root("type"),
	)
	if ok {
		switch ContentType(strings.ToLower(asString(v))) {
		case ContentTypeArticle:
			return ContentTypeArticle
		case ContentTypeProduct:
			return ContentTypeProduct
		case ContentTypeLocalBusiness:
			return ContentTypeLocalBusiness
		case ContentTypeProfile:
			return ContentTypeProfile
		case ContentTypePage:
			return ContentTypePage
		}
	}

	// Heuristic classification from the fields actually present.
	hasDate := f.hasCard("publishDate", "date") || f.has("date")
	hasAuthorOrTags := f.hasCard("author", "author") || f.has("tags")
	switch {
	case hasDate && hasAuthorOrTags:
		return ContentTypeArticle
	case f.has("price") || f.has("sku"):
		return ContentTypeProduct
	case f.has("address") || f.has("phone"):
		return ContentTypeLocalBusiness
	default:
		return ContentTypePage
	}
}

func resolvePublishDate(f fields, site *config.Site) string {
	v, ok := firstUsable(
		f.override("publishDate"),
		f.card("date"),
		f.root("publishDate"),
		f.root("date"),
		f.path(site.Fallbacks.PublishDate),
	)
	if !ok {
		return ""
	}
	return normalizeDate(v)
}

func resolveModifiedDate(f fields, site *config.Site) string {
	v, ok := firstUsable(
		f.override("modifiedDate"),
		f.card("updated"),
		f.root("modifiedDate"),
		f.root("lastmod"),
		f.path(site.Fallbacks.ModifiedDate),
	)
	if !ok {
		return ""
	}
	return normalizeDate(v)
}

func resolveAuthor(f fields, site *config.Site) string {
	v, ok := firstUsable(
		f.override("author"),
		f.card("author"),
		f.root("author"),
		f.path(site.Fallbacks.Author),
		constant(site.Defaults.SiteOwner),
	)
	if !ok {
		return ""
	}
	return asPerson(v)
}

func resolveKeywords(f fields, site *config.Site) []string {
	v, ok := firstUsable(
		f.override("keywords"),
		f.card("tags"),
		f.root("keywords"),
		f.root("tags"),
		f.path(site.Fallbacks.Keywords),
	)
	if !ok {
		return []string{}
	}
	return asKeywords(v)
}
