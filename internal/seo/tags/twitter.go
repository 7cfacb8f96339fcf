package tags

import (
	"strings"

	"git.home.luguber.info/inful/sitemeta/internal/config"
	"git.home.luguber.info/inful/sitemeta/internal/seo"
)

// Twitter card types.
const (
	cardSummary           = "summary"
	cardSummaryLargeImage = "summary_large_image"
	cardApp               = "app"
	cardPlayer            = "player"
)

const twitterTitleLimit = 70

// GenerateTwitter derives the Twitter Card tag set.
func GenerateTwitter(m *seo.Metadata, site *config.Site) []Tag {
	if site == nil {
		site = &config.Site{}
	}
	l := &list{}

	card := cardType(m, site)
	l.meta("twitter:card", card)
	l.meta("twitter:site", normalizeHandle(site.Social.TwitterSite))
	l.meta("twitter:creator", normalizeHandle(creator(m, site)))
	l.meta("twitter:title", seo.TruncateTitle(m.Title, twitterTitleLimit))

	limit := site.Social.TwitterDescriptionLength
	if limit <= 0 {
		limit = config.DefaultTwitterDescriptionLength
	}
	l.meta("twitter:description", seo.TruncateDescription(m.Description, limit))

	switch card {
	case cardSummary, cardSummaryLargeImage:
		if m.Image != "" {
			l.meta("twitter:image", m.Image)
			l.meta("twitter:image:alt", fallback(m.ImageAlt, m.Title))
		}
	case cardApp:
		l.meta("twitter:app:name:iphone", fallback(m.Twitter.AppName, site.Social.TwitterAppName))
		l.meta("twitter:app:id:iphone", fallback(m.Twitter.AppIDiPhone, site.Social.TwitterAppID))
		l.meta("twitter:app:url:iphone", m.Twitter.AppURLiPhone)
		l.meta("twitter:app:name:ipad", fallback(m.Twitter.AppName, site.Social.TwitterAppName))
		l.meta("twitter:app:id:ipad", fallback(m.Twitter.AppIDiPad, site.Social.TwitterAppID))
		l.meta("twitter:app:url:ipad", m.Twitter.AppURLiPad)
		l.meta("twitter:app:name:googleplay", fallback(m.Twitter.AppName, site.Social.TwitterAppName))
		l.meta("twitter:app:id:googleplay", m.Twitter.AppIDGooglePlay)
		l.meta("twitter:app:url:googleplay", m.Twitter.AppURLGooglePlay)
	case cardPlayer:
		l.meta("twitter:player", fallback(m.Twitter.PlayerURL, m.Twitter.VideoURL))
		l.meta("twitter:player:width", m.Twitter.PlayerWidth)
		l.meta("twitter:player:height", m.Twitter.PlayerHeight)
		l.meta("twitter:player:stream", m.Twitter.PlayerStream)
		if m.Image != "" {
			l.meta("twitter:image", m.Image)
		}
	}

	return l.tags
}

// cardType decides the card: per-document override, site override, then a
// heuristic over the resolved record. Unrecognized values fall back to
// summary.
func cardType(m *seo.Metadata, site *config.Site) string {
	if card, ok := knownCard(m.Twitter.Card); ok {
		return card
	}
	if m.Twitter.Card != "" {
		return cardSummary
	}
	if card, ok := knownCard(site.Social.TwitterCard); ok {
		return card
	}
	if site.Social.TwitterCard != "" {
		return cardSummary
	}

	switch {
	case m.Image != "":
		return cardSummaryLargeImage
	case m.Twitter.VideoType != "" || m.Twitter.VideoURL != "":
		return cardPlayer
	case m.Twitter.AppIDiPhone != "" || m.Twitter.AppIDiPad != "" || m.Twitter.AppIDGooglePlay != "" || site.Social.TwitterAppID != "":
		return cardApp
	default:
		return cardSummary
	}
}

func knownCard(v string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case cardSummary:
		return cardSummary, true
	case cardSummaryLargeImage:
		return cardSummaryLargeImage, true
	case cardApp:
		return cardApp, true
	case cardPlayer:
		return cardPlayer, true
	default:
		return "", false
	}
}

// normalizeHandle trims a handle and guarantees exactly one leading @.
func normalizeHandle(handle string) string {
	handle = strings.TrimSpace(handle)
	if handle == "" {
		return ""
	}
	return "@" + strings.TrimLeft(handle, "@")
}

// creator: per-document override, then the document author, then the site
// default creator.
func creator(m *seo.Metadata, site *config.Site) string {
	if m.Twitter.Creator != "" {
		return m.Twitter.Creator
	}
	if m.Author != "" {
		return m.Author
	}
	return site.Social.TwitterCreator
}

func fallback(v, def string) string {
	if v != "" {
		return v
	}
	return def
}
