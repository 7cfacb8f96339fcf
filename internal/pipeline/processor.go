package pipeline

import (
	"git.home.luguber.info/inful/sitemeta/internal/config"
	"git.home.luguber.info/inful/sitemeta/internal/headmutate"
	"git.home.luguber.info/inful/sitemeta/internal/seo"
	"git.home.luguber.info/inful/sitemeta/internal/seo/tags"
)

// criticalMetaNames are injected ahead of everything else so parsers see them
// early in the head.
var criticalMetaNames = map[string]bool{
	"viewport":    true,
	"description": true,
	"robots":      true,
}

// repeatableMetaNames carry one value per tag, so they are inserted rather
// than upserted: replace-by-key would collapse them to the last value.
// RemoveManaged clears them before re-injection, which keeps repeated builds
// idempotent.
var repeatableMetaNames = map[string]bool{
	"article:tag": true,
	"fb:admins":   true,
}

// Processor runs the full resolve/generate/mutate sequence for one document.
type Processor struct {
	Site *config.Site
}

func NewProcessor(site *config.Site) *Processor {
	return &Processor{Site: site}
}

// Process resolves metadata for doc and mutates its head markup in place.
// Non-HTML documents pass through unchanged. A document marked noindex keeps
// its resolved metadata but is not mutated unless the site is configured to
// include noindex pages. Mutation failure leaves the original content intact.
func (p *Processor) Process(doc *Document) error {
	if doc.Kind == KindOther || len(doc.HTML) == 0 {
		doc.Skipped = true
		doc.SkipReason = "not an HTML document"
		return nil
	}

	meta := seo.Resolve(doc.Path, doc.FrontMatter, doc.Body, p.Site)
	doc.Meta = meta

	if meta.NoIndex && !p.Site.SitemapIncludeNoIndex {
		doc.Skipped = true
		doc.SkipReason = "noindex"
		return nil
	}

	metaTags := tags.GenerateMeta(meta, p.Site)
	ogTags := tags.GenerateOpenGraph(meta, p.Site)
	twitterTags := tags.GenerateTwitter(meta, p.Site)
	_, script := tags.GenerateJSONLD(meta, p.Site)

	m, err := headmutate.Parse(doc.HTML)
	if err != nil {
		return nil
	}
	m.EnsureHead()
	m.RemoveManaged(nil)
	m.EnsureTitle()
	m.SetTitle(meta.Title)

	critical, links, rest := splitTags(metaTags)
	for _, t := range critical {
		p.apply(m, t)
	}
	for _, t := range links {
		p.apply(m, t)
	}
	for _, t := range rest {
		p.apply(m, t)
	}
	for _, t := range ogTags {
		p.apply(m, t)
	}
	for _, t := range twitterTags {
		p.apply(m, t)
	}
	if script.Text != "" {
		m.AppendScript(script.Text, script.Attr("type"), headmutate.PositionEnd)
	}

	out, err := m.Render()
	if err != nil {
		return nil
	}
	doc.HTML = out
	return nil
}

// splitTags partitions a generated tag set into critical metas, links, and
// the remainder, preserving relative order within each group.
func splitTags(ts []tags.Tag) (critical, links, rest []tags.Tag) {
	for _, t := range ts {
		switch {
		case t.Kind == tags.KindLink:
			links = append(links, t)
		case t.Kind == tags.KindMeta && criticalMetaNames[t.Name()]:
			critical = append(critical, t)
		default:
			rest = append(rest, t)
		}
	}
	return critical, links, rest
}

func (p *Processor) apply(m *headmutate.Mutator, t tags.Tag) {
	switch t.Kind {
	case tags.KindMeta:
		if repeatableMetaNames[t.Name()] {
			m.InsertMeta(metaAttrKind(t), t.Name(), t.Attr("content"))
			return
		}
		m.UpsertMeta(metaAttrKind(t), t.Name(), t.Attr("content"))
	case tags.KindLink:
		m.UpsertLink(t.Attr("rel"), t.Attr("href"), linkExtras(t))
	case tags.KindScript:
		m.AppendScript(t.Text, t.Attr("type"), headmutate.PositionEnd)
	}
}

func metaAttrKind(t tags.Tag) headmutate.AttrKind {
	switch {
	case t.Attr("property") != "":
		return headmutate.AttrProperty
	case t.Attr("http-equiv") != "":
		return headmutate.AttrHTTPEquiv
	default:
		return headmutate.AttrName
	}
}

func linkExtras(t tags.Tag) map[string]string {
	var extra map[string]string
	for _, a := range t.Attrs {
		if a.Key == "rel" || a.Key == "href" {
			continue
		}
		if extra == nil {
			extra = make(map[string]string)
		}
		extra[a.Key] = a.Value
	}
	return extra
}
