package tags

import (
	"encoding/json"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"git.home.luguber.info/inful/sitemeta/internal/config"
	"git.home.luguber.info/inful/sitemeta/internal/seo"
)

const schemaContext = "https://schema.org"

// Schema is one JSON-LD object.
type Schema map[string]any

// setIf assigns a schema property only when the value is non-empty.
func setIf(s Schema, key, value string) {
	if value == "" {
		return
	}
	s[key] = value
}

// GenerateJSONLD builds the ordered schema list for a document and its
// serialized script tag. The order is WebSite, the content schema,
// BreadcrumbList, Organization; site configuration decides which of the
// optional schemas appear, and EnableSchemas can restrict the set further.
func GenerateJSONLD(m *seo.Metadata, site *config.Site) ([]Schema, Tag) {
	if site == nil {
		site = &config.Site{}
	}

	schemas := []Schema{}
	if ws := websiteSchema(site); ws != nil {
		schemas = append(schemas, ws)
	}
	schemas = append(schemas, contentSchema(m, site))
	if bc := breadcrumbSchema(m, site); bc != nil {
		schemas = append(schemas, bc)
	}
	if org := organizationSchema(site); org != nil {
		schemas = append(schemas, org)
	}

	schemas = filterSchemas(schemas, site.JSONLD.EnableSchemas)

	return schemas, scriptTag(schemas)
}

func websiteSchema(site *config.Site) Schema {
	if site.Social.SiteName == "" {
		return nil
	}
	s := Schema{
		"@context": schemaContext,
		"@type":    "WebSite",
		"name":     site.Social.SiteName,
	}
	if site.Hostname != "" {
		s["url"] = site.Hostname
	}
	if len(site.JSONLD.AlternateNames) > 0 {
		s["alternateName"] = []string(site.JSONLD.AlternateNames)
	}
	if site.JSONLD.SearchURL != "" {
		s["potentialAction"] = Schema{
			"@type":       "SearchAction",
			"target":      site.JSONLD.SearchURL,
			"query-input": "required name=search_term_string",
		}
	}
	return s
}

func contentSchema(m *seo.Metadata, site *config.Site) Schema {
	switch m.ContentType {
	case seo.ContentTypeArticle:
		return articleSchema(m, site)
	case seo.ContentTypeProduct:
		return productSchema(m)
	case seo.ContentTypeLocalBusiness:
		return localBusinessSchema(m)
	default:
		return webPageSchema(m)
	}
}

func articleSchema(m *seo.Metadata, site *config.Site) Schema {
	s := Schema{
		"@context": schemaContext,
		"@type":    "Article",
		"headline": m.Title,
	}
	setIf(s, "description", m.Description)
	setIf(s, "url", m.CanonicalURL)
	setIf(s, "image", m.Image)
	setIf(s, "datePublished", m.PublishDate)
	setIf(s, "dateModified", m.ModifiedDate)
	if m.Author != "" {
		s["author"] = Schema{"@type": "Person", "name": m.Author}
	}
	if len(m.Keywords) > 0 {
		s["keywords"] = strings.Join(m.Keywords, ", ")
	}
	if m.WordCount > 0 {
		s["wordCount"] = m.WordCount
	}
	if org := site.JSONLD.Organization; org != nil {
		s["publisher"] = Schema{"@type": "Organization", "name": org.Name}
	}
	return s
}

func productSchema(m *seo.Metadata) Schema {
	s := Schema{
		"@context": schemaContext,
		"@type":    "Product",
		"name":     m.Title,
	}
	setIf(s, "description", m.Description)
	setIf(s, "image", m.Image)
	if m.Product.Brand != "" {
		s["brand"] = Schema{"@type": "Brand", "name": m.Product.Brand}
	}
	if m.Product.Price != "" {
		offer := Schema{"@type": "Offer", "price": m.Product.Price}
		setIf(offer, "priceCurrency", m.Product.Currency)
		setIf(offer, "availability", m.Product.Availability)
		setIf(offer, "itemCondition", m.Product.Condition)
		s["offers"] = offer
	}
	return s
}

func localBusinessSchema(m *seo.Metadata) Schema {
	s := Schema{
		"@context": schemaContext,
		"@type":    "LocalBusiness",
		"name":     m.Title,
	}
	setIf(s, "description", m.Description)
	setIf(s, "url", m.CanonicalURL)
	setIf(s, "image", m.Image)
	setIf(s, "address", m.Business.Address)
	setIf(s, "telephone", m.Business.Phone)
	return s
}

func webPageSchema(m *seo.Metadata) Schema {
	s := Schema{
		"@context": schemaContext,
		"@type":    "WebPage",
		"name":     m.Title,
	}
	setIf(s, "description", m.Description)
	setIf(s, "url", m.CanonicalURL)
	return s
}

// breadcrumbSchema derives a BreadcrumbList from the canonical URL's path
// segments. It needs a configured hostname and at least one segment; an
// explicit canonical pointing at another host yields no breadcrumb, since its
// path says nothing about this site's structure.
func breadcrumbSchema(m *seo.Metadata, site *config.Site) Schema {
	if site.Hostname == "" {
		return nil
	}
	host := strings.TrimRight(site.Hostname, "/")
	if !strings.HasPrefix(m.CanonicalURL, host+"/") {
		return nil
	}
	rel := strings.TrimPrefix(m.CanonicalURL, host)
	segments := []string{}
	for _, seg := range strings.Split(strings.Trim(rel, "/"), "/") {
		if seg != "" {
			segments = append(segments, seg)
		}
	}
	if len(segments) == 0 {
		return nil
	}

	titleCaser := cases.Title(language.English)
	items := make([]Schema, 0, len(segments))
	cumulative := host
	for i, seg := range segments {
		cumulative += "/" + seg
		items = append(items, Schema{
			"@type":    "ListItem",
			"position": i + 1,
			"name":     titleCaser.String(strings.ReplaceAll(seg, "-", " ")),
			"item":     cumulative,
		})
	}

	return Schema{
		"@context":        schemaContext,
		"@type":           "BreadcrumbList",
		"itemListElement": items,
	}
}

func organizationSchema(site *config.Site) Schema {
	org := site.JSONLD.Organization
	if org == nil || org.Name == "" {
		return nil
	}
	s := Schema{
		"@context": schemaContext,
		"@type":    "Organization",
		"name":     org.Name,
	}
	setIf(s, "url", org.URL)
	if org.Logo != "" {
		s["logo"] = Schema{"@type": "ImageObject", "url": org.Logo}
	}
	if len(org.SameAs) > 0 {
		s["sameAs"] = org.SameAs
	}
	return s
}

// filterSchemas keeps only enabled @type values. An empty enable list keeps
// everything.
func filterSchemas(schemas []Schema, enabled []string) []Schema {
	if len(enabled) == 0 {
		return schemas
	}
	allowed := make(map[string]bool, len(enabled))
	for _, name := range enabled {
		allowed[strings.ToLower(name)] = true
	}
	out := []Schema{}
	for _, s := range schemas {
		if t, _ := s["@type"].(string); allowed[strings.ToLower(t)] {
			out = append(out, s)
		}
	}
	return out
}

// scriptTag serializes the schema list into one ld+json script tag. A single
// schema is emitted as-is; several are folded under a graph wrapper with the
// per-item context stripped.
func scriptTag(schemas []Schema) Tag {
	var payload any
	switch len(schemas) {
	case 0:
		return Tag{}
	case 1:
		payload = schemas[0]
	default:
		items := make([]Schema, 0, len(schemas))
		for _, s := range schemas {
			stripped := make(Schema, len(s))
			for k, v := range s {
				if k == "@context" {
					continue
				}
				stripped[k] = v
			}
			items = append(items, stripped)
		}
		payload = Schema{"@context": schemaContext, "@graph": items}
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return Tag{}
	}
	return NewScript("application/ld+json", string(data))
}
