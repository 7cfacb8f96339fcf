// Package seo resolves one canonical metadata record per document from the
// competing data sources a static site carries: per-document SEO overrides,
// content-preview card blocks, root-level front matter, site defaults, and
// values derived from the document body itself.
package seo

// ContentType classifies a document for tag generation.
type ContentType string

const (
	ContentTypeArticle       ContentType = "article"
	ContentTypeProduct       ContentType = "product"
	ContentTypeLocalBusiness ContentType = "local-business"
	ContentTypeProfile       ContentType = "profile"
	ContentTypePage          ContentType = "page"
)

// Metadata is the resolved, self-consistent record for one document. Every
// field is populated or deliberately empty; generators never see partial or
// unparsed values. Dates are RFC 3339 UTC strings or empty. Keywords is never
// nil. Instances are not mutated after construction.
type Metadata struct {
	Title        string
	Description  string
	Image        string
	ImageAlt     string
	CanonicalURL string
	Robots       string
	NoIndex      bool
	ContentType  ContentType
	PublishDate  string
	ModifiedDate string
	Author       string
	Keywords     []string
	WordCount    int
	ReadingTime  string
	Section      string

	// Type- and card-specific extensions. Zero values mean "not provided";
	// generators omit the corresponding tags.
	Product  Product
	Profile  Profile
	Business Business
	Twitter  Twitter
}

// Product carries commerce fields for product documents.
type Product struct {
	Brand        string
	Availability string
	Condition    string
	Price        string
	Currency     string
}

// Profile carries person fields for profile documents.
type Profile struct {
	FirstName string
	LastName  string
	Username  string
}

// Business carries contact fields for local-business documents.
type Business struct {
	Address string
	Phone   string
}

// Twitter carries per-document Twitter Card overrides and the app/player
// payloads consumed by the respective card types.
type Twitter struct {
	Card    string
	Creator string

	AppName          string
	AppIDiPhone      string
	AppIDiPad        string
	AppIDGooglePlay  string
	AppURLiPhone     string
	AppURLiPad       string
	AppURLGooglePlay string

	PlayerURL    string
	PlayerWidth  string
	PlayerHeight string
	PlayerStream string

	VideoURL  string
	VideoType string
}

// DefaultTitle is used when no source yields a title.
const DefaultTitle = "Untitled"

// DefaultRobots is the terminal fallback of the robots chain.
const DefaultRobots = "index,follow"
