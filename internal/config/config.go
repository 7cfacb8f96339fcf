package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	Site    Site    `yaml:"site"`
	Content Content `yaml:"content"`
}

// Site holds everything the resolver and tag generators need to know about
// the site being built. It is read-only for the duration of a batch.
type Site struct {
	// Hostname is the absolute base URL of the site (e.g. https://example.com).
	Hostname string `yaml:"hostname"`

	// SEOProperty is the front matter key holding per-document SEO overrides.
	SEOProperty string `yaml:"seo_property,omitempty"`

	// Language is the site content language (BCP 47, e.g. "en" or "de-DE").
	Language string `yaml:"language,omitempty"`

	ThemeColor string `yaml:"theme_color,omitempty"`
	Publisher  string `yaml:"publisher,omitempty"`
	Copyright  string `yaml:"copyright,omitempty"`

	// RobotsDefault is used when neither the document nor the content type
	// provides a robots directive.
	RobotsDefault string `yaml:"robots_default,omitempty"`

	// SitemapIncludeNoIndex keeps noindex documents in the mutation path so
	// the external sitemap builder still sees their canonical URLs.
	SitemapIncludeNoIndex bool `yaml:"sitemap_include_noindex,omitempty"`

	Defaults  Defaults  `yaml:"defaults,omitempty"`
	Fallbacks Fallbacks `yaml:"fallbacks,omitempty"`
	Social    Social    `yaml:"social,omitempty"`
	JSONLD    JSONLD    `yaml:"jsonld,omitempty"`
	Googlebot Googlebot `yaml:"googlebot,omitempty"`
}

// Defaults are site-wide fallback values consulted after document fields.
type Defaults struct {
	Title       string `yaml:"title,omitempty"`
	Description string `yaml:"description,omitempty"`
	SocialImage string `yaml:"social_image,omitempty"`
	SiteOwner   string `yaml:"site_owner,omitempty"`
}

// Fallbacks maps resolver fields to alternate front matter dot-paths
// (e.g. "page.meta.title"). Only the enumerated fields below participate;
// unknown fields are rejected during validation.
type Fallbacks struct {
	Title        string `yaml:"title,omitempty"`
	Description  string `yaml:"description,omitempty"`
	Image        string `yaml:"image,omitempty"`
	Author       string `yaml:"author,omitempty"`
	PublishDate  string `yaml:"publish_date,omitempty"`
	ModifiedDate string `yaml:"modified_date,omitempty"`
	Keywords     string `yaml:"keywords,omitempty"`
}

// Social configures Open Graph and Twitter Card site-level values.
type Social struct {
	SiteName       string     `yaml:"site_name,omitempty"`
	Locale         string     `yaml:"locale,omitempty"`
	TwitterSite    string     `yaml:"twitter_site,omitempty"`
	TwitterCreator string     `yaml:"twitter_creator,omitempty"`
	TwitterCard    string     `yaml:"twitter_card,omitempty"`
	FacebookAppID  string     `yaml:"facebook_app_id,omitempty"`
	FacebookAdmins StringList `yaml:"facebook_admins,omitempty"`
	Viewport       string     `yaml:"viewport,omitempty"`

	// TwitterDescriptionLength caps twitter:description; 0 means the default.
	TwitterDescriptionLength int `yaml:"twitter_description_length,omitempty"`

	// Site-level fallbacks for app cards.
	TwitterAppID   string `yaml:"twitter_app_id,omitempty"`
	TwitterAppName string `yaml:"twitter_app_name,omitempty"`
}

// JSONLD configures structured data emission.
type JSONLD struct {
	Organization   *Organization `yaml:"organization,omitempty"`
	SearchURL      string        `yaml:"search_url,omitempty"`
	EnableSchemas  []string      `yaml:"enable_schemas,omitempty"`
	AlternateNames StringList    `yaml:"alternate_names,omitempty"`
}

// Organization describes the publishing organization for JSON-LD.
type Organization struct {
	Name   string   `yaml:"name"`
	URL    string   `yaml:"url,omitempty"`
	Logo   string   `yaml:"logo,omitempty"`
	SameAs []string `yaml:"same_as,omitempty"`
}

// Googlebot holds the optional googlebot directive parts. Pointers keep
// presence explicit: a configured zero is distinct from unset, and -1 is a
// valid "unlimited" value for snippet and video preview lengths.
type Googlebot struct {
	MaxSnippet      *int   `yaml:"max_snippet,omitempty"`
	MaxImagePreview string `yaml:"max_image_preview,omitempty"`
	MaxVideoPreview *int   `yaml:"max_video_preview,omitempty"`
}

// Content configures the host pipeline around the core engine.
type Content struct {
	Dir       string        `yaml:"dir"`
	WaveSize  int           `yaml:"wave_size,omitempty"`
	Timeout   time.Duration `yaml:"timeout,omitempty"`
	StorePath string        `yaml:"store_path,omitempty"`
	GitDates  bool          `yaml:"git_dates,omitempty"`
}

// StringList accepts either a YAML scalar or a sequence and normalizes both
// to a list of strings. Several social/JSON-LD fields allow both shapes.
type StringList []string

// UnmarshalYAML implements yaml.Unmarshaler.
func (l *StringList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var s string
		if err := node.Decode(&s); err != nil {
			return err
		}
		if s == "" {
			*l = nil
			return nil
		}
		*l = StringList{s}
		return nil
	case yaml.SequenceNode:
		var items []string
		if err := node.Decode(&items); err != nil {
			return err
		}
		*l = StringList(items)
		return nil
	default:
		return fmt.Errorf("expected string or list, got yaml kind %d", node.Kind)
	}
}

// Load loads configuration from the specified file.
func Load(configPath string) (*Config, error) {
	loadEnvFiles()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("configuration file not found: %s", configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return Parse(data)
}

// Parse parses configuration from raw YAML. Environment variables in the
// document are expanded before unmarshaling.
func Parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}
