package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

const (
	// DefaultSEOProperty is the front matter key consulted for overrides.
	DefaultSEOProperty = "seo"

	// DefaultViewport matches the conventional mobile-friendly viewport.
	DefaultViewport = "width=device-width, initial-scale=1.0"

	// DefaultTwitterDescriptionLength caps twitter:description content.
	DefaultTwitterDescriptionLength = 200

	// DefaultWaveSize is the number of documents processed concurrently.
	DefaultWaveSize = 10

	// DefaultDocumentTimeout bounds a single document's pipeline.
	DefaultDocumentTimeout = 30 * time.Second
)

// applyDefaults fills unset fields with their documented defaults.
func (c *Config) applyDefaults() {
	if c.Site.SEOProperty == "" {
		c.Site.SEOProperty = DefaultSEOProperty
	}
	if c.Site.Social.Viewport == "" {
		c.Site.Social.Viewport = DefaultViewport
	}
	if c.Site.Social.TwitterDescriptionLength <= 0 {
		c.Site.Social.TwitterDescriptionLength = DefaultTwitterDescriptionLength
	}
	if c.Content.WaveSize <= 0 {
		c.Content.WaveSize = DefaultWaveSize
	}
	if c.Content.Timeout <= 0 {
		c.Content.Timeout = DefaultDocumentTimeout
	}

	// A trailing slash on the hostname would produce double slashes when
	// joining document paths.
	c.Site.Hostname = strings.TrimRight(c.Site.Hostname, "/")
}

// Validate checks the configuration for errors that would make a build
// meaningless rather than merely sparse.
func (c *Config) Validate() error {
	if c.Site.Hostname == "" {
		return fmt.Errorf("site.hostname is required")
	}
	u, err := url.Parse(c.Site.Hostname)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("site.hostname must be an absolute URL: %q", c.Site.Hostname)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("site.hostname must use http or https, got %q", u.Scheme)
	}

	if c.Content.Dir == "" {
		return fmt.Errorf("content.dir is required")
	}

	for field, path := range map[string]string{
		"title":         c.Site.Fallbacks.Title,
		"description":   c.Site.Fallbacks.Description,
		"image":         c.Site.Fallbacks.Image,
		"author":        c.Site.Fallbacks.Author,
		"publish_date":  c.Site.Fallbacks.PublishDate,
		"modified_date": c.Site.Fallbacks.ModifiedDate,
		"keywords":      c.Site.Fallbacks.Keywords,
	} {
		if path == "" {
			continue
		}
		if strings.HasPrefix(path, ".") || strings.HasSuffix(path, ".") || strings.Contains(path, "..") {
			return fmt.Errorf("fallbacks.%s: malformed dot-path %q", field, path)
		}
	}

	return nil
}

// ExampleYAML is written by the init command as a starting configuration.
const ExampleYAML = `# sitemeta configuration
site:
  hostname: https://example.com
  # Front matter key holding per-document SEO overrides.
  seo_property: seo
  language: en
  theme_color: "#1a1a2e"

  defaults:
    title: Example Site
    description: An example website.
    social_image: /images/social-default.png
    site_owner: Example Author

  # Alternate front matter dot-paths consulted before site defaults.
  fallbacks:
    title: page.heading

  social:
    site_name: Example Site
    locale: en_US
    twitter_site: "@example"
    viewport: "width=device-width, initial-scale=1.0"

  jsonld:
    search_url: https://example.com/search?q={search_term_string}
    organization:
      name: Example Inc.
      url: https://example.com
      logo: https://example.com/logo.png

content:
  dir: ./public
  wave_size: 10
  timeout: 30s
  # store_path: ./sitemeta.db
`
