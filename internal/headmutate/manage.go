package headmutate

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// DefaultManagedNames are the meta tag names (and the canonical link)
// this system injects and therefore owns. Removing them before re-injection
// is what makes repeated builds idempotent.
var DefaultManagedNames = []string{
	"description",
	"keywords",
	"robots",
	"author",
	"viewport",
	"googlebot",
	"theme-color",
	"publisher",
	"copyright",
	"content-language",
}

// managedPrefixes cover the namespaced social and structured tags.
var managedPrefixes = []string{
	"og:",
	"article:",
	"product:",
	"profile:",
	"fb:",
	"twitter:",
}

const jsonLDType = "application/ld+json"

// RemoveManaged strips previously injected tags: meta tags matching the
// given names (or the defaults when names is nil) and the managed
// namespaces, the canonical link, and any structured-data script.
func (m *Mutator) RemoveManaged(names []string) {
	if names == nil {
		names = DefaultManagedNames
	}
	managed := make(map[string]bool, len(names))
	for _, n := range names {
		managed[n] = true
	}

	head := m.EnsureHead()
	var doomed []*html.Node
	for c := head.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		switch c.DataAtom {
		case atom.Meta:
			if isManagedMeta(c, managed) {
				doomed = append(doomed, c)
			}
		case atom.Link:
			if getAttr(c, "rel") == "canonical" {
				doomed = append(doomed, c)
			}
		case atom.Script:
			if getAttr(c, "type") == jsonLDType {
				doomed = append(doomed, c)
			}
		}
	}

	for _, n := range doomed {
		head.RemoveChild(n)
	}
}

func isManagedMeta(n *html.Node, managed map[string]bool) bool {
	for _, keyAttr := range []string{"name", "property", "http-equiv"} {
		key := getAttr(n, keyAttr)
		if key == "" {
			continue
		}
		if managed[key] {
			return true
		}
		for _, prefix := range managedPrefixes {
			if strings.HasPrefix(key, prefix) {
				return true
			}
		}
	}
	return false
}
