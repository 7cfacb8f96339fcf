package seo

import "strings"

// absolutize prefixes a relative path with the site hostname, avoiding
// duplicate slashes. Already-absolute URLs and empty hostnames pass through.
func absolutize(path, hostname string) string {
	if path == "" || hostname == "" {
		return path
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") || strings.HasPrefix(path, "//") {
		return path
	}
	return strings.TrimRight(hostname, "/") + "/" + strings.TrimLeft(path, "/")
}

// canonicalFor derives the canonical URL for a document path: the
// .html/.htm extension and a trailing index segment are stripped, the result
// is joined with the hostname, and repeated slashes are collapsed.
func canonicalFor(path, hostname string) string {
	p := strings.TrimSuffix(path, ".html")
	p = strings.TrimSuffix(p, ".htm")

	if p == "index" {
		p = ""
	} else if strings.HasSuffix(p, "/index") {
		p = strings.TrimSuffix(p, "index")
	}

	if hostname == "" {
		return collapseSlashes("/" + p)
	}
	return strings.TrimRight(hostname, "/") + collapseSlashes("/"+p)
}

// collapseSlashes folds repeated path slashes into one.
func collapseSlashes(p string) string {
	for strings.Contains(p, "//") {
		p = strings.ReplaceAll(p, "//", "/")
	}
	return p
}
