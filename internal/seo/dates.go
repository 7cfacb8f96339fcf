package seo

import "time"

// dateLayouts are tried in order when normalizing string dates. Front matter
// in the wild mixes full timestamps, date-only values, and prose-ish forms.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"02.01.2006",
	"January 2, 2006",
	"Jan 2, 2006",
	time.RFC1123,
	time.RFC1123Z,
}

// normalizeDate converts a raw front matter value to an RFC 3339 UTC string.
// Unparsable or absent values normalize to the empty string; raw unparsed
// strings must never leak into generators.
func normalizeDate(v any) string {
	switch t := v.(type) {
	case time.Time:
		return t.UTC().Format(time.RFC3339)
	case string:
		for _, layout := range dateLayouts {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed.UTC().Format(time.RFC3339)
			}
		}
		return ""
	default:
		return ""
	}
}
