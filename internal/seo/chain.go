package seo

// lookup produces one candidate value for a field. The bool reports whether
// the source had anything at all; emptiness is judged separately so that all
// fields share one notion of "absent".
type lookup func() (any, bool)

// firstUsable evaluates lookups in order and returns the first candidate that
// is present and non-empty. This is the priority chain shared by every
// resolved field: the policy of "first non-empty wins" lives here and only
// here.
func firstUsable(lookups ...lookup) (any, bool) {
	for _, l := range lookups {
		if v, ok := l(); ok && usable(v) {
			return v, true
		}
	}
	return nil, false
}

// usable reports whether a raw front matter value counts as present.
// Empty strings, empty collections, nil, and numeric zero are all absent.
func usable(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case []any:
		return len(t) > 0
	case []string:
		return len(t) > 0
	case map[string]any:
		return len(t) > 0
	case int:
		return t != 0
	case int64:
		return t != 0
	case float64:
		return t != 0
	case bool:
		return t
	default:
		return true
	}
}

// constant wraps a fixed value (e.g. a site default) as a chain source.
func constant(v any) lookup {
	return func() (any, bool) { return v, v != nil }
}

// derived wraps a computation that only runs if earlier sources fail,
// keeping auto-generation lazy.
func derived(f func() string) lookup {
	return func() (any, bool) {
		s := f()
		return s, s != ""
	}
}
