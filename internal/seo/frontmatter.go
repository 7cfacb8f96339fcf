package seo

import (
	"fmt"
	"strings"
	"time"
)

// fields wraps one document's front matter and knows where each priority
// source lives: the configured override block, the content-preview card
// block, and the root of the tree.
type fields struct {
	fm     map[string]any
	seoKey string
}

func newFields(fm map[string]any, seoKey string) fields {
	if fm == nil {
		fm = map[string]any{}
	}
	if seoKey == "" {
		seoKey = "seo"
	}
	return fields{fm: fm, seoKey: seoKey}
}

// block fetches a nested map by key, tolerating both map shapes yaml can
// produce. A non-map value under the key degrades to an empty block.
func (f fields) block(key string) map[string]any {
	return asMap(f.fm[key])
}

// override looks up a key inside the configured SEO override block.
func (f fields) override(key string) lookup {
	return func() (any, bool) {
		v, ok := f.block(f.seoKey)[key]
		return v, ok
	}
}

// card looks up a key inside the content-preview card block. Card field
// names sometimes differ from the override block's names; callers pass the
// card-side name (e.g. "excerpt", "date").
func (f fields) card(key string) lookup {
	return func() (any, bool) {
		v, ok := f.block("card")[key]
		return v, ok
	}
}

// root looks up a root-level front matter field.
func (f fields) root(key string) lookup {
	return func() (any, bool) {
		v, ok := f.fm[key]
		return v, ok
	}
}

// path looks up a configured fallback dot-path. An empty path is a
// permanently absent source, which lets callers wire the configured
// fallback unconditionally into a chain.
func (f fields) path(dotPath string) lookup {
	return func() (any, bool) {
		if dotPath == "" {
			return nil, false
		}
		return lookupPath(f.fm, dotPath)
	}
}

// has reports whether any of the override block or the root tree carries a
// usable value for key. The content-type heuristic consults this.
func (f fields) has(key string) bool {
	if v, ok := f.block(f.seoKey)[key]; ok && usable(v) {
		return true
	}
	if v, ok := f.fm[key]; ok && usable(v) {
		return true
	}
	return false
}

// hasCard is like has but also consults the card block.
func (f fields) hasCard(key, cardKey string) bool {
	if f.has(key) {
		return true
	}
	v, ok := f.block("card")[cardKey]
	return ok && usable(v)
}

// lookupPath walks a dot-notation path through nested maps. Any segment that
// is missing or not a map terminates the walk.
func lookupPath(fm map[string]any, dotPath string) (any, bool) {
	current := any(fm)
	for _, segment := range strings.Split(dotPath, ".") {
		m := asMap(current)
		if m == nil {
			return nil, false
		}
		v, ok := m[segment]
		if !ok {
			return nil, false
		}
		current = v
	}
	return current, true
}

// asMap normalizes the two map shapes yaml.v3 can produce for nested
// objects. Anything else yields nil.
func asMap(v any) map[string]any {
	switch t := v.(type) {
	case map[string]any:
		return t
	case map[any]any:
		m := make(map[string]any, len(t))
		for k, val := range t {
			if ks, ok := k.(string); ok {
				m[ks] = val
			}
		}
		return m
	default:
		return nil
	}
}

// asString coerces a raw front matter scalar to a string. Collections and
// maps do not coerce; they resolve as absent for string fields.
func asString(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case int, int64, float64:
		return fmt.Sprint(t)
	case bool:
		return fmt.Sprint(t)
	case time.Time:
		return t.UTC().Format(time.RFC3339)
	default:
		return ""
	}
}

// asPerson coerces an author value: plain strings pass through and arrays
// are joined with ", ".
func asPerson(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case []string:
		return strings.Join(t, ", ")
	case []any:
		parts := make([]string, 0, len(t))
		for _, item := range t {
			if s := asString(item); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", ")
	default:
		return ""
	}
}

// asBool coerces a raw value to a boolean flag. Strings "true"/"false" are
// honored because front matter authors frequently quote them.
func asBool(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return strings.EqualFold(strings.TrimSpace(t), "true")
	default:
		return false
	}
}

// asKeywords normalizes a keywords value: arrays are kept, comma-separated
// strings are split and trimmed, anything else is an empty list. The result
// is never nil.
func asKeywords(v any) []string {
	switch t := v.(type) {
	case []string:
		out := make([]string, 0, len(t))
		for _, k := range t {
			if k = strings.TrimSpace(k); k != "" {
				out = append(out, k)
			}
		}
		return out
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			if s := asString(item); s != "" {
				out = append(out, s)
			}
		}
		return out
	case string:
		out := []string{}
		for _, part := range strings.Split(t, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		return out
	default:
		return []string{}
	}
}
