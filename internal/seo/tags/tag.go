// Package tags derives discoverability markup from a resolved metadata
// record. All generators are pure functions of (metadata, site config); they
// perform no I/O and return ordered tag lists whose ordering is part of the
// contract consumers rely on.
package tags

import (
	"fmt"
	"strings"
)

// Kind distinguishes the three head element kinds this system manages.
type Kind string

const (
	KindMeta   Kind = "meta"
	KindLink   Kind = "link"
	KindScript Kind = "script"
)

// Attr is one attribute of a tag. Attribute order is preserved so output is
// deterministic.
type Attr struct {
	Key   string
	Value string
}

// Tag is one head element to be injected: a meta tag, a link tag, or a
// script with text content.
type Tag struct {
	Kind  Kind
	Attrs []Attr
	Text  string
}

// NewMeta builds a name/content meta tag.
func NewMeta(name, content string) Tag {
	return Tag{Kind: KindMeta, Attrs: []Attr{{"name", name}, {"content", content}}}
}

// NewProperty builds a property/content meta tag (Open Graph style).
func NewProperty(property, content string) Tag {
	return Tag{Kind: KindMeta, Attrs: []Attr{{"property", property}, {"content", content}}}
}

// NewHTTPEquiv builds an http-equiv/content meta tag.
func NewHTTPEquiv(equiv, content string) Tag {
	return Tag{Kind: KindMeta, Attrs: []Attr{{"http-equiv", equiv}, {"content", content}}}
}

// NewLink builds a link tag with rel/href plus any extra attributes.
func NewLink(rel, href string, extra ...Attr) Tag {
	attrs := append([]Attr{{"rel", rel}, {"href", href}}, extra...)
	return Tag{Kind: KindLink, Attrs: attrs}
}

// NewScript builds a script tag. Text is carried verbatim; it is never
// re-escaped since structured-data payloads must stay valid as written.
func NewScript(typ, text string) Tag {
	return Tag{Kind: KindScript, Attrs: []Attr{{"type", typ}}, Text: text}
}

// Attr returns the value of the named attribute, or "".
func (t Tag) Attr(key string) string {
	for _, a := range t.Attrs {
		if a.Key == key {
			return a.Value
		}
	}
	return ""
}

// Name returns the identifying attribute of a meta tag: name, property, or
// http-equiv, whichever is set.
func (t Tag) Name() string {
	for _, key := range []string{"name", "property", "http-equiv"} {
		if v := t.Attr(key); v != "" {
			return v
		}
	}
	return ""
}

// escaper handles the five characters that matter inside attribute values.
var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// Escape entity-escapes a value for use in an attribute position. This is
// the single escape routine for all emitted attribute values.
func Escape(v string) string {
	return escaper.Replace(v)
}

// String renders the tag as HTML. Attribute values are escaped exactly once;
// script text is emitted verbatim.
func (t Tag) String() string {
	var sb strings.Builder
	sb.WriteString("<")
	sb.WriteString(string(t.Kind))
	for _, a := range t.Attrs {
		fmt.Fprintf(&sb, ` %s="%s"`, a.Key, Escape(a.Value))
	}
	if t.Kind == KindScript {
		sb.WriteString(">")
		sb.WriteString(t.Text)
		sb.WriteString("</script>")
		return sb.String()
	}
	sb.WriteString(">")
	return sb.String()
}

// list is a small builder that appends a tag only when its content value is
// present, keeping the "absent value emits no tag" rule in one place.
type list struct {
	tags []Tag
}

func (l *list) meta(name, content string) {
	if content == "" {
		return
	}
	l.tags = append(l.tags, NewMeta(name, content))
}

func (l *list) property(property, content string) {
	if content == "" {
		return
	}
	l.tags = append(l.tags, NewProperty(property, content))
}

func (l *list) httpEquiv(equiv, content string) {
	if content == "" {
		return
	}
	l.tags = append(l.tags, NewHTTPEquiv(equiv, content))
}

func (l *list) link(rel, href string, extra ...Attr) {
	if href == "" {
		return
	}
	l.tags = append(l.tags, NewLink(rel, href, extra...))
}
