// Package headmutate provides idempotent mutation primitives for the head
// section of an HTML document. Parsing is tolerant: missing root elements,
// missing heads, and malformed markup never cause a failure, because
// golang.org/x/net/html repairs the tree during parsing.
package headmutate

import (
	"bytes"
	"fmt"
	"sort"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Position selects where appended scripts land inside the head.
type Position string

const (
	PositionStart Position = "start"
	PositionEnd   Position = "end"
)

// AttrKind enumerates the attribute a meta tag is keyed by.
type AttrKind string

const (
	AttrName      AttrKind = "name"
	AttrProperty  AttrKind = "property"
	AttrHTTPEquiv AttrKind = "http-equiv"
)

// Mutator wraps one parsed document tree. Operations mutate the tree in
// place; Render serializes the result.
type Mutator struct {
	doc *html.Node
}

// Parse builds a Mutator from raw HTML. Partial or malformed markup is
// repaired rather than rejected.
func Parse(content []byte) (*Mutator, error) {
	doc, err := html.Parse(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return &Mutator{doc: doc}, nil
}

// Render serializes the mutated tree back to HTML.
func (m *Mutator) Render() ([]byte, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, m.doc); err != nil {
		return nil, fmt.Errorf("render html: %w", err)
	}
	return buf.Bytes(), nil
}

// EnsureHead returns the document's head element, creating one if the tree
// somehow lacks it: inside the root html element ahead of the body when one
// exists, else directly under the document node.
func (m *Mutator) EnsureHead() *html.Node {
	if head := findElement(m.doc, atom.Head); head != nil {
		return head
	}

	head := &html.Node{Type: html.ElementNode, DataAtom: atom.Head, Data: "head"}
	if root := findElement(m.doc, atom.Html); root != nil {
		if body := findElement(root, atom.Body); body != nil {
			root.InsertBefore(head, body)
		} else {
			prepend(root, head)
		}
		return head
	}
	prepend(m.doc, head)
	return head
}

// EnsureTitle creates an empty title element if the head has none.
func (m *Mutator) EnsureTitle() {
	head := m.EnsureHead()
	if findElement(head, atom.Title) == nil {
		title := &html.Node{Type: html.ElementNode, DataAtom: atom.Title, Data: "title"}
		prepend(head, title)
	}
}

// SetTitle replaces the title element's text, creating the element first if
// needed.
func (m *Mutator) SetTitle(text string) {
	m.EnsureTitle()
	title := findElement(m.EnsureHead(), atom.Title)
	for title.FirstChild != nil {
		title.RemoveChild(title.FirstChild)
	}
	title.AppendChild(&html.Node{Type: html.TextNode, Data: text})
}

// UpsertMeta replaces the content of an existing meta tag keyed by
// kind+key, or inserts a new one: after the last meta tag, else after the
// title, else at the start of the head.
func (m *Mutator) UpsertMeta(kind AttrKind, key, value string) {
	head := m.EnsureHead()

	if existing := findMeta(head, kind, key); existing != nil {
		setAttr(existing, "content", value)
		return
	}

	m.InsertMeta(kind, key, value)
}

// InsertMeta always inserts a new meta tag, even when one with the same key
// exists. Repeated tags like article:tag and fb:admins carry one value each,
// so replace-by-key would drop all but the last. Positioning follows the
// upsert rules: after the last meta tag, else after the title, else at the
// start of the head.
func (m *Mutator) InsertMeta(kind AttrKind, key, value string) {
	head := m.EnsureHead()

	tag := &html.Node{
		Type: html.ElementNode, DataAtom: atom.Meta, Data: "meta",
		Attr: []html.Attribute{
			{Key: string(kind), Val: key},
			{Key: "content", Val: value},
		},
	}

	switch {
	case lastElement(head, atom.Meta) != nil:
		insertAfter(head, tag, lastElement(head, atom.Meta))
	case findElement(head, atom.Title) != nil:
		insertAfter(head, tag, findElement(head, atom.Title))
	default:
		prepend(head, tag)
	}
}

// UpsertLink replaces or appends a link tag keyed by rel. New tags are
// positioned after the last link tag, else after the last meta tag, else
// appended to the head.
func (m *Mutator) UpsertLink(rel, href string, extra map[string]string) {
	head := m.EnsureHead()

	if existing := findLink(head, rel); existing != nil {
		setAttr(existing, "href", href)
		for k, v := range extra {
			setAttr(existing, k, v)
		}
		return
	}

	attrs := []html.Attribute{{Key: "rel", Val: rel}, {Key: "href", Val: href}}
	for _, k := range sortedKeys(extra) {
		attrs = append(attrs, html.Attribute{Key: k, Val: extra[k]})
	}
	tag := &html.Node{Type: html.ElementNode, DataAtom: atom.Link, Data: "link", Attr: attrs}

	switch {
	case lastElement(head, atom.Link) != nil:
		insertAfter(head, tag, lastElement(head, atom.Link))
	case lastElement(head, atom.Meta) != nil:
		insertAfter(head, tag, lastElement(head, atom.Meta))
	default:
		head.AppendChild(tag)
	}
}

// AppendScript inserts a script element. The text content is carried
// verbatim through serialization; script bodies are raw text in HTML, so
// structured-data payloads stay valid as written.
func (m *Mutator) AppendScript(text, typ string, pos Position) {
	head := m.EnsureHead()

	tag := &html.Node{Type: html.ElementNode, DataAtom: atom.Script, Data: "script"}
	if typ != "" {
		tag.Attr = []html.Attribute{{Key: "type", Val: typ}}
	}
	tag.AppendChild(&html.Node{Type: html.TextNode, Data: text})

	if pos == PositionStart {
		prepend(head, tag)
		return
	}
	head.AppendChild(tag)
}

// findMeta locates a meta element keyed by kind+key.
func findMeta(head *html.Node, kind AttrKind, key string) *html.Node {
	for c := head.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || c.DataAtom != atom.Meta {
			continue
		}
		if getAttr(c, string(kind)) == key {
			return c
		}
	}
	return nil
}

func findLink(head *html.Node, rel string) *html.Node {
	for c := head.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.DataAtom == atom.Link && getAttr(c, "rel") == rel {
			return c
		}
	}
	return nil
}

// findElement walks the subtree depth-first for the first element with the
// given atom.
func findElement(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, a); found != nil {
			return found
		}
	}
	return nil
}

// lastElement returns the last direct child element with the given atom.
func lastElement(parent *html.Node, a atom.Atom) *html.Node {
	var last *html.Node
	for c := parent.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.DataAtom == a {
			last = c
		}
	}
	return last
}

func prepend(parent, n *html.Node) {
	if parent.FirstChild != nil {
		parent.InsertBefore(n, parent.FirstChild)
		return
	}
	parent.AppendChild(n)
}

func insertAfter(parent, n, after *html.Node) {
	if after.NextSibling != nil {
		parent.InsertBefore(n, after.NextSibling)
		return
	}
	parent.AppendChild(n)
}

func getAttr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func setAttr(n *html.Node, key, value string) {
	for i := range n.Attr {
		if n.Attr[i].Key == key {
			n.Attr[i].Val = value
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: value})
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
