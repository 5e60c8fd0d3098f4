// Package head keeps an HTML document's <head> in sync with resolved page metadata.
package head

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/ambarishg/AmbarishWEBSITE/internal/seo"
)

// State owns one parsed document. Every tag of the managed meta family is
// owned by the State, whether the shell authored it or an earlier Apply wrote
// it, so each Apply replaces the previous head in full. A State is not safe for
// concurrent use.
type State struct {
	doc *goquery.Document
}

// Parse builds a State from an HTML document. A missing <head> is created by the parser.
func Parse(r io.Reader) (*State, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("head: parse document: %w", err)
	}
	return &State{doc: doc}, nil
}

// ParseBytes is Parse over an in-memory shell.
func ParseBytes(b []byte) (*State, error) {
	return Parse(bytes.NewReader(b))
}

// Document exposes the underlying document for callers that decorate the body.
func (s *State) Document() *goquery.Document { return s.doc }

// Synchronize resolves cfg for requestPath and applies the result.
func (s *State) Synchronize(r seo.Resolver, cfg seo.PageConfig, requestPath string) seo.ResolvedHead {
	resolved := r.Resolve(cfg, requestPath)
	s.Apply(resolved)
	return resolved
}

// Apply writes h into the document head.
func (s *State) Apply(h seo.ResolvedHead) {
	headSel := s.head()

	s.setTitle(headSel, h.Title)
	for _, m := range h.Meta {
		s.setMeta(headSel, m)
	}
	s.setLink(headSel, "canonical", h.Canonical)

	headSel.Find(`script[` + seo.DynamicMarker + `="true"]`).Remove()
	for _, payload := range h.StructuredData {
		if len(payload) == 0 {
			continue
		}
		script := newElement(atom.Script,
			html.Attribute{Key: "type", Val: seo.StructuredDataType},
			html.Attribute{Key: seo.DynamicMarker, Val: "true"},
		)
		script.AppendChild(&html.Node{Type: html.TextNode, Data: string(payload)})
		headSel.AppendNodes(script)
	}
}

// Render writes the full document.
func (s *State) Render(w io.Writer) error {
	for _, n := range s.doc.Nodes {
		if err := html.Render(w, n); err != nil {
			return fmt.Errorf("head: render: %w", err)
		}
	}
	return nil
}

// HTML renders the full document to a string.
func (s *State) HTML() (string, error) {
	var buf bytes.Buffer
	if err := s.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (s *State) head() *goquery.Selection {
	sel := s.doc.Find("head").First()
	if sel.Length() > 0 {
		return sel
	}
	// html.Parse always synthesises <head>; this covers documents built by hand.
	root := s.doc.Find("html").First()
	h := newElement(atom.Head)
	if root.Length() == 0 {
		s.doc.Selection.AppendNodes(h)
	} else {
		root.PrependNodes(h)
	}
	return s.doc.Find("head").First()
}

func (s *State) setTitle(headSel *goquery.Selection, title string) {
	if title == "" {
		return
	}
	sel := headSel.Find("title").First()
	if sel.Length() == 0 {
		headSel.AppendNodes(newElement(atom.Title))
		sel = headSel.Find("title").First()
	}
	sel.SetText(title)
	dropExtra(headSel.Find("title"))
}

func (s *State) setMeta(headSel *goquery.Selection, m seo.MetaTag) {
	sel := headSel.Find(`meta[` + m.Attr + `="` + escapeSelector(m.Key) + `"]`)
	if m.Content == "" {
		sel.Remove()
		return
	}
	if sel.Length() == 0 {
		headSel.AppendNodes(newElement(atom.Meta, html.Attribute{Key: m.Attr, Val: m.Key}))
		sel = headSel.Find(`meta[` + m.Attr + `="` + escapeSelector(m.Key) + `"]`)
	}
	sel.First().SetAttr("content", m.Content)
	dropExtra(sel)
}

func (s *State) setLink(headSel *goquery.Selection, rel, href string) {
	if href == "" {
		return
	}
	sel := headSel.Find(`link[rel="` + escapeSelector(rel) + `"]`)
	if sel.Length() == 0 {
		headSel.AppendNodes(newElement(atom.Link, html.Attribute{Key: "rel", Val: rel}))
		sel = headSel.Find(`link[rel="` + escapeSelector(rel) + `"]`)
	}
	sel.First().SetAttr("href", href)
	dropExtra(sel)
}

// dropExtra removes every match after the first, collapsing duplicates a
// hand-written shell may carry.
func dropExtra(sel *goquery.Selection) {
	if sel.Length() > 1 {
		sel.Slice(1, goquery.ToEnd).Remove()
	}
}

func newElement(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		DataAtom: a,
		Data:     a.String(),
		Attr:     attrs,
	}
}

func escapeSelector(v string) string {
	return strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(v)
}
