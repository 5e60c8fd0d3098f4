// Package sitemap builds the sitemap.xml and robots.txt documents for the route table.
package sitemap

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/ambarishg/AmbarishWEBSITE/internal/content"
	"github.com/ambarishg/AmbarishWEBSITE/internal/format"
	"github.com/ambarishg/AmbarishWEBSITE/internal/seo"
)

// Namespace is the sitemap protocol namespace.
const Namespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// URLSet is a <urlset> document.
type URLSet struct {
	XMLName xml.Name `xml:"urlset"`
	Xmlns   string   `xml:"xmlns,attr"`
	URLs    []URL    `xml:"url"`
}

// URL is one <url> entry.
type URL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

// Build lists every page at its absolute URL. Pages are expected in route-table order.
func Build(pages []content.Page, r seo.Resolver) URLSet {
	set := URLSet{Xmlns: Namespace, URLs: make([]URL, 0, len(pages))}
	for _, p := range pages {
		set.URLs = append(set.URLs, URL{
			Loc:        r.Absolute(p.Path),
			LastMod:    format.Date(p.UpdatedAt),
			ChangeFreq: changeFreq(p.Path),
			Priority:   priority(p.Path),
		})
	}
	return set
}

// Marshal encodes the set with the XML declaration.
func (s URLSet) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(s); err != nil {
		return nil, fmt.Errorf("sitemap: encode: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// Robots returns a robots.txt allowing every page, keeping crawlers out of the
// JSON endpoints and pointing at the sitemap.
func Robots(r seo.Resolver) []byte {
	var buf bytes.Buffer
	buf.WriteString("User-agent: *\n")
	buf.WriteString("Allow: /\n")
	buf.WriteString("Disallow: /api/\n")
	buf.WriteString("\n")
	fmt.Fprintf(&buf, "Sitemap: %s\n", r.Absolute("/sitemap.xml"))
	return buf.Bytes()
}

func changeFreq(path string) string {
	switch path {
	case "/", "/highlights", "/ag-academy":
		return "weekly"
	default:
		return "monthly"
	}
}

func priority(path string) string {
	switch path {
	case "/":
		return "1.0"
	case "/highlights", "/highlights/kaggle-achievements", "/ag-academy":
		return "0.8"
	default:
		return "0.6"
	}
}
