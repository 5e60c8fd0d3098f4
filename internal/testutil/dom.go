// Package testutil holds helpers shared by package tests.
package testutil

import (
	"bytes"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

// ParseHTML parses body or fails the test.
func ParseHTML(t testing.TB, body []byte) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		t.Fatalf("testutil: parse html: %v", err)
	}
	return doc
}

// HeadCount counts <head> descendants matching selector.
func HeadCount(doc *goquery.Document, selector string) int {
	return doc.Find("head " + selector).Length()
}

// MetaContent reads the content of the first <meta attr="key"> in the head.
func MetaContent(doc *goquery.Document, attr, key string) (string, bool) {
	return doc.Find(`head meta[` + attr + `="` + key + `"]`).First().Attr("content")
}
