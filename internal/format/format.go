// Package format holds small text formatting helpers shared by content and pages.
package format

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Headline joins category labels for a summary line:
// "A", "A & B", "A, B, C", or "A, B, C + N more". Blank labels are dropped.
func Headline(labels []string) string {
	clean := make([]string, 0, len(labels))
	for _, l := range labels {
		if l = strings.TrimSpace(l); l != "" {
			clean = append(clean, l)
		}
	}
	switch len(clean) {
	case 0:
		return ""
	case 1:
		return clean[0]
	case 2:
		return clean[0] + " & " + clean[1]
	case 3:
		return strings.Join(clean, ", ")
	default:
		return fmt.Sprintf("%s, %s, %s + %d more", clean[0], clean[1], clean[2], len(clean)-3)
	}
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// Slug lowercases s and collapses every run of non-alphanumerics into one hyphen.
func Slug(s string) string {
	s = nonSlug.ReplaceAllString(strings.ToLower(strings.TrimSpace(s)), "-")
	return strings.Trim(s, "-")
}

// AnchorID builds an element id "<prefix>-<slug>". A label with no usable
// characters yields fallback instead.
func AnchorID(prefix, label, fallback string) string {
	if base := Slug(label); base != "" {
		return prefix + "-" + base
	}
	return fallback
}

// Count renders n with a singular or plural noun: "1 highlight", "3 highlights".
func Count(n int, singular, plural string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, singular)
	}
	return fmt.Sprintf("%d %s", n, plural)
}

// Date formats t for sitemap lastmod values.
func Date(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format("2006-01-02")
}
