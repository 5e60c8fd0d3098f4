package nav

import (
	"net/url"
	"strings"
)

// Location is the navigable part of a URL.
type Location struct {
	Pathname string `json:"pathname"`
	Search   string `json:"search,omitempty"`
	Hash     string `json:"hash,omitempty"`
}

// ParseLocation splits raw (e.g. "/highlights?x=1#top") into a Location.
// Search and Hash keep their leading "?" and "#".
func ParseLocation(raw string) Location {
	var loc Location
	if i := strings.IndexByte(raw, '#'); i >= 0 {
		loc.Hash = raw[i:]
		raw = raw[:i]
	}
	if i := strings.IndexByte(raw, '?'); i >= 0 {
		loc.Search = raw[i:]
		raw = raw[:i]
	}
	loc.Pathname = raw
	if loc.Pathname == "" {
		loc.Pathname = "/"
	}
	if loc.Hash == "#" {
		loc.Hash = ""
	}
	if loc.Search == "?" {
		loc.Search = ""
	}
	return loc
}

// FromURL builds a Location from a request URL.
func FromURL(u *url.URL) Location {
	if u == nil {
		return Location{Pathname: "/"}
	}
	loc := Location{Pathname: u.Path}
	if loc.Pathname == "" {
		loc.Pathname = "/"
	}
	if u.RawQuery != "" {
		loc.Search = "?" + u.RawQuery
	}
	if u.Fragment != "" {
		loc.Hash = "#" + u.Fragment
	}
	return loc
}

// PathAndQuery is the pathname followed by the search string.
func (l Location) PathAndQuery() string {
	p := l.Pathname
	if p == "" {
		p = "/"
	}
	return p + l.Search
}

// String reassembles the location.
func (l Location) String() string {
	return l.PathAndQuery() + l.Hash
}
