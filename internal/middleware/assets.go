package middleware

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"io/fs"
	"net/http"
	"strings"
)

// Cache policies for static files.
const (
	ImmutableCache = "public, max-age=31536000, immutable"
	PublicCache    = "public, max-age=604800, stale-while-revalidate=86400"
)

// assetIndex maps "/"-rooted file paths to weak content ETags.
type assetIndex map[string]string

func indexAssets(fsys fs.FS) assetIndex {
	idx := assetIndex{}
	_ = fs.WalkDir(fsys, ".", func(name string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if tag, err := contentTag(fsys, name); err == nil {
			idx["/"+name] = tag
		}
		return nil
	})
	return idx
}

// matches reports whether an If-None-Match header covers tag.
func (idx assetIndex) matches(header, tag string) bool {
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" || candidate == tag || "W/"+candidate == tag {
			return true
		}
	}
	return false
}

// AssetsWithCache serves files from fsys with Cache-Control and ETag handling.
// prefix is stripped from the request path before lookup. Files are hashed
// once, when the handler is built; unknown paths fall through to the file
// server without cache headers.
func AssetsWithCache(fsys fs.FS, prefix, cacheControl string) http.Handler {
	idx := indexAssets(fsys)
	files := http.StripPrefix(prefix, http.FileServer(http.FS(fsys)))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Vary", "Accept-Encoding")
		tag, ok := idx[strings.TrimPrefix(r.URL.Path, prefix)]
		if ok {
			h.Set("Cache-Control", cacheControl)
			h.Set("ETag", tag)
			if inm := r.Header.Get("If-None-Match"); inm != "" && idx.matches(inm, tag) {
				w.WriteHeader(http.StatusNotModified)
				return
			}
		}
		files.ServeHTTP(w, r)
	})
}

func contentTag(fsys fs.FS, name string) (string, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return "", err
	}
	defer f.Close()
	sum := sha256.New()
	if _, err := io.Copy(sum, f); err != nil {
		return "", err
	}
	return `W/"` + hex.EncodeToString(sum.Sum(nil)[:16]) + `"`, nil
}
