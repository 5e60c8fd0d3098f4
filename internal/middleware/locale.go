package middleware

import (
	"net/http"
	"strings"

	"github.com/ambarishg/AmbarishWEBSITE/internal/i18n"
	"github.com/ambarishg/AmbarishWEBSITE/internal/requestctx"
)

// LangCookie remembers an explicit ?hl= choice.
const LangCookie = "hl"

// Locale negotiates the document language from ?hl=, the hl cookie, then
// Accept-Language, and records it on the request context.
func Locale(bundle *i18n.Bundle) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lang := ""
			if q := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("hl"))); q != "" && bundle.IsSupported(q) {
				lang = q
				http.SetCookie(w, &http.Cookie{Name: LangCookie, Value: q, Path: "/", SameSite: http.SameSiteLaxMode})
			} else if c, err := r.Cookie(LangCookie); err == nil && bundle.IsSupported(strings.ToLower(c.Value)) {
				lang = strings.ToLower(c.Value)
			} else {
				lang = bundle.Resolve(r.Header.Get("Accept-Language"))
			}
			w.Header().Add("Vary", "Accept-Language")
			w.Header().Set("Content-Language", lang)
			next.ServeHTTP(w, r.WithContext(requestctx.WithLang(r.Context(), lang)))
		})
	}
}

// Lang returns the negotiated language or i18n.Default.
func Lang(r *http.Request) string {
	if l := requestctx.Lang(r.Context()); l != "" {
		return l
	}
	return i18n.Default
}
