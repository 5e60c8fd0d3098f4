package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/ambarishg/AmbarishWEBSITE/internal/requestctx"
)

// ColorModeCookie is the cookie the SPA's theme provider persists the colour mode in.
const ColorModeCookie = "chakra-ui-color-mode"

const (
	ColorModeLight = "light"
	ColorModeDark  = "dark"
)

// ColorMode resolves the visitor's colour mode. A valid ?colorMode= query value
// wins and is written back to the cookie; otherwise the cookie is read. Invalid
// values are ignored and leave the mode unset.
func ColorMode(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mode := ""
		if q := normalizeColorMode(r.URL.Query().Get("colorMode")); q != "" {
			mode = q
			http.SetCookie(w, &http.Cookie{
				Name:     ColorModeCookie,
				Value:    q,
				Path:     "/",
				MaxAge:   int((365 * 24 * time.Hour).Seconds()),
				SameSite: http.SameSiteLaxMode,
			})
		} else if c, err := r.Cookie(ColorModeCookie); err == nil {
			mode = normalizeColorMode(c.Value)
		}
		w.Header().Add("Vary", "Cookie")
		if mode != "" {
			r = r.WithContext(requestctx.WithColorMode(r.Context(), mode))
		}
		next.ServeHTTP(w, r)
	})
}

func normalizeColorMode(v string) string {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case ColorModeLight:
		return ColorModeLight
	case ColorModeDark:
		return ColorModeDark
	}
	return ""
}
