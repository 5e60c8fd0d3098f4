package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ambarishg/AmbarishWEBSITE/internal/i18n"
	"github.com/ambarishg/AmbarishWEBSITE/internal/requestctx"
)

func TestColorModeQueryOverridesCookie(t *testing.T) {
	var mode string
	h := ColorMode(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mode = requestctx.ColorMode(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/?colorMode=DARK", nil)
	req.AddCookie(&http.Cookie{Name: ColorModeCookie, Value: "light"})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, ColorModeDark, mode)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, ColorModeCookie, cookies[0].Name)
	assert.Equal(t, "dark", cookies[0].Value)
}

func TestColorModeFromCookieAndInvalid(t *testing.T) {
	var mode string
	h := ColorMode(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mode = requestctx.ColorMode(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: ColorModeCookie, Value: "light"})
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, ColorModeLight, mode)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/?colorMode=sepia", nil))
	assert.Empty(t, mode)
	assert.Empty(t, rec.Result().Cookies())
}

func TestLocaleNegotiation(t *testing.T) {
	bundle, err := i18n.Load(fstest.MapFS{
		"en.json": {Data: []byte(`{"a":"A"}`)},
		"bn.json": {Data: []byte(`{"a":"অ"}`)},
	}, "en", []string{"en", "bn"})
	require.NoError(t, err)

	var lang string
	h := Locale(bundle)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lang = Lang(r)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Language", "bn-IN,bn;q=0.9,en;q=0.5")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "bn", lang)
	assert.Equal(t, "bn", rec.Header().Get("Content-Language"))

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/?hl=EN", nil))
	assert.Equal(t, "en", lang)
	require.Len(t, rec.Result().Cookies(), 1)

	req = httptest.NewRequest(http.MethodGet, "/?hl=xx", nil)
	req.AddCookie(&http.Cookie{Name: LangCookie, Value: "bn"})
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "bn", lang)
}

func TestAssetsWithCache(t *testing.T) {
	fsys := fstest.MapFS{"app.js": {Data: []byte("console.log(1)")}}
	h := AssetsWithCache(fsys, "/assets", ImmutableCache)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/assets/app.js", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "console.log(1)", rec.Body.String())
	assert.Equal(t, ImmutableCache, rec.Header().Get("Cache-Control"))
	etag := rec.Header().Get("ETag")
	require.NotEmpty(t, etag)

	req := httptest.NewRequest(http.MethodGet, "/assets/app.js", nil)
	req.Header.Set("If-None-Match", etag)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotModified, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/assets/missing.js", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, rec.Header().Get("Cache-Control"))
}

func TestAssetsIfNoneMatchList(t *testing.T) {
	fsys := fstest.MapFS{"logo.svg": {Data: []byte("<svg/>")}}
	h := AssetsWithCache(fsys, "", PublicCache)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/logo.svg", nil))
	etag := rec.Header().Get("ETag")
	require.NotEmpty(t, etag)

	cases := map[string]int{
		`"other", ` + etag: http.StatusNotModified,
		"*":                http.StatusNotModified,
		`"other"`:          http.StatusOK,
	}
	for header, want := range cases {
		req := httptest.NewRequest(http.MethodGet, "/logo.svg", nil)
		req.Header.Set("If-None-Match", header)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, want, rec.Code, header)
	}
}
