package i18n

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBundle(t *testing.T) *Bundle {
	t.Helper()
	fsys := fstest.MapFS{
		"en.json": {Data: []byte(`{"nav.home":"Home","only.en":"English"}`)},
		"bn.json": {Data: []byte(`{"nav.home":"হোম"}`)},
	}
	b, err := Load(fsys, "en", []string{"en", "bn", "hi"})
	require.NoError(t, err)
	return b
}

func TestResolveHonorsQValues(t *testing.T) {
	b := testBundle(t)
	assert.Equal(t, "bn", b.Resolve("en;q=0.8, bn;q=0.9"))
	assert.Equal(t, "en", b.Resolve("fr, de;q=0.5"))
	assert.Equal(t, "en", b.Resolve(""))
	assert.Equal(t, "bn", b.Resolve("en-GB;q=0.4, bn-IN"))
	assert.Equal(t, "en", b.Resolve("bn;q=0, en-US"))
}

func TestTFallsBackToDefaultThenKey(t *testing.T) {
	b := testBundle(t)
	assert.Equal(t, "হোম", b.T("bn", "nav.home"))
	assert.Equal(t, "English", b.T("bn", "only.en"))
	assert.Equal(t, "missing.key", b.T("bn", "missing.key"))
	assert.Equal(t, []string{"bn", "en", "hi"}, b.Supported())
}

func TestLoadRequiresFallback(t *testing.T) {
	_, err := Load(fstest.MapFS{}, "en", []string{"en"})
	assert.Error(t, err)
}

func TestEmbeddedLocalesCoverNavigation(t *testing.T) {
	b, err := LoadEmbedded()
	require.NoError(t, err)
	for _, key := range []string{"nav.home", "nav.about", "nav.case_studies", "nav.blogs"} {
		assert.NotEqual(t, key, b.T(Default, key), key)
	}
}
