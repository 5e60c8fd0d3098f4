// Package i18n resolves UI labels (navigation, fallback headings) per language.
package i18n

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"sort"

	"golang.org/x/text/language"
)

//go:embed locales/*.json
var embedded embed.FS

// Default is the fallback language of the site.
const Default = "en"

// Bundle holds translations keyed by language then message key.
type Bundle struct {
	dict      map[string]map[string]string
	fallback  string
	supported map[string]struct{}
}

// LoadEmbedded loads the locales compiled into the binary.
func LoadEmbedded() (*Bundle, error) {
	sub, err := fs.Sub(embedded, "locales")
	if err != nil {
		return nil, err
	}
	return Load(sub, Default, []string{Default})
}

// Load reads <lang>.json for every supported language from fsys. Only the
// fallback language's file is mandatory.
func Load(fsys fs.FS, fallback string, supported []string) (*Bundle, error) {
	if len(supported) == 0 {
		supported = []string{fallback}
	}
	b := &Bundle{
		dict:      make(map[string]map[string]string, len(supported)),
		fallback:  fallback,
		supported: make(map[string]struct{}, len(supported)),
	}
	for _, lang := range supported {
		b.supported[lang] = struct{}{}
		messages, err := readLocale(fsys, lang)
		switch {
		case errors.Is(err, fs.ErrNotExist) && lang != fallback:
			continue
		case err != nil:
			return nil, err
		}
		b.dict[lang] = messages
	}
	if _, ok := b.dict[fallback]; !ok {
		return nil, fmt.Errorf("i18n: fallback locale %s not loaded", fallback)
	}
	return b, nil
}

func readLocale(fsys fs.FS, lang string) (map[string]string, error) {
	raw, err := fs.ReadFile(fsys, lang+".json")
	if err != nil {
		return nil, fmt.Errorf("i18n: load locale %s: %w", lang, err)
	}
	messages := map[string]string{}
	if err := json.Unmarshal(raw, &messages); err != nil {
		return nil, fmt.Errorf("i18n: decode locale %s: %w", lang, err)
	}
	return messages, nil
}

// Supported lists the configured languages in sorted order.
func (b *Bundle) Supported() []string {
	langs := make([]string, 0, len(b.supported))
	for lang := range b.supported {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

// Fallback returns the configured fallback language.
func (b *Bundle) Fallback() string { return b.fallback }

// IsSupported reports whether lang is a configured language.
func (b *Bundle) IsSupported(lang string) bool {
	_, ok := b.supported[lang]
	return ok
}

// T looks key up in lang, then in the fallback language, and finally returns
// key itself.
func (b *Bundle) T(lang, key string) string {
	for _, l := range [...]string{lang, b.fallback} {
		if v, ok := b.dict[l][key]; ok {
			return v
		}
	}
	return key
}

// Resolve chooses the best supported language from an Accept-Language header,
// matching on the base language in descending q order.
func (b *Bundle) Resolve(acceptLang string) string {
	tags, weights, err := language.ParseAcceptLanguage(acceptLang)
	if err != nil {
		return b.fallback
	}
	for i, tag := range tags {
		if weights[i] <= 0 {
			continue
		}
		base, _ := tag.Base()
		if l := base.String(); b.IsSupported(l) {
			return l
		}
	}
	return b.fallback
}
