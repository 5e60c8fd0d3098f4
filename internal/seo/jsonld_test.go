package seo

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func marshal(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}

func TestCollectionPageNumbersParts(t *testing.T) {
	t.Parallel()

	m := CollectionPage("Highlights", "https://site.test/highlights", "", []CreativeWork{
		{Name: "One", URL: "https://site.test/1"},
		{Name: "Two", URL: "https://site.test/2"},
	})
	parts, ok := m["hasPart"].([]map[string]any)
	require.True(t, ok)
	require.Len(t, parts, 2)
	assert.Equal(t, 1, parts[0]["position"])
	assert.Equal(t, 2, parts[1]["position"])
	_, hasDescription := m["description"]
	assert.False(t, hasDescription)
}

func TestArticleSetsAuthorAndMainEntity(t *testing.T) {
	t.Parallel()

	got := marshal(t, Article("Headline", "Desc", "https://site.test/a", "https://site.test/i.jpg", "Ambarish Ganguly"))
	assert.JSONEq(t, `{
		"@context": "https://schema.org",
		"@type": "Article",
		"headline": "Headline",
		"description": "Desc",
		"url": "https://site.test/a",
		"mainEntityOfPage": "https://site.test/a",
		"image": "https://site.test/i.jpg",
		"author": {"@type": "Person", "name": "Ambarish Ganguly"}
	}`, got)
}

func TestPersonAddress(t *testing.T) {
	t.Parallel()

	got := marshal(t, Person(PersonInfo{
		Name:    "Ambarish Ganguly",
		SameAs:  []string{"https://www.linkedin.com/in/ambarish-ganguly/"},
		Address: &PostalAddress{Locality: "Kolkata", Region: "West Bengal", Country: "IN"},
	}))
	assert.Contains(t, got, `"addressCountry":"IN"`)
	assert.Contains(t, got, `"sameAs":["https://www.linkedin.com/in/ambarish-ganguly/"]`)
}

func TestBreadcrumbListSkipsUnnamedItems(t *testing.T) {
	t.Parallel()

	got := marshal(t, BreadcrumbList([]BreadcrumbItem{
		{Name: "Home", Item: "https://site.test/"},
		{Item: "https://site.test/ghost"},
		{Name: "Highlights", Item: "https://site.test/highlights"},
	}))
	assert.JSONEq(t, `{
		"@context": "https://schema.org",
		"@type": "BreadcrumbList",
		"itemListElement": [
			{"@type": "ListItem", "position": 1, "name": "Home", "item": "https://site.test/"},
			{"@type": "ListItem", "position": 2, "name": "Highlights", "item": "https://site.test/highlights"}
		]
	}`, got)
}
