package content

import (
	"fmt"
	"strings"

	"github.com/ambarishg/AmbarishWEBSITE/internal/format"
)

// FocusArea is an achievement category narrowed to the items one page shows.
type FocusArea struct {
	ID          string
	Label       string
	Description string
	Items       []Achievement
	Tags        []string
}

// azureKeywords match case-insensitively as substrings of a description or tag.
var azureKeywords = []string{
	"azure",
	"microsoft",
	"azure openai",
	"azure ai",
	"azure ml",
	"azure machine learning",
	"azure kubernetes",
	"azure service bus",
	"microsoft phi3",
	"future ready",
}

// KaggleAreas keeps items tagged "kaggle" (any case) or spotlighted for kaggle.
func (c Catalog) KaggleAreas() []FocusArea {
	return c.focusAreas(isKaggle, func(category string, i int) (string, string) {
		label := strings.TrimSpace(category)
		if label == "" {
			label = fmt.Sprintf("Focus Area %d", i+1)
		}
		return format.AnchorID("kaggle", category, fmt.Sprintf("kaggle-focus-%d", i+1)), label
	})
}

// AzureAreas keeps items whose description or any tag mentions Azure or Microsoft.
func (c Catalog) AzureAreas() []FocusArea {
	return c.focusAreas(isAzure, func(category string, i int) (string, string) {
		return format.AnchorID("focus", category, fmt.Sprintf("focus-area-%d", i+1)), category
	})
}

func (c Catalog) focusAreas(keep func(Achievement) bool, label func(string, int) (string, string)) []FocusArea {
	var out []FocusArea
	for i, g := range c.Achievements {
		var items []Achievement
		for _, it := range g.Items {
			if strings.TrimSpace(it.Description) == "" || !keep(it) {
				continue
			}
			items = append(items, it)
		}
		if len(items) == 0 {
			continue
		}
		id, name := label(g.Category, i)
		out = append(out, FocusArea{
			ID:          id,
			Label:       name,
			Description: g.Description,
			Items:       items,
			Tags:        uniqueTags(items),
		})
	}
	return out
}

// Headline summarises the area labels, e.g. "A, B, C + 2 more".
func Headline(areas []FocusArea) string {
	labels := make([]string, 0, len(areas))
	for _, a := range areas {
		labels = append(labels, a.Label)
	}
	return format.Headline(labels)
}

// AllTags merges the areas' tags in first-seen order.
func AllTags(areas []FocusArea) []string {
	var items []Achievement
	for _, a := range areas {
		items = append(items, Achievement{Tags: a.Tags})
	}
	return uniqueTags(items)
}

// ItemCount totals the items across areas.
func ItemCount(areas []FocusArea) int {
	n := 0
	for _, a := range areas {
		n += len(a.Items)
	}
	return n
}

func isKaggle(a Achievement) bool {
	for _, s := range a.Spotlights {
		if s == "kaggle" {
			return true
		}
	}
	for _, t := range a.Tags {
		if strings.EqualFold(t, "kaggle") {
			return true
		}
	}
	return false
}

func isAzure(a Achievement) bool {
	if matchesAzure(a.Description) {
		return true
	}
	for _, t := range a.Tags {
		if matchesAzure(t) {
			return true
		}
	}
	return false
}

func matchesAzure(v string) bool {
	if v == "" {
		return false
	}
	v = strings.ToLower(v)
	for _, k := range azureKeywords {
		if strings.Contains(v, k) {
			return true
		}
	}
	return false
}

func uniqueTags(items []Achievement) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, it := range items {
		for _, t := range it.Tags {
			if strings.TrimSpace(t) == "" {
				continue
			}
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			out = append(out, t)
		}
	}
	return out
}
