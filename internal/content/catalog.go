package content

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var embeddedCatalog []byte

// Catalog is the profile data every page draws on. It is read once and never mutated.
type Catalog struct {
	Hero           Hero               `yaml:"hero"`
	Summary        []string           `yaml:"summary"`
	Achievements   []AchievementGroup `yaml:"achievements"`
	Certifications []string           `yaml:"certifications"`
	Blogs          []Blog             `yaml:"blogs"`
	Academy        Academy            `yaml:"academy"`
	Highlights     []Link             `yaml:"highlights"`
}

// Hero is the site owner.
type Hero struct {
	Name               string   `yaml:"name"`
	Title              string   `yaml:"title"`
	Location           string   `yaml:"location"`
	Address            Address  `yaml:"address"`
	Contact            Contact  `yaml:"contact"`
	HeadlineHighlights []string `yaml:"headline_highlights"`
	Skills             []string `yaml:"skills"`
}

type Address struct {
	Locality string `yaml:"locality"`
	Region   string `yaml:"region"`
	Country  string `yaml:"country"`
}

type Contact struct {
	Email    string `yaml:"email"`
	LinkedIn string `yaml:"linkedin"`
}

// SameAs lists the profile links used by the Person schema.
func (c Contact) SameAs() []string {
	var out []string
	if c.LinkedIn != "" {
		out = append(out, c.LinkedIn)
	}
	if c.Email != "" {
		out = append(out, "mailto:"+c.Email)
	}
	return out
}

// AchievementGroup is one category of recognitions.
type AchievementGroup struct {
	Category    string        `yaml:"category"`
	Description string        `yaml:"description"`
	Items       []Achievement `yaml:"items"`
}

// Achievement is a single recognition. In YAML it is either a mapping or a bare description.
type Achievement struct {
	Description string   `yaml:"description"`
	Tags        []string `yaml:"tags"`
	Spotlights  []string `yaml:"spotlights"`
	Link        *Link    `yaml:"link"`
}

func (a *Achievement) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		*a = Achievement{Description: value.Value}
		return nil
	}
	type plain Achievement
	var p plain
	if err := value.Decode(&p); err != nil {
		return err
	}
	*a = Achievement(p)
	return nil
}

type Blog struct {
	Title string   `yaml:"title"`
	URL   string   `yaml:"url"`
	Tags  []string `yaml:"tags"`
}

type Academy struct {
	Channel  string           `yaml:"channel"`
	Sections []AcademySection `yaml:"sections"`
}

type AcademySection struct {
	Category  string `yaml:"category"`
	Playlists []struct {
		Title string `yaml:"title"`
		Href  string `yaml:"href"`
	} `yaml:"playlists"`
}

// Link is a titled site path or URL.
type Link struct {
	Title string `yaml:"title"`
	Path  string `yaml:"path"`
}

// ParseCatalog decodes catalog YAML and checks the fields pages depend on.
func ParseCatalog(data []byte) (Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Catalog{}, fmt.Errorf("content: parse catalog: %w", err)
	}
	if strings.TrimSpace(c.Hero.Name) == "" {
		return Catalog{}, fmt.Errorf("content: catalog hero name is required")
	}
	for i, h := range c.Highlights {
		if !strings.HasPrefix(h.Path, "/") {
			return Catalog{}, fmt.Errorf("content: highlight %d path %q must start with /", i, h.Path)
		}
	}
	return c, nil
}

// EmbeddedCatalog returns the catalog compiled into the binary.
func EmbeddedCatalog() (Catalog, error) {
	return ParseCatalog(embeddedCatalog)
}
