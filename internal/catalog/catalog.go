// Package catalog holds the built-in asana catalog used to seed the library.
package catalog

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"yogablocks/internal/service/docsystem"
)

//go:embed asanas.yaml
var defaultCatalog []byte

// Asana is one catalog entry.
type Asana struct {
	EnglishName       string   `yaml:"english_name"`
	SanskritName      string   `yaml:"sanskrit_name"`
	Category          string   `yaml:"category"`
	Benefits          []string `yaml:"benefits"`
	Contraindications []string `yaml:"contraindications"`
	Modifications     []string `yaml:"modifications"`
	PreparatoryPoses  []string `yaml:"preparatory_poses"`
}

// Catalog is an ordered list of asanas with unique normalized names.
type Catalog struct {
	Asanas []Asana `yaml:"asanas"`
}

// Load parses the embedded catalog.
func Load() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// Parse decodes and validates a catalog document.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal catalog: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Catalog) validate() error {
	seen := make(map[string]bool, len(c.Asanas))
	for i, a := range c.Asanas {
		name := docsystem.NormalizeTitle(a.EnglishName)
		if name == "" {
			return fmt.Errorf("catalog entry %d: english_name is required", i)
		}
		if seen[name] {
			return fmt.Errorf("catalog entry %d: duplicate english_name %q", i, a.EnglishName)
		}
		seen[name] = true
	}
	return nil
}

// Resolver maps a pose title to a document id.
type Resolver func(title string) (string, bool)

// Markdown renders an asana as the section markdown understood by the read view.
// Preparatory poses become library links when resolve knows their title.
func (a Asana) Markdown(resolve Resolver) string {
	var parts []string

	if v := strings.TrimSpace(a.SanskritName); v != "" {
		parts = append(parts, "## "+docsystem.LabelSanskritName+"\n"+v)
	}
	if v := strings.TrimSpace(a.Category); v != "" {
		parts = append(parts, "## "+docsystem.LabelCategory+"\n"+v)
	}
	parts = appendSection(parts, docsystem.LabelBenefits, a.Benefits)
	parts = appendSection(parts, docsystem.LabelContraindications, a.Contraindications)
	parts = appendSection(parts, docsystem.LabelModifications, a.Modifications)

	poses := make([]string, 0, len(a.PreparatoryPoses))
	for _, title := range a.PreparatoryPoses {
		title = strings.TrimSpace(title)
		if title == "" {
			continue
		}
		if resolve != nil {
			if id, ok := resolve(title); ok {
				title = docsystem.LibraryLink(title, id)
			}
		}
		poses = append(poses, title)
	}
	parts = appendSection(parts, docsystem.LabelPreparatoryPoses, poses)

	return strings.Join(parts, "\n\n")
}

func appendSection(parts []string, label string, items []string) []string {
	lines := []string{"## " + label}
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			lines = append(lines, "- "+item)
		}
	}
	if len(lines) == 1 {
		return parts
	}
	return append(parts, strings.Join(lines, "\n"))
}
