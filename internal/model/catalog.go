package model

import (
	"fmt"
	"strings"
)

// CatalogEntry describes one known accessory: its canonical name, its
// category, and the aliases reviewers use for it.
type CatalogEntry struct {
	CanonicalName string   `yaml:"name" json:"name"`
	Type          string   `yaml:"type" json:"type"` // head_strap, face_cover, battery, lens, controller, other
	Aliases       []string `yaml:"aliases" json:"aliases"`
}

// Catalog is the static accessory configuration for a pipeline run.
// It is built once, validated, and shared read-only across workers.
type Catalog struct {
	Entries []CatalogEntry

	// byAlias maps a lowercased alias to its catalog entry index.
	byAlias map[string]int
}

// NewCatalog builds and validates a catalog. An alias that maps to two
// canonical names is a fatal configuration error: it would silently
// corrupt every aggregate, so it is rejected before any review is
// processed. Canonical names themselves count as aliases.
func NewCatalog(entries []CatalogEntry) (*Catalog, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("accessory catalog is empty")
	}

	c := &Catalog{
		Entries: entries,
		byAlias: make(map[string]int),
	}

	for i, entry := range entries {
		if strings.TrimSpace(entry.CanonicalName) == "" {
			return nil, fmt.Errorf("catalog entry %d has empty canonical name", i)
		}

		patterns := append([]string{entry.CanonicalName}, entry.Aliases...)
		for _, alias := range patterns {
			key := strings.ToLower(strings.TrimSpace(alias))
			if key == "" {
				return nil, fmt.Errorf("catalog entry %q has empty alias", entry.CanonicalName)
			}
			if prev, exists := c.byAlias[key]; exists {
				if prev != i {
					return nil, fmt.Errorf("ambiguous alias %q: maps to both %q and %q",
						alias, entries[prev].CanonicalName, entry.CanonicalName)
				}
				continue // same entry listed the alias twice; harmless
			}
			c.byAlias[key] = i
		}
	}

	return c, nil
}

// Lookup resolves a lowercased alias to its catalog entry.
func (c *Catalog) Lookup(alias string) (CatalogEntry, bool) {
	i, ok := c.byAlias[strings.ToLower(alias)]
	if !ok {
		return CatalogEntry{}, false
	}
	return c.Entries[i], true
}

// Aliases returns every matchable pattern (lowercased) in the catalog.
func (c *Catalog) Aliases() []string {
	out := make([]string, 0, len(c.byAlias))
	for alias := range c.byAlias {
		out = append(out, alias)
	}
	return out
}
