// Package catalog holds the fixed set of food icon definitions and their
// per-language tag lists.
//
// A definition couples a pictographic icon with a tag key; the tag key
// selects localized tag lists used for name matching. The position of a
// definition in the catalog is significant: scoring ties are broken by the
// lowest declaration order, so the catalog must preserve source order.
//
// Catalogs are loaded once and immutable afterwards. Tag payloads arrive
// from localization resources of unknown shape and are validated and
// coerced to flat string lists at the loading boundary; malformed entries
// become empty lists, never errors.
package catalog

import (
	"fmt"

	"github.com/nutrilog/iconkit/lang"
)

// Definition declares one icon and the key of its localized tag lists.
type Definition struct {
	// Icon is the pictographic identifier, unique within the catalog.
	Icon string `yaml:"icon"`
	// TagKey selects the tag lists in the tag source.
	TagKey string `yaml:"key"`
}

// TagSource supplies localized tag lists. Implementations return an empty
// slice, never an error, when no tags exist for a key/locale pair.
type TagSource interface {
	Tags(tagKey string, locale lang.Code) []string
}

// Catalog is an ordered, immutable set of icon definitions backed by a
// tag source.
type Catalog struct {
	defs    []Definition
	source  TagSource
	version string
}

// New builds a catalog from definitions in declaration order. Icons must be
// unique and non-empty, tag keys non-empty. The version string namespaces
// durable cache entries; it defaults to "1" when empty.
func New(defs []Definition, source TagSource, version string) (*Catalog, error) {
	if source == nil {
		return nil, fmt.Errorf("catalog: nil tag source")
	}
	if version == "" {
		version = "1"
	}

	seen := make(map[string]bool, len(defs))
	for i, d := range defs {
		if d.Icon == "" {
			return nil, fmt.Errorf("catalog: definition #%d has no icon", i+1)
		}
		if d.TagKey == "" {
			return nil, fmt.Errorf("catalog: definition %q has no tag key", d.Icon)
		}
		if seen[d.Icon] {
			return nil, fmt.Errorf("catalog: duplicate icon %q", d.Icon)
		}
		seen[d.Icon] = true
	}

	// Copy so the caller cannot mutate declaration order afterwards.
	own := make([]Definition, len(defs))
	copy(own, defs)

	return &Catalog{defs: own, source: source, version: version}, nil
}

// Definitions returns the definitions in declaration order.
// The returned slice must not be modified.
func (c *Catalog) Definitions() []Definition {
	return c.defs
}

// Len returns the number of definitions.
func (c *Catalog) Len() int {
	return len(c.defs)
}

// Tags returns the tag list for a tag key in the given locale, or an empty
// slice when none exist.
func (c *Catalog) Tags(tagKey string, locale lang.Code) []string {
	return c.source.Tags(tagKey, locale)
}

// Contains reports whether icon belongs to the catalog.
func (c *Catalog) Contains(icon string) bool {
	for _, d := range c.defs {
		if d.Icon == icon {
			return true
		}
	}
	return false
}

// Version returns the catalog version used to namespace durable cache keys.
func (c *Catalog) Version() string {
	return c.version
}

// OverlayTags returns a catalog with the same definitions and version
// whose tag lookups consult src first, falling back to the original
// source when src has nothing for a key/locale pair. Used to layer
// project-local tag files over the built-in lists.
func (c *Catalog) OverlayTags(src TagSource) *Catalog {
	return &Catalog{
		defs:    c.defs,
		source:  layered{top: src, base: c.source},
		version: c.version,
	}
}

// layered consults top first, then base.
type layered struct {
	top, base TagSource
}

func (l layered) Tags(tagKey string, locale lang.Code) []string {
	if tags := l.top.Tags(tagKey, locale); len(tags) > 0 {
		return tags
	}
	return l.base.Tags(tagKey, locale)
}

// ---------------------------------------------------------------------------
// In-memory tag source
// ---------------------------------------------------------------------------

// MapSource is a TagSource backed by an in-memory map. Tag lists are
// normalized on construction via CoerceTags.
type MapSource map[string]map[lang.Code][]string

// Tags implements TagSource.
func (m MapSource) Tags(tagKey string, locale lang.Code) []string {
	locales, ok := m[tagKey]
	if !ok {
		return nil
	}
	return locales[locale]
}
