// Package search finds library items whose resolved icon is tagged with a
// given phrase, in any supported language.
//
// The search runs in two phases. Phase A scans the catalog once and
// collects every icon with a tag containing the phrase — the catalog is
// small and bounded, so this is cheap. Phase B resolves each item through
// the cache and keeps the ones whose icon landed in the phase-A set,
// preserving the caller's order. After a warm cache, phase B is a map
// lookup per item.
package search

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/nutrilog/iconkit/cache"
	"github.com/nutrilog/iconkit/catalog"
	"github.com/nutrilog/iconkit/lang"
	"github.com/nutrilog/iconkit/match"
)

// minPhraseRunes is the shortest normalized phrase worth scanning for.
// One-rune phrases match nearly every tag and only produce noise.
const minPhraseRunes = 2

// Item is a library entry identified by its user-entered name.
type Item struct {
	Name string
}

// Searcher runs reverse tag searches over a catalog and its cache.
type Searcher struct {
	cat   *catalog.Catalog
	cache *cache.Cache
}

// New returns a searcher over the given catalog and resolution cache.
func New(cat *catalog.Catalog, c *cache.Cache) *Searcher {
	return &Searcher{cat: cat, cache: c}
}

// FindByTagPhrase returns the items whose resolved icon carries a tag
// containing phrase in any supported locale. Input order is preserved.
// Phrases shorter than two normalized runes yield nothing.
func (s *Searcher) FindByTagPhrase(ctx context.Context, phrase string, items []Item) []Item {
	norm := match.Normalize(phrase)
	if utf8.RuneCountInString(norm) < minPhraseRunes {
		return nil
	}

	icons := s.matchingIcons(norm)
	if len(icons) == 0 {
		return nil
	}

	var out []Item
	for _, item := range items {
		icon, ok := s.cache.GetOrResolve(ctx, item.Name, lang.Classify(item.Name))
		if ok && icons[icon] {
			out = append(out, item)
		}
	}
	return out
}

// matchingIcons scans every definition across all locales and returns the
// set of icons with a tag containing the normalized phrase. A definition's
// remaining locales are skipped once one matches.
func (s *Searcher) matchingIcons(phrase string) map[string]bool {
	icons := make(map[string]bool)
	for _, def := range s.cat.Definitions() {
	locales:
		for _, locale := range lang.Supported() {
			for _, tag := range s.cat.Tags(def.TagKey, locale) {
				if strings.Contains(tag, phrase) {
					icons[def.Icon] = true
					break locales
				}
			}
		}
	}
	return icons
}
