// Package match scores normalized food names against the icon catalog and
// picks the best icon.
//
// Matching is a pure function over the name, the locale, and the immutable
// catalog: no I/O, no state. Callers that need memoization wrap a Matcher
// in a cache.
package match

import (
	"strings"
	"unicode"

	"github.com/nutrilog/iconkit/catalog"
	"github.com/nutrilog/iconkit/lang"
)

// Score weights. These are policy, not physics: the relative order matters
// (exact > whole word > tag-contains-name > partial overlap), the absolute
// values are calibrated against the test corpus.
const (
	scoreExact     = 10
	scoreWholeWord = 5
	scoreContained = 3
	scoreOverlap   = 1

	// minOverlap is the shortest shared substring (in runes) that still
	// counts as partial overlap.
	minOverlap = 3
)

// Normalize prepares a name or tag for matching: trim, lowercase, collapse
// internal whitespace runs to single spaces. Idempotent. Lowercasing is the
// only script transformation applied — no diacritic stripping, so
// non-Latin scripts pass through intact.
func Normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// Matcher resolves names against a catalog.
type Matcher struct {
	cat *catalog.Catalog
}

// New returns a matcher over the given catalog.
func New(cat *catalog.Catalog) *Matcher {
	return &Matcher{cat: cat}
}

// Resolve maps a food name to the best-matching icon in the given locale.
// Tag lists empty for the locale fall back to English. Returns false when
// no definition scores above zero. Ties resolve to the definition declared
// first, so results are stable across calls.
func (m *Matcher) Resolve(name string, locale lang.Code) (string, bool) {
	norm := Normalize(name)
	if norm == "" {
		return "", false
	}

	bestScore := 0
	bestIcon := ""
	for _, def := range m.cat.Definitions() {
		tags := m.cat.Tags(def.TagKey, locale)
		if len(tags) == 0 && locale != lang.EN {
			tags = m.cat.Tags(def.TagKey, lang.EN)
		}

		for _, tag := range tags {
			// Strictly greater: the earliest definition wins ties.
			if s := scoreTag(norm, tag); s > bestScore {
				bestScore = s
				bestIcon = def.Icon
			}
		}
	}

	if bestScore == 0 {
		return "", false
	}
	return bestIcon, true
}

// scoreTag rates how well a single tag matches a normalized name.
func scoreTag(name, tag string) int {
	switch {
	case tag == name:
		return scoreExact
	case containsWord(name, tag):
		return scoreWholeWord
	case strings.Contains(tag, name):
		return scoreContained
	case sharedSubstring(name, tag, minOverlap):
		return scoreOverlap
	default:
		return 0
	}
}

// containsWord reports whether s contains sub delimited by word boundaries.
// A boundary is the string edge or any rune that is not a letter or digit,
// so "apple pie" contains the word "apple" but "pineapple" does not.
func containsWord(s, sub string) bool {
	if sub == "" {
		return false
	}
	for from := 0; ; {
		idx := strings.Index(s[from:], sub)
		if idx < 0 {
			return false
		}
		start := from + idx
		end := start + len(sub)
		if boundaryBefore(s, start) && boundaryAfter(s, end) {
			return true
		}
		from = start + 1
	}
}

func boundaryBefore(s string, i int) bool {
	if i == 0 {
		return true
	}
	r := lastRune(s[:i])
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

func boundaryAfter(s string, i int) bool {
	if i >= len(s) {
		return true
	}
	for _, r := range s[i:] {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}
	return true
}

func lastRune(s string) rune {
	var last rune
	for _, r := range s {
		last = r
	}
	return last
}

// sharedSubstring reports whether a and b share a common substring of at
// least n runes. A shared substring of length >= n exists exactly when one
// of length n does, so only windows of n are probed.
func sharedSubstring(a, b string, n int) bool {
	ra := []rune(a)
	if len(ra) < n || len([]rune(b)) < n {
		return false
	}
	for i := 0; i+n <= len(ra); i++ {
		if strings.Contains(b, string(ra[i:i+n])) {
			return true
		}
	}
	return false
}
