// Package lang defines the closed set of languages the icon engine
// understands and classifies free text onto it by dominant Unicode script.
//
// The set is deliberately small: every supported language must have a tag
// catalog behind it, so the classifier and the catalog agree on what
// "supported" means.
package lang

import (
	"strings"

	"golang.org/x/text/language"
)

// Code is a supported language code.
type Code string

const (
	// EN is English (Latin script). Also the tie-break and fallback default.
	EN Code = "en"
	// RU is Russian (Cyrillic script).
	RU Code = "ru"
	// HE is Hebrew.
	HE Code = "he"
)

// supported lists the codes in declaration order. Order matters to callers
// that scan all locales (reverse tag search walks them in this order).
var supported = []Code{EN, RU, HE}

// Supported returns all supported language codes in declaration order.
// The returned slice must not be modified.
func Supported() []Code {
	return supported
}

// Valid reports whether c is one of the supported codes.
func Valid(c Code) bool {
	for _, s := range supported {
		if c == s {
			return true
		}
	}
	return false
}

// ---------------------------------------------------------------------------
// Display metadata
// ---------------------------------------------------------------------------

// Meta describes language display metadata.
type Meta struct {
	Name string
	Flag string
}

// registry holds canonical display metadata per supported code.
var registry = map[Code]Meta{
	EN: {Name: "English", Flag: "🇺🇸"},
	RU: {Name: "Русский", Flag: "🇷🇺"},
	HE: {Name: "עברית", Flag: "🇮🇱"},
}

// MetaFor returns display metadata for a supported code. Unknown codes get
// the code itself as the name and no flag.
func MetaFor(c Code) Meta {
	if m, ok := registry[c]; ok {
		return m
	}
	return Meta{Name: string(c)}
}

// ---------------------------------------------------------------------------
// BCP-47 resolution
// ---------------------------------------------------------------------------

// matcher maps arbitrary BCP-47 tags onto the supported set. The tag order
// mirrors supported so English stays the default on no match.
var matcher = language.NewMatcher([]language.Tag{
	language.English,
	language.Russian,
	language.Hebrew,
})

// Resolve canonicalizes an arbitrary language tag ("ru_RU", "he-IL", "EN")
// onto the supported set. Returns false when the tag does not parse or
// matches none of the supported languages.
func Resolve(tag string) (Code, bool) {
	tag = strings.ReplaceAll(strings.TrimSpace(tag), "_", "-")
	if tag == "" {
		return EN, false
	}
	parsed, err := language.Parse(tag)
	if err != nil {
		return EN, false
	}
	_, index, conf := matcher.Match(parsed)
	if conf == language.No {
		return EN, false
	}
	return supported[index], true
}
