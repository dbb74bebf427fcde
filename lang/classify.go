package lang

import "unicode"

// Classify determines the dominant script of text and returns the matching
// language code. Latin, Cyrillic, and Hebrew letters are counted; digits,
// punctuation, whitespace, and any other script are ignored. The strictly
// highest count wins; every tie (including all counts zero, as with empty
// or numeric-only input, or CJK text) falls back to EN.
//
// Pure function, single pass over the input runes.
func Classify(text string) Code {
	var latin, cyrillic, hebrew int
	for _, r := range text {
		switch {
		case unicode.Is(unicode.Latin, r):
			latin++
		case unicode.Is(unicode.Cyrillic, r):
			cyrillic++
		case unicode.Is(unicode.Hebrew, r):
			hebrew++
		}
	}

	switch {
	case cyrillic > latin && cyrillic > hebrew:
		return RU
	case hebrew > latin && hebrew > cyrillic:
		return HE
	default:
		return EN
	}
}
