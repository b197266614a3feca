package corrector

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// ApplyCase transfers the case pattern of original onto word: all-upper
// stays all-upper, a leading capital gives title case, anything else is
// lowercased.
func ApplyCase(original, word string) string {
	if word == "" {
		return word
	}
	if isAllUpper(original) {
		return strings.ToUpper(word)
	}
	first, _ := utf8.DecodeRuneInString(original)
	if unicode.IsUpper(first) || unicode.IsTitle(first) {
		return title(word)
	}
	return strings.ToLower(word)
}

// Reconstruct renders the chosen candidate with the original token's case
// and punctuation. Pass-through candidates reproduce the original verbatim
// and skip ApplyCase, so a known word in irregular case is left alone:
// "aBC" stays "aBC" rather than being folded to "abc".
func Reconstruct(c Candidate) string {
	if c.PassThrough {
		return c.Original
	}
	_, core := splitPunctuation(c.Original)
	return c.Punctuation.Leading + ApplyCase(core, c.Word) + c.Punctuation.Trailing
}

// isAllUpper reports whether s has an uppercase letter and no lowercase one.
func isAllUpper(s string) bool {
	hasUpper := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			hasUpper = true
		}
	}
	return hasUpper
}

func title(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError && size <= 1 {
		return s
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}
