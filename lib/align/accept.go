package align

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Acceptable reports whether a predicted span is worth returning at serving
// time. Recognisers habitually over-predict stray punctuation as entities;
// rejecting trimmed-empty spans and single punctuation characters is a cheap
// precision filter, not a correctness guarantee.
func Acceptable(spanText string) bool {
	trimmed := strings.TrimSpace(spanText)
	if trimmed == "" {
		return false
	}

	if utf8.RuneCountInString(trimmed) == 1 {
		r, _ := utf8.DecodeRuneInString(trimmed)
		if unicode.IsPunct(r) || unicode.IsSymbol(r) {
			return false
		}
	}

	return true
}
