// Package quality scores rendered document text for extraction quality.
// The noise ratio is a cheap proxy for how badly the upstream rendering
// mangled a page: the fraction of characters that are neither alphanumeric
// nor whitespace. Callers apply policy on the result; scoring itself is
// pure.
package quality

import (
	"math"
	"regexp"
	"strings"
	"unicode"
)

var (
	horizontalWhitespace = regexp.MustCompile(`[ \t]+`)
	newlineRuns          = regexp.MustCompile(`\n+`)
)

// Metrics are the capture-time quality metrics for a block of text.
type Metrics struct {
	TextLength int
	NoiseRatio float64
}

// Normalize collapses runs of horizontal whitespace to a single space and
// runs of newlines to one newline, and trims the ends. It is applied once,
// before scoring and before storage, so stored metrics are consistent with
// the stored text.
func Normalize(text string) string {
	text = horizontalWhitespace.ReplaceAllString(text, " ")
	text = newlineRuns.ReplaceAllString(text, "\n")
	return strings.TrimSpace(text)
}

// Score computes the length and noise ratio of text. Empty text scores a
// noise ratio of exactly 1.0, a sentinel for "no usable signal". The ratio
// is rounded to 4 decimal places. Characters are runes.
func Score(text string) Metrics {
	if text == "" {
		return Metrics{TextLength: 0, NoiseRatio: 1.0}
	}

	length := 0
	signal := 0
	for _, r := range text {
		length++
		if unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.IsSpace(r) {
			signal++
		}
	}

	ratio := float64(length-signal) / float64(length)

	return Metrics{
		TextLength: length,
		NoiseRatio: math.Round(ratio*10000) / 10000,
	}
}
