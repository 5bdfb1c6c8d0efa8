// Package align validates candidate entity spans against the text that owns
// them. Curation-time alignment contracts imprecise offsets to token
// boundaries; serving-time acceptance rejects degenerate predicted spans.
package align

import (
	"unicode"
	"unicode/utf8"

	"github.com/blevesearch/segment"

	"gitlab.com/lexiscan/contract-extraction/lib/document"
)

const nonAlphaNumericSegment = 0

// token is one word, number or punctuation segment with its rune offsets in
// the owning text. Whitespace is not a token.
type token struct {
	start int
	end   int
}

// tokenize segments text into tokens, tracking rune offsets the whole way
// so that spans can be checked against token boundaries.
func tokenize(text string) []token {
	segmenter := segment.NewWordSegmenterDirect([]byte(text))

	var tokens []token
	position := 0
	for segmenter.Segment() {
		segmentBytes := segmenter.Bytes()
		runes := utf8.RuneCount(segmentBytes)

		if segmenter.Type() == nonAlphaNumericSegment && isWhitespace(segmentBytes) {
			position += runes
			continue
		}

		tokens = append(tokens, token{start: position, end: position + runes})
		position += runes
	}

	return tokens
}

func isWhitespace(b []byte) bool {
	r, _ := utf8.DecodeRune(b)
	return unicode.IsSpace(r)
}

// Result is the outcome of aligning one document's candidate spans.
type Result struct {
	Spans       []document.Span
	Skipped     int
	LabelCounts map[document.Label]int
}

// Align resolves each candidate span to the tightest token-boundary-clean,
// non-empty substring contained within its raw offsets. If the raw offsets
// land mid-token or on whitespace the span shrinks inward; a span with no
// whole token inside it is skipped and counted, never aborting the rest.
//
// Aligning an already-aligned span set returns it unchanged.
func Align(text string, candidates []document.Span) Result {
	tokens := tokenize(text)
	textLength := utf8.RuneCountInString(text)

	result := Result{LabelCounts: map[document.Label]int{}}
	for _, candidate := range candidates {
		aligned, ok := contract(tokens, candidate, textLength)
		if !ok {
			result.Skipped++
			continue
		}
		result.Spans = append(result.Spans, aligned)
		result.LabelCounts[aligned.Label]++
	}

	return result
}

// contract shrinks the candidate to cover exactly the tokens fully contained
// within it.
func contract(tokens []token, candidate document.Span, textLength int) (document.Span, bool) {
	if candidate.Start < 0 || candidate.End > textLength || candidate.Start >= candidate.End {
		return document.Span{}, false
	}

	start, end := -1, -1
	for _, tok := range tokens {
		if tok.start < candidate.Start {
			continue
		}
		if tok.end > candidate.End {
			break
		}
		if start == -1 {
			start = tok.start
		}
		end = tok.end
	}
	if start == -1 {
		return document.Span{}, false
	}

	return document.Span{Start: start, End: end, Label: candidate.Label}, true
}
