// Package document holds the data model shared by the curation pipeline:
// documents, labelled entity spans and the annotation records persisted to
// the annotation store.
package document

import "unicode/utf8"

// Label is one of the entity types the recogniser is trained on. The set is
// closed; anything else parses to LabelUnknown so that per-label reporting
// stays exhaustive.
type Label string

const (
	LabelDate         Label = "DATE"
	LabelParty        Label = "PARTY"
	LabelAmount       Label = "AMOUNT"
	LabelJurisdiction Label = "JURISDICTION"
	LabelUnknown      Label = "UNKNOWN"
)

// TargetLabels returns the labels reported by evaluation, in report order.
func TargetLabels() []Label {
	return []Label{LabelDate, LabelAmount, LabelParty, LabelJurisdiction}
}

func ParseLabel(name string) Label {
	switch Label(name) {
	case LabelDate, LabelParty, LabelAmount, LabelJurisdiction:
		return Label(name)
	default:
		return LabelUnknown
	}
}

// Document is one unit of rendered source text plus its capture-time quality
// metrics. Text is immutable once the document has been recorded.
type Document struct {
	ID         string
	Name       string
	Text       string
	TextLength int
	NoiseRatio float64
}

// Span is a labelled character range within a document's text. Offsets are
// rune offsets, 0 <= Start < End <= rune length of the text.
type Span struct {
	Start int
	End   int
	Label Label
}

// Text returns the substring of text the span denotes.
func (s Span) Text(text string) string {
	return string([]rune(text)[s.Start:s.End])
}

// Within reports whether the span's offsets fall inside text.
func (s Span) Within(text string) bool {
	return s.Start >= 0 && s.Start < s.End && s.End <= utf8.RuneCountInString(text)
}

// Example is one (text, gold spans) training or evaluation unit handed to
// the recogniser.
type Example struct {
	Text  string `json:"text"`
	Spans []Span `json:"label"`
}
