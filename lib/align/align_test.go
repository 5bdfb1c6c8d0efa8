package align

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"gitlab.com/lexiscan/contract-extraction/lib/document"
)

const contractText = "Signed on 15th March 2022, Beta Corp agrees to pay $10,000 to Alpha Inc. under the jurisdiction of Texas."

var contractSpans = []document.Span{
	{Start: 10, End: 25, Label: document.LabelDate},          // 15th March 2022
	{Start: 27, End: 36, Label: document.LabelParty},         // Beta Corp
	{Start: 51, End: 58, Label: document.LabelAmount},        // $10,000
	{Start: 62, End: 72, Label: document.LabelParty},         // Alpha Inc.
	{Start: 99, End: 104, Label: document.LabelJurisdiction}, // Texas
}

func TestAlignPreservesBoundaryCleanSpans(t *testing.T) {
	result := Align(contractText, contractSpans)

	assert.Equal(t, contractSpans, result.Spans)
	assert.Equal(t, 0, result.Skipped)
	assert.Equal(t, map[document.Label]int{
		document.LabelDate:         1,
		document.LabelParty:        2,
		document.LabelAmount:       1,
		document.LabelJurisdiction: 1,
	}, result.LabelCounts)

	for _, span := range result.Spans {
		assert.NotEmpty(t, span.Text(contractText))
	}
}

func TestAlignIsIdempotent(t *testing.T) {
	first := Align(contractText, contractSpans)
	second := Align(contractText, first.Spans)

	assert.Equal(t, first.Spans, second.Spans)
	assert.Equal(t, 0, second.Skipped)
	assert.Equal(t, first.LabelCounts, second.LabelCounts)
}

func TestAlignContractsImpreciseOffsets(t *testing.T) {
	text := "pay Beta Corp now"

	tests := []struct {
		name      string
		candidate document.Span
		want      document.Span
	}{
		{
			name:      "leading whitespace shrinks inward",
			candidate: document.Span{Start: 3, End: 13, Label: document.LabelParty},
			want:      document.Span{Start: 4, End: 13, Label: document.LabelParty},
		},
		{
			name:      "mid-token start drops the partial token",
			candidate: document.Span{Start: 6, End: 13, Label: document.LabelParty},
			want:      document.Span{Start: 9, End: 13, Label: document.LabelParty},
		},
		{
			name:      "mid-token end drops the partial token",
			candidate: document.Span{Start: 4, End: 11, Label: document.LabelParty},
			want:      document.Span{Start: 4, End: 8, Label: document.LabelParty},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Align(text, []document.Span{tt.candidate})
			assert.Equal(t, []document.Span{tt.want}, result.Spans)
			assert.Equal(t, 0, result.Skipped)
		})
	}
}

func TestAlignSkipsUnresolvableSpans(t *testing.T) {
	text := "Beta Corp agrees"

	tests := []struct {
		name      string
		candidate document.Span
	}{
		{name: "whitespace only", candidate: document.Span{Start: 4, End: 5, Label: document.LabelParty}},
		{name: "inside one token", candidate: document.Span{Start: 1, End: 3, Label: document.LabelParty}},
		{name: "empty range", candidate: document.Span{Start: 3, End: 3, Label: document.LabelParty}},
		{name: "inverted range", candidate: document.Span{Start: 9, End: 4, Label: document.LabelParty}},
		{name: "past end of text", candidate: document.Span{Start: 10, End: 99, Label: document.LabelParty}},
		{name: "negative start", candidate: document.Span{Start: -2, End: 4, Label: document.LabelParty}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Align(text, []document.Span{tt.candidate})
			assert.Empty(t, result.Spans)
			assert.Equal(t, 1, result.Skipped)
		})
	}
}

func TestAlignKeepsGoingAfterASkip(t *testing.T) {
	result := Align(contractText, append([]document.Span{
		{Start: 11, End: 12, Label: document.LabelDate}, // inside "15th", unresolvable
	}, contractSpans...))

	assert.Equal(t, contractSpans, result.Spans)
	assert.Equal(t, 1, result.Skipped)
}

func TestAlignUnicodeOffsets(t *testing.T) {
	text := "The total investment is €5,000,000 to be governed by the laws of California."

	// "€5,000,000" starts at rune 24 and is 10 runes long.
	result := Align(text, []document.Span{
		{Start: 24, End: 34, Label: document.LabelAmount},
	})

	assert.Equal(t, 0, result.Skipped)
	assert.Len(t, result.Spans, 1)
	assert.Equal(t, "€5,000,000", result.Spans[0].Text(text))
}

func TestAcceptable(t *testing.T) {
	tests := []struct {
		spanText string
		want     bool
	}{
		{")", false},
		{"-", false},
		{"$", false},
		{"", false},
		{"   ", false},
		{" ) ", false},
		{"New York", true},
		{"a", true},
		{"7", true},
		{"$10,000", true},
		{" Beta Corp ", true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Acceptable(tt.spanText), "span %q", tt.spanText)
	}
}
