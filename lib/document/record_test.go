package document

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnnotationRecordWireShape(t *testing.T) {
	record := AnnotationRecord{
		DocumentID: "doc-1",
		Text:       "Signed on 15th March 2022 by Beta Corp.",
		Spans: []Span{
			{Start: 10, End: 25, Label: LabelDate},
			{Start: 29, End: 38, Label: LabelParty},
		},
		NoiseRatio: 0.0312,
		TextLength: 39,
	}

	b, err := json.Marshal(record)
	assert.NoError(t, err)
	assert.Contains(t, string(b), `"label":[[10,25,"DATE"],[29,38,"PARTY"]]`)
	assert.Contains(t, string(b), `"ocr_noise_ratio":0.0312`)

	var parsed AnnotationRecord
	assert.NoError(t, json.Unmarshal(b, &parsed))
	assert.Equal(t, record.Spans, parsed.Spans)
	assert.Equal(t, record.Text, parsed.Text)
}

func TestSpanUnmarshalRejectsBadTriples(t *testing.T) {
	var span Span
	assert.Error(t, span.UnmarshalJSON([]byte(`[1,2]`)))
	assert.Error(t, span.UnmarshalJSON([]byte(`{"start":1}`)))
}

func TestParseLabel(t *testing.T) {
	assert.Equal(t, LabelDate, ParseLabel("DATE"))
	assert.Equal(t, LabelJurisdiction, ParseLabel("JURISDICTION"))
	assert.Equal(t, LabelUnknown, ParseLabel("MONEY"))
	assert.Equal(t, LabelUnknown, ParseLabel(""))
}

func TestSpanText(t *testing.T) {
	text := "pay €5,000 now"
	span := Span{Start: 4, End: 10, Label: LabelAmount}
	assert.Equal(t, "€5,000", span.Text(text))
	assert.True(t, span.Within(text))
	assert.False(t, Span{Start: 4, End: 99}.Within(text))
	assert.False(t, Span{Start: 4, End: 4}.Within(text))
}
