package document

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-openapi/strfmt"
)

// AnnotationRecord is the persisted unit of the annotation store: one
// document, its validated spans and the quality metrics at capture time.
// Records are append-only; a correction is a new record, never an edit.
//
// The wire shape is one JSON object per line with spans as doccano-style
// [start, end, label] triples under the "label" key.
type AnnotationRecord struct {
	DocumentID   string          `json:"document_id"`
	DocumentName string          `json:"document_name,omitempty"`
	Timestamp    strfmt.DateTime `json:"timestamp,omitempty"`
	Text         string          `json:"text"`
	Spans        []Span          `json:"label"`
	NoiseRatio   float64         `json:"ocr_noise_ratio"`
	TextLength   int             `json:"text_length"`
}

// NewRecord assembles a record for a document and its spans, stamping the
// capture time.
func NewRecord(doc Document, spans []Span) AnnotationRecord {
	if spans == nil {
		spans = []Span{}
	}
	return AnnotationRecord{
		DocumentID:   doc.ID,
		DocumentName: doc.Name,
		Timestamp:    strfmt.DateTime(time.Now().UTC()),
		Text:         doc.Text,
		Spans:        spans,
		NoiseRatio:   doc.NoiseRatio,
		TextLength:   doc.TextLength,
	}
}

func (s Span) MarshalJSON() ([]byte, error) {
	return json.Marshal([]interface{}{s.Start, s.End, string(s.Label)})
}

func (s *Span) UnmarshalJSON(b []byte) error {
	var triple []json.RawMessage
	if err := json.Unmarshal(b, &triple); err != nil {
		return err
	}
	if len(triple) != 3 {
		return fmt.Errorf("span must be a [start, end, label] triple, got %d elements", len(triple))
	}
	if err := json.Unmarshal(triple[0], &s.Start); err != nil {
		return err
	}
	if err := json.Unmarshal(triple[1], &s.End); err != nil {
		return err
	}
	var name string
	if err := json.Unmarshal(triple[2], &name); err != nil {
		return err
	}
	s.Label = ParseLabel(name)
	return nil
}
