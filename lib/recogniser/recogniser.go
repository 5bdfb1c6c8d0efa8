// Package recogniser defines the boundary to the external sequence-labelling
// model. The pipeline trains and consumes the model through this interface;
// it never implements the learning algorithm itself.
package recogniser

import (
	"context"

	"gitlab.com/lexiscan/contract-extraction/lib/document"
)

type Client interface {
	// Ready reports whether the client holds a loaded model. The serving
	// layer checks this before accepting work.
	Ready() bool

	// Load makes the model artifact at path the active model.
	Load(ctx context.Context, path string) error

	// Save persists the active model artifact to path.
	Save(ctx context.Context, path string) error

	// Predict returns candidate entity spans for text.
	Predict(ctx context.Context, text string) ([]document.Span, error)

	// Update runs one optimisation step over a batch of gold examples and
	// returns the batch loss.
	Update(ctx context.Context, batch []document.Example) (float64, error)

	// Evaluate scores the active model against gold examples.
	Evaluate(ctx context.Context, examples []document.Example) (Scores, error)
}

// LabelScores are precision/recall/F1 for one label.
type LabelScores struct {
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1        float64 `json:"f1"`
}

// Scores are overall and per-label evaluation results.
type Scores struct {
	Precision float64                        `json:"precision"`
	Recall    float64                        `json:"recall"`
	F1        float64                        `json:"f1"`
	PerLabel  map[document.Label]LabelScores `json:"per_label"`
}
