// Package eval scores a trained recogniser against the validation set. It
// is only ever handed the validation partition; keeping training data out
// of evaluation is enforced by construction, not convention.
package eval

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"gitlab.com/lexiscan/contract-extraction/lib/align"
	"gitlab.com/lexiscan/contract-extraction/lib/document"
	"gitlab.com/lexiscan/contract-extraction/lib/recogniser"
)

// Report is the outcome of one evaluation run.
type Report struct {
	Scores       recogniser.Scores
	Examples     int
	SkippedSpans int
	Distribution map[document.Label]int
}

type Evaluator struct {
	client recogniser.Client
}

func New(client recogniser.Client) Evaluator {
	return Evaluator{client: client}
}

// Run aligns the validation records the same way training does, scores the
// recogniser over the survivors and logs the metric table: overall
// precision/recall/F1 plus one row per target label. A target label with no
// validation examples is reported as having no evaluation data rather than
// silently omitted.
func (e Evaluator) Run(ctx context.Context, records []document.AnnotationRecord) (Report, error) {
	var examples []document.Example
	report := Report{Distribution: map[document.Label]int{}}

	for _, record := range records {
		result := align.Align(record.Text, record.Spans)
		report.SkippedSpans += result.Skipped
		if len(result.Spans) == 0 {
			log.Debug().Str("document_id", record.DocumentID).Msg("no spans survived alignment")
			continue
		}
		for label, n := range result.LabelCounts {
			report.Distribution[label] += n
		}
		examples = append(examples, document.Example{Text: record.Text, Spans: result.Spans})
	}

	log.Info().
		Int("skipped_spans", report.SkippedSpans).
		Interface("label_distribution", report.Distribution).
		Msg("validation data alignment complete")

	if len(examples) == 0 {
		return Report{}, errors.New("no valid validation data remaining")
	}
	report.Examples = len(examples)

	scores, err := e.client.Evaluate(ctx, examples)
	if err != nil {
		return Report{}, err
	}
	report.Scores = scores

	log.Info().
		Float64("precision", scores.Precision).
		Float64("recall", scores.Recall).
		Float64("f1", scores.F1).
		Msg("overall performance")

	for _, label := range document.TargetLabels() {
		labelScores, ok := scores.PerLabel[label]
		if !ok {
			log.Warn().Str("label", string(label)).Msg("no evaluation data for label")
			continue
		}
		log.Info().
			Str("label", string(label)).
			Float64("precision", labelScores.Precision).
			Float64("recall", labelScores.Recall).
			Float64("f1", labelScores.F1).
			Msg("per-label performance")
	}

	return report, nil
}
