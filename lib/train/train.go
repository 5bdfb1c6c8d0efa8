// Package train drives the external recogniser's learning procedure over a
// curated training set. It owns loop control only: data validation, epoch
// shuffling, the minibatch schedule and loss bookkeeping. The learning
// algorithm itself lives behind the recogniser client.
package train

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"github.com/rs/zerolog/log"

	"gitlab.com/lexiscan/contract-extraction/lib/align"
	"gitlab.com/lexiscan/contract-extraction/lib/document"
	"gitlab.com/lexiscan/contract-extraction/lib/recogniser"
)

// State is where a training run currently is. Saved and Failed are terminal.
type State string

const (
	StateInitializing   State = "initializing"
	StateValidatingData State = "validating_data"
	StateTraining       State = "training"
	StateSaved          State = "saved"
	StateFailed         State = "failed"
)

type Config struct {
	Epochs        int     `mapstructure:"epochs"`
	MinBatchSize  float64 `mapstructure:"min_batch_size"`
	MaxBatchSize  float64 `mapstructure:"max_batch_size"`
	CompoundRate  float64 `mapstructure:"compound_rate"`
	MinCorpusSize int     `mapstructure:"min_corpus_size"`
	ModelDir      string  `mapstructure:"model_dir"`
	Seed          int64   `mapstructure:"seed"`
}

func DefaultConfig(modelDir string) Config {
	return Config{
		Epochs:        20,
		MinBatchSize:  4,
		MaxBatchSize:  32,
		CompoundRate:  1.001,
		MinCorpusSize: 10,
		ModelDir:      modelDir,
		Seed:          42,
	}
}

type Trainer struct {
	client recogniser.Client
	config Config
	state  State
}

func New(client recogniser.Client, config Config) *Trainer {
	return &Trainer{
		client: client,
		config: config,
		state:  StateInitializing,
	}
}

func (t *Trainer) State() State {
	return t.state
}

// Run trains the recogniser over records and saves the resulting artifact to
// the configured model directory. It returns an error, leaving the trainer
// in StateFailed, when no usable data survives validation, when a model
// update fails, or when ctx is cancelled between epochs. Per-record defects
// are logged and skipped, never fatal.
func (t *Trainer) Run(ctx context.Context, records []document.AnnotationRecord) error {
	if t.config.ModelDir == "" {
		return t.fail(errors.New("no model directory configured"))
	}

	t.state = StateValidatingData
	examples := t.validate(records)
	if len(examples) == 0 {
		return t.fail(errors.New("no valid training data remaining after alignment check"))
	}
	if len(examples) < t.config.MinCorpusSize {
		log.Warn().
			Int("examples", len(examples)).
			Int("minimum", t.config.MinCorpusSize).
			Msg("training set is very small, model may not generalise")
	}

	t.state = StateTraining
	log.Info().
		Int("examples", len(examples)).
		Int("epochs", t.config.Epochs).
		Msg("beginning training")

	rng := rand.New(rand.NewSource(t.config.Seed))
	for epoch := 1; epoch <= t.config.Epochs; epoch++ {
		select {
		case <-ctx.Done():
			return t.fail(ctx.Err())
		default:
		}

		rng.Shuffle(len(examples), func(i, j int) {
			examples[i], examples[j] = examples[j], examples[i]
		})

		epochLoss := 0.0
		nextSize := compounding(t.config.MinBatchSize, t.config.MaxBatchSize, t.config.CompoundRate)
		for _, batch := range batches(examples, nextSize) {
			usable := batch[:0:0]
			for _, example := range batch {
				if !consistent(example) {
					log.Warn().Str("text", truncate(example.Text, 40)).Msg("skipping inconsistent example")
					continue
				}
				usable = append(usable, example)
			}
			if len(usable) == 0 {
				continue
			}

			loss, err := t.client.Update(ctx, usable)
			if err != nil {
				return t.fail(fmt.Errorf("model update failed: %w", err))
			}
			epochLoss += loss
		}

		log.Info().
			Int("epoch", epoch).
			Int("epochs", t.config.Epochs).
			Float64("loss", epochLoss).
			Msg("epoch complete")
	}

	if err := t.client.Save(ctx, t.config.ModelDir); err != nil {
		return t.fail(fmt.Errorf("saving model artifact: %w", err))
	}
	t.state = StateSaved
	log.Info().Str("model_dir", t.config.ModelDir).Msg("saved trained model")

	return nil
}

// validate aligns every record's candidate spans and drops records left with
// none, logging the per-span skip count and the label distribution of what
// survived.
func (t *Trainer) validate(records []document.AnnotationRecord) []document.Example {
	var examples []document.Example
	skippedSpans := 0
	droppedRecords := 0
	counts := map[document.Label]int{}

	for _, record := range records {
		result := align.Align(record.Text, record.Spans)
		skippedSpans += result.Skipped
		if len(result.Spans) == 0 {
			droppedRecords++
			log.Debug().Str("document_id", record.DocumentID).Msg("no spans survived alignment")
			continue
		}
		for label, n := range result.LabelCounts {
			counts[label] += n
		}
		examples = append(examples, document.Example{Text: record.Text, Spans: result.Spans})
	}

	log.Info().
		Int("skipped_spans", skippedSpans).
		Int("dropped_records", droppedRecords).
		Interface("label_distribution", counts).
		Msg("training data validation complete")

	return examples
}

func (t *Trainer) fail(err error) error {
	t.state = StateFailed
	return err
}

func consistent(example document.Example) bool {
	for _, span := range example.Spans {
		if !span.Within(example.Text) {
			return false
		}
	}
	return true
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
