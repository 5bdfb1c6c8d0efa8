// Package corpus turns the raw annotation store into training material: it
// filters out records whose capture-time quality disqualifies them and
// partitions the survivors deterministically into training and validation
// sets.
package corpus

import (
	"context"
	"math/rand"
	"sort"

	"github.com/rs/zerolog/log"

	"gitlab.com/lexiscan/contract-extraction/lib/document"
	"gitlab.com/lexiscan/contract-extraction/lib/store"
)

const (
	// DefaultMaxTrainingNoise is the noise ratio above which a stored record
	// is excluded from training. The record itself stays in the store for
	// audit; exclusion happens here, at load time.
	DefaultMaxTrainingNoise = 0.2

	// splitSeed fixes the shuffle used by Split so a given record set always
	// partitions the same way.
	splitSeed = 42

	trainingRatio = 0.8
)

// Load streams every record from the store, dropping records whose noise
// ratio exceeds maxNoise and records with no candidate spans at all. Both
// exclusions are logged with the document identifier; neither deletes
// anything from the store.
func Load(ctx context.Context, s store.Store, maxNoise float64) ([]document.AnnotationRecord, error) {
	var records []document.AnnotationRecord

	err := s.LoadAll(ctx, func(record document.AnnotationRecord) error {
		if record.NoiseRatio > maxNoise {
			log.Warn().
				Str("document_id", record.DocumentID).
				Float64("noise_ratio", record.NoiseRatio).
				Msg("excluding document with high noise from training load")
			return nil
		}
		if len(record.Spans) == 0 {
			log.Debug().
				Str("document_id", record.DocumentID).
				Msg("excluding document with no candidate spans")
			return nil
		}
		records = append(records, record)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return records, nil
}

// Split partitions records 80/20 into training and validation sets. The
// partition is deterministic over the record set: records are ordered by
// document id and then shuffled with a fixed seed, so the same records
// produce the same partition whatever order they arrive in. The sets are
// disjoint and together cover the input; training gets at least one record
// whenever the input is non-empty.
func Split(records []document.AnnotationRecord) (training, validation []document.AnnotationRecord) {
	if len(records) == 0 {
		return nil, nil
	}

	shuffled := make([]document.AnnotationRecord, len(records))
	copy(shuffled, records)
	sort.Slice(shuffled, func(i, j int) bool {
		return shuffled[i].DocumentID < shuffled[j].DocumentID
	})

	rng := rand.New(rand.NewSource(splitSeed))
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	splitIdx := int(float64(len(shuffled)) * trainingRatio)
	if splitIdx < 1 {
		splitIdx = 1
	}

	return shuffled[:splitIdx], shuffled[splitIdx:]
}

// Distribution counts spans per label across records.
func Distribution(records []document.AnnotationRecord) map[document.Label]int {
	counts := map[document.Label]int{}
	for _, record := range records {
		for _, span := range record.Spans {
			counts[span.Label]++
		}
	}
	return counts
}
