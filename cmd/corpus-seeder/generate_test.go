package main

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/lexiscan/contract-extraction/lib/align"
	"gitlab.com/lexiscan/contract-extraction/lib/document"
)

func TestFillTracksRuneOffsets(t *testing.T) {
	text, spans := fill("Pay {amount} to {party1} in {jurisdiction}.", map[string]string{
		"{amount}":       "€5,000,000",
		"{party1}":       "Beta Corp",
		"{jurisdiction}": "Texas",
	})

	assert.Equal(t, "Pay €5,000,000 to Beta Corp in Texas.", text)
	require.Len(t, spans, 3)
	for _, span := range spans {
		assert.True(t, span.Within(text))
	}
	assert.Equal(t, "€5,000,000", spans[0].Text(text))
	assert.Equal(t, document.LabelAmount, spans[0].Label)
	assert.Equal(t, "Beta Corp", spans[1].Text(text))
	assert.Equal(t, "Texas", spans[2].Text(text))
}

func TestFillLeavesUnknownPlaceholders(t *testing.T) {
	text, spans := fill("Hello {nobody}, signed {date}.", map[string]string{
		"{date}": "2021-05-20",
	})

	assert.Equal(t, "Hello {nobody}, signed 2021-05-20.", text)
	require.Len(t, spans, 1)
	assert.Equal(t, "2021-05-20", spans[0].Text(text))
}

func TestGenerateProducesAlignedRecords(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 100; i++ {
		record := generate(rng)

		require.NotEmpty(t, record.DocumentID)
		require.Len(t, record.Spans, 5)
		assert.GreaterOrEqual(t, record.NoiseRatio, 0.01)
		assert.LessOrEqual(t, record.NoiseRatio, 0.05)

		// Every generated span must survive alignment unchanged; the seeder
		// exists to produce boundary-clean training data.
		result := align.Align(record.Text, record.Spans)
		assert.Equal(t, record.Spans, result.Spans)
		assert.Equal(t, 0, result.Skipped)
	}
}

func TestGenerateDistinctParties(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 50; i++ {
		record := generate(rng)
		var partyValues []string
		for _, span := range record.Spans {
			if span.Label == document.LabelParty {
				partyValues = append(partyValues, span.Text(record.Text))
			}
		}
		require.Len(t, partyValues, 2)
		assert.NotEqual(t, partyValues[0], partyValues[1])
	}
}
