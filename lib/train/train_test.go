package train

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gitlab.com/lexiscan/contract-extraction/lib/document"
	"gitlab.com/lexiscan/contract-extraction/lib/testhelpers"
)

func trainingRecord(id string) document.AnnotationRecord {
	return document.AnnotationRecord{
		DocumentID: id,
		Text:       "Signed on 15th March 2022, Beta Corp agrees to pay $10,000.",
		Spans: []document.Span{
			{Start: 10, End: 25, Label: document.LabelDate},
			{Start: 27, End: 36, Label: document.LabelParty},
			{Start: 51, End: 58, Label: document.LabelAmount},
		},
	}
}

func testConfig(t *testing.T) Config {
	config := DefaultConfig(t.TempDir())
	config.Epochs = 2
	return config
}

func TestRunTrainsAndSaves(t *testing.T) {
	mockRecogniser := &testhelpers.Recogniser{}
	mockRecogniser.On("Update", mock.Anything, mock.AnythingOfType("[]document.Example")).Return(1.5, nil)
	mockRecogniser.On("Save", mock.Anything, mock.AnythingOfType("string")).Return(nil).Once()

	trainer := New(mockRecogniser, testConfig(t))
	assert.Equal(t, StateInitializing, trainer.State())

	err := trainer.Run(context.Background(), []document.AnnotationRecord{
		trainingRecord("doc-1"),
		trainingRecord("doc-2"),
		trainingRecord("doc-3"),
	})

	require.NoError(t, err)
	assert.Equal(t, StateSaved, trainer.State())
	mockRecogniser.AssertExpectations(t)

	// 3 examples, min batch size 4: one update per epoch, two epochs.
	mockRecogniser.AssertNumberOfCalls(t, "Update", 2)
}

func TestRunFailsWithNoSurvivingData(t *testing.T) {
	mockRecogniser := &testhelpers.Recogniser{}

	trainer := New(mockRecogniser, testConfig(t))

	// Every span lands mid-token, so alignment drops the lot.
	err := trainer.Run(context.Background(), []document.AnnotationRecord{
		{
			DocumentID: "doc-bad",
			Text:       "Beta Corp agrees",
			Spans:      []document.Span{{Start: 1, End: 3, Label: document.LabelParty}},
		},
	})

	assert.Error(t, err)
	assert.Equal(t, StateFailed, trainer.State())
	mockRecogniser.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	mockRecogniser.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestRunFailsWhenUpdateFails(t *testing.T) {
	mockRecogniser := &testhelpers.Recogniser{}
	mockRecogniser.On("Update", mock.Anything, mock.Anything).Return(0.0, errors.New("gradient exploded"))

	trainer := New(mockRecogniser, testConfig(t))

	err := trainer.Run(context.Background(), []document.AnnotationRecord{trainingRecord("doc-1")})

	assert.Error(t, err)
	assert.Equal(t, StateFailed, trainer.State())
	mockRecogniser.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestRunFailsWhenSaveFails(t *testing.T) {
	mockRecogniser := &testhelpers.Recogniser{}
	mockRecogniser.On("Update", mock.Anything, mock.Anything).Return(1.0, nil)
	mockRecogniser.On("Save", mock.Anything, mock.Anything).Return(errors.New("disk full"))

	trainer := New(mockRecogniser, testConfig(t))

	err := trainer.Run(context.Background(), []document.AnnotationRecord{trainingRecord("doc-1")})

	assert.Error(t, err)
	assert.Equal(t, StateFailed, trainer.State())
}

func TestRunHonoursCancellation(t *testing.T) {
	mockRecogniser := &testhelpers.Recogniser{}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	trainer := New(mockRecogniser, testConfig(t))
	err := trainer.Run(ctx, []document.AnnotationRecord{trainingRecord("doc-1")})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, StateFailed, trainer.State())
}

func TestRunRequiresModelDir(t *testing.T) {
	trainer := New(&testhelpers.Recogniser{}, Config{Epochs: 1})
	err := trainer.Run(context.Background(), []document.AnnotationRecord{trainingRecord("doc-1")})
	assert.Error(t, err)
	assert.Equal(t, StateFailed, trainer.State())
}

func TestCompounding(t *testing.T) {
	next := compounding(4, 32, 2)

	assert.Equal(t, 4, next())
	assert.Equal(t, 8, next())
	assert.Equal(t, 16, next())
	assert.Equal(t, 32, next())
	assert.Equal(t, 32, next())
}

func TestCompoundingGrowsSlowly(t *testing.T) {
	next := compounding(4, 32, 1.001)
	first := next()
	second := next()
	assert.Equal(t, 4, first)
	assert.Equal(t, 4, second)
}

func TestBatches(t *testing.T) {
	examples := make([]document.Example, 10)
	got := batches(examples, compounding(4, 32, 2))

	require.Len(t, got, 2)
	assert.Len(t, got[0], 4)
	assert.Len(t, got[1], 6) // schedule says 8, only 6 remain
}
