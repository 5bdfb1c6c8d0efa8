package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"gitlab.com/lexiscan/contract-extraction/lib"
	"gitlab.com/lexiscan/contract-extraction/lib/align"
	"gitlab.com/lexiscan/contract-extraction/lib/document"
	"gitlab.com/lexiscan/contract-extraction/lib/quality"
	"gitlab.com/lexiscan/contract-extraction/lib/recogniser"
	"gitlab.com/lexiscan/contract-extraction/lib/render"
	"gitlab.com/lexiscan/contract-extraction/lib/store"
)

type controller struct {
	renderer   render.Renderer
	recogniser recogniser.Client
	store      store.Store
	warnNoise  float64
	tempDir    string
}

func (c controller) Ready() bool {
	return c.renderer != nil && c.recogniser != nil && c.recogniser.Ready()
}

// Extract runs one document through the serving pipeline: stage the upload,
// render it to text, score extraction quality, predict entities, filter
// degenerate predictions and append the result to the annotation store for
// later review. The staged upload is removed on every exit path.
func (c controller) Extract(ctx context.Context, filename string, upload io.Reader) (lib.ExtractionResponse, error) {
	documentID := uuid.New().String()

	staged, err := os.CreateTemp(c.tempDir, "upload-*.pdf")
	if err != nil {
		return lib.ExtractionResponse{}, fmt.Errorf("staging upload: %w", err)
	}
	defer func() {
		staged.Close()
		if err := os.Remove(staged.Name()); err != nil {
			log.Warn().Err(err).Str("path", staged.Name()).Msg("failed to remove staged upload")
		}
	}()

	if _, err := io.Copy(staged, upload); err != nil {
		return lib.ExtractionResponse{}, fmt.Errorf("staging upload: %w", err)
	}
	if _, err := staged.Seek(0, io.SeekStart); err != nil {
		return lib.ExtractionResponse{}, fmt.Errorf("staging upload: %w", err)
	}

	log.Info().Str("filename", filename).Str("document_id", documentID).Msg("processing uploaded document")

	rawText, err := c.renderer.RenderText(ctx, staged)
	if err != nil {
		return lib.ExtractionResponse{}, fmt.Errorf("rendering document: %w", err)
	}

	text := quality.Normalize(rawText)
	metrics := quality.Score(text)
	if metrics.NoiseRatio > c.warnNoise {
		log.Warn().
			Str("document_id", documentID).
			Float64("noise_ratio", metrics.NoiseRatio).
			Msg("high noise ratio detected")
	}

	predicted, err := c.recogniser.Predict(ctx, text)
	if err != nil {
		return lib.ExtractionResponse{}, fmt.Errorf("recognising entities: %w", err)
	}

	entities := make([]lib.APIEntity, 0, len(predicted))
	spans := make([]document.Span, 0, len(predicted))
	for _, span := range predicted {
		if !span.Within(text) {
			log.Warn().Str("document_id", documentID).Ints("span", []int{span.Start, span.End}).Msg("predicted span out of bounds")
			continue
		}
		value := span.Text(text)
		if !align.Acceptable(value) {
			log.Debug().Str("value", value).Str("label", string(span.Label)).Msg("rejected entity prediction")
			continue
		}
		spans = append(spans, span)
		entities = append(entities, lib.APIEntity{
			Entity:    string(span.Label),
			Value:     strings.TrimSpace(value),
			StartChar: span.Start,
			EndChar:   span.End,
		})
	}

	log.Info().Str("filename", filename).Int("entities", len(entities)).Msg("document processed")

	record := document.NewRecord(document.Document{
		ID:         documentID,
		Name:       filename,
		Text:       text,
		TextLength: metrics.TextLength,
		NoiseRatio: metrics.NoiseRatio,
	}, spans)
	if err := c.store.Append(ctx, filename, record); err != nil {
		return lib.ExtractionResponse{}, fmt.Errorf("saving annotation record: %w", err)
	}

	return lib.ExtractionResponse{
		DocumentID:    documentID,
		Filename:      filename,
		OcrNoiseRatio: metrics.NoiseRatio,
		TextLength:    metrics.TextLength,
		FullText:      text,
		Entities:      entities,
	}, nil
}
