// Package testhelpers holds shared test doubles for the external boundaries:
// the HTTP transport, the recogniser and the renderer.
package testhelpers

import (
	"context"
	"io"
	"net/http"

	"github.com/stretchr/testify/mock"

	"gitlab.com/lexiscan/contract-extraction/lib/document"
	"gitlab.com/lexiscan/contract-extraction/lib/recogniser"
)

type HttpClient struct {
	mock.Mock
}

func (m *HttpClient) Do(req *http.Request) (*http.Response, error) {
	args := m.Called(req)
	resp, _ := args.Get(0).(*http.Response)
	return resp, args.Error(1)
}

type Recogniser struct {
	mock.Mock
}

func (m *Recogniser) Ready() bool {
	return m.Called().Bool(0)
}

func (m *Recogniser) Load(ctx context.Context, path string) error {
	return m.Called(ctx, path).Error(0)
}

func (m *Recogniser) Save(ctx context.Context, path string) error {
	return m.Called(ctx, path).Error(0)
}

func (m *Recogniser) Predict(ctx context.Context, text string) ([]document.Span, error) {
	args := m.Called(ctx, text)
	spans, _ := args.Get(0).([]document.Span)
	return spans, args.Error(1)
}

func (m *Recogniser) Update(ctx context.Context, batch []document.Example) (float64, error) {
	args := m.Called(ctx, batch)
	return args.Get(0).(float64), args.Error(1)
}

func (m *Recogniser) Evaluate(ctx context.Context, examples []document.Example) (recogniser.Scores, error) {
	args := m.Called(ctx, examples)
	scores, _ := args.Get(0).(recogniser.Scores)
	return scores, args.Error(1)
}

type Renderer struct {
	mock.Mock
}

func (m *Renderer) RenderText(ctx context.Context, source io.Reader) (string, error) {
	args := m.Called(ctx, source)
	return args.String(0), args.Error(1)
}
