// Package render is the boundary to the document-rendering service that
// turns an uploaded page image or PDF into raw text. Rendering failures are
// per-document and recoverable; callers skip the document, not the batch.
package render

import (
	"context"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"

	"gitlab.com/lexiscan/contract-extraction/lib"
)

type Renderer interface {
	// RenderText extracts the raw page text of the document read from source.
	RenderText(ctx context.Context, source io.Reader) (string, error)
}

func NewHTTPRenderer(url string) Renderer {
	return &httpRenderer{
		url:        url,
		httpClient: http.DefaultClient,
	}
}

type httpRenderer struct {
	url        string
	httpClient lib.HttpClient
}

func (r *httpRenderer) RenderText(ctx context.Context, source io.Reader) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url+"/render", source)
	if err != nil {
		return "", fmt.Errorf("renderer: %w", err)
	}
	req.Header.Set("Content-Type", "application/pdf")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("renderer: %w", err)
	}
	defer resp.Body.Close()

	body, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("renderer: reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("renderer: status %d: %s", resp.StatusCode, body)
	}

	return string(body), nil
}
