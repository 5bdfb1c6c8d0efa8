// Package http_recogniser talks to a sequence-labelling model served over
// HTTP. Requests and responses are JSON; spans travel as the same
// [start, end, label] triples the annotation store uses.
package http_recogniser

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"

	"gitlab.com/lexiscan/contract-extraction/lib"
	"gitlab.com/lexiscan/contract-extraction/lib/document"
	"gitlab.com/lexiscan/contract-extraction/lib/recogniser"
)

func New(url string) recogniser.Client {
	return &client{
		url:        url,
		httpClient: http.DefaultClient,
	}
}

type client struct {
	url        string
	httpClient lib.HttpClient
	ready      bool
}

type predictRequest struct {
	Text string `json:"text"`
}

type predictResponse struct {
	Entities []document.Span `json:"entities"`
}

type updateRequest struct {
	Examples []document.Example `json:"examples"`
}

type updateResponse struct {
	Loss float64 `json:"loss"`
}

type artifactRequest struct {
	Path string `json:"path"`
}

type evaluateRequest struct {
	Examples []document.Example `json:"examples"`
}

func (c *client) Ready() bool {
	return c.ready
}

func (c *client) Load(ctx context.Context, path string) error {
	if err := c.post(ctx, "/model/load", artifactRequest{Path: path}, nil); err != nil {
		c.ready = false
		return err
	}
	c.ready = true
	return nil
}

func (c *client) Save(ctx context.Context, path string) error {
	return c.post(ctx, "/model/save", artifactRequest{Path: path}, nil)
}

func (c *client) Predict(ctx context.Context, text string) ([]document.Span, error) {
	var resp predictResponse
	if err := c.post(ctx, "/predict", predictRequest{Text: text}, &resp); err != nil {
		return nil, err
	}
	return resp.Entities, nil
}

func (c *client) Update(ctx context.Context, batch []document.Example) (float64, error) {
	var resp updateResponse
	if err := c.post(ctx, "/update", updateRequest{Examples: batch}, &resp); err != nil {
		return 0, err
	}
	return resp.Loss, nil
}

func (c *client) Evaluate(ctx context.Context, examples []document.Example) (recogniser.Scores, error) {
	var scores recogniser.Scores
	if err := c.post(ctx, "/evaluate", evaluateRequest{Examples: examples}, &scores); err != nil {
		return recogniser.Scores{}, err
	}
	return scores, nil
}

func (c *client) post(ctx context.Context, path string, body interface{}, target interface{}) error {
	b, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("recogniser %s: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url+path, bytes.NewReader(b))
	if err != nil {
		return fmt.Errorf("recogniser %s: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("recogniser %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := ioutil.ReadAll(resp.Body)
		return fmt.Errorf("recogniser %s: status %d: %s", path, resp.StatusCode, detail)
	}

	if target == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("recogniser %s: decoding response: %w", path, err)
	}
	return nil
}
