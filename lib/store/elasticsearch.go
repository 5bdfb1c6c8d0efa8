package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/elastic/go-elasticsearch/v7"
	"github.com/rs/zerolog/log"

	"gitlab.com/lexiscan/contract-extraction/lib/document"
)

type ElasticsearchConfig struct {
	Host  string `mapstructure:"host"`
	Port  int    `mapstructure:"port"`
	Index string `mapstructure:"index"`
}

// esStore indexes one wrapped record per append. The wrapper carries the
// source name and an append sequence number so that LoadAll can reproduce
// insertion order within a source.
type esStore struct {
	client *elasticsearch.Client
	index  string
}

type esDocument struct {
	Source string                    `json:"source"`
	Seq    int64                     `json:"seq"`
	Record document.AnnotationRecord `json:"record"`
}

type esSearchResponse struct {
	ScrollID string `json:"_scroll_id"`
	Hits     struct {
		Hits []struct {
			Source esDocument `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

func NewElasticsearchStore(conf ElasticsearchConfig) (Store, error) {
	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{fmt.Sprintf("http://%s:%d", conf.Host, conf.Port)},
	})
	if err != nil {
		return nil, fmt.Errorf("elasticsearch store: %w", err)
	}
	if conf.Index == "" {
		return nil, errors.New("elasticsearch store: index not configured")
	}
	return &esStore{client: client, index: conf.Index}, nil
}

func (e *esStore) Append(ctx context.Context, source string, record document.AnnotationRecord) error {
	b, err := json.Marshal(esDocument{
		Source: source,
		Seq:    time.Now().UnixNano(),
		Record: record,
	})
	if err != nil {
		return fmt.Errorf("elasticsearch store: marshalling record %s: %w", record.DocumentID, err)
	}

	res, err := e.client.Index(e.index, bytes.NewReader(b), e.client.Index.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("elasticsearch store: appending record %s: %w", record.DocumentID, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("elasticsearch store: appending record %s: %s", record.DocumentID, res.String())
	}

	return nil
}

func (e *esStore) LoadAll(ctx context.Context, onRecord func(document.AnnotationRecord) error) error {
	res, err := e.client.Search(
		e.client.Search.WithContext(ctx),
		e.client.Search.WithIndex(e.index),
		e.client.Search.WithSort("source:asc", "seq:asc"),
		e.client.Search.WithSize(500),
		e.client.Search.WithScroll(time.Minute),
	)
	if err != nil {
		return fmt.Errorf("elasticsearch store: searching %s: %w", e.index, err)
	}

	for {
		if res.IsError() {
			msg := res.String()
			res.Body.Close()
			return fmt.Errorf("elasticsearch store: searching %s: %s", e.index, msg)
		}

		var page esSearchResponse
		err := json.NewDecoder(res.Body).Decode(&page)
		res.Body.Close()
		if err != nil {
			return fmt.Errorf("elasticsearch store: decoding search response: %w", err)
		}

		if len(page.Hits.Hits) == 0 {
			e.clearScroll(page.ScrollID)
			return nil
		}

		for _, hit := range page.Hits.Hits {
			if err := onRecord(hit.Source.Record); err != nil {
				e.clearScroll(page.ScrollID)
				return err
			}
		}

		res, err = e.client.Scroll(
			e.client.Scroll.WithContext(ctx),
			e.client.Scroll.WithScrollID(page.ScrollID),
			e.client.Scroll.WithScroll(time.Minute),
		)
		if err != nil {
			return fmt.Errorf("elasticsearch store: scrolling %s: %w", e.index, err)
		}
	}
}

func (e *esStore) clearScroll(scrollID string) {
	if scrollID == "" {
		return
	}
	res, err := e.client.ClearScroll(e.client.ClearScroll.WithScrollID(scrollID))
	if err != nil {
		log.Warn().Err(err).Msg("failed to clear elasticsearch scroll")
		return
	}
	res.Body.Close()
}
