// Package store persists annotation records. A store is an append-only log
// keyed by document source: appending is the only mutation, corrections are
// new records, and loading streams every record back in insertion order
// within a source, sources enumerated in lexical order.
package store

import (
	"context"
	"fmt"

	"gitlab.com/lexiscan/contract-extraction/lib/document"
)

type Store interface {
	// Append durably adds one record to the log for source. The record is
	// written as a single atomic unit; a failed append never leaves a
	// partial record behind. Appends to the same source may happen
	// concurrently and are serialized by the implementation.
	Append(ctx context.Context, source string, record document.AnnotationRecord) error

	// LoadAll streams every persisted record through onRecord. Returning an
	// error from onRecord stops the load and propagates the error.
	LoadAll(ctx context.Context, onRecord func(document.AnnotationRecord) error) error
}

type Config struct {
	Backend       string              `mapstructure:"backend"`
	File          FileConfig          `mapstructure:"file"`
	Redis         RedisConfig         `mapstructure:"redis"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
}

// New constructs the store backend named by conf.Backend.
func New(conf Config) (Store, error) {
	switch conf.Backend {
	case "", "file":
		return NewFileStore(conf.File)
	case "redis":
		return NewRedisStore(conf.Redis), nil
	case "elasticsearch":
		return NewElasticsearchStore(conf.Elasticsearch)
	default:
		return nil, fmt.Errorf("unknown store backend %q", conf.Backend)
	}
}
