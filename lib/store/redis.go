package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/go-redis/redis"
	"github.com/rs/zerolog/log"

	"gitlab.com/lexiscan/contract-extraction/lib/document"
)

type RedisConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

const (
	redisSourcesKey = "annotations:sources"
	redisKeyPrefix  = "annotations:source:"
)

// redisStore keeps one list per source. RPUSH is atomic, which gives us the
// whole-record append guarantee without any locking on our side.
type redisStore struct {
	client *redis.Client
}

func NewRedisStore(conf RedisConfig) Store {
	return &redisStore{
		client: redis.NewClient(&redis.Options{
			Addr: fmt.Sprintf("%s:%d", conf.Host, conf.Port),
		}),
	}
}

func (r *redisStore) Append(_ context.Context, source string, record document.AnnotationRecord) error {
	b, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("redis store: marshalling record %s: %w", record.DocumentID, err)
	}

	pipe := r.client.TxPipeline()
	pipe.RPush(redisKeyPrefix+source, b)
	pipe.SAdd(redisSourcesKey, source)
	if _, err := pipe.Exec(); err != nil {
		return fmt.Errorf("redis store: appending record %s: %w", record.DocumentID, err)
	}

	return nil
}

func (r *redisStore) LoadAll(ctx context.Context, onRecord func(document.AnnotationRecord) error) error {
	sources, err := r.client.SMembers(redisSourcesKey).Result()
	if err != nil {
		return fmt.Errorf("redis store: listing sources: %w", err)
	}
	sort.Strings(sources)

	for _, source := range sources {
		if err := ctx.Err(); err != nil {
			return err
		}

		lines, err := r.client.LRange(redisKeyPrefix+source, 0, -1).Result()
		if err != nil {
			return fmt.Errorf("redis store: loading source %s: %w", source, err)
		}

		for i, line := range lines {
			var record document.AnnotationRecord
			if err := json.Unmarshal([]byte(line), &record); err != nil {
				log.Warn().Err(err).Str("source", source).Int("index", i).Msg("skipping malformed record")
				continue
			}
			if err := onRecord(record); err != nil {
				return err
			}
		}
	}

	return nil
}
