package history

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/davidbz/llmbench/internal/domain"
	"github.com/davidbz/llmbench/internal/observability"
)

// RedisStore appends run documents to a Redis list.
type RedisStore struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

// runDocument is the JSON stored per run.
type runDocument struct {
	RunSummary
	Measurements []domain.Measurement `json:"measurements"`
	Failures     []failureDocument    `json:"failures,omitempty"`
}

type failureDocument struct {
	Model string          `json:"model"`
	Shape domain.APIShape `json:"api_shape"`
	Error string          `json:"error"`
}

// NewRedisStore creates a Redis-backed recorder. A zero ttl keeps entries forever.
func NewRedisStore(client *redis.Client, key string, ttl time.Duration) *RedisStore {
	return &RedisStore{
		client: client,
		key:    key,
		ttl:    ttl,
	}
}

// NewRedisClient builds a client from the history config.
func NewRedisClient(cfg Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
}

// Record appends the run to the list and refreshes its expiry.
func (s *RedisStore) Record(ctx context.Context, run *domain.BenchmarkRun) error {
	doc := runDocument{
		RunSummary:   Summarize(run),
		Measurements: run.Measurements,
	}
	for _, f := range run.Failures {
		msg := ""
		if f.Err != nil {
			msg = f.Err.Error()
		}
		doc.Failures = append(doc.Failures, failureDocument{Model: f.Model, Shape: f.Shape, Error: msg})
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal run: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.RPush(ctx, s.key, data)
	if s.ttl > 0 {
		pipe.Expire(ctx, s.key, s.ttl)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis record run: %w", err)
	}

	observability.FromContext(ctx).Debug("run stored in redis",
		observability.String("key", s.key),
		observability.Int("bytes", len(data)))

	return nil
}

// List returns the latest runs, newest first. A non-positive limit returns all runs.
func (s *RedisStore) List(ctx context.Context, limit int) ([]RunSummary, error) {
	start := int64(0)
	if limit > 0 {
		start = -int64(limit)
	}

	items, err := s.client.LRange(ctx, s.key, start, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("redis list runs: %w", err)
	}

	out := make([]RunSummary, 0, len(items))
	for i := len(items) - 1; i >= 0; i-- {
		var doc runDocument
		if err := json.Unmarshal([]byte(items[i]), &doc); err != nil {
			return nil, fmt.Errorf("decode run: %w", err)
		}
		out = append(out, doc.RunSummary)
	}
	return out, nil
}
