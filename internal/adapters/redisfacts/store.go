// Package redisfacts implements the fact store on Redis.
package redisfacts

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	backend "github.com/redis/go-redis/v9"

	"github.com/pinionworks/pinion/internal/filings"
)

// Store implements filings.FactStore using Redis. Records are stored as
// JSON under a per-CIK key, with a ZSET index (scored by ingestion time)
// for listing.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

// Option configures a Store.
type Option func(*Store)

// WithTTL sets the expiration for records. Zero means no expiration.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix for records.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a Redis store with its own client.
func New(address, password string, db int, opts ...Option) *Store {
	client := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})

	return NewFromClient(client, opts...)
}

// NewFromClient creates a Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: "pinion:facts:",
	}

	for _, opt := range opts {
		opt(store)
	}

	return store
}

func (s *Store) key(cik string) string {
	return s.prefix + cik
}

func (s *Store) indexKey() string {
	return s.prefix + "index"
}

// Save persists the record, replacing any previous record for its CIK.
func (s *Store) Save(ctx context.Context, rec filings.Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, s.key(rec.CIK), data, s.ttl)
	pipe.ZAdd(ctx, s.indexKey(), backend.Z{
		Score:  float64(rec.IngestedAt.Unix()),
		Member: rec.CIK,
	})

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save record to redis: %w", err)
	}

	return nil
}

// Load retrieves the record for a CIK.
func (s *Store) Load(ctx context.Context, cik string) (filings.Record, error) {
	val, err := s.client.Get(ctx, s.key(cik)).Result()
	if err != nil {
		if err == backend.Nil {
			return filings.Record{}, filings.ErrRecordNotFound
		}
		return filings.Record{}, fmt.Errorf("failed to get record from redis: %w", err)
	}

	var rec filings.Record
	if err := json.Unmarshal([]byte(val), &rec); err != nil {
		return filings.Record{}, fmt.Errorf("failed to unmarshal record: %w", err)
	}

	return rec, nil
}

// List returns the indexed CIKs, oldest ingestion first.
func (s *Store) List(ctx context.Context) ([]string, error) {
	ciks, err := s.client.ZRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}

	return ciks, nil
}

// Delete removes the record for a CIK.
func (s *Store) Delete(ctx context.Context, cik string) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, s.key(cik))
	pipe.ZRem(ctx, s.indexKey(), cik)

	_, err := pipe.Exec(ctx)
	return err
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
