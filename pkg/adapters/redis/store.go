package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/drelynlikescode26/callflow-assist/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

const defaultPrefix = "callflow:setup:"

// Store implements ports.SetupStore using Redis.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*Store)

// WithTTL sets the expiration for stored setups.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix for setups.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a new Redis store with options.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: defaultPrefix,
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

// Setup payloads live under prefix+"profile:" so no profile name can
// collide with the index key.
func (s *Store) key(profile string) string {
	return s.prefix + "profile:" + profile
}

func (s *Store) indexKey() string {
	return s.prefix + "index"
}

// Save persists the setup to Redis.
func (s *Store) Save(ctx context.Context, profile string, setup domain.Setup) error {
	if err := domain.ValidateProfile(profile); err != nil {
		return err
	}
	data, err := json.Marshal(setup)
	if err != nil {
		return fmt.Errorf("failed to marshal setup: %w", err)
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, s.key(profile), data, s.ttl)

	// The index score is the expiry time so List can prune lazily.
	score := float64(time.Now().Add(s.ttl).Unix())
	if s.ttl == 0 {
		score = 4102444800 // 2100-01-01
	}
	pipe.ZAdd(ctx, s.indexKey(), backend.Z{
		Score:  score,
		Member: profile,
	})

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

// Load retrieves the setup from Redis.
func (s *Store) Load(ctx context.Context, profile string) (domain.Setup, error) {
	if err := domain.ValidateProfile(profile); err != nil {
		return domain.Setup{}, err
	}
	val, err := s.client.Get(ctx, s.key(profile)).Result()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return domain.Setup{}, domain.ErrSetupNotFound
		}
		return domain.Setup{}, fmt.Errorf("failed to get from redis: %w", err)
	}

	var setup domain.Setup
	if err := json.Unmarshal([]byte(val), &setup); err != nil {
		return domain.Setup{}, fmt.Errorf("failed to unmarshal setup: %w", err)
	}
	return setup, nil
}

// Delete removes the setup.
func (s *Store) Delete(ctx context.Context, profile string) error {
	if err := domain.ValidateProfile(profile); err != nil {
		return err
	}
	pipe := s.client.Pipeline()
	pipe.Del(ctx, s.key(profile))
	pipe.ZRem(ctx, s.indexKey(), profile)
	_, err := pipe.Exec(ctx)
	return err
}

// List returns stored profiles, pruning expired entries from the index.
func (s *Store) List(ctx context.Context) ([]string, error) {
	now := float64(time.Now().Unix())
	err := s.client.ZRemRangeByScore(ctx, s.indexKey(), "-inf", fmt.Sprintf("%f", now)).Err()
	if err != nil {
		return nil, fmt.Errorf("failed to prune expired setups: %w", err)
	}

	profiles, err := s.client.ZRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list setups: %w", err)
	}
	return profiles, nil
}

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
