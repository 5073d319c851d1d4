package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"

	"appraiser-auth.backend/internal/domain/entities"
	domainerrors "appraiser-auth.backend/internal/domain/errors"
)

const (
	ThresholdKey           = "face:threshold"
	thresholdUpdateRetries = 5
)

// MemoryThresholdStore keeps the threshold snapshot in process
type MemoryThresholdStore struct {
	current atomic.Pointer[entities.ThresholdConfig]
	mu      sync.Mutex
}

func NewMemoryThresholdStore(initial float64) *MemoryThresholdStore {
	s := &MemoryThresholdStore{}
	s.current.Store(&entities.ThresholdConfig{Value: initial, UpdatedAt: time.Now()})
	return s
}

func (s *MemoryThresholdStore) Current(_ context.Context) (entities.ThresholdConfig, error) {
	return *s.current.Load(), nil
}

func (s *MemoryThresholdStore) Set(_ context.Context, value float64) (entities.ThresholdConfig, entities.ThresholdConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	old := *s.current.Load()
	next := entities.ThresholdConfig{Value: value, Version: old.Version + 1, UpdatedAt: time.Now()}
	s.current.Store(&next)
	return old, next, nil
}

// RedisThresholdStore shares the threshold snapshot between instances
type RedisThresholdStore struct {
	client  *redis.Client
	key     string
	initial float64
}

func NewRedisThresholdStore(client *redis.Client, initial float64) *RedisThresholdStore {
	return &RedisThresholdStore{client: client, key: ThresholdKey, initial: initial}
}

func (s *RedisThresholdStore) Current(ctx context.Context) (entities.ThresholdConfig, error) {
	return s.read(ctx, s.client)
}

// Set bumps the version with optimistic locking on the key
func (s *RedisThresholdStore) Set(ctx context.Context, value float64) (entities.ThresholdConfig, entities.ThresholdConfig, error) {
	var old, next entities.ThresholdConfig

	update := func(tx *redis.Tx) error {
		current, err := s.read(ctx, tx)
		if err != nil {
			return err
		}
		old = current
		next = entities.ThresholdConfig{Value: value, Version: current.Version + 1, UpdatedAt: time.Now().UTC()}

		payload, err := json.Marshal(next)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, s.key, payload, 0)
			return nil
		})
		return err
	}

	for i := 0; i < thresholdUpdateRetries; i++ {
		err := s.client.Watch(ctx, update, s.key)
		if err == nil {
			return old, next, nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if errors.Is(err, domainerrors.ErrStorage) {
			return entities.ThresholdConfig{}, entities.ThresholdConfig{}, err
		}
		return entities.ThresholdConfig{}, entities.ThresholdConfig{}, storageError("update threshold", err)
	}
	return entities.ThresholdConfig{}, entities.ThresholdConfig{}, storageError("update threshold", redis.TxFailedErr)
}

func (s *RedisThresholdStore) read(ctx context.Context, c redis.Cmdable) (entities.ThresholdConfig, error) {
	raw, err := c.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return entities.ThresholdConfig{Value: s.initial}, nil
	}
	if err != nil {
		return entities.ThresholdConfig{}, storageError("read threshold", err)
	}

	var cfg entities.ThresholdConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return entities.ThresholdConfig{}, storageError("decode threshold", fmt.Errorf("key %s: %w", s.key, err))
	}
	return cfg, nil
}
