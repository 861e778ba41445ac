package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/jwebster45206/vault-world/internal/manual"
)

const (
	resultKeyPrefix = "result:"
	resultIndexKey  = "results"
)

// RedisStorage keeps results as JSON values with a TTL, plus a set indexing
// their ids.
type RedisStorage struct {
	client *redis.Client
	logger *slog.Logger
	ttl    time.Duration
}

// Ensure RedisStorage implements Storage interface
var _ Storage = (*RedisStorage)(nil)

// NewRedisStorage connects to the redis:// URL. A ttl of zero keeps results
// forever.
func NewRedisStorage(redisURL string, ttl time.Duration, logger *slog.Logger) (*RedisStorage, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	return &RedisStorage{
		client: redis.NewClient(opt),
		logger: logger,
		ttl:    ttl,
	}, nil
}

func resultKey(id uuid.UUID) string {
	return resultKeyPrefix + id.String()
}

func (r *RedisStorage) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (r *RedisStorage) Close() error {
	if err := r.client.Close(); err != nil {
		r.logger.Error("Failed to close Redis connection", "error", err)
		return err
	}
	r.logger.Debug("Redis connection closed")
	return nil
}

func (r *RedisStorage) SaveResult(ctx context.Context, res *manual.Result) error {
	data, err := json.Marshal(res)
	if err != nil {
		r.logger.Error("Failed to marshal result", "id", res.ID, "error", err)
		return fmt.Errorf("failed to marshal result: %w", err)
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, resultKey(res.ID), data, r.ttl)
	pipe.SAdd(ctx, resultIndexKey, res.ID.String())
	if _, err := pipe.Exec(ctx); err != nil {
		r.logger.Error("Failed to save result", "id", res.ID, "error", err)
		return fmt.Errorf("failed to save result: %w", err)
	}

	r.logger.Debug("Result saved", "id", res.ID, "bytes", len(data))
	return nil
}

func (r *RedisStorage) LoadResult(ctx context.Context, id uuid.UUID) (*manual.Result, error) {
	data, err := r.client.Get(ctx, resultKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		r.logger.Error("Failed to load result", "id", id, "error", err)
		return nil, fmt.Errorf("failed to load result: %w", err)
	}

	var res manual.Result
	if err := json.Unmarshal(data, &res); err != nil {
		r.logger.Error("Failed to unmarshal result", "id", id, "error", err)
		return nil, fmt.Errorf("failed to unmarshal result: %w", err)
	}
	return &res, nil
}

func (r *RedisStorage) DeleteResult(ctx context.Context, id uuid.UUID) error {
	pipe := r.client.TxPipeline()
	pipe.Del(ctx, resultKey(id))
	pipe.SRem(ctx, resultIndexKey, id.String())
	if _, err := pipe.Exec(ctx); err != nil {
		r.logger.Error("Failed to delete result", "id", id, "error", err)
		return fmt.Errorf("failed to delete result: %w", err)
	}
	return nil
}

// ListResults also drops index entries whose result has expired.
func (r *RedisStorage) ListResults(ctx context.Context) ([]uuid.UUID, error) {
	members, err := r.client.SMembers(ctx, resultIndexKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list results: %w", err)
	}
	sort.Strings(members)

	ids := make([]uuid.UUID, 0, len(members))
	for _, m := range members {
		id, err := uuid.Parse(m)
		if err != nil {
			r.logger.Warn("Dropping malformed result id", "member", m)
			r.client.SRem(ctx, resultIndexKey, m)
			continue
		}

		n, err := r.client.Exists(ctx, resultKey(id)).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to check result %s: %w", id, err)
		}
		if n == 0 {
			r.logger.Debug("Dropping expired result from index", "id", id)
			r.client.SRem(ctx, resultIndexKey, m)
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}
