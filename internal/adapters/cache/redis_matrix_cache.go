package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"vehicle-route-optimizer/internal/domain"
	"vehicle-route-optimizer/internal/platform/obs"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "vrp:matrix:"

// RedisMatrixCache stores distance matrices as JSON values with a TTL.
type RedisMatrixCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisMatrixCache(client *redis.Client, ttl time.Duration) *RedisMatrixCache {
	return &RedisMatrixCache{Client: client, TTL: ttl}
}

// Fetch a cached matrix. A missing key is a miss, not an error.
func (r *RedisMatrixCache) Get(
	ctx context.Context,
	key string,
) (_ domain.DistanceMatrix, _ bool, err error) {
	defer obs.Time(ctx, "matrix.redis.Get")(&err)

	if r.Client == nil {
		return nil, false, errors.New("matrix cache: redis client is nil")
	}
	if strings.TrimSpace(key) == "" {
		return nil, false, errors.New("get matrix cache: key must not be empty")
	}

	raw, err := r.Client.Get(ctx, redisKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get matrix cache: redis get: %w", err)
	}

	var m domain.DistanceMatrix
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, false, fmt.Errorf("get matrix cache: decode %q: %w", key, err)
	}

	return m, true, nil
}

// Store a matrix, replacing any previous value. TTL 0 keeps it forever.
func (r *RedisMatrixCache) Put(ctx context.Context, key string, m domain.DistanceMatrix) error {
	if r.Client == nil {
		return errors.New("matrix cache: redis client is nil")
	}
	if strings.TrimSpace(key) == "" {
		return errors.New("insert matrix cache: key must not be empty")
	}

	payload, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("insert matrix cache: encode: %w", err)
	}

	if err := r.Client.Set(ctx, redisKeyPrefix+key, payload, r.TTL).Err(); err != nil {
		return fmt.Errorf("insert matrix cache key=%q: %w", key, err)
	}

	return nil
}
