package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"vehicle-route-optimizer/internal/domain"
	"vehicle-route-optimizer/internal/platform/db"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatrixKey(t *testing.T) {
	a := []domain.Point{{X: 0, Y: 0}, {X: 1.25, Y: -3}}
	b := []domain.Point{{X: 1.25, Y: -3}, {X: 0, Y: 0}}

	assert.Equal(t, MatrixKey("euclidean", a), MatrixKey("euclidean", a))
	assert.NotEqual(t, MatrixKey("euclidean", a), MatrixKey("euclidean", b), "order matters")
	assert.NotEqual(t, MatrixKey("euclidean", a), MatrixKey("ors:driving-car", a))
	assert.Contains(t, MatrixKey("euclidean", a), "euclidean:2:")
}

func TestRedisMatrixCacheRoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	c := NewRedisMatrixCache(client, time.Hour)
	ctx := context.Background()

	_, ok, err := c.Get(ctx, "k1")
	require.NoError(t, err)
	assert.False(t, ok)

	m := domain.DistanceMatrix{{0, 7}, {7, 0}}
	require.NoError(t, c.Put(ctx, "k1", m))

	got, ok, err := c.Get(ctx, "k1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, m, got)

	assert.True(t, mr.Exists(redisKeyPrefix+"k1"))
	assert.Equal(t, time.Hour, mr.TTL(redisKeyPrefix+"k1"))

	mr.FastForward(2 * time.Hour)
	_, ok, err = c.Get(ctx, "k1")
	require.NoError(t, err)
	assert.False(t, ok, "entry must expire with its TTL")
}

func TestRedisMatrixCacheRejectsCorruptPayload(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	require.NoError(t, mr.Set(redisKeyPrefix+"bad", "not json"))

	_, _, err := NewRedisMatrixCache(client, 0).Get(context.Background(), "bad")
	require.Error(t, err)
}

func TestRedisMatrixCacheRequiresKey(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	c := NewRedisMatrixCache(client, 0)
	_, _, err := c.Get(context.Background(), " ")
	require.Error(t, err)
	require.Error(t, c.Put(context.Background(), "", domain.DistanceMatrix{{0}}))
}

// Runs against a real Postgres when TEST_DATABASE_URL is set.
func TestSQLMatrixCacheRoundTrip(t *testing.T) {
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	conn, err := db.Open(url)
	require.NoError(t, err)
	defer conn.Close()

	_, err = conn.Exec(`CREATE TABLE IF NOT EXISTS matrix_cache (
		cache_key TEXT PRIMARY KEY,
		size INTEGER NOT NULL,
		payload JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`)
	require.NoError(t, err)

	c := NewSQLMatrixCache(conn)
	ctx := context.Background()
	key := "test:" + time.Now().Format(time.RFC3339Nano)

	_, ok, err := c.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)

	m := domain.DistanceMatrix{{0, 3, 4}, {3, 0, 5}, {4, 5, 0}}
	require.NoError(t, c.Put(ctx, key, m))
	require.NoError(t, c.Put(ctx, key, m))

	got, ok, err := c.Get(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, m, got)
}
