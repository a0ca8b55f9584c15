package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	redisclient "github.com/moritahq/vet-night-map/backend/internal/infrastructure/clients/redis"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAdapter(t *testing.T) (*miniredis.Miniredis, *RedisAdapter) {
	t.Helper()

	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { client.Close() })

	adapter := NewRedisAdapter(redisclient.NewClientFromRedis(client)).(*RedisAdapter)
	return srv, adapter
}

func TestRedisAdapter_SetAndGet(t *testing.T) {
	_, adapter := newTestAdapter(t)
	ctx := context.Background()

	require.NoError(t, adapter.Set(ctx, "geo:v1:geocode:abc", []byte(`{"lat":35.6812,"lon":139.7671}`), 60))

	value, err := adapter.Get(ctx, "geo:v1:geocode:abc")
	require.NoError(t, err)
	assert.Equal(t, `{"lat":35.6812,"lon":139.7671}`, string(value))
}

func TestRedisAdapter_GetMissingKey(t *testing.T) {
	_, adapter := newTestAdapter(t)

	_, err := adapter.Get(context.Background(), "missing")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "key not found")
}

func TestRedisAdapter_Expiration(t *testing.T) {
	srv, adapter := newTestAdapter(t)
	ctx := context.Background()

	require.NoError(t, adapter.Set(ctx, "maps:script", []byte("window.initMap=..."), 3600))

	srv.FastForward(time.Hour + time.Second)

	_, err := adapter.Get(ctx, "maps:script")
	assert.Error(t, err)
}

func TestRedisAdapter_DeleteAndExists(t *testing.T) {
	_, adapter := newTestAdapter(t)
	ctx := context.Background()

	require.NoError(t, adapter.Set(ctx, "ratelimit:203.0.113.7", []byte("3"), 900))

	exists, err := adapter.Exists(ctx, "ratelimit:203.0.113.7")
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, adapter.Delete(ctx, "ratelimit:203.0.113.7"))

	exists, err = adapter.Exists(ctx, "ratelimit:203.0.113.7")
	require.NoError(t, err)
	assert.False(t, exists)
}
