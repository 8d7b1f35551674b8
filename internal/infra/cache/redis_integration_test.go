//go:build integration

package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/reservation-scheduler/internal/config"
)

func newTestRedis(t *testing.T) *Redis {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}
	r, err := NewRedis(context.Background(), config.RedisConfig{Addr: addr})
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })
	return r
}

func TestRedis_GetMiss(t *testing.T) {
	r := newTestRedis(t)

	_, err := r.Get(context.Background(), "missing:"+uuid.NewString())
	assert.ErrorIs(t, err, ErrMiss)
}

func TestRedis_AllowFixedWindow(t *testing.T) {
	r := newTestRedis(t)
	ctx := context.Background()
	key := "rl:test:" + uuid.NewString()

	for i := 0; i < 3; i++ {
		ok, err := r.Allow(ctx, key, 3, time.Minute)
		require.NoError(t, err)
		assert.True(t, ok)
	}
	ok, err := r.Allow(ctx, key, 3, time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)
}
