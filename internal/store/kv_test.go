package store

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestKV(t *testing.T) (*miniredis.Miniredis, *RedisKV) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	return mr, NewRedisKV(client)
}

func TestRedisKV_SetGet(t *testing.T) {
	_, kv := setupTestKV(t)
	ctx := context.Background()

	err := kv.Set(ctx, "vital:user:u1:latest", `{"heart_rate":72}`, time.Minute)
	require.NoError(t, err)

	val, err := kv.Get(ctx, "vital:user:u1:latest")
	require.NoError(t, err)
	assert.Equal(t, `{"heart_rate":72}`, val)
}

func TestRedisKV_Get_Miss(t *testing.T) {
	_, kv := setupTestKV(t)

	_, err := kv.Get(context.Background(), "vital:user:missing:latest")
	assert.ErrorIs(t, err, ErrMiss)
}
