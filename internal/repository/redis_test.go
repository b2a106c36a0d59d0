package repository

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMiniredisStore(t *testing.T, prefix string) *RedisStore {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisStore(client, prefix)
}

func TestRedisStoreRoundTrip(t *testing.T) {
	s := newMiniredisStore(t, "")
	ctx := context.Background()

	_, err := s.Get(ctx, "missing")
	assert.True(t, IsNotFound(err))

	require.NoError(t, s.Set(ctx, "k", []byte(`{"a":1}`)))
	data, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"a":1}`), data)

	require.NoError(t, s.Delete(ctx, "k"))
	_, err = s.Get(ctx, "k")
	assert.True(t, IsNotFound(err))
}

func TestRedisStorePrefixIsolation(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	a := NewRedisStore(client, "biz-a")
	b := NewRedisStore(client, "biz-b")
	ctx := context.Background()

	require.NoError(t, a.Set(ctx, ReservationCartKey, []byte("[1]")))

	_, err := b.Get(ctx, ReservationCartKey)
	assert.True(t, IsNotFound(err))

	// Под капотом ключ хранится с префиксом
	assert.True(t, mr.Exists("biz-a:"+ReservationCartKey))
}

func TestCartRepositoryOverRedis(t *testing.T) {
	repo := NewCartRepository(newMiniredisStore(t, "biz-1"))
	ctx := context.Background()

	// Отсутствие ключа читается как пустая корзина
	parts, err := repo.LoadParts(ctx)
	require.NoError(t, err)
	assert.Empty(t, parts)
	assert.NotNil(t, parts)

	items, err := repo.LoadItems(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}
