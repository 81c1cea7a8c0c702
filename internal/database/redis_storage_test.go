package database

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) (*RedisStorage, *miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisStorage(client, "test:"), mr, client
}

func TestRedisStorageRoundTrip(t *testing.T) {
	storage, mr, _ := newTestStorage(t)

	value, err := storage.Get("missing")
	require.NoError(t, err)
	require.Nil(t, value)

	require.NoError(t, storage.Set("203.0.113.9", []byte("counter"), time.Minute))
	require.True(t, mr.Exists("test:203.0.113.9"))

	value, err = storage.Get("203.0.113.9")
	require.NoError(t, err)
	require.Equal(t, []byte("counter"), value)

	require.NoError(t, storage.Delete("203.0.113.9"))
	value, err = storage.Get("203.0.113.9")
	require.NoError(t, err)
	require.Nil(t, value)
}

func TestRedisStorageExpiry(t *testing.T) {
	storage, mr, _ := newTestStorage(t)

	require.NoError(t, storage.Set("client", []byte("1"), time.Minute))
	mr.FastForward(2 * time.Minute)

	value, err := storage.Get("client")
	require.NoError(t, err)
	require.Nil(t, value)
}

func TestRedisStorageIgnoresEmptyInput(t *testing.T) {
	storage, mr, _ := newTestStorage(t)

	require.NoError(t, storage.Set("", []byte("1"), 0))
	require.NoError(t, storage.Set("key", nil, 0))
	require.Empty(t, mr.Keys())
}

func TestRedisStorageResetKeepsForeignKeys(t *testing.T) {
	storage, mr, client := newTestStorage(t)

	require.NoError(t, client.Set(context.Background(), "other:key", "keep", 0).Err())
	require.NoError(t, storage.Set("a", []byte("1"), 0))
	require.NoError(t, storage.Set("b", []byte("2"), 0))

	require.NoError(t, storage.Reset())
	require.Equal(t, []string{"other:key"}, mr.Keys())
	require.NoError(t, storage.Close())
}

func TestRedisStorageSurfacesConnectionErrors(t *testing.T) {
	storage, mr, _ := newTestStorage(t)
	mr.Close()

	_, err := storage.Get("client")
	require.Error(t, err)
	require.Contains(t, err.Error(), "redis storage get")
}

func TestConnectRedis(t *testing.T) {
	_, err := ConnectRedis(context.Background(), "")
	require.Error(t, err)

	_, err = ConnectRedis(context.Background(), "://bad")
	require.Error(t, err)

	mr := miniredis.RunT(t)
	client, err := ConnectRedis(context.Background(), "redis://"+mr.Addr())
	require.NoError(t, err)
	require.NoError(t, client.Close())
}
