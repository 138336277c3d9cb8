package querycache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/coocood/freecache"
	"github.com/redis/go-redis/v9"
)

var (
	ErrNotFound = errors.New("querycache: entry not found")
	// ErrEntryTooLarge is returned by MemoryStore for values over 1/1024 of
	// its capacity. Such queries are refetched on every lookup.
	ErrEntryTooLarge = errors.New("querycache: entry too large for store")
)

// Store persists encoded cache entries. Get returns ErrNotFound on a miss.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

type MemoryStore struct {
	cache *freecache.Cache
}

func NewMemoryStore(sizeMB int) *MemoryStore {
	return &MemoryStore{cache: freecache.NewCache(sizeMB * 1024 * 1024)}
}

func (store *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	value, err := store.cache.Get([]byte(key))
	if errors.Is(err, freecache.ErrNotFound) {
		return nil, ErrNotFound
	}
	return value, err
}

func (store *MemoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	err := store.cache.Set([]byte(key), value, ttlSeconds(ttl))
	if errors.Is(err, freecache.ErrLargeEntry) {
		return fmt.Errorf("%w: %d bytes: %w", ErrEntryTooLarge, len(value), err)
	}
	return err
}

func (store *MemoryStore) Delete(_ context.Context, key string) error {
	store.cache.Del([]byte(key))
	return nil
}

// ttlSeconds rounds sub-second TTLs up so they do not turn into "never expire".
func ttlSeconds(ttl time.Duration) int {
	if ttl <= 0 {
		return 0
	}
	seconds := int(ttl / time.Second)
	if seconds == 0 {
		return 1
	}
	return seconds
}

type RedisStore struct {
	client redis.UniversalClient
	prefix string
}

func NewRedisStore(client redis.UniversalClient, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

func (store *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := store.client.Get(ctx, store.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	return value, err
}

func (store *RedisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return store.client.Set(ctx, store.prefix+key, value, ttl).Err()
}

func (store *RedisStore) Delete(ctx context.Context, key string) error {
	return store.client.Del(ctx, store.prefix+key).Err()
}

func (store *RedisStore) Ping(ctx context.Context) error {
	return store.client.Ping(ctx).Err()
}
