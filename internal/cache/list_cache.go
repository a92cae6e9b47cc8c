package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "cache:"

// Lists caches list pages per entity kind in Redis. Pages are invalidated
// wholesale for a kind on any write to that kind.
type Lists struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewLists returns a new list page cache.
func NewLists(rdb *redis.Client, ttl time.Duration) *Lists {
	return &Lists{rdb: rdb, ttl: ttl}
}

func pageKey(kind string, offset, limit int) string {
	return fmt.Sprintf("%s%s:list:%d:%d", keyPrefix, kind, offset, limit)
}

// GetPage returns the cached page or nil if miss.
func GetPage[T any](ctx context.Context, c *Lists, kind string, offset, limit int) ([]T, error) {
	b, err := c.rdb.Get(ctx, pageKey(kind, offset, limit)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var list []T
	if err := json.Unmarshal(b, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// SetPage stores a page in cache.
func SetPage[T any](ctx context.Context, c *Lists, kind string, offset, limit int, list []T) error {
	b, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, pageKey(kind, offset, limit), b, c.ttl).Err()
}

// Invalidate removes every cached page of the kind (cache invalidation on write).
func (c *Lists) Invalidate(ctx context.Context, kind string) error {
	iter := c.rdb.Scan(ctx, 0, keyPrefix+kind+":list:*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}
