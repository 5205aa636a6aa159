// README: Redis list of each session's most recent place ids, newest first.
package history

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	recentKeyPattern = "history:session:%s:recent"
	// Sessions idle for a month fall back to Postgres on their next search.
	recentTTL = 30 * 24 * time.Hour
)

type Cache struct {
	redis *redis.Client
}

func NewCache(redis *redis.Client) *Cache {
	return &Cache{redis: redis}
}

// Recent returns up to limit cached ids. An empty result means the list is not cached.
func (c *Cache) Recent(ctx context.Context, sessionID string, limit int) ([]string, error) {
	if limit <= 0 {
		return nil, nil
	}
	return c.redis.LRange(ctx, recentKey(sessionID), 0, int64(limit-1)).Result()
}

// Push prepends placeID to an already cached list and trims it to limit.
// A list that is not cached is left alone so the next read refills it whole.
func (c *Cache) Push(ctx context.Context, sessionID, placeID string, limit int) error {
	key := recentKey(sessionID)
	_, err := c.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.LPushX(ctx, key, placeID)
		pipe.LTrim(ctx, key, 0, int64(limit-1))
		pipe.Expire(ctx, key, recentTTL)
		return nil
	})
	return err
}

// Fill replaces the cached list with ids, newest first.
func (c *Cache) Fill(ctx context.Context, sessionID string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	key := recentKey(sessionID)
	members := make([]interface{}, len(ids))
	for i, id := range ids {
		members[i] = id
	}
	_, err := c.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		pipe.RPush(ctx, key, members...)
		pipe.Expire(ctx, key, recentTTL)
		return nil
	})
	return err
}

func recentKey(sessionID string) string {
	return fmt.Sprintf(recentKeyPattern, sessionID)
}
