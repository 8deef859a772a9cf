package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"haulcentral/internal/models"
)

const boardPoolKey = "board:pool:available"

// BoardCache keeps a JSON snapshot of the available-load pool in Redis.
type BoardCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewBoardCache(rdb *redis.Client, ttl time.Duration) *BoardCache {
	return &BoardCache{rdb: rdb, ttl: ttl}
}

// Get returns the cached pool. ok is false on a miss.
func (c *BoardCache) Get(ctx context.Context) (loads []models.Load, ok bool, err error) {
	raw, err := c.rdb.Get(ctx, boardPoolKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if err := json.Unmarshal(raw, &loads); err != nil {
		// A snapshot written by an older build is treated as a miss.
		_ = c.rdb.Del(ctx, boardPoolKey).Err()
		return nil, false, nil
	}
	return loads, true, nil
}

func (c *BoardCache) Set(ctx context.Context, loads []models.Load) error {
	raw, err := json.Marshal(loads)
	if err != nil {
		return fmt.Errorf("encode board pool: %w", err)
	}
	return c.rdb.Set(ctx, boardPoolKey, raw, c.ttl).Err()
}

func (c *BoardCache) Invalidate(ctx context.Context) error {
	return c.rdb.Del(ctx, boardPoolKey).Err()
}
