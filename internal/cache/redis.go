package cache

import (
	"context"
	"encoding/json"
	"time"

	"shortlink/internal/types"

	"github.com/redis/go-redis/v9"
)

type Cache struct {
	rdb *redis.Client
}

func ConnectRedis(url, password string) (*Cache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     url,
		Password: password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Cache{rdb: rdb}, nil
}

// Get returns redis.Nil on a miss; the caller falls back to the database.
func (c *Cache) Get(ctx context.Context, shortCode string) (*types.ShortLink, error) {
	data, err := c.rdb.Get(ctx, shortCode).Bytes()
	if err != nil {
		return nil, err
	}

	link := &types.ShortLink{}
	if err := json.Unmarshal(data, link); err != nil {
		return nil, err
	}

	return link, nil
}

// Set stores the whole link, expiry timestamp included, so the service can
// still make the expired/active call on a cache hit.
func (c *Cache) Set(ctx context.Context, shortCode string, link *types.ShortLink, expiration time.Duration) error {
	data, err := json.Marshal(link)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, shortCode, data, expiration).Err()
}

func (c *Cache) Delete(ctx context.Context, shortCode string) error {
	return c.rdb.Del(ctx, shortCode).Err()
}

func (c *Cache) Close() error {
	return c.rdb.Close()
}
