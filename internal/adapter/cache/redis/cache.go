// Package redis implements the session cache on a Redis server so several
// client hosts can share one signed-in profile.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/heartmarshall/qaza-tracker/internal/domain"
)

// Cache stores records as plain string values under prefix+key, without expiry.
type Cache struct {
	client *goredis.Client
	prefix string
}

// New connects to the server at url and verifies the connection.
func New(ctx context.Context, url, prefix string) (*Cache, error) {
	opt, err := goredis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis cache: parse url: %w", err)
	}

	opt.PoolSize = 4
	opt.MinIdleConns = 1
	opt.DialTimeout = 5 * time.Second
	opt.ReadTimeout = 3 * time.Second
	opt.WriteTimeout = 3 * time.Second
	opt.PoolTimeout = 4 * time.Second
	opt.ConnMaxIdleTime = 5 * time.Minute

	client := goredis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis cache: ping: %w", err)
	}

	return NewFromClient(client, prefix), nil
}

// NewFromClient wraps an existing client.
func NewFromClient(client *goredis.Client, prefix string) *Cache {
	return &Cache{client: client, prefix: prefix}
}

// Close releases the underlying connection pool.
func (c *Cache) Close() error {
	return c.client.Close()
}

// Load returns the record for key or domain.ErrNotFound.
func (c *Cache) Load(ctx context.Context, key string) ([]byte, error) {
	data, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis cache: get %s: %w", key, err)
	}
	return data, nil
}

// Save overwrites the record.
func (c *Cache) Save(ctx context.Context, key string, data []byte) error {
	if err := c.client.Set(ctx, c.prefix+key, data, 0).Err(); err != nil {
		return fmt.Errorf("redis cache: set %s: %w", key, err)
	}
	return nil
}

// Delete removes the record. A missing record is not an error.
func (c *Cache) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, c.prefix+key).Err(); err != nil {
		return fmt.Errorf("redis cache: del %s: %w", key, err)
	}
	return nil
}
