// Package rds wraps go-redis behind the string cache surface the store exposes
package rds

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Config configures the client
type Config struct {
	// URL is a redis:// or rediss:// URL
	URL string
}

// Client is a thin go-redis wrapper
type Client struct {
	c *redis.Client
}

// Open parses the URL, connects and pings once
func Open(ctx context.Context, cfg Config) (*Client, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	c := New(redis.NewClient(opts))
	pctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := c.Ping(pctx); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	return c, nil
}

// New wraps an existing go-redis client
func New(c *redis.Client) *Client { return &Client{c: c} }

// Get returns the value or ok=false on a miss
func (x *Client) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := x.c.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

// Set stores val under key for ttl, 0 keeps it forever
func (x *Client) Set(ctx context.Context, key, val string, ttl time.Duration) error {
	return x.c.Set(ctx, key, val, ttl).Err()
}

// Del removes keys, missing keys are fine
func (x *Client) Del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return x.c.Del(ctx, keys...).Err()
}

// putVersion writes only when the stored version is not ahead of ours
var putVersion = redis.NewScript(`
local cur = redis.call('HGET', KEYS[1], 'v')
if cur and tonumber(cur) > tonumber(ARGV[1]) then
	return 0
end
redis.call('HSET', KEYS[1], 'v', ARGV[1], 'd', ARGV[2])
if tonumber(ARGV[3]) > 0 then
	redis.call('PEXPIRE', KEYS[1], ARGV[3])
end
return 1
`)

// PutVersion stores val under key unless a higher version is already there
// written is false when the write was skipped
func (x *Client) PutVersion(ctx context.Context, key, val string, version int64, ttl time.Duration) (bool, error) {
	n, err := putVersion.Run(ctx, x.c, []string{key}, version, val, ttl.Milliseconds()).Int()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// GetVersion reads a value written by PutVersion
func (x *Client) GetVersion(ctx context.Context, key string) (string, int64, bool, error) {
	vals, err := x.c.HMGet(ctx, key, "v", "d").Result()
	if err != nil {
		return "", 0, false, err
	}
	vs, ok1 := vals[0].(string)
	d, ok2 := vals[1].(string)
	if !ok1 || !ok2 {
		return "", 0, false, nil
	}
	v, err := strconv.ParseInt(vs, 10, 64)
	if err != nil {
		return "", 0, false, fmt.Errorf("bad version %q under %s", vs, key)
	}
	return d, v, true, nil
}

// Ping checks the connection
func (x *Client) Ping(ctx context.Context) error { return x.c.Ping(ctx).Err() }

// Close closes the pool
func (x *Client) Close() error { return x.c.Close() }
