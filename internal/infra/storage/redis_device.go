package storage

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisClient is the subset of Redis the device needs, so tests can mock it.
type RedisClient interface {
	GetRange(ctx context.Context, key string, start, end int64) (string, error)
	SetRange(ctx context.Context, key string, offset int64, value string) error
	Ping(ctx context.Context) error
}

// goRedisClient adapts *redis.Client to RedisClient.
type goRedisClient struct {
	rdb *redis.Client
}

// NewRedisClient connects to addr and returns the adapted client.
func NewRedisClient(addr, password string, db int) RedisClient {
	return &goRedisClient{rdb: redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})}
}

func (c *goRedisClient) GetRange(ctx context.Context, key string, start, end int64) (string, error) {
	v, err := c.rdb.GetRange(ctx, key, start, end).Result()
	if err == redis.Nil {
		return "", nil
	}
	return v, err
}

func (c *goRedisClient) SetRange(ctx context.Context, key string, offset int64, value string) error {
	return c.rdb.SetRange(ctx, key, offset, value).Err()
}

func (c *goRedisClient) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// RedisDevice maps the device onto one Redis string. Missing bytes read as
// zero, matching GETRANGE on a short or absent key.
type RedisDevice struct {
	client RedisClient
	key    string
}

func NewRedisDevice(client RedisClient, key string) *RedisDevice {
	return &RedisDevice{client: client, key: key}
}

func (d *RedisDevice) WriteAt(ctx context.Context, addr int, data []byte) error {
	if err := checkRange(addr, len(data)); err != nil {
		return err
	}
	if len(data) == 0 {
		return nil
	}
	if err := d.client.SetRange(ctx, d.key, int64(addr), string(data)); err != nil {
		return fmt.Errorf("failed to write redis device: %w", err)
	}
	return nil
}

func (d *RedisDevice) ReadAt(ctx context.Context, addr int, buf []byte) error {
	if err := checkRange(addr, len(buf)); err != nil {
		return err
	}
	if len(buf) == 0 {
		return nil
	}
	v, err := d.client.GetRange(ctx, d.key, int64(addr), int64(addr+len(buf)-1))
	if err != nil {
		return fmt.Errorf("failed to read redis device: %w", err)
	}
	n := copy(buf, v)
	clear(buf[n:])
	return nil
}
