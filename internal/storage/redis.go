package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

type RedisDriver struct {
	client *redis.Client
	key    string
}

// OpenRedis подключается к Redis по URL и проверяет соединение.
func OpenRedis(ctx context.Context, redisURL, key string) (*RedisDriver, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis URL: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("pinging redis: %w", err)
	}

	return NewRedisDriver(client, key), nil
}

// NewRedisDriver создает драйвер, хранящий снимок в одном ключе Redis.
func NewRedisDriver(client *redis.Client, key string) *RedisDriver {
	return &RedisDriver{client: client, key: key}
}

func (d *RedisDriver) Name() string {
	return "redis"
}

func (d *RedisDriver) Read(ctx context.Context) ([]byte, error) {
	payload, err := d.client.Get(ctx, d.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSlotEmpty
		}
		return nil, err
	}

	return payload, nil
}

func (d *RedisDriver) Write(ctx context.Context, payload []byte) error {
	return d.client.Set(ctx, d.key, payload, 0).Err()
}

func (d *RedisDriver) Delete(ctx context.Context) error {
	return d.client.Del(ctx, d.key).Err()
}

func (d *RedisDriver) Close() error {
	return d.client.Close()
}
