package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisPersistence keeps the archive under a single fixed key.
type RedisPersistence struct {
	client *redis.Client
	key    string
}

func NewRedisPersistence(redisURL, key string) (*RedisPersistence, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opt)

	// Test the connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisPersistence{
		client: client,
		key:    key,
	}, nil
}

func (r *RedisPersistence) Close() error {
	return r.client.Close()
}

func (r *RedisPersistence) Load(ctx context.Context) ([]byte, error) {
	data, err := r.client.Get(ctx, r.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNoArchive
		}
		return nil, fmt.Errorf("redis get error: %w", err)
	}
	return data, nil
}

func (r *RedisPersistence) Save(ctx context.Context, data []byte) error {
	if err := r.client.Set(ctx, r.key, data, 0).Err(); err != nil {
		return fmt.Errorf("redis set error: %w", err)
	}
	return nil
}
