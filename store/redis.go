/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Redis stores values as plain string keys, so several servers can share
// one set of snapshots.
type Redis struct {
	client *redis.Client
}

// OpenRedis connects to the server at url (redis://[user:pass@]host:port/db).
func OpenRedis(ctx context.Context, url string) (*Redis, error) {
	if url == "" {
		return nil, errors.New("redis store needs a url")
	}

	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("pinging redis: %w", err)
	}

	return &Redis{client: client}, nil
}

func (r *Redis) Get(ctx context.Context, key string) (string, error) {
	v, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("reading %q: %w", key, err)
	}

	return v, nil
}

func (r *Redis) Set(ctx context.Context, key, value string) error {
	if err := r.client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("writing %q: %w", key, err)
	}

	return nil
}

func (r *Redis) Close() error {
	return r.client.Close()
}
