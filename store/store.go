/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

// Package store provides the key-value backends used to persist music
// snapshots between page loads.
package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

var ErrNotFound = errors.New("key not found")

// Store is a string key-value store that can be closed.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Close() error
}

const (
	KindMemory = "memory"
	KindSQLite = "sqlite"
	KindRedis  = "redis"
)

// Options selects and configures a backend.
type Options struct {
	Kind     string
	Database string
	RedisURL string
}

// Open returns the backend named by opts.Kind.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch opts.Kind {
	case "", KindMemory:
		return NewMemory(), nil
	case KindSQLite:
		return OpenSQLite(ctx, opts.Database)
	case KindRedis:
		return OpenRedis(ctx, opts.RedisURL)
	default:
		return nil, fmt.Errorf("unknown store %q", opts.Kind)
	}
}

// Memory keeps values in process. Contents are lost on restart.
type Memory struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewMemory() *Memory {
	return &Memory{data: make(map[string]string)}
}

func (m *Memory) Get(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.data[key]
	if !ok {
		return "", ErrNotFound
	}

	return v, nil
}

func (m *Memory) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data[key] = value

	return nil
}

func (m *Memory) Close() error {
	return nil
}
