// Package colors manages the accent color of each public catalog page.
// Colors live in a small key-value store so theme changes apply without
// touching the catalog tables.
package colors

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// DefaultColor is the accent color used until an admin picks one.
const DefaultColor = "#3b82f6"

// Store reads and writes catalog accent colors.
type Store interface {
	Get(ctx context.Context, catalogID uuid.UUID) (string, error)
	Set(ctx context.Context, catalogID uuid.UUID, color string) error
}

// RedisStore keeps colors in Redis so they survive restarts and are
// shared between instances.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a Redis-backed color store.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Compile-time check that RedisStore implements Store.
var _ Store = (*RedisStore)(nil)

func colorKey(catalogID uuid.UUID) string {
	return "catalog:color:" + catalogID.String()
}

// Get returns the stored color, or DefaultColor when none was set.
func (s *RedisStore) Get(ctx context.Context, catalogID uuid.UUID) (string, error) {
	value, err := s.client.Get(ctx, colorKey(catalogID)).Result()
	if err == redis.Nil {
		return DefaultColor, nil
	}
	if err != nil {
		return "", fmt.Errorf("get catalog color: %w", err)
	}

	return value, nil
}

// Set stores the color for a catalog.
func (s *RedisStore) Set(ctx context.Context, catalogID uuid.UUID, color string) error {
	if err := s.client.Set(ctx, colorKey(catalogID), color, 0).Err(); err != nil {
		return fmt.Errorf("set catalog color: %w", err)
	}

	return nil
}

// MemoryStore is the fallback when Redis is not configured. Colors
// reset on restart.
type MemoryStore struct {
	mu     sync.RWMutex
	colors map[uuid.UUID]string
}

// NewMemoryStore creates an in-process color store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{colors: make(map[uuid.UUID]string)}
}

// Compile-time check that MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)

// Get returns the stored color, or DefaultColor when none was set.
func (s *MemoryStore) Get(_ context.Context, catalogID uuid.UUID) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if color, ok := s.colors[catalogID]; ok {
		return color, nil
	}
	return DefaultColor, nil
}

// Set stores the color for a catalog.
func (s *MemoryStore) Set(_ context.Context, catalogID uuid.UUID, color string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.colors[catalogID] = color

	return nil
}
