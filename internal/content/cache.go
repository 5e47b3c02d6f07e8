package content

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/abhisek/mentorly/internal/curriculum"
)

// CacheKey identifies one generated payload.
type CacheKey struct {
	Kind     Kind
	Subject  string
	Subtopic string
	Level    curriculum.Level
	// Count is the number of items asked for, zero for single payloads.
	Count int
}

func (k CacheKey) String() string {
	s := fmt.Sprintf("%s|%s|%s|%s", k.Kind, k.Subject, k.Subtopic, k.Level)
	if k.Count > 0 {
		s += fmt.Sprintf("|%d", k.Count)
	}
	return s
}

// Cache stores successfully generated content. Values are JSON encoded
// so a hit never aliases a caller's slices.
type Cache interface {
	// Get decodes the cached value into dest and reports whether it hit.
	Get(ctx context.Context, key CacheKey, dest any) (bool, error)
	Set(ctx context.Context, key CacheKey, value any) error
	Clear(ctx context.Context) error
}

// MemoryCache is the process-local Cache.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[CacheKey][]byte
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: map[CacheKey][]byte{}}
}

func (c *MemoryCache) Get(_ context.Context, key CacheKey, dest any) (bool, error) {
	c.mu.RLock()
	raw, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("decode cached %s: %w", key.Kind, err)
	}
	return true, nil
}

func (c *MemoryCache) Set(_ context.Context, key CacheKey, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s for cache: %w", key.Kind, err)
	}
	c.mu.Lock()
	c.entries[key] = raw
	c.mu.Unlock()
	return nil
}

func (c *MemoryCache) Clear(context.Context) error {
	c.mu.Lock()
	clear(c.entries)
	c.mu.Unlock()
	return nil
}

// Len returns the number of cached entries.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
