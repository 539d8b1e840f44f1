package service

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	appErrors "github.com/noah-isme/school-erp-api/pkg/errors"
)

// recordingCache is an in-memory CacheRepository that remembers deletions.
type recordingCache struct {
	mu      sync.Mutex
	values  map[string][]byte
	deleted []string
	getErr  error
}

func newRecordingCache() *recordingCache {
	return &recordingCache{values: make(map[string][]byte)}
}

func (c *recordingCache) Get(_ context.Context, key string, dest interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return c.getErr
	}
	raw, ok := c.values[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (c *recordingCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.values[key] = raw
	return nil
}

func (c *recordingCache) DeleteByPattern(_ context.Context, pattern string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deleted = append(c.deleted, pattern)
	prefix := strings.TrimSuffix(pattern, "*")
	for key := range c.values {
		if strings.HasPrefix(key, prefix) {
			delete(c.values, key)
		}
	}
	return nil
}

func (c *recordingCache) has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.values[key]
	return ok
}
