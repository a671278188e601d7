package cache

import (
	"fmt"
	"sync"
)

// MemoryCache is an in-memory Store used in tests and as a stand-in when
// no cache directory is configured.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]map[string][]byte
}

func NewMemoryCache() *MemoryCache {
	entries := make(map[string]map[string][]byte, len(namespaces))
	for _, ns := range namespaces {
		entries[string(ns)] = make(map[string][]byte)
	}
	return &MemoryCache{entries: entries}
}

func (c *MemoryCache) Get(namespace, key string) ([]byte, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ns, ok := c.entries[namespace]
	if !ok {
		return nil, false, fmt.Errorf("unknown cache namespace: %s", namespace)
	}
	value, ok := ns[key]
	return value, ok, nil
}

func (c *MemoryCache) Put(namespace, key string, value []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	ns, ok := c.entries[namespace]
	if !ok {
		return fmt.Errorf("unknown cache namespace: %s", namespace)
	}
	ns[key] = value
	return nil
}

func (c *MemoryCache) Count(namespace string) (int, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ns, ok := c.entries[namespace]
	if !ok {
		return 0, fmt.Errorf("unknown cache namespace: %s", namespace)
	}
	return len(ns), nil
}

func (c *MemoryCache) Clear(namespace string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[namespace]; !ok {
		return fmt.Errorf("unknown cache namespace: %s", namespace)
	}
	c.entries[namespace] = make(map[string][]byte)
	return nil
}

func (c *MemoryCache) Close() error {
	return nil
}
