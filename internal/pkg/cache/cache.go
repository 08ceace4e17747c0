package cache

import (
	"strings"
	"sync"
	"time"
)

// Cache 带 TTL 的内存缓存，显式注入使用，不做全局单例
type Cache struct {
	mutex   sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
	now     func() time.Time
}

type entry struct {
	value    any
	storedAt time.Time
}

func New(ttl time.Duration) *Cache {
	return &Cache{
		entries: make(map[string]entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (c *Cache) Get(key string) (any, bool) {
	c.mutex.RLock()
	e, ok := c.entries[key]
	c.mutex.RUnlock()
	if !ok || c.now().Sub(e.storedAt) >= c.ttl {
		return nil, false
	}
	return e.value, true
}

func (c *Cache) Set(key string, value any) {
	c.mutex.Lock()
	c.entries[key] = entry{value: value, storedAt: c.now()}
	c.mutex.Unlock()
}

// Invalidate 清除匹配前缀的缓存项，前缀为空清除全部
func (c *Cache) Invalidate(prefix string) {
	c.mutex.Lock()
	if prefix == "" {
		c.entries = make(map[string]entry)
	} else {
		for k := range c.entries {
			if strings.HasPrefix(k, prefix) {
				delete(c.entries, k)
			}
		}
	}
	c.mutex.Unlock()
}
