// pkg/cache/cache.go
package cache

import (
	"strings"
	"sync"
	"time"
)

type Item struct {
	Value      interface{}
	Expiration int64
}

func (i Item) expired(now int64) bool {
	return now > i.Expiration
}

// Cache is the in-process fallback used when redis is disabled.
type Cache struct {
	items map[string]Item
	mu    sync.RWMutex
	stop  chan struct{}
	once  sync.Once
}

func NewCache() *Cache {
	cache := &Cache{
		items: make(map[string]Item),
		stop:  make(chan struct{}),
	}
	go cache.startGC(time.Minute)
	return cache
}

func (c *Cache) Set(key string, value interface{}, duration time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[key] = Item{
		Value:      value,
		Expiration: time.Now().Add(duration).UnixNano(),
	}
}

func (c *Cache) Get(key string) (interface{}, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	item, found := c.items[key]
	if !found || item.expired(time.Now().UnixNano()) {
		return nil, false
	}

	return item.Value, true
}

// Increment adds one to an int64 counter. A missing or expired key starts
// at 1 with the given ttl; later increments keep the original expiry.
func (c *Cache) Increment(key string, duration time.Duration) int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now().UnixNano()
	item, found := c.items[key]
	if !found || item.expired(now) {
		c.items[key] = Item{Value: int64(1), Expiration: time.Now().Add(duration).UnixNano()}
		return 1
	}

	n, _ := item.Value.(int64)
	n++
	item.Value = n
	c.items[key] = item
	return n
}

func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
}

// DeletePrefix removes every key starting with prefix.
func (c *Cache) DeletePrefix(prefix string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for k := range c.items {
		if strings.HasPrefix(k, prefix) {
			delete(c.items, k)
			n++
		}
	}
	return n
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

func (c *Cache) Flush() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string]Item)
}

// Close stops the background sweeper.
func (c *Cache) Close() {
	c.once.Do(func() { close(c.stop) })
}

func (c *Cache) startGC(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			now := time.Now().UnixNano()
			c.mu.Lock()
			for k, v := range c.items {
				if v.expired(now) {
					delete(c.items, k)
				}
			}
			c.mu.Unlock()
		}
	}
}
