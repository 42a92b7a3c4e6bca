package cache

import (
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru"
)

// LRUCache 限制条目数的缓存，超过容量时淘汰最久未使用的条目。
// 除容量限制外，过期语义与 ShardedCache 相同。
type LRUCache struct {
	lru *lru.Cache
	now func() time.Time
}

// NewLRUCache 创建一个容量为 capacity 的 LRU 缓存
func NewLRUCache(capacity int, opts ...Option) (*LRUCache, error) {
	l, err := lru.New(capacity)
	if err != nil {
		return nil, fmt.Errorf("failed to create lru cache: %w", err)
	}

	o := buildOptions(opts)
	return &LRUCache{lru: l, now: o.now}, nil
}

// Get 返回未过期的响应副本，命中会刷新访问顺序
func (c *LRUCache) Get(name string) ([]byte, bool) {
	v, ok := c.lru.Get(name)
	if !ok {
		return nil, false
	}

	entry := v.(*Entry)
	if !entry.Valid(c.now()) {
		return nil, false
	}
	return entry.response(), true
}

// Put 覆盖 name 对应的条目，必要时淘汰最旧条目
func (c *LRUCache) Put(name string, resp []byte, ttl time.Duration) {
	c.lru.Add(name, newEntry(resp, c.now(), ttl))
}

// Len 返回当前条目数
func (c *LRUCache) Len() int {
	return c.lru.Len()
}
