package cache

import (
	"hash/fnv"
	"sync"
	"time"
)

// ShardedCache 分片缓存，通过将缓存分成多个独立的分片来降低锁竞争。
// 容量不设上限，条目仅在被覆盖时替换。
type ShardedCache struct {
	shards []*cacheShard
	mask   uint32 // 用于快速计算分片索引
	now    func() time.Time
}

type cacheShard struct {
	mu      sync.RWMutex
	entries map[string]*Entry
}

// NewShardedCache 创建分片缓存
// shardCount 应该是 2 的幂次方（如 32, 64）
func NewShardedCache(shardCount int, opts ...Option) *ShardedCache {
	if shardCount <= 0 || (shardCount&(shardCount-1)) != 0 {
		shardCount = 32
	}

	o := buildOptions(opts)
	shards := make([]*cacheShard, shardCount)
	for i := range shards {
		shards[i] = &cacheShard{entries: make(map[string]*Entry)}
	}

	return &ShardedCache{
		shards: shards,
		mask:   uint32(shardCount - 1),
		now:    o.now,
	}
}

// getShard 根据 key 获取对应的分片
func (sc *ShardedCache) getShard(key string) *cacheShard {
	hash := fnv.New32a()
	hash.Write([]byte(key))
	return sc.shards[hash.Sum32()&sc.mask]
}

// Get 返回未过期的响应副本
func (sc *ShardedCache) Get(name string) ([]byte, bool) {
	shard := sc.getShard(name)
	shard.mu.RLock()
	entry, exists := shard.entries[name]
	shard.mu.RUnlock()

	if !exists || !entry.Valid(sc.now()) {
		return nil, false
	}
	return entry.response(), true
}

// Put 无条件覆盖 name 对应的条目
func (sc *ShardedCache) Put(name string, resp []byte, ttl time.Duration) {
	entry := newEntry(resp, sc.now(), ttl)

	shard := sc.getShard(name)
	shard.mu.Lock()
	shard.entries[name] = entry
	shard.mu.Unlock()
}

// Len 返回缓存中的条目数（包括已过期但尚未覆盖的条目）
func (sc *ShardedCache) Len() int {
	total := 0
	for _, shard := range sc.shards {
		shard.mu.RLock()
		total += len(shard.entries)
		shard.mu.RUnlock()
	}
	return total
}
