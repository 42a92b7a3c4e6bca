package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"dnsrelay/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock 可手动推进的时钟
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func newStores(t *testing.T, clock *fakeClock) map[string]Store {
	t.Helper()
	l, err := NewLRUCache(128, WithClock(clock.Now))
	require.NoError(t, err)
	return map[string]Store{
		"sharded": NewShardedCache(8, WithClock(clock.Now)),
		"lru":     l,
	}
}

func TestStoreRoundTripAndExpiry(t *testing.T) {
	clock := newFakeClock()
	for name, s := range newStores(t, clock) {
		t.Run(name, func(t *testing.T) {
			resp := []byte{0x12, 0x34, 0x81, 0x80}
			s.Put("example.com", resp, time.Hour)

			got, ok := s.Get("example.com")
			require.True(t, ok)
			assert.Equal(t, resp, got)

			clock.Advance(time.Hour - time.Nanosecond)
			_, ok = s.Get("example.com")
			assert.True(t, ok, "still valid just before expiry")

			clock.Advance(time.Nanosecond)
			_, ok = s.Get("example.com")
			assert.False(t, ok, "expiry instant itself is a miss")

			// 过期条目不会被删除，只是不再命中
			assert.Equal(t, 1, s.Len())

			s.Put("example.com", []byte{9}, time.Hour)
			got, ok = s.Get("example.com")
			require.True(t, ok)
			assert.Equal(t, []byte{9}, got)
		})
	}
}

func TestStoreMiss(t *testing.T) {
	clock := newFakeClock()
	for name, s := range newStores(t, clock) {
		t.Run(name, func(t *testing.T) {
			_, ok := s.Get("absent.example")
			assert.False(t, ok)
		})
	}
}

func TestStoreCopiesBytes(t *testing.T) {
	clock := newFakeClock()
	for name, s := range newStores(t, clock) {
		t.Run(name, func(t *testing.T) {
			resp := []byte{1, 2, 3}
			s.Put("copy.example", resp, time.Minute)
			resp[0] = 0xFF

			got, _ := s.Get("copy.example")
			assert.Equal(t, byte(1), got[0], "Put must not alias caller bytes")

			got[1] = 0xFF
			again, _ := s.Get("copy.example")
			assert.Equal(t, byte(2), again[1], "Get must return a private copy")
		})
	}
}

func TestStoreConcurrentAccess(t *testing.T) {
	clock := newFakeClock()
	for name, s := range newStores(t, clock) {
		t.Run(name, func(t *testing.T) {
			var wg sync.WaitGroup
			for i := 0; i < 32; i++ {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					payload := []byte(fmt.Sprintf("resp-%02d", i))
					for j := 0; j < 100; j++ {
						s.Put("shared.example", payload, time.Minute)
						got, ok := s.Get("shared.example")
						if ok {
							// 任何时刻读到的都必须是某一次完整写入
							assert.Len(t, got, len(payload))
							assert.Equal(t, "resp-", string(got[:5]))
						}
					}
				}(i)
			}
			wg.Wait()
			assert.Equal(t, 1, s.Len())
		})
	}
}

func TestLRUCacheEvicts(t *testing.T) {
	clock := newFakeClock()
	c, err := NewLRUCache(2, WithClock(clock.Now))
	require.NoError(t, err)

	c.Put("a", []byte("a"), time.Hour)
	c.Put("b", []byte("b"), time.Hour)
	_, _ = c.Get("a") // a 变为最近使用
	c.Put("c", []byte("c"), time.Hour)

	assert.Equal(t, 2, c.Len())
	_, ok := c.Get("b")
	assert.False(t, ok, "least recently used entry should be evicted")
	_, ok = c.Get("a")
	assert.True(t, ok)
	_, ok = c.Get("c")
	assert.True(t, ok)
}

func TestLRUCacheInvalidCapacity(t *testing.T) {
	_, err := NewLRUCache(0)
	assert.Error(t, err)
}

func TestShardedCacheUnbounded(t *testing.T) {
	c := NewShardedCache(3) // 非 2 的幂，回退到默认值
	assert.Len(t, c.shards, 32)

	for i := 0; i < 1000; i++ {
		c.Put(fmt.Sprintf("host%d.example", i), []byte{byte(i)}, time.Hour)
	}
	assert.Equal(t, 1000, c.Len())
}

func TestNewSelectsImplementation(t *testing.T) {
	s, err := New(&config.CacheConfig{ShardCount: 16})
	require.NoError(t, err)
	assert.IsType(t, &ShardedCache{}, s)

	s, err = New(&config.CacheConfig{MaxEntries: 10})
	require.NoError(t, err)
	assert.IsType(t, &LRUCache{}, s)
}
