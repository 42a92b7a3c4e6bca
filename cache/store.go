package cache

import (
	"time"

	"dnsrelay/config"
)

// Store 并发安全的响应缓存：按域名保存整段线上格式的响应。
//
// Get 与 Put 各自是原子的，不会观察到写了一半的条目。同一域名的并发 Put
// 之间没有顺序保证，以最后完成的写入为准。过期条目不会被主动删除，Get
// 将其视为未命中，下一次成功解析会覆盖它。
type Store interface {
	Get(name string) ([]byte, bool)
	Put(name string, resp []byte, ttl time.Duration)
	Len() int
}

// Option 缓存构造选项
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock 替换时间来源（测试用）
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

func buildOptions(opts []Option) options {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// New 根据配置选择缓存实现：MaxEntries 为 0 时使用不限容量的分片缓存，
// 否则使用按条目数淘汰的 LRU 缓存。
func New(cfg *config.CacheConfig, opts ...Option) (Store, error) {
	if cfg.MaxEntries > 0 {
		return NewLRUCache(cfg.MaxEntries, opts...)
	}
	return NewShardedCache(cfg.ShardCount, opts...), nil
}
