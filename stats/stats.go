package stats

import (
	"context"
	"runtime"
	"sync/atomic"
	"time"

	"dnsrelay/logger"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// Stats 运行统计，所有计数器均为原子操作，可被各请求 goroutine 并发更新
type Stats struct {
	queries         atomic.Int64
	ignored         atomic.Int64 // qr=1 的报文
	malformed       atomic.Int64
	cacheHits       atomic.Int64
	cacheMisses     atomic.Int64
	tableHits       atomic.Int64
	forwards        atomic.Int64
	forwardFailures atomic.Int64
	repliesSent     atomic.Int64
	sendFailures    atomic.Int64
	receiveFailures atomic.Int64

	startTime time.Time
}

// NewStats 创建新的统计实例
func NewStats() *Stats {
	return &Stats{startTime: time.Now()}
}

func (s *Stats) IncQueries()         { s.queries.Add(1) }
func (s *Stats) IncIgnored()         { s.ignored.Add(1) }
func (s *Stats) IncMalformed()       { s.malformed.Add(1) }
func (s *Stats) IncCacheHits()       { s.cacheHits.Add(1) }
func (s *Stats) IncCacheMisses()     { s.cacheMisses.Add(1) }
func (s *Stats) IncTableHits()       { s.tableHits.Add(1) }
func (s *Stats) IncForwards()        { s.forwards.Add(1) }
func (s *Stats) IncForwardFailures() { s.forwardFailures.Add(1) }
func (s *Stats) IncRepliesSent()     { s.repliesSent.Add(1) }
func (s *Stats) IncSendFailures()    { s.sendFailures.Add(1) }
func (s *Stats) IncReceiveFailures() { s.receiveFailures.Add(1) }

// Counters 计数器快照
type Counters struct {
	Queries         int64 `json:"total_queries"`
	Ignored         int64 `json:"ignored_responses"`
	Malformed       int64 `json:"malformed"`
	CacheHits       int64 `json:"cache_hits"`
	CacheMisses     int64 `json:"cache_misses"`
	TableHits       int64 `json:"table_hits"`
	Forwards        int64 `json:"forwards"`
	ForwardFailures int64 `json:"forward_failures"`
	RepliesSent     int64 `json:"replies_sent"`
	SendFailures    int64 `json:"send_failures"`
	ReceiveFailures int64 `json:"receive_failures"`
}

// Snapshot 返回当前计数
func (s *Stats) Snapshot() Counters {
	return Counters{
		Queries:         s.queries.Load(),
		Ignored:         s.ignored.Load(),
		Malformed:       s.malformed.Load(),
		CacheHits:       s.cacheHits.Load(),
		CacheMisses:     s.cacheMisses.Load(),
		TableHits:       s.tableHits.Load(),
		Forwards:        s.forwards.Load(),
		ForwardFailures: s.forwardFailures.Load(),
		RepliesSent:     s.repliesSent.Load(),
		SendFailures:    s.sendFailures.Load(),
		ReceiveFailures: s.receiveFailures.Load(),
	}
}

// GetStats 获取所有统计数据，包含系统状态
func (s *Stats) GetStats() map[string]interface{} {
	c := s.Snapshot()

	var hitRate float64
	if lookups := c.CacheHits + c.CacheMisses; lookups > 0 {
		hitRate = float64(c.CacheHits) / float64(lookups) * 100
	}

	return map[string]interface{}{
		"counters":       c,
		"cache_hit_rate": hitRate,
		"system_stats":   systemStats(),
		"uptime_seconds": time.Since(s.startTime).Seconds(),
	}
}

// systemStats 使用 gopsutil 获取系统状态，失败时对应字段为 0
func systemStats() map[string]interface{} {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	sys := map[string]interface{}{
		"cpu_cores":       runtime.NumCPU(),
		"cpu_usage_pct":   0.0,
		"mem_total_mb":    uint64(0),
		"mem_used_mb":     uint64(0),
		"mem_usage_pct":   0.0,
		"go_mem_alloc_mb": memStats.Alloc / 1024 / 1024,
		"goroutines":      runtime.NumGoroutine(),
	}

	// interval 为 0 时与上一次调用比较，不阻塞
	if usage, err := cpu.Percent(0, false); err != nil {
		logger.Debugf("[Stats] cpu usage unavailable: %v", err)
	} else if len(usage) > 0 {
		sys["cpu_usage_pct"] = usage[0]
	}

	if memInfo, err := mem.VirtualMemory(); err != nil {
		logger.Debugf("[Stats] memory info unavailable: %v", err)
	} else {
		sys["mem_total_mb"] = memInfo.Total / 1024 / 1024
		sys["mem_used_mb"] = memInfo.Used / 1024 / 1024
		sys["mem_usage_pct"] = memInfo.UsedPercent
	}

	return sys
}

// Reset 重置统计
func (s *Stats) Reset() {
	for _, c := range []*atomic.Int64{
		&s.queries, &s.ignored, &s.malformed, &s.cacheHits, &s.cacheMisses,
		&s.tableHits, &s.forwards, &s.forwardFailures, &s.repliesSent,
		&s.sendFailures, &s.receiveFailures,
	} {
		c.Store(0)
	}
}

// RunReporter 每隔 interval 以 info 级别输出一次统计摘要，直到 ctx 结束
func (s *Stats) RunReporter(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		<-ctx.Done()
		return nil
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			c := s.Snapshot()
			logger.Infof("[Stats] queries=%d cache_hits=%d table_hits=%d forwards=%d forward_failures=%d replies=%d ignored=%d malformed=%d",
				c.Queries, c.CacheHits, c.TableHits, c.Forwards, c.ForwardFailures, c.RepliesSent, c.Ignored, c.Malformed)
		}
	}
}
