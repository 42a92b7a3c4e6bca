package dnsserver

import (
	"net"
	"sync"
	"time"

	"dnsrelay/cache"
	"dnsrelay/config"
	"dnsrelay/stats"
	"dnsrelay/upstream"

	"golang.org/x/sync/semaphore"
)

// Table 只读的本地解析表
type Table interface {
	Lookup(name string) (string, bool)
}

// PacketWriter 回复客户端使用的共享监听端，net.PacketConn 满足该接口
type PacketWriter interface {
	WriteTo(p []byte, addr net.Addr) (int, error)
}

// Server DNS 中继服务器
// 除响应缓存外，各请求之间不共享可变状态。
type Server struct {
	cfg       *config.Config
	table     Table
	cache     cache.Store
	forwarder upstream.Forwarder
	stats     *stats.Stats
	cacheTTL  time.Duration
	workers   *semaphore.Weighted // nil 表示不限制并发

	mu       sync.Mutex
	conn     net.PacketConn
	done     chan struct{} // Serve 返回前关闭
	inflight sync.WaitGroup
}

// NewServer 创建新的 DNS 中继服务器
func NewServer(cfg *config.Config, table Table, store cache.Store, fwd upstream.Forwarder, s *stats.Stats) *Server {
	server := &Server{
		cfg:       cfg,
		table:     table,
		cache:     store,
		forwarder: fwd,
		stats:     s,
		cacheTTL:  cfg.CacheTTL(),
	}
	if cfg.System.MaxWorkers > 0 {
		server.workers = semaphore.NewWeighted(int64(cfg.System.MaxWorkers))
	}
	return server
}

// GetCache 获取缓存实例（供 WebAPI 使用）
func (s *Server) GetCache() cache.Store {
	return s.cache
}

// GetStats 获取统计信息
func (s *Server) GetStats() map[string]interface{} {
	st := s.stats.GetStats()
	st["cache_entries"] = s.cache.Len()
	st["upstream"] = s.forwarder.Address()
	return st
}

// LocalAddr 返回监听地址，尚未开始监听时为 nil
func (s *Server) LocalAddr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn == nil {
		return nil
	}
	return s.conn.LocalAddr()
}
