package webapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"dnsrelay/config"
	"dnsrelay/logger"
)

// APIResponse 统一的 API 响应格式
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// StatsProvider 提供运行统计，*dnsserver.Server 满足该接口
type StatsProvider interface {
	GetStats() map[string]interface{}
}

// Server 只读的诊断接口，不影响解析行为
type Server struct {
	cfg   *config.Config
	stats StatsProvider

	mu       sync.Mutex
	listener *http.Server
}

// NewServer 创建新的 Web API 服务器
func NewServer(cfg *config.Config, stats StatsProvider) *Server {
	return &Server{
		cfg:   cfg,
		stats: stats,
	}
}

// Handler 返回注册好全部路由的 http.Handler
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/stats", s.handleStats)
	mux.HandleFunc("/api/config", s.handleConfig)
	mux.HandleFunc("/health", s.handleHealth)
	return s.corsMiddleware(mux)
}

// httpServer 返回当前的 http.Server，首次调用时创建
func (s *Server) httpServer() *http.Server {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener == nil {
		s.listener = &http.Server{
			Addr:              fmt.Sprintf(":%d", s.cfg.WebAPI.ListenPort),
			Handler:           s.Handler(),
			ReadHeaderTimeout: 5 * time.Second,
		}
	}
	return s.listener
}

// Start 启动 Web API 服务，阻塞直到 Stop 被调用
// Stop 先于 Start 调用时，Start 立即返回 nil。
func (s *Server) Start() error {
	if !s.cfg.WebAPI.Enabled {
		logger.Info("[WebAPI] disabled")
		return nil
	}

	srv := s.httpServer()
	logger.Infof("[WebAPI] server started on http://localhost%s", srv.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("webapi: %w", err)
	}
	return nil
}

// Stop 停止 Web API 服务
func (s *Server) Stop(ctx context.Context) error {
	if !s.cfg.WebAPI.Enabled {
		return nil
	}
	return s.httpServer().Shutdown(ctx)
}

// Run 运行服务直到 ctx 结束
func (s *Server) Run(ctx context.Context) error {
	if !s.cfg.WebAPI.Enabled {
		return nil
	}

	// 在启动 goroutine 之前创建 http.Server，保证 Stop 总能作用于它
	s.httpServer()

	errCh := make(chan error, 1)
	go func() { errCh <- s.Start() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.Stop(shutdownCtx); err != nil {
			logger.Warnf("[WebAPI] shutdown: %v", err)
		}
		return <-errCh
	}
}
