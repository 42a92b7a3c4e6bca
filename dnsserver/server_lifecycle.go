package dnsserver

import (
	"context"
	"errors"
	"fmt"
	"net"

	"dnsrelay/dnsmsg"
	"dnsrelay/logger"
)

// ListenAndServe 在配置的地址上监听 UDP 并开始服务，直到 ctx 结束
func (s *Server) ListenAndServe(ctx context.Context) error {
	addr := s.cfg.ListenAddress()
	pc, err := net.ListenPacket("udp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}
	logger.Infof("[Server] DNS 中继已启动，监听 %s，上游 %s", pc.LocalAddr(), s.forwarder.Address())
	return s.Serve(ctx, pc)
}

// Serve 在 pc 上循环接收报文，每个报文交给独立的 goroutine 处理。
// 接收循环本身从不等待某个请求结束；ctx 结束或 pc 被关闭后，
// 等待所有在途请求完成再返回 nil。
func (s *Server) Serve(ctx context.Context, pc net.PacketConn) error {
	done := make(chan struct{})
	s.mu.Lock()
	s.conn = pc
	s.done = done
	s.mu.Unlock()
	defer close(done)

	stop := context.AfterFunc(ctx, func() { pc.Close() })
	defer stop()

	buf := make([]byte, dnsmsg.MaxUDPSize)
	for {
		n, addr, err := pc.ReadFrom(buf)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				s.inflight.Wait()
				logger.Info("[Server] 接收循环已退出")
				return nil
			}
			s.stats.IncReceiveFailures()
			logger.Warnf("[Server] 接收报文失败: %v", err)
			continue
		}

		// 接收缓冲区会被下一次读取覆盖，交给请求 goroutine 前先复制
		data := make([]byte, n)
		copy(data, buf[:n])

		s.inflight.Add(1)
		go s.serveDatagram(ctx, pc, addr, data)
	}
}

func (s *Server) serveDatagram(ctx context.Context, w PacketWriter, addr net.Addr, data []byte) {
	defer s.inflight.Done()

	if s.workers != nil {
		if err := s.workers.Acquire(ctx, 1); err != nil {
			logger.Debugf("[Server] 放弃来自 %s 的请求: %v", addr, err)
			return
		}
		defer s.workers.Release(1)
	}

	s.HandlePacket(ctx, w, addr, data)
}

// Shutdown 关闭监听端，并等待 Serve 在所有在途请求结束后返回
func (s *Server) Shutdown() {
	s.mu.Lock()
	pc, done := s.conn, s.done
	s.mu.Unlock()

	if pc == nil {
		return
	}
	pc.Close()
	<-done
	logger.Info("[Server] 已关闭")
}
