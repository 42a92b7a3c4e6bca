package dnsserver

import (
	"context"
	"net"

	"dnsrelay/dnsmsg"
	"dnsrelay/logger"

	"github.com/miekg/dns"
)

// HandlePacket 处理一个完整的查询报文：
// 解析头部 -> 查缓存 -> 查本地表（命中则合成回答）-> 未命中则转发上游 -> 回复并写缓存。
//
// 任何失败都只影响当前请求：报文被静默丢弃，不向客户端返回错误码，
// 也不会写入缓存。data 归本次调用独占。
func (s *Server) HandlePacket(ctx context.Context, w PacketWriter, addr net.Addr, data []byte) {
	s.stats.IncQueries()

	header, err := dnsmsg.ParseHeader(data)
	if err != nil {
		s.stats.IncMalformed()
		logger.Debugf("[handleQuery] 丢弃来自 %s 的报文: %v", addr, err)
		return
	}

	// 已经是响应报文，不作处理
	if header.Response {
		s.stats.IncIgnored()
		logger.Debugf("[handleQuery] 忽略来自 %s 的响应报文 (id=%d)", addr, header.ID)
		return
	}

	question, err := dnsmsg.ParseQuestion(data)
	if err != nil {
		s.stats.IncMalformed()
		logger.Debugf("[handleQuery] 无法解析来自 %s 的问题: %v", addr, err)
		return
	}

	domain := question.Name
	logger.Debugf("[handleQuery] 查询: %s (type=%s) from %s", domain, dns.TypeToString[question.Type], addr)

	// ========== 缓存 ==========
	if resp, ok := s.cache.Get(domain); ok {
		s.stats.IncCacheHits()
		// 缓存中保存的是首次查询的事务 ID，回复前改写为当前查询的 ID
		dnsmsg.SetID(resp, header.ID)
		logger.Debugf("[handleQuery] 缓存命中: %s", domain)
		s.reply(w, addr, resp)
		return
	}
	s.stats.IncCacheMisses()

	// ========== 本地解析表 ==========
	if ip, ok := s.table.Lookup(domain); ok {
		s.stats.IncTableHits()
		logger.Debugf("[handleQuery] 本地表命中: %s -> %s", domain, ip)

		resp := dnsmsg.Synthesize(header, question.Wire, ip)
		s.reply(w, addr, resp)
		s.cache.Put(domain, resp, s.cacheTTL)
		return
	}

	// ========== 转发上游 ==========
	logger.Debugf("[handleQuery] 本地未找到 %s，转发至 %s", domain, s.forwarder.Address())
	s.stats.IncForwards()

	resp, err := s.forwarder.Forward(ctx, data)
	if err != nil || len(resp) == 0 {
		s.stats.IncForwardFailures()
		logger.Warnf("[handleQuery] 上游查询失败: %s: %v", domain, err)
		return
	}

	logger.Debugf("[handleQuery] 上游回复 %s，长度: %d", domain, len(resp))
	s.reply(w, addr, resp)
	s.cache.Put(domain, resp, s.cacheTTL)
}

// reply 通过共享监听端发送回复
func (s *Server) reply(w PacketWriter, addr net.Addr, resp []byte) {
	if _, err := w.WriteTo(resp, addr); err != nil {
		s.stats.IncSendFailures()
		logger.Errorf("[handleQuery] 发送回复到 %s 失败: %v", addr, err)
		return
	}
	s.stats.IncRepliesSent()
	logger.Debugf("[handleQuery] 发送响应给 %s，长度: %d", addr, len(resp))
}
