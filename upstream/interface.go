package upstream

import (
	"context"
	"errors"
	"fmt"
)

// Forwarder 将原始查询报文转发给上游递归解析器，并原样返回其回复
type Forwarder interface {
	// Forward 发送一次查询并等待一个回复报文，不重试
	Forward(ctx context.Context, query []byte) ([]byte, error)

	// Address 返回服务器的显示地址 (用于日志和调试)
	Address() string

	// Protocol 返回协议类型
	Protocol() string
}

// ErrEmptyResponse 上游回复了一个空报文
var ErrEmptyResponse = errors.New("empty response from upstream")

// ForwardError 转发失败（创建套接字、发送或接收阶段）
type ForwardError struct {
	Upstream string
	Op       string // dial, send, receive
	Err      error
}

func (e *ForwardError) Error() string {
	return fmt.Sprintf("forward to %s: %s: %v", e.Upstream, e.Op, e.Err)
}

func (e *ForwardError) Unwrap() error {
	return e.Err
}
