package upstream

import (
	"context"
	"net"
	"time"

	"github.com/miekg/dns"
)

// UDP 每次转发都新建一个 UDP 套接字，发送一次、接收一次后关闭
type UDP struct {
	address string
	timeout time.Duration
}

// NewUDP 创建 UDP 转发器，address 未带端口时补 53
func NewUDP(address string, timeout time.Duration) *UDP {
	if _, _, err := net.SplitHostPort(address); err != nil {
		address = net.JoinHostPort(address, "53")
	}
	return &UDP{address: address, timeout: timeout}
}

// Forward 实现 Forwarder。超时同时作用于 ctx 和套接字读写截止时间。
func (t *UDP) Forward(ctx context.Context, query []byte) ([]byte, error) {
	if t.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}

	client := &dns.Client{
		Net:     "udp",
		Timeout: t.timeout,
	}

	conn, err := client.DialContext(ctx, t.address)
	if err != nil {
		return nil, t.fail("dial", err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		if err := conn.SetDeadline(deadline); err != nil {
			return nil, t.fail("dial", err)
		}
	}
	// ctx 提前取消时立即打断阻塞的读
	stop := context.AfterFunc(ctx, func() {
		conn.SetDeadline(time.Now())
	})
	defer stop()

	if _, err := conn.Write(query); err != nil {
		return nil, t.fail("send", err)
	}

	buf := make([]byte, dns.DefaultMsgSize)
	n, err := conn.Read(buf)
	if err != nil {
		return nil, t.fail("receive", err)
	}
	if n == 0 {
		return nil, t.fail("receive", ErrEmptyResponse)
	}

	return buf[:n], nil
}

func (t *UDP) fail(op string, err error) error {
	return &ForwardError{Upstream: t.address, Op: op, Err: err}
}

func (t *UDP) Address() string {
	return "udp://" + t.address
}

func (t *UDP) Protocol() string {
	return "udp"
}
