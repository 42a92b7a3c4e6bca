package dnsmsg

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMalformedName 域名标签越界或使用了不支持的压缩指针
	ErrMalformedName = errors.New("malformed domain name")
	// ErrMalformedQuestion 问题部分缺少 QTYPE/QCLASS
	ErrMalformedQuestion = errors.New("malformed question section")
)

// DecodeName 从 off 开始读取以长度为前缀的标签，直到遇到长度为 0 的标签。
// 返回点分形式的域名以及消耗的字节数（包含结尾的 0 字节）。
// 查询中的压缩指针不受支持，按格式错误处理。
func DecodeName(msg []byte, off int) (string, int, error) {
	if off < 0 || off >= len(msg) {
		return "", 0, fmt.Errorf("%w: offset %d outside %d-byte message", ErrMalformedName, off, len(msg))
	}

	var sb strings.Builder
	pos := off
	for {
		if pos >= len(msg) {
			return "", 0, fmt.Errorf("%w: missing terminating label", ErrMalformedName)
		}
		length := int(msg[pos])
		pos++
		if length == 0 {
			break
		}
		if length&0xC0 != 0 {
			return "", 0, fmt.Errorf("%w: compression pointer at offset %d", ErrMalformedName, pos-1)
		}
		if length > len(msg)-pos {
			return "", 0, fmt.Errorf("%w: label of %d bytes exceeds remaining %d", ErrMalformedName, length, len(msg)-pos)
		}
		if sb.Len() > 0 {
			sb.WriteByte('.')
		}
		sb.Write(msg[pos : pos+length])
		pos += length
	}

	return sb.String(), pos - off, nil
}

// EncodeName 把点分域名编码为线上格式。空域名编码为单个 0 字节。
// 标签长度不做校验。
func EncodeName(name string) []byte {
	name = strings.TrimSuffix(name, ".")
	if name == "" {
		return []byte{0}
	}

	out := make([]byte, 0, len(name)+2)
	for _, label := range strings.Split(name, ".") {
		out = append(out, byte(len(label)))
		out = append(out, label...)
	}
	return append(out, 0)
}
