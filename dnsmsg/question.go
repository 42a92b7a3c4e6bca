package dnsmsg

import (
	"encoding/binary"
	"fmt"
)

// Question 报文中的第一个问题
type Question struct {
	Name  string
	Type  uint16
	Class uint16
	// Wire 原始问题部分（QNAME + QTYPE + QCLASS），合成回答时原样拷贝
	Wire []byte
}

// ParseQuestion 解析紧跟在头部之后的第一个问题
func ParseQuestion(msg []byte) (Question, error) {
	if len(msg) < HeaderSize {
		return Question{}, ErrShortMessage
	}

	name, n, err := DecodeName(msg, HeaderSize)
	if err != nil {
		return Question{}, err
	}

	end := HeaderSize + n
	if len(msg)-end < 4 {
		return Question{}, fmt.Errorf("%w: %d bytes after name", ErrMalformedQuestion, len(msg)-end)
	}

	return Question{
		Name:  name,
		Type:  binary.BigEndian.Uint16(msg[end : end+2]),
		Class: binary.BigEndian.Uint16(msg[end+2 : end+4]),
		Wire:  msg[HeaderSize : end+4],
	}, nil
}
