package dnsmsg

import (
	"encoding/binary"
	"net"
)

// answerSize 压缩指针(2) + TYPE(2) + CLASS(2) + TTL(4) + RDLENGTH(2) + IPv4(4)
const answerSize = 16

// namePointer 指向头部之后的问题名称
const namePointer = 0xC000 | HeaderSize

// ResponseSize 返回给定问题长度下合成回答的字节数
func ResponseSize(questionLen int) int {
	return HeaderSize + questionLen + answerSize
}

// Synthesize 根据查询头部和原始问题部分构造一个权威 A 记录回答。
//
// 头部复制自查询，置 qr/aa/ra，计数改为 1 个问题、1 个回答（查询中的附加记录
// 不会被带回，因此 ARCount 为 0）。回答记录的名称使用指向问题名称的压缩指针。
// address 不是合法的点分 IPv4 时，数据部分为 0.0.0.0。
func Synthesize(query Header, question []byte, address string) []byte {
	h := query
	h.Response = true
	h.Authoritative = true
	h.RecursionAvailable = true
	h.QDCount = 1
	h.ANCount = 1
	h.NSCount = 0
	h.ARCount = 0

	out := make([]byte, 0, ResponseSize(len(question)))
	out = h.AppendTo(out)
	out = append(out, question...)

	out = binary.BigEndian.AppendUint16(out, namePointer)
	out = binary.BigEndian.AppendUint16(out, TypeA)
	out = binary.BigEndian.AppendUint16(out, ClassINET)
	out = binary.BigEndian.AppendUint32(out, AnswerTTL)
	out = binary.BigEndian.AppendUint16(out, net.IPv4len)
	return append(out, ipv4Bytes(address)...)
}

func ipv4Bytes(address string) []byte {
	if ip := net.ParseIP(address).To4(); ip != nil {
		return ip
	}
	return net.IPv4zero.To4()
}
