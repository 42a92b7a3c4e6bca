package dnsmsg

import (
	"encoding/binary"
	"errors"
)

const (
	// HeaderSize DNS 报文头部固定长度
	HeaderSize = 12
	// MaxUDPSize 监听端接收的最大 UDP 报文长度
	MaxUDPSize = 512

	TypeA     uint16 = 1
	ClassINET uint16 = 1

	// AnswerTTL 本地合成回答使用的 TTL（秒）
	AnswerTTL uint32 = 3600
)

var (
	// ErrShortMessage 报文长度不足一个头部
	ErrShortMessage = errors.New("dns message shorter than header")
)

// 第 3、4 字节中各标志位的掩码
const (
	flagQR = 1 << 15
	flagAA = 1 << 10
	flagTC = 1 << 9
	flagRD = 1 << 8
	flagRA = 1 << 7
	flagZ  = 1 << 6
	flagAD = 1 << 5
	flagCD = 1 << 4

	opcodeShift = 11
	opcodeMask  = 0xF
	rcodeMask   = 0xF
)

// Header DNS 报文头部
type Header struct {
	ID                 uint16
	Response           bool // qr
	Opcode             uint8
	Authoritative      bool // aa
	Truncated          bool // tc
	RecursionDesired   bool // rd
	RecursionAvailable bool // ra
	Zero               bool // z, must be zero
	AuthenticatedData  bool // ad
	CheckingDisabled   bool // cd
	Rcode              uint8

	QDCount uint16
	ANCount uint16
	NSCount uint16
	ARCount uint16
}

// ParseHeader 解析报文前 12 字节
func ParseHeader(msg []byte) (Header, error) {
	if len(msg) < HeaderSize {
		return Header{}, ErrShortMessage
	}

	flags := binary.BigEndian.Uint16(msg[2:4])
	return Header{
		ID:                 binary.BigEndian.Uint16(msg[0:2]),
		Response:           flags&flagQR != 0,
		Opcode:             uint8(flags>>opcodeShift) & opcodeMask,
		Authoritative:      flags&flagAA != 0,
		Truncated:          flags&flagTC != 0,
		RecursionDesired:   flags&flagRD != 0,
		RecursionAvailable: flags&flagRA != 0,
		Zero:               flags&flagZ != 0,
		AuthenticatedData:  flags&flagAD != 0,
		CheckingDisabled:   flags&flagCD != 0,
		Rcode:              uint8(flags) & rcodeMask,
		QDCount:            binary.BigEndian.Uint16(msg[4:6]),
		ANCount:            binary.BigEndian.Uint16(msg[6:8]),
		NSCount:            binary.BigEndian.Uint16(msg[8:10]),
		ARCount:            binary.BigEndian.Uint16(msg[10:12]),
	}, nil
}

func (h Header) flags() uint16 {
	var f uint16
	if h.Response {
		f |= flagQR
	}
	f |= uint16(h.Opcode&opcodeMask) << opcodeShift
	if h.Authoritative {
		f |= flagAA
	}
	if h.Truncated {
		f |= flagTC
	}
	if h.RecursionDesired {
		f |= flagRD
	}
	if h.RecursionAvailable {
		f |= flagRA
	}
	if h.Zero {
		f |= flagZ
	}
	if h.AuthenticatedData {
		f |= flagAD
	}
	if h.CheckingDisabled {
		f |= flagCD
	}
	f |= uint16(h.Rcode & rcodeMask)
	return f
}

// AppendTo 将头部编码追加到 b 之后
func (h Header) AppendTo(b []byte) []byte {
	b = binary.BigEndian.AppendUint16(b, h.ID)
	b = binary.BigEndian.AppendUint16(b, h.flags())
	b = binary.BigEndian.AppendUint16(b, h.QDCount)
	b = binary.BigEndian.AppendUint16(b, h.ANCount)
	b = binary.BigEndian.AppendUint16(b, h.NSCount)
	return binary.BigEndian.AppendUint16(b, h.ARCount)
}

// Pack 编码为 12 字节
func (h Header) Pack() []byte {
	return h.AppendTo(make([]byte, 0, HeaderSize))
}

// IsResponse reports whether msg carries the qr bit. Short messages report false.
func IsResponse(msg []byte) bool {
	return len(msg) >= HeaderSize && binary.BigEndian.Uint16(msg[2:4])&flagQR != 0
}

// SetID 原地改写事务 ID
func SetID(msg []byte, id uint16) {
	if len(msg) < 2 {
		return
	}
	binary.BigEndian.PutUint16(msg[0:2], id)
}
