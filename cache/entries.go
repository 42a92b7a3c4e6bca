package cache

import "time"

// Entry 缓存项：原始响应字节及其绝对过期时间。写入后不再修改。
type Entry struct {
	Response []byte
	Expiry   time.Time
}

// Valid reports whether the entry may still be served at now (strictly before expiry).
func (e *Entry) Valid(now time.Time) bool {
	return now.Before(e.Expiry)
}

func newEntry(resp []byte, now time.Time, ttl time.Duration) *Entry {
	return &Entry{
		Response: append([]byte(nil), resp...),
		Expiry:   now.Add(ttl),
	}
}

// response 返回响应的副本，调用方可以自由修改（例如改写事务 ID）
func (e *Entry) response() []byte {
	return append([]byte(nil), e.Response...)
}
