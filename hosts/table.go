package hosts

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Table 本地解析表：域名 -> IPv4 地址。构造完成后只读，可被并发读取。
type Table struct {
	entries map[string]string
}

// Empty 返回一个空表
func Empty() *Table {
	return &Table{entries: make(map[string]string)}
}

// FromMap 用已有映射构造表（拷贝一份）
func FromMap(m map[string]string) *Table {
	t := &Table{entries: make(map[string]string, len(m))}
	for name, addr := range m {
		t.entries[name] = addr
	}
	return t
}

// Parse 读取 "地址 域名" 格式的记录，每行一条，行长度不设上限。
// 少于两个字段的行被跳过；重复的域名以最后一条为准。
func Parse(r io.Reader) (*Table, error) {
	t := Empty()
	reader := bufio.NewReader(r)

	for {
		line, err := reader.ReadString('\n')
		if parts := strings.Fields(line); len(parts) >= 2 {
			t.entries[parts[1]] = parts[0]
		}

		if err == io.EOF {
			return t, nil
		}
		if err != nil {
			return nil, fmt.Errorf("error reading table: %w", err)
		}
	}
}

// LoadFile 从文件加载解析表
func LoadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open table file: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

// Lookup 精确匹配（区分大小写）
func (t *Table) Lookup(name string) (string, bool) {
	addr, ok := t.entries[name]
	return addr, ok
}

// Len 返回记录数
func (t *Table) Len() int {
	return len(t.entries)
}
