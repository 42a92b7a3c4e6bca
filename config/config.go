package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Default 返回全部使用默认值的配置
func Default() *Config {
	cfg := &Config{}
	setDefaultValues(cfg)
	return cfg
}

// CreateDefaultConfig 创建默认配置文件
func CreateDefaultConfig(filePath string) error {
	return os.WriteFile(filePath, []byte(DefaultConfigContent), 0644)
}

// LoadConfig 从 YAML 文件加载配置，文件不存在时自动创建默认配置文件
func LoadConfig(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := CreateDefaultConfig(filePath); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
		data = []byte(DefaultConfigContent)
	}

	return Parse(data)
}

// Parse 解析 YAML 内容并补齐默认值
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	setDefaultValues(&cfg)
	return &cfg, nil
}

// ApplyOverrides 命令行位置参数覆盖上游地址和解析表路径，空字符串表示不覆盖
func (c *Config) ApplyOverrides(upstream, tablePath string) {
	if upstream != "" {
		c.Upstream.Server = upstream
	}
	if tablePath != "" {
		c.Table.Path = tablePath
	}
}

// ListenAddress 返回监听的 host:port
func (c *Config) ListenAddress() string {
	return net.JoinHostPort(c.DNS.ListenAddr, strconv.Itoa(c.DNS.ListenPort))
}

// UpstreamTimeout 返回上游等待超时
func (c *Config) UpstreamTimeout() time.Duration {
	return time.Duration(c.Upstream.TimeoutMs) * time.Millisecond
}

// CacheTTL 返回缓存写入使用的固定 TTL
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Cache.TTLSeconds) * time.Second
}

// ReportInterval 返回统计摘要输出间隔，0 表示关闭
func (c *Config) ReportInterval() time.Duration {
	return time.Duration(c.Stats.ReportIntervalSeconds) * time.Second
}
