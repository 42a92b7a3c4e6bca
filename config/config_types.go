package config

// Config 主配置结构
type Config struct {
	DNS      DNSConfig      `yaml:"dns" json:"dns"`
	Upstream UpstreamConfig `yaml:"upstream" json:"upstream"`
	Table    TableConfig    `yaml:"table" json:"table"`
	Cache    CacheConfig    `yaml:"cache" json:"cache"`
	WebAPI   WebAPIConfig   `yaml:"webapi" json:"webapi"`
	System   SystemConfig   `yaml:"system" json:"system"`
	Stats    StatsConfig    `yaml:"stats" json:"stats"`
}

// DNSConfig 监听端配置
type DNSConfig struct {
	ListenAddr string `yaml:"listen_addr,omitempty" json:"listen_addr"`
	ListenPort int    `yaml:"listen_port,omitempty" json:"listen_port"`
}

// UpstreamConfig 上游递归解析器配置
type UpstreamConfig struct {
	// 纯 IP 或 IP:Port，未带端口时使用 53
	Server    string `yaml:"server,omitempty" json:"server"`
	TimeoutMs int    `yaml:"timeout_ms,omitempty" json:"timeout_ms"`
}

// TableConfig 本地解析表配置
type TableConfig struct {
	Path string `yaml:"path,omitempty" json:"path"`
}

// CacheConfig 响应缓存配置
type CacheConfig struct {
	// 所有写入缓存的响应使用同一个固定 TTL（本地与上游一致）
	TTLSeconds int `yaml:"ttl_seconds,omitempty" json:"ttl_seconds"`
	// 0 表示不限制条目数；大于 0 时启用 LRU 淘汰
	MaxEntries int `yaml:"max_entries,omitempty" json:"max_entries"`
	ShardCount int `yaml:"shard_count,omitempty" json:"shard_count"`
}

// WebAPIConfig 只读诊断接口配置
type WebAPIConfig struct {
	Enabled    bool `yaml:"enabled" json:"enabled"`
	ListenPort int  `yaml:"listen_port,omitempty" json:"listen_port"`
}

// SystemConfig 系统资源配置
type SystemConfig struct {
	// 0 表示每个报文一个 goroutine，不设上限
	MaxWorkers int    `yaml:"max_workers,omitempty" json:"max_workers"`
	LogLevel   string `yaml:"log_level,omitempty" json:"log_level"`
}

// StatsConfig 统计配置
type StatsConfig struct {
	// 周期性输出统计摘要的间隔，0 表示关闭
	ReportIntervalSeconds int `yaml:"report_interval_seconds,omitempty" json:"report_interval_seconds"`
}
