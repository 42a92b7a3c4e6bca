package config

const (
	DefaultUpstream   = "223.5.5.5"
	DefaultTablePath  = "dns.txt"
	DefaultListenPort = 53
	DefaultTimeoutMs  = 5000
	DefaultCacheTTL   = 3600
	DefaultShardCount = 32
	DefaultWebAPIPort = 8080
	DefaultLogLevel   = "warn"
)

// setDefaultValues 设置配置文件中缺失字段的默认值
func setDefaultValues(cfg *Config) {
	if cfg.DNS.ListenPort == 0 {
		cfg.DNS.ListenPort = DefaultListenPort
	}

	if cfg.Upstream.Server == "" {
		cfg.Upstream.Server = DefaultUpstream
	}
	if cfg.Upstream.TimeoutMs <= 0 {
		cfg.Upstream.TimeoutMs = DefaultTimeoutMs
	}

	if cfg.Table.Path == "" {
		cfg.Table.Path = DefaultTablePath
	}

	setCacheDefaults(&cfg.Cache)

	if cfg.WebAPI.ListenPort == 0 {
		cfg.WebAPI.ListenPort = DefaultWebAPIPort
	}

	if cfg.System.MaxWorkers < 0 {
		cfg.System.MaxWorkers = 0
	}
	if cfg.System.LogLevel == "" {
		cfg.System.LogLevel = DefaultLogLevel
	}

	if cfg.Stats.ReportIntervalSeconds < 0 {
		cfg.Stats.ReportIntervalSeconds = 0
	}
}

// setCacheDefaults 设置缓存配置的默认值
func setCacheDefaults(c *CacheConfig) {
	if c.TTLSeconds <= 0 {
		c.TTLSeconds = DefaultCacheTTL
	}
	// MaxEntries 0 means unbounded, negative values are treated the same way.
	if c.MaxEntries < 0 {
		c.MaxEntries = 0
	}
	// 分片数必须是 2 的幂
	if c.ShardCount <= 0 || c.ShardCount&(c.ShardCount-1) != 0 {
		c.ShardCount = DefaultShardCount
	}
}
