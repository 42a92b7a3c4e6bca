package config

// DefaultConfigContent 默认配置文件内容（包含详细说明）
const DefaultConfigContent = `# dnsrelay 配置文件

# DNS 监听配置
dns:
  # 监听地址（留空表示所有地址）
  listen_addr: ""
  # 监听端口（默认 53）
  listen_port: 53

# 上游递归 DNS 服务器
upstream:
  # 纯 IP 或 IP:Port
  server: "223.5.5.5"
  # 等待上游回复的超时时间（毫秒）
  timeout_ms: 5000

# 本地解析表，每行 "地址 域名"
table:
  path: "dns.txt"

# 响应缓存
cache:
  # 所有缓存条目的固定 TTL（秒），不使用记录自带的 TTL
  ttl_seconds: 3600
  # 最大条目数，0 表示不限制（大于 0 时按 LRU 淘汰）
  max_entries: 0

# 只读诊断接口
webapi:
  enabled: false
  listen_port: 8080

system:
  # 同时处理的请求上限，0 表示不限制
  max_workers: 0
  # debug / info / warn / error
  log_level: "warn"

stats:
  # 周期性输出统计摘要（秒），0 表示关闭
  report_interval_seconds: 0
`
