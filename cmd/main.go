package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"dnsrelay/cache"
	"dnsrelay/config"
	"dnsrelay/dnsserver"
	"dnsrelay/hosts"
	"dnsrelay/logger"
	"dnsrelay/stats"
	"dnsrelay/upstream"
	"dnsrelay/webapi"

	"golang.org/x/sync/errgroup"
)

func main() {
	// 定义命令行参数
	debug := flag.Bool("d", false, "输出调试信息（info 级别）")
	debugVerbose := flag.Bool("dd", false, "输出全部调试信息（debug 级别）")
	configPath := flag.String("c", "", "配置文件路径（默认：使用内置配置）")
	help := flag.Bool("h", false, "显示帮助信息")

	flag.Usage = printHelp
	flag.Parse()

	if *help {
		printHelp()
		os.Exit(0)
	}

	// 位置参数：[上游地址 [解析表路径]]
	args := flag.Args()
	if len(args) > 2 {
		fmt.Fprintf(os.Stderr, "错误：位置参数过多\n\n")
		printHelp()
		os.Exit(1)
	}
	var upstreamArg, tableArg string
	if len(args) > 0 {
		upstreamArg = args[0]
	}
	if len(args) > 1 {
		tableArg = args[1]
	}

	// 加载配置（先加载配置以获取日志级别设置）
	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.LoadConfig(*configPath)
		if err != nil {
			logger.Fatalf("Failed to load config: %v", err)
		}
	}
	cfg.ApplyOverrides(upstreamArg, tableArg)

	// 命令行调试开关优先于配置文件
	switch {
	case *debugVerbose:
		logger.SetLevel(logger.VerbosityLevel(2))
	case *debug:
		logger.SetLevel(logger.VerbosityLevel(1))
	default:
		logger.SetLevel(cfg.System.LogLevel)
	}
	logger.Infof("Log level set to: %s", logger.GetLevel())

	// 本地解析表只在启动时加载一次，之后只读
	table, err := hosts.LoadFile(cfg.Table.Path)
	if err != nil {
		logger.Warnf("Failed to load table %s, continuing with an empty table: %v", cfg.Table.Path, err)
		table = hosts.Empty()
	} else {
		logger.Infof("Loaded %d entries from %s", table.Len(), cfg.Table.Path)
	}

	store, err := cache.New(&cfg.Cache)
	if err != nil {
		logger.Fatalf("Failed to create cache: %v", err)
	}

	fwd := upstream.NewUDP(cfg.Upstream.Server, cfg.UpstreamTimeout())
	s := stats.NewStats()
	dnsServer := dnsserver.NewServer(cfg, table, store, fwd, s)

	fmt.Printf("DNS relay started on %s\n", cfg.ListenAddress())
	fmt.Printf("Upstream server: %s, table: %s\n", fwd.Address(), cfg.Table.Path)

	// 设置优雅停机
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return dnsServer.ListenAndServe(gctx)
	})
	g.Go(func() error {
		return s.RunReporter(gctx, cfg.ReportInterval())
	})
	if cfg.WebAPI.Enabled {
		webServer := webapi.NewServer(cfg, dnsServer)
		g.Go(func() error {
			return webServer.Run(gctx)
		})
	}

	if err := g.Wait(); err != nil {
		logger.Fatalf("Server stopped: %v", err)
	}
	logger.Info("Server gracefully stopped.")
}

func printHelp() {
	fmt.Print(`dnsrelay - DNS 中继服务器

使用方法：
  dnsrelay [选项] [上游地址 [解析表路径]]

选项：
  -d              输出调试信息
  -dd             输出全部调试信息
  -c <路径>       配置文件路径（不存在时自动生成默认配置）
  -h              显示此帮助信息

位置参数：
  上游地址        上游 DNS 服务器，IP 或 IP:Port（默认：223.5.5.5）
  解析表路径      本地解析表文件，每行 "IP 域名"（默认：dns.txt）

示例：
  # 使用默认上游和解析表
  dnsrelay

  # 指定上游和解析表，输出全部调试信息
  dnsrelay -dd 8.8.8.8 ./dns.txt

  # 使用配置文件
  dnsrelay -c config.yaml
`)
}
