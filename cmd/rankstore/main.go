// Command rankstore 加载会员文件后从标准输入读取命令，结果写到标准输出.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/Tsukikage7/rankstore/config"
	"github.com/Tsukikage7/rankstore/dispatcher"
	"github.com/Tsukikage7/rankstore/loader"
	"github.com/Tsukikage7/rankstore/logger"
	"github.com/Tsukikage7/rankstore/member"
	"github.com/Tsukikage7/rankstore/metrics"
	"github.com/Tsukikage7/rankstore/rankstore"
	"github.com/Tsukikage7/rankstore/recovery"
	"github.com/Tsukikage7/rankstore/tracing"
)

var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "rankstore: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig 解析命令行参数并加载配置.
func loadConfig(argv []string) (*AppConfig, error) {
	fs := pflag.NewFlagSet("rankstore", pflag.ContinueOnError)
	configPath := fs.StringP("config", "c", "", "配置文件路径 (yaml/json/toml)")
	fs.StringP("members", "m", "", "启动时加载的会员文件")
	fs.String("metrics-addr", "", "指标服务监听地址，设置后启用 /metrics")
	fs.String("log-level", "", "日志级别 (debug/info/warn/error)")
	if err := fs.Parse(argv); err != nil {
		return nil, err
	}

	opts := []config.Option{
		config.WithEnvPrefix(envPrefix),
		config.WithDefaults(defaults()),
	}
	// 只绑定显式设置的参数
	for key, name := range map[string]string{
		"store.members": "members",
		"metrics.addr":  "metrics-addr",
		"logger.level":  "log-level",
	} {
		if fs.Changed(name) {
			opts = append(opts, config.WithFlag(key, fs.Lookup(name)))
		}
	}

	cfg, err := config.Load[AppConfig](*configPath, opts...)
	if err != nil {
		return nil, err
	}
	if fs.Changed("metrics-addr") {
		cfg.Metrics.Enabled = true
	}
	return cfg, nil
}

func run(ctx context.Context, argv []string, stdin io.Reader, stdout io.Writer) error {
	cfg, err := loadConfig(argv)
	if err != nil {
		return err
	}

	log, err := logger.NewLogger(&cfg.Logger)
	if err != nil {
		return err
	}
	defer log.Close()

	tp, err := tracing.NewTracer(&cfg.Tracing, cfg.Logger.ServiceName, version)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(shutdownCtx); err != nil {
			log.Warnf("关闭链路追踪失败: %v", err)
		}
	}()

	collector, err := metrics.NewMetrics(&cfg.Metrics)
	if err != nil {
		return err
	}
	if cfg.Metrics.Enabled {
		srv := metrics.NewServer(&cfg.Metrics, collector)
		srv.Handler = recovery.HTTPMiddleware(recovery.WithLogger(log))(srv.Handler)
		go func() {
			log.Infof("指标服务监听 %s%s", srv.Addr, collector.Path())
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Errorf("指标服务退出: %v", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	store, err := member.NewStore(
		rankstore.WithLogger(log),
		rankstore.WithMetrics(collector),
		rankstore.WithRankConfig(&cfg.Rank),
		rankstore.WithInvariantChecks(cfg.Store.InvariantChecks),
	)
	if err != nil {
		return err
	}
	svc := member.NewService(store, member.WithLogger(log))

	if cfg.Store.Members != "" {
		if _, err := loader.LoadFile(ctx, svc, cfg.Store.Members, loader.WithLogger(log)); err != nil {
			return fmt.Errorf("加载会员文件: %w", err)
		}
	}

	d := dispatcher.New(svc,
		dispatcher.WithLogger(log),
		dispatcher.WithMetrics(collector),
		dispatcher.WithTracerProvider(tp),
		dispatcher.WithTop(cfg.Store.Top),
	)
	return d.Run(ctx, stdin, stdout)
}
