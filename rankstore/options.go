package rankstore

import (
	"github.com/Tsukikage7/rankstore/collections/rankindex"
	"github.com/Tsukikage7/rankstore/logger"
	"github.com/Tsukikage7/rankstore/metrics"
)

// options 存储可选参数.
type options struct {
	logger    logger.Logger
	metrics   metrics.Collector
	rank      *rankindex.Config
	checks    bool
	onRebuild rankindex.RebuildHook
}

func defaultOptions() *options {
	return &options{
		logger: logger.NewNop(),
		rank:   rankindex.DefaultConfig(),
	}
}

// Option 配置选项函数.
type Option func(*options)

// WithLogger 设置日志记录器.
func WithLogger(log logger.Logger) Option {
	return func(o *options) {
		if log != nil {
			o.logger = log
		}
	}
}

// WithMetrics 设置指标收集器.
func WithMetrics(c metrics.Collector) Option {
	return func(o *options) {
		o.metrics = c
	}
}

// WithRankConfig 设置排名窗口参数.
func WithRankConfig(cfg *rankindex.Config) Option {
	return func(o *options) {
		o.rank = cfg
	}
}

// WithInvariantChecks 每次插入后校验红黑树性质，用于测试与排查问题.
func WithInvariantChecks(enabled bool) Option {
	return func(o *options) {
		o.checks = enabled
	}
}

// WithRebuildHook 设置全量重建回调，在日志与指标记录之后调用.
func WithRebuildHook(hook rankindex.RebuildHook) Option {
	return func(o *options) {
		o.onRebuild = hook
	}
}
