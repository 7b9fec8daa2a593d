package dispatcher

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/Tsukikage7/rankstore/logger"
	"github.com/Tsukikage7/rankstore/member"
	"github.com/Tsukikage7/rankstore/metrics"
)

// tracerName 命令 span 所属的 instrumentation 名称.
const tracerName = "github.com/Tsukikage7/rankstore/dispatcher"

type options struct {
	logger   logger.Logger
	metrics  metrics.Collector
	provider trace.TracerProvider
	top      int
}

func defaultOptions() *options {
	return &options{
		logger: logger.NewNop(),
		top:    member.DefaultTop,
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

// WithTracerProvider 设置 TracerProvider，默认使用全局 provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *options) {
		o.provider = tp
	}
}

// WithTop 设置 F 命令展示的人数.
func WithTop(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.top = n
		}
	}
}

func (o *options) tracer() trace.Tracer {
	if o.provider == nil {
		return otel.GetTracerProvider().Tracer(tracerName)
	}
	return o.provider.Tracer(tracerName)
}
