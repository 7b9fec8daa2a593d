// Package metrics 提供 Prometheus 指标收集功能.
package metrics

import (
	"net/http"
	"time"
)

// 操作结果标签.
const (
	ResultOK        = "ok"
	ResultDuplicate = "duplicate"
	ResultNotFound  = "not_found"
	ResultInvalid   = "invalid"
	ResultPanic     = "panic"
)

// Collector 指标收集器接口.
type Collector interface {
	// 存储指标
	RecordInsert(result string, depth int)
	RecordLookup(result string, depth int)
	SetNodes(count int)

	// 排名索引指标
	RecordRebuild(reason string, visited int)
	RecordAdmissions(count int)

	// 命令指标
	RecordCommand(op, result string, duration time.Duration)

	// Handler
	Handler() http.Handler
	Path() string
}

// NewMetrics 创建指标收集器.
func NewMetrics(cfg *Config) (*StoreCollector, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	return NewPrometheus(cfg)
}
