package metrics

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// depthBuckets 树深度分桶，覆盖百万级节点的红黑树高度.
var depthBuckets = prometheus.LinearBuckets(0, 2, 21)

// StoreCollector Prometheus 指标收集器实现.
type StoreCollector struct {
	config *Config

	// 存储指标
	insertsTotal *prometheus.CounterVec
	lookupsTotal *prometheus.CounterVec
	depth        *prometheus.HistogramVec
	nodes        prometheus.Gauge

	// 排名索引指标
	rebuildsTotal   *prometheus.CounterVec
	rebuildVisited  prometheus.Histogram
	admissionsTotal prometheus.Counter

	// 命令指标
	commandsTotal   *prometheus.CounterVec
	commandDuration *prometheus.HistogramVec

	registry *prometheus.Registry
}

var _ Collector = (*StoreCollector)(nil)

// NewPrometheus 创建 Prometheus 指标收集器.
func NewPrometheus(cfg *Config) (*StoreCollector, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	namespace := cfg.Namespace
	if namespace == "" {
		namespace = "rankstore"
	}

	// 独立注册表，避免与默认注册表冲突
	registry := prometheus.NewRegistry()

	c := &StoreCollector{config: cfg, registry: registry}

	c.insertsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "inserts_total",
			Help:      "Total number of insert attempts",
		},
		[]string{"result"},
	)

	c.lookupsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "lookups_total",
			Help:      "Total number of key lookups",
		},
		[]string{"result"},
	)

	c.depth = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "depth",
			Help:      "Tree depth reached by inserts and lookups",
			Buckets:   depthBuckets,
		},
		[]string{"op"},
	)

	c.nodes = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "nodes",
			Help:      "Number of stored entries",
		},
	)

	c.rebuildsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "rank",
			Name:      "rebuilds_total",
			Help:      "Total number of full ranking rebuilds",
		},
		[]string{"reason"},
	)

	c.rebuildVisited = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "rank",
			Name:      "rebuild_visited_nodes",
			Help:      "Nodes visited by a full ranking rebuild",
			Buckets:   prometheus.ExponentialBuckets(1, 10, 7),
		},
	)

	c.admissionsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "rank",
			Name:      "admissions_total",
			Help:      "Entries admitted into the ranking window incrementally",
		},
	)

	c.commandsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "command",
			Name:      "total",
			Help:      "Total number of dispatched commands",
		},
		[]string{"op", "result"},
	)

	c.commandDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "command",
			Name:      "duration_seconds",
			Help:      "Command handling duration in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.000001, 10, 7),
		},
		[]string{"op"},
	)

	collectors := []prometheus.Collector{
		c.insertsTotal,
		c.lookupsTotal,
		c.depth,
		c.nodes,
		c.rebuildsTotal,
		c.rebuildVisited,
		c.admissionsTotal,
		c.commandsTotal,
		c.commandDuration,
	}

	for _, collector := range collectors {
		if err := registry.Register(collector); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrRegisterMetric, err)
		}
	}

	return c, nil
}

// RecordInsert 记录插入结果与插入深度.
func (c *StoreCollector) RecordInsert(result string, depth int) {
	c.insertsTotal.WithLabelValues(result).Inc()
	c.depth.WithLabelValues("insert").Observe(float64(depth))
}

// RecordLookup 记录查找结果与查找深度.
func (c *StoreCollector) RecordLookup(result string, depth int) {
	c.lookupsTotal.WithLabelValues(result).Inc()
	c.depth.WithLabelValues("find").Observe(float64(depth))
}

// SetNodes 更新节点数.
func (c *StoreCollector) SetNodes(count int) {
	c.nodes.Set(float64(count))
}

// RecordRebuild 记录一次全量重建.
func (c *StoreCollector) RecordRebuild(reason string, visited int) {
	c.rebuildsTotal.WithLabelValues(reason).Inc()
	c.rebuildVisited.Observe(float64(visited))
}

// RecordAdmissions 累加增量入窗次数.
func (c *StoreCollector) RecordAdmissions(count int) {
	if count > 0 {
		c.admissionsTotal.Add(float64(count))
	}
}

// RecordCommand 记录命令处理结果与耗时.
func (c *StoreCollector) RecordCommand(op, result string, duration time.Duration) {
	c.commandsTotal.WithLabelValues(op, result).Inc()
	c.commandDuration.WithLabelValues(op).Observe(duration.Seconds())
}

// Registry 返回底层注册表.
func (c *StoreCollector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler 返回 metrics 的 HTTP 处理器.
func (c *StoreCollector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// Path 返回 metrics 路径.
func (c *StoreCollector) Path() string {
	if c.config.Path == "" {
		return "/metrics"
	}
	return c.config.Path
}
