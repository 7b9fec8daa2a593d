package main

import (
	"errors"

	"github.com/Tsukikage7/rankstore/collections/rankindex"
	"github.com/Tsukikage7/rankstore/logger"
	"github.com/Tsukikage7/rankstore/member"
	"github.com/Tsukikage7/rankstore/metrics"
	"github.com/Tsukikage7/rankstore/tracing"
)

// envPrefix 环境变量前缀，例如 RANKSTORE_RANK_CAPACITY.
const envPrefix = "RANKSTORE"

// AppConfig 应用配置.
type AppConfig struct {
	Logger  logger.Config    `json:"logger" toml:"logger" yaml:"logger" mapstructure:"logger"`
	Metrics metrics.Config   `json:"metrics" toml:"metrics" yaml:"metrics" mapstructure:"metrics"`
	Tracing tracing.Config   `json:"tracing" toml:"tracing" yaml:"tracing" mapstructure:"tracing"`
	Rank    rankindex.Config `json:"rank" toml:"rank" yaml:"rank" mapstructure:"rank"`
	Store   StoreConfig      `json:"store" toml:"store" yaml:"store" mapstructure:"store"`
}

// StoreConfig 存储与加载配置.
type StoreConfig struct {
	// Members 启动时加载的会员文件，为空时不加载
	Members string `json:"members" toml:"members" yaml:"members" mapstructure:"members"`
	// InvariantChecks 每次插入后校验红黑树
	InvariantChecks bool `json:"invariant_checks" toml:"invariant_checks" yaml:"invariant_checks" mapstructure:"invariant_checks"`
	// Top F 命令展示人数
	Top int `json:"top" toml:"top" yaml:"top" mapstructure:"top"`
}

// defaults 返回全部配置键的默认值，环境变量只能覆盖这里登记过的键.
func defaults() map[string]any {
	log := logger.DefaultConfig()
	m := metrics.DefaultConfig()
	tr := tracing.DefaultConfig()
	rank := rankindex.DefaultConfig()

	return map[string]any{
		"logger.service_name":      log.ServiceName,
		"logger.level":             log.Level,
		"logger.format":            log.Format,
		"logger.output":            log.Output,
		"logger.log_dir":           log.LogDir,
		"logger.enable_caller":     log.EnableCaller,
		"logger.enable_stacktrace": log.EnableStacktrace,
		"logger.time_format":       log.TimeFormat,
		"metrics.enabled":          m.Enabled,
		"metrics.addr":             m.Addr,
		"metrics.path":             m.Path,
		"metrics.namespace":        m.Namespace,
		"tracing.enabled":          tr.Enabled,
		"tracing.endpoint":         tr.Endpoint,
		"tracing.sampling_rate":    tr.SamplingRate,
		"rank.capacity":            rank.Capacity,
		"rank.head":                0, // 0 由 ApplyDefaults 按 capacity 取值
		"store.members":            "",
		"store.invariant_checks":   false,
		"store.top":                member.DefaultTop,
	}
}

// ApplyDefaults 应用默认值.
func (c *AppConfig) ApplyDefaults() {
	c.Logger.ApplyDefaults()
	c.Rank.ApplyDefaults()
	if c.Store.Top <= 0 {
		c.Store.Top = member.DefaultTop
	}
}

// Validate 验证配置.
func (c *AppConfig) Validate() error {
	if err := c.Logger.Validate(); err != nil {
		return err
	}
	if err := c.Rank.Validate(); err != nil {
		return err
	}
	if c.Metrics.Enabled && c.Metrics.Addr == "" {
		return errors.New("metrics.addr is required when metrics are enabled")
	}
	return nil
}
