// Package tracing 初始化 OpenTelemetry 链路追踪.
//
// 启用时通过 OTLP/HTTP 导出 span，并注册为全局 TracerProvider.
package tracing

// Config 链路追踪配置.
type Config struct {
	// Enabled 是否启用链路追踪
	Enabled bool `json:"enabled" toml:"enabled" yaml:"enabled" mapstructure:"enabled"`
	// Endpoint OTLP Collector 地址，可带 http:// 或 https:// 前缀
	Endpoint string `json:"endpoint" toml:"endpoint" yaml:"endpoint" mapstructure:"endpoint"`
	// Headers 请求头[可选]
	Headers map[string]string `json:"headers" toml:"headers" yaml:"headers" mapstructure:"headers"`
	// SamplingRate 采样率 (0.0-1.0]，超出范围按 1.0 处理
	SamplingRate float64 `json:"sampling_rate" toml:"sampling_rate" yaml:"sampling_rate" mapstructure:"sampling_rate"`
}

// DefaultConfig 返回默认配置（关闭）.
func DefaultConfig() *Config {
	return &Config{
		Endpoint:     "localhost:4318",
		SamplingRate: 1.0,
	}
}
