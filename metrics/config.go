package metrics

// Config 指标监控配置.
type Config struct {
	// Enabled 是否通过 HTTP 暴露指标
	Enabled bool `json:"enabled" toml:"enabled" yaml:"enabled" mapstructure:"enabled"`
	// Addr 指标服务监听地址
	Addr string `json:"addr" toml:"addr" yaml:"addr" mapstructure:"addr"`
	// Path 指标暴露路径，默认 /metrics
	Path string `json:"path" toml:"path" yaml:"path" mapstructure:"path"`
	// Namespace 指标命名空间
	Namespace string `json:"namespace" toml:"namespace" yaml:"namespace" mapstructure:"namespace"`
}

// DefaultConfig 返回默认配置.
func DefaultConfig() *Config {
	return &Config{
		Addr:      ":9090",
		Path:      "/metrics",
		Namespace: "rankstore",
	}
}
