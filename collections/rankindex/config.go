package rankindex

// 默认窗口参数.
const (
	DefaultCapacity = 10
	DefaultHead     = 5
)

// Config 排名索引配置.
type Config struct {
	// Capacity 排名窗口大小 K
	Capacity int `json:"capacity" toml:"capacity" yaml:"capacity" mapstructure:"capacity"`

	// Head 受保护的头部长度，头部必须始终精确，落入头部的失效会立即触发全量重建.
	// 与 Capacity 相互独立，要求 1 <= Head <= Capacity
	Head int `json:"head" toml:"head" yaml:"head" mapstructure:"head"`
}

// DefaultConfig 返回默认配置.
func DefaultConfig() *Config {
	config := &Config{}
	config.ApplyDefaults()
	return config
}

// ApplyDefaults 应用默认值.
func (c *Config) ApplyDefaults() {
	if c.Capacity == 0 {
		c.Capacity = DefaultCapacity
	}
	if c.Head == 0 && c.Capacity > 0 {
		c.Head = min(DefaultHead, c.Capacity)
	}
}

// Validate 验证配置.
func (c *Config) Validate() error {
	if c == nil {
		return ErrNilConfig
	}
	if c.Capacity < 0 {
		return &ConfigError{Field: "capacity", Message: "capacity must be positive"}
	}
	if c.Head < 0 {
		return &ConfigError{Field: "head", Message: "head must be positive"}
	}
	if c.Capacity > 0 && c.Head > c.Capacity {
		return &ConfigError{Field: "head", Message: "head cannot exceed capacity"}
	}
	return nil
}
