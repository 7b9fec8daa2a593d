package config

import (
	"strings"

	"github.com/spf13/pflag"
)

// Options 配置加载选项.
type Options struct {
	// EnvPrefix 环境变量前缀，例如 "RANKSTORE" 会将 RANKSTORE_RANK_CAPACITY 映射到 rank.capacity
	EnvPrefix string

	// EnvKeyReplacer 环境变量键替换器，默认将 . 替换为 _
	EnvKeyReplacer *strings.Replacer

	// ConfigType 显式指定配置文件类型（yaml, json, toml 等）
	ConfigType string

	// Defaults 默认配置值，环境变量只能覆盖已知的键
	Defaults map[string]any

	// Flags 绑定到配置键的命令行参数
	Flags map[string]*pflag.Flag
}

// DefaultOptions 返回默认选项.
func DefaultOptions() *Options {
	return &Options{
		EnvKeyReplacer: strings.NewReplacer(".", "_"),
	}
}

// Option 配置选项函数.
type Option func(*Options)

// WithEnvPrefix 设置环境变量前缀.
func WithEnvPrefix(prefix string) Option {
	return func(o *Options) {
		o.EnvPrefix = prefix
	}
}

// WithDefaults 设置默认值.
func WithDefaults(defaults map[string]any) Option {
	return func(o *Options) {
		o.Defaults = defaults
	}
}

// WithConfigType 显式指定配置文件类型.
func WithConfigType(configType string) Option {
	return func(o *Options) {
		o.ConfigType = configType
	}
}

// WithFlag 将命令行参数绑定到配置键，参数被显式设置时优先于其他来源.
func WithFlag(key string, flag *pflag.Flag) Option {
	return func(o *Options) {
		if flag == nil {
			return
		}
		if o.Flags == nil {
			o.Flags = make(map[string]*pflag.Flag)
		}
		o.Flags[key] = flag
	}
}
