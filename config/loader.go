package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// Load 加载配置.
//
// configPath 为空时只使用默认值、环境变量与命令行参数.
// 配置类型实现 Defaulter 时先补全默认值，实现 Validatable 时再做验证.
func Load[T any](configPath string, opts ...Option) (*T, error) {
	options := buildOptions(opts)
	v := viper.New()
	if err := applyOptions(v, options); err != nil {
		return nil, err
	}

	if configPath != "" {
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, configPath)
		}

		v.SetConfigFile(configPath)
		switch {
		case options.ConfigType != "":
			v.SetConfigType(options.ConfigType)
		case GetConfigType(configPath) == "":
			return nil, fmt.Errorf("%w: %s", ErrInvalidType, configPath)
		}

		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrReadConfig, err)
		}
	}

	return unmarshalAndValidate[T](v)
}

func buildOptions(opts []Option) *Options {
	options := DefaultOptions()
	for _, opt := range opts {
		opt(options)
	}
	return options
}

// applyOptions 应用通用选项到 viper 实例.
func applyOptions(v *viper.Viper, options *Options) error {
	for key, value := range options.Defaults {
		v.SetDefault(key, value)
	}

	if options.EnvPrefix != "" {
		v.SetEnvPrefix(options.EnvPrefix)
	}
	if options.EnvKeyReplacer != nil {
		v.SetEnvKeyReplacer(options.EnvKeyReplacer)
	}
	v.AutomaticEnv()

	for key, flag := range options.Flags {
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("%w: %v", ErrReadConfig, err)
		}
	}
	return nil
}

// unmarshalAndValidate 解析配置并验证.
func unmarshalAndValidate[T any](v *viper.Viper) (*T, error) {
	config := new(T)
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnmarshal, err)
	}

	if d, ok := any(config).(Defaulter); ok {
		d.ApplyDefaults()
	}
	if validator, ok := any(config).(Validatable); ok {
		if err := validator.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrValidation, err)
		}
	}

	return config, nil
}
