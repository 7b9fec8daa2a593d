package rankindex

import (
	"errors"
	"fmt"
)

// 预定义错误常量.
var (
	// ErrNilConfig 配置为空.
	ErrNilConfig = errors.New("rankindex: 配置为空")

	// ErrNilTree 数据源为空.
	ErrNilTree = errors.New("rankindex: 数据源为空")

	// ErrNilScorer 排名取值函数为空.
	ErrNilScorer = errors.New("rankindex: 排名取值函数为空")
)

// ConfigError 配置错误.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("rankindex config error [%s]: %s", e.Field, e.Message)
}
