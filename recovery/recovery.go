// Package recovery 把 panic 转换为错误并记录堆栈.
package recovery

import (
	"context"
	"fmt"
	"runtime"

	"github.com/Tsukikage7/rankstore/logger"
)

// Handler 是 panic 处理函数，返回值替代默认的 *PanicError.
type Handler func(ctx context.Context, p any, stack []byte) error

// Options 配置选项.
type Options struct {
	// Logger 日志记录器，为空时不记录.
	Logger logger.Logger

	// Handler 自定义 panic 处理函数.
	Handler Handler

	// StackSize 堆栈大小，默认 64KB.
	StackSize int
}

// Option 是配置函数.
type Option func(*Options)

// WithLogger 设置日志记录器.
func WithLogger(l logger.Logger) Option {
	return func(o *Options) {
		o.Logger = l
	}
}

// WithHandler 设置自定义 panic 处理函数.
func WithHandler(h Handler) Option {
	return func(o *Options) {
		o.Handler = h
	}
}

// WithStackSize 设置堆栈大小.
func WithStackSize(size int) Option {
	return func(o *Options) {
		if size > 0 {
			o.StackSize = size
		}
	}
}

func applyOptions(opts []Option) *Options {
	o := &Options{StackSize: 64 * 1024}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func captureStack(size int) []byte {
	stack := make([]byte, size)
	n := runtime.Stack(stack, false)
	return stack[:n]
}

// PanicError 表示 panic 错误.
type PanicError struct {
	// Value 是 panic 的值.
	Value any
	// Stack 是堆栈信息.
	Stack []byte
}

// Error 实现 error 接口.
func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// Unwrap 返回原始错误（如果 panic 值是 error）.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// Guard 执行 fn，fn 发生 panic 时返回 *PanicError（或 Handler 的返回值）.
func Guard(ctx context.Context, fn func() error, opts ...Option) (err error) {
	defer func() {
		p := recover()
		if p == nil {
			return
		}
		o := applyOptions(opts)
		err = recovered(ctx, o, p, captureStack(o.StackSize))
	}()
	return fn()
}

func recovered(ctx context.Context, o *Options, p any, stack []byte) error {
	if o.Logger != nil {
		o.Logger.WithContext(ctx).With(
			logger.Any("panic", p),
			logger.String("stack", string(stack)),
		).Error("panic recovered")
	}
	if o.Handler != nil {
		return o.Handler(ctx, p, stack)
	}
	return &PanicError{Value: p, Stack: stack}
}
