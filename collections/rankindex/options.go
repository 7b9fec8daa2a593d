package rankindex

// Reason 全量重建原因.
type Reason string

// 重建原因常量.
const (
	// ReasonManual 调用方显式重建，例如批量加载完成后.
	ReasonManual Reason = "manual"
	// ReasonHead 失效范围进入受保护头部.
	ReasonHead Reason = "head"
	// ReasonRead TopN 请求超出精确前缀，读取前同步.
	ReasonRead Reason = "read"
)

// RebuildHook 全量重建回调，visited 为遍历的节点数.
type RebuildHook func(reason Reason, visited int)

// options 可选参数.
type options struct {
	onRebuild RebuildHook
}

// Option 配置选项函数.
type Option func(*options)

// WithRebuildHook 设置全量重建回调.
func WithRebuildHook(hook RebuildHook) Option {
	return func(o *options) {
		o.onRebuild = hook
	}
}
