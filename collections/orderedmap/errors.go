package orderedmap

import "errors"

// 预定义错误常量.
var (
	// ErrAlreadyExists 键已存在，插入未执行.
	ErrAlreadyExists = errors.New("orderedmap: 键已存在")

	// ErrNotFound 键不存在.
	ErrNotFound = errors.New("orderedmap: 键不存在")

	// ErrCorrupted 红黑树性质被破坏.
	ErrCorrupted = errors.New("orderedmap: 红黑树结构损坏")
)
