package rankstore

import "github.com/Tsukikage7/rankstore/collections/orderedmap"

// 存储层错误，与 orderedmap 中的哨兵错误相同，可直接用 errors.Is 比较.
var (
	// ErrAlreadyExists 键已存在，插入未执行.
	ErrAlreadyExists = orderedmap.ErrAlreadyExists

	// ErrNotFound 键不存在.
	ErrNotFound = orderedmap.ErrNotFound

	// ErrCorrupted 开启结构校验时发现红黑树性质被破坏.
	ErrCorrupted = orderedmap.ErrCorrupted
)
