package orderedmap

import "cmp"

// Comparator 比较函数.
// 返回值: 负数(a<b), 0(a==b), 正数(a>b).
type Comparator[K any] func(a, b K) int

// OrderedCompare 用于 cmp.Ordered 类型的比较器.
func OrderedCompare[T cmp.Ordered](a, b T) int {
	return cmp.Compare(a, b)
}
