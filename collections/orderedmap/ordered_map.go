// Package orderedmap 提供基于红黑树的只增有序 Map.
//
// 节点存放在分块 arena 中，以 Handle 作为稳定的节点标识，
// 供排名索引等上层结构直接引用节点而无需重新查找.
package orderedmap

import "cmp"

// Entry 键值对.
type Entry[K any, V any] struct {
	Key   K
	Value V
}

// OrderedMap 基于红黑树的有序 Map.
//
// 特性:
//   - 按键排序存储，键唯一
//   - Insert/Find 时间复杂度 O(log n)，并返回查找深度
//   - 只插入不删除，节点句柄长期有效
//   - 非并发安全，调用方负责串行化访问
//
// 示例:
//
//	m := orderedmap.NewOrdered[uint64, string]()
//	m.Insert(10, "ten")
//	m.Insert(5, "five")
//	_, depth, err := m.Find(5) // depth == 1, err == nil
type OrderedMap[K any, V any] struct {
	nodes arena[K, V]
	root  Handle
	cmp   Comparator[K]
	size  int
}

// New 创建 OrderedMap，需要提供比较器.
func New[K any, V any](cmp Comparator[K]) *OrderedMap[K, V] {
	return &OrderedMap[K, V]{root: NilHandle, cmp: cmp}
}

// NewOrdered 创建 OrderedMap，使用内置类型的默认比较.
func NewOrdered[K cmp.Ordered, V any]() *OrderedMap[K, V] {
	return New[K, V](OrderedCompare[K])
}

// Insert 插入键值对.
//
// 键已存在时返回已有节点、其深度和 ErrAlreadyExists，不做任何修改.
// 否则返回新节点句柄和下降过程到达的深度（从 0 开始，修复前的位置）.
func (m *OrderedMap[K, V]) Insert(key K, value V) (Handle, int, error) {
	if m.root.IsNil() {
		m.root = m.nodes.alloc(key, value, black, NilHandle)
		m.size = 1
		return m.root, 0, nil
	}

	// 查找插入位置
	parent := NilHandle
	current := m.root
	depth := 0
	c := 0
	for !current.IsNil() {
		parent = current
		n := m.nodes.at(current)
		c = m.cmp(key, n.key)
		switch {
		case c < 0:
			current = n.left
		case c > 0:
			current = n.right
		default:
			return current, depth, ErrAlreadyExists
		}
		depth++
	}

	h := m.nodes.alloc(key, value, red, parent)
	p := m.nodes.at(parent)
	if c < 0 {
		p.left = h
	} else {
		p.right = h
	}
	m.size++

	if p.color == red {
		m.fixDoubleRed(h)
	}
	return h, depth, nil
}

// Find 查找键对应的节点.
//
// depth 为从根出发经过的边数：找到时是节点深度，
// 未找到时是查找终止处空子节点的深度.
func (m *OrderedMap[K, V]) Find(key K) (Handle, int, error) {
	depth := 0
	current := m.root
	for !current.IsNil() {
		n := m.nodes.at(current)
		c := m.cmp(key, n.key)
		if c == 0 {
			return current, depth, nil
		}
		if c < 0 {
			current = n.left
		} else {
			current = n.right
		}
		depth++
	}
	return NilHandle, depth, ErrNotFound
}

// Get 获取键对应的值.
func (m *OrderedMap[K, V]) Get(key K) (V, bool) {
	h, _, err := m.Find(key)
	if err != nil {
		var zero V
		return zero, false
	}
	return m.nodes.at(h).value, true
}

// Contains 判断键是否存在.
func (m *OrderedMap[K, V]) Contains(key K) bool {
	_, _, err := m.Find(key)
	return err == nil
}

// Key 返回节点的键.
func (m *OrderedMap[K, V]) Key(h Handle) K {
	return m.nodes.at(h).key
}

// Value 返回节点值的引用.
// 调用方可以直接修改值，修改排名字段后需要通知排名索引.
func (m *OrderedMap[K, V]) Value(h Handle) *V {
	return &m.nodes.at(h).value
}

// Ranked 返回节点是否位于排名窗口中.
func (m *OrderedMap[K, V]) Ranked(h Handle) bool {
	return m.nodes.at(h).ranked
}

// SetRanked 设置节点的排名标记，仅供排名索引维护.
func (m *OrderedMap[K, V]) SetRanked(h Handle, ranked bool) {
	m.nodes.at(h).ranked = ranked
}

// Len 返回元素数量.
func (m *OrderedMap[K, V]) Len() int {
	return m.size
}

// IsEmpty 判断是否为空.
func (m *OrderedMap[K, V]) IsEmpty() bool {
	return m.size == 0
}

// Root 返回根节点句柄，空树返回 NilHandle.
func (m *OrderedMap[K, V]) Root() Handle {
	return m.root
}

// Comparator 返回比较器.
func (m *OrderedMap[K, V]) Comparator() Comparator[K] {
	return m.cmp
}

// Height 返回树高，空树为 0.
func (m *OrderedMap[K, V]) Height() int {
	if m.root.IsNil() {
		return 0
	}
	type frame struct {
		h     Handle
		level int
	}
	height := 0
	stack := []frame{{m.root, 1}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if f.level > height {
			height = f.level
		}
		n := m.nodes.at(f.h)
		if !n.left.IsNil() {
			stack = append(stack, frame{n.left, f.level + 1})
		}
		if !n.right.IsNil() {
			stack = append(stack, frame{n.right, f.level + 1})
		}
	}
	return height
}

// Ascend 按键升序遍历节点句柄.
// fn 返回 false 时停止遍历.
//
// 使用显式栈迭代实现，不依赖递归深度.
func (m *OrderedMap[K, V]) Ascend(fn func(h Handle) bool) {
	stack := make([]Handle, 0, 64)
	current := m.root
	for !current.IsNil() || len(stack) > 0 {
		for !current.IsNil() {
			stack = append(stack, current)
			current = m.nodes.at(current).left
		}
		current = stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(current) {
			return
		}
		current = m.nodes.at(current).right
	}
}

// Range 按键升序遍历所有键值对.
// fn 返回 false 时停止遍历.
func (m *OrderedMap[K, V]) Range(fn func(key K, value V) bool) {
	m.Ascend(func(h Handle) bool {
		n := m.nodes.at(h)
		return fn(n.key, n.value)
	})
}

// Keys 返回所有键（按排序顺序）.
func (m *OrderedMap[K, V]) Keys() []K {
	keys := make([]K, 0, m.size)
	m.Ascend(func(h Handle) bool {
		keys = append(keys, m.nodes.at(h).key)
		return true
	})
	return keys
}

// Entries 返回所有键值对（按键排序顺序）.
func (m *OrderedMap[K, V]) Entries() []Entry[K, V] {
	entries := make([]Entry[K, V], 0, m.size)
	m.Range(func(key K, value V) bool {
		entries = append(entries, Entry[K, V]{Key: key, Value: value})
		return true
	})
	return entries
}
