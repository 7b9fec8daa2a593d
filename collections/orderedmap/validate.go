package orderedmap

import "fmt"

// Validate 校验红黑树性质.
//
// 检查项: 根为黑色、红色节点没有红色孩子、各路径黑高一致、
// 父指针与孩子指针互相一致、键严格有序、节点数与 Len 一致.
// 返回的错误包装 ErrCorrupted.
func (m *OrderedMap[K, V]) Validate() error {
	if m.root.IsNil() {
		if m.size != 0 {
			return fmt.Errorf("%w: 空树 size=%d", ErrCorrupted, m.size)
		}
		return nil
	}

	root := m.nodes.at(m.root)
	if root.color != black {
		return fmt.Errorf("%w: 根节点不是黑色", ErrCorrupted)
	}
	if !root.parent.IsNil() {
		return fmt.Errorf("%w: 根节点存在父节点", ErrCorrupted)
	}

	type frame struct {
		h          Handle
		blackDepth int
	}
	leafBlack := -1
	count := 0
	stack := []frame{{m.root, 1}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		count++

		n := m.nodes.at(f.h)
		for _, child := range [2]Handle{n.left, n.right} {
			if child.IsNil() {
				if leafBlack == -1 {
					leafBlack = f.blackDepth
				} else if leafBlack != f.blackDepth {
					return fmt.Errorf("%w: 黑高不一致 %d != %d", ErrCorrupted, leafBlack, f.blackDepth)
				}
				continue
			}
			c := m.nodes.at(child)
			if c.parent != f.h {
				return fmt.Errorf("%w: 节点 %d 的父指针错误", ErrCorrupted, child)
			}
			if n.color == red && c.color == red {
				return fmt.Errorf("%w: 节点 %d 出现双红", ErrCorrupted, child)
			}
			next := f.blackDepth
			if c.color == black {
				next++
			}
			stack = append(stack, frame{child, next})
		}
	}
	if count != m.size {
		return fmt.Errorf("%w: 节点数 %d 与 size %d 不一致", ErrCorrupted, count, m.size)
	}

	// 中序遍历键必须严格递增
	prev := NilHandle
	var orderErr error
	m.Ascend(func(h Handle) bool {
		if !prev.IsNil() && m.cmp(m.nodes.at(prev).key, m.nodes.at(h).key) >= 0 {
			orderErr = fmt.Errorf("%w: 中序遍历键无序", ErrCorrupted)
			return false
		}
		prev = h
		return true
	})
	return orderErr
}
