package orderedmap

// 红黑树插入修复.
//
// 新插入的红色节点 n 的父节点 p 也是红色时出现双红冲突.
// p 为红色意味着 p 不是根，祖父节点 g 必然存在.
//
//   - 叔节点 u 为红色: 重新着色，冲突可能上移到 g
//   - 叔节点为空或黑色: 三节点重构，一次完成，不再上移

// fixDoubleRed 消除 n 处的双红冲突.
func (m *OrderedMap[K, V]) fixDoubleRed(n Handle) {
	for {
		p := m.nodes.at(n).parent
		g := m.nodes.at(p).parent
		u := m.sibling(p)

		if u.IsNil() || m.nodes.at(u).color == black {
			m.restructure(n)
			return
		}

		// 重新着色
		m.nodes.at(p).color = black
		m.nodes.at(u).color = black
		if g == m.root {
			return
		}
		gn := m.nodes.at(g)
		gn.color = red
		if m.nodes.at(gn.parent).color != red {
			return
		}
		n = g
	}
}

// sibling 返回兄弟节点，根节点没有兄弟.
func (m *OrderedMap[K, V]) sibling(h Handle) Handle {
	parent := m.nodes.at(h).parent
	if parent.IsNil() {
		return NilHandle
	}
	pn := m.nodes.at(parent)
	if pn.left == h {
		return pn.right
	}
	return pn.left
}

// restructure 对 (g, p, n) 做三节点重构.
//
// 按键排序得到 low < mid < high，mid 变黑并接替 g 的位置，
// low/high 变红成为 mid 的左右孩子，两棵内侧子树分别挂到
// low.right 与 high.left.
func (m *OrderedMap[K, V]) restructure(n Handle) {
	nn := m.nodes.at(n)
	p := nn.parent
	pn := m.nodes.at(p)
	g := pn.parent
	gn := m.nodes.at(g)

	var low, mid, high, lowRight, highLeft Handle
	if gn.left == p {
		if pn.left == n {
			// left-left
			low, mid, high = n, p, g
			lowRight, highLeft = nn.right, pn.right
		} else {
			// left-right
			low, mid, high = p, n, g
			lowRight, highLeft = nn.left, nn.right
		}
	} else {
		if pn.left == n {
			// right-left
			low, mid, high = g, n, p
			lowRight, highLeft = nn.left, nn.right
		} else {
			// right-right
			low, mid, high = g, p, n
			lowRight, highLeft = pn.left, nn.left
		}
	}

	ancestor := gn.parent
	ln, mn, hn := m.nodes.at(low), m.nodes.at(mid), m.nodes.at(high)

	mn.color = black
	ln.color = red
	hn.color = red

	mn.left = low
	mn.right = high
	ln.right = lowRight
	hn.left = highLeft

	mn.parent = ancestor
	ln.parent = mid
	hn.parent = mid
	if !lowRight.IsNil() {
		m.nodes.at(lowRight).parent = low
	}
	if !highLeft.IsNil() {
		m.nodes.at(highLeft).parent = high
	}

	// 接回祖先
	if ancestor.IsNil() {
		m.root = mid
		return
	}
	an := m.nodes.at(ancestor)
	if an.left == g {
		an.left = mid
	} else {
		an.right = mid
	}
}
