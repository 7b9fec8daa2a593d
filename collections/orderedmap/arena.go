package orderedmap

// 节点颜色.
const (
	red   = true
	black = false
)

// Handle 节点句柄，是节点在 arena 中的稳定下标.
//
// 节点一经创建不会移动或释放，Handle 在 OrderedMap 生命周期内始终有效.
type Handle int32

// NilHandle 表示不存在的节点.
const NilHandle Handle = -1

// IsNil 判断句柄是否为空.
func (h Handle) IsNil() bool {
	return h < 0
}

// node 红黑树节点.
//
// left/right 表示子树归属，parent 只是回溯用的下标，不表示归属.
type node[K any, V any] struct {
	key    K
	value  V
	color  bool
	ranked bool
	left   Handle
	right  Handle
	parent Handle
}

// 每个分块容纳的节点数，分块分配后不再扩容，保证 *V 地址稳定.
const (
	chunkBits = 10
	chunkSize = 1 << chunkBits
	chunkMask = chunkSize - 1
)

// arena 分块节点池.
type arena[K any, V any] struct {
	chunks [][]node[K, V]
	used   int
}

// alloc 分配一个新节点并返回句柄.
func (a *arena[K, V]) alloc(key K, value V, color bool, parent Handle) Handle {
	if a.used == len(a.chunks)*chunkSize {
		a.chunks = append(a.chunks, make([]node[K, V], chunkSize))
	}
	h := Handle(a.used)
	a.used++

	n := a.at(h)
	n.key = key
	n.value = value
	n.color = color
	n.ranked = false
	n.left = NilHandle
	n.right = NilHandle
	n.parent = parent
	return h
}

// at 返回句柄对应的节点.
func (a *arena[K, V]) at(h Handle) *node[K, V] {
	return &a.chunks[h>>chunkBits][h&chunkMask]
}
