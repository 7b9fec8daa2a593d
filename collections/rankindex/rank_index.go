// Package rankindex 在有序 Map 之上增量维护前 K 名排名窗口.
//
// 排名全序: 排名值大者在前，排名值相同时键小者在前.
//
// 窗口保存至多 K 个节点句柄，并缓存边界（窗口外所有节点都严格排在边界之后）.
// 节点排名值变化后调用 OnValueChanged:
//   - 已在窗口内的节点在窗口内局部移动，最多 K 次交换
//   - 窗口外的节点先与边界做 O(1) 比较，只有越过边界才进入窗口
//
// 已入窗节点跌出边界时，窗口尾部不再精确. 只要受保护头部（Head）
// 仍然精确就继续走增量路径，头部失效时立即全量重建；
// TopN 读取超出精确前缀时也会先重建，因此读取结果始终与全量扫描一致.
package rankindex

import "github.com/Tsukikage7/rankstore/collections/orderedmap"

type handle = orderedmap.Handle

// Tree 排名索引依赖的数据源，*orderedmap.OrderedMap 满足该接口.
type Tree[K any, V any] interface {
	Len() int
	Key(h orderedmap.Handle) K
	Value(h orderedmap.Handle) *V
	Ranked(h orderedmap.Handle) bool
	SetRanked(h orderedmap.Handle, ranked bool)
	Ascend(fn func(h orderedmap.Handle) bool)
	Comparator() orderedmap.Comparator[K]
}

// Scorer 从值中取出排名字段.
type Scorer[V any] func(v *V) int64

// Entry 排名结果.
type Entry[K any, V any] struct {
	Key   K
	Value V
	Score int64
}

// Stats 索引运行统计.
type Stats struct {
	Rebuilds   uint64
	Admissions uint64
	Evictions  uint64
	Shifts     uint64
	Raises     uint64
}

// boundary 缓存的边界比较键，set 为 false 表示哨兵（窗口未满）.
type boundary[K any] struct {
	set   bool
	value int64
	key   K
}

// Index 排名索引.
//
// 非并发安全，与其依赖的 Tree 共用同一把外部锁.
type Index[K any, V any] struct {
	tree  Tree[K, V]
	cmp   orderedmap.Comparator[K]
	score Scorer[V]
	head  int
	opts  *options

	slots []handle
	count int
	exact int
	bound boundary[K]
	stats Stats
}

// New 创建排名索引.
//
// 新索引的窗口为空，已有数据需要调用 Rebuild 装载.
func New[K any, V any](tree Tree[K, V], score Scorer[V], cfg *Config, opts ...Option) (*Index[K, V], error) {
	if tree == nil {
		return nil, ErrNilTree
	}
	if score == nil {
		return nil, ErrNilScorer
	}
	if cfg == nil {
		return nil, ErrNilConfig
	}
	c := *cfg
	c.ApplyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	slots := make([]handle, c.Capacity)
	for i := range slots {
		slots[i] = orderedmap.NilHandle
	}

	return &Index[K, V]{
		tree:  tree,
		cmp:   tree.Comparator(),
		score: score,
		head:  c.Head,
		opts:  o,
		slots: slots,
	}, nil
}

// Rebuild 全量重建窗口.
func (x *Index[K, V]) Rebuild() {
	x.rebuild(ReasonManual)
}

// Track 登记新插入的节点.
func (x *Index[K, V]) Track(h orderedmap.Handle) {
	x.OnValueChanged(h)
}

// OnValueChanged 节点排名值变化后同步窗口.
func (x *Index[K, V]) OnValueChanged(h orderedmap.Handle) {
	if h.IsNil() {
		return
	}

	if x.tree.Ranked(h) {
		i := x.position(h)
		if i < 0 {
			return
		}
		x.siftDown(x.siftUp(i))
		x.reconcile()
		if x.exact < x.count && x.exact < x.head {
			x.rebuild(ReasonHead)
		}
		return
	}

	if !x.qualifies(h) {
		return
	}
	x.admit(h)
	x.stats.Admissions++
	x.reconcile()
}

// TopN 返回前 n 名，按排名顺序.
func (x *Index[K, V]) TopN(n int) []Entry[K, V] {
	if n > x.count {
		n = x.count
	}
	if n <= 0 {
		return nil
	}
	if n > x.exact {
		x.rebuild(ReasonRead)
	}

	entries := make([]Entry[K, V], n)
	for i := 0; i < n; i++ {
		h := x.slots[i]
		v := x.tree.Value(h)
		entries[i] = Entry[K, V]{Key: x.tree.Key(h), Value: *v, Score: x.score(v)}
	}
	return entries
}

// Rank 返回节点在窗口中的名次（从 1 开始），不在窗口中返回 0.
//
// 节点位于精确前缀之外，或窗口尾部不精确时查询窗口外节点，先全量重建.
func (x *Index[K, V]) Rank(h orderedmap.Handle) int {
	if h.IsNil() {
		return 0
	}
	if x.tree.Ranked(h) {
		if i := x.position(h); i >= 0 && i < x.exact {
			return i + 1
		}
	} else if x.exact == x.count {
		return 0
	}

	x.rebuild(ReasonRead)
	if !x.tree.Ranked(h) {
		return 0
	}
	return x.position(h) + 1
}

// Len 返回窗口中的节点数.
func (x *Index[K, V]) Len() int {
	return x.count
}

// Capacity 返回窗口大小 K.
func (x *Index[K, V]) Capacity() int {
	return len(x.slots)
}

// Head 返回受保护头部长度.
func (x *Index[K, V]) Head() int {
	return x.head
}

// Exact 返回当前精确前缀的长度.
func (x *Index[K, V]) Exact() int {
	return x.exact
}

// Boundary 返回缓存的边界，窗口未满时 ok 为 false.
func (x *Index[K, V]) Boundary() (value int64, key K, ok bool) {
	return x.bound.value, x.bound.key, x.bound.set
}

// Stats 返回运行统计.
func (x *Index[K, V]) Stats() Stats {
	return x.stats
}

// rebuild 中序遍历全部节点重新装载窗口.
//
// 按键升序访问，同分节点自然按键小者优先进入窗口.
func (x *Index[K, V]) rebuild(reason Reason) {
	for i := 0; i < x.count; i++ {
		x.tree.SetRanked(x.slots[i], false)
		x.slots[i] = orderedmap.NilHandle
	}
	x.count = 0

	visited := 0
	last := len(x.slots) - 1
	x.tree.Ascend(func(h handle) bool {
		visited++
		if x.count == len(x.slots) && !x.precedes(h, x.slots[last]) {
			return true
		}
		x.admit(h)
		return true
	})

	x.exact = x.count
	x.bound = boundary[K]{}
	if x.count == len(x.slots) {
		x.raise()
	}
	x.stats.Rebuilds++

	if x.opts.onRebuild != nil {
		x.opts.onRebuild(reason, visited)
	}
}

// admit 将节点插入有序位置，窗口已满时淘汰末位.
func (x *Index[K, V]) admit(h handle) {
	i := x.count
	if x.count == len(x.slots) {
		i = x.count - 1
		x.tree.SetRanked(x.slots[i], false)
		x.stats.Evictions++
	} else {
		x.count++
	}

	for i > 0 && x.precedes(h, x.slots[i-1]) {
		x.slots[i] = x.slots[i-1]
		x.stats.Shifts++
		i--
	}
	x.slots[i] = h
	x.tree.SetRanked(h, true)
}

// siftUp 向头部移动，返回新位置.
func (x *Index[K, V]) siftUp(i int) int {
	h := x.slots[i]
	for i > 0 && x.precedes(h, x.slots[i-1]) {
		x.slots[i] = x.slots[i-1]
		x.stats.Shifts++
		i--
	}
	x.slots[i] = h
	return i
}

// siftDown 向尾部移动，返回新位置.
func (x *Index[K, V]) siftDown(i int) int {
	h := x.slots[i]
	for i < x.count-1 && x.precedes(x.slots[i+1], h) {
		x.slots[i] = x.slots[i+1]
		x.stats.Shifts++
		i++
	}
	x.slots[i] = h
	return i
}

// reconcile 重新计算精确前缀，整窗精确时把边界抬到末位.
//
// 边界只升不降: 窗口外节点都排在旧边界之后，而末位不晚于旧边界.
func (x *Index[K, V]) reconcile() {
	if x.count < len(x.slots) || x.tree.Len() <= x.count {
		// 不存在窗口外节点，窗口即全集
		x.exact = x.count
		x.bound = boundary[K]{}
		if x.count == len(x.slots) {
			x.raise()
		}
		return
	}

	x.exact = 0
	for x.exact < x.count && x.against(x.slots[x.exact]) <= 0 {
		x.exact++
	}
	if x.exact == x.count {
		x.raise()
	}
}

// raise 把边界设为末位节点.
func (x *Index[K, V]) raise() {
	h := x.slots[x.count-1]
	value, key := x.score(x.tree.Value(h)), x.tree.Key(h)
	if x.bound.set && x.bound.value == value && x.cmp(x.bound.key, key) == 0 {
		return
	}
	x.bound = boundary[K]{set: true, value: value, key: key}
	x.stats.Raises++
}

// qualifies 判断窗口外节点能否进入窗口.
func (x *Index[K, V]) qualifies(h handle) bool {
	return x.against(h) < 0
}

// against 比较节点与边界: 负数表示在边界之前，0 表示与边界相同，正数表示在其后.
// 边界为哨兵时任何节点都在其前.
func (x *Index[K, V]) against(h handle) int {
	if !x.bound.set {
		return -1
	}
	return x.order(x.score(x.tree.Value(h)), x.tree.Key(h), x.bound.value, x.bound.key)
}

// precedes 判断 a 是否排在 b 之前.
func (x *Index[K, V]) precedes(a, b handle) bool {
	return x.order(x.score(x.tree.Value(a)), x.tree.Key(a), x.score(x.tree.Value(b)), x.tree.Key(b)) < 0
}

// order 排名全序比较.
func (x *Index[K, V]) order(av int64, ak K, bv int64, bk K) int {
	switch {
	case av > bv:
		return -1
	case av < bv:
		return 1
	default:
		return x.cmp(ak, bk)
	}
}

// position 返回节点所在槽位，不在窗口中返回 -1.
func (x *Index[K, V]) position(h handle) int {
	for i := 0; i < x.count; i++ {
		if x.slots[i] == h {
			return i
		}
	}
	return -1
}
