// Package rankstore 组合有序 Map 与排名索引，对外提供按 uint64 键存取、
// 值变化通知以及前 N 名查询.
//
// Store 非并发安全，调用方负责串行化所有访问.
package rankstore

import (
	"errors"

	"github.com/Tsukikage7/rankstore/collections/orderedmap"
	"github.com/Tsukikage7/rankstore/collections/rankindex"
	"github.com/Tsukikage7/rankstore/logger"
	"github.com/Tsukikage7/rankstore/metrics"
)

// Entry 排名结果.
type Entry[V any] = rankindex.Entry[uint64, V]

// Store 带排名索引的有序存储.
type Store[V any] struct {
	tree     *orderedmap.OrderedMap[uint64, V]
	index    *rankindex.Index[uint64, V]
	opts     *options
	log      logger.Logger
	validate func() error
}

// New 创建存储，score 从值中取出排名字段.
func New[V any](score rankindex.Scorer[V], opts ...Option) (*Store[V], error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	s := &Store[V]{
		tree: orderedmap.NewOrdered[uint64, V](),
		opts: o,
		log:  o.logger.With(logger.String("component", "rankstore")),
	}

	index, err := rankindex.New[uint64, V](s.tree, score, o.rank, rankindex.WithRebuildHook(s.onRebuild))
	if err != nil {
		return nil, err
	}
	s.index = index
	s.validate = s.tree.Validate
	return s, nil
}

// Insert 插入新键并登记到排名索引，返回插入深度.
//
// 键已存在时返回已有节点的深度与 ErrAlreadyExists，存储不变.
// 开启 WithInvariantChecks 时，校验失败返回包装 ErrCorrupted 的错误，
// 此时插入已经生效，节点也已登记到排名索引.
func (s *Store[V]) Insert(key uint64, value V) (int, error) {
	h, depth, err := s.insert(key, value)
	if err != nil {
		return depth, err
	}

	s.track(h)
	return depth, s.check()
}

// Preload 插入新键但不登记排名，批量加载完成后调用 Rebuild.
//
// 与 Insert 相同，校验失败时插入已经生效.
func (s *Store[V]) Preload(key uint64, value V) error {
	if _, _, err := s.insert(key, value); err != nil {
		return err
	}
	return s.check()
}

// Find 查找键，返回查找深度与值的引用.
//
// 通过引用修改排名字段后必须调用 NotifyValueChanged.
func (s *Store[V]) Find(key uint64) (int, *V, error) {
	h, depth, err := s.tree.Find(key)
	if err != nil {
		s.recordLookup(metrics.ResultNotFound, depth)
		return depth, nil, err
	}
	s.recordLookup(metrics.ResultOK, depth)
	return depth, s.tree.Value(h), nil
}

// NotifyValueChanged 键对应值的排名字段被修改后同步排名索引.
func (s *Store[V]) NotifyValueChanged(key uint64) error {
	h, _, err := s.tree.Find(key)
	if err != nil {
		return err
	}
	s.track(h)
	return nil
}

// TopN 返回前 n 名，结果长度不超过 min(n, Capacity).
func (s *Store[V]) TopN(n int) []Entry[V] {
	return s.index.TopN(n)
}

// Rank 返回键在排名窗口中的名次（从 1 开始），不在窗口中返回 0.
func (s *Store[V]) Rank(key uint64) int {
	h, _, err := s.tree.Find(key)
	if err != nil {
		return 0
	}
	return s.index.Rank(h)
}

// Rebuild 全量重建排名窗口.
func (s *Store[V]) Rebuild() {
	s.index.Rebuild()
}

// Len 返回键的数量.
func (s *Store[V]) Len() int {
	return s.tree.Len()
}

// Height 返回树高.
func (s *Store[V]) Height() int {
	return s.tree.Height()
}

// Stats 返回排名索引运行统计.
func (s *Store[V]) Stats() rankindex.Stats {
	return s.index.Stats()
}

// Validate 校验红黑树性质.
func (s *Store[V]) Validate() error {
	return s.tree.Validate()
}

func (s *Store[V]) insert(key uint64, value V) (orderedmap.Handle, int, error) {
	h, depth, err := s.tree.Insert(key, value)
	if errors.Is(err, orderedmap.ErrAlreadyExists) {
		s.recordInsert(metrics.ResultDuplicate, depth)
		s.log.Debugf("键 %d 已存在", key)
		return h, depth, err
	}
	s.recordInsert(metrics.ResultOK, depth)
	if s.opts.metrics != nil {
		s.opts.metrics.SetNodes(s.tree.Len())
	}
	return h, depth, nil
}

// track 同步排名索引并记录增量入窗次数.
func (s *Store[V]) track(h orderedmap.Handle) {
	before := s.index.Stats().Admissions
	s.index.OnValueChanged(h)
	if s.opts.metrics != nil {
		s.opts.metrics.RecordAdmissions(int(s.index.Stats().Admissions - before))
	}
}

func (s *Store[V]) check() error {
	if !s.opts.checks {
		return nil
	}
	if err := s.validate(); err != nil {
		s.log.Errorf("结构校验失败: %v", err)
		return err
	}
	return nil
}

func (s *Store[V]) onRebuild(reason rankindex.Reason, visited int) {
	s.log.With(
		logger.String("reason", string(reason)),
		logger.Int("visited", visited),
		logger.Int("ranked", s.index.Len()),
	).Debug("排名窗口全量重建")

	if s.opts.metrics != nil {
		s.opts.metrics.RecordRebuild(string(reason), visited)
	}
	if s.opts.onRebuild != nil {
		s.opts.onRebuild(reason, visited)
	}
}

func (s *Store[V]) recordInsert(result string, depth int) {
	if s.opts.metrics != nil {
		s.opts.metrics.RecordInsert(result, depth)
	}
}

func (s *Store[V]) recordLookup(result string, depth int) {
	if s.opts.metrics != nil {
		s.opts.metrics.RecordLookup(result, depth)
	}
}
