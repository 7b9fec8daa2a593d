package member

import (
	"errors"

	"github.com/Tsukikage7/rankstore/logger"
	"github.com/Tsukikage7/rankstore/rankstore"
)

// DefaultTop 排行榜默认展示人数.
const DefaultTop = 5

// Ranked 排行榜条目.
type Ranked struct {
	ID    uint64
	Money int64
}

// Purchase 区域购买结果.
type Purchase struct {
	Approved bool
	// Money 购买后买方余额
	Money int64
	// Owner 购买后的区域所有者，无主为 NoOwner
	Owner int64
}

// Option 配置选项函数.
type Option func(*Service)

// WithLogger 设置日志记录器.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// WithGrid 使用已有的区域表.
func WithGrid(g *Grid) Option {
	return func(s *Service) {
		if g != nil {
			s.grid = g
		}
	}
}

// Service 会员业务.
//
// 非并发安全，与底层 Store 一样由调用方串行化.
type Service struct {
	store *rankstore.Store[Member]
	grid  *Grid
	log   logger.Logger
}

// NewStore 创建按余额排名的会员存储.
func NewStore(opts ...rankstore.Option) (*rankstore.Store[Member], error) {
	return rankstore.New(Score, opts...)
}

// NewService 创建会员业务.
func NewService(store *rankstore.Store[Member], opts ...Option) *Service {
	s := &Service{
		store: store,
		grid:  NewGrid(),
		log:   logger.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With(logger.String("component", "member"))
	return s
}

// Join 注册新会员，返回注册后会员所在深度以及是否注册成功.
//
// id 已存在时 ok 为 false，深度为已有会员的深度.
// 起始区域无主时归新会员所有.
func (s *Service) Join(id uint64, name, phone string, x, y int) (depth int, ok bool, err error) {
	if err := validateProfile(name, phone, x, y); err != nil {
		return 0, false, err
	}

	_, err = s.store.Insert(id, Member{
		Name:   name,
		Phone:  phone,
		X:      x,
		Y:      y,
		Level:  LevelFor(0),
		Ledger: NewLedger(),
	})
	switch {
	case errors.Is(err, rankstore.ErrAlreadyExists):
		s.log.Debugf("会员 %d 已存在", id)
	case err != nil:
		return 0, false, err
	default:
		ok = true
		if s.grid.Claim(x, y, id) {
			s.log.Debugf("会员 %d 获得起始区域 (%d, %d)", id, x, y)
		}
	}

	// 插入后的修复可能改变位置，重新查找深度
	depth, _, err = s.store.Find(id)
	return depth, ok, err
}

// Info 返回会员资料快照与所在深度.
func (s *Service) Info(id uint64) (Member, int, error) {
	depth, m, err := s.store.Find(id)
	if err != nil {
		return Member{}, depth, err
	}
	return *m, depth, nil
}

// Deposit 充值，返回会员所在深度与充值后的等级.
func (s *Service) Deposit(id uint64, amount int64) (depth, level int, err error) {
	depth, m, err := s.store.Find(id)
	if err != nil {
		return depth, 0, err
	}

	m.credit(amount)
	if err := s.store.NotifyValueChanged(id); err != nil {
		return depth, 0, err
	}
	return depth, m.Level, nil
}

// Top 返回余额排行榜前 n 名，n <= 0 时使用 DefaultTop.
func (s *Service) Top(n int) []Ranked {
	if n <= 0 {
		n = DefaultTop
	}
	entries := s.store.TopN(n)
	out := make([]Ranked, len(entries))
	for i, e := range entries {
		out[i] = Ranked{ID: e.Key, Money: e.Score}
	}
	return out
}

// History 返回最近的至多 n 条资金流水，最新的在前.
func (s *Service) History(id uint64, n int) ([]Transaction, error) {
	_, m, err := s.store.Find(id)
	if err != nil {
		return nil, err
	}
	return m.Ledger.Recent(n), nil
}

// BuyArea 以 spent 的价格购买区域.
//
// 区域不属于买方、出价不低于上次成交价且买方余额足够时成交.
// 区域有主时原所有者获得 spent，买方扣除 spent，两者的排名都会同步.
func (s *Service) BuyArea(id uint64, x, y int, spent int64) (Purchase, error) {
	_, buyer, err := s.store.Find(id)
	if err != nil {
		return Purchase{}, err
	}
	if err := checkBounds(x, y); err != nil {
		return Purchase{}, err
	}

	owner, owned := s.grid.Owner(x, y)
	if (!owned || owner != id) && spent >= s.grid.Price(x, y) && buyer.Money >= spent {
		if owned {
			if err := s.pay(owner, spent); err != nil {
				return Purchase{}, err
			}
		}
		buyer.debit(spent)
		if err := s.store.NotifyValueChanged(id); err != nil {
			return Purchase{}, err
		}
		s.grid.Sell(x, y, id, spent)

		s.log.With(
			logger.Uint64("buyer", id),
			logger.Int64("spent", spent),
			logger.Bool("trade", owned),
		).Debugf("区域 (%d, %d) 成交", x, y)

		return Purchase{Approved: true, Money: buyer.Money, Owner: int64(id)}, nil
	}

	return Purchase{Money: buyer.Money, Owner: s.grid.OwnerOrNone(x, y)}, nil
}

// pay 向区域原所有者付款.
func (s *Service) pay(id uint64, amount int64) error {
	_, seller, err := s.store.Find(id)
	if err != nil {
		return err
	}
	seller.credit(amount)
	return s.store.NotifyValueChanged(id)
}

// Preload 批量加载一条会员记录，区域归属以后加载的记录为准.
//
// 全部加载完成后调用 Finish.
func (s *Service) Preload(rec Record) error {
	if err := validateProfile(rec.Name, rec.Phone, rec.X, rec.Y); err != nil {
		return err
	}

	err := s.store.Preload(rec.ID, Member{
		Name:   rec.Name,
		Phone:  rec.Phone,
		X:      rec.X,
		Y:      rec.Y,
		Level:  rec.Level,
		Money:  rec.Money,
		Ledger: NewLedger(),
	})
	if err != nil {
		return err
	}
	s.grid.Assign(rec.X, rec.Y, rec.ID)
	return nil
}

// Finish 批量加载完成后重建排名.
func (s *Service) Finish() {
	s.store.Rebuild()
}

// Len 返回会员数.
func (s *Service) Len() int {
	return s.store.Len()
}

// Grid 返回区域表.
func (s *Service) Grid() *Grid {
	return s.grid
}
