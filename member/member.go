// Package member 实现会员、账本与区域交易业务，会员数据保存在 rankstore 中，
// 以余额作为排名字段.
package member

import "fmt"

// 字段长度上限（字节）.
const (
	MaxNameLen  = 20
	MaxPhoneLen = 11
)

// 等级阈值.
const (
	levelOneMoney   = 30000
	levelTwoMoney   = 50000
	levelThreeMoney = 100000
)

// Member 会员.
type Member struct {
	Name   string
	Phone  string
	X, Y   int
	Level  int
	Money  int64
	Ledger *Ledger
}

// Score 排名取值函数，按余额排名.
func Score(m *Member) int64 {
	return m.Money
}

// LevelFor 根据余额计算等级.
func LevelFor(money int64) int {
	switch {
	case money < levelOneMoney:
		return 0
	case money < levelTwoMoney:
		return 1
	case money < levelThreeMoney:
		return 2
	default:
		return 3
	}
}

// credit 入账并记录流水.
func (m *Member) credit(amount int64) {
	m.Money += amount
	m.Level = LevelFor(m.Money)
	m.Ledger.Append(Up, amount)
}

// debit 出账并记录流水.
func (m *Member) debit(amount int64) {
	m.Money -= amount
	m.Level = LevelFor(m.Money)
	m.Ledger.Append(Down, amount)
}

// Record 批量加载的一条会员记录.
type Record struct {
	ID    uint64
	Name  string
	Phone string
	X, Y  int
	Level int
	Money int64
}

// validateProfile 校验姓名、电话与坐标.
func validateProfile(name, phone string, x, y int) error {
	if name == "" || len(name) > MaxNameLen {
		return fmt.Errorf("%w: 姓名长度必须在 1-%d 之间", ErrInvalidMember, MaxNameLen)
	}
	if phone == "" || len(phone) > MaxPhoneLen {
		return fmt.Errorf("%w: 电话长度必须在 1-%d 之间", ErrInvalidMember, MaxPhoneLen)
	}
	return checkBounds(x, y)
}
