package member

import "fmt"

// GridSize 区域坐标取值 0..GridSize-1.
const GridSize = 1001

// NoOwner 无主区域的输出值.
const NoOwner int64 = -1

type cell struct {
	x, y int
}

type area struct {
	owner uint64
	price int64
}

// Grid 区域归属与成交价，只保存发生过归属的格子.
type Grid struct {
	areas map[cell]area
}

// NewGrid 创建空区域表.
func NewGrid() *Grid {
	return &Grid{areas: make(map[cell]area)}
}

// Owner 返回区域所有者.
func (g *Grid) Owner(x, y int) (uint64, bool) {
	a, ok := g.areas[cell{x, y}]
	return a.owner, ok
}

// OwnerOrNone 返回区域所有者，无主时返回 NoOwner.
func (g *Grid) OwnerOrNone(x, y int) int64 {
	if owner, ok := g.Owner(x, y); ok {
		return int64(owner)
	}
	return NoOwner
}

// Price 返回区域最近成交价，未成交过为 0.
func (g *Grid) Price(x, y int) int64 {
	return g.areas[cell{x, y}].price
}

// Claim 无主时登记所有者，返回是否登记成功.
func (g *Grid) Claim(x, y int, id uint64) bool {
	if _, ok := g.areas[cell{x, y}]; ok {
		return false
	}
	g.areas[cell{x, y}] = area{owner: id}
	return true
}

// Assign 设置所有者，保留成交价.
func (g *Grid) Assign(x, y int, id uint64) {
	a := g.areas[cell{x, y}]
	a.owner = id
	g.areas[cell{x, y}] = a
}

// Sell 成交后更新所有者与价格.
func (g *Grid) Sell(x, y int, id uint64, price int64) {
	g.areas[cell{x, y}] = area{owner: id, price: price}
}

// Len 返回有主区域数.
func (g *Grid) Len() int {
	return len(g.areas)
}

func checkBounds(x, y int) error {
	if x < 0 || x >= GridSize || y < 0 || y >= GridSize {
		return fmt.Errorf("%w: (%d, %d)", ErrOutOfBounds, x, y)
	}
	return nil
}
