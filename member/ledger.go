package member

// Direction 资金方向.
type Direction int

// 资金方向常量，数值即输出格式.
const (
	Down Direction = 0
	Up   Direction = 1
)

// Transaction 一条资金流水.
type Transaction struct {
	Direction Direction
	Amount    int64
}

// Ledger 只追加的资金流水.
type Ledger struct {
	entries []Transaction
}

// NewLedger 创建空账本.
func NewLedger() *Ledger {
	return &Ledger{}
}

// Append 追加一条流水.
func (l *Ledger) Append(dir Direction, amount int64) {
	l.entries = append(l.entries, Transaction{Direction: dir, Amount: amount})
}

// Len 返回流水条数.
func (l *Ledger) Len() int {
	return len(l.entries)
}

// Recent 返回最近的至多 n 条流水，最新的在前.
func (l *Ledger) Recent(n int) []Transaction {
	if n > len(l.entries) {
		n = len(l.entries)
	}
	if n <= 0 {
		return nil
	}
	out := make([]Transaction, n)
	for i := range out {
		out[i] = l.entries[len(l.entries)-1-i]
	}
	return out
}
