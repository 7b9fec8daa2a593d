package member

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelFor(t *testing.T) {
	cases := map[int64]int{
		-5:      0,
		0:       0,
		29999:   0,
		30000:   1,
		49999:   1,
		50000:   2,
		99999:   2,
		100000:  3,
		5000000: 3,
	}
	for money, level := range cases {
		assert.Equal(t, level, LevelFor(money), "money %d", money)
	}
}

func TestLedgerRecent(t *testing.T) {
	l := NewLedger()
	assert.Nil(t, l.Recent(3))

	l.Append(Up, 100)
	l.Append(Down, 40)
	l.Append(Up, 7)

	assert.Equal(t, 3, l.Len())
	assert.Equal(t, []Transaction{{Up, 7}, {Down, 40}}, l.Recent(2))
	assert.Equal(t, []Transaction{{Up, 7}, {Down, 40}, {Up, 100}}, l.Recent(10))
	assert.Nil(t, l.Recent(0))
	assert.Nil(t, l.Recent(-1))
}

func TestGrid(t *testing.T) {
	g := NewGrid()
	_, ok := g.Owner(3, 4)
	assert.False(t, ok)
	assert.Equal(t, NoOwner, g.OwnerOrNone(3, 4))
	assert.Zero(t, g.Price(3, 4))

	assert.True(t, g.Claim(3, 4, 7))
	assert.False(t, g.Claim(3, 4, 8))
	assert.Equal(t, int64(7), g.OwnerOrNone(3, 4))

	g.Sell(3, 4, 9, 500)
	assert.Equal(t, int64(9), g.OwnerOrNone(3, 4))
	assert.Equal(t, int64(500), g.Price(3, 4))

	g.Assign(3, 4, 1)
	assert.Equal(t, int64(1), g.OwnerOrNone(3, 4))
	assert.Equal(t, int64(500), g.Price(3, 4))
	assert.Equal(t, 1, g.Len())
}

func TestValidateProfile(t *testing.T) {
	require.NoError(t, validateProfile("alice", "01012345678", 0, 1000))

	assert.ErrorIs(t, validateProfile("", "1", 0, 0), ErrInvalidMember)
	assert.ErrorIs(t, validateProfile(strings.Repeat("n", MaxNameLen+1), "1", 0, 0), ErrInvalidMember)
	assert.ErrorIs(t, validateProfile("bob", "010123456789", 0, 0), ErrInvalidMember)
	assert.ErrorIs(t, validateProfile("bob", "1", -1, 0), ErrOutOfBounds)
	assert.ErrorIs(t, validateProfile("bob", "1", 0, GridSize), ErrOutOfBounds)
}

func TestCreditDebit(t *testing.T) {
	m := &Member{Ledger: NewLedger()}
	m.credit(60000)
	assert.Equal(t, int64(60000), m.Money)
	assert.Equal(t, 2, m.Level)

	m.debit(35000)
	assert.Equal(t, int64(25000), m.Money)
	assert.Equal(t, 0, m.Level)
	assert.Equal(t, []Transaction{{Down, 35000}, {Up, 60000}}, m.Ledger.Recent(5))
}
