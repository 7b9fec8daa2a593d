package loader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tsukikage7/rankstore/member"
)

func newService(t *testing.T) *member.Service {
	t.Helper()
	store, err := member.NewStore()
	require.NoError(t, err)
	return member.NewService(store)
}

func TestParse(t *testing.T) {
	input := "1 alice 0101 3 4 1 35000\n\n  2 bob 0102 5 6 0 100  \n"

	var got []member.Record
	err := Parse(strings.NewReader(input), func(rec member.Record) error {
		got = append(got, rec)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []member.Record{
		{ID: 1, Name: "alice", Phone: "0101", X: 3, Y: 4, Level: 1, Money: 35000},
		{ID: 2, Name: "bob", Phone: "0102", X: 5, Y: 6, Level: 0, Money: 100},
	}, got)
}

func TestParseErrors(t *testing.T) {
	cases := map[string]struct {
		input string
		line  int
		is    error
	}{
		"field count": {"1 a b 1 1 1 1\n2 a b 1 1 1\n", 2, ErrFieldCount},
		"bad id":      {"x a b 1 1 1 1\n", 1, strconv.ErrSyntax},
		"bad money":   {"\n1 a b 1 1 1 lots\n", 2, strconv.ErrSyntax},
		"negative id": {"-1 a b 1 1 1 1\n", 1, strconv.ErrSyntax},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			err := Parse(strings.NewReader(tc.input), func(member.Record) error { return nil })
			var perr *ParseError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, tc.line, perr.Line)
			assert.ErrorIs(t, err, tc.is)
			assert.Contains(t, err.Error(), "第 "+strconv.Itoa(tc.line)+" 行")
		})
	}
}

func TestParseStopsOnCallbackError(t *testing.T) {
	stop := errors.New("stop")
	calls := 0
	err := Parse(strings.NewReader("1 a b 1 1 1 1\n2 a b 1 1 1 1\n"), func(member.Record) error {
		calls++
		return stop
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 1, calls)
}

func TestLoad(t *testing.T) {
	svc := newService(t)
	input := strings.Join([]string{
		"7 g 07 1 1 0 700",
		"3 c 03 2 2 0 300",
		"7 dup 99 3 3 0 99999",
		"9 i 09 1 1 3 150000",
	}, "\n")

	result, err := Load(context.Background(), svc, strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 3, result.Loaded)
	assert.Equal(t, 1, result.Duplicates)
	assert.Equal(t, 3, svc.Len())

	assert.Equal(t, []member.Ranked{{ID: 9, Money: 150000}, {ID: 7, Money: 700}, {ID: 3, Money: 300}}, svc.Top(5))
	assert.Equal(t, int64(9), svc.Grid().OwnerOrNone(1, 1))
	assert.Equal(t, member.NoOwner, svc.Grid().OwnerOrNone(3, 3))
}

func TestLoadInvalidRecord(t *testing.T) {
	svc := newService(t)
	_, err := Load(context.Background(), svc, strings.NewReader("1 a b 5000 1 0 10\n"))
	assert.ErrorIs(t, err, member.ErrOutOfBounds)
}

func TestLoadCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Load(ctx, newService(t), strings.NewReader("1 a b 1 1 0 10\n"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "members.txt")
	require.NoError(t, os.WriteFile(path, []byte("1 a b 1 1 0 10\n2 b c 2 2 0 20\n"), 0o644))

	svc := newService(t)
	result, err := LoadFile(context.Background(), svc, path)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Loaded)

	_, err = LoadFile(context.Background(), svc, filepath.Join(t.TempDir(), "missing.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
