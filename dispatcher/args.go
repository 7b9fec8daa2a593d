package dispatcher

import (
	"errors"
	"strconv"
)

var errArguments = errors.New("invalid arguments")

// args 按顺序读取命令参数，遇到第一个错误后后续读取都返回零值.
type args struct {
	fields []string
	pos    int
	err    error
}

func (a *args) next() string {
	if a.err != nil {
		return ""
	}
	if a.pos >= len(a.fields) {
		a.err = errArguments
		return ""
	}
	s := a.fields[a.pos]
	a.pos++
	return s
}

func (a *args) str() string {
	return a.next()
}

func (a *args) uint64() uint64 {
	s := a.next()
	if a.err != nil {
		return 0
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		a.err = errArguments
	}
	return v
}

func (a *args) int64() int64 {
	s := a.next()
	if a.err != nil {
		return 0
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		a.err = errArguments
	}
	return v
}

func (a *args) int() int {
	return int(a.int64())
}

// done 返回读取过程中的错误，多余的参数同样视为错误.
func (a *args) done() error {
	if a.err == nil && a.pos != len(a.fields) {
		a.err = errArguments
	}
	return a.err
}
