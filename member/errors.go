package member

import "errors"

// 预定义错误常量.
var (
	// ErrInvalidMember 会员资料不合法.
	ErrInvalidMember = errors.New("member: 会员资料不合法")

	// ErrOutOfBounds 坐标超出区域范围.
	ErrOutOfBounds = errors.New("member: 坐标超出范围")
)
