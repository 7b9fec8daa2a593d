// Package loader 从文本文件批量加载会员.
//
// 每行一条记录，空白分隔:
//
//	id name phone x y level money
package loader

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Tsukikage7/rankstore/logger"
	"github.com/Tsukikage7/rankstore/member"
	"github.com/Tsukikage7/rankstore/rankstore"
)

const fieldCount = 7

// ParseError 记录解析失败.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("loader: 第 %d 行: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ErrFieldCount 字段数量不正确.
var ErrFieldCount = errors.New("字段数量不正确")

// Result 加载统计.
type Result struct {
	Loaded     int
	Duplicates int
	Elapsed    time.Duration
}

// Option 配置选项函数.
type Option func(*options)

type options struct {
	logger logger.Logger
}

// WithLogger 设置日志记录器.
func WithLogger(log logger.Logger) Option {
	return func(o *options) {
		if log != nil {
			o.logger = log
		}
	}
}

// Parse 逐行解析记录并交给 fn，fn 返回错误时停止.
//
// 空行被忽略.
func Parse(r io.Reader, fn func(member.Record) error) error {
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		rec, err := parseRecord(fields)
		if err != nil {
			return &ParseError{Line: line, Err: err}
		}
		if err := fn(rec); err != nil {
			return err
		}
	}
	return scanner.Err()
}

func parseRecord(fields []string) (member.Record, error) {
	if len(fields) != fieldCount {
		return member.Record{}, fmt.Errorf("%w: 期望 %d 个，实际 %d 个", ErrFieldCount, fieldCount, len(fields))
	}

	id, err := strconv.ParseUint(fields[0], 10, 64)
	if err != nil {
		return member.Record{}, fmt.Errorf("id: %w", err)
	}
	ints := make([]int64, 4)
	for i, name := range []string{"x", "y", "level", "money"} {
		ints[i], err = strconv.ParseInt(fields[3+i], 10, 64)
		if err != nil {
			return member.Record{}, fmt.Errorf("%s: %w", name, err)
		}
	}

	return member.Record{
		ID:    id,
		Name:  fields[1],
		Phone: fields[2],
		X:     int(ints[0]),
		Y:     int(ints[1]),
		Level: int(ints[2]),
		Money: ints[3],
	}, nil
}

// Load 批量加载会员，重复的 id 记录告警后跳过，全部加载后重建一次排名.
func Load(ctx context.Context, svc *member.Service, r io.Reader, opts ...Option) (Result, error) {
	o := &options{logger: logger.NewNop()}
	for _, opt := range opts {
		opt(o)
	}
	log := o.logger.WithContext(ctx)

	var result Result
	start := time.Now()
	err := Parse(r, func(rec member.Record) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		err := svc.Preload(rec)
		if errors.Is(err, rankstore.ErrAlreadyExists) {
			result.Duplicates++
			log.Warnf("会员 %d 重复，已跳过", rec.ID)
			return nil
		}
		if err != nil {
			return fmt.Errorf("会员 %d: %w", rec.ID, err)
		}
		result.Loaded++
		return nil
	})
	if err != nil {
		return result, err
	}

	svc.Finish()
	result.Elapsed = time.Since(start)

	log.With(
		logger.Int("loaded", result.Loaded),
		logger.Int("duplicates", result.Duplicates),
		logger.Duration("elapsed", result.Elapsed),
	).Info("会员加载完成")
	return result, nil
}

// LoadFile 从文件批量加载会员.
func LoadFile(ctx context.Context, svc *member.Service, path string, opts ...Option) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return Result{}, err
	}
	defer f.Close()
	return Load(ctx, svc, f, opts...)
}
