// Package dispatcher 逐行读取文本命令并调用会员业务.
//
// 命令格式见 Run，每条命令在独立的 span 中执行.
package dispatcher

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Tsukikage7/rankstore/logger"
	"github.com/Tsukikage7/rankstore/member"
	"github.com/Tsukikage7/rankstore/metrics"
	"github.com/Tsukikage7/rankstore/rankstore"
	"github.com/Tsukikage7/rankstore/recovery"
)

// 固定输出.
const (
	msgNotFound        = "Not found!"
	msgInvalidArgument = "Invalid arguments"
	msgEmptyHistory    = "0"
)

// opUnknown 未知命令的指标标签.
const opUnknown = "unknown"

type handler func(d *Dispatcher, w io.Writer, a *args) (string, error)

var handlers = map[string]handler{
	"I": (*Dispatcher).join,
	"P": (*Dispatcher).info,
	"A": (*Dispatcher).deposit,
	"F": (*Dispatcher).top,
	"R": (*Dispatcher).history,
	"B": (*Dispatcher).buy,
}

// Dispatcher 命令分发器.
type Dispatcher struct {
	svc    *member.Service
	opts   *options
	tracer trace.Tracer
}

// New 创建命令分发器.
func New(svc *member.Service, opts ...Option) *Dispatcher {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return &Dispatcher{svc: svc, opts: o, tracer: o.tracer()}
}

// Run 从 in 读取命令并把结果写到 out，直到 Q 命令、输入结束或 ctx 取消.
//
//	I id name phone x y   注册        -> depth ok
//	P id                  查询        -> name phone level money depth
//	A id amount           充值        -> depth level
//	F                     排行榜      -> id money（每行一条）
//	R id n                流水        -> dir amount（每行一条，1 入账 0 出账）
//	B id x y spent        购买区域    -> approved money owner
//	Q                     退出
//
// 查询对象不存在时输出 "Not found!"，参数错误输出 "Invalid arguments".
func (d *Dispatcher) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	session := uuid.NewString()
	ctx = logger.ContextWithTraceID(ctx, session)
	log := d.opts.logger.WithContext(ctx)
	log.Info("命令会话开始")

	w := bufio.NewWriter(out)
	scanner := bufio.NewScanner(in)
	commands := 0
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if fields[0] == "Q" {
			break
		}

		commands++
		if err := d.execute(ctx, w, fields[0], fields[1:]); err != nil {
			return err
		}
		if err := w.Flush(); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	log.With(logger.Int("commands", commands)).Info("命令会话结束")
	return w.Flush()
}

// execute 在 span 中执行一条命令并记录指标.
func (d *Dispatcher) execute(ctx context.Context, w io.Writer, op string, fields []string) error {
	h, ok := handlers[op]
	label := op
	if !ok {
		label = opUnknown
	}

	ctx, span := d.tracer.Start(ctx, "command "+label, trace.WithAttributes(
		attribute.String("rankstore.command", label),
		attribute.Int("rankstore.args", len(fields)),
	))
	defer span.End()

	start := time.Now()
	var (
		result string
		err    error
	)
	if ok {
		err = recovery.Guard(ctx, func() error {
			var herr error
			result, herr = h(d, w, &args{fields: fields})
			return herr
		}, recovery.WithLogger(d.opts.logger))
		var perr *recovery.PanicError
		if errors.As(err, &perr) {
			result = metrics.ResultPanic
		}
	} else {
		result = metrics.ResultInvalid
		_, err = fmt.Fprintf(w, "Invalid operation %s\n", op)
	}

	span.SetAttributes(attribute.String("rankstore.result", result))
	switch {
	case err != nil:
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	case result == metrics.ResultInvalid:
		span.SetStatus(codes.Error, result)
	}
	if d.opts.metrics != nil {
		d.opts.metrics.RecordCommand(label, result, time.Since(start))
	}
	d.opts.logger.WithContext(ctx).Debugf("命令 %s 结果 %s", label, result)
	return err
}

// outcome 把业务错误转换为输出与结果标签，其余错误原样返回.
func outcome(w io.Writer, err error) (string, error) {
	switch {
	case errors.Is(err, rankstore.ErrNotFound):
		_, werr := fmt.Fprintln(w, msgNotFound)
		return metrics.ResultNotFound, werr
	case errors.Is(err, errArguments),
		errors.Is(err, member.ErrInvalidMember),
		errors.Is(err, member.ErrOutOfBounds):
		_, werr := fmt.Fprintln(w, msgInvalidArgument)
		return metrics.ResultInvalid, werr
	default:
		return "", err
	}
}

func (d *Dispatcher) join(w io.Writer, a *args) (string, error) {
	id, name, phone, x, y := a.uint64(), a.str(), a.str(), a.int(), a.int()
	if err := a.done(); err != nil {
		return outcome(w, err)
	}

	depth, ok, err := d.svc.Join(id, name, phone, x, y)
	if err != nil {
		return outcome(w, err)
	}
	_, err = fmt.Fprintf(w, "%d %d\n", depth, boolInt(ok))
	if !ok {
		return metrics.ResultDuplicate, err
	}
	return metrics.ResultOK, err
}

func (d *Dispatcher) info(w io.Writer, a *args) (string, error) {
	id := a.uint64()
	if err := a.done(); err != nil {
		return outcome(w, err)
	}

	m, depth, err := d.svc.Info(id)
	if err != nil {
		return outcome(w, err)
	}
	_, err = fmt.Fprintf(w, "%s %s %d %d %d\n", m.Name, m.Phone, m.Level, m.Money, depth)
	return metrics.ResultOK, err
}

func (d *Dispatcher) deposit(w io.Writer, a *args) (string, error) {
	id, amount := a.uint64(), a.int64()
	if err := a.done(); err != nil {
		return outcome(w, err)
	}

	depth, level, err := d.svc.Deposit(id, amount)
	if err != nil {
		return outcome(w, err)
	}
	_, err = fmt.Fprintf(w, "%d %d\n", depth, level)
	return metrics.ResultOK, err
}

func (d *Dispatcher) top(w io.Writer, a *args) (string, error) {
	if err := a.done(); err != nil {
		return outcome(w, err)
	}

	ranked := d.svc.Top(d.opts.top)
	if len(ranked) == 0 {
		return outcome(w, rankstore.ErrNotFound)
	}
	for _, r := range ranked {
		if _, err := fmt.Fprintf(w, "%d %d\n", r.ID, r.Money); err != nil {
			return "", err
		}
	}
	return metrics.ResultOK, nil
}

func (d *Dispatcher) history(w io.Writer, a *args) (string, error) {
	id, n := a.uint64(), a.int()
	if err := a.done(); err != nil {
		return outcome(w, err)
	}

	txs, err := d.svc.History(id, n)
	if err != nil {
		return outcome(w, err)
	}
	if len(txs) == 0 {
		_, err = fmt.Fprintln(w, msgEmptyHistory)
		return metrics.ResultOK, err
	}
	for _, tx := range txs {
		if _, err := fmt.Fprintf(w, "%d %d\n", tx.Direction, tx.Amount); err != nil {
			return "", err
		}
	}
	return metrics.ResultOK, nil
}

func (d *Dispatcher) buy(w io.Writer, a *args) (string, error) {
	id, x, y, spent := a.uint64(), a.int(), a.int(), a.int64()
	if err := a.done(); err != nil {
		return outcome(w, err)
	}

	p, err := d.svc.BuyArea(id, x, y, spent)
	if err != nil {
		return outcome(w, err)
	}
	_, err = fmt.Fprintf(w, "%d %d %d\n", boolInt(p.Approved), p.Money, p.Owner)
	return metrics.ResultOK, err
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
