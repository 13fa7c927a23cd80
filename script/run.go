package script

import (
	"context"
	"strconv"
	"time"

	"github.com/functils/functils/config"
	"github.com/functils/functils/errors"
	"github.com/functils/functils/list"
	"github.com/functils/functils/log"
	"github.com/functils/functils/metrics"
)

// Result is the outcome of a script run.
type Result struct {
	// List is the list left after the last operation.
	List *list.List[string]
	// Output holds one line per printing operation, in order.
	Output []string
}

// Run executes ops against l. l is consumed: the caller must continue with Result.List.
// Run stops at the first invalid operation or when ctx is done.
func Run(ctx context.Context, l *list.List[string], ops []Op) (*Result, error) {
	if len(ops) > config.MaxScriptOps {
		return nil, errors.Wrapf(ErrTooManyOps, "%d > %d", len(ops), config.MaxScriptOps)
	}

	lg := log.Ctx(ctx).With(log.Scope("script"))
	startedAt := time.Now()

	res := &Result{List: l}

	for i, op := range ops {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrapf(err, "op #%d", i+1)
		}

		err := op.Check()
		if err != nil {
			return nil, errors.Wrapf(err, "op #%d", i+1)
		}

		lg.With(log.Operation(string(op.Kind))).Tracef("op #%d: %s", i+1, op)
		res.apply(op)
		metrics.AddOpExecuted(string(op.Kind))
	}

	metrics.SetLastListLength(res.List.Len())
	lg.With(log.Int("ops", len(ops)), log.Elapsed(time.Since(startedAt))).
		Debugf("Script done: %s", res.List)

	return res, nil
}

func (r *Result) apply(op Op) {
	switch op.Kind {
	case OpCons:
		r.List.Cons(op.Args[0])

	case OpAppend:
		r.List.Append(list.Of(op.Args...))

	case OpHead:
		r.print(r.List.Head().String())

	case OpTail:
		r.List = r.List.Tail()

	case OpUncons:
		res := r.List.Uncons()

		p, ok := res.Get()
		if !ok {
			r.List = list.New[string]()
		} else {
			r.List = p.Second()
		}

		r.print(res.String())

	case OpNull:
		r.print(strconv.FormatBool(r.List.Null()))

	case OpLen:
		r.print(strconv.Itoa(r.List.Len()))

	case OpShow:
		r.print(r.List.String())

	case OpClear:
		r.List.Clear()
	}
}

func (r *Result) print(s string) {
	r.Output = append(r.Output, s)
}
