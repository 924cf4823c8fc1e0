package verify

import (
	"context"
	"fmt"

	"github.com/njchilds90/answercheck/cas"
)

// checkValue substitutes the at map into expr and compares the constant
// result with the claimed value.
func (e *Engine) checkValue(ctx context.Context, s *ValueSpec) (bool, Details, error) {
	expr, err := Build("expr", s.Expr)
	if err != nil {
		return false, nil, err
	}
	if expr, err = substitute(expr, "at", s.At); err != nil {
		return false, nil, err
	}
	want, err := Build("value", s.Value)
	if err != nil {
		return false, nil, err
	}
	if err := ctx.Err(); err != nil {
		return false, nil, err
	}
	if free := symbolsOf(expr); len(free) > 0 {
		return false, Details{"got": expr.String(), "expected": want.String()},
			fmt.Errorf("expr: %w", &cas.EvalError{Expr: expr.String(), Err: cas.ErrUnbound,
				Msg: fmt.Sprintf("no value given for %v", free)})
	}
	v, err := e.compareConst(expr, want)
	if err != nil {
		return false, nil, err
	}
	got, _ := expr.Eval(nil)
	exp, _ := want.Eval(nil)
	return v.Matched, Details{"got": formatFloat(got), "expected": formatFloat(exp), "method": string(v.Method)}, nil
}
