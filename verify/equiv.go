package verify

import (
	"context"

	"github.com/njchilds90/answercheck/cas"
)

func (e *Engine) checkEquiv(ctx context.Context, s *EquivSpec) (bool, Details, error) {
	lhs, err := Build("lhs", s.LHS)
	if err != nil {
		return false, nil, err
	}
	rhs, err := Build("rhs", s.RHS)
	if err != nil {
		return false, nil, err
	}
	v, err := e.Equal(ctx, lhs, rhs)
	if err != nil {
		return false, nil, err
	}
	return v.Matched, verdictDetails(v), nil
}

func verdictDetails(v Verdict) Details {
	d := Details{"method": string(v.Method), "detail": v.Detail}
	vars := v.Vars
	if vars == nil {
		vars = []string{}
	}
	d["vars"] = vars
	return d
}

// numericExpr rejects a condition where an expression is expected.
func numericExpr(field string, e cas.Expr) error {
	if cas.IsBoolean(e) {
		return &cas.EvalError{Expr: e.String(), Err: cas.ErrNotNumeric, Msg: field + " is a condition, not an expression"}
	}
	return nil
}
