package verify

import (
	"context"
	"fmt"

	"github.com/njchilds90/answercheck/cas"
)

// checkSystem substitutes the solution into every equation and requires
// each residual to vanish.
func (e *Engine) checkSystem(ctx context.Context, s *SystemSolveSpec) (bool, Details, error) {
	failures := []string{}
	residuals := make([]string, 0, len(s.Equations))
	for i, raw := range s.Equations {
		if err := ctx.Err(); err != nil {
			return false, nil, err
		}
		field := fmt.Sprintf("equations[%d]", i)
		eq, err := equation(field, raw)
		if err != nil {
			return false, nil, err
		}
		r, err := substitute(eq, "solution", s.Solution)
		if err != nil {
			return false, nil, err
		}
		v, err := r.Eval(nil)
		if err != nil {
			failures = append(failures, fmt.Sprintf("%s: %v", raw, err))
			residuals = append(residuals, r.String())
			continue
		}
		residuals = append(residuals, formatFloat(v))
		if !cas.Close(v, 0, e.tol) {
			failures = append(failures, fmt.Sprintf("%s -> %s != 0", raw, formatFloat(v)))
		}
	}
	return len(failures) == 0, Details{"failures": failures, "residuals": residuals}, nil
}

// equation builds lhs - rhs for text containing "=", else the text itself.
func equation(field, raw string) (cas.Expr, error) {
	if lhs, rhs, ok := splitEquation(raw); ok {
		l, err := Build(field+".lhs", lhs)
		if err != nil {
			return nil, err
		}
		r, err := Build(field+".rhs", rhs)
		if err != nil {
			return nil, err
		}
		return minus(l, r), nil
	}
	e, err := Build(field, raw)
	if err != nil {
		return nil, err
	}
	if err := numericExpr(field, e); err != nil {
		return nil, err
	}
	return e, nil
}
