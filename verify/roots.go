package verify

import (
	"context"
	"fmt"
	"math"

	"github.com/njchilds90/answercheck/cas"
)

// maxCompletenessDegree bounds the polynomials whose real roots are counted.
const maxCompletenessDegree = 4

// checkRoots requires every claimed root to zero expr and satisfy every
// constraint. Completeness against the true root count is advisory.
func (e *Engine) checkRoots(ctx context.Context, s *RootsSpec) (bool, Details, error) {
	expr, err := Build("expr", s.Expr)
	if err != nil {
		return false, nil, err
	}
	expr = cas.ZeroForm(expr)
	constraints := make([]cas.Expr, 0, len(s.Constraints))
	for i, raw := range s.Constraints {
		c, err := Build(fmt.Sprintf("constraints[%d]", i), raw)
		if err != nil {
			return false, nil, err
		}
		constraints = append(constraints, c)
	}
	name := variable(s.Variables, expr)

	var (
		checked  []string
		failures = []string{}
		distinct []float64
	)
	for i, raw := range s.Solutions {
		if err := ctx.Err(); err != nil {
			return false, nil, err
		}
		root, rv, err := buildNumber(fmt.Sprintf("solutions[%d]", i), raw)
		if err != nil {
			return false, nil, err
		}
		checked = append(checked, root.String())
		distinct = appendDistinct(distinct, rv, e.tol)

		got, err := cas.Sub(expr, name, root).Eval(nil)
		switch {
		case err != nil:
			failures = append(failures, fmt.Sprintf("%s=%s: %v", name, root, err))
			continue
		case !cas.Close(got, 0, e.tol):
			failures = append(failures, fmt.Sprintf("%s=%s: expr = %s, not 0", name, root, formatFloat(got)))
			continue
		}
		for j, c := range constraints {
			ok, err := cas.Truth(cas.Sub(c, name, root), nil, e.tol)
			if err != nil {
				failures = append(failures, fmt.Sprintf("%s=%s: constraints[%d] %s (%v)", name, root, j, c, err))
				break
			}
			if !ok {
				failures = append(failures, fmt.Sprintf("%s=%s violates %s", name, root, c))
				break
			}
		}
	}

	details := Details{"variable": name, "checked": checked, "failures": failures}
	if c, ok := completeness(expr, name, len(distinct)); ok {
		details["completeness"] = c
		if c["expected"] != c["claimed"] {
			details["warnings"] = []string{fmt.Sprintf(
				"claimed %d distinct real roots, polynomial has %d", c["claimed"], c["expected"])}
		}
	}
	return len(failures) == 0, details, nil
}

// completeness counts the distinct real roots of expr when it is a rational
// polynomial in name of degree 1 to 4.
func completeness(expr cas.Expr, name string, claimed int) (map[string]int, bool) {
	p, ok := cas.PolyCoeffs(expr, name)
	if !ok || p.Degree() < 1 || p.Degree() > maxCompletenessDegree {
		return nil, false
	}
	return map[string]int{"expected": cas.CountRealRoots(p), "claimed": claimed}, true
}

func appendDistinct(vals []float64, v float64, tol float64) []float64 {
	if math.IsNaN(v) {
		return vals
	}
	for _, w := range vals {
		if cas.Close(v, w, tol) {
			return vals
		}
	}
	return append(vals, v)
}
