package verify

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/njchilds90/answercheck/cas"
)

// checkInterval evaluates the condition at one interior point of every
// claimed interval. All points must satisfy it, and there must be at least
// one. Brackets are read but not checked.
func (e *Engine) checkInterval(ctx context.Context, s *IntervalSpec) (bool, Details, error) {
	cond, err := Build("condition", s.Condition)
	if err != nil {
		return false, nil, err
	}
	if !cas.IsBoolean(cond) {
		return false, nil, &SpecError{Kind: KindInterval, Field: "condition", Err: ErrInvalidField,
			Msg: fmt.Sprintf("'condition' must be a relation, got %s", cond)}
	}
	name := variable(s.Variables, cond)

	failures := []string{}
	points := []string{}
	anyOK := false
	for i, items := range s.Intervals {
		if err := ctx.Err(); err != nil {
			return false, nil, err
		}
		field := fmt.Sprintf("intervals[%d]", i)
		lo, hi, err := splitInterval(items)
		if err != nil {
			failures = append(failures, fmt.Sprintf("%s: %v", field, err))
			continue
		}
		mid, err := representative(field, lo, hi)
		if err != nil {
			failures = append(failures, err.Error())
			continue
		}
		points = append(points, mid.String())
		ok, err := cas.Truth(cas.Sub(cond, name, mid), nil, e.tol)
		switch {
		case err != nil:
			failures = append(failures, fmt.Sprintf("%s: %s=%s: %v", field, name, mid, err))
		case !ok:
			failures = append(failures, fmt.Sprintf("%s: %s=%s does not satisfy %s", field, name, mid, cond))
		default:
			anyOK = true
		}
	}
	return len(failures) == 0 && anyOK, Details{"variable": name, "failures": failures, "points": points}, nil
}

func isOpenBracket(s string) bool  { s = strings.TrimSpace(s); return s == "[" || s == "(" }
func isCloseBracket(s string) bool { s = strings.TrimSpace(s); return s == "]" || s == ")" }

// splitInterval returns the bounds of [l, a, b, r], [l, a, b] or [a, b, r].
// A single item is read as interval notation such as "(2, oo]".
func splitInterval(items []string) (lo, hi string, err error) {
	switch len(items) {
	case 4:
		return items[1], items[2], nil
	case 3:
		if isOpenBracket(items[0]) {
			return items[1], items[2], nil
		}
		return items[0], items[1], nil
	case 1:
		t := strings.TrimSpace(items[0])
		if len(t) >= 2 && isOpenBracket(t[:1]) && isCloseBracket(t[len(t)-1:]) {
			if lo, hi, ok := strings.Cut(t[1:len(t)-1], ","); ok {
				return lo, hi, nil
			}
		}
	}
	return "", "", fmt.Errorf("bad interval %v", items)
}

// representative picks the exact midpoint of finite bounds, or one unit
// inside the finite bound of a half-line.
func representative(field, lo, hi string) (cas.Expr, error) {
	a, av, err := parseBound(field+".lower", lo)
	if err != nil {
		return nil, err
	}
	b, bv, err := parseBound(field+".upper", hi)
	if err != nil {
		return nil, err
	}
	switch {
	case math.IsInf(av, 0) && math.IsInf(bv, 0):
		return nil, fmt.Errorf("%s: interval cannot be unbounded on both sides", field)
	case math.IsInf(av, 0):
		return cas.AddOf(b, cas.N(-1)), nil
	case math.IsInf(bv, 0):
		return cas.AddOf(a, cas.N(1)), nil
	}
	return cas.MulOf(cas.F(1, 2), cas.AddOf(a, b)), nil
}
