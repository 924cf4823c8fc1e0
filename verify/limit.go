package verify

import (
	"context"
	"math"
	"strings"

	"github.com/njchilds90/answercheck/cas"
)

// checkLimit computes the one-sided limit of expr and compares it with the
// claimed value. Without a value the limit only has to exist, possibly as
// an infinity.
func (e *Engine) checkLimit(ctx context.Context, s *LimitSpec) (bool, Details, error) {
	expr, err := Build("expr", s.Expr)
	if err != nil {
		return false, nil, err
	}
	if err := numericExpr("expr", expr); err != nil {
		return false, nil, err
	}
	point, pv, err := limitPoint(s.Approaches)
	if err != nil {
		return false, nil, err
	}
	def := cas.FromRight
	if math.IsInf(pv, -1) {
		def = cas.FromLeft
	}
	dir, err := cas.ParseDirection(s.Direction, def)
	if err != nil {
		return false, nil, &SpecError{Kind: KindLimit, Field: "direction", Err: ErrInvalidField, Msg: err.Error()}
	}
	name := variable(s.Variables, expr)

	r, err := cas.Limit(ctx, expr, name, point, dir)
	if err != nil {
		return false, nil, err
	}
	details := Details{
		"variable":  name,
		"got":       r.String(),
		"method":    r.Method,
		"direction": directionLabel(dir),
	}
	if r.Kind == cas.LimitUndefined {
		return false, details, nil
	}
	if strings.TrimSpace(s.Value) == "" {
		return true, details, nil
	}
	_, want, err := parseBound("value", s.Value)
	if err != nil {
		return false, nil, err
	}
	details["expected"] = formatFloat(want)
	return cas.Close(r.Value, want, e.tol), details, nil
}

// limitPoint reads the approached point, mapping infinity spellings onto
// the kernel's infinity.
func limitPoint(raw string) (cas.Expr, float64, error) {
	point, pv, err := parseBound("approaches", raw)
	if err != nil {
		return nil, 0, err
	}
	switch {
	case math.IsInf(pv, 1):
		return cas.Infinity, pv, nil
	case math.IsInf(pv, -1):
		return cas.NegInfinity(), pv, nil
	}
	return point, pv, nil
}

func directionLabel(d cas.Direction) string {
	if d == cas.FromLeft {
		return "-"
	}
	return "+"
}
