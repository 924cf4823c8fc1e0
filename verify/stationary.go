package verify

import (
	"context"
	"fmt"

	"github.com/njchilds90/answercheck/cas"
)

const (
	natureMin    = "min"
	natureMax    = "max"
	natureSaddle = "saddle"
)

// checkStationary requires f'(x0) = 0 and f(x0) = y0, and when a nature is
// claimed, the matching sign of f''(x0).
func (e *Engine) checkStationary(ctx context.Context, s *StationaryPointSpec) (bool, Details, error) {
	if s.Point.X == "" || s.Point.Y == "" {
		return false, nil, missingField(KindStationaryPoint, "point", "'point' with 'x' and 'y' required")
	}
	f, err := Build("of", s.Of)
	if err != nil {
		return false, nil, err
	}
	if err := numericExpr("of", f); err != nil {
		return false, nil, err
	}
	x0, _, err := buildNumber("point.x", s.Point.X)
	if err != nil {
		return false, nil, err
	}
	_, y0, err := buildNumber("point.y", s.Point.Y)
	if err != nil {
		return false, nil, err
	}
	name := variable(s.Variables, f)

	d1 := cas.Diff(f, name)
	slope, err := cas.Sub(d1, name, x0).Eval(nil)
	if err != nil {
		return false, nil, fmt.Errorf("derivative at point: %w", err)
	}
	fx, err := cas.Sub(f, name, x0).Eval(nil)
	if err != nil {
		return false, nil, fmt.Errorf("value at point: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return false, nil, err
	}
	zero := cas.Close(slope, 0, e.tol)
	match := cas.Close(fx, y0, e.tol)
	details := Details{
		"variable":        name,
		"derivative":      d1.String(),
		"derivative_zero": zero,
		"slope":           formatFloat(slope),
		"value_match":     match,
		"value":           formatFloat(fx),
	}
	ok := zero && match
	if s.Nature == "" {
		return ok, details, nil
	}

	curv, err := cas.Sub(cas.Diff(d1, name), name, x0).Eval(nil)
	if err != nil {
		return false, nil, fmt.Errorf("second derivative at point: %w", err)
	}
	var nature bool
	switch s.Nature {
	case natureMin:
		nature = curv > 0 && !cas.Close(curv, 0, e.tol)
	case natureMax:
		nature = curv < 0 && !cas.Close(curv, 0, e.tol)
	case natureSaddle:
		nature = cas.Close(curv, 0, e.tol)
	}
	details["second_derivative"] = formatFloat(curv)
	details["nature"] = map[string]any{"claimed": s.Nature, "ok": nature}
	return ok && nature, details, nil
}
