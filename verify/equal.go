package verify

import (
	"context"
	"fmt"

	"github.com/njchilds90/answercheck/cas"
)

// Method names the path that settled an equality check.
type Method string

const (
	MethodSymbolic       Method = "symbolic"
	MethodNumericConst   Method = "numeric-const"
	MethodNumericSamples Method = "numeric-samples"
)

// Verdict is the outcome of an equality check. A symbolic match means the
// difference simplified to exactly zero; a sampled match means both sides
// agreed within tolerance at every sample point.
type Verdict struct {
	Matched bool
	Method  Method
	Detail  string
	Vars    []string
}

var samplePoints = []float64{-2, -1, 0, 1, 2}

// Equal decides whether lhs and rhs are the same expression. It tries an
// exact zero difference first, then compares constants numerically, and
// otherwise samples the first free symbol at -2..2. A failed evaluation at
// a sample counts as a mismatch.
func (e *Engine) Equal(ctx context.Context, lhs, rhs cas.Expr) (Verdict, error) {
	if err := ctx.Err(); err != nil {
		return Verdict{}, err
	}
	if cas.IsBoolean(lhs) || cas.IsBoolean(rhs) {
		return Verdict{}, fmt.Errorf("cannot compare conditions %s and %s: %w", lhs, rhs, cas.ErrNotNumeric)
	}
	v := e.equal(ctx, lhs, rhs)
	equalityMethods.WithLabelValues(string(v.Method)).Inc()
	return v, ctx.Err()
}

func (e *Engine) equal(ctx context.Context, lhs, rhs cas.Expr) Verdict {
	if cas.IsZero(minus(lhs, rhs)) {
		return Verdict{Matched: true, Method: MethodSymbolic, Detail: "difference simplifies to 0"}
	}
	vars := symbolsOf(lhs, rhs)
	if len(vars) == 0 {
		v, err := e.compareConst(lhs, rhs)
		if err != nil {
			return Verdict{Method: MethodNumericConst, Detail: err.Error()}
		}
		return v
	}
	name := vars[0]
	for _, p := range samplePoints {
		if ctx.Err() != nil {
			return Verdict{Method: MethodNumericSamples, Vars: vars, Detail: "canceled"}
		}
		env := cas.Env{name: p}
		a, errA := lhs.Eval(env)
		b, errB := rhs.Eval(env)
		switch {
		case errA != nil:
			return Verdict{Method: MethodNumericSamples, Vars: vars,
				Detail: fmt.Sprintf("%s=%g: %v", name, p, errA)}
		case errB != nil:
			return Verdict{Method: MethodNumericSamples, Vars: vars,
				Detail: fmt.Sprintf("%s=%g: %v", name, p, errB)}
		case !cas.Close(a, b, e.tol):
			return Verdict{Method: MethodNumericSamples, Vars: vars,
				Detail: fmt.Sprintf("%s=%g: %s != %s", name, p, formatFloat(a), formatFloat(b))}
		}
	}
	return Verdict{Matched: true, Method: MethodNumericSamples, Vars: vars,
		Detail: fmt.Sprintf("agree at %s=%v", name, samplePoints)}
}

// compareConst evaluates both sides and compares them within tolerance.
// Evaluation failures are returned as errors.
func (e *Engine) compareConst(lhs, rhs cas.Expr) (Verdict, error) {
	a, err := lhs.Eval(nil)
	if err != nil {
		return Verdict{}, err
	}
	b, err := rhs.Eval(nil)
	if err != nil {
		return Verdict{}, err
	}
	v := Verdict{Matched: cas.Close(a, b, e.tol), Method: MethodNumericConst}
	if v.Matched {
		v.Detail = fmt.Sprintf("%s ~ %s", formatFloat(a), formatFloat(b))
	} else {
		v.Detail = fmt.Sprintf("%s != %s", formatFloat(a), formatFloat(b))
	}
	return v, nil
}
