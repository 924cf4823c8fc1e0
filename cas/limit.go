package cas

import (
	"context"
	"fmt"
	"math"
	"strconv"
)

// ============================================================
// Limits
// ============================================================

// Direction selects the side a one-sided limit approaches from.
type Direction int

const (
	FromRight Direction = 1
	FromLeft  Direction = -1
)

// ParseDirection maps "+" and "-" onto a Direction. An empty string
// yields def.
func ParseDirection(s string, def Direction) (Direction, error) {
	switch s {
	case "":
		return def, nil
	case "+":
		return FromRight, nil
	case "-":
		return FromLeft, nil
	}
	return 0, fmt.Errorf("direction must be + or -, got %q", s)
}

type LimitKind int

const (
	LimitUndefined LimitKind = iota
	LimitFinite
	LimitPosInf
	LimitNegInf
)

// LimitResult holds the outcome of a limit computation.
type LimitResult struct {
	Kind   LimitKind
	Value  float64 // finite value, or +/-Inf; NaN when undefined
	Exact  Expr    // exact value when the symbolic path found one
	Method string
}

func (r LimitResult) String() string {
	switch r.Kind {
	case LimitPosInf:
		return "oo"
	case LimitNegInf:
		return "-oo"
	case LimitUndefined:
		return "undefined"
	}
	if r.Exact != nil {
		return r.Exact.String()
	}
	return strconv.FormatFloat(r.Value, 'g', 12, 64)
}

const maxLHopital = 5

// Limit computes the one-sided limit of e as name approaches point. Points
// at +/-oo are handled by substituting name = +/-1/t with t -> 0+. It
// tries direct substitution, then the single fraction form with
// L'Hopital's rule, and falls back to numeric extrapolation. Expressions
// containing abs, floor, ceil or sign go straight to the numeric path.
func Limit(ctx context.Context, e Expr, name string, point Expr, dir Direction) (LimitResult, error) {
	pv, err := point.Eval(nil)
	if err != nil {
		return LimitResult{}, fmt.Errorf("limit point: %w", err)
	}
	if math.IsInf(pv, 0) {
		t := freshSymbol(e, "t")
		sign := N(1)
		if pv < 0 {
			sign = N(-1)
		}
		inv := MulOf(sign, PowOf(S(t), N(-1)))
		return limitAt(ctx, powersAsExp(Sub(e, name, inv), t), t, N(0), 0, FromRight, maxLHopital)
	}
	return limitAt(ctx, powersAsExp(e.Simplify(), name), name, point.Simplify(), pv, dir, maxLHopital)
}

func freshSymbol(e Expr, base string) string {
	free := FreeSymbols(e)
	name := base
	for i := 0; ; i++ {
		if _, taken := free[name]; !taken {
			return name
		}
		name = fmt.Sprintf("%s%d", base, i)
	}
}

// powersAsExp rewrites every b^u where both b and u depend on name as
// exp(u*log(b)).
func powersAsExp(e Expr, name string) Expr {
	switch v := e.(type) {
	case *Add:
		terms := make([]Expr, len(v.terms))
		for i, t := range v.terms {
			terms[i] = powersAsExp(t, name)
		}
		return AddOf(terms...)
	case *Mul:
		factors := make([]Expr, len(v.factors))
		for i, f := range v.factors {
			factors[i] = powersAsExp(f, name)
		}
		return MulOf(factors...)
	case *Pow:
		base, exp := powersAsExp(v.base, name), powersAsExp(v.exp, name)
		if dependsOn(base, name) && dependsOn(exp, name) {
			return ExpOf(MulOf(exp, LogOf(base)))
		}
		return PowOf(base, exp)
	case *Func:
		return FuncOf(v.name, powersAsExp(v.arg, name))
	}
	return e
}

func dependsOn(e Expr, name string) bool {
	_, ok := FreeSymbols(e)[name]
	return ok
}

func limitAt(ctx context.Context, e Expr, name string, point Expr, pv float64, dir Direction, depth int) (LimitResult, error) {
	if err := ctx.Err(); err != nil {
		return LimitResult{}, err
	}
	if isSmooth(e) {
		sub := Sub(e, name, point)
		if v, err := sub.Eval(nil); err == nil {
			return finiteOrInf(v, sub, "substitution"), nil
		}
		if f, ok := e.(*Func); ok && f.name == "exp" {
			return limitExp(ctx, f, name, point, pv, dir, depth)
		}
		num, den := Together(e)
		nv, nerr := Sub(num, name, point).Eval(nil)
		dv, derr := Sub(den, name, point).Eval(nil)
		if nerr == nil && derr == nil {
			switch {
			case dv != 0:
				return finiteOrInf(nv/dv, nil, "together"), nil
			case nv != 0:
				return poleSign(e, name, pv, dir), nil
			case depth > 0:
				quot := MulOf(Diff(num, name), PowOf(Diff(den, name), N(-1)))
				r, err := limitAt(ctx, quot, name, point, pv, dir, depth-1)
				if err != nil {
					return r, err
				}
				if r.Kind != LimitUndefined && r.Method != "numeric" {
					r.Method = "lhopital"
				}
				return r, nil
			}
		}
	}
	return numericLimit(ctx, e, name, pv, dir), nil
}

// limitExp takes the limit of exp(u) through the limit of u.
func limitExp(ctx context.Context, f *Func, name string, point Expr, pv float64, dir Direction, depth int) (LimitResult, error) {
	inner, err := limitAt(ctx, f.arg, name, point, pv, dir, depth)
	if err != nil {
		return inner, err
	}
	switch inner.Kind {
	case LimitPosInf:
		return LimitResult{Kind: LimitPosInf, Value: math.Inf(1), Method: inner.Method}, nil
	case LimitNegInf:
		return LimitResult{Kind: LimitFinite, Value: 0, Exact: N(0), Method: inner.Method}, nil
	case LimitUndefined:
		return numericLimit(ctx, f, name, pv, dir), nil
	}
	var exact Expr
	if inner.Exact != nil {
		exact = ExpOf(inner.Exact)
	}
	return finiteOrInf(math.Exp(inner.Value), exact, inner.Method), nil
}

func finiteOrInf(v float64, exact Expr, method string) LimitResult {
	switch {
	case math.IsInf(v, 1):
		return LimitResult{Kind: LimitPosInf, Value: v, Method: method}
	case math.IsInf(v, -1):
		return LimitResult{Kind: LimitNegInf, Value: v, Method: method}
	}
	if exact != nil {
		if _, ok := exact.(*Num); !ok {
			exact = nil
		}
	}
	return LimitResult{Kind: LimitFinite, Value: v, Exact: exact, Method: method}
}

// poleSign decides the sign of a pole from a sample just beside the point.
func poleSign(e Expr, name string, pv float64, dir Direction) LimitResult {
	h := 1e-9 * math.Max(1, math.Abs(pv))
	v, err := e.Eval(Env{name: pv + float64(dir)*h})
	switch {
	case err != nil || v == 0:
		return LimitResult{Kind: LimitUndefined, Value: math.NaN(), Method: "pole"}
	case v > 0:
		return LimitResult{Kind: LimitPosInf, Value: math.Inf(1), Method: "pole"}
	}
	return LimitResult{Kind: LimitNegInf, Value: math.Inf(-1), Method: "pole"}
}

func isSmooth(e Expr) bool {
	switch v := e.(type) {
	case *Func:
		switch v.name {
		case "abs", "floor", "ceil", "sign":
			return false
		}
		return isSmooth(v.arg)
	case *Add:
		for _, t := range v.terms {
			if !isSmooth(t) {
				return false
			}
		}
	case *Mul:
		for _, f := range v.factors {
			if !isSmooth(f) {
				return false
			}
		}
	case *Pow:
		return isSmooth(v.base) && isSmooth(v.exp)
	}
	return true
}

const (
	numericTol     = 1e-6
	divergentValue = 1e8
)

// numericLimit samples e at pv + dir*10^-k and extrapolates with one
// Richardson step. Monotone growth with steps that do not shrink is
// reported as divergence.
func numericLimit(ctx context.Context, e Expr, name string, pv float64, dir Direction) LimitResult {
	undefined := LimitResult{Kind: LimitUndefined, Value: math.NaN(), Method: "numeric"}
	scale := math.Max(1, math.Abs(pv))
	var vals []float64
	for k := 1; k <= 8; k++ {
		if ctx.Err() != nil {
			return undefined
		}
		x := pv + float64(dir)*math.Pow(10, -float64(k))*scale
		v, err := e.Eval(Env{name: x})
		if err != nil {
			vals = vals[:0]
			continue
		}
		vals = append(vals, v)
	}
	n := len(vals)
	if n < 4 {
		return undefined
	}
	if r, ok := divergence(vals); ok {
		return r
	}
	last, prev := vals[n-1], vals[n-2]
	if Close(last, prev, numericTol) {
		return finiteOrInf(last, nil, "numeric")
	}
	rk := (10*last - prev) / 9
	rk1 := (10*prev - vals[n-3]) / 9
	if Close(rk, rk1, numericTol) {
		return finiteOrInf(rk, nil, "numeric")
	}
	return undefined
}

func divergence(vals []float64) (LimitResult, bool) {
	n := len(vals)
	tail := vals[n-4:]
	sign := math.Copysign(1, tail[3]-tail[2])
	for i := 1; i < len(tail); i++ {
		d := tail[i] - tail[i-1]
		if d == 0 || math.Copysign(1, d) != sign || math.Abs(tail[i]) <= math.Abs(tail[i-1]) {
			return LimitResult{}, false
		}
	}
	last := tail[3]
	growing := math.Abs(tail[3]-tail[2]) >= 0.5*math.Abs(tail[2]-tail[1]) &&
		math.Abs(last) >= 4*math.Abs(vals[0])
	if math.Abs(last) < divergentValue && !growing {
		return LimitResult{}, false
	}
	if last > 0 {
		return LimitResult{Kind: LimitPosInf, Value: math.Inf(1), Method: "numeric"}, true
	}
	return LimitResult{Kind: LimitNegInf, Value: math.Inf(-1), Method: "numeric"}, true
}
