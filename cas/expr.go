// Package cas is the deterministic symbolic kernel behind answer checking.
//
// Expressions are immutable trees of exact rationals, symbols, named
// constants, sums, products, powers and elementary functions. Relations
// and boolean connectives share the same interface so conditions can be
// substituted and evaluated like any other expression.
package cas

import (
	"context"
	"fmt"
	"math"
	"math/big"
	"sort"
)

// ============================================================
// Core Interface
// ============================================================

type Expr interface {
	Simplify() Expr
	String() string
	LaTeX() string
	Sub(name string, value Expr) Expr
	Diff(name string) Expr
	Eval(env Env) (float64, error)
	toJSON() map[string]any
}

// Env binds free symbols to numeric values during evaluation.
type Env map[string]float64

// ============================================================
// Num: exact rational number
// ============================================================

type Num struct{ val *big.Rat }

func N(n int64) *Num { return &Num{val: new(big.Rat).SetInt64(n)} }

func F(p, q int64) *Num {
	if q == 0 {
		panic("cas: denominator is zero")
	}
	return &Num{val: new(big.Rat).SetFrac(big.NewInt(p), big.NewInt(q))}
}

// NFloat converts a finite float exactly. Non-finite input yields zero.
func NFloat(f float64) *Num {
	r := new(big.Rat)
	if r.SetFloat64(f) == nil {
		return N(0)
	}
	return &Num{val: r}
}

func ratNum(r *big.Rat) *Num { return &Num{val: r} }

func (n *Num) Simplify() Expr            { return n }
func (n *Num) Sub(string, Expr) Expr     { return n }
func (n *Num) Diff(string) Expr          { return N(0) }
func (n *Num) Eval(Env) (float64, error) { return n.Float64(), nil }
func (n *Num) Float64() float64          { f, _ := n.val.Float64(); return f }
func (n *Num) Rat() *big.Rat             { return new(big.Rat).Set(n.val) }
func (n *Num) IsZero() bool              { return n.val.Sign() == 0 }
func (n *Num) IsOne() bool               { return n.val.Cmp(big.NewRat(1, 1)) == 0 }
func (n *Num) IsNegOne() bool            { return n.val.Cmp(big.NewRat(-1, 1)) == 0 }
func (n *Num) IsInteger() bool           { return n.val.IsInt() }
func (n *Num) IsNegative() bool          { return n.val.Sign() < 0 }
func (n *Num) IsPositive() bool          { return n.val.Sign() > 0 }
func (n *Num) toJSON() map[string]any    { return map[string]any{"type": "num", "value": n.String()} }

func (n *Num) String() string {
	if n.val.IsInt() {
		return n.val.Num().String()
	}
	return n.val.RatString()
}

func (n *Num) LaTeX() string {
	if n.val.IsInt() {
		return n.val.Num().String()
	}
	sign := ""
	v := new(big.Rat).Set(n.val)
	if v.Sign() < 0 {
		sign = "-"
		v.Neg(v)
	}
	return fmt.Sprintf("%s\\frac{%s}{%s}", sign, v.Num().String(), v.Denom().String())
}

// smallInt reports the value as an int64 when it is an integer that fits.
func (n *Num) smallInt() (int64, bool) {
	if !n.val.IsInt() || !n.val.Num().IsInt64() {
		return 0, false
	}
	return n.val.Num().Int64(), true
}

func numAdd(a, b *Num) *Num { return &Num{val: new(big.Rat).Add(a.val, b.val)} }
func numMul(a, b *Num) *Num { return &Num{val: new(big.Rat).Mul(a.val, b.val)} }
func numNeg(a *Num) *Num    { return &Num{val: new(big.Rat).Neg(a.val)} }
func numRecip(a *Num) *Num  { return &Num{val: new(big.Rat).Inv(a.val)} }
func numAbs(a *Num) *Num    { return &Num{val: new(big.Rat).Abs(a.val)} }

// ============================================================
// Sym: symbolic variable
// ============================================================

type Sym struct{ name string }

func S(name string) *Sym              { return &Sym{name: name} }
func (s *Sym) Simplify() Expr         { return s }
func (s *Sym) String() string         { return s.name }
func (s *Sym) LaTeX() string          { return s.name }
func (s *Sym) Name() string           { return s.name }
func (s *Sym) toJSON() map[string]any { return map[string]any{"type": "sym", "name": s.name} }

func (s *Sym) Sub(name string, value Expr) Expr {
	if s.name == name {
		return value
	}
	return s
}

func (s *Sym) Diff(name string) Expr {
	if s.name == name {
		return N(1)
	}
	return N(0)
}

func (s *Sym) Eval(env Env) (float64, error) {
	if v, ok := env[s.name]; ok {
		return v, nil
	}
	return 0, evalErr(s, ErrUnbound, "symbol %s has no value", s.name)
}

// ============================================================
// Const: named constants pi, E and oo
// ============================================================

type Const struct{ name string }

var (
	Pi       = &Const{name: "pi"}
	E        = &Const{name: "E"}
	Infinity = &Const{name: "oo"}
)

// NegInfinity is -oo.
func NegInfinity() Expr { return &Mul{factors: []Expr{N(-1), Infinity}} }

func (c *Const) Simplify() Expr         { return c }
func (c *Const) String() string         { return c.name }
func (c *Const) Sub(string, Expr) Expr  { return c }
func (c *Const) Diff(string) Expr       { return N(0) }
func (c *Const) toJSON() map[string]any { return map[string]any{"type": "const", "name": c.name} }

func (c *Const) LaTeX() string {
	switch c.name {
	case "pi":
		return "\\pi"
	case "E":
		return "e"
	}
	return "\\infty"
}

func (c *Const) Eval(Env) (float64, error) {
	switch c.name {
	case "pi":
		return math.Pi, nil
	case "E":
		return math.E, nil
	}
	return math.Inf(1), nil
}

// ============================================================
// Free Symbols
// ============================================================

func FreeSymbols(e Expr) map[string]struct{} {
	out := map[string]struct{}{}
	collectSymbols(e, out)
	return out
}

// Symbols returns the free symbols of e sorted by name.
func Symbols(e Expr) []string {
	set := FreeSymbols(e)
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func collectSymbols(e Expr, out map[string]struct{}) {
	switch v := e.(type) {
	case *Sym:
		out[v.name] = struct{}{}
	case *Add:
		for _, t := range v.terms {
			collectSymbols(t, out)
		}
	case *Mul:
		for _, f := range v.factors {
			collectSymbols(f, out)
		}
	case *Pow:
		collectSymbols(v.base, out)
		collectSymbols(v.exp, out)
	case *Func:
		collectSymbols(v.arg, out)
	case *Rel:
		collectSymbols(v.lhs, out)
		collectSymbols(v.rhs, out)
	case *Logic:
		for _, a := range v.args {
			collectSymbols(a, out)
		}
	}
}

// IsConstant reports whether e has no free symbols.
func IsConstant(e Expr) bool { return len(FreeSymbols(e)) == 0 }

func containsInfinity(e Expr) bool {
	switch v := e.(type) {
	case *Const:
		return v == Infinity || v.name == "oo"
	case *Add:
		for _, t := range v.terms {
			if containsInfinity(t) {
				return true
			}
		}
	case *Mul:
		for _, f := range v.factors {
			if containsInfinity(f) {
				return true
			}
		}
	case *Pow:
		return containsInfinity(v.base) || containsInfinity(v.exp)
	case *Func:
		return containsInfinity(v.arg)
	}
	return false
}

// ============================================================
// Top-level helpers
// ============================================================

func Sub(e Expr, name string, value Expr) Expr { return e.Sub(name, value).Simplify() }

func Diff(e Expr, name string) Expr { return e.Diff(name).Simplify() }

func DiffN(e Expr, name string, n int) Expr {
	result, _ := DiffNContext(context.Background(), e, name, n)
	return result
}

// DiffNContext is DiffN that stops between derivatives once ctx is done.
func DiffNContext(ctx context.Context, e Expr, name string, n int) (Expr, error) {
	result := e
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		result = Diff(result, name)
	}
	return result, nil
}

func isNumEqual(e Expr, v int64) bool {
	n, ok := e.(*Num)
	return ok && n.val.Cmp(big.NewRat(v, 1)) == 0
}

func isNum(e Expr) (*Num, bool) {
	n, ok := e.(*Num)
	return n, ok
}
