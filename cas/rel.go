package cas

import (
	"math"
	"strings"
)

// ============================================================
// Rel: binary relation between two expressions
// ============================================================

type Rel struct {
	op       string
	lhs, rhs Expr
}

// Relational operators accepted by RelOf.
var relOps = map[string]string{
	"<": "<", "<=": "\\le", ">": ">", ">=": "\\ge", "==": "=", "!=": "\\ne",
}

func RelOf(op string, lhs, rhs Expr) Expr { return (&Rel{op: op, lhs: lhs, rhs: rhs}).Simplify() }

func (r *Rel) Op() string { return r.op }
func (r *Rel) LHS() Expr  { return r.lhs }
func (r *Rel) RHS() Expr  { return r.rhs }

func (r *Rel) Simplify() Expr {
	return &Rel{op: r.op, lhs: r.lhs.Simplify(), rhs: r.rhs.Simplify()}
}

func (r *Rel) String() string {
	return r.lhs.String() + " " + r.op + " " + r.rhs.String()
}

func (r *Rel) LaTeX() string {
	return r.lhs.LaTeX() + " " + relOps[r.op] + " " + r.rhs.LaTeX()
}

func (r *Rel) Sub(name string, value Expr) Expr {
	return RelOf(r.op, r.lhs.Sub(name, value), r.rhs.Sub(name, value))
}

func (r *Rel) Diff(name string) Expr {
	return RelOf(r.op, r.lhs.Diff(name), r.rhs.Diff(name))
}

func (r *Rel) Eval(Env) (float64, error) {
	return 0, evalErr(r, ErrNotNumeric, "relation has no numeric value")
}

func (r *Rel) toJSON() map[string]any {
	return map[string]any{"type": "rel", "op": r.op, "lhs": r.lhs.toJSON(), "rhs": r.rhs.toJSON()}
}

// ZeroForm rewrites an equation lhs == rhs as lhs - rhs. Any other
// expression is returned unchanged.
func ZeroForm(e Expr) Expr {
	if r, ok := e.(*Rel); ok && r.op == "==" {
		return AddOf(r.lhs, MulOf(N(-1), r.rhs))
	}
	return e
}

// ============================================================
// Logic: and / or / not over boolean expressions
// ============================================================

type Logic struct {
	op   string
	args []Expr
}

func AndOf(args ...Expr) Expr { return (&Logic{op: "and", args: args}).Simplify() }
func OrOf(args ...Expr) Expr  { return (&Logic{op: "or", args: args}).Simplify() }
func NotOf(arg Expr) Expr     { return (&Logic{op: "not", args: []Expr{arg}}).Simplify() }

func (l *Logic) Op() string   { return l.op }
func (l *Logic) Args() []Expr { return l.args }

func (l *Logic) Simplify() Expr {
	args := make([]Expr, 0, len(l.args))
	for _, a := range l.args {
		s := a.Simplify()
		if inner, ok := s.(*Logic); ok && inner.op == l.op && l.op != "not" {
			args = append(args, inner.args...)
			continue
		}
		args = append(args, s)
	}
	if l.op != "not" && len(args) == 1 {
		return args[0]
	}
	return &Logic{op: l.op, args: args}
}

func (l *Logic) String() string {
	if l.op == "not" {
		return "~(" + l.args[0].String() + ")"
	}
	sep := " & "
	if l.op == "or" {
		sep = " | "
	}
	parts := make([]string, len(l.args))
	for i, a := range l.args {
		parts[i] = "(" + a.String() + ")"
	}
	return strings.Join(parts, sep)
}

func (l *Logic) LaTeX() string {
	if l.op == "not" {
		return "\\neg\\left(" + l.args[0].LaTeX() + "\\right)"
	}
	sep := " \\land "
	if l.op == "or" {
		sep = " \\lor "
	}
	parts := make([]string, len(l.args))
	for i, a := range l.args {
		parts[i] = "\\left(" + a.LaTeX() + "\\right)"
	}
	return strings.Join(parts, sep)
}

func (l *Logic) Sub(name string, value Expr) Expr {
	args := make([]Expr, len(l.args))
	for i, a := range l.args {
		args[i] = a.Sub(name, value)
	}
	return (&Logic{op: l.op, args: args}).Simplify()
}

func (l *Logic) Diff(string) Expr { return l }

func (l *Logic) Eval(Env) (float64, error) {
	return 0, evalErr(l, ErrNotNumeric, "boolean expression has no numeric value")
}

func (l *Logic) toJSON() map[string]any {
	as := make([]map[string]any, len(l.args))
	for i, a := range l.args {
		as[i] = a.toJSON()
	}
	return map[string]any{"type": "logic", "op": l.op, "args": as}
}

// ============================================================
// Truth values
// ============================================================

// IsBoolean reports whether e is a relation or a boolean connective.
func IsBoolean(e Expr) bool {
	switch e.(type) {
	case *Rel, *Logic:
		return true
	}
	return false
}

// Truth evaluates a boolean expression. Equality comparisons, including the
// equality half of <= and >=, hold within the relative tolerance tol.
func Truth(e Expr, env Env, tol float64) (bool, error) {
	switch v := e.(type) {
	case *Rel:
		a, err := v.lhs.Eval(env)
		if err != nil {
			return false, err
		}
		b, err := v.rhs.Eval(env)
		if err != nil {
			return false, err
		}
		eq := Close(a, b, tol)
		switch v.op {
		case "<":
			return a < b && !eq, nil
		case "<=":
			return a < b || eq, nil
		case ">":
			return a > b && !eq, nil
		case ">=":
			return a > b || eq, nil
		case "==":
			return eq, nil
		case "!=":
			return !eq, nil
		}
		return false, evalErr(v, ErrNotBoolean, "unknown relation %q", v.op)
	case *Logic:
		switch v.op {
		case "not":
			t, err := Truth(v.args[0], env, tol)
			return !t, err
		case "and":
			for _, a := range v.args {
				t, err := Truth(a, env, tol)
				if err != nil || !t {
					return false, err
				}
			}
			return true, nil
		case "or":
			for _, a := range v.args {
				t, err := Truth(a, env, tol)
				if err != nil {
					return false, err
				}
				if t {
					return true, nil
				}
			}
			return false, nil
		}
	}
	return false, evalErr(e, ErrNotBoolean, "%s is not a condition", e.String())
}

// Close compares two values with relative tolerance tol scaled by
// max(1, |a|, |b|). Infinities are only close to the identical infinity.
func Close(a, b, tol float64) bool {
	if math.IsNaN(a) || math.IsNaN(b) {
		return false
	}
	if math.IsInf(a, 0) || math.IsInf(b, 0) {
		return a == b
	}
	scale := math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
	return math.Abs(a-b) <= tol*scale
}
