package cas

import (
	"math"
	"math/big"
)

// ============================================================
// Func: named function applications
// ============================================================

type Func struct {
	name string
	arg  Expr
}

// Functions lists every function name the kernel understands.
var Functions = map[string]bool{
	"sin": true, "cos": true, "tan": true, "sec": true, "csc": true, "cot": true,
	"asin": true, "acos": true, "atan": true,
	"sinh": true, "cosh": true, "tanh": true, "asinh": true, "acosh": true, "atanh": true,
	"exp": true, "log": true,
	"abs": true, "floor": true, "ceil": true, "sign": true,
}

func funcOf(name string, arg Expr) *Func { return &Func{name: name, arg: arg} }

// FuncOf applies a named function from Functions.
func FuncOf(name string, arg Expr) Expr { return funcOf(name, arg).Simplify() }

func SinOf(arg Expr) Expr  { return FuncOf("sin", arg) }
func CosOf(arg Expr) Expr  { return FuncOf("cos", arg) }
func TanOf(arg Expr) Expr  { return FuncOf("tan", arg) }
func ExpOf(arg Expr) Expr  { return FuncOf("exp", arg) }
func LogOf(arg Expr) Expr  { return FuncOf("log", arg) }
func AbsOf(arg Expr) Expr  { return FuncOf("abs", arg) }
func SinhOf(arg Expr) Expr { return FuncOf("sinh", arg) }
func CoshOf(arg Expr) Expr { return FuncOf("cosh", arg) }
func TanhOf(arg Expr) Expr { return FuncOf("tanh", arg) }

func (f *Func) Name() string { return f.name }
func (f *Func) Arg() Expr    { return f.arg }

// Simplify folds only exact identities. Transcendental values of numbers
// stay symbolic so results remain exact.
func (f *Func) Simplify() Expr {
	arg := f.arg.Simplify()
	n, argIsNum := arg.(*Num)
	switch f.name {
	case "sin", "tan", "asin", "atan", "sinh", "tanh", "asinh", "atanh":
		if argIsNum && n.IsZero() {
			return N(0)
		}
		if arg == Pi && (f.name == "sin" || f.name == "tan") {
			return N(0)
		}
	case "cos", "cosh", "sec":
		if argIsNum && n.IsZero() {
			return N(1)
		}
		if arg == Pi && f.name != "cosh" {
			return N(-1)
		}
	case "exp":
		if argIsNum && n.IsZero() {
			return N(1)
		}
		if inner, ok := arg.(*Func); ok && inner.name == "log" {
			return inner.arg
		}
	case "log":
		if argIsNum && n.IsOne() {
			return N(0)
		}
		if arg == E {
			return N(1)
		}
		if inner, ok := arg.(*Func); ok && inner.name == "exp" {
			return inner.arg
		}
	case "abs":
		if argIsNum {
			return numAbs(n)
		}
		if c, ok := arg.(*Const); ok && c != Infinity {
			return c
		}
		if coeff, rest := splitCoeff(arg); coeff.IsNegative() {
			return AbsOf(MulOf(numNeg(coeff), rest))
		}
		if inner, ok := arg.(*Func); ok && inner.name == "abs" {
			return inner
		}
	case "floor", "ceil":
		if argIsNum {
			return roundRat(n, f.name == "ceil")
		}
	case "sign":
		if argIsNum {
			return N(int64(n.val.Sign()))
		}
	}
	return &Func{name: f.name, arg: arg}
}

func roundRat(n *Num, up bool) *Num {
	q, m := new(big.Int).DivMod(n.val.Num(), n.val.Denom(), new(big.Int))
	if up && m.Sign() != 0 {
		q.Add(q, big.NewInt(1))
	}
	return ratNum(new(big.Rat).SetInt(q))
}

func (f *Func) String() string { return f.name + "(" + f.arg.String() + ")" }

func (f *Func) LaTeX() string {
	a := f.arg.LaTeX()
	switch f.name {
	case "sin", "cos", "tan", "sec", "csc", "cot", "exp", "log", "sinh", "cosh", "tanh":
		return "\\" + f.name + "\\left(" + a + "\\right)"
	case "asin", "acos", "atan":
		return "\\arc" + f.name[1:] + "\\left(" + a + "\\right)"
	case "abs":
		return "\\left|" + a + "\\right|"
	case "floor":
		return "\\lfloor " + a + " \\rfloor"
	case "ceil":
		return "\\lceil " + a + " \\rceil"
	}
	return "\\operatorname{" + f.name + "}\\left(" + a + "\\right)"
}

func (f *Func) Sub(name string, value Expr) Expr {
	return funcOf(f.name, f.arg.Sub(name, value)).Simplify()
}

func (f *Func) Diff(name string) Expr {
	du := f.arg.Diff(name)
	if isNumEqual(du.Simplify(), 0) {
		return N(0)
	}
	u := f.arg
	oneMinusSq := AddOf(N(1), MulOf(N(-1), PowOf(u, N(2))))
	var outer Expr
	switch f.name {
	case "sin":
		outer = CosOf(u)
	case "cos":
		outer = MulOf(N(-1), SinOf(u))
	case "tan":
		outer = AddOf(N(1), PowOf(TanOf(u), N(2)))
	case "sec":
		outer = MulOf(FuncOf("sec", u), TanOf(u))
	case "csc":
		outer = MulOf(N(-1), FuncOf("csc", u), FuncOf("cot", u))
	case "cot":
		outer = MulOf(N(-1), AddOf(N(1), PowOf(FuncOf("cot", u), N(2))))
	case "asin":
		outer = PowOf(oneMinusSq, F(-1, 2))
	case "acos":
		outer = MulOf(N(-1), PowOf(oneMinusSq, F(-1, 2)))
	case "atan":
		outer = PowOf(AddOf(N(1), PowOf(u, N(2))), N(-1))
	case "sinh":
		outer = CoshOf(u)
	case "cosh":
		outer = SinhOf(u)
	case "tanh":
		outer = AddOf(N(1), MulOf(N(-1), PowOf(TanhOf(u), N(2))))
	case "asinh":
		outer = PowOf(AddOf(PowOf(u, N(2)), N(1)), F(-1, 2))
	case "acosh":
		outer = PowOf(AddOf(PowOf(u, N(2)), N(-1)), F(-1, 2))
	case "atanh":
		outer = PowOf(oneMinusSq, N(-1))
	case "exp":
		outer = ExpOf(u)
	case "log":
		if inner, ok := u.(*Func); ok && inner.name == "abs" {
			// d/dx log|v| = v'/v away from v = 0.
			return MulOf(PowOf(inner.arg, N(-1)), Diff(inner.arg, name))
		}
		outer = PowOf(u, N(-1))
	case "abs":
		outer = FuncOf("sign", u)
	default:
		// floor, ceil and sign are piecewise constant.
		return N(0)
	}
	return MulOf(outer, du)
}

func (f *Func) Eval(env Env) (float64, error) {
	v, err := f.arg.Eval(env)
	if err != nil {
		return 0, err
	}
	domain := func(msg string) (float64, error) { return 0, evalErr(f, ErrDomain, "%s", msg) }
	var r float64
	switch f.name {
	case "sin":
		r = math.Sin(v)
	case "cos":
		r = math.Cos(v)
	case "tan":
		r = math.Tan(v)
	case "sec", "csc", "cot":
		var d float64
		switch f.name {
		case "sec":
			d = math.Cos(v)
		case "csc":
			d = math.Sin(v)
		default:
			d = math.Tan(v)
		}
		if d == 0 {
			return 0, evalErr(f, ErrDivisionByZero, "pole at %g", v)
		}
		r = 1 / d
	case "asin":
		if v < -1 || v > 1 {
			return domain("asin argument outside [-1, 1]")
		}
		r = math.Asin(v)
	case "acos":
		if v < -1 || v > 1 {
			return domain("acos argument outside [-1, 1]")
		}
		r = math.Acos(v)
	case "atan":
		r = math.Atan(v)
	case "sinh":
		r = math.Sinh(v)
	case "cosh":
		r = math.Cosh(v)
	case "tanh":
		r = math.Tanh(v)
	case "asinh":
		r = math.Asinh(v)
	case "acosh":
		if v < 1 {
			return domain("acosh argument below 1")
		}
		r = math.Acosh(v)
	case "atanh":
		if v <= -1 || v >= 1 {
			return domain("atanh argument outside (-1, 1)")
		}
		r = math.Atanh(v)
	case "exp":
		r = math.Exp(v)
	case "log":
		if v <= 0 {
			return domain("log of a non-positive number")
		}
		r = math.Log(v)
	case "abs":
		r = math.Abs(v)
	case "floor":
		r = math.Floor(v)
	case "ceil":
		r = math.Ceil(v)
	case "sign":
		switch {
		case v > 0:
			r = 1
		case v < 0:
			r = -1
		}
	default:
		return 0, evalErr(f, ErrUndefined, "unknown function %s", f.name)
	}
	if math.IsNaN(r) {
		return 0, evalErr(f, ErrUndefined, "result is not a number")
	}
	return r, nil
}

func (f *Func) toJSON() map[string]any {
	return map[string]any{"type": "func", "name": f.name, "arg": f.arg.toJSON()}
}
