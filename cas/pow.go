package cas

import (
	"math"
	"math/big"
)

// ============================================================
// Pow: base^exponent
// ============================================================

type Pow struct{ base, exp Expr }

func PowOf(base, exp Expr) Expr { return (&Pow{base: base, exp: exp}).Simplify() }

func SqrtOf(arg Expr) Expr { return PowOf(arg, F(1, 2)) }

// maxExactExponent bounds exact integer powers of rationals.
const maxExactExponent = 64

func (p *Pow) Simplify() Expr {
	base := p.base.Simplify()
	exp := p.exp.Simplify()

	en, expIsNum := exp.(*Num)
	if expIsNum && en.IsZero() {
		return N(1)
	}
	if expIsNum && en.IsOne() {
		return base
	}
	if c, ok := base.(*Const); ok && c == E {
		return ExpOf(exp)
	}

	if bn, ok := base.(*Num); ok {
		switch {
		case bn.IsZero():
			if expIsNum && en.IsPositive() {
				return N(0)
			}
			return &Pow{base: base, exp: exp}
		case bn.IsOne():
			// 1^oo and 1^(1/0) are undefined.
			if undefinedConstant(exp) {
				return &Pow{base: base, exp: exp}
			}
			return N(1)
		}
		if expIsNum {
			if r, ok := ratPow(bn, en); ok {
				return r
			}
		}
		return &Pow{base: base, exp: exp}
	}

	if !expIsNum || !en.IsInteger() {
		return &Pow{base: base, exp: exp}
	}
	switch b := base.(type) {
	case *Pow:
		// (b^a)^n with integer n.
		return PowOf(b.base, MulOf(b.exp, en))
	case *Mul:
		factors := make([]Expr, len(b.factors))
		for i, f := range b.factors {
			factors[i] = PowOf(f, en)
		}
		return MulOf(factors...)
	case *Func:
		if b.name == "exp" {
			return ExpOf(MulOf(b.arg, en))
		}
	}
	return &Pow{base: base, exp: exp}
}

// ratPow evaluates b^e exactly when the result is rational.
func ratPow(b, e *Num) (*Num, bool) {
	if e.IsInteger() {
		n, ok := e.smallInt()
		if !ok || n > maxExactExponent || n < -maxExactExponent {
			return nil, false
		}
		neg := n < 0
		if neg {
			n = -n
		}
		k := big.NewInt(n)
		num := new(big.Int).Exp(b.val.Num(), k, nil)
		den := new(big.Int).Exp(b.val.Denom(), k, nil)
		r := new(big.Rat).SetFrac(num, den)
		if neg {
			r.Inv(r)
		}
		return ratNum(r), true
	}
	// Square roots of perfect squares.
	if e.val.Denom().Cmp(big.NewInt(2)) != 0 || b.IsNegative() {
		return nil, false
	}
	num, ok1 := exactSqrt(b.val.Num())
	den, ok2 := exactSqrt(b.val.Denom())
	if !ok1 || !ok2 {
		return nil, false
	}
	root := ratNum(new(big.Rat).SetFrac(num, den))
	return ratPow(root, ratNum(new(big.Rat).SetInt(e.val.Num())))
}

func exactSqrt(n *big.Int) (*big.Int, bool) {
	if n.Sign() < 0 {
		return nil, false
	}
	r := new(big.Int).Sqrt(n)
	return r, new(big.Int).Mul(r, r).Cmp(n) == 0
}

// reduce drops a unit exponent without further simplification.
func (p *Pow) reduce() Expr {
	if isNumEqual(p.exp, 1) {
		return p.base
	}
	return p
}

func (p *Pow) Base() Expr     { return p.base }
func (p *Pow) Exponent() Expr { return p.exp }

func (p *Pow) String() string {
	if isNumEqual(p.exp, 1) {
		return p.base.String()
	}
	if n, ok := p.exp.(*Num); ok && n.IsNegative() {
		d := (&Pow{base: p.base, exp: numNeg(n)}).reduce()
		if needsParens(d) {
			if _, isPow := d.(*Pow); !isPow {
				return "1/(" + d.String() + ")"
			}
		}
		return "1/" + d.String()
	}
	baseStr := p.base.String()
	if needsParens(p.base) {
		baseStr = "(" + baseStr + ")"
	}
	expStr := p.exp.String()
	if n, ok := p.exp.(*Num); !(ok && n.IsInteger() && !n.IsNegative()) {
		if _, isSym := p.exp.(*Sym); !isSym {
			expStr = "(" + expStr + ")"
		}
	}
	return baseStr + "^" + expStr
}

func (p *Pow) LaTeX() string {
	if n, ok := p.exp.(*Num); ok && n.IsNegative() {
		return "\\frac{1}{" + (&Pow{base: p.base, exp: numNeg(n)}).reduce().LaTeX() + "}"
	}
	if n, ok := p.exp.(*Num); ok && n.val.Cmp(big.NewRat(1, 2)) == 0 {
		return "\\sqrt{" + p.base.LaTeX() + "}"
	}
	baseStr := p.base.LaTeX()
	if needsParens(p.base) {
		baseStr = "\\left(" + baseStr + "\\right)"
	}
	return baseStr + "^{" + p.exp.LaTeX() + "}"
}

func needsParens(e Expr) bool {
	switch v := e.(type) {
	case *Add, *Mul, *Pow, *Rel, *Logic:
		return true
	case *Num:
		return v.IsNegative() || !v.IsInteger()
	}
	return false
}

func (p *Pow) Sub(name string, value Expr) Expr {
	return PowOf(p.base.Sub(name, value), p.exp.Sub(name, value))
}

func (p *Pow) Diff(name string) Expr {
	du := p.base.Diff(name)
	dv := p.exp.Diff(name)
	if _, ok := p.exp.(*Num); ok {
		return MulOf(p.exp, PowOf(p.base, AddOf(p.exp, N(-1))), du)
	}
	if IsConstant(p.base) {
		return MulOf(PowOf(p.base, p.exp), LogOf(p.base), dv)
	}
	logTerm := MulOf(dv, LogOf(p.base))
	divTerm := MulOf(p.exp, du, PowOf(p.base, N(-1)))
	return MulOf(PowOf(p.base, p.exp), AddOf(logTerm, divTerm))
}

func (p *Pow) Eval(env Env) (float64, error) {
	b, err := p.base.Eval(env)
	if err != nil {
		return 0, err
	}
	e, err := p.exp.Eval(env)
	if err != nil {
		return 0, err
	}
	if b == 0 && e < 0 {
		return 0, evalErr(p, ErrDivisionByZero, "zero raised to a negative power")
	}
	if b == 1 && math.IsInf(e, 0) {
		return 0, evalErr(p, ErrUndefined, "one raised to an infinite power")
	}
	if b < 0 && e != math.Trunc(e) {
		if r, ok := oddRoot(b, p.exp); ok {
			return r, nil
		}
		return 0, evalErr(p, ErrDomain, "fractional power of a negative number")
	}
	v := math.Pow(b, e)
	if math.IsNaN(v) {
		return 0, evalErr(p, ErrUndefined, "result is not a number")
	}
	return v, nil
}

// oddRoot handles real roots like (-8)^(1/3) when the exponent is an exact
// rational with odd denominator.
func oddRoot(b float64, exp Expr) (float64, bool) {
	n, ok := exp.(*Num)
	if !ok {
		return 0, false
	}
	den := n.val.Denom()
	if den.Bit(0) == 0 {
		return 0, false
	}
	v := math.Pow(-b, n.Float64())
	if n.val.Num().Bit(0) == 1 {
		v = -v
	}
	return v, true
}

func (p *Pow) toJSON() map[string]any {
	return map[string]any{"type": "pow", "base": p.base.toJSON(), "exp": p.exp.toJSON()}
}
