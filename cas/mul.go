package cas

import (
	"math"
	"math/big"
	"sort"
	"strings"
)

// ============================================================
// Mul: product of factors
// ============================================================

type Mul struct{ factors []Expr }

func MulOf(factors ...Expr) Expr { return (&Mul{factors: factors}).Simplify() }

// Simplify flattens nested products, folds the rational coefficient, merges
// powers of a common base and combines exp factors into a single exp.
func (m *Mul) Simplify() Expr {
	flat := make([]Expr, 0, len(m.factors))
	for _, f := range m.factors {
		s := f.Simplify()
		if inner, ok := s.(*Mul); ok {
			flat = append(flat, inner.factors...)
		} else {
			flat = append(flat, s)
		}
	}

	type group struct {
		base Expr
		exps []Expr
	}
	coeff := big.NewRat(1, 1)
	groups := map[string]*group{}
	keys := []string{}
	var expArgs []Expr
	for _, f := range flat {
		if n, ok := f.(*Num); ok {
			coeff.Mul(coeff, n.val)
			continue
		}
		if fn, ok := f.(*Func); ok && fn.name == "exp" {
			expArgs = append(expArgs, fn.arg)
			continue
		}
		base, exp := f, Expr(N(1))
		if p, ok := f.(*Pow); ok {
			base, exp = p.base, p.exp
		}
		key := base.String()
		g, ok := groups[key]
		if !ok {
			g = &group{base: base}
			groups[key] = g
			keys = append(keys, key)
		}
		g.exps = append(g.exps, exp)
	}
	if coeff.Sign() == 0 {
		return zeroProduct(flat)
	}

	out := make([]Expr, 0, len(keys)+1)
	regroup := false
	var absorb func(e Expr)
	absorb = func(e Expr) {
		switch v := e.(type) {
		case *Num:
			coeff.Mul(coeff, v.val)
		case *Mul:
			regroup = true
			for _, f := range v.factors {
				absorb(f)
			}
		default:
			out = append(out, e)
		}
	}
	for _, key := range keys {
		g := groups[key]
		if len(g.exps) == 1 && isNumEqual(g.exps[0], 1) {
			out = append(out, g.base)
			continue
		}
		absorb(PowOf(g.base, AddOf(g.exps...)))
	}
	if len(expArgs) > 0 {
		absorb(ExpOf(AddOf(expArgs...)))
	}
	if coeff.Sign() == 0 {
		return zeroProduct(flat)
	}
	if regroup {
		return MulOf(append([]Expr{ratNum(coeff)}, out...)...)
	}
	if len(out) == 0 {
		return ratNum(coeff)
	}
	sortFactors(out)
	if coeff.Cmp(big.NewRat(1, 1)) == 0 {
		if len(out) == 1 {
			return out[0]
		}
		return &Mul{factors: out}
	}
	return &Mul{factors: append([]Expr{ratNum(coeff)}, out...)}
}

// zeroProduct collapses a product with a zero coefficient, unless another
// factor is itself undefined, as in 0 * 1/0.
func zeroProduct(factors []Expr) Expr {
	for _, f := range factors {
		if _, ok := f.(*Num); ok {
			continue
		}
		if undefinedConstant(f) {
			return &Mul{factors: append([]Expr{N(0)}, factors...)}
		}
	}
	return N(0)
}

func undefinedConstant(e Expr) bool {
	if !IsConstant(e) {
		return false
	}
	v, err := e.Eval(nil)
	return err != nil || math.IsInf(v, 0)
}

func sortFactors(fs []Expr) {
	type keyed struct {
		e   Expr
		key string
	}
	ks := make([]keyed, len(fs))
	for i, e := range fs {
		ks[i] = keyed{e: e, key: e.String()}
	}
	sort.Slice(ks, func(i, j int) bool { return ks[i].key < ks[j].key })
	for i := range ks {
		fs[i] = ks[i].e
	}
}

func (m *Mul) Factors() []Expr { return m.factors }

// split separates a product into its sign, numerator and denominator
// factors for printing.
func (m *Mul) split() (neg bool, num, den []Expr) {
	factors := m.factors
	if c, ok := factors[0].(*Num); ok && len(factors) > 1 {
		if c.IsNegative() {
			neg = true
			c = numNeg(c)
		}
		factors = factors[1:]
		if !c.IsOne() {
			num = append(num, c)
		}
	}
	for _, f := range factors {
		if p, ok := f.(*Pow); ok {
			if en, ok2 := p.exp.(*Num); ok2 && en.IsNegative() {
				den = append(den, (&Pow{base: p.base, exp: numNeg(en)}).reduce())
				continue
			}
		}
		num = append(num, f)
	}
	return neg, num, den
}

func (m *Mul) String() string {
	if len(m.factors) == 0 {
		return "1"
	}
	neg, num, den := m.split()
	join := func(fs []Expr, wrapMul bool) string {
		parts := make([]string, len(fs))
		for i, f := range fs {
			parts[i] = f.String()
			if _, isAdd := f.(*Add); isAdd {
				parts[i] = "(" + parts[i] + ")"
			}
		}
		s := strings.Join(parts, "*")
		if wrapMul && len(fs) > 1 {
			s = "(" + s + ")"
		}
		return s
	}
	var sb strings.Builder
	if neg {
		sb.WriteString("-")
	}
	if len(num) == 0 {
		sb.WriteString("1")
	} else {
		sb.WriteString(join(num, false))
	}
	if len(den) > 0 {
		sb.WriteString("/")
		sb.WriteString(join(den, true))
	}
	return sb.String()
}

func (m *Mul) LaTeX() string {
	neg, num, den := m.split()
	join := func(fs []Expr) string {
		if len(fs) == 0 {
			return "1"
		}
		parts := make([]string, len(fs))
		for i, f := range fs {
			parts[i] = f.LaTeX()
			if _, isAdd := f.(*Add); isAdd {
				parts[i] = "\\left(" + parts[i] + "\\right)"
			}
		}
		return strings.Join(parts, " ")
	}
	s := join(num)
	if len(den) > 0 {
		s = "\\frac{" + s + "}{" + join(den) + "}"
	}
	if neg {
		s = "-" + s
	}
	return s
}

func (m *Mul) Sub(name string, value Expr) Expr {
	factors := make([]Expr, len(m.factors))
	for i, f := range m.factors {
		factors[i] = f.Sub(name, value)
	}
	return MulOf(factors...)
}

func (m *Mul) Diff(name string) Expr {
	terms := make([]Expr, len(m.factors))
	for i, fi := range m.factors {
		dfi := fi.Diff(name)
		others := make([]Expr, 0, len(m.factors))
		others = append(others, dfi)
		for j, fj := range m.factors {
			if j != i {
				others = append(others, fj)
			}
		}
		terms[i] = MulOf(others...)
	}
	return AddOf(terms...)
}

func (m *Mul) Eval(env Env) (float64, error) {
	acc := 1.0
	for _, f := range m.factors {
		v, err := f.Eval(env)
		if err != nil {
			return 0, err
		}
		acc *= v
	}
	if math.IsNaN(acc) {
		return 0, evalErr(m, ErrUndefined, "0 * oo")
	}
	return acc, nil
}

func (m *Mul) toJSON() map[string]any {
	fs := make([]map[string]any, len(m.factors))
	for i, f := range m.factors {
		fs[i] = f.toJSON()
	}
	return map[string]any{"type": "mul", "factors": fs}
}
