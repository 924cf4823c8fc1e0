package cas

// ============================================================
// Expansion
// ============================================================

// maxExpandPower bounds the integer powers of sums that Expand multiplies out.
const maxExpandPower = 12

func Expand(e Expr) Expr { return expandExpr(e.Simplify()).Simplify() }

func expandExpr(e Expr) Expr {
	switch v := e.(type) {
	case *Add:
		terms := make([]Expr, len(v.terms))
		for i, t := range v.terms {
			terms[i] = expandExpr(t)
		}
		return AddOf(terms...)
	case *Mul:
		result := Expr(N(1))
		for _, f := range v.factors {
			result = mulOut(result, expandExpr(f))
		}
		return result
	case *Pow:
		base := expandExpr(v.base)
		n, ok := v.exp.(*Num)
		if !ok || !n.IsInteger() {
			return PowOf(base, expandExpr(v.exp))
		}
		k, small := n.smallInt()
		if _, isAdd := base.(*Add); !isAdd || !small || k > maxExpandPower || k < -maxExpandPower {
			return PowOf(base, n)
		}
		if k < 0 {
			return PowOf(expandExpr(PowOf(base, N(-k))), N(-1))
		}
		result := Expr(N(1))
		for i := int64(0); i < k; i++ {
			result = mulOut(result, base)
		}
		return result
	case *Func:
		return funcOf(v.name, expandExpr(v.arg)).Simplify()
	case *Rel:
		return RelOf(v.op, expandExpr(v.lhs), expandExpr(v.rhs))
	case *Logic:
		args := make([]Expr, len(v.args))
		for i, a := range v.args {
			args[i] = expandExpr(a)
		}
		return (&Logic{op: v.op, args: args}).Simplify()
	}
	return e
}

// mulOut distributes the product of two expanded expressions term by term.
// Multiplying through MulOf alone would fold (a+b)*(a+b) back into a power.
func mulOut(a, b Expr) Expr {
	as, bs := summands(a), summands(b)
	terms := make([]Expr, 0, len(as)*len(bs))
	for _, x := range as {
		for _, y := range bs {
			terms = append(terms, MulOf(x, y))
		}
	}
	return AddOf(terms...)
}

func summands(e Expr) []Expr {
	if a, ok := e.(*Add); ok {
		return a.terms
	}
	return []Expr{e}
}

// ============================================================
// Together: single fraction form
// ============================================================

// Together rewrites e as a single fraction num/den. Function arguments and
// non-integer powers are treated as opaque.
func Together(e Expr) (num, den Expr) {
	switch v := e.Simplify().(type) {
	case *Mul:
		nums := make([]Expr, len(v.factors))
		dens := make([]Expr, len(v.factors))
		for i, f := range v.factors {
			nums[i], dens[i] = Together(f)
		}
		return MulOf(nums...), MulOf(dens...)
	case *Add:
		type part struct{ num, den Expr }
		parts := make([]part, len(v.terms))
		var common []Expr
		seen := map[string]bool{}
		for i, t := range v.terms {
			n, d := Together(t)
			parts[i] = part{n, d}
			if isNumEqual(d, 1) {
				continue
			}
			if key := d.String(); !seen[key] {
				seen[key] = true
				common = append(common, d)
			}
		}
		if len(common) == 0 {
			return v, N(1)
		}
		terms := make([]Expr, len(parts))
		for i, p := range parts {
			factors := []Expr{p.num}
			pk := p.den.String()
			for _, d := range common {
				if d.String() != pk {
					factors = append(factors, d)
				}
			}
			terms[i] = MulOf(factors...)
		}
		return AddOf(terms...), MulOf(common...)
	case *Pow:
		n, ok := v.exp.(*Num)
		if !ok {
			return v, N(1)
		}
		if n.IsNegative() {
			pos := numNeg(n)
			if !pos.IsInteger() {
				return N(1), PowOf(v.base, pos)
			}
			bn, bd := Together(v.base)
			return PowOf(bd, pos), PowOf(bn, pos)
		}
		if n.IsInteger() {
			bn, bd := Together(v.base)
			return PowOf(bn, n), PowOf(bd, n)
		}
		return v, N(1)
	default:
		return v, N(1)
	}
}

// ============================================================
// Zero test
// ============================================================

// IsZero reports whether e simplifies to exactly zero. It expands, tries
// the single fraction form and applies the Pythagorean identity. A false
// result only means no proof was found.
func IsZero(e Expr) bool {
	if containsInfinity(e) {
		return false
	}
	s := Expand(e)
	if isNumEqual(s, 0) || isNumEqual(TrigSimplify(s), 0) {
		return true
	}
	num, den := Together(e)
	if isNumEqual(Expand(den), 0) {
		return false
	}
	n := Expand(num)
	return isNumEqual(n, 0) || isNumEqual(TrigSimplify(n), 0)
}

// ============================================================
// Trig identities
// ============================================================

// TrigSimplify applies sin^2 + cos^2 = 1 until no pair remains.
func TrigSimplify(e Expr) Expr {
	return trigSimplifyExpr(e.Simplify()).Simplify()
}

func trigSimplifyExpr(e Expr) Expr {
	switch v := e.(type) {
	case *Add:
		terms := make([]Expr, len(v.terms))
		for i, t := range v.terms {
			terms[i] = trigSimplifyExpr(t)
		}
		out := AddOf(terms...)
		for {
			next := trigFindPythagorean(out)
			if next.String() == out.String() {
				return out
			}
			out = next
		}
	case *Mul:
		factors := make([]Expr, len(v.factors))
		for i, f := range v.factors {
			factors[i] = trigSimplifyExpr(f)
		}
		return MulOf(factors...)
	case *Pow:
		return PowOf(trigSimplifyExpr(v.base), v.exp)
	case *Func:
		return funcOf(v.name, trigSimplifyExpr(v.arg)).Simplify()
	}
	return e
}

func trigFindPythagorean(e Expr) Expr {
	add, ok := e.(*Add)
	if !ok {
		return e
	}
	type trigTerm struct {
		name  string
		arg   string
		coeff *Num
		idx   int
	}
	var found []trigTerm
	for idx, t := range add.terms {
		coeff, inner := splitCoeff(t)
		p, ok := inner.(*Pow)
		if !ok || !isNumEqual(p.exp, 2) {
			continue
		}
		if fn, ok := p.base.(*Func); ok && (fn.name == "sin" || fn.name == "cos") {
			found = append(found, trigTerm{fn.name, fn.arg.String(), coeff, idx})
		}
	}
	for i := 0; i < len(found); i++ {
		for j := i + 1; j < len(found); j++ {
			ti, tj := found[i], found[j]
			if ti.arg != tj.arg || ti.name == tj.name || ti.coeff.val.Cmp(tj.coeff.val) != 0 {
				continue
			}
			terms := make([]Expr, 0, len(add.terms)-1)
			for idx, t := range add.terms {
				if idx != ti.idx && idx != tj.idx {
					terms = append(terms, t)
				}
			}
			return AddOf(append(terms, ti.coeff)...)
		}
	}
	return e
}

// Canonical is the normal form used for display: expanded, then with trig
// identities applied.
func Canonical(e Expr) Expr { return TrigSimplify(Expand(e)) }
