package cas

// ============================================================
// Integration (rule-based)
// ============================================================

// Integrate returns an antiderivative of e with respect to name, without
// a constant of integration. It covers sums, constant multiples, powers of
// linear arguments and the elementary functions of linear arguments.
func Integrate(e Expr, name string) (Expr, bool) {
	e = e.Simplify()
	x := S(name)
	if _, free := FreeSymbols(e)[name]; !free {
		return MulOf(e, x), true
	}
	switch v := e.(type) {
	case *Sym:
		return MulOf(F(1, 2), PowOf(x, N(2))), true
	case *Add:
		terms := make([]Expr, len(v.terms))
		for i, t := range v.terms {
			it, ok := Integrate(t, name)
			if !ok {
				return nil, false
			}
			terms[i] = it
		}
		return AddOf(terms...), true
	case *Mul:
		var consts, rest []Expr
		for _, f := range v.factors {
			if _, free := FreeSymbols(f)[name]; free {
				rest = append(rest, f)
			} else {
				consts = append(consts, f)
			}
		}
		if len(consts) == 0 {
			return nil, false
		}
		inner, ok := Integrate(MulOf(rest...), name)
		if !ok {
			return nil, false
		}
		return MulOf(append(consts, inner)...), true
	case *Pow:
		if a, ok := linearSlope(v.base, name); ok && IsConstant(v.exp) {
			if isNumEqual(v.exp, -1) {
				return MulOf(PowOf(a, N(-1)), LogOf(AbsOf(v.base))), true
			}
			n1 := AddOf(v.exp, N(1))
			return MulOf(PowOf(MulOf(a, n1), N(-1)), PowOf(v.base, n1)), true
		}
		if a, ok := linearSlope(v.exp, name); ok && IsConstant(v.base) {
			return MulOf(v, PowOf(MulOf(a, LogOf(v.base)), N(-1))), true
		}
	case *Func:
		a, ok := linearSlope(v.arg, name)
		if !ok {
			return nil, false
		}
		inv := PowOf(a, N(-1))
		u := v.arg
		switch v.name {
		case "sin":
			return MulOf(N(-1), inv, CosOf(u)), true
		case "cos":
			return MulOf(inv, SinOf(u)), true
		case "tan":
			return MulOf(N(-1), inv, LogOf(AbsOf(CosOf(u)))), true
		case "exp":
			return MulOf(inv, ExpOf(u)), true
		case "sinh":
			return MulOf(inv, CoshOf(u)), true
		case "cosh":
			return MulOf(inv, SinhOf(u)), true
		case "log":
			return MulOf(inv, AddOf(MulOf(u, LogOf(u)), MulOf(N(-1), u))), true
		case "asin":
			return MulOf(inv, AddOf(MulOf(u, FuncOf("asin", u)),
				SqrtOf(AddOf(N(1), MulOf(N(-1), PowOf(u, N(2))))))), true
		case "atan":
			return MulOf(inv, AddOf(MulOf(u, FuncOf("atan", u)),
				MulOf(F(-1, 2), LogOf(AddOf(N(1), PowOf(u, N(2))))))), true
		}
	}
	return nil, false
}

// linearSlope returns a when e = a*name + b with a constant and non-zero.
func linearSlope(e Expr, name string) (Expr, bool) {
	a := Diff(e, name)
	if !IsConstant(a) || isNumEqual(a, 0) {
		return nil, false
	}
	return a, true
}
