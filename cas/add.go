package cas

import (
	"math"
	"math/big"
	"sort"
	"strings"
)

// ============================================================
// Add: sum of terms
// ============================================================

type Add struct{ terms []Expr }

func AddOf(terms ...Expr) Expr { return (&Add{terms: terms}).Simplify() }

// Simplify flattens nested sums, folds numbers and collects like terms by
// their coefficient-free part.
func (a *Add) Simplify() Expr {
	flat := make([]Expr, 0, len(a.terms))
	for _, t := range a.terms {
		s := t.Simplify()
		if inner, ok := s.(*Add); ok {
			flat = append(flat, inner.terms...)
		} else {
			flat = append(flat, s)
		}
	}

	type group struct {
		coeff *big.Rat
		rest  Expr
	}
	sum := new(big.Rat)
	groups := map[string]*group{}
	keys := []string{}
	var unbounded []Expr
	for _, t := range flat {
		if n, ok := t.(*Num); ok {
			sum.Add(sum, n.val)
			continue
		}
		coeff, rest := splitCoeff(t)
		if containsInfinity(rest) {
			unbounded = append(unbounded, t)
			continue
		}
		key := rest.String()
		g, ok := groups[key]
		if !ok {
			g = &group{coeff: new(big.Rat), rest: rest}
			groups[key] = g
			keys = append(keys, key)
		}
		g.coeff.Add(g.coeff, coeff.val)
	}

	result := make([]Expr, 0, len(keys)+2)
	for _, key := range keys {
		g := groups[key]
		switch {
		case g.coeff.Sign() == 0:
		case g.coeff.Cmp(big.NewRat(1, 1)) == 0:
			result = append(result, g.rest)
		default:
			result = append(result, MulOf(ratNum(g.coeff), g.rest))
		}
	}
	sortTerms(result)
	result = append(result, unbounded...)
	if sum.Sign() != 0 {
		result = append(result, ratNum(sum))
	}
	switch len(result) {
	case 0:
		return N(0)
	case 1:
		return result[0]
	}
	return &Add{terms: result}
}

// sortTerms orders terms by descending degree, then by their printed form.
func sortTerms(terms []Expr) {
	type keyed struct {
		e   Expr
		deg float64
		key string
	}
	ks := make([]keyed, len(terms))
	for i, t := range terms {
		_, rest := splitCoeff(t)
		ks[i] = keyed{e: t, deg: termDegree(rest), key: rest.String()}
	}
	sort.SliceStable(ks, func(i, j int) bool {
		if ks[i].deg != ks[j].deg {
			return ks[i].deg > ks[j].deg
		}
		return ks[i].key < ks[j].key
	})
	for i := range ks {
		terms[i] = ks[i].e
	}
}

func termDegree(e Expr) float64 {
	switch v := e.(type) {
	case *Sym:
		return 1
	case *Pow:
		if n, ok := v.exp.(*Num); ok {
			return n.Float64() * termDegree(v.base)
		}
	case *Mul:
		d := 0.0
		for _, f := range v.factors {
			d += termDegree(f)
		}
		return d
	}
	return 0
}

// splitCoeff separates the leading rational coefficient of a term.
func splitCoeff(e Expr) (*Num, Expr) {
	switch v := e.(type) {
	case *Num:
		return v, N(1)
	case *Mul:
		if len(v.factors) < 2 {
			break
		}
		if coeff, ok := v.factors[0].(*Num); ok {
			rest := v.factors[1:]
			if len(rest) == 1 {
				return coeff, rest[0]
			}
			return coeff, &Mul{factors: rest}
		}
	}
	return N(1), e
}

func (a *Add) String() string { return a.render(Expr.String, " + ", " - ") }
func (a *Add) LaTeX() string  { return a.render(Expr.LaTeX, " + ", " - ") }
func (a *Add) Terms() []Expr  { return a.terms }

func (a *Add) render(str func(Expr) string, plus, minus string) string {
	if len(a.terms) == 0 {
		return "0"
	}
	var sb strings.Builder
	for i, t := range a.terms {
		coeff, rest := splitCoeff(t)
		neg := coeff.IsNegative()
		body := str(t)
		if neg {
			body = str(scaled(numNeg(coeff), rest))
		}
		switch {
		case i == 0 && neg:
			sb.WriteString("-")
		case i > 0 && neg:
			sb.WriteString(minus)
		case i > 0:
			sb.WriteString(plus)
		}
		if _, isAdd := rest.(*Add); isAdd && neg && coeff.IsNegOne() {
			body = "(" + body + ")"
		}
		sb.WriteString(body)
	}
	return sb.String()
}

// scaled builds coeff*rest without re-simplifying rest.
func scaled(coeff *Num, rest Expr) Expr {
	if coeff.IsOne() {
		return rest
	}
	if _, ok := rest.(*Num); ok {
		return numMul(coeff, rest.(*Num))
	}
	if m, ok := rest.(*Mul); ok {
		return &Mul{factors: append([]Expr{coeff}, m.factors...)}
	}
	return &Mul{factors: []Expr{coeff, rest}}
}

func (a *Add) Sub(name string, value Expr) Expr {
	terms := make([]Expr, len(a.terms))
	for i, t := range a.terms {
		terms[i] = t.Sub(name, value)
	}
	return AddOf(terms...)
}

func (a *Add) Diff(name string) Expr {
	terms := make([]Expr, len(a.terms))
	for i, t := range a.terms {
		terms[i] = t.Diff(name)
	}
	return AddOf(terms...)
}

func (a *Add) Eval(env Env) (float64, error) {
	acc := 0.0
	for _, t := range a.terms {
		v, err := t.Eval(env)
		if err != nil {
			return 0, err
		}
		acc += v
	}
	if math.IsNaN(acc) {
		return 0, evalErr(a, ErrUndefined, "oo - oo")
	}
	return acc, nil
}

func (a *Add) toJSON() map[string]any {
	ts := make([]map[string]any, len(a.terms))
	for i, t := range a.terms {
		ts[i] = t.toJSON()
	}
	return map[string]any{"type": "add", "terms": ts}
}
