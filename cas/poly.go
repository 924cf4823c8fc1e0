package cas

import "math/big"

// ============================================================
// Polynomial utilities
// ============================================================

// Poly is a dense polynomial with rational coefficients; index i holds the
// coefficient of x^i. The zero polynomial is empty.
type Poly []*big.Rat

// PolyCoeffs extracts the rational coefficients of e as a polynomial in
// name. It fails when e has other symbols, constants or non-integer powers.
func PolyCoeffs(e Expr, name string) (Poly, bool) {
	s := Expand(e)
	terms := []Expr{s}
	if a, ok := s.(*Add); ok {
		terms = a.terms
	}
	var p Poly
	for _, t := range terms {
		coeff, rest := splitCoeff(t)
		deg, ok := monomialDegree(rest, name)
		if !ok {
			return nil, false
		}
		for len(p) <= deg {
			p = append(p, new(big.Rat))
		}
		p[deg].Add(p[deg], coeff.val)
	}
	return p.trim(), true
}

func monomialDegree(e Expr, name string) (int, bool) {
	switch v := e.(type) {
	case *Num:
		return 0, v.IsOne()
	case *Sym:
		return 1, v.name == name
	case *Pow:
		sym, ok := v.base.(*Sym)
		if !ok || sym.name != name {
			return 0, false
		}
		n, ok := v.exp.(*Num)
		if !ok {
			return 0, false
		}
		k, ok := n.smallInt()
		return int(k), ok && k >= 0 && k <= 1<<16
	}
	return 0, false
}

// Degree is the polynomial degree; the zero polynomial has degree -1.
func (p Poly) Degree() int { return len(p) - 1 }

func (p Poly) trim() Poly {
	n := len(p)
	for n > 0 && p[n-1].Sign() == 0 {
		n--
	}
	return p[:n]
}

func (p Poly) clone() Poly {
	out := make(Poly, len(p))
	for i, c := range p {
		out[i] = new(big.Rat).Set(c)
	}
	return out
}

func (p Poly) derivative() Poly {
	if len(p) <= 1 {
		return nil
	}
	out := make(Poly, len(p)-1)
	for i := 1; i < len(p); i++ {
		out[i-1] = new(big.Rat).Mul(p[i], big.NewRat(int64(i), 1))
	}
	return out.trim()
}

func (p Poly) neg() Poly {
	out := make(Poly, len(p))
	for i, c := range p {
		out[i] = new(big.Rat).Neg(c)
	}
	return out
}

// rem returns the remainder of p divided by d. d must be non-zero.
func (p Poly) rem(d Poly) Poly {
	r := p.clone().trim()
	dd := d.Degree()
	lead := d[dd]
	for len(r) > 0 && r.Degree() >= dd {
		shift := r.Degree() - dd
		q := new(big.Rat).Quo(r[r.Degree()], lead)
		for i := 0; i <= dd; i++ {
			t := new(big.Rat).Mul(q, d[i])
			r[i+shift] = new(big.Rat).Sub(r[i+shift], t)
		}
		r[len(r)-1] = new(big.Rat)
		r = r.trim()
	}
	return r
}

// signAtInfinity is the sign of p as x tends to +oo, or -oo when neg.
func (p Poly) signAtInfinity(neg bool) int {
	s := p[p.Degree()].Sign()
	if neg && p.Degree()%2 == 1 {
		s = -s
	}
	return s
}

// CountRealRoots returns the number of distinct real roots of p using a
// Sturm sequence. It returns -1 for the zero polynomial.
func CountRealRoots(p Poly) int {
	p = p.trim()
	if len(p) == 0 {
		return -1
	}
	if p.Degree() == 0 {
		return 0
	}
	seq := []Poly{p, p.derivative()}
	for {
		r := seq[len(seq)-2].rem(seq[len(seq)-1])
		if len(r) == 0 {
			break
		}
		seq = append(seq, r.neg())
	}
	return signChanges(seq, true) - signChanges(seq, false)
}

func signChanges(seq []Poly, neg bool) int {
	changes, prev := 0, 0
	for _, q := range seq {
		s := q.signAtInfinity(neg)
		if s == 0 {
			continue
		}
		if prev != 0 && s != prev {
			changes++
		}
		prev = s
	}
	return changes
}
