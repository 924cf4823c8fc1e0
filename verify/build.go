package verify

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/njchilds90/answercheck/cas"
	"github.com/njchilds90/answercheck/normalize"
)

// Build normalizes raw and parses it. Errors name the field they came from
// and wrap the *cas.ParseError.
func Build(field, raw string) (cas.Expr, error) {
	e, err := cas.Parse(normalize.String(raw))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", field, err)
	}
	return e, nil
}

// buildNumber builds raw and evaluates it to a float.
func buildNumber(field, raw string) (cas.Expr, float64, error) {
	e, err := Build(field, raw)
	if err != nil {
		return nil, 0, err
	}
	v, err := e.Eval(nil)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", field, err)
	}
	return e, v, nil
}

// substitute replaces each name in values by its built expression, in
// name order.
func substitute(e cas.Expr, field string, values map[string]string) (cas.Expr, error) {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		v, err := Build(field+"."+name, values[name])
		if err != nil {
			return nil, err
		}
		e = cas.Sub(e, name, v)
	}
	return e, nil
}

// variable picks the variable a claim is about: the first declared
// variable, else x when it occurs, else the first free symbol by name.
func variable(declared []string, exprs ...cas.Expr) string {
	for _, v := range declared {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	var first string
	for _, e := range exprs {
		if e == nil {
			continue
		}
		syms := cas.Symbols(e)
		for _, s := range syms {
			if s == "x" {
				return s
			}
		}
		if first == "" && len(syms) > 0 {
			first = syms[0]
		}
	}
	if first != "" {
		return first
	}
	return "x"
}

// symbolsOf is the sorted union of free symbols.
func symbolsOf(exprs ...cas.Expr) []string {
	seen := map[string]bool{}
	var out []string
	for _, e := range exprs {
		for _, s := range cas.Symbols(e) {
			if !seen[s] {
				seen[s] = true
				out = append(out, s)
			}
		}
	}
	sort.Strings(out)
	return out
}

// parseBound reads an interval end. Infinite ends yield a nil expression.
func parseBound(field, raw string) (cas.Expr, float64, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "-inf", "(-inf)", "-oo", "-infinity":
		return nil, math.Inf(-1), nil
	case "inf", "(inf)", "+inf", "oo", "+oo", "infinity":
		return nil, math.Inf(1), nil
	}
	e, v, err := buildNumber(field, raw)
	if err != nil {
		return nil, 0, err
	}
	if math.IsInf(v, 0) {
		return nil, v, nil
	}
	return e, v, nil
}

// splitEquation splits raw text on its first "=" or "==". Comparisons
// such as <= or != are not equations.
func splitEquation(raw string) (lhs, rhs string, ok bool) {
	for i := 0; i < len(raw); i++ {
		if raw[i] != '=' {
			continue
		}
		if i > 0 && strings.ContainsRune("<>!", rune(raw[i-1])) {
			return "", "", false
		}
		j := i + 1
		if j < len(raw) && raw[j] == '=' {
			j++
		}
		return raw[:i], raw[j:], true
	}
	return "", "", false
}

func minus(a, b cas.Expr) cas.Expr { return cas.AddOf(a, cas.MulOf(cas.N(-1), b)) }
