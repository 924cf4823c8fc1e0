// Package normalize rewrites loosely formatted math text (unicode glyphs,
// absolute value bars, implicit products, "y =" labels) into the ASCII
// syntax accepted by cas.Parse.
//
// A digit run followed by e or E and an optional signed integer is kept as
// decimal exponent notation: 2e-1 reads as 0.2, not 2*e - 1. Write 2*e - 1
// when Euler's number is meant.
package normalize

import (
	"regexp"
	"strings"
)

// String normalizes raw math text. It never fails; text that is still not
// valid syntax afterwards is rejected by the parser. String is idempotent.
func String(raw string) string {
	s := strings.TrimSpace(raw)
	s = Glyphs(s)
	s = StripLabel(s)
	s = strings.ReplaceAll(s, "^", "**")
	s = AbsBars(s)
	s = ImplicitProducts(s)
	s = naturalLog.ReplaceAllString(s, "log")
	return strings.TrimSpace(s)
}

// ============================================================
// Unicode glyphs
// ============================================================

var glyphs = strings.NewReplacer(
	"−", "-", "–", "-", "—", "-",
	"×", "*", "·", "*", "•", "*", "∙", "*",
	"÷", "/",
	"π", "pi",
	"∞", "oo",
	"≤", "<=", "≥", ">=", "≠", "!=",
	"²", "^2", "³", "^3",
)

// Glyphs maps unicode math symbols onto their ASCII spelling. A radical
// directly followed by a number or a lone letter wraps it, so √2x reads as
// sqrt(2)x rather than sqrt2x.
func Glyphs(s string) string {
	return radicals(glyphs.Replace(s))
}

func radicals(s string) string {
	if !strings.ContainsRune(s, '√') {
		return s
	}
	rs := []rune(s)
	var b strings.Builder
	for i := 0; i < len(rs); i++ {
		if rs[i] != '√' {
			b.WriteRune(rs[i])
			continue
		}
		j := i + 1
		switch {
		case j < len(rs) && isDigit(rs[j]):
			for j < len(rs) && (isDigit(rs[j]) || rs[j] == '.') {
				j++
			}
		case j < len(rs) && isLetter(rs[j]) && (j+1 == len(rs) || !isLetter(rs[j+1])):
			j++
		}
		if j == i+1 {
			b.WriteString("sqrt")
			continue
		}
		b.WriteString("sqrt(" + string(rs[i+1:j]) + ")")
		i = j - 1
	}
	return b.String()
}

func isDigit(r rune) bool  { return r >= '0' && r <= '9' }
func isLetter(r rune) bool { return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' }

// ============================================================
// Labels
// ============================================================

var (
	funcLabel = regexp.MustCompile(`(?s)^[a-zA-Z]\s*\(\s*[a-zA-Z]\s*\)\s*=([^=].*)$`)
	yLabel    = regexp.MustCompile(`(?s)^[yY]\s*=([^=].*)$`)
)

// StripLabel drops leading "f(x) =" and "y =" labels. Comparisons such as
// "y == 3" are left alone.
func StripLabel(s string) string {
	for {
		m := funcLabel.FindStringSubmatch(s)
		if m == nil {
			m = yLabel.FindStringSubmatch(s)
		}
		if m == nil {
			return s
		}
		s = strings.TrimSpace(m[1])
	}
}

// ============================================================
// Absolute value bars
// ============================================================

var (
	naturalLog = regexp.MustCompile(`\bln\b`)
	absBar     = regexp.MustCompile(`\|([^|]+)\|`)
)

// AbsBars rewrites |u| as Abs(u), innermost pairs first, until no pair
// is left. Bars nested inside a longer bar expression, as in |x + |y||,
// are not matched correctly.
func AbsBars(s string) string {
	for {
		next := absBar.ReplaceAllString(s, "Abs($1)")
		if next == s {
			return s
		}
		s = next
	}
}

// ============================================================
// Implicit multiplication
// ============================================================

// Functions are the names left alone when followed by "(".
var Functions = map[string]bool{
	"sin": true, "cos": true, "tan": true, "sec": true, "csc": true, "cot": true,
	"asin": true, "acos": true, "atan": true, "arcsin": true, "arccos": true, "arctan": true,
	"sinh": true, "cosh": true, "tanh": true, "asinh": true, "acosh": true, "atanh": true,
	"log": true, "ln": true, "exp": true, "sqrt": true,
	"Abs": true, "abs": true, "floor": true, "ceil": true, "sign": true,
}

var keywords = map[string]bool{"and": true, "or": true, "not": true}

var (
	decimalExp  = regexp.MustCompile(`(\d)([eE])([+-]?\d)`)
	digitThen   = regexp.MustCompile(`(\d)\s*([A-Za-z]+|\()`)
	closeThen   = regexp.MustCompile(`\)\s*([A-Za-z]+|[0-9(])`)
	letterDigit = regexp.MustCompile(`([A-Za-z]+)\s*(\d)`)
	wordParen   = regexp.MustCompile(`\b([A-Za-z]+)\s*\(`)
)

// Private-use runes stand in for the exponent marker of 1e-6 and 2E3 so
// the digit-letter rule does not split them.
const (
	lowerExp = "\uE000"
	upperExp = "\uE001"
)

// ImplicitProducts inserts "*" between a digit and a following letter or
// "(", after ")" before a letter, digit or "(", between a letter and a
// following digit, and between a single-letter name and "(". Longer words
// before "(" are function calls. The keywords and, or and not are never
// joined to their neighbours.
func ImplicitProducts(s string) string {
	s = rewrite(decimalExp, s, func(m []string) string {
		mark := lowerExp
		if m[2] == "E" {
			mark = upperExp
		}
		return m[1] + mark + m[3]
	})
	s = rewrite(digitThen, s, func(m []string) string {
		if keywords[m[2]] {
			return m[0]
		}
		return m[1] + "*" + m[2]
	})
	s = rewrite(closeThen, s, func(m []string) string {
		if keywords[m[1]] {
			return m[0]
		}
		return ")*" + m[1]
	})
	s = rewrite(letterDigit, s, func(m []string) string {
		if keywords[m[1]] {
			return m[0]
		}
		return m[1] + "*" + m[2]
	})
	s = rewrite(wordParen, s, func(m []string) string {
		word := m[1]
		if keywords[word] {
			return m[0]
		}
		if len(word) == 1 && !Functions[word] {
			return word + "*("
		}
		return word + "("
	})
	s = strings.ReplaceAll(s, lowerExp, "e")
	return strings.ReplaceAll(s, upperExp, "E")
}

// rewrite replaces every match of re with fn applied to its submatches.
func rewrite(re *regexp.Regexp, s string, fn func(m []string) string) string {
	locs := re.FindAllStringSubmatchIndex(s, -1)
	if locs == nil {
		return s
	}
	var b strings.Builder
	last := 0
	for _, loc := range locs {
		b.WriteString(s[last:loc[0]])
		m := make([]string, len(loc)/2)
		for i := range m {
			if loc[2*i] >= 0 {
				m[i] = s[loc[2*i]:loc[2*i+1]]
			}
		}
		b.WriteString(fn(m))
		last = loc[1]
	}
	b.WriteString(s[last:])
	return b.String()
}
