package cas_test

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/njchilds90/answercheck/cas"
)

// ============================================================
// Num tests
// ============================================================

func TestNum_Integer(t *testing.T) {
	n := cas.N(42)
	if n.String() != "42" {
		t.Errorf("want 42, got %s", n.String())
	}
}

func TestNum_Rational(t *testing.T) {
	n := cas.F(1, 3)
	if n.String() != "1/3" {
		t.Errorf("want 1/3, got %s", n.String())
	}
}

func TestNum_LaTeX_Rational(t *testing.T) {
	n := cas.F(2, 5)
	if n.LaTeX() != `\frac{2}{5}` {
		t.Errorf("want \\frac{2}{5}, got %s", n.LaTeX())
	}
}

func TestNum_Diff_IsZero(t *testing.T) {
	if got := cas.Diff(cas.N(5), "x").String(); got != "0" {
		t.Errorf("d/dx(5) should be 0, got %s", got)
	}
}

// ============================================================
// Arithmetic and simplification
// ============================================================

func TestAdd_CollectsLikeTerms(t *testing.T) {
	x := cas.S("x")
	e := cas.AddOf(x, x, cas.MulOf(cas.N(3), x))
	if e.String() != "5*x" {
		t.Errorf("want 5*x, got %s", e)
	}
}

func TestAdd_PrintsSubtraction(t *testing.T) {
	e := cas.MustParse("x**2 - 5*x + 6")
	if e.String() != "x^2 - 5*x + 6" {
		t.Errorf("want x^2 - 5*x + 6, got %s", e)
	}
}

func TestMul_CancelsPowers(t *testing.T) {
	if got := cas.MustParse("x/x").String(); got != "1" {
		t.Errorf("want 1, got %s", got)
	}
	if got := cas.MustParse("x**2*x**3").String(); got != "x^5" {
		t.Errorf("want x^5, got %s", got)
	}
}

func TestMul_ZeroTimesPoleStaysUndefined(t *testing.T) {
	e := cas.Sub(cas.MustParse("sin(x)/x"), "x", cas.N(0))
	if _, err := e.Eval(nil); !errors.Is(err, cas.ErrDivisionByZero) {
		t.Errorf("want division by zero, got %v", err)
	}
}

func TestPow_OneToUndefinedStaysUndefined(t *testing.T) {
	e := cas.Sub(cas.MustParse("(1 + x)**(1/x)"), "x", cas.N(0))
	if _, err := e.Eval(nil); !errors.Is(err, cas.ErrDivisionByZero) {
		t.Errorf("want division by zero, got %v (%s)", err, e)
	}
	if _, err := cas.PowOf(cas.N(1), cas.Infinity).Eval(nil); !errors.Is(err, cas.ErrUndefined) {
		t.Errorf("1^oo: want undefined, got %v", err)
	}
	if got := cas.PowOf(cas.N(1), cas.S("x")).String(); got != "1" {
		t.Errorf("1^x: want 1, got %s", got)
	}
}

func TestPow_ExactRoots(t *testing.T) {
	cases := map[string]string{
		"sqrt(4)":         "2",
		"sqrt(9/4)":       "3/2",
		"sqrt(2)**2":      "2",
		"2**-2":           "1/4",
		"(2*x)**2":        "4*x^2",
		"E**x":            "exp(x)",
		"exp(x)*exp(2*x)": "exp(3*x)",
	}
	for in, want := range cases {
		if got := cas.MustParse(in).String(); got != want {
			t.Errorf("%s: want %s, got %s", in, want, got)
		}
	}
}

func TestFunc_ExactFolds(t *testing.T) {
	cases := map[string]string{
		"sin(0)":      "0",
		"cos(0)":      "1",
		"cos(pi)":     "-1",
		"log(1)":      "0",
		"ln(E)":       "1",
		"exp(log(x))": "x",
		"abs(-3)":     "3",
		"abs(-x)":     "abs(x)",
		"floor(7/2)":  "3",
		"ceil(7/2)":   "4",
		"floor(-1/2)": "-1",
	}
	for in, want := range cases {
		if got := cas.MustParse(in).String(); got != want {
			t.Errorf("%s: want %s, got %s", in, want, got)
		}
	}
}

func TestFunc_NoFloatFolding(t *testing.T) {
	if got := cas.MustParse("sin(1)").String(); got != "sin(1)" {
		t.Errorf("want sin(1) to stay symbolic, got %s", got)
	}
}

// ============================================================
// Expand / Together / IsZero
// ============================================================

func TestExpand_Product(t *testing.T) {
	got := cas.Expand(cas.MustParse("(x-2)*(x-3)")).String()
	if got != "x^2 - 5*x + 6" {
		t.Errorf("want x^2 - 5*x + 6, got %s", got)
	}
}

func TestExpand_Power(t *testing.T) {
	got := cas.Expand(cas.MustParse("(x+1)**3")).String()
	if got != "x^3 + 3*x^2 + 3*x + 1" {
		t.Errorf("want x^3 + 3*x^2 + 3*x + 1, got %s", got)
	}
}

func TestTogether_SumOfFractions(t *testing.T) {
	num, den := cas.Together(cas.MustParse("1/x + 1/y"))
	if num.String() != "x + y" {
		t.Errorf("want numerator x + y, got %s", num)
	}
	if den.String() != "x*y" {
		t.Errorf("want denominator x*y, got %s", den)
	}
}

func TestIsZero(t *testing.T) {
	zero := []string{
		"(x+1)**2 - (x**2 + 2*x + 1)",
		"sin(x)**2 + cos(x)**2 - 1",
		"1/x + 1/y - (x+y)/(x*y)",
		"(x**2 - 1)/(x - 1) - (x + 1)*(x**2 - 1)/(x**2 - 1)",
		"abs(x) - abs(-x)",
	}
	for _, in := range zero {
		if !cas.IsZero(cas.MustParse(in)) {
			t.Errorf("%s should simplify to zero", in)
		}
	}
	nonzero := []string{"x - 1", "sin(x)**2 - cos(x)**2", "oo - oo"}
	for _, in := range nonzero {
		if cas.IsZero(cas.MustParse(in)) {
			t.Errorf("%s should not be proven zero", in)
		}
	}
}

func TestTrigSimplify_Pythagorean(t *testing.T) {
	got := cas.TrigSimplify(cas.MustParse("3*sin(x)**2 + 3*cos(x)**2 + y")).String()
	if got != "y + 3" {
		t.Errorf("want y + 3, got %s", got)
	}
}

// ============================================================
// Differentiation
// ============================================================

func TestDiff(t *testing.T) {
	cases := map[string]string{
		"x**3":     "3*x^2",
		"sin(x)":   "cos(x)",
		"exp(2*x)": "2*exp(2*x)",
		"log(x)":   "1/x",
		"7":        "0",
	}
	for in, want := range cases {
		if got := cas.Diff(cas.MustParse(in), "x").String(); got != want {
			t.Errorf("d/dx %s: want %s, got %s", in, want, got)
		}
	}
}

func TestDiffN(t *testing.T) {
	if got := cas.DiffN(cas.MustParse("x**4"), "x", 2).String(); got != "12*x^2" {
		t.Errorf("want 12*x^2, got %s", got)
	}
}

func TestDiff_ChainRule(t *testing.T) {
	d := cas.Diff(cas.MustParse("sin(x**2)"), "x")
	want := cas.MustParse("2*x*cos(x**2)")
	if !cas.IsZero(cas.AddOf(d, cas.MulOf(cas.N(-1), want))) {
		t.Errorf("want %s, got %s", want, d)
	}
}

// ============================================================
// Evaluation
// ============================================================

func TestEval_Values(t *testing.T) {
	v, err := cas.MustParse("x**2 + 1").Eval(cas.Env{"x": 3})
	if err != nil || v != 10 {
		t.Errorf("want 10, got %v (%v)", v, err)
	}
	v, err = cas.MustParse("(-8)**(1/3)").Eval(nil)
	if err != nil || math.Abs(v+2) > 1e-12 {
		t.Errorf("want -2, got %v (%v)", v, err)
	}
	v, err = cas.MustParse("-oo").Eval(nil)
	if err != nil || !math.IsInf(v, -1) {
		t.Errorf("want -Inf, got %v (%v)", v, err)
	}
}

func TestEval_Errors(t *testing.T) {
	cases := []struct {
		in   string
		want error
	}{
		{"1/x", cas.ErrDivisionByZero},
		{"log(x - 1)", cas.ErrDomain},
		{"sqrt(x - 1)", cas.ErrDomain},
		{"y", cas.ErrUnbound},
		{"x < 1", cas.ErrNotNumeric},
	}
	for _, c := range cases {
		_, err := cas.MustParse(c.in).Eval(cas.Env{"x": 0})
		if !errors.Is(err, c.want) {
			t.Errorf("%s: want %v, got %v", c.in, c.want, err)
			continue
		}
		var ee *cas.EvalError
		if !errors.As(err, &ee) {
			t.Errorf("%s: want *EvalError, got %T", c.in, err)
		}
	}
}

func TestTruth(t *testing.T) {
	cond := cas.MustParse("x > 1 & x < 3")
	ok, err := cas.Truth(cond, cas.Env{"x": 2}, 1e-9)
	if err != nil || !ok {
		t.Errorf("want true at x=2, got %v (%v)", ok, err)
	}
	ok, _ = cas.Truth(cond, cas.Env{"x": 3}, 1e-9)
	if ok {
		t.Errorf("want false at x=3")
	}
	ok, _ = cas.Truth(cas.MustParse("x**2 - 4 >= 0"), cas.Env{"x": 2}, 1e-9)
	if !ok {
		t.Errorf("boundary of >= should hold")
	}
	if _, err := cas.Truth(cas.MustParse("x + 1"), nil, 1e-9); !errors.Is(err, cas.ErrNotBoolean) {
		t.Errorf("want ErrNotBoolean, got %v", err)
	}
}

func TestClose(t *testing.T) {
	if !cas.Close(1, 1+5e-7, 1e-6) {
		t.Error("values within tolerance should be close")
	}
	if cas.Close(1, 1+2e-6, 1e-6) {
		t.Error("values outside tolerance should differ")
	}
	if !cas.Close(math.Inf(1), math.Inf(1), 1e-6) || cas.Close(math.Inf(1), math.Inf(-1), 1e-6) {
		t.Error("infinities are only close to themselves")
	}
	if cas.Close(math.NaN(), math.NaN(), 1e-6) {
		t.Error("NaN is never close")
	}
}

// ============================================================
// Integration / JSON / Symbols
// ============================================================

func TestIntegrate(t *testing.T) {
	cases := []string{"3*x**2", "sin(2*x)", "exp(x) + 1/x", "cos(3*x + 1)", "1/(2*x + 1)"}
	for _, in := range cases {
		f := cas.MustParse(in)
		F, ok := cas.Integrate(f, "x")
		if !ok {
			t.Errorf("%s: integration failed", in)
			continue
		}
		diff := cas.AddOf(cas.Diff(F, "x"), cas.MulOf(cas.N(-1), f))
		if !cas.IsZero(diff) {
			t.Errorf("%s: d/dx %s does not match", in, F)
		}
	}
}

func TestToJSON(t *testing.T) {
	s, err := cas.ToJSON(cas.MustParse("x + 1"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(s, `"type":"add"`) {
		t.Errorf("want add node, got %s", s)
	}
}

func TestSymbols_Sorted(t *testing.T) {
	got := cas.Symbols(cas.MustParse("z*y + x - pi"))
	if strings.Join(got, ",") != "x,y,z" {
		t.Errorf("want x,y,z, got %v", got)
	}
}
