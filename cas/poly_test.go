package cas_test

import (
	"testing"

	"github.com/njchilds90/answercheck/cas"
)

func TestPolyCoeffs(t *testing.T) {
	p, ok := cas.PolyCoeffs(cas.MustParse("(x - 2)*(x + 3)"), "x")
	if !ok {
		t.Fatal("want polynomial")
	}
	if p.Degree() != 2 {
		t.Fatalf("want degree 2, got %d", p.Degree())
	}
	want := []string{"-6", "1", "1"}
	for i, w := range want {
		if p[i].RatString() != w {
			t.Errorf("coefficient %d: want %s, got %s", i, w, p[i].RatString())
		}
	}
	if _, ok := cas.PolyCoeffs(cas.MustParse("sin(x) + 1"), "x"); ok {
		t.Error("sin(x) + 1 is not a polynomial")
	}
	if _, ok := cas.PolyCoeffs(cas.MustParse("x*y"), "x"); ok {
		t.Error("x*y has a foreign symbol")
	}
}

func TestCountRealRoots(t *testing.T) {
	cases := map[string]int{
		"x**2 - 5*x + 6": 2,
		"x**2 + 1":       0,
		"(x - 2)**2":     1,
		"x**3 - x":       3,
		"7":              0,
	}
	for in, want := range cases {
		p, ok := cas.PolyCoeffs(cas.MustParse(in), "x")
		if !ok {
			t.Errorf("%s: not a polynomial", in)
			continue
		}
		if got := cas.CountRealRoots(p); got != want {
			t.Errorf("%s: want %d roots, got %d", in, want, got)
		}
	}
	if got := cas.CountRealRoots(nil); got != -1 {
		t.Errorf("zero polynomial: want -1, got %d", got)
	}
}
