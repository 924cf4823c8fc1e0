package cas_test

import (
	"errors"
	"testing"

	"github.com/njchilds90/answercheck/cas"
)

func TestParse_Forms(t *testing.T) {
	cases := map[string]string{
		"2*x + 3*x":        "5*x",
		"x^2":              "x^2",
		"ln(x)":            "log(x)",
		"log(8, 2)":        "log(8)/log(2)",
		"[x + 1]*2":        "2*(x + 1)",
		"x = 1":            "x == 1",
		"x >= 1 and x < 2": "(x >= 1) & (x < 2)",
		"1 < x < 2":        "(1 < x) & (x < 2)",
		"1.5e2":            "150",
	}
	for in, want := range cases {
		e, err := cas.Parse(in)
		if err != nil {
			t.Errorf("%s: %v", in, err)
			continue
		}
		if e.String() != want {
			t.Errorf("%s: want %s, got %s", in, want, e)
		}
	}
}

func TestParse_Errors(t *testing.T) {
	for _, in := range []string{"", "2*", "foo(x)", "(x", "x $ 2", "x y"} {
		_, err := cas.Parse(in)
		var pe *cas.ParseError
		if !errors.As(err, &pe) {
			t.Errorf("%q: want *ParseError, got %v", in, err)
		}
	}
}
