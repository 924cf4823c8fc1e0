package verify

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/njchilds90/answercheck/cas"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	_, parseErr := cas.Parse("(x")
	_, evalErr := cas.MustParse("1/x").Eval(cas.Env{"x": 0})

	cases := []struct {
		name   string
		err    error
		kind   ErrorKind
		prefix string
	}{
		{"Should keep spec errors", missingField(KindRoots, "expr", "'expr' required"), ErrorKindSpec, "'expr' required"},
		{"Should report panics as internal", &panicError{value: "boom"}, ErrorKindInternal, "internal error: boom"},
		{"Should report timeouts", fmt.Errorf("%w after 5s", ErrTimeout), ErrorKindInternal, "internal error: timeout"},
		{"Should report deadlines as timeouts", context.DeadlineExceeded, ErrorKindInternal, "internal error: timeout"},
		{"Should report cancellation", context.Canceled, ErrorKindInternal, "internal error: canceled"},
		{"Should unwrap parse errors", fmt.Errorf("lhs: %w", parseErr), ErrorKindParse, "parse error: lhs:"},
		{"Should unwrap evaluation errors", fmt.Errorf("expr: %w", evalErr), ErrorKindEval, "evaluation error: expr:"},
		{"Should default to internal", errors.New("odd"), ErrorKindInternal, "internal error: odd"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			kind, reason := classify(tc.err)
			assert.Equal(t, tc.kind, kind)
			assert.Contains(t, reason, tc.prefix)
		})
	}
}

func TestFieldError(t *testing.T) {
	t.Parallel()

	t.Run("Should use JSON field names", func(t *testing.T) {
		t.Parallel()
		err := fieldError(KindLimit, specValidate.Struct(&LimitSpec{Expr: "x"}))
		var se *SpecError
		assert.ErrorAs(t, err, &se)
		assert.Equal(t, "approaches", se.Field)
		assert.ErrorIs(t, err, ErrMissingField)
	})
	t.Run("Should name nested fields", func(t *testing.T) {
		t.Parallel()
		err := fieldError(KindStationaryPoint, specValidate.Struct(&StationaryPointSpec{Of: "x**2", Point: Point{X: "1"}}))
		assert.EqualError(t, err, "'point.y' required")
	})
	t.Run("Should reject an unknown direction", func(t *testing.T) {
		t.Parallel()
		err := fieldError(KindLimit, specValidate.Struct(&LimitSpec{Expr: "x", Approaches: "0", Direction: "left"}))
		assert.ErrorIs(t, err, ErrInvalidField)
		assert.ErrorContains(t, err, "'direction' must be one of + -")
	})
}

func TestHelpers(t *testing.T) {
	t.Parallel()

	t.Run("Should split equations but not comparisons", func(t *testing.T) {
		t.Parallel()
		l, r, ok := splitEquation("x + y = 3")
		assert.True(t, ok)
		assert.Equal(t, "x + y ", l)
		assert.Equal(t, " 3", r)
		_, r, ok = splitEquation("2*x == y")
		assert.True(t, ok)
		assert.Equal(t, " y", r)
		_, _, ok = splitEquation("x <= 3")
		assert.False(t, ok)
		_, _, ok = splitEquation("x - 3")
		assert.False(t, ok)
	})
	t.Run("Should pick the claim variable", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "t", variable([]string{"t"}, cas.MustParse("x + t")))
		assert.Equal(t, "x", variable(nil, cas.MustParse("a*x + b")))
		assert.Equal(t, "a", variable(nil, cas.MustParse("b + a")))
		assert.Equal(t, "x", variable(nil, cas.MustParse("7")))
	})
	t.Run("Should read interval shorthands", func(t *testing.T) {
		t.Parallel()
		for _, items := range [][]string{
			{"[", "1", "2", ")"}, {"(", "1", "2"}, {"1", "2", "]"}, {"[1, 2)"},
		} {
			lo, hi, err := splitInterval(items)
			assert.NoError(t, err, "%v", items)
			assert.Equal(t, "1", lo)
			assert.Contains(t, hi, "2")
		}
		_, _, err := splitInterval([]string{"1", "2"})
		assert.Error(t, err)
	})
	t.Run("Should pick exact representative points", func(t *testing.T) {
		t.Parallel()
		m, err := representative("i", "1", "2")
		assert.NoError(t, err)
		assert.Equal(t, "3/2", m.String())
		m, err = representative("i", "(-inf)", "-2")
		assert.NoError(t, err)
		assert.Equal(t, "-3", m.String())
		_, err = representative("i", "-oo", "+inf")
		assert.Error(t, err)
	})
	t.Run("Should format floats like expressions", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "oo", formatFloat(math.Inf(1)))
		assert.Equal(t, "-oo", formatFloat(math.Inf(-1)))
		assert.Equal(t, "0.333333333333", formatFloat(1.0/3))
	})
}
