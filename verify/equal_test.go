package verify_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/answercheck/cas"
	"github.com/njchilds90/answercheck/verify"
)

func TestEngine_Equal(t *testing.T) {
	t.Parallel()
	e := newEngine()

	cases := []struct {
		name    string
		lhs     string
		rhs     string
		matched bool
		method  verify.Method
	}{
		{"Should prove an expanded square", "(x + 1)**2", "x**2 + 2*x + 1", true, verify.MethodSymbolic},
		{"Should prove the Pythagorean identity", "sin(x)**2 + cos(x)**2", "1", true, verify.MethodSymbolic},
		{"Should compare constants numerically", "pi", "3.14159265", true, verify.MethodNumericConst},
		{"Should reject different constants", "sqrt(2)", "1.4142", false, verify.MethodNumericConst},
		{"Should treat infinities literally", "oo", "10**100", false, verify.MethodNumericConst},
		{"Should sample when symbolic proof fails", "floor(x)", "x", true, verify.MethodNumericSamples},
		{"Should reject a sampled mismatch", "sin(x)", "x", false, verify.MethodNumericSamples},
		{"Should count evaluation failures as mismatches", "log(x)", "log(x) + 1", false, verify.MethodNumericSamples},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			v, err := e.Equal(t.Context(), cas.MustParse(tc.lhs), cas.MustParse(tc.rhs))
			require.NoError(t, err)
			assert.Equal(t, tc.matched, v.Matched, v.Detail)
			assert.Equal(t, tc.method, v.Method)
		})
	}

	t.Run("Should sample the first symbol by name", func(t *testing.T) {
		t.Parallel()
		v, err := e.Equal(t.Context(), cas.MustParse("abs(b)"), cas.MustParse("sqrt(b**2)"))
		require.NoError(t, err)
		assert.True(t, v.Matched, v.Detail)
		if v.Method == verify.MethodNumericSamples {
			assert.Equal(t, []string{"b"}, v.Vars)
		}
	})
	t.Run("Should refuse to compare conditions", func(t *testing.T) {
		t.Parallel()
		_, err := e.Equal(t.Context(), cas.MustParse("x < 1"), cas.MustParse("x"))
		assert.ErrorIs(t, err, cas.ErrNotNumeric)
	})
	t.Run("Should stop on a canceled context", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithCancel(t.Context())
		cancel()
		_, err := e.Equal(ctx, cas.MustParse("x"), cas.MustParse("x"))
		assert.ErrorIs(t, err, context.Canceled)
	})
}
