package verify_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/answercheck/verify"
)

func TestDecodeSpec(t *testing.T) {
	t.Parallel()

	t.Run("Should keep the spelling of numbers", func(t *testing.T) {
		t.Parallel()
		s, err := verify.DecodeSpec([]byte(`{"kind":"value","expr":"x","at":{"x":0.1},"value":1e-6}`))
		require.NoError(t, err)
		v := s.(*verify.ValueSpec)
		assert.Equal(t, "0.1", v.At["x"])
		assert.Equal(t, "1e-6", v.Value)
	})
	t.Run("Should read a lone solution as a list", func(t *testing.T) {
		t.Parallel()
		s, err := verify.DecodeSpec([]byte(`{"kind":"roots","expr":"x - 2","solutions":2}`))
		require.NoError(t, err)
		assert.Equal(t, []string{"2"}, s.(*verify.RootsSpec).Solutions)
	})
	t.Run("Should accept equivalence aliases", func(t *testing.T) {
		t.Parallel()
		s, err := verify.DecodeSpec([]byte(`{"kind":"EXPRESSION_EQUIV","expr":"2x","target":"x + x"}`))
		require.NoError(t, err)
		eq := s.(*verify.EquivSpec)
		assert.Equal(t, "2x", eq.LHS)
		assert.Equal(t, "x + x", eq.RHS)
	})
	t.Run("Should read derivative orders given as text", func(t *testing.T) {
		t.Parallel()
		s, err := verify.DecodeSpec([]byte(`{"kind":"derivative","of":"x**4","order":"2","result":"12x^2"}`))
		require.NoError(t, err)
		assert.Equal(t, 2, s.(*verify.DerivativeSpec).Order)
		_, err = verify.DecodeSpec([]byte(`{"kind":"derivative","of":"x","order":1.5}`))
		assert.ErrorIs(t, err, verify.ErrInvalidField)
	})
	t.Run("Should read nested interval lists", func(t *testing.T) {
		t.Parallel()
		s, err := verify.DecodeSpec([]byte(`{"kind":"interval","condition":"x > 0","intervals":[["(",0,"oo"],"(0, oo)"]}`))
		require.NoError(t, err)
		assert.Equal(t, [][]string{{"(", "0", "oo"}, {"(0, oo)"}}, s.(*verify.IntervalSpec).Intervals)
	})
	t.Run("Should list supported kinds", func(t *testing.T) {
		t.Parallel()
		_, err := verify.DecodeSpec([]byte(`{"kind":"matrix"}`))
		assert.ErrorIs(t, err, verify.ErrUnsupportedKind)
		assert.ErrorContains(t, err, "supported=[antiderivative derivative")
	})
	t.Run("Should reject a spec that is not an object", func(t *testing.T) {
		t.Parallel()
		_, err := verify.Decode([]byte(`{"answer_spec":"roots"}`))
		assert.ErrorIs(t, err, verify.ErrMissingSpec)
	})
}
