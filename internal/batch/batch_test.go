package batch

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/answercheck/internal/logger"
	"github.com/njchilds90/answercheck/verify"
)

func testContext(t *testing.T) context.Context {
	return logger.ContextWithLogger(t.Context(), logger.NewLogger(logger.TestConfig()))
}

func TestDecode(t *testing.T) {
	t.Parallel()

	t.Run("Should read a JSON array", func(t *testing.T) {
		t.Parallel()
		items, err := Decode(strings.NewReader(`[
			{"id":"q1","answer_spec":{"kind":"value","expr":"2+2","value":4}},
			{"answer_spec":{"kind":"value","expr":"1","value":1}}
		]`))
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, "q1", items[0].ID)
		_, err = uuid.Parse(items[1].ID)
		assert.NoError(t, err)
	})
	t.Run("Should read JSON lines and wrap bare specs", func(t *testing.T) {
		t.Parallel()
		items, err := Decode(strings.NewReader(
			"{\"kind\":\"value\",\"expr\":\"2\",\"value\":2}\n\n{\"answer_spec\":{\"kind\":\"roots\",\"expr\":\"x\",\"solutions\":[0]}}\n"))
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.JSONEq(t, `{"answer_spec":{"kind":"value","expr":"2","value":2}}`, string(items[0].Question))
	})
	t.Run("Should read a YAML list", func(t *testing.T) {
		t.Parallel()
		items, err := Decode(strings.NewReader(`
- id: y1
  answer_spec:
    kind: roots
    expr: x**2 - 4
    solutions: [2, -2]
- kind: expression_equiv
  lhs: (x+1)^2
  rhs: x^2 + 2x + 1
`))
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, "y1", items[0].ID)
		assert.Contains(t, string(items[1].Question), `"answer_spec"`)
	})
	t.Run("Should report the line of invalid JSON", func(t *testing.T) {
		t.Parallel()
		_, err := Decode(strings.NewReader("{\"kind\":\"value\"}\n{oops\n"))
		assert.ErrorContains(t, err, "line 2")
	})
	t.Run("Should accept empty input", func(t *testing.T) {
		t.Parallel()
		items, err := Decode(strings.NewReader("  \n"))
		require.NoError(t, err)
		assert.Empty(t, items)
	})
}

func TestRun(t *testing.T) {
	t.Parallel()
	engine := verify.New(verify.WithLogger(logger.NewLogger(logger.TestConfig())))

	t.Run("Should keep input order and summarize", func(t *testing.T) {
		t.Parallel()
		items := []Item{
			NewItem([]byte(`{"kind":"roots","expr":"x**2 - 5*x + 6","solutions":["2","3"]}`)),
			NewItem([]byte(`{"kind":"roots","expr":"x**2 - 5*x + 6","solutions":["2","4"]}`)),
			NewItem([]byte(`{"kind":"matrix"}`)),
			NewItem([]byte(`{"kind":"expression_equiv","lhs":"2*","rhs":"2"}`)),
		}
		results, err := Run(testContext(t), engine, items, 2)
		require.NoError(t, err)
		require.Len(t, results, 4)
		for i, r := range results {
			assert.Equal(t, i, r.Index)
			assert.Equal(t, items[i].ID, r.ID)
		}
		assert.True(t, results[0].Report.OK)
		s := Summarize(results)
		assert.Equal(t, Summary{Total: 4, Passed: 1, Failed: 3, ByErrorKind: map[string]int{
			"semantic": 1, "spec": 1, "parse": 1,
		}}, s)
		assert.Equal(t, []string{"parse", "semantic", "spec"}, s.ErrorKinds())
	})
	t.Run("Should report canceled items", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithCancel(testContext(t))
		cancel()
		items := []Item{NewItem([]byte(`{"kind":"roots","expr":"x","solutions":[0]}`))}
		results, err := Run(ctx, engine, items, 0)
		assert.ErrorIs(t, err, context.Canceled)
		require.Len(t, results, 1)
		assert.False(t, results[0].Report.OK)
		assert.Equal(t, verify.ErrorKindInternal, results[0].Report.ErrorKind)
	})
}
