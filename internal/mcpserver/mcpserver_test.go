package mcpserver

import (
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/answercheck/internal/logger"
	"github.com/njchilds90/answercheck/normalize"
	"github.com/njchilds90/answercheck/verify"
)

func newTestServer() *Server {
	log := logger.NewLogger(logger.TestConfig())
	return New(verify.New(verify.WithLogger(log)), "test", log)
}

func call(args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func TestValidateTool(t *testing.T) {
	t.Parallel()
	s := newTestServer()

	t.Run("Should validate a spec given as text", func(t *testing.T) {
		t.Parallel()
		res, err := s.handleValidate(t.Context(), call(map[string]any{
			"answer_spec": `{"kind":"derivative","of":"x**3","result":"3*x**2"}`,
		}))
		require.NoError(t, err)
		r, ok := res.StructuredContent.(verify.Report)
		require.True(t, ok)
		assert.True(t, r.OK, r.Reason)
	})
	t.Run("Should validate a spec given as an object", func(t *testing.T) {
		t.Parallel()
		res, err := s.handleValidate(t.Context(), call(map[string]any{
			"answer_spec": map[string]any{"kind": "roots", "expr": "x**2 - 4", "solutions": []any{2, -2}},
		}))
		require.NoError(t, err)
		r := res.StructuredContent.(verify.Report)
		assert.True(t, r.OK, r.Reason)
	})
	t.Run("Should flag a missing argument as a tool error", func(t *testing.T) {
		t.Parallel()
		res, err := s.handleValidate(t.Context(), call(map[string]any{}))
		require.NoError(t, err)
		assert.True(t, res.IsError)
	})
}

func TestNormalizeTool(t *testing.T) {
	t.Parallel()
	s := newTestServer()
	res, err := s.handleNormalize(t.Context(), call(map[string]any{"expr": "2x² − 1"}))
	require.NoError(t, err)
	d := res.StructuredContent.(normalize.Description)
	assert.Equal(t, "2*x**2 - 1", d.Normalized)
	assert.Equal(t, "2*x^2 - 1", d.Parsed)
}

func TestEquivalenceTool(t *testing.T) {
	t.Parallel()
	s := newTestServer()

	t.Run("Should prove equivalent expressions", func(t *testing.T) {
		t.Parallel()
		res, err := s.handleEquivalence(t.Context(), call(map[string]any{"lhs": "(x+1)^2", "rhs": "x^2 + 2x + 1"}))
		require.NoError(t, err)
		r := res.StructuredContent.(verify.Report)
		assert.True(t, r.OK)
		assert.Equal(t, "symbolic", r.Details["method"])
	})
	t.Run("Should require both sides", func(t *testing.T) {
		t.Parallel()
		res, err := s.handleEquivalence(t.Context(), call(map[string]any{"lhs": "x"}))
		require.NoError(t, err)
		assert.True(t, res.IsError)
	})
}
