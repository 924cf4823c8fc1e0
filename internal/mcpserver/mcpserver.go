// Package mcpserver exposes the validator as MCP tools for agent
// frameworks.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/njchilds90/answercheck/internal/batch"
	"github.com/njchilds90/answercheck/internal/logger"
	"github.com/njchilds90/answercheck/normalize"
	"github.com/njchilds90/answercheck/verify"
)

const (
	ToolValidate    = "validate_answer"
	ToolNormalize   = "normalize_expression"
	ToolEquivalence = "check_equivalence"
)

type Server struct {
	engine *verify.Engine
	log    logger.Logger
	mcp    *server.MCPServer
}

func New(engine *verify.Engine, version string, log logger.Logger) *Server {
	if log == nil {
		log = logger.Default()
	}
	s := &Server{
		engine: engine,
		log:    log,
		mcp: server.NewMCPServer("answercheck", version,
			server.WithToolCapabilities(false),
			server.WithRecovery(),
		),
	}
	s.mcp.AddTool(mcp.NewTool(ToolValidate,
		mcp.WithDescription("Check a structured claim about a math answer. "+
			"The spec is a JSON object with a kind ("+fmt.Sprint(verify.SupportedKinds())+") and the kind's fields."),
		mcp.WithString("answer_spec", mcp.Required(),
			mcp.Description(`Answer spec as JSON, e.g. {"kind":"roots","expr":"x^2-4","solutions":["2","-2"]}`)),
	), s.handleValidate)
	s.mcp.AddTool(mcp.NewTool(ToolNormalize,
		mcp.WithDescription("Normalize loosely written math text and show how it parses."),
		mcp.WithString("expr", mcp.Required(), mcp.Description("Expression text, e.g. 2x² − |x|")),
	), s.handleNormalize)
	s.mcp.AddTool(mcp.NewTool(ToolEquivalence,
		mcp.WithDescription("Decide whether two expressions are algebraically equivalent."),
		mcp.WithString("lhs", mcp.Required(), mcp.Description("First expression")),
		mcp.WithString("rhs", mcp.Required(), mcp.Description("Second expression")),
	), s.handleEquivalence)
	return s
}

// MCP returns the underlying server.
func (s *Server) MCP() *server.MCPServer { return s.mcp }

// Serve speaks MCP over in and out until ctx ends or in closes.
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	ctx = logger.ContextWithLogger(ctx, s.log)
	s.log.Info("mcp server ready", "tools", []string{ToolValidate, ToolNormalize, ToolEquivalence})
	return server.NewStdioServer(s.mcp).Listen(ctx, in, out)
}

func (s *Server) handleValidate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := specArgument(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	item := batch.NewItem(raw)
	return structured(s.engine.Validate(ctx, item.Question))
}

// specArgument accepts the spec as a JSON string or as an object.
func specArgument(req mcp.CallToolRequest) ([]byte, error) {
	v, ok := req.GetArguments()["answer_spec"]
	if !ok {
		return nil, fmt.Errorf("required argument %q not found", "answer_spec")
	}
	if str, ok := v.(string); ok {
		return []byte(str), nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("answer_spec: %w", err)
	}
	return b, nil
}

func (s *Server) handleNormalize(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	expr, err := req.RequireString("expr")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return structured(normalize.Describe(expr))
}

func (s *Server) handleEquivalence(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	lhs, err := req.RequireString("lhs")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	rhs, err := req.RequireString("rhs")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return structured(s.engine.ValidateSpec(ctx, &verify.EquivSpec{LHS: lhs, RHS: rhs}))
}

func structured(v any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode result: %w", err)
	}
	return mcp.NewToolResultStructured(v, string(b)), nil
}
