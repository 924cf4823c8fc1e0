package cas

import (
	"errors"
	"fmt"
)

var (
	ErrDivisionByZero = errors.New("division by zero")
	ErrDomain         = errors.New("outside function domain")
	ErrUnbound        = errors.New("unbound symbol")
	ErrUndefined      = errors.New("undefined value")
	ErrNotNumeric     = errors.New("not a numeric expression")
	ErrNotBoolean     = errors.New("not a relational or boolean expression")
)

// ParseError reports where the parser gave up on its input.
type ParseError struct {
	Input string
	Pos   int
	Msg   string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at offset %d in %q: %s", e.Pos, e.Input, e.Msg)
}

// EvalError wraps one of the Err* sentinels with the expression that failed.
type EvalError struct {
	Expr string
	Err  error
	Msg  string
}

func (e *EvalError) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("cannot evaluate %s: %s", e.Expr, e.Msg)
	}
	return fmt.Sprintf("cannot evaluate %s: %v", e.Expr, e.Err)
}

func (e *EvalError) Unwrap() error { return e.Err }

func evalErr(e Expr, kind error, format string, args ...any) error {
	return &EvalError{Expr: e.String(), Err: kind, Msg: fmt.Sprintf(format, args...)}
}
