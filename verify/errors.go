package verify

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/njchilds90/answercheck/cas"
)

var (
	ErrMissingSpec     = errors.New("answer_spec missing or not an object")
	ErrUnsupportedKind = errors.New("unsupported kind")
	ErrMissingField    = errors.New("missing required field")
	ErrInvalidField    = errors.New("invalid field")
	ErrTimeout         = errors.New("timeout")
)

// SpecError reports a malformed answer spec.
type SpecError struct {
	Kind  Kind
	Field string
	Err   error
	Msg   string
}

func (e *SpecError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Field != "" {
		return fmt.Sprintf("%v: %s", e.Err, e.Field)
	}
	return e.Err.Error()
}

func (e *SpecError) Unwrap() error { return e.Err }

func missingField(kind Kind, field, msg string) *SpecError {
	return &SpecError{Kind: kind, Field: field, Err: ErrMissingField, Msg: msg}
}

// fieldError converts the first validator failure into a SpecError.
func fieldError(kind Kind, err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &SpecError{Kind: kind, Err: ErrInvalidField, Msg: err.Error()}
	}
	fe := verrs[0]
	field := fe.Namespace()
	if i := strings.IndexByte(field, '.'); i >= 0 {
		field = field[i+1:]
	}
	switch fe.Tag() {
	case "required", "min":
		return &SpecError{Kind: kind, Field: field, Err: ErrMissingField,
			Msg: fmt.Sprintf("'%s' required", field)}
	case "lte", "max":
		return &SpecError{Kind: kind, Field: field, Err: ErrInvalidField,
			Msg: fmt.Sprintf("'%s' must be at most %s, got %v", field, fe.Param(), fe.Value())}
	case "oneof":
		return &SpecError{Kind: kind, Field: field, Err: ErrInvalidField,
			Msg: fmt.Sprintf("'%s' must be one of %s, got %q", field, fe.Param(), fe.Value())}
	}
	return &SpecError{Kind: kind, Field: field, Err: ErrInvalidField,
		Msg: fmt.Sprintf("'%s' fails %s=%s", field, fe.Tag(), fe.Param())}
}

// panicError carries a value recovered from a validator.
type panicError struct{ value any }

func (e *panicError) Error() string { return fmt.Sprint(e.value) }

// classify maps an error onto its ErrorKind and report reason.
func classify(err error) (ErrorKind, string) {
	var (
		specErr  *SpecError
		parseErr *cas.ParseError
		evalErr  *cas.EvalError
		pe       *panicError
	)
	switch {
	case errors.As(err, &specErr):
		return ErrorKindSpec, err.Error()
	case errors.As(err, &pe):
		return ErrorKindInternal, "internal error: " + pe.Error()
	case errors.Is(err, ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		return ErrorKindInternal, "internal error: timeout"
	case errors.Is(err, context.Canceled):
		return ErrorKindInternal, "internal error: canceled"
	case errors.As(err, &parseErr):
		return ErrorKindParse, "parse error: " + err.Error()
	case errors.As(err, &evalErr),
		errors.Is(err, cas.ErrNotNumeric), errors.Is(err, cas.ErrNotBoolean):
		return ErrorKindEval, "evaluation error: " + err.Error()
	}
	return ErrorKindInternal, "internal error: " + err.Error()
}
