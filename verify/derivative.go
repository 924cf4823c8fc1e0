package verify

import (
	"context"
	"fmt"
	"strings"

	"github.com/njchilds90/answercheck/cas"
)

const (
	modeSymbolic = "symbolic"
	modeNumeric  = "numeric"
)

// checkDerivative differentiates of order times and compares either with
// result or, evaluated at the at map, with value. Exactly one mode must be
// given.
func (e *Engine) checkDerivative(ctx context.Context, s *DerivativeSpec) (bool, Details, error) {
	symbolic := strings.TrimSpace(s.Result) != ""
	numeric := len(s.At) > 0 || strings.TrimSpace(s.Value) != ""
	switch {
	case symbolic && numeric:
		return false, nil, &SpecError{Kind: KindDerivative, Field: "result", Err: ErrInvalidField,
			Msg: "give either 'result' or 'at' with 'value', not both"}
	case !symbolic && !numeric:
		return false, nil, missingField(KindDerivative, "result",
			"'result' or 'at' with 'value' required")
	case numeric && (len(s.At) == 0 || strings.TrimSpace(s.Value) == ""):
		return false, nil, missingField(KindDerivative, "value", "'at' and 'value' required together")
	}

	of, err := Build("of", s.Of)
	if err != nil {
		return false, nil, err
	}
	if err := numericExpr("of", of); err != nil {
		return false, nil, err
	}
	order := s.Order
	if order == 0 {
		order = 1
	}
	name := variable(s.Variables, of)
	d, err := cas.DiffNContext(ctx, of, name, order)
	if err != nil {
		return false, nil, err
	}
	details := Details{"order": order, "variable": name, "derivative": d.String()}

	if symbolic {
		details["mode"] = modeSymbolic
		want, err := Build("result", s.Result)
		if err != nil {
			return false, nil, err
		}
		v, err := e.Equal(ctx, d, want)
		if err != nil {
			return false, nil, err
		}
		details["method"] = string(v.Method)
		details["detail"] = v.Detail
		return v.Matched, details, nil
	}

	details["mode"] = modeNumeric
	at, err := substitute(d, "at", s.At)
	if err != nil {
		return false, nil, err
	}
	got, err := at.Eval(nil)
	if err != nil {
		return false, nil, fmt.Errorf("derivative at point: %w", err)
	}
	_, want, err := buildNumber("value", s.Value)
	if err != nil {
		return false, nil, err
	}
	details["got"] = formatFloat(got)
	details["expected"] = formatFloat(want)
	return cas.Close(got, want, e.tol), details, nil
}
