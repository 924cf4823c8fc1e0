package verify

import (
	"context"

	"github.com/njchilds90/answercheck/cas"
)

const integrationNote = "constant of integration ignored"

// checkAntiderivative differentiates the claimed result and compares it
// with the integrand.
func (e *Engine) checkAntiderivative(ctx context.Context, s *AntiderivativeSpec) (bool, Details, error) {
	of, err := Build("of", s.Of)
	if err != nil {
		return false, nil, err
	}
	result, err := Build("result", s.Result)
	if err != nil {
		return false, nil, err
	}
	if err := numericExpr("of", of); err != nil {
		return false, nil, err
	}
	if err := numericExpr("result", result); err != nil {
		return false, nil, err
	}
	name := variable(s.Variables, of, result)
	d := cas.Diff(result, name)
	v, err := e.Equal(ctx, d, of)
	if err != nil {
		return false, nil, err
	}
	details := Details{
		"note":       integrationNote,
		"variable":   name,
		"derivative": d.String(),
		"method":     string(v.Method),
		"detail":     v.Detail,
	}
	if F, ok := cas.Integrate(of, name); ok {
		details["antiderivative"] = F.String()
	}
	return v.Matched, details, nil
}
