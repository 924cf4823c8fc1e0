package verify

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// Decode reads the answer_spec object of a question.
func Decode(question []byte) (Spec, error) {
	if !gjson.ValidBytes(question) {
		return nil, &SpecError{Err: ErrMissingSpec, Msg: "question is not valid JSON"}
	}
	spec := gjson.GetBytes(question, "answer_spec")
	if !spec.IsObject() {
		return nil, &SpecError{Err: ErrMissingSpec}
	}
	return decodeSpec(spec)
}

// DecodeSpec reads a bare answer spec object.
func DecodeSpec(raw []byte) (Spec, error) {
	if !gjson.ValidBytes(raw) {
		return nil, &SpecError{Err: ErrMissingSpec, Msg: "answer_spec is not valid JSON"}
	}
	spec := gjson.ParseBytes(raw)
	if !spec.IsObject() {
		return nil, &SpecError{Err: ErrMissingSpec}
	}
	return decodeSpec(spec)
}

func decodeSpec(r gjson.Result) (Spec, error) {
	kind := Kind(strings.ToLower(strings.TrimSpace(r.Get("kind").String())))
	switch kind {
	case KindRoots:
		return &RootsSpec{
			Expr:        text(r.Get("expr")),
			Solutions:   texts(r.Get("solutions")),
			Constraints: texts(r.Get("constraints")),
			Variables:   texts(r.Get("variables")),
		}, nil
	case KindValue:
		return &ValueSpec{
			Expr:  text(r.Get("expr")),
			At:    textMap(r.Get("at")),
			Value: text(r.Get("value")),
		}, nil
	case KindExpressionEquiv:
		return &EquivSpec{
			LHS: firstText(r, "lhs", "expr"),
			RHS: firstText(r, "rhs", "equiv_to", "target"),
		}, nil
	case KindDerivative:
		order, err := integer(kind, r.Get("order"), "order")
		if err != nil {
			return nil, err
		}
		return &DerivativeSpec{
			Of:        text(r.Get("of")),
			Order:     order,
			Result:    text(r.Get("result")),
			At:        textMap(r.Get("at")),
			Value:     text(r.Get("value")),
			Variables: texts(r.Get("variables")),
		}, nil
	case KindAntiderivative:
		return &AntiderivativeSpec{
			Of:        text(r.Get("of")),
			Result:    text(r.Get("result")),
			Variables: texts(r.Get("variables")),
		}, nil
	case KindLimit:
		return &LimitSpec{
			Expr:       text(r.Get("expr")),
			Approaches: text(r.Get("approaches")),
			Direction:  strings.TrimSpace(text(r.Get("direction"))),
			Value:      text(r.Get("value")),
			Variables:  texts(r.Get("variables")),
		}, nil
	case KindStationaryPoint:
		return &StationaryPointSpec{
			Of:        text(r.Get("of")),
			Point:     Point{X: text(r.Get("point.x")), Y: text(r.Get("point.y"))},
			Nature:    strings.ToLower(strings.TrimSpace(text(r.Get("nature")))),
			Variables: texts(r.Get("variables")),
		}, nil
	case KindInterval:
		var intervals [][]string
		r.Get("intervals").ForEach(func(_, item gjson.Result) bool {
			intervals = append(intervals, texts(item))
			return true
		})
		return &IntervalSpec{
			Condition: text(r.Get("condition")),
			Intervals: intervals,
			Variables: texts(r.Get("variables")),
		}, nil
	case KindSystemSolve:
		return &SystemSolveSpec{
			Equations: texts(r.Get("equations")),
			Solution:  textMap(r.Get("solution")),
		}, nil
	}
	return nil, &SpecError{
		Kind: kind,
		Err:  ErrUnsupportedKind,
		Msg:  fmt.Sprintf("unsupported kind %q. supported=%v", kind, SupportedKinds()),
	}
}

// text reads a scalar field. Numbers keep their literal spelling so that
// 1e-6 or 0.1 reach the parser unchanged.
func text(v gjson.Result) string {
	switch v.Type {
	case gjson.Null:
		return ""
	case gjson.String:
		return strings.TrimSpace(v.Str)
	}
	return strings.TrimSpace(v.Raw)
}

// texts reads a list field; a lone scalar reads as a one-item list.
func texts(v gjson.Result) []string {
	if !v.Exists() || v.Type == gjson.Null {
		return nil
	}
	if !v.IsArray() {
		return []string{text(v)}
	}
	out := []string{}
	for _, item := range v.Array() {
		out = append(out, text(item))
	}
	return out
}

func textMap(v gjson.Result) map[string]string {
	if !v.IsObject() {
		return nil
	}
	out := map[string]string{}
	v.ForEach(func(key, value gjson.Result) bool {
		out[strings.TrimSpace(key.String())] = text(value)
		return true
	})
	return out
}

func firstText(r gjson.Result, paths ...string) string {
	for _, p := range paths {
		if s := text(r.Get(p)); s != "" {
			return s
		}
	}
	return ""
}

func integer(kind Kind, v gjson.Result, field string) (int, error) {
	switch v.Type {
	case gjson.Null:
		return 0, nil
	case gjson.Number:
		if v.Num != float64(int64(v.Num)) {
			break
		}
		return int(v.Int()), nil
	case gjson.String:
		s := strings.TrimSpace(v.Str)
		if s == "" {
			return 0, nil
		}
		n, err := strconv.Atoi(s)
		if err == nil {
			return n, nil
		}
	}
	return 0, &SpecError{Kind: kind, Field: field, Err: ErrInvalidField,
		Msg: fmt.Sprintf("'%s' must be an integer, got %s", field, v.Raw)}
}
