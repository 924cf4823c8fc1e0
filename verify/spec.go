package verify

import (
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Kind tags an answer spec.
type Kind string

const (
	KindRoots           Kind = "roots"
	KindValue           Kind = "value"
	KindExpressionEquiv Kind = "expression_equiv"
	KindDerivative      Kind = "derivative"
	KindAntiderivative  Kind = "antiderivative"
	KindLimit           Kind = "limit"
	KindStationaryPoint Kind = "stationary_point"
	KindInterval        Kind = "interval"
	KindSystemSolve     Kind = "system_solve"
)

// SupportedKinds lists every kind tag in sorted order.
func SupportedKinds() []string {
	kinds := []string{
		string(KindRoots), string(KindValue), string(KindExpressionEquiv),
		string(KindDerivative), string(KindAntiderivative), string(KindLimit),
		string(KindStationaryPoint), string(KindInterval), string(KindSystemSolve),
	}
	sort.Strings(kinds)
	return kinds
}

// Spec is a decoded answer spec. The set of implementations is closed;
// each kind has exactly one pointer type.
type Spec interface {
	Kind() Kind
	isSpec()
}

// Expression fields hold raw text; numbers in the JSON input arrive as their
// literal spelling.

type RootsSpec struct {
	Expr        string   `json:"expr" validate:"required"`
	Solutions   []string `json:"solutions" validate:"required,min=1"`
	Constraints []string `json:"constraints"`
	Variables   []string `json:"variables"`
}

type ValueSpec struct {
	Expr  string            `json:"expr" validate:"required"`
	At    map[string]string `json:"at"`
	Value string            `json:"value" validate:"required"`
}

type EquivSpec struct {
	LHS string `json:"lhs" validate:"required"`
	RHS string `json:"rhs" validate:"required"`
}

// DerivativeSpec is checked either symbolically against Result or
// numerically by evaluating at At and comparing with Value.
type DerivativeSpec struct {
	Of        string            `json:"of" validate:"required"`
	Order     int               `json:"order" validate:"gte=0,lte=32"`
	Result    string            `json:"result"`
	At        map[string]string `json:"at"`
	Value     string            `json:"value"`
	Variables []string          `json:"variables"`
}

type AntiderivativeSpec struct {
	Of        string   `json:"of" validate:"required"`
	Result    string   `json:"result" validate:"required"`
	Variables []string `json:"variables"`
}

type LimitSpec struct {
	Expr       string   `json:"expr" validate:"required"`
	Approaches string   `json:"approaches" validate:"required"`
	Direction  string   `json:"direction" validate:"omitempty,oneof=+ -"`
	Value      string   `json:"value"`
	Variables  []string `json:"variables"`
}

type Point struct {
	X string `json:"x" validate:"required"`
	Y string `json:"y" validate:"required"`
}

type StationaryPointSpec struct {
	Of        string   `json:"of" validate:"required"`
	Point     Point    `json:"point"`
	Nature    string   `json:"nature" validate:"omitempty,oneof=min max saddle"`
	Variables []string `json:"variables"`
}

// IntervalSpec lists intervals as [l, a, b, r], or as [l, a, b] and
// [a, b, r] with the missing bracket defaulted.
type IntervalSpec struct {
	Condition string     `json:"condition" validate:"required"`
	Intervals [][]string `json:"intervals" validate:"required,min=1"`
	Variables []string   `json:"variables"`
}

type SystemSolveSpec struct {
	Equations []string          `json:"equations" validate:"required,min=1"`
	Solution  map[string]string `json:"solution" validate:"required,min=1"`
}

func (*RootsSpec) Kind() Kind           { return KindRoots }
func (*ValueSpec) Kind() Kind           { return KindValue }
func (*EquivSpec) Kind() Kind           { return KindExpressionEquiv }
func (*DerivativeSpec) Kind() Kind      { return KindDerivative }
func (*AntiderivativeSpec) Kind() Kind  { return KindAntiderivative }
func (*LimitSpec) Kind() Kind           { return KindLimit }
func (*StationaryPointSpec) Kind() Kind { return KindStationaryPoint }
func (*IntervalSpec) Kind() Kind        { return KindInterval }
func (*SystemSolveSpec) Kind() Kind     { return KindSystemSolve }

func (*RootsSpec) isSpec()           {}
func (*ValueSpec) isSpec()           {}
func (*EquivSpec) isSpec()           {}
func (*DerivativeSpec) isSpec()      {}
func (*AntiderivativeSpec) isSpec()  {}
func (*LimitSpec) isSpec()           {}
func (*StationaryPointSpec) isSpec() {}
func (*IntervalSpec) isSpec()        {}
func (*SystemSolveSpec) isSpec()     {}

// specValidate checks required fields. Field names in its errors are the
// JSON names.
var specValidate = newSpecValidator()

func newSpecValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}
