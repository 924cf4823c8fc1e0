package verify

import (
	"math"
	"strconv"
)

// ErrorKind classifies why a report is not ok.
type ErrorKind string

const (
	ErrorKindSpec     ErrorKind = "spec"
	ErrorKindParse    ErrorKind = "parse"
	ErrorKindEval     ErrorKind = "eval"
	ErrorKindSemantic ErrorKind = "semantic"
	ErrorKindInternal ErrorKind = "internal"
)

// Details explains a verdict. Values are JSON friendly: floats are
// rendered as strings so that infinities survive encoding.
type Details map[string]any

// Report is the outcome of one validation. It is built fresh per call.
type Report struct {
	OK        bool      `json:"ok"`
	Kind      string    `json:"kind"`
	Details   Details   `json:"details,omitempty"`
	Reason    string    `json:"reason,omitempty"`
	ErrorKind ErrorKind `json:"error_kind,omitempty"`
}

func kindLabel(k Kind) string {
	if k == "" {
		return "unknown"
	}
	return string(k)
}

// formatFloat renders v the way expressions print infinity.
func formatFloat(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return "oo"
	case math.IsInf(v, -1):
		return "-oo"
	case math.IsNaN(v):
		return "nan"
	}
	return strconv.FormatFloat(v, 'g', 12, 64)
}
