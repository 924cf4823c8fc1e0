package cas

import "encoding/json"

// ============================================================
// JSON Serialization
// ============================================================

// Tree returns the expression as nested maps keyed by node type.
func Tree(e Expr) map[string]any { return e.toJSON() }

func ToJSON(e Expr) (string, error) {
	b, err := json.Marshal(e.toJSON())
	return string(b), err
}
