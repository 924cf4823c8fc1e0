package normalize

import "github.com/njchilds90/answercheck/cas"

// Description is the normalized form of an input and, when it parses, its
// renderings.
type Description struct {
	Input      string         `json:"input"`
	Normalized string         `json:"normalized"`
	Parsed     string         `json:"parsed,omitempty"`
	LaTeX      string         `json:"latex,omitempty"`
	Symbols    []string       `json:"symbols,omitempty"`
	Tree       map[string]any `json:"tree,omitempty"`
	Error      string         `json:"error,omitempty"`
}

func Describe(raw string) Description {
	d := Description{Input: raw, Normalized: String(raw)}
	e, err := cas.Parse(d.Normalized)
	if err != nil {
		d.Error = err.Error()
		return d
	}
	d.Parsed = e.String()
	d.LaTeX = e.LaTeX()
	d.Symbols = cas.Symbols(e)
	d.Tree = cas.Tree(e)
	return d
}
