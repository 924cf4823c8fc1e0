package normalize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/answercheck/cas"
	"github.com/njchilds90/answercheck/normalize"
)

func TestString(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "caret and implicit product", input: "x^2 − 5x + 6", expected: "x**2 - 5*x + 6"},
		{name: "unicode product and minus", input: "(x−2)×(x−3)", expected: "(x-2)*(x-3)"},
		{name: "division glyph", input: "6 ÷ 3", expected: "6 / 3"},
		{name: "abs bars", input: "|x|", expected: "Abs(x)"},
		{name: "two abs pairs", input: "|x - 1| + |x|", expected: "Abs(x - 1) + Abs(x)"},
		{name: "nested abs bars", input: "||x||", expected: "Abs(Abs(x))"},
		{name: "function label", input: "f(x) = 3x^2", expected: "3*x**2"},
		{name: "y label", input: "y = 2x + 1", expected: "2*x + 1"},
		{name: "stacked labels", input: "y = f(x) = x", expected: "x"},
		{name: "comparison is not a label", input: "y == 3", expected: "y == 3"},
		{name: "natural log", input: "ln(x) + ln(2)", expected: "log(x) + log(2)"},
		{name: "ln inside a word untouched", input: "kiln", expected: "kiln"},
		{name: "ln after a coefficient", input: "2ln(x)", expected: "2*log(x)"},
		{name: "decimal exponent kept", input: "2e-1", expected: "2e-1"},
		{name: "function call untouched", input: "sin(x)", expected: "sin(x)"},
		{name: "single letter before paren", input: "x(y+1)", expected: "x*(y+1)"},
		{name: "number before paren", input: "2(x+1)", expected: "2*(x+1)"},
		{name: "adjacent brackets", input: "(x+1)(x-1)", expected: "(x+1)*(x-1)"},
		{name: "closing paren before letter", input: "(x+1)y", expected: "(x+1)*y"},
		{name: "letter before digit", input: "x2", expected: "x*2"},
		{name: "decimal exponent kept", input: "1e-6x", expected: "1e-6*x"},
		{name: "upper case exponent kept", input: "2E3", expected: "2E3"},
		{name: "radical on number", input: "√2", expected: "sqrt(2)"},
		{name: "radical on letter", input: "√x + 1", expected: "sqrt(x) + 1"},
		{name: "radical on group", input: "√(x+1)", expected: "sqrt(x+1)"},
		{name: "pi glyph", input: "2π", expected: "2*pi"},
		{name: "infinity glyph", input: "-∞", expected: "-oo"},
		{name: "superscript", input: "x²+x³", expected: "x**2+x**3"},
		{name: "relational glyphs", input: "x ≤ 3", expected: "x <= 3"},
		{name: "keywords kept apart", input: "x > 1 and x < 2", expected: "x > 1 and x < 2"},
		{name: "surrounding space", input: "  x + 1  ", expected: "x + 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, normalize.String(tt.input))
		})
	}
}

func TestString_Idempotent(t *testing.T) {
	inputs := []string{
		"x^2 − 5x + 6",
		"f(x) = |2x - 1|",
		"y = y = 3",
		"√x·√2",
		"1e-6x + 2E3",
		"(x+1)(x-1)2",
		"x(y+1) ≥ 0",
		"ln(x) / ln(10)",
		"2ln(x)",
		"3ln x",
		"ln2",
		"|x + |y||",
		"",
		"|",
		"y =",
	}
	for _, in := range inputs {
		t.Run("Should be stable for "+in, func(t *testing.T) {
			once := normalize.String(in)
			assert.Equal(t, once, normalize.String(once))
		})
	}
}

func TestString_Parses(t *testing.T) {
	t.Run("Should produce parser input from textbook notation", func(t *testing.T) {
		inputs := []string{
			"x^2 − 5x + 6",
			"f(x) = 3x² + 2x",
			"|x| + √2",
			"2sin(x)cos(x)",
			"e^(2x)",
			"ln(x) ≥ 0",
			"y = 1e-3x",
		}
		for _, in := range inputs {
			_, err := cas.Parse(normalize.String(in))
			require.NoError(t, err, "input %q", in)
		}
	})

	t.Run("Should match the expanded form after normalizing", func(t *testing.T) {
		lhs, err := cas.Parse(normalize.String("(x−2)×(x−3)"))
		require.NoError(t, err)
		rhs, err := cas.Parse(normalize.String("x^2 − 5x + 6"))
		require.NoError(t, err)
		assert.True(t, cas.IsZero(cas.AddOf(lhs, cas.MulOf(cas.N(-1), rhs))))
	})
}

func TestDescribe(t *testing.T) {
	t.Run("Should render a parsed expression", func(t *testing.T) {
		d := normalize.Describe("y = 2x²")
		require.Empty(t, d.Error)
		assert.Equal(t, "2*x**2", d.Normalized)
		assert.Equal(t, "2*x^2", d.Parsed)
		assert.Equal(t, []string{"x"}, d.Symbols)
		assert.Equal(t, "mul", d.Tree["type"])
	})
	t.Run("Should report a parse error", func(t *testing.T) {
		d := normalize.Describe("2 +")
		assert.NotEmpty(t, d.Error)
		assert.Empty(t, d.Parsed)
	})
}
