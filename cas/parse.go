package cas

import (
	"fmt"
	"math/big"
	"strings"
	"unicode"
)

// ============================================================
// Tokenizer
// ============================================================

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNum
	tokIdent
	tokOp
	tokLParen
	tokRParen
	tokComma
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

// Two-character operators must be listed before their one-character prefixes.
var operators = []string{"**", "<=", ">=", "==", "!=", "^", "*", "/", "+", "-", "<", ">", "=", "&", "|", "~"}

func tokenize(input string) ([]token, error) {
	var toks []token
	i := 0
	for i < len(input) {
		c := input[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case isDigit(c) || (c == '.' && i+1 < len(input) && isDigit(input[i+1])):
			start := i
			for i < len(input) && isDigit(input[i]) {
				i++
			}
			if i < len(input) && input[i] == '.' {
				i++
				for i < len(input) && isDigit(input[i]) {
					i++
				}
			}
			if i < len(input) && (input[i] == 'e' || input[i] == 'E') {
				j := i + 1
				if j < len(input) && (input[j] == '+' || input[j] == '-') {
					j++
				}
				if j < len(input) && isDigit(input[j]) {
					for j < len(input) && isDigit(input[j]) {
						j++
					}
					i = j
				}
			}
			toks = append(toks, token{tokNum, input[start:i], start})
		case isIdentStart(c):
			start := i
			for i < len(input) && (isIdentStart(input[i]) || isDigit(input[i])) {
				i++
			}
			toks = append(toks, token{tokIdent, input[start:i], start})
		case c == '(' || c == '[':
			toks = append(toks, token{tokLParen, "(", i})
			i++
		case c == ')' || c == ']':
			toks = append(toks, token{tokRParen, ")", i})
			i++
		case c == ',':
			toks = append(toks, token{tokComma, ",", i})
			i++
		default:
			matched := false
			for _, op := range operators {
				if strings.HasPrefix(input[i:], op) {
					toks = append(toks, token{tokOp, op, i})
					i += len(op)
					matched = true
					break
				}
			}
			if !matched {
				r := []rune(input[i:])[0]
				return nil, &ParseError{Input: input, Pos: i, Msg: fmt.Sprintf("unexpected character %q", r)}
			}
		}
	}
	return append(toks, token{tokEOF, "", len(input)}), nil
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isIdentStart(c byte) bool {
	return c == '_' || unicode.IsLetter(rune(c)) && c < unicode.MaxASCII
}

// ============================================================
// Parser
// ============================================================

// Parse reads an expression in ASCII math syntax: + - * / with ** or ^ for
// powers, function calls, comparisons and & | ~ (or and/or/not) for
// conditions. The whole input must be consumed.
//
//	rel   := or
//	or    := and (('|' | or) and)*
//	and   := not (('&' | and) not)*
//	not   := ('~' | not) not | cmp
//	cmp   := sum (relop sum)*
//	sum   := term (('+' | '-') term)*
//	term  := unary (('*' | '/') unary)*
//	unary := ('-' | '+') unary | power
//	power := atom (('**' | '^') unary)?
//	atom  := number | name | name '(' args ')' | '(' rel ')'
func Parse(input string) (Expr, error) {
	toks, err := tokenize(input)
	if err != nil {
		return nil, err
	}
	p := &parser{input: input, toks: toks}
	if p.peek().kind == tokEOF {
		return nil, p.errorf("empty expression")
	}
	e, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.kind != tokEOF {
		return nil, p.errorf("unexpected %q", t.text)
	}
	return e, nil
}

// MustParse is Parse for trusted literals. It panics on error.
func MustParse(input string) Expr {
	e, err := Parse(input)
	if err != nil {
		panic(err)
	}
	return e
}

type parser struct {
	input string
	toks  []token
	pos   int
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) errorf(format string, args ...any) error {
	return &ParseError{Input: p.input, Pos: p.peek().pos, Msg: fmt.Sprintf(format, args...)}
}

// accept consumes the next token when it is one of the given operators or
// keywords.
func (p *parser) accept(words ...string) bool {
	t := p.peek()
	if t.kind != tokOp && t.kind != tokIdent {
		return false
	}
	for _, w := range words {
		if t.text == w {
			p.pos++
			return true
		}
	}
	return false
}

func (p *parser) parseOr() (Expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	args := []Expr{left}
	for p.accept("|", "or") {
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		args = append(args, right)
	}
	if len(args) == 1 {
		return left, nil
	}
	return p.boolean("or", args)
}

func (p *parser) parseAnd() (Expr, error) {
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	args := []Expr{left}
	for p.accept("&", "and") {
		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		args = append(args, right)
	}
	if len(args) == 1 {
		return left, nil
	}
	return p.boolean("and", args)
}

func (p *parser) boolean(op string, args []Expr) (Expr, error) {
	for _, a := range args {
		if !IsBoolean(a) {
			return nil, p.errorf("operand of %s is not a condition: %s", op, a)
		}
	}
	return (&Logic{op: op, args: args}).Simplify(), nil
}

func (p *parser) parseNot() (Expr, error) {
	if p.accept("~", "not") {
		arg, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		if !IsBoolean(arg) {
			return nil, p.errorf("operand of not is not a condition: %s", arg)
		}
		return NotOf(arg), nil
	}
	return p.parseCmp()
}

func (p *parser) parseCmp() (Expr, error) {
	left, err := p.parseSum()
	if err != nil {
		return nil, err
	}
	var rels []Expr
	for {
		t := p.peek()
		if t.kind != tokOp {
			break
		}
		op := t.text
		switch op {
		case "<", "<=", ">", ">=", "==", "!=":
		case "=":
			op = "=="
		default:
			op = ""
		}
		if op == "" {
			break
		}
		p.next()
		right, err := p.parseSum()
		if err != nil {
			return nil, err
		}
		rels = append(rels, RelOf(op, left, right))
		left = right
	}
	switch len(rels) {
	case 0:
		return left, nil
	case 1:
		return rels[0], nil
	}
	return AndOf(rels...), nil
}

func (p *parser) parseSum() (Expr, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	terms := []Expr{left}
	for {
		switch {
		case p.accept("+"):
			right, err := p.parseTerm()
			if err != nil {
				return nil, err
			}
			terms = append(terms, right)
		case p.accept("-"):
			right, err := p.parseTerm()
			if err != nil {
				return nil, err
			}
			terms = append(terms, MulOf(N(-1), right))
		default:
			if len(terms) == 1 {
				return left, nil
			}
			return AddOf(terms...), nil
		}
	}
}

func (p *parser) parseTerm() (Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.accept("*"):
			right, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			left = MulOf(left, right)
		case p.accept("/"):
			right, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			left = MulOf(left, PowOf(right, N(-1)))
		default:
			return left, nil
		}
	}
}

func (p *parser) parseUnary() (Expr, error) {
	if p.accept("-") {
		arg, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return MulOf(N(-1), arg), nil
	}
	if p.accept("+") {
		return p.parseUnary()
	}
	return p.parsePower()
}

func (p *parser) parsePower() (Expr, error) {
	base, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	if p.accept("**", "^") {
		exp, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return PowOf(base, exp), nil
	}
	return base, nil
}

func (p *parser) parseAtom() (Expr, error) {
	t := p.peek()
	switch t.kind {
	case tokNum:
		p.next()
		r, ok := new(big.Rat).SetString(t.text)
		if !ok {
			return nil, &ParseError{Input: p.input, Pos: t.pos, Msg: fmt.Sprintf("bad number %q", t.text)}
		}
		return ratNum(r), nil
	case tokLParen:
		p.next()
		e, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if p.peek().kind != tokRParen {
			return nil, p.errorf("expected )")
		}
		p.next()
		return e, nil
	case tokIdent:
		p.next()
		if p.peek().kind == tokLParen {
			return p.parseCall(t)
		}
		return nameOf(t.text), nil
	case tokEOF:
		return nil, p.errorf("unexpected end of input")
	}
	return nil, p.errorf("unexpected %q", t.text)
}

// funcAliases maps accepted spellings onto kernel function names.
var funcAliases = map[string]string{
	"ln": "log", "arcsin": "asin", "arccos": "acos", "arctan": "atan",
	"arcsinh": "asinh", "arccosh": "acosh", "arctanh": "atanh",
	"sgn": "sign", "ceiling": "ceil",
}

func (p *parser) parseCall(name token) (Expr, error) {
	p.next()
	var args []Expr
	if p.peek().kind != tokRParen {
		for {
			a, err := p.parseOr()
			if err != nil {
				return nil, err
			}
			args = append(args, a)
			if p.peek().kind != tokComma {
				break
			}
			p.next()
		}
	}
	if p.peek().kind != tokRParen {
		return nil, p.errorf("expected ) after arguments of %s", name.text)
	}
	p.next()

	fn := strings.ToLower(name.text)
	if alias, ok := funcAliases[fn]; ok {
		fn = alias
	}
	bad := func(msg string) error {
		return &ParseError{Input: p.input, Pos: name.pos, Msg: msg}
	}
	switch {
	case fn == "sqrt" && len(args) == 1:
		return SqrtOf(args[0]), nil
	case fn == "log" && len(args) == 2:
		return MulOf(LogOf(args[0]), PowOf(LogOf(args[1]), N(-1))), nil
	case fn == "root" && len(args) == 2:
		return PowOf(args[0], PowOf(args[1], N(-1))), nil
	case Functions[fn] && len(args) == 1:
		return FuncOf(fn, args[0]), nil
	case Functions[fn] || fn == "sqrt" || fn == "log" || fn == "root":
		return nil, bad(fmt.Sprintf("%s takes a different number of arguments, got %d", name.text, len(args)))
	}
	return nil, bad(fmt.Sprintf("unknown function %s", name.text))
}

func nameOf(name string) Expr {
	switch name {
	case "pi", "Pi", "PI":
		return Pi
	case "E", "e":
		return E
	case "oo", "inf", "Inf", "infinity", "Infinity":
		return Infinity
	}
	return S(name)
}
