package excmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/dshills/vimkata/internal/editor"
)

// ErrBadExpression is returned for expressions the evaluator does not
// understand.
var ErrBadExpression = errors.New("bad expression")

// piDigits backs the Pi() builtin.
const piDigits = "3.14159265358979323846264338327950288419716939937510582097494459230781640628620899862803482534211706798214"

// exprValue is either a number or a string; Vim coerces between the two
// as operators demand.
type exprValue struct {
	num   int
	str   string
	isNum bool
}

func (v exprValue) asString() string {
	if v.isNum {
		return strconv.Itoa(v.num)
	}
	return v.str
}

func (v exprValue) asNumber() int {
	if v.isNum {
		return v.num
	}
	n, _ := strconv.Atoi(strings.TrimSpace(v.str))
	return n
}

// EvalExpression evaluates the minimal Vim expression grammar used by
// :put = and \= substitutions: string and number literals, '.'
// concatenation, '+' and '-', line('.'), and the Pi() builtin.
func EvalExpression(expr string, st *editor.State) (string, error) {
	p := &exprParser{input: []rune(expr), state: st}
	v, err := p.parse()
	if err != nil {
		return "", err
	}
	p.skipSpace()
	if p.pos < len(p.input) {
		return "", fmt.Errorf("%w: trailing input %q", ErrBadExpression, string(p.input[p.pos:]))
	}
	return v.asString(), nil
}

type exprParser struct {
	input []rune
	pos   int
	state *editor.State
}

func (p *exprParser) skipSpace() {
	for p.pos < len(p.input) && p.input[p.pos] == ' ' {
		p.pos++
	}
}

func (p *exprParser) parse() (exprValue, error) {
	left, err := p.parseTerm()
	if err != nil {
		return exprValue{}, err
	}
	for {
		p.skipSpace()
		if p.pos >= len(p.input) {
			return left, nil
		}
		op := p.input[p.pos]
		switch op {
		case '.':
			p.pos++
			right, err := p.parseTerm()
			if err != nil {
				return exprValue{}, err
			}
			left = exprValue{str: left.asString() + right.asString()}
		case '+':
			p.pos++
			right, err := p.parseTerm()
			if err != nil {
				return exprValue{}, err
			}
			left = exprValue{num: left.asNumber() + right.asNumber(), isNum: true}
		case '-':
			p.pos++
			right, err := p.parseTerm()
			if err != nil {
				return exprValue{}, err
			}
			left = exprValue{num: left.asNumber() - right.asNumber(), isNum: true}
		default:
			return left, nil
		}
	}
}

func (p *exprParser) parseTerm() (exprValue, error) {
	p.skipSpace()
	if p.pos >= len(p.input) {
		return exprValue{}, fmt.Errorf("%w: unexpected end", ErrBadExpression)
	}
	r := p.input[p.pos]

	switch {
	case r == '\'' || r == '"':
		return p.parseString(r)
	case unicode.IsDigit(r):
		return p.parseNumber()
	case unicode.IsLetter(r):
		return p.parseCall()
	default:
		return exprValue{}, fmt.Errorf("%w: unexpected %q", ErrBadExpression, r)
	}
}

func (p *exprParser) parseString(quote rune) (exprValue, error) {
	p.pos++ // opening quote
	var out strings.Builder
	for p.pos < len(p.input) {
		r := p.input[p.pos]
		if r == quote {
			p.pos++
			return exprValue{str: out.String()}, nil
		}
		if r == '\\' && quote == '"' && p.pos+1 < len(p.input) {
			p.pos++
			out.WriteRune(p.input[p.pos])
			p.pos++
			continue
		}
		out.WriteRune(r)
		p.pos++
	}
	return exprValue{}, fmt.Errorf("%w: unterminated string", ErrBadExpression)
}

func (p *exprParser) parseNumber() (exprValue, error) {
	start := p.pos
	for p.pos < len(p.input) && unicode.IsDigit(p.input[p.pos]) {
		p.pos++
	}
	n, err := strconv.Atoi(string(p.input[start:p.pos]))
	if err != nil {
		return exprValue{}, fmt.Errorf("%w: %v", ErrBadExpression, err)
	}
	return exprValue{num: n, isNum: true}, nil
}

func (p *exprParser) parseCall() (exprValue, error) {
	start := p.pos
	for p.pos < len(p.input) && (unicode.IsLetter(p.input[p.pos]) || unicode.IsDigit(p.input[p.pos])) {
		p.pos++
	}
	name := string(p.input[start:p.pos])
	p.skipSpace()
	if p.pos >= len(p.input) || p.input[p.pos] != '(' {
		return exprValue{}, fmt.Errorf("%w: expected call after %q", ErrBadExpression, name)
	}
	p.pos++
	depth := 1
	argStart := p.pos
	for p.pos < len(p.input) && depth > 0 {
		switch p.input[p.pos] {
		case '(':
			depth++
		case ')':
			depth--
		}
		p.pos++
	}
	if depth != 0 {
		return exprValue{}, fmt.Errorf("%w: unterminated call", ErrBadExpression)
	}
	arg := strings.TrimSpace(string(p.input[argStart : p.pos-1]))

	switch name {
	case "line":
		if arg == "'.'" || arg == `"."` {
			return exprValue{num: p.state.Cursor.Line + 1, isNum: true}, nil
		}
		if arg == "'$'" || arg == `"$"` {
			return exprValue{num: p.state.LineCount(), isNum: true}, nil
		}
		return exprValue{}, fmt.Errorf("%w: line(%s)", ErrBadExpression, arg)
	case "Pi":
		return exprValue{str: piDigits}, nil
	default:
		return exprValue{}, fmt.Errorf("%w: unknown function %q", ErrBadExpression, name)
	}
}
