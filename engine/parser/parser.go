// Package parser turns talc source text into an expression tree with a
// hand-rolled byte-level recursive-descent parser. Parse consumes exactly
// one expression and reports where it stopped, so callers can stream a
// sequence of expressions or insist the whole input was consumed.
package parser

import (
	"fmt"
	"strconv"

	"talc/engine/expr"
	"talc/lib/errs"
)

// Result is one successfully parsed expression plus the offset just past
// it in the original input.
type Result struct {
	Stop int
	Expr expr.Expr
}

// Error is a positioned parse failure. For failures inside a nested
// tuple, Partial holds the partially built enclosing expression and
// Offset is relative to the full original input.
type Error struct {
	Offset  int
	Code    errs.Code
	Message string
	Partial expr.Expr
}

func (e *Error) Error() string {
	return fmt.Sprintf("offset %d: %s:%d: %s", e.Offset, e.Code.Category(), e.Code, e.Message)
}

func (e *Error) ErrCode() errs.Code { return e.Code }

var _ errs.Coded = (*Error)(nil)

// Parse consumes one expression from input. Leading whitespace is
// skipped; trailing input is left alone and reported through Stop.
func Parse(input string) (Result, error) {
	p := &parser{input: input}
	p.skipSpace()
	if p.eof() {
		return Result{}, &Error{Offset: p.pos, Code: errs.ParseEmpty, Message: "empty input"}
	}
	e, err := p.expression()
	if err != nil {
		return Result{}, err
	}
	return Result{Stop: p.pos, Expr: e}, nil
}

type parser struct {
	input string
	pos   int
}

func (p *parser) eof() bool { return p.pos >= len(p.input) }

func (p *parser) peek() byte { return p.input[p.pos] }

func (p *parser) skipSpace() {
	for !p.eof() {
		switch p.peek() {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}

// isDelim reports a byte that terminates the token before it.
func (p *parser) atDelim() bool {
	if p.eof() {
		return true
	}
	ch := p.peek()
	return isSpace(ch) || ch == '(' || ch == ')'
}

func isLetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isDigit(ch byte) bool { return ch >= '0' && ch <= '9' }

func isVarChar(ch byte) bool {
	return isLetter(ch) || isDigit(ch) || ch == '-' || ch == '_'
}

func isFunChar(ch byte) bool {
	return isLetter(ch) || isDigit(ch) || ch == '=' || ch == '?' || ch == '-'
}

func (p *parser) expression() (expr.Expr, error) {
	switch ch := p.peek(); {
	case ch == '#':
		return p.special()
	case ch == '$':
		return p.variable(false)
	case ch == '@':
		return p.variable(true)
	case ch == '\'':
		return p.str()
	case ch == '(':
		return p.tuple()
	case isDigit(ch) || ch == '+' || ch == '-':
		return p.number()
	case isLetter(ch):
		return p.funName()
	default:
		return nil, &Error{Offset: p.pos, Code: errs.ParseMalformedToken,
			Message: fmt.Sprintf("unexpected character %q", ch)}
	}
}

// special parses #nil and #true, the only two special literals.
func (p *parser) special() (expr.Expr, error) {
	start := p.pos
	p.pos++ // '#'
	for !p.eof() && isLetter(p.peek()) {
		p.pos++
	}
	if !p.atDelim() {
		return nil, &Error{Offset: p.pos, Code: errs.ParseInvalidName,
			Message: "invalid special name"}
	}
	switch p.input[start+1 : p.pos] {
	case "nil":
		return expr.Nil, nil
	case "true":
		return expr.True, nil
	default:
		return nil, &Error{Offset: start, Code: errs.ParseInvalidName,
			Message: fmt.Sprintf("invalid special name: %s", p.input[start:p.pos])}
	}
}

func (p *parser) variable(global bool) (expr.Expr, error) {
	start := p.pos
	p.pos++ // '$' or '@'
	for !p.eof() && isVarChar(p.peek()) {
		p.pos++
	}
	name := p.input[start+1 : p.pos]
	if name == "" || !p.atDelim() {
		return nil, &Error{Offset: p.pos, Code: errs.ParseInvalidName,
			Message: "invalid variable name"}
	}
	if global {
		return &expr.Gvar{Name: name}, nil
	}
	return &expr.Lvar{Name: name}, nil
}

// str scans raw text to the closing quote; there is no escape processing.
func (p *parser) str() (expr.Expr, error) {
	start := p.pos
	p.pos++ // opening quote
	for !p.eof() {
		if p.peek() == '\'' {
			text := p.input[start+1 : p.pos]
			p.pos++
			return expr.NewStr(text), nil
		}
		p.pos++
	}
	return nil, &Error{Offset: p.pos, Code: errs.ParseIncomplete,
		Message: "unterminated string"}
}

// number scans one token and tries a full-width integer parse first,
// falling back to floating point only when that fails.
func (p *parser) number() (expr.Expr, error) {
	start := p.pos
	for !p.atDelim() {
		p.pos++
	}
	token := p.input[start:p.pos]
	if n, err := strconv.ParseInt(token, 10, 64); err == nil {
		return expr.NewInteger(n), nil
	}
	if f, err := strconv.ParseFloat(token, 64); err == nil {
		return expr.NewFloat(f), nil
	}
	return nil, &Error{Offset: start, Code: errs.ParseInvalidNumber,
		Message: fmt.Sprintf("invalid number: %s", token)}
}

func (p *parser) funName() (expr.Expr, error) {
	start := p.pos
	for !p.eof() && isFunChar(p.peek()) {
		p.pos++
	}
	if !p.atDelim() {
		return nil, &Error{Offset: p.pos, Code: errs.ParseInvalidName,
			Message: "invalid function name"}
	}
	return &expr.Fun{Name: p.input[start:p.pos]}, nil
}

// tuple parses elements by re-entering Parse on the remaining substring,
// rebasing sub-error offsets to the full input and attaching the
// partially built parent for error-location reporting.
func (p *parser) tuple() (expr.Expr, error) {
	p.pos++ // '('
	tup := expr.NewTup()
	for {
		p.skipSpace()
		if p.eof() {
			return nil, &Error{Offset: p.pos, Code: errs.ParseIncomplete,
				Message: "unterminated tuple", Partial: tup}
		}
		if p.peek() == ')' {
			p.pos++
			return tup, nil
		}
		base := p.pos
		res, err := Parse(p.input[base:])
		if err != nil {
			perr := err.(*Error)
			perr.Offset += base
			if perr.Partial != nil {
				tup.Append(perr.Partial)
			}
			perr.Partial = tup
			return nil, perr
		}
		p.pos = base + res.Stop
		tup.Append(res.Expr)
	}
}
