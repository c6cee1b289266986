package parser

import (
	"github.com/brimdata/arith/compiler/ast"
)

// The grammar is a parsing expression grammar.  Alternatives are ordered
// and the first one that matches is committed to.
//
//	term          = maybe_factor add_sub*
//	add_sub       = add_sub_op maybe_factor
//	maybe_factor  = spaces (factor / primary) spaces
//	factor        = primary mul_div+
//	mul_div       = mul_div_op primary
//	add_sub_op    = spaces ("+" / "-") spaces
//	mul_div_op    = spaces ("*" / [/÷]) spaces
//	primary       = spaces (parens / numeric / function / field) spaces
//	parens        = "(" term ")"
//	function      = name "(" spaces args? spaces ")"
//	args          = param (spaces "," spaces param)*
//	param         = quoted / raw
//	raw           = [^()\t\n, "]+
//	quoted        = '"' ('\"' / [^\t\n"])* '"'
//	name          = [a-zA-Z_0-9]+
//	numeric       = [+-]? [0-9]+ "."? [0-9]*
//	field         = [a-zA-Z0-9_.]+
//	spaces        = " "*
//
// Each rule method either matches at p.pos, advancing it and returning
// true, or fails, leaving p.pos unspecified.  Callers that try an
// alternative restore p.pos themselves.

const divideSign = "÷"

type memo struct {
	expr ast.Expr
	end  int
	ok   bool
}

type parser struct {
	text string
	pos  int
	// fail is the farthest offset at which any rule failed to match and
	// is where a syntax error is reported.
	fail int
	// primaries memoizes primary by starting offset.  Without it,
	// the factor/primary alternation in maybe_factor would reparse
	// nested parentheses an exponential number of times.
	primaries map[int]memo
}

func newParser(text string) *parser {
	return &parser{
		text:      text,
		primaries: make(map[int]memo),
	}
}

func (p *parser) failAt(pos int) bool {
	if pos > p.fail {
		p.fail = pos
	}
	return false
}

func (p *parser) peek() byte {
	if p.pos < len(p.text) {
		return p.text[p.pos]
	}
	return 0
}

func (p *parser) spaces() {
	for p.pos < len(p.text) && p.text[p.pos] == ' ' {
		p.pos++
	}
}

func (p *parser) literal(s string) bool {
	if len(p.text)-p.pos >= len(s) && p.text[p.pos:p.pos+len(s)] == s {
		p.pos += len(s)
		return true
	}
	return p.failAt(p.pos)
}

func (p *parser) term() (ast.Expr, bool) {
	first, ok := p.maybeFactor()
	if !ok {
		return nil, false
	}
	var rest []ast.ChainElem
	for {
		save := p.pos
		elem, ok := p.addSub()
		if !ok {
			p.pos = save
			break
		}
		rest = append(rest, elem)
	}
	return makeChain(first, rest), true
}

func (p *parser) addSub() (ast.ChainElem, bool) {
	op, start, ok := p.addSubOp()
	if !ok {
		return ast.ChainElem{}, false
	}
	rhs, ok := p.maybeFactor()
	if !ok {
		return ast.ChainElem{}, false
	}
	return newChainElem(op, rhs, start), true
}

func (p *parser) maybeFactor() (ast.Expr, bool) {
	p.spaces()
	save := p.pos
	e, ok := p.factor()
	if !ok {
		p.pos = save
		if e, ok = p.primary(); !ok {
			return nil, false
		}
	}
	p.spaces()
	return e, true
}

func (p *parser) factor() (ast.Expr, bool) {
	first, ok := p.primary()
	if !ok {
		return nil, false
	}
	var rest []ast.ChainElem
	for {
		save := p.pos
		elem, ok := p.mulDiv()
		if !ok {
			p.pos = save
			break
		}
		rest = append(rest, elem)
	}
	if len(rest) == 0 {
		return nil, false
	}
	return makeChain(first, rest), true
}

func (p *parser) mulDiv() (ast.ChainElem, bool) {
	op, start, ok := p.mulDivOp()
	if !ok {
		return ast.ChainElem{}, false
	}
	rhs, ok := p.primary()
	if !ok {
		return ast.ChainElem{}, false
	}
	return newChainElem(op, rhs, start), true
}

// addSubOp returns the operator and its offset.
func (p *parser) addSubOp() (string, int, bool) {
	p.spaces()
	pos := p.pos
	var op string
	switch p.peek() {
	case '+':
		op = "+"
	case '-':
		op = "-"
	default:
		return "", pos, p.failAt(pos)
	}
	p.pos++
	p.spaces()
	return op, pos, true
}

func (p *parser) mulDivOp() (string, int, bool) {
	p.spaces()
	pos := p.pos
	var op string
	switch {
	case p.peek() == '*':
		op = "*"
		p.pos++
	case p.peek() == '/':
		op = "/"
		p.pos++
	case p.literal(divideSign):
		op = "/"
	default:
		return "", pos, p.failAt(pos)
	}
	p.spaces()
	return op, pos, true
}

func (p *parser) primary() (ast.Expr, bool) {
	start := p.pos
	if m, ok := p.primaries[start]; ok {
		p.pos = m.end
		return m.expr, m.ok
	}
	e, ok := p.primaryAlts()
	p.primaries[start] = memo{e, p.pos, ok}
	return e, ok
}

func (p *parser) primaryAlts() (ast.Expr, bool) {
	p.spaces()
	save := p.pos
	for _, alt := range []func() (ast.Expr, bool){p.parens, p.numeric, p.function, p.field} {
		p.pos = save
		if e, ok := alt(); ok {
			p.spaces()
			return e, true
		}
	}
	return nil, false
}

func (p *parser) parens() (ast.Expr, bool) {
	start := p.pos
	if !p.literal("(") {
		return nil, false
	}
	e, ok := p.term()
	if !ok || !p.literal(")") {
		return nil, false
	}
	return &ast.Paren{
		Kind: "Paren",
		Expr: e,
		Loc:  ast.NewLoc(start, p.pos-1),
	}, true
}

func (p *parser) numeric() (ast.Expr, bool) {
	start := p.pos
	if c := p.peek(); c == '+' || c == '-' {
		p.pos++
	}
	if !p.digits() {
		return nil, p.failAt(p.pos)
	}
	if p.peek() == '.' {
		p.pos++
	}
	p.digits()
	return &ast.Number{
		Kind: "Number",
		Text: p.text[start:p.pos],
		Loc:  ast.NewLoc(start, p.pos-1),
	}, true
}

func (p *parser) digits() bool {
	start := p.pos
	for isDigit(p.peek()) {
		p.pos++
	}
	return p.pos > start
}

func (p *parser) function() (ast.Expr, bool) {
	start := p.pos
	name, ok := p.span(isNameChar)
	if !ok || !p.literal("(") {
		return nil, false
	}
	p.spaces()
	save := p.pos
	args, ok := p.args()
	if !ok {
		p.pos = save
	}
	p.spaces()
	if !p.literal(")") {
		return nil, false
	}
	return &ast.Call{
		Kind: "Call",
		Name: name,
		Args: args,
		Text: p.text[start:p.pos],
		Loc:  ast.NewLoc(start, p.pos-1),
	}, true
}

func (p *parser) args() ([]string, bool) {
	arg, ok := p.param()
	if !ok {
		return nil, false
	}
	args := []string{arg}
	for {
		save := p.pos
		p.spaces()
		if !p.literal(",") {
			p.pos = save
			break
		}
		p.spaces()
		arg, ok := p.param()
		if !ok {
			p.pos = save
			break
		}
		args = append(args, arg)
	}
	return args, true
}

func (p *parser) param() (string, bool) {
	save := p.pos
	if s, ok := p.quoted(); ok {
		return s, true
	}
	p.pos = save
	return p.span(isRawParamChar)
}

func (p *parser) quoted() (string, bool) {
	start := p.pos
	if !p.literal(`"`) {
		return "", false
	}
	for p.pos < len(p.text) {
		if p.text[p.pos] == '\\' && p.pos+1 < len(p.text) && p.text[p.pos+1] == '"' {
			p.pos += 2
			continue
		}
		if c := p.text[p.pos]; c == '\t' || c == '\n' || c == '"' {
			break
		}
		p.pos++
	}
	if !p.literal(`"`) {
		return "", false
	}
	return p.text[start:p.pos], true
}

func (p *parser) field() (ast.Expr, bool) {
	start := p.pos
	name, ok := p.span(isFieldChar)
	if !ok {
		return nil, false
	}
	return &ast.Field{
		Kind: "Field",
		Name: name,
		Loc:  ast.NewLoc(start, p.pos-1),
	}, true
}

// span matches one or more bytes satisfying fn.
func (p *parser) span(fn func(byte) bool) (string, bool) {
	start := p.pos
	for p.pos < len(p.text) && fn(p.text[p.pos]) {
		p.pos++
	}
	if p.pos == start {
		return "", p.failAt(p.pos)
	}
	return p.text[start:p.pos], true
}
