// Package parser parses equation text into the syntax tree declared in
// package ast.
package parser

import (
	"github.com/brimdata/arith"
	"github.com/brimdata/arith/compiler/ast"
)

const parseErrorMsg = "Unable to parse your equation, make sure it is well formed arithmetic"

type AST struct {
	expr ast.Expr
	text string
}

func (a *AST) Parsed() ast.Expr {
	return a.expr
}

// Text returns the source text that was parsed.
func (a *AST) Text() string {
	return a.text
}

// ParseEquation parses text, which must consist entirely of one term of
// the equation grammar.  On failure, it returns an *arith.Error of kind
// arith.KindParse located at the farthest offset the parser reached.
func ParseEquation(text string) (*AST, error) {
	p := newParser(text)
	e, ok := p.term()
	if !ok || p.pos != len(text) {
		pos := p.fail
		if ok && p.pos > pos {
			pos = p.pos
		}
		return nil, arith.NewError(arith.KindParse, parseErrorMsg, pos, -1)
	}
	return &AST{expr: e, text: text}, nil
}
