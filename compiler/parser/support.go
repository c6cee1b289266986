package parser

import (
	"github.com/brimdata/arith/compiler/ast"
)

func makeChain(first ast.Expr, rest []ast.ChainElem) ast.Expr {
	if len(rest) == 0 {
		return first
	}
	return &ast.Chain{
		Kind:  "Chain",
		First: first,
		Rest:  rest,
		Loc:   ast.NewLoc(first.Pos(), rest[len(rest)-1].End()),
	}
}

func newChainElem(op string, rhs ast.Expr, pos int) ast.ChainElem {
	return ast.ChainElem{
		Op:  op,
		RHS: rhs,
		Loc: ast.NewLoc(pos, rhs.End()),
	}
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isNameChar(c byte) bool {
	return isLetter(c) || isDigit(c) || c == '_'
}

func isFieldChar(c byte) bool {
	return isNameChar(c) || c == '.'
}

func isRawParamChar(c byte) bool {
	switch c {
	case '(', ')', '\t', '\n', ',', ' ', '"':
		return false
	}
	return true
}
