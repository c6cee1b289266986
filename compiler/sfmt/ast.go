package sfmt

import (
	"github.com/brimdata/arith/compiler/ast"
)

// AST formats a syntax tree, normalizing whitespace and writing "/" for
// both division symbols.  Parentheses in the source are kept.
func AST(e ast.Expr) string {
	var c canon
	c.expr(e)
	return c.String()
}

type canon struct {
	formatter
}

func (c *canon) expr(e ast.Expr) {
	switch e := e.(type) {
	case *ast.Chain:
		c.expr(e.First)
		for _, elem := range e.Rest {
			c.write(" %s ", elem.Op)
			c.expr(elem.RHS)
		}
	case *ast.Paren:
		c.write("(")
		c.expr(e.Expr)
		c.write(")")
	case *ast.Number:
		c.write(e.Text)
	case *ast.Field:
		c.write(e.Name)
	case *ast.Call:
		c.write(e.Name)
		c.write("(")
		for k, arg := range e.Args {
			if k > 0 {
				c.write(", ")
			}
			c.write(arg)
		}
		c.write(")")
	default:
		c.write("(unknown %T)", e)
	}
}
