package sfmt

import (
	"strconv"

	"github.com/brimdata/arith"
)

// Operation formats an operator tree as infix text with the fewest
// parentheses that preserve its structure.
func Operation(o arith.Operand) string {
	var d dag
	d.operand(o, "", false)
	return d.String()
}

type dag struct {
	formatter
}

func (d *dag) operand(o arith.Operand, parent string, right bool) {
	switch o := o.(type) {
	case *arith.Operation:
		op := o.Operator.Symbol()
		parens := needsparens(parent, op, right)
		d.maybewrite("(", parens)
		d.operand(o.LHS, op, false)
		d.write(" %s ", op)
		d.operand(o.RHS, op, true)
		d.maybewrite(")", parens)
	case arith.Number:
		d.write(strconv.FormatFloat(float64(o), 'f', -1, 64))
	case arith.Field:
		d.write(string(o))
	case arith.Function:
		d.write(string(o))
	default:
		d.write("(unknown %T)", o)
	}
}

// needsparens reports whether an operation with operator op appearing as
// an operand of parent must be parenthesized.  Operators are left
// associative so a right operand of equal precedence needs parentheses.
func needsparens(parent, op string, right bool) bool {
	if parent == "" {
		return false
	}
	p, q := precedence(parent), precedence(op)
	return q > p || (q == p && right)
}
