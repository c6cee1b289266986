package arith

// FloatCast is the unary function wrapped around a bare field or function
// appearing as a left operand so the query engine treats it as a numeric
// expression instead of a column reference.
const FloatCast = "toFloat64"

// Query is the nested-array JSON form of an Operation:
//
//	[operator, [lhs, rhs]]
//	[operator, [lhs, rhs], alias]
type Query []any

// JSON lowers o to its Query form.  A non-empty alias is appended as a
// third element of the outermost array.
func (o *Operation) JSON(alias string) Query {
	lhs := lowerOperand(o.LHS)
	if s, ok := lhs.(string); ok {
		lhs = []any{FloatCast, []any{s}}
	}
	q := Query{string(o.Operator), []any{lhs, lowerOperand(o.RHS)}}
	if alias != "" {
		q = append(q, alias)
	}
	return q
}

func lowerOperand(o Operand) any {
	switch o := o.(type) {
	case *Operation:
		return o.JSON("")
	case Number:
		return float64(o)
	case Field:
		return string(o)
	case Function:
		return string(o)
	}
	return nil
}
