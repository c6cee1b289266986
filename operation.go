// Package arith declares the operator tree produced by parsing an equation
// together with the error taxonomy shared by the compiler packages.
//
// An equation such as "transaction.duration / count()" is compiled by
// github.com/brimdata/arith/compiler into a tree of Operations whose leaves
// are numeric literals, fields, and aggregate function calls.  The tree is
// lowered to the nested-array JSON form consumed by the query engine with
// Operation.JSON.
package arith

import (
	"fmt"
	"strconv"
	"strings"
)

type Operator string

const (
	Plus     Operator = "plus"
	Minus    Operator = "minus"
	Multiply Operator = "multiply"
	Divide   Operator = "divide"
)

// ParseOperator converts an operator name or symbol to an Operator.
// Both "/" and "÷" denote division.
func ParseOperator(s string) (Operator, error) {
	switch s {
	case "plus", "+":
		return Plus, nil
	case "minus", "-":
		return Minus, nil
	case "multiply", "*":
		return Multiply, nil
	case "divide", "/", "÷":
		return Divide, nil
	}
	return "", Errorf(KindParse, -1, -1, "%s is not a supported operator", s)
}

func (o Operator) Valid() bool {
	switch o {
	case Plus, Minus, Multiply, Divide:
		return true
	}
	return false
}

// Symbol returns the infix symbol for o.
func (o Operator) Symbol() string {
	switch o {
	case Plus:
		return "+"
	case Minus:
		return "-"
	case Multiply:
		return "*"
	case Divide:
		return "/"
	}
	return string(o)
}

// Operand is one of *Operation, Number, Field, or Function.
type Operand interface {
	operand()
}

type (
	// Number is a numeric literal.
	Number float64
	// Field is an allow-listed column name such as "transaction.duration".
	Field string
	// Function is the full text of an aggregate call such as
	// "avg(transaction.duration)".  Calls that differ only in their
	// arguments are distinct functions.
	Function string
)

func (*Operation) operand() {}
func (Number) operand()     {}
func (Field) operand()      {}
func (Function) operand()   {}

// Operation is a binary arithmetic node.  Operations are built by
// NewOperation and are not modified afterward.
type Operation struct {
	Operator Operator
	LHS      Operand
	RHS      Operand
}

// NewOperation returns a new Operation after checking that op is supported
// and that a division does not have a literal zero divisor.
func NewOperation(op Operator, lhs, rhs Operand) (*Operation, error) {
	if !op.Valid() {
		return nil, Errorf(KindParse, -1, -1, "%s is not a supported operator", op)
	}
	if op == Divide {
		if n, ok := rhs.(Number); ok && n == 0 {
			return nil, NewError(KindValidation, "division by 0 is not allowed", -1, -1)
		}
	}
	return &Operation{Operator: op, LHS: lhs, RHS: rhs}, nil
}

func (o *Operation) String() string {
	return fmt.Sprintf("[%s, %s, %s]", o.Operator, operandString(o.LHS), operandString(o.RHS))
}

func operandString(o Operand) string {
	switch o := o.(type) {
	case *Operation:
		return o.String()
	case Number:
		return FormatNumber(float64(o))
	case Field:
		return string(o)
	case Function:
		return string(o)
	case nil:
		return "<nil>"
	}
	return fmt.Sprintf("%v", o)
}

// FormatNumber renders f in its shortest round-trip decimal form.
func FormatNumber(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".IN") {
		s += ".0"
	}
	return s
}

// Walk calls visit for each operand of the tree rooted at o in post order,
// left to right.
func Walk(o Operand, visit func(Operand)) {
	if op, ok := o.(*Operation); ok {
		Walk(op.LHS, visit)
		Walk(op.RHS, visit)
	}
	visit(o)
}

// ParsedEquation pairs the operator tree of an equation with whether the
// equation referenced any aggregate function.
type ParsedEquation struct {
	Equation          *Operation
	ContainsFunctions bool
}
