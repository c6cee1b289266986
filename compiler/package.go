// Package compiler ties together parsing and semantic analysis of
// equations.  Parse is a pure function; Compiler adds caching, logging,
// and metrics around it for callers that compile equations repeatedly.
package compiler

import (
	"github.com/brimdata/arith"
	"github.com/brimdata/arith/compiler/parser"
	"github.com/brimdata/arith/compiler/semantic"
)

type Options = semantic.Options

// Equation is a parsed and validated equation.  Equations may be shared
// by a Compiler's cache and must not be modified.
type Equation struct {
	Text      string
	Root      arith.Operand
	Fields    []string
	Functions []string
	Operators int
	Terms     int
}

// Operation returns the root of e as an *arith.Operation or nil if the
// equation is a lone operand.
func (e *Equation) Operation() *arith.Operation {
	op, _ := e.Root.(*arith.Operation)
	return op
}

// ContainsFunctions reports whether e references an aggregate function.
func (e *Equation) ContainsFunctions() bool {
	return len(e.Functions) > 0
}

// JSON lowers e.  A lone operand lowers to its bare JSON value.
func (e *Equation) JSON(alias string) any {
	switch root := e.Root.(type) {
	case *arith.Operation:
		return root.JSON(alias)
	case arith.Number:
		return float64(root)
	case arith.Field:
		return string(root)
	case arith.Function:
		return string(root)
	}
	return nil
}

// Parse parses and analyzes text.  Any error is an *arith.Error.
func Parse(text string, opts Options) (*Equation, error) {
	ast, err := parser.ParseEquation(text)
	if err != nil {
		return nil, err
	}
	r, err := semantic.Analyze(ast.Parsed(), opts)
	if err != nil {
		return nil, err
	}
	return &Equation{
		Text:      text,
		Root:      r.Root,
		Fields:    r.Fields,
		Functions: r.Functions,
		Operators: r.Operators,
		Terms:     r.Terms,
	}, nil
}
