// Package semantic turns an equation syntax tree into an arith operator
// tree, checking fields and functions against the allow-lists and
// enforcing the operator ceiling and mixing rules along the way.
package semantic

import (
	"errors"
	"math"
	"strconv"

	"github.com/brimdata/arith"
	"github.com/brimdata/arith/compiler/ast"
)

type Options struct {
	// MaxOperators is the operator ceiling.  Values less than 1 select
	// DefaultMaxOperators.
	MaxOperators int
	// CustomMeasurements are fields permitted in addition to
	// FieldAllowlist.
	CustomMeasurements []string
	// ValidateSingleOperator requires at least one operator.
	ValidateSingleOperator bool
}

// Result is the outcome of analyzing one equation.
type Result struct {
	// Root is an *arith.Operation unless the equation had no operators,
	// in which case it is the lone operand.
	Root arith.Operand
	// Fields and Functions list the distinct fields and function calls
	// in order of first appearance.
	Fields    []string
	Functions []string
	Operators int
	Terms     int
}

// Analyze walks the syntax tree e.  The returned error, if any, is an
// *arith.Error.
func Analyze(e ast.Expr, opts Options) (*Result, error) {
	a := newAnalyzer(opts)
	root, err := a.expr(e)
	if err != nil {
		return nil, err
	}
	r := &Result{
		Root:      root,
		Fields:    a.fields.slice(),
		Functions: a.functions.slice(),
		Operators: a.operators,
		Terms:     a.terms,
	}
	if err := check(r, e, opts); err != nil {
		return nil, err
	}
	return r, nil
}

// analyzer holds the state of a single walk and is never reused.
type analyzer struct {
	maxOperators int
	custom       map[string]struct{}
	fields       orderedSet[string]
	functions    orderedSet[string]
	operators    int
	terms        int
}

func newAnalyzer(opts Options) *analyzer {
	limit := opts.MaxOperators
	if limit < 1 {
		limit = DefaultMaxOperators
	}
	return &analyzer{
		maxOperators: limit,
		custom:       set(opts.CustomMeasurements...),
	}
}

func (a *analyzer) expr(e ast.Expr) (arith.Operand, error) {
	switch e := e.(type) {
	case *ast.Chain:
		return a.chain(e)
	case *ast.Paren:
		a.terms++
		return a.expr(e.Expr)
	case *ast.Number:
		a.terms++
		return a.number(e)
	case *ast.Field:
		a.terms++
		return a.field(e)
	case *ast.Call:
		a.terms++
		return a.call(e)
	}
	return nil, arith.Errorf(arith.KindParse, e.Pos(), e.End(), "unknown syntax node %T", e)
}

// chain folds the elements of c left to right onto c.First so that
// "a - b - c" becomes (a - b) - c.
func (a *analyzer) chain(c *ast.Chain) (arith.Operand, error) {
	lhs, err := a.expr(c.First)
	if err != nil {
		return nil, err
	}
	for _, elem := range c.Rest {
		rhs, err := a.expr(elem.RHS)
		if err != nil {
			return nil, err
		}
		if err := a.visitedOperator(elem); err != nil {
			return nil, err
		}
		op, err := arith.ParseOperator(elem.Op)
		if err != nil {
			return nil, locate(err, elem)
		}
		operation, err := arith.NewOperation(op, lhs, rhs)
		if err != nil {
			return nil, locate(err, elem)
		}
		lhs = operation
	}
	return lhs, nil
}

func (a *analyzer) visitedOperator(n ast.Node) error {
	a.operators++
	if a.operators > a.maxOperators {
		return arith.NewError(arith.KindMaxOperators, "Exceeded maximum number of operations", n.Pos(), n.End())
	}
	return nil
}

func (a *analyzer) number(n *ast.Number) (arith.Operand, error) {
	f, err := strconv.ParseFloat(n.Text, 64)
	switch {
	case math.IsInf(f, 0):
		// Infinity has no JSON form.
		return nil, arith.NewError(arith.KindValidation, "numeric literal is out of range", n.Pos(), n.End())
	case err != nil && !errors.Is(err, strconv.ErrRange):
		return nil, arith.Errorf(arith.KindParse, n.Pos(), n.End(), "%s is not a number", n.Text)
	}
	return arith.Number(f), nil
}

func (a *analyzer) field(f *ast.Field) (arith.Operand, error) {
	_, allowed := FieldAllowlist[f.Name]
	if _, ok := a.custom[f.Name]; !ok && !allowed {
		err := arith.Errorf(arith.KindValidation, f.Pos(), f.End(), "%s not allowed in arithmetic", f.Name)
		err.Hint = suggest(f.Name, FieldAllowlist, a.custom)
		return nil, err
	}
	a.fields.add(f.Name)
	return arith.Field(f.Name), nil
}

func (a *analyzer) call(c *ast.Call) (arith.Operand, error) {
	if _, ok := FunctionAllowlist[c.Name]; !ok {
		err := arith.Errorf(arith.KindValidation, c.Pos(), c.Pos()+len(c.Name)-1, "%s not allowed in arithmetic", c.Name)
		err.Hint = suggest(c.Name, FunctionAllowlist)
		return nil, err
	}
	a.functions.add(c.Text)
	return arith.Function(c.Text), nil
}

// locate attaches the location of n to err if err is an *arith.Error
// without one.
func locate(err error, n ast.Node) error {
	var aerr *arith.Error
	if errors.As(err, &aerr) && aerr.Pos < 0 {
		aerr.Pos, aerr.End = n.Pos(), n.End()
	}
	return err
}
