// Package equation resolves the equations of a query against the query's
// selected columns.
package equation

import (
	"slices"

	"github.com/brimdata/arith"
	"github.com/brimdata/arith/compiler"
)

type Options struct {
	// AggregatesOnly rejects equations that reference no function.
	AggregatesOnly bool
	// AutoAdd appends referenced fields and functions missing from the
	// selected columns instead of failing.
	AutoAdd bool
	// PlainMath permits equations with neither fields nor functions.
	PlainMath          bool
	CustomMeasurements []string
	// Compiler, if non-nil, is used in place of compiler.Parse.
	Compiler *compiler.Compiler
}

// ResolveEquationList parses equations in order, checking that every field
// and function they reference is among selectedColumns.  It returns the
// selected columns, extended with missing references when opts.AutoAdd is
// set, and one ParsedEquation per equation.  A reference added for an
// earlier equation is not added again.  selectedColumns is not modified.
func ResolveEquationList(equations, selectedColumns []string, opts Options) ([]string, []arith.ParsedEquation, error) {
	columns := slices.Clone(selectedColumns)
	parsed := make([]arith.ParsedEquation, 0, len(equations))
	for _, text := range equations {
		eq, err := parse(text, opts)
		if err != nil {
			return nil, nil, err
		}
		if len(eq.Fields) == 0 && len(eq.Functions) == 0 && !opts.PlainMath {
			return nil, nil, arith.NewError(arith.KindValidation, "Equations need to include a field or function", -1, -1)
		}
		if opts.AggregatesOnly && len(eq.Functions) == 0 {
			return nil, nil, arith.NewError(arith.KindValidation, "Only equations on aggregate functions are supported", -1, -1)
		}
		if columns, err = resolve(columns, eq.Fields, "field", opts.AutoAdd); err != nil {
			return nil, nil, err
		}
		if columns, err = resolve(columns, eq.Functions, "function", opts.AutoAdd); err != nil {
			return nil, nil, err
		}
		parsed = append(parsed, arith.ParsedEquation{
			Equation:          eq.Operation(),
			ContainsFunctions: eq.ContainsFunctions(),
		})
	}
	return columns, parsed, nil
}

func parse(text string, opts Options) (*compiler.Equation, error) {
	copts := compiler.Options{
		CustomMeasurements:     opts.CustomMeasurements,
		ValidateSingleOperator: true,
	}
	if opts.Compiler != nil {
		return opts.Compiler.Parse(text, copts)
	}
	return compiler.Parse(text, copts)
}

func resolve(columns, refs []string, what string, autoAdd bool) ([]string, error) {
	for _, ref := range refs {
		if slices.Contains(columns, ref) {
			continue
		}
		if !autoAdd {
			return nil, arith.Errorf(arith.KindValidation, -1, -1, "%s used in an equation but is not a selected %s", ref, what)
		}
		columns = append(columns, ref)
	}
	return columns, nil
}
