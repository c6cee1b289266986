package semantic

import (
	"github.com/brimdata/arith"
	"github.com/brimdata/arith/compiler/ast"
)

// check applies the rules that need the whole equation: fields and
// functions may not be mixed unless one of the total aliases is present,
// and an operator may be required.
func check(r *Result, n ast.Node, opts Options) error {
	if len(r.Functions) > 0 {
		for _, f := range r.Fields {
			if _, ok := mixingExceptions[f]; ok {
				return nil
			}
		}
	}
	if len(r.Fields) > 0 && len(r.Functions) > 0 {
		return arith.NewError(arith.KindValidation, "Cannot mix functions and fields in arithmetic", n.Pos(), n.End())
	}
	if opts.ValidateSingleOperator && r.Operators == 0 {
		return arith.NewError(arith.KindValidation, "Arithmetic expression must contain at least 1 operator", n.Pos(), n.End())
	}
	return nil
}
