package main

import (
	"fmt"
	"os"

	"github.com/brimdata/arith/cmd/arith/check"
	"github.com/brimdata/arith/cmd/arith/parse"
	"github.com/brimdata/arith/cmd/arith/repl"
	"github.com/brimdata/arith/cmd/arith/resolve"
	"github.com/brimdata/arith/cmd/arith/root"
)

func newArith() *root.Command {
	r := root.New()
	r.Cobra.AddCommand(
		check.New(r),
		parse.New(r),
		repl.New(r),
		resolve.New(r),
	)
	return r
}

func main() {
	if err := newArith().Cobra.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
