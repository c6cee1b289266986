package resolve

import (
	"fmt"
	"io"
	"slices"

	"github.com/brimdata/arith/cli/outputflags"
	"github.com/brimdata/arith/cmd/arith/root"
	"github.com/brimdata/arith/equation"
	"github.com/spf13/cobra"
)

const long = `
This command resolves the equations among a list of selected columns.
Columns prefixed with "equation|" are equations; the rest are the fields
and functions selected alongside them.  Every field and function an
equation references must be selected unless --auto-add is given, in which
case missing ones are appended to the columns.

The output lists the resolved columns and the JSON form of each equation
aliased as equation[0], equation[1], and so on.
`

type Command struct {
	*root.Command
	outputFlags  outputflags.Flags
	measurements []string
	opts         equation.Options
}

func New(parent *root.Command) *cobra.Command {
	c := &Command{Command: parent}
	cmd := &cobra.Command{
		Use:   "resolve [flags] column...",
		Short: "resolve equations against selected columns",
		Long:  long,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.Run(cmd.OutOrStdout(), args)
		},
	}
	fs := cmd.Flags()
	c.outputFlags.SetFlags(fs)
	fs.BoolVar(&c.opts.AggregatesOnly, "aggregates-only", false, "require every equation to reference a function")
	fs.BoolVar(&c.opts.AutoAdd, "auto-add", false, "append referenced fields and functions missing from the columns")
	fs.BoolVar(&c.opts.PlainMath, "plain-math", false, "allow equations without fields or functions")
	fs.StringArrayVar(&c.measurements, "measurement", nil, "custom measurement allowed as a field (may be repeated)")
	return cmd
}

type Equation struct {
	Alias             string `json:"alias"`
	Query             any    `json:"query"`
	ContainsFunctions bool   `json:"contains_functions"`
}

type Result struct {
	Columns   []string   `json:"columns"`
	Equations []Equation `json:"equations"`
}

func (c *Command) Run(stdout io.Writer, args []string) (err error) {
	if err := c.outputFlags.Init(); err != nil {
		return err
	}
	comp, err := c.NewCompiler(nil)
	if err != nil {
		return err
	}
	opts := c.opts
	opts.Compiler = comp
	opts.CustomMeasurements = append(slices.Clone(c.measurements), c.Config.CustomMeasurements...)
	equations, columns := equation.CategorizeColumns(args)
	columns, parsed, err := equation.ResolveEquationList(equations, columns, opts)
	if err != nil {
		return err
	}
	result := Result{
		Columns:   columns,
		Equations: []Equation{},
	}
	if result.Columns == nil {
		result.Columns = []string{}
	}
	for i, p := range parsed {
		result.Equations = append(result.Equations, Equation{
			Alias:             equation.Alias(i),
			Query:             p.Equation.JSON(equation.Alias(i)),
			ContainsFunctions: p.ContainsFunctions,
		})
	}
	w, err := c.outputFlags.Open(stdout)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := w.Close(); err == nil {
			err = cerr
		}
	}()
	if c.outputFlags.Format == "text" {
		fmt.Fprintf(w, "columns: %v\n", result.Columns)
		for i, p := range parsed {
			fmt.Fprintf(w, "%s: %s\n", equation.Alias(i), p.Equation)
		}
		return nil
	}
	b, err := c.outputFlags.Marshal(result)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n", b)
	return err
}
