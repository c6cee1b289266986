package parse

import (
	"errors"
	"fmt"
	"io"

	"github.com/brimdata/arith/cli/eqflags"
	"github.com/brimdata/arith/cli/outputflags"
	"github.com/brimdata/arith/cmd/arith/root"
	"github.com/brimdata/arith/compiler"
	"github.com/brimdata/arith/compiler/parser"
	"github.com/brimdata/arith/compiler/sfmt"
	"github.com/brimdata/arith/compiler/srcfiles"
	"github.com/kr/pretty"
	"github.com/spf13/cobra"
)

const long = `
This command parses an equation, validates it, and emits its lowered JSON
form along with the fields and functions it references.

The "-C" option causes the equation to be shown as canonical text instead,
with normalized spacing and only the parentheses needed to preserve its
structure.  The "--ast" option dumps the syntax tree before validation,
which is mostly useful for debugging the parser.

Errors are shown with the offending text marked.
`

type Command struct {
	*root.Command
	eqFlags     eqflags.Flags
	outputFlags outputflags.Flags
	alias       string
	ast         bool
	canon       bool
}

func New(parent *root.Command) *cobra.Command {
	c := &Command{Command: parent}
	cmd := &cobra.Command{
		Use:   "parse [flags] equation",
		Short: "parse an equation and emit its JSON form",
		Long:  long,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.Run(cmd.OutOrStdout(), args[0])
		},
	}
	fs := cmd.Flags()
	c.eqFlags.SetParseFlags(fs)
	c.outputFlags.SetFlags(fs)
	fs.StringVar(&c.alias, "alias", "", "alias appended to the root of the JSON form")
	fs.BoolVar(&c.ast, "ast", false, "display the syntax tree")
	fs.BoolVarP(&c.canon, "canonical", "C", false, "display the equation as canonical text")
	return cmd
}

// Result is the JSON output of the parse command.
type Result struct {
	Query     any      `json:"query"`
	Fields    []string `json:"fields"`
	Functions []string `json:"functions"`
	Operators int      `json:"operators"`
}

func (c *Command) Run(stdout io.Writer, text string) (err error) {
	if err := c.outputFlags.Init(); err != nil {
		return err
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
	if c.ast {
		ast, err := parser.ParseEquation(text)
		if err != nil {
			return errors.New(srcfiles.NewFile("", text).Annotate(err))
		}
		_, err = pretty.Fprintf(w, "%# v\n", ast.Parsed())
		return err
	}
	comp, err := c.NewCompiler(nil)
	if err != nil {
		return err
	}
	eq, err := comp.Parse(text, c.eqFlags.Options(c.Config))
	if err != nil {
		return errors.New(srcfiles.NewFile("", text).Annotate(err))
	}
	if c.canon {
		_, err := fmt.Fprintln(w, sfmt.Operation(eq.Root))
		return err
	}
	if c.outputFlags.Format == "text" {
		return writeText(w, eq, c.alias)
	}
	b, err := c.outputFlags.Marshal(Result{
		Query:     eq.JSON(c.alias),
		Fields:    nonNil(eq.Fields),
		Functions: nonNil(eq.Functions),
		Operators: eq.Operators,
	})
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n", b)
	return err
}

func writeText(w io.Writer, eq *compiler.Equation, alias string) error {
	var tree string
	if op := eq.Operation(); op != nil {
		tree = op.String()
	} else {
		tree = sfmt.Operation(eq.Root)
	}
	if alias != "" {
		tree += " as " + alias
	}
	_, err := fmt.Fprintf(w, "%s\nfields: %v\nfunctions: %v\noperators: %d\n",
		tree, nonNil(eq.Fields), nonNil(eq.Functions), eq.Operators)
	return err
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
