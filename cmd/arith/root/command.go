package root

import (
	"github.com/brimdata/arith/cli"
	"github.com/spf13/cobra"
)

const long = `
The "arith" command parses arithmetic equations over query result columns,
validates them, and lowers them to the nested-array JSON form consumed by
the query engine.

An equation combines numeric literals, allow-listed fields such as
transaction.duration, and aggregate function calls such as
p95(transaction.duration) with +, -, *, and / (or ÷).  Fields and functions
may not be mixed in one equation except with total.count or
total.transaction_duration.

Settings common to all commands may be given in a YAML file with --config.
Flags given on the command line take precedence over the file.
`

// Command holds the flags shared by all subcommands.
type Command struct {
	cli.Flags
	Cobra *cobra.Command
}

func New() *Command {
	c := &Command{}
	c.Cobra = &cobra.Command{
		Use:           "arith",
		Short:         "parse, validate, and lower arithmetic equations",
		Long:          long,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.Init(cmd.Flags())
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			c.Cleanup()
		},
	}
	c.SetFlags(c.Cobra.PersistentFlags())
	return c
}
