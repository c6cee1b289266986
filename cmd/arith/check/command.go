package check

import (
	"encoding/json"
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/brimdata/arith/cli/eqflags"
	"github.com/brimdata/arith/cmd/arith/root"
	"github.com/brimdata/arith/compiler"
	"github.com/brimdata/arith/compiler/srcfiles"
	"github.com/kr/text"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const long = `
This command checks files of equations, one equation per line.  Blank
lines and lines beginning with "#" are ignored.  Each failing equation is
reported with the offending text marked, and the command exits with an
error if any equation fails.

The "-v" option also lists the equations that pass along with their JSON
form.  The "--metrics" option writes the compiler's metrics in the
Prometheus text format after the report.
`

type Command struct {
	*root.Command
	eqFlags eqflags.Flags
	metrics bool
	verbose bool
}

func New(parent *root.Command) *cobra.Command {
	c := &Command{Command: parent}
	cmd := &cobra.Command{
		Use:   "check [flags] file...",
		Short: "check files of equations",
		Long:  long,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.Run(cmd.OutOrStdout(), args)
		},
	}
	fs := cmd.Flags()
	c.eqFlags.SetFlags(fs)
	fs.BoolVar(&c.metrics, "metrics", false, "write compiler metrics after the report")
	fs.BoolVarP(&c.verbose, "verbose", "v", false, "list passing equations")
	return cmd
}

type result struct {
	eq  *compiler.Equation
	err error
}

func (c *Command) Run(w io.Writer, args []string) error {
	includes := append(c.eqFlags.Includes, args...)
	if len(includes) == 0 {
		return fmt.Errorf("no equation files specified")
	}
	lines, texts, err := includes.Read()
	if err != nil {
		return err
	}
	reg := prometheus.NewRegistry()
	comp, err := c.NewCompiler(reg)
	if err != nil {
		return err
	}
	opts := c.eqFlags.Options(c.Config)
	results := make([]result, len(lines))
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, line := range lines {
		g.Go(func() error {
			eq, err := comp.Parse(line.Text, opts)
			results[i] = result{eq, err}
			return nil
		})
	}
	_ = g.Wait()
	files := make(map[string]*srcfiles.File, len(texts))
	for name, t := range texts {
		files[name] = srcfiles.NewFile(name, t)
	}
	var failed int
	for i, line := range lines {
		r := results[i]
		if r.err != nil {
			failed++
			fmt.Fprintf(w, "FAIL %s:%d\n", line.File, line.Number)
			fmt.Fprintln(w, text.Indent(files[line.File].AnnotateAt(r.err, line.Offset), "    "))
			continue
		}
		if c.verbose {
			b, err := json.Marshal(r.eq.JSON(""))
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "ok   %s:%d\t%s\n", line.File, line.Number, b)
		}
	}
	c.Logger.Info("Equations checked", zap.Int("total", len(lines)), zap.Int("failed", failed))
	if c.metrics {
		if err := writeMetrics(w, reg); err != nil {
			return err
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d equations failed", failed, len(lines))
	}
	return nil
}

func writeMetrics(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return err
	}
	var b strings.Builder
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(&b, mf); err != nil {
			return err
		}
	}
	_, err = io.WriteString(w, b.String())
	return err
}
