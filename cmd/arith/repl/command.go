package repl

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/brimdata/arith/cli/eqflags"
	"github.com/brimdata/arith/cmd/arith/root"
	"github.com/brimdata/arith/compiler"
	"github.com/brimdata/arith/compiler/semantic"
	"github.com/brimdata/arith/compiler/srcfiles"
	"github.com/peterh/liner"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const long = `
This command reads equations interactively and prints the JSON form of
each or the reason it was rejected.  Input history is kept in
~/.arith_history.  Enter ":quit" or end of file to exit.
`

const historyFile = ".arith_history"

type Command struct {
	*root.Command
	eqFlags eqflags.Flags
	alias   string
}

func New(parent *root.Command) *cobra.Command {
	c := &Command{Command: parent}
	cmd := &cobra.Command{
		Use:   "repl [flags]",
		Short: "parse equations interactively",
		Long:  long,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.Run(cmd.OutOrStdout())
		},
	}
	fs := cmd.Flags()
	c.eqFlags.SetParseFlags(fs)
	fs.StringVar(&c.alias, "alias", "", "alias appended to the root of the JSON form")
	return cmd
}

func (c *Command) Run(w io.Writer) error {
	comp, err := c.NewCompiler(nil)
	if err != nil {
		return err
	}
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)
	line.SetCompleter(Complete)
	history := historyPath()
	if history != "" {
		if f, err := os.Open(history); err == nil {
			_, _ = line.ReadHistory(f)
			f.Close()
		}
	}
	opts := c.eqFlags.Options(c.Config)
	for {
		input, err := line.Prompt("arith> ")
		if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		if input == ":quit" {
			break
		}
		line.AppendHistory(input)
		fmt.Fprintln(w, Eval(comp, opts, input, c.alias))
	}
	if history != "" {
		if f, err := os.Create(history); err == nil {
			if _, err := line.WriteHistory(f); err != nil {
				c.Logger.Warn("Writing history", zap.Error(err))
			}
			f.Close()
		}
	}
	return nil
}

// Eval returns the JSON form of input or its annotated error.
func Eval(comp *compiler.Compiler, opts compiler.Options, input, alias string) string {
	eq, err := comp.Parse(input, opts)
	if err != nil {
		return srcfiles.NewFile("", input).Annotate(err)
	}
	b, err := json.Marshal(eq.JSON(alias))
	if err != nil {
		return err.Error()
	}
	return string(b)
}

// Complete returns the completions of the last word of line among the
// allowed fields and functions.
func Complete(line string) []string {
	i := strings.LastIndexAny(line, " ()+-*/,") + 1
	prefix, word := line[:i], line[i:]
	if word == "" {
		return nil
	}
	var c []string
	for _, name := range semantic.Names() {
		if strings.HasPrefix(name, word) {
			c = append(c, prefix+name)
		}
	}
	return c
}

func historyPath() string {
	dir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, historyFile)
}
