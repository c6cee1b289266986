// Package eqflags defines the flags that control how equations are parsed.
package eqflags

import (
	"os"
	"slices"
	"strings"

	"github.com/brimdata/arith/cli/config"
	"github.com/brimdata/arith/compiler"
	"github.com/spf13/pflag"
)

type Flags struct {
	Includes       Includes
	MaxOperators   int
	Measurements   []string
	SingleOperator bool
}

func (f *Flags) SetFlags(fs *pflag.FlagSet) {
	fs.VarP(&f.Includes, "include", "I", "source file containing equations, one per line (may be repeated)")
	f.SetParseFlags(fs)
}

// SetParseFlags sets only the flags that affect parsing.
func (f *Flags) SetParseFlags(fs *pflag.FlagSet) {
	fs.IntVar(&f.MaxOperators, "max-operators", 0, "maximum number of operators in an equation (default 10)")
	fs.StringArrayVar(&f.Measurements, "measurement", nil, "custom measurement allowed as a field (may be repeated)")
	fs.BoolVar(&f.SingleOperator, "single-operator", false, "require at least one operator")
}

// Options returns the parse options given by the flags.  Custom
// measurements in c are added to those given by flags, and the operator
// ceiling in c applies unless a flag sets it.
func (f *Flags) Options(c *config.Config) compiler.Options {
	opts := compiler.Options{
		MaxOperators:           f.MaxOperators,
		CustomMeasurements:     slices.Clone(f.Measurements),
		ValidateSingleOperator: f.SingleOperator,
	}
	if c != nil {
		if opts.MaxOperators == 0 {
			opts.MaxOperators = c.MaxOperators
		}
		opts.CustomMeasurements = append(opts.CustomMeasurements, c.CustomMeasurements...)
	}
	return opts
}

// Includes is a list of files containing equations.
type Includes []string

func (i Includes) String() string {
	return strings.Join(i, ",")
}

func (i *Includes) Set(value string) error {
	*i = append(*i, value)
	return nil
}

func (i *Includes) Type() string {
	return "file"
}

// Line is one equation read from an included file.
type Line struct {
	File   string
	Number int
	// Offset is the byte offset of the line in its file.
	Offset int
	Text   string
}

// Read returns the non-blank lines of the included files in order
// together with the text of each file.
func (i Includes) Read() ([]Line, map[string]string, error) {
	var lines []Line
	texts := map[string]string{}
	for _, name := range i {
		b, err := os.ReadFile(name)
		if err != nil {
			return nil, nil, err
		}
		texts[name] = string(b)
		lines = append(lines, SplitLines(name, string(b))...)
	}
	return lines, texts, nil
}

// SplitLines splits text into Lines, skipping blank lines and lines
// beginning with "#".
func SplitLines(name, text string) []Line {
	var lines []Line
	offset := 0
	for n, line := range strings.SplitAfter(text, "\n") {
		trimmed := strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")
		if t := strings.TrimSpace(trimmed); t != "" && !strings.HasPrefix(t, "#") {
			lines = append(lines, Line{File: name, Number: n + 1, Offset: offset, Text: trimmed})
		}
		offset += len(line)
	}
	return lines
}
