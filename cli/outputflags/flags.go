// Package outputflags defines the flags that control how lowered equations
// are written.
package outputflags

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"golang.org/x/term"
)

type Flags struct {
	Format     string
	Pretty     int
	outputFile string
	pretty     int
	jsonPretty bool
}

func (f *Flags) SetFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&f.Format, "format", "f", "json", "format for output [json,text]")
	fs.IntVar(&f.pretty, "pretty", -1, "tab size to pretty print JSON output (0 for single-line output, default 2 on a terminal)")
	fs.BoolVarP(&f.jsonPretty, "json-pretty", "J", false, "use formatted JSON output independent of the terminal")
	fs.StringVarP(&f.outputFile, "output", "o", "", "write output to file")
}

func (f *Flags) Init() error {
	switch f.Format {
	case "json", "text":
	default:
		return fmt.Errorf("unknown output format %q", f.Format)
	}
	if f.jsonPretty && f.Format != "json" {
		return errors.New("cannot use -J with -f text")
	}
	if f.outputFile == "-" {
		f.outputFile = ""
	}
	f.Pretty = f.pretty
	switch {
	case f.jsonPretty && f.Pretty <= 0:
		f.Pretty = 2
	case f.Pretty < 0 && f.outputFile == "" && term.IsTerminal(int(os.Stdout.Fd())):
		f.Pretty = 2
	case f.Pretty < 0:
		f.Pretty = 0
	}
	return nil
}

// Open returns the destination of output, which is stdout unless an output
// file was given.  Output to a file is buffered, so the caller must check
// the error from Close.
func (f *Flags) Open(stdout io.Writer) (io.WriteCloser, error) {
	if f.outputFile == "" {
		return nopCloser{stdout}, nil
	}
	file, err := os.Create(f.outputFile)
	if err != nil {
		return nil, err
	}
	return &fileWriter{Writer: bufio.NewWriter(file), file: file}, nil
}

// Marshal encodes v as JSON indented by Pretty spaces.
func (f *Flags) Marshal(v any) ([]byte, error) {
	if f.Pretty > 0 {
		return json.MarshalIndent(v, "", strings.Repeat(" ", f.Pretty))
	}
	return json.Marshal(v)
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

type fileWriter struct {
	*bufio.Writer
	file *os.File
}

func (w *fileWriter) Close() error {
	err := w.Flush()
	if cerr := w.file.Close(); err == nil {
		err = cerr
	}
	return err
}
