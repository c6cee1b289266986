// Package eqtest runs formulaic tests ("eqtests") that can be (1) run
// in-process with the compiled-in code base or (2) run as a bash script
// running a sequence of arbitrary shell commands invoking the arith
// command.  Case (1) is easier to debug by simply running "go test".
//
// An equation-style test is defined in a YAML file.
//
//	equation: transaction.duration / count()
//
//	output: |
//	  ["divide",[["toFloat64",["transaction.duration"]],"count()"]]
//
// The output is the JSON lowering of the equation followed by a newline.
// Parse options are given by max-operators, measurements, and
// single-operator, and the root of the lowering may be aliased with alias.
// The fields and functions an equation references may be checked with
// the fields and functions lists.
//
//	equation: count() + transaction.duration
//
//	error: |
//	  Cannot mix functions and fields in arithmetic
//
// Alternatively, tests can be configured to run as shell scripts.  Scripts
// are executed by "bash -e -o pipefail", and a nonzero shell exit code
// causes a test failure.  Here, the yaml sets up a collection of input
// files and stdin, the script runs, and the test driver compares expected
// output files, stdout, and stderr with data in the yaml file.
//
//	inputs:
//	  - name: equations.txt
//	    data: |
//	      spans.db / 2
//	script: |
//	  arith check equations.txt
//	outputs:
//	  - name: stdout
//	    data: |
//	      ok
//
// Each input and output has a name.  For inputs, a file (source) or inline
// data (data) may be specified.  If no data is specified, then a file of
// the same name as the name field is looked for in the same directory as
// the yaml file.  For outputs, a "regexp" string may be given instead of
// expected data.
//
// Eqtest YAML files for a package reside in a subdirectory named eqtests
// and are run by a Go test that calls Run.
//
//	func TestEqtest(t *testing.T) { eqtest.Run(t, "eqtests") }
//
// If the EQTEST_PATH environment variable is unset or empty, Run runs
// equation tests in the current process and skips the script tests.
// Otherwise, Run runs only the script tests using the arith executable in
// the directories specified by EQTEST_PATH.
//
// Tests of either style can be skipped by setting the skip field to a
// non-empty string.
package eqtest

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/brimdata/arith/compiler"
	"github.com/pmezard/go-difflib/difflib"
	"gopkg.in/yaml.v3"
)

func ShellPath() string {
	return os.Getenv("EQTEST_PATH")
}

type Bundle struct {
	TestName string
	FileName string
	Test     *Test
	Error    error
}

func Load(dirname string) ([]Bundle, error) {
	var bundles []Bundle
	entries, err := os.ReadDir(dirname)
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		filename := e.Name()
		const dotyaml = ".yaml"
		if !strings.HasSuffix(filename, dotyaml) {
			continue
		}
		testname := strings.TrimSuffix(filename, dotyaml)
		filename = filepath.Join(dirname, filename)
		et, err := FromYAMLFile(filename)
		bundles = append(bundles, Bundle{testname, filename, et, err})
	}
	return bundles, nil
}

// Run runs the eqtests in the directory named dirname.  For each file
// f.yaml in the directory, Run calls FromYAMLFile to load a test and then
// runs it in a subtest named f.
func Run(t *testing.T, dirname string) {
	shellPath := ShellPath()
	bundles, err := Load(dirname)
	if err != nil {
		t.Fatal(err)
	}
	for _, b := range bundles {
		t.Run(b.TestName, func(t *testing.T) {
			t.Parallel()
			if b.Error != nil {
				t.Fatalf("%s: %s", b.FileName, b.Error)
			}
			b.Test.Run(t, shellPath, b.FileName)
		})
	}
}

type File struct {
	// Name is the name of the file with respect to the directory in
	// which the test script runs.  Name can also be stdin (for inputs)
	// or stdout or stderr (for outputs).
	Name   string  `yaml:"name"`
	Data   *string `yaml:"data,omitempty"`
	Source string  `yaml:"source,omitempty"`
	// Re is a regular expression describing the contents of the file,
	// which is only applicable to output files.
	Re string `yaml:"regexp,omitempty"`
}

func (f *File) check() error {
	if f.Data != nil && f.Source != "" {
		return fmt.Errorf("%s: must specify at most one of data or source", f.Name)
	}
	return nil
}

func (f *File) load(dir string) ([]byte, *regexp.Regexp, error) {
	if f.Data != nil {
		return []byte(*f.Data), nil, nil
	}
	if f.Source != "" {
		b, err := os.ReadFile(filepath.Join(dir, f.Source))
		return b, nil, err
	}
	if f.Re != "" {
		re, err := regexp.Compile(f.Re)
		return nil, re, err
	}
	b, err := os.ReadFile(filepath.Join(dir, f.Name))
	if err == nil {
		return b, nil, nil
	}
	if os.IsNotExist(err) {
		err = fmt.Errorf("%s: no data source", f.Name)
	}
	return nil, nil, err
}

// Test defines an eqtest.
type Test struct {
	Skip string `yaml:"skip,omitempty"`

	// For equation-style tests.
	Equation       string    `yaml:"equation,omitempty"`
	MaxOperators   int       `yaml:"max-operators,omitempty"`
	Measurements   []string  `yaml:"measurements,omitempty"`
	SingleOperator bool      `yaml:"single-operator,omitempty"`
	Alias          string    `yaml:"alias,omitempty"`
	Output         string    `yaml:"output,omitempty"`
	Fields         *[]string `yaml:"fields,omitempty"`
	Functions      *[]string `yaml:"functions,omitempty"`
	Error          string    `yaml:"error,omitempty"`

	// For script-style tests.
	Script  string   `yaml:"script,omitempty"`
	Inputs  []File   `yaml:"inputs,omitempty"`
	Outputs []File   `yaml:"outputs,omitempty"`
	Env     []string `yaml:"env,omitempty"`
}

func (e *Test) check() error {
	if e.Script != "" {
		if e.Outputs == nil {
			return errors.New("outputs field missing in a sh test")
		}
		for _, f := range e.Inputs {
			if err := f.check(); err != nil {
				return err
			}
			if f.Re != "" {
				return fmt.Errorf("%s: cannot use regexp in an input", f.Name)
			}
		}
		for _, f := range e.Outputs {
			if err := f.check(); err != nil {
				return err
			}
		}
	} else if e.Equation == "" {
		return errors.New("either an equation field or script field must be present")
	}
	return nil
}

// FromYAMLFile loads a Test from the YAML file named filename.
func FromYAMLFile(filename string) (*Test, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	d := yaml.NewDecoder(f)
	d.KnownFields(true)
	var e Test
	if err := d.Decode(&e); err != nil {
		return nil, err
	}
	var extra any
	if err := d.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, errors.New("file must contain one YAML document")
	}
	return &e, nil
}

// Options returns the parse options of an equation-style test.
func (e *Test) Options() compiler.Options {
	return compiler.Options{
		MaxOperators:           e.MaxOperators,
		CustomMeasurements:     e.Measurements,
		ValidateSingleOperator: e.SingleOperator,
	}
}

func (e *Test) ShouldSkip(path string) string {
	switch {
	case e.Script != "" && path == "":
		return "script test on in-process run"
	case e.Equation != "" && path != "":
		return "in-process test on script run"
	case e.Skip != "":
		return e.Skip
	}
	return ""
}

func (e *Test) RunScript(ctx context.Context, shellPath, testDir, tempDir string) error {
	if err := e.check(); err != nil {
		return fmt.Errorf("bad yaml format: %w", err)
	}
	return runsh(ctx, shellPath, testDir, tempDir, e)
}

func (e *Test) RunInternal() error {
	if err := e.check(); err != nil {
		return fmt.Errorf("bad yaml format: %w", err)
	}
	eq, err := compiler.Parse(e.Equation, e.Options())
	var out string
	var errs []error
	if err == nil {
		b, jerr := json.Marshal(eq.JSON(e.Alias))
		if jerr != nil {
			return jerr
		}
		out = string(b) + "\n"
		if e.Fields != nil {
			errs = append(errs, diffList("fields", *e.Fields, eq.Fields))
		}
		if e.Functions != nil {
			errs = append(errs, diffList("functions", *e.Functions, eq.Functions))
		}
	}
	return errors.Join(append(errs, e.diffInternal(out, err))...)
}

func (e *Test) diffInternal(out string, err error) error {
	var outDiffErr, errDiffErr error
	if e.Output != out {
		outDiffErr = diffErr("output", e.Output, out)
	}
	var errStr string
	if err != nil {
		errStr = strings.TrimSuffix(err.Error(), "\n") + "\n"
	}
	if e.Error != errStr {
		errDiffErr = diffErr("error", e.Error, errStr)
	}
	return errors.Join(outDiffErr, errDiffErr)
}

func (e *Test) Run(t *testing.T, path, filename string) {
	if msg := e.ShouldSkip(path); msg != "" {
		t.Skip("skipping test:", msg)
	}
	var err error
	if e.Script != "" {
		err = e.RunScript(t.Context(), path, filepath.Dir(filename), t.TempDir())
	} else {
		err = e.RunInternal()
	}
	if err != nil {
		t.Fatalf("%s: %s", filename, err)
	}
}

func diffList(name string, expected, actual []string) error {
	e := strings.Join(expected, "\n")
	a := strings.Join(actual, "\n")
	if e == a {
		return nil
	}
	return diffErr(name, e+"\n", a+"\n")
}

func diffErr(name, expected, actual string) error {
	if !utf8.ValidString(expected) {
		expected = hex.Dump([]byte(expected))
		actual = hex.Dump([]byte(actual))
	}
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(expected),
		FromFile: "expected",
		B:        difflib.SplitLines(actual),
		ToFile:   "actual",
		Context:  5,
	})
	if err != nil {
		panic("eqtest: " + err.Error())
	}
	return fmt.Errorf("expected and actual %s differ:\n%s", name, diff)
}

func runsh(ctx context.Context, path, testDir, tempDir string, et *Test) error {
	var stdin io.Reader
	for _, f := range et.Inputs {
		b, _, err := f.load(testDir)
		if err != nil {
			return err
		}
		if f.Name == "stdin" {
			stdin = bytes.NewReader(b)
			continue
		}
		if err := os.WriteFile(filepath.Join(tempDir, f.Name), b, 0644); err != nil {
			return err
		}
	}
	stdout, stderr, err := RunShell(ctx, tempDir, path, et.Script, stdin, et.Env)
	if err != nil {
		return fmt.Errorf("script failed: %w\n=== stdout ===\n%s=== stderr ===\n%s",
			err, stdout, stderr)
	}
	for _, f := range et.Outputs {
		var actual string
		switch f.Name {
		case "stdout":
			actual = stdout
		case "stderr":
			actual = stderr
		default:
			b, err := os.ReadFile(filepath.Join(tempDir, f.Name))
			if err != nil {
				return fmt.Errorf("%s: %w", f.Name, err)
			}
			actual = string(b)
		}
		expected, expectedRE, err := f.load(testDir)
		if err != nil {
			return err
		}
		if expected != nil && string(expected) != actual {
			return diffErr(f.Name, string(expected), actual)
		}
		if expectedRE != nil && !expectedRE.MatchString(actual) {
			return fmt.Errorf("%s: regexp %q does not match %q", f.Name, expectedRE, actual)
		}
	}
	return nil
}
