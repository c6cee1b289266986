package main

import (
	"bytes"
	"os"
	"path/filepath"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	r := newArith()
	var out bytes.Buffer
	r.Cobra.SetOut(&out)
	r.Cobra.SetErr(&out)
	r.Cobra.SetArgs(append([]string{"--log-level", "error"}, args...))
	err := r.Cobra.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, data string) string {
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))
	return path
}

func TestParse(t *testing.T) {
	out, err := run(t, "parse", "--pretty", "0", "spans.db / 2")
	require.NoError(t, err)
	assert.Equal(t, `{"query":["divide",[["toFloat64",["spans.db"]],2]],"fields":["spans.db"],"functions":[],"operators":1}`+"\n", out)
}

func TestParseAlias(t *testing.T) {
	out, err := run(t, "parse", "--pretty", "0", "--alias", "equation[0]", "count() * 2")
	require.NoError(t, err)
	assert.Equal(t, `{"query":["multiply",[["toFloat64",["count()"]],2],"equation[0]"],"fields":[],"functions":["count()"],"operators":1}`+"\n", out)
}

func TestParseCanonical(t *testing.T) {
	out, err := run(t, "parse", "-C", "(10 - 5) - (2 ÷ 1)")
	require.NoError(t, err)
	assert.Equal(t, "10 - 5 - 2 / 1\n", out)
}

func TestParseText(t *testing.T) {
	out, err := run(t, "parse", "-f", "text", "2 + 3 * 4")
	require.NoError(t, err)
	assert.Equal(t, "[plus, 2.0, [multiply, 3.0, 4.0]]\nfields: []\nfunctions: []\noperators: 2\n", out)
}

func TestParseAST(t *testing.T) {
	out, err := run(t, "parse", "--ast", "1 + 2")
	require.NoError(t, err)
	assert.Contains(t, out, "&ast.Chain{")
	assert.Contains(t, out, `"2"`)
}

func TestParseError(t *testing.T) {
	_, err := run(t, "parse", "foo.bar + 1")
	assert.EqualError(t, err, "foo.bar not allowed in arithmetic at line 1, column 1:\nfoo.bar + 1\n~~~~~~~")
}

func TestParseMaxOperators(t *testing.T) {
	_, err := run(t, "parse", "--max-operators", "1", "1 + 2 + 3")
	assert.ErrorContains(t, err, "Exceeded maximum number of operations")
}

func TestParseConfig(t *testing.T) {
	config := writeFile(t, "arith.yaml", "custom_measurements: [measurements.custom]\ncache_size: 0\n")
	out, err := run(t, "--config", config, "parse", "--pretty", "0", "measurements.custom * 2")
	require.NoError(t, err)
	assert.Contains(t, out, `"fields":["measurements.custom"]`)

	bad := writeFile(t, "bad.yaml", "max_operators: -1\n")
	_, err = run(t, "--config", bad, "parse", "1 + 1")
	assert.ErrorContains(t, err, "loading configuration")
}

func TestParseOutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	out, err := run(t, "parse", "--pretty", "0", "-o", path, "count() * 2")
	require.NoError(t, err)
	assert.Empty(t, out)
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `{"query":["multiply",[["toFloat64",["count()"]],2]],"fields":[],"functions":["count()"],"operators":1}`+"\n", string(b))
}

func TestOutputFileWriteError(t *testing.T) {
	if _, err := os.Stat("/dev/full"); err != nil {
		t.Skip("no /dev/full")
	}
	_, err := run(t, "parse", "-o", "/dev/full", "count() * 2")
	assert.ErrorIs(t, err, syscall.ENOSPC)
	_, err = run(t, "resolve", "-o", "/dev/full", "count()", "equation|count() * 2")
	assert.ErrorIs(t, err, syscall.ENOSPC)
}

func TestResolve(t *testing.T) {
	out, err := run(t, "resolve", "--pretty", "0", "--auto-add", "transaction.duration", "equation|transaction.duration + measurements.lcp")
	require.NoError(t, err)
	assert.Equal(t, `{"columns":["transaction.duration","measurements.lcp"],"equations":[{"alias":"equation[0]","query":["plus",[["toFloat64",["transaction.duration"]],"measurements.lcp"],"equation[0]"],"contains_functions":false}]}`+"\n", out)

	_, err = run(t, "resolve", "transaction.duration", "equation|transaction.duration + measurements.lcp")
	assert.EqualError(t, err, "measurements.lcp used in an equation but is not a selected field")
}

func TestResolveText(t *testing.T) {
	out, err := run(t, "resolve", "-f", "text", "count()", "equation|count() / 2", "equation|count() * 2")
	require.NoError(t, err)
	assert.Equal(t, "columns: [count()]\nequation[0]: [divide, count(), 2.0]\nequation[1]: [multiply, count(), 2.0]\n", out)
}

func TestCheck(t *testing.T) {
	path := writeFile(t, "eqs.txt", "# equations\ncount() * 2\nspans.db / 0\n\ncount() / 2\n")
	out, err := run(t, "check", "-v", "--metrics", path)
	assert.EqualError(t, err, "1 of 3 equations failed")
	assert.Contains(t, out, "ok   "+path+":2\t"+`["multiply",[["toFloat64",["count()"]],2]]`+"\n")
	assert.Contains(t, out, "FAIL "+path+":3\n    division by 0 is not allowed in "+path+" at line 3, column 10:\n    spans.db / 0\n")
	assert.Contains(t, out, "ok   "+path+":5\t"+`["divide",[["toFloat64",["count()"]],2]]`+"\n")
	assert.Contains(t, out, `arith_equations_total{result="ok"} 2`)
	assert.Contains(t, out, `arith_equations_total{result="validation_error"} 1`)
}

func TestCheckPasses(t *testing.T) {
	path := writeFile(t, "eqs.txt", "count() * 2\nspans.db - 1\n")
	out, err := run(t, "check", "-I", path)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestCheckNoFiles(t *testing.T) {
	_, err := run(t, "check")
	assert.EqualError(t, err, "no equation files specified")
}
