package parser_test

import (
	"bufio"
	"os"
	"testing"

	"github.com/brimdata/arith"
	"github.com/brimdata/arith/compiler/ast"
	"github.com/brimdata/arith/compiler/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValid(t *testing.T) {
	file, err := os.Open("valid.eq")
	require.NoError(t, err)
	defer file.Close()
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		_, err := parser.ParseEquation(line)
		assert.NoError(t, err, "equation: %q", line)
	}
	require.NoError(t, scanner.Err())
}

func TestInvalid(t *testing.T) {
	file, err := os.Open("invalid.eq")
	require.NoError(t, err)
	defer file.Close()
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		_, err := parser.ParseEquation(line)
		assert.ErrorIs(t, err, arith.ErrParse, "equation: %q", line)
	}
	require.NoError(t, scanner.Err())
}

func TestEmpty(t *testing.T) {
	_, err := parser.ParseEquation("")
	assert.ErrorIs(t, err, arith.ErrParse)
	assert.EqualError(t, err, "Unable to parse your equation, make sure it is well formed arithmetic")
}

func TestLeftAssociativeChain(t *testing.T) {
	a, err := parser.ParseEquation("10 - 5 - 2")
	require.NoError(t, err)
	chain, ok := a.Parsed().(*ast.Chain)
	require.True(t, ok)
	assert.Equal(t, "10", chain.First.(*ast.Number).Text)
	require.Len(t, chain.Rest, 2)
	assert.Equal(t, "-", chain.Rest[0].Op)
	assert.Equal(t, "5", chain.Rest[0].RHS.(*ast.Number).Text)
	assert.Equal(t, "-", chain.Rest[1].Op)
	assert.Equal(t, "2", chain.Rest[1].RHS.(*ast.Number).Text)
}

func TestPrecedence(t *testing.T) {
	a, err := parser.ParseEquation("2 + 3 * 4")
	require.NoError(t, err)
	chain := a.Parsed().(*ast.Chain)
	assert.Equal(t, "2", chain.First.(*ast.Number).Text)
	require.Len(t, chain.Rest, 1)
	factor, ok := chain.Rest[0].RHS.(*ast.Chain)
	require.True(t, ok)
	assert.Equal(t, "3", factor.First.(*ast.Number).Text)
	assert.Equal(t, "*", factor.Rest[0].Op)
	assert.Equal(t, "4", factor.Rest[0].RHS.(*ast.Number).Text)
}

func TestSinglePrimary(t *testing.T) {
	a, err := parser.ParseEquation("  transaction.duration  ")
	require.NoError(t, err)
	field, ok := a.Parsed().(*ast.Field)
	require.True(t, ok)
	assert.Equal(t, "transaction.duration", field.Name)
	assert.Equal(t, ast.NewLoc(2, 21), field.Loc)
}

func TestDivideSign(t *testing.T) {
	a, err := parser.ParseEquation("6 ÷ 3")
	require.NoError(t, err)
	chain := a.Parsed().(*ast.Chain)
	assert.Equal(t, "/", chain.Rest[0].Op)
}

func TestCall(t *testing.T) {
	a, err := parser.ParseEquation(`count_if( http.method , equals, "GET \"x\"" )`)
	require.NoError(t, err)
	call, ok := a.Parsed().(*ast.Call)
	require.True(t, ok)
	assert.Equal(t, "count_if", call.Name)
	assert.Equal(t, []string{"http.method", "equals", `"GET \"x\""`}, call.Args)
	assert.Equal(t, `count_if( http.method , equals, "GET \"x\"" )`, call.Text)
}

func TestParens(t *testing.T) {
	a, err := parser.ParseEquation("(1 + 2) * 3")
	require.NoError(t, err)
	chain := a.Parsed().(*ast.Chain)
	paren, ok := chain.First.(*ast.Paren)
	require.True(t, ok)
	assert.Equal(t, ast.NewLoc(0, 6), paren.Loc)
	inner := paren.Expr.(*ast.Chain)
	assert.Equal(t, "+", inner.Rest[0].Op)
}

func TestErrorPosition(t *testing.T) {
	_, err := parser.ParseEquation("1 + + 2")
	var aerr *arith.Error
	require.ErrorAs(t, err, &aerr)
	assert.Equal(t, 5, aerr.Pos)

	_, err = parser.ParseEquation("1 + 2)")
	require.ErrorAs(t, err, &aerr)
	assert.Equal(t, 5, aerr.Pos)
}

func TestDeepNesting(t *testing.T) {
	const depth = 200
	text := ""
	for range depth {
		text += "("
	}
	text += "1"
	for range depth {
		text += ")"
	}
	_, err := parser.ParseEquation(text)
	assert.NoError(t, err)
}
