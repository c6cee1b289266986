package equation_test

import (
	"testing"

	"github.com/brimdata/arith"
	"github.com/brimdata/arith/compiler"
	"github.com/brimdata/arith/equation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveAutoAdd(t *testing.T) {
	selected := []string{"transaction.duration"}
	columns, parsed, err := equation.ResolveEquationList(
		[]string{"transaction.duration + measurements.lcp"},
		selected,
		equation.Options{AutoAdd: true},
	)
	require.NoError(t, err)
	assert.Equal(t, []string{"transaction.duration", "measurements.lcp"}, columns)
	assert.Equal(t, []string{"transaction.duration"}, selected)
	require.Len(t, parsed, 1)
	assert.False(t, parsed[0].ContainsFunctions)
	assert.Equal(t, "[plus, transaction.duration, measurements.lcp]", parsed[0].Equation.String())
}

func TestResolveMissingField(t *testing.T) {
	_, _, err := equation.ResolveEquationList(
		[]string{"transaction.duration + measurements.lcp"},
		[]string{"transaction.duration"},
		equation.Options{},
	)
	assert.ErrorIs(t, err, arith.ErrValidation)
	assert.EqualError(t, err, "measurements.lcp used in an equation but is not a selected field")
}

func TestResolveMissingFunction(t *testing.T) {
	_, _, err := equation.ResolveEquationList(
		[]string{"count() / p95(transaction.duration)"},
		[]string{"count()"},
		equation.Options{},
	)
	assert.EqualError(t, err, "p95(transaction.duration) used in an equation but is not a selected function")
}

func TestResolveAutoAddOnce(t *testing.T) {
	columns, parsed, err := equation.ResolveEquationList(
		[]string{"count() * 2", "count() / count_unique(user)", "count() + 1"},
		nil,
		equation.Options{AutoAdd: true},
	)
	require.NoError(t, err)
	assert.Equal(t, []string{"count()", "count_unique(user)"}, columns)
	require.Len(t, parsed, 3)
	for _, p := range parsed {
		assert.True(t, p.ContainsFunctions)
	}
	assert.Equal(t, "[divide, count(), count_unique(user)]", parsed[1].Equation.String())
}

func TestResolvePlainMath(t *testing.T) {
	_, _, err := equation.ResolveEquationList([]string{"1 + 2"}, nil, equation.Options{})
	assert.ErrorIs(t, err, arith.ErrValidation)
	assert.EqualError(t, err, "Equations need to include a field or function")

	columns, parsed, err := equation.ResolveEquationList([]string{"1 + 2"}, []string{"count()"}, equation.Options{PlainMath: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"count()"}, columns)
	require.Len(t, parsed, 1)
	assert.False(t, parsed[0].ContainsFunctions)
}

func TestResolveAggregatesOnly(t *testing.T) {
	_, _, err := equation.ResolveEquationList(
		[]string{"spans.db * 2"},
		[]string{"spans.db"},
		equation.Options{AggregatesOnly: true},
	)
	assert.EqualError(t, err, "Only equations on aggregate functions are supported")
}

func TestResolveRequiresOperator(t *testing.T) {
	_, _, err := equation.ResolveEquationList([]string{"count()"}, []string{"count()"}, equation.Options{})
	assert.ErrorIs(t, err, arith.ErrValidation)
	assert.EqualError(t, err, "Arithmetic expression must contain at least 1 operator")
}

func TestResolveCustomMeasurements(t *testing.T) {
	opts := equation.Options{
		AutoAdd:            true,
		CustomMeasurements: []string{"measurements.custom"},
	}
	columns, _, err := equation.ResolveEquationList([]string{"measurements.custom / 1000"}, nil, opts)
	require.NoError(t, err)
	assert.Equal(t, []string{"measurements.custom"}, columns)
}

func TestResolveStopsAtFirstError(t *testing.T) {
	columns, parsed, err := equation.ResolveEquationList(
		[]string{"spans.db + 1", "5 / 0", "spans.http + 1"},
		nil,
		equation.Options{AutoAdd: true},
	)
	assert.ErrorIs(t, err, arith.ErrValidation)
	assert.EqualError(t, err, "division by 0 is not allowed")
	assert.Nil(t, columns)
	assert.Nil(t, parsed)
}

func TestResolveWithCompiler(t *testing.T) {
	c, err := compiler.NewCompiler(compiler.WithCacheSize(8))
	require.NoError(t, err)
	opts := equation.Options{AutoAdd: true, Compiler: c}
	for range 2 {
		columns, parsed, err := equation.ResolveEquationList([]string{"spans.db - spans.http"}, nil, opts)
		require.NoError(t, err)
		assert.Equal(t, []string{"spans.db", "spans.http"}, columns)
		assert.Equal(t, arith.Query{"minus", []any{[]any{"toFloat64", []any{"spans.db"}}, "spans.http"}}, parsed[0].Equation.JSON(""))
	}
}

func TestResolveDecomposedColumn(t *testing.T) {
	const decomposed = "count_unique(\"e\u0301\")"
	columns, parsed, err := equation.ResolveEquationList(
		[]string{decomposed + " * 2"},
		[]string{decomposed},
		equation.Options{},
	)
	require.NoError(t, err)
	assert.Equal(t, []string{decomposed}, columns)
	require.Len(t, parsed, 1)

	columns, _, err = equation.ResolveEquationList(
		[]string{decomposed + " * 2", decomposed + " / 2"},
		nil,
		equation.Options{AutoAdd: true},
	)
	require.NoError(t, err)
	assert.Equal(t, []string{decomposed}, columns)
}
