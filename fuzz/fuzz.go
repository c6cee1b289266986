// Package fuzz generates equations from fuzzer input and checks properties
// that must hold for every equation.
package fuzz

import (
	"bytes"
	"errors"
	"io"
	"strconv"
	"strings"
	"testing"

	"github.com/brimdata/arith"
	"github.com/brimdata/arith/compiler"
	"github.com/brimdata/arith/compiler/semantic"
	"github.com/brimdata/arith/compiler/sfmt"
	"github.com/stretchr/testify/require"
)

var (
	fields    = semantic.Names()[:len(semantic.FieldAllowlist)]
	functions = []string{"count()", "avg(transaction.duration)", "p95(transaction.duration)", "count_unique(user)", `count_if(release, equals, "a b")`}
	operators = []string{" + ", " - ", " * ", " / ", "÷", "+", "-"}
)

// GenEquation returns an equation of at most depth levels of parentheses
// built from b.  Fields and functions are never mixed in one equation.
func GenEquation(b *bytes.Reader, depth int) string {
	useFunctions := GenByte(b)&1 == 1
	var sb strings.Builder
	genTerm(b, &sb, depth, useFunctions)
	return sb.String()
}

func genTerm(b *bytes.Reader, sb *strings.Builder, depth int, useFunctions bool) {
	n := int(GenByte(b)%4) + 1
	for i := range n {
		if i > 0 {
			sb.WriteString(operators[int(GenByte(b))%len(operators)])
		}
		genPrimary(b, sb, depth, useFunctions)
	}
}

func genPrimary(b *bytes.Reader, sb *strings.Builder, depth int, useFunctions bool) {
	switch c := GenByte(b); {
	case c%4 == 0 && depth > 0:
		sb.WriteString("(")
		genTerm(b, sb, depth-1, useFunctions)
		sb.WriteString(")")
	case c%4 == 1:
		// Literal zero divisors are avoided so most equations validate.
		sb.WriteString(strconv.Itoa(int(GenByte(b)) + 1))
	case useFunctions:
		sb.WriteString(functions[int(GenByte(b))%len(functions)])
	default:
		sb.WriteString(fields[int(GenByte(b))%len(fields)])
	}
}

// CheckError fails t unless err is nil or an *arith.Error.
func CheckError(t testing.TB, err error) {
	if err == nil {
		return
	}
	var aerr *arith.Error
	require.True(t, errors.As(err, &aerr), "unexpected error type %T: %s", err, err)
	require.ErrorIs(t, err, arith.ErrArithmetic)
}

// CheckBoomerang checks that an equation's canonical text parses to the
// same lowering as the equation.
func CheckBoomerang(t testing.TB, text string, opts compiler.Options) {
	baseline, err := compiler.Parse(text, opts)
	CheckError(t, err)
	if err != nil {
		return
	}
	canon := sfmt.Operation(baseline.Root)
	boomerang, err := compiler.Parse(canon, opts)
	require.NoError(t, err, "equation %q canonical text %q", text, canon)
	require.Equal(t, baseline.JSON(""), boomerang.JSON(""), "equation %q canonical text %q", text, canon)
}

func GenByte(b *bytes.Reader) byte {
	// If we're out of bytes, return 0.
	byte, err := b.ReadByte()
	if err != nil && !errors.Is(err, io.EOF) {
		panic(err)
	}
	return byte
}

func GenBytes(b *bytes.Reader, n int) []byte {
	bytes := make([]byte, n)
	for i := range bytes {
		bytes[i] = GenByte(b)
	}
	return bytes
}

func GenAscii(b *bytes.Reader) string {
	var bytes []byte
	for {
		byte := GenByte(b)
		if byte == 0 {
			break
		}
		bytes = append(bytes, byte)
	}
	return string(bytes)
}
