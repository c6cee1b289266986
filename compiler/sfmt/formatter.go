// Package sfmt formats equation syntax trees and operator trees as
// canonical equation text.
package sfmt

import (
	"fmt"
	"strings"
)

type formatter struct {
	strings.Builder
}

func (f *formatter) write(args ...any) {
	if len(args) == 1 {
		f.WriteString(args[0].(string))
		return
	}
	fmt.Fprintf(&f.Builder, args[0].(string), args[1:]...)
}

func (f *formatter) maybewrite(s string, ok bool) {
	if ok {
		f.WriteString(s)
	}
}

func precedence(op string) int {
	switch op {
	case "*", "/":
		return 1
	case "+", "-":
		return 2
	default:
		return 100
	}
}
