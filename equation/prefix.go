package equation

import (
	"regexp"
	"strconv"
	"strings"
)

// EquationPrefix marks a selected column as an equation so equations can
// be listed alongside fields and functions.
const EquationPrefix = "equation|"

var aliasRegexp = regexp.MustCompile(`^equation\[\d*\]$`)

func IsEquation(column string) bool {
	return strings.HasPrefix(column, EquationPrefix)
}

// StripEquation returns column without EquationPrefix and reports whether
// the prefix was present.
func StripEquation(column string) (string, bool) {
	return strings.CutPrefix(column, EquationPrefix)
}

// CategorizeColumns splits columns into equations, with their prefix
// removed, and everything else.
func CategorizeColumns(columns []string) ([]string, []string) {
	var equations, fields []string
	for _, c := range columns {
		if eq, ok := StripEquation(c); ok {
			equations = append(equations, eq)
		} else {
			fields = append(fields, c)
		}
	}
	return equations, fields
}

// Alias returns the alias under which the i'th equation is selected.
func Alias(i int) string {
	return "equation[" + strconv.Itoa(i) + "]"
}

// IsEquationAlias reports whether alias has the form returned by Alias.
func IsEquationAlias(alias string) bool {
	return aliasRegexp.MatchString(alias)
}
