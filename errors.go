package arith

import "fmt"

// Kind discriminates the three classes of arithmetic errors.
type Kind int

const (
	// KindParse means the equation does not conform to the grammar.
	KindParse Kind = iota + 1
	// KindMaxOperators means the operator ceiling was exceeded.
	KindMaxOperators
	// KindValidation means the equation is well formed but semantically
	// rejected (unknown field or function, division by zero, mixing
	// fields and functions, missing operator, unselected reference).
	KindValidation
)

func (k Kind) String() string {
	switch k {
	case KindParse:
		return "parse error"
	case KindMaxOperators:
		return "max operators error"
	case KindValidation:
		return "validation error"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Sentinels for use with errors.Is.  ErrArithmetic matches every *Error
// while the others match only errors of their kind.
var (
	ErrArithmetic   = &Error{Msg: "arithmetic error"}
	ErrParse        = &Error{Kind: KindParse, Msg: "parse error"}
	ErrMaxOperators = &Error{Kind: KindMaxOperators, Msg: "max operators error"}
	ErrValidation   = &Error{Kind: KindValidation, Msg: "validation error"}
)

// Error is the error type returned for any caller-correctable problem with
// an equation.  Msg is suitable for direct display to the author of the
// equation.  Pos and End delimit the offending text (End is inclusive) or
// are -1 when the error is not tied to a location.  Hint is an optional
// suggestion, e.g., a near-miss allow-listed name.
type Error struct {
	Kind Kind
	Msg  string
	Pos  int
	End  int
	Hint string
}

func NewError(kind Kind, msg string, pos, end int) *Error {
	return &Error{Kind: kind, Msg: msg, Pos: pos, End: end}
}

func Errorf(kind Kind, pos, end int, format string, args ...any) *Error {
	return NewError(kind, fmt.Sprintf(format, args...), pos, end)
}

func (e *Error) Error() string {
	return e.Msg
}

func (e *Error) Is(target error) bool {
	switch target {
	case ErrArithmetic:
		return true
	case ErrParse, ErrMaxOperators, ErrValidation:
		return e.Kind == target.(*Error).Kind
	}
	return false
}
