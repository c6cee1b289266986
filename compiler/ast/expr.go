package ast

type Expr interface {
	Node
	exprNode()
}

type (
	// A Chain is a left-associative sequence of operators of the same
	// precedence tier, i.e., "a + b - c" or "a * b / c".  Rest is never
	// empty since the parser returns First by itself when there are
	// no operators.
	Chain struct {
		Kind  string      `json:"kind"`
		First Expr        `json:"first"`
		Rest  []ChainElem `json:"rest"`
		Loc   `json:"loc"`
	}
	// Paren is a parenthesized term.
	Paren struct {
		Kind string `json:"kind"`
		Expr Expr   `json:"expr"`
		Loc  `json:"loc"`
	}
	// Number is a numeric literal as it appeared in the source.
	Number struct {
		Kind string `json:"kind"`
		Text string `json:"text"`
		Loc  `json:"loc"`
	}
	Field struct {
		Kind string `json:"kind"`
		Name string `json:"name"`
		Loc  `json:"loc"`
	}
	// A Call is an aggregate function call.  Args holds the raw text of
	// each argument, quotes included, since arguments are opaque at this
	// layer.  Text is the exact source text of the call.
	Call struct {
		Kind string   `json:"kind"`
		Name string   `json:"name"`
		Args []string `json:"args"`
		Text string   `json:"text"`
		Loc  `json:"loc"`
	}
)

// ChainElem is one "operator operand" step of a Chain.  Op is one of
// "+", "-", "*", or "/".
type ChainElem struct {
	Op  string `json:"op"`
	RHS Expr   `json:"rhs"`
	Loc `json:"loc"`
}

func (*Chain) exprNode()  {}
func (*Paren) exprNode()  {}
func (*Number) exprNode() {}
func (*Field) exprNode()  {}
func (*Call) exprNode()   {}
