package srcfiles

import (
	"errors"
	"fmt"
	"strings"

	"github.com/brimdata/arith"
)

// Format renders msg followed by the line of f containing pos and a marker
// under the offending text.  If end is valid, the span from pos to end
// (inclusive) is underlined with tildes; otherwise a caret points at pos.
func (f *File) Format(msg string, pos, end int) string {
	start := f.Position(pos)
	if !start.IsValid() {
		return msg
	}
	var b strings.Builder
	b.WriteString(msg)
	if f.Name != "" {
		fmt.Fprintf(&b, " in %s", f.Name)
	}
	line := f.LineOfPos(pos)
	fmt.Fprintf(&b, " at line %d, column %d:\n%s\n", start.Line, start.Column, line)
	if stop := f.Position(end); stop.IsValid() && end >= pos {
		formatSpanError(&b, line, start, stop)
	} else {
		formatPointError(&b, start)
	}
	return b.String()
}

// Annotate renders err against f.  Errors other than *arith.Error are
// returned as their message.  A hint, if present, is appended on its own
// line.
func (f *File) Annotate(err error) string {
	return f.AnnotateAt(err, 0)
}

// AnnotateAt is like Annotate for an error in an equation beginning at
// offset in f.
func (f *File) AnnotateAt(err error, offset int) string {
	var aerr *arith.Error
	if !errors.As(err, &aerr) {
		return err.Error()
	}
	pos, end := aerr.Pos, aerr.End
	if pos >= 0 {
		pos += offset
	}
	if end >= 0 {
		end += offset
	}
	s := f.Format(aerr.Msg, pos, end)
	if aerr.Hint != "" {
		s += "\n" + aerr.Hint
	}
	return s
}

func formatSpanError(b *strings.Builder, line string, start, end Position) {
	b.WriteString(strings.Repeat(" ", start.Column-1))
	n := end.Column - start.Column + 1
	if start.Line != end.Line {
		n = len(line) - start.Column + 1
	}
	b.WriteString(strings.Repeat("~", n))
}

func formatPointError(b *strings.Builder, start Position) {
	col := start.Column - 1
	for k := range col {
		if k >= col-4 && k != col-1 {
			b.WriteByte('=')
		} else {
			b.WriteByte(' ')
		}
	}
	b.WriteString("^ ===")
}
