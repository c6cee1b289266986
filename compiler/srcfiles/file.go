// Package srcfiles maps offsets in equation text to lines and columns and
// renders errors against the text they refer to.
package srcfiles

import (
	"sort"
)

// File holds the line offsets of a source text.
type File struct {
	Name  string
	Text  string
	lines []int
}

func NewFile(name, text string) *File {
	var lines []int
	line := 0
	for offset := 0; offset < len(text); offset++ {
		if line >= 0 {
			lines = append(lines, line)
		}
		line = -1
		if text[offset] == '\n' {
			line = offset + 1
		}
	}
	if len(lines) == 0 {
		lines = []int{0}
	}
	return &File{
		Name:  name,
		Text:  text,
		lines: lines,
	}
}

func (f *File) Position(pos int) Position {
	if pos < 0 || pos > len(f.Text) {
		return Position{-1, -1, -1}
	}
	i := searchLine(f.lines, pos)
	return Position{
		Offset: pos,
		Line:   i + 1,
		Column: pos - f.lines[i] + 1,
	}
}

func (f *File) LineOfPos(pos int) string {
	i := searchLine(f.lines, pos)
	start := f.lines[i]
	end := len(f.Text)
	if i+1 < len(f.lines) {
		end = f.lines[i+1]
	}
	b := f.Text[start:end]
	if len(b) > 0 && b[len(b)-1] == '\n' {
		b = b[:len(b)-1]
	}
	return b
}

func searchLine(lines []int, offset int) int {
	return sort.Search(len(lines), func(i int) bool { return lines[i] > offset }) - 1
}

type Position struct {
	Offset int `json:"offset"` // Byte offset in File.Text.
	Line   int `json:"line"`   // 1-based line number.
	Column int `json:"column"` // 1-based column number.
}

func (p Position) IsValid() bool { return p.Offset >= 0 }
