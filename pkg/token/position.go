// Package token provides source positions and spans shared by the lexer,
// the segment tree and diagnostics.
package token

import (
	"fmt"
	"sort"
	"unicode/utf8"
)

// Position represents a location in the source code.
type Position struct {
	Line   int // 1-based line number
	Column int // 1-based column number, counted in runes
	Offset int // 0-based byte offset
}

// IsValid returns true if the position is valid (line > 0).
func (p Position) IsValid() bool {
	return p.Line > 0
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Span represents a range in source code.
type Span struct {
	Start Position
	End   Position
}

// Contains returns true if the span contains the given offset.
func (s Span) Contains(offset int) bool {
	return offset >= s.Start.Offset && offset < s.End.Offset
}

// IsValid returns true if both start and end positions are valid.
func (s Span) IsValid() bool {
	return s.Start.IsValid() && s.End.IsValid()
}

// Range is a half-open byte range [Start, End) into a text.
type Range struct {
	Start int
	End   int
}

// Len returns the number of bytes covered.
func (r Range) Len() int { return r.End - r.Start }

// Empty reports whether the range covers no bytes.
func (r Range) Empty() bool { return r.End <= r.Start }

// Overlaps reports whether two non-empty ranges share at least one byte.
func (r Range) Overlaps(o Range) bool {
	return r.Start < o.End && o.Start < r.End
}

// ContainsPoint reports whether p lies strictly inside the range.
// Points on either boundary are outside.
func (r Range) ContainsPoint(p int) bool {
	return r.Start < p && p < r.End
}

func (r Range) String() string {
	return fmt.Sprintf("[%d,%d)", r.Start, r.End)
}

// LineIndex converts byte offsets of a fixed text into line/column positions.
type LineIndex struct {
	text  string
	lines []int // byte offset of the first byte of each line
}

// NewLineIndex indexes the line starts of text.
func NewLineIndex(text string) *LineIndex {
	lines := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			lines = append(lines, i+1)
		}
	}
	return &LineIndex{text: text, lines: lines}
}

// Position returns the position of a byte offset. Offsets past the end of
// the text are clamped to the end.
func (li *LineIndex) Position(offset int) Position {
	if offset < 0 {
		offset = 0
	}
	if offset > len(li.text) {
		offset = len(li.text)
	}
	line := sort.Search(len(li.lines), func(i int) bool { return li.lines[i] > offset }) - 1
	col := utf8.RuneCountInString(li.text[li.lines[line]:offset]) + 1
	return Position{Line: line + 1, Column: col, Offset: offset}
}

// Span returns the span covering a byte range.
func (li *LineIndex) Span(r Range) Span {
	return Span{Start: li.Position(r.Start), End: li.Position(r.End)}
}

// LineCount returns the number of lines in the text.
func (li *LineIndex) LineCount() int { return len(li.lines) }
