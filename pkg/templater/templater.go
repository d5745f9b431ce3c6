// Package templater defines the slice map that relates a templated source
// file to the SQL text it renders to, and the interface templaters
// implement.
//
// Linting runs on rendered text. The slice map tells the fix applier which
// rendered bytes came verbatim from the source (literal slices) and which
// were produced by the template engine (templated slices), so fixes never
// touch generated text and can be written back to the source file.
package templater

import (
	"context"
	"errors"
	"fmt"

	"github.com/leapstack-labs/leaplint/pkg/token"
)

// ErrInvalidSliceMap reports a slice map that does not cover the source
// and rendered text contiguously.
var ErrInvalidSliceMap = errors.New("invalid slice map")

// Templater renders a source file. Implementations must return a slice map
// that covers both the source and the rendered text without gaps.
type Templater interface {
	Name() string
	Render(ctx context.Context, source, name string, vars map[string]any) (*TemplatedFile, error)
}

// SliceKind classifies a slice.
type SliceKind int

// Slice kinds.
const (
	// Literal slices render to exactly their source text.
	Literal SliceKind = iota
	// Templated slices were produced by the template engine. A templated
	// slice with an empty rendered range is source-only: a control tag or
	// a branch that was not taken.
	Templated
)

func (k SliceKind) String() string {
	if k == Literal {
		return "literal"
	}
	return "templated"
}

// Slice relates a range of the rendered text to a range of the source.
type Slice struct {
	Kind     SliceKind
	Source   token.Range
	Rendered token.Range
}

// TemplatedFile is a rendered file with its slice map.
type TemplatedFile struct {
	Name     string
	Source   string
	Rendered string
	Slices   []Slice
}

// New builds a TemplatedFile and validates its slice map.
func New(name, source, rendered string, slices []Slice) (*TemplatedFile, error) {
	tf := &TemplatedFile{Name: name, Source: source, Rendered: rendered, Slices: slices}
	if err := tf.Validate(); err != nil {
		return nil, err
	}
	return tf, nil
}

// Identity returns the templated file for a source that is not templated:
// one literal slice covering everything.
func Identity(name, source string) *TemplatedFile {
	r := token.Range{Start: 0, End: len(source)}
	tf := &TemplatedFile{Name: name, Source: source, Rendered: source}
	if len(source) > 0 {
		tf.Slices = []Slice{{Kind: Literal, Source: r, Rendered: r}}
	}
	return tf
}

// Validate checks that the slices cover source and rendered text
// contiguously, in order, and that literal slices are unchanged text.
func (tf *TemplatedFile) Validate() error {
	src, ren := 0, 0
	for i, s := range tf.Slices {
		if s.Source.Start != src || s.Rendered.Start != ren {
			return fmt.Errorf("%w: %s: slice %d starts at source %d, rendered %d; expected %d, %d",
				ErrInvalidSliceMap, tf.Name, i, s.Source.Start, s.Rendered.Start, src, ren)
		}
		if s.Source.End < s.Source.Start || s.Rendered.End < s.Rendered.Start ||
			s.Source.End > len(tf.Source) || s.Rendered.End > len(tf.Rendered) {
			return fmt.Errorf("%w: %s: slice %d is out of bounds", ErrInvalidSliceMap, tf.Name, i)
		}
		if s.Kind == Literal && tf.Source[s.Source.Start:s.Source.End] != tf.Rendered[s.Rendered.Start:s.Rendered.End] {
			return fmt.Errorf("%w: %s: literal slice %d differs from its source", ErrInvalidSliceMap, tf.Name, i)
		}
		src, ren = s.Source.End, s.Rendered.End
	}
	if src != len(tf.Source) || ren != len(tf.Rendered) {
		return fmt.Errorf("%w: %s: slices end at source %d, rendered %d; text is %d, %d bytes",
			ErrInvalidSliceMap, tf.Name, src, ren, len(tf.Source), len(tf.Rendered))
	}
	return nil
}

// IsTemplated reports whether editing the rendered range r would touch
// templated text. A non-empty range is templated when it overlaps a
// templated slice; an insertion point is templated when it falls strictly
// inside one.
func (tf *TemplatedFile) IsTemplated(r token.Range) bool {
	for _, s := range tf.Slices {
		if s.Kind != Templated || s.Rendered.Empty() {
			continue
		}
		if r.Empty() {
			if s.Rendered.ContainsPoint(r.Start) {
				return true
			}
			continue
		}
		if s.Rendered.Overlaps(r) {
			return true
		}
	}
	return false
}

// SourceOffset maps a rendered offset to the source. Offsets inside a
// templated slice map to the start of that slice's source; the end of the
// rendered text maps to the end of the source.
func (tf *TemplatedFile) SourceOffset(rendered int) int {
	for _, s := range tf.Slices {
		if rendered < s.Rendered.Start || rendered >= s.Rendered.End {
			continue
		}
		if s.Kind == Literal {
			return s.Source.Start + rendered - s.Rendered.Start
		}
		return s.Source.Start
	}
	return len(tf.Source)
}

// SourceRange maps a rendered range to the source.
func (tf *TemplatedFile) SourceRange(r token.Range) token.Range {
	start := tf.SourceOffset(r.Start)
	if r.Empty() {
		return token.Range{Start: start, End: start}
	}
	end := tf.SourceOffset(r.End - 1)
	for _, s := range tf.Slices {
		if s.Rendered.Start <= r.End-1 && r.End-1 < s.Rendered.End {
			if s.Kind == Literal {
				end++
			} else {
				end = s.Source.End
			}
			break
		}
	}
	return token.Range{Start: start, End: max(start, end)}
}
