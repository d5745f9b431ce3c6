package segment

import (
	"errors"
	"fmt"
	"strings"

	"github.com/leapstack-labs/leaplint/pkg/token"
)

// Visit describes a segment reached during a walk.
type Visit struct {
	Segment *Segment
	Start   int        // absolute byte offset of Segment in the walked tree
	Parents []*Segment // ancestors from the root down to the direct parent
	Index   int        // position of Segment among its parent's children, -1 for the root
}

// Range returns the absolute byte range covered by the visited segment.
func (v Visit) Range() token.Range {
	return token.Range{Start: v.Start, End: v.Start + v.Segment.Len()}
}

// Parent returns the direct parent, or nil for the root.
func (v Visit) Parent() *Segment {
	if len(v.Parents) == 0 {
		return nil
	}
	return v.Parents[len(v.Parents)-1]
}

// Walk visits root and its descendants in pre-order. Returning false from
// fn skips the children of the visited segment. The Parents slice is reused
// between calls; copy it to retain it.
func Walk(root *Segment, fn func(v Visit) bool) {
	if root == nil {
		return
	}
	parents := make([]*Segment, 0, 16)
	walk(root, 0, -1, &parents, fn)
}

func walk(s *Segment, start, index int, parents *[]*Segment, fn func(v Visit) bool) {
	if !fn(Visit{Segment: s, Start: start, Parents: *parents, Index: index}) {
		return
	}
	if s.kind != KindComposite {
		return
	}
	*parents = append(*parents, s)
	off := start
	for i, c := range s.children {
		walk(c, off, i, parents, fn)
		off += c.Len()
	}
	*parents = (*parents)[:len(*parents)-1]
}

// Locate finds target by identity. The returned Visit owns its Parents.
func Locate(root, target *Segment) (Visit, bool) {
	var found Visit
	ok := false
	Walk(root, func(v Visit) bool {
		if ok {
			return false
		}
		if v.Segment == target {
			found = v
			found.Parents = append([]*Segment(nil), v.Parents...)
			ok = true
			return false
		}
		return true
	})
	return found, ok
}

// Leaf is a raw segment with its absolute offset.
type Leaf struct {
	Segment *Segment
	Start   int
}

// Leaves returns every raw segment of the tree in order.
func Leaves(root *Segment) []Leaf {
	var out []Leaf
	Walk(root, func(v Visit) bool {
		if v.Segment.kind == KindRaw {
			out = append(out, Leaf{Segment: v.Segment, Start: v.Start})
		}
		return true
	})
	return out
}

// FindAll returns every segment whose type is one of types, in pre-order.
// The returned visits own their Parents.
func FindAll(root *Segment, types ...string) []Visit {
	var out []Visit
	Walk(root, func(v Visit) bool {
		if v.Segment.Is(types...) {
			v.Parents = append([]*Segment(nil), v.Parents...)
			out = append(out, v)
		}
		return true
	})
	return out
}

// Count returns the number of segments whose type is one of types.
func Count(root *Segment, types ...string) int {
	n := 0
	Walk(root, func(v Visit) bool {
		if v.Segment.Is(types...) {
			n++
		}
		return true
	})
	return n
}

// ErrInvalidTree is returned by Validate when a tree breaks a structural invariant.
var ErrInvalidTree = errors.New("invalid segment tree")

// Validate checks the structural invariants of a tree: no nil children, a
// composite's text is exactly the concatenation of its children, and no
// segment appears twice.
func Validate(root *Segment) error {
	if root == nil {
		return fmt.Errorf("%w: nil root", ErrInvalidTree)
	}
	seen := make(map[*Segment]struct{})
	var err error
	Walk(root, func(v Visit) bool {
		if err != nil {
			return false
		}
		s := v.Segment
		if _, dup := seen[s]; dup {
			err = fmt.Errorf("%w: segment %s appears twice", ErrInvalidTree, s)
			return false
		}
		seen[s] = struct{}{}
		if s.kind == KindRaw {
			return true
		}
		var sb strings.Builder
		for i, c := range s.children {
			if c == nil {
				err = fmt.Errorf("%w: nil child %d of %s", ErrInvalidTree, i, s.typ)
				return false
			}
			sb.WriteString(c.raw)
		}
		if sb.String() != s.raw {
			err = fmt.Errorf("%w: %s text does not match its children", ErrInvalidTree, s.typ)
			return false
		}
		return true
	})
	return err
}

// Format renders the tree one segment per line, indented by depth, with
// line:column positions. Useful for debugging and the parse command.
func Format(root *Segment) string {
	return FormatFunc(root, nil)
}

// FormatFunc is Format for the segments keep accepts. Positions stay
// those of the full tree. A nil keep accepts everything.
func FormatFunc(root *Segment, keep func(*Segment) bool) string {
	li := token.NewLineIndex(root.Raw())
	var sb strings.Builder
	Walk(root, func(v Visit) bool {
		if keep != nil && !keep(v.Segment) {
			return true
		}
		pos := li.Position(v.Start)
		fmt.Fprintf(&sb, "[L:%3d, P:%3d] | %s%s:", pos.Line, pos.Column,
			strings.Repeat("    ", len(v.Parents)), v.Segment.typ)
		if v.Segment.kind == KindRaw {
			fmt.Fprintf(&sb, " %s", quote(v.Segment.raw))
		}
		sb.WriteByte('\n')
		return true
	})
	return sb.String()
}
