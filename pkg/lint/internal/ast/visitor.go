// Package ast provides segment tree traversal utilities for lint rules.
package ast

import (
	"github.com/leapstack-labs/leaplint/pkg/segment"
)

// Walk traverses a tree depth-first, skipping the contents of unparsable
// segments. If fn returns false, the children of that node are skipped.
func Walk(tree *segment.Segment, fn func(v segment.Visit) bool) {
	segment.Walk(tree, func(v segment.Visit) bool {
		if v.Segment.IsUnparsable() {
			return false
		}
		return fn(v)
	})
}

// ParsedLeaves returns the leaves outside unparsable segments, in order.
func ParsedLeaves(tree *segment.Segment) []segment.Leaf {
	var out []segment.Leaf
	Walk(tree, func(v segment.Visit) bool {
		if v.Segment.IsRaw() {
			out = append(out, segment.Leaf{Segment: v.Segment, Start: v.Start})
		}
		return true
	})
	return out
}

// CollectLeaves returns the parsed leaves of the given types.
func CollectLeaves(tree *segment.Segment, types ...string) []segment.Leaf {
	var out []segment.Leaf
	for _, l := range ParsedLeaves(tree) {
		if l.Segment.Is(types...) {
			out = append(out, l)
		}
	}
	return out
}

// IsLayout reports whether a leaf is whitespace or a newline.
func IsLayout(s *segment.Segment) bool {
	return s.IsWhitespace() || s.IsNewline()
}

// SplitTrailing splits leaves at the trailing run of layout leaves. The
// run is empty when the last leaf is not layout; body is empty when every
// leaf is layout.
func SplitTrailing(leaves []segment.Leaf) (body, trailing []segment.Leaf) {
	i := len(leaves)
	for i > 0 && IsLayout(leaves[i-1].Segment) {
		i--
	}
	return leaves[:i], leaves[i:]
}
