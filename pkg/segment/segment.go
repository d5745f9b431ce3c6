// Package segment provides the immutable, position-tracked tree produced by
// the grammar engine and consumed by lint rules and the fix applier.
//
// A segment is either a raw leaf holding one lexer token, or a composite
// holding ordered children. Segments never change after construction:
// edits build a new root that shares every untouched subtree with the old
// one. Segments store their length rather than absolute offsets, so shared
// subtrees stay valid when text before them grows or shrinks; absolute
// offsets are computed while walking from the root.
//
// Every leaf also records its origin: the byte range of the originally
// parsed text it was produced from. Leaves created by fixes carry a
// zero-length origin at the point they were inserted. Origins stay fixed
// across edits and are what template slice maps are consulted with.
package segment

import (
	"strings"

	"github.com/leapstack-labs/leaplint/pkg/token"
)

// Kind distinguishes raw leaves from composites.
type Kind uint8

// Segment kinds.
const (
	KindRaw Kind = iota
	KindComposite
)

func (k Kind) String() string {
	if k == KindRaw {
		return "raw"
	}
	return "composite"
}

// Well-known segment types. Dialects are free to introduce more.
const (
	TypeFile          = "file"
	TypeStatement     = "statement"
	TypeWhitespace    = "whitespace"
	TypeNewline       = "newline"
	TypeInlineComment = "inline_comment"
	TypeBlockComment  = "block_comment"
	TypeUnlexable     = "unlexable"
	TypeUnparsable    = "unparsable"
	TypeKeyword       = "keyword"
	TypeWord          = "word"
	TypeIdentifier    = "identifier"
	TypeSymbol        = "symbol"
)

// Segment is a node of the parse tree. The zero value is not usable; build
// segments with NewRaw and NewComposite.
type Segment struct {
	kind     Kind
	typ      string
	raw      string
	children []*Segment
	origin   token.Range
}

// NewRaw creates a leaf segment for one token.
func NewRaw(typ, raw string, origin token.Range) *Segment {
	return &Segment{kind: KindRaw, typ: typ, raw: raw, origin: origin}
}

// NewComposite creates a composite segment. The children slice is copied.
func NewComposite(typ string, children []*Segment) *Segment {
	kids := make([]*Segment, len(children))
	copy(kids, children)

	var sb strings.Builder
	for _, c := range kids {
		sb.WriteString(c.raw)
	}
	return &Segment{
		kind:     KindComposite,
		typ:      typ,
		raw:      sb.String(),
		children: kids,
		origin:   spanOrigins(kids),
	}
}

// spanOrigins returns the smallest range covering all child origins.
// Childless composites carry no origin and are skipped.
func spanOrigins(children []*Segment) token.Range {
	var r token.Range
	seen := false
	for _, c := range children {
		if c.kind == KindComposite && len(c.children) == 0 {
			continue
		}
		if !seen {
			r, seen = c.origin, true
			continue
		}
		if c.origin.Start < r.Start {
			r.Start = c.origin.Start
		}
		if c.origin.End > r.End {
			r.End = c.origin.End
		}
	}
	return r
}

// WithType returns a copy of s carrying a different type tag.
func (s *Segment) WithType(typ string) *Segment {
	return &Segment{kind: s.kind, typ: typ, raw: s.raw, children: s.children, origin: s.origin}
}

// WithChildren returns a composite with the same type as s and new children.
func (s *Segment) WithChildren(children []*Segment) *Segment {
	return NewComposite(s.typ, children)
}

// WithOrigin returns a copy of a raw segment anchored at a different origin.
func (s *Segment) WithOrigin(origin token.Range) *Segment {
	return &Segment{kind: s.kind, typ: s.typ, raw: s.raw, children: s.children, origin: origin}
}

// Kind returns whether s is a leaf or a composite.
func (s *Segment) Kind() Kind { return s.kind }

// Type returns the type tag.
func (s *Segment) Type() string { return s.typ }

// Raw returns the exact text covered by s.
func (s *Segment) Raw() string { return s.raw }

// Len returns the length of Raw in bytes.
func (s *Segment) Len() int { return len(s.raw) }

// Origin returns the range of the originally parsed text s came from.
func (s *Segment) Origin() token.Range { return s.origin }

// NumChildren returns the number of direct children.
func (s *Segment) NumChildren() int { return len(s.children) }

// Child returns the i-th child.
func (s *Segment) Child(i int) *Segment { return s.children[i] }

// Children returns a copy of the direct children.
func (s *Segment) Children() []*Segment {
	out := make([]*Segment, len(s.children))
	copy(out, s.children)
	return out
}

// IsRaw reports whether s is a leaf.
func (s *Segment) IsRaw() bool { return s.kind == KindRaw }

// Is reports whether s has any of the given types.
func (s *Segment) Is(types ...string) bool {
	for _, t := range types {
		if s.typ == t {
			return true
		}
	}
	return false
}

// IsWhitespace reports whether s is a whitespace or newline leaf.
func (s *Segment) IsWhitespace() bool {
	return s.kind == KindRaw && (s.typ == TypeWhitespace || s.typ == TypeNewline)
}

// IsNewline reports whether s is a newline leaf.
func (s *Segment) IsNewline() bool {
	return s.kind == KindRaw && s.typ == TypeNewline
}

// IsComment reports whether s is a comment leaf.
func (s *Segment) IsComment() bool {
	return s.kind == KindRaw && (s.typ == TypeInlineComment || s.typ == TypeBlockComment)
}

// IsCode reports whether s carries code. A composite is code when any of
// its descendants is.
func (s *Segment) IsCode() bool {
	if s.kind == KindRaw {
		return !s.IsWhitespace() && !s.IsComment()
	}
	for _, c := range s.children {
		if c.IsCode() {
			return true
		}
	}
	return false
}

// IsUnparsable reports whether s wraps text the grammar could not match.
func (s *Segment) IsUnparsable() bool { return s.typ == TypeUnparsable }

// String renders s as "type: raw" for debugging.
func (s *Segment) String() string {
	return s.typ + ": " + quote(s.raw)
}

func quote(s string) string {
	r := strings.NewReplacer("\n", `\n`, "\t", `\t`, "\r", `\r`)
	return "'" + r.Replace(s) + "'"
}

// Serialize flattens the tree back to text. For any tree produced by
// parsing, Serialize(tree) equals the parsed text byte for byte.
func Serialize(root *Segment) string {
	if root == nil {
		return ""
	}
	return root.raw
}
