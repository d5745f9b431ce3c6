// Package fix applies lint fixes to a segment tree and writes the result
// back to the templated source it came from.
//
// Edits are anchored on segments by identity. A batch of fixes is applied
// at once: fixes that touch templated text are refused, overlapping fixes
// are resolved earliest-start-wins, and the surviving edits produce a new
// tree that shares every untouched subtree with the old one.
package fix

import (
	"errors"

	"github.com/leapstack-labs/leaplint/pkg/segment"
)

// ErrInvalidResult is returned when applying edits produces a tree that
// breaks a structural invariant.
var ErrInvalidResult = errors.New("fix produced an invalid tree")

// EditKind is the operation an Edit performs on its anchor.
type EditKind int

// Edit kinds.
const (
	KindReplace EditKind = iota
	KindInsertBefore
	KindInsertAfter
	KindDelete
)

func (k EditKind) String() string {
	switch k {
	case KindReplace:
		return "replace"
	case KindInsertBefore:
		return "insert_before"
	case KindInsertAfter:
		return "insert_after"
	case KindDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Edit changes the tree around one anchor segment.
type Edit struct {
	Kind     EditKind
	Anchor   *segment.Segment
	Segments []*segment.Segment
}

// Replace replaces anchor with segs.
func Replace(anchor *segment.Segment, segs ...*segment.Segment) Edit {
	return Edit{Kind: KindReplace, Anchor: anchor, Segments: segs}
}

// InsertBefore inserts segs before anchor.
func InsertBefore(anchor *segment.Segment, segs ...*segment.Segment) Edit {
	return Edit{Kind: KindInsertBefore, Anchor: anchor, Segments: segs}
}

// InsertAfter inserts segs after anchor.
func InsertAfter(anchor *segment.Segment, segs ...*segment.Segment) Edit {
	return Edit{Kind: KindInsertAfter, Anchor: anchor, Segments: segs}
}

// Delete removes anchor.
func Delete(anchor *segment.Segment) Edit {
	return Edit{Kind: KindDelete, Anchor: anchor}
}

// Fix is the set of edits resolving one violation. Its edits are applied
// together or not at all.
type Fix struct {
	Edits []Edit
}

// New groups edits into a Fix.
func New(edits ...Edit) *Fix {
	return &Fix{Edits: edits}
}

// Status records what happened to a violation's fix.
type Status int

// Fix statuses.
const (
	StatusNone        Status = iota // no fix offered
	StatusFixable                   // fix offered, not applied
	StatusApplied                   // fix applied
	StatusConflict                  // lost to an overlapping fix
	StatusTemplated                 // touches templated text
	StatusStale                     // anchor no longer in the tree
	StatusInvalid                   // edits the root, or has no edits
	StatusBreaksParse               // reverted because it introduced parse errors
)

func (s Status) String() string {
	switch s {
	case StatusNone:
		return ""
	case StatusFixable:
		return "fixable"
	case StatusApplied:
		return "applied"
	case StatusConflict:
		return "skipped: conflicting fix"
	case StatusTemplated:
		return "unfixable: templated region"
	case StatusStale:
		return "skipped: stale anchor"
	case StatusInvalid:
		return "unfixable: invalid edit"
	case StatusBreaksParse:
		return "skipped: fix would introduce parse errors"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
