package fix

import (
	"fmt"
	"sort"

	"github.com/leapstack-labs/leaplint/pkg/segment"
	"github.com/leapstack-labs/leaplint/pkg/templater"
	"github.com/leapstack-labs/leaplint/pkg/token"
)

// located is an edit resolved against the current tree.
type located struct {
	edit      Edit
	rng       token.Range // affected range in the current tree; empty for inserts
	ancestors map[*segment.Segment]struct{}
}

// Apply applies a batch of fixes to root and returns the new tree with one
// status per fix, in the order given.
//
// A fix is refused when any edit touches text produced by the template
// engine according to tf; tf may be nil for untemplated text. Remaining
// fixes are taken in order of their earliest edit, ties going to the fix
// listed first, and a fix is skipped when it overlaps one already taken.
// Segments inserted by edits are copied and anchored at a zero-length
// origin, so a segment may be reused across edits.
func Apply(root *segment.Segment, fixes []*Fix, tf *templater.TemplatedFile) (*segment.Segment, []Status, error) {
	statuses := make([]Status, len(fixes))
	visits := locateAnchors(root, fixes)

	type candidate struct {
		index int
		start int
		edits []located
	}
	var cands []candidate

	for i, f := range fixes {
		if f == nil || len(f.Edits) == 0 {
			statuses[i] = StatusInvalid
			continue
		}
		c := candidate{index: i, start: -1}
		for _, e := range f.Edits {
			v, ok := visits[e.Anchor]
			if !ok {
				statuses[i] = StatusStale
				break
			}
			if v.Index < 0 {
				statuses[i] = StatusInvalid
				break
			}
			if tf != nil && tf.IsTemplated(originRange(e)) {
				statuses[i] = StatusTemplated
				break
			}
			l := located{edit: e, rng: editRange(e, v), ancestors: make(map[*segment.Segment]struct{}, len(v.Parents))}
			for _, p := range v.Parents {
				l.ancestors[p] = struct{}{}
			}
			if c.start < 0 || l.rng.Start < c.start {
				c.start = l.rng.Start
			}
			c.edits = append(c.edits, l)
		}
		if statuses[i] == StatusNone {
			cands = append(cands, c)
		}
	}

	sort.SliceStable(cands, func(a, b int) bool { return cands[a].start < cands[b].start })

	var accepted []located
	for _, c := range cands {
		if conflictsWith(c.edits, accepted) {
			statuses[c.index] = StatusConflict
			continue
		}
		accepted = append(accepted, c.edits...)
		statuses[c.index] = StatusApplied
	}
	if len(accepted) == 0 {
		return root, statuses, nil
	}

	ops := make(map[*segment.Segment]*anchorOps)
	for _, l := range accepted {
		op := ops[l.edit.Anchor]
		if op == nil {
			op = &anchorOps{}
			ops[l.edit.Anchor] = op
		}
		origin := l.edit.Anchor.Origin()
		switch l.edit.Kind {
		case KindReplace:
			op.replaced = true
			op.with = relocateAll(l.edit.Segments, origin.Start)
		case KindDelete:
			op.replaced = true
			op.with = nil
		case KindInsertBefore:
			op.before = append(op.before, relocateAll(l.edit.Segments, origin.Start)...)
		case KindInsertAfter:
			op.after = append(op.after, relocateAll(l.edit.Segments, origin.End)...)
		}
	}

	out, _ := rebuild(root, ops)
	if len(out) != 1 {
		return nil, nil, fmt.Errorf("%w: root expanded to %d segments", ErrInvalidResult, len(out))
	}
	if err := segment.Validate(out[0]); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrInvalidResult, err)
	}
	return out[0], statuses, nil
}

// locateAnchors finds every anchor named by fixes in a single walk.
func locateAnchors(root *segment.Segment, fixes []*Fix) map[*segment.Segment]segment.Visit {
	want := make(map[*segment.Segment]struct{})
	for _, f := range fixes {
		if f == nil {
			continue
		}
		for _, e := range f.Edits {
			want[e.Anchor] = struct{}{}
		}
	}
	found := make(map[*segment.Segment]segment.Visit, len(want))
	segment.Walk(root, func(v segment.Visit) bool {
		if _, ok := want[v.Segment]; ok {
			v.Parents = append([]*segment.Segment(nil), v.Parents...)
			found[v.Segment] = v
		}
		return true
	})
	return found
}

func editRange(e Edit, v segment.Visit) token.Range {
	r := v.Range()
	switch e.Kind {
	case KindInsertBefore:
		return token.Range{Start: r.Start, End: r.Start}
	case KindInsertAfter:
		return token.Range{Start: r.End, End: r.End}
	default:
		return r
	}
}

// originRange is the range of originally rendered text an edit touches.
func originRange(e Edit) token.Range {
	o := e.Anchor.Origin()
	switch e.Kind {
	case KindInsertBefore:
		return token.Range{Start: o.Start, End: o.Start}
	case KindInsertAfter:
		return token.Range{Start: o.End, End: o.End}
	default:
		return o
	}
}

func conflictsWith(edits, accepted []located) bool {
	for _, e := range edits {
		for _, a := range accepted {
			if clash(e, a) {
				return true
			}
		}
	}
	return false
}

// clash reports whether two edits from different fixes interfere: they
// share an anchor, one anchor contains the other, or their ranges meet.
func clash(x, y located) bool {
	if x.edit.Anchor == y.edit.Anchor {
		return true
	}
	if _, ok := x.ancestors[y.edit.Anchor]; ok {
		return true
	}
	if _, ok := y.ancestors[x.edit.Anchor]; ok {
		return true
	}
	switch {
	case x.rng.Empty() && y.rng.Empty():
		return x.rng.Start == y.rng.Start
	case x.rng.Empty():
		return y.rng.ContainsPoint(x.rng.Start)
	case y.rng.Empty():
		return x.rng.ContainsPoint(y.rng.Start)
	default:
		return x.rng.Overlaps(y.rng)
	}
}

type anchorOps struct {
	before   []*segment.Segment
	after    []*segment.Segment
	replaced bool
	with     []*segment.Segment
}

// rebuild returns the segments s turns into. Unchanged subtrees are
// returned as is.
func rebuild(s *segment.Segment, ops map[*segment.Segment]*anchorOps) ([]*segment.Segment, bool) {
	op := ops[s]

	self := []*segment.Segment{s}
	changed := false
	switch {
	case op != nil && op.replaced:
		self, changed = op.with, true
	case !s.IsRaw():
		var kids []*segment.Segment
		for i := range s.NumChildren() {
			out, ch := rebuild(s.Child(i), ops)
			kids = append(kids, out...)
			changed = changed || ch
		}
		if changed {
			self = []*segment.Segment{s.WithChildren(kids)}
		}
	}

	if op == nil || (len(op.before) == 0 && len(op.after) == 0) {
		return self, changed
	}
	out := make([]*segment.Segment, 0, len(op.before)+len(self)+len(op.after))
	out = append(out, op.before...)
	out = append(out, self...)
	out = append(out, op.after...)
	return out, true
}

func relocateAll(segs []*segment.Segment, at int) []*segment.Segment {
	out := make([]*segment.Segment, len(segs))
	for i, s := range segs {
		out[i] = relocate(s, at)
	}
	return out
}

// relocate deep-copies s with every leaf anchored at a zero-length origin.
func relocate(s *segment.Segment, at int) *segment.Segment {
	p := token.Range{Start: at, End: at}
	if s.IsRaw() {
		return segment.NewRaw(s.Type(), s.Raw(), p)
	}
	kids := s.Children()
	for i, c := range kids {
		kids[i] = relocate(c, at)
	}
	return segment.NewComposite(s.Type(), kids)
}
