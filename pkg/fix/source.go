package fix

import (
	"sort"
	"strings"

	"github.com/leapstack-labs/leaplint/pkg/segment"
	"github.com/leapstack-labs/leaplint/pkg/templater"
)

// piece is either original rendered text still present in the tree, or
// text inserted by a fix at a point of the original rendered text.
type piece struct {
	start, end int // original rendered range; start is the insertion point for inserted text
	text       string
	inserted   bool
}

// RenderSource rebuilds the source file of tf from a fixed tree.
//
// Original text still present in the tree is copied from the source
// through the slice map. Templated slices are copied verbatim once,
// including source-only slices such as control tags, and text inserted by
// fixes is emitted where it was inserted. Without edits the result is
// tf.Source byte for byte. A nil tf returns the serialized tree.
func RenderSource(root *segment.Segment, tf *templater.TemplatedFile) string {
	if tf == nil {
		return segment.Serialize(root)
	}

	var orig, ins []piece
	for _, l := range segment.Leaves(root) {
		o := l.Segment.Origin()
		switch {
		case !o.Empty():
			orig = append(orig, piece{start: o.Start, end: o.End})
		case l.Segment.Len() > 0:
			ins = append(ins, piece{start: o.Start, end: o.Start, text: l.Segment.Raw(), inserted: true})
		}
	}
	sort.SliceStable(ins, func(i, j int) bool { return ins[i].start < ins[j].start })

	var sb strings.Builder
	sb.Grow(len(tf.Source))

	// flush emits inserted text at points before limit, or up to and
	// including limit when inclusive.
	flush := func(limit int, inclusive bool) {
		for len(ins) > 0 && (ins[0].start < limit || inclusive && ins[0].start == limit) {
			sb.WriteString(ins[0].text)
			ins = ins[1:]
		}
	}

	for _, s := range tf.Slices {
		rs, re := s.Rendered.Start, s.Rendered.End

		if s.Kind == templater.Templated {
			flush(rs, true)
			sb.WriteString(tf.Source[s.Source.Start:s.Source.End])
			for len(orig) > 0 && orig[0].start < re {
				if orig[0].end > re {
					orig[0].start = re
					break
				}
				orig = orig[1:]
			}
			continue
		}

		for len(orig) > 0 && orig[0].start < re {
			p := &orig[0]
			flush(p.start, true)
			start, end := max(p.start, rs), min(p.end, re)
			sb.WriteString(tf.Source[s.Source.Start+start-rs : s.Source.Start+end-rs])
			if p.end > re {
				p.start = re
				break
			}
			orig = orig[1:]
		}
		flush(re, false)
	}
	for _, p := range ins {
		sb.WriteString(p.text)
	}
	return sb.String()
}
