package grammar

import (
	"github.com/leapstack-labs/leaplint/pkg/segment"
)

type recovering struct {
	elem      Matcher
	delimiter Matcher
}

// Recovering matches a delimiter separated list of elements (typically
// statements separated by semicolons) and never fails. Code that no
// element accepts is wrapped in an unparsable segment running up to the
// next delimiter outside brackets, and matching resumes there. When an
// element matches but stops short of the next delimiter, the leftover
// code is appended to the element's node as unparsable, so a single
// malformed clause yields a single unparsable segment and sibling
// elements are unaffected.
func Recovering(elem, delimiter Matcher) Matcher {
	return &recovering{elem: elem, delimiter: delimiter}
}

func (rc *recovering) Match(ctx *Context, pos int) Result {
	b := newBuilder()
	cur := pos
	for {
		next := ctx.SkipNonCode(cur)
		b.segs = append(b.segs, ctx.slice(cur, next)...)
		cur = next
		if cur >= ctx.limit {
			break
		}

		if d := rc.delimiter.Match(ctx, cur); d.ok && d.end > cur {
			b.add(ctx, cur, cur, d)
			cur = d.end
			continue
		}

		stop := rc.nextDelimiter(ctx, cur)
		r := ctx.withLimit(stop, func() Result { return rc.elem.Match(ctx, cur) })
		if !r.ok || r.end == cur {
			last := ctx.lastCodeBefore(cur, stop)
			b.segs = append(b.segs, ctx.unparsable(cur, last+1))
			b.clean = false
			cur = last + 1
			continue
		}

		rest := ctx.SkipNonCode(r.end)
		if rest >= stop {
			b.add(ctx, cur, cur, r)
			cur = r.end
			continue
		}

		// element stopped short: fold the leftover into its node
		last := ctx.lastCodeBefore(rest, stop)
		leftover := append(append([]*segment.Segment(nil), ctx.slice(r.end, rest)...), ctx.unparsable(rest, last+1))
		b.segs = append(b.segs, attach(r.segments, leftover)...)
		b.clean = false
		cur = last + 1
	}
	return b.result(cur)
}

// attach appends extra segments to the last composite of segs, or to the
// list itself when there is none.
func attach(segs, extra []*segment.Segment) []*segment.Segment {
	out := append([]*segment.Segment(nil), segs...)
	if n := len(out); n > 0 && !out[n-1].IsRaw() {
		last := out[n-1]
		out[n-1] = last.WithChildren(append(last.Children(), extra...))
		return out
	}
	return append(out, extra...)
}

// nextDelimiter returns the index of the next delimiter at bracket depth
// zero at or after pos, or the limit.
func (rc *recovering) nextDelimiter(ctx *Context, pos int) int {
	pairs := ctx.source.BracketPairs()
	depth := 0
	for i := pos; i < ctx.limit; i++ {
		if !ctx.code[i] {
			continue
		}
		raw := ctx.tokens[i].Raw()
		for _, p := range pairs {
			switch raw {
			case p.Open:
				depth++
			case p.Close:
				if depth > 0 {
					depth--
				}
			}
		}
		if depth == 0 && i > pos {
			if d := rc.delimiter.Match(ctx, i); d.ok && d.end > i {
				return i
			}
		}
	}
	return ctx.limit
}

func (rc *recovering) String() string {
	return "Recovering(" + rc.elem.String() + ", " + rc.delimiter.String() + ")"
}

func (rc *recovering) subs() []Matcher { return []Matcher{rc.elem, rc.delimiter} }
