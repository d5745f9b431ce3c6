package grammar

import (
	"strings"

	"github.com/leapstack-labs/leaplint/pkg/segment"
)

// builder accumulates segments for a combinator.
type builder struct {
	segs  []*segment.Segment
	clean bool
}

func newBuilder() *builder { return &builder{clean: true} }

func (b *builder) add(ctx *Context, gapFrom, gapTo int, r Result) {
	b.segs = append(b.segs, ctx.slice(gapFrom, gapTo)...)
	b.segs = append(b.segs, r.segments...)
	b.clean = b.clean && r.clean
}

func (b *builder) result(end int) Result {
	return Result{ok: true, end: end, segments: b.segs, clean: b.clean}
}

// step matches m after the gap following pos (when gaps are allowed). An
// empty match leaves the gap unconsumed.
func step(ctx *Context, m Matcher, pos int, gaps bool) (r Result, gapEnd int) {
	gapEnd = pos
	if gaps {
		gapEnd = ctx.SkipNonCode(pos)
	}
	r = m.Match(ctx, gapEnd)
	return r, gapEnd
}

type sequence struct {
	elems []Matcher
	gaps  bool
}

// Sequence matches its elements in order. Whitespace and comments between
// elements are absorbed into the match; leading and trailing ones are
// left to the caller.
func Sequence(elems ...Matcher) *sequence {
	return &sequence{elems: elems, gaps: true}
}

// NoGaps returns a copy of the sequence that forbids whitespace between
// elements.
func (s *sequence) NoGaps() *sequence {
	return &sequence{elems: s.elems, gaps: false}
}

func (s *sequence) Match(ctx *Context, pos int) Result {
	b := newBuilder()
	cur := pos
	for _, el := range s.elems {
		r, gapEnd := step(ctx, el, cur, s.gaps && cur > pos)
		if !r.ok {
			return noMatch()
		}
		if r.end == gapEnd {
			continue
		}
		b.add(ctx, cur, gapEnd, r)
		cur = r.end
	}
	return b.result(cur)
}

func (s *sequence) String() string  { return "Sequence(" + join(s.elems) + ")" }
func (s *sequence) subs() []Matcher { return s.elems }

type oneOf struct {
	elems []Matcher
}

// OneOf tries its alternatives in declaration order and returns the first
// clean match. When every alternative that matched needed recovery, the
// first of those is returned.
func OneOf(elems ...Matcher) Matcher {
	return &oneOf{elems: elems}
}

func (o *oneOf) Match(ctx *Context, pos int) Result {
	var fallback Result
	for _, el := range o.elems {
		r := el.Match(ctx, pos)
		if !r.ok {
			continue
		}
		if r.clean {
			return r
		}
		if !fallback.ok {
			fallback = r
		}
	}
	return fallback
}

func (o *oneOf) String() string  { return "OneOf(" + join(o.elems) + ")" }
func (o *oneOf) subs() []Matcher { return o.elems }

type anyNumberOf struct {
	choice Matcher
	elems  []Matcher
	min    int
	max    int
}

// AnyNumberOf matches its alternatives repeatedly, as many times as
// possible, choosing among them like OneOf on each repetition.
func AnyNumberOf(elems ...Matcher) *anyNumberOf {
	return &anyNumberOf{choice: OneOf(elems...), elems: elems}
}

// AtLeastOne matches its alternatives one or more times.
func AtLeastOne(elems ...Matcher) *anyNumberOf {
	return AnyNumberOf(elems...).Min(1)
}

// Min sets the minimum number of repetitions.
func (a *anyNumberOf) Min(n int) *anyNumberOf {
	c := *a
	c.min = n
	return &c
}

// Max sets the maximum number of repetitions; zero means unbounded.
func (a *anyNumberOf) Max(n int) *anyNumberOf {
	c := *a
	c.max = n
	return &c
}

func (a *anyNumberOf) Match(ctx *Context, pos int) Result {
	b := newBuilder()
	cur := pos
	count := 0
	for a.max == 0 || count < a.max {
		r, gapEnd := step(ctx, a.choice, cur, count > 0)
		if !r.ok || r.end == gapEnd {
			break
		}
		b.add(ctx, cur, gapEnd, r)
		cur = r.end
		count++
	}
	if count < a.min {
		return noMatch()
	}
	return b.result(cur)
}

func (a *anyNumberOf) String() string  { return "AnyNumberOf(" + join(a.elems) + ")" }
func (a *anyNumberOf) subs() []Matcher { return a.elems }

type optional struct {
	m Matcher
}

// Optional matches m, or matches nothing when m does not match.
func Optional(m Matcher) Matcher {
	return &optional{m: m}
}

func (o *optional) Match(ctx *Context, pos int) Result {
	if r := o.m.Match(ctx, pos); r.ok {
		return r
	}
	return emptyMatch(pos)
}

func (o *optional) String() string  { return "Optional(" + o.m.String() + ")" }
func (o *optional) subs() []Matcher { return []Matcher{o.m} }

type delimited struct {
	elem          Matcher
	delimiter     Matcher
	allowTrailing bool
	minDelimiters int
	gaps          bool
}

// Delimited matches one or more elements separated by delimiter, e.g. a
// comma separated column list.
func Delimited(elem, delimiter Matcher) *delimited {
	return &delimited{elem: elem, delimiter: delimiter, gaps: true}
}

// AllowTrailing accepts a delimiter after the last element.
func (d *delimited) AllowTrailing() *delimited {
	c := *d
	c.allowTrailing = true
	return &c
}

// MinDelimiters requires at least n delimiters.
func (d *delimited) MinDelimiters(n int) *delimited {
	c := *d
	c.minDelimiters = n
	return &c
}

// NoGaps forbids whitespace around delimiters.
func (d *delimited) NoGaps() *delimited {
	c := *d
	c.gaps = false
	return &c
}

func (d *delimited) Match(ctx *Context, pos int) Result {
	first := d.elem.Match(ctx, pos)
	if !first.ok || first.end == pos {
		return noMatch()
	}
	b := newBuilder()
	b.add(ctx, pos, pos, first)
	cur := first.end
	delims := 0
	for {
		dr, dGap := step(ctx, d.delimiter, cur, d.gaps)
		if !dr.ok || dr.end == dGap {
			break
		}
		er, eGap := step(ctx, d.elem, dr.end, d.gaps)
		if !er.ok || er.end == eGap {
			if d.allowTrailing {
				b.add(ctx, cur, dGap, dr)
				cur = dr.end
				delims++
			}
			break
		}
		b.add(ctx, cur, dGap, dr)
		b.add(ctx, dr.end, eGap, er)
		cur = er.end
		delims++
	}
	if delims < d.minDelimiters {
		return noMatch()
	}
	return b.result(cur)
}

func (d *delimited) String() string {
	return "Delimited(" + d.elem.String() + ", " + d.delimiter.String() + ")"
}
func (d *delimited) subs() []Matcher { return []Matcher{d.elem, d.delimiter} }

func join(ms []Matcher) string {
	parts := make([]string, len(ms))
	for i, m := range ms {
		parts[i] = m.String()
	}
	return strings.Join(parts, ", ")
}
