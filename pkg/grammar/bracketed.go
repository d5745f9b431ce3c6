package grammar

import (
	"fmt"

	"github.com/leapstack-labs/leaplint/pkg/segment"
)

// Segment types produced by Bracketed.
const (
	TypeBracketed    = "bracketed"
	TypeStartBracket = "start_bracket"
	TypeEndBracket   = "end_bracket"
)

type bracketed struct {
	kind    string
	content Matcher
}

// Bracketed matches content enclosed in a bracket pair of the given kind
// ("round", "square", ...). Content is matched only against the tokens
// between the opener and its matching closer.
//
// Recovery: when the content does not match, or leaves code unmatched
// before the closer, the unmatched tokens are wrapped as unparsable inside
// the bracketed node. An opener that is never closed produces a single
// unparsable segment running to the end of the input. Both outcomes are
// reported as unclean so alternatives that match cleanly win.
func Bracketed(kind string, content Matcher) Matcher {
	return &bracketed{kind: kind, content: content}
}

// RoundBracketed is Bracketed("round", content).
func RoundBracketed(content Matcher) Matcher {
	return Bracketed("round", content)
}

func (b *bracketed) pair(ctx *Context) (BracketPair, bool) {
	for _, p := range ctx.source.BracketPairs() {
		if p.Kind == b.kind {
			return p, true
		}
	}
	return BracketPair{}, false
}

func (b *bracketed) Match(ctx *Context, pos int) Result {
	pair, ok := b.pair(ctx)
	if !ok || !ctx.IsCode(pos) || ctx.Token(pos).Raw() != pair.Open {
		return noMatch()
	}

	closeIdx := ctx.matchingClose(pos, pair)
	if closeIdx < 0 || closeIdx >= ctx.limit {
		end := ctx.limit
		last := ctx.lastCodeBefore(pos, end)
		return Result{
			ok:       true,
			end:      last + 1,
			segments: []*segment.Segment{ctx.unparsable(pos, last+1)},
			clean:    false,
		}
	}

	open := ctx.Token(pos).WithType(TypeStartBracket)
	closer := ctx.Token(closeIdx).WithType(TypeEndBracket)

	inner := b.matchContent(ctx, pos+1, closeIdx)

	children := make([]*segment.Segment, 0, len(inner.segments)+2)
	children = append(children, open)
	children = append(children, inner.segments...)
	children = append(children, closer)
	return Result{
		ok:       true,
		end:      closeIdx + 1,
		segments: []*segment.Segment{segment.NewComposite(TypeBracketed, children)},
		clean:    inner.clean,
	}
}

// matchContent matches the tokens in [from, to) and always accounts for
// every one of them.
func (b *bracketed) matchContent(ctx *Context, from, to int) Result {
	return ctx.withLimit(to, func() Result {
		bld := newBuilder()
		start := ctx.SkipNonCode(from)
		cur := from
		if start < to {
			r := b.content.Match(ctx, start)
			if r.ok && r.end > start {
				bld.add(ctx, cur, start, r)
				cur = r.end
			}
		}
		// anything left before the closer that is code could not be matched
		rest := ctx.SkipNonCode(cur)
		if rest < to {
			last := ctx.lastCodeBefore(rest, to)
			bld.segs = append(bld.segs, ctx.slice(cur, rest)...)
			bld.segs = append(bld.segs, ctx.unparsable(rest, last+1))
			bld.clean = false
			cur = last + 1
		}
		bld.segs = append(bld.segs, ctx.slice(cur, to)...)
		return bld.result(to)
	})
}

func (b *bracketed) String() string {
	return fmt.Sprintf("Bracketed[%s](%s)", b.kind, b.content)
}

func (b *bracketed) subs() []Matcher { return []Matcher{b.content} }
