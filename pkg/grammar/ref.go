package grammar

import "github.com/leapstack-labs/leaplint/pkg/segment"

type ref struct {
	name string
}

// Ref matches the production registered under name in the context's rule
// source. Resolution is deferred to match time, so a dialect overriding
// the rule changes every grammar that references it. Results are memoized
// per (rule, offset) for the duration of one parse, and a rule re-entered
// at the same offset before its first attempt finishes does not match,
// which cuts left recursion.
func Ref(name string) Matcher {
	return &ref{name: name}
}

func (r *ref) Match(ctx *Context, pos int) Result {
	key := memoKey{rule: r.name, pos: pos, limit: ctx.limit}
	if e, ok := ctx.memo[key]; ok {
		if e.inProgress {
			return noMatch()
		}
		return e.res
	}
	m, ok := ctx.source.Rule(r.name)
	if !ok {
		ctx.fail(undefined(r.name))
		return noMatch()
	}
	if ctx.depth >= ctx.maxDepth {
		return noMatch()
	}

	ctx.memo[key] = memoEntry{inProgress: true}
	ctx.depth++
	res := m.Match(ctx, pos)
	ctx.depth--
	ctx.memo[key] = memoEntry{res: res}
	return res
}

func (r *ref) String() string { return r.name }

// Name returns the referenced rule name.
func (r *ref) Name() string { return r.name }

type node struct {
	typ string
	m   Matcher
}

// Node wraps whatever m matches in a composite segment of type typ. An
// empty match produces no segment.
func Node(typ string, m Matcher) Matcher {
	return &node{typ: typ, m: m}
}

func (n *node) Match(ctx *Context, pos int) Result {
	r := n.m.Match(ctx, pos)
	if !r.ok || r.end == pos {
		return r
	}
	return Result{
		ok:       true,
		end:      r.end,
		segments: []*segment.Segment{segment.NewComposite(n.typ, r.segments)},
		clean:    r.clean,
	}
}

func (n *node) String() string  { return n.typ }
func (n *node) subs() []Matcher { return []Matcher{n.m} }
