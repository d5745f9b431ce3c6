package template

import (
	"maps"
	"strings"

	starctx "github.com/leapstack-labs/leaplint/internal/starlark"
	"github.com/leapstack-labs/leaplint/pkg/templater"
	"github.com/leapstack-labs/leaplint/pkg/token"
	"go.starlark.net/starlark"
)

// Renderer evaluates a parsed Template and records the slice map.
//
// Top-level text and the text of taken if branches render as literal
// slices. Each expression and each whole for loop renders as one templated
// slice. The tags of an if block and its untaken branches are templated
// slices with no rendered text.
type Renderer struct {
	ctx    *starctx.ExecutionContext
	file   string
	out    strings.Builder
	slices []templater.Slice
}

// NewRenderer creates a renderer for one template.
func NewRenderer(ctx *starctx.ExecutionContext, file string) *Renderer {
	return &Renderer{ctx: ctx, file: file}
}

// Render parses and renders input, returning the rendered file with its
// slice map.
func Render(input, file string, ctx *starctx.ExecutionContext) (*templater.TemplatedFile, error) {
	tmpl, err := ParseString(input, file)
	if err != nil {
		return nil, err
	}
	r := NewRenderer(ctx, file)
	if err := r.renderNodes(tmpl.Nodes, nil, &r.out, true); err != nil {
		return nil, err
	}
	return templater.New(file, input, r.out.String(), r.slices)
}

// RenderString renders input and returns only the rendered text.
func RenderString(input, file string, ctx *starctx.ExecutionContext) (string, error) {
	tf, err := Render(input, file, ctx)
	if err != nil {
		return "", err
	}
	return tf.Rendered, nil
}

func (r *Renderer) emit(kind templater.SliceKind, srcStart, srcEnd, outStart, outEnd int) {
	if srcStart == srcEnd && outStart == outEnd {
		return
	}
	r.slices = append(r.slices, templater.Slice{
		Kind:     kind,
		Source:   token.Range{Start: srcStart, End: srcEnd},
		Rendered: token.Range{Start: outStart, End: outEnd},
	})
}

// renderNodes writes nodes to out. Slices are recorded only when track is
// set; loop bodies are covered by the slice of their loop.
func (r *Renderer) renderNodes(nodes []Node, locals starlark.StringDict, out *strings.Builder, track bool) error {
	for _, node := range nodes {
		start := out.Len()
		switch n := node.(type) {
		case *TextNode:
			out.WriteString(n.Text)
			if track {
				r.emit(templater.Literal, n.pos.Offset, n.end, start, out.Len())
			}
		case *ExprNode:
			v, err := r.ctx.EvalExprStringWithLocals(n.Expr, r.file, n.pos.Line, locals)
			if err != nil {
				return renderError(n.pos, err, "expression failed")
			}
			out.WriteString(v)
			if track {
				r.emit(templater.Templated, n.pos.Offset, n.end, start, out.Len())
			}
		case *ForBlock:
			if err := r.renderFor(n, locals, out); err != nil {
				return err
			}
			if track {
				r.emit(templater.Templated, n.pos.Offset, n.end, start, out.Len())
			}
		case *IfBlock:
			if err := r.renderIf(n, locals, out, track); err != nil {
				return err
			}
		default:
			return renderError(node.Pos(), nil, "unexpected node %T", node)
		}
	}
	return nil
}

func (r *Renderer) renderFor(n *ForBlock, locals starlark.StringDict, out *strings.Builder) error {
	seq, err := r.ctx.EvalExprWithLocals(n.IterExpr, r.file, n.pos.Line, locals)
	if err != nil {
		return renderError(n.pos, err, "for iterator failed")
	}
	iter := starlark.Iterate(seq)
	if iter == nil {
		return renderError(n.pos, nil, "cannot iterate over %s", seq.Type())
	}
	defer iter.Done()

	scope := make(starlark.StringDict, len(locals)+1)
	maps.Copy(scope, locals)

	var x starlark.Value
	for iter.Next(&x) {
		scope[n.VarName] = x
		if err := r.renderNodes(n.Body, scope, out, false); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) renderIf(n *IfBlock, locals starlark.StringDict, out *strings.Builder, track bool) error {
	arms := n.arms()
	taken := -1
	for i, a := range arms {
		if a.isElse {
			taken = i
			break
		}
		v, err := r.ctx.EvalExprWithLocals(a.cond, r.file, a.pos.Line, locals)
		if err != nil {
			return renderError(a.pos, err, "if condition failed")
		}
		if v.Truth() {
			taken = i
			break
		}
	}

	if !track {
		if taken < 0 {
			return nil
		}
		return r.renderNodes(arms[taken].body, locals, out, false)
	}

	at := out.Len()
	if taken < 0 {
		r.emit(templater.Templated, n.pos.Offset, n.end, at, at)
		return nil
	}
	a := arms[taken]
	r.emit(templater.Templated, n.pos.Offset, a.tagEnd, at, at)
	if err := r.renderNodes(a.body, locals, out, true); err != nil {
		return err
	}
	at = out.Len()
	r.emit(templater.Templated, a.bodyEnd, n.end, at, at)
	return nil
}
