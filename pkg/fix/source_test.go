package fix_test

import (
	"testing"

	_ "github.com/leapstack-labs/leaplint/pkg/dialects/ansi"
	"github.com/leapstack-labs/leaplint/pkg/fix"
	"github.com/leapstack-labs/leaplint/pkg/parser"
	"github.com/leapstack-labs/leaplint/pkg/segment"
	"github.com/leapstack-labs/leaplint/pkg/templater"
	"github.com/leapstack-labs/leaplint/pkg/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	source   = "SELECT {{ col }}   FROM t{* if x *} WHERE y{* endif *}\n"
	rendered = "SELECT a   FROM t WHERE y\n"
)

func sl(kind templater.SliceKind, s0, s1, r0, r1 int) templater.Slice {
	return templater.Slice{Kind: kind, Source: token.Range{Start: s0, End: s1}, Rendered: token.Range{Start: r0, End: r1}}
}

func templatedFile(t *testing.T) *templater.TemplatedFile {
	t.Helper()
	tf, err := templater.New("q.sql", source, rendered, []templater.Slice{
		sl(templater.Literal, 0, 7, 0, 7),
		sl(templater.Templated, 7, 16, 7, 8),
		sl(templater.Literal, 16, 25, 8, 17),
		sl(templater.Templated, 25, 35, 17, 17),
		sl(templater.Literal, 35, 43, 17, 25),
		sl(templater.Templated, 43, 54, 25, 25),
		sl(templater.Literal, 54, 55, 25, 26),
	})
	require.NoError(t, err)
	return tf
}

func findLeaf(t *testing.T, root *segment.Segment, raw string) *segment.Segment {
	t.Helper()
	for _, l := range segment.Leaves(root) {
		if l.Segment.Raw() == raw {
			return l.Segment
		}
	}
	t.Fatalf("no leaf %q", raw)
	return nil
}

func TestRenderSource(t *testing.T) {
	tests := []struct {
		name  string
		edits func(t *testing.T, root *segment.Segment) []*fix.Fix
		want  string
	}{
		{
			name:  "no edits",
			edits: func(*testing.T, *segment.Segment) []*fix.Fix { return nil },
			want:  source,
		},
		{
			name: "collapse spacing",
			edits: func(t *testing.T, root *segment.Segment) []*fix.Fix {
				ws := findLeaf(t, root, "   ")
				return []*fix.Fix{fix.New(fix.Replace(ws, segment.NewRaw(segment.TypeWhitespace, " ", token.Range{})))}
			},
			want: "SELECT {{ col }} FROM t{* if x *} WHERE y{* endif *}\n",
		},
		{
			name: "replace keyword",
			edits: func(t *testing.T, root *segment.Segment) []*fix.Fix {
				kw := findLeaf(t, root, "FROM")
				return []*fix.Fix{fix.New(fix.Replace(kw, segment.NewRaw(segment.TypeKeyword, "from", token.Range{})))}
			},
			want: "SELECT {{ col }}   from t{* if x *} WHERE y{* endif *}\n",
		},
		{
			name: "insert before a control tag",
			edits: func(t *testing.T, root *segment.Segment) []*fix.Fix {
				tbl := findLeaf(t, root, "t")
				return []*fix.Fix{fix.New(fix.InsertAfter(tbl, segment.NewRaw("word", "x", token.Range{})))}
			},
			want: "SELECT {{ col }}   FROM tx{* if x *} WHERE y{* endif *}\n",
		},
		{
			name: "delete trailing newline",
			edits: func(t *testing.T, root *segment.Segment) []*fix.Fix {
				return []*fix.Fix{fix.New(fix.Delete(findLeaf(t, root, "\n")))}
			},
			want: "SELECT {{ col }}   FROM t{* if x *} WHERE y{* endif *}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tf := templatedFile(t)
			res, err := parser.Parse(tf.Rendered, "ansi")
			require.NoError(t, err)
			require.True(t, res.Clean())

			out, statuses, err := fix.Apply(res.Tree, tt.edits(t, res.Tree), tf)
			require.NoError(t, err)
			for _, s := range statuses {
				assert.Equal(t, fix.StatusApplied, s)
			}
			assert.Equal(t, tt.want, fix.RenderSource(out, tf))
		})
	}
}

func TestRenderSource_Identity(t *testing.T) {
	text := "select a,b\nfrom t -- note\n"
	res, err := parser.Parse(text, "ansi")
	require.NoError(t, err)

	assert.Equal(t, text, fix.RenderSource(res.Tree, templater.Identity("q.sql", text)))
	assert.Equal(t, text, fix.RenderSource(res.Tree, nil))
}

func TestRenderSource_SecondPass(t *testing.T) {
	tf := templatedFile(t)
	res, err := parser.Parse(tf.Rendered, "ansi")
	require.NoError(t, err)

	ws := findLeaf(t, res.Tree, "   ")
	tree, _, err := fix.Apply(res.Tree, []*fix.Fix{
		fix.New(fix.Replace(ws, segment.NewRaw(segment.TypeWhitespace, "  ", token.Range{}))),
	}, tf)
	require.NoError(t, err)

	// a later pass edits a leaf created by the first one
	ws2 := findLeaf(t, tree, "  ")
	tree, statuses, err := fix.Apply(tree, []*fix.Fix{
		fix.New(fix.Replace(ws2, segment.NewRaw(segment.TypeWhitespace, " ", token.Range{}))),
	}, tf)
	require.NoError(t, err)
	assert.Equal(t, []fix.Status{fix.StatusApplied}, statuses)
	assert.Equal(t, "SELECT {{ col }} FROM t{* if x *} WHERE y{* endif *}\n", fix.RenderSource(tree, tf))
}
