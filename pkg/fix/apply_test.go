package fix

import (
	"testing"

	"github.com/leapstack-labs/leaplint/pkg/segment"
	"github.com/leapstack-labs/leaplint/pkg/templater"
	"github.com/leapstack-labs/leaplint/pkg/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func leaf(typ, raw string, start int) *segment.Segment {
	return segment.NewRaw(typ, raw, token.Range{Start: start, End: start + len(raw)})
}

func space(raw string) *segment.Segment {
	return segment.NewRaw(segment.TypeWhitespace, raw, token.Range{})
}

// selectTree builds "SELECT   1".
func selectTree() (root, kw, ws, lit, stmt *segment.Segment) {
	kw = leaf(segment.TypeKeyword, "SELECT", 0)
	ws = leaf(segment.TypeWhitespace, "   ", 6)
	lit = leaf("numeric_literal", "1", 9)
	stmt = segment.NewComposite(segment.TypeStatement, []*segment.Segment{kw, ws, lit})
	root = segment.NewComposite(segment.TypeFile, []*segment.Segment{stmt})
	return
}

func TestApply_Replace(t *testing.T) {
	root, kw, ws, lit, _ := selectTree()

	out, statuses, err := Apply(root, []*Fix{New(Replace(ws, space(" ")))}, nil)
	require.NoError(t, err)
	assert.Equal(t, []Status{StatusApplied}, statuses)
	assert.Equal(t, "SELECT 1", segment.Serialize(out))
	assert.Equal(t, "SELECT   1", segment.Serialize(root), "input tree is unchanged")

	leaves := segment.Leaves(out)
	require.Len(t, leaves, 3)
	assert.Same(t, kw, leaves[0].Segment, "untouched leaves are shared")
	assert.Same(t, lit, leaves[2].Segment)
	assert.Equal(t, token.Range{Start: 6, End: 6}, leaves[1].Segment.Origin(), "new leaf sits at the replaced origin")
}

func TestApply_InsertAndDelete(t *testing.T) {
	root, kw, ws, lit, _ := selectTree()

	out, statuses, err := Apply(root, []*Fix{
		New(Delete(ws), InsertAfter(kw, space(" "))),
		New(InsertAfter(lit, segment.NewRaw(segment.TypeNewline, "\n", token.Range{}))),
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, []Status{StatusApplied, StatusApplied}, statuses)
	assert.Equal(t, "SELECT 1\n", segment.Serialize(out))
	assert.NoError(t, segment.Validate(out))
}

func TestApply_ReusedSegmentIsCopied(t *testing.T) {
	root, kw, _, lit, _ := selectTree()
	sp := space(" ")

	out, _, err := Apply(root, []*Fix{
		New(InsertBefore(kw, sp)),
		New(InsertAfter(lit, sp)),
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, " SELECT   1 ", segment.Serialize(out))
	assert.NoError(t, segment.Validate(out), "each insertion is a distinct segment")
}

func TestApply_Conflicts(t *testing.T) {
	tests := []struct {
		name  string
		fixes func(kw, ws, lit, stmt *segment.Segment) []*Fix
		want  []Status
	}{
		{
			name: "earliest start wins",
			fixes: func(kw, ws, lit, stmt *segment.Segment) []*Fix {
				return []*Fix{
					New(Replace(lit, leaf("numeric_literal", "2", 0))),
					New(Replace(stmt, leaf("word", "x", 0))),
				}
			},
			want: []Status{StatusConflict, StatusApplied},
		},
		{
			name: "same anchor, first listed wins",
			fixes: func(kw, ws, lit, stmt *segment.Segment) []*Fix {
				return []*Fix{
					New(Replace(ws, space(" "))),
					New(Delete(ws)),
				}
			},
			want: []Status{StatusApplied, StatusConflict},
		},
		{
			name: "inserts at the same point",
			fixes: func(kw, ws, lit, stmt *segment.Segment) []*Fix {
				return []*Fix{
					New(InsertAfter(kw, space(" "))),
					New(InsertBefore(ws, space(" "))),
				}
			},
			want: []Status{StatusApplied, StatusConflict},
		},
		{
			name: "insert at boundary of a replaced range",
			fixes: func(kw, ws, lit, stmt *segment.Segment) []*Fix {
				return []*Fix{
					New(Replace(ws, space(" "))),
					New(InsertBefore(lit, space(" "))),
				}
			},
			want: []Status{StatusApplied, StatusApplied},
		},
		{
			name: "disjoint",
			fixes: func(kw, ws, lit, stmt *segment.Segment) []*Fix {
				return []*Fix{
					New(Replace(kw, leaf(segment.TypeKeyword, "select", 0))),
					New(Replace(ws, space(" "))),
				}
			},
			want: []Status{StatusApplied, StatusApplied},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, kw, ws, lit, stmt := selectTree()
			out, statuses, err := Apply(root, tt.fixes(kw, ws, lit, stmt), nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, statuses)
			assert.NoError(t, segment.Validate(out))
		})
	}
}

func TestApply_Refused(t *testing.T) {
	root, _, ws, _, _ := selectTree()
	stranger := leaf(segment.TypeWhitespace, " ", 0)

	out, statuses, err := Apply(root, []*Fix{
		New(Delete(stranger)),
		New(Delete(root)),
		New(),
		nil,
		New(Replace(ws, space(" "))),
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, []Status{StatusStale, StatusInvalid, StatusInvalid, StatusInvalid, StatusApplied}, statuses)
	assert.Equal(t, "SELECT 1", segment.Serialize(out))
}

func TestApply_NoFixesReturnsSameTree(t *testing.T) {
	root, _, _, _, _ := selectTree()
	out, statuses, err := Apply(root, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, statuses)
	assert.Same(t, root, out)
}

func TestApply_TemplatedRegion(t *testing.T) {
	// "SELECT {{ c }}" rendered as "SELECT a"
	tf, err := templater.New("q.sql", "SELECT {{ c }}", "SELECT a", []templater.Slice{
		{Kind: templater.Literal, Source: token.Range{Start: 0, End: 7}, Rendered: token.Range{Start: 0, End: 7}},
		{Kind: templater.Templated, Source: token.Range{Start: 7, End: 14}, Rendered: token.Range{Start: 7, End: 8}},
	})
	require.NoError(t, err)

	kw := leaf(segment.TypeKeyword, "SELECT", 0)
	ws := leaf(segment.TypeWhitespace, " ", 6)
	id := leaf("naked_identifier", "a", 7)
	root := segment.NewComposite(segment.TypeFile, []*segment.Segment{kw, ws, id})

	out, statuses, err := Apply(root, []*Fix{
		New(Replace(id, leaf("naked_identifier", "b", 0))),
		New(Replace(kw, leaf(segment.TypeKeyword, "select", 0))),
		New(InsertBefore(id, space(" "))),
	}, tf)
	require.NoError(t, err)
	assert.Equal(t, []Status{StatusTemplated, StatusApplied, StatusApplied}, statuses)
	assert.Equal(t, "select  a", segment.Serialize(out))
	assert.Equal(t, "select  {{ c }}", RenderSource(out, tf))
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "skipped: conflicting fix", StatusConflict.String())
	assert.Equal(t, "unfixable: templated region", StatusTemplated.String())
	text, err := StatusApplied.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "applied", string(text))
}
