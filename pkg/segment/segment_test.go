package segment

import (
	"testing"

	"github.com/leapstack-labs/leaplint/pkg/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func raw(typ, text string, start int) *Segment {
	return NewRaw(typ, text, token.Range{Start: start, End: start + len(text)})
}

// SELECT a
func sampleTree() *Segment {
	sel := raw(TypeKeyword, "SELECT", 0)
	ws := raw(TypeWhitespace, " ", 6)
	col := raw(TypeIdentifier, "a", 7)
	clause := NewComposite("select_clause", []*Segment{sel, ws, col})
	stmt := NewComposite("select_statement", []*Segment{clause})
	nl := raw(TypeNewline, "\n", 8)
	return NewComposite(TypeFile, []*Segment{stmt, nl})
}

func TestComposite_RawAndOrigin(t *testing.T) {
	tree := sampleTree()

	assert.Equal(t, "SELECT a\n", tree.Raw())
	assert.Equal(t, "SELECT a\n", Serialize(tree))
	assert.Equal(t, 9, tree.Len())
	assert.Equal(t, token.Range{Start: 0, End: 9}, tree.Origin())
	assert.Equal(t, KindComposite, tree.Kind())
	assert.True(t, tree.IsCode())
	assert.False(t, tree.Child(1).IsCode())
	assert.True(t, tree.Child(1).IsNewline())
	require.NoError(t, Validate(tree))
}

func TestChildren_ReturnsCopy(t *testing.T) {
	tree := sampleTree()
	kids := tree.Children()
	kids[0] = nil

	assert.NotNil(t, tree.Child(0))
}

func TestWalk_Positions(t *testing.T) {
	tree := sampleTree()

	leaves := Leaves(tree)
	require.Len(t, leaves, 4)
	starts := make([]int, 0, len(leaves))
	for _, l := range leaves {
		starts = append(starts, l.Start)
	}
	assert.Equal(t, []int{0, 6, 7, 8}, starts)

	ids := FindAll(tree, TypeIdentifier)
	require.Len(t, ids, 1)
	assert.Equal(t, token.Range{Start: 7, End: 8}, ids[0].Range())
	assert.Equal(t, "select_clause", ids[0].Parent().Type())
	assert.Len(t, ids[0].Parents, 3)
	assert.Equal(t, 2, ids[0].Index)
}

func TestWalk_SkipChildren(t *testing.T) {
	tree := sampleTree()
	var types []string
	Walk(tree, func(v Visit) bool {
		types = append(types, v.Segment.Type())
		return v.Segment.Type() != "select_statement"
	})
	assert.Equal(t, []string{TypeFile, "select_statement", TypeNewline}, types)
}

func TestLocate(t *testing.T) {
	tree := sampleTree()
	target := tree.Child(0).Child(0).Child(2)

	v, ok := Locate(tree, target)
	require.True(t, ok)
	assert.Equal(t, 7, v.Start)

	_, ok = Locate(tree, raw(TypeIdentifier, "a", 7))
	assert.False(t, ok, "lookup is by identity")
}

func TestStructuralSharing_ShiftsOffsets(t *testing.T) {
	tree := sampleTree()
	stmt := tree.Child(0)
	clause := stmt.Child(0)

	// widen the whitespace; the identifier leaf is reused as-is
	newClause := clause.WithChildren([]*Segment{
		clause.Child(0),
		NewRaw(TypeWhitespace, "   ", token.Range{Start: 6, End: 6}),
		clause.Child(2),
	})
	newTree := tree.WithChildren([]*Segment{stmt.WithChildren([]*Segment{newClause}), tree.Child(1)})

	assert.Equal(t, "SELECT a\n", tree.Raw(), "old tree untouched")
	assert.Equal(t, "SELECT   a\n", newTree.Raw())

	v, ok := Locate(newTree, clause.Child(2))
	require.True(t, ok)
	assert.Equal(t, 9, v.Start)
	assert.Equal(t, token.Range{Start: 7, End: 8}, v.Segment.Origin(), "origin is stable")
	require.NoError(t, Validate(newTree))
}

func TestValidate_DuplicateSegment(t *testing.T) {
	leaf := raw(TypeWord, "x", 0)
	tree := NewComposite(TypeFile, []*Segment{leaf, leaf})

	err := Validate(tree)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidTree)
}

func TestWithType(t *testing.T) {
	w := raw(TypeWord, "select", 0)
	kw := w.WithType(TypeKeyword)

	assert.Equal(t, TypeWord, w.Type())
	assert.Equal(t, TypeKeyword, kw.Type())
	assert.Equal(t, w.Origin(), kw.Origin())
	assert.True(t, kw.Is(TypeIdentifier, TypeKeyword))
}

func TestFormat(t *testing.T) {
	out := Format(sampleTree())
	assert.Contains(t, out, "file:")
	assert.Contains(t, out, "        select_clause:")
	assert.Contains(t, out, "keyword: 'SELECT'")
	assert.Contains(t, out, "newline: '\\n'")
}

func TestFormatFunc(t *testing.T) {
	out := FormatFunc(sampleTree(), func(s *Segment) bool { return !s.IsWhitespace() })
	assert.NotContains(t, out, "whitespace")
	assert.NotContains(t, out, "newline")
	// positions come from the full tree
	assert.Contains(t, out, "[L:  1, P:  8] |             identifier: 'a'")
}
