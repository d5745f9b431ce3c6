package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLineIndex_Position(t *testing.T) {
	li := NewLineIndex("SELECT 1\nFROM t\n  WHERE ü = 1")

	tests := []struct {
		name   string
		offset int
		want   Position
	}{
		{"start", 0, Position{Line: 1, Column: 1, Offset: 0}},
		{"end of first line", 8, Position{Line: 1, Column: 9, Offset: 8}},
		{"second line", 9, Position{Line: 2, Column: 1, Offset: 9}},
		{"third line indent", 18, Position{Line: 3, Column: 3, Offset: 18}},
		{"after multibyte rune", 27, Position{Line: 3, Column: 11, Offset: 27}},
		{"clamped", 1000, Position{Line: 3, Column: 14, Offset: 30}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, li.Position(tt.offset))
		})
	}
	assert.Equal(t, 3, li.LineCount())
}

func TestRange(t *testing.T) {
	r := Range{Start: 10, End: 20}

	assert.True(t, r.Overlaps(Range{Start: 15, End: 25}))
	assert.True(t, r.Overlaps(Range{Start: 12, End: 13}))
	assert.False(t, r.Overlaps(Range{Start: 20, End: 25}))
	assert.False(t, r.Overlaps(Range{Start: 0, End: 10}))

	assert.True(t, r.ContainsPoint(11))
	assert.False(t, r.ContainsPoint(10))
	assert.False(t, r.ContainsPoint(20))

	assert.Equal(t, 10, r.Len())
	assert.True(t, Range{Start: 3, End: 3}.Empty())
	assert.Equal(t, "[10,20)", r.String())
}
