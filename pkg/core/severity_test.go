package core

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSeverity(t *testing.T) {
	tests := []struct {
		in     string
		want   Severity
		wantOK bool
	}{
		{"error", SeverityError, true},
		{"WARNING", SeverityWarning, true},
		{"Info", SeverityInfo, true},
		{"hint", SeverityHint, true},
		{"fatal", SeverityWarning, false},
		{"", SeverityWarning, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseSeverity(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSeverity_String(t *testing.T) {
	assert.Equal(t, "error", SeverityError.String())
	assert.Equal(t, "hint", SeverityHint.String())
	assert.Equal(t, "unknown", Severity(42).String())
	assert.Equal(t, "unknown", Severity(-1).String())
}

func TestSeverity_Ordering(t *testing.T) {
	// lower values are more severe
	assert.Less(t, SeverityError, SeverityWarning)
	assert.Less(t, SeverityWarning, SeverityInfo)
	assert.Less(t, SeverityInfo, SeverityHint)

	assert.True(t, SeverityError.AtLeast(SeverityWarning))
	assert.True(t, SeverityWarning.AtLeast(SeverityWarning))
	assert.False(t, SeverityHint.AtLeast(SeverityInfo))
}

func TestSeverityNames(t *testing.T) {
	names := SeverityNames()
	assert.Equal(t, []string{"error", "warning", "info", "hint"}, names)
	for i, n := range names {
		sev, ok := ParseSeverity(n)
		require.True(t, ok)
		assert.Equal(t, Severity(i), sev)
	}
	names[0] = "mutated"
	assert.Equal(t, "error", SeverityError.String())
}

func TestSeverity_Text(t *testing.T) {
	data, err := json.Marshal(map[string]Severity{"LT01": SeverityError})
	require.NoError(t, err)
	assert.JSONEq(t, `{"LT01": "error"}`, string(data))

	var got map[string]Severity
	require.NoError(t, json.Unmarshal([]byte(`{"CP01": "info"}`), &got))
	assert.Equal(t, SeverityInfo, got["CP01"])

	err = json.Unmarshal([]byte(`{"CP01": "fatal"}`), &got)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown severity")
}
