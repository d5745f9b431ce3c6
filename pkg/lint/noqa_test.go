package lint

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDirective(t *testing.T) {
	tests := []struct {
		comment string
		ok      bool
		mode    noqaMode
		rules   []string
	}{
		{"-- noqa", true, noqaLine, []string{"ALL"}},
		{"--noqa", true, noqaLine, []string{"ALL"}},
		{"-- NOQA", true, noqaLine, []string{"ALL"}},
		{"-- noqa: LT01,cp01", true, noqaLine, []string{"LT01", "CP01"}},
		{"-- noqa: LT01, CP01 ", true, noqaLine, []string{"LT01", "CP01"}},
		{"-- noqa:disable=LT01", true, noqaDisable, []string{"LT01"}},
		{"-- noqa: enable=all", true, noqaEnable, []string{"ALL"}},
		{"-- noqa:", false, 0, nil},
		{"-- noqa-ish", false, 0, nil},
		{"-- just a comment", false, 0, nil},
		{"/* noqa */", false, 0, nil},
	}
	for _, tt := range tests {
		t.Run(tt.comment, func(t *testing.T) {
			d, ok := parseDirective(tt.comment)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.mode, d.mode)
				assert.Equal(t, tt.rules, d.rules)
			}
		})
	}
}

func TestSuppressor_LastDirectiveWins(t *testing.T) {
	tests := []struct {
		name  string
		sql   string
		lines []int // lines with a TS01 violation
	}{
		{
			"enable one rule after disable all",
			"-- noqa: disable=all\nSELECT   1;\n-- noqa: enable=TS01\nSELECT   2;\n",
			[]int{4},
		},
		{
			"enable by name after disable all",
			"-- noqa: disable=all\nSELECT   1;\n-- noqa: enable=test.spacing\nSELECT   2;\n",
			[]int{4},
		},
		{
			"enable all after disable of one rule",
			"-- noqa: disable=TS01\nSELECT   1;\n-- noqa: enable=all\nSELECT   2;\n",
			[]int{4},
		},
		{
			"disable again after enable",
			"-- noqa: disable=all\nSELECT   1;\n-- noqa: enable=TS01\nSELECT   2;\n-- noqa: disable=TS01\nSELECT   3;\n",
			[]int{4},
		},
		{
			"enable of another rule keeps it silenced",
			"-- noqa: disable=all\nSELECT   1;\n-- noqa: enable=TS02\nSELECT   2;\n",
			nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(t, "TS01")
			res := e.Lint(parseTree(t, e, tt.sql), nil)

			var lines []int
			for _, v := range res.Violations {
				if v.RuleID == "TS01" {
					lines = append(lines, v.Pos.Line)
				}
			}
			assert.Equal(t, tt.lines, lines)
		})
	}
}
