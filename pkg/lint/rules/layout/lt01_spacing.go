package layout

import (
	"fmt"

	"github.com/leapstack-labs/leaplint/pkg/fix"
	"github.com/leapstack-labs/leaplint/pkg/lint"
	"github.com/leapstack-labs/leaplint/pkg/lint/internal/ast"
	"github.com/leapstack-labs/leaplint/pkg/segment"
	"github.com/leapstack-labs/leaplint/pkg/token"
)

func init() {
	lint.Register(Spacing)
}

// Spacing collapses runs of spaces between code to a single space and
// removes trailing whitespace. Indentation is left to other rules.
var Spacing = lint.RuleDef{
	ID:          "LT01",
	Name:        "layout.spacing",
	Group:       "layout",
	Description: "Inappropriate spacing.",
	Severity:    lint.SeverityWarning,
	Fixable:     true,
	Check:       checkSpacing,

	Rationale:   "Consistent single spaces make queries easier to scan and diff.",
	BadExample:  "SELECT   a,  b\nFROM t   \n",
	GoodExample: "SELECT a, b\nFROM t\n",
}

func checkSpacing(ctx *lint.RuleContext) []lint.Violation {
	parsed := make(map[*segment.Segment]bool)
	for _, l := range ast.ParsedLeaves(ctx.Tree) {
		parsed[l.Segment] = true
	}

	leaves := segment.Leaves(ctx.Tree)
	var violations []lint.Violation
	for i, l := range leaves {
		ws := l.Segment
		if !ws.Is(segment.TypeWhitespace) || !parsed[ws] {
			continue
		}
		var prev, next *segment.Segment
		if i > 0 {
			prev = leaves[i-1].Segment
		}
		if i+1 < len(leaves) {
			next = leaves[i+1].Segment
		}

		switch {
		case next == nil || next.IsNewline():
			violations = append(violations, lint.Violation{
				Anchor:  ws,
				Message: "Unnecessary trailing whitespace.",
				Fix:     fix.New(fix.Delete(ws)),
			})
		case prev == nil || prev.IsNewline():
			// indentation
		case ws.Raw() != " ":
			violations = append(violations, lint.Violation{
				Anchor:  ws,
				Message: fmt.Sprintf("Expected only single space before %q. Found %q.", shorten(next.Raw()), ws.Raw()),
				Fix:     fix.New(fix.Replace(ws, segment.NewRaw(segment.TypeWhitespace, " ", token.Range{}))),
			})
		}
	}
	return violations
}

func shorten(s string) string {
	if len(s) > 20 {
		return s[:20] + "..."
	}
	return s
}
