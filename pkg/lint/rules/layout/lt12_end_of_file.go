package layout

import (
	"slices"

	"github.com/leapstack-labs/leaplint/pkg/fix"
	"github.com/leapstack-labs/leaplint/pkg/lint"
	"github.com/leapstack-labs/leaplint/pkg/lint/internal/ast"
	"github.com/leapstack-labs/leaplint/pkg/segment"
	"github.com/leapstack-labs/leaplint/pkg/token"
)

func init() {
	lint.Register(EndOfFile)
}

// EndOfFile requires the file to end with exactly one newline, with
// nothing after it.
var EndOfFile = lint.RuleDef{
	ID:          "LT12",
	Name:        "layout.end_of_file",
	Group:       "layout",
	Description: "Files must end with a single trailing newline.",
	Severity:    lint.SeverityWarning,
	Fixable:     true,
	Check:       checkEndOfFile,

	BadExample:  "SELECT a\nFROM foo",
	GoodExample: "SELECT a\nFROM foo\n",
}

const endOfFileMessage = "Files must end with a single trailing newline."

func checkEndOfFile(ctx *lint.RuleContext) []lint.Violation {
	leaves := segment.Leaves(ctx.Tree)
	body, trailing := ast.SplitTrailing(leaves)
	if len(body) == 0 {
		return nil
	}
	last := leaves[len(leaves)-1].Segment

	nl := slices.IndexFunc(trailing, func(l segment.Leaf) bool { return l.Segment.IsNewline() })
	var edits []fix.Edit
	switch {
	case nl < 0 && len(trailing) == 0:
		edits = append(edits, fix.InsertAfter(last, newline()))
	case nl < 0:
		edits = append(edits, fix.Replace(trailing[0].Segment, newline()))
		for _, l := range trailing[1:] {
			edits = append(edits, fix.Delete(l.Segment))
		}
	case nl < len(trailing)-1:
		for _, l := range trailing[nl+1:] {
			edits = append(edits, fix.Delete(l.Segment))
		}
	default:
		return nil
	}

	return []lint.Violation{{
		Anchor:  last,
		Message: endOfFileMessage,
		Fix:     fix.New(edits...),
	}}
}

func newline() *segment.Segment {
	return segment.NewRaw(segment.TypeNewline, "\n", token.Range{})
}
