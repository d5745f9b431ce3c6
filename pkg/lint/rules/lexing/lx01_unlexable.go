package lexing

import (
	"fmt"

	"github.com/leapstack-labs/leaplint/pkg/lint"
	"github.com/leapstack-labs/leaplint/pkg/segment"
)

func init() {
	lint.Register(Unlexable)
}

// Unlexable reports characters no lexer rule of the dialect matches.
var Unlexable = lint.RuleDef{
	ID:          "LX01",
	Name:        "lexing.unlexable",
	Group:       "lexing",
	Description: "Characters the dialect cannot lex.",
	Severity:    lint.SeverityError,
	Check:       checkUnlexable,

	Rationale: "Unlexable text is usually a typo or a construct from another dialect.",
}

func checkUnlexable(ctx *lint.RuleContext) []lint.Violation {
	var violations []lint.Violation
	for _, v := range segment.FindAll(ctx.Tree, segment.TypeUnlexable) {
		violations = append(violations, lint.Violation{
			Anchor:  v.Segment,
			Message: fmt.Sprintf("Unable to lex characters %q in dialect %s.", v.Segment.Raw(), ctx.Dialect.Name()),
		})
	}
	return violations
}
