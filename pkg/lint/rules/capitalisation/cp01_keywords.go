package capitalisation

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/leapstack-labs/leaplint/pkg/fix"
	"github.com/leapstack-labs/leaplint/pkg/lint"
	"github.com/leapstack-labs/leaplint/pkg/lint/internal/ast"
	"github.com/leapstack-labs/leaplint/pkg/segment"
	"github.com/leapstack-labs/leaplint/pkg/token"
)

func init() {
	lint.Register(Keywords)
}

// Capitalisation policies accepted by capitalisation_policy.
const (
	PolicyConsistent = "consistent"
	PolicyUpper      = "upper"
	PolicyLower      = "lower"
	PolicyCapitalise = "capitalise"
)

// Keywords enforces the capitalisation of keywords. With the consistent
// policy, the first keyword decides. Unknown policies behave like
// consistent.
var Keywords = lint.RuleDef{
	ID:          "CP01",
	Name:        "capitalisation.keywords",
	Group:       "capitalisation",
	Description: "Inconsistent capitalisation of keywords.",
	Severity:    lint.SeverityWarning,
	ConfigKeys:  []string{"capitalisation_policy", "ignore_words"},
	Fixable:     true,
	Check:       checkKeywords,

	BadExample:  "SELECT a\nfrom t\n",
	GoodExample: "SELECT a\nFROM t\n",
}

// casers are not safe for concurrent use, so each check builds its own.
type casers struct {
	upper, lower, title cases.Caser
}

func newCasers() *casers {
	return &casers{
		upper: cases.Upper(language.Und),
		lower: cases.Lower(language.Und),
		title: cases.Title(language.Und),
	}
}

func (c *casers) apply(policy, s string) string {
	switch policy {
	case PolicyLower:
		return c.lower.String(s)
	case PolicyCapitalise:
		return c.title.String(s)
	default:
		return c.upper.String(s)
	}
}

// infer returns the policy of the first keyword whose case is one of the
// policies.
func (c *casers) infer(keywords []segment.Leaf) string {
	for _, kw := range keywords {
		raw := kw.Segment.Raw()
		upper, lower := c.upper.String(raw), c.lower.String(raw)
		switch {
		case upper == lower:
			continue
		case raw == upper:
			return PolicyUpper
		case raw == lower:
			return PolicyLower
		case raw == c.title.String(raw):
			return PolicyCapitalise
		}
	}
	return PolicyUpper
}

func describe(policy string) string {
	switch policy {
	case PolicyLower:
		return "lower case"
	case PolicyCapitalise:
		return "capitalised"
	default:
		return "upper case"
	}
}

type keywordOptions struct {
	Policy      string   `mapstructure:"capitalisation_policy"`
	IgnoreWords []string `mapstructure:"ignore_words"`
}

// options decodes the rule options. Malformed options fall back to the
// defaults as a whole.
func options(ctx *lint.RuleContext) keywordOptions {
	opts := keywordOptions{Policy: PolicyConsistent}
	if err := lint.DecodeOptions(ctx.Options, &opts); err != nil {
		return keywordOptions{Policy: PolicyConsistent}
	}
	return opts
}

func checkKeywords(ctx *lint.RuleContext) []lint.Violation {
	keywords := ast.CollectLeaves(ctx.Tree, segment.TypeKeyword)
	if len(keywords) == 0 {
		return nil
	}

	opts := options(ctx)
	keywords = slices.DeleteFunc(keywords, func(kw segment.Leaf) bool {
		return slices.ContainsFunc(opts.IgnoreWords, func(w string) bool { return strings.EqualFold(w, kw.Segment.Raw()) })
	})
	if len(keywords) == 0 {
		return nil
	}

	c := newCasers()
	policy := opts.Policy
	message := "Keywords must be %s."
	switch policy {
	case PolicyUpper, PolicyLower, PolicyCapitalise:
	default:
		policy = c.infer(keywords)
		message = "Keywords must be consistently %s."
	}

	var violations []lint.Violation
	for _, kw := range keywords {
		want := c.apply(policy, kw.Segment.Raw())
		if want == kw.Segment.Raw() {
			continue
		}
		violations = append(violations, lint.Violation{
			Anchor:  kw.Segment,
			Message: fmt.Sprintf(message, describe(policy)),
			Fix:     fix.New(fix.Replace(kw.Segment, segment.NewRaw(segment.TypeKeyword, want, token.Range{}))),
		})
	}
	return violations
}
