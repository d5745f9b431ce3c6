package lint

import (
	"fmt"
	"slices"

	"github.com/leapstack-labs/leaplint/pkg/core"
	"github.com/leapstack-labs/leaplint/pkg/dialect"
	"github.com/leapstack-labs/leaplint/pkg/fix"
	"github.com/leapstack-labs/leaplint/pkg/segment"
	"github.com/leapstack-labs/leaplint/pkg/templater"
	"github.com/leapstack-labs/leaplint/pkg/token"
)

// Severity levels re-exported for rule definitions.
const (
	SeverityError   = core.SeverityError
	SeverityWarning = core.SeverityWarning
	SeverityInfo    = core.SeverityInfo
	SeverityHint    = core.SeverityHint
)

// RuleDef is a data-driven rule definition.
// Rules are stateless - all context comes via the RuleContext.
type RuleDef struct {
	ID          string        // Unique identifier, e.g., "LT01"
	Name        string        // Human-readable name, e.g., "layout.spacing"
	Group       string        // Category, e.g., "layout", "capitalisation"
	Description string        // Human-readable description
	Severity    core.Severity // Default severity
	Check       CheckFunc     // The check function
	ConfigKeys  []string      // Configuration keys this rule accepts
	Dialects    []string      // Restrict to specific dialects; nil/empty means all dialects
	Fixable     bool          // Whether violations may carry fixes

	// Documentation fields for richer rule documentation
	Rationale   string // Why this rule exists, what problems it prevents
	BadExample  string // Code showing the anti-pattern
	GoodExample string // Code showing the correct pattern
	Fix         string // How to fix violations (when not obvious)
}

// CheckFunc inspects a tree and returns violations. It must not modify
// the tree.
type CheckFunc func(ctx *RuleContext) []Violation

// Info returns the rule's metadata.
func (r RuleDef) Info() core.RuleInfo {
	return core.RuleInfo{
		ID:              r.ID,
		Name:            r.Name,
		Group:           r.Group,
		Description:     r.Description,
		DefaultSeverity: r.Severity,
		ConfigKeys:      r.ConfigKeys,
		Dialects:        r.Dialects,
		Fixable:         r.Fixable,
		Rationale:       r.Rationale,
		BadExample:      r.BadExample,
		GoodExample:     r.GoodExample,
		Fix:             r.Fix,
	}
}

// AppliesTo reports whether the rule runs for a dialect.
func (r RuleDef) AppliesTo(dialectName string) bool {
	return len(r.Dialects) == 0 || slices.Contains(r.Dialects, dialectName)
}

// RuleContext is everything a rule may look at.
type RuleContext struct {
	Tree      *segment.Segment
	Dialect   *dialect.Resolved
	Templated *templater.TemplatedFile // nil for untemplated text
	Options   map[string]any           // the rule's options from configuration
}

// Violation is a rule finding. Rules set Anchor, Message and optionally
// Fix; the engine fills in the rest.
type Violation struct {
	RuleID   string
	RuleName string
	Severity core.Severity
	Message  string

	// Anchor is the segment the violation is reported on. Range and Pos
	// are derived from it.
	Anchor      *segment.Segment
	Range       token.Range    // byte range in the rendered text
	Pos         token.Position // rendered position of Range.Start
	SourceRange token.Range    // byte range in the source file
	SourcePos   token.Position // source position of SourceRange.Start

	Fix       *fix.Fix
	FixStatus fix.Status
}

func (v Violation) String() string {
	return fmt.Sprintf("%s: %s: %s", v.Pos, v.RuleID, v.Message)
}

// key identifies a violation across fix passes.
func (v Violation) key() string {
	o := v.Range
	if v.Anchor != nil {
		o = v.Anchor.Origin()
	}
	return fmt.Sprintf("%s@%d:%d:%s", v.RuleID, o.Start, o.End, v.Message)
}

// RuleError reports a rule that failed instead of returning violations.
// It is isolated to the rule: other rules still run.
type RuleError struct {
	RuleID string
	Err    error
}

func (e *RuleError) Error() string {
	return fmt.Sprintf("rule %s: %v", e.RuleID, e.Err)
}

func (e *RuleError) Unwrap() error { return e.Err }
