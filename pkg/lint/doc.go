// Package lint runs rules over segment trees and drives the fix loop.
//
// # Architecture
//
//  1. Root package (pkg/lint/): the RuleDef contract, the rule registry,
//     configuration, noqa handling and the Engine.
//  2. Rule packages (pkg/lint/rules/<group>/): concrete rules, registered
//     from init() functions. Import pkg/lint/rules for all of them.
//
// # Rules
//
// A rule is a pure function from a RuleContext to violations. Rules never
// modify the tree: a violation may carry a fix.Fix describing edits, and
// the Engine decides which fixes are applied.
//
//	var Example = lint.RuleDef{
//	    ID:       "XX01",
//	    Name:     "example.rule",
//	    Group:    "example",
//	    Severity: core.SeverityWarning,
//	    Check:    checkExample,
//	}
//
// # Fixing
//
// Engine.Fix lints, applies every non-conflicting fix as one batch, and
// lints again until no fixable violation remains or the pass limit is
// reached. A batch that makes the text parse worse is reverted and its
// fixes are not retried.
//
// # Parse anomalies
//
// Unparsable segments are always reported as PRS violations, regardless
// of configuration and noqa comments.
package lint
