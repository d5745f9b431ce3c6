// Package rules provides SQLFluff-style lint rule implementations.
//
// Rules are organized by category following SQLFluff's naming conventions:
//   - capitalisation: Rules about keyword case (CP01)
//   - layout: Rules about whitespace and line layout (LT01, LT12)
//   - lexing: Rules about text the dialect cannot lex (LX01)
//
// Parse anomalies are reported by the engine itself under PRS.
//
// To register all rules with the global lint registry, import this package
// with a blank identifier:
//
//	import _ "github.com/leapstack-labs/leaplint/pkg/lint/rules"
//
// Individual rule categories can also be imported:
//
//	import _ "github.com/leapstack-labs/leaplint/pkg/lint/rules/layout"
package rules
