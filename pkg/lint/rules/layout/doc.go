// Package layout provides lint rules for whitespace and line layout.
// These rules follow SQLFluff's LT (Layout) rule category.
//
// Rules in this package:
//   - LT01: Inappropriate spacing
//   - LT12: Files must end with a single trailing newline
package layout
