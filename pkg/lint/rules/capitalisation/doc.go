// Package capitalisation provides lint rules for the case of keywords.
// These rules follow SQLFluff's CP (Capitalisation) rule category.
package capitalisation
