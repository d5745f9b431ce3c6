// Package lexing provides lint rules for text the dialect cannot lex.
package lexing
