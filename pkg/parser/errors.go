package parser

import (
	"fmt"

	"github.com/leapstack-labs/leaplint/pkg/token"
)

// ParseError describes an unparsable span. It is reported, never
// returned: the span is part of the tree as an unparsable segment.
type ParseError struct {
	Range   token.Range
	Pos     token.Position
	Text    string
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at line %d, column %d: %s %q", e.Pos.Line, e.Pos.Column, e.Message, e.Text)
}

// LexError describes a character the dialect's lexer does not recognise.
type LexError struct {
	Range   token.Range
	Pos     token.Position
	Text    string
	Message string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("lexer error at line %d, column %d: %s %q", e.Pos.Line, e.Pos.Column, e.Message, e.Text)
}
