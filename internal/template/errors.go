package template

import (
	"errors"
	"fmt"
)

// Every template error wraps one of these.
var (
	ErrSyntax = errors.New("template syntax error")
	ErrRender = errors.New("template render error")
)

// Error is a template failure at a position in the source.
type Error struct {
	Pos Position
	Msg string
	// Block is the control statement left unmatched, or StmtUnknown.
	Block StmtKind
	// Cause is the underlying Starlark error of a render failure.
	Cause error

	kind error
}

// Position returns where the error occurred.
func (e *Error) Position() Position { return e.Pos }

func (e *Error) Error() string {
	msg := fmt.Sprintf("%d:%d: %s", e.Pos.Line, e.Pos.Column, e.Msg)
	if e.Pos.File != "" {
		msg = e.Pos.File + ":" + msg
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *Error) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.kind}
	}
	return []error{e.kind, e.Cause}
}

func syntaxErrorf(pos Position, format string, args ...any) *Error {
	return &Error{Pos: pos, Msg: fmt.Sprintf(format, args...), kind: ErrSyntax}
}

func renderError(pos Position, cause error, format string, args ...any) *Error {
	return &Error{Pos: pos, Msg: fmt.Sprintf(format, args...), Cause: cause, kind: ErrRender}
}

// unmatchedBlock reports a block opener without its closer, or a closer,
// else or elif without its opener.
func unmatchedBlock(pos Position, kind StmtKind) *Error {
	var msg string
	switch kind {
	case StmtFor:
		msg = "unclosed 'for' block (missing 'endfor')"
	case StmtIf:
		msg = "unclosed 'if' block (missing 'endif')"
	case StmtEndFor, StmtEndIf:
		msg = fmt.Sprintf("'%s' without matching '%s'", kind, kind.String()[3:])
	case StmtElse, StmtElif:
		msg = fmt.Sprintf("'%s' without matching 'if'", kind)
	default:
		msg = fmt.Sprintf("unmatched block: %s", kind)
	}
	e := syntaxErrorf(pos, "%s", msg)
	e.Block = kind
	return e
}
