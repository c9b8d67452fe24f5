// Package sourceerr classifies compiler diagnostics by the phase that
// raised them, so callers can distinguish a lexical error from a name
// error without parsing the message text.
package sourceerr

import (
	"fmt"

	"mvslc/internal/token"
)

// LexError is raised by the lexer when no skip or token pattern matches
// the input at the current position.
type LexError struct {
	Loc token.Location
	Msg string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("%s: lexical error: %s", e.Loc, e.Msg)
}

// SyntaxError is raised by the parser, and by later stages for
// control-flow misuse that the grammar alone cannot reject (return
// outside a function, break/continue outside a loop).
type SyntaxError struct {
	Loc token.Location
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s: syntax error: %s", e.Loc, e.Msg)
}

// NameError is raised for unbound identifiers and duplicate
// declarations/functions, by the type checker or the IR generator.
type NameError struct {
	Loc token.Location
	Msg string
}

func (e *NameError) Error() string {
	return fmt.Sprintf("%s: name error: %s", e.Loc, e.Msg)
}

// TypeError is raised by the type checker for operand, annotation and
// branch-type mismatches.
type TypeError struct {
	Loc token.Location
	Msg string
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("%s: type error: %s", e.Loc, e.Msg)
}

// The constructors below keep call sites terse: each builds a one-line,
// location-prefixed error message.

func Lex(loc token.Location, format string, args ...interface{}) error {
	return &LexError{Loc: loc, Msg: fmt.Sprintf(format, args...)}
}

func Syntax(loc token.Location, format string, args ...interface{}) error {
	return &SyntaxError{Loc: loc, Msg: fmt.Sprintf(format, args...)}
}

func Name(loc token.Location, format string, args ...interface{}) error {
	return &NameError{Loc: loc, Msg: fmt.Sprintf(format, args...)}
}

func Type(loc token.Location, format string, args ...interface{}) error {
	return &TypeError{Loc: loc, Msg: fmt.Sprintf(format, args...)}
}
