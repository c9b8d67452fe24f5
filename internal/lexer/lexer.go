// Package lexer turns source text into an ordered token stream.
//
// The scanner is built from state functions, the pattern from Rob
// Pike's talk on writing Go lexers
// (https://www.youtube.com/watch?v=HxaD_trXwRE): states allow the same
// runes to be treated differently depending on lexer context, and
// transitions happen on key runes. The scan runs synchronously to
// completion and returns the whole token slice; there is no channel or
// goroutine involved.
package lexer

import (
	"unicode/utf8"

	"mvslc/internal/sourceerr"
	"mvslc/internal/token"
)

// eof is returned by next when the input is exhausted. 0 can never appear
// in valid UTF-8 source text, so it is a safe sentinel.
const eof = 0

// stateFunc is a lexer state: it consumes some input and returns the
// state to run next, or nil to stop.
type stateFunc func(*lexer) stateFunc

// lexer holds the mutable scanning state for a single source text.
type lexer struct {
	input       string
	file        string
	start       int // start byte offset of the pending token
	pos         int // current byte offset
	width       int // width in bytes of the last rune returned by next
	line        int // current line, 1-based
	startOnLine int // column of the pending token's start, 1-based

	tokens []token.Token
	err    error
}

// Lex scans src (from file, used only for diagnostics) into an ordered
// token slice. It returns a *sourceerr.LexError if any character is
// matched by neither a skip pattern nor a token pattern.
func Lex(src, file string) ([]token.Token, error) {
	l := &lexer{
		input:       src,
		file:        file,
		line:        1,
		startOnLine: 1,
		tokens:      make([]token.Token, 0, len(src)/4+1),
	}
	for state := stateFunc(lexGlobal); state != nil; {
		state = state(l)
	}
	if l.err != nil {
		return nil, l.err
	}
	return l.tokens, nil
}

// loc returns the location of the token currently being scanned.
func (l *lexer) loc() token.Location {
	return token.Location{File: l.file, Line: l.line, Column: l.startOnLine}
}

// emit appends a token of kind typ spanning [l.start, l.pos) to the
// output and advances the column/start bookkeeping past it.
func (l *lexer) emit(typ token.Kind) {
	text := l.input[l.start:l.pos]
	l.tokens = append(l.tokens, token.Token{Kind: typ, Text: text, Loc: l.loc()})
	l.startOnLine += len(text)
	l.start = l.pos
}

// next returns the next rune in the input and advances past it. UTF-8
// decoding keeps the lexer correct over multi-byte source text even
// though the language surface itself is ASCII.
func (l *lexer) next() rune {
	if l.pos >= len(l.input) {
		l.width = 0
		return eof
	}
	r, w := utf8.DecodeRuneInString(l.input[l.pos:])
	l.pos += w
	l.width = w
	return r
}

// backup steps back over the most recently returned rune. Must not be
// called twice in a row without an intervening next.
func (l *lexer) backup() {
	l.pos -= l.width
}

// peek returns, but does not consume, the next rune.
func (l *lexer) peek() rune {
	r := l.next()
	l.backup()
	return r
}

// ignore discards the pending span [l.start, l.pos) without emitting a
// token, advancing the column past it.
func (l *lexer) ignore() {
	l.startOnLine += len(l.input[l.start:l.pos])
	l.start = l.pos
}

// newline accounts for a consumed '\n': bumps the line counter and resets
// the column to the start of the new line.
func (l *lexer) newline() {
	l.line++
	l.startOnLine = 1
}

// errorf records a *sourceerr.LexError and stops the state machine.
func (l *lexer) errorf(format string, args ...interface{}) stateFunc {
	l.err = sourceerr.Lex(l.loc(), format, args...)
	return nil
}

func isAlpha(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_'
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\f' || r == '\r'
}
