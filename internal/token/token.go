// Package token defines the source locations and lexical tokens shared by
// every later stage of the pipeline.
package token

import "fmt"

// Location pinpoints a single character in a source file. Lines and
// columns are 1-based, matching the convention readers expect from
// compiler diagnostics.
type Location struct {
	File   string
	Line   int
	Column int
}

// String renders a Location the way diagnostics expect: file:line:column.
func (l Location) String() string {
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
}

// Kind differentiates the lexical class of a Token.
type Kind int

const (
	Identifier Kind = iota
	IntLiteral
	BoolLiteral
	Operator
	Punctuation
	Conditional    // if, then, else
	WhileLoop      // while, do
	BreakContinue  // break, continue
	Declaration    // var
	Function       // fun
	Return         // return
	End            // synthetic end-of-input token
)

var kindNames = [...]string{
	"identifier",
	"int_literal",
	"bool_literal",
	"operator",
	"punctuation",
	"conditional",
	"while_loop",
	"break_continue",
	"declaration",
	"function",
	"return",
	"end",
}

// String returns a print-friendly name for k.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Token is a single lexeme scanned from the source text, along with its
// classification and the location of its first character.
type Token struct {
	Kind Kind
	Text string
	Loc  Location
}

// String prints a Token in a form useful for debugging the token stream,
// e.g. with the -ts CLI flag.
func (t Token) String() string {
	return fmt.Sprintf("%-14s %-10q %s", t.Kind, t.Text, t.Loc)
}

// EndToken builds the synthetic end-of-input token. The lexer never emits
// it; the parser's peek returns it once every token has been consumed.
func EndToken(loc Location) Token {
	return Token{Kind: End, Text: "", Loc: loc}
}
