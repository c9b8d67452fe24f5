package lexer

import "mvslc/internal/token"

// keywords maps a fully-matched identifier-shaped word to its token kind.
// Keywords are matched with word boundaries: lexWord only consults this
// table once it has scanned a complete run of identifier characters, so
// "iffy" never matches "if".
var keywords = map[string]token.Kind{
	"if":       token.Conditional,
	"then":     token.Conditional,
	"else":     token.Conditional,
	"while":    token.WhileLoop,
	"do":       token.WhileLoop,
	"break":    token.BreakContinue,
	"continue": token.BreakContinue,
	"var":      token.Declaration,
	"fun":      token.Function,
	"return":   token.Return,
	"true":     token.BoolLiteral,
	"false":    token.BoolLiteral,
	"and":      token.Operator,
	"or":       token.Operator,
	"not":      token.Operator,
}

const punctuation = "(){},;:"

// lexGlobal is the lexer's default state: it dispatches on the next rune
// to skip whitespace/comments, or hands off to a more specific scanning
// state for words, numbers, and multi-character operators.
func lexGlobal(l *lexer) stateFunc {
	for {
		r := l.next()
		switch {
		case r == eof:
			l.ignore()
			return nil

		case r == '\n':
			l.ignore()
			l.newline()

		case isSpace(r):
			l.ignore()

		case r == '/' && l.peek() == '/':
			return lexLineComment
		case r == '#':
			return lexLineComment
		case r == '/' && l.peek() == '*':
			l.next()
			return lexBlockComment

		case isAlpha(r):
			return lexWord

		case isDigit(r):
			return lexNumber

		case r == '=' && l.peek() == '=':
			l.next()
			l.emit(token.Operator)
		case r == '!' && l.peek() == '=':
			l.next()
			l.emit(token.Operator)
		case r == '<' && l.peek() == '=':
			l.next()
			l.emit(token.Operator)
		case r == '>' && l.peek() == '=':
			l.next()
			l.emit(token.Operator)

		case r == '+' || r == '-' || r == '*' || r == '/' || r == '%' ||
			r == '=' || r == '<' || r == '>':
			l.emit(token.Operator)

		case containsRune(punctuation, r):
			l.emit(token.Punctuation)

		default:
			return l.errorf("unrecognized character %q", r)
		}
	}
}

// lexLineComment skips everything up to (not including) the next
// newline, or end of input.
func lexLineComment(l *lexer) stateFunc {
	for {
		r := l.next()
		if r == '\n' {
			l.backup()
			l.ignore()
			l.next()
			l.ignore()
			l.newline()
			return lexGlobal
		}
		if r == eof {
			l.ignore()
			return lexGlobal
		}
	}
}

// lexBlockComment skips a balanced, non-nested /* ... */ comment,
// tracking embedded newlines so later diagnostics keep correct locations.
func lexBlockComment(l *lexer) stateFunc {
	for {
		r := l.next()
		switch r {
		case eof:
			return l.errorf("unterminated block comment")
		case '\n':
			l.ignore()
			l.newline()
		case '*':
			if l.peek() == '/' {
				l.next()
				l.ignore()
				return lexGlobal
			}
		}
	}
}

// lexWord scans a run of identifier characters and classifies it as a
// keyword or a plain identifier.
func lexWord(l *lexer) stateFunc {
	for {
		r := l.next()
		if !isAlpha(r) && !isDigit(r) {
			l.backup()
			break
		}
	}
	word := l.input[l.start:l.pos]
	if kind, ok := keywords[word]; ok {
		l.emit(kind)
	} else {
		l.emit(token.Identifier)
	}
	return lexGlobal
}

// lexNumber scans a run of decimal digits. Integer literals are always
// non-negative; unary minus is handled by the parser/grammar.
func lexNumber(l *lexer) stateFunc {
	for isDigit(l.peek()) {
		l.next()
	}
	l.emit(token.IntLiteral)
	return lexGlobal
}

func containsRune(s string, r rune) bool {
	for _, c := range s {
		if c == r {
			return true
		}
	}
	return false
}
