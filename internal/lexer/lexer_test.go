package lexer

import (
	"testing"

	"mvslc/internal/token"
)

// TestLex tokenizes a small sample program and verifies that the lexer
// produces tokens of the expected kind and text, in order, against an
// inline source string.
func TestLex(t *testing.T) {
	src := "var x: Int = 1 + 2 * 3;\nwhile x < 10 do x = x + 1;"

	got, err := Lex(src, "test.vsl")
	if err != nil {
		t.Fatalf("Lex returned error: %v", err)
	}

	type want struct {
		kind token.Kind
		text string
	}
	exp := []want{
		{token.Declaration, "var"},
		{token.Identifier, "x"},
		{token.Punctuation, ":"},
		{token.Identifier, "Int"},
		{token.Operator, "="},
		{token.IntLiteral, "1"},
		{token.Operator, "+"},
		{token.IntLiteral, "2"},
		{token.Operator, "*"},
		{token.IntLiteral, "3"},
		{token.Punctuation, ";"},
		{token.WhileLoop, "while"},
		{token.Identifier, "x"},
		{token.Operator, "<"},
		{token.IntLiteral, "10"},
		{token.WhileLoop, "do"},
		{token.Identifier, "x"},
		{token.Operator, "="},
		{token.Identifier, "x"},
		{token.Operator, "+"},
		{token.IntLiteral, "1"},
		{token.Punctuation, ";"},
	}

	if len(got) != len(exp) {
		t.Fatalf("got %d tokens, want %d: %v", len(got), len(exp), got)
	}
	for i, w := range exp {
		if got[i].Kind != w.kind || got[i].Text != w.text {
			t.Errorf("token %d: got {%s %q}, want {%s %q}", i, got[i].Kind, got[i].Text, w.kind, w.text)
		}
	}
}

func TestLexTracksLineAndColumn(t *testing.T) {
	src := "1\n  2"
	got, err := Lex(src, "test.vsl")
	if err != nil {
		t.Fatalf("Lex returned error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d tokens, want 2", len(got))
	}
	if got[0].Loc.Line != 1 || got[0].Loc.Column != 1 {
		t.Errorf("first token loc = %v, want line 1 col 1", got[0].Loc)
	}
	if got[1].Loc.Line != 2 || got[1].Loc.Column != 3 {
		t.Errorf("second token loc = %v, want line 2 col 3", got[1].Loc)
	}
}

func TestLexCommentsAreSkipped(t *testing.T) {
	src := "1 // comment\n+ 2 # another\n/* block\ncomment */ + 3"
	got, err := Lex(src, "test.vsl")
	if err != nil {
		t.Fatalf("Lex returned error: %v", err)
	}
	if len(got) != 5 {
		t.Fatalf("got %d tokens, want 5: %v", len(got), got)
	}
}

func TestLexUnrecognizedCharacter(t *testing.T) {
	_, err := Lex("1 $ 2", "test.vsl")
	if err == nil {
		t.Fatal("expected an error for an unrecognized character")
	}
}

func TestLexColumnAfterMultilineBlockComment(t *testing.T) {
	src := "/* abc\ndef */ x"
	got, err := Lex(src, "test.vsl")
	if err != nil {
		t.Fatalf("Lex returned error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d tokens, want 1: %v", len(got), got)
	}
	if got[0].Loc.Line != 2 || got[0].Loc.Column != 8 {
		t.Errorf("token loc = %v, want line 2 col 8", got[0].Loc)
	}
}

func TestLexUnterminatedBlockComment(t *testing.T) {
	_, err := Lex("/* never closed", "test.vsl")
	if err == nil {
		t.Fatal("expected an error for an unterminated block comment")
	}
}
