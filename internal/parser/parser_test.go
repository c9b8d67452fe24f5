package parser

import (
	"testing"

	"mvslc/internal/ast"
	"mvslc/internal/lexer"
	"mvslc/internal/token"
)

func mustParse(t *testing.T, src string) *ast.Node {
	t.Helper()
	tokens, err := lexer.Lex(src, "test.vsl")
	if err != nil {
		t.Fatalf("lex error: %v", err)
	}
	root, err := Parse(tokens, "test.vsl")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	return root
}

func TestParseArithmeticPrecedence(t *testing.T) {
	root := mustParse(t, "1 + 2 * 3")
	if root.Kind != ast.Block || len(root.Stmts) != 1 {
		t.Fatalf("expected single-statement implicit block, got %s", root.Kind)
	}
	expr := root.Stmts[0]
	if expr.Kind != ast.BinaryOp || expr.Op != "+" {
		t.Fatalf("expected top-level '+', got %s %q", expr.Kind, expr.Op)
	}
	if expr.Left.Kind != ast.Literal || expr.Left.IntValue != 1 {
		t.Errorf("left operand: got %+v", expr.Left)
	}
	mul := expr.Right
	if mul.Kind != ast.BinaryOp || mul.Op != "*" {
		t.Fatalf("expected '*' nested on the right, got %s %q", mul.Kind, mul.Op)
	}
}

func TestParseAssignmentIsRightAssociative(t *testing.T) {
	root := mustParse(t, "var x: Int = 0; var y: Int = 0; x = y = 1")
	last := root.Stmts[len(root.Stmts)-1]
	if last.Kind != ast.BinaryOp || last.Op != "=" {
		t.Fatalf("expected top-level assignment, got %s", last.Kind)
	}
	if last.Left.Name != "x" {
		t.Errorf("outer assignment target: got %q, want x", last.Left.Name)
	}
	inner := last.Right
	if inner.Kind != ast.BinaryOp || inner.Op != "=" || inner.Left.Name != "y" {
		t.Fatalf("expected nested assignment to y, got %+v", inner)
	}
}

func TestParseAssignmentRequiresIdentifierLHS(t *testing.T) {
	_, err := Parse(mustLex(t, "1 = 2"), "test.vsl")
	if err == nil {
		t.Fatal("expected an error assigning into a non-identifier")
	}
}

func mustLex(t *testing.T, src string) []token.Token {
	t.Helper()
	toks, err := lexer.Lex(src, "test.vsl")
	if err != nil {
		t.Fatalf("lex error: %v", err)
	}
	return toks
}

func TestParseIfWithoutElse(t *testing.T) {
	root := mustParse(t, "if 1 < 2 then 3")
	ifNode := root.Stmts[0]
	if ifNode.Kind != ast.If {
		t.Fatalf("expected If, got %s", ifNode.Kind)
	}
	if ifNode.Else != nil {
		t.Errorf("expected no else branch, got %+v", ifNode.Else)
	}
}

func TestParseWhileWithBreakAndContinue(t *testing.T) {
	root := mustParse(t, "while true do { break; continue }")
	w := root.Stmts[0]
	if w.Kind != ast.While {
		t.Fatalf("expected While, got %s", w.Kind)
	}
	body := w.Body
	if body.Kind != ast.Block || len(body.Stmts) != 2 {
		t.Fatalf("expected a two-statement block body, got %+v", body)
	}
	if body.Stmts[0].Kind != ast.Break || body.Stmts[1].Kind != ast.Continue {
		t.Errorf("expected break then continue, got %s then %s", body.Stmts[0].Kind, body.Stmts[1].Kind)
	}
}

func TestParseFuncDefAndCall(t *testing.T) {
	root := mustParse(t, "fun add(a: Int, b: Int): Int { return a + b } print_int(add(1, 2))")
	if root.Kind != ast.Module {
		t.Fatalf("expected Module root, got %s", root.Kind)
	}
	var fn *ast.Node
	for _, d := range root.Stmts {
		if d.Kind == ast.FuncDef {
			fn = d
		}
	}
	if fn == nil {
		t.Fatal("expected a FuncDef entry in the module")
	}
	if fn.Name != "add" || len(fn.Params) != 2 {
		t.Fatalf("got FuncDef %q with %d params, want add/2", fn.Name, len(fn.Params))
	}
	if fn.RetType == nil || fn.RetType.Name != "Int" {
		t.Errorf("expected return type annotation Int, got %+v", fn.RetType)
	}
}

func TestParseDeclarationOnlyAtStatementStart(t *testing.T) {
	_, err := Parse(mustLex(t, "1 + var x: Int = 2"), "test.vsl")
	if err == nil {
		t.Fatal("expected an error declaring mid-expression")
	}
}

func TestParseTrailingSemicolonYieldsUnitValue(t *testing.T) {
	root := mustParse(t, "{ 1; }")
	block := root.Stmts[0]
	last := block.Stmts[len(block.Stmts)-1]
	if last.Kind != ast.Literal || !last.IsNone {
		t.Fatalf("expected trailing ';' to append a unit literal, got %+v", last)
	}
}

func TestParseAdjacentExpressionsRequireBlockBoundary(t *testing.T) {
	_, err := Parse(mustLex(t, "1 2"), "test.vsl")
	if err == nil {
		t.Fatal("expected an error for two adjacent expressions with no ';' or '}' between them")
	}
}

func TestParseBlockThenExpressionNeedsNoSemicolon(t *testing.T) {
	root := mustParse(t, "{ 1 } 2")
	if len(root.Stmts) != 2 {
		t.Fatalf("expected two top-level statements, got %d: %+v", len(root.Stmts), root.Stmts)
	}
}
