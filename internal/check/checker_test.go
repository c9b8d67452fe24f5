package check

import (
	"testing"

	"mvslc/internal/ast"
	"mvslc/internal/lexer"
	"mvslc/internal/parser"
)

func checkSrc(t *testing.T, src string) (ast.Type, error) {
	t.Helper()
	tokens, err := lexer.Lex(src, "test.vsl")
	if err != nil {
		t.Fatalf("lex error: %v", err)
	}
	root, err := parser.Parse(tokens, "test.vsl")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	typ, _, err := Check(root)
	return typ, err
}

func TestCheckArithmeticIsInt(t *testing.T) {
	typ, err := checkSrc(t, "1 + 2 * 3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !typ.Equal(ast.Int) {
		t.Errorf("got %s, want Int", typ)
	}
}

func TestCheckComparisonIsBool(t *testing.T) {
	typ, err := checkSrc(t, "1 < 2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !typ.Equal(ast.Bool) {
		t.Errorf("got %s, want Bool", typ)
	}
}

func TestCheckEqualityRequiresMatchingOperands(t *testing.T) {
	if _, err := checkSrc(t, "1 == true"); err == nil {
		t.Fatal("expected a type error comparing Int and Bool")
	}
	typ, err := checkSrc(t, "1 == 2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !typ.Equal(ast.Bool) {
		t.Errorf("got %s, want Bool", typ)
	}
}

func TestCheckIfWithoutElseIsUnit(t *testing.T) {
	// A missing else branch makes the whole if Unit, even though the
	// then-branch is Int.
	typ, err := checkSrc(t, "if true then 1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !typ.Equal(ast.Unit) {
		t.Errorf("got %s, want Unit", typ)
	}
}

func TestCheckIfElseUnitBranchTypesAsTheOtherBranch(t *testing.T) {
	// An else-branch that types Unit makes the whole if type as the
	// then-branch's own type, not Unit.
	typ, err := checkSrc(t, "if true then 1 else { }")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !typ.Equal(ast.Int) {
		t.Errorf("got %s, want Int", typ)
	}
}

func TestCheckIfBranchesMustAgree(t *testing.T) {
	if _, err := checkSrc(t, "if true then 1 else false"); err == nil {
		t.Fatal("expected a type error for mismatched if branches")
	}
}

func TestCheckIfConditionMustBeBool(t *testing.T) {
	if _, err := checkSrc(t, "if 1 then 2"); err == nil {
		t.Fatal("expected a type error for a non-Bool if condition")
	}
}

func TestCheckWhileConditionMustBeBool(t *testing.T) {
	if _, err := checkSrc(t, "while 1 do 2"); err == nil {
		t.Fatal("expected a type error for a non-Bool while condition")
	}
}

func TestCheckDeclarationAnnotationMustMatchInitializer(t *testing.T) {
	if _, err := checkSrc(t, "var x: Bool = 1"); err == nil {
		t.Fatal("expected a type error for a mismatched declaration annotation")
	}
	typ, err := checkSrc(t, "var x: Int = 1; x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !typ.Equal(ast.Int) {
		t.Errorf("got %s, want Int", typ)
	}
}

func TestCheckUndefinedVariable(t *testing.T) {
	if _, err := checkSrc(t, "x + 1"); err == nil {
		t.Fatal("expected a name error for an undefined variable")
	}
}

func TestCheckFunctionCallTypes(t *testing.T) {
	typ, err := checkSrc(t, "fun add(a: Int, b: Int): Int { return a + b } add(1, 2)")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !typ.Equal(ast.Int) {
		t.Errorf("got %s, want Int", typ)
	}
}

func TestCheckFunctionArgCountMismatch(t *testing.T) {
	if _, err := checkSrc(t, "fun add(a: Int, b: Int): Int { return a + b } add(1)"); err == nil {
		t.Fatal("expected a type error for an argument count mismatch")
	}
}

func TestCheckReturnOutsideFunction(t *testing.T) {
	if _, err := checkSrc(t, "return 1"); err == nil {
		t.Fatal("expected a syntax error for a return outside any function")
	}
}

func TestCheckReturnTypeMismatch(t *testing.T) {
	if _, err := checkSrc(t, "fun f(): Int { return true }"); err == nil {
		t.Fatal("expected a type error for a function returning the wrong type")
	}
}

func TestCheckDuplicateFunctionName(t *testing.T) {
	if _, err := checkSrc(t, "fun f(): Int { return 1 } fun f(): Int { return 2 } f()"); err == nil {
		t.Fatal("expected a name error for a duplicate function definition")
	}
}

func TestCheckRootScopeHasIntrinsics(t *testing.T) {
	_, root, err := func() (ast.Type, *ast.SymTab[ast.Type], error) {
		tokens, err := lexer.Lex("1", "test.vsl")
		if err != nil {
			return ast.Type{}, nil, err
		}
		n, err := parser.Parse(tokens, "test.vsl")
		if err != nil {
			return ast.Type{}, nil, err
		}
		return Check(n)
	}()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, name := range []string{"print_int", "print_bool", "read_int", "==", "!="} {
		if _, ok := root.Lookup(name); !ok {
			t.Errorf("expected root scope to bind %q", name)
		}
	}
}
