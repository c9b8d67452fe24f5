package ir

import (
	"testing"

	"mvslc/internal/check"
	"mvslc/internal/lexer"
	"mvslc/internal/parser"
)

func generate(t *testing.T, src string) *Program {
	t.Helper()
	tokens, err := lexer.Lex(src, "test.vsl")
	if err != nil {
		t.Fatalf("lex error: %v", err)
	}
	root, err := parser.Parse(tokens, "test.vsl")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	_, rootTable, err := check.Check(root)
	if err != nil {
		t.Fatalf("check error: %v", err)
	}
	prog, err := Generate(root, rootTable)
	if err != nil {
		t.Fatalf("generate error: %v", err)
	}
	return prog
}

func countKind[T Instruction](ins []Instruction) int {
	n := 0
	for _, i := range ins {
		if _, ok := i.(T); ok {
			n++
		}
	}
	return n
}

func TestGenerateMainEndsInReturn(t *testing.T) {
	prog := generate(t, "1 + 2")
	main, ok := prog.Functions["main"]
	if !ok {
		t.Fatal("expected a main function")
	}
	last := main[len(main)-1]
	if _, ok := last.(Return); !ok {
		t.Errorf("expected main's last instruction to be Return, got %s", last)
	}
}

func TestGenerateMainPrintsIntResult(t *testing.T) {
	prog := generate(t, "1 + 2")
	main := prog.Functions["main"]
	calls := 0
	for _, i := range main {
		if c, ok := i.(Call); ok && c.Fun.Name == "print_int" {
			calls++
		}
	}
	if calls != 1 {
		t.Errorf("expected exactly one print_int call, got %d", calls)
	}
}

func TestGenerateMainDoesNotPrintUnitResult(t *testing.T) {
	prog := generate(t, "var x: Int = 1;")
	main := prog.Functions["main"]
	for _, i := range main {
		if c, ok := i.(Call); ok && (c.Fun.Name == "print_int" || c.Fun.Name == "print_bool") {
			t.Errorf("did not expect a print call for a Unit-valued program, got %s", c)
		}
	}
}

func TestGenerateFunctionGetsOwnInstructionList(t *testing.T) {
	prog := generate(t, "fun add(a: Int, b: Int): Int { return a + b } add(1, 2)")
	if _, ok := prog.Functions["add"]; !ok {
		t.Fatal("expected a dedicated instruction list for add")
	}
	if _, ok := prog.Functions["main"]; !ok {
		t.Fatal("expected a main instruction list for the trailing call expression")
	}
	fd, ok := prog.Functions["add"][0].(FunctionDef)
	if !ok {
		t.Fatalf("expected add's first instruction to be FunctionDef, got %s", prog.Functions["add"][0])
	}
	if len(fd.Params) != 2 || fd.Params[0].Name != "a" || fd.Params[1].Name != "b" {
		t.Errorf("expected FunctionDef params [a, b], got %+v", fd.Params)
	}
}

func TestGenerateOrderIsDeterministic(t *testing.T) {
	prog := generate(t, "fun a(): Int { return 1 } fun b(): Int { return 2 } a() + b()")
	if len(prog.Order) != 3 {
		t.Fatalf("expected 3 entries in Order, got %d: %v", len(prog.Order), prog.Order)
	}
	if prog.Order[0] != "a" || prog.Order[1] != "b" || prog.Order[2] != "main" {
		t.Errorf("expected order [a, b, main], got %v", prog.Order)
	}
}

func TestGenerateShortCircuitAnd(t *testing.T) {
	prog := generate(t, "true and false")
	main := prog.Functions["main"]
	if countKind[CondJump](main) == 0 {
		t.Error("expected 'and' to lower to at least one CondJump")
	}
}

func TestGenerateWhileLoopLabels(t *testing.T) {
	prog := generate(t, "var i: Int = 0; while i < 10 do { i = i + 1 }")
	main := prog.Functions["main"]
	var names []string
	for _, i := range main {
		if l, ok := i.(Label); ok {
			names = append(names, l.Name)
		}
	}
	want := map[string]bool{"while_start": false, "while_end": false}
	for _, n := range names {
		if _, ok := want[n]; ok {
			want[n] = true
		}
	}
	for n, seen := range want {
		if !seen {
			t.Errorf("expected label %q among %v", n, names)
		}
	}
}

func TestGenerateBreakJumpsToLoopEnd(t *testing.T) {
	prog := generate(t, "while true do { break }")
	main := prog.Functions["main"]
	found := false
	for _, i := range main {
		if j, ok := i.(Jump); ok && j.Target.Name == "while_end" {
			found = true
		}
	}
	if !found {
		t.Error("expected break to lower to a Jump targeting while_end")
	}
}

func TestGenerateIfElseCopiesUnitBranchAsIs(t *testing.T) {
	// Per the language's own rule, a branch yielding the unit sentinel is
	// copied into the shared result variable just like any other branch.
	prog := generate(t, "if true then { } else { }")
	main := prog.Functions["main"]
	copies := countKind[Copy](main)
	if copies == 0 {
		t.Error("expected at least one Copy lowering the if's branch results")
	}
}
