package x86

import (
	"fmt"

	"mvslc/internal/ir"
)

// locals assigns each parameter and each IRVar referenced by a
// function's body a fixed stack slot: parameters first, then the rest in
// first-reference order.
type locals struct {
	slot      map[string]string
	stackUsed int
}

// reservedNames are never assigned a slot: they are either a sentinel
// (unit), a built-in/operator used only as a Call's Fun operand, or (via
// the growing set the emitter passes in) the name of a function already
// emitted, so one function's calls into another never misallocate the
// callee's own name.
func reservedNames() map[string]bool {
	names := []string{
		"print_int", "print_bool", "read_int",
		"+", "-", "*", "/", "%",
		"<", "<=", ">", ">=", "==", "!=",
		"unary_-", "unary_not",
	}
	out := make(map[string]bool, len(names))
	for _, n := range names {
		out[n] = true
	}
	return out
}

// newLocals collects the ordered, deduplicated set of IRVars referenced
// by instructions, starting with the parameters of its FunctionDef
// header, skipping anything in reserved or named "unit", and assigns each
// a slot -8*i(%rbp).
func newLocals(instructions []ir.Instruction, reserved map[string]bool) *locals {
	seen := make(map[string]bool, len(reserved))
	for k := range reserved {
		seen[k] = true
	}

	var ordered []string
	add := func(v ir.IRVar) {
		if v.Name == "unit" || seen[v.Name] {
			return
		}
		seen[v.Name] = true
		ordered = append(ordered, v.Name)
	}

	if fd, ok := instructions[0].(ir.FunctionDef); ok {
		for _, param := range fd.Params {
			add(param)
		}
	}

	for _, ins := range instructions[1:] {
		switch i := ins.(type) {
		case ir.LoadIntConst:
			add(i.Dest)
		case ir.LoadBoolConst:
			add(i.Dest)
		case ir.Copy:
			add(i.Src)
			add(i.Dest)
		case ir.Call:
			add(i.Fun)
			for _, arg := range i.Args {
				add(arg)
			}
			add(i.Dest)
		case ir.Return:
			add(i.Result)
		case ir.CondJump:
			add(i.Cond)
		}
	}

	l := &locals{slot: make(map[string]string, len(ordered)), stackUsed: len(ordered)}
	for i, name := range ordered {
		l.slot[name] = fmt.Sprintf("-%d(%%rbp)", (i+1)*8)
	}
	return l
}

func (l *locals) inLocals(v ir.IRVar) bool {
	_, ok := l.slot[v.Name]
	return ok
}

func (l *locals) ref(v ir.IRVar) string {
	return l.slot[v.Name]
}
