// Package x86 emits x86-64 AT&T-syntax assembly from the IR: stack-slot
// allocation, prologue/epilogue shape, per-instruction emission, and
// intrinsic dispatch, built around a Writer accumulating output and a
// per-function generator that emits the symbol directives before the
// body.
package x86

import (
	"fmt"

	"mvslc/internal/ir"
)

var callRegisters = [...]string{"%rdi", "%rsi", "%rdx", "%rcx", "%r8", "%r9"}

// Emit produces one contiguous assembly text for prog: a shared preamble
// followed by one function block per entry, in prog.Order.
func Emit(prog *ir.Program) string {
	w := NewWriter()
	w.Directive(".extern print_int")
	w.Directive(".extern print_bool")
	w.Directive(".extern read_int")
	w.Directive(".section .text")

	reserved := reservedNames()
	for _, name := range prog.Order {
		reserved[name] = true
		emitFunction(w, name, prog.Functions[name], reserved)
	}
	return w.String()
}

func emitFunction(w *Writer, name string, instructions []ir.Instruction, reserved map[string]bool) {
	loc := newLocals(instructions, reserved)

	w.Comment(name + "()")
	w.Directive(".global " + name)
	w.Directive(fmt.Sprintf(".type %s, @function", name))
	w.Directive("")
	w.LabelDef(name)
	w.Ins1("pushq", "%rbp")
	w.Ins2("movq", "%rsp", "%rbp")

	if fd, ok := instructions[0].(ir.FunctionDef); ok {
		for i, param := range fd.Params {
			if i >= len(callRegisters) {
				break
			}
			if loc.inLocals(param) {
				w.Ins2("movq", callRegisters[i], loc.ref(param))
			}
		}
	}

	stackSize := loc.stackUsed * 8
	if stackSize == 0 {
		stackSize = 8
	}
	w.Ins2("subq", fmt.Sprintf("$%d", stackSize), "%rsp")

	for _, insn := range instructions {
		w.WriteString("\n")
		w.Comment(insn.String())
		emitInstruction(w, name, insn, loc)
	}
}

func emitInstruction(w *Writer, funcName string, insn ir.Instruction, loc *locals) {
	switch i := insn.(type) {
	case ir.FunctionDef:
		// handled by emitFunction's prologue; no per-instruction emission.

	case ir.Label:
		w.LabelDef(fmt.Sprintf(".L%s_%s", funcName, i.Name))

	case ir.LoadIntConst:
		if i.Value >= -(1<<31) && i.Value < (1<<31) {
			w.Ins2("movq", fmt.Sprintf("$%d", i.Value), loc.ref(i.Dest))
		} else {
			w.Ins2("movabsq", fmt.Sprintf("$%d", i.Value), "%rax")
			w.Ins2("movq", "%rax", loc.ref(i.Dest))
		}

	case ir.LoadBoolConst:
		v := 0
		if i.Value {
			v = 1
		}
		w.Ins2("movq", fmt.Sprintf("$%d", v), loc.ref(i.Dest))

	case ir.Jump:
		w.Ins1("jmp", fmt.Sprintf(".L%s_%s", funcName, i.Target.Name))

	case ir.Copy:
		w.Ins2("movq", loc.ref(i.Src), "%rax")
		w.Ins2("movq", "%rax", loc.ref(i.Dest))

	case ir.CondJump:
		w.Ins2("cmpq", "$0", loc.ref(i.Cond))
		w.Ins1("jne", fmt.Sprintf(".L%s_%s", funcName, i.Then.Name))
		w.Ins1("jmp", fmt.Sprintf(".L%s_%s", funcName, i.Else.Name))

	case ir.Call:
		emitCall(w, i, loc)

	case ir.Return:
		if loc.inLocals(i.Result) {
			w.Ins2("movq", loc.ref(i.Result), "%rax")
		} else {
			w.Ins2("movq", "$0", "%rax")
		}
		w.Ins2("movq", "%rbp", "%rsp")
		w.Ins1("popq", "%rbp")
		w.Ins0("ret")
	}
}

func emitCall(w *Writer, i ir.Call, loc *locals) {
	args := make([]string, len(i.Args))
	for j, a := range i.Args {
		args[j] = loc.ref(a)
	}

	if fn, ok := intrinsics[i.Fun.Name]; ok {
		fn(w, args)
		w.Ins2("movq", "%rax", loc.ref(i.Dest))
		return
	}

	stackNotAligned := loc.stackUsed*8%16 != 0
	if stackNotAligned {
		w.Ins2("subq", "$8", "%rsp")
	}
	for j, a := range args {
		if j >= len(callRegisters) {
			break
		}
		w.Ins2("movq", a, callRegisters[j])
	}
	w.Ins1("callq", i.Fun.Name)
	w.Ins2("movq", "%rax", loc.ref(i.Dest))
	if stackNotAligned {
		w.Ins2("addq", "$8", "%rsp")
	}
}
