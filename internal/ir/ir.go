// Package ir defines the three-address intermediate representation the
// checked AST is lowered into, and the lowering pass itself. Every
// instruction carries the source location it was generated from, used
// only for diagnostics (the emitter never needs it).
package ir

import (
	"fmt"
	"strings"

	"mvslc/internal/token"
)

// IRVar is a named temporary or bound variable. Built-in and operator
// names, the "unit" sentinel, and user function/parameter names all
// exist as IRVars with those exact names. The emitter treats built-in,
// operator, "unit" and function names as reserved and never assigns them
// a stack slot; parameters do get one.
type IRVar struct {
	Name string
}

func (v IRVar) String() string { return v.Name }

// Label names a jump target, unique within the function it was minted
// in by the per-base-name suffix counters in the generator.
type Label struct {
	Name string
	Loc  token.Location
}

// Instruction is any member of a function's instruction list, including
// the Label and FunctionDef pseudo-instructions.
type Instruction interface {
	Location() token.Location
	String() string
}

func (l Label) Location() token.Location { return l.Loc }
func (l Label) String() string           { return fmt.Sprintf("Label(%s)", l.Name) }

// FunctionDef is the pseudo-instruction every function's list begins
// with, naming the function and its ordered parameter IRVars.
type FunctionDef struct {
	Loc    token.Location
	Name   string
	Params []IRVar
}

func (f FunctionDef) Location() token.Location { return f.Loc }
func (f FunctionDef) String() string {
	names := make([]string, len(f.Params))
	for i, p := range f.Params {
		names[i] = p.Name
	}
	return fmt.Sprintf("FunctionDef(%s, [%s])", f.Name, strings.Join(names, ", "))
}

type LoadIntConst struct {
	Loc   token.Location
	Value int64
	Dest  IRVar
}

func (i LoadIntConst) Location() token.Location { return i.Loc }
func (i LoadIntConst) String() string           { return fmt.Sprintf("LoadIntConst(%d, %s)", i.Value, i.Dest) }

type LoadBoolConst struct {
	Loc   token.Location
	Value bool
	Dest  IRVar
}

func (i LoadBoolConst) Location() token.Location { return i.Loc }
func (i LoadBoolConst) String() string {
	return fmt.Sprintf("LoadBoolConst(%t, %s)", i.Value, i.Dest)
}

type Copy struct {
	Loc  token.Location
	Src  IRVar
	Dest IRVar
}

func (i Copy) Location() token.Location { return i.Loc }
func (i Copy) String() string           { return fmt.Sprintf("Copy(%s, %s)", i.Src, i.Dest) }

type Jump struct {
	Loc    token.Location
	Target Label
}

func (i Jump) Location() token.Location { return i.Loc }
func (i Jump) String() string           { return fmt.Sprintf("Jump(%s)", i.Target.Name) }

type CondJump struct {
	Loc  token.Location
	Cond IRVar
	Then Label
	Else Label
}

func (i CondJump) Location() token.Location { return i.Loc }
func (i CondJump) String() string {
	return fmt.Sprintf("CondJump(%s, %s, %s)", i.Cond, i.Then.Name, i.Else.Name)
}

type Call struct {
	Loc  token.Location
	Fun  IRVar
	Args []IRVar
	Dest IRVar
}

func (i Call) Location() token.Location { return i.Loc }
func (i Call) String() string {
	args := make([]string, len(i.Args))
	for j, a := range i.Args {
		args[j] = a.Name
	}
	return fmt.Sprintf("Call(%s, [%s], %s)", i.Fun, strings.Join(args, ", "), i.Dest)
}

type Return struct {
	Loc    token.Location
	Result IRVar
}

func (i Return) Location() token.Location { return i.Loc }
func (i Return) String() string           { return fmt.Sprintf("Return(%s)", i.Result) }

// Program is the output of the generator: one instruction list per
// function, plus the order they should be emitted in so assembly output
// is deterministic rather than depending on map iteration order.
type Program struct {
	Functions map[string][]Instruction
	Order     []string
}
