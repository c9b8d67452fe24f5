package ir

import (
	"fmt"

	"mvslc/internal/ast"
	"mvslc/internal/sourceerr"
	"mvslc/internal/token"
)

// Generate lowers a type-checked root node into one instruction list per
// function: every top-level FuncDef gets its own list, and the module's
// trailing expression (or the whole root, if it isn't a Module) becomes
// main's body. typeRoot is the type checker's root scope; its bindings
// seed the name set every function-local generator starts from.
func Generate(root *ast.Node, typeRoot *ast.SymTab[ast.Type]) (*Program, error) {
	rootTypes := typeRoot.Locals()
	prog := &Program{Functions: make(map[string][]Instruction)}

	// addFunc lowers main's body: it never takes parameters, so there is
	// no parameter-type merging to do before seeding the generator.
	addFunc := func(name string, loc token.Location, params []IRVar, body *ast.Node, isFunction bool) error {
		g := newFuncGen(cloneTypes(rootTypes), loc)
		insList, err := g.run(body, isFunction)
		if err != nil {
			return err
		}
		fd := FunctionDef{Loc: loc, Name: name, Params: params}
		full := make([]Instruction, 0, len(insList)+1)
		full = append(full, fd)
		full = append(full, insList...)
		prog.Functions[name] = full
		prog.Order = append(prog.Order, name)
		return nil
	}

	if root.Kind == ast.Module {
		sawMain := false
		for _, decl := range root.Stmts {
			if decl.Kind == ast.FuncDef {
				funcTypes := cloneTypes(rootTypes)
				params := make([]IRVar, len(decl.Params))
				for i, p := range decl.Params {
					params[i] = IRVar{Name: p.Name}
					funcTypes[p.Name] = p.ParamType.Typ
				}
				g := newFuncGen(funcTypes, decl.Loc)
				insList, err := g.run(decl.Body, true)
				if err != nil {
					return nil, err
				}
				fd := FunctionDef{Loc: decl.Loc, Name: decl.Name, Params: params}
				full := make([]Instruction, 0, len(insList)+1)
				full = append(full, fd)
				full = append(full, insList...)
				prog.Functions[decl.Name] = full
				prog.Order = append(prog.Order, decl.Name)
			} else {
				if err := addFunc("main", decl.Loc, nil, decl, false); err != nil {
					return nil, err
				}
				sawMain = true
			}
		}
		if !sawMain {
			if err := addFunc("main", root.Loc, nil, ast.NewBlock(root.Loc, nil), false); err != nil {
				return nil, err
			}
		}
		return prog, nil
	}

	if err := addFunc("main", root.Loc, nil, root, false); err != nil {
		return nil, err
	}
	return prog, nil
}

func cloneTypes(m map[string]ast.Type) map[string]ast.Type {
	out := make(map[string]ast.Type, len(m)+1)
	for k, v := range m {
		out[k] = v
	}
	return out
}

// funcGen holds the per-function mutable state: the growing instruction
// list, the name->type map used to avoid temporary-name collisions and
// to type Call destinations, and the fresh-name/fresh-label counters.
// All of it is local to one function's lowering and discarded once run
// returns, matching the stack-scoped resource model the rest of the
// pipeline follows.
type funcGen struct {
	ins         []Instruction
	varTypes    map[string]ast.Type
	labelCounts map[string]int
	varCounter  int
	loopDepth   int
	unitVar     IRVar
	scope       *ast.SymTab[IRVar]
	rootLoc     token.Location
}

func newFuncGen(rootTypes map[string]ast.Type, rootLoc token.Location) *funcGen {
	g := &funcGen{
		varTypes:    rootTypes,
		labelCounts: make(map[string]int),
		rootLoc:     rootLoc,
		unitVar:     IRVar{Name: "unit"},
	}
	g.varTypes["unit"] = ast.Unit

	scope := ast.NewSymTab[IRVar]()
	for name := range g.varTypes {
		scope.Bind(name, IRVar{Name: name})
	}
	g.scope = scope
	return g
}

// newVar mints a fresh "x<n>" temporary, skipping any name already bound
// (as a reserved built-in, a parameter, or an earlier temporary).
func (g *funcGen) newVar(t ast.Type) IRVar {
	for {
		g.varCounter++
		name := fmt.Sprintf("x%d", g.varCounter)
		if _, exists := g.varTypes[name]; exists {
			continue
		}
		g.varTypes[name] = t
		return IRVar{Name: name}
	}
}

// newLabel mints a label unique within the function: the first use of a
// base name is bare, every later use gets a numeric suffix starting at 2.
func (g *funcGen) newLabel(base string) Label {
	name := base
	if n, ok := g.labelCounts[base]; ok {
		n++
		g.labelCounts[base] = n
		name = fmt.Sprintf("%s%d", base, n)
	} else {
		g.labelCounts[base] = 1
	}
	return Label{Name: name, Loc: g.rootLoc}
}

func (g *funcGen) emit(i Instruction) { g.ins = append(g.ins, i) }

// run lowers body (the function's single expression body, always a
// Block for a FuncDef) and appends the trailing Return every function
// needs: a user function gets a synthetic Return(unit) only if its
// body didn't already end in one; main gets an explicit print call for
// an Int- or Bool-valued result before its own terminal Return(unit).
func (g *funcGen) run(body *ast.Node, isFunction bool) ([]Instruction, error) {
	g.emit(g.newLabel("start"))
	final, err := g.visit(g.scope, body)
	if err != nil {
		return nil, err
	}

	if isFunction {
		if _, ok := g.ins[len(g.ins)-1].(Return); !ok {
			g.emit(Return{Loc: body.Loc, Result: g.unitVar})
		}
		return g.ins, nil
	}

	switch finalType := g.varTypes[final.Name]; {
	case finalType.Equal(ast.Int):
		printFn, _ := g.scope.Lookup("print_int")
		g.emit(Call{Loc: body.Loc, Fun: printFn, Args: []IRVar{final}, Dest: g.newVar(ast.Int)})
	case finalType.Equal(ast.Bool):
		printFn, _ := g.scope.Lookup("print_bool")
		g.emit(Call{Loc: body.Loc, Fun: printFn, Args: []IRVar{final}, Dest: g.newVar(ast.Bool)})
	}
	g.emit(Return{Loc: body.Loc, Result: g.unitVar})
	return g.ins, nil
}

// visit lowers expr within scope st and returns the IRVar holding its
// value (g.unitVar for statement-shaped nodes with no value).
func (g *funcGen) visit(st *ast.SymTab[IRVar], expr *ast.Node) (IRVar, error) {
	loc := expr.Loc

	switch expr.Kind {
	case ast.Literal:
		switch {
		case expr.IsNone:
			return g.unitVar, nil
		case expr.IsBool:
			v := g.newVar(ast.Bool)
			g.emit(LoadBoolConst{Loc: loc, Value: expr.BoolValue, Dest: v})
			return v, nil
		default:
			v := g.newVar(ast.Int)
			g.emit(LoadIntConst{Loc: loc, Value: expr.IntValue, Dest: v})
			return v, nil
		}

	case ast.Identifier:
		v, ok := st.Lookup(expr.Name)
		if !ok {
			return IRVar{}, sourceerr.Name(loc, "variable %q is not defined", expr.Name)
		}
		return v, nil

	case ast.BinaryOp:
		return g.visitBinaryOp(st, expr)

	case ast.UnaryOp:
		opVar, ok := st.Lookup("unary_" + expr.Op)
		if !ok {
			return IRVar{}, sourceerr.Name(loc, "operator %q is not defined", expr.Op)
		}
		operand, err := g.visit(st, expr.Operand)
		if err != nil {
			return IRVar{}, err
		}
		result := g.newVar(expr.Typ)
		g.emit(Call{Loc: loc, Fun: opVar, Args: []IRVar{operand}, Dest: result})
		return result, nil

	case ast.While:
		return g.visitWhile(st, expr)

	case ast.Break, ast.Continue:
		return g.visitBreakContinue(expr)

	case ast.If:
		return g.visitIf(st, expr)

	case ast.Block:
		blockScope := st.Child()
		result := g.unitVar
		for _, stmt := range expr.Stmts {
			v, err := g.visit(blockScope, stmt)
			if err != nil {
				return IRVar{}, err
			}
			result = v
		}
		return result, nil

	case ast.Declaration:
		initVar, err := g.visit(st, expr.Init)
		if err != nil {
			return IRVar{}, err
		}
		declVar := g.newVar(expr.Init.Typ)
		g.emit(Copy{Loc: loc, Src: initVar, Dest: declVar})
		st.Bind(expr.Name, declVar)
		return g.unitVar, nil

	case ast.Return:
		if expr.Operand != nil {
			result, err := g.visit(st, expr.Operand)
			if err != nil {
				return IRVar{}, err
			}
			g.emit(Return{Loc: loc, Result: result})
		} else {
			g.emit(Return{Loc: loc, Result: g.unitVar})
		}
		return g.unitVar, nil

	case ast.Call:
		args := make([]IRVar, len(expr.Args))
		for i, a := range expr.Args {
			v, err := g.visit(st, a)
			if err != nil {
				return IRVar{}, err
			}
			args[i] = v
		}
		fn, ok := st.Lookup(expr.Name)
		if !ok {
			return IRVar{}, sourceerr.Name(loc, "variable not found: %q", expr.Name)
		}
		result := g.newVar(expr.Typ)
		g.emit(Call{Loc: loc, Fun: fn, Args: args, Dest: result})
		return result, nil

	default:
		return g.unitVar, nil
	}
}

func (g *funcGen) visitBinaryOp(st *ast.SymTab[IRVar], expr *ast.Node) (IRVar, error) {
	loc := expr.Loc

	if expr.Op == "=" {
		left, err := g.visit(st, expr.Left)
		if err != nil {
			return IRVar{}, err
		}
		right, err := g.visit(st, expr.Right)
		if err != nil {
			return IRVar{}, err
		}
		g.emit(Copy{Loc: loc, Src: right, Dest: left})
		return left, nil
	}

	if expr.Op == "and" || expr.Op == "or" {
		left, err := g.visit(st, expr.Left)
		if err != nil {
			return IRVar{}, err
		}
		lRight := g.newLabel(expr.Op + "_right")
		lSkip := g.newLabel(expr.Op + "_skip")
		lEnd := g.newLabel(expr.Op + "_end")
		if expr.Op == "and" {
			g.emit(CondJump{Loc: loc, Cond: left, Then: lRight, Else: lSkip})
		} else {
			g.emit(CondJump{Loc: loc, Cond: left, Then: lSkip, Else: lRight})
		}

		g.emit(lRight)
		right, err := g.visit(st, expr.Right)
		if err != nil {
			return IRVar{}, err
		}
		result := g.newVar(ast.Bool)
		g.emit(Copy{Loc: loc, Src: right, Dest: result})
		g.emit(Jump{Loc: loc, Target: lEnd})

		g.emit(lSkip)
		shortCircuit := expr.Op == "or"
		g.emit(LoadBoolConst{Loc: loc, Value: shortCircuit, Dest: result})
		g.emit(Jump{Loc: loc, Target: lEnd})

		g.emit(lEnd)
		return result, nil
	}

	left, err := g.visit(st, expr.Left)
	if err != nil {
		return IRVar{}, err
	}
	opVar, ok := st.Lookup(expr.Op)
	if !ok {
		return IRVar{}, sourceerr.Name(loc, "operator %q is not defined", expr.Op)
	}
	right, err := g.visit(st, expr.Right)
	if err != nil {
		return IRVar{}, err
	}
	result := g.newVar(expr.Typ)
	g.emit(Call{Loc: loc, Fun: opVar, Args: []IRVar{left, right}, Dest: result})
	return result, nil
}

func (g *funcGen) visitWhile(st *ast.SymTab[IRVar], expr *ast.Node) (IRVar, error) {
	loc := expr.Loc
	lStart := g.newLabel("while_start")
	lBody := g.newLabel("while_body")
	lEnd := g.newLabel("while_end")

	g.emit(lStart)
	cond, err := g.visit(st, expr.Cond)
	if err != nil {
		return IRVar{}, err
	}
	g.emit(CondJump{Loc: loc, Cond: cond, Then: lBody, Else: lEnd})

	g.emit(lBody)
	g.loopDepth++
	if _, err := g.visit(st, expr.Body); err != nil {
		return IRVar{}, err
	}
	g.emit(Jump{Loc: loc, Target: lStart})

	g.emit(lEnd)
	g.loopDepth--
	return g.unitVar, nil
}

// visitBreakContinue computes the jump target from the current loop
// depth: at depth 1 it targets the bare labels ("while_end",
// "while_start"), and at depth n > 1 the labels with suffix n, which
// are the names visitWhile mints for a single chain of nested loops.
// This targets nesting depth only: two
// sibling (non-nested) top-level loops are both at depth 1, so a break
// in the second loop still targets the first loop's bare while_end,
// even though the second loop's own end label was minted while_end2.
func (g *funcGen) visitBreakContinue(expr *ast.Node) (IRVar, error) {
	if g.loopDepth == 0 {
		word := "break"
		if expr.Kind == ast.Continue {
			word = "continue"
		}
		return IRVar{}, sourceerr.Syntax(expr.Loc, "%s outside of loop", word)
	}
	base := "while_end"
	if expr.Kind == ast.Continue {
		base = "while_start"
	}
	name := base
	if g.loopDepth > 1 {
		name = fmt.Sprintf("%s%d", base, g.loopDepth)
	}
	g.emit(Jump{Loc: expr.Loc, Target: Label{Name: name, Loc: expr.Loc}})
	return g.unitVar, nil
}

func (g *funcGen) visitIf(st *ast.SymTab[IRVar], expr *ast.Node) (IRVar, error) {
	loc := expr.Loc
	lThen := g.newLabel("then")
	cond, err := g.visit(st, expr.Cond)
	if err != nil {
		return IRVar{}, err
	}

	if expr.Else == nil {
		lIfEnd := g.newLabel("if_end")
		g.emit(CondJump{Loc: loc, Cond: cond, Then: lThen, Else: lIfEnd})
		g.emit(lThen)
		if _, err := g.visit(st, expr.Then); err != nil {
			return IRVar{}, err
		}
		g.emit(lIfEnd)
		return g.unitVar, nil
	}

	lElse := g.newLabel("else")
	lIfEnd := g.newLabel("if_end")
	g.emit(CondJump{Loc: loc, Cond: cond, Then: lThen, Else: lElse})

	result := g.newVar(expr.Typ)

	g.emit(lThen)
	thenVar, err := g.visit(st, expr.Then)
	if err != nil {
		return IRVar{}, err
	}
	g.emit(Copy{Loc: loc, Src: thenVar, Dest: result})
	g.emit(Jump{Loc: loc, Target: lIfEnd})

	g.emit(lElse)
	elseVar, err := g.visit(st, expr.Else)
	if err != nil {
		return IRVar{}, err
	}
	g.emit(Copy{Loc: loc, Src: elseVar, Dest: result})

	g.emit(lIfEnd)
	return result, nil
}
