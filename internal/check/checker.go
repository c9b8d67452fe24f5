// Package check walks the AST assigning a Type to every node: a root
// scope pre-populated with built-in and operator signatures, a two-sweep
// pass over a Module's function definitions, and a single recursive
// getType/assignType dispatch reused for both the top-level expression
// and every function body.
package check

import (
	"mvslc/internal/ast"
	"mvslc/internal/sourceerr"
)

type checker struct {
	root       *ast.SymTab[ast.Type]
	funcTables map[string]*ast.SymTab[ast.Type]

	// expectedReturn is non-nil while checking a function body; it holds
	// that function's declared return type for the duration of the
	// function's check and is cleared afterward.
	expectedReturn *ast.Type
}

// Check type-checks root, returning the root expression's type and the
// root scope, whose bindings ir.Generate uses to seed its own name set.
func Check(root *ast.Node) (ast.Type, *ast.SymTab[ast.Type], error) {
	c := &checker{
		root:       ast.NewSymTab[ast.Type](),
		funcTables: make(map[string]*ast.SymTab[ast.Type]),
	}
	c.root.Bind("print_int", ast.Function([]ast.Type{ast.Int}, ast.Unit))
	c.root.Bind("print_bool", ast.Function([]ast.Type{ast.Bool}, ast.Unit))
	c.root.Bind("read_int", ast.Function(nil, ast.Int))
	for _, op := range []string{"+", "-", "*", "/", "%"} {
		c.root.Bind(op, ast.Function([]ast.Type{ast.Int, ast.Int}, ast.Int))
	}
	for _, op := range []string{"<", "<=", ">", ">="} {
		c.root.Bind(op, ast.Function([]ast.Type{ast.Int, ast.Int}, ast.Bool))
	}
	c.root.Bind("unary_-", ast.Function([]ast.Type{ast.Int}, ast.Int))
	c.root.Bind("unary_not", ast.Function([]ast.Type{ast.Bool}, ast.Bool))
	c.root.Bind("and", ast.Function([]ast.Type{ast.Bool, ast.Bool}, ast.Bool))
	c.root.Bind("or", ast.Function([]ast.Type{ast.Bool, ast.Bool}, ast.Bool))
	// "==" and "!=" are handled specially in getType's BinaryOp case and
	// never consult this binding for their own type-checking. It is
	// bound anyway so the name is present at root scope: the IR
	// generator seeds its own symbol table from these root bindings and
	// needs an IRVar named "==" / "!=" to build the Call instruction it
	// lowers equality/inequality into.
	c.root.Bind("==", ast.Function(nil, ast.Bool))
	c.root.Bind("!=", ast.Function(nil, ast.Bool))

	var exprBody *ast.Node
	if root.Kind == ast.Module {
		var funcDefs []*ast.Node
		for _, d := range root.Stmts {
			if d.Kind == ast.FuncDef {
				funcDefs = append(funcDefs, d)
			} else {
				exprBody = d
			}
		}
		if err := c.registerFunctions(funcDefs); err != nil {
			return ast.Type{}, nil, err
		}
		if err := c.checkFunctions(funcDefs); err != nil {
			return ast.Type{}, nil, err
		}
	} else {
		exprBody = root
	}

	typ, err := c.assignType(exprBody, c.root.Child())
	if err != nil {
		return ast.Type{}, nil, err
	}
	return typ, c.root, nil
}

// registerFunctions is the first sweep: every FuncDef's signature is
// bound in the root scope before any body is checked, so mutually
// recursive and forward-referencing calls resolve.
func (c *checker) registerFunctions(funcs []*ast.Node) error {
	for _, fn := range funcs {
		if c.root.InLocals(fn.Name) {
			return sourceerr.Name(fn.Loc, "function %q already declared", fn.Name)
		}
		paramScope := c.root.Child()
		c.funcTables[fn.Name] = paramScope

		paramTypes := make([]ast.Type, len(fn.Params))
		for i, param := range fn.Params {
			pt, err := c.convertType(param.ParamType)
			if err != nil {
				return err
			}
			paramTypes[i] = pt
			paramScope.Bind(param.Name, pt)
		}
		retType, err := c.convertType(fn.RetType)
		if err != nil {
			return err
		}
		c.root.Bind(fn.Name, ast.Function(paramTypes, retType))
	}
	return nil
}

// checkFunctions is the second sweep: each body is checked against its
// parameter scope, with the declared return type as the expected return
// type for every return statement inside it.
func (c *checker) checkFunctions(funcs []*ast.Node) error {
	for _, fn := range funcs {
		retType, err := c.convertType(fn.RetType)
		if err != nil {
			return err
		}
		c.expectedReturn = &retType
		if _, err := c.assignType(fn.Body, c.funcTables[fn.Name]); err != nil {
			return err
		}
		sig, _ := c.root.Lookup(fn.Name)
		fn.Typ = sig
	}
	c.expectedReturn = nil
	return nil
}

// convertType resolves a TypeExpr node to a Type, or Unit when expr is
// nil (no annotation written). Type names are always looked up against
// the fixed scalar set, never a scope -- see ast.ScalarTypeByName.
func (c *checker) convertType(expr *ast.Node) (ast.Type, error) {
	if expr == nil {
		return ast.Unit, nil
	}
	t, ok := ast.ScalarTypeByName(expr.Name)
	if !ok {
		return ast.Type{}, sourceerr.Type(expr.Loc, "unknown type %q", expr.Name)
	}
	expr.Typ = t
	return t, nil
}

// assignType computes node's type via getType and writes it back into
// node.Typ. A nil node (a bare return's result, a module with no
// trailing expression) types as Unit without touching anything.
func (c *checker) assignType(node *ast.Node, table *ast.SymTab[ast.Type]) (ast.Type, error) {
	t, err := c.getType(node, table)
	if err != nil {
		return ast.Type{}, err
	}
	if node != nil {
		node.Typ = t
	}
	return t, nil
}

func (c *checker) getType(node *ast.Node, table *ast.SymTab[ast.Type]) (ast.Type, error) {
	if node == nil {
		return ast.Unit, nil
	}

	switch node.Kind {
	case ast.Literal:
		switch {
		case node.IsNone:
			return ast.Unit, nil
		case node.IsBool:
			return ast.Bool, nil
		default:
			return ast.Int, nil
		}

	case ast.Identifier:
		t, ok := table.Lookup(node.Name)
		if !ok {
			return ast.Type{}, sourceerr.Name(node.Loc, "variable %q is not defined", node.Name)
		}
		return t, nil

	case ast.BinaryOp:
		t1, err := c.assignType(node.Left, table)
		if err != nil {
			return ast.Type{}, err
		}
		t2, err := c.assignType(node.Right, table)
		if err != nil {
			return ast.Type{}, err
		}
		switch node.Op {
		case "=", "==", "!=":
			if !t1.Equal(t2) {
				return ast.Type{}, sourceerr.Type(node.Loc, "operator %q: %s is not %s", node.Op, t1, t2)
			}
			if node.Op == "=" {
				if node.Left.Kind != ast.Identifier {
					return ast.Type{}, sourceerr.Syntax(node.Loc, "left side of assignment must be an identifier")
				}
				return t2, nil
			}
			return ast.Bool, nil
		}

		sig, ok := table.Lookup(node.Op)
		if !ok {
			return ast.Type{}, sourceerr.Name(node.Loc, "operator %q is not defined", node.Op)
		}
		params, ret, _ := sig.IsFunction()
		if !t1.Equal(params[0]) {
			return ast.Type{}, sourceerr.Type(node.Loc, "operator %q left side expected %s, got %s", node.Op, params[0], t1)
		}
		if !t2.Equal(params[1]) {
			return ast.Type{}, sourceerr.Type(node.Loc, "operator %q right side expected %s, got %s", node.Op, params[1], t2)
		}
		return ret, nil

	case ast.UnaryOp:
		t1, err := c.assignType(node.Operand, table)
		if err != nil {
			return ast.Type{}, err
		}
		sig, ok := table.Lookup("unary_" + node.Op)
		if !ok {
			return ast.Type{}, sourceerr.Name(node.Loc, "operator %q is not defined", node.Op)
		}
		params, ret, _ := sig.IsFunction()
		if !t1.Equal(params[0]) {
			return ast.Type{}, sourceerr.Type(node.Loc, "operator %q expected %s, got %s", node.Op, params[0], t1)
		}
		return ret, nil

	case ast.While:
		t1, err := c.assignType(node.Cond, table)
		if err != nil {
			return ast.Type{}, err
		}
		if !t1.Equal(ast.Bool) {
			return ast.Type{}, sourceerr.Type(node.Loc, "while-loop condition should be Bool, got %s", t1)
		}
		return c.assignType(node.Body, table)

	case ast.If:
		t1, err := c.assignType(node.Cond, table)
		if err != nil {
			return ast.Type{}, err
		}
		if !t1.Equal(ast.Bool) {
			return ast.Type{}, sourceerr.Type(node.Loc, "if condition expected Bool, got %s", t1)
		}
		t2, err := c.assignType(node.Then, table)
		if err != nil {
			return ast.Type{}, err
		}
		if node.Else == nil {
			return ast.Unit, nil
		}
		t3, err := c.assignType(node.Else, table)
		if err != nil {
			return ast.Type{}, err
		}
		if t3.Equal(ast.Unit) {
			return t2, nil
		}
		if !t2.Equal(t3) {
			return ast.Type{}, sourceerr.Type(node.Loc, "if branches disagree: expected %s, got %s", t2, t3)
		}
		return t3, nil

	case ast.Block:
		blockScope := table.Child()
		typ := ast.Unit
		for _, stmt := range node.Stmts {
			t, err := c.assignType(stmt, blockScope)
			if err != nil {
				return ast.Type{}, err
			}
			typ = t
		}
		return typ, nil

	case ast.Declaration:
		t1, err := c.assignType(node.Init, table)
		if err != nil {
			return ast.Type{}, err
		}
		if node.TypeAnno != nil {
			t2, err := c.convertType(node.TypeAnno)
			if err != nil {
				return ast.Type{}, err
			}
			if !t1.Equal(t2) {
				return ast.Type{}, sourceerr.Type(node.Loc, "expected %s, got %s", t2, t1)
			}
		}
		if table.InLocals(node.Name) {
			return ast.Type{}, sourceerr.Name(node.Loc, "variable %q already declared in this scope", node.Name)
		}
		table.Bind(node.Name, t1)
		return ast.Unit, nil

	case ast.Return:
		if c.expectedReturn == nil {
			return ast.Type{}, sourceerr.Syntax(node.Loc, "return outside function")
		}
		t1, err := c.assignType(node.Operand, table)
		if err != nil {
			return ast.Type{}, err
		}
		if !t1.Equal(*c.expectedReturn) {
			return ast.Type{}, sourceerr.Type(node.Loc, "expected %s, got %s", *c.expectedReturn, t1)
		}
		return ast.Unit, nil

	case ast.Call:
		sig, ok := table.Lookup(node.Name)
		if !ok {
			return ast.Type{}, sourceerr.Name(node.Loc, "variable not found: %q", node.Name)
		}
		params, ret, ok := sig.IsFunction()
		if !ok {
			return ast.Type{}, sourceerr.Type(node.Loc, "%q is not callable", node.Name)
		}
		if len(node.Args) != len(params) {
			return ast.Type{}, sourceerr.Type(node.Loc, "function %q expects %d argument(s), got %d", node.Name, len(params), len(node.Args))
		}
		for i, arg := range node.Args {
			argType, err := c.assignType(arg, table)
			if err != nil {
				return ast.Type{}, err
			}
			if !argType.Equal(params[i]) {
				return ast.Type{}, sourceerr.Type(node.Loc, "function %q parameter %d expected %s, got %s", node.Name, i+1, params[i], argType)
			}
		}
		return ret, nil

	default:
		// Break, Continue, FuncDef (handled by the two-sweep driver
		// above) and any other statement-only node: no further type
		// information.
		return ast.Unit, nil
	}
}
