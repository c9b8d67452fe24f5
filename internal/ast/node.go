// Package ast defines the typed abstract syntax tree produced by the
// parser, the Type model it is annotated with, and the generic scope
// stack shared by the type checker and the IR generator.
//
// Every expression kind is represented by the single Node struct below,
// tagged by Kind and dispatched on with an exhaustive switch, with named
// fields per kind rather than an untyped Data/Children pair.
package ast

import "mvslc/internal/token"

// Kind identifies which expression (or declaration-shaped) variant a Node
// represents.
type Kind int

const (
	Literal Kind = iota
	Identifier
	TypeExpr
	BinaryOp
	UnaryOp
	If
	While
	Break
	Continue
	Declaration
	Block
	Call
	Return
	FuncParam
	FuncDef
	Module
)

var kindNames = [...]string{
	"Literal", "Identifier", "TypeExpr", "BinaryOp", "UnaryOp", "If",
	"While", "Break", "Continue", "Declaration", "Block", "Call",
	"Return", "FuncParam", "FuncDef", "Module",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Unknown"
	}
	return kindNames[k]
}

// Node is every expression and top-level construct in the language.
// Fields not relevant to Kind are left zero; see the comment above each
// group for which Kind populates it.
type Node struct {
	Kind Kind
	Loc  token.Location
	Typ  Type // resolved by the checker; Unit until then

	// Literal: IsNone selects the unit sentinel, IsBool selects
	// BoolValue, otherwise IntValue holds the literal's value.
	IntValue  int64
	BoolValue bool
	IsBool    bool
	IsNone    bool

	// Identifier, TypeExpr, Declaration's bound name, FuncParam's name,
	// FuncDef's name, Call's callee name.
	Name string

	// BinaryOp, UnaryOp: Op is the operator spelling ("+", "and", "-", ...).
	Op    string
	Left  *Node // BinaryOp
	Right *Node // BinaryOp

	// UnaryOp, Return (reused as the optional result)
	Operand *Node

	// If, While: Cond is the condition.
	Cond *Node
	Then *Node // If: then-branch
	Else *Node // If: else-branch, nil if absent

	// While: loop body. FuncDef: function body (always a Block).
	Body *Node

	// Declaration: Init is the initializer expression, TypeAnno an
	// optional TypeExpr node.
	Init     *Node
	TypeAnno *Node

	// Block, Module: ordered children. For Module these are FuncDef or
	// plain expression nodes.
	Stmts []*Node

	// Call: the ordered argument list.
	Args []*Node

	// FuncParam: the declared type expression.
	ParamType *Node

	// FuncDef: ordered parameters (FuncParam nodes) and optional return
	// type expression (TypeExpr node, nil meaning Unit).
	Params  []*Node
	RetType *Node
}

// NoneLiteral builds the Literal(None) node used for unit-valued trailing
// positions in blocks.
func NoneLiteral(loc token.Location) *Node {
	return &Node{Kind: Literal, Loc: loc, IsNone: true, Typ: Unit}
}

// IntLiteral builds a Literal node holding an integer value.
func IntLiteral(loc token.Location, v int64) *Node {
	return &Node{Kind: Literal, Loc: loc, IntValue: v}
}

// BoolLiteral builds a Literal node holding a boolean value.
func BoolLiteral(loc token.Location, v bool) *Node {
	return &Node{Kind: Literal, Loc: loc, BoolValue: v, IsBool: true}
}

// NewIdentifier builds an Identifier reference node.
func NewIdentifier(loc token.Location, name string) *Node {
	return &Node{Kind: Identifier, Loc: loc, Name: name}
}

// NewTypeExpr builds the surface spelling of a type annotation, resolved
// later by the checker.
func NewTypeExpr(loc token.Location, name string) *Node {
	return &Node{Kind: TypeExpr, Loc: loc, Name: name}
}

// NewBinaryOp builds a binary operator application.
func NewBinaryOp(loc token.Location, left *Node, op string, right *Node) *Node {
	return &Node{Kind: BinaryOp, Loc: loc, Left: left, Op: op, Right: right}
}

// NewUnaryOp builds a prefix unary operator application.
func NewUnaryOp(loc token.Location, op string, operand *Node) *Node {
	return &Node{Kind: UnaryOp, Loc: loc, Op: op, Operand: operand}
}

// NewIf builds a conditional, with elseBranch nil when there is none.
func NewIf(loc token.Location, cond, thenBranch, elseBranch *Node) *Node {
	return &Node{Kind: If, Loc: loc, Cond: cond, Then: thenBranch, Else: elseBranch}
}

// NewWhile builds a while-loop.
func NewWhile(loc token.Location, cond, body *Node) *Node {
	return &Node{Kind: While, Loc: loc, Cond: cond, Body: body}
}

// NewBreak builds a break statement.
func NewBreak(loc token.Location) *Node { return &Node{Kind: Break, Loc: loc} }

// NewContinue builds a continue statement.
func NewContinue(loc token.Location) *Node { return &Node{Kind: Continue, Loc: loc} }

// NewDeclaration builds a var-declaration, with typeAnno nil when no
// annotation was written.
func NewDeclaration(loc token.Location, name string, init, typeAnno *Node) *Node {
	return &Node{Kind: Declaration, Loc: loc, Name: name, Init: init, TypeAnno: typeAnno}
}

// NewBlock builds a brace-delimited sequence of statements.
func NewBlock(loc token.Location, stmts []*Node) *Node {
	return &Node{Kind: Block, Loc: loc, Stmts: stmts}
}

// NewCall builds a function call.
func NewCall(loc token.Location, name string, args []*Node) *Node {
	return &Node{Kind: Call, Loc: loc, Name: name, Args: args}
}

// NewReturn builds a return statement, with result nil for a bare return.
func NewReturn(loc token.Location, result *Node) *Node {
	return &Node{Kind: Return, Loc: loc, Operand: result}
}

// NewFuncParam builds a single typed function parameter.
func NewFuncParam(loc token.Location, name string, typeExpr *Node) *Node {
	return &Node{Kind: FuncParam, Loc: loc, Name: name, ParamType: typeExpr}
}

// NewFuncDef builds a function definition.
func NewFuncDef(loc token.Location, name string, params []*Node, retType, body *Node) *Node {
	return &Node{Kind: FuncDef, Loc: loc, Name: name, Params: params, RetType: retType, Body: body}
}

// NewModule builds the top-level module wrapping function definitions and
// an optional trailing expression.
func NewModule(loc token.Location, decls []*Node) *Node {
	return &Node{Kind: Module, Loc: loc, Stmts: decls}
}
