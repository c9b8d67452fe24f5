package ast

import (
	"fmt"
	"strings"
)

// Print writes an indented dump of the tree rooted at n to sb, one node
// per line, used behind the -ast flag.
func (n *Node) Print(sb *strings.Builder, depth int) {
	if n == nil {
		return
	}
	indent := strings.Repeat("  ", depth)
	fmt.Fprintf(sb, "%s%s", indent, n.Kind)
	switch n.Kind {
	case Literal:
		switch {
		case n.IsNone:
			fmt.Fprint(sb, " none")
		case n.IsBool:
			fmt.Fprintf(sb, " %t", n.BoolValue)
		default:
			fmt.Fprintf(sb, " %d", n.IntValue)
		}
	case Identifier:
		fmt.Fprintf(sb, " %s", n.Name)
	case TypeExpr:
		fmt.Fprintf(sb, " %s", n.Name)
	case BinaryOp, UnaryOp:
		fmt.Fprintf(sb, " %s", n.Op)
	case Declaration, FuncParam, FuncDef, Call:
		fmt.Fprintf(sb, " %s", n.Name)
	}
	fmt.Fprintln(sb)

	for _, c := range n.children() {
		c.Print(sb, depth+1)
	}
}

// children returns n's direct subexpressions in source order, for Print
// and any future tree walk that wants generic traversal.
func (n *Node) children() []*Node {
	var out []*Node
	add := func(c *Node) {
		if c != nil {
			out = append(out, c)
		}
	}
	switch n.Kind {
	case BinaryOp:
		add(n.Left)
		add(n.Right)
	case UnaryOp:
		add(n.Operand)
	case If:
		add(n.Cond)
		add(n.Then)
		add(n.Else)
	case While:
		add(n.Cond)
		add(n.Body)
	case Declaration:
		add(n.TypeAnno)
		add(n.Init)
	case Block:
		out = append(out, n.Stmts...)
	case Call:
		out = append(out, n.Args...)
	case Return:
		add(n.Operand)
	case FuncParam:
		add(n.ParamType)
	case FuncDef:
		out = append(out, n.Params...)
		add(n.RetType)
		add(n.Body)
	case Module:
		out = append(out, n.Stmts...)
	}
	return out
}
