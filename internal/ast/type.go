package ast

import "strings"

// Type is the resolved type of an expression or declared type annotation.
// Int, Bool and Unit are interned singletons; every comparison, scalar or
// Function, goes through Equal.
type Type struct {
	kind       typeKind
	params     []Type
	returnType *Type
}

type typeKind int

// kindUnit is the zero value, so an unresolved Type{} (such as a Node's
// Typ before the checker runs) is Unit.
const (
	kindUnit typeKind = iota
	kindInt
	kindBool
	kindFunction
)

// The three scalar types are interned singletons: every Int (Bool, Unit)
// value in the program is this exact Type. Type carries a slice-typed
// field, so it is not comparable with ==; Equal compares scalars by kind.
var (
	Int  = Type{kind: kindInt}
	Bool = Type{kind: kindBool}
	Unit = Type{kind: kindUnit}
)

// Function builds a function type with the given parameter types, in
// order, and return type.
func Function(params []Type, ret Type) Type {
	return Type{kind: kindFunction, params: params, returnType: &ret}
}

// IsFunction reports whether t is a Function type, returning its
// parameter and return types when it is.
func (t Type) IsFunction() (params []Type, ret Type, ok bool) {
	if t.kind != kindFunction {
		return nil, Type{}, false
	}
	return t.params, *t.returnType, true
}

// Equal compares two types by structural equality: scalars compare by
// kind, function types compare parameter lists and return type
// recursively.
func (t Type) Equal(o Type) bool {
	if t.kind != o.kind {
		return false
	}
	if t.kind != kindFunction {
		return true
	}
	if len(t.params) != len(o.params) {
		return false
	}
	for i := range t.params {
		if !t.params[i].Equal(o.params[i]) {
			return false
		}
	}
	return t.returnType.Equal(*o.returnType)
}

// String renders a Type for diagnostics.
func (t Type) String() string {
	switch t.kind {
	case kindInt:
		return "Int"
	case kindBool:
		return "Bool"
	case kindUnit:
		return "Unit"
	case kindFunction:
		parts := make([]string, len(t.params))
		for i, p := range t.params {
			parts[i] = p.String()
		}
		return "(" + strings.Join(parts, ", ") + ") => " + t.returnType.String()
	default:
		return "?"
	}
}

// ScalarTypeByName resolves the three scalar type names the spelling of a
// TypeExpression may name. This is always a fixed lookup against exactly
// these three names -- it never consults a scope, so a local variable
// named "Int" never shadows the type name "Int".
func ScalarTypeByName(name string) (Type, bool) {
	switch name {
	case "Int":
		return Int, true
	case "Bool":
		return Bool, true
	case "Unit":
		return Unit, true
	default:
		return Type{}, false
	}
}
