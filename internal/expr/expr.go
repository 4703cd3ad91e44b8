// Package expr models the bound arguments the inference engine dispatches
// on: typed expressions, unbound lambdas, method groups and tuple
// literals. The binder that produces them is out of scope here; the
// scenario harness builds them directly.
package expr

import (
	"strings"

	"github.com/funvibe/sable/internal/types"
)

// Expr is a bound argument expression.
type Expr interface {
	String() string
	exprNode()
}

// Typed is an ordinary expression that already carries a type. A nil Type
// models null and other typeless expressions.
type Typed struct {
	Type types.Type
}

func (e *Typed) exprNode() {}

func (e *Typed) String() string {
	if e.Type == nil {
		return "null"
	}
	return "expr:" + e.Type.String()
}

// LambdaParam is a declared parameter of an anonymous function. Type is
// nil for implicitly typed parameters.
type LambdaParam struct {
	Name string
	Type types.Type
	Ref  types.RefKind
}

// Lambda is an unbound anonymous function. Body stands in for the lambda
// return-type analyzer's view of the body: given the delegate parameter
// types it yields the inferred return type, or reports that the body has
// none (error-recovery bodies, void bodies).
type Lambda struct {
	Params   []LambdaParam
	Explicit bool
	Body     func(paramTypes []types.Type) (types.Type, bool)
}

func (e *Lambda) exprNode() {}

func (e *Lambda) String() string {
	names := make([]string, len(e.Params))
	for i, p := range e.Params {
		if p.Type != nil {
			names[i] = p.Type.String() + " " + p.Name
		} else {
			names[i] = p.Name
		}
	}
	return "(" + strings.Join(names, ", ") + ") => ..."
}

// MethodGroup is an unresolved reference to one or more methods sharing a
// name. Resolution against a delegate's parameter list is performed by an
// external resolver.
type MethodGroup struct {
	Name       string
	Candidates []*types.Method
}

func (e *MethodGroup) exprNode() {}

func (e *MethodGroup) String() string { return "group:" + e.Name }

// TupleLit is a tuple literal whose elements are themselves bound
// arguments; elements may lack a natural type (nested lambdas, null).
type TupleLit struct {
	Elems []Expr
	Names []string
}

func (e *TupleLit) exprNode() {}

func (e *TupleLit) String() string {
	parts := make([]string, len(e.Elems))
	for i, el := range e.Elems {
		parts[i] = el.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// NaturalType returns the tuple type formed from the element types when
// every element has one.
func (e *TupleLit) NaturalType() types.Type {
	elems := make([]types.Type, len(e.Elems))
	for i, el := range e.Elems {
		t := TypeOf(el)
		if t == nil {
			return nil
		}
		elems[i] = t
	}
	var names []string
	for _, n := range e.Names {
		if n != "" {
			names = e.Names
			break
		}
	}
	return &types.Tuple{Elems: elems, Names: names}
}

// TypeOf returns the natural type of a bound argument, or nil when it has
// none (lambdas, method groups, null, typeless tuple literals).
func TypeOf(e Expr) types.Type {
	switch e := e.(type) {
	case *Typed:
		return e.Type
	case *TupleLit:
		return e.NaturalType()
	default:
		return nil
	}
}
