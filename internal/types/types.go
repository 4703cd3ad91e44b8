package types

import (
	"fmt"
	"strings"
)

// Type is the interface for all types in the Sable type model.
type Type interface {
	String() string
}

// Variance is the declaration-site variance marking of a type parameter.
type Variance int

const (
	Invariant     Variance = iota
	Covariant              // out
	Contravariant          // in
)

// RefKind is the pass-kind of a method parameter.
type RefKind int

const (
	ByValue RefKind = iota
	Ref
	Out
	In
)

func (r RefKind) String() string {
	switch r {
	case Ref:
		return "ref"
	case Out:
		return "out"
	case In:
		return "in"
	default:
		return ""
	}
}

// TypeKind classifies type definitions.
type TypeKind int

const (
	Class TypeKind = iota
	Struct
	Interface
	Delegate
)

// TypeParam is a type parameter of a method or a type definition.
// Identity is pointer identity: two parameters with the same name declared
// by different methods are different parameters.
type TypeParam struct {
	Name     string
	Ordinal  int
	Variance Variance

	// Bound is the effective base class used when walking base chains
	// during inference and conversion classification. Nil means object.
	Bound Type
	// IfaceBounds are the effective interfaces of the parameter.
	IfaceBounds []Type
}

func (t *TypeParam) String() string { return t.Name }

// TypeDef is an uninstantiated type definition (the "original definition").
type TypeDef struct {
	Name   string
	Kind   TypeKind
	Params []*TypeParam

	// Base is the base class template over Params. Nil means object
	// (or no base for interfaces).
	Base Type
	// Interfaces are the directly declared interface templates over Params.
	Interfaces []Type
	// Invoke is the delegate signature template over Params (Kind == Delegate).
	Invoke *Signature

	// TupleShape marks a nominal definition that is shape-compatible with
	// the ambient tuple of cardinality len(Params).
	TupleShape bool
	// ExprTree marks the expression-tree wrapper: a definition whose single
	// type argument is a delegate type describing the tree's shape.
	ExprTree bool
}

// New constructs the instantiation of d with the given type arguments.
// Arity is the caller's responsibility.
func (d *TypeDef) New(args ...Type) *Named {
	return &Named{Def: d, Args: args}
}

// AsType returns the definition applied to its own parameters
// (the "open" form used inside templates).
func (d *TypeDef) AsType() *Named {
	args := make([]Type, len(d.Params))
	for i, p := range d.Params {
		args[i] = p
	}
	return &Named{Def: d, Args: args}
}

// Named is a (possibly generic) nominal type: a definition plus type
// arguments. Non-generic types carry no arguments.
type Named struct {
	Def  *TypeDef
	Args []Type
}

func (t *Named) String() string {
	if len(t.Args) == 0 {
		return t.Def.Name
	}
	parts := make([]string, len(t.Args))
	for i, a := range t.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s<%s>", t.Def.Name, strings.Join(parts, ", "))
}

// Array is an array type of the given rank.
type Array struct {
	Elem Type
	Rank int
}

func (t *Array) String() string {
	if t.Rank == 1 {
		return t.Elem.String() + "[]"
	}
	return fmt.Sprintf("%s[%s]", t.Elem.String(), strings.Repeat(",", t.Rank-1))
}

// Nullable is a nullable value type T?.
type Nullable struct {
	Elem Type
}

func (t *Nullable) String() string { return t.Elem.String() + "?" }

// Tuple is the ambient tuple type. Names is either nil or parallel to
// Elems; an empty string means the element is unnamed.
type Tuple struct {
	Elems []Type
	Names []string
}

func (t *Tuple) String() string {
	parts := make([]string, len(t.Elems))
	for i, e := range t.Elems {
		if t.Names != nil && t.Names[i] != "" {
			parts[i] = t.Names[i] + ": " + e.String()
		} else {
			parts[i] = e.String()
		}
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// Name returns the name of element i, or "" if unnamed.
func (t *Tuple) Name(i int) string {
	if t.Names == nil {
		return ""
	}
	return t.Names[i]
}

// dynamicType is the distinguished dynamic reference type.
type dynamicType struct{}

func (dynamicType) String() string { return "dynamic" }

// Dynamic is the unique dynamic type.
var Dynamic Type = dynamicType{}

// ErrorType is a placeholder produced when inference leaves a type
// parameter unfixed. It retains the parameter's display name.
type ErrorType struct {
	Name string
}

func (t *ErrorType) String() string { return "?" + t.Name }

// Param is a formal parameter of a signature.
type Param struct {
	Name string
	Type Type
	Ref  RefKind
}

func (p Param) String() string {
	s := p.Type.String()
	if p.Ref != ByValue {
		s = p.Ref.String() + " " + s
	}
	if p.Name != "" {
		s += " " + p.Name
	}
	return s
}

// Signature is a parameter list plus return type, used for delegate
// shapes and resolved method-group members.
type Signature struct {
	Params []Param
	Return Type
}

func (s *Signature) String() string {
	parts := make([]string, len(s.Params))
	for i, p := range s.Params {
		parts[i] = p.String()
	}
	ret := "void"
	if s.Return != nil {
		ret = s.Return.String()
	}
	return fmt.Sprintf("(%s) -> %s", strings.Join(parts, ", "), ret)
}

// ParamTypes returns the parameter types of the signature.
func (s *Signature) ParamTypes() []Type {
	ts := make([]Type, len(s.Params))
	for i, p := range s.Params {
		ts[i] = p.Type
	}
	return ts
}

// Method is a (possibly generic) method: the unit the inference engine
// works on.
type Method struct {
	Name       string
	TypeParams []*TypeParam
	Params     []Param
	Return     Type

	// Containing is the fully constructed containing type, if any.
	Containing *Named
}

func (m *Method) String() string {
	var b strings.Builder
	b.WriteString(m.Name)
	if len(m.TypeParams) > 0 {
		names := make([]string, len(m.TypeParams))
		for i, p := range m.TypeParams {
			names[i] = p.Name
		}
		b.WriteString("<" + strings.Join(names, ", ") + ">")
	}
	parts := make([]string, len(m.Params))
	for i, p := range m.Params {
		parts[i] = p.String()
	}
	b.WriteString("(" + strings.Join(parts, ", ") + ")")
	if m.Return != nil && !Identical(m.Return, Void) {
		b.WriteString(" " + m.Return.String())
	}
	return b.String()
}

// ParamTypes returns the formal parameter types of the method.
func (m *Method) ParamTypes() []Type {
	ts := make([]Type, len(m.Params))
	for i, p := range m.Params {
		ts[i] = p.Type
	}
	return ts
}

// RefKinds returns the pass-kinds of the method's parameters, or nil when
// every parameter is by-value.
func (m *Method) RefKinds() []RefKind {
	any := false
	for _, p := range m.Params {
		if p.Ref != ByValue {
			any = true
			break
		}
	}
	if !any {
		return nil
	}
	ks := make([]RefKind, len(m.Params))
	for i, p := range m.Params {
		ks[i] = p.Ref
	}
	return ks
}
