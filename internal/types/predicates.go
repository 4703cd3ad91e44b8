package types

// DelegateOf returns the delegate shape of t: for delegate types the
// instantiated invoke signature, for expression-tree types the shape of
// the wrapped delegate. Returns nil for everything else.
func DelegateOf(t Type) *Signature {
	named, ok := t.(*Named)
	if !ok {
		return nil
	}
	if named.Def.ExprTree {
		if len(named.Args) != 1 {
			return nil
		}
		return DelegateOf(named.Args[0])
	}
	if named.Def.Kind != Delegate || named.Def.Invoke == nil {
		return nil
	}
	return SubstituteSignature(named.Def.Invoke, DefSubst(named))
}

// TupleElems returns the element types of t when t is either the ambient
// tuple of cardinality k or a shape-compatible nominal type of the same
// cardinality.
func TupleElems(t Type, k int) ([]Type, bool) {
	switch t := t.(type) {
	case *Tuple:
		if len(t.Elems) == k {
			return t.Elems, true
		}
	case *Named:
		if t.Def.TupleShape && len(t.Args) == k {
			return t.Args, true
		}
	}
	return nil, false
}

// AsTuple views t as a tuple of any cardinality, unwrapping a
// shape-compatible nominal type to the structural form.
func AsTuple(t Type) (*Tuple, bool) {
	switch t := t.(type) {
	case *Tuple:
		return t, true
	case *Named:
		if t.Def.TupleShape {
			return &Tuple{Elems: t.Args}, true
		}
	}
	return nil, false
}

// NullableUnderlying returns the underlying type of a nullable value type.
func NullableUnderlying(t Type) (Type, bool) {
	if n, ok := t.(*Nullable); ok {
		return n.Elem, true
	}
	return nil, false
}

// BaseClass returns the instantiated base class of t, or nil.
// Type parameters yield their effective base.
func BaseClass(t Type) Type {
	switch t := t.(type) {
	case *Named:
		switch t.Def.Kind {
		case Interface:
			return nil
		case Delegate, Struct, Class:
			if t.Def.Base == nil {
				if t.Def == ObjectDef {
					return nil
				}
				return Object
			}
			return Substitute(t.Def.Base, DefSubst(t))
		}
	case *Array:
		return Object
	case *TypeParam:
		if t.Bound != nil {
			return t.Bound
		}
		return Object
	case *Tuple, *Nullable:
		return Object
	}
	return nil
}

// AllInterfaces returns the transitive interface closure of t,
// instantiated, in deterministic declaration order.
func AllInterfaces(t Type) []Type {
	var out []Type
	seen := make(map[string]bool)
	collectInterfaces(t, seen, &out)
	return out
}

func collectInterfaces(t Type, seen map[string]bool, out *[]Type) {
	add := func(iface Type) {
		key := iface.String()
		if !seen[key] {
			seen[key] = true
			*out = append(*out, iface)
			collectInterfaces(iface, seen, out)
		}
	}
	switch t := t.(type) {
	case *Named:
		sub := DefSubst(t)
		for _, iface := range t.Def.Interfaces {
			add(Substitute(iface, sub))
		}
		if base := BaseClass(t); base != nil {
			collectInterfaces(base, seen, out)
		}
	case *Array:
		if t.Rank == 1 {
			for _, def := range arrayInterfaceDefs() {
				add(def.New(t.Elem))
			}
		}
	case *TypeParam:
		for _, iface := range t.IfaceBounds {
			add(iface)
		}
		if t.Bound != nil {
			collectInterfaces(t.Bound, seen, out)
		}
	}
}

// ContainsParam reports whether tp occurs anywhere inside t.
func ContainsParam(t Type, tp *TypeParam) bool {
	switch t := t.(type) {
	case *TypeParam:
		return t == tp
	case *Named:
		for _, a := range t.Args {
			if ContainsParam(a, tp) {
				return true
			}
		}
	case *Array:
		return ContainsParam(t.Elem, tp)
	case *Nullable:
		return ContainsParam(t.Elem, tp)
	case *Tuple:
		for _, e := range t.Elems {
			if ContainsParam(e, tp) {
				return true
			}
		}
	}
	return false
}

// ContainsAnyParam reports whether any of the given parameters occurs in t.
func ContainsAnyParam(t Type, params []*TypeParam) bool {
	for _, p := range params {
		if ContainsParam(t, p) {
			return true
		}
	}
	return false
}

// IsReferenceType reports whether t is known to be a reference type.
// Unconstrained type parameters are not known to be reference types.
func IsReferenceType(t Type) bool {
	switch t := t.(type) {
	case *Named:
		return t.Def.Kind == Class || t.Def.Kind == Interface || t.Def.Kind == Delegate
	case *Array:
		return true
	case dynamicType:
		return true
	case *TypeParam:
		// Only a class-constrained parameter is known to be a reference
		// type; we model that as a non-object effective base of class kind.
		if t.Bound != nil {
			if n, ok := t.Bound.(*Named); ok && n.Def != ObjectDef && n.Def.Kind == Class {
				return true
			}
		}
		return false
	}
	return false
}

// IsValueType reports whether t is a value type.
func IsValueType(t Type) bool {
	switch t := t.(type) {
	case *Named:
		return t.Def.Kind == Struct
	case *Nullable, *Tuple:
		return true
	}
	return false
}

// IsInterface reports whether t is an interface type.
func IsInterface(t Type) bool {
	n, ok := t.(*Named)
	return ok && n.Def.Kind == Interface
}

// IsDynamic reports whether t is the dynamic type.
func IsDynamic(t Type) bool {
	_, ok := t.(dynamicType)
	return ok
}

// IsError reports whether t is an error placeholder.
func IsError(t Type) bool {
	_, ok := t.(*ErrorType)
	return ok
}

// Usable reports whether t can seed an inference: not nil, not an error
// placeholder, not void.
func Usable(t Type) bool {
	if t == nil || IsError(t) {
		return false
	}
	if n, ok := t.(*Named); ok && n.Def == VoidDef {
		return false
	}
	return true
}
