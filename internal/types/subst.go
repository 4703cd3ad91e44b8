package types

// Subst is a mapping from type parameters to types. Parameters are keyed
// by identity, not by name: recursive call shapes legally reuse display
// names across distinct parameters.
type Subst map[*TypeParam]Type

// Substitute applies s to t, rebuilding only what changes.
func Substitute(t Type, s Subst) Type {
	if t == nil || len(s) == 0 {
		return t
	}
	switch t := t.(type) {
	case *TypeParam:
		if r, ok := s[t]; ok && r != nil {
			return r
		}
		return t
	case *Named:
		if len(t.Args) == 0 {
			return t
		}
		changed := false
		args := make([]Type, len(t.Args))
		for i, a := range t.Args {
			args[i] = Substitute(a, s)
			if args[i] != a {
				changed = true
			}
		}
		if !changed {
			return t
		}
		return &Named{Def: t.Def, Args: args}
	case *Array:
		elem := Substitute(t.Elem, s)
		if elem == t.Elem {
			return t
		}
		return &Array{Elem: elem, Rank: t.Rank}
	case *Nullable:
		elem := Substitute(t.Elem, s)
		if elem == t.Elem {
			return t
		}
		return &Nullable{Elem: elem}
	case *Tuple:
		changed := false
		elems := make([]Type, len(t.Elems))
		for i, e := range t.Elems {
			elems[i] = Substitute(e, s)
			if elems[i] != e {
				changed = true
			}
		}
		if !changed {
			return t
		}
		return &Tuple{Elems: elems, Names: t.Names}
	default:
		// dynamic, error placeholders
		return t
	}
}

// SubstituteSignature applies s to every parameter type and the return
// type of sig.
func SubstituteSignature(sig *Signature, s Subst) *Signature {
	if sig == nil || len(s) == 0 {
		return sig
	}
	params := make([]Param, len(sig.Params))
	for i, p := range sig.Params {
		params[i] = Param{Name: p.Name, Type: Substitute(p.Type, s), Ref: p.Ref}
	}
	return &Signature{Params: params, Return: Substitute(sig.Return, s)}
}

// DefSubst builds the substitution from a constructed type's definition
// parameters to its arguments.
func DefSubst(t *Named) Subst {
	if len(t.Args) == 0 {
		return nil
	}
	s := make(Subst, len(t.Args))
	for i, p := range t.Def.Params {
		if i < len(t.Args) {
			s[p] = t.Args[i]
		}
	}
	return s
}
