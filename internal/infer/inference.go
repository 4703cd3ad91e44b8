package infer

import "github.com/funvibe/sable/internal/types"

// The three inference operations are mutually recursive and only ever
// mutate bound sets; a pair of types that matches no rule simply yields
// no inference.

// exactInference makes an exact inference from source to target.
func (e *Engine) exactInference(source, target types.Type) {
	if source == nil || target == nil {
		return
	}
	if i, ok := e.unfixedParamIndex(target); ok {
		e.addBound(boundExact, i, source)
		return
	}
	if e.exactArrayInference(source, target) {
		return
	}
	if e.exactNullableInference(source, target) {
		return
	}
	if e.exactTupleInference(source, target) {
		return
	}
	e.exactConstructedInference(source, target)
}

func (e *Engine) exactArrayInference(source, target types.Type) bool {
	sa, ok := source.(*types.Array)
	if !ok {
		return false
	}
	ta, ok := target.(*types.Array)
	if !ok || sa.Rank != ta.Rank {
		return false
	}
	e.exactInference(sa.Elem, ta.Elem)
	return true
}

func (e *Engine) exactNullableInference(source, target types.Type) bool {
	su, sok := types.NullableUnderlying(source)
	tu, tok := types.NullableUnderlying(target)
	if !sok || !tok {
		return false
	}
	e.exactInference(su, tu)
	return true
}

func (e *Engine) exactTupleInference(source, target types.Type) bool {
	tt, ok := types.AsTuple(target)
	if !ok {
		return false
	}
	se, ok := types.TupleElems(source, len(tt.Elems))
	if !ok {
		return false
	}
	for i := range se {
		e.exactInference(se[i], tt.Elems[i])
	}
	return true
}

func (e *Engine) exactConstructedInference(source, target types.Type) bool {
	tn, ok := target.(*types.Named)
	if !ok || len(tn.Args) == 0 {
		return false
	}
	sn, ok := source.(*types.Named)
	if !ok || sn.Def != tn.Def {
		return false
	}
	for i := range tn.Args {
		e.exactInference(sn.Args[i], tn.Args[i])
	}
	return true
}

// lowerBoundInference makes a lower-bound inference from source to
// target: source must be convertible to whatever target's parameters fix
// to. This is the inference used for ordinary by-value arguments.
func (e *Engine) lowerBoundInference(source, target types.Type) {
	if source == nil || target == nil {
		return
	}
	if i, ok := e.unfixedParamIndex(target); ok {
		e.addBound(boundLower, i, source)
		return
	}
	if e.lowerBoundArrayInference(source, target) {
		return
	}
	if e.lowerBoundNullableInference(source, target) {
		return
	}
	if e.lowerBoundTupleInference(source, target) {
		return
	}
	e.lowerBoundConstructedInference(source, target)
}

// lowerBoundArrayInference covers array-to-array covariance and the
// conversion of a one-dimensional array to the canonical collection
// interfaces at its element type.
func (e *Engine) lowerBoundArrayInference(source, target types.Type) bool {
	sa, ok := source.(*types.Array)
	if !ok {
		return false
	}
	var elemTarget types.Type
	switch target := target.(type) {
	case *types.Array:
		if target.Rank != sa.Rank {
			return false
		}
		elemTarget = target.Elem
	case *types.Named:
		if sa.Rank != 1 || !types.IsArrayInterface(target.Def) {
			return false
		}
		elemTarget = target.Args[0]
	default:
		return false
	}
	if types.IsReferenceType(sa.Elem) {
		e.lowerBoundInference(sa.Elem, elemTarget)
	} else {
		e.exactInference(sa.Elem, elemTarget)
	}
	return true
}

// Nullable lower-bound inference only fires when both sides are nullable.
// The asymmetric non-nullable-to-nullable form would be sound here but
// conflicts with what the compatibility checks downstream assume, so it
// is deliberately absent.
func (e *Engine) lowerBoundNullableInference(source, target types.Type) bool {
	su, sok := types.NullableUnderlying(source)
	tu, tok := types.NullableUnderlying(target)
	if !sok || !tok {
		return false
	}
	e.lowerBoundInference(su, tu)
	return true
}

func (e *Engine) lowerBoundTupleInference(source, target types.Type) bool {
	tt, ok := types.AsTuple(target)
	if !ok {
		return false
	}
	se, ok := types.TupleElems(source, len(tt.Elems))
	if !ok {
		return false
	}
	for i := range se {
		e.lowerBoundInference(se[i], tt.Elems[i])
	}
	return true
}

func (e *Engine) lowerBoundConstructedInference(source, target types.Type) bool {
	tn, ok := target.(*types.Named)
	if !ok || len(tn.Args) == 0 {
		return false
	}
	if sn, ok := source.(*types.Named); ok && sn.Def == tn.Def {
		if tn.Def.Kind == types.Interface || tn.Def.Kind == types.Delegate {
			e.varianceInference(sn.Args, tn.Args, tn.Def.Params, boundLower)
		} else {
			for i := range tn.Args {
				e.exactInference(sn.Args[i], tn.Args[i])
			}
		}
		return true
	}
	if e.lowerBoundClassInference(source, tn) {
		return true
	}
	return e.lowerBoundInterfaceInference(source, tn)
}

// lowerBoundClassInference walks the base-class chain of the source (the
// effective base for a type-parameter source) looking for a construction
// of the target's definition.
func (e *Engine) lowerBoundClassInference(source types.Type, target *types.Named) bool {
	if target.Def.Kind != types.Class {
		return false
	}
	for base := types.BaseClass(source); base != nil; base = types.BaseClass(base) {
		if bn, ok := base.(*types.Named); ok && bn.Def == target.Def {
			for i := range target.Args {
				e.exactInference(bn.Args[i], target.Args[i])
			}
			return true
		}
	}
	return false
}

// lowerBoundInterfaceInference searches the source's interface closure
// for a unique construction of the target's interface definition. Two
// distinct constructions make the match ambiguous and yield no inference.
func (e *Engine) lowerBoundInterfaceInference(source types.Type, target *types.Named) bool {
	if target.Def.Kind != types.Interface {
		return false
	}
	match := e.uniqueInterface(types.AllInterfaces(source), target.Def)
	if match == nil {
		return false
	}
	e.varianceInference(match.Args, target.Args, target.Def.Params, boundLower)
	return true
}

func (e *Engine) uniqueInterface(ifaces []types.Type, def *types.TypeDef) *types.Named {
	var match *types.Named
	for _, iface := range ifaces {
		in, ok := iface.(*types.Named)
		if !ok || in.Def != def {
			continue
		}
		if match == nil {
			match = in
			continue
		}
		if !types.Identical(match, in) {
			return nil
		}
	}
	return match
}

// upperBoundInference is the dual of lowerBoundInference: whatever
// target's parameters fix to must be convertible to source. Base-chain
// and interface-closure searches run over the target instead of the
// source, and variance directions flip.
func (e *Engine) upperBoundInference(source, target types.Type) {
	if source == nil || target == nil {
		return
	}
	if i, ok := e.unfixedParamIndex(target); ok {
		e.addBound(boundUpper, i, source)
		return
	}
	if e.upperBoundArrayInference(source, target) {
		return
	}
	if e.upperBoundNullableInference(source, target) {
		return
	}
	if e.upperBoundTupleInference(source, target) {
		return
	}
	e.upperBoundConstructedInference(source, target)
}

func (e *Engine) upperBoundArrayInference(source, target types.Type) bool {
	ta, ok := target.(*types.Array)
	if !ok {
		return false
	}
	var elemSource types.Type
	switch source := source.(type) {
	case *types.Array:
		if source.Rank != ta.Rank {
			return false
		}
		elemSource = source.Elem
	case *types.Named:
		if ta.Rank != 1 || !types.IsArrayInterface(source.Def) {
			return false
		}
		elemSource = source.Args[0]
	default:
		return false
	}
	if types.IsReferenceType(elemSource) {
		e.upperBoundInference(elemSource, ta.Elem)
	} else {
		e.exactInference(elemSource, ta.Elem)
	}
	return true
}

func (e *Engine) upperBoundNullableInference(source, target types.Type) bool {
	su, sok := types.NullableUnderlying(source)
	tu, tok := types.NullableUnderlying(target)
	if !sok || !tok {
		return false
	}
	e.upperBoundInference(su, tu)
	return true
}

func (e *Engine) upperBoundTupleInference(source, target types.Type) bool {
	tt, ok := types.AsTuple(target)
	if !ok {
		return false
	}
	se, ok := types.TupleElems(source, len(tt.Elems))
	if !ok {
		return false
	}
	for i := range se {
		e.upperBoundInference(se[i], tt.Elems[i])
	}
	return true
}

func (e *Engine) upperBoundConstructedInference(source, target types.Type) bool {
	sn, ok := source.(*types.Named)
	if !ok || len(sn.Args) == 0 {
		return false
	}
	if tn, ok := target.(*types.Named); ok && tn.Def == sn.Def {
		if sn.Def.Kind == types.Interface || sn.Def.Kind == types.Delegate {
			e.varianceInference(sn.Args, tn.Args, sn.Def.Params, boundUpper)
		} else {
			for i := range sn.Args {
				e.exactInference(sn.Args[i], tn.Args[i])
			}
		}
		return true
	}
	if e.upperBoundClassInference(sn, target) {
		return true
	}
	return e.upperBoundInterfaceInference(sn, target)
}

func (e *Engine) upperBoundClassInference(source *types.Named, target types.Type) bool {
	if source.Def.Kind != types.Class {
		return false
	}
	for base := types.BaseClass(target); base != nil; base = types.BaseClass(base) {
		if bn, ok := base.(*types.Named); ok && bn.Def == source.Def {
			for i := range source.Args {
				e.exactInference(source.Args[i], bn.Args[i])
			}
			return true
		}
	}
	return false
}

func (e *Engine) upperBoundInterfaceInference(source *types.Named, target types.Type) bool {
	if source.Def.Kind != types.Interface {
		return false
	}
	match := e.uniqueInterface(types.AllInterfaces(target), source.Def)
	if match == nil {
		return false
	}
	e.varianceInference(source.Args, match.Args, source.Def.Params, boundUpper)
	return true
}

// varianceInference recurses between the type arguments of two
// constructions of the same interface or delegate definition, picking the
// per-argument operation from the declared variance. An argument that is
// not known to be a reference type always gets exact inference.
func (e *Engine) varianceInference(sourceArgs, targetArgs []types.Type, params []*types.TypeParam, context boundKind) {
	for i := range sourceArgs {
		src, tgt := sourceArgs[i], targetArgs[i]
		variance := types.Invariant
		if i < len(params) {
			variance = params[i].Variance
		}
		if !types.IsReferenceType(src) {
			e.exactInference(src, tgt)
			continue
		}
		down := variance == types.Covariant
		if context == boundUpper {
			down = variance == types.Contravariant
		}
		switch {
		case variance == types.Invariant:
			e.exactInference(src, tgt)
		case down:
			e.lowerBoundInference(src, tgt)
		default:
			e.upperBoundInference(src, tgt)
		}
	}
}
