// Package conv classifies implicit conversions between Sable types. The
// inference engine consumes it through the narrow Converter interface;
// the scenario harness and tests use it directly.
package conv

import "github.com/funvibe/sable/internal/types"

// Classifier is a stateless implicit-conversion oracle.
type Classifier struct{}

var widening map[*types.TypeDef][]*types.TypeDef

func init() {
	widening = map[*types.TypeDef][]*types.TypeDef{
		types.SByteDef:  {types.ShortDef, types.IntDef, types.LongDef, types.FloatDef, types.DoubleDef, types.DecimalDef},
		types.ByteDef:   {types.ShortDef, types.UShortDef, types.IntDef, types.UIntDef, types.LongDef, types.ULongDef, types.FloatDef, types.DoubleDef, types.DecimalDef},
		types.ShortDef:  {types.IntDef, types.LongDef, types.FloatDef, types.DoubleDef, types.DecimalDef},
		types.UShortDef: {types.IntDef, types.UIntDef, types.LongDef, types.ULongDef, types.FloatDef, types.DoubleDef, types.DecimalDef},
		types.IntDef:    {types.LongDef, types.FloatDef, types.DoubleDef, types.DecimalDef},
		types.UIntDef:   {types.LongDef, types.ULongDef, types.FloatDef, types.DoubleDef, types.DecimalDef},
		types.LongDef:   {types.FloatDef, types.DoubleDef, types.DecimalDef},
		types.ULongDef:  {types.FloatDef, types.DoubleDef, types.DecimalDef},
		types.CharDef:   {types.UShortDef, types.IntDef, types.UIntDef, types.LongDef, types.ULongDef, types.FloatDef, types.DoubleDef, types.DecimalDef},
		types.FloatDef:  {types.DoubleDef},
	}
}

// ImplicitlyConvertible reports whether an implicit conversion exists
// from src to dst. dynamic and object convert to each other but are not
// identical.
func (c Classifier) ImplicitlyConvertible(src, dst types.Type) bool {
	if src == nil || dst == nil || types.IsError(src) || types.IsError(dst) {
		return false
	}
	if types.Identical(src, dst) {
		return true
	}
	if types.IsDynamic(src) {
		// Expressions of type dynamic convert implicitly to every type.
		return true
	}
	if types.IsDynamic(dst) {
		return c.ImplicitlyConvertible(src, types.Object)
	}
	if c.numericWidening(src, dst) {
		return true
	}
	if c.nullableConversion(src, dst) {
		return true
	}
	if c.tupleConversion(src, dst) {
		return true
	}
	if c.arrayConversion(src, dst) {
		return true
	}
	if isObject(dst) {
		// Reference conversion or boxing; void has no values.
		return !types.Identical(src, types.Void)
	}
	if c.baseClassConversion(src, dst) {
		return true
	}
	if c.interfaceConversion(src, dst) {
		return true
	}
	return c.delegateVarianceConversion(src, dst)
}

func isObject(t types.Type) bool {
	n, ok := t.(*types.Named)
	return ok && n.Def == types.ObjectDef
}

func (c Classifier) numericWidening(src, dst types.Type) bool {
	sn, ok := src.(*types.Named)
	if !ok {
		return false
	}
	dn, ok := dst.(*types.Named)
	if !ok {
		return false
	}
	for _, d := range widening[sn.Def] {
		if d == dn.Def {
			return true
		}
	}
	return false
}

func (c Classifier) nullableConversion(src, dst types.Type) bool {
	du, ok := types.NullableUnderlying(dst)
	if !ok {
		return false
	}
	if su, ok := types.NullableUnderlying(src); ok {
		src = su
	}
	if !types.IsValueType(src) {
		return false
	}
	return types.Identical(src, du) || c.numericWidening(src, du) || c.tupleConversion(src, du)
}

func (c Classifier) tupleConversion(src, dst types.Type) bool {
	dt, ok := types.AsTuple(dst)
	if !ok {
		return false
	}
	se, ok := types.TupleElems(src, len(dt.Elems))
	if !ok {
		return false
	}
	for i := range se {
		if !c.ImplicitlyConvertible(se[i], dt.Elems[i]) {
			return false
		}
	}
	return true
}

func (c Classifier) arrayConversion(src, dst types.Type) bool {
	sa, ok := src.(*types.Array)
	if !ok {
		return false
	}
	switch dst := dst.(type) {
	case *types.Array:
		if sa.Rank != dst.Rank {
			return false
		}
		return c.elementCompatible(sa.Elem, dst.Elem)
	case *types.Named:
		if sa.Rank != 1 || !types.IsArrayInterface(dst.Def) {
			return false
		}
		return c.elementCompatible(sa.Elem, dst.Args[0])
	}
	return false
}

// elementCompatible is the array-covariance element test: identity, or an
// implicit reference conversion between reference-typed elements.
func (c Classifier) elementCompatible(src, dst types.Type) bool {
	if types.Identical(src, dst) {
		return true
	}
	return types.IsReferenceType(src) && types.IsReferenceType(dst) && c.ImplicitlyConvertible(src, dst)
}

func (c Classifier) baseClassConversion(src, dst types.Type) bool {
	for base := types.BaseClass(src); base != nil; base = types.BaseClass(base) {
		if types.Identical(base, dst) {
			return true
		}
	}
	return false
}

func (c Classifier) interfaceConversion(src, dst types.Type) bool {
	dn, ok := dst.(*types.Named)
	if !ok || dn.Def.Kind != types.Interface {
		return false
	}
	if sn, ok := src.(*types.Named); ok && sn.Def == dn.Def {
		if c.varianceCompatible(sn.Args, dn.Args, dn.Def.Params) {
			return true
		}
	}
	for _, iface := range types.AllInterfaces(src) {
		in, ok := iface.(*types.Named)
		if !ok || in.Def != dn.Def {
			continue
		}
		if c.varianceCompatible(in.Args, dn.Args, dn.Def.Params) {
			return true
		}
	}
	return false
}

func (c Classifier) delegateVarianceConversion(src, dst types.Type) bool {
	sn, ok := src.(*types.Named)
	if !ok || sn.Def.Kind != types.Delegate {
		return false
	}
	dn, ok := dst.(*types.Named)
	if !ok || dn.Def != sn.Def {
		return false
	}
	return c.varianceCompatible(sn.Args, dn.Args, dn.Def.Params)
}

func (c Classifier) varianceCompatible(srcArgs, dstArgs []types.Type, params []*types.TypeParam) bool {
	for i := range srcArgs {
		s, d := srcArgs[i], dstArgs[i]
		if types.Identical(s, d) {
			continue
		}
		variance := types.Invariant
		if i < len(params) {
			variance = params[i].Variance
		}
		switch variance {
		case types.Covariant:
			if types.IsReferenceType(s) && types.IsReferenceType(d) && c.ImplicitlyConvertible(s, d) {
				continue
			}
		case types.Contravariant:
			if types.IsReferenceType(s) && types.IsReferenceType(d) && c.ImplicitlyConvertible(d, s) {
				continue
			}
		}
		return false
	}
	return true
}
