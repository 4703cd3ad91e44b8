package types

import "fmt"

// The ambient universe: definitions every Sable compilation unit can see.

var (
	ObjectDef  = &TypeDef{Name: "object", Kind: Class}
	VoidDef    = &TypeDef{Name: "void", Kind: Struct}
	StringDef  = &TypeDef{Name: "string", Kind: Class}
	BoolDef    = &TypeDef{Name: "bool", Kind: Struct}
	CharDef    = &TypeDef{Name: "char", Kind: Struct}
	SByteDef   = &TypeDef{Name: "sbyte", Kind: Struct}
	ByteDef    = &TypeDef{Name: "byte", Kind: Struct}
	ShortDef   = &TypeDef{Name: "short", Kind: Struct}
	UShortDef  = &TypeDef{Name: "ushort", Kind: Struct}
	IntDef     = &TypeDef{Name: "int", Kind: Struct}
	UIntDef    = &TypeDef{Name: "uint", Kind: Struct}
	LongDef    = &TypeDef{Name: "long", Kind: Struct}
	ULongDef   = &TypeDef{Name: "ulong", Kind: Struct}
	FloatDef   = &TypeDef{Name: "float", Kind: Struct}
	DoubleDef  = &TypeDef{Name: "double", Kind: Struct}
	DecimalDef = &TypeDef{Name: "decimal", Kind: Struct}
)

var (
	Object  = ObjectDef.New()
	Void    = VoidDef.New()
	String  = StringDef.New()
	Bool    = BoolDef.New()
	Char    = CharDef.New()
	SByte   = SByteDef.New()
	Byte    = ByteDef.New()
	Short   = ShortDef.New()
	UShort  = UShortDef.New()
	Int     = IntDef.New()
	UInt    = UIntDef.New()
	Long    = LongDef.New()
	ULong   = ULongDef.New()
	Float   = FloatDef.New()
	Double  = DoubleDef.New()
	Decimal = DecimalDef.New()
)

// Canonical collection interfaces. A one-dimensional array T[] converts to
// each of these at T, which is what the lower-bound array rule keys on.
var (
	EnumerableDef         *TypeDef
	CollectionDef         *TypeDef
	ListDef               *TypeDef
	ReadOnlyCollectionDef *TypeDef
	ReadOnlyListDef       *TypeDef
)

// ExpressionDef wraps a delegate type into an expression tree.
var ExpressionDef *TypeDef

func init() {
	EnumerableDef = ifaceDef("IEnumerable", Covariant, nil)
	CollectionDef = ifaceDef("ICollection", Invariant, EnumerableDef)
	ListDef = ifaceDef("IList", Invariant, CollectionDef)
	ReadOnlyCollectionDef = ifaceDef("IReadOnlyCollection", Covariant, EnumerableDef)
	ReadOnlyListDef = ifaceDef("IReadOnlyList", Covariant, ReadOnlyCollectionDef)

	tdp := &TypeParam{Name: "TDelegate", Ordinal: 0}
	ExpressionDef = &TypeDef{Name: "Expression", Kind: Class, Params: []*TypeParam{tdp}, ExprTree: true}
}

func ifaceDef(name string, v Variance, extends *TypeDef) *TypeDef {
	p := &TypeParam{Name: "T", Ordinal: 0, Variance: v}
	d := &TypeDef{Name: name, Kind: Interface, Params: []*TypeParam{p}}
	if extends != nil {
		d.Interfaces = []Type{extends.New(p)}
	}
	return d
}

// arrayInterfaceDefs lists the canonical interfaces a one-dimensional
// array implements at its element type.
func arrayInterfaceDefs() []*TypeDef {
	return []*TypeDef{EnumerableDef, CollectionDef, ListDef, ReadOnlyCollectionDef, ReadOnlyListDef}
}

// IsArrayInterface reports whether def is one of the canonical array
// interfaces.
func IsArrayInterface(def *TypeDef) bool {
	switch def {
	case EnumerableDef, CollectionDef, ListDef, ReadOnlyCollectionDef, ReadOnlyListDef:
		return true
	}
	return false
}

var funcDefs = map[int]*TypeDef{}
var actionDefs = map[int]*TypeDef{}
var tupleDefs = map[int]*TypeDef{}

// FuncDef returns the ambient Func delegate of n parameters:
// Func<in T1, ..., in Tn, out TResult>.
func FuncDef(n int) *TypeDef {
	if d, ok := funcDefs[n]; ok {
		return d
	}
	params := make([]*TypeParam, n+1)
	for i := 0; i < n; i++ {
		params[i] = &TypeParam{Name: fmt.Sprintf("T%d", i+1), Ordinal: i, Variance: Contravariant}
	}
	params[n] = &TypeParam{Name: "TResult", Ordinal: n, Variance: Covariant}
	sig := &Signature{Return: params[n]}
	for i := 0; i < n; i++ {
		sig.Params = append(sig.Params, Param{Name: fmt.Sprintf("arg%d", i+1), Type: params[i]})
	}
	d := &TypeDef{Name: "Func", Kind: Delegate, Params: params, Invoke: sig}
	funcDefs[n] = d
	return d
}

// ActionDef returns the ambient Action delegate of n parameters, whose
// invoke signature returns void.
func ActionDef(n int) *TypeDef {
	if d, ok := actionDefs[n]; ok {
		return d
	}
	params := make([]*TypeParam, n)
	sig := &Signature{Return: Void}
	for i := 0; i < n; i++ {
		params[i] = &TypeParam{Name: fmt.Sprintf("T%d", i+1), Ordinal: i, Variance: Contravariant}
		sig.Params = append(sig.Params, Param{Name: fmt.Sprintf("arg%d", i+1), Type: params[i]})
	}
	d := &TypeDef{Name: "Action", Kind: Delegate, Params: params, Invoke: sig}
	actionDefs[n] = d
	return d
}

// TupleDef returns the nominal tuple-compatible definition of cardinality
// k, the target of tuple-literal conversions in lowered code.
func TupleDef(k int) *TypeDef {
	if d, ok := tupleDefs[k]; ok {
		return d
	}
	params := make([]*TypeParam, k)
	for i := 0; i < k; i++ {
		params[i] = &TypeParam{Name: fmt.Sprintf("T%d", i+1), Ordinal: i}
	}
	d := &TypeDef{Name: fmt.Sprintf("ValueTuple%d", k), Kind: Struct, Params: params, TupleShape: true}
	tupleDefs[k] = d
	return d
}
