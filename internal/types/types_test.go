package types

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestStringRendering(t *testing.T) {
	tests := []struct {
		typ  Type
		want string
	}{
		{Int, "int"},
		{Dynamic, "dynamic"},
		{&Array{Elem: Int, Rank: 1}, "int[]"},
		{&Array{Elem: String, Rank: 3}, "string[,,]"},
		{&Nullable{Elem: Int}, "int?"},
		{&Tuple{Elems: []Type{Int, String}}, "(int, string)"},
		{&Tuple{Elems: []Type{Int, String}, Names: []string{"a", ""}}, "(a: int, string)"},
		{EnumerableDef.New(&Array{Elem: Int, Rank: 1}), "IEnumerable<int[]>"},
		{FuncDef(1).New(Int, String), "Func<int, string>"},
		{&ErrorType{Name: "T"}, "?T"},
	}
	for _, tc := range tests {
		if got := tc.typ.String(); got != tc.want {
			t.Errorf("String() = %q, want %q", got, tc.want)
		}
	}
}

func TestSubstitute(t *testing.T) {
	tp := &TypeParam{Name: "T"}
	s := Subst{tp: Int}
	tests := []struct {
		typ  Type
		want string
	}{
		{tp, "int"},
		{EnumerableDef.New(tp), "IEnumerable<int>"},
		{&Array{Elem: tp, Rank: 1}, "int[]"},
		{&Nullable{Elem: tp}, "int?"},
		{&Tuple{Elems: []Type{tp, String}}, "(int, string)"},
		{String, "string"},
	}
	for _, tc := range tests {
		if got := Substitute(tc.typ, s).String(); got != tc.want {
			t.Errorf("Substitute(%s) = %q, want %q", tc.typ, got, tc.want)
		}
	}

	// Identity-by-pointer: a different parameter with the same name is
	// untouched.
	other := &TypeParam{Name: "T"}
	if got := Substitute(other, s); got != other {
		t.Errorf("substitution must key on identity, not name")
	}
}

func TestSubstituteSharing(t *testing.T) {
	tp := &TypeParam{Name: "T"}
	unrelated := EnumerableDef.New(Int)
	if got := Substitute(unrelated, Subst{tp: String}); got != unrelated {
		t.Error("substitution should not rebuild types it does not change")
	}
}

func TestDelegateOf(t *testing.T) {
	fn := FuncDef(2).New(Int, String, Bool)
	sig := DelegateOf(fn)
	if sig == nil {
		t.Fatal("expected a delegate shape for Func<int, string, bool>")
	}
	got := sig.String()
	if got != "(int arg1, string arg2) -> bool" {
		t.Errorf("unexpected shape %q", got)
	}

	wrapped := ExpressionDef.New(fn)
	if s := DelegateOf(wrapped); s == nil || s.String() != got {
		t.Errorf("Expression<Func<...>> must expose the wrapped delegate shape")
	}

	if DelegateOf(Int) != nil || DelegateOf(EnumerableDef.New(Int)) != nil {
		t.Error("non-delegates must have no delegate shape")
	}
}

func TestTupleElems(t *testing.T) {
	structural := &Tuple{Elems: []Type{Int, String}}
	if elems, ok := TupleElems(structural, 2); !ok || len(elems) != 2 {
		t.Error("structural tuple of matching cardinality must match")
	}
	if _, ok := TupleElems(structural, 3); ok {
		t.Error("cardinality mismatch must not match")
	}
	nominal := TupleDef(2).New(Int, String)
	if elems, ok := TupleElems(nominal, 2); !ok || elems[1] != String {
		t.Error("shape-compatible nominal tuple must match")
	}
	if _, ok := TupleElems(Int, 1); ok {
		t.Error("int is not tuple-compatible")
	}
}

func TestBaseClassChain(t *testing.T) {
	bp := &TypeParam{Name: "T"}
	base := &TypeDef{Name: "Base", Kind: Class, Params: []*TypeParam{bp}}
	derived := &TypeDef{Name: "Derived", Kind: Class, Base: base.New(Int)}

	var chain []string
	for b := BaseClass(derived.New()); b != nil; b = BaseClass(b) {
		chain = append(chain, b.String())
	}
	want := []string{"Base<int>", "object"}
	if diff := cmp.Diff(want, chain); diff != "" {
		t.Errorf("base chain mismatch (-want +got):\n%s", diff)
	}

	if BaseClass(Object) != nil {
		t.Error("object has no base class")
	}
	if got := BaseClass(&Array{Elem: Int, Rank: 1}); got == nil || got.String() != "object" {
		t.Error("arrays derive from object")
	}
}

func TestEffectiveBaseOfTypeParam(t *testing.T) {
	animal := &TypeDef{Name: "Animal", Kind: Class}
	tp := &TypeParam{Name: "T", Bound: animal.New()}
	if got := BaseClass(tp); got.String() != "Animal" {
		t.Errorf("expected effective base Animal, got %v", got)
	}
	if !IsReferenceType(tp) {
		t.Error("class-bounded parameter is known to be a reference type")
	}
	if IsReferenceType(&TypeParam{Name: "U"}) {
		t.Error("unconstrained parameter is not known to be a reference type")
	}
}

func TestAllInterfacesClosure(t *testing.T) {
	p := &TypeParam{Name: "T"}
	list := &TypeDef{Name: "List", Kind: Class, Params: []*TypeParam{p}}
	list.Interfaces = []Type{ListDef.New(p), ReadOnlyListDef.New(p)}

	got := map[string]bool{}
	for _, iface := range AllInterfaces(list.New(Int)) {
		got[iface.String()] = true
	}
	for _, want := range []string{
		"IList<int>", "ICollection<int>", "IEnumerable<int>",
		"IReadOnlyList<int>", "IReadOnlyCollection<int>",
	} {
		if !got[want] {
			t.Errorf("closure is missing %s (have %v)", want, got)
		}
	}
}

func TestArrayInterfaces(t *testing.T) {
	arr := &Array{Elem: Int, Rank: 1}
	found := false
	for _, iface := range AllInterfaces(arr) {
		if iface.String() == "IList<int>" {
			found = true
		}
	}
	if !found {
		t.Error("int[] must implement IList<int>")
	}
	if ifaces := AllInterfaces(&Array{Elem: Int, Rank: 2}); len(ifaces) != 0 {
		t.Error("multi-dimensional arrays have no generic collection interfaces")
	}
}

func TestContainsParam(t *testing.T) {
	tp := &TypeParam{Name: "T"}
	other := &TypeParam{Name: "T"}
	nested := EnumerableDef.New(&Array{Elem: &Nullable{Elem: tp}, Rank: 1})
	if !ContainsParam(nested, tp) {
		t.Error("expected to find T in IEnumerable<T?[]>")
	}
	if ContainsParam(nested, other) {
		t.Error("containment must use parameter identity")
	}
	if !ContainsAnyParam(&Tuple{Elems: []Type{Int, tp}}, []*TypeParam{other, tp}) {
		t.Error("expected ContainsAnyParam to find T")
	}
}

func TestIdenticalAndEquivalent(t *testing.T) {
	named := &Tuple{Elems: []Type{Int, Int}, Names: []string{"a", "b"}}
	renamed := &Tuple{Elems: []Type{Int, Int}, Names: []string{"a", "c"}}
	if Identical(named, renamed) {
		t.Error("tuples with different element names are not identical")
	}
	if !Equivalent(named, renamed) {
		t.Error("tuple names are ignored by equivalence")
	}

	if Identical(Object, Dynamic) {
		t.Error("object and dynamic are not identical")
	}
	if !Equivalent(Object, Dynamic) {
		t.Error("object and dynamic are equivalent")
	}
	ld := EnumerableDef.New(Dynamic)
	lo := EnumerableDef.New(Object)
	if Identical(ld, lo) || !Equivalent(ld, lo) {
		t.Error("dynamic at nested positions is erased only by equivalence")
	}
	if Equivalent(Int, String) {
		t.Error("int and string are not equivalent")
	}
}

func TestMerge(t *testing.T) {
	// Idempotence.
	named := &Tuple{Elems: []Type{Int, Int}, Names: []string{"a", "b"}}
	if got := Merge(named, named).String(); got != "(a: int, b: int)" {
		t.Errorf("merge of a tuple with itself changed it: %s", got)
	}

	// Name intersection; fully disagreeing names yield the nameless form.
	renamed := &Tuple{Elems: []Type{Int, Int}, Names: []string{"x", "y"}}
	merged := Merge(named, renamed).(*Tuple)
	if merged.Names != nil {
		t.Errorf("expected nameless tuple, got %v", merged.Names)
	}

	// Dynamic-ness is OR-ed position-wise.
	if got := Merge(EnumerableDef.New(Object), EnumerableDef.New(Dynamic)).String(); got != "IEnumerable<dynamic>" {
		t.Errorf("expected IEnumerable<dynamic>, got %s", got)
	}
	if got := Merge(Object, Dynamic); !IsDynamic(got) {
		t.Errorf("object merged with dynamic must be dynamic, got %s", got)
	}
}

func TestUsable(t *testing.T) {
	if Usable(nil) || Usable(Void) || Usable(&ErrorType{Name: "T"}) {
		t.Error("nil, void and error placeholders are not usable inference sources")
	}
	if !Usable(Int) || !Usable(Dynamic) || !Usable(&TypeParam{Name: "T"}) {
		t.Error("ordinary types are usable")
	}
}

func TestMethodString(t *testing.T) {
	x := &TypeParam{Name: "T"}
	m := &Method{
		Name:       "M",
		TypeParams: []*TypeParam{x},
		Params: []Param{
			{Name: "a", Type: x},
			{Name: "b", Type: &Array{Elem: x, Rank: 1}, Ref: Ref},
		},
		Return: x,
	}
	want := "M<T>(T a, ref T[] b) T"
	if got := m.String(); got != want {
		t.Errorf("Method.String() = %q, want %q", got, want)
	}
	if kinds := m.RefKinds(); kinds == nil || kinds[1] != Ref {
		t.Errorf("RefKinds() = %v", kinds)
	}
	if (&Method{Name: "N", Params: []Param{{Name: "a", Type: Int}}}).RefKinds() != nil {
		t.Error("all-by-value methods report nil ref kinds")
	}
}
