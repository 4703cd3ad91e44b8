package conv

import (
	"testing"

	"github.com/funvibe/sable/internal/types"
)

func listDef() *types.TypeDef {
	p := &types.TypeParam{Name: "T"}
	d := &types.TypeDef{Name: "List", Kind: types.Class, Params: []*types.TypeParam{p}}
	d.Interfaces = []types.Type{types.ListDef.New(p), types.ReadOnlyListDef.New(p)}
	return d
}

func TestImplicitlyConvertible(t *testing.T) {
	c := Classifier{}
	list := listDef()
	animal := &types.TypeDef{Name: "Animal", Kind: types.Class}
	dog := &types.TypeDef{Name: "Dog", Kind: types.Class, Base: animal.New()}

	intArr := &types.Array{Elem: types.Int, Rank: 1}
	dogArr := &types.Array{Elem: dog.New(), Rank: 1}
	animalArr := &types.Array{Elem: animal.New(), Rank: 1}

	yes := [][2]types.Type{
		{types.Int, types.Int},
		{types.Int, types.Long},
		{types.Int, types.Double},
		{types.Byte, types.UShort},
		{types.Char, types.Int},
		{types.Float, types.Double},
		{types.Int, types.Object},                     // boxing
		{types.String, types.Object},                  // reference
		{dog.New(), animal.New()},                     // base class
		{types.Object, types.Dynamic},                 // dynamic both ways
		{types.Dynamic, types.Object},                 //
		{types.Int, &types.Nullable{Elem: types.Int}}, // lifting
		{&types.Nullable{Elem: types.Int}, &types.Nullable{Elem: types.Long}},
		{types.Int, &types.Nullable{Elem: types.Long}},
		{list.New(types.Int), types.EnumerableDef.New(types.Int)},
		{list.New(dog.New()), types.EnumerableDef.New(animal.New())}, // covariance
		{intArr, types.ListDef.New(types.Int)},
		{dogArr, animalArr},                                 // array covariance
		{dogArr, types.EnumerableDef.New(animal.New())},     // array + covariance
		{types.FuncDef(1).New(animal.New(), types.Int), types.FuncDef(1).New(dog.New(), types.Int)}, // contravariant delegate
		{&types.Tuple{Elems: []types.Type{types.Int, dog.New()}}, &types.Tuple{Elems: []types.Type{types.Long, animal.New()}}},
		{&types.Tuple{Elems: []types.Type{types.Int}, Names: []string{"a"}}, &types.Tuple{Elems: []types.Type{types.Int}, Names: []string{"b"}}},
	}
	no := [][2]types.Type{
		{types.Long, types.Int},
		{types.Int, types.String},
		{animal.New(), dog.New()},
		{&types.Nullable{Elem: types.Int}, types.Int},
		{types.EnumerableDef.New(animal.New()), types.EnumerableDef.New(dog.New())},
		{list.New(dog.New()), list.New(animal.New())}, // IList<T> is invariant in the class position too
		{intArr, &types.Array{Elem: types.Long, Rank: 1}}, // no array covariance for value elements
		{&types.Array{Elem: types.Int, Rank: 2}, types.EnumerableDef.New(types.Int)},
		{types.Object, types.String},
		{&types.Tuple{Elems: []types.Type{types.Int, types.Int}}, &types.Tuple{Elems: []types.Type{types.Int}}},
		{types.Void, types.Object},
	}
	for _, pair := range yes {
		if !c.ImplicitlyConvertible(pair[0], pair[1]) {
			t.Errorf("expected %s -> %s to be implicitly convertible", pair[0], pair[1])
		}
	}
	for _, pair := range no {
		if c.ImplicitlyConvertible(pair[0], pair[1]) {
			t.Errorf("expected %s -> %s to NOT be implicitly convertible", pair[0], pair[1])
		}
	}
}

func TestErrorTypesNeverConvert(t *testing.T) {
	c := Classifier{}
	e := &types.ErrorType{Name: "T"}
	if c.ImplicitlyConvertible(e, types.Object) || c.ImplicitlyConvertible(types.Int, e) {
		t.Error("error placeholders must not participate in conversions")
	}
}

func TestTypeParamConversions(t *testing.T) {
	c := Classifier{}
	animal := &types.TypeDef{Name: "Animal", Kind: types.Class}
	tp := &types.TypeParam{Name: "T", Bound: animal.New()}
	if !c.ImplicitlyConvertible(tp, animal.New()) {
		t.Error("a parameter converts to its effective base")
	}
	if !c.ImplicitlyConvertible(tp, types.Object) {
		t.Error("every parameter converts to object")
	}
	if c.ImplicitlyConvertible(animal.New(), tp) {
		t.Error("nothing converts to an open type parameter")
	}
}
