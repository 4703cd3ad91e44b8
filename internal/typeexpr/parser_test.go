package typeexpr

import (
	"fmt"
	"strings"
	"testing"

	"github.com/funvibe/sable/internal/types"
)

// testResolver resolves the ambient universe plus any defs handed to it.
type testResolver struct {
	extra map[string]*types.TypeDef
}

func (r testResolver) LookupType(name string, arity int) (*types.TypeDef, bool) {
	if d, ok := r.extra[fmt.Sprintf("%s/%d", name, arity)]; ok {
		return d, true
	}
	for _, d := range []*types.TypeDef{
		types.ObjectDef, types.VoidDef, types.StringDef, types.BoolDef,
		types.IntDef, types.LongDef, types.DoubleDef,
		types.EnumerableDef, types.ListDef,
	} {
		if d.Name == name && len(d.Params) == arity {
			return d, true
		}
	}
	if name == "Func" && arity >= 1 {
		return types.FuncDef(arity - 1), true
	}
	return nil, false
}

func TestParseTypeRoundTrip(t *testing.T) {
	res := testResolver{}
	inputs := []string{
		"int",
		"dynamic",
		"int[]",
		"int[,,]",
		"int?",
		"IEnumerable<int[]>",
		"Func<int, string>",
		"(int, string)",
		"(a: int, string)",
		"(int, string)?",
	}
	for _, src := range inputs {
		parsed, err := ParseType(normalize(src), res)
		if err != nil {
			t.Errorf("ParseType(%q): %v", src, err)
			continue
		}
		if got := parsed.String(); got != src {
			t.Errorf("round trip of %q produced %q", src, got)
		}
	}
}

// normalize rewrites the display form "(a: int)" into the source form
// "(int a)" the parser accepts.
func normalize(src string) string {
	for {
		i := strings.Index(src, ": ")
		if i < 0 {
			return src
		}
		start := i
		for start > 0 && src[start-1] != '(' && src[start-1] != ' ' {
			start--
		}
		name := src[start:i]
		rest := src[i+2:]
		end := 0
		for end < len(rest) && rest[end] != ',' && rest[end] != ')' {
			end++
		}
		src = src[:start] + rest[:end] + " " + name + rest[end:]
	}
}

func TestParseTypeErrors(t *testing.T) {
	res := testResolver{}
	for _, src := range []string{
		"",
		"List<int",
		"int]",
		"Unknown",
		"IEnumerable<int, string>",
		"int int",
	} {
		if _, err := ParseType(src, res); err == nil {
			t.Errorf("ParseType(%q) unexpectedly succeeded", src)
		}
	}
}

func TestParseMethod(t *testing.T) {
	m, err := ParseMethod("Select<T, U>(IEnumerable<T> source, Func<T, U> selector) IEnumerable<U>", testResolver{})
	if err != nil {
		t.Fatal(err)
	}
	if len(m.TypeParams) != 2 || m.TypeParams[1].Name != "U" || m.TypeParams[1].Ordinal != 1 {
		t.Errorf("type parameters parsed badly: %v", m.TypeParams)
	}
	if got := m.Params[0].Type.String(); got != "IEnumerable<T>" {
		t.Errorf("first parameter: %s", got)
	}
	// The T inside the signature must be the method's own parameter.
	if !types.ContainsParam(m.Params[0].Type, m.TypeParams[0]) {
		t.Error("signature does not reference the declared type parameter")
	}
	if got := m.Return.String(); got != "IEnumerable<U>" {
		t.Errorf("return type: %s", got)
	}
}

func TestParseMethodRefKindsAndVoid(t *testing.T) {
	m, err := ParseMethod("TryParse<T>(string s, out T value)", testResolver{})
	if err != nil {
		t.Fatal(err)
	}
	if m.Params[1].Ref != types.Out {
		t.Errorf("expected out parameter, got %v", m.Params[1].Ref)
	}
	if !types.Identical(m.Return, types.Void) {
		t.Errorf("missing return type must mean void, got %v", m.Return)
	}
	if kinds := m.RefKinds(); kinds == nil || kinds[0] != types.ByValue || kinds[1] != types.Out {
		t.Errorf("RefKinds() = %v", kinds)
	}
}

func TestParseTypeDecl(t *testing.T) {
	res := testResolver{extra: map[string]*types.TypeDef{}}

	animal, err := ParseTypeDecl("class Animal", res)
	if err != nil {
		t.Fatal(err)
	}
	res.extra["Animal/0"] = animal

	dog, err := ParseTypeDecl("class Dog : Animal", res)
	if err != nil {
		t.Fatal(err)
	}
	if dog.Base == nil || dog.Base.String() != "Animal" {
		t.Errorf("base class: %v", dog.Base)
	}

	box, err := ParseTypeDecl("interface IBox<out T> : IEnumerable<T>", res)
	if err != nil {
		t.Fatal(err)
	}
	if box.Kind != types.Interface || box.Params[0].Variance != types.Covariant {
		t.Errorf("interface header parsed badly: %+v", box)
	}
	if len(box.Interfaces) != 1 || box.Interfaces[0].String() != "IEnumerable<T>" {
		t.Errorf("heritage: %v", box.Interfaces)
	}

	mapper, err := ParseTypeDecl("delegate Mapper<T, R>(T value) R", res)
	if err != nil {
		t.Fatal(err)
	}
	if mapper.Kind != types.Delegate || mapper.Invoke == nil {
		t.Fatalf("delegate parsed badly: %+v", mapper)
	}
	sig := types.DelegateOf(mapper.New(types.Int, types.String))
	if sig == nil || sig.String() != "(int value) -> string" {
		t.Errorf("instantiated delegate shape: %v", sig)
	}
}

func TestParseTypeDeclSelfReference(t *testing.T) {
	res := testResolver{}
	node, err := ParseTypeDecl("class Node<T> : IEnumerable<Node<T>>", res)
	if err != nil {
		t.Fatal(err)
	}
	if got := node.Interfaces[0].String(); got != "IEnumerable<Node<T>>" {
		t.Errorf("self-referential heritage: %s", got)
	}
}

func TestParseCall(t *testing.T) {
	name, args, err := ParseCall("M(int, List<string>, null)", testResolver{extra: map[string]*types.TypeDef{
		"List/1": {Name: "List", Kind: types.Class, Params: []*types.TypeParam{{Name: "T"}}},
	}})
	if err != nil {
		t.Fatal(err)
	}
	if name != "M" || len(args) != 3 {
		t.Fatalf("ParseCall: name=%q args=%v", name, args)
	}
	if args[0].String() != "int" || args[1].String() != "List<string>" || args[2] != nil {
		t.Errorf("arguments parsed badly: %v", args)
	}
}
