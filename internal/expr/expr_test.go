package expr

import (
	"testing"

	"github.com/funvibe/sable/internal/types"
)

func TestTypeOf(t *testing.T) {
	if got := TypeOf(&Typed{Type: types.Int}); !types.Identical(got, types.Int) {
		t.Errorf("TypeOf(typed int) = %v", got)
	}
	if TypeOf(&Typed{}) != nil {
		t.Error("null has no type")
	}
	if TypeOf(&Lambda{}) != nil || TypeOf(&MethodGroup{Name: "M"}) != nil {
		t.Error("lambdas and method groups have no natural type")
	}
}

func TestTupleLitNaturalType(t *testing.T) {
	lit := &TupleLit{Elems: []Expr{
		&Typed{Type: types.Int},
		&Typed{Type: types.String},
	}}
	if got := TypeOf(lit); got == nil || got.String() != "(int, string)" {
		t.Errorf("natural type: %v", got)
	}

	named := &TupleLit{
		Elems: []Expr{&Typed{Type: types.Int}, &Typed{Type: types.String}},
		Names: []string{"a", ""},
	}
	if got := TypeOf(named); got == nil || got.String() != "(a: int, string)" {
		t.Errorf("named natural type: %v", got)
	}

	withLambda := &TupleLit{Elems: []Expr{
		&Typed{Type: types.Int},
		&Lambda{},
	}}
	if TypeOf(withLambda) != nil {
		t.Error("a tuple literal with a typeless element has no natural type")
	}
}

func TestStringForms(t *testing.T) {
	l := &Lambda{Params: []LambdaParam{{Name: "x", Type: types.Int}, {Name: "y"}}}
	if got := l.String(); got != "(int x, y) => ..." {
		t.Errorf("lambda string: %q", got)
	}
	lit := &TupleLit{Elems: []Expr{&Typed{Type: types.Int}, &Typed{}}}
	if got := lit.String(); got != "(expr:int, null)" {
		t.Errorf("tuple literal string: %q", got)
	}
}
