package infer

import "github.com/funvibe/sable/internal/types"

// boundKind selects one of the three bound sets of a type parameter.
type boundKind int

const (
	boundExact boundKind = iota
	boundLower
	boundUpper
)

func (k boundKind) String() string {
	switch k {
	case boundExact:
		return "exact"
	case boundLower:
		return "lower"
	default:
		return "upper"
	}
}

// boundSet is an insertion-ordered set of types. Membership is strict
// type identity; iteration order is insertion order, which keeps the
// whole engine deterministic.
type boundSet struct {
	items []types.Type
}

func (b *boundSet) add(t types.Type) {
	for _, ex := range b.items {
		if types.Identical(ex, t) {
			return
		}
	}
	b.items = append(b.items, t)
}

func (b *boundSet) empty() bool {
	return b == nil || len(b.items) == 0
}

// addBound records a bound for the unfixed parameter with the given index.
func (e *Engine) addBound(kind boundKind, i int, t types.Type) {
	var slot *[]*boundSet
	switch kind {
	case boundExact:
		slot = &e.exactBounds
	case boundLower:
		slot = &e.lowerBounds
	default:
		slot = &e.upperBounds
	}
	if (*slot)[i] == nil {
		(*slot)[i] = &boundSet{}
	}
	(*slot)[i].add(t)
}

// hasBound reports whether any bound set of parameter i is non-empty.
func (e *Engine) hasBound(i int) bool {
	return !e.exactBounds[i].empty() || !e.lowerBounds[i].empty() || !e.upperBounds[i].empty()
}

// isUnfixed reports whether parameter i has not been fixed yet.
func (e *Engine) isUnfixed(i int) bool {
	return e.fixedResults[i] == nil
}

// allFixed reports whether every type parameter has been fixed.
func (e *Engine) allFixed() bool {
	for i := range e.fixedResults {
		if e.fixedResults[i] == nil {
			return false
		}
	}
	return true
}

// unfixedParamIndex returns the index of t among this inference's type
// parameters when t is one of them and still unfixed. Type parameters of
// enclosing scopes and already-fixed parameters do not match; they flow
// through the structural rules instead.
func (e *Engine) unfixedParamIndex(t types.Type) (int, bool) {
	tp, ok := t.(*types.TypeParam)
	if !ok {
		return 0, false
	}
	for i, p := range e.typeParams {
		if p == tp {
			if e.isUnfixed(i) {
				return i, true
			}
			return 0, false
		}
	}
	return 0, false
}
