// Package scenario loads YAML inference scenarios and runs them against
// the engine. A scenario declares types and generic methods in source
// form and lists call sites with expected outcomes; the package is the
// backbone of the CLI, the REPL and the end-to-end tests.
package scenario

import (
	"fmt"

	"bitbucket.org/creachadair/stringset"
	"github.com/funvibe/sable/internal/types"
	"github.com/funvibe/sable/internal/typeexpr"
)

// World is the set of type definitions and methods a scenario runs
// against. It resolves names for the type-expression parser, with the
// ambient universe always visible.
type World struct {
	defs    map[string]*types.TypeDef
	methods map[string]*types.Method
	order   []string // method declaration order
}

// NewWorld returns a world containing only the ambient universe.
func NewWorld() *World {
	w := &World{
		defs:    make(map[string]*types.TypeDef),
		methods: make(map[string]*types.Method),
	}
	for _, d := range []*types.TypeDef{
		types.ObjectDef, types.VoidDef, types.StringDef, types.BoolDef, types.CharDef,
		types.SByteDef, types.ByteDef, types.ShortDef, types.UShortDef,
		types.IntDef, types.UIntDef, types.LongDef, types.ULongDef,
		types.FloatDef, types.DoubleDef, types.DecimalDef,
		types.EnumerableDef, types.CollectionDef, types.ListDef,
		types.ReadOnlyCollectionDef, types.ReadOnlyListDef,
	} {
		w.defs[defKey(d.Name, len(d.Params))] = d
	}
	return w
}

func defKey(name string, arity int) string {
	return fmt.Sprintf("%s/%d", name, arity)
}

// LookupType implements typeexpr.Resolver. Func, Action, Expression and
// ValueTuple resolve at any arity through the universe factories.
func (w *World) LookupType(name string, arity int) (*types.TypeDef, bool) {
	if d, ok := w.defs[defKey(name, arity)]; ok {
		return d, true
	}
	switch name {
	case "Func":
		if arity >= 1 {
			return types.FuncDef(arity - 1), true
		}
	case "Action":
		return types.ActionDef(arity), true
	case "Expression":
		if arity == 1 {
			return types.ExpressionDef, true
		}
	case "ValueTuple":
		if arity >= 2 {
			return types.TupleDef(arity), true
		}
	}
	return nil, false
}

// DeclareType parses and registers a type declaration.
func (w *World) DeclareType(src string) (*types.TypeDef, error) {
	def, err := typeexpr.ParseTypeDecl(src, w)
	if err != nil {
		return nil, fmt.Errorf("type %q: %w", src, err)
	}
	key := defKey(def.Name, len(def.Params))
	if _, exists := w.defs[key]; exists {
		return nil, fmt.Errorf("type %s redeclared", def.Name)
	}
	w.defs[key] = def
	return def, nil
}

// DeclareMethod parses and registers a method signature.
func (w *World) DeclareMethod(src string) (*types.Method, error) {
	m, err := typeexpr.ParseMethod(src, w)
	if err != nil {
		return nil, fmt.Errorf("method %q: %w", src, err)
	}
	if _, exists := w.methods[m.Name]; exists {
		return nil, fmt.Errorf("method %s redeclared", m.Name)
	}
	w.methods[m.Name] = m
	w.order = append(w.order, m.Name)
	return m, nil
}

// Method returns a declared method by name.
func (w *World) Method(name string) (*types.Method, bool) {
	m, ok := w.methods[name]
	return m, ok
}

// MethodNames returns the declared method names in declaration order.
func (w *World) MethodNames() []string {
	return w.order
}

// validateNames rejects duplicate and shadowed declarations up front so
// a scenario fails fast with one clear message.
func validateNames(typeDecls, methodDecls []string) error {
	seen := stringset.New()
	for _, src := range methodDecls {
		name := declName(src)
		if name == "" {
			continue
		}
		if seen.Contains(name) {
			return fmt.Errorf("duplicate method %s", name)
		}
		seen.Add(name)
	}
	seen = stringset.New()
	for _, src := range typeDecls {
		name := typeDeclName(src)
		if name == "" {
			continue
		}
		if seen.Contains(name) {
			return fmt.Errorf("duplicate type %s", name)
		}
		seen.Add(name)
	}
	return nil
}

func declName(src string) string {
	for i := 0; i < len(src); i++ {
		if src[i] == '<' || src[i] == '(' || src[i] == ' ' {
			return src[:i]
		}
	}
	return src
}

func typeDeclName(src string) string {
	// skip the kind keyword
	i := 0
	for i < len(src) && src[i] != ' ' {
		i++
	}
	for i < len(src) && src[i] == ' ' {
		i++
	}
	rest := src[i:]
	return declName(rest)
}
