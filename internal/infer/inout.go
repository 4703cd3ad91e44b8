package infer

import (
	"github.com/funvibe/sable/internal/expr"
	"github.com/funvibe/sable/internal/types"
)

// Input and output types exist only for lambda and method-group arguments
// whose formal yields a delegate: the inputs are the delegate's parameter
// types, the output is its return type. Everything else has neither.

func (e *Engine) argumentHasInOut(arg expr.Expr) bool {
	switch arg.(type) {
	case *expr.Lambda, *expr.MethodGroup:
		return true
	}
	return false
}

// hasUnfixedParamInInputs reports whether some unfixed type parameter
// occurs in an input type of the argument against the formal.
func (e *Engine) hasUnfixedParamInInputs(arg expr.Expr, formal types.Type) bool {
	if !e.argumentHasInOut(arg) {
		return false
	}
	sig := e.delegateShape(formal)
	if sig == nil {
		return false
	}
	for _, p := range sig.Params {
		if e.containsUnfixed(p.Type) {
			return true
		}
	}
	return false
}

// hasUnfixedParamInOutputs reports whether some unfixed type parameter
// occurs in the output type of the argument against the formal.
func (e *Engine) hasUnfixedParamInOutputs(arg expr.Expr, formal types.Type) bool {
	if !e.argumentHasInOut(arg) {
		return false
	}
	sig := e.delegateShape(formal)
	if sig == nil {
		return false
	}
	return e.containsUnfixed(sig.Return)
}

func (e *Engine) containsUnfixed(t types.Type) bool {
	if t == nil {
		return false
	}
	for i, tp := range e.typeParams {
		if e.isUnfixed(i) && types.ContainsParam(t, tp) {
			return true
		}
	}
	return false
}

// doesInputContain reports whether the given parameter occurs in an input
// type of the argument against the formal.
func (e *Engine) doesInputContain(arg expr.Expr, formal types.Type, tp *types.TypeParam) bool {
	if !e.argumentHasInOut(arg) {
		return false
	}
	sig := e.delegateShape(formal)
	if sig == nil {
		return false
	}
	for _, p := range sig.Params {
		if types.ContainsParam(p.Type, tp) {
			return true
		}
	}
	return false
}

// doesOutputContain reports whether the given parameter occurs in the
// output type of the argument against the formal.
func (e *Engine) doesOutputContain(arg expr.Expr, formal types.Type, tp *types.TypeParam) bool {
	if !e.argumentHasInOut(arg) {
		return false
	}
	sig := e.delegateShape(formal)
	if sig == nil || sig.Return == nil {
		return false
	}
	return types.ContainsParam(sig.Return, tp)
}
