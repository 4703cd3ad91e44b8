package infer

import (
	"github.com/funvibe/sable/internal/diag"
	"github.com/funvibe/sable/internal/expr"
	"github.com/funvibe/sable/internal/types"
)

// phaseResult is the outcome of one phase-two round.
type phaseResult int

const (
	phaseProgress phaseResult = iota
	phaseSuccess
	phaseFailure
)

func (e *Engine) inferTypeArgs() bool {
	e.inferTypeArgsFirstPhase()
	return e.inferTypeArgsSecondPhase()
}

// Phase one: seed bounds from every argument/formal pair.
func (e *Engine) inferTypeArgsFirstPhase() {
	for i := 0; i < e.numArgsToProcess(); i++ {
		isExact := e.refKinds != nil && i < len(e.refKinds) && e.refKinds[i] != types.ByValue
		e.makeArgumentInference(e.args[i], e.formalTypes[i], isExact)
	}
}

func (e *Engine) makeArgumentInference(arg expr.Expr, formal types.Type, isExact bool) {
	switch arg := arg.(type) {
	case *expr.Lambda:
		e.explicitParameterTypeInference(arg, formal)
	case *expr.TupleLit:
		if elems, ok := types.TupleElems(types.Substitute(formal, e.classSubst), len(arg.Elems)); ok {
			for i, el := range arg.Elems {
				e.makeArgumentInference(el, elems[i], isExact)
			}
			return
		}
		e.makeTypedArgumentInference(arg, formal, isExact)
	default:
		e.makeTypedArgumentInference(arg, formal, isExact)
	}
}

func (e *Engine) makeTypedArgumentInference(arg expr.Expr, formal types.Type, isExact bool) {
	source := expr.TypeOf(arg)
	if !types.Usable(source) {
		return
	}
	target := types.Substitute(formal, e.classSubst)
	if isExact {
		e.exactInference(source, target)
	} else {
		e.lowerBoundInference(source, target)
	}
}

// explicitParameterTypeInference makes exact inferences from the declared
// parameter types of an explicitly typed lambda to the delegate's
// parameter types. A ref-kind mismatch does not abort inference; the call
// fails applicability later instead.
func (e *Engine) explicitParameterTypeInference(l *expr.Lambda, formal types.Type) {
	if !l.Explicit {
		return
	}
	sig := e.delegateShape(formal)
	if sig == nil {
		return
	}
	n := len(l.Params)
	if len(sig.Params) < n {
		n = len(sig.Params)
	}
	for i := 0; i < n; i++ {
		if l.Params[i].Type != nil {
			e.exactInference(l.Params[i].Type, sig.Params[i].Type)
		}
	}
}

// Phase two: repeat output inferences and fixing until everything is
// fixed or no round makes progress. Each round either ends the inference
// or fixes at least one parameter, so the loop runs at most n rounds.
func (e *Engine) inferTypeArgsSecondPhase() bool {
	e.initializeDependencies()
	for {
		switch e.doSecondPhase() {
		case phaseSuccess:
			return true
		case phaseFailure:
			return false
		}
	}
}

func (e *Engine) doSecondPhase() phaseResult {
	if e.allFixed() {
		return phaseSuccess
	}
	e.makeOutputTypeInferences()

	fixedAny, failed := e.fixParameters(func(i int) bool { return !e.dependsOnAny(i) })
	if failed {
		return phaseFailure
	}
	if !fixedAny {
		// Nothing nondependent was fixable; try parameters other
		// parameters depend on.
		fixedAny, failed = e.fixParameters(func(i int) bool { return e.anyDependsOn(i) })
		if failed {
			return phaseFailure
		}
		if !fixedAny {
			e.sinkNoProgress()
			return phaseFailure
		}
	}
	if e.allFixed() {
		return phaseSuccess
	}
	return phaseProgress
}

// fixParameters fixes every unfixed parameter that has a bound and
// satisfies the predicate. When one fix fails, the remaining ones are
// still attempted so callers can surface results for as many parameters
// as possible, but the round reports failure.
func (e *Engine) fixParameters(eligible func(i int) bool) (fixedAny, failed bool) {
	needsFixing := make([]bool, len(e.typeParams))
	for i := range e.typeParams {
		if e.isUnfixed(i) && e.hasBound(i) && eligible(i) {
			needsFixing[i] = true
			fixedAny = true
		}
	}
	for i := range e.typeParams {
		if needsFixing[i] && !e.fix(i) {
			failed = true
		}
	}
	return fixedAny, failed
}

func (e *Engine) sinkNoProgress() {
	for i, tp := range e.typeParams {
		if e.isUnfixed(i) {
			e.sink.Add(diag.CodeNoProgress, tp.Name, "type parameter could not be inferred")
		}
	}
}

// makeOutputTypeInferences performs output inferences for every argument
// whose output positions still mention unfixed parameters while its input
// positions mention none.
func (e *Engine) makeOutputTypeInferences() {
	for i := 0; i < e.numArgsToProcess(); i++ {
		e.makeOutputTypeInference(e.args[i], e.formalTypes[i])
	}
}

func (e *Engine) makeOutputTypeInference(arg expr.Expr, formal types.Type) {
	if lit, ok := arg.(*expr.TupleLit); ok {
		if elems, ok := types.TupleElems(types.Substitute(formal, e.classSubst), len(lit.Elems)); ok {
			for i, el := range lit.Elems {
				e.makeOutputTypeInference(el, elems[i])
			}
			return
		}
	}
	if e.hasUnfixedParamInOutputs(arg, formal) && !e.hasUnfixedParamInInputs(arg, formal) {
		e.outputTypeInference(arg, formal)
	}
}

func (e *Engine) outputTypeInference(arg expr.Expr, formal types.Type) {
	switch arg := arg.(type) {
	case *expr.Lambda:
		e.inferredReturnTypeInference(arg, formal)
	case *expr.MethodGroup:
		e.methodGroupReturnTypeInference(arg, formal)
	default:
		source := expr.TypeOf(arg)
		if types.Usable(source) {
			e.lowerBoundInference(source, types.Substitute(formal, e.classSubst))
		}
	}
}

// inferredReturnTypeInference: with all of the lambda's input types
// fixed, ask the lambda analyzer for the body's return type and make a
// lower-bound inference to the delegate's return type.
func (e *Engine) inferredReturnTypeInference(l *expr.Lambda, formal types.Type) {
	sig := e.fixedDelegate(formal)
	if sig == nil || !types.Usable(sig.Return) {
		return
	}
	if inferred, ok := e.svc.Lambdas.InferReturn(l, sig); ok && types.Usable(inferred) {
		e.lowerBoundInference(inferred, sig.Return)
	}
}

// methodGroupReturnTypeInference: resolve the group against the fixed
// delegate parameters; a unique best method contributes its return type
// as a lower bound on the delegate's return type.
func (e *Engine) methodGroupReturnTypeInference(g *expr.MethodGroup, formal types.Type) {
	sig := e.fixedDelegate(formal)
	if sig == nil || !types.Usable(sig.Return) {
		return
	}
	if best, ok := e.svc.Groups.Resolve(g, sig.Params); ok && best != nil && types.Usable(best.Return) {
		e.lowerBoundInference(best.Return, sig.Return)
	}
}
