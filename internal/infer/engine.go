// Package infer implements method type inference for generic Sable
// methods: given a call M(E1...Em) to M<X1...Xn>(T1 x1 ... Tm xm) with no
// explicit type arguments, it computes a unique assignment Xi -> Si or
// reports failure. The result feeds overload resolution; failure
// disqualifies the candidate without being an error by itself.
//
// The algorithm is a two-phase fixed point. Phase one collects bounds
// from argument types and explicitly typed lambda parameters. Phase two
// iterates output-type inferences for lambda and method-group arguments
// and fixes parameters in dependency order until everything is fixed, a
// fix fails, or no progress is possible.
package infer

import (
	"github.com/funvibe/sable/internal/diag"
	"github.com/funvibe/sable/internal/expr"
	"github.com/funvibe/sable/internal/types"
)

// Converter is the implicit-conversion oracle consulted during fixing.
type Converter interface {
	ImplicitlyConvertible(src, dst types.Type) bool
}

// LambdaAnalyzer computes the inferred return type of a lambda body once
// the delegate parameter types are known.
type LambdaAnalyzer interface {
	InferReturn(l *expr.Lambda, target *types.Signature) (types.Type, bool)
}

// GroupResolver picks the single best method of a group for the given
// delegate parameter list, if there is exactly one.
type GroupResolver interface {
	Resolve(g *expr.MethodGroup, params []types.Param) (*types.Signature, bool)
}

// Services bundles the external collaborators of the engine. All three
// must be side-effect free with respect to engine state.
type Services struct {
	Conv    Converter
	Lambdas LambdaAnalyzer
	Groups  GroupResolver
}

// Result is the outcome of a full inference.
type Result struct {
	OK bool
	// Inferred holds one entry per type parameter. On failure, slots that
	// could not be fixed hold error placeholders retaining the
	// parameter's name.
	Inferred []types.Type
}

// Engine holds the state of one inference. An engine is built per call,
// driven by a single caller and discarded after result extraction.
type Engine struct {
	svc         Services
	typeParams  []*types.TypeParam
	containing  *types.Named
	formalTypes []types.Type
	refKinds    []types.RefKind
	args        []expr.Expr
	sink        *diag.Sink

	classSubst   types.Subst
	fixedResults []types.Type
	exactBounds  []*boundSet
	lowerBounds  []*boundSet
	upperBounds  []*boundSet

	deps      [][]dependency
	depsDirty bool
}

func newEngine(svc Services, typeParams []*types.TypeParam, containing *types.Named, formalTypes []types.Type, refKinds []types.RefKind, args []expr.Expr, sink *diag.Sink) *Engine {
	n := len(typeParams)
	return &Engine{
		svc:          svc,
		typeParams:   typeParams,
		containing:   containing,
		formalTypes:  formalTypes,
		refKinds:     refKinds,
		args:         args,
		sink:         sink,
		classSubst:   containingSubst(containing),
		fixedResults: make([]types.Type, n),
		exactBounds:  make([]*boundSet, n),
		lowerBounds:  make([]*boundSet, n),
		upperBounds:  make([]*boundSet, n),
	}
}

// containingSubst maps the containing definition's type parameters to the
// constructed containing type's arguments, so that a formal of type
// C<T>.FT<U, V> with outer T already bound is seen with T resolved.
func containingSubst(containing *types.Named) types.Subst {
	if containing == nil || len(containing.Args) == 0 {
		return nil
	}
	return types.DefSubst(containing)
}

// Infer runs full method type inference for a call site.
//
// formalTypes is the original, uninstantiated signature of the method:
// type parameters being inferred appear as themselves, and parameters of
// the containing type are resolved through containing. refKinds may be
// nil when every parameter is by-value. Diagnostics are appended to sink;
// a nil sink discards them.
func Infer(svc Services, typeParams []*types.TypeParam, containing *types.Named, formalTypes []types.Type, refKinds []types.RefKind, args []expr.Expr, sink *diag.Sink) Result {
	e := newEngine(svc, typeParams, containing, formalTypes, refKinds, args, sink)
	if len(formalTypes) == 0 && len(typeParams) > 0 {
		sink.Add(diag.CodeNoFormals, "", "method has no formal parameters to infer %d type parameters from", len(typeParams))
		return Result{OK: false, Inferred: e.results()}
	}
	ok := e.inferTypeArgs()
	return Result{OK: ok, Inferred: e.results()}
}

// InferFromFirstArgument performs the partial inference used for
// extension-method probing: only the first argument against the first
// formal parameter. Every type parameter mentioned in that formal must
// end up fixed, otherwise the whole probe returns nil. Parameters not
// mentioned stay nil in the returned slice.
func InferFromFirstArgument(svc Services, method *types.Method, args []expr.Expr) []types.Type {
	if len(method.Params) < 1 || len(args) < 1 {
		return nil
	}
	formals := method.ParamTypes()
	e := newEngine(svc, method.TypeParams, method.Containing, formals, nil, args, nil)

	source := expr.TypeOf(args[0])
	if !types.Usable(source) {
		return nil
	}
	dest := types.Substitute(formals[0], e.classSubst)
	e.lowerBoundInference(source, dest)

	for i, tp := range method.TypeParams {
		if !types.ContainsParam(dest, tp) {
			continue
		}
		if !e.hasBound(i) || !e.fix(i) {
			return nil
		}
	}
	out := make([]types.Type, len(method.TypeParams))
	copy(out, e.fixedResults)
	return out
}

// numArgsToProcess truncates to the shorter of arguments and formals so
// that inference still produces partial results for malformed call
// shapes.
func (e *Engine) numArgsToProcess() int {
	if len(e.args) < len(e.formalTypes) {
		return len(e.args)
	}
	return len(e.formalTypes)
}

// currentSubst maps containing-type parameters to their bindings and
// every fixed method type parameter to its fixed result. Unfixed
// parameters substitute for themselves.
func (e *Engine) currentSubst() types.Subst {
	s := make(types.Subst, len(e.classSubst)+len(e.typeParams))
	for k, v := range e.classSubst {
		s[k] = v
	}
	for i, tp := range e.typeParams {
		if e.fixedResults[i] != nil {
			s[tp] = e.fixedResults[i]
		}
	}
	return s
}

// delegateShape yields the delegate signature of a formal with only the
// containing-type parameters substituted. Used for input/output analysis,
// where unfixed parameters must stay visible.
func (e *Engine) delegateShape(formal types.Type) *types.Signature {
	return types.DelegateOf(types.Substitute(formal, e.classSubst))
}

// fixedDelegate yields the delegate signature of a formal with fixed
// results substituted in; the raw signature stays authoritative, the
// substituted form is ephemeral.
func (e *Engine) fixedDelegate(formal types.Type) *types.Signature {
	return types.DelegateOf(types.Substitute(formal, e.currentSubst()))
}

// results returns the fixed results in parameter order, with error
// placeholders for anything left unfixed.
func (e *Engine) results() []types.Type {
	out := make([]types.Type, len(e.typeParams))
	for i, tp := range e.typeParams {
		if e.fixedResults[i] != nil {
			out[i] = e.fixedResults[i]
		} else {
			out[i] = &types.ErrorType{Name: tp.Name}
		}
	}
	return out
}
