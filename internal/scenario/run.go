package scenario

import (
	"fmt"

	"github.com/funvibe/sable/internal/conv"
	"github.com/funvibe/sable/internal/diag"
	"github.com/funvibe/sable/internal/expr"
	"github.com/funvibe/sable/internal/infer"
	"github.com/funvibe/sable/internal/typeexpr"
	"github.com/funvibe/sable/internal/types"
)

// Outcome is the result of running one call.
type Outcome struct {
	Call     *Call
	Method   *types.Method
	Result   infer.Result
	Diags    []diag.Diagnostic
	Checked  bool // an expectation was present
	Pass     bool // and it matched
	Mismatch string
}

// Services returns the engine collaborators backed by the reference
// conversion classifier and the scenario argument model.
func Services() infer.Services {
	classifier := conv.Classifier{}
	return infer.Services{
		Conv:    classifier,
		Lambdas: bodyAnalyzer{},
		Groups:  groupResolver{conv: classifier},
	}
}

// Run declares the file's types and methods into the world and runs
// every call.
func (w *World) Run(f *File) ([]Outcome, error) {
	for _, src := range f.Types {
		if _, err := w.DeclareType(src); err != nil {
			return nil, err
		}
	}
	for _, src := range f.Methods {
		if _, err := w.DeclareMethod(src); err != nil {
			return nil, err
		}
	}
	out := make([]Outcome, 0, len(f.Calls))
	for i := range f.Calls {
		o, err := w.RunCall(&f.Calls[i])
		if err != nil {
			return nil, err
		}
		out = append(out, *o)
	}
	return out, nil
}

// RunCall infers a single call site.
func (w *World) RunCall(c *Call) (*Outcome, error) {
	m, ok := w.Method(c.Method)
	if !ok {
		return nil, fmt.Errorf("call of undeclared method %s", c.Method)
	}
	args := make([]expr.Expr, len(c.Args))
	for i := range c.Args {
		a, err := w.buildArg(&c.Args[i])
		if err != nil {
			return nil, fmt.Errorf("call %s, argument %d: %w", c.Method, i+1, err)
		}
		args[i] = a
	}
	var sink diag.Sink
	res := infer.Infer(Services(), m.TypeParams, m.Containing, m.ParamTypes(), m.RefKinds(), args, &sink)
	o := &Outcome{Call: c, Method: m, Result: res, Diags: sink.All()}
	o.check()
	return o, nil
}

func (o *Outcome) check() {
	if o.Call.Expect == nil {
		return
	}
	o.Checked = true
	o.Pass = true
	e := o.Call.Expect
	if e.OK != nil && *e.OK != o.Result.OK {
		o.Pass = false
		o.Mismatch = fmt.Sprintf("expected ok=%v, got ok=%v", *e.OK, o.Result.OK)
		return
	}
	if len(e.Inferred) > 0 {
		if len(e.Inferred) != len(o.Result.Inferred) {
			o.Pass = false
			o.Mismatch = fmt.Sprintf("expected %d type arguments, got %d", len(e.Inferred), len(o.Result.Inferred))
			return
		}
		for i, want := range e.Inferred {
			got := o.Result.Inferred[i].String()
			if got != want {
				o.Pass = false
				o.Mismatch = fmt.Sprintf("type argument %d: expected %s, got %s", i+1, want, got)
				return
			}
		}
	}
}

func (w *World) buildArg(a *Arg) (expr.Expr, error) {
	switch {
	case a.Null:
		return &expr.Typed{}, nil
	case a.Type != "":
		t, err := typeexpr.ParseType(a.Type, w)
		if err != nil {
			return nil, err
		}
		return &expr.Typed{Type: t}, nil
	case a.Lambda != nil:
		return w.buildLambda(a.Lambda)
	case len(a.Group) > 0:
		return w.buildGroup(a.Group)
	case len(a.Tuple) > 0:
		elems := make([]expr.Expr, len(a.Tuple))
		for i := range a.Tuple {
			el, err := w.buildArg(&a.Tuple[i])
			if err != nil {
				return nil, err
			}
			elems[i] = el
		}
		return &expr.TupleLit{Elems: elems, Names: a.Names}, nil
	}
	return nil, fmt.Errorf("argument sets none of type/null/lambda/group/tuple")
}

func (w *World) buildLambda(la *LambdaArg) (expr.Expr, error) {
	l := &expr.Lambda{}
	if len(la.Params) > 0 {
		l.Explicit = true
		for i, src := range la.Params {
			t, err := typeexpr.ParseType(src, w)
			if err != nil {
				return nil, err
			}
			l.Params = append(l.Params, expr.LambdaParam{Name: fmt.Sprintf("p%d", i+1), Type: t})
		}
	} else {
		for i := 0; i < la.Count; i++ {
			l.Params = append(l.Params, expr.LambdaParam{Name: fmt.Sprintf("p%d", i+1)})
		}
	}
	switch {
	case la.ReturnsParam > 0:
		idx := la.ReturnsParam - 1
		l.Body = func(paramTypes []types.Type) (types.Type, bool) {
			if idx >= len(paramTypes) || types.IsError(paramTypes[idx]) {
				return nil, false
			}
			return paramTypes[idx], true
		}
	case la.Returns != "":
		ret, err := typeexpr.ParseType(la.Returns, w)
		if err != nil {
			return nil, err
		}
		l.Body = func([]types.Type) (types.Type, bool) { return ret, true }
	}
	return l, nil
}

func (w *World) buildGroup(sigs []string) (expr.Expr, error) {
	g := &expr.MethodGroup{}
	for _, src := range sigs {
		m, err := typeexpr.ParseMethod(src, w)
		if err != nil {
			return nil, err
		}
		if g.Name == "" {
			g.Name = m.Name
		}
		g.Candidates = append(g.Candidates, m)
	}
	return g, nil
}

// bodyAnalyzer implements the lambda return-type analyzer over the
// scenario lambda model: the Body hook stands in for binding the body
// with the delegate's parameter types in scope.
type bodyAnalyzer struct{}

func (bodyAnalyzer) InferReturn(l *expr.Lambda, target *types.Signature) (types.Type, bool) {
	if l.Body == nil {
		return nil, false
	}
	return l.Body(target.ParamTypes())
}

// groupResolver picks the single best method-group candidate for a fixed
// delegate parameter list: arity must match and every delegate parameter
// must convert to the candidate's parameter, with exact matches preferred
// over convertible ones.
type groupResolver struct {
	conv conv.Classifier
}

func (r groupResolver) Resolve(g *expr.MethodGroup, params []types.Param) (*types.Signature, bool) {
	var exact, applicable []*types.Method
	for _, m := range g.Candidates {
		if len(m.Params) != len(params) || len(m.TypeParams) > 0 {
			continue
		}
		allIdentical, allConvertible := true, true
		for i, p := range params {
			if !types.Identical(p.Type, m.Params[i].Type) {
				allIdentical = false
			}
			if !r.conv.ImplicitlyConvertible(p.Type, m.Params[i].Type) {
				allConvertible = false
				break
			}
		}
		if allIdentical {
			exact = append(exact, m)
		} else if allConvertible {
			applicable = append(applicable, m)
		}
	}
	pool := exact
	if len(pool) == 0 {
		pool = applicable
	}
	if len(pool) != 1 {
		return nil, false
	}
	best := pool[0]
	return &types.Signature{Params: best.Params, Return: best.Return}, true
}
