package infer

import (
	"github.com/funvibe/sable/internal/diag"
	"github.com/funvibe/sable/internal/types"
)

// candidateSet is the ordered working set of fix candidates. Candidates
// that are equal up to dynamic-ness and tuple names occupy one slot and
// are merged as they arrive.
type candidateSet struct {
	items []types.Type
}

func (c *candidateSet) addOrMerge(t types.Type) {
	for i, ex := range c.items {
		if types.Equivalent(ex, t) {
			// Keep the existing entry when the incoming candidate is
			// itself dynamic; a later lower-bound pass still merges the
			// dynamic-ness back in.
			if !types.IsDynamic(t) {
				c.items[i] = types.Merge(ex, t)
			}
			return
		}
	}
	c.items = append(c.items, t)
}

// fix reconciles the bounds of parameter i into a unique best candidate
// and records it. Reports false (leaving the parameter unfixed) when the
// bounds are empty, conflicting or ambiguous.
func (e *Engine) fix(i int) bool {
	name := e.typeParams[i].Name
	exact, lower, upper := e.exactBounds[i], e.lowerBounds[i], e.upperBounds[i]

	var cands candidateSet
	if !exact.empty() {
		for _, b := range exact.items {
			cands.addOrMerge(b)
		}
		if len(cands.items) >= 2 {
			e.sink.Add(diag.CodeConflictingExact, name, "conflicting exact bounds %s and %s", cands.items[0], cands.items[1])
			return false
		}
	} else {
		if !lower.empty() {
			for _, b := range lower.items {
				cands.addOrMerge(b)
			}
		}
		if !upper.empty() {
			for _, b := range upper.items {
				cands.addOrMerge(b)
			}
		}
	}
	if len(cands.items) == 0 {
		e.sink.Add(diag.CodeNoBounds, name, "no bounds were inferred")
		return false
	}

	// Every lower bound must convert to a surviving candidate; a
	// candidate equal to the bound up to dynamic/tuple-names survives and
	// absorbs the bound.
	if !lower.empty() {
		for _, l := range lower.items {
			kept := cands.items[:0]
			for _, c := range cands.items {
				if types.Equivalent(c, l) {
					kept = append(kept, types.Merge(c, l))
				} else if e.svc.Conv.ImplicitlyConvertible(l, c) {
					kept = append(kept, c)
				}
			}
			cands.items = kept
		}
	}
	// Symmetrically, every surviving candidate must convert to each
	// upper bound.
	if !upper.empty() {
		for _, u := range upper.items {
			kept := cands.items[:0]
			for _, c := range cands.items {
				if types.Equivalent(c, u) {
					kept = append(kept, types.Merge(c, u))
				} else if e.svc.Conv.ImplicitlyConvertible(c, u) {
					kept = append(kept, c)
				}
			}
			cands.items = kept
		}
	}
	if len(cands.items) == 0 {
		e.sink.Add(diag.CodeNoBounds, name, "no candidate satisfies all bounds")
		return false
	}

	// Unique best: the candidate every other candidate converts to.
	// Ties between candidates equal up to dynamic/tuple-names merge
	// instead of failing, favoring dynamic over object.
	var best types.Type
	for _, c := range cands.items {
		if !e.convertsFromAll(cands.items, c) {
			continue
		}
		switch {
		case best == nil:
			best = c
		case types.Equivalent(best, c):
			best = types.Merge(best, c)
		default:
			e.sink.Add(diag.CodeAmbiguousBounds, name, "no unique best bound among %d candidates", len(cands.items))
			return false
		}
	}
	if best == nil {
		e.sink.Add(diag.CodeAmbiguousBounds, name, "bounds have no common candidate")
		return false
	}

	e.fixedResults[i] = best
	e.updateDependenciesAfterFix(i)
	return true
}

func (e *Engine) convertsFromAll(cands []types.Type, to types.Type) bool {
	for _, c := range cands {
		if c == to || types.Equivalent(c, to) {
			continue
		}
		if !e.svc.Conv.ImplicitlyConvertible(c, to) {
			return false
		}
	}
	return true
}
