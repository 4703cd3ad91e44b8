package infer

// dependency is the state of one cell of the dependency matrix. Direct
// and Indirect share the depMask bit so "depends at all" is one mask
// test; transitions on fixing are plain row/column overwrites.
type dependency uint8

const (
	depUnknown      dependency = 0x00
	depNotDependent dependency = 0x01
	depMask         dependency = 0x10
	depDirect       dependency = 0x11
	depIndirect     dependency = 0x12
)

// initializeDependencies computes direct dependencies between all pairs
// of currently unfixed parameters and closes them transitively. Called
// once at the start of phase two.
func (e *Engine) initializeDependencies() {
	n := len(e.typeParams)
	e.deps = make([][]dependency, n)
	for i := range e.deps {
		e.deps[i] = make([]dependency, n)
	}
	for i := 0; i < n; i++ {
		if !e.isUnfixed(i) {
			continue
		}
		for j := 0; j < n; j++ {
			if i != j && e.isUnfixed(j) && e.dependsDirectlyOn(i, j) {
				e.deps[i][j] = depDirect
			}
		}
	}
	e.deduceAllDependencies()
	e.depsDirty = false
}

// dependsDirectlyOn: Xi depends directly on Xj when some argument's
// delegate shape has Xj in an input position and Xi in the output
// position.
func (e *Engine) dependsDirectlyOn(i, j int) bool {
	xi, xj := e.typeParams[i], e.typeParams[j]
	for k := 0; k < e.numArgsToProcess(); k++ {
		arg, formal := e.args[k], e.formalTypes[k]
		if e.doesInputContain(arg, formal, xj) && e.doesOutputContain(arg, formal, xi) {
			return true
		}
	}
	return false
}

// deduceAllDependencies closes the matrix: an Unknown pair becomes
// Indirect as soon as a path through a third parameter exists; whatever
// remains Unknown after the fixed point is NotDependent.
func (e *Engine) deduceAllDependencies() {
	n := len(e.typeParams)
	for changed := true; changed; {
		changed = false
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				if e.deps[i][j] != depUnknown {
					continue
				}
				for k := 0; k < n; k++ {
					if e.deps[i][k]&depMask != 0 && e.deps[k][j]&depMask != 0 {
						e.deps[i][j] = depIndirect
						changed = true
						break
					}
				}
			}
		}
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if e.deps[i][j] == depUnknown {
				e.deps[i][j] = depNotDependent
			}
		}
	}
}

// dependsOn reports whether Xi depends (directly or indirectly) on Xj,
// recomputing stale indirect entries first.
func (e *Engine) dependsOn(i, j int) bool {
	if e.deps == nil {
		return false
	}
	if e.depsDirty {
		n := len(e.typeParams)
		for a := 0; a < n; a++ {
			for b := 0; b < n; b++ {
				if e.deps[a][b] == depIndirect {
					e.deps[a][b] = depUnknown
				}
			}
		}
		e.deduceAllDependencies()
		e.depsDirty = false
	}
	return e.deps[i][j]&depMask != 0
}

// dependsOnAny reports whether Xi depends on any other unfixed parameter.
func (e *Engine) dependsOnAny(i int) bool {
	for j := range e.typeParams {
		if i != j && e.isUnfixed(j) && e.dependsOn(i, j) {
			return true
		}
	}
	return false
}

// anyDependsOn reports whether some other unfixed parameter depends on Xi.
func (e *Engine) anyDependsOn(i int) bool {
	for j := range e.typeParams {
		if i != j && e.isUnfixed(j) && e.dependsOn(j, i) {
			return true
		}
	}
	return false
}

// updateDependenciesAfterFix clears Xi's row and column and schedules the
// indirect entries for recomputation on the next query.
func (e *Engine) updateDependenciesAfterFix(i int) {
	if e.deps == nil {
		return
	}
	for j := range e.typeParams {
		e.deps[i][j] = depNotDependent
		e.deps[j][i] = depNotDependent
	}
	e.depsDirty = true
}
