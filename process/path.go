package process

import "github.com/wippyai/wasm-embedded/wasm"

// levelKind tags what kind of structured instruction, if any, a path
// level's slot holds.
type levelKind byte

const (
	levelLeaf levelKind = iota
	levelBlock
	levelLoop
	levelIf
)

// level is one entry of a resolved path: the sequence it indexes into,
// the index itself, and — for an if level — which branch was chosen.
// consumed records how many path integers this level occupies (2 for an
// if level, which is followed by a branch selector; 1 otherwise).
type level struct {
	seq      []wasm.Instruction
	idx      int
	consumed int
	branch   int
	kind     levelKind
}

// errInternalPath marks a path that does not resolve against the tree —
// a bug in path construction, never a property of untrusted input (the
// module already parsed successfully).
type errInternalPath struct{ detail string }

func (e *errInternalPath) Error() string { return "process: invalid path: " + e.detail }

// navigate walks path against root, producing one level per nesting step.
// The final level is always tagged levelLeaf regardless of what
// instruction actually sits there — navigate stops descending once the
// path is exhausted.
func navigate(root []wasm.Instruction, path []int) ([]level, error) {
	if len(path) == 0 {
		return nil, &errInternalPath{"empty path"}
	}
	var levels []level
	seq := root
	i := 0
	for {
		if i >= len(path) {
			return nil, &errInternalPath{"path exhausted mid-descent"}
		}
		idx := path[i]
		if idx < 0 || idx >= len(seq) {
			return nil, &errInternalPath{"index out of range"}
		}
		if i == len(path)-1 {
			levels = append(levels, level{seq: seq, idx: idx, consumed: 1, kind: levelLeaf})
			return levels, nil
		}
		instr := seq[idx]
		switch imm := instr.Imm.(type) {
		case wasm.BlockImm:
			kind := levelBlock
			if instr.Opcode == wasm.OpLoop {
				kind = levelLoop
			}
			levels = append(levels, level{seq: seq, idx: idx, consumed: 1, kind: kind})
			seq = imm.Body
			i++
		case wasm.IfImm:
			if i+1 >= len(path) {
				return nil, &errInternalPath{"if missing branch selector"}
			}
			branch := path[i+1]
			levels = append(levels, level{seq: seq, idx: idx, consumed: 2, branch: branch, kind: levelIf})
			if branch == 0 {
				seq = imm.Then
			} else {
				seq = imm.Else
			}
			i += 2
		default:
			return nil, &errInternalPath{"path descends into a non-structured instruction"}
		}
	}
}

// pathThrough reconstructs the path integers represented by levels[0:n]
// (levels 0 through n-1), preserving branch selectors for if-levels.
func pathThrough(levels []level, n int) []int {
	var path []int
	for i := 0; i < n; i++ {
		l := levels[i]
		path = append(path, l.idx)
		if l.consumed == 2 {
			path = append(path, l.branch)
		}
	}
	return path
}

// advanceFrom increments levels[start].idx (treating it as a plain index
// into its sequence, discarding any branch it represented) and, on
// overflow, pops upward through enclosing levels. ok is false when the
// advance pops past the root sequence — the body has run to completion.
func advanceFrom(levels []level, start int) (path []int, ok bool) {
	for k := start; k >= 0; k-- {
		levels[k].idx++
		if levels[k].idx < len(levels[k].seq) {
			return append(pathThrough(levels, k), levels[k].idx), true
		}
	}
	return nil, false
}

// descendBlock appends the entry point for a freshly-entered block/loop
// body (child index 0).
func descendBlock(path []int) []int {
	return append(append([]int{}, path...), 0)
}

// descendIf appends the branch selector and entry point for a freshly
// entered if/else branch.
func descendIf(path []int, branch int) []int {
	return append(append([]int{}, path...), branch, 0)
}

// branchTarget resolves a branch of relative depth k against the levels
// of the current (br/br_if/br_table) instruction's own path, which is the
// leaf level itself. It returns the index, within levels, of the
// structured container the branch targets.
func branchTarget(levels []level, k int) (int, error) {
	// levels[len-1] is the br instruction's own leaf slot; the enclosing
	// containers are levels[0 : len-1], nearest enclosing last.
	containers := len(levels) - 1
	if k < 0 || k >= containers {
		return 0, &errInternalPath{"branch depth exceeds enclosing containers"}
	}
	return containers - 1 - k, nil
}
