package process

import "github.com/wippyai/wasm-embedded/wasm"

// nullElem marks an unset table slot.
const nullElem int64 = -1

// Table is one table instance: a growable slice of (possibly null)
// function-index references. This core carries references opaquely —
// it does not validate call_indirect's expected signature against the
// referenced function's actual signature beyond what the host chooses to
// check.
type Table struct {
	elems    []int64
	maxElems uint32
	hasMax   bool
}

func newTable(t wasm.TableType) *Table {
	tbl := &Table{elems: make([]int64, t.Limits.Min)}
	for i := range tbl.elems {
		tbl.elems[i] = nullElem
	}
	if t.Limits.HasMax {
		tbl.hasMax = true
		tbl.maxElems = t.Limits.Max
	}
	return tbl
}

// Size reports the element count.
func (t *Table) Size() uint32 { return uint32(len(t.elems)) }

// Grow extends the table by delta null-initialized elements.
func (t *Table) Grow(delta uint32) (old uint32, ok bool) {
	old = t.Size()
	if t.hasMax && uint64(old)+uint64(delta) > uint64(t.maxElems) {
		return old, false
	}
	for i := uint32(0); i < delta; i++ {
		t.elems = append(t.elems, nullElem)
	}
	return old, true
}

// Get returns the element at idx, and false if idx is out of bounds.
func (t *Table) Get(idx uint32) (int64, bool) {
	if int(idx) >= len(t.elems) {
		return 0, false
	}
	return t.elems[idx], true
}

// Set stores v at idx.
func (t *Table) Set(idx uint32, v int64) bool {
	if int(idx) >= len(t.elems) {
		return false
	}
	t.elems[idx] = v
	return true
}

// Fill sets n elements starting at idx to v.
func (t *Table) Fill(idx uint32, v int64, n uint32) bool {
	if uint64(idx)+uint64(n) > uint64(len(t.elems)) {
		return false
	}
	for i := uint32(0); i < n; i++ {
		t.elems[idx+i] = v
	}
	return true
}

// Copy copies n elements from src to dst, correctly handling overlap.
func (t *Table) Copy(dst, src, n uint32) bool {
	if uint64(src)+uint64(n) > uint64(len(t.elems)) || uint64(dst)+uint64(n) > uint64(len(t.elems)) {
		return false
	}
	copy(t.elems[dst:dst+n], t.elems[src:src+n])
	return true
}
