package heapvm

import (
	"strconv"

	"gcworkbench/internal/trace"
)

// InitVec allocates a growable Vec backed by a freshly allocated Tup of
// the given initial capacity. length starts at 0.
func InitVec(h *Heap, capacity int, refcount uint8) Location {
	backing := InitTup(h, capacity, 1)
	loc := h.Alloc(3)
	h.setOverhead(loc, packHeader(TagVec, false, refcount))
	h.words[loc+1] = 0
	h.words[loc+2] = Word(backing)
	h.tracer.Emit(trace.Init(trace.Location(loc), TagVec.String()))
	return loc
}

// VecLen reads a Vec's current length.
func VecLen(h *Heap, loc Location) int {
	checkTag(h, loc, TagVec, "VecLen")
	return int(h.Word(loc + 1))
}

// VecBacking reads a Vec's backing Tup location.
func VecBacking(h *Heap, loc Location) Location {
	checkTag(h, loc, TagVec, "VecBacking")
	return Location(h.Word(loc + 2))
}

// VecCapacity reads the capacity of a Vec's backing Tup.
func VecCapacity(h *Heap, loc Location) int {
	return TupLen(h, VecBacking(h, loc))
}

// VecGet reads element i (0 <= i < length) of the Vec at loc.
func VecGet(h *Heap, loc Location, i int) Location {
	return TupGet(h, VecBacking(h, loc), i)
}

// vecSetLen overwrites the length field and emits a user-facing `set`
// event: dkp.cc's VecRef::push calls log_set_val(&vec->len, vec->len)
// for this exact write, not a bookkeeping log_alloc_mem/log_ref_count.
func vecSetLen(h *Heap, loc Location, n int) {
	h.SetWord(loc+1, Word(n), strconv.Itoa(n))
}

// vecSetBacking overwrites the backing-Tup field directly.
func vecSetBacking(h *Heap, loc Location, backing Location) {
	h.setOverhead(loc+2, Word(backing))
}
