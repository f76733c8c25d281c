package heapvm

import (
	"strconv"

	"gcworkbench/internal/trace"
)

// InitNum allocates and initialises a Num object holding value, with the
// given initial reference count (1 under refcounting, 0 otherwise).
func InitNum(h *Heap, value Word, refcount uint8) Location {
	loc := h.Alloc(2)
	h.setOverhead(loc, packHeader(TagNum, false, refcount))
	h.words[loc+1] = value
	h.tracer.Emit(trace.Init(trace.Location(loc), TagNum.String()))
	h.tracer.Emit(trace.Set(trace.Location(loc+1), strconv.FormatInt(int64(value), 10)))
	return loc
}

// NumValue reads the value held by the Num at loc.
func NumValue(h *Heap, loc Location) Word {
	checkTag(h, loc, TagNum, "NumValue")
	return h.Word(loc + 1)
}
