package heapvm

import (
	"gcworkbench/internal/gcerr"
	"gcworkbench/internal/trace"
)

// InitTup allocates a fixed-length Tup of n slots, all initially zero
// (no reference).
func InitTup(h *Heap, n int, refcount uint8) Location {
	loc := h.Alloc(2 + n)
	h.setOverhead(loc, packHeader(TagTup, false, refcount))
	h.words[loc+1] = Word(n)
	h.tracer.Emit(trace.Init(trace.Location(loc), TagTup.String()))
	return loc
}

// TupLen reads a Tup's slot count.
func TupLen(h *Heap, loc Location) int {
	checkTag(h, loc, TagTup, "TupLen")
	return int(h.Word(loc + 1))
}

// TupGet reads slot i of the Tup at loc.
func TupGet(h *Heap, loc Location, i int) Location {
	checkTupIndex(h, loc, i)
	return Location(h.Word(loc + 2 + Location(i)))
}

// TupSetSlot overwrites slot i with newLoc, without any refcount
// bookkeeping. Callers that need the store-new-ref ordering (spec
// §4.2) should go through the Machine's AssignTupSlot instead; this is
// the raw slot write that AssignTupSlot and VecPush perform once their
// own refcount bookkeeping is done.
func TupSetSlot(h *Heap, loc Location, i int, newLoc Location, printable string) {
	checkTupIndex(h, loc, i)
	h.SetWord(loc+2+Location(i), Word(newLoc), printable)
}

func checkTupIndex(h *Heap, loc Location, i int) {
	checkTag(h, loc, TagTup, "Tup accessor")
	n := int(h.rawWord(loc + 1))
	if i < 0 || i >= n {
		gcerr.Abort(gcerr.FaultOutOfBounds, "tup slot %d out of bounds (len=%d) at location %d", i, n, loc)
	}
}
