package heapvm

import "gcworkbench/internal/gcerr"

// Size returns the word count occupied by the object at loc, computed
// from its header plus any length fields. Querying the size of a
// Forward cell is a fatal fault: a forwarded cell's true size is the
// size of whatever now lives at its destination, and nothing in the
// core should ever need it directly.
func Size(h *Heap, loc Location) int {
	switch h.Tag(loc) {
	case TagNil:
		return 1
	case TagForward:
		gcerr.Abort(gcerr.FaultForwardSize, "size() queried on forward cell at location %d", loc)
		return 0
	case TagFree:
		return int(h.rawWord(loc + 1))
	case TagNum:
		return 2
	case TagTup:
		return 2 + int(h.rawWord(loc+1))
	case TagVec:
		return 3
	case TagStr:
		return 2 + int(h.rawWord(loc+1))
	default:
		gcerr.Abort(gcerr.FaultCorruptTag, "corrupt type tag at location %d", loc)
		return 0
	}
}

// Traverse visits every non-zero outgoing location reachable from loc
// exactly once. Tup visits each of its slots; Vec visits its backing Tup
// and then that Tup's own slots (bounded by the Tup's own stored length,
// which is always >= Vec's length and whose excess capacity is always
// zero-filled until grown, per Heap.Copy's zero-fill contract); leaf
// types (Nil, Num, Str) do nothing.
func Traverse(h *Heap, loc Location, visit func(Location)) {
	switch h.Tag(loc) {
	case TagTup:
		n := int(h.rawWord(loc + 1))
		for i := 0; i < n; i++ {
			if slot := Location(h.rawWord(loc + 2 + Location(i))); slot != 0 {
				visit(slot)
			}
		}
	case TagVec:
		backing := Location(h.rawWord(loc + 2))
		if backing == 0 {
			return
		}
		visit(backing)
		n := int(h.rawWord(backing + 1))
		for i := 0; i < n; i++ {
			if slot := Location(h.rawWord(backing + 2 + Location(i))); slot != 0 {
				visit(slot)
			}
		}
	default:
		// Nil, Num, Str, Free, Forward carry no outgoing references.
	}
}

// FixupReferences rewrites every outgoing location stored at loc to its
// post-move location via resolve. Each live object is fixed up exactly
// once by the collector's fixup pass; Vec.fixupReferences only rewrites
// its own backing field, since the backing Tup is itself a live object
// the same pass will fix up independently.
func FixupReferences(h *Heap, loc Location, resolve func(Location) Location) {
	switch h.Tag(loc) {
	case TagTup:
		n := int(h.rawWord(loc + 1))
		for i := 0; i < n; i++ {
			slotLoc := loc + 2 + Location(i)
			if slot := Location(h.rawWord(slotLoc)); slot != 0 {
				h.setOverhead(slotLoc, Word(resolve(slot)))
			}
		}
	case TagVec:
		slotLoc := loc + 2
		if backing := Location(h.rawWord(slotLoc)); backing != 0 {
			h.setOverhead(slotLoc, Word(resolve(backing)))
		}
	default:
	}
}

// Cleanup decrements the refcount of every outgoing reference from loc
// and zeros the slot holding it. Used only in reference-counting mode,
// when loc's own refcount has just dropped to zero.
func Cleanup(h *Heap, loc Location, dec func(Location)) {
	switch h.Tag(loc) {
	case TagTup:
		n := int(h.rawWord(loc + 1))
		for i := 0; i < n; i++ {
			slotLoc := loc + 2 + Location(i)
			if slot := Location(h.rawWord(slotLoc)); slot != 0 {
				dec(slot)
				h.setOverhead(slotLoc, 0)
			}
		}
	case TagVec:
		slotLoc := loc + 2
		if backing := Location(h.rawWord(slotLoc)); backing != 0 {
			dec(backing)
			h.setOverhead(slotLoc, 0)
		}
	default:
	}
}
