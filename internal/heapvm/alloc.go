package heapvm

import (
	"gcworkbench/internal/gcerr"
	"gcworkbench/internal/trace"
)

// Reserve advances Top by n words and returns the location it used to
// point at, emitting an `alloc` trace event. It is a fatal fault for
// Top+n to exceed the active region.
func (h *Heap) Reserve(n int) Location {
	loc := h.reserveSilent(n)
	h.tracer.Emit(trace.Alloc(trace.Location(loc), n))
	return loc
}

// ReserveSilent is Reserve without the trace event, used by in-place
// compaction where the source and destination of a slide can overlap
// and the move is logged as a `copy` instead.
func (h *Heap) ReserveSilent(n int) Location { return h.reserveSilent(n) }

func (h *Heap) reserveSilent(n int) Location {
	loc := h.Top
	next := loc + Location(n)
	if next > h.regionEnd {
		gcerr.Abort(gcerr.FaultOutOfMemory, "reserve(%d) at top=%d would exceed active region [%d,%d)", n, loc, h.regionStart, h.regionEnd)
	}
	h.Top = next
	return loc
}

// Alloc reserves n words and zeroes them, for callers that will
// initialise the object's content field by field.
func (h *Heap) Alloc(n int) Location {
	loc := h.Reserve(n)
	for i := 0; i < n; i++ {
		h.words[loc+Location(i)] = 0
	}
	return loc
}

// Copy reserves a run of newSize words (or src's own size when
// newSize==0), copies min(size(src), newSize) words from src, and
// zero-fills any remainder. Used to grow a Vec's backing Tup.
func (h *Heap) Copy(src Location, srcSize, newSize int) Location {
	if newSize == 0 {
		newSize = srcSize
	}
	dst := h.Reserve(newSize)
	n := srcSize
	if newSize < n {
		n = newSize
	}
	for i := 0; i < n; i++ {
		h.words[dst+Location(i)] = h.words[src+Location(i)]
	}
	for i := n; i < newSize; i++ {
		h.words[dst+Location(i)] = 0
	}
	h.tracer.Emit(trace.Copy(trace.Location(dst), trace.Location(src), n))
	return dst
}

// Move reserves a run the size of src, copies it, then overwrites the
// source header with a Forward record pointing at the destination.
// Used by the semi-space copying collector.
func (h *Heap) Move(src Location, size int) Location {
	dst := h.Reserve(size)
	for i := 0; i < size; i++ {
		h.words[dst+Location(i)] = h.words[src+Location(i)]
	}
	h.tracer.Emit(trace.Copy(trace.Location(dst), trace.Location(src), size))
	h.words[src] = packForwardHeader(dst)
	if h.cells != nil {
		h.cells.WasOverhead(trace.Location(src))
	}
	return dst
}

// MoveNoForward reserves a run the size of src and copies it, but does
// not overwrite the source header: mark-compact records forwarding in
// a side table instead, because the source cell may be overwritten by a
// later move in the same slide pass before its forwarding is consulted.
func (h *Heap) MoveNoForward(src Location, size int) Location {
	dst := h.reserveSilent(size)
	// Ascending copy is safe here only because dst <= src always holds
	// for a slide toward the low end of the region; callers must
	// preserve that direction.
	for i := 0; i < size; i++ {
		h.words[dst+Location(i)] = h.words[src+Location(i)]
	}
	h.tracer.Emit(trace.Copy(trace.Location(dst), trace.Location(src), size))
	return dst
}

// Free writes a Free header of the given size in place. The allocator
// never coalesces free blocks; reclamation happens wholesale at the next
// collection (reset Top, flip semi-spaces, or slide).
func (h *Heap) Free(loc Location, size int) {
	if h.Tag(loc) == TagFree {
		gcerr.Abort(gcerr.FaultDoubleFree, "Free: location %d is already free", loc)
	}
	h.words[loc] = packHeader(TagFree, false, 0)
	h.words[loc+1] = Word(size)
	if h.cells != nil {
		for i := 0; i < size; i++ {
			h.cells.WasFreed(trace.Location(loc) + trace.Location(i))
		}
	}
	h.tracer.Emit(trace.Free(trace.Location(loc), size))
}
