package heapvm

import (
	"gcworkbench/internal/gcerr"
	"gcworkbench/internal/trace"
)

// Heap is the fixed-size linear store of machine words the whole
// workbench operates on. In copying mode it is treated as two
// semi-spaces of HeapSemiSize words; Top always points one past the
// last reserved word of the currently active region.
type Heap struct {
	words   []Word
	Top     Location
	copying bool // true once the build is running in semi-space mode

	// regionStart/regionEnd bound the currently active allocation
	// region: 1..len(words) in single-region mode, or one semi-space
	// in copying mode.
	regionStart Location
	regionEnd   Location

	tracer trace.Tracer
	cells  *trace.CellTable
}

// New allocates a single-region Heap of size words (location 0 reserved
// for Nil). Used by reference counting, mark-sweep and mark-compact.
// tracer and cells may be trace.Nop / nil respectively.
func New(size int, tracer trace.Tracer, cells *trace.CellTable) *Heap {
	if tracer == nil {
		tracer = trace.Nop
	}
	h := &Heap{
		words:       make([]Word, size),
		Top:         1,
		regionStart: 1,
		regionEnd:   Location(size),
		tracer:      tracer,
		cells:       cells,
	}
	h.words[NilLocation] = packHeader(TagNil, false, 0)
	return h
}

// NewSemiSpace allocates a Heap of 2*semiSize words split into two
// semi-spaces of semiSize words each, with the low half active.
func NewSemiSpace(semiSize int, tracer trace.Tracer, cells *trace.CellTable) *Heap {
	h := New(2*semiSize, tracer, cells)
	h.copying = true
	h.regionStart = 1
	h.regionEnd = Location(semiSize)
	return h
}

// SemiSize returns the word count of one semi-space; valid only when Copying().
func (h *Heap) SemiSize() int { return len(h.words) / 2 }

// RegionStart/RegionEnd report the active allocation region's bounds.
func (h *Heap) RegionStart() Location { return h.regionStart }
func (h *Heap) RegionEnd() Location   { return h.regionEnd }

// Flip switches the active semi-space to the other half and resets Top
// to its start. Only the copying collector calls this, during step 2 of
// its collection (spec §4.4.3).
func (h *Heap) Flip() {
	semi := Location(h.SemiSize())
	if h.regionStart == 1 {
		h.regionStart, h.regionEnd = semi, semi+semi
		h.Top = semi
	} else {
		h.regionStart, h.regionEnd = 1, semi
		h.Top = 1
	}
}

// RewindTop moves Top back to loc. Only mark-compact's slide calls this,
// the instant it finds the first dead cell in its linear walk.
func (h *Heap) RewindTop(loc Location) { h.Top = loc }

// InActiveRegion reports whether loc lies in the currently active region.
func (h *Heap) InActiveRegion(loc Location) bool {
	return loc >= h.regionStart && loc < h.regionEnd
}

// Size returns the total word count of the heap array.
func (h *Heap) Size() int { return len(h.words) }

// SetCopying flips semi-space bookkeeping on; only the copying
// collector's build configuration calls this.
func (h *Heap) SetCopying(v bool) { h.copying = v }

// Copying reports whether the heap is being managed as two semi-spaces.
func (h *Heap) Copying() bool { return h.copying }

func (h *Heap) checkBounds(loc Location) {
	if int(loc) >= len(h.words) {
		gcerr.Abort(gcerr.FaultOutOfBounds, "location %d outside heap of size %d", loc, len(h.words))
	}
}

// ReadBarrier is the hook every location interpretation goes through.
// It is a stub identity today; a future incremental collector would
// intercept it here instead of at every call site.
func (h *Heap) ReadBarrier(loc Location) Location { return loc }

// Word reads the raw word at loc, without bounds checking semantics
// beyond a fatal fault, and records a read in the cell table.
func (h *Heap) Word(loc Location) Word {
	h.checkBounds(loc)
	if h.cells != nil {
		h.cells.WasRead(trace.Location(loc))
	}
	return h.words[loc]
}

// SetWord writes a user-visible value word and emits a `set` trace event.
func (h *Heap) SetWord(loc Location, v Word, printable string) {
	h.checkBounds(loc)
	h.words[loc] = v
	if h.cells != nil {
		h.cells.WasWritten(trace.Location(loc))
	}
	h.tracer.Emit(trace.Set(trace.Location(loc), printable))
}

// setOverhead writes a bookkeeping word (header/forwarding/refcount)
// without a `set` trace event; callers emit their own overhead event.
func (h *Heap) setOverhead(loc Location, v Word) {
	h.checkBounds(loc)
	h.words[loc] = v
	if h.cells != nil {
		h.cells.WasOverhead(trace.Location(loc))
	}
}

// rawWord reads without bumping cell recency metadata, for internal
// bookkeeping reads (header decode) that aren't a user-observable access.
func (h *Heap) rawWord(loc Location) Word {
	h.checkBounds(loc)
	return h.words[loc]
}

// Tag reads the type tag at loc.
func (h *Heap) Tag(loc Location) Tag {
	tag := headerTag(h.rawWord(loc))
	if !tag.valid() {
		gcerr.Abort(gcerr.FaultCorruptTag, "corrupt type tag %d at location %d", tag, loc)
	}
	return tag
}

// Mark reads the mark bit at loc.
func (h *Heap) Mark(loc Location) bool { return headerMark(h.rawWord(loc)) }

// SetMark sets or clears the mark bit at loc without disturbing refcount/tag.
func (h *Heap) SetMark(loc Location, mark bool) {
	h.setOverhead(loc, withMark(h.rawWord(loc), mark))
}

// ClearAllMarks resets every cell's mark bit ahead of a tracing pass.
func (h *Heap) ClearAllMarks() {
	for loc := Location(1); loc < h.Top; {
		h.words[loc] = withMark(h.words[loc], false)
		loc += Location(sizeRaw(h, loc))
	}
}

// RefCount reads the reference count at loc.
func (h *Heap) RefCount(loc Location) uint8 { return headerRefcount(h.rawWord(loc)) }

// SetRefCount writes the reference count at loc and emits a ref_count event.
func (h *Heap) SetRefCount(loc Location, count uint8) {
	h.setOverhead(loc, withRefcount(h.rawWord(loc), count))
	h.tracer.Emit(trace.RefCount(trace.Location(loc), int(count)))
}

// ForwardDest reads the destination of a Forward cell at loc.
func (h *Heap) ForwardDest(loc Location) Location {
	w := h.rawWord(loc)
	if headerTag(w) != TagForward {
		gcerr.Abort(gcerr.FaultCorruptTag, "location %d is not a forward cell", loc)
	}
	return headerForwardDest(w)
}

// Emit exposes the heap's tracer for collectors that need to log
// breakpoints, roots or live-set snapshots alongside allocator events.
func (h *Heap) Emit(ev trace.Event) { h.tracer.Emit(ev) }

// Tracer returns the heap's configured Tracer.
func (h *Heap) Tracer() trace.Tracer { return h.tracer }

// sizeRaw avoids importing object's Size from heap (no cycle exists,
// but keeping header-adjacent walks self-contained here keeps
// ClearAllMarks/the sweep loop from needing an extra indirection).
func sizeRaw(h *Heap, loc Location) int {
	w := h.rawWord(loc)
	switch headerTag(w) {
	case TagNil:
		return 1
	case TagForward:
		return 1
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
		gcerr.Abort(gcerr.FaultCorruptTag, "corrupt type tag %d at location %d", headerTag(w), loc)
		return 0
	}
}
