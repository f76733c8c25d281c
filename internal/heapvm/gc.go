package heapvm

import "gcworkbench/internal/trace"

// Breakpoint emits a client breakpoint event, matching dkp.cc's
// Mem::log_roots call sites.
func (m *Machine) Breakpoint(message string) {
	m.Heap.Emit(trace.Bp(message))
}

// RequestGC runs a full collection using whichever algorithm Mode
// selects. Reference counting has no tracing pass: a request is a no-op
// since reclamation already happened eagerly on every decrement.
func (m *Machine) RequestGC() {
	switch m.Mode {
	case ModeRefCount:
		return
	case ModeMarkSweep:
		m.collectMarkSweep()
	case ModeCopy:
		m.collectCopy()
	case ModeMarkCompact:
		m.collectMarkCompact()
	}
}

// snapshotRootsAndLive logs the `roots` and `live` trace events every
// tracing collector emits at the start of a collection, and returns the
// computed live set for the caller to act on.
func (m *Machine) snapshotRootsAndLive() map[Location]bool {
	roots := m.Roots()
	troots := make([]trace.Location, len(roots))
	for i, r := range roots {
		troots[i] = trace.Location(r)
	}
	m.Heap.Emit(trace.Roots(troots))

	live := LiveSet(m)
	ordered := sortedLive(live)
	tlive := make([]trace.Location, len(ordered))
	for i, l := range ordered {
		tlive[i] = trace.Location(l)
	}
	m.Heap.Emit(trace.Live(tlive))
	return live
}

// resolveForwarding follows a heap-resident Forward header to its final
// destination, the way the copying collector's fixup pass (step 4) does:
// a moved cell always forwards exactly once, so no loop is needed beyond
// a single hop in this design (see compact.go for the side-table
// equivalent used when no Forward header is written in place).
func (m *Machine) resolveForwarding(loc Location) Location {
	if loc == 0 {
		return 0
	}
	if m.Heap.Tag(loc) == TagForward {
		return m.Heap.ForwardDest(loc)
	}
	return loc
}

// fixupAll rewrites every handle and every live heap reference slot by
// resolve, completing invariant 5 (no stored location survives a
// collection pointing at a Forward cell).
func (m *Machine) fixupAll(liveLocs []Location, resolve func(Location) Location) {
	for n := m.roots.head; n != nil; n = n.next {
		if n.loc != 0 {
			n.loc = resolve(n.loc)
		}
	}
	for _, loc := range liveLocs {
		FixupReferences(m.Heap, loc, resolve)
	}
}
