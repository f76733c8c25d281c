package heapvm

import (
	"gcworkbench/internal/gcerr"
	"gcworkbench/internal/trace"
)

// Machine bundles the process-wide singleton state the spec describes
// (heap, root list, forwarding table) into one value, per spec §9's
// "encapsulate them in a single workbench instance" option — friendlier
// to tests than package-level globals, at no cost to trace semantics
// since a run only ever constructs one Machine.
type Machine struct {
	Mode Mode
	Heap *Heap

	roots RootSet
	fwd   map[Location]Location // side table, mark-compact only
}

// NewMachine builds a Machine for mode with a freshly allocated heap
// sized per spec constants (single region for refcount/mark-sweep/
// mark-compact, two semi-spaces for copy).
func NewMachine(mode Mode, heapSize int, tracer trace.Tracer, cells *trace.CellTable) *Machine {
	var h *Heap
	if mode == ModeCopy {
		h = NewSemiSpace(heapSize/2, tracer, cells)
	} else {
		h = New(heapSize, tracer, cells)
	}
	return &Machine{Mode: mode, Heap: h, fwd: make(map[Location]Location)}
}

// Handle is an externally-held reference to a heap object, registered
// in the Machine's root set. Handles never move; the location they hold
// may be rewritten by a collection between any two observations.
type Handle struct {
	m    *Machine
	node *rootNode
}

// Loc returns the handle's current location, through the read barrier.
func (h Handle) Loc() Location {
	if h.node == nil {
		return 0
	}
	return h.m.Heap.ReadBarrier(h.node.loc)
}

// Valid reports whether h is bound to a live root-set entry.
func (h Handle) Valid() bool { return h.node != nil }

// Close removes h from the root set and, under reference counting,
// decrements the refcount of the object it held (freeing it in place if
// the count reaches zero). Under tracing modes the object simply stops
// being reachable from this handle; the next collection will notice.
// A handle that is never closed keeps its object in the root set.
func (h *Handle) Close() {
	if h.node == nil {
		return
	}
	loc := h.node.loc
	h.m.roots.remove(h.node)
	h.node = nil
	if h.m.Mode == ModeRefCount {
		h.m.decrement(loc)
	}
}

func (m *Machine) registerRoot(loc Location) Handle {
	return Handle{m: m, node: m.roots.insert(loc)}
}

func (m *Machine) initialRefcount() uint8 {
	if m.Mode == ModeRefCount {
		return 1
	}
	return 0
}

// AllocNum constructs a new Num object and a handle owning it.
func (m *Machine) AllocNum(v Word) Handle {
	loc := InitNum(m.Heap, v, m.initialRefcount())
	return m.registerRoot(loc)
}

// AllocTup constructs a new zero-filled Tup of n slots and a handle
// owning it.
func (m *Machine) AllocTup(n int) Handle {
	loc := InitTup(m.Heap, n, m.initialRefcount())
	return m.registerRoot(loc)
}

// AllocVec constructs a new empty Vec with the given initial backing
// capacity and a handle owning it. InitVec gives the backing Tup a
// refcount of 1 unconditionally: it is always owned by exactly the
// Vec's own backing slot, regardless of collector mode.
func (m *Machine) AllocVec(capacity int) Handle {
	loc := InitVec(m.Heap, capacity, m.initialRefcount())
	return m.registerRoot(loc)
}

// AllocStr constructs a new Str object from data and a handle owning it.
func (m *Machine) AllocStr(data []byte) Handle {
	loc := InitStr(m.Heap, data, m.initialRefcount())
	return m.registerRoot(loc)
}

// Share registers a new handle aliasing an already-live location,
// incrementing its refcount under reference counting.
func (m *Machine) Share(loc Location) Handle {
	if loc != 0 {
		if int(loc) >= len(m.Heap.words) {
			gcerr.Abort(gcerr.FaultInvalidHandle, "Share: location %d outside heap of size %d", loc, len(m.Heap.words))
		}
		m.increment(loc)
	}
	return m.registerRoot(loc)
}

// Roots returns the locations of every currently registered handle, for
// the `roots` trace event and for the tracing collectors' walk.
func (m *Machine) Roots() []Location { return m.roots.Snapshot() }

// RootCount reports the number of live handles.
func (m *Machine) RootCount() int { return m.roots.Len() }
