package heapvm

import "gcworkbench/internal/trace"

// freeEvent logs a region as reclaimed without touching its words: the
// copying collector's old semi-space isn't individually freed cell by
// cell, it is abandoned wholesale until the next flip reuses it.
func freeEvent(start Location, size int) trace.Event {
	return trace.Free(trace.Location(start), size)
}

// collectCopy implements spec §4.4.3: mark the live set (only to
// enumerate roots), flip to the other semi-space, move every live
// object there in ascending location order (leaving a Forward record
// behind at each source), then fix up every handle and every live
// reference slot in the new region by resolving one hop of forwarding.
// The old region is logged as a single freed block of HeapSemiSize.
func (m *Machine) collectCopy() {
	live := m.snapshotRootsAndLive()
	ordered := sortedLive(live)

	oldRegionStart := m.Heap.RegionStart()
	oldSemiSize := m.Heap.SemiSize()

	m.Heap.Flip()

	newLocs := make([]Location, len(ordered))
	for i, old := range ordered {
		size := Size(m.Heap, old)
		newLocs[i] = m.Heap.Move(old, size)
	}

	resolve := m.resolveForwarding
	m.fixupAll(newLocs, resolve)

	m.Heap.Emit(freeEvent(oldRegionStart, oldSemiSize))
}
