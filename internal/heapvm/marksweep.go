package heapvm

// collectMarkSweep implements spec §4.4.2: build the live set, then walk
// the single-region heap linearly from 1 to Top, writing a Free header
// over every cell not in the live set (cells already Free from an
// earlier sweep are left as they are). Top is never reset, so the
// reclaimed space is visible in the trace as alternating free and live
// bands — fragmentation is a pedagogical feature, not a bug.
func (m *Machine) collectMarkSweep() {
	live := m.snapshotRootsAndLive()

	for loc := Location(1); loc < m.Heap.Top; {
		size := Size(m.Heap, loc)
		if !live[loc] && m.Heap.Tag(loc) != TagFree {
			m.Heap.Free(loc, size)
		}
		loc += Location(size)
	}

	// No location ever moves in mark-sweep, so forwarding is always the
	// identity and no fixup pass is needed.
}
