package heapvm

import "strconv"

// increment bumps loc's reference count. A no-op for loc==0 (no
// reference) and outside reference-counting mode.
func (m *Machine) increment(loc Location) {
	if loc == 0 || m.Mode != ModeRefCount {
		return
	}
	m.Heap.SetRefCount(loc, m.Heap.RefCount(loc)+1)
}

// decrement drops loc's reference count by one. When it reaches zero the
// object's outgoing references are released (Cleanup, which may cascade)
// and the cell is freed in place. Cycles are not reclaimed: an accepted
// limitation of reference counting.
func (m *Machine) decrement(loc Location) {
	if loc == 0 || m.Mode != ModeRefCount {
		return
	}
	rc := m.Heap.RefCount(loc)
	if rc == 0 {
		return // already released via an earlier cascade through this slot
	}
	rc--
	m.Heap.SetRefCount(loc, rc)
	if rc > 0 {
		return
	}
	size := Size(m.Heap, loc)
	Cleanup(m.Heap, loc, m.decrement)
	m.Heap.Free(loc, size)
}

// AssignTupSlot overwrites slot i of the Tup at tupLoc with newLoc,
// using the mandatory store-new-ref ordering: increment the incoming
// location first, then decrement the outgoing one, then overwrite the
// slot. This ordering is what makes self-assignment (`slot := slot`)
// safe — the refcount never visits zero even though the slot briefly
// holds the same value twice.
func (m *Machine) AssignTupSlot(tupLoc Location, i int, newLoc Location) {
	old := TupGet(m.Heap, tupLoc, i)
	m.increment(newLoc)
	m.decrement(old)
	TupSetSlot(m.Heap, tupLoc, i, newLoc, locPrintable(newLoc))
}

func locPrintable(loc Location) string {
	return strconv.FormatUint(uint64(loc), 10)
}
