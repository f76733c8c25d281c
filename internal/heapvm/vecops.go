package heapvm

import "gcworkbench/internal/trace"

// VecPush appends value to vec, growing the backing Tup (capacity *= 2,
// starting at 1) when length has caught up to capacity.
//
// Growth follows the mandated sequence: allocate the new backing and
// reacquire it through a handle before doing anything else, so a
// collection that happens to run between the allocation and the Vec's
// own field rewrite is tolerated (the Vec itself stays reachable through
// the caller's handle the whole time). Then share-new, unshare-old,
// overwrite field — the old backing must never be released before the
// new one is installed.
func (m *Machine) VecPush(vec Handle, value Location) {
	vecLoc := vec.Loc()
	length := VecLen(m.Heap, vecLoc)
	capacity := VecCapacity(m.Heap, vecLoc)

	if length == capacity {
		oldBacking := VecBacking(m.Heap, vecLoc)
		newCap := capacity * 2
		if newCap == 0 {
			newCap = 1
		}
		newBackingLoc := m.Heap.Copy(oldBacking, Size(m.Heap, oldBacking), 2+newCap)
		m.Heap.setOverhead(newBackingLoc+1, Word(newCap))

		// Heap.Copy only moved the raw slot words; the new backing's
		// slots now also own these elements, so each carried-over
		// element's refcount must rise by one before the old backing
		// (whose Cleanup will drop each once) is released, or the net
		// effect would under-count live references.
		for i := 0; i < length; i++ {
			m.increment(TupGet(m.Heap, newBackingLoc, i))
		}

		// Reacquire through a handle before touching the Vec's field.
		// Share is itself the "share-new" step (it increments on our
		// behalf); unshare-old follows, then the field is overwritten.
		newBacking := m.Share(newBackingLoc)
		defer newBacking.Close()

		m.decrement(oldBacking) // unshare-old
		vecSetBacking(m.Heap, vecLoc, newBacking.Loc())
		m.Heap.Emit(trace.Set(trace.Location(vecLoc+2), locPrintable(newBacking.Loc())))
	}

	backing := VecBacking(m.Heap, vecLoc)
	n := VecLen(m.Heap, vecLoc)
	m.increment(value)
	TupSetSlot(m.Heap, backing, n, value, locPrintable(value))
	vecSetLen(m.Heap, vecLoc, n+1)
}

// VecContains reports whether value (by Obj.equals) is already an
// element of vec, the way the demo's grouping pass does its "first
// match wins" linear scan.
func (m *Machine) VecContains(vec Handle, matches func(Location) bool) (Location, bool) {
	loc := vec.Loc()
	n := VecLen(m.Heap, loc)
	for i := 0; i < n; i++ {
		el := VecGet(m.Heap, loc, i)
		if matches(el) {
			return el, true
		}
	}
	return 0, false
}
