package heapvm

// collectMarkCompact implements spec §4.4.4: clear the forwarding table,
// mark the live set, then walk the single region from 1 to the current
// Top. Top itself is the slide cursor: the first dead cell encountered
// rewinds Top to its own location, and every live cell seen afterwards
// is relocated to (and bumps) that cursor. Forwarding for a slid cell is
// recorded in a side table rather than written over the source, since a
// later move in the same pass may overwrite that source cell first.
//
// This preserves allocation order (a stable slide) and needs no second
// region: cells before the first dead one never move at all.
func (m *Machine) collectMarkCompact() {
	for k := range m.fwd {
		delete(m.fwd, k)
	}
	live := m.snapshotRootsAndLive()

	oldTop := m.Heap.Top
	sliding := false
	var newLive []Location

	for loc := Location(1); loc < oldTop; {
		size := Size(m.Heap, loc)
		if live[loc] {
			if sliding {
				newLoc := m.Heap.MoveNoForward(loc, size)
				m.fwd[loc] = newLoc
				newLive = append(newLive, newLoc)
			} else {
				newLive = append(newLive, loc)
			}
		} else if !sliding {
			m.Heap.RewindTop(loc)
			sliding = true
		}
		loc += Location(size)
	}

	if !sliding {
		return // nothing dead: Top never moved, no fixup needed
	}

	resolve := func(loc Location) Location {
		if loc == 0 {
			return 0
		}
		if d, ok := m.fwd[loc]; ok {
			return d
		}
		return loc
	}
	m.fixupAll(newLive, resolve)

	tailSize := int(oldTop - m.Heap.Top)
	m.Heap.Emit(freeEvent(m.Heap.Top, tailSize))
}
