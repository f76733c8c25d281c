package heapvm

import "testing"

// TestCopyCollectionFlipsRegion reproduces spec §8 scenario 5: after a
// collection, every live object's location moved to whichever semi-space
// was not active before the flip, with its value intact. The single free
// event for the old region is checked by TestGoldenTraceStream.
func TestCopyCollectionFlipsRegion(t *testing.T) {
	m := NewMachine(ModeCopy, 2*HeapSemiSize, nil, nil)
	a := m.AllocNum(1)
	b := m.AllocNum(2)

	wasLow := m.Heap.RegionStart() == 1
	m.RequestGC()
	nowLow := m.Heap.RegionStart() == 1

	if wasLow == nowLow {
		t.Fatal("collection should flip the active semi-space")
	}
	for _, loc := range []Location{a.Loc(), b.Loc()} {
		if !m.Heap.InActiveRegion(loc) {
			t.Fatalf("location %d not in newly active region [%d,%d)", loc, m.Heap.RegionStart(), m.Heap.RegionEnd())
		}
		if m.Heap.Tag(loc) != TagNum {
			t.Fatalf("location %d: tag = %v, want Num after move", loc, m.Heap.Tag(loc))
		}
	}
	if NumValue(m.Heap, a.Loc()) != 1 || NumValue(m.Heap, b.Loc()) != 2 {
		t.Fatal("values should survive a copying collection unchanged")
	}
}

func TestCopyCollectionResolvesForwardingEverywhere(t *testing.T) {
	m := NewMachine(ModeCopy, 2*HeapSemiSize, nil, nil)
	a := m.AllocNum(5)
	tup := m.AllocTup(1)
	m.AssignTupSlot(tup.Loc(), 0, a.Loc())

	m.RequestGC()

	slot := TupGet(m.Heap, tup.Loc(), 0)
	if m.Heap.Tag(slot) == TagForward {
		t.Fatal("heap reference slot still points at a Forward cell after fixup")
	}
	if slot != a.Loc() {
		t.Fatalf("tup slot = %d, handle a.Loc() = %d: fixup should agree with the handle", slot, a.Loc())
	}
}

func TestCopyDropsUnreachableObjects(t *testing.T) {
	m := NewMachine(ModeCopy, 2*HeapSemiSize, nil, nil)
	keep := m.AllocNum(1)
	drop := m.AllocNum(2)
	dropLoc := drop.Loc()
	drop.Close()

	m.RequestGC()

	if !m.Heap.InActiveRegion(keep.Loc()) {
		t.Fatal("kept object should survive in the new region")
	}
	// Only the kept object was copied: the new region ends right after
	// it, so the dropped object's cell stayed behind in the abandoned
	// region.
	if m.Heap.Top != keep.Loc()+Location(Size(m.Heap, keep.Loc())) {
		t.Fatalf("top = %d, want just past kept object at %d; dropped object (old loc %d) was copied", m.Heap.Top, keep.Loc(), dropLoc)
	}
}
