package heapvm

import "testing"

func newRefcountMachine(t *testing.T, heapSize int) *Machine {
	t.Helper()
	return NewMachine(ModeRefCount, heapSize, nil, nil)
}

func TestHandleDestructionFreesAtZero(t *testing.T) {
	m := newRefcountMachine(t, 64)
	h := m.AllocNum(10)
	loc := h.Loc()
	if got := m.Heap.RefCount(loc); got != 1 {
		t.Fatalf("refcount after alloc = %d, want 1", got)
	}
	h.Close()
	if m.Heap.Tag(loc) != TagFree {
		t.Fatalf("expected cell to be freed in place after last handle closes")
	}
}

func TestShareIncrementsAndClosesIndependently(t *testing.T) {
	m := newRefcountMachine(t, 64)
	a := m.AllocNum(5)
	loc := a.Loc()
	b := m.Share(loc)
	if got := m.Heap.RefCount(loc); got != 2 {
		t.Fatalf("refcount after Share = %d, want 2", got)
	}
	a.Close()
	if m.Heap.Tag(loc) == TagFree {
		t.Fatal("cell freed too early: one handle still references it")
	}
	b.Close()
	if m.Heap.Tag(loc) != TagFree {
		t.Fatal("cell should be freed once last handle closes")
	}
}

func TestSelfAssignmentLeavesRefcountUnchanged(t *testing.T) {
	m := newRefcountMachine(t, 64)
	val := m.AllocNum(7)
	tupH := m.AllocTup(1)
	tup := tupH.Loc()
	m.AssignTupSlot(tup, 0, val.Loc())

	before := m.Heap.RefCount(val.Loc())
	m.AssignTupSlot(tup, 0, TupGet(m.Heap, tup, 0)) // slot := slot
	after := m.Heap.RefCount(val.Loc())

	if before != after {
		t.Fatalf("self-assignment changed refcount: before=%d after=%d", before, after)
	}
	if after == 0 {
		t.Fatal("self-assignment must never let the refcount visit zero")
	}
}

func TestAssignTupSlotReleasesOldValue(t *testing.T) {
	m := newRefcountMachine(t, 64)
	a := m.AllocNum(1)
	b := m.AllocNum(2)
	tupH := m.AllocTup(1)
	tup := tupH.Loc()

	m.AssignTupSlot(tup, 0, a.Loc())
	aLoc := a.Loc()
	a.Close() // tup still holds a reference
	if m.Heap.Tag(aLoc) == TagFree {
		t.Fatal("a should still be alive: referenced from the tup slot")
	}

	m.AssignTupSlot(tup, 0, b.Loc())
	if m.Heap.Tag(aLoc) != TagFree {
		t.Fatal("a should be freed once the tup slot is reassigned away from it")
	}
}

func TestRefcountEqualsHoldersAfterOps(t *testing.T) {
	m := newRefcountMachine(t, 64)
	val := m.AllocNum(9)
	tup1 := m.AllocTup(1)
	tup2 := m.AllocTup(1)
	m.AssignTupSlot(tup1.Loc(), 0, val.Loc())
	m.AssignTupSlot(tup2.Loc(), 0, val.Loc())

	// val is held by: its own handle, tup1's slot, tup2's slot => 3
	if got := m.Heap.RefCount(val.Loc()); got != 3 {
		t.Fatalf("refcount = %d, want 3 (handle + 2 heap slots)", got)
	}
}

func TestVecPushGrowsCapacityAndReleasesOldBacking(t *testing.T) {
	m := newRefcountMachine(t, 256)
	vec := m.AllocVec(1)
	oldBacking := VecBacking(m.Heap, vec.Loc())

	v1 := m.AllocNum(1)
	m.VecPush(vec, v1.Loc())
	if VecCapacity(m.Heap, vec.Loc()) != 1 {
		t.Fatalf("capacity after first push = %d, want 1", VecCapacity(m.Heap, vec.Loc()))
	}

	v2 := m.AllocNum(2)
	m.VecPush(vec, v2.Loc()) // length==capacity(1): must grow to 2
	if VecCapacity(m.Heap, vec.Loc()) != 2 {
		t.Fatalf("capacity after growth = %d, want 2", VecCapacity(m.Heap, vec.Loc()))
	}
	if VecLen(m.Heap, vec.Loc()) != 2 {
		t.Fatalf("length after two pushes = %d, want 2", VecLen(m.Heap, vec.Loc()))
	}
	if m.Heap.Tag(oldBacking) != TagFree {
		t.Fatal("old backing Tup should be released after growth")
	}
	if NumValue(m.Heap, VecGet(m.Heap, vec.Loc(), 0)) != 1 {
		t.Fatal("carried-over element lost its value across growth")
	}
	// the carried-over element must still be correctly refcounted: held
	// by its own handle v1 plus the new backing's slot.
	if got := m.Heap.RefCount(v1.Loc()); got != 2 {
		t.Fatalf("v1 refcount after growth = %d, want 2", got)
	}
}
