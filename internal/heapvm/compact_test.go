package heapvm

import "testing"

// TestMarkCompactPreservesOrder reproduces spec §8 scenario 6: allocate
// A, B, C in order, drop B, compact. C slides down to exactly where B
// used to start, Top follows, and the forwarding table records the move.
func TestMarkCompactPreservesOrder(t *testing.T) {
	m := NewMachine(ModeMarkCompact, 64, nil, nil)
	a := m.AllocNum(1)
	b := m.AllocNum(2)
	c := m.AllocNum(3)

	pA, pB, pC := a.Loc(), b.Loc(), c.Loc()
	sizeA := Size(m.Heap, pA)
	sizeC := Size(m.Heap, pC)
	b.Close()

	m.RequestGC()

	newC := c.Loc()
	if newC != pA+Location(sizeA) {
		t.Fatalf("C should slide to pA+size(A)=%d, got %d", pA+Location(sizeA), newC)
	}
	if newC != pB {
		t.Fatalf("C should slide exactly into B's old slot %d, got %d", pB, newC)
	}
	if m.Heap.Top != newC+Location(sizeC) {
		t.Fatalf("top = %d, want newC+size(C) = %d", m.Heap.Top, newC+Location(sizeC))
	}
	if m.fwd[pC] != newC {
		t.Fatalf("forwarding table missing pC -> newC entry, got %v", m.fwd)
	}
	if a.Loc() != pA {
		t.Fatalf("A should never move: got %d, want %d", a.Loc(), pA)
	}
	if NumValue(m.Heap, a.Loc()) != 1 || NumValue(m.Heap, c.Loc()) != 3 {
		t.Fatal("values should survive mark-compact unchanged")
	}
}

func TestMarkCompactNoOpWhenNothingDead(t *testing.T) {
	m := NewMachine(ModeMarkCompact, 64, nil, nil)
	a := m.AllocNum(1)
	top := m.Heap.Top
	m.RequestGC()
	if m.Heap.Top != top {
		t.Fatalf("top moved with nothing dead: %d -> %d", top, m.Heap.Top)
	}
	if a.Loc() == 0 {
		t.Fatal("handle should still resolve")
	}
}
