package heapvm

import "testing"

// TestMarkSweepFragmentation reproduces spec §8 scenario 4: a Vec of
// five Num handles, two non-adjacent ones dropped, then a collection.
// The heap walk afterwards should show three live cells and two Free
// cells at the original positions of the dropped Nums.
func TestMarkSweepFragmentation(t *testing.T) {
	m := NewMachine(ModeMarkSweep, 64, nil, nil)
	vec := m.AllocVec(8)

	var nums [5]Handle
	var locs [5]Location
	for i := range nums {
		nums[i] = m.AllocNum(Word(i))
		locs[i] = nums[i].Loc()
		m.VecPush(vec, locs[i])
	}

	// Drop the handles for index 1 and 3 (non-adjacent); the Vec still
	// references index 0,2,4 so only 1 and 3 become unreachable once
	// we also remove them from the Vec's backing slots.
	dropped := map[int]bool{1: true, 3: true}
	backing := VecBacking(m.Heap, vec.Loc())
	for i := range nums {
		if dropped[i] {
			TupSetSlot(m.Heap, backing, i, 0, "")
			nums[i].Close()
		}
	}

	m.RequestGC()

	for i := range nums {
		tag := m.Heap.Tag(locs[i])
		if dropped[i] {
			if tag != TagFree {
				t.Fatalf("index %d at loc %d: tag = %v, want Free", i, locs[i], tag)
			}
		} else {
			if tag != TagNum {
				t.Fatalf("index %d at loc %d: tag = %v, want Num", i, locs[i], tag)
			}
		}
	}
}

// TestMarkSweepIdempotent checks spec §8's round-trip property: two
// consecutive collections with no intervening mutation behave as one.
func TestMarkSweepIdempotent(t *testing.T) {
	m := NewMachine(ModeMarkSweep, 64, nil, nil)
	a := m.AllocNum(1)
	dead := m.AllocNum(2)
	dead.Close() // immediately unreachable
	m.RequestGC()
	topAfterFirst := m.Heap.Top
	m.RequestGC()
	if m.Heap.Top != topAfterFirst {
		t.Fatalf("second collection changed top: %d -> %d", topAfterFirst, m.Heap.Top)
	}
	if m.Heap.Tag(a.Loc()) != TagNum {
		t.Fatal("live object should survive repeated collection")
	}
}

func TestReserveExactlyAtHeapSizeSucceeds(t *testing.T) {
	h := New(8, nil, nil)
	h.Reserve(7) // location 0 already used by Nil; 7 more reaches size 8
	defer func() {
		if recover() == nil {
			t.Fatal("expected reserving one more word past HeapSize to fault")
		}
	}()
	h.Reserve(1)
}
