package trace

import "testing"

func TestCellTableAllocFreeRoundTrip(t *testing.T) {
	tbl := NewCellTable(8)
	tbl.WasAllocated(3)
	if got := tbl.Snapshot(3); !got.Allocated {
		t.Fatalf("expected cell 3 allocated, got %+v", got)
	}
	tbl.WasFreed(3)
	if got := tbl.Snapshot(3); got.Allocated {
		t.Fatalf("expected cell 3 freed, got %+v", got)
	}
}

func TestCellTableOverheadClearsOnValueWrite(t *testing.T) {
	tbl := NewCellTable(4)
	tbl.WasOverhead(0)
	if got := tbl.Snapshot(0); !got.Overhead {
		t.Fatalf("expected overhead flag set")
	}
	tbl.WasWritten(0)
	if got := tbl.Snapshot(0); got.Overhead {
		t.Fatalf("expected overhead flag cleared after value write")
	}
}

func TestCellTableOnAccessFiresPerTouch(t *testing.T) {
	tbl := NewCellTable(4)
	count := 0
	tbl.OnAccess(func() { count++ })
	tbl.WasAllocated(0)
	tbl.WasWritten(0)
	tbl.WasRead(0)
	if count != 3 {
		t.Fatalf("expected 3 access callbacks, got %d", count)
	}
}

func TestCellTracerAllocMarksEveryWord(t *testing.T) {
	tbl := NewCellTable(8)
	ct := NewCellTracer(tbl)
	ct.Emit(Alloc(2, 3))
	for i := Location(2); i < 5; i++ {
		if got := tbl.Snapshot(i); !got.Allocated {
			t.Fatalf("cell %d not marked allocated", i)
		}
	}
	if got := tbl.Snapshot(5); got.Allocated {
		t.Fatalf("cell 5 should not be allocated")
	}
}

func TestCellTracerCopyTracksReadAndWrite(t *testing.T) {
	tbl := NewCellTable(8)
	ct := NewCellTracer(tbl)
	ct.Emit(Copy(4, 0, 2))
	if got := tbl.Snapshot(0); got.LastRead == 0 {
		t.Fatalf("expected src word 0 to register a read")
	}
	if got := tbl.Snapshot(4); got.LastWrite == 0 {
		t.Fatalf("expected dst word 4 to register a write")
	}
}
