package trace

import "sync"

// CellInfo is the renderer-facing metadata for one heap word: whether it
// currently holds live data, whether its last write was bookkeeping
// (header/forwarding/refcount) rather than a user value, and when it was
// last read or written.
type CellInfo struct {
	Allocated bool
	Overhead  bool
	LastRead  uint64
	LastWrite uint64
}

// CellTable tracks CellInfo for every word in the heap. Time advances by
// one on every access (read, write or overhead write), giving the single
// total order spec's ordering rule requires.
type CellTable struct {
	mu    sync.Mutex
	cells []CellInfo
	now   uint64
	onHit func()
}

// NewCellTable allocates a table sized for a heap of size words.
func NewCellTable(size int) *CellTable {
	return &CellTable{cells: make([]CellInfo, size)}
}

// OnAccess registers fn to be called after every cell access, so a frame
// recorder can snapshot a new image per access, the same as the original
// instrumentation's unconditional snap() after every log_* call.
func (t *CellTable) OnAccess(fn func()) { t.onHit = fn }

func (t *CellTable) touch(loc Location) *CellInfo {
	t.now++
	return &t.cells[loc]
}

// WasAllocated marks loc as freshly allocated: live, no history.
func (t *CellTable) WasAllocated(loc Location) {
	t.mu.Lock()
	c := t.touch(loc)
	*c = CellInfo{Allocated: true}
	t.mu.Unlock()
	t.fire()
}

// WasFreed marks loc as no longer live.
func (t *CellTable) WasFreed(loc Location) {
	t.mu.Lock()
	c := t.touch(loc)
	c.Allocated = false
	t.mu.Unlock()
	t.fire()
}

// WasRead records a read of loc.
func (t *CellTable) WasRead(loc Location) {
	t.mu.Lock()
	c := t.touch(loc)
	c.LastRead = t.now
	t.mu.Unlock()
	t.fire()
}

// WasWritten records a user-value write to loc.
func (t *CellTable) WasWritten(loc Location) {
	t.mu.Lock()
	c := t.touch(loc)
	c.LastWrite = t.now
	c.Overhead = false
	t.mu.Unlock()
	t.fire()
}

// WasOverhead records a bookkeeping write (header, forwarding, refcount)
// to loc, so the renderer can colour it distinctly from a value write.
func (t *CellTable) WasOverhead(loc Location) {
	t.mu.Lock()
	c := t.touch(loc)
	c.LastWrite = t.now
	c.Overhead = true
	t.mu.Unlock()
	t.fire()
}

func (t *CellTable) fire() {
	if t.onHit != nil {
		t.onHit()
	}
}

// Snapshot returns a copy of one cell's metadata.
func (t *CellTable) Snapshot(loc Location) CellInfo {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cells[loc]
}

// Len returns the number of tracked cells.
func (t *CellTable) Len() int { return len(t.cells) }

// Now returns the table's current logical clock value, advanced by one
// on every cell touch. A frame renderer reads this right after feeding
// an event through so its age calculations use the same clock the
// cells themselves were stamped with.
func (t *CellTable) Now() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.now
}

// CellTracer adapts a CellTable into a Tracer, so a workbench can attach
// it alongside a StreamTracer via MultiTracer and get both the textual
// event log and the renderer's recency metadata from one Emit call.
type CellTracer struct {
	cells *CellTable
}

// NewCellTracer wraps cells as a Tracer.
func NewCellTracer(cells *CellTable) *CellTracer { return &CellTracer{cells: cells} }

func (c *CellTracer) Emit(ev Event) {
	switch ev.Kind {
	case KindAlloc:
		for i := 0; i < ev.Size; i++ {
			c.cells.WasAllocated(ev.Loc + Location(i))
		}
	case KindFree:
		for i := 0; i < ev.Size; i++ {
			c.cells.WasFreed(ev.Loc + Location(i))
		}
	case KindSet:
		c.cells.WasWritten(ev.Loc)
	case KindRefCount:
		c.cells.WasOverhead(ev.Loc)
	case KindCopy:
		for i := 0; i < ev.Size; i++ {
			c.cells.WasRead(ev.Loc2 + Location(i))
			c.cells.WasWritten(ev.Loc + Location(i))
		}
	default: // init, bp, roots, live, stop carry no cell metadata
	}
}

func (c *CellTracer) Flush() error   { return nil }
func (c *CellTracer) Close() error   { return nil }
func (c *CellTracer) Level() Level   { return LevelFull }
func (c *CellTracer) Enabled() bool  { return true }
