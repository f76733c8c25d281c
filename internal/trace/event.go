package trace

// Location mirrors heap.Location without importing the heap package,
// which would create an import cycle (heap emits events).
type Location uint32

// Kind identifies the shape of an Event's payload. The set is fixed by
// the wire-level event table: alloc, free, init, set, ref_count, copy,
// bp, roots, live, plus the stop marker that closes the stream.
type Kind uint8

const (
	KindAlloc    Kind = iota // loc, size
	KindFree                 // loc, size
	KindInit                 // loc, type name
	KindSet                  // loc, printable value
	KindRefCount             // loc, count
	KindCopy                 // dst, src, size
	KindBp                   // message
	KindRoots                // loc list
	KindLive                 // loc list
	KindStop                 // (no payload) closes the stream
)

// String names the event kind the way the renderer's wire format does.
func (k Kind) String() string {
	switch k {
	case KindAlloc:
		return "alloc"
	case KindFree:
		return "free"
	case KindInit:
		return "init"
	case KindSet:
		return "set"
	case KindRefCount:
		return "ref_count"
	case KindCopy:
		return "copy"
	case KindBp:
		return "bp"
	case KindRoots:
		return "roots"
	case KindLive:
		return "live"
	case KindStop:
		return "stop"
	default:
		return "unknown"
	}
}

// Event is a single instrumentation record. Only the fields relevant to
// Kind are populated; the rest are zero. Seq is filled in by the Tracer
// that emits the event, not by the caller, so that the ordering is the
// single authority for "happened before".
type Event struct {
	Seq   uint64
	Kind  Kind
	Loc   Location   // alloc/free/init/set/ref_count: the cell
	Loc2  Location   // copy: src (Loc is dst)
	Size  int        // alloc/free/copy: word count
	Count int        // ref_count: the new count
	Text  string     // init: type name; set: printable value; bp: message
	Locs  []Location // roots/live: the snapshot
}

// Alloc builds an alloc event.
func Alloc(loc Location, size int) Event { return Event{Kind: KindAlloc, Loc: loc, Size: size} }

// Free builds a free event.
func Free(loc Location, size int) Event { return Event{Kind: KindFree, Loc: loc, Size: size} }

// Init builds an object-initialization event.
func Init(loc Location, typeName string) Event { return Event{Kind: KindInit, Loc: loc, Text: typeName} }

// Set builds a field/slot write event. value is already formatted for display.
func Set(loc Location, value string) Event { return Event{Kind: KindSet, Loc: loc, Text: value} }

// RefCount builds a refcount-change event. Tracing collectors reuse this
// kind to highlight "marked" cells, matching the original instrumentation.
func RefCount(loc Location, count int) Event { return Event{Kind: KindRefCount, Loc: loc, Count: count} }

// Copy builds a copy/move event.
func Copy(dst, src Location, size int) Event {
	return Event{Kind: KindCopy, Loc: dst, Loc2: src, Size: size}
}

// Bp builds a client breakpoint event.
func Bp(message string) Event { return Event{Kind: KindBp, Text: message} }

// Roots builds a root-set snapshot event.
func Roots(locs []Location) Event { return Event{Kind: KindRoots, Locs: locs} }

// Live builds a live-set snapshot event.
func Live(locs []Location) Event { return Event{Kind: KindLive, Locs: locs} }

// Stop builds the terminal marker event.
func Stop() Event { return Event{Kind: KindStop} }
