package trace

import (
	"fmt"
	"io"
	"sync"
)

// RingTracer is an in-memory recorder of the full event log. Unlike a
// compiler's bounded ring buffer, a GC trace is small enough (a few
// thousand events for a HeapSize=2000 run) that the workbench keeps
// everything — this is what backs snapshot/replay.
type RingTracer struct {
	mu     sync.Mutex
	events []Event
	level  Level
}

// NewRingTracer creates an empty RingTracer.
func NewRingTracer(level Level) *RingTracer {
	return &RingTracer{events: make([]Event, 0, 1024), level: level}
}

func (t *RingTracer) Emit(ev Event) {
	if !t.level.shouldEmit(ev.Kind) {
		return
	}
	ev.Seq = nextSeq()
	t.mu.Lock()
	t.events = append(t.events, ev)
	t.mu.Unlock()
}

// Snapshot returns a copy of all recorded events in order.
func (t *RingTracer) Snapshot() []Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Event, len(t.events))
	copy(out, t.events)
	return out
}

// Dump writes the recorded events to w in the given format, for replay
// tooling that wants the textual form of a cached run.
func (t *RingTracer) Dump(w io.Writer, format Format) error {
	events := t.Snapshot()
	fmt.Fprint(w, "var frame_content = [\n")
	for _, ev := range events {
		if ev.Kind == KindStop {
			continue
		}
		if _, err := fmt.Fprintf(w, "%s,\n", FormatEvent(ev, format)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprint(w, "['stop']];\n")
	return err
}

func (t *RingTracer) Flush() error { return nil }
func (t *RingTracer) Close() error { return nil }
func (t *RingTracer) Level() Level { return t.level }
func (t *RingTracer) Enabled() bool { return t.level > LevelOff }
