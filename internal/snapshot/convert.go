package snapshot

import "gcworkbench/internal/trace"

// FromEvents converts a RingTracer's recorded events into the
// msgpack-friendly shape stored on disk.
func FromEvents(events []trace.Event) []Event {
	out := make([]Event, len(events))
	for i, ev := range events {
		locs := make([]uint32, len(ev.Locs))
		for j, l := range ev.Locs {
			locs[j] = uint32(l)
		}
		out[i] = Event{
			Seq:   ev.Seq,
			Kind:  uint8(ev.Kind),
			Loc:   uint32(ev.Loc),
			Loc2:  uint32(ev.Loc2),
			Size:  ev.Size,
			Count: ev.Count,
			Text:  ev.Text,
			Locs:  locs,
		}
	}
	return out
}

// ToEvents converts cached events back to trace.Event, for replay.
func ToEvents(events []Event) []trace.Event {
	out := make([]trace.Event, len(events))
	for i, ev := range events {
		locs := make([]trace.Location, len(ev.Locs))
		for j, l := range ev.Locs {
			locs[j] = trace.Location(l)
		}
		out[i] = trace.Event{
			Seq:   ev.Seq,
			Kind:  trace.Kind(ev.Kind),
			Loc:   trace.Location(ev.Loc),
			Loc2:  trace.Location(ev.Loc2),
			Size:  ev.Size,
			Count: ev.Count,
			Text:  ev.Text,
			Locs:  locs,
		}
	}
	return out
}
