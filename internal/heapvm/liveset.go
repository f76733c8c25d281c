package heapvm

import (
	"sort"

	"gcworkbench/internal/trace"
)

// LiveSet walks every handle in the root set and its transitive closure
// of outgoing references, per the shared root-walk spec §4.4 opens with.
// Used by all three tracing collectors to discover what to keep.
//
// Mark-sweep and mark-compact also use this walk to highlight each
// visited location as "marked": dkp.cc's mark_live_loc logs ref_count=1
// for every location it visits when not building the copying collector,
// and the renderer reuses the ref_count event for that highlight. The
// copying collector never marks in place (it moves instead), so it
// skips the highlight, matching dkp.cc's #if !COPY_GC guard.
func LiveSet(m *Machine) map[Location]bool {
	live := make(map[Location]bool, m.roots.Len()*2)
	highlight := m.Mode != ModeCopy
	var visit func(Location)
	visit = func(loc Location) {
		if loc == 0 || live[loc] {
			return
		}
		live[loc] = true
		if highlight {
			m.Heap.tracer.Emit(trace.RefCount(trace.Location(loc), 1))
		}
		Traverse(m.Heap, loc, visit)
	}
	m.roots.Each(func(loc Location) {
		if loc != 0 {
			visit(loc)
		}
	})
	return live
}

// sortedLive returns live's keys in ascending order, the deterministic
// order the copying collector's move pass (step 3) and mark-compact's
// slide (step 2) both require.
func sortedLive(live map[Location]bool) []Location {
	out := make([]Location, 0, len(live))
	for loc := range live {
		out = append(out, loc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
