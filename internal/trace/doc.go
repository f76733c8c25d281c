// Package trace provides the instrumentation log for the GC workbench.
//
// Every heap mutation the workbench cares about — a reservation, a free,
// an object init, a field write, a refcount change, a copy, a client
// breakpoint, or a root/live-set snapshot — is turned into an Event and
// handed to a Tracer. Tracers are composable: a StreamTracer writes the
// bracketed event-tuple format external renderers expect, a RingTracer
// keeps the full event log in memory for caching/replay, and a CellTable
// tracer turns the same events into per-cell recency metadata a bitmap
// renderer can colorize.
//
// The workbench is single-threaded by design (see the core's Non-goals),
// so unlike a compiler's tracer there is no span nesting or goroutine
// tagging here — only a flat, totally ordered sequence number.
package trace
