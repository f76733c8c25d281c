package trace

// nopTracer discards every event. Used when tracing is off so call sites
// never need a nil check.
type nopTracer struct{}

func (nopTracer) Emit(Event)     {}
func (nopTracer) Flush() error   { return nil }
func (nopTracer) Close() error   { return nil }
func (nopTracer) Level() Level   { return LevelOff }
func (nopTracer) Enabled() bool  { return false }

// Nop is the package-level singleton no-op tracer.
var Nop Tracer = nopTracer{}
