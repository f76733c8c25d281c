package render

import (
	"image"

	"gcworkbench/internal/trace"
)

// FramesFromEvents replays a recorded event stream through a fresh
// CellTable and captures one frame after every event except the stop
// marker (which produces no frame), matching the
// original instrumentation's behaviour: its log_msg macro called
// Mem::snap() after essentially every alloc/free/set/copy/ref_count
// log line, which is what produced a smooth per-access animation.
func FramesFromEvents(events []trace.Event, heapSize int) ([]*image.RGBA, error) {
	cells := trace.NewCellTable(heapSize)
	tracer := trace.NewCellTracer(cells)

	var frames []*image.RGBA
	for _, ev := range events {
		if ev.Kind == trace.KindStop {
			continue
		}
		tracer.Emit(ev)
		frame, err := Frame(cells, heapSize, cells.Now())
		if err != nil {
			return nil, err
		}
		frames = append(frames, frame)
	}
	return frames, nil
}
