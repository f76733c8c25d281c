package render

import (
	"image"

	"fortio.org/safecast"

	"gcworkbench/internal/trace"
)

// WordSize is the pixel width and height of one heap word's square in a
// rendered frame.
const WordSize = 5

// WidthInWords is the number of heap words drawn per row before
// wrapping, matching the original instrumentation's fixed layout.
const WidthInWords = 25

// Dimensions returns the pixel width and height of a frame rendering a
// heap of heapSize words.
func Dimensions(heapSize int) (width, height int) {
	rows := (heapSize + WidthInWords - 1) / WidthInWords
	return WidthInWords * WordSize, rows * WordSize
}

// Frame rasterizes one snapshot of cells (heapSize words, arranged
// WidthInWords per row) into an RGBA bitmap.
func Frame(cells *trace.CellTable, heapSize int, now uint64) (*image.RGBA, error) {
	width, height := Dimensions(heapSize)
	img := image.NewRGBA(image.Rect(0, 0, width, height))

	for loc := 0; loc < heapSize; loc++ {
		col := loc % WidthInWords
		row := loc / WidthInWords

		px, err := safecast.Conv[int](col * WordSize)
		if err != nil {
			return nil, err
		}
		py, err := safecast.Conv[int](row * WordSize)
		if err != nil {
			return nil, err
		}

		c := ColorFor(cells.Snapshot(trace.Location(loc)), now)
		for dy := 0; dy < WordSize; dy++ {
			for dx := 0; dx < WordSize; dx++ {
				img.Set(px+dx, py+dy, c)
			}
		}
	}
	return img, nil
}
