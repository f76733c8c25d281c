// Package render turns a trace.CellTable's per-word recency metadata
// into the same 11-colour bitmap the original instrumentation's XPM
// writer produced, and encodes it as PNG frames instead.
package render

import (
	"image/color"

	"gcworkbench/internal/trace"
)

var (
	colorFree   = color.RGBA{0x00, 0x00, 0x00, 0xff}
	colorNever  = color.RGBA{0x88, 0x88, 0x88, 0xff}
	colorOver   = color.RGBA{0xff, 0x00, 0x00, 0xff}
	readRamp    = [4]color.RGBA{{0x00, 0xff, 0x00, 0xff}, {0x22, 0xcc, 0x22, 0xff}, {0x22, 0xaa, 0x22, 0xff}, {0x22, 0x88, 0x22, 0xff}}
	writeRamp   = [4]color.RGBA{{0xff, 0xff, 0x00, 0xff}, {0xcc, 0xcc, 0x22, 0xff}, {0xaa, 0xaa, 0x22, 0xff}, {0x88, 0x88, 0x22, 0xff}}
)

// ColorFor reproduces dkp.cc's color_of_mem_loc: free cells are black;
// allocated cells that have never been touched (age == now, i.e. both
// last-read and last-write are still zero) are grey; a recent
// bookkeeping write is red; everything else ages from a bright ramp
// colour (read: green, write: yellow) through three darker shades as
// the cell goes stale.
func ColorFor(info trace.CellInfo, now uint64) color.RGBA {
	if !info.Allocated {
		return colorFree
	}

	var ramp [4]color.RGBA
	var age uint64
	if info.LastRead > info.LastWrite {
		ramp = readRamp
		age = now - info.LastRead
	} else {
		ramp = writeRamp
		age = now - info.LastWrite
	}

	if age == now {
		return colorNever
	}
	switch {
	case age < 5:
		if info.Overhead {
			return colorOver
		}
		return ramp[0]
	case age < 25:
		return ramp[1]
	case age < 125:
		return ramp[2]
	default:
		return ramp[3]
	}
}
