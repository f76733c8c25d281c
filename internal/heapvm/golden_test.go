package heapvm

import (
	"strings"
	"testing"

	"gcworkbench/internal/trace"
)

// TestGoldenTraceStream reproduces spec §8's fixed tiny-heap scenario
// across all four collector modes and asserts the exact trace-event
// stream each one produces, in the renderer's bracket wire format
// (trace.FormatBracket). The scenario: allocate a Num that is dropped
// immediately (garbage no mode ever reclaims eagerly except refcount),
// then a live Num pushed into a length-1 Vec, then one collection, then
// the two live handles are closed in turn.
//
// This is the golden-style test the AMBIENT STACK section promises: a
// wrong event (a missing alloc on a moved object, a skipped terminal
// ref_count, a silent mark pass, a length bump written as overhead
// instead of a user-facing set) changes this string and fails here
// before it ever reaches a renderer.
func TestGoldenTraceStream(t *testing.T) {
	const heapSize = 32

	tests := []struct {
		mode     Mode
		expected string
	}{
		{ModeRefCount, strings.Join([]string{
			`['alloc',1,2]`,
			`['init',1,'num']`,
			`['set',2,99]`,
			`['ref_count',1,0]`,
			`['free',1,2]`,
			`['alloc',3,2]`,
			`['init',3,'num']`,
			`['set',4,5]`,
			`['alloc',5,3]`,
			`['init',5,'tup']`,
			`['alloc',8,3]`,
			`['init',8,'vec']`,
			`['ref_count',3,2]`,
			`['set',7,3]`,
			`['set',9,1]`,
			`['ref_count',3,1]`,
			`['ref_count',8,0]`,
			`['ref_count',5,0]`,
			`['ref_count',3,0]`,
			`['free',3,2]`,
			`['free',5,3]`,
			`['free',8,3]`,
		}, "\n")},
		{ModeMarkSweep, strings.Join([]string{
			`['alloc',1,2]`,
			`['init',1,'num']`,
			`['set',2,99]`,
			`['alloc',3,2]`,
			`['init',3,'num']`,
			`['set',4,5]`,
			`['alloc',5,3]`,
			`['init',5,'tup']`,
			`['alloc',8,3]`,
			`['init',8,'vec']`,
			`['set',7,3]`,
			`['set',9,1]`,
			`['roots',8,3]`,
			`['ref_count',8,1]`,
			`['ref_count',5,1]`,
			`['ref_count',3,1]`,
			`['live',3,5,8]`,
			`['free',1,2]`,
		}, "\n")},
		{ModeMarkCompact, strings.Join([]string{
			`['alloc',1,2]`,
			`['init',1,'num']`,
			`['set',2,99]`,
			`['alloc',3,2]`,
			`['init',3,'num']`,
			`['set',4,5]`,
			`['alloc',5,3]`,
			`['init',5,'tup']`,
			`['alloc',8,3]`,
			`['init',8,'vec']`,
			`['set',7,3]`,
			`['set',9,1]`,
			`['roots',8,3]`,
			`['ref_count',8,1]`,
			`['ref_count',5,1]`,
			`['ref_count',3,1]`,
			`['live',3,5,8]`,
			`['copy',1,3,2]`,
			`['copy',3,5,3]`,
			`['copy',6,8,3]`,
			`['free',9,2]`,
		}, "\n")},
		{ModeCopy, strings.Join([]string{
			`['alloc',1,2]`,
			`['init',1,'num']`,
			`['set',2,99]`,
			`['alloc',3,2]`,
			`['init',3,'num']`,
			`['set',4,5]`,
			`['alloc',5,3]`,
			`['init',5,'tup']`,
			`['alloc',8,3]`,
			`['init',8,'vec']`,
			`['set',7,3]`,
			`['set',9,1]`,
			`['roots',8,3]`,
			`['live',3,5,8]`,
			`['alloc',16,2]`,
			`['copy',16,3,2]`,
			`['alloc',18,3]`,
			`['copy',18,5,3]`,
			`['alloc',21,3]`,
			`['copy',21,8,3]`,
			`['free',1,16]`,
		}, "\n")},
	}

	for _, tc := range tests {
		t.Run(tc.mode.String(), func(t *testing.T) {
			ring := trace.NewRingTracer(trace.LevelFull)
			m := NewMachine(tc.mode, heapSize, ring, nil)

			garbage := m.AllocNum(99)
			garbage.Close()

			n := m.AllocNum(5)
			v := m.AllocVec(1)
			m.VecPush(v, n.Loc())

			m.RequestGC()

			n.Close()
			v.Close()

			var lines []string
			for _, ev := range ring.Snapshot() {
				lines = append(lines, trace.FormatEvent(ev, trace.FormatBracket))
			}
			got := strings.Join(lines, "\n")

			if got != tc.expected {
				t.Fatalf("unexpected trace stream for %s:\nwant:\n%s\n\ngot:\n%s", tc.mode, tc.expected, got)
			}
		})
	}
}
