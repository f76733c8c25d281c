package trace

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Format selects how FormatEvent renders an Event.
type Format uint8

const (
	// FormatBracket renders the original renderer's wire format: a
	// sequence of ['kind', args...] tuples, one per line, so that the
	// whole stream parses as a JavaScript array literal.
	FormatBracket Format = iota
	// FormatNDJSON renders one JSON object per line.
	FormatNDJSON
)

// ParseFormat converts a string to a Format.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "bracket", "":
		return FormatBracket, nil
	case "ndjson", "json":
		return FormatNDJSON, nil
	default:
		return FormatBracket, fmt.Errorf("invalid trace format: %q (expected: bracket|ndjson)", s)
	}
}

// FormatEvent renders ev according to format, without a trailing newline.
func FormatEvent(ev Event, format Format) string {
	switch format {
	case FormatNDJSON:
		return formatNDJSON(ev)
	default:
		return formatBracket(ev)
	}
}

func formatBracket(ev Event) string {
	var b strings.Builder
	b.WriteByte('[')
	b.WriteByte('\'')
	b.WriteString(ev.Kind.String())
	b.WriteByte('\'')
	switch ev.Kind {
	case KindAlloc, KindFree:
		fmt.Fprintf(&b, ",%d,%d", ev.Loc, ev.Size)
	case KindInit:
		fmt.Fprintf(&b, ",%d,'%s'", ev.Loc, ev.Text)
	case KindSet:
		fmt.Fprintf(&b, ",%d,%s", ev.Loc, quoteIfNeeded(ev.Text))
	case KindRefCount:
		fmt.Fprintf(&b, ",%d,%d", ev.Loc, ev.Count)
	case KindCopy:
		fmt.Fprintf(&b, ",%d,%d,%d", ev.Loc, ev.Loc2, ev.Size)
	case KindBp:
		fmt.Fprintf(&b, ",'%s'", ev.Text)
	case KindRoots, KindLive:
		for _, l := range ev.Locs {
			fmt.Fprintf(&b, ",%d", l)
		}
	case KindStop:
		// no payload
	}
	b.WriteByte(']')
	return b.String()
}

// quoteIfNeeded decides how a set event's text prints: text that parses
// as an integer (a Num value, a Vec length, a reference location) prints
// bare; text that already starts with a single quote prints unchanged;
// anything else, such as a Str character or "=5", is wrapped in single
// quotes. An empty text prints as ''.
func quoteIfNeeded(s string) string {
	if s == "" {
		return "''"
	}
	if _, err := strconv.Atoi(s); err == nil {
		return s
	}
	if strings.HasPrefix(s, "'") {
		return s
	}
	return "'" + s + "'"
}

func formatNDJSON(ev Event) string {
	type wire struct {
		Seq   uint64   `json:"seq"`
		Kind  string   `json:"kind"`
		Loc   uint32   `json:"loc,omitempty"`
		Loc2  uint32   `json:"loc2,omitempty"`
		Size  int      `json:"size,omitempty"`
		Count int      `json:"count,omitempty"`
		Text  string   `json:"text,omitempty"`
		Locs  []uint32 `json:"locs,omitempty"`
	}
	w := wire{
		Seq:   ev.Seq,
		Kind:  ev.Kind.String(),
		Loc:   uint32(ev.Loc),
		Loc2:  uint32(ev.Loc2),
		Size:  ev.Size,
		Count: ev.Count,
		Text:  ev.Text,
	}
	if len(ev.Locs) > 0 {
		w.Locs = make([]uint32, len(ev.Locs))
		for i, l := range ev.Locs {
			w.Locs[i] = uint32(l)
		}
	}
	data, _ := json.Marshal(w)
	return string(data)
}
