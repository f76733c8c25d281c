package heapvm

import (
	"bytes"

	"gcworkbench/internal/trace"
)

// InitStr allocates a Str object storing one byte per word.
func InitStr(h *Heap, data []byte, refcount uint8) Location {
	loc := h.Alloc(2 + len(data))
	h.setOverhead(loc, packHeader(TagStr, false, refcount))
	h.words[loc+1] = Word(len(data))
	h.tracer.Emit(trace.Init(trace.Location(loc), TagStr.String()))
	for i, b := range data {
		h.SetWord(loc+2+Location(i), Word(b), string(rune(b)))
	}
	return loc
}

// StrLen reads a Str's byte length.
func StrLen(h *Heap, loc Location) int {
	checkTag(h, loc, TagStr, "StrLen")
	return int(h.Word(loc + 1))
}

// StrBytes materialises a Str's content as a byte slice.
func StrBytes(h *Heap, loc Location) []byte {
	n := StrLen(h, loc)
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		out[i] = byte(h.Word(loc + 2 + Location(i)))
	}
	return out
}

// SplitBytes splits data on every occurrence of sep, the way the demo's
// field parser splits a DKP record line on ','. Consecutive separators
// yield empty fields; a separator-free input yields a single field
// equal to the input, matching the boundary behaviour spec §8 requires.
func SplitBytes(data []byte, sep byte) [][]byte {
	return bytes.Split(data, []byte{sep})
}

// Equals compares two Str objects. The source this workbench is modeled
// on only ever compares length and first byte — a shortcut the spec's
// Open Questions flag as worth documenting, not emulating, so this
// implementation does full byte-wise equality instead.
func Equals(h *Heap, a, b Location) bool {
	if h.Tag(a) != TagStr || h.Tag(b) != TagStr {
		return a == b
	}
	return bytes.Equal(StrBytes(h, a), StrBytes(h, b))
}
