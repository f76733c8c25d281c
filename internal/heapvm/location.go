package heapvm

// Location is an unsigned word offset into the heap array. Location 0 is
// permanently the Nil object and never moves; the absence of a reference
// is represented by 0.
type Location uint32

// Word is the heap's native cell width. Every object field, including
// header words, is one Word wide so an object occupies an integer number
// of heap words.
type Word int64

const (
	// HeapSize is the default total word count of the heap array.
	HeapSize = 2000
	// HeapSemiSize is the word count of one semi-space, used only in
	// copying mode.
	HeapSemiSize = 1000
)

// NilLocation is the permanent singleton Nil object's location.
const NilLocation Location = 0
