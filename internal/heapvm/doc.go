// Package heapvm is the core of the GC workbench: a fixed-size managed
// heap of machine words, a tagged object model laid out directly in
// that heap, registered handles forming the root set, and four
// pluggable collector algorithms (reference counting, mark-sweep,
// semi-space copying, mark-compact) that share the same object model
// and allocator surface.
//
// Objects never hold a language-level vtable pointer: a collector may
// move any object, so dispatch on behavior is a handwritten switch on
// a one-byte type tag stored in every object's header, mirroring the
// teacher compiler's tagged-union runtime values (see internal/vm/tag.go
// in the example corpus) rather than an interface-typed heap.
package heapvm
