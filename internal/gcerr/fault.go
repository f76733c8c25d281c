// Package gcerr defines the core's fatal-fault error model.
//
// The workbench treats invariant violations as unrecoverable, per spec:
// out-of-memory in reserve, a size query on a Forward header, an
// out-of-bounds slot access, and a corrupt type tag all abort rather
// than return a recoverable error. Core packages signal this by
// panicking with a *Fault; only the CLI recovers, prints it, and exits
// non-zero.
package gcerr

import "fmt"

// Code identifies the kind of fault. Values are stable; do not renumber.
type Code int

const (
	FaultOutOfMemory    Code = 1 // reserve would exceed the active region
	FaultForwardSize    Code = 2 // size() queried on a Forward header
	FaultOutOfBounds    Code = 3 // slot index outside an object's length, or location outside the heap
	FaultCorruptTag     Code = 4 // header type tag is not a known type
	FaultInvalidHandle  Code = 5 // handle's location is out of heap bounds
	FaultDoubleFree     Code = 6 // free() on an already-free cell
	FaultUseAfterFree   Code = 7 // dereference of a freed/forwarded cell where live data was expected
)

// String renders the code the way a panic message names it, "GC003" style.
func (c Code) String() string {
	return fmt.Sprintf("GC%03d", int(c))
}

// Fault is a fatal, unrecoverable invariant violation.
type Fault struct {
	Code    Code
	Message string
}

// Error implements the error interface.
func (f *Fault) Error() string {
	return fmt.Sprintf("fault %s: %s", f.Code, f.Message)
}

// New builds a Fault and does not panic; callers that want the abort
// semantics spec §7 requires should call Abort instead.
func New(code Code, format string, args ...any) *Fault {
	return &Fault{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Abort panics with a *Fault built from code and the formatted message.
// Every invariant check in the core that has no recovery path calls this.
func Abort(code Code, format string, args ...any) {
	panic(New(code, format, args...))
}
