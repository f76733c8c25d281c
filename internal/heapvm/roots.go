package heapvm

// rootNode is one link of the intrusive doubly-linked root set. Handles
// hold a pointer to their own node; RootSet.head is the sole process-
// (or Machine-) wide entry point a tracing collector walks from.
type rootNode struct {
	loc        Location
	prev, next *rootNode
}

// RootSet is the set of currently live handles. Unlike the handles a
// client holds on its own call stack, these nodes are ordinary
// Go-heap-allocated values: Go's own runtime, not the managed heap this
// package implements, owns their storage and address stability.
type RootSet struct {
	head *rootNode
	n    int
}

// insert links a new node to the head of the list and returns it.
func (r *RootSet) insert(loc Location) *rootNode {
	n := &rootNode{loc: loc, next: r.head}
	if r.head != nil {
		r.head.prev = n
	}
	r.head = n
	r.n++
	return n
}

// remove unlinks node from the list. Guaranteed to run on every handle
// destruction path (Machine.Handle.Close, including via defer), so a
// handle never outlives its root-set membership.
func (r *RootSet) remove(node *rootNode) {
	if node.prev != nil {
		node.prev.next = node.next
	} else if r.head == node {
		r.head = node.next
	}
	if node.next != nil {
		node.next.prev = node.prev
	}
	node.prev, node.next = nil, nil
	r.n--
}

// Each calls fn with every root location currently registered, in
// most-recently-inserted-first order.
func (r *RootSet) Each(fn func(Location)) {
	for n := r.head; n != nil; n = n.next {
		fn(n.loc)
	}
}

// Len reports the number of live handles.
func (r *RootSet) Len() int { return r.n }

// Snapshot returns the current root locations as a slice, for the
// `roots` trace event.
func (r *RootSet) Snapshot() []Location {
	out := make([]Location, 0, r.n)
	r.Each(func(l Location) { out = append(out, l) })
	return out
}
