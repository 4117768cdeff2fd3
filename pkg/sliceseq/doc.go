// Package sliceseq implements a persistent, copy-on-write B+tree backing a
// mutable byte sequence — the buffer representation for a text editor.
//
// A Table is a handle onto a tree of fixed-arity Nodes whose leaves point
// into reference-counted Blocks. Edits descend from the root, cloning any
// node or small block they are about to mutate if another handle still
// references it (ensureEditable), so a Clone of a Table is an O(1)
// snapshot: the clone and the original share structure until one of them
// is edited.
//
// Concurrency: a single Table must not be mutated from more than one
// goroutine at a time. Clones may be read concurrently with edits on a
// different handle — that is the entire point of the design — but an
// Iterator borrows a Table and is invalidated by any mutation of it.
package sliceseq

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key "libpt.sliceseq". Selecting it at tracing.LevelDebug
// surfaces ensureEditable's node-clone events; NewFromFile failures are
// traced at error level. It is never on the correctness path.
func tracer() tracing.Trace {
	return tracing.Select("libpt.sliceseq")
}
