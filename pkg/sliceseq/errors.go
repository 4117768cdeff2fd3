package sliceseq

import "errors"

// ErrFileNotFound is returned by NewFromFile when the backing path
// cannot be opened.
var ErrFileNotFound = errors.New("sliceseq: file not found")

// ErrOutOfBounds is returned by Insert when pos exceeds the table's
// current size. Delete never returns it — out-of-range deletes are
// clipped silently, per spec.
var ErrOutOfBounds = errors.New("sliceseq: position out of bounds")

// ErrClosed is returned by Insert and Delete on a Table after Free has
// been called on it.
var ErrClosed = errors.New("sliceseq: table is closed")

// ErrInvariant is returned by CheckInvariants when a structural
// invariant does not hold.
var ErrInvariant = errors.New("sliceseq: invariant violation")
