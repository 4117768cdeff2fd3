package sliceseq

import (
	"sync/atomic"
)

// HighWater is the maximum span of a "small" slot. Spans at or below it are
// backed by a mutable, fixed-capacity heap block; spans above it are backed
// by an immutable block (heap or mmap) shared by reference count.
const HighWater = 1024

// blockKind distinguishes the three ways a block's bytes can be backed.
type blockKind uint8

const (
	blockSmall blockKind = iota // heap, capacity HighWater, mutable in place
	blockLarge                  // heap, immutable once refcount has exceeded 1
	blockMmap                   // read-only mapping of a file, immutable
)

// block is a contiguous byte buffer owned by reference count. Small blocks
// are mutable in place while uniquely owned (refcount == 1); large and
// mmap blocks are never mutated after creation — edits to them produce new
// blocks that supersede the old slot.
//
// data's length is always the block's live span; small blocks additionally
// carry spare capacity up to HighWater so they can grow via append without
// reallocating.
type block struct {
	kind   blockKind
	data   []byte
	refc   atomic.Int32
	mmapFd *mmapRegion // non-nil only for blockMmap, owns the OS mapping
}

// newSmallBlock allocates a small block with the given bytes, capacity
// HighWater, refcount 1.
func newSmallBlock(src []byte) *block {
	if len(src) > HighWater {
		panic("sliceseq: newSmallBlock: span exceeds HighWater")
	}
	data := make([]byte, len(src), HighWater)
	copy(data, src)
	b := &block{kind: blockSmall, data: data}
	b.refc.Store(1)
	return b
}

// newLargeBlock allocates an immutable heap block, refcount 1.
func newLargeBlock(src []byte) *block {
	data := make([]byte, len(src))
	copy(data, src)
	b := &block{kind: blockLarge, data: data}
	b.refc.Store(1)
	return b
}

// sliceBlock returns a new large (or small, if it fits) block holding
// src[lo:hi], sharing nothing with the source — callers materializing a
// fragment of a large slot always get an independent copy, since the
// source block may still be referenced elsewhere.
func sliceBlock(src []byte, lo, hi int) *block {
	n := hi - lo
	if n <= HighWater {
		return newSmallBlock(src[lo:hi])
	}
	return newLargeBlock(src[lo:hi])
}

// newMmapBlock memory-maps fd read-only for length n and wraps it as a
// large immutable block. The caller retains ownership of fd only until
// this call returns (the mapping keeps the pages resident independently
// of the descriptor).
func newMmapBlock(fd int, n int) (*block, error) {
	region, err := mmapOpen(fd, n)
	if err != nil {
		return nil, err
	}
	b := &block{kind: blockMmap, data: region.data, mmapFd: region}
	b.refc.Store(1)
	return b, nil
}

// incref bumps the reference count. Relaxed ordering suffices: the
// happens-before relationship is established by whatever channel (a Clone
// call, a recursive ensureEditable) published the pointer to the new
// owner in the first place.
func (b *block) incref() {
	b.refc.Add(1)
}

// drop releases a reference. On the last decrement the backing store is
// released: mmap regions are unmapped, heap blocks are left for the
// garbage collector.
func (b *block) drop() {
	if b == nil {
		return
	}
	if b.refc.Add(-1) == 0 {
		if b.kind == blockMmap && b.mmapFd != nil {
			_ = b.mmapFd.close()
		}
	}
}

func (b *block) isSmall() bool {
	return b.kind == blockSmall
}

func (b *block) span() int {
	return len(b.data)
}

// ensureUniqueSmall returns a block usable for in-place editing: b itself
// if uniquely owned, otherwise a fresh copy. Must only be called on small
// blocks reached through a node that ensureEditable has already made
// unique — see cow.go.
func (b *block) ensureUniqueSmall() *block {
	if b.refc.Load() == 1 {
		return b
	}
	clone := newSmallBlock(b.data)
	b.drop()
	return clone
}

// blockInsert shifts bytes to make room for src at offset pos inside a
// uniquely-owned small block, growing its live length. Caller must ensure
// the result still fits in HighWater or promote to large beforehand.
func blockInsert(b *block, pos int, src []byte) {
	n := len(b.data)
	b.data = append(b.data, src...) // grow capacity/len
	copy(b.data[pos+len(src):], b.data[pos:n])
	copy(b.data[pos:pos+len(src)], src)
}

// blockDelete removes [pos, pos+n) from a uniquely-owned small block.
func blockDelete(b *block, pos, n int) {
	copy(b.data[pos:], b.data[pos+n:])
	b.data = b.data[:len(b.data)-n]
}

// mmapRegion is a thin wrapper around a read-only shared mapping.
// mmapOpen/close are implemented per-platform in mmap_unix.go and
// mmap_windows.go; mmapRegion's field layout is shared.
type mmapRegion struct {
	data []byte
}
