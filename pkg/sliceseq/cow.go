package sliceseq

// ensureEditable returns a node safe to mutate: *np itself if its
// refcount is 1 (uniquely owned by the caller's path), otherwise a fresh
// clone with refcount 1, installed back into *np. The original is
// dropped.
//
// For a leaf, small child blocks are duplicated eagerly — even ones the
// mutator doesn't end up touching — because a leaf that is now uniquely
// owned promises unique ownership of the small blocks it directly owns
// (so a later in-place edit on any of them is safe without a second
// check). Large blocks and inner-node children are only increffed, since
// they are never mutated in place.
func ensureEditable(np **node, fill int) *node {
	n := *np
	if n.refc.Load() == 1 {
		return n
	}
	tracer().Debugf("ensureEditable: cloning node (refc=%d, leaf=%v, fill=%d)", n.refc.Load(), n.isLeaf, fill)

	clone := &node{isLeaf: n.isLeaf, spans: n.spans}
	clone.refc.Store(1)
	if n.isLeaf {
		for i := 0; i < fill; i++ {
			b := n.blocks[i]
			if b.isSmall() {
				clone.blocks[i] = newSmallBlock(b.data)
			} else {
				b.incref()
				clone.blocks[i] = b
			}
		}
	} else {
		for i := 0; i < fill; i++ {
			n.children[i].incref()
			clone.children[i] = n.children[i]
		}
	}

	n.drop()
	*np = clone
	return clone
}
