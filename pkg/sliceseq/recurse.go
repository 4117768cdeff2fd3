package sliceseq

// insertRecurse and deleteRecurse implement the recursive template of
// spec.md §4.4: descend to level 1, run the leaf base case, and on
// ascent fold the child's delta into this node's span, absorb an
// overflow sibling (splitting this node if necessary), or rebalance
// against a neighbor when the child underflowed. The table-level driver
// (table.go) handles root installation/collapse once the recursion
// returns.

// insertRecurse inserts src at absolute offset pos within the subtree
// rooted at *np, which is at the given level (1 = leaf). Returns an
// overflow sibling if *np had to split, and the count of '\n' bytes
// inserted.
func insertRecurse(level int, np **node, pos int64, src []byte) (overflow *node, overflowSpan int64, lf int64) {
	n := ensureEditable(np, (*np).fill(0))

	if level == 1 {
		ov, lfOut := insertLeafBase(n, pos, src)
		if ov == nil {
			return nil, 0, lfOut
		}
		return ov, ov.sum(ov.fill(0)), lfOut
	}

	fill := n.fill(0)
	key := pos
	i := n.offset(&key)
	if i == fill {
		// pos lands exactly at the end of this node's whole subtree
		// (appending at the current end of a multi-level tree): offset
		// reports this the same way the iterator's off-end convention
		// does, one past the last live child, but there is no child
		// there to descend into. Redirect to the end of the last live
		// child instead, which resolves the same way one level down.
		i = fill - 1
		key = n.spans[i]
	}
	childOv, childOvSpan, lfOut := insertRecurse(level-1, &n.children[i], key, src)
	lf = lfOut
	n.spans[i] = n.children[i].sum(n.children[i].fill(0))
	if childOv != nil {
		overflow, overflowSpan = absorbOverflow(n, i, childOv, childOvSpan)
	}
	return
}

// deleteRecurse deletes up to length bytes starting at absolute offset
// pos within the subtree rooted at *np. It reports, in order of
// precedence: an overflow sibling (rare — only from a leaf-level split
// forced by a merge pass), whether *np itself is now underflowing, and
// whether *np is now completely empty (in which case the caller must
// excise it). consumed is the number of bytes actually removed, which
// may be less than length if the subtree ran out of content first; the
// table-level driver repeats the descent with the residual.
func deleteRecurse(level int, np **node, pos int64, length int64) (overflow *node, overflowSpan int64, underflow bool, empty bool, lf int64, consumed int64) {
	n := ensureEditable(np, (*np).fill(0))

	if level == 1 {
		ov, newFill, lfOut, consumedOut := deleteLeafBase(n, pos, length)
		lf, consumed = lfOut, consumedOut
		if ov != nil {
			overflow, overflowSpan = ov, ov.sum(ov.fill(0))
			return
		}
		if newFill == sentinelEmpty {
			empty = true
			return
		}
		underflow = newFill < minFill
		return
	}

	fill := n.fill(0)
	key := pos
	i := n.offset(&key)
	if i == fill {
		// Table.Delete never calls in with pos >= Size(), so this
		// shouldn't arise in practice; guarded for the same reason as
		// the identical case in insertRecurse.
		i = fill - 1
		key = n.spans[i]
	}
	childOv, childOvSpan, childUnderflow, childEmpty, lfOut, consumedOut := deleteRecurse(level-1, &n.children[i], key, length)
	lf, consumed = lfOut, consumedOut

	switch {
	case childEmpty:
		n.children[i].drop()
		slots := n.extractSlots(fill)
		slots = append(slots[:i], slots[i+1:]...)
		writeBackSlots(n, slots)
	case childOv != nil:
		n.spans[i] = n.children[i].sum(n.children[i].fill(0))
		overflow, overflowSpan = absorbOverflow(n, i, childOv, childOvSpan)
	case childUnderflow:
		n.spans[i] = n.children[i].sum(n.children[i].fill(0))
		handleUnderflow(n, i, level == 2)
	default:
		n.spans[i] = n.children[i].sum(n.children[i].fill(0))
	}

	newFill := n.fill(0)
	if newFill == 0 {
		empty = true
		return
	}
	underflow = newFill < minFill
	return
}
