package sliceseq

// This file implements the edit engine of spec.md §4.4: a recursive
// insert/delete driver that descends from the root, invokes a leaf-level
// base case, and on ascent applies the span delta, propagates child
// overflow (splits) and underflow (rebalances/merges), and lets the
// table-level driver split or collapse the root.
//
// Both insertLeafBase and deleteLeafBase work by extracting a leaf's live
// slots into a plain slice, editing that slice, running mergePass over it
// to restore the no-two-adjacent-smalls invariant, and writing it back —
// a whole-leaf generalization of spec's "up to five candidate slots"
// window. B is small (15), so this stays within the same O(B) budget the
// windowed version targets; see DESIGN.md.

// insertLeafBase inserts src at intra-leaf offset pos into an already
// editable leaf n. Returns an overflow sibling if n had to split.
func insertLeafBase(n *node, pos int64, src []byte) (overflow *node, lf int64) {
	lf = countLF(src)
	fill := n.fill(0)
	if fill == 0 {
		n.setLeafSlot(0, int64(len(src)), makeBlockFor(src))
		return nil, lf
	}

	off := pos
	i := n.offset(&off)
	slots := n.extractSlots(fill)

	if off == 0 {
		slots = insertSliceAt(slots, i, rawSlot{span: int64(len(src)), blk: makeBlockFor(src)})
	} else {
		s := slots[i]
		if s.blk.isSmall() {
			unique := s.blk.ensureUniqueSmall()
			newSpan := unique.span() + len(src)
			if newSpan <= HighWater {
				blockInsert(unique, int(off), src)
				slots[i] = rawSlot{span: int64(newSpan), blk: unique}
			} else {
				buf := make([]byte, 0, newSpan)
				buf = append(buf, unique.data[:off]...)
				buf = append(buf, src...)
				buf = append(buf, unique.data[off:]...)
				large := newLargeBlock(buf)
				unique.drop()
				slots[i] = rawSlot{span: int64(newSpan), blk: large}
			}
		} else {
			left := sliceBlock(s.blk.data, 0, int(off))
			mid := makeBlockFor(src)
			right := sliceBlock(s.blk.data, int(off), len(s.blk.data))
			s.blk.drop()
			repl := []rawSlot{
				{span: off, blk: left},
				{span: int64(len(src)), blk: mid},
				{span: s.span - off, blk: right},
			}
			merged := make([]rawSlot, 0, len(slots)-1+len(repl))
			merged = append(merged, slots[:i]...)
			merged = append(merged, repl...)
			merged = append(merged, slots[i+1:]...)
			slots = merged
		}
	}

	slots = mergePass(slots)
	return writeBackSlots(n, slots), lf
}

// deleteLeafBase deletes up to `length` bytes starting at intra-leaf
// offset pos from an already editable leaf n. Returns any overflow
// sibling produced by fragmenting a slot in a full leaf, the leaf's new
// fill (sentinelEmpty if the leaf is now empty), the line feeds removed
// and the number of bytes actually consumed (clipped to what the leaf
// holds from pos onward).
func deleteLeafBase(n *node, pos int64, length int64) (overflow *node, newFill int, lf int64, consumed int64) {
	fill := n.fill(0)
	leafTotal := n.sum(fill)
	if fill == 0 || pos >= leafTotal {
		return nil, fill, 0, 0
	}

	avail := leafTotal - pos
	take := length
	if take > avail {
		take = avail
	}

	off := pos
	i := n.offset(&off)
	slots := n.extractSlots(fill)

	out := make([]rawSlot, 0, len(slots))
	out = append(out, slots[:i]...)

	cur := slots[i]
	availInCur := cur.span - off
	here := take
	if here > availInCur {
		here = availInCur
	}
	lf += countLF(cur.blk.data[off : off+here])
	remaining := take - here
	rightStart := off + here

	switch {
	case off == 0 && rightStart >= cur.span:
		// whole slot consumed
	case off == 0:
		rem := sliceBlock(cur.blk.data, int(rightStart), int(cur.span))
		out = append(out, rawSlot{span: cur.span - rightStart, blk: rem})
	case rightStart >= cur.span:
		left := sliceBlock(cur.blk.data, 0, int(off))
		out = append(out, rawSlot{span: off, blk: left})
	default:
		left := sliceBlock(cur.blk.data, 0, int(off))
		right := sliceBlock(cur.blk.data, int(rightStart), int(cur.span))
		out = append(out, rawSlot{span: off, blk: left}, rawSlot{span: cur.span - rightStart, blk: right})
	}
	cur.blk.drop()

	j := i + 1
	for remaining > 0 && j < len(slots) {
		s := slots[j]
		if s.span <= remaining {
			lf += countLF(s.blk.data)
			remaining -= s.span
			s.blk.drop()
			j++
			continue
		}
		lf += countLF(s.blk.data[:remaining])
		rem := sliceBlock(s.blk.data, int(remaining), int(s.span))
		out = append(out, rawSlot{span: s.span - remaining, blk: rem})
		s.blk.drop()
		remaining = 0
		j++
	}
	out = append(out, slots[j:]...)
	out = mergePass(out)

	if len(out) == 0 {
		return nil, sentinelEmpty, lf, take
	}
	sib := writeBackSlots(n, out)
	if sib != nil {
		return sib, n.fill(0), lf, take
	}
	return nil, len(out), lf, take
}

// absorbOverflow inserts a child's overflow sibling into parent n at
// slot i+1, splitting n itself if that would exceed B. The new slot's
// span is overflowSpan. Returns n's own overflow sibling, if any.
func absorbOverflow(n *node, i int, overflowChild *node, overflowSpan int64) (overflow *node, overflowSpanOut int64) {
	fill := n.fill(0)
	slots := n.extractSlots(fill)
	slots = insertSliceAt(slots, i+1, rawSlot{span: overflowSpan, ch: overflowChild})
	sib := writeBackSlots(n, slots)
	if sib == nil {
		return nil, 0
	}
	return sib, sib.sum(sib.fill(0))
}

// handleUnderflow is invoked when child i of n has reported underflow
// (fill below minFill but not empty). It picks a tree-order neighbor,
// runs mergeBoundary across the leaf seam when the children are leaves,
// then rebalances. If the right-hand node's resulting fill is 0, its
// slot is excised from n; if n's own fill then drops below minFill,
// underflow is signaled to the caller via the returned bool.
func handleUnderflow(n *node, i int, childrenAreLeaves bool) (underflow bool) {
	fill := n.fill(0)

	leftIdx, rightIdx := i, i+1
	if i == fill-1 {
		leftIdx, rightIdx = i-1, i
	}

	ensureEditable(&n.children[leftIdx], n.children[leftIdx].fill(0))
	ensureEditable(&n.children[rightIdx], n.children[rightIdx].fill(0))
	left := n.children[leftIdx]
	right := n.children[rightIdx]

	leftFill := left.fill(0)
	rightFill := right.fill(0)

	if childrenAreLeaves {
		if t := mergeBoundary(left, right, leftFill, rightFill); t > 0 {
			n.spans[leftIdx] -= t
			n.spans[rightIdx] += t
			leftFill = left.fill(0)
			rightFill = right.fill(0)
		}
	}

	delta := rebalanceNode(left, right, leftFill, rightFill)
	n.spans[leftIdx] += delta
	n.spans[rightIdx] -= delta

	if right.fill(0) == 0 {
		right.drop()
		slots := n.extractSlots(fill)
		slots = append(slots[:rightIdx], slots[rightIdx+1:]...)
		writeBackSlots(n, slots)
		fill--
	}
	return fill < minFill
}
