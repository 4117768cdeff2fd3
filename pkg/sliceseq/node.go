package sliceseq

import (
	"math"
	"sync/atomic"
)

// B is the node arity: spans[0..B) and children[0..B). Chosen odd so that
// an ordinary "one slot too many" overflow (B+1 slots, an even number)
// splits into two exactly-minFill halves: 2*minFill == B+1. An even B
// makes that split impossible to satisfy on both sides (B+1 is odd, so
// one half is always short), which silently breaks the minFill invariant
// on the single most common split path.
const B = 15

// minFill is the minimum occupancy of a non-root node: (B+1)/2, chosen so
// 2*minFill == B+1 exactly — see B's comment.
const minFill = (B + 1 + 1) / 2

// sentinelUnused marks an unoccupied slot's span.
const sentinelUnused = int64(math.MaxInt64)

// sentinelEmpty is returned by the leaf-level edit base case (via the
// splitsize out-parameter) to signal that a child has become completely
// empty and must be excised by its parent, as distinct from a live but
// underflowing child.
const sentinelEmpty = -1

// node is a fixed-arity B+tree node. At level 1 (leaf) children are block
// pointers; at higher levels they are child-node pointers. A node is
// never both — isLeaf is fixed at construction.
type node struct {
	refc     atomic.Int32
	isLeaf   bool
	spans    [B]int64
	blocks   [B]*block // leaf only
	children [B]*node  // inner only
}

func newLeaf() *node {
	n := &node{isLeaf: true}
	for i := range n.spans {
		n.spans[i] = sentinelUnused
	}
	n.refc.Store(1)
	return n
}

func newInner() *node {
	n := &node{isLeaf: false}
	for i := range n.spans {
		n.spans[i] = sentinelUnused
	}
	n.refc.Store(1)
	return n
}

func (n *node) incref() { n.refc.Add(1) }

// drop releases a reference. When the last reference goes away, children
// (block or node) are themselves dropped recursively.
func (n *node) drop() {
	if n == nil {
		return
	}
	if n.refc.Add(-1) != 0 {
		return
	}
	fill := n.fill(0)
	if n.isLeaf {
		for i := 0; i < fill; i++ {
			n.blocks[i].drop()
		}
	} else {
		for i := 0; i < fill; i++ {
			n.children[i].drop()
		}
	}
}

// fill scans from start for the first unused slot and returns the
// occupancy. Live slots are always prefix-packed, so start is normally 0.
func (n *node) fill(start int) int {
	for i := start; i < B; i++ {
		if n.spans[i] == sentinelUnused {
			return i
		}
	}
	return B
}

// sum returns the total span of the first `fill` slots.
func (n *node) sum(fill int) int64 {
	var total int64
	for i := 0; i < fill; i++ {
		total += n.spans[i]
	}
	return total
}

// offset locates the first slot whose span strictly exceeds *key,
// decrementing *key by every skipped span. On return *key is the
// intra-slot offset. Caller must only invoke this with *key <= the node's
// total span; when *key equals it, the result is one past the last live
// slot (the node's fill, which is B for a full node) with *key == 0.
func (n *node) offset(key *int64) int {
	i := 0
	for i < B && n.spans[i] <= *key {
		*key -= n.spans[i]
		i++
	}
	return i
}

// clrSlots resets the half-open range [from, to) to unused/nil.
func (n *node) clrSlots(from, to int) {
	for i := from; i < to; i++ {
		n.spans[i] = sentinelUnused
		if n.isLeaf {
			n.blocks[i] = nil
		} else {
			n.children[i] = nil
		}
	}
}

// shiftRight moves live slots [from, fill) up by one to open a gap at
// `from`, for inserting a new slot. Caller must have room (fill < B).
func (n *node) shiftRight(from, fill int) {
	for i := fill; i > from; i-- {
		n.spans[i] = n.spans[i-1]
		if n.isLeaf {
			n.blocks[i] = n.blocks[i-1]
		} else {
			n.children[i] = n.children[i-1]
		}
	}
}

// shiftLeft closes the gap [from, to) by moving slots [to, fill) down.
func (n *node) shiftLeft(from, to, fill int) {
	for i := to; i < fill; i++ {
		n.spans[i-(to-from)] = n.spans[i]
		if n.isLeaf {
			n.blocks[i-(to-from)] = n.blocks[i]
		} else {
			n.children[i-(to-from)] = n.children[i]
		}
	}
	n.clrSlots(fill-(to-from), fill)
}

func (n *node) setLeafSlot(i int, span int64, b *block) {
	n.spans[i] = span
	n.blocks[i] = b
}

func (n *node) setInnerSlot(i int, span int64, c *node) {
	n.spans[i] = span
	n.children[i] = c
}

// splitNode moves slots [at, fill) into a new sibling, clearing them in
// the original. Returns the sibling.
func (n *node) splitNode(at, fill int) *node {
	var sib *node
	if n.isLeaf {
		sib = newLeaf()
	} else {
		sib = newInner()
	}
	j := 0
	for i := at; i < fill; i++ {
		sib.spans[j] = n.spans[i]
		if n.isLeaf {
			sib.blocks[j] = n.blocks[i]
		} else {
			sib.children[j] = n.children[i]
		}
		j++
	}
	n.clrSlots(at, fill)
	return sib
}

// rebalanceNode moves slots between two tree-order siblings left and
// right: if both fit in one node, all of right's slots move into left
// and right is left empty; otherwise just enough slots cross the
// boundary (from whichever side has spare capacity) to bring the
// underflowing side back up to minFill. Returns the net span change
// applied to left (apply the negation to right: left gains what right
// loses, and vice versa).
func rebalanceNode(left, right *node, leftFill, rightFill int) int64 {
	if leftFill+rightFill <= B {
		leftSlots := left.extractSlots(leftFill)
		rightSlots := right.extractSlots(rightFill)
		var moved int64
		for _, s := range rightSlots {
			moved += s.span
		}
		combined := append(leftSlots, rightSlots...)
		writeBackSlots(left, combined)
		right.clrSlots(0, B)
		return moved
	}

	if leftFill < minFill {
		need := minFill - leftFill
		rightSlots := right.extractSlots(rightFill)
		taken := rightSlots[:need]
		var moved int64
		for _, s := range taken {
			moved += s.span
		}
		leftSlots := append(left.extractSlots(leftFill), taken...)
		writeBackSlots(left, leftSlots)
		writeBackSlots(right, rightSlots[need:])
		return moved
	}

	if rightFill < minFill {
		need := minFill - rightFill
		leftSlots := left.extractSlots(leftFill)
		taken := leftSlots[len(leftSlots)-need:]
		var moved int64
		for _, s := range taken {
			moved += s.span
		}
		rightSlots := append(append([]rawSlot{}, taken...), right.extractSlots(rightFill)...)
		writeBackSlots(right, rightSlots)
		writeBackSlots(left, leftSlots[:len(leftSlots)-need])
		return -moved
	}

	return 0
}

// mergeBoundary is the leaf-specific prelude to rebalancing: if the last
// live slot of left and the first live slot of right are both small,
// they are concatenated into right's first slot (right's block is made
// unique and left's bytes are prepended onto it) and left's
// now-redundant small block is freed and its slot removed, restoring
// the no-two-adjacent-smalls invariant across the leaf boundary before
// rebalanceNode runs. If the two spans together would exceed HighWater,
// nothing is merged. Returns the span transferred from left to right
// (0 if no merge happened); apply as leftSpan -= t, rightSpan += t.
func mergeBoundary(left, right *node, leftFill, rightFill int) int64 {
	if leftFill == 0 || rightFill == 0 {
		return 0
	}
	leftBlk := left.blocks[leftFill-1]
	rightBlk := right.blocks[0]
	if !leftBlk.isSmall() || !rightBlk.isSmall() {
		return 0
	}
	if leftBlk.span()+rightBlk.span() > HighWater {
		return 0
	}
	unique := rightBlk.ensureUniqueSmall()
	right.blocks[0] = unique
	blockInsert(unique, 0, leftBlk.data)
	right.spans[0] = int64(unique.span())
	transferred := left.spans[leftFill-1]
	leftBlk.drop()
	left.shiftLeft(leftFill-1, leftFill, leftFill)
	return transferred
}
