package sliceseq

import "fmt"

// CheckInvariants walks the whole tree verifying the structural
// invariants of spec.md §8: node fill bounds, span-sum agreement
// between inner slots and their children, the no-two-adjacent-smalls
// leaf invariant, and every live span being positive. Intended for
// debug builds and tests, not the hot edit path.
func CheckInvariants(t *Table) error {
	if t.closed {
		return fmt.Errorf("%w: table is closed", ErrInvariant)
	}
	return checkNode(t.root, t.levels, true)
}

func checkNode(n *node, level int, isRoot bool) error {
	fill := n.fill(0)

	if isRoot {
		if level > 1 && fill < 2 {
			return fmt.Errorf("%w: inner root fill %d < 2", ErrInvariant, fill)
		}
		// a root leaf may have any fill, including 0 (empty tree).
	} else {
		if fill < minFill || fill > B {
			return fmt.Errorf("%w: node fill %d outside [%d,%d]", ErrInvariant, fill, minFill, B)
		}
	}

	var sum int64
	for i := 0; i < fill; i++ {
		span := n.spans[i]
		if span <= 0 {
			return fmt.Errorf("%w: slot %d has non-positive span %d", ErrInvariant, i, span)
		}
		sum += span

		if n.isLeaf {
			b := n.blocks[i]
			if b == nil {
				return fmt.Errorf("%w: leaf slot %d has nil block", ErrInvariant, i)
			}
			if int64(b.span()) != span {
				return fmt.Errorf("%w: leaf slot %d span %d != block span %d", ErrInvariant, i, span, b.span())
			}
			if i+1 < fill && b.isSmall() && n.blocks[i+1].isSmall() {
				return fmt.Errorf("%w: adjacent small slots at %d,%d", ErrInvariant, i, i+1)
			}
		} else {
			c := n.children[i]
			if c == nil {
				return fmt.Errorf("%w: inner slot %d has nil child", ErrInvariant, i)
			}
			if childSum := c.sum(c.fill(0)); childSum != span {
				return fmt.Errorf("%w: inner slot %d span %d != child total %d", ErrInvariant, i, span, childSum)
			}
			if err := checkNode(c, level-1, false); err != nil {
				return err
			}
		}
	}

	for i := fill; i < B; i++ {
		if n.spans[i] != sentinelUnused {
			return fmt.Errorf("%w: slot %d beyond fill is not sentinel", ErrInvariant, i)
		}
	}

	return nil
}
