package sliceseq

import (
	"bytes"
	"fmt"

	"github.com/natefinch/atomic"
	"github.com/xlab/treeprint"
)

// DumpToFile writes the table's bytes to path atomically: the full
// content is staged to a temp file in the same directory and renamed
// into place, so a reader never observes a half-written file and a
// killed process never corrupts an existing one.
func (t *Table) DumpToFile(path string) error {
	var buf bytes.Buffer
	if err := t.Dump(&buf); err != nil {
		return err
	}
	return atomic.WriteFile(path, &buf)
}

// RenderTree renders the node shape of t's current root — fill, span,
// and small/large slot kind, not byte contents — as an ASCII tree for
// debugging. It does not touch leaf byte data beyond its length and
// block kind.
func RenderTree(t *Table) string {
	root := treeprint.New()
	root.SetValue(fmt.Sprintf("root (levels=%d, size=%d)", t.levels, t.Size()))
	renderNode(root, t.root, t.levels)
	return root.String()
}

func renderNode(branch treeprint.Tree, n *node, level int) {
	fill := n.fill(0)
	if n.isLeaf {
		for i := 0; i < fill; i++ {
			kind := "large"
			if n.blocks[i].isSmall() {
				kind = "small"
			}
			branch.AddNode(fmt.Sprintf("slot[%d] span=%d kind=%s", i, n.spans[i], kind))
		}
		return
	}
	for i := 0; i < fill; i++ {
		child := branch.AddBranch(fmt.Sprintf("slot[%d] span=%d", i, n.spans[i]))
		renderNode(child, n.children[i], level-1)
	}
}
