package sliceseq

import (
	"bytes"
	"strings"
	"testing"
)

func dumpString(t *testing.T, tbl *Table) string {
	t.Helper()
	var buf bytes.Buffer
	if err := tbl.Dump(&buf); err != nil {
		t.Fatalf("Dump: %v", err)
	}
	return buf.String()
}

func TestTableInsertConcatenates(t *testing.T) {
	tbl := New()
	if _, err := tbl.Insert(0, []byte("hello")); err != nil {
		t.Fatal(err)
	}
	if _, err := tbl.Insert(5, []byte(" world")); err != nil {
		t.Fatal(err)
	}
	if got := dumpString(t, tbl); got != "hello world" {
		t.Fatalf("dump = %q", got)
	}
	if tbl.Size() != 11 {
		t.Fatalf("size = %d, want 11", tbl.Size())
	}
}

func TestTableInsertDelete(t *testing.T) {
	tbl := New()
	tbl.Insert(0, []byte("abcdef"))
	if _, err := tbl.Delete(2, 2); err != nil {
		t.Fatal(err)
	}
	if got := dumpString(t, tbl); got != "abef" {
		t.Fatalf("dump = %q", got)
	}
	if tbl.Size() != 4 {
		t.Fatalf("size = %d, want 4", tbl.Size())
	}
}

func TestTableLargeInsertDeleteHoldsInvariants(t *testing.T) {
	tbl := New()
	tbl.Insert(0, bytes.Repeat([]byte("X"), 10000))
	if _, err := tbl.Delete(100, 9800); err != nil {
		t.Fatal(err)
	}
	if err := CheckInvariants(tbl); err != nil {
		t.Fatal(err)
	}
	if tbl.Size() != 200 {
		t.Fatalf("size = %d, want 200", tbl.Size())
	}
	if got := dumpString(t, tbl); got != strings.Repeat("X", 200) {
		t.Fatalf("dump mismatch, len=%d", len(got))
	}
}

func TestTableCloneIsIndependent(t *testing.T) {
	tbl := New()
	tbl.Insert(0, []byte("abc"))
	u := tbl.Clone()
	u.Insert(1, []byte("ZZ"))
	if got := dumpString(t, tbl); got != "abc" {
		t.Fatalf("original dump = %q, want abc", got)
	}
	if got := dumpString(t, u); got != "aZZbc" {
		t.Fatalf("clone dump = %q, want aZZbc", got)
	}
}

func TestTableEmptyTree(t *testing.T) {
	tbl := New()
	if tbl.Size() != 0 {
		t.Fatalf("size = %d, want 0", tbl.Size())
	}
	if got := dumpString(t, tbl); got != "" {
		t.Fatalf("dump = %q, want empty", got)
	}
	if _, err := tbl.Delete(0, 5); err != nil {
		t.Fatalf("delete on empty tree should no-op, got err %v", err)
	}
}

func TestTableInsertOutOfBounds(t *testing.T) {
	tbl := New()
	tbl.Insert(0, []byte("abc"))
	if _, err := tbl.Insert(4, []byte("x")); err != ErrOutOfBounds {
		t.Fatalf("err = %v, want ErrOutOfBounds", err)
	}
}

func TestTableIdentityEdits(t *testing.T) {
	tbl := New()
	tbl.Insert(0, []byte("hello"))
	before := dumpString(t, tbl)
	tbl.Insert(2, nil)
	tbl.Delete(2, 0)
	if got := dumpString(t, tbl); got != before {
		t.Fatalf("identity edit changed content: %q != %q", got, before)
	}
}

func TestTableInsertDeleteInverse(t *testing.T) {
	tbl := New()
	tbl.Insert(0, []byte("the quick brown fox"))
	before := dumpString(t, tbl)
	tbl.Insert(4, []byte("VERY "))
	tbl.Delete(4, 5)
	if got := dumpString(t, tbl); got != before {
		t.Fatalf("insert/delete inverse failed: %q != %q", got, before)
	}
}

func TestTableLineFeedAccounting(t *testing.T) {
	tbl := New()
	lf, _ := tbl.Insert(0, []byte("a\nb\nc\n"))
	if lf != 3 {
		t.Fatalf("insert lf = %d, want 3", lf)
	}
	lf, _ = tbl.Delete(0, 4) // removes "a\nb\n"
	if lf != 2 {
		t.Fatalf("delete lf = %d, want 2", lf)
	}
}

// buildMultiLeafTable appends n distinct chunkSize-byte chunks (each
// above HighWater, so none merge into neighbors) one at a time, each at
// the table's current end. With B=15 this reliably forces leaf splits:
// the root stays a single leaf through the first B+1-1=B inserts, splits
// into two 8-slot leaves on the one that overflows it, and keeps
// splitting the rightmost leaf as further chunks are appended past it —
// so n=24, chunkSize=2000 yields a deterministic 3-leaf tree with leaf
// boundaries at byte offsets 16000 and 32000 (8 slots of 2000 bytes per
// leaf). Returns the table and the equivalent plain []byte content.
func buildMultiLeafTable(t *testing.T, n, chunkSize int) (*Table, []byte) {
	t.Helper()
	tbl := New()
	var content []byte
	for i := 0; i < n; i++ {
		chunk := bytes.Repeat([]byte{byte('A' + i%26)}, chunkSize)
		pos := tbl.Size()
		if _, err := tbl.Insert(pos, chunk); err != nil {
			t.Fatalf("chunk %d: insert: %v", i, err)
		}
		content = append(content, chunk...)
	}
	if err := CheckInvariants(tbl); err != nil {
		t.Fatalf("invariants failed after building fixture: %v", err)
	}
	return tbl, content
}

// TestTableDeletionAcrossLeafBoundaries exercises spec.md §8's
// "deletion spanning 0, 1, 2, and >= 3 leaves" boundary requirement
// against a tree that has actually split into multiple leaves (unlike
// a single-Insert-then-delete, which never leaves insertLeafBase's
// fill==0 fast path and so never spans more than one leaf).
func TestTableDeletionAcrossLeafBoundaries(t *testing.T) {
	const chunkSize = 2000 // > HighWater, so chunks never merge

	cases := []struct {
		name   string
		pos    int64
		length int64
	}{
		{"spans0Leaves", 15500, 0},           // no-op: zero length
		{"spans1Leaf", 500, 2000},            // entirely inside the first leaf
		{"spans2Leaves", 15000, 2000},        // straddles the 16000 boundary
		{"spans3OrMoreLeaves", 15000, 18000}, // crosses both 16000 and 32000
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			tbl, content := buildMultiLeafTable(t, 24, chunkSize)
			if _, err := tbl.Delete(c.pos, c.length); err != nil {
				t.Fatal(err)
			}
			if err := CheckInvariants(tbl); err != nil {
				t.Fatalf("invariants broken after delete(%d,%d): %v", c.pos, c.length, err)
			}
			want := string(referenceDelete(content, c.pos, c.length))
			if got := dumpString(t, tbl); got != want {
				t.Fatalf("delete(%d,%d): dump mismatch, got len=%d want len=%d", c.pos, c.length, len(got), len(want))
			}
		})
	}
}

func TestTableStressInsertDelete(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping fuzz-style stress scenario in -short mode")
	}
	base := bytes.Repeat([]byte("0123456789"), 1200) // >= 10 KiB
	tbl := New()
	tbl.Insert(0, base)
	size := tbl.Size()

	const iterations = 100000
	for i := 0; i < iterations; i++ {
		pos := int64(34 + 59*i)
		pos %= tbl.Size() - 4 // keep pos+5 <= Size() so the delete is never clipped
		if _, err := tbl.Delete(pos, 5); err != nil {
			t.Fatalf("iteration %d: delete: %v", i, err)
		}
		if _, err := tbl.Insert(pos, []byte("thang")); err != nil {
			t.Fatalf("iteration %d: insert: %v", i, err)
		}
		if tbl.Size() != size {
			t.Fatalf("iteration %d: size drifted to %d, want %d", i, tbl.Size(), size)
		}
	}
	if err := CheckInvariants(tbl); err != nil {
		t.Fatalf("invariants failed after stress loop: %v", err)
	}
}

// reference is a slow, obviously-correct []byte model of the same
// insert/delete operations, used by FuzzTableInsertDelete to check that
// the tree's content agrees with plain slice splicing under arbitrary
// edit sequences.
func referenceInsert(base []byte, pos int64, src []byte) []byte {
	out := make([]byte, 0, len(base)+len(src))
	out = append(out, base[:pos]...)
	out = append(out, src...)
	out = append(out, base[pos:]...)
	return out
}

func referenceDelete(base []byte, pos, length int64) []byte {
	end := pos + length
	if end > int64(len(base)) {
		end = int64(len(base))
	}
	out := make([]byte, 0, len(base)-int(end-pos))
	out = append(out, base[:pos]...)
	out = append(out, base[end:]...)
	return out
}
