package sliceseq

import (
	"database/sql"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

// BenchmarkInsertDelete_SliceSeq exercises the same insert/delete-pair
// pattern as the stress scenario, without the invariant check, purely
// for throughput comparison against a naive SQLite BLOB column below.
func BenchmarkInsertDelete_SliceSeq(b *testing.B) {
	tbl := New()
	tbl.Insert(0, make([]byte, 4096))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		pos := int64(i % 4000)
		tbl.Delete(pos, 5)
		tbl.Insert(pos, []byte("thang"))
	}
}

// BenchmarkInsertDelete_SQLiteBLOB performs the same byte-level edits
// against a single-row BLOB column in SQLite, via full read/splice/write
// round-trips (SELECT the BLOB, splice in Go, UPDATE it back) — the naive
// alternative to a purpose-built sequence structure that pkg/sliceseq
// exists to beat.
func BenchmarkInsertDelete_SQLiteBLOB(b *testing.B) {
	dbPath := filepath.Join(b.TempDir(), "bench.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		b.Fatalf("open sqlite3: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec("CREATE TABLE doc (id INTEGER PRIMARY KEY, content BLOB)"); err != nil {
		b.Fatalf("create table: %v", err)
	}
	if _, err := db.Exec("INSERT INTO doc (id, content) VALUES (1, ?)", make([]byte, 4096)); err != nil {
		b.Fatalf("seed row: %v", err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		pos := i%4000 + 1 // SQLite substr is 1-indexed
		var content []byte
		if err := db.QueryRow("SELECT content FROM doc WHERE id = 1").Scan(&content); err != nil {
			b.Fatalf("select: %v", err)
		}
		spliced := append(append(append([]byte{}, content[:pos-1]...), []byte("thang")...), content[pos+4:]...)
		if _, err := db.Exec("UPDATE doc SET content = ? WHERE id = 1", spliced); err != nil {
			b.Fatalf("update: %v", err)
		}
	}
}
