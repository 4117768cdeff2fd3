package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Plisp/libpt/pkg/sliceseq"
)

func writeTempScript(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "script.hujson")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadScriptParsesJSONC(t *testing.T) {
	path := writeTempScript(t, `[
		{"op": "insert", "pos": 0, "text": "hello"}, // seed content
		{"op": "delete", "pos": 2, "len": 1},
	]`)

	ops, err := loadScript(path)
	require.NoError(t, err)
	require.Len(t, ops, 2)
	require.Equal(t, "insert", ops[0].Op)
	require.Equal(t, int64(0), ops[0].Pos)
	require.Equal(t, "hello", ops[0].Text)
	require.Equal(t, "delete", ops[1].Op)
	require.Equal(t, int64(2), ops[1].Pos)
	require.Equal(t, int64(1), ops[1].Len)
}

func TestLoadScriptRejectsInvalidJSON(t *testing.T) {
	path := writeTempScript(t, `not json at all`)
	_, err := loadScript(path)
	require.Error(t, err)
}

func TestRunScriptAppliesOpsInOrder(t *testing.T) {
	tbl := sliceseq.New()
	ops := []editOp{
		{Op: "insert", Pos: 0, Text: "abcdef"},
		{Op: "delete", Pos: 2, Len: 2},
		{Op: "insert", Pos: 2, Text: "XY"},
	}
	require.NoError(t, runScript(tbl, ops))

	var buf bytes.Buffer
	require.NoError(t, tbl.Dump(&buf))
	require.Equal(t, "abXYef", buf.String())
}

func TestRunScriptStopsAtFirstError(t *testing.T) {
	tbl := sliceseq.New()
	ops := []editOp{
		{Op: "insert", Pos: 0, Text: "abc"},
		{Op: "bogus"},
		{Op: "insert", Pos: 0, Text: "should not run"},
	}
	err := runScript(tbl, ops)
	require.Error(t, err)
	require.Contains(t, err.Error(), "bogus")
}
