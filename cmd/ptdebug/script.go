package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tailscale/hujson"

	"github.com/Plisp/libpt/pkg/sliceseq"
)

// editOp is one step of a batch edit script. Scripts are JSONC
// (JSON-with-comments) via hujson, so a script file can annotate each
// step:
//
//	[
//	  {"op": "insert", "pos": 0, "text": "hello"}, // seed content
//	  {"op": "delete", "pos": 2, "len": 1},
//	]
type editOp struct {
	Op   string `json:"op"`
	Pos  int64  `json:"pos"`
	Text string `json:"text"`
	Len  int64  `json:"len"`
}

func loadScript(path string) ([]editOp, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading script: %w", err)
	}
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return nil, fmt.Errorf("invalid JSONC script: %w", err)
	}
	var ops []editOp
	if err := json.Unmarshal(standardized, &ops); err != nil {
		return nil, fmt.Errorf("invalid script: %w", err)
	}
	return ops, nil
}

// runScript applies each op in order, printing a one-line summary of
// its effect. It stops at the first error.
func runScript(tbl *sliceseq.Table, ops []editOp) error {
	for i, op := range ops {
		switch op.Op {
		case "insert":
			lf, err := tbl.Insert(op.Pos, []byte(op.Text))
			if err != nil {
				return fmt.Errorf("op %d (insert): %w", i, err)
			}
			fmt.Printf("insert pos=%d len=%d lf=%d size=%d\n", op.Pos, len(op.Text), lf, tbl.Size())
		case "delete":
			lf, err := tbl.Delete(op.Pos, op.Len)
			if err != nil {
				return fmt.Errorf("op %d (delete): %w", i, err)
			}
			fmt.Printf("delete pos=%d len=%d lf=%d size=%d\n", op.Pos, op.Len, lf, tbl.Size())
		default:
			return fmt.Errorf("op %d: unknown op %q", i, op.Op)
		}
		if err := sliceseq.CheckInvariants(tbl); err != nil {
			return fmt.Errorf("op %d: invariants broken: %w", i, err)
		}
	}
	return nil
}
