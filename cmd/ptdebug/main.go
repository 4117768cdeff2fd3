// Command ptdebug is a debug harness for pkg/sliceseq: it loads a file
// into a Table and either plays back a JSONC batch script of
// insert/delete ops or drops into an interactive line-editor shell for
// ad hoc insert/delete/dump/clone/stats/tree commands.
//
// Usage:
//
//	ptdebug [--script path.hujson] [--check] [--tree] <file>
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	flag "github.com/spf13/pflag"
	"github.com/peterh/liner"

	"github.com/Plisp/libpt/pkg/sliceseq"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "ptdebug: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		scriptPath = flag.String("script", "", "path to a JSONC batch edit script")
		check      = flag.Bool("check", false, "run the invariant checker and exit")
		tree       = flag.Bool("tree", false, "render the tree shape and exit")
		out        = flag.String("out", "", "dump the final content to this path, atomically")
	)
	flag.Parse()

	if flag.NArg() < 1 {
		return fmt.Errorf("usage: ptdebug [flags] <file>")
	}
	path := flag.Arg(0)

	tbl, err := sliceseq.NewFromFile(path)
	if err != nil {
		return fmt.Errorf("loading %q: %w", path, err)
	}
	defer tbl.Free()

	if *scriptPath != "" {
		ops, err := loadScript(*scriptPath)
		if err != nil {
			return err
		}
		if err := runScript(tbl, ops); err != nil {
			return err
		}
	}

	switch {
	case *check:
		if err := sliceseq.CheckInvariants(tbl); err != nil {
			return err
		}
		fmt.Println("invariants hold")
	case *tree:
		fmt.Println(sliceseq.RenderTree(tbl))
	case *scriptPath == "":
		if err := repl(tbl); err != nil {
			return err
		}
	}

	if *out != "" {
		if err := tbl.DumpToFile(*out); err != nil {
			return fmt.Errorf("dumping to %q: %w", *out, err)
		}
	}
	return nil
}

// repl runs an interactive shell over tbl using liner for line editing
// and history. Mutations happen on tbl directly; "clone" spins off an
// independent handle the session can switch to.
func repl(tbl *sliceseq.Table) error {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	fmt.Println("ptdebug interactive shell. Type 'help' for commands, 'exit' to quit.")
	for {
		input, err := line.Prompt("ptdebug> ")
		if err != nil {
			if err == liner.ErrPromptAborted || err == io.EOF {
				return nil
			}
			return err
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		line.AppendHistory(input)

		if done, err := dispatch(&tbl, input); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		} else if done {
			return nil
		}
	}
}

func dispatch(tblp **sliceseq.Table, input string) (exit bool, err error) {
	fields := strings.Fields(input)
	cmd := fields[0]
	args := fields[1:]
	tbl := *tblp

	switch cmd {
	case "exit", "quit", "q":
		return true, nil
	case "help":
		printHelp()
	case "insert":
		if len(args) < 2 {
			return false, fmt.Errorf("usage: insert <pos> <text>")
		}
		pos, perr := strconv.ParseInt(args[0], 10, 64)
		if perr != nil {
			return false, perr
		}
		text := strings.Join(args[1:], " ")
		lf, ierr := tbl.Insert(pos, []byte(text))
		if ierr != nil {
			return false, ierr
		}
		fmt.Printf("ok, lf=%d size=%d\n", lf, tbl.Size())
	case "delete":
		if len(args) < 2 {
			return false, fmt.Errorf("usage: delete <pos> <len>")
		}
		pos, perr := strconv.ParseInt(args[0], 10, 64)
		if perr != nil {
			return false, perr
		}
		n, lerr := strconv.ParseInt(args[1], 10, 64)
		if lerr != nil {
			return false, lerr
		}
		lf, derr := tbl.Delete(pos, n)
		if derr != nil {
			return false, derr
		}
		fmt.Printf("ok, lf=%d size=%d\n", lf, tbl.Size())
	case "dump":
		if err := tbl.Dump(os.Stdout); err != nil {
			return false, err
		}
		fmt.Println()
	case "clone":
		*tblp = tbl.Clone()
		fmt.Println("switched to a clone of the current table")
	case "stats":
		fmt.Printf("size=%d\n", tbl.Size())
	case "check":
		if err := sliceseq.CheckInvariants(tbl); err != nil {
			return false, err
		}
		fmt.Println("invariants hold")
	case "tree":
		fmt.Println(sliceseq.RenderTree(tbl))
	default:
		return false, fmt.Errorf("unknown command %q (try 'help')", cmd)
	}
	return false, nil
}

func printHelp() {
	fmt.Println(`commands:
  insert <pos> <text>   insert text at byte offset pos
  delete <pos> <len>    delete len bytes starting at pos
  dump                  print the current content
  clone                 switch the session to an independent snapshot
  stats                 print the current size
  check                 run the invariant checker
  tree                  render the tree's node shape
  exit | quit | q        leave the shell`)
}
