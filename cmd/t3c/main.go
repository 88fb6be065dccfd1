// Command t3c is a command-line front end over the ternary codec
// core: it builds and inspects `.t3p`/`.t3v`/`.t3proto` containers and
// exercises the GF(27)/RS/header/body transport pipeline.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/Nico59000/Ternary-image-codec/internal/tlog"
)

const usage = `t3c - ternary image/video codec tool

Usage:
  t3c encode      --out <file> [--in <rawimg>] [--testpattern WxH] [--packing pair|singleton] [--domain <d>]
  t3c decode      <file.t3p> --out <rawimg> [--policy <config.yaml>]
  t3c info        <file>
  t3c export-bal  <file.t3proto> --out <bin>
  t3c export-unb  <file.t3proto> --out <bin>
  t3c repack      <file.t3proto> --to packed|balanced --out <file>
  t3c cat         --out <merged.t3proto> <a> <b> ...
  t3c transport   <file.t3p> [--profile p1|p2|p3|p5] [--tile WxH] [--beacon] [--inject-errors N]
  t3c dump        <symbols-file>

Exit codes: 0 success, 1 I/O or integrity failure, 2 usage error.
`

// usageError marks an error that should exit with code 2 rather than 1.
type usageError struct{ err error }

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

func newUsageError(format string, a ...interface{}) error {
	return &usageError{err: fmt.Errorf(format, a...)}
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		fmt.Print(usage)
		return 2
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var wg sync.WaitGroup
	logger := tlog.NewLogger(&wg)
	logger.Start(ctx)
	go logger.LogToStdout(ctx)
	time.Sleep(10 * time.Millisecond)

	var err error
	switch args[0] {
	case "encode":
		err = cmdEncode(args[1:])
	case "decode":
		err = cmdDecode(args[1:])
	case "info":
		err = cmdInfo(args[1:])
	case "export-bal":
		err = cmdExport(args[1:], true)
	case "export-unb":
		err = cmdExport(args[1:], false)
	case "repack":
		err = cmdRepack(args[1:])
	case "cat":
		err = cmdCat(args[1:])
	case "transport":
		err = cmdTransport(args[1:])
	case "dump":
		err = cmdDump(args[1:])
	case "-h", "--help", "help":
		fmt.Print(usage)
		return 0
	default:
		fmt.Fprintf(os.Stderr, "t3c: unknown command %q\n\n", args[0])
		fmt.Print(usage)
		return 2
	}

	code := 0
	switch {
	case err == nil:
		logger.Info().Src("t3c").Msgf("%s: done", args[0])
	default:
		var uerr *usageError
		if errors.As(err, &uerr) {
			code = 2
		} else {
			code = 1
		}
		logger.Error().Src("t3c").Msgf("%s: %v", args[0], err)
	}

	// Let the log feed flush before stopping the dispatcher.
	time.Sleep(10 * time.Millisecond)
	cancel()
	wg.Wait()
	return code
}
