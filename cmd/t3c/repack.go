package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"

	"github.com/Nico59000/Ternary-image-codec/internal/container"
	"github.com/Nico59000/Ternary-image-codec/internal/trit"
)

func cmdRepack(args []string) error {
	fs := flag.NewFlagSet("repack", flag.ContinueOnError)
	to := fs.String("to", "", "target representation: packed|balanced")
	out := fs.String("out", "", "output .t3proto path")
	if err := fs.Parse(args); err != nil {
		return &usageError{err}
	}
	if fs.NArg() != 1 {
		return newUsageError("repack: exactly one input file is required")
	}
	if *out == "" {
		return newUsageError("repack: --out is required")
	}

	f, err := os.Open(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	h, meta, bal, packed, err := container.ReadT3Proto(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("read t3proto: %w", err)
	}

	unb, err := resolveUnbalanced(h, bal, packed)
	if err != nil {
		return err
	}

	switch *to {
	case "balanced":
		h.Flags = container.FlagBalPresent
		bal = trit.UnbalancedToBalanced(unb)
		packed = nil
		h.NBytes = 0
	case "packed":
		h.Flags = container.FlagPackPresent
		packed, err = trit.Pack243(unb)
		if err != nil {
			return fmt.Errorf("pack243: %w", err)
		}
		bal = nil
		h.NBytes = uint32(len(packed))
	default:
		return newUsageError("repack: --to must be packed|balanced, got %q", *to)
	}
	h.NTrits = uint32(len(unb))

	var buf bytes.Buffer
	if err := container.WriteT3Proto(&buf, h, meta, bal, packed); err != nil {
		return fmt.Errorf("write t3proto: %w", err)
	}
	if err := os.WriteFile(*out, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	fmt.Printf("wrote %s: %s, %d trits\n", *out, *to, len(unb))
	return nil
}
