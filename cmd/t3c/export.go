package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/Nico59000/Ternary-image-codec/internal/container"
	"github.com/Nico59000/Ternary-image-codec/internal/trit"
)

// cmdExport implements export-bal and export-unb: both write one raw
// byte per trit (balanced in {-1,0,1} or unbalanced in {0,1,2}), as
// opposed to the base-243 packed form a `.t3proto` file may also carry.
func cmdExport(args []string, balanced bool) error {
	name := "export-unb"
	if balanced {
		name = "export-bal"
	}
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	out := fs.String("out", "", "output raw trit dump path")
	if err := fs.Parse(args); err != nil {
		return &usageError{err}
	}
	if fs.NArg() != 1 {
		return newUsageError("%s: exactly one input file is required", name)
	}
	if *out == "" {
		return newUsageError("%s: --out is required", name)
	}

	f, err := os.Open(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	h, _, bal, packed, err := container.ReadT3Proto(f)
	if err != nil {
		return fmt.Errorf("read t3proto: %w", err)
	}

	unb, err := resolveUnbalanced(h, bal, packed)
	if err != nil {
		return err
	}

	var raw []byte
	if balanced {
		bal := trit.UnbalancedToBalanced(unb)
		raw = make([]byte, len(bal))
		for i, t := range bal {
			raw[i] = byte(int8(t))
		}
	} else {
		raw = make([]byte, len(unb))
		for i, t := range unb {
			raw[i] = byte(t)
		}
	}

	if err := os.WriteFile(*out, raw, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	fmt.Printf("wrote %s: %d trits\n", *out, len(raw))
	return nil
}

// resolveUnbalanced returns the blob's trits in unbalanced form,
// preferring the stored balanced payload and falling back to unpacking
// the packed payload when only that is present.
func resolveUnbalanced(h container.T3ProtoHeader, bal []trit.Balanced, packed []byte) ([]trit.Unbalanced, error) {
	if len(bal) > 0 {
		return trit.BalancedToUnbalanced(bal), nil
	}
	if len(packed) > 0 {
		return trit.Unpack243(packed, int(h.NTrits))
	}
	return nil, fmt.Errorf("t3proto has neither balanced nor packed payload")
}
