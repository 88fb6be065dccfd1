package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"

	"github.com/Nico59000/Ternary-image-codec/internal/container"
	"github.com/Nico59000/Ternary-image-codec/internal/trit"
)

// cmdCat concatenates the trit streams of one or more .t3proto files
// into a single merged .t3proto, carrying both balanced and packed
// forms regardless of what the inputs carried.
func cmdCat(args []string) error {
	fs := flag.NewFlagSet("cat", flag.ContinueOnError)
	out := fs.String("out", "", "output merged .t3proto path")
	if err := fs.Parse(args); err != nil {
		return &usageError{err}
	}
	if *out == "" {
		return newUsageError("cat: --out is required")
	}
	if fs.NArg() < 1 {
		return newUsageError("cat: at least one input file is required")
	}

	var merged []trit.Unbalanced
	var first container.T3ProtoHeader
	haveFirst := false

	for _, path := range fs.Args() {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open %s: %w", path, err)
		}
		h, _, bal, packed, err := container.ReadT3Proto(f)
		f.Close()
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		if !haveFirst {
			first = h
			haveFirst = true
		}
		unb, err := resolveUnbalanced(h, bal, packed)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		merged = append(merged, unb...)
	}

	balanced := trit.UnbalancedToBalanced(merged)
	packed, err := trit.Pack243(merged)
	if err != nil {
		return fmt.Errorf("pack243: %w", err)
	}

	meta := []byte(fmt.Sprintf(`{"cat_inputs":%d}`, fs.NArg()))
	h := container.T3ProtoHeader{
		Version: first.Version,
		Profile: first.Profile,
		Flags:   container.FlagBalPresent | container.FlagPackPresent,
		W:       first.W,
		H:       first.H,
		NTrits:  uint32(len(merged)),
		NBytes:  uint32(len(packed)),
		MetaLen: uint16(len(meta)),
	}

	var buf bytes.Buffer
	if err := container.WriteT3Proto(&buf, h, meta, balanced, packed); err != nil {
		return fmt.Errorf("write t3proto: %w", err)
	}
	if err := os.WriteFile(*out, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	fmt.Printf("wrote %s: %d trits from %d inputs\n", *out, len(merged), fs.NArg())
	return nil
}
