package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/Nico59000/Ternary-image-codec/internal/container"
)

func cmdDecode(args []string) error {
	fs := flag.NewFlagSet("decode", flag.ContinueOnError)
	out := fs.String("out", "", "output raw image path (RIMG format)")
	packingFlag := fs.String("packing", "pair", "pixel packing used at encode time: pair|singleton")
	policyPath := fs.String("policy", "", "policy config yaml; gates the read on meta approval")
	if err := fs.Parse(args); err != nil {
		return &usageError{err}
	}
	if fs.NArg() != 1 {
		return newUsageError("decode: exactly one input file is required")
	}
	if *out == "" {
		return newUsageError("decode: --out is required")
	}

	packing, err := parsePackingFlag(*packingFlag)
	if err != nil {
		return err
	}
	approve, err := buildApprove(*policyPath)
	if err != nil {
		return err
	}

	f, err := os.Open(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	r, err := container.NewT3PReader(f, approve)
	if err != nil {
		return fmt.Errorf("read t3p: %w", err)
	}
	if !r.Approved() {
		return fmt.Errorf("decode: %w", container.ErrNotApproved)
	}
	words, err := r.ReadWords()
	if err != nil {
		return fmt.Errorf("read words: %w", err)
	}

	h := r.Header()
	img, err := wordsToImage(words, int(h.W), int(h.H), packing)
	if err != nil {
		return err
	}
	if err := WriteRawImage(*out, img); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	fmt.Printf("wrote %s: %dx%d\n", *out, img.W, img.H)
	return nil
}
