package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/Nico59000/Ternary-image-codec/internal/container"
)

func cmdEncode(args []string) error {
	fs := flag.NewFlagSet("encode", flag.ContinueOnError)
	in := fs.String("in", "", "path to a raw image (RIMG format, see rawimage.go)")
	testPattern := fs.String("testpattern", "", "WxH: synthesize a gradient test image instead of --in")
	out := fs.String("out", "", "output .t3p path")
	packingFlag := fs.String("packing", "pair", "pixel packing: pair|singleton")
	domain := fs.String("domain", "", "meta 'domain' field, for policy-gated reads")
	subword := fs.String("subword", "s27", "subword tag: s27|s24|s21|s18|s15")
	if err := fs.Parse(args); err != nil {
		return &usageError{err}
	}
	if *out == "" {
		return newUsageError("encode: --out is required")
	}

	var img *RawImage
	var err error
	switch {
	case *in != "":
		img, err = ReadRawImage(*in)
		if err != nil {
			return err
		}
	case *testPattern != "":
		var w, h int
		if _, err := fmt.Sscanf(*testPattern, "%dx%d", &w, &h); err != nil || w <= 0 || h <= 0 {
			return newUsageError("encode: --testpattern must be WxH, got %q", *testPattern)
		}
		img = TestPattern(w, h)
	default:
		return newUsageError("encode: one of --in or --testpattern is required")
	}

	packing, err := parsePackingFlag(*packingFlag)
	if err != nil {
		return err
	}
	sub, err := parseSubwordFlag(*subword)
	if err != nil {
		return err
	}

	words := imageToWords(img, packing)

	meta := []byte(fmt.Sprintf(`{"domain":%q,"packing":%q}`, *domain, *packingFlag))
	h := container.T3PHeader{
		Version:    0,
		Subword:    sub,
		W:          uint16(img.W),
		H:          uint16(img.H),
		MetaLen:    uint16(len(meta)),
		WordsCount: uint32(len(words)),
	}

	f, err := os.Create(*out)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer f.Close()

	w, err := container.NewT3PWriter(f, h, meta)
	if err != nil {
		return fmt.Errorf("write t3p header: %w", err)
	}
	if err := w.WriteWords(words); err != nil {
		return fmt.Errorf("write t3p words: %w", err)
	}

	fmt.Printf("wrote %s: %dx%d, %d words, packing=%s\n", *out, img.W, img.H, len(words), *packingFlag)
	return nil
}
