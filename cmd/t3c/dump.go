package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/Nico59000/Ternary-image-codec/internal/gf27"
	"github.com/Nico59000/Ternary-image-codec/internal/header"
)

// cmdDump reads a raw 27-byte superframe header dump (one byte per
// GF(27) symbol, value in [0,26]) and reports its CRC-12 and parity
// mod 3, per the dumper contract. PNG extraction is not implemented
// here: image encoding/decoding is an external adapter's job (see
// rawimage.go), not this core's.
func cmdDump(args []string) error {
	fs := flag.NewFlagSet("dump", flag.ContinueOnError)
	extractPNG := fs.Bool("extract-png", false, "extract an embedded frame as PNG (not supported by this core)")
	if err := fs.Parse(args); err != nil {
		return &usageError{err}
	}
	if fs.NArg() != 1 {
		return newUsageError("dump: exactly one symbols file is required")
	}
	if *extractPNG {
		return fmt.Errorf("dump: PNG extraction is an external adapter concern, not implemented by this core")
	}

	raw, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("read symbols file: %w", err)
	}
	if len(raw) != 27 {
		return newUsageError("dump: expected 27 symbol bytes, got %d", len(raw))
	}

	var sym [27]gf27.Elem
	for i, b := range raw {
		if b > 26 {
			return newUsageError("dump: symbol %d value %d out of GF(27) range", i, b)
		}
		sym[i] = gf27.Elem(b)
	}

	ok := header.Verify(sym)
	fmt.Printf("crc12: %s\n", passFail(ok))
	fmt.Printf("parity_mod3: %d\n", parityMod3(sym))

	if ok {
		h, err := header.Unmarshal(sym)
		if err != nil {
			return fmt.Errorf("unmarshal header: %w", err)
		}
		fmt.Printf("version: %d\nprofile: %d\nuep: %v\ntile: %dx%d\nsubword: %s\ncentered: %v\ncoset: %d\nframe_seq: %d\nbeacon_enabled: %v\nbeacon_slot: %d\nbeacon_period: %d\n",
			h.Version, h.ProfileID, h.UEP, h.TileW, h.TileH, subwordString(h.Subword),
			h.Centered, h.Coset, h.FrameSeq, h.BeaconEnabled, h.BeaconSlot, h.BeaconPeriod)
	}
	return nil
}

func passFail(ok bool) string {
	if ok {
		return "OK"
	}
	return "MISMATCH"
}

// parityMod3 sums every symbol's three base-3 digits mod 3, a cheap
// checksum distinct from the CRC-12 proper.
func parityMod3(sym [27]gf27.Elem) uint8 {
	var sum uint32
	for _, e := range sym {
		v := uint32(e)
		sum += v%3 + (v/3)%3 + (v/9)%3
	}
	return uint8(sum % 3)
}
