package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"

	"github.com/Nico59000/Ternary-image-codec/internal/body"
	"github.com/Nico59000/Ternary-image-codec/internal/container"
	"github.com/Nico59000/Ternary-image-codec/internal/gf27"
	"github.com/Nico59000/Ternary-image-codec/internal/header"
	"github.com/Nico59000/Ternary-image-codec/internal/rs27"
)

// cmdTransport runs a `.t3p` file's words through the full header and
// body transport pipeline (interleave/band/RS/scramble/beacon) and
// back, optionally corrupting symbols first to exercise RS correction.
// Containers store raw words, so this is the one CLI path that
// exercises the GF(27)/RS/header/body transport core end to end.
func cmdTransport(args []string) error {
	fs := flag.NewFlagSet("transport", flag.ContinueOnError)
	profileFlag := fs.String("profile", "p2", "band profile: p1|p2|p3|p5")
	tileFlag := fs.String("tile", "", "WxH tile, required for --profile p5")
	beacon := fs.Bool("beacon", false, "enable beacon insertion")
	injectErrors := fs.Int("inject-errors", 0, "number of transport symbols to corrupt before decode")
	seed := fs.Int64("seed", 1, "PRNG seed for error injection")
	if err := fs.Parse(args); err != nil {
		return &usageError{err}
	}
	if fs.NArg() != 1 {
		return newUsageError("transport: exactly one .t3p file is required")
	}

	f, err := os.Open(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	r, err := container.NewT3PReader(f, nil)
	f.Close()
	if err != nil {
		return fmt.Errorf("read t3p: %w", err)
	}
	words, err := r.ReadWords()
	if err != nil {
		return fmt.Errorf("read words: %w", err)
	}

	uepIndex, profileID, err := parseTransportProfile(*profileFlag)
	if err != nil {
		return err
	}
	tileW, tileH := 1, 1
	if profileID == header.ProfileP5 {
		if _, err := fmt.Sscanf(*tileFlag, "%dx%d", &tileW, &tileH); err != nil {
			return newUsageError("transport: --profile p5 requires --tile WxH")
		}
	}

	var uep [9]uint8
	for i := range uep {
		uep[i] = uepIndex
	}

	h := &header.Header{
		Version:         0,
		ProfileID:       profileID,
		UEP:             uep,
		TileW:           uint8(tileW),
		TileH:           uint8(tileH),
		ScramblerSeedA:  1,
		ScramblerSeedB:  1,
		ScramblerSeedS0: 0,
		Subword:         header.S27,
		BandMapHash:     header.BandMapHash3(uint8(tileW), uint8(tileH), uep),
		FrameSeq:        0,
		BeaconEnabled:   *beacon,
		BeaconSlot:      0,
		BeaconPeriod:    64,
	}

	gf, err := gf27.New()
	if err != nil {
		return fmt.Errorf("build gf27 tables: %w", err)
	}
	codecs, err := body.BuildCodecs(gf)
	if err != nil {
		return fmt.Errorf("build rs codecs: %w", err)
	}
	hdrK, _ := header.ProfileHdr.K()
	hdrCodec, err := rs27.New(gf, hdrK)
	if err != nil {
		return fmt.Errorf("build header codec: %w", err)
	}

	plan := body.Plan{NumWords: len(words)}
	transport, err := body.EncodeFrame(words, h, hdrCodec, codecs, plan)
	if err != nil {
		return fmt.Errorf("encode frame: %w", err)
	}
	fmt.Printf("encoded %d words into %d transport symbols (%d header words)\n", len(words), len(transport), body.HeaderWords)

	if *injectErrors > 0 {
		rng := rand.New(rand.NewSource(*seed))
		corrupted := map[int]bool{}
		for len(corrupted) < *injectErrors && len(corrupted) < len(transport) {
			idx := rng.Intn(len(transport))
			if corrupted[idx] {
				continue
			}
			corrupted[idx] = true
			var bad gf27.Elem
			for {
				bad = gf27.Elem(rng.Intn(27))
				if bad != transport[idx] {
					break
				}
			}
			transport[idx] = bad
		}
		fmt.Printf("corrupted %d transport symbols\n", len(corrupted))
	}

	_, decodedWords, beacons, err := body.DecodeFrame(transport, hdrCodec, codecs, plan)
	if err != nil {
		return fmt.Errorf("decode frame: %w", err)
	}

	mismatches := 0
	for i := range words {
		if words[i] != decodedWords[i] {
			mismatches++
		}
	}
	fmt.Printf("decoded %d words, %d mismatched, %d beacon values read\n", len(decodedWords), mismatches, len(beacons))
	if mismatches == 0 {
		fmt.Println("round trip: OK")
	} else {
		fmt.Println("round trip: MISMATCH")
	}
	return nil
}

func parseTransportProfile(s string) (uepIndex uint8, profileID header.Profile, err error) {
	switch s {
	case "p1":
		return 0, header.ProfileP1, nil
	case "p2":
		return 1, header.ProfileP2, nil
	case "p3":
		return 2, header.ProfileP3, nil
	case "p5":
		return 1, header.ProfileP5, nil
	default:
		return 0, 0, newUsageError("transport: --profile must be p1|p2|p3|p5, got %q", s)
	}
}
