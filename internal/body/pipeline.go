package body

import (
	"github.com/Nico59000/Ternary-image-codec/internal/gf27"
	"github.com/Nico59000/Ternary-image-codec/internal/header"
	"github.com/Nico59000/Ternary-image-codec/internal/pixel"
)

// Plan captures the geometry a body encode/decode pair needs to agree
// on beyond what travels in the header symbols themselves: how many
// RAW words the frame spans (the header carries tile/UEP/scrambler/beacon
// fields, but word count is a container-level fact carried alongside the
// frame), and the health flag that goes into the beacon value.
type Plan struct {
	NumWords int
	Health   uint8
}

// EncodeBody runs the full body pipeline in its fixed stage order:
// extract useful symbols, 2D interleave (P5 only), band split, per-band
// RS encode, scramble, beacon insert.
func EncodeBody(words []pixel.Word27Trits, h *header.Header, codecs *Codecs, plan Plan) ([]gf27.Elem, error) {
	useful := ExtractUseful(words)
	if h.ProfileID == header.ProfileP5 {
		useful = Interleave2D(useful, int(h.TileW), int(h.TileH))
	}
	bands := SplitBands(useful)
	encoded, err := EncodeBands(bands, h.UEP, codecs)
	if err != nil {
		return nil, err
	}
	scrambled := Scramble(encoded, h.ScramblerSeedA, h.ScramblerSeedB, h.ScramblerSeedS0)
	final := InsertBeacons(scrambled, h.BeaconEnabled, int(h.BeaconPeriod), int(h.BeaconSlot), uint8(h.ProfileID), h.FrameSeq, plan.Health)
	return final, nil
}

// DecodeBody reverses EncodeBody in the mirrored stage order: beacon
// values are read out for telemetry (their RS-correction happens
// implicitly inside DecodeBands), then descramble, per-band RS decode,
// band merge, 2D deinterleave (P5 only), and RAW word reinsertion.
func DecodeBody(transport []gf27.Elem, h *header.Header, codecs *Codecs, plan Plan) ([]pixel.Word27Trits, []gf27.Elem, error) {
	beacons := ExtractBeacons(transport, h.BeaconEnabled, int(h.BeaconPeriod), int(h.BeaconSlot))
	stream := Descramble(transport, h.ScramblerSeedA, h.ScramblerSeedB, h.ScramblerSeedS0)

	usefulTotal := UsefulSymbolCount(plan.NumWords)
	bandCounts := BandUsefulCounts(usefulTotal)
	bands, err := DecodeBands(stream, h.UEP, codecs, bandCounts)
	if err != nil {
		return nil, beacons, err
	}
	useful := MergeBands(bands, usefulTotal)

	if h.ProfileID == header.ProfileP5 {
		useful = Deinterleave2D(useful, int(h.TileW), int(h.TileH))
	}

	tritCount := UsefulTritCount(plan.NumWords)
	words := ReinsertUseful(useful, plan.NumWords, tritCount)
	return words, beacons, nil
}

// BuildCodecs is a convenience wrapper around NewCodecs for callers
// that only have GF(27) tables in hand.
func BuildCodecs(gf *gf27.Tables) (*Codecs, error) {
	return NewCodecs(gf)
}
