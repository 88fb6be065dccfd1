package body

import "github.com/Nico59000/Ternary-image-codec/internal/gf27"

const wordWidth = 9

// BeaconValue computes the sparse beacon payload: (profile + 5*fsq5 +
// 15*hflag) mod 27, where fsq5 is the frame sequence mod 5 and hflag is
// a 3-valued health flag.
func BeaconValue(profile uint8, frameSeq uint32, health uint8) gf27.Elem {
	fsq5 := uint32(frameSeq % 5)
	return gf27.Elem((uint32(profile) + 5*fsq5 + 15*uint32(health%3)) % 27)
}

// beaconPositions lists the flat symbol indices, in a word-grouped
// (9-symbol) stream, that carry a beacon: every P-th word reserves
// slot s, counting words from the start of the stream.
func beaconPositions(streamLen int, period int, slot int) []int {
	if period <= 0 {
		return nil
	}
	var out []int
	numWords := (streamLen + wordWidth - 1) / wordWidth
	for w := 0; w < numWords; w++ {
		if w%period != 0 {
			continue
		}
		idx := w*wordWidth + slot
		if idx < streamLen {
			out = append(out, idx)
		}
	}
	return out
}

// InsertBeacons overwrites slot s of every P-th word with the beacon
// value, returning a new stream (the input is not mutated). The position
// is taken over the whole scrambled stream, so the overwritten symbol
// may be a data or a parity symbol of a band RS codeword; no slot is
// reserved for it and the decoder does not strip it. Each beacon is at
// most one symbol error in the codeword it falls in and uses that
// codeword's correction budget: decoding fails when beacons (a period
// under 3 words can put more than one in a 26-symbol codeword) plus
// channel errors exceed t.
func InsertBeacons(stream []gf27.Elem, enabled bool, period int, slot int, profile uint8, frameSeq uint32, health uint8) []gf27.Elem {
	out := make([]gf27.Elem, len(stream))
	copy(out, stream)
	if !enabled {
		return out
	}
	val := BeaconValue(profile, frameSeq, health)
	for _, idx := range beaconPositions(len(stream), period, slot) {
		out[idx] = val
	}
	return out
}

// ExtractBeacons reads the beacon values at their reserved positions
// for telemetry use; it does not modify the stream. Callers pass the
// stream straight into descrambling and band decode afterward; the
// beacon's overwrite is corrected there as an ordinary RS error.
func ExtractBeacons(stream []gf27.Elem, enabled bool, period int, slot int) []gf27.Elem {
	if !enabled {
		return nil
	}
	var out []gf27.Elem
	for _, idx := range beaconPositions(len(stream), period, slot) {
		out = append(out, stream[idx])
	}
	return out
}
