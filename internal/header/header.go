// Package header implements the 27-symbol superframe header: its field
// layout, the ternary CRC-12 that protects it, and its RS(26,18)
// transport encoding.
package header

import (
	"fmt"

	"github.com/Nico59000/Ternary-image-codec/internal/gf27"
)

// Profile names the per-frame or per-band error-correction profile.
type Profile uint8

// Profile values for RS coding strength.
const (
	ProfileP1 Profile = iota // RS(26,24)
	ProfileP2                // RS(26,22)
	ProfileP3                // RS(26,20)
	ProfileP4                // RS(26,18)
	ProfileP5                // P2 + 2D interleave
	ProfileRAW
	ProfileHdr // RS(26,18), header transport itself
)

// K returns the RS data-symbol count for profiles that carry one
// (P1-P4, P5, Hdr); RAW has no ECC and K is undefined for it.
func (p Profile) K() (int, bool) {
	switch p {
	case ProfileP1:
		return 24, true
	case ProfileP2, ProfileP5:
		return 22, true
	case ProfileP3:
		return 20, true
	case ProfileP4, ProfileHdr:
		return 18, true
	default:
		return 0, false
	}
}

// SubwordMode is the logical stream width, tagging a stream without
// changing RS mechanics.
type SubwordMode uint8

// Subword modes: logical width codes tagging the stream's target resolution.
const (
	S27 SubwordMode = iota
	S24
	S21
	S18
	S15
)

// Coset is a per-frame label, opaque to the core.
type Coset uint8

// Coset values.
const (
	C0 Coset = iota
	C1
	C2
)

// Header is the in-memory form of the 27-symbol superframe header.
//
// Band-profile values in UEP are restricted to {0,1,2} (P1, P2, P3):
// the header packs all nine UEP selectors into 3 GF(27) symbols, i.e.
// 9 trits, and 9 trits can only distinguish 3^9 combinations, too few
// for nine independent 4-valued choices (4^9). A 4th, whole-frame
// profile remains available via ProfileID; see DESIGN.md.
type Header struct {
	Version   uint8
	ProfileID Profile
	UEP       [9]uint8 // each in {0,1,2}, indexing [ProfileP1,ProfileP2,ProfileP3]
	TileW     uint8    // stored mod 27, one GF(27) symbol
	TileH     uint8    // stored mod 27

	// ScramblerSeedA/B/S0 are taken mod 3; the scrambler's affine state
	// evolves as st <- (a*st + b) mod 3, starting from s0.
	ScramblerSeedA  uint8
	ScramblerSeedB  uint8
	ScramblerSeedS0 uint8

	Subword  SubwordMode
	Centered bool

	// BandMapHash is an opaque 3-symbol fingerprint of the band layout,
	// computed by BandMapHash3 and checked for equality on decode.
	BandMapHash [3]gf27.Elem
	Coset       Coset
	FrameSeq    uint32 // stored mod 19683 (3^9)

	BeaconEnabled bool
	BeaconSlot    uint8  // [0, 9)
	BeaconPeriod  uint16 // stored mod 729 (3^6)
}

// HeaderMagic is the fixed 2-symbol magic carried at indices {0, 1}.
var HeaderMagic = [2]gf27.Elem{7, 19}

const numSymbols = 27

// crcSymbolIndices are the four CRC-bearing symbol positions.
var crcSymbolIndices = [4]int{20, 21, 22, 26}

func isCRCIndex(i int) bool {
	for _, c := range crcSymbolIndices {
		if c == i {
			return true
		}
	}
	return false
}

func digits(e gf27.Elem) [3]uint8 {
	v := uint8(e)
	return [3]uint8{v % 3, (v / 3) % 3, (v / 9) % 3}
}

func fromDigits(d [3]uint8) gf27.Elem {
	return gf27.Elem(d[0] + 3*d[1] + 9*d[2])
}

// ErrCRCMismatch is returned when a header's CRC-12 check fails.
var ErrCRCMismatch = fmt.Errorf("header: crc12 mismatch")

// Marshal lays the header out as 27 GF(27) symbols with the CRC-12
// filled in.
func (h *Header) Marshal() [numSymbols]gf27.Elem {
	var sym [numSymbols]gf27.Elem
	sym[0], sym[1] = HeaderMagic[0], HeaderMagic[1]
	sym[2] = gf27.Elem(h.Version)
	sym[3] = gf27.Elem(h.ProfileID)

	for i := 0; i < 3; i++ {
		sym[4+i] = fromDigits([3]uint8{h.UEP[3*i] % 3, h.UEP[3*i+1] % 3, h.UEP[3*i+2] % 3})
	}

	sym[7] = gf27.Elem(h.TileW % 27)
	sym[8] = gf27.Elem(h.TileH % 27)
	sym[9] = gf27.Elem(h.ScramblerSeedA % 3)
	sym[10] = gf27.Elem(h.ScramblerSeedB % 3)
	sym[11] = gf27.Elem(h.ScramblerSeedS0 % 3)

	centered := uint8(0)
	if h.Centered {
		centered = 1
	}
	sym[12] = gf27.Elem(uint8(h.Subword) + 5*centered)

	sym[13], sym[14], sym[15] = h.BandMapHash[0], h.BandMapHash[1], h.BandMapHash[2]
	sym[16] = gf27.Elem(h.Coset)

	fs := h.FrameSeq % 19683
	for i := 0; i < 3; i++ {
		var d [3]uint8
		for j := 0; j < 3; j++ {
			d[j] = uint8((fs / pow3(uint32(3*i+j))) % 3)
		}
		sym[17+i] = fromDigits(d)
	}

	var beaconTrits [9]uint8
	if h.BeaconEnabled {
		beaconTrits[0] = 1
	}
	beaconTrits[1] = h.BeaconSlot % 3
	beaconTrits[2] = (h.BeaconSlot / 3) % 3
	period := uint32(h.BeaconPeriod % 729)
	for i := 0; i < 6; i++ {
		beaconTrits[3+i] = uint8((period / pow3(uint32(i))) % 3)
	}
	sym[23] = fromDigits([3]uint8{beaconTrits[0], beaconTrits[1], beaconTrits[2]})
	sym[24] = fromDigits([3]uint8{beaconTrits[3], beaconTrits[4], beaconTrits[5]})
	sym[25] = fromDigits([3]uint8{beaconTrits[6], beaconTrits[7], beaconTrits[8]})

	crc := computeCRC12(sym)
	sym[20] = fromDigits([3]uint8{crc[0], crc[1], crc[2]})
	sym[21] = fromDigits([3]uint8{crc[3], crc[4], crc[5]})
	sym[22] = fromDigits([3]uint8{crc[6], crc[7], crc[8]})
	sym[26] = fromDigits([3]uint8{crc[9], crc[10], crc[11]})

	return sym
}

func pow3(e uint32) uint32 {
	v := uint32(1)
	for i := uint32(0); i < e; i++ {
		v *= 3
	}
	return v
}

// Verify reports whether sym's CRC-12 matches its non-CRC symbols.
func Verify(sym [numSymbols]gf27.Elem) bool {
	want := computeCRC12(sym)
	var got [12]uint8
	pos := 0
	for _, idx := range crcSymbolIndices {
		d := digits(sym[idx])
		got[pos], got[pos+1], got[pos+2] = d[0], d[1], d[2]
		pos += 3
	}
	return got == want
}

// Unmarshal decodes 27 GF(27) symbols into a Header, verifying the
// CRC-12 first.
func Unmarshal(sym [numSymbols]gf27.Elem) (*Header, error) {
	if !Verify(sym) {
		return nil, ErrCRCMismatch
	}
	h := &Header{
		Version:   uint8(sym[2]),
		ProfileID: Profile(sym[3]),
		TileW:     uint8(sym[7]),
		TileH:     uint8(sym[8]),
	}
	for i := 0; i < 3; i++ {
		d := digits(sym[4+i])
		h.UEP[3*i], h.UEP[3*i+1], h.UEP[3*i+2] = d[0], d[1], d[2]
	}
	h.ScramblerSeedA = uint8(sym[9])
	h.ScramblerSeedB = uint8(sym[10])
	h.ScramblerSeedS0 = uint8(sym[11])

	subwordCentered := uint8(sym[12])
	h.Subword = SubwordMode(subwordCentered % 5)
	h.Centered = subwordCentered/5 != 0

	h.BandMapHash = [3]gf27.Elem{sym[13], sym[14], sym[15]}
	h.Coset = Coset(sym[16])

	var fs uint32
	for i := 0; i < 3; i++ {
		d := digits(sym[17+i])
		for j := 0; j < 3; j++ {
			fs += uint32(d[j]) * pow3(uint32(3*i+j))
		}
	}
	h.FrameSeq = fs

	b0 := digits(sym[23])
	b1 := digits(sym[24])
	b2 := digits(sym[25])
	beaconTrits := [9]uint8{b0[0], b0[1], b0[2], b1[0], b1[1], b1[2], b2[0], b2[1], b2[2]}
	h.BeaconEnabled = beaconTrits[0] != 0
	h.BeaconSlot = beaconTrits[1] + 3*beaconTrits[2]
	var period uint32
	for i := 0; i < 6; i++ {
		period += uint32(beaconTrits[3+i]) * pow3(uint32(i))
	}
	h.BeaconPeriod = uint16(period)

	return h, nil
}

// computeCRC12 runs the ternary CRC-12 LFSR over the header's 23
// non-CRC symbols (69 trits), followed by 12 zero trits, returning the
// 12-trit remainder.
func computeCRC12(sym [numSymbols]gf27.Elem) [12]uint8 {
	var reg [12]uint8
	feed := func(in uint8) {
		fb := (in + reg[11]) % 3
		var next [12]uint8
		next[0] = fb
		for i := 1; i < 12; i++ {
			if isTap(i) {
				next[i] = (reg[i-1] + fb) % 3
			} else {
				next[i] = reg[i-1]
			}
		}
		reg = next
	}
	for i := 0; i < numSymbols; i++ {
		if isCRCIndex(i) {
			continue
		}
		d := digits(sym[i])
		feed(d[0])
		feed(d[1])
		feed(d[2])
	}
	for i := 0; i < 12; i++ {
		feed(0)
	}
	return reg
}

// isTap reports whether LFSR position i is a feedback tap, corresponding
// to the nonzero terms of x^12 + x^7 + x^4 + x^3 + 1 below its leading
// x^12 (positions 0, 3, 4, 7).
func isTap(i int) bool {
	switch i {
	case 0, 3, 4, 7:
		return true
	default:
		return false
	}
}

// BandMapHash3 computes a 3-symbol fingerprint of a band layout from
// the tile dimensions and UEP selectors, for the header's BandMapHash
// field. It is a checksum, not a cryptographic hash.
func BandMapHash3(tileW, tileH uint8, uep [9]uint8) [3]gf27.Elem {
	var acc [3]uint32
	acc[0] = uint32(tileW)
	acc[1] = uint32(tileH)
	for i, v := range uep {
		acc[i%3] = (acc[i%3]*31 + uint32(v) + 1) % 27
	}
	return [3]gf27.Elem{gf27.Elem(acc[0] % 27), gf27.Elem(acc[1] % 27), gf27.Elem(acc[2] % 27)}
}
