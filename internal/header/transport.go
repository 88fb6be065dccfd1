package header

import (
	"fmt"

	"github.com/Nico59000/Ternary-image-codec/internal/gf27"
	"github.com/Nico59000/Ternary-image-codec/internal/rs27"
)

// TransportSymbols is the number of GF(27) symbols the header occupies
// on the wire: two RS(26,18) codewords, 26 symbols each.
const TransportSymbols = 2 * rs27.N

// EncodeTransport splits the header's 27 symbols into an 18-symbol
// block and a 9-symbol block (zero-padded to 18), and RS(26,18)-encodes
// each, returning the 52 resulting symbols concatenated.
func EncodeTransport(h *Header, codec *rs27.Codec) ([]gf27.Elem, error) {
	if k, _ := ProfileHdr.K(); k != codec.K() {
		return nil, fmt.Errorf("header: transport codec must be RS(26,%d)", k)
	}
	sym := h.Marshal()

	blockA := make([]gf27.Elem, 18)
	copy(blockA, sym[0:18])

	blockB := make([]gf27.Elem, 18)
	copy(blockB, sym[18:27]) // remaining 9 symbols, rest stays zero-padded

	cwA, err := codec.Encode(blockA)
	if err != nil {
		return nil, fmt.Errorf("header: encode block A: %w", err)
	}
	cwB, err := codec.Encode(blockB)
	if err != nil {
		return nil, fmt.Errorf("header: encode block B: %w", err)
	}

	out := make([]gf27.Elem, 0, TransportSymbols)
	out = append(out, cwA...)
	out = append(out, cwB...)
	return out, nil
}

// DecodeTransport reverses EncodeTransport: RS-decodes both blocks,
// reassembles the 27-symbol header, and verifies its CRC-12.
func DecodeTransport(transport []gf27.Elem, codec *rs27.Codec) (*Header, error) {
	if len(transport) != TransportSymbols {
		return nil, fmt.Errorf("header: transport: got %d symbols, want %d", len(transport), TransportSymbols)
	}
	cwA := transport[:rs27.N]
	cwB := transport[rs27.N:]

	blockA, err := codec.Decode(cwA)
	if err != nil {
		return nil, fmt.Errorf("header: decode block A: %w", err)
	}
	blockB, err := codec.Decode(cwB)
	if err != nil {
		return nil, fmt.Errorf("header: decode block B: %w", err)
	}

	var sym [numSymbols]gf27.Elem
	copy(sym[0:18], blockA)
	copy(sym[18:27], blockB[:9])

	return Unmarshal(sym)
}
