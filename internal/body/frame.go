package body

import (
	"fmt"

	"github.com/Nico59000/Ternary-image-codec/internal/gf27"
	"github.com/Nico59000/Ternary-image-codec/internal/header"
	"github.com/Nico59000/Ternary-image-codec/internal/pixel"
	"github.com/Nico59000/Ternary-image-codec/internal/rs27"
)

// HeaderWords is the number of leading Word27s a frame stream reserves
// for the RS(26,18)-protected superframe header: 6 words give 54 symbol
// slots for the 52 header transport symbols, the last 2 left zero.
const HeaderWords = 6

const headerSlotSymbols = HeaderWords * wordWidth

// ErrBandMapHash is returned when a decoded header's band map hash does
// not match the hash recomputed from its tile and UEP fields.
var ErrBandMapHash = fmt.Errorf("body: band map hash mismatch")

// EncodeFrame assembles one complete frame stream: the header's 52
// transport symbols padded into the first HeaderWords words, followed
// by the encoded body.
func EncodeFrame(words []pixel.Word27Trits, h *header.Header, hdrCodec *rs27.Codec, codecs *Codecs, plan Plan) ([]gf27.Elem, error) {
	transport, err := header.EncodeTransport(h, hdrCodec)
	if err != nil {
		return nil, err
	}
	encoded, err := EncodeBody(words, h, codecs, plan)
	if err != nil {
		return nil, err
	}
	out := make([]gf27.Elem, headerSlotSymbols, headerSlotSymbols+len(encoded))
	copy(out, transport)
	return append(out, encoded...), nil
}

// DecodeFrame reverses EncodeFrame, driving the per-frame state machine:
// header RS and CRC success advances to HeaderOk, per-band RS success to
// BodyDecoded, and word repacking to Emitted. Any failure is terminal
// for the frame and reported as a FailedFrame anchored at the state the
// frame had reached.
func DecodeFrame(stream []gf27.Elem, hdrCodec *rs27.Codec, codecs *Codecs, plan Plan) (*header.Header, []pixel.Word27Trits, []gf27.Elem, error) {
	m := NewFrameMachine()
	if len(stream) < headerSlotSymbols {
		return nil, nil, nil, m.Fail(fmt.Errorf("body: stream carries %d symbols, header transport needs %d", len(stream), headerSlotSymbols))
	}

	h, err := header.DecodeTransport(stream[:header.TransportSymbols], hdrCodec)
	if err != nil {
		return nil, nil, nil, m.Fail(err)
	}
	if h.BandMapHash != header.BandMapHash3(h.TileW, h.TileH, h.UEP) {
		return nil, nil, nil, m.Fail(ErrBandMapHash)
	}
	if err := m.HeaderAccepted(); err != nil {
		return nil, nil, nil, err
	}

	words, beacons, err := DecodeBody(stream[headerSlotSymbols:], h, codecs, plan)
	if err != nil {
		return h, nil, beacons, m.Fail(err)
	}
	if err := m.BodyAccepted(); err != nil {
		return h, nil, beacons, err
	}
	if err := m.Emit(); err != nil {
		return h, nil, beacons, err
	}
	return h, words, beacons, nil
}
