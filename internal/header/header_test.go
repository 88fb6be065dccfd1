package header

import (
	"testing"

	"github.com/Nico59000/Ternary-image-codec/internal/gf27"
	"github.com/Nico59000/Ternary-image-codec/internal/rs27"
	"github.com/stretchr/testify/require"
)

func sampleHeader() *Header {
	h := &Header{
		Version:   0,
		ProfileID: ProfileP5,
		UEP:       [9]uint8{0, 1, 2, 0, 1, 2, 0, 1, 2},
		TileW:     8,
		TileH:     8,

		ScramblerSeedA:  1,
		ScramblerSeedB:  1,
		ScramblerSeedS0: 1,

		Subword:  S24,
		Centered: false,
		Coset:    C0,
		FrameSeq: 42,

		BeaconEnabled: true,
		BeaconSlot:    2,
		BeaconPeriod:  83,
	}
	h.BandMapHash = BandMapHash3(h.TileW, h.TileH, h.UEP)
	return h
}

// TestHeaderCRC12Scenario builds a representative header and checks CRC-12.
func TestHeaderCRC12Scenario(t *testing.T) {
	h := sampleHeader()
	sym := h.Marshal()
	require.True(t, Verify(sym))

	d := digits(sym[5])
	d[0] = (d[0] + 1) % 3
	sym[5] = fromDigits(d)
	require.False(t, Verify(sym))
}

func TestMarshalUnmarshalRoundTrip(t *testing.T) {
	h := sampleHeader()
	sym := h.Marshal()
	got, err := Unmarshal(sym)
	require.NoError(t, err)
	require.Equal(t, h, got)
}

func TestUnmarshalRejectsCorruptedHeader(t *testing.T) {
	h := sampleHeader()
	sym := h.Marshal()
	sym[10] = gf27.Elem((uint8(sym[10]) + 1) % 27)
	_, err := Unmarshal(sym)
	require.ErrorIs(t, err, ErrCRCMismatch)
}

func TestTransportRoundTrip(t *testing.T) {
	gf, err := gf27.New()
	require.NoError(t, err)
	k, _ := ProfileHdr.K()
	codec, err := rs27.New(gf, k)
	require.NoError(t, err)

	h := sampleHeader()
	transport, err := EncodeTransport(h, codec)
	require.NoError(t, err)
	require.Len(t, transport, TransportSymbols)

	got, err := DecodeTransport(transport, codec)
	require.NoError(t, err)
	require.Equal(t, h, got)
}

func TestTransportCorrectsErrors(t *testing.T) {
	gf, err := gf27.New()
	require.NoError(t, err)
	k, _ := ProfileHdr.K()
	codec, err := rs27.New(gf, k)
	require.NoError(t, err)

	h := sampleHeader()
	transport, err := EncodeTransport(h, codec)
	require.NoError(t, err)

	// Corrupt up to t=4 symbols in each block.
	transport[1] = gf27.Add(transport[1], gf.PowAlpha(3))
	transport[5] = gf27.Add(transport[5], gf.PowAlpha(9))
	transport[rs27.N+2] = gf27.Add(transport[rs27.N+2], gf.PowAlpha(5))

	got, err := DecodeTransport(transport, codec)
	require.NoError(t, err)
	require.Equal(t, h, got)
}

func TestBeaconAndFrameSeqRoundTripAtRange(t *testing.T) {
	h := sampleHeader()
	h.FrameSeq = 19682
	h.BeaconPeriod = 728
	h.BeaconSlot = 8
	sym := h.Marshal()
	got, err := Unmarshal(sym)
	require.NoError(t, err)
	require.Equal(t, h.FrameSeq, got.FrameSeq)
	require.Equal(t, h.BeaconPeriod, got.BeaconPeriod)
	require.Equal(t, h.BeaconSlot, got.BeaconSlot)
}
