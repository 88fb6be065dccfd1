package body

import (
	"testing"

	"github.com/Nico59000/Ternary-image-codec/internal/gf27"
	"github.com/Nico59000/Ternary-image-codec/internal/header"
	"github.com/Nico59000/Ternary-image-codec/internal/rs27"
	"github.com/stretchr/testify/require"
)

func newFrameCodecs(t *testing.T) (*gf27.Tables, *rs27.Codec, *Codecs) {
	t.Helper()
	gf, err := gf27.New()
	require.NoError(t, err)
	k, _ := header.ProfileHdr.K()
	hdrCodec, err := rs27.New(gf, k)
	require.NoError(t, err)
	codecs, err := NewCodecs(gf)
	require.NoError(t, err)
	return gf, hdrCodec, codecs
}

func TestFrameRoundTrip(t *testing.T) {
	_, hdrCodec, codecs := newFrameCodecs(t)

	words := randomWords(25, 5)
	h := samplePlanHeader(header.ProfileP2, len(words))
	plan := Plan{NumWords: len(words), Health: 1}

	stream, err := EncodeFrame(words, h, hdrCodec, codecs, plan)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(stream), headerSlotSymbols)

	gotHeader, gotWords, beacons, err := DecodeFrame(stream, hdrCodec, codecs, plan)
	require.NoError(t, err)
	require.Equal(t, h, gotHeader)
	require.Equal(t, words, gotWords)
	require.NotEmpty(t, beacons)
}

func TestFrameRoundTripWithHeaderAndBodyErrors(t *testing.T) {
	gf, hdrCodec, codecs := newFrameCodecs(t)

	words := randomWords(25, 8)
	h := samplePlanHeader(header.ProfileP3, len(words))
	plan := Plan{NumWords: len(words)}

	stream, err := EncodeFrame(words, h, hdrCodec, codecs, plan)
	require.NoError(t, err)

	// Up to t=4 errors per header transport block, plus one body symbol
	// landing in a band-1 codeword (t=2) far from the beacon's own
	// overwrite in band 0.
	stream[0] = gf27.Add(stream[0], gf.PowAlpha(7))
	stream[rs27.N+1] = gf27.Add(stream[rs27.N+1], gf.PowAlpha(2))
	stream[headerSlotSymbols+60] = gf27.Add(stream[headerSlotSymbols+60], gf.PowAlpha(3))

	gotHeader, gotWords, _, err := DecodeFrame(stream, hdrCodec, codecs, plan)
	require.NoError(t, err)
	require.Equal(t, h, gotHeader)
	require.Equal(t, words, gotWords)
}

func TestDecodeFrameFailsOnShortStream(t *testing.T) {
	_, hdrCodec, codecs := newFrameCodecs(t)
	_, _, _, err := DecodeFrame(seq(10), hdrCodec, codecs, Plan{})
	var failed *FailedFrame
	require.ErrorAs(t, err, &failed)
	require.Equal(t, Idle, failed.At)
}

func TestDecodeFrameFailsOnBandMapHashMismatch(t *testing.T) {
	_, hdrCodec, codecs := newFrameCodecs(t)

	words := randomWords(10, 9)
	h := samplePlanHeader(header.ProfileP2, len(words))
	h.BandMapHash[0] = gf27.Elem((uint8(h.BandMapHash[0]) + 1) % 27)
	plan := Plan{NumWords: len(words)}

	stream, err := EncodeFrame(words, h, hdrCodec, codecs, plan)
	require.NoError(t, err)

	_, _, _, err = DecodeFrame(stream, hdrCodec, codecs, plan)
	require.ErrorIs(t, err, ErrBandMapHash)
}
