package body

import (
	"testing"

	"github.com/Nico59000/Ternary-image-codec/internal/gf27"
	"github.com/Nico59000/Ternary-image-codec/internal/header"
	"github.com/stretchr/testify/require"
)

func samplePlanHeader(profile header.Profile, numWords int) *header.Header {
	h := &header.Header{
		ProfileID:       profile,
		UEP:             [9]uint8{0, 1, 2, 0, 1, 2, 0, 1, 2},
		TileW:           3,
		TileH:           4,
		ScramblerSeedA:  1,
		ScramblerSeedB:  1,
		ScramblerSeedS0: 2,
		BeaconEnabled:   true,
		BeaconSlot:      2,
		BeaconPeriod:    50,
	}
	h.BandMapHash = header.BandMapHash3(h.TileW, h.TileH, h.UEP)
	return h
}

func TestBodyPipelineRoundTripP2(t *testing.T) {
	gf, err := gf27.New()
	require.NoError(t, err)
	codecs, err := NewCodecs(gf)
	require.NoError(t, err)

	words := randomWords(20, 7)
	h := samplePlanHeader(header.ProfileP2, len(words))
	plan := Plan{NumWords: len(words), Health: 1}

	transport, err := EncodeBody(words, h, codecs, plan)
	require.NoError(t, err)

	got, beacons, err := DecodeBody(transport, h, codecs, plan)
	require.NoError(t, err)
	require.Equal(t, words, got)
	require.NotEmpty(t, beacons)
}

func TestBodyPipelineRoundTripP5Interleaved(t *testing.T) {
	gf, err := gf27.New()
	require.NoError(t, err)
	codecs, err := NewCodecs(gf)
	require.NoError(t, err)

	words := randomWords(30, 11)
	h := samplePlanHeader(header.ProfileP5, len(words))
	plan := Plan{NumWords: len(words), Health: 0}

	transport, err := EncodeBody(words, h, codecs, plan)
	require.NoError(t, err)

	got, _, err := DecodeBody(transport, h, codecs, plan)
	require.NoError(t, err)
	require.Equal(t, words, got)
}

func TestBodyPipelineToleratesBeaconAndCorrectableErrors(t *testing.T) {
	gf, err := gf27.New()
	require.NoError(t, err)
	codecs, err := NewCodecs(gf)
	require.NoError(t, err)

	words := randomWords(50, 99)
	h := samplePlanHeader(header.ProfileP1, len(words))
	plan := Plan{NumWords: len(words), Health: 2}

	transport, err := EncodeBody(words, h, codecs, plan)
	require.NoError(t, err)

	// Beacons already perturbed one symbol per reserved word; the
	// pipeline must still round-trip relying on each band's RS budget.
	got, _, err := DecodeBody(transport, h, codecs, plan)
	require.NoError(t, err)
	require.Equal(t, words, got)
}
