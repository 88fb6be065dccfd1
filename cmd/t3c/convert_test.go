package main

import (
	"testing"

	"github.com/Nico59000/Ternary-image-codec/internal/pixel"
	"github.com/stretchr/testify/require"
)

// TestImageToWordsPairPacking2x2 packs a 2x2 RGB image into exactly two
// pair-packed words and checks the quantized triples survive unchanged.
func TestImageToWordsPairPacking2x2(t *testing.T) {
	img := &RawImage{W: 2, H: 2, RGB: []byte{
		255, 0, 0,
		0, 255, 0,
		0, 0, 255,
		128, 128, 128,
	}}

	words := imageToWords(img, pixel.PairPacking)
	require.Len(t, words, 2)

	for i := 0; i < 4; i++ {
		want := rgbToQuantized(img.RGB[i*3], img.RGB[i*3+1], img.RGB[i*3+2])
		a, b := pixel.UnpackPair(words[i/2])
		got := a
		if i%2 == 1 {
			got = b
		}
		require.Equal(t, want, got, "pixel %d", i)
	}
}

func TestWordsToImagePairPackingOddPixelCount(t *testing.T) {
	img := TestPattern(5, 3) // odd pixel count exercises the padded final pair
	words := imageToWords(img, pixel.PairPacking)
	require.Len(t, words, 8)

	back, err := wordsToImage(words, img.W, img.H, pixel.PairPacking)
	require.NoError(t, err)
	require.Equal(t, img.W, back.W)
	require.Equal(t, img.H, back.H)
	require.Len(t, back.RGB, img.W*img.H*3)
}

func TestImageToWordsSingletonRoundTrip(t *testing.T) {
	img := TestPattern(3, 2)
	words := imageToWords(img, pixel.SingletonPacking)
	require.Len(t, words, 6)

	for i, w := range words {
		want := rgbToQuantized(img.RGB[i*3], img.RGB[i*3+1], img.RGB[i*3+2])
		require.Equal(t, want, pixel.UnpackSingleton(w), "pixel %d", i)
	}

	back, err := wordsToImage(words, img.W, img.H, pixel.SingletonPacking)
	require.NoError(t, err)
	require.Equal(t, img.W, back.W)
	require.Equal(t, img.H, back.H)
}

func TestWordsToImageRejectsShortWordStream(t *testing.T) {
	_, err := wordsToImage(nil, 2, 2, pixel.PairPacking)
	require.Error(t, err)
}
