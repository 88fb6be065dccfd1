package main

import (
	"fmt"

	"github.com/Nico59000/Ternary-image-codec/internal/container"
	"github.com/Nico59000/Ternary-image-codec/internal/header"
	"github.com/Nico59000/Ternary-image-codec/internal/pixel"
)

// imageToWords packs an image's pixels into Word27 values under the
// given policy. Pair packing pads a trailing odd pixel with a zeroed
// partner.
func imageToWords(img *RawImage, policy pixel.Policy) []pixel.Word27Trits {
	n := img.W * img.H
	pixels := make([]pixel.Quantized, n)
	for i := 0; i < n; i++ {
		pixels[i] = rgbToQuantized(img.RGB[i*3], img.RGB[i*3+1], img.RGB[i*3+2])
	}

	switch policy {
	case pixel.SingletonPacking:
		words := make([]pixel.Word27Trits, n)
		for i, p := range pixels {
			words[i] = pixel.PackSingleton(p)
		}
		return words
	default:
		numWords := (n + 1) / 2
		words := make([]pixel.Word27Trits, numWords)
		for i := 0; i < numWords; i++ {
			a := pixels[2*i]
			b := pixel.Quantized{}
			if 2*i+1 < n {
				b = pixels[2*i+1]
			}
			words[i] = pixel.PackPair(a, b)
		}
		return words
	}
}

// wordsToImage inverts imageToWords, given the original image
// dimensions and packing policy.
func wordsToImage(words []pixel.Word27Trits, w, h int, policy pixel.Policy) (*RawImage, error) {
	n := w * h
	rgb := make([]byte, n*3)

	switch policy {
	case pixel.SingletonPacking:
		if len(words) < n {
			return nil, fmt.Errorf("convert: need %d words for singleton packing, got %d", n, len(words))
		}
		for i := 0; i < n; i++ {
			q := pixel.UnpackSingleton(words[i])
			r, g, b := quantizedToRGB(q)
			rgb[i*3], rgb[i*3+1], rgb[i*3+2] = r, g, b
		}
	default:
		need := (n + 1) / 2
		if len(words) < need {
			return nil, fmt.Errorf("convert: need %d words for pair packing, got %d", need, len(words))
		}
		for i := 0; i < need; i++ {
			a, b := pixel.UnpackPair(words[i])
			ra, ga, ba := quantizedToRGB(a)
			rgb[(2*i)*3], rgb[(2*i)*3+1], rgb[(2*i)*3+2] = ra, ga, ba
			if 2*i+1 < n {
				rb, gb, bb := quantizedToRGB(b)
				rgb[(2*i+1)*3], rgb[(2*i+1)*3+1], rgb[(2*i+1)*3+2] = rb, gb, bb
			}
		}
	}
	return &RawImage{W: w, H: h, RGB: rgb}, nil
}

// parsePackingFlag maps a --packing flag value to a pixel.Policy.
func parsePackingFlag(s string) (pixel.Policy, error) {
	switch s {
	case "", "pair":
		return pixel.PairPacking, nil
	case "singleton":
		return pixel.SingletonPacking, nil
	default:
		return 0, newUsageError("unknown packing %q (want pair|singleton)", s)
	}
}

// parseSubwordFlag maps a --subword flag value to a container.SubwordMode.
func parseSubwordFlag(s string) (container.SubwordMode, error) {
	switch s {
	case "", "s27":
		return header.S27, nil
	case "s24":
		return header.S24, nil
	case "s21":
		return header.S21, nil
	case "s18":
		return header.S18, nil
	case "s15":
		return header.S15, nil
	default:
		return 0, newUsageError("unknown subword %q (want s27|s24|s21|s18|s15)", s)
	}
}

// subwordString is parseSubwordFlag's inverse, for info/dump output.
func subwordString(s container.SubwordMode) string {
	switch header.SubwordMode(s) {
	case header.S27:
		return "s27"
	case header.S24:
		return "s24"
	case header.S21:
		return "s21"
	case header.S18:
		return "s18"
	case header.S15:
		return "s15"
	default:
		return fmt.Sprintf("unknown(%d)", s)
	}
}
