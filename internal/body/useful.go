// Package body implements the ternary transport core's body pipeline:
// useful-symbol extraction from RAW words, the optional 2D boustrophedon
// tile interleave, 9-band UEP split with per-band Reed-Solomon, the
// affine mod-3 scrambler, sparse beacon insertion, and the per-frame
// state machine.
package body

import (
	"github.com/Nico59000/Ternary-image-codec/internal/gf27"
	"github.com/Nico59000/Ternary-image-codec/internal/pixel"
	"github.com/Nico59000/Ternary-image-codec/internal/trit"
)

// usefulTritsPerWord is the number of trits of a RAW word that carry
// payload; the 27th trit is the pair-packing pad and is never part of
// the pipeline's useful stream.
const usefulTritsPerWord = 26

const symbolTrits = 3

// ExtractUseful concatenates the first 26 trits of each RAW word (index
// 26 is always the pair-packing pad) into one trit stream and regroups
// it into GF(27) symbols, 3 trits each. Since 26 is not a multiple of
// 3, the carry left after each word cycles through 2, 1 and 0 trits; a
// carry completes with the next word's leading trits, and the final
// carry, if any, is zero-padded
// into one last symbol.
func ExtractUseful(words []pixel.Word27Trits) []gf27.Elem {
	var carry []trit.Unbalanced
	var symbols []gf27.Elem

	flush := func(buf []trit.Unbalanced) ([]gf27.Elem, []trit.Unbalanced) {
		var out []gf27.Elem
		i := 0
		for ; i+symbolTrits <= len(buf); i += symbolTrits {
			out = append(out, symbolFromTrits(buf[i], buf[i+1], buf[i+2]))
		}
		return out, buf[i:]
	}

	for _, w := range words {
		buf := append(append([]trit.Unbalanced{}, carry...), w[:usefulTritsPerWord]...)
		var flushed []gf27.Elem
		flushed, carry = flush(buf)
		symbols = append(symbols, flushed...)
	}

	if len(carry) > 0 {
		padded := make([]trit.Unbalanced, symbolTrits)
		copy(padded, carry)
		symbols = append(symbols, symbolFromTrits(padded[0], padded[1], padded[2]))
	}

	return symbols
}

// ReinsertUseful is the inverse of ExtractUseful: it expands symbols
// back into a trit stream and repacks it into numWords RAW words (27th
// trit always zero), given the exact trit count that was originally
// extracted (needed because the final symbol may have been zero-padded).
func ReinsertUseful(symbols []gf27.Elem, numWords int, tritCount int) []pixel.Word27Trits {
	trits := make([]trit.Unbalanced, 0, len(symbols)*symbolTrits)
	for _, s := range symbols {
		d0, d1, d2 := tritsFromSymbol(s)
		trits = append(trits, d0, d1, d2)
	}
	if len(trits) > tritCount {
		trits = trits[:tritCount]
	}

	words := make([]pixel.Word27Trits, numWords)
	pos := 0
	for w := 0; w < numWords; w++ {
		for i := 0; i < usefulTritsPerWord; i++ {
			if pos < len(trits) {
				words[w][i] = trits[pos]
				pos++
			}
		}
		words[w][26] = 0
	}
	return words
}

func symbolFromTrits(a, b, c trit.Unbalanced) gf27.Elem {
	return gf27.Elem(uint8(a) + 3*uint8(b) + 9*uint8(c))
}

func tritsFromSymbol(e gf27.Elem) (trit.Unbalanced, trit.Unbalanced, trit.Unbalanced) {
	v := uint8(e)
	return trit.Unbalanced(v % 3), trit.Unbalanced((v / 3) % 3), trit.Unbalanced((v / 9) % 3)
}

// UsefulSymbolCount returns how many GF(27) symbols ExtractUseful
// produces for numWords RAW words.
func UsefulSymbolCount(numWords int) int {
	totalTrits := numWords * usefulTritsPerWord
	return (totalTrits + symbolTrits - 1) / symbolTrits
}

// UsefulTritCount returns the exact number of useful trits carried by
// numWords RAW words (needed by ReinsertUseful to trim the final
// symbol's zero padding).
func UsefulTritCount(numWords int) int {
	return numWords * usefulTritsPerWord
}
