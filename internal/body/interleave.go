package body

import "github.com/Nico59000/Ternary-image-codec/internal/gf27"

// Interleave2D reorders symbols tile-by-tile for profile P5. Symbols
// fill each tileW x tileH tile in row-major order; the tile is then
// read out in boustrophedon scan order (row 0 left-to-right, row 1
// right-to-left, and so on). A partial final tile preserves only its
// valid-cell subset, scanned the same way.
func Interleave2D(symbols []gf27.Elem, tileW, tileH int) []gf27.Elem {
	out := make([]gf27.Elem, 0, len(symbols))
	tileSize := tileW * tileH
	for base := 0; base < len(symbols); base += tileSize {
		end := base + tileSize
		if end > len(symbols) {
			end = len(symbols)
		}
		tile := symbols[base:end]
		out = append(out, scanBoustrophedon(tile, tileW, tileH)...)
	}
	return out
}

// Deinterleave2D inverts Interleave2D.
func Deinterleave2D(symbols []gf27.Elem, tileW, tileH int) []gf27.Elem {
	out := make([]gf27.Elem, 0, len(symbols))
	tileSize := tileW * tileH
	for base := 0; base < len(symbols); base += tileSize {
		end := base + tileSize
		if end > len(symbols) {
			end = len(symbols)
		}
		tile := symbols[base:end]
		out = append(out, unscanBoustrophedon(tile, tileW, tileH)...)
	}
	return out
}

// scanBoustrophedon reads a row-major-filled (possibly partial) tile
// out in boustrophedon order.
func scanBoustrophedon(tile []gf27.Elem, tileW, tileH int) []gf27.Elem {
	out := make([]gf27.Elem, 0, len(tile))
	for row := 0; row < tileH; row++ {
		cols := rowOrder(row, tileW)
		for _, col := range cols {
			idx := row*tileW + col
			if idx < len(tile) {
				out = append(out, tile[idx])
			}
		}
	}
	return out
}

// unscanBoustrophedon inverts scanBoustrophedon: it consumes a
// boustrophedon-ordered stream and restores row-major order.
func unscanBoustrophedon(stream []gf27.Elem, tileW, tileH int) []gf27.Elem {
	cellCount := len(stream)
	grid := make([]gf27.Elem, tileW*tileH)
	pos := 0
	for row := 0; row < tileH; row++ {
		cols := rowOrder(row, tileW)
		for _, col := range cols {
			idx := row*tileW + col
			if idx < cellCount {
				grid[idx] = stream[pos]
				pos++
			}
		}
	}
	return grid[:cellCount]
}

func rowOrder(row, tileW int) []int {
	cols := make([]int, tileW)
	if row%2 == 0 {
		for c := 0; c < tileW; c++ {
			cols[c] = c
		}
	} else {
		for c := 0; c < tileW; c++ {
			cols[c] = tileW - 1 - c
		}
	}
	return cols
}
