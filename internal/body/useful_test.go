package body

import (
	"math/rand"
	"testing"

	"github.com/Nico59000/Ternary-image-codec/internal/pixel"
	"github.com/Nico59000/Ternary-image-codec/internal/trit"
	"github.com/stretchr/testify/require"
)

func randomWords(n int, seed int64) []pixel.Word27Trits {
	r := rand.New(rand.NewSource(seed))
	words := make([]pixel.Word27Trits, n)
	for i := range words {
		for j := 0; j < 26; j++ {
			words[i][j] = trit.Unbalanced(r.Intn(3))
		}
		words[i][26] = 0
	}
	return words
}

func TestUsefulSymbolCountMatchesExtraction(t *testing.T) {
	for _, n := range []int{0, 1, 2, 3, 5, 10} {
		words := make([]pixel.Word27Trits, n)
		got := ExtractUseful(words)
		require.Equal(t, UsefulSymbolCount(n), len(got))
	}
}

func TestExtractReinsertRoundTrip(t *testing.T) {
	for _, n := range []int{1, 2, 3, 4, 7} {
		words := randomWords(n, int64(n))
		symbols := ExtractUseful(words)
		back := ReinsertUseful(symbols, n, UsefulTritCount(n))
		require.Equal(t, words, back)
	}
}
