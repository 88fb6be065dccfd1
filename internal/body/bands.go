package body

import (
	"fmt"

	"github.com/Nico59000/Ternary-image-codec/internal/gf27"
	"github.com/Nico59000/Ternary-image-codec/internal/header"
	"github.com/Nico59000/Ternary-image-codec/internal/rs27"
)

// NumBands is the fixed number of UEP bands.
const NumBands = 9

// bandProfiles maps a UEP selector (0,1,2) to its Profile. This is a
// small lookup table, not virtual dispatch, resolving named components
// by table lookup rather than through an interface hierarchy.
var bandProfiles = [3]header.Profile{header.ProfileP1, header.ProfileP2, header.ProfileP3}

// ErrBadUEP is returned when a UEP selector is outside {0,1,2}.
var ErrBadUEP = fmt.Errorf("body: uep selector out of range")

// Codecs holds one RS codec per distinct (k) used by the three UEP
// profiles, built once per GF(27) table set.
type Codecs struct {
	byK map[int]*rs27.Codec
}

// NewCodecs builds the RS codecs needed to cover ProfileP1..ProfileP3.
func NewCodecs(gf *gf27.Tables) (*Codecs, error) {
	c := &Codecs{byK: map[int]*rs27.Codec{}}
	for _, p := range bandProfiles {
		k, _ := p.K()
		if _, ok := c.byK[k]; ok {
			continue
		}
		codec, err := rs27.New(gf, k)
		if err != nil {
			return nil, fmt.Errorf("body: build codec k=%d: %w", k, err)
		}
		c.byK[k] = codec
	}
	return c, nil
}

func (c *Codecs) forProfile(p header.Profile) (*rs27.Codec, error) {
	k, ok := p.K()
	if !ok {
		return nil, fmt.Errorf("body: profile %v has no RS codec", p)
	}
	codec, ok := c.byK[k]
	if !ok {
		return nil, fmt.Errorf("body: no codec built for k=%d", k)
	}
	return codec, nil
}

// SplitBands deals symbols round-robin into NumBands bands (band =
// index mod NumBands), in band order.
func SplitBands(symbols []gf27.Elem) [NumBands][]gf27.Elem {
	var bands [NumBands][]gf27.Elem
	for i, s := range symbols {
		b := i % NumBands
		bands[b] = append(bands[b], s)
	}
	return bands
}

// BandUsefulCounts returns how many symbols each band receives from a
// round-robin split of total symbols, without needing the split itself.
func BandUsefulCounts(total int) [NumBands]int {
	var counts [NumBands]int
	for b := 0; b < NumBands; b++ {
		counts[b] = total / NumBands
		if b < total%NumBands {
			counts[b]++
		}
	}
	return counts
}

// MergeBands inverts SplitBands, given the original total symbol count.
func MergeBands(bands [NumBands][]gf27.Elem, total int) []gf27.Elem {
	out := make([]gf27.Elem, total)
	idx := [NumBands]int{}
	for i := 0; i < total; i++ {
		b := i % NumBands
		out[i] = bands[b][idx[b]]
		idx[b]++
	}
	return out
}

// EncodeBands RS-encodes each band block-by-block using the profile
// selected by uep[band], and concatenates the result in band order;
// within a band the successive (n,k) blocks are contiguous. Each
// band's final block is zero-padded to k symbols if needed.
func EncodeBands(bands [NumBands][]gf27.Elem, uep [NumBands]uint8, codecs *Codecs) ([]gf27.Elem, error) {
	var out []gf27.Elem
	for b := 0; b < NumBands; b++ {
		if uep[b] > 2 {
			return nil, ErrBadUEP
		}
		profile := bandProfiles[uep[b]]
		codec, err := codecs.forProfile(profile)
		if err != nil {
			return nil, err
		}
		k := codec.K()
		data := bands[b]
		for i := 0; i < len(data); i += k {
			end := i + k
			block := make([]gf27.Elem, k)
			if end > len(data) {
				copy(block, data[i:])
			} else {
				copy(block, data[i:end])
			}
			cw, err := codec.Encode(block)
			if err != nil {
				return nil, fmt.Errorf("body: encode band %d: %w", b, err)
			}
			out = append(out, cw...)
		}
	}
	return out, nil
}

// DecodeBands reverses EncodeBands. bandUsefulCounts gives the exact
// number of useful (pre-padding) symbols each band originally held, so
// trailing zero padding in a band's final block can be trimmed.
func DecodeBands(transport []gf27.Elem, uep [NumBands]uint8, codecs *Codecs, bandUsefulCounts [NumBands]int) ([NumBands][]gf27.Elem, error) {
	var bands [NumBands][]gf27.Elem
	pos := 0
	for b := 0; b < NumBands; b++ {
		if uep[b] > 2 {
			return bands, ErrBadUEP
		}
		profile := bandProfiles[uep[b]]
		codec, err := codecs.forProfile(profile)
		if err != nil {
			return bands, err
		}
		k := codec.K()
		n := rs27.N
		numBlocks := (bandUsefulCounts[b] + k - 1) / k
		var data []gf27.Elem
		for blk := 0; blk < numBlocks; blk++ {
			if pos+n > len(transport) {
				return bands, fmt.Errorf("body: band %d: transport truncated", b)
			}
			cw := transport[pos : pos+n]
			pos += n
			block, err := codec.Decode(cw)
			if err != nil {
				return bands, fmt.Errorf("body: decode band %d block %d: %w", b, blk, err)
			}
			data = append(data, block...)
		}
		if len(data) > bandUsefulCounts[b] {
			data = data[:bandUsefulCounts[b]]
		}
		bands[b] = data
	}
	return bands, nil
}
