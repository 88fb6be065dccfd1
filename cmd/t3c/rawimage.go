package main

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/Nico59000/Ternary-image-codec/internal/pixel"
)

// rawImageMagic tags the minimal on-disk stand-in for a decoded image
// used by this CLI. Real PNG/JPEG/TIFF/EXR/HEIF/AVIF decoding is an
// external collaborator's job; this tool only ever consumes the
// ImageU8 shape (width, height, row-major interleaved RGB8) that a
// real adapter would hand the core, per the image adapter
// contract. RawImage is that shape serialized to disk so this CLI has
// something to read without depending on an image library.
const rawImageMagic = "RIMG"

// RawImage is a decoded ImageU8 buffer: width, height, and row-major
// interleaved RGB8 pixels.
type RawImage struct {
	W, H int
	RGB  []byte // len == W*H*3
}

// ReadRawImage reads the rawImageMagic format from path.
func ReadRawImage(path string) (*RawImage, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open raw image: %w", err)
	}
	defer f.Close()

	magic := make([]byte, 4)
	if _, err := io.ReadFull(f, magic); err != nil {
		return nil, fmt.Errorf("read raw image magic: %w", err)
	}
	if string(magic) != rawImageMagic {
		return nil, fmt.Errorf("raw image: bad magic %q, want %q", magic, rawImageMagic)
	}

	var dims [8]byte
	if _, err := io.ReadFull(f, dims[:]); err != nil {
		return nil, fmt.Errorf("read raw image dims: %w", err)
	}
	w := int(binary.LittleEndian.Uint32(dims[0:4]))
	h := int(binary.LittleEndian.Uint32(dims[4:8]))

	rgb := make([]byte, w*h*3)
	if _, err := io.ReadFull(f, rgb); err != nil {
		return nil, fmt.Errorf("read raw image pixels: %w", err)
	}
	return &RawImage{W: w, H: h, RGB: rgb}, nil
}

// WriteRawImage writes img in the rawImageMagic format; the decode verb
// uses it to write the decoded image to its --out path.
func WriteRawImage(path string, img *RawImage) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create raw image: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(rawImageMagic); err != nil {
		return err
	}
	var dims [8]byte
	binary.LittleEndian.PutUint32(dims[0:4], uint32(img.W))
	binary.LittleEndian.PutUint32(dims[4:8], uint32(img.H))
	if _, err := f.Write(dims[:]); err != nil {
		return err
	}
	_, err = f.Write(img.RGB)
	return err
}

// TestPattern synthesizes a small RGB8 gradient image, for exercising
// encode without a real image adapter wired in.
func TestPattern(w, h int) *RawImage {
	rgb := make([]byte, w*h*3)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := (y*w + x) * 3
			rgb[i] = byte(x * 255 / maxInt(w-1, 1))
			rgb[i+1] = byte(y * 255 / maxInt(h-1, 1))
			rgb[i+2] = byte((x + y) * 255 / maxInt(w+h-2, 1))
		}
	}
	return &RawImage{W: w, H: h, RGB: rgb}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// rgbToQuantized converts one RGB8 pixel to this codec's quantized
// YCbCr triple (BT.601 luma/chroma, rescaled from [0,255]/[-128,127]
// into the domain's [0,242]/[-40,40] ranges). The exact colour
// transform is this adapter's own business, not a core concern.
func rgbToQuantized(r, g, b byte) pixel.Quantized {
	rf, gf, bf := float64(r), float64(g), float64(b)
	y := 0.299*rf + 0.587*gf + 0.114*bf
	cb := -0.168736*rf - 0.331264*gf + 0.5*bf
	cr := 0.5*rf - 0.418688*gf - 0.081312*bf

	return pixel.Quantized{
		Y:  int16(y * 242 / 255),
		Cb: int16(cb * 40 / 128),
		Cr: int16(cr * 40 / 128),
	}.Clamp()
}

// quantizedToRGB inverts rgbToQuantized, for the decode/export path.
func quantizedToRGB(q pixel.Quantized) (r, g, b byte) {
	y := float64(q.Y) * 255 / 242
	cb := float64(q.Cb) * 128 / 40
	cr := float64(q.Cr) * 128 / 40

	rf := y + 1.402*cr
	gf := y - 0.344136*cb - 0.714136*cr
	bf := y + 1.772*cb

	return clampByte(rf), clampByte(gf), clampByte(bf)
}

func clampByte(v float64) byte {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return byte(v)
}
