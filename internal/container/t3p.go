package container

import (
	"fmt"
	"io"

	"github.com/Nico59000/Ternary-image-codec/internal/pixel"
	"github.com/Nico59000/Ternary-image-codec/internal/trit"
)

const t3pMagic = "T3P6"

// T3PHeader is `.t3p`'s fixed header.
type T3PHeader struct {
	Version    uint8
	Subword    SubwordMode
	W, H       uint16
	MetaLen    uint16
	WordsCount uint32
}

func (h T3PHeader) fixedBytes() []byte {
	out := make([]byte, 0, 16)
	out = append(out, []byte(t3pMagic)...)
	out = append(out, h.Version, uint8(h.Subword))
	out = appendUint16(out, h.W)
	out = appendUint16(out, h.H)
	out = appendUint16(out, h.MetaLen)
	out = appendUint32(out, h.WordsCount)
	return out
}

func appendUint16(b []byte, v uint16) []byte {
	return append(b, byte(v), byte(v>>8))
}

func appendUint32(b []byte, v uint32) []byte {
	return append(b, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
}

// T3PWriter writes a single-frame `.t3p` container: fixed header,
// header CRC32, meta bytes, words bytes, payload CRC32.
type T3PWriter struct {
	w io.Writer
}

// NewT3PWriter writes the fixed header, its CRC32, and the meta bytes.
// Call WriteWords exactly once afterward to complete the container.
func NewT3PWriter(w io.Writer, h T3PHeader, meta []byte) (*T3PWriter, error) {
	if int(h.MetaLen) != len(meta) {
		return nil, fmt.Errorf("container: t3p meta length mismatch: header says %d, got %d", h.MetaLen, len(meta))
	}
	fixed := h.fixedBytes()
	if _, err := w.Write(fixed); err != nil {
		return nil, fmt.Errorf("container: t3p write header: %w", err)
	}
	if err := writeUint32(w, crc32Of(fixed)); err != nil {
		return nil, fmt.Errorf("container: t3p write header crc32: %w", err)
	}
	if _, err := w.Write(meta); err != nil {
		return nil, fmt.Errorf("container: t3p write meta: %w", err)
	}
	return &T3PWriter{w: w}, nil
}

// WriteWords writes the words payload and its CRC32.
func (cw *T3PWriter) WriteWords(words []pixel.Word27Trits) error {
	payload, err := wordsToBytes(words)
	if err != nil {
		return fmt.Errorf("container: t3p pack words: %w", err)
	}
	if _, err := cw.w.Write(payload); err != nil {
		return fmt.Errorf("container: t3p write payload: %w", err)
	}
	if err := writeUint32(cw.w, crc32Of(payload)); err != nil {
		return fmt.Errorf("container: t3p write payload crc32: %w", err)
	}
	return nil
}

// T3PReader reads a single-frame `.t3p` container, gating the words
// payload behind a meta-only approve callback.
type T3PReader struct {
	r        io.Reader
	header   T3PHeader
	meta     []byte
	approved bool
}

// NewT3PReader reads and verifies the fixed header and meta bytes, then
// calls approve(meta). The words payload is never read unless approve
// returns true.
func NewT3PReader(r io.Reader, approve func(meta []byte) (bool, error)) (*T3PReader, error) {
	if err := checkMagic(r, t3pMagic); err != nil {
		return nil, err
	}
	var h T3PHeader
	var err error
	version, err := readByte(r)
	if err != nil {
		return nil, err
	}
	h.Version = version
	subword, err := readByte(r)
	if err != nil {
		return nil, err
	}
	h.Subword = SubwordMode(subword)
	if h.W, err = readUint16(r); err != nil {
		return nil, err
	}
	if h.H, err = readUint16(r); err != nil {
		return nil, err
	}
	if h.MetaLen, err = readUint16(r); err != nil {
		return nil, err
	}
	if h.WordsCount, err = readUint32(r); err != nil {
		return nil, err
	}
	wantCRC, err := readUint32(r)
	if err != nil {
		return nil, err
	}
	if crc32Of(h.fixedBytes()) != wantCRC {
		return nil, ErrCRCMismatch
	}

	meta := make([]byte, h.MetaLen)
	if _, err := io.ReadFull(r, meta); err != nil {
		return nil, fmt.Errorf("container: t3p read meta: %w", err)
	}

	cr := &T3PReader{r: r, header: h, meta: meta}
	if approve != nil {
		ok, err := approve(meta)
		if err != nil {
			return nil, fmt.Errorf("container: t3p approve: %w", err)
		}
		cr.approved = ok
	} else {
		cr.approved = true
	}
	return cr, nil
}

// Header returns the container's fixed header.
func (cr *T3PReader) Header() T3PHeader { return cr.header }

// Meta returns the meta bytes, available regardless of approval.
func (cr *T3PReader) Meta() []byte { return cr.meta }

// Approved reports whether the approve callback accepted this frame.
func (cr *T3PReader) Approved() bool { return cr.approved }

// ReadWords reads and validates the words payload. It refuses to do so
// if the meta was not approved.
func (cr *T3PReader) ReadWords() ([]pixel.Word27Trits, error) {
	if !cr.approved {
		return nil, ErrNotApproved
	}
	payloadSize := trit.PackedSize(int(cr.header.WordsCount) * 27)
	payload := make([]byte, payloadSize)
	if _, err := io.ReadFull(cr.r, payload); err != nil {
		return nil, fmt.Errorf("container: t3p read payload: %w", err)
	}
	wantCRC, err := readUint32(cr.r)
	if err != nil {
		return nil, fmt.Errorf("container: t3p read payload crc32: %w", err)
	}
	if crc32Of(payload) != wantCRC {
		return nil, ErrCRCMismatch
	}
	return bytesToWords(payload, int(cr.header.WordsCount))
}

func readByte(r io.Reader) (uint8, error) {
	var buf [1]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return buf[0], nil
}
