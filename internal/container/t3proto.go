package container

import (
	"fmt"
	"io"

	"github.com/Nico59000/Ternary-image-codec/internal/trit"
)

const t3protoMagic = "T3PT"

// Flag bits for T3ProtoHeader.Flags.
const (
	FlagPackPresent uint8 = 0x1
	FlagBalPresent  uint8 = 0x2
)

// T3ProtoHeader is `.t3proto`'s fixed header. There is no CRC: integrity
// comes from whatever upstream container or tool produced the blob.
type T3ProtoHeader struct {
	Version uint8
	Profile uint8
	Flags   uint8
	W, H    uint16
	NTrits  uint32
	NBytes  uint32
	MetaLen uint16
}

func (h T3ProtoHeader) marshal() []byte {
	out := make([]byte, 0, 21)
	out = append(out, []byte(t3protoMagic)...)
	out = append(out, h.Version, h.Profile, h.Flags)
	out = appendUint16(out, h.W)
	out = appendUint16(out, h.H)
	out = appendUint32(out, h.NTrits)
	out = appendUint32(out, h.NBytes)
	out = appendUint16(out, h.MetaLen)
	return out
}

// WriteT3Proto writes a complete `.t3proto` blob: header, meta, then
// whichever of balanced/packed are present per h.Flags.
//
// When only packed bytes are present, NTrits is still written in the
// header (the "inferred from meta counters" case doesn't apply
// here since this writer always has the true trit count in hand).
func WriteT3Proto(w io.Writer, h T3ProtoHeader, meta []byte, balanced []trit.Balanced, packed []byte) error {
	if int(h.MetaLen) != len(meta) {
		return fmt.Errorf("container: t3proto meta length mismatch")
	}
	if h.Flags&FlagBalPresent != 0 && len(balanced) != int(h.NTrits) {
		return fmt.Errorf("container: t3proto balanced trit count mismatch")
	}
	if h.Flags&FlagPackPresent != 0 && len(packed) != int(h.NBytes) {
		return fmt.Errorf("container: t3proto packed byte count mismatch")
	}

	if _, err := w.Write(h.marshal()); err != nil {
		return fmt.Errorf("container: t3proto write header: %w", err)
	}
	if _, err := w.Write(meta); err != nil {
		return fmt.Errorf("container: t3proto write meta: %w", err)
	}
	if h.Flags&FlagBalPresent != 0 {
		buf := make([]byte, len(balanced))
		for i, t := range balanced {
			buf[i] = byte(int8(t))
		}
		if _, err := w.Write(buf); err != nil {
			return fmt.Errorf("container: t3proto write balanced: %w", err)
		}
	}
	if h.Flags&FlagPackPresent != 0 {
		if _, err := w.Write(packed); err != nil {
			return fmt.Errorf("container: t3proto write packed: %w", err)
		}
	}
	return nil
}

// ReadT3Proto reads a complete `.t3proto` blob.
func ReadT3Proto(r io.Reader) (T3ProtoHeader, []byte, []trit.Balanced, []byte, error) {
	var h T3ProtoHeader
	if err := checkMagic(r, t3protoMagic); err != nil {
		return h, nil, nil, nil, err
	}
	version, err := readByte(r)
	if err != nil {
		return h, nil, nil, nil, err
	}
	h.Version = version
	if h.Profile, err = readByte(r); err != nil {
		return h, nil, nil, nil, err
	}
	if h.Flags, err = readByte(r); err != nil {
		return h, nil, nil, nil, err
	}
	if h.W, err = readUint16(r); err != nil {
		return h, nil, nil, nil, err
	}
	if h.H, err = readUint16(r); err != nil {
		return h, nil, nil, nil, err
	}
	if h.NTrits, err = readUint32(r); err != nil {
		return h, nil, nil, nil, err
	}
	if h.NBytes, err = readUint32(r); err != nil {
		return h, nil, nil, nil, err
	}
	if h.MetaLen, err = readUint16(r); err != nil {
		return h, nil, nil, nil, err
	}

	meta := make([]byte, h.MetaLen)
	if _, err := io.ReadFull(r, meta); err != nil {
		return h, nil, nil, nil, fmt.Errorf("container: t3proto read meta: %w", err)
	}

	var balanced []trit.Balanced
	if h.Flags&FlagBalPresent != 0 {
		buf := make([]byte, h.NTrits)
		if _, err := io.ReadFull(r, buf); err != nil {
			return h, meta, nil, nil, fmt.Errorf("container: t3proto read balanced: %w", err)
		}
		balanced = make([]trit.Balanced, h.NTrits)
		for i, b := range buf {
			balanced[i] = trit.Balanced(int8(b))
		}
	}

	var packed []byte
	if h.Flags&FlagPackPresent != 0 {
		packed = make([]byte, h.NBytes)
		if _, err := io.ReadFull(r, packed); err != nil {
			return h, meta, balanced, nil, fmt.Errorf("container: t3proto read packed: %w", err)
		}
	}

	return h, meta, balanced, packed, nil
}
