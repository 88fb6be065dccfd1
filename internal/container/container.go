// Package container implements the on-disk `.t3p`, `.t3v`, and
// `.t3proto` formats: little-endian fixed headers, CRC32 over header
// and payload, and the meta-only "approve" gate that decides whether a
// payload is ever read.
package container

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"

	"github.com/Nico59000/Ternary-image-codec/internal/header"
	"github.com/Nico59000/Ternary-image-codec/internal/pixel"
	"github.com/Nico59000/Ternary-image-codec/internal/trit"
)

// ErrNotApproved is returned by a reader's payload-read step when the
// caller's approve callback rejected the frame's meta.
var ErrNotApproved = fmt.Errorf("container: meta not approved")

// ErrBadMagic is returned when a container's magic bytes don't match.
var ErrBadMagic = fmt.Errorf("container: bad magic")

// ErrCRCMismatch is returned when a header or payload CRC32 check fails.
var ErrCRCMismatch = fmt.Errorf("container: crc32 mismatch")

// wordsToBytes packs a sequence of Word27 values into base-243 bytes,
// 5 unbalanced trits per byte, matching internal/trit's packer.
func wordsToBytes(words []pixel.Word27Trits) ([]byte, error) {
	trits := make([]trit.Unbalanced, 0, len(words)*27)
	for _, w := range words {
		trits = append(trits, w[:]...)
	}
	return trit.Pack243(trits)
}

// bytesToWords is the inverse of wordsToBytes, given the exact word
// count that was packed.
func bytesToWords(data []byte, numWords int) ([]pixel.Word27Trits, error) {
	trits, err := trit.Unpack243(data, numWords*27)
	if err != nil {
		return nil, err
	}
	words := make([]pixel.Word27Trits, numWords)
	for i := range words {
		copy(words[i][:], trits[i*27:(i+1)*27])
	}
	return words, nil
}

// All integers in these containers are little-endian, an
// external-interface requirement.

func writeUint16(w io.Writer, v uint16) error {
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], v)
	_, err := w.Write(buf[:])
	return err
}

func writeUint32(w io.Writer, v uint32) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	_, err := w.Write(buf[:])
	return err
}

func readUint16(r io.Reader) (uint16, error) {
	var buf [2]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(buf[:]), nil
}

func readUint32(r io.Reader) (uint32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

func checkMagic(r io.Reader, want string) error {
	buf := make([]byte, len(want))
	if _, err := io.ReadFull(r, buf); err != nil {
		return err
	}
	if string(buf) != want {
		return fmt.Errorf("%w: got %q, want %q", ErrBadMagic, buf, want)
	}
	return nil
}

// SubwordMode re-exports internal/header's stream-width tag so
// container headers don't need to import header directly at call
// sites that only build containers.
type SubwordMode = header.SubwordMode

func crc32Of(b []byte) uint32 {
	return crc32.ChecksumIEEE(b)
}
