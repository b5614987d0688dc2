package wire

import (
	"encoding/binary"
	"io"
)

// WriteFixedI64LE writes v as exactly 8 raw little-endian bytes, the
// framing width used by the top-level sized-value convention and the
// streaming buffer helper — distinct from WriteI64's width-minimal
// variable-length encoding, which is never used for framing.
func WriteFixedI64LE(w io.Writer, v int64) error {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(v))
	_, err := w.Write(buf[:])
	return err
}

// ReadFixedI64LE reads exactly 8 raw little-endian bytes as a signed
// 64-bit integer.
func ReadFixedI64LE(r io.Reader) (int64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return int64(binary.LittleEndian.Uint64(buf[:])), nil
}
