package wire

import (
	"encoding/binary"
	"io"
	"math"
	"unicode/utf8"

	"github.com/binprotio/binprot/internal/utils"
)

// WriteUnit writes the single-byte unit encoding.
func WriteUnit(w io.Writer) error {
	_, err := w.Write([]byte{0x00})
	return err
}

// ReadUnit reads and validates the unit encoding.
func ReadUnit(r io.Reader) error {
	var buf [1]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return err
	}
	if buf[0] != 0x00 {
		return &utils.UnexpectedUnitValueError{Value: buf[0]}
	}
	return nil
}

// WriteBool writes v as 0x00/0x01.
func WriteBool(w io.Writer, v bool) error {
	b := byte(0x00)
	if v {
		b = 0x01
	}
	_, err := w.Write([]byte{b})
	return err
}

// ReadBool reads and validates the bool encoding.
func ReadBool(r io.Reader) (bool, error) {
	var buf [1]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return false, err
	}
	switch buf[0] {
	case 0x00:
		return false, nil
	case 0x01:
		return true, nil
	default:
		return false, &utils.UnexpectedBoolValueError{Value: buf[0]}
	}
}

// WriteFloat64 writes v as 8 raw little-endian bytes.
func WriteFloat64(w io.Writer, v float64) error {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
	_, err := w.Write(buf[:])
	return err
}

// ReadFloat64 reads 8 raw little-endian bytes as a float64.
func ReadFloat64(r io.Reader) (float64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(buf[:])), nil
}

// WriteBytes writes a Nat0 length prefix followed by the raw bytes of b.
func WriteBytes(w io.Writer, b []byte) error {
	if err := WriteNat0(w, uint64(len(b))); err != nil {
		return err
	}
	_, err := w.Write(b)
	return err
}

// ReadBytes reads a Nat0-length-prefixed raw byte buffer.
func ReadBytes(r io.Reader) ([]byte, error) {
	n, err := ReadNat0(r)
	if err != nil {
		return nil, utils.WrapError("reading bytes length", err)
	}
	if err := utils.ValidateAdvertisedLength(n, "bytes length"); err != nil {
		return nil, err
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, utils.WrapError("reading bytes payload", err)
	}
	return buf, nil
}

// WriteString writes a Nat0 length prefix followed by the UTF-8 bytes of s.
func WriteString(w io.Writer, s string) error {
	if err := WriteNat0(w, uint64(len(s))); err != nil {
		return err
	}
	_, err := io.WriteString(w, s)
	return err
}

// ReadString reads a Nat0-length-prefixed string and validates it is UTF-8.
func ReadString(r io.Reader) (string, error) {
	b, err := ReadBytes(r)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", &utils.UTF8Error{Bytes: b}
	}
	return string(b), nil
}

// WriteFloat32Native writes a single float32 in the platform's native byte
// order, the compatibility quirk used only for sequences of float32.
func WriteFloat32Native(w io.Writer, v float32) error {
	var buf [4]byte
	binary.NativeEndian.PutUint32(buf[:], math.Float32bits(v))
	_, err := w.Write(buf[:])
	return err
}

// ReadFloat32Native reads a single native-endian float32.
func ReadFloat32Native(r io.Reader) (float32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return math.Float32frombits(binary.NativeEndian.Uint32(buf[:])), nil
}
