package wire

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/binprotio/binprot/internal/utils"
)

// WriteNat0 writes v as a width-minimal non-negative variable-length
// integer: one byte if v < 0x80, else a tag byte (CodeInt16/32/64) followed
// by the little-endian value in that width.
func WriteNat0(w io.Writer, v uint64) error {
	switch {
	case v < 0x80:
		_, err := w.Write([]byte{byte(v)})
		return err
	case v < 0x10000:
		var buf [3]byte
		buf[0] = CodeInt16
		binary.LittleEndian.PutUint16(buf[1:], uint16(v))
		_, err := w.Write(buf[:])
		return err
	case v < 0x100000000:
		var buf [5]byte
		buf[0] = CodeInt32
		binary.LittleEndian.PutUint32(buf[1:], uint32(v))
		_, err := w.Write(buf[:])
		return err
	default:
		var buf [9]byte
		buf[0] = CodeInt64
		binary.LittleEndian.PutUint64(buf[1:], v)
		_, err := w.Write(buf[:])
		return err
	}
}

// WriteI64 writes v as a width-minimal signed variable-length integer. A
// positive value picks the smallest width that fits its magnitude unsigned;
// a value in [-128, -1] is written as CodeNegInt8 plus the signed byte;
// otherwise the smallest signed width that fits is chosen.
func WriteI64(w io.Writer, v int64) error {
	switch {
	case v >= 0:
		switch {
		case v < 0x80:
			_, err := w.Write([]byte{byte(v)})
			return err
		case v < 0x8000:
			var buf [3]byte
			buf[0] = CodeInt16
			binary.LittleEndian.PutUint16(buf[1:], uint16(v))
			_, err := w.Write(buf[:])
			return err
		case v < 0x80000000:
			var buf [5]byte
			buf[0] = CodeInt32
			binary.LittleEndian.PutUint32(buf[1:], uint32(v))
			_, err := w.Write(buf[:])
			return err
		default:
			var buf [9]byte
			buf[0] = CodeInt64
			binary.LittleEndian.PutUint64(buf[1:], uint64(v))
			_, err := w.Write(buf[:])
			return err
		}
	case v >= -0x80:
		_, err := w.Write([]byte{CodeNegInt8, byte(v)})
		return err
	case v >= -0x8000:
		var buf [3]byte
		buf[0] = CodeInt16
		binary.LittleEndian.PutUint16(buf[1:], uint16(v))
		_, err := w.Write(buf[:])
		return err
	case v >= -0x80000000:
		var buf [5]byte
		buf[0] = CodeInt32
		binary.LittleEndian.PutUint32(buf[1:], uint32(v))
		_, err := w.Write(buf[:])
		return err
	default:
		var buf [9]byte
		buf[0] = CodeInt64
		binary.LittleEndian.PutUint64(buf[1:], uint64(v))
		_, err := w.Write(buf[:])
		return err
	}
}

// ReadNat0 reads a non-negative variable-length integer. CodeNegInt8 is
// invalid for Nat0 and reports an error.
func ReadNat0(r io.Reader) (uint64, error) {
	var tag [1]byte
	if _, err := io.ReadFull(r, tag[:]); err != nil {
		return 0, err
	}

	switch tag[0] {
	case CodeNegInt8:
		return 0, utils.WrapError("decoding Nat0 tag", fmt.Errorf("invalid tag 0x%02x for Nat0", tag[0]))
	case CodeInt16:
		var buf [2]byte
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return 0, err
		}
		return uint64(binary.LittleEndian.Uint16(buf[:])), nil
	case CodeInt32:
		var buf [4]byte
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return 0, err
		}
		return uint64(binary.LittleEndian.Uint32(buf[:])), nil
	case CodeInt64:
		var buf [8]byte
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return 0, err
		}
		return binary.LittleEndian.Uint64(buf[:]), nil
	default:
		return uint64(tag[0]), nil
	}
}

// ReadSigned reads a variable-length signed integer. CodeNegInt8 followed by
// a non-negative byte is invalid (it would not be width-minimal).
func ReadSigned(r io.Reader) (int64, error) {
	var tag [1]byte
	if _, err := io.ReadFull(r, tag[:]); err != nil {
		return 0, err
	}

	switch tag[0] {
	case CodeNegInt8:
		var buf [1]byte
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return 0, err
		}
		v := int64(int8(buf[0]))
		if v >= 0 {
			return 0, utils.WrapError("decoding signed integer", fmt.Errorf("non-negative byte 0x%02x after CodeNegInt8 tag", buf[0]))
		}
		return v, nil
	case CodeInt16:
		var buf [2]byte
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return 0, err
		}
		return int64(int16(binary.LittleEndian.Uint16(buf[:]))), nil
	case CodeInt32:
		var buf [4]byte
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return 0, err
		}
		return int64(int32(binary.LittleEndian.Uint32(buf[:]))), nil
	case CodeInt64:
		var buf [8]byte
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return 0, err
		}
		return int64(binary.LittleEndian.Uint64(buf[:])), nil
	default:
		return int64(tag[0]), nil
	}
}
