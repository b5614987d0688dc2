// Package binprot reads and writes values in the wire format historically
// known as bin_prot: a byte-for-byte structural binary serialization
// scheme for records, variants, tuples, primitives, and collections,
// designed to interoperate with peers built against the sibling
// ecosystem's own implementation.
//
// A type participates by implementing Writer, Reader, Sizer and Shaper
// directly, or by leaving the corresponding capability to be derived via
// reflection over its exported fields (see Write, Read, RegisterEnum and
// RegisterPolyEnum). Composite types satisfy these capabilities by
// delegating to their components in declaration order, so a record of
// records, or a variant holding a vector of options, needs no additional
// wiring beyond its immediate fields.
package binprot

import (
	"io"
	"reflect"

	"github.com/binprotio/binprot/internal/derive"
	"github.com/binprotio/binprot/internal/shape"
	"github.com/binprotio/binprot/internal/utils"
	"github.com/binprotio/binprot/internal/wire"
)

// Writer encodes a value's wire representation.
type Writer interface {
	WriteBinProt(w io.Writer) error
}

// Reader decodes a value's wire representation into the receiver.
type Reader interface {
	ReadBinProt(r io.Reader) error
}

// Sizer reports a value's encoded length without materializing it.
type Sizer interface {
	BinProtSize() int
}

// Shaper reports a type's structural shape (§4.6), used to compute its
// digest and verify schema agreement with a peer.
type Shaper interface {
	BinProtShape(ctx *shape.Context) shape.Shape
}

// Write encodes v to w, preferring v's own WriteBinProt method and
// otherwise deriving the encoding by reflection over v's exported fields.
func Write(w io.Writer, v any) error {
	if wv, ok := v.(Writer); ok {
		return wv.WriteBinProt(w)
	}
	return derive.WriteValue(w, reflect.ValueOf(v))
}

// Read decodes into v, which must be a non-nil pointer. It prefers v's own
// ReadBinProt method and otherwise derives the decoding by reflection.
func Read(r io.Reader, v any) error {
	if rv, ok := v.(Reader); ok {
		return rv.ReadBinProt(r)
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		panic("binprot: Read requires a non-nil pointer")
	}
	return derive.ReadValue(r, rv.Elem())
}

// SizeOf returns the encoded length of v without writing it out, deriving
// Size from Write via a byte-counting sink (§4.3).
func SizeOf(v any) int {
	if sv, ok := v.(Sizer); ok {
		return sv.BinProtSize()
	}
	var cw wire.CountingWriter
	if err := Write(&cw, v); err != nil {
		panic("binprot: SizeOf: " + err.Error())
	}
	return cw.Len()
}

// ShapeOf returns the structural shape of T (§4.6), used to compute a
// digest for schema-agreement checks with a peer.
func ShapeOf[T any]() shape.Shape {
	t := reflect.TypeOf((*T)(nil)).Elem()
	return derive.ShapeValue(shape.NewContext(), t)
}

// Digest reduces a shape tree to its 128-bit structural fingerprint, for
// comparison against a peer's own Digest of the same declared type.
func Digest(s shape.Shape) [16]byte {
	return shape.Digest(s)
}

// WriteSized writes an 8-byte little-endian signed length prefix — the
// value's SizeOf — followed by the value itself, the framing convention
// top-level bin_prot streams use (§4.3/§9).
func WriteSized(w io.Writer, v any) error {
	size := SizeOf(v)
	if err := wire.WriteFixedI64LE(w, int64(size)); err != nil {
		return err
	}
	return Write(w, v)
}

// ReadSized reads an 8-byte little-endian signed length prefix and then
// decodes into v. The prefix is used purely as framing: per §9's design
// note, it is discarded after being read rather than used to bound the
// inner decode.
func ReadSized(r io.Reader, v any) error {
	if _, err := wire.ReadFixedI64LE(r); err != nil {
		return err
	}
	return Read(r, v)
}

// Unexpected* / duplicate-key / range / custom-decoder errors form the
// fixed taxonomy surfaced to callers beyond plain I/O errors (§5), defined
// in internal/derive (the two variant-index errors) and internal/utils (the
// rest) and re-exported here under their public names.
type (
	UnexpectedVariantIndexError     = derive.ErrUnexpectedVariantIndex
	UnexpectedPolyVariantIndexError = derive.ErrUnexpectedPolyVariantIndex
	UnexpectedUnitValueError        = utils.UnexpectedUnitValueError
	UnexpectedBoolValueError        = utils.UnexpectedBoolValueError
	UnexpectedOptionValueError      = utils.UnexpectedOptionValueError
	UTF8Error                       = utils.UTF8Error
	DuplicateMapKeyError            = utils.DuplicateMapKeyError
	IntRangeError                   = utils.IntRangeError
	CustomDecoderError              = utils.CustomDecoderError
)
