package binprot

import (
	"io"
	"reflect"
	"sort"
	"strconv"

	"github.com/binprotio/binprot/internal/derive"
	"github.com/binprotio/binprot/internal/shape"
	"github.com/binprotio/binprot/internal/utils"
	"github.com/binprotio/binprot/internal/wire"
)

// Nat0 is a non-negative integer encoded with the width-minimal Nat0 codec
// (§4.1) rather than the signed codec used for a plain int64 field.
type Nat0 uint64

func (n Nat0) WriteBinProt(w io.Writer) error { return wire.WriteNat0(w, uint64(n)) }

func (n *Nat0) ReadBinProt(r io.Reader) error {
	v, err := wire.ReadNat0(r)
	if err != nil {
		return err
	}
	*n = Nat0(v)
	return nil
}

func (n Nat0) BinProtSize() int { return SizeOf(uint64(n)) }

func (Nat0) BinProtShape(*shape.Context) shape.Shape { return shape.IntShape() }

// Bytes is a raw byte string (§4.2), distinct from a UTF-8 String: it
// writes a Nat0 length prefix followed by the raw bytes, with no UTF-8
// validation on read.
type Bytes []byte

func (b Bytes) WriteBinProt(w io.Writer) error { return wire.WriteBytes(w, []byte(b)) }

func (b *Bytes) ReadBinProt(r io.Reader) error {
	v, err := wire.ReadBytes(r)
	if err != nil {
		return err
	}
	*b = v
	return nil
}

func (b Bytes) BinProtSize() int {
	return SizeOf(uint64(len(b))) + len(b)
}

func (Bytes) BinProtShape(*shape.Context) shape.Shape { return shape.ArrayShape(shape.CharShape()) }

// Option is the explicit form of bin_prot's option type (§4.2): present
// (Some, tag 0x01 + payload) or absent (None, tag 0x00). Prefer a plain Go
// pointer for option-typed struct fields; Option exists for call sites
// that want the distinction to be visible in the type itself.
type Option[T any] struct {
	Valid bool
	Value T
}

// Some wraps v as a present option value.
func Some[T any](v T) Option[T] { return Option[T]{Valid: true, Value: v} }

// None is the absent option value.
func None[T any]() Option[T] { return Option[T]{} }

func (o Option[T]) WriteBinProt(w io.Writer) error {
	if !o.Valid {
		_, err := w.Write([]byte{0x00})
		return err
	}
	if _, err := w.Write([]byte{0x01}); err != nil {
		return err
	}
	return Write(w, o.Value)
}

func (o *Option[T]) ReadBinProt(r io.Reader) error {
	var tag [1]byte
	if _, err := io.ReadFull(r, tag[:]); err != nil {
		return err
	}
	switch tag[0] {
	case 0x00:
		*o = Option[T]{}
		return nil
	case 0x01:
		var v T
		if err := Read(r, &v); err != nil {
			return err
		}
		*o = Option[T]{Valid: true, Value: v}
		return nil
	default:
		return &utils.UnexpectedOptionValueError{Value: tag[0]}
	}
}

func (o Option[T]) BinProtSize() int {
	if !o.Valid {
		return 1
	}
	return 1 + SizeOf(o.Value)
}

func (Option[T]) BinProtShape(ctx *shape.Context) shape.Shape {
	var zero T
	return shape.OptionShape(ShapeValueOf(ctx, zero))
}

// Box is a boxed-by-indirection wrapper (§4.4): it delegates every
// capability transparently to its pointee, the representation generated
// code uses for recursive fields (`option(self)` and friends).
type Box[T any] struct {
	Value *T
}

func NewBox[T any](v T) Box[T] { return Box[T]{Value: &v} }

func (b Box[T]) WriteBinProt(w io.Writer) error { return Write(w, *b.Value) }

func (b *Box[T]) ReadBinProt(r io.Reader) error {
	var v T
	if err := Read(r, &v); err != nil {
		return err
	}
	b.Value = &v
	return nil
}

func (b Box[T]) BinProtSize() int { return SizeOf(*b.Value) }

func (Box[T]) BinProtShape(ctx *shape.Context) shape.Shape {
	var zero T
	return ShapeValueOf(ctx, zero)
}

// Vector is a Nat0-length-prefixed homogeneous sequence (§4.2). A plain Go
// slice works equally well through the reflective derive path; Vector
// exists for call sites that want the capability methods directly on the
// collection type itself.
type Vector[T any] []T

func (v Vector[T]) WriteBinProt(w io.Writer) error {
	if err := wire.WriteNat0(w, uint64(len(v))); err != nil {
		return err
	}
	for i, elem := range v {
		if err := Write(w, elem); err != nil {
			return utils.WrapError(elemContext(i), err)
		}
	}
	return nil
}

func (v *Vector[T]) ReadBinProt(r io.Reader) error {
	n, err := wire.ReadNat0(r)
	if err != nil {
		return utils.WrapError("reading sequence length", err)
	}
	if err := utils.ValidateAdvertisedLength(n, "sequence length"); err != nil {
		return err
	}
	out := make(Vector[T], n)
	for i := range out {
		if err := Read(r, &out[i]); err != nil {
			return utils.WrapError("reading element "+strconv.Itoa(i), err)
		}
	}
	*v = out
	return nil
}

func (v Vector[T]) BinProtSize() int {
	total := SizeOf(uint64(len(v)))
	for _, elem := range v {
		total += SizeOf(elem)
	}
	return total
}

func (Vector[T]) BinProtShape(ctx *shape.Context) shape.Shape {
	var zero T
	return shape.ArrayShape(ShapeValueOf(ctx, zero))
}

// Float32Vector is a Nat0-length-prefixed sequence of float32 values
// written in native byte order (§9's deliberate compatibility quirk),
// unlike every other multi-byte primitive in the format.
type Float32Vector []float32

func (v Float32Vector) WriteBinProt(w io.Writer) error {
	if err := wire.WriteNat0(w, uint64(len(v))); err != nil {
		return err
	}
	for _, elem := range v {
		if err := wire.WriteFloat32Native(w, elem); err != nil {
			return err
		}
	}
	return nil
}

func (v *Float32Vector) ReadBinProt(r io.Reader) error {
	n, err := wire.ReadNat0(r)
	if err != nil {
		return utils.WrapError("reading sequence length", err)
	}
	if err := utils.ValidateAdvertisedLength(n, "sequence length"); err != nil {
		return err
	}
	out := make(Float32Vector, n)
	for i := range out {
		f, err := wire.ReadFloat32Native(r)
		if err != nil {
			return utils.WrapError("reading element "+strconv.Itoa(i), err)
		}
		out[i] = f
	}
	*v = out
	return nil
}

func (v Float32Vector) BinProtSize() int { return SizeOf(uint64(len(v))) + 4*len(v) }

func (Float32Vector) BinProtShape(*shape.Context) shape.Shape {
	return shape.ArrayShape(shape.FloatShape())
}

// WithLen wraps a value with a Nat0 length prefix that is computed on
// write and, per §9's design note, simply discarded on read rather than
// used to bound the inner decode.
type WithLen[T any] struct {
	Value T
}

func (w WithLen[T]) WriteBinProt(out io.Writer) error {
	if err := wire.WriteNat0(out, uint64(SizeOf(w.Value))); err != nil {
		return err
	}
	return Write(out, w.Value)
}

func (w *WithLen[T]) ReadBinProt(r io.Reader) error {
	if _, err := wire.ReadNat0(r); err != nil {
		return utils.WrapError("reading length prefix", err)
	}
	var v T
	if err := Read(r, &v); err != nil {
		return err
	}
	w.Value = v
	return nil
}

func (w WithLen[T]) BinProtSize() int {
	inner := SizeOf(w.Value)
	return SizeOf(uint64(inner)) + inner
}

func (WithLen[T]) BinProtShape(ctx *shape.Context) shape.Shape {
	var zero T
	return ShapeValueOf(ctx, zero)
}

func elemContext(i int) string {
	return "writing element " + strconv.Itoa(i)
}

// OrderedMap is a key-ordered association list (§4.2/§4.6): Nat0 size
// prefix followed by key/value pairs written in ascending key order.
// Reading rejects a duplicate key.
type OrderedMap[K comparable, V any] struct {
	keys   []K
	values map[K]V
	less   func(a, b K) bool
}

// NewOrderedMap builds an OrderedMap whose keys are written in the order
// given by less.
func NewOrderedMap[K comparable, V any](less func(a, b K) bool) *OrderedMap[K, V] {
	return &OrderedMap[K, V]{values: make(map[K]V), less: less}
}

// Set inserts or overwrites the value at key.
func (m *OrderedMap[K, V]) Set(key K, value V) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Get returns the value at key and whether it was present.
func (m *OrderedMap[K, V]) Get(key K) (V, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Len returns the number of entries.
func (m *OrderedMap[K, V]) Len() int { return len(m.keys) }

func (m *OrderedMap[K, V]) sortedKeys() []K {
	keys := append([]K(nil), m.keys...)
	sort.Slice(keys, func(i, j int) bool { return m.less(keys[i], keys[j]) })
	return keys
}

func (m *OrderedMap[K, V]) WriteBinProt(w io.Writer) error {
	if err := wire.WriteNat0(w, uint64(len(m.keys))); err != nil {
		return err
	}
	for _, k := range m.sortedKeys() {
		if err := Write(w, k); err != nil {
			return utils.WrapError("writing map key", err)
		}
		if err := Write(w, m.values[k]); err != nil {
			return utils.WrapError("writing map value", err)
		}
	}
	return nil
}

func (m *OrderedMap[K, V]) ReadBinProt(r io.Reader) error {
	n, err := wire.ReadNat0(r)
	if err != nil {
		return utils.WrapError("reading map size", err)
	}
	if err := utils.ValidateAdvertisedLength(n, "map size"); err != nil {
		return err
	}
	m.keys = nil
	m.values = make(map[K]V, n)
	for i := uint64(0); i < n; i++ {
		var k K
		if err := Read(r, &k); err != nil {
			return utils.WrapError("reading map key", err)
		}
		if _, ok := m.values[k]; ok {
			return &utils.DuplicateMapKeyError{Key: k}
		}
		var v V
		if err := Read(r, &v); err != nil {
			return utils.WrapError("reading map value", err)
		}
		m.keys = append(m.keys, k)
		m.values[k] = v
	}
	return nil
}

func (m *OrderedMap[K, V]) BinProtSize() int {
	total := SizeOf(uint64(len(m.keys)))
	for _, k := range m.keys {
		total += SizeOf(k) + SizeOf(m.values[k])
	}
	return total
}

func (m *OrderedMap[K, V]) BinProtShape(ctx *shape.Context) shape.Shape {
	var k K
	var v V
	return shape.OrderedMapShape(ShapeValueOf(ctx, k), ShapeValueOf(ctx, v))
}

// ShapeValueOf is a typed convenience wrapper over the reflective shape
// engine, used by the generic wrapper types above to shape their type
// parameters without needing a live instance.
func ShapeValueOf[T any](ctx *shape.Context, _ T) shape.Shape {
	t := reflect.TypeOf((*T)(nil)).Elem()
	return derive.ShapeValue(ctx, t)
}
