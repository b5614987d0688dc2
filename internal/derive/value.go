package derive

import (
	"fmt"
	"io"
	"reflect"
	"sort"

	"github.com/binprotio/binprot/internal/shape"
	"github.com/binprotio/binprot/internal/utils"
	"github.com/binprotio/binprot/internal/wire"
)

// Writer, Reader, Sizer and Shaper mirror the root package's capability
// interfaces by method set, not by import — a concrete type satisfies both
// without either package depending on the other, which is what lets the
// engine check "did the component already supply its own capability?"
// before falling back to generic record/primitive reflection.
type Writer interface {
	WriteBinProt(w io.Writer) error
}

type Reader interface {
	ReadBinProt(r io.Reader) error
}

type Sizer interface {
	BinProtSize() int
}

type Shaper interface {
	BinProtShape(ctx *shape.Context) shape.Shape
}

// WriteValue encodes rv, preferring a custom Writer implementation and
// otherwise dispatching by reflect.Kind (§4.2/§4.4).
func WriteValue(w io.Writer, rv reflect.Value) error {
	if wv, ok := asWriter(rv); ok {
		return wv.WriteBinProt(w)
	}

	switch rv.Kind() {
	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int, reflect.Int64:
		return wire.WriteI64(w, rv.Int())
	case reflect.Uint8, reflect.Uint16, reflect.Uint32:
		return wire.WriteI64(w, int64(rv.Uint()))
	case reflect.Uint, reflect.Uint64:
		return wire.WriteNat0(w, rv.Uint())
	case reflect.Float64:
		return wire.WriteFloat64(w, rv.Float())
	case reflect.Float32:
		return wire.WriteFloat32Native(w, float32(rv.Float()))
	case reflect.Bool:
		return wire.WriteBool(w, rv.Bool())
	case reflect.String:
		return wire.WriteString(w, rv.String())
	case reflect.Slice:
		return writeSlice(w, rv)
	case reflect.Map:
		return writeMap(w, rv)
	case reflect.Ptr:
		return writeOption(w, rv)
	case reflect.Array:
		return writeTuple(w, rv)
	case reflect.Struct:
		return writeStruct(w, rv)
	default:
		return fmt.Errorf("binprot: cannot encode value of kind %s", rv.Kind())
	}
}

func writeSlice(w io.Writer, rv reflect.Value) error {
	if rv.Type().Elem().Kind() == reflect.Uint8 {
		return wire.WriteBytes(w, rv.Bytes())
	}
	n := rv.Len()
	if err := wire.WriteNat0(w, uint64(n)); err != nil {
		return err
	}
	native := rv.Type().Elem().Kind() == reflect.Float32
	for i := 0; i < n; i++ {
		elem := rv.Index(i)
		if native {
			if err := wire.WriteFloat32Native(w, float32(elem.Float())); err != nil {
				return err
			}
			continue
		}
		if err := WriteValue(w, elem); err != nil {
			return utils.WrapError(fmt.Sprintf("writing element %d", i), err)
		}
	}
	return nil
}

func writeMap(w io.Writer, rv reflect.Value) error {
	keys := rv.MapKeys()
	if err := wire.WriteNat0(w, uint64(len(keys))); err != nil {
		return err
	}
	sort.Slice(keys, func(i, j int) bool {
		return fmt.Sprint(keys[i].Interface()) < fmt.Sprint(keys[j].Interface())
	})
	for _, k := range keys {
		if err := WriteValue(w, k); err != nil {
			return utils.WrapError("writing map key", err)
		}
		if err := WriteValue(w, rv.MapIndex(k)); err != nil {
			return utils.WrapError("writing map value", err)
		}
	}
	return nil
}

func writeOption(w io.Writer, rv reflect.Value) error {
	if rv.IsNil() {
		_, err := w.Write([]byte{0x00})
		return err
	}
	if _, err := w.Write([]byte{0x01}); err != nil {
		return err
	}
	return WriteValue(w, rv.Elem())
}

func writeTuple(w io.Writer, rv reflect.Value) error {
	for i := 0; i < rv.Len(); i++ {
		if err := WriteValue(w, rv.Index(i)); err != nil {
			return utils.WrapError(fmt.Sprintf("writing tuple element %d", i), err)
		}
	}
	return nil
}

func writeStruct(w io.Writer, rv reflect.Value) error {
	props := PropertiesOf(rv.Type())
	for _, f := range props.Fields {
		if err := WriteValue(w, rv.Field(f.Index)); err != nil {
			return utils.WrapError(fmt.Sprintf("writing field %q", f.Name), err)
		}
	}
	return nil
}

// ReadValue decodes into rv (which must be addressable), preferring a
// custom Reader implementation and otherwise dispatching by reflect.Kind.
func ReadValue(r io.Reader, rv reflect.Value) error {
	if rv.CanAddr() {
		if rd, ok := rv.Addr().Interface().(Reader); ok {
			return rd.ReadBinProt(r)
		}
	}

	switch rv.Kind() {
	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int, reflect.Int64:
		v, err := wire.ReadSigned(r)
		if err != nil {
			return err
		}
		if err := utils.CheckIntRange(v, rv.Type().Bits(), true); err != nil {
			return err
		}
		rv.SetInt(v)
		return nil
	case reflect.Uint8, reflect.Uint16, reflect.Uint32:
		v, err := wire.ReadSigned(r)
		if err != nil {
			return err
		}
		if err := utils.CheckIntRange(v, rv.Type().Bits(), false); err != nil {
			return err
		}
		rv.SetUint(uint64(v))
		return nil
	case reflect.Uint, reflect.Uint64:
		v, err := wire.ReadNat0(r)
		if err != nil {
			return err
		}
		if bits := rv.Type().Bits(); bits < 64 {
			if max := uint64(1)<<uint(bits) - 1; v > max {
				return &utils.IntRangeError{Value: int64(v), Bits: bits, Signed: false}
			}
		}
		rv.SetUint(v)
		return nil
	case reflect.Float64:
		v, err := wire.ReadFloat64(r)
		if err != nil {
			return err
		}
		rv.SetFloat(v)
		return nil
	case reflect.Float32:
		v, err := wire.ReadFloat32Native(r)
		if err != nil {
			return err
		}
		rv.SetFloat(float64(v))
		return nil
	case reflect.Bool:
		v, err := wire.ReadBool(r)
		if err != nil {
			return err
		}
		rv.SetBool(v)
		return nil
	case reflect.String:
		v, err := wire.ReadString(r)
		if err != nil {
			return err
		}
		rv.SetString(v)
		return nil
	case reflect.Slice:
		return readSlice(r, rv)
	case reflect.Map:
		return readMap(r, rv)
	case reflect.Ptr:
		return readOption(r, rv)
	case reflect.Array:
		return readTuple(r, rv)
	case reflect.Struct:
		return readStruct(r, rv)
	default:
		return fmt.Errorf("binprot: cannot decode value of kind %s", rv.Kind())
	}
}

func readSlice(r io.Reader, rv reflect.Value) error {
	elemType := rv.Type().Elem()
	if elemType.Kind() == reflect.Uint8 {
		b, err := wire.ReadBytes(r)
		if err != nil {
			return err
		}
		rv.SetBytes(b)
		return nil
	}
	n, err := wire.ReadNat0(r)
	if err != nil {
		return utils.WrapError("reading sequence length", err)
	}
	if err := utils.ValidateAdvertisedLength(n, "sequence length"); err != nil {
		return err
	}
	out := reflect.MakeSlice(rv.Type(), int(n), int(n))
	native := elemType.Kind() == reflect.Float32
	for i := 0; i < int(n); i++ {
		if native {
			v, err := wire.ReadFloat32Native(r)
			if err != nil {
				return err
			}
			out.Index(i).SetFloat(float64(v))
			continue
		}
		if err := ReadValue(r, out.Index(i)); err != nil {
			return utils.WrapError(fmt.Sprintf("reading element %d", i), err)
		}
	}
	rv.Set(out)
	return nil
}

func readMap(r io.Reader, rv reflect.Value) error {
	n, err := wire.ReadNat0(r)
	if err != nil {
		return utils.WrapError("reading map size", err)
	}
	if err := utils.ValidateAdvertisedLength(n, "map size"); err != nil {
		return err
	}
	t := rv.Type()
	out := reflect.MakeMapWithSize(t, int(n))
	for i := 0; i < int(n); i++ {
		k := reflect.New(t.Key()).Elem()
		if err := ReadValue(r, k); err != nil {
			return utils.WrapError("reading map key", err)
		}
		if out.MapIndex(k).IsValid() {
			return &utils.DuplicateMapKeyError{Key: k.Interface()}
		}
		v := reflect.New(t.Elem()).Elem()
		if err := ReadValue(r, v); err != nil {
			return utils.WrapError("reading map value", err)
		}
		out.SetMapIndex(k, v)
	}
	rv.Set(out)
	return nil
}

func readOption(r io.Reader, rv reflect.Value) error {
	var tag [1]byte
	if _, err := io.ReadFull(r, tag[:]); err != nil {
		return err
	}
	switch tag[0] {
	case 0x00:
		rv.Set(reflect.Zero(rv.Type()))
		return nil
	case 0x01:
		out := reflect.New(rv.Type().Elem())
		if err := ReadValue(r, out.Elem()); err != nil {
			return err
		}
		rv.Set(out)
		return nil
	default:
		return &utils.UnexpectedOptionValueError{Value: tag[0]}
	}
}

func readTuple(r io.Reader, rv reflect.Value) error {
	for i := 0; i < rv.Len(); i++ {
		if err := ReadValue(r, rv.Index(i)); err != nil {
			return utils.WrapError(fmt.Sprintf("reading tuple element %d", i), err)
		}
	}
	return nil
}

func readStruct(r io.Reader, rv reflect.Value) error {
	props := PropertiesOf(rv.Type())
	for _, f := range props.Fields {
		if err := ReadValue(r, rv.Field(f.Index)); err != nil {
			return utils.WrapError(fmt.Sprintf("reading field %q", f.Name), err)
		}
	}
	return nil
}

// SizeValue returns the encoded length of rv without materializing the
// encoding, by deriving it from WriteValue through a counting sink (§4.3).
func SizeValue(rv reflect.Value) int {
	var cw wire.CountingWriter
	if err := WriteValue(&cw, rv); err != nil {
		panic(fmt.Sprintf("binprot: BinProtSize: %v", err)) // CountingWriter never errors
	}
	return cw.Len()
}

// ShapeValue computes the structural shape of t (§4.6), preferring a
// type's own Shaper implementation and otherwise dispatching by Kind.
func ShapeValue(ctx *shape.Context, t reflect.Type) shape.Shape {
	if sh, ok := typeShaper(t); ok {
		return sh.BinProtShape(ctx)
	}

	switch t.Kind() {
	case reflect.Int32:
		return shape.I32Shape()
	case reflect.Int8, reflect.Int16, reflect.Int, reflect.Int64:
		return shape.IntShape()
	case reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint, reflect.Uint64:
		return shape.IntShape()
	case reflect.Float32, reflect.Float64:
		return shape.FloatShape()
	case reflect.Bool:
		return shape.BoolShape()
	case reflect.String:
		return shape.StringShape()
	case reflect.Slice:
		if t.Elem().Kind() == reflect.Uint8 {
			return shape.ArrayShape(shape.CharShape())
		}
		return shape.ArrayShape(ShapeValue(ctx, t.Elem()))
	case reflect.Map:
		return shape.HashMapShape(ShapeValue(ctx, t.Key()), ShapeValue(ctx, t.Elem()))
	case reflect.Ptr:
		return shape.OptionShape(ShapeValue(ctx, t.Elem()))
	case reflect.Array:
		children := make([]shape.Shape, t.Len())
		for i := range children {
			children[i] = ShapeValue(ctx, t.Elem())
		}
		return shape.Tuple(children...)
	case reflect.Struct:
		return ctx.Shape(t, func(ctx *shape.Context) shape.Shape {
			props := PropertiesOf(t)
			fields := make([]shape.Field, len(props.Fields))
			for i, f := range props.Fields {
				fields[i] = shape.Field{Name: f.Name, Shape: ShapeValue(ctx, t.Field(f.Index).Type)}
			}
			return shape.Record(fields...)
		})
	default:
		panic("binprot: cannot shape type " + t.String())
	}
}

func asWriter(rv reflect.Value) (Writer, bool) {
	if rv.CanInterface() {
		if wv, ok := rv.Interface().(Writer); ok {
			return wv, true
		}
	}
	if rv.CanAddr() {
		if wv, ok := rv.Addr().Interface().(Writer); ok {
			return wv, true
		}
	}
	return nil, false
}

func typeShaper(t reflect.Type) (Shaper, bool) {
	pt := reflect.PointerTo(t)
	if pt.Implements(reflect.TypeOf((*Shaper)(nil)).Elem()) {
		return reflect.New(t).Interface().(Shaper), true
	}
	if t.Implements(reflect.TypeOf((*Shaper)(nil)).Elem()) {
		return reflect.Zero(t).Interface().(Shaper), true
	}
	return nil, false
}
