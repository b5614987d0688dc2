package derive

import (
	"encoding/binary"
	"fmt"
	"io"
	"reflect"

	"github.com/binprotio/binprot/internal/shape"
	"github.com/binprotio/binprot/internal/utils"
	"github.com/binprotio/binprot/internal/wire"
)

// ErrUnexpectedPolyVariantIndex reports a hash-derived tag that matches no
// registered case of a polymorphic variant (§4.4).
type ErrUnexpectedPolyVariantIndex struct {
	Index    int32
	TypeName string
}

func (e *ErrUnexpectedPolyVariantIndex) Error() string {
	return fmt.Sprintf("binprot: unexpected polymorphic-variant index %d for %s", e.Index, e.TypeName)
}

// PolyCase names one concrete, registered case of a polymorphic-variant
// type I: New must return a fresh zero value (or pointer to one) of the
// case's concrete type.
type PolyCase[I any] struct {
	Name string
	New  func() I
}

// PolyEnumCodec dispatches a polymorphic variant (§4.4's "polymorphic-
// variant mode") by a 4-byte name-hash tag (§4.5) instead of a declaration
// index, so case order never affects the wire encoding.
type PolyEnumCodec[I any] struct {
	typeName string
	order    []PolyCase[I]
	byTag    map[int32]PolyCase[I]
	byType   map[reflect.Type]PolyCase[I]
	tagOf    map[reflect.Type]int32
}

// RegisterPolyEnum builds the dispatch table for a polymorphic variant. It
// panics if two case names hash to the same 32-bit tag — the reference
// implementation does not check for this at derive time (§9's suggested
// hardening), but this one does.
func RegisterPolyEnum[I any](typeName string, cases ...PolyCase[I]) *PolyEnumCodec[I] {
	c := &PolyEnumCodec[I]{
		typeName: typeName,
		order:    cases,
		byTag:    make(map[int32]PolyCase[I], len(cases)),
		byType:   make(map[reflect.Type]PolyCase[I], len(cases)),
		tagOf:    make(map[reflect.Type]int32, len(cases)),
	}
	for _, cd := range cases {
		tag := PolyVariantTag(cd.Name)
		if existing, ok := c.byTag[tag]; ok {
			panic(fmt.Sprintf("binprot: %s: cases %q and %q hash to the same tag %d", typeName, existing.Name, cd.Name, tag))
		}
		t := concreteType(cd.New())
		c.byTag[tag] = cd
		c.byType[t] = cd
		c.tagOf[t] = tag
	}
	return c
}

func concreteType[T any](v T) reflect.Type {
	t := reflect.TypeOf(v)
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t
}

func structValueOf(v reflect.Value) reflect.Value {
	if v.Kind() == reflect.Ptr {
		return v.Elem()
	}
	return v
}

// Write encodes v as its 4-byte name-hash tag followed by its payload
// (fields concatenated in declaration order; zero fields write nothing).
func (c *PolyEnumCodec[I]) Write(w io.Writer, v I) error {
	t := concreteType(v)
	tag, ok := c.tagOf[t]
	if !ok {
		return fmt.Errorf("binprot: %s: value of type %s is not a registered case", c.typeName, t)
	}
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], uint32(tag))
	if _, err := w.Write(buf[:]); err != nil {
		return err
	}
	return WriteValue(w, structValueOf(reflect.ValueOf(v)))
}

// Read decodes a 4-byte name-hash tag and its payload into a fresh instance
// of the matching registered case.
func (c *PolyEnumCodec[I]) Read(r io.Reader) (I, error) {
	var zero I
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return zero, err
	}
	tag := int32(binary.LittleEndian.Uint32(buf[:]))
	cd, ok := c.byTag[tag]
	if !ok {
		return zero, &ErrUnexpectedPolyVariantIndex{Index: tag, TypeName: c.typeName}
	}
	v := cd.New()
	if err := ReadValue(r, structValueOf(reflect.ValueOf(v))); err != nil {
		return zero, utils.WrapError(fmt.Sprintf("reading case %q", cd.Name), err)
	}
	return v, nil
}

// Size returns the encoded length of v.
func (c *PolyEnumCodec[I]) Size(v I) int {
	var cw wire.CountingWriter
	_ = c.Write(&cw, v)
	return cw.Len()
}

// Shape returns PolyVariant({name -> optional child shape}) (§4.4/§4.6): no
// payload shapes to None, a single field shapes as itself, and more than
// one field shapes as a tuple of the field shapes.
func (c *PolyEnumCodec[I]) Shape(ctx *shape.Context) shape.Shape {
	cases := make(map[string]*shape.Shape, len(c.order))
	for _, cd := range c.order {
		t := concreteType(cd.New())
		props := PropertiesOf(t)
		switch len(props.Fields) {
		case 0:
			cases[cd.Name] = nil
		case 1:
			s := ShapeValue(ctx, t.Field(props.Fields[0].Index).Type)
			cases[cd.Name] = &s
		default:
			args := make([]shape.Shape, len(props.Fields))
			for i, f := range props.Fields {
				args[i] = ShapeValue(ctx, t.Field(f.Index).Type)
			}
			s := shape.Tuple(args...)
			cases[cd.Name] = &s
		}
	}
	return shape.PolyVariant(cases)
}
