package derive

import (
	"fmt"
	"io"
	"reflect"

	"github.com/binprotio/binprot/internal/shape"
	"github.com/binprotio/binprot/internal/utils"
	"github.com/binprotio/binprot/internal/wire"
)

// ErrUnexpectedVariantIndex reports a case-index byte that names no
// declared case of an ordinary tagged variant (§4.4).
type ErrUnexpectedVariantIndex struct {
	Index    byte
	TypeName string
}

func (e *ErrUnexpectedVariantIndex) Error() string {
	return fmt.Sprintf("binprot: unexpected variant index %d for %s", e.Index, e.TypeName)
}

// Case names one concrete, registered case of a variant type I: New must
// return a pointer to a fresh zero value of the case's concrete type.
type Case[I any] struct {
	Name string
	New  func() I
}

// EnumCodec dispatches an ordinary tagged variant (§4.4's "ordinary mode")
// by a single declaration-order case index byte.
type EnumCodec[I any] struct {
	typeName string
	cases    []Case[I]
	byType   map[reflect.Type]int
}

// RegisterEnum builds the dispatch table for an ordinary tagged variant. It
// panics if there are more than 256 cases, matching the reference
// implementation's derive-time rejection (§4.4).
func RegisterEnum[I any](typeName string, cases ...Case[I]) *EnumCodec[I] {
	if len(cases) > 256 {
		panic(fmt.Sprintf("binprot: %s has more than 256 cases", typeName))
	}
	c := &EnumCodec[I]{
		typeName: typeName,
		cases:    cases,
		byType:   make(map[reflect.Type]int, len(cases)),
	}
	for i, cd := range cases {
		c.byType[reflect.TypeOf(cd.New())] = i
	}
	return c
}

func (c *EnumCodec[I]) indexOf(v I) (int, error) {
	t := reflect.TypeOf(v)
	idx, ok := c.byType[t]
	if !ok {
		return 0, fmt.Errorf("binprot: %s: value of type %s is not a registered case", c.typeName, t)
	}
	return idx, nil
}

// Write encodes v as its case index byte followed by its payload.
func (c *EnumCodec[I]) Write(w io.Writer, v I) error {
	idx, err := c.indexOf(v)
	if err != nil {
		return err
	}
	if _, err := w.Write([]byte{byte(idx)}); err != nil {
		return err
	}
	return WriteValue(w, structValueOf(reflect.ValueOf(v)))
}

// Read decodes a case index byte and its payload into a fresh instance of
// the matching registered case.
func (c *EnumCodec[I]) Read(r io.Reader) (I, error) {
	var zero I
	var tag [1]byte
	if _, err := io.ReadFull(r, tag[:]); err != nil {
		return zero, err
	}
	if int(tag[0]) >= len(c.cases) {
		return zero, &ErrUnexpectedVariantIndex{Index: tag[0], TypeName: c.typeName}
	}
	v := c.cases[tag[0]].New()
	rv := reflect.ValueOf(v)
	target := rv
	if target.Kind() == reflect.Ptr {
		target = target.Elem()
	}
	if err := ReadValue(r, target); err != nil {
		return zero, utils.WrapError(fmt.Sprintf("reading case %q", c.cases[tag[0]].Name), err)
	}
	return v, nil
}

// Size returns the encoded length of v.
func (c *EnumCodec[I]) Size(v I) int {
	var cw wire.CountingWriter
	_ = c.Write(&cw, v)
	return cw.Len()
}

// Shape returns Variant([(name, field shapes)…]) in declaration order.
func (c *EnumCodec[I]) Shape(ctx *shape.Context) shape.Shape {
	cases := make([]shape.Case, len(c.cases))
	for i, cd := range c.cases {
		t := reflect.TypeOf(cd.New())
		for t.Kind() == reflect.Ptr {
			t = t.Elem()
		}
		props := PropertiesOf(t)
		args := make([]shape.Shape, len(props.Fields))
		for j, f := range props.Fields {
			args[j] = ShapeValue(ctx, t.Field(f.Index).Type)
		}
		cases[i] = shape.Case{Name: cd.Name, Args: args}
	}
	return shape.Variant(cases...)
}
