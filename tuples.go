package binprot

import (
	"io"

	"github.com/binprotio/binprot/internal/shape"
	"github.com/binprotio/binprot/internal/utils"
)

// Tuple2 is a fixed-arity positional product (§4.2): its elements are
// written back-to-back with no length prefix or tag, in field order.
type Tuple2[A, B any] struct {
	F0 A
	F1 B
}

func (t Tuple2[A, B]) WriteBinProt(w io.Writer) error {
	if err := Write(w, t.F0); err != nil {
		return utils.WrapError("writing tuple element 0", err)
	}
	if err := Write(w, t.F1); err != nil {
		return utils.WrapError("writing tuple element 1", err)
	}
	return nil
}

func (t *Tuple2[A, B]) ReadBinProt(r io.Reader) error {
	if err := Read(r, &t.F0); err != nil {
		return utils.WrapError("reading tuple element 0", err)
	}
	if err := Read(r, &t.F1); err != nil {
		return utils.WrapError("reading tuple element 1", err)
	}
	return nil
}

func (t Tuple2[A, B]) BinProtSize() int { return SizeOf(t.F0) + SizeOf(t.F1) }

func (Tuple2[A, B]) BinProtShape(ctx *shape.Context) shape.Shape {
	var a A
	var b B
	return shape.Tuple(ShapeValueOf(ctx, a), ShapeValueOf(ctx, b))
}

// Tuple3 is a fixed-arity positional product of three elements.
type Tuple3[A, B, C any] struct {
	F0 A
	F1 B
	F2 C
}

func (t Tuple3[A, B, C]) WriteBinProt(w io.Writer) error {
	for i, v := range []any{t.F0, t.F1, t.F2} {
		if err := Write(w, v); err != nil {
			return utils.WrapError(elemContext(i), err)
		}
	}
	return nil
}

func (t *Tuple3[A, B, C]) ReadBinProt(r io.Reader) error {
	if err := Read(r, &t.F0); err != nil {
		return utils.WrapError("reading tuple element 0", err)
	}
	if err := Read(r, &t.F1); err != nil {
		return utils.WrapError("reading tuple element 1", err)
	}
	if err := Read(r, &t.F2); err != nil {
		return utils.WrapError("reading tuple element 2", err)
	}
	return nil
}

func (t Tuple3[A, B, C]) BinProtSize() int { return SizeOf(t.F0) + SizeOf(t.F1) + SizeOf(t.F2) }

func (Tuple3[A, B, C]) BinProtShape(ctx *shape.Context) shape.Shape {
	var a A
	var b B
	var c C
	return shape.Tuple(ShapeValueOf(ctx, a), ShapeValueOf(ctx, b), ShapeValueOf(ctx, c))
}

// Tuple4 is a fixed-arity positional product of four elements.
type Tuple4[A, B, C, D any] struct {
	F0 A
	F1 B
	F2 C
	F3 D
}

func (t Tuple4[A, B, C, D]) WriteBinProt(w io.Writer) error {
	for i, v := range []any{t.F0, t.F1, t.F2, t.F3} {
		if err := Write(w, v); err != nil {
			return utils.WrapError(elemContext(i), err)
		}
	}
	return nil
}

func (t *Tuple4[A, B, C, D]) ReadBinProt(r io.Reader) error {
	if err := Read(r, &t.F0); err != nil {
		return utils.WrapError("reading tuple element 0", err)
	}
	if err := Read(r, &t.F1); err != nil {
		return utils.WrapError("reading tuple element 1", err)
	}
	if err := Read(r, &t.F2); err != nil {
		return utils.WrapError("reading tuple element 2", err)
	}
	if err := Read(r, &t.F3); err != nil {
		return utils.WrapError("reading tuple element 3", err)
	}
	return nil
}

func (t Tuple4[A, B, C, D]) BinProtSize() int {
	return SizeOf(t.F0) + SizeOf(t.F1) + SizeOf(t.F2) + SizeOf(t.F3)
}

func (Tuple4[A, B, C, D]) BinProtShape(ctx *shape.Context) shape.Shape {
	var a A
	var b B
	var c C
	var d D
	return shape.Tuple(ShapeValueOf(ctx, a), ShapeValueOf(ctx, b), ShapeValueOf(ctx, c), ShapeValueOf(ctx, d))
}
