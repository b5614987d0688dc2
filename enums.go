package binprot

import "github.com/binprotio/binprot/internal/derive"

// Case, EnumCodec and RegisterEnum re-export the ordinary tagged-variant
// derive engine (§4.5) under the public API: a variant interface type I and
// one Case[I] per declared case, dispatched by a one-byte declaration-order
// index.
type Case[I any] = derive.Case[I]

type EnumCodec[I any] = derive.EnumCodec[I]

// RegisterEnum builds the dispatch table for an ordinary tagged variant. It
// panics if there are more than 256 cases (§4.5).
func RegisterEnum[I any](typeName string, cases ...Case[I]) *EnumCodec[I] {
	return derive.RegisterEnum[I](typeName, cases...)
}

// PolyCase, PolyEnumCodec and RegisterPolyEnum re-export the polymorphic-
// variant derive engine (§4.5): cases dispatch by a 4-byte name-hash tag
// rather than a declaration index, so declaration order never affects the
// wire encoding.
type PolyCase[I any] = derive.PolyCase[I]

type PolyEnumCodec[I any] = derive.PolyEnumCodec[I]

// RegisterPolyEnum builds the dispatch table for a polymorphic variant. It
// panics if two case names hash to the same 32-bit tag.
func RegisterPolyEnum[I any](typeName string, cases ...PolyCase[I]) *PolyEnumCodec[I] {
	return derive.RegisterPolyEnum[I](typeName, cases...)
}
