// Package shape implements the structural shape tree used to fingerprint a
// type's declared structure (§4.6): the shape tree itself, the recursion
// context that keeps recursive types finite, and the MD5-based digest.
package shape

import uuid "github.com/satori/go.uuid"

// Kind discriminates the shape tree constructors.
type Kind uint8

const (
	KindAnnotate Kind = iota
	KindBase
	KindTuple
	KindRecord
	KindVariant
	KindPolyVariant
	KindApplication
	KindRecApp
	KindVar
)

// Field is a named child of a Record shape.
type Field struct {
	Name  string
	Shape Shape
}

// Case is a named, possibly multi-argument child of a Variant shape.
type Case struct {
	Name string
	Args []Shape
}

// Shape is a node in the structural shape tree (§3/§4.6). Only the fields
// relevant to Kind are populated; the zero value of the others is ignored.
type Shape struct {
	Kind Kind

	UUID   uuid.UUID // Annotate, Base
	Inner  *Shape    // Annotate, Application
	Params []Shape   // Base type arguments, Application arguments

	Children []Shape // Tuple

	Fields []Field // Record

	Cases []Case // Variant (ordinary, ordered by declaration)

	// PolyCases maps a polymorphic-variant case name to its optional
	// argument shape. Unordered by definition: two declarations that
	// differ only in case order must produce the same digest.
	PolyCases map[string]*Shape

	Depth int64 // RecApp
	Var   int64 // Var
}

// Base constructs a parameterless or parameterized base-type shape.
func Base(id uuid.UUID, params ...Shape) Shape {
	return Shape{Kind: KindBase, UUID: id, Params: params}
}

// Tuple constructs a Tuple shape over children in order.
func Tuple(children ...Shape) Shape {
	return Shape{Kind: KindTuple, Children: children}
}

// Record constructs a Record shape over named fields in declaration order.
func Record(fields ...Field) Shape {
	return Shape{Kind: KindRecord, Fields: fields}
}

// Variant constructs an ordinary tagged-variant shape over cases in
// declaration order.
func Variant(cases ...Case) Shape {
	return Shape{Kind: KindVariant, Cases: cases}
}

// PolyVariant constructs a polymorphic-variant shape. The map is unordered
// by construction — digesting iterates it in sorted key order.
func PolyVariant(cases map[string]*Shape) Shape {
	return Shape{Kind: KindPolyVariant, PolyCases: cases}
}
