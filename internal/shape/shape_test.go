package shape

import (
	"encoding/hex"
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"
)

func hexDigest(d [16]byte) string {
	return hex.EncodeToString(d[:])
}

func TestDigest_PrimitiveBaseShapes(t *testing.T) {
	require.Equal(t, "698cfa4093fe5e51523842d37b92aeac", hexDigest(Digest(IntShape())))
	require.Equal(t, "1fd923acb2dd9c5d401ad5b08b1d40cd", hexDigest(Digest(FloatShape())))
	require.Equal(t, "d9a8da25d5656b016fb4dbdc2e4197fb", hexDigest(Digest(StringShape())))
	require.Equal(t, "a25306e4c5d30d35adbb5b0462a6b1b3", hexDigest(Digest(BoolShape())))
}

func TestDigest_RecordFieldOrderMatters(t *testing.T) {
	a := Record(Field{Name: "t", Shape: IntShape()}, Field{Name: "u", Shape: FloatShape()})
	b := Record(Field{Name: "u", Shape: FloatShape()}, Field{Name: "t", Shape: IntShape()})
	require.NotEqual(t, Digest(a), Digest(b))
}

func TestDigest_RecordSameStructureEqual(t *testing.T) {
	a := Record(Field{Name: "t", Shape: IntShape()})
	b := Record(Field{Name: "t", Shape: IntShape()})
	require.Equal(t, Digest(a), Digest(b))
}

func TestDigest_PolyVariantOrderIndependent(t *testing.T) {
	one := FloatShape()
	a := PolyVariant(map[string]*Shape{
		"Foo": &one,
		"Bar": nil,
	})
	two := FloatShape()
	b := PolyVariant(map[string]*Shape{
		"Bar": nil,
		"Foo": &two,
	})
	require.Equal(t, Digest(a), Digest(b))
}

func TestDigest_VariantOrderMatters(t *testing.T) {
	a := Variant(Case{Name: "A"}, Case{Name: "B"})
	b := Variant(Case{Name: "B"}, Case{Name: "A"})
	require.NotEqual(t, Digest(a), Digest(b))
}

func TestDigest_TupleChildOrderMatters(t *testing.T) {
	a := Tuple(IntShape(), FloatShape())
	b := Tuple(FloatShape(), IntShape())
	require.NotEqual(t, Digest(a), Digest(b))
}

// HashMap<int,int> and BTreeMap<int,int> have published reference digests
// (1fd943a5d8026fbd3e6746c972ab2127 and ed73a010af8ffc32cab7411d6be2d676),
// but reproducing them exactly would require the true, un-elided uuids for
// the hash-map/ordered-map/assoc-list base shapes; the reference only
// publishes their first and last hex groups (see uuids.go), so the two
// properties actually verifiable here are that the two collection shapes
// digest differently from one another and that the same shape digests
// stably across builds.
func TestDigest_HashMapAndOrderedMapDiffer(t *testing.T) {
	hm := HashMapShape(IntShape(), IntShape())
	om := OrderedMapShape(IntShape(), IntShape())
	require.NotEqual(t, Digest(hm), Digest(om))
}

func TestDigest_HashMapShapeStable(t *testing.T) {
	a := HashMapShape(IntShape(), IntShape())
	b := HashMapShape(IntShape(), IntShape())
	require.Equal(t, Digest(a), Digest(b))
}

// recursiveNode models `{foo: option(self)}`.
type recursiveNode struct {
	Foo *recursiveNode
}

func TestContext_RecursiveTypeProducesApplication(t *testing.T) {
	c := NewContext()
	t1 := reflect.TypeOf(recursiveNode{})

	var build func(*Context) Shape
	build = func(c *Context) Shape {
		return c.Shape(t1, func(c *Context) Shape {
			inner := c.Shape(t1, func(*Context) Shape {
				// Reached while t1 is still active: Context.Shape short-circuits
				// to RecApp before invoking this builder, so this branch is
				// unreachable in practice; kept only to satisfy the signature.
				return Shape{}
			})
			return Record(Field{Name: "foo", Shape: OptionShape(inner)})
		})
	}

	shape := build(c)
	require.Equal(t, KindApplication, shape.Kind)
	require.NotNil(t, shape.Inner)
	require.Equal(t, KindRecord, shape.Inner.Kind)

	foo := shape.Inner.Fields[0].Shape
	require.Equal(t, KindBase, foo.Kind) // Option wraps the RecApp marker
	require.Len(t, foo.Params, 1)
	require.Equal(t, KindRecApp, foo.Params[0].Kind)
	require.Equal(t, int64(0), foo.Params[0].Depth)
}

func TestContext_NonRecursiveTypeUnwrapped(t *testing.T) {
	c := NewContext()
	t1 := reflect.TypeOf(struct{ X int }{})
	shape := c.Shape(t1, func(*Context) Shape {
		return Record(Field{Name: "x", Shape: IntShape()})
	})
	require.Equal(t, KindRecord, shape.Kind)
}

// The recursive shape {foo: option(self)} has a published reference digest
// (2e92d51efb901fcf492f243fc1c3601d), but it is built from a Record node,
// whose own digest formula this package cannot independently verify against
// the published record vectors either (see TestShapeOf_RecordDigestVectors
// in the root package and DESIGN.md); what is verified here is that two
// independent builds of the same recursive shape agree.
func TestDigest_RecursiveShapeStable(t *testing.T) {
	build := func() Shape {
		c := NewContext()
		t1 := reflect.TypeOf(recursiveNode{})
		return c.Shape(t1, func(c *Context) Shape {
			inner := c.Shape(t1, func(*Context) Shape { return Shape{} })
			return Record(Field{Name: "foo", Shape: OptionShape(inner)})
		})
	}
	a := build()
	b := build()
	require.Equal(t, Digest(a), Digest(b))
}
