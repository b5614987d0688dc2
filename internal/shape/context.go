package shape

import "reflect"

// Context tracks which types are currently being shaped, so that a type
// reached again while still building its own shape is recognized as
// recursive instead of recursing forever (§4.6).
//
// The depth emitted for a recursive back-reference is always 0, matching
// the reference implementation's single-recursion-point limitation (§9):
// correct when at most one recursion point is active per type graph, not
// when recursions interleave at multiple depths.
type Context struct {
	active map[reflect.Type]*bool
}

// NewContext returns an empty recursion-tracking context.
func NewContext() *Context {
	return &Context{active: make(map[reflect.Type]*bool)}
}

// Shape computes the shape of t via build, wrapping the result in
// Application when t was reached again during its own construction, and
// returning RecApp(0, nil) for the inner, repeated reference itself.
func (c *Context) Shape(t reflect.Type, build func(*Context) Shape) Shape {
	if hit, ok := c.active[t]; ok {
		*hit = true
		return Shape{Kind: KindRecApp, Depth: 0}
	}

	hit := new(bool)
	c.active[t] = hit
	inner := build(c)
	delete(c.active, t)

	if *hit {
		innerCopy := inner
		return Shape{Kind: KindApplication, Inner: &innerCopy, Params: []Shape{}}
	}
	return inner
}
