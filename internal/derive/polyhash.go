package derive

// NameHash computes the sibling ecosystem's polymorphic-variant name hash
// over a case name (§4.5, steps 1-4): a 64-bit accumulator walked byte by
// byte with two's-complement wraparound, masked to 31 bits, then folded
// into a signed 31-bit range.
func NameHash(name string) int32 {
	var a uint64
	for i := 0; i < len(name); i++ {
		a = 223*a + uint64(name[i])
	}
	a &= 0x7fffffff

	if a > 0x3fffffff {
		return int32(int64(a) - (1 << 31))
	}
	return int32(a)
}

// PolyVariantTag derives the 32-bit wire discriminant for a polymorphic
// variant case name (§4.5, step 5): the name hash, shifted left one bit
// (discarding its top bit) with the low bit forced set.
func PolyVariantTag(name string) int32 {
	h := NameHash(name)
	return int32((uint32(h) << 1) | 1)
}
