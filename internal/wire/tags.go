// Package wire implements the low-level bin_prot wire format: the
// variable-length integer codec and the raw primitive write/read routines
// that every higher-level capability (records, variants, collections)
// eventually bottoms out in.
package wire

// Tag bytes used by the variable-length integer codec (§3/§4.1). CodeInt16,
// CodeInt32 and CodeInt64 are shared between Nat0 and signed-integer
// encoding; CodeNegInt8 is exclusive to the signed flavor.
const (
	CodeNegInt8 byte = 0xff
	CodeInt16   byte = 0xfe
	CodeInt32   byte = 0xfd
	CodeInt64   byte = 0xfc
)
