package shape

import (
	"crypto/md5"
	"sort"
	"strconv"
)

// Digest reduces a shape tree to its 128-bit structural fingerprint (§4.6).
// Each constructor combines its name (and, for Base/Annotate, its uuid) with
// the digest of its children; PolyVariant iterates its case map in sorted
// key order so declaration order never affects the result.
func Digest(s Shape) [16]byte {
	switch s.Kind {
	case KindAnnotate:
		return hashParts([]byte("annotate"), uuidBytes(s), digestOf(*s.Inner))

	case KindBase:
		if len(s.Params) == 0 {
			// A parameterless base type is fully identified by its uuid.
			var out [16]byte
			copy(out[:], s.UUID.Bytes())
			return out
		}
		return hashParts([]byte("base"), uuidBytes(s), sliceDigest(s.Params))

	case KindTuple:
		return hashParts([]byte("tuple"), sliceDigest(s.Children))

	case KindRecord:
		return hashParts([]byte("record"), fieldsDigest(s.Fields))

	case KindVariant:
		return hashParts([]byte("variant"), casesDigest(s.Cases))

	case KindPolyVariant:
		return hashParts([]byte("poly_variant"), polyCasesDigest(s.PolyCases))

	case KindApplication:
		return hashParts([]byte("application"), digestOf(*s.Inner), sliceDigest(s.Params))

	case KindRecApp:
		return hashParts([]byte("rec_app"), stringDigest(strconv.FormatInt(s.Depth, 10)), sliceDigest(s.Params))

	case KindVar:
		return hashParts([]byte("var"), stringDigest(strconv.FormatInt(s.Var, 10)))

	default:
		return hashParts([]byte("unknown"))
	}
}

func uuidBytes(s Shape) []byte {
	return s.UUID.Bytes()
}

func digestOf(s Shape) []byte {
	d := Digest(s)
	return d[:]
}

// hashParts feeds each part into a single MD5 context in order and returns
// the finalized digest, mirroring the consume-then-compute pattern every
// shape constructor uses.
func hashParts(parts ...[]byte) [16]byte {
	h := md5.New()
	for _, p := range parts {
		h.Write(p)
	}
	var out [16]byte
	copy(out[:], h.Sum(nil))
	return out
}

// sliceDigest digests an ordered list of children by concatenating each
// child's own digest, matching the reference Vec<T> Digestible impl.
func sliceDigest(children []Shape) []byte {
	h := md5.New()
	for _, c := range children {
		d := Digest(c)
		h.Write(d[:])
	}
	return h.Sum(nil)
}

func stringDigest(s string) []byte {
	d := md5.Sum([]byte(s))
	return d[:]
}

// pairDigest combines a name and an already-computed child digest, matching
// the reference (String, T) tuple Digestible impl.
func pairDigest(name string, childDigest []byte) []byte {
	h := md5.New()
	h.Write(stringDigest(name))
	h.Write(childDigest)
	return h.Sum(nil)
}

func fieldsDigest(fields []Field) []byte {
	h := md5.New()
	for _, f := range fields {
		h.Write(pairDigest(f.Name, digestOf(f.Shape)))
	}
	return h.Sum(nil)
}

func casesDigest(cases []Case) []byte {
	h := md5.New()
	for _, c := range cases {
		h.Write(pairDigest(c.Name, sliceDigest(c.Args)))
	}
	return h.Sum(nil)
}

// optionDigest mirrors the reference Option<T> Digestible impl: "none" on
// its own, or "some" prefixed to the payload digest.
func optionDigest(s *Shape) []byte {
	if s == nil {
		h := md5.Sum([]byte("none"))
		return h[:]
	}
	r := hashParts([]byte("some"), digestOf(*s))
	return r[:]
}

// polyCasesDigest digests the unordered case map in sorted-by-name order,
// so constructor-declaration order never changes the result.
func polyCasesDigest(cases map[string]*Shape) []byte {
	names := make([]string, 0, len(cases))
	for name := range cases {
		names = append(names, name)
	}
	sort.Strings(names)

	h := md5.New()
	for _, name := range names {
		h.Write(pairDigest(name, optionDigest(cases[name])))
	}
	return h.Sum(nil)
}
