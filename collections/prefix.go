package collections

import "github.com/r-near/near-sdk-go/store"

// --------------------------------------------------------------------------
// Prefix Composer
// --------------------------------------------------------------------------

// childSep separates a parent prefix from a child tag. It is distinct from
// store's MetaSep/EntrySep/IndexSep/ReverseSep. A tag is checked only
// against those reserved separators and may itself contain childSep; the
// length prefix on the tag keeps such children disjoint.
var childSep = []byte(":c:")

// Child derives a new prefix nested under parent, disjoint from any other
// Child produced from the same parent with a different tag and disjoint
// from parent's own entry keys. It is a pure function holding no state.
//
// tag is length-prefixed rather than merely concatenated, so a tag that
// happens to contain bytes equal to another tag's prefix can never alias
// it (e.g. Child(p, "ab") and Child(p, "a") sharing a literal "ab..."
// byte run would otherwise collide under naive concatenation).
func Child(parent, tag []byte) ([]byte, error) {
	if err := store.CheckPrefix(tag); err != nil {
		return nil, withKey(newErrorf(CodeEncode, "child tag contains a reserved separator"), string(tag))
	}
	out := make([]byte, 0, len(parent)+len(childSep)+len(tag)+8)
	out = append(out, parent...)
	out = append(out, childSep...)
	out = appendLengthPrefixed(out, tag)
	return out, nil
}

func appendLengthPrefixed(buf, tag []byte) []byte {
	n := uint64(len(tag))
	for i := 7; i >= 0; i-- {
		buf = append(buf, byte(n>>(8*i)))
	}
	return append(buf, tag...)
}
