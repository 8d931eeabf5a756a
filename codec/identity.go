package codec

// String is the canonical identity Codec for string keys and values: the
// UTF-8 bytes, unmodified. Lexicographic byte comparison of the encoding
// matches Go's native string ordering, which is what OrderedMap[string, V]
// relies on.
func String() Codec[string] {
	return stringCodec{}
}

type stringCodec struct{}

func (stringCodec) Encode(v string) ([]byte, error) { return []byte(v), nil }
func (stringCodec) Decode(b []byte) (string, error) { return string(b), nil }

// Bytes is the canonical identity Codec for []byte keys and values: the
// bytes, copied, unmodified.
func Bytes() Codec[[]byte] {
	return bytesCodec{}
}

type bytesCodec struct{}

func (bytesCodec) Encode(v []byte) ([]byte, error) {
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (bytesCodec) Decode(b []byte) ([]byte, error) {
	out := make([]byte, len(b))
	copy(out, b)
	return out, nil
}
