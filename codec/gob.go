package codec

import (
	"bytes"
	"encoding/gob"
	"fmt"
)

type gobCodec[T any] struct{}

// Gob wraps encoding/gob. Handles recursive struct graphs Binary's closed
// kind universe rejects, without pulling in a third-party dependency for
// callers who don't need Msgpack's cross-language wire format.
func Gob[T any]() Codec[T] {
	return gobCodec[T]{}
}

func (gobCodec[T]) Encode(v T) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, fmt.Errorf("codec: gob encode: %w", err)
	}
	return buf.Bytes(), nil
}

func (gobCodec[T]) Decode(b []byte) (T, error) {
	var v T
	if err := gob.NewDecoder(bytes.NewReader(b)).Decode(&v); err != nil {
		return v, fmt.Errorf("codec: gob decode: %w", err)
	}
	return v, nil
}
