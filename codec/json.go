package codec

import (
	"encoding/json"
	"fmt"
)

type jsonCodec[T any] struct{}

// JSON wraps encoding/json. Useful for values a caller already serializes
// as JSON elsewhere (logs, RPC payloads) and wants stored in the same
// shape, at the cost of Binary's more compact framing.
func JSON[T any]() Codec[T] {
	return jsonCodec[T]{}
}

func (jsonCodec[T]) Encode(v T) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("codec: json encode: %w", err)
	}
	return b, nil
}

func (jsonCodec[T]) Decode(b []byte) (T, error) {
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return v, fmt.Errorf("codec: json decode: %w", err)
	}
	return v, nil
}
