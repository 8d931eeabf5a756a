package codec

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

type msgpackCodec[T any] struct{}

// Msgpack wraps github.com/vmihailenco/msgpack/v5. The codec of choice for
// arbitrary struct values (custodian account records, NFT metadata blobs)
// that fall outside Binary's closed kind universe but that still need a
// compact, cross-language wire format rather than Gob's Go-only encoding.
func Msgpack[T any]() Codec[T] {
	return msgpackCodec[T]{}
}

func (msgpackCodec[T]) Encode(v T) ([]byte, error) {
	b, err := msgpack.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("codec: msgpack encode: %w", err)
	}
	return b, nil
}

func (msgpackCodec[T]) Decode(b []byte) (T, error) {
	var v T
	if err := msgpack.Unmarshal(b, &v); err != nil {
		return v, fmt.Errorf("codec: msgpack decode: %w", err)
	}
	return v, nil
}
