package codec

import "encoding/binary"

// --------------------------------------------------------------------------
// Order-Preserving Numeric Codecs
// --------------------------------------------------------------------------
//
// OrderedMap keys are compared by the lexicographic byte order of their
// encoding , not by decoding and comparing numerically.
// Plain big-endian encoding already orders unsigned integers correctly;
// signed integers need the sign bit flipped first so that negative values
// (high bit set under two's complement) sort before non-negative ones.

// OrderedUint64 encodes uint64 keys as 8-byte big-endian, which is already
// order-preserving under byte comparison.
func OrderedUint64() Codec[uint64] {
	return orderedUint64Codec{}
}

type orderedUint64Codec struct{}

func (orderedUint64Codec) Encode(v uint64) ([]byte, error) {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b, nil
}

func (orderedUint64Codec) Decode(b []byte) (uint64, error) {
	if len(b) != 8 {
		return 0, ErrTruncated
	}
	return binary.BigEndian.Uint64(b), nil
}

// OrderedInt64 encodes int64 keys as 8-byte big-endian with the sign bit
// flipped, so that byte comparison matches signed numeric comparison
// (math.MinInt64 sorts first, math.MaxInt64 sorts last).
func OrderedInt64() Codec[int64] {
	return orderedInt64Codec{}
}

type orderedInt64Codec struct{}

const signBit = uint64(1) << 63

func (orderedInt64Codec) Encode(v int64) ([]byte, error) {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(v)^signBit)
	return b, nil
}

func (orderedInt64Codec) Decode(b []byte) (int64, error) {
	if len(b) != 8 {
		return 0, ErrTruncated
	}
	return int64(binary.BigEndian.Uint64(b) ^ signBit), nil
}
