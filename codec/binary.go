package codec

import (
	"encoding/binary"
	"fmt"
	"math"
	"reflect"
)

// --------------------------------------------------------------------------
// Binary Codec
// --------------------------------------------------------------------------
//
// This is the library's default self-describing compact binary form: a
// leading tag byte followed by a length-prefixed (or fixed-width) payload,
// generalized via reflection from one fixed-shape message encoding to a
// closed universe of Kinds via recursion.

// Tag bytes identifying the encoded Kind. These are part of the wire
// format and must never be renumbered once a collection has data encoded
// with them.
const (
	tagBool    byte = 1
	tagInt64   byte = 2
	tagUint64  byte = 3
	tagFloat64 byte = 4
	tagString  byte = 5
	tagBytes   byte = 6
	tagSlice   byte = 7
	tagMap     byte = 8
)

type binaryCodec[T any] struct{}

// Binary returns the default self-describing binary Codec for T. T must be
// (or recursively contain only) bool, a sized int/uint/float variant,
// string, []byte, slices, or maps keyed by string - the closed universe
// the library calls for. Any other shape surfaces as ErrUnsupportedType from
// Encode.
func Binary[T any]() Codec[T] {
	return binaryCodec[T]{}
}

func (binaryCodec[T]) Encode(v T) ([]byte, error) {
	buf := make([]byte, 0, 16)
	buf, err := encodeValue(buf, reflect.ValueOf(v))
	if err != nil {
		return nil, err
	}
	return buf, nil
}

func (binaryCodec[T]) Decode(b []byte) (T, error) {
	var zero T
	rv, rest, err := decodeValue(b, reflect.TypeOf(zero))
	if err != nil {
		return zero, err
	}
	if len(rest) != 0 {
		return zero, fmt.Errorf("%w: %d trailing bytes", ErrTruncated, len(rest))
	}
	out, ok := rv.Interface().(T)
	if !ok {
		return zero, ErrUnsupportedType
	}
	return out, nil
}

// --------------------------------------------------------------------------
// Encoding
// --------------------------------------------------------------------------

func encodeValue(buf []byte, rv reflect.Value) ([]byte, error) {
	if !rv.IsValid() {
		return nil, ErrUnsupportedType
	}

	switch rv.Kind() {
	case reflect.Bool:
		buf = append(buf, tagBool)
		if rv.Bool() {
			buf = append(buf, 1)
		} else {
			buf = append(buf, 0)
		}
		return buf, nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		buf = append(buf, tagInt64)
		return appendUint64(buf, uint64(rv.Int())), nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		buf = append(buf, tagUint64)
		return appendUint64(buf, rv.Uint()), nil

	case reflect.Float32, reflect.Float64:
		buf = append(buf, tagFloat64)
		return appendUint64(buf, math.Float64bits(rv.Float())), nil

	case reflect.String:
		buf = append(buf, tagString)
		s := rv.String()
		buf = appendUint32(buf, uint32(len(s)))
		return append(buf, s...), nil

	case reflect.Slice, reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			buf = append(buf, tagBytes)
			b := reflect.ValueOf(rv.Interface()).Convert(reflect.TypeOf([]byte{})).Bytes()
			buf = appendUint32(buf, uint32(len(b)))
			return append(buf, b...), nil
		}
		buf = append(buf, tagSlice)
		buf = appendUint32(buf, uint32(rv.Len()))
		for i := 0; i < rv.Len(); i++ {
			var err error
			buf, err = encodeValue(buf, rv.Index(i))
			if err != nil {
				return nil, err
			}
		}
		return buf, nil

	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, ErrUnsupportedType
		}
		buf = append(buf, tagMap)
		buf = appendUint32(buf, uint32(rv.Len()))
		iter := rv.MapRange()
		for iter.Next() {
			key := iter.Key().String()
			buf = appendUint32(buf, uint32(len(key)))
			buf = append(buf, key...)
			var err error
			buf, err = encodeValue(buf, iter.Value())
			if err != nil {
				return nil, err
			}
		}
		return buf, nil

	default:
		return nil, ErrUnsupportedType
	}
}

func appendUint64(buf []byte, v uint64) []byte {
	var tmp [8]byte
	binary.BigEndian.PutUint64(tmp[:], v)
	return append(buf, tmp[:]...)
}

func appendUint32(buf []byte, v uint32) []byte {
	var tmp [4]byte
	binary.BigEndian.PutUint32(tmp[:], v)
	return append(buf, tmp[:]...)
}

// --------------------------------------------------------------------------
// Decoding
// --------------------------------------------------------------------------

func decodeValue(b []byte, want reflect.Type) (reflect.Value, []byte, error) {
	if len(b) < 1 {
		return reflect.Value{}, nil, ErrTruncated
	}
	tag, rest := b[0], b[1:]

	switch tag {
	case tagBool:
		if len(rest) < 1 {
			return reflect.Value{}, nil, ErrTruncated
		}
		return reflect.ValueOf(rest[0] != 0), rest[1:], nil

	case tagInt64:
		if len(rest) < 8 {
			return reflect.Value{}, nil, ErrTruncated
		}
		v := int64(binary.BigEndian.Uint64(rest[:8]))
		return reflect.ValueOf(v).Convert(concreteOrDefault(want, reflect.TypeOf(int64(0)))), rest[8:], nil

	case tagUint64:
		if len(rest) < 8 {
			return reflect.Value{}, nil, ErrTruncated
		}
		v := binary.BigEndian.Uint64(rest[:8])
		return reflect.ValueOf(v).Convert(concreteOrDefault(want, reflect.TypeOf(uint64(0)))), rest[8:], nil

	case tagFloat64:
		if len(rest) < 8 {
			return reflect.Value{}, nil, ErrTruncated
		}
		v := math.Float64frombits(binary.BigEndian.Uint64(rest[:8]))
		return reflect.ValueOf(v).Convert(concreteOrDefault(want, reflect.TypeOf(float64(0)))), rest[8:], nil

	case tagString:
		n, rest2, err := readUint32(rest)
		if err != nil {
			return reflect.Value{}, nil, err
		}
		if uint64(len(rest2)) < uint64(n) {
			return reflect.Value{}, nil, ErrTruncated
		}
		return reflect.ValueOf(string(rest2[:n])), rest2[n:], nil

	case tagBytes:
		n, rest2, err := readUint32(rest)
		if err != nil {
			return reflect.Value{}, nil, err
		}
		if uint64(len(rest2)) < uint64(n) {
			return reflect.Value{}, nil, ErrTruncated
		}
		out := make([]byte, n)
		copy(out, rest2[:n])
		return reflect.ValueOf(out), rest2[n:], nil

	case tagSlice:
		n, rest2, err := readUint32(rest)
		if err != nil {
			return reflect.Value{}, nil, err
		}
		elemType := reflect.TypeOf([]any{}).Elem()
		if want != nil && want.Kind() == reflect.Slice {
			elemType = want.Elem()
		}
		out := reflect.MakeSlice(reflect.SliceOf(elemType), 0, int(n))
		for i := uint32(0); i < n; i++ {
			var elem reflect.Value
			elem, rest2, err = decodeValue(rest2, elemType)
			if err != nil {
				return reflect.Value{}, nil, err
			}
			out = reflect.Append(out, elem)
		}
		return out, rest2, nil

	case tagMap:
		n, rest2, err := readUint32(rest)
		if err != nil {
			return reflect.Value{}, nil, err
		}
		valType := reflect.TypeOf(map[string]any{}).Elem()
		mapType := reflect.MapOf(reflect.TypeOf(""), valType)
		if want != nil && want.Kind() == reflect.Map {
			valType = want.Elem()
			mapType = want
		}
		out := reflect.MakeMapWithSize(mapType, int(n))
		for i := uint32(0); i < n; i++ {
			var klen uint32
			klen, rest2, err = readUint32(rest2)
			if err != nil {
				return reflect.Value{}, nil, err
			}
			if uint64(len(rest2)) < uint64(klen) {
				return reflect.Value{}, nil, ErrTruncated
			}
			key := string(rest2[:klen])
			rest2 = rest2[klen:]
			var val reflect.Value
			val, rest2, err = decodeValue(rest2, valType)
			if err != nil {
				return reflect.Value{}, nil, err
			}
			out.SetMapIndex(reflect.ValueOf(key), val)
		}
		return out, rest2, nil

	default:
		return reflect.Value{}, nil, fmt.Errorf("%w: unknown tag %d", ErrUnsupportedType, tag)
	}
}

func readUint32(b []byte) (uint32, []byte, error) {
	if len(b) < 4 {
		return 0, nil, ErrTruncated
	}
	return binary.BigEndian.Uint32(b[:4]), b[4:], nil
}

// concreteOrDefault returns want if it is non-nil and convertible from
// fallback's kind, otherwise fallback. This lets decodeValue recover the
// caller's exact numeric width (e.g. int32 rather than int64) when it
// knows the target type statically, while still working when it does not
// (nested slice/map element types).
func concreteOrDefault(want, fallback reflect.Type) reflect.Type {
	if want == nil {
		return fallback
	}
	switch want.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return want
	default:
		return fallback
	}
}
