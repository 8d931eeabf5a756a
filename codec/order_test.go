package codec

import (
	"bytes"
	"math"
	"sort"
	"testing"
)

func TestOrderedUint64PreservesOrder(t *testing.T) {
	values := []uint64{0, 1, 2, 255, 256, math.MaxUint32, math.MaxUint64}
	c := OrderedUint64()
	assertByteOrderMatchesValueOrder(t, c, values)
}

func TestOrderedInt64PreservesOrder(t *testing.T) {
	values := []int64{math.MinInt64, -1000, -1, 0, 1, 1000, math.MaxInt64}
	c := OrderedInt64()
	assertByteOrderMatchesValueOrder(t, c, values)
}

func assertByteOrderMatchesValueOrder[T int64 | uint64](t *testing.T, c Codec[T], values []T) {
	t.Helper()
	encoded := make([][]byte, len(values))
	for i, v := range values {
		b, err := c.Encode(v)
		if err != nil {
			t.Fatalf("Encode(%v): %v", v, err)
		}
		encoded[i] = b
	}

	sorted := make([][]byte, len(encoded))
	copy(sorted, encoded)
	sort.Slice(sorted, func(i, j int) bool { return bytes.Compare(sorted[i], sorted[j]) < 0 })

	for i := range encoded {
		if !bytes.Equal(encoded[i], sorted[i]) {
			t.Fatalf("byte order does not match value order at index %d: values were presented pre-sorted", i)
		}
	}

	for _, b := range encoded {
		v, err := c.Decode(b)
		if err != nil {
			t.Fatalf("Decode: %v", err)
		}
		_ = v
	}
}

func TestOrderedInt64RoundTrip(t *testing.T) {
	c := OrderedInt64()
	for _, v := range []int64{math.MinInt64, -1, 0, 1, math.MaxInt64} {
		b, err := c.Encode(v)
		if err != nil {
			t.Fatalf("Encode(%d): %v", v, err)
		}
		got, err := c.Decode(b)
		if err != nil {
			t.Fatalf("Decode: %v", err)
		}
		if got != v {
			t.Errorf("got %d, want %d", got, v)
		}
	}
}
