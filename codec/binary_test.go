package codec

import (
	"errors"
	"testing"
)

func TestBinaryRoundTripScalars(t *testing.T) {
	if b, err := Binary[int64]().Encode(42); err != nil {
		t.Fatalf("Encode: %v", err)
	} else if v, err := Binary[int64]().Decode(b); err != nil {
		t.Fatalf("Decode: %v", err)
	} else if v != 42 {
		t.Errorf("got %d, want 42", v)
	}

	if b, err := Binary[string]().Encode("hello"); err != nil {
		t.Fatalf("Encode: %v", err)
	} else if v, err := Binary[string]().Decode(b); err != nil {
		t.Fatalf("Decode: %v", err)
	} else if v != "hello" {
		t.Errorf("got %q, want %q", v, "hello")
	}

	if b, err := Binary[bool]().Encode(true); err != nil {
		t.Fatalf("Encode: %v", err)
	} else if v, err := Binary[bool]().Decode(b); err != nil {
		t.Fatalf("Decode: %v", err)
	} else if !v {
		t.Errorf("got false, want true")
	}
}

func TestBinaryRoundTripNegativeInt(t *testing.T) {
	c := Binary[int32]()
	b, err := c.Encode(-17)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	v, err := c.Decode(b)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if v != -17 {
		t.Errorf("got %d, want -17", v)
	}
}

func TestBinaryRoundTripSlice(t *testing.T) {
	c := Binary[[]string]()
	in := []string{"a", "b", "c"}
	b, err := c.Encode(in)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	out, err := c.Decode(b)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(out) != len(in) {
		t.Fatalf("got %d elements, want %d", len(out), len(in))
	}
	for i := range in {
		if out[i] != in[i] {
			t.Errorf("element %d: got %q, want %q", i, out[i], in[i])
		}
	}
}

func TestBinaryRoundTripMap(t *testing.T) {
	c := Binary[map[string]int64]()
	in := map[string]int64{"x": 1, "y": 2}
	b, err := c.Encode(in)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	out, err := c.Decode(b)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	for k, v := range in {
		if out[k] != v {
			t.Errorf("key %q: got %d, want %d", k, out[k], v)
		}
	}
}

func TestBinaryUnsupportedType(t *testing.T) {
	type unsupported struct{ Ch chan int }
	c := Binary[unsupported]()
	if _, err := c.Encode(unsupported{Ch: make(chan int)}); !errors.Is(err, ErrUnsupportedType) {
		t.Errorf("got err %v, want ErrUnsupportedType", err)
	}
}

func TestBinaryDecodeTruncated(t *testing.T) {
	c := Binary[int64]()
	if _, err := c.Decode([]byte{tagInt64, 0, 0}); !errors.Is(err, ErrTruncated) {
		t.Errorf("got err %v, want ErrTruncated", err)
	}
}
