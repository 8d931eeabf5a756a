package cltest

import (
	"errors"
	"testing"

	"github.com/r-near/near-sdk-go/codec"
	"github.com/r-near/near-sdk-go/collections"
)

// RunIterableSetTests runs a comprehensive test suite against
// collections.IterableSet, once per removal strategy.
func RunIterableSetTests(t *testing.T, name string, factory HostFactory) {
	t.Run(name, func(t *testing.T) {
		for _, useReverse := range []bool{false, true} {
			variant := "LinearScan"
			if useReverse {
				variant = "ReverseIndex"
			}
			t.Run(variant, func(t *testing.T) {
				t.Run("AddContains", func(t *testing.T) { testIterableSetAddContains(t, factory, useReverse) })
				t.Run("RemoveSwapsLast", func(t *testing.T) { testIterableSetRemoveSwapsLast(t, factory, useReverse) })
				t.Run("Clear", func(t *testing.T) { testIterableSetClear(t, factory, useReverse) })
				t.Run("IteratorInvalidated", func(t *testing.T) { testIterableSetIteratorInvalidated(t, factory, useReverse) })
			})
		}
	})
}

func newIterableSet(t *testing.T, factory HostFactory, useReverse bool) *collections.IterableSet[string] {
	a := newAdapter(factory)
	var opts []collections.IterableMapOption
	if useReverse {
		opts = append(opts, collections.WithReverseIndex())
	}
	s, err := collections.NewIterableSet[string](a, []byte("is"), codec.String(), opts...)
	if err != nil {
		t.Fatalf("NewIterableSet: %v", err)
	}
	return s
}

func testIterableSetAddContains(t *testing.T, factory HostFactory, useReverse bool) {
	s := newIterableSet(t, factory, useReverse)

	_ = s.Add("a")
	_ = s.Add("b")
	_ = s.Add("a")

	n, _ := s.Len()
	if n != 2 {
		t.Fatalf("Len() = %d; want 2 (duplicate Add must not grow the set)", n)
	}
	if ok, _ := s.Contains("a"); !ok {
		t.Fatalf("Contains(a) = false; want true")
	}
}

func testIterableSetRemoveSwapsLast(t *testing.T, factory HostFactory, useReverse bool) {
	s := newIterableSet(t, factory, useReverse)
	for _, k := range []string{"a", "b", "c", "d"} {
		_ = s.Add(k)
	}

	ok, err := s.Remove("a")
	if err != nil || !ok {
		t.Fatalf("Remove(a) = %v, %v; want true, nil", ok, err)
	}
	n, _ := s.Len()
	if n != 3 {
		t.Fatalf("Len() after Remove = %d; want 3", n)
	}

	it, err := s.Values()
	if err != nil {
		t.Fatalf("Values: %v", err)
	}
	got, err := it.ToSlice()
	if err != nil || len(got) != 3 {
		t.Fatalf("Values().ToSlice() = %v, %v; want 3 members", got, err)
	}
	if got[0] != "d" {
		t.Fatalf("Values()[0] = %q; want d (last member swapped into removed slot)", got[0])
	}
}

func testIterableSetClear(t *testing.T, factory HostFactory, useReverse bool) {
	s := newIterableSet(t, factory, useReverse)
	for _, k := range []string{"a", "b", "c"} {
		_ = s.Add(k)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	n, _ := s.Len()
	if n != 0 {
		t.Fatalf("Len() after Clear = %d; want 0", n)
	}
	if ok, _ := s.Contains("a"); ok {
		t.Fatalf("Contains(a) after Clear = true; want false")
	}
}

func testIterableSetIteratorInvalidated(t *testing.T, factory HostFactory, useReverse bool) {
	s := newIterableSet(t, factory, useReverse)
	_ = s.Add("a")
	_ = s.Add("b")

	it, err := s.Values()
	if err != nil {
		t.Fatalf("Values: %v", err)
	}
	if _, ok, err := it.Next(); err != nil || !ok {
		t.Fatalf("Next() = %v, %v; want a value", ok, err)
	}
	if err := s.Add("c"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if _, _, err := it.Next(); !errors.Is(err, collections.ErrInvalidated) {
		t.Fatalf("Next() after mutation = %v; want ErrInvalidated", err)
	}
}
