package cltest

import (
	"errors"
	"testing"

	"github.com/r-near/near-sdk-go/codec"
	"github.com/r-near/near-sdk-go/collections"
)

// RunIterableMapTests runs a comprehensive test suite against
// collections.IterableMap, once with the reverse index enabled and once
// without, since Remove takes a different code path in each case.
func RunIterableMapTests(t *testing.T, name string, factory HostFactory) {
	t.Run(name, func(t *testing.T) {
		for _, useReverse := range []bool{false, true} {
			variant := "LinearScan"
			if useReverse {
				variant = "ReverseIndex"
			}
			t.Run(variant, func(t *testing.T) {
				t.Run("SetGetContains", func(t *testing.T) { testIterableMapSetGetContains(t, factory, useReverse) })
				t.Run("RemoveSwapsLast", func(t *testing.T) { testIterableMapRemoveSwapsLast(t, factory, useReverse) })
				t.Run("Clear", func(t *testing.T) { testIterableMapClear(t, factory, useReverse) })
				t.Run("EnumerateKeysValuesEntries", func(t *testing.T) { testIterableMapEnumerate(t, factory, useReverse) })
				t.Run("IteratorInvalidated", func(t *testing.T) { testIterableMapIteratorInvalidated(t, factory, useReverse) })
			})
		}
		t.Run("ReopenWithMismatchedStrategy", func(t *testing.T) { testIterableMapReopenMismatch(t, factory) })
	})
}

func newIterableMap(t *testing.T, factory HostFactory, useReverse bool) *collections.IterableMap[string, int64] {
	a := newAdapter(factory)
	var opts []collections.IterableMapOption
	if useReverse {
		opts = append(opts, collections.WithReverseIndex())
	}
	m, err := collections.NewIterableMap[string, int64](a, []byte("im"), codec.String(), codec.OrderedInt64(), opts...)
	if err != nil {
		t.Fatalf("NewIterableMap: %v", err)
	}
	return m
}

func testIterableMapSetGetContains(t *testing.T, factory HostFactory, useReverse bool) {
	m := newIterableMap(t, factory, useReverse)

	if err := m.Set("a", 1); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := m.Set("b", 2); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := m.Set("a", 10); err != nil {
		t.Fatalf("Set (overwrite): %v", err)
	}

	v, ok, err := m.Get("a")
	if err != nil || !ok || v != 10 {
		t.Fatalf("Get(a) = %d, %v, %v; want 10, true, nil", v, ok, err)
	}
	n, _ := m.Len()
	if n != 2 {
		t.Fatalf("Len() = %d; want 2 (overwrite must not grow the Key Index)", n)
	}
}

func testIterableMapRemoveSwapsLast(t *testing.T, factory HostFactory, useReverse bool) {
	m := newIterableMap(t, factory, useReverse)
	for i, k := range []string{"a", "b", "c", "d"} {
		_ = m.Set(k, int64(i))
	}

	v, ok, err := m.Remove("a")
	if err != nil || !ok || v != 0 {
		t.Fatalf("Remove(a) = %d, %v, %v; want 0, true, nil", v, ok, err)
	}
	n, _ := m.Len()
	if n != 3 {
		t.Fatalf("Len() after Remove = %d; want 3", n)
	}

	keys, err := m.Keys()
	if err != nil {
		t.Fatalf("Keys: %v", err)
	}
	got, err := keys.ToSlice()
	if err != nil {
		t.Fatalf("ToSlice: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("Keys() = %v; want 3 entries", got)
	}
	if got[0] != "d" {
		t.Fatalf("Keys()[0] = %q; want d (last key swapped into removed slot)", got[0])
	}

	_, ok, _ = m.Remove("a")
	if ok {
		t.Fatalf("Remove(already-removed) = true; want false")
	}
}

func testIterableMapClear(t *testing.T, factory HostFactory, useReverse bool) {
	m := newIterableMap(t, factory, useReverse)
	for i, k := range []string{"a", "b", "c"} {
		_ = m.Set(k, int64(i))
	}
	if err := m.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	n, _ := m.Len()
	if n != 0 {
		t.Fatalf("Len() after Clear = %d; want 0", n)
	}
	if ok, _ := m.Contains("a"); ok {
		t.Fatalf("Contains(a) after Clear = true; want false (deep clear)")
	}
	if err := m.Set("fresh", 1); err != nil {
		t.Fatalf("Set after Clear: %v", err)
	}
	n, _ = m.Len()
	if n != 1 {
		t.Fatalf("Len() after Clear+Set = %d; want 1", n)
	}
}

func testIterableMapEnumerate(t *testing.T, factory HostFactory, useReverse bool) {
	m := newIterableMap(t, factory, useReverse)
	entries := []collections.Entry[string, int64]{{Key: "a", Value: 1}, {Key: "b", Value: 2}, {Key: "c", Value: 3}}
	for _, e := range entries {
		_ = m.Set(e.Key, e.Value)
	}

	keysIt, err := m.Keys()
	if err != nil {
		t.Fatalf("Keys: %v", err)
	}
	keys, err := keysIt.ToSlice()
	if err != nil || len(keys) != 3 {
		t.Fatalf("Keys().ToSlice() = %v, %v; want 3 keys", keys, err)
	}

	valuesIt, err := m.Values()
	if err != nil {
		t.Fatalf("Values: %v", err)
	}
	values, err := valuesIt.ToSlice()
	if err != nil || len(values) != 3 {
		t.Fatalf("Values().ToSlice() = %v, %v; want 3 values", values, err)
	}

	entriesIt, err := m.Entries()
	if err != nil {
		t.Fatalf("Entries: %v", err)
	}
	got, err := entriesIt.ToSlice()
	if err != nil || len(got) != 3 {
		t.Fatalf("Entries().ToSlice() = %v, %v; want 3 entries", got, err)
	}
	for i, e := range got {
		if e.Key != keys[i] || e.Value != values[i] {
			t.Fatalf("Entries()[%d] = %+v; inconsistent with Keys()/Values() at same index", i, e)
		}
	}
}

func testIterableMapIteratorInvalidated(t *testing.T, factory HostFactory, useReverse bool) {
	m := newIterableMap(t, factory, useReverse)
	_ = m.Set("a", 1)
	_ = m.Set("b", 2)

	it, err := m.Keys()
	if err != nil {
		t.Fatalf("Keys: %v", err)
	}
	if _, ok, err := it.Next(); err != nil || !ok {
		t.Fatalf("Next() = %v, %v; want a value", ok, err)
	}
	if err := m.Set("c", 3); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, _, err := it.Next(); !errors.Is(err, collections.ErrInvalidated) {
		t.Fatalf("Next() after mutation = %v; want ErrInvalidated", err)
	}
}

func testIterableMapReopenMismatch(t *testing.T, factory HostFactory) {
	a := newAdapter(factory)

	plain, err := collections.NewIterableMap[string, int64](a, []byte("reopen"), codec.String(), codec.OrderedInt64())
	if err != nil {
		t.Fatalf("NewIterableMap (plain): %v", err)
	}
	if err := plain.Set("a", 1); err != nil {
		t.Fatalf("Set: %v", err)
	}

	reversed, err := collections.NewIterableMap[string, int64](a, []byte("reopen"), codec.String(), codec.OrderedInt64(), collections.WithReverseIndex())
	if err != nil {
		t.Fatalf("NewIterableMap (reversed): %v", err)
	}
	if _, err := reversed.Len(); !errors.Is(err, collections.ErrKindMismatch) {
		t.Fatalf("Len() after reopening with a different removal strategy = %v; want ErrKindMismatch", err)
	}
}
