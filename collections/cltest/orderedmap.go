package cltest

import (
	"errors"
	"testing"

	"github.com/r-near/near-sdk-go/codec"
	"github.com/r-near/near-sdk-go/collections"
)

// RunOrderedMapTests runs a comprehensive test suite against collections.OrderedMap.
func RunOrderedMapTests(t *testing.T, name string, factory HostFactory) {
	t.Run(name, func(t *testing.T) {
		t.Run("SetGetContains", func(t *testing.T) { testOrderedMapSetGetContains(t, factory) })
		t.Run("KeysAreSorted", func(t *testing.T) { testOrderedMapKeysSorted(t, factory) })
		t.Run("MinMaxEmpty", func(t *testing.T) { testOrderedMapMinMaxEmpty(t, factory) })
		t.Run("FloorCeiling", func(t *testing.T) { testOrderedMapFloorCeiling(t, factory) })
		t.Run("Range", func(t *testing.T) { testOrderedMapRange(t, factory) })
		t.Run("RemoveKeepsSortedOrder", func(t *testing.T) { testOrderedMapRemoveKeepsOrder(t, factory) })
		t.Run("Clear", func(t *testing.T) { testOrderedMapClear(t, factory) })
	})
}

func newOrderedMap(t *testing.T, factory HostFactory) *collections.OrderedMap[uint64, string] {
	a := newAdapter(factory)
	m, err := collections.NewOrderedMap[uint64, string](a, []byte("om"), codec.OrderedUint64(), codec.String())
	if err != nil {
		t.Fatalf("NewOrderedMap: %v", err)
	}
	return m
}

func orderedKeys(t *testing.T, m *collections.OrderedMap[uint64, string]) []uint64 {
	it, err := m.Keys()
	if err != nil {
		t.Fatalf("Keys: %v", err)
	}
	got, err := it.ToSlice()
	if err != nil {
		t.Fatalf("ToSlice: %v", err)
	}
	return got
}

func testOrderedMapSetGetContains(t *testing.T, factory HostFactory) {
	m := newOrderedMap(t, factory)
	if err := m.Set(5, "five"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	v, ok, err := m.Get(5)
	if err != nil || !ok || v != "five" {
		t.Fatalf("Get(5) = %q, %v, %v; want five, true, nil", v, ok, err)
	}
	if err := m.Set(5, "FIVE"); err != nil {
		t.Fatalf("Set (overwrite): %v", err)
	}
	n, _ := m.Len()
	if n != 1 {
		t.Fatalf("Len() = %d; want 1 (overwrite must not insert a second key)", n)
	}
}

func testOrderedMapKeysSorted(t *testing.T, factory HostFactory) {
	m := newOrderedMap(t, factory)
	insertOrder := []uint64{50, 10, 30, 20, 40}
	for _, k := range insertOrder {
		if err := m.Set(k, "v"); err != nil {
			t.Fatalf("Set(%d): %v", k, err)
		}
	}

	got := orderedKeys(t, m)
	want := []uint64{10, 20, 30, 40, 50}
	if len(got) != len(want) {
		t.Fatalf("Keys() = %v; want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Keys() = %v; want sorted ascending %v", got, want)
		}
	}
}

func testOrderedMapMinMaxEmpty(t *testing.T, factory HostFactory) {
	m := newOrderedMap(t, factory)

	if _, err := m.MinKey(); !errors.Is(err, collections.ErrEmpty) {
		t.Fatalf("MinKey() on empty map = %v; want ErrEmpty", err)
	}
	if _, err := m.MaxKey(); !errors.Is(err, collections.ErrEmpty) {
		t.Fatalf("MaxKey() on empty map = %v; want ErrEmpty", err)
	}

	for _, k := range []uint64{10, 20, 30} {
		_ = m.Set(k, "v")
	}
	mn, err := m.MinKey()
	if err != nil || mn != 10 {
		t.Fatalf("MinKey() = %d, %v; want 10, nil", mn, err)
	}
	mx, err := m.MaxKey()
	if err != nil || mx != 30 {
		t.Fatalf("MaxKey() = %d, %v; want 30, nil", mx, err)
	}
}

func testOrderedMapFloorCeiling(t *testing.T, factory HostFactory) {
	m := newOrderedMap(t, factory)
	for _, k := range []uint64{10, 20, 30} {
		_ = m.Set(k, "v")
	}

	if f, ok, err := m.Floor(20); err != nil || !ok || f != 20 {
		t.Fatalf("Floor(20) = %d, %v, %v; want 20, true, nil (exact match)", f, ok, err)
	}
	if f, ok, err := m.Floor(25); err != nil || !ok || f != 20 {
		t.Fatalf("Floor(25) = %d, %v, %v; want 20, true, nil", f, ok, err)
	}
	if _, ok, err := m.Floor(5); err != nil || ok {
		t.Fatalf("Floor(5) = %v, %v; want false, nil (below min)", ok, err)
	}

	if c, ok, err := m.Ceiling(20); err != nil || !ok || c != 20 {
		t.Fatalf("Ceiling(20) = %d, %v, %v; want 20, true, nil (exact match)", c, ok, err)
	}
	if c, ok, err := m.Ceiling(25); err != nil || !ok || c != 30 {
		t.Fatalf("Ceiling(25) = %d, %v, %v; want 30, true, nil", c, ok, err)
	}
	if _, ok, err := m.Ceiling(35); err != nil || ok {
		t.Fatalf("Ceiling(35) = %v, %v; want false, nil (above max)", ok, err)
	}
}

func testOrderedMapRange(t *testing.T, factory HostFactory) {
	m := newOrderedMap(t, factory)
	for _, k := range []uint64{10, 20, 30, 40, 50} {
		_ = m.Set(k, "v")
	}

	it, err := m.Range(collections.Incl[uint64](20), collections.Excl[uint64](50))
	if err != nil {
		t.Fatalf("Range: %v", err)
	}
	got, err := it.ToSlice()
	if err != nil {
		t.Fatalf("ToSlice: %v", err)
	}
	want := []uint64{20, 30, 40}
	if len(got) != len(want) {
		t.Fatalf("Range([20,50)) = %v; want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Range([20,50)) = %v; want %v", got, want)
		}
	}

	full, err := m.Range(collections.Unb[uint64](), collections.Unb[uint64]())
	if err != nil {
		t.Fatalf("Range(unbounded): %v", err)
	}
	all, err := full.ToSlice()
	if err != nil || len(all) != 5 {
		t.Fatalf("Range(Unbounded, Unbounded) = %v, %v; want all 5 keys", all, err)
	}

	empty, err := m.Range(collections.Incl[uint64](100), collections.Excl[uint64](200))
	if err != nil {
		t.Fatalf("Range(out of bounds): %v", err)
	}
	none, err := empty.ToSlice()
	if err != nil || len(none) != 0 {
		t.Fatalf("Range(100,200) = %v, %v; want empty", none, err)
	}
}

func testOrderedMapRemoveKeepsOrder(t *testing.T, factory HostFactory) {
	m := newOrderedMap(t, factory)
	for _, k := range []uint64{10, 20, 30, 40} {
		_ = m.Set(k, "v")
	}

	v, ok, err := m.Remove(20)
	if err != nil || !ok || v != "v" {
		t.Fatalf("Remove(20) = %q, %v, %v; want v, true, nil", v, ok, err)
	}

	got := orderedKeys(t, m)
	want := []uint64{10, 30, 40}
	if len(got) != len(want) {
		t.Fatalf("Keys() after Remove = %v; want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Keys() after Remove = %v; sorted order must survive a mid-sequence removal, want %v", got, want)
		}
	}

	_, ok, _ = m.Remove(20)
	if ok {
		t.Fatalf("Remove(already-removed) = true; want false")
	}
}

func testOrderedMapClear(t *testing.T, factory HostFactory) {
	m := newOrderedMap(t, factory)
	for _, k := range []uint64{10, 20, 30} {
		_ = m.Set(k, "v")
	}
	if err := m.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	n, _ := m.Len()
	if n != 0 {
		t.Fatalf("Len() after Clear = %d; want 0", n)
	}
	if _, err := m.MinKey(); !errors.Is(err, collections.ErrEmpty) {
		t.Fatalf("MinKey() after Clear = %v; want ErrEmpty", err)
	}
}
