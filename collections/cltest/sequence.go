package cltest

import (
	"errors"
	"testing"

	"github.com/r-near/near-sdk-go/codec"
	"github.com/r-near/near-sdk-go/collections"
)

// RunSequenceTests runs a comprehensive test suite against collections.Sequence.
func RunSequenceTests(t *testing.T, name string, factory HostFactory) {
	t.Run(name, func(t *testing.T) {
		t.Run("AppendGetSet", func(t *testing.T) { testSequenceAppendGetSet(t, factory) })
		t.Run("PopEmpty", func(t *testing.T) { testSequencePopEmpty(t, factory) })
		t.Run("SwapRemove", func(t *testing.T) { testSequenceSwapRemove(t, factory) })
		t.Run("SwapRemoveLast", func(t *testing.T) { testSequenceSwapRemoveLast(t, factory) })
		t.Run("OutOfRange", func(t *testing.T) { testSequenceOutOfRange(t, factory) })
		t.Run("Clear", func(t *testing.T) { testSequenceClear(t, factory) })
		t.Run("Iterate", func(t *testing.T) { testSequenceIterate(t, factory) })
		t.Run("IteratorInvalidated", func(t *testing.T) { testSequenceIteratorInvalidated(t, factory) })
		t.Run("Extend", func(t *testing.T) { testSequenceExtend(t, factory) })
	})
}

func newSequence(t *testing.T, factory HostFactory) *collections.Sequence[string] {
	a := newAdapter(factory)
	s, err := collections.NewSequence[string](a, []byte("seq"), codec.String())
	if err != nil {
		t.Fatalf("NewSequence: %v", err)
	}
	return s
}

func testSequenceAppendGetSet(t *testing.T, factory HostFactory) {
	s := newSequence(t, factory)

	for i, v := range []string{"a", "b", "c"} {
		if err := s.Append(v); err != nil {
			t.Fatalf("Append(%d): %v", i, err)
		}
	}

	n, err := s.Len()
	if err != nil || n != 3 {
		t.Fatalf("Len() = %d, %v; want 3, nil", n, err)
	}

	got, err := s.Get(1)
	if err != nil || got != "b" {
		t.Fatalf("Get(1) = %q, %v; want b, nil", got, err)
	}

	if err := s.Set(1, "B"); err != nil {
		t.Fatalf("Set(1): %v", err)
	}
	got, err = s.Get(1)
	if err != nil || got != "B" {
		t.Fatalf("Get(1) after Set = %q, %v; want B, nil", got, err)
	}
}

func testSequencePopEmpty(t *testing.T, factory HostFactory) {
	s := newSequence(t, factory)

	if _, err := s.Pop(); !errors.Is(err, collections.ErrEmpty) {
		t.Fatalf("Pop() on empty sequence = %v; want ErrEmpty", err)
	}

	if err := s.Append("x"); err != nil {
		t.Fatalf("Append: %v", err)
	}
	v, err := s.Pop()
	if err != nil || v != "x" {
		t.Fatalf("Pop() = %q, %v; want x, nil", v, err)
	}
	if n, _ := s.Len(); n != 0 {
		t.Fatalf("Len() after Pop = %d; want 0", n)
	}
}

func testSequenceSwapRemove(t *testing.T, factory HostFactory) {
	s := newSequence(t, factory)
	for _, v := range []string{"a", "b", "c", "d"} {
		_ = s.Append(v)
	}

	removed, err := s.SwapRemove(1)
	if err != nil || removed != "b" {
		t.Fatalf("SwapRemove(1) = %q, %v; want b, nil", removed, err)
	}

	n, _ := s.Len()
	if n != 3 {
		t.Fatalf("Len() after SwapRemove = %d; want 3", n)
	}
	got, _ := s.Get(1)
	if got != "d" {
		t.Fatalf("Get(1) after SwapRemove(1) = %q; want d (last element swapped in)", got)
	}
}

func testSequenceSwapRemoveLast(t *testing.T, factory HostFactory) {
	s := newSequence(t, factory)
	for _, v := range []string{"a", "b", "c"} {
		_ = s.Append(v)
	}
	removed, err := s.SwapRemove(2)
	if err != nil || removed != "c" {
		t.Fatalf("SwapRemove(last) = %q, %v; want c, nil", removed, err)
	}
	if n, _ := s.Len(); n != 2 {
		t.Fatalf("Len() = %d; want 2", n)
	}
}

func testSequenceOutOfRange(t *testing.T, factory HostFactory) {
	s := newSequence(t, factory)
	_ = s.Append("a")

	if _, err := s.Get(5); !errors.Is(err, collections.ErrOutOfRange) {
		t.Fatalf("Get(5) = %v; want ErrOutOfRange", err)
	}
	if err := s.Set(5, "x"); !errors.Is(err, collections.ErrOutOfRange) {
		t.Fatalf("Set(5) = %v; want ErrOutOfRange", err)
	}
	if _, err := s.SwapRemove(5); !errors.Is(err, collections.ErrOutOfRange) {
		t.Fatalf("SwapRemove(5) = %v; want ErrOutOfRange", err)
	}
}

func testSequenceClear(t *testing.T, factory HostFactory) {
	s := newSequence(t, factory)
	for _, v := range []string{"a", "b", "c"} {
		_ = s.Append(v)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if n, _ := s.Len(); n != 0 {
		t.Fatalf("Len() after Clear = %d; want 0", n)
	}
	if err := s.Append("fresh"); err != nil {
		t.Fatalf("Append after Clear: %v", err)
	}
	got, _ := s.Get(0)
	if got != "fresh" {
		t.Fatalf("Get(0) after Clear+Append = %q; want fresh", got)
	}
}

func testSequenceIterate(t *testing.T, factory HostFactory) {
	s := newSequence(t, factory)
	want := []string{"a", "b", "c", "d"}
	for _, v := range want {
		_ = s.Append(v)
	}

	it, err := s.Iter()
	if err != nil {
		t.Fatalf("Iter: %v", err)
	}
	got, err := it.ToSlice()
	if err != nil {
		t.Fatalf("ToSlice: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("ToSlice() = %v; want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ToSlice()[%d] = %q; want %q", i, got[i], want[i])
		}
	}

	sliced, err := s.ToSlice()
	if err != nil || len(sliced) != len(want) {
		t.Fatalf("Sequence.ToSlice() = %v, %v", sliced, err)
	}
}

func testSequenceIteratorInvalidated(t *testing.T, factory HostFactory) {
	s := newSequence(t, factory)
	for _, v := range []string{"a", "b", "c"} {
		_ = s.Append(v)
	}

	it, err := s.Iter()
	if err != nil {
		t.Fatalf("Iter: %v", err)
	}
	if _, ok, err := it.Next(); err != nil || !ok {
		t.Fatalf("Next() = %v, %v, %v; want a value", ok, err, ok)
	}

	if err := s.Append("d"); err != nil {
		t.Fatalf("Append: %v", err)
	}

	if _, _, err := it.Next(); !errors.Is(err, collections.ErrInvalidated) {
		t.Fatalf("Next() after mutation = %v; want ErrInvalidated", err)
	}
}

func testSequenceExtend(t *testing.T, factory HostFactory) {
	s := newSequence(t, factory)
	if err := s.Extend([]string{"a", "b", "c"}); err != nil {
		t.Fatalf("Extend: %v", err)
	}
	n, _ := s.Len()
	if n != 3 {
		t.Fatalf("Len() after Extend = %d; want 3", n)
	}
}
