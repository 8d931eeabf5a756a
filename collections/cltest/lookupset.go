package cltest

import (
	"testing"

	"github.com/r-near/near-sdk-go/codec"
	"github.com/r-near/near-sdk-go/collections"
)

// RunLookupSetTests runs a comprehensive test suite against collections.LookupSet.
func RunLookupSetTests(t *testing.T, name string, factory HostFactory) {
	t.Run(name, func(t *testing.T) {
		t.Run("AddContains", func(t *testing.T) { testLookupSetAddContains(t, factory) })
		t.Run("AddIdempotent", func(t *testing.T) { testLookupSetAddIdempotent(t, factory) })
		t.Run("Remove", func(t *testing.T) { testLookupSetRemove(t, factory) })
		t.Run("ClearOrphansStorage", func(t *testing.T) { testLookupSetClearOrphansStorage(t, factory) })
	})
}

func newLookupSet(t *testing.T, factory HostFactory) (*collections.LookupSet[string], *hostProbe) {
	a, probe := newProbedAdapter(factory)
	s, err := collections.NewLookupSet[string](a, []byte("ls"), codec.String())
	if err != nil {
		t.Fatalf("NewLookupSet: %v", err)
	}
	return s, probe
}

func testLookupSetAddContains(t *testing.T, factory HostFactory) {
	s, _ := newLookupSet(t, factory)

	if ok, _ := s.Contains("a"); ok {
		t.Fatalf("Contains(a) before Add = true; want false")
	}
	if err := s.Add("a"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if ok, err := s.Contains("a"); err != nil || !ok {
		t.Fatalf("Contains(a) after Add = %v, %v; want true, nil", ok, err)
	}
	n, _ := s.Len()
	if n != 1 {
		t.Fatalf("Len() = %d; want 1", n)
	}
}

func testLookupSetAddIdempotent(t *testing.T, factory HostFactory) {
	s, _ := newLookupSet(t, factory)
	_ = s.Add("a")
	_ = s.Add("a")
	n, _ := s.Len()
	if n != 1 {
		t.Fatalf("Len() after duplicate Add = %d; want 1", n)
	}
}

func testLookupSetRemove(t *testing.T, factory HostFactory) {
	s, _ := newLookupSet(t, factory)
	_ = s.Add("a")

	ok, err := s.Remove("a")
	if err != nil || !ok {
		t.Fatalf("Remove(a) = %v, %v; want true, nil", ok, err)
	}
	if ok, _ := s.Contains("a"); ok {
		t.Fatalf("Contains(a) after Remove = true; want false")
	}

	ok, err = s.Remove("a")
	if err != nil || ok {
		t.Fatalf("Remove(absent) = %v, %v; want false, nil", ok, err)
	}
}

func testLookupSetClearOrphansStorage(t *testing.T, factory HostFactory) {
	s, probe := newLookupSet(t, factory)
	_ = s.Add("a")
	_ = s.Add("b")

	before := probe.len()
	if err := s.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	n, _ := s.Len()
	if n != 0 {
		t.Fatalf("Len() after Clear = %d; want 0", n)
	}
	if probe.len() < before-1 {
		t.Fatalf("host key count dropped after Clear; member entries should remain")
	}
	if ok, _ := s.Contains("a"); !ok {
		t.Fatalf("Contains(a) after Clear = false; payload entry should still be readable")
	}

	if err := s.DrainKnownKeys([]string{"a", "b"}); err != nil {
		t.Fatalf("DrainKnownKeys: %v", err)
	}
	if ok, _ := s.Contains("a"); ok {
		t.Fatalf("Contains(a) after DrainKnownKeys = true; want false")
	}
}
