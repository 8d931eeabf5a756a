package cltest

import (
	"testing"

	"github.com/r-near/near-sdk-go/codec"
	"github.com/r-near/near-sdk-go/collections"
)

// RunLookupMapTests runs a comprehensive test suite against collections.LookupMap.
func RunLookupMapTests(t *testing.T, name string, factory HostFactory) {
	t.Run(name, func(t *testing.T) {
		t.Run("SetGetContains", func(t *testing.T) { testLookupMapSetGetContains(t, factory) })
		t.Run("Overwrite", func(t *testing.T) { testLookupMapOverwrite(t, factory) })
		t.Run("Remove", func(t *testing.T) { testLookupMapRemove(t, factory) })
		t.Run("RemoveAbsent", func(t *testing.T) { testLookupMapRemoveAbsent(t, factory) })
		t.Run("ClearOrphansStorage", func(t *testing.T) { testLookupMapClearOrphansStorage(t, factory) })
		t.Run("DrainKnownKeys", func(t *testing.T) { testLookupMapDrainKnownKeys(t, factory) })
	})
}

func newLookupMap(t *testing.T, factory HostFactory) (*collections.LookupMap[string, int64], *hostProbe) {
	a, probe := newProbedAdapter(factory)
	m, err := collections.NewLookupMap[string, int64](a, []byte("lm"), codec.String(), codec.OrderedInt64())
	if err != nil {
		t.Fatalf("NewLookupMap: %v", err)
	}
	return m, probe
}

func testLookupMapSetGetContains(t *testing.T, factory HostFactory) {
	m, _ := newLookupMap(t, factory)

	if ok, err := m.Contains("k"); err != nil || ok {
		t.Fatalf("Contains before Set = %v, %v; want false, nil", ok, err)
	}

	if err := m.Set("k", 42); err != nil {
		t.Fatalf("Set: %v", err)
	}

	v, ok, err := m.Get("k")
	if err != nil || !ok || v != 42 {
		t.Fatalf("Get(k) = %d, %v, %v; want 42, true, nil", v, ok, err)
	}

	n, err := m.Len()
	if err != nil || n != 1 {
		t.Fatalf("Len() = %d, %v; want 1, nil", n, err)
	}

	_, ok, err = m.Get("missing")
	if err != nil || ok {
		t.Fatalf("Get(missing) = %v, %v; want false, nil", ok, err)
	}
}

func testLookupMapOverwrite(t *testing.T, factory HostFactory) {
	m, _ := newLookupMap(t, factory)
	_ = m.Set("k", 1)
	_ = m.Set("k", 2)

	n, _ := m.Len()
	if n != 1 {
		t.Fatalf("Len() after overwrite = %d; want 1 (length counts distinct keys)", n)
	}
	v, _, _ := m.Get("k")
	if v != 2 {
		t.Fatalf("Get(k) = %d; want 2", v)
	}
}

func testLookupMapRemove(t *testing.T, factory HostFactory) {
	m, _ := newLookupMap(t, factory)
	_ = m.Set("k", 7)

	v, ok, err := m.Remove("k")
	if err != nil || !ok || v != 7 {
		t.Fatalf("Remove(k) = %d, %v, %v; want 7, true, nil", v, ok, err)
	}
	n, _ := m.Len()
	if n != 0 {
		t.Fatalf("Len() after Remove = %d; want 0", n)
	}
	if ok, _ := m.Contains("k"); ok {
		t.Fatalf("Contains(k) after Remove = true; want false")
	}
}

func testLookupMapRemoveAbsent(t *testing.T, factory HostFactory) {
	m, _ := newLookupMap(t, factory)
	_, ok, err := m.Remove("nope")
	if err != nil || ok {
		t.Fatalf("Remove(absent) = %v, %v; want false, nil", ok, err)
	}
}

// testLookupMapClearOrphansStorage verifies LookupMap.Clear only resets the
// length counter and leaves payload entries in the host, since LookupMap
// never enumerates its own keys.
func testLookupMapClearOrphansStorage(t *testing.T, factory HostFactory) {
	m, probe := newLookupMap(t, factory)
	_ = m.Set("a", 1)
	_ = m.Set("b", 2)

	before := probe.len()

	if err := m.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	n, _ := m.Len()
	if n != 0 {
		t.Fatalf("Len() after Clear = %d; want 0", n)
	}

	after := probe.len()
	if after < before-1 {
		t.Fatalf("host key count dropped from %d to %d; Clear should not remove payload entries", before, after)
	}

	if ok, _ := m.Contains("a"); !ok {
		t.Fatalf("Contains(a) after Clear = false; payload entry should still be readable")
	}
}

func testLookupMapDrainKnownKeys(t *testing.T, factory HostFactory) {
	m, probe := newLookupMap(t, factory)
	_ = m.Set("a", 1)
	_ = m.Set("b", 2)
	_ = m.Clear()

	before := probe.len()
	if err := m.DrainKnownKeys([]string{"a", "b"}); err != nil {
		t.Fatalf("DrainKnownKeys: %v", err)
	}
	after := probe.len()
	if after >= before {
		t.Fatalf("host key count = %d after DrainKnownKeys; want fewer than %d", after, before)
	}
	if ok, _ := m.Contains("a"); ok {
		t.Fatalf("Contains(a) after DrainKnownKeys = true; want false")
	}
}
