package collections

import (
	"github.com/r-near/near-sdk-go/codec"
	"github.com/r-near/near-sdk-go/store"
)

// --------------------------------------------------------------------------
// Lookup Map
// --------------------------------------------------------------------------

// LookupMap is a non-iterable key-value store. It does not expose Keys,
// Values, or any enumeration - that is IterableMap's job, at the cost of
// the companion Key Index IterableMap maintains.
//
// Thread-safety: see Sequence.
type LookupMap[K, V any] struct {
	a        *store.Adapter
	prefix   []byte
	keyCodec codec.Codec[K]
	valCodec codec.Codec[V]
}

// NewLookupMap returns a handle over prefix. Constructing a handle never
// touches storage.
func NewLookupMap[K, V any](a *store.Adapter, prefix []byte, kc codec.Codec[K], vc codec.Codec[V]) (*LookupMap[K, V], error) {
	if err := store.CheckPrefix(prefix); err != nil {
		return nil, withKey(newError(CodeEncode, "prefix contains a reserved separator"), string(prefix))
	}
	return &LookupMap[K, V]{a: a, prefix: prefix, keyCodec: kc, valCodec: vc}, nil
}

func (m *LookupMap[K, V]) loadMeta() (meta, error) {
	return loadMeta(m.a, m.prefix, KindLookupMap)
}

// Len returns the header's length counter: Set increments it only when k
// had no stored entry (an overwrite does not count), Remove decrements it
// when an entry was removed, and Clear resets it to 0.
func (m *LookupMap[K, V]) Len() (uint64, error) {
	h, err := m.loadMeta()
	if err != nil {
		return 0, err
	}
	return h.length, nil
}

// IsEmpty reports whether Len() == 0.
func (m *LookupMap[K, V]) IsEmpty() (bool, error) {
	n, err := m.Len()
	return n == 0, err
}

func (m *LookupMap[K, V]) entryKey(k K) ([]byte, error) {
	enc, err := m.keyCodec.Encode(k)
	if err != nil {
		return nil, withCause(withKey(newError(CodeEncode, "encode key"), k), err)
	}
	return entryKeyBytes(m.a, m.prefix, enc), nil
}

// Get returns the value at k, or ok=false if k is absent (no error).
func (m *LookupMap[K, V]) Get(k K) (V, bool, error) {
	var zero V
	key, err := m.entryKey(k)
	if err != nil {
		return zero, false, err
	}
	b, ok, err := m.a.Read(key)
	if err != nil {
		return zero, false, withCause(newError(CodeHostError, "read entry"), err)
	}
	if !ok {
		return zero, false, nil
	}
	v, err := m.valCodec.Decode(b)
	if err != nil {
		return zero, false, withCause(withKey(newError(CodeDecode, "decode entry"), k), err)
	}
	return v, true, nil
}

// Contains reports whether k is present.
func (m *LookupMap[K, V]) Contains(k K) (bool, error) {
	key, err := m.entryKey(k)
	if err != nil {
		return false, err
	}
	ok, err := m.a.Has(key)
	if err != nil {
		return false, withCause(newError(CodeHostError, "has entry"), err)
	}
	return ok, nil
}

// Set writes v at k, incrementing length only if k was previously absent.
func (m *LookupMap[K, V]) Set(k K, v V) error {
	key, err := m.entryKey(k)
	if err != nil {
		return err
	}
	encVal, err := m.valCodec.Encode(v)
	if err != nil {
		return withCause(withKey(newError(CodeEncode, "encode value"), k), err)
	}
	h, err := m.loadMeta()
	if err != nil {
		return err
	}
	priorPresent, err := m.a.Has(key)
	if err != nil {
		return withCause(newError(CodeHostError, "has entry"), err)
	}
	if _, err := m.a.Write(key, encVal); err != nil {
		return withCause(newError(CodeHostError, "write entry"), err)
	}
	if !priorPresent {
		h.length++
	}
	h.generation++
	return storeMeta(m.a, m.prefix, h)
}

// Remove deletes k, returning (value, true, nil) if it was present and
// (zero, false, nil) if it was absent. Absent is non-mutating.
func (m *LookupMap[K, V]) Remove(k K) (V, bool, error) {
	var zero V
	key, err := m.entryKey(k)
	if err != nil {
		return zero, false, err
	}
	b, ok, err := m.a.Remove(key)
	if err != nil {
		return zero, false, withCause(newError(CodeHostError, "remove entry"), err)
	}
	if !ok {
		return zero, false, nil
	}
	v, err := m.valCodec.Decode(b)
	if err != nil {
		return zero, false, withCause(withKey(newError(CodeDecode, "decode entry"), k), err)
	}
	h, err := m.loadMeta()
	if err != nil {
		return zero, false, err
	}
	h.length--
	h.generation++
	if err := storeMeta(m.a, m.prefix, h); err != nil {
		return zero, false, err
	}
	return v, true, nil
}

// Clear resets length to 0 but does NOT touch payload entries. This is a
// documented orphan-storage consequence: prior entries remain
// in host storage until rewritten through the same keys, or explicitly
// removed with DrainKnownKeys. LookupMap never iterates on its own to find
// them - it is defined as non-iterable.
func (m *LookupMap[K, V]) Clear() error {
	h, err := m.loadMeta()
	if err != nil {
		return err
	}
	h.length = 0
	h.generation++
	return storeMeta(m.a, m.prefix, h)
}

// DrainKnownKeys removes the given keys' payload entries without touching
// length accounting. Use this after Clear() to reclaim the orphaned
// storage Clear leaves behind, when the caller can enumerate the keys it
// previously wrote by some other means - nothing else in this package
// iterates a LookupMap to find them on its own.
func (m *LookupMap[K, V]) DrainKnownKeys(keys []K) error {
	for _, k := range keys {
		key, err := m.entryKey(k)
		if err != nil {
			return err
		}
		if _, _, err := m.a.Remove(key); err != nil {
			return withCause(newError(CodeHostError, "remove entry"), err)
		}
	}
	return nil
}
