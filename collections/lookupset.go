package collections

import (
	"github.com/r-near/near-sdk-go/codec"
	"github.com/r-near/near-sdk-go/store"
)

// presenceMarker is the single-byte value stored for every LookupSet /
// IterableSet entry - the key's presence is the information; the value is
// a placeholder.
var presenceMarker = []byte{1}

// --------------------------------------------------------------------------
// Lookup Set
// --------------------------------------------------------------------------

// LookupSet has the identical storage and cost profile of LookupMap with
// the value fixed to a presence marker byte. Same orphan-on-Clear caveat.
//
// Thread-safety: see Sequence.
type LookupSet[K any] struct {
	a        *store.Adapter
	prefix   []byte
	keyCodec codec.Codec[K]
}

// NewLookupSet returns a handle over prefix. Constructing a handle never
// touches storage.
func NewLookupSet[K any](a *store.Adapter, prefix []byte, kc codec.Codec[K]) (*LookupSet[K], error) {
	if err := store.CheckPrefix(prefix); err != nil {
		return nil, withKey(newError(CodeEncode, "prefix contains a reserved separator"), string(prefix))
	}
	return &LookupSet[K]{a: a, prefix: prefix, keyCodec: kc}, nil
}

func (s *LookupSet[K]) loadMeta() (meta, error) {
	return loadMeta(s.a, s.prefix, KindLookupSet)
}

// Len returns the header's length counter: Add increments it only when k
// had no stored entry, Remove decrements it when an entry was removed, and
// Clear resets it to 0 while the member entries stay in storage.
func (s *LookupSet[K]) Len() (uint64, error) {
	h, err := s.loadMeta()
	if err != nil {
		return 0, err
	}
	return h.length, nil
}

// IsEmpty reports whether Len() == 0.
func (s *LookupSet[K]) IsEmpty() (bool, error) {
	n, err := s.Len()
	return n == 0, err
}

func (s *LookupSet[K]) entryKey(k K) ([]byte, error) {
	enc, err := s.keyCodec.Encode(k)
	if err != nil {
		return nil, withCause(withKey(newError(CodeEncode, "encode key"), k), err)
	}
	return entryKeyBytes(s.a, s.prefix, enc), nil
}

// Contains reports whether k is a member.
func (s *LookupSet[K]) Contains(k K) (bool, error) {
	key, err := s.entryKey(k)
	if err != nil {
		return false, err
	}
	ok, err := s.a.Has(key)
	if err != nil {
		return false, withCause(newError(CodeHostError, "has entry"), err)
	}
	return ok, nil
}

// Add inserts k, incrementing length only if it was previously absent.
func (s *LookupSet[K]) Add(k K) error {
	key, err := s.entryKey(k)
	if err != nil {
		return err
	}
	h, err := s.loadMeta()
	if err != nil {
		return err
	}
	priorPresent, err := s.a.Has(key)
	if err != nil {
		return withCause(newError(CodeHostError, "has entry"), err)
	}
	if _, err := s.a.Write(key, presenceMarker); err != nil {
		return withCause(newError(CodeHostError, "write entry"), err)
	}
	if !priorPresent {
		h.length++
	}
	h.generation++
	return storeMeta(s.a, s.prefix, h)
}

// Remove deletes k, returning (true, nil) if it was a member and
// (false, nil) if it was absent. Absent is non-mutating.
func (s *LookupSet[K]) Remove(k K) (bool, error) {
	key, err := s.entryKey(k)
	if err != nil {
		return false, err
	}
	_, ok, err := s.a.Remove(key)
	if err != nil {
		return false, withCause(newError(CodeHostError, "remove entry"), err)
	}
	if !ok {
		return false, nil
	}
	h, err := s.loadMeta()
	if err != nil {
		return false, err
	}
	h.length--
	h.generation++
	if err := storeMeta(s.a, s.prefix, h); err != nil {
		return false, err
	}
	return true, nil
}

// Clear resets length to 0 without touching member entries - the same
// orphan-storage consequence documented on LookupMap.Clear.
func (s *LookupSet[K]) Clear() error {
	h, err := s.loadMeta()
	if err != nil {
		return err
	}
	h.length = 0
	h.generation++
	return storeMeta(s.a, s.prefix, h)
}

// DrainKnownKeys removes the given members' entries without touching
// length accounting. See LookupMap.DrainKnownKeys.
func (s *LookupSet[K]) DrainKnownKeys(keys []K) error {
	for _, k := range keys {
		key, err := s.entryKey(k)
		if err != nil {
			return err
		}
		if _, _, err := s.a.Remove(key); err != nil {
			return withCause(newError(CodeHostError, "remove entry"), err)
		}
	}
	return nil
}
