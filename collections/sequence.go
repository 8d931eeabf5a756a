package collections

import (
	"github.com/r-near/near-sdk-go/codec"
	"github.com/r-near/near-sdk-go/store"
)

// --------------------------------------------------------------------------
// Sequence
// --------------------------------------------------------------------------

// Sequence is an indexed, append-friendly ordered container. Stored slots
// are exactly {0, 1, ..., len-1}; there are no holes.
//
// Thread-safety: a Sequence value is safe to share across goroutines only
// if every call is externally serialized - the library assumes one
// single-threaded caller per receipt, mirroring the
// non-locking collection types.
type Sequence[T any] struct {
	a      *store.Adapter
	prefix []byte
	codec  codec.Codec[T]
}

// NewSequence returns a handle over prefix. Constructing a handle never
// touches storage; the collection is created implicitly by the
// first mutating call.
func NewSequence[T any](a *store.Adapter, prefix []byte, c codec.Codec[T]) (*Sequence[T], error) {
	if err := store.CheckPrefix(prefix); err != nil {
		return nil, withKey(newError(CodeEncode, "prefix contains a reserved separator"), string(prefix))
	}
	return &Sequence[T]{a: a, prefix: prefix, codec: c}, nil
}

func (s *Sequence[T]) loadMeta() (meta, error) {
	return loadMeta(s.a, s.prefix, KindSequence)
}

// Len returns the current length, from the metadata header.
func (s *Sequence[T]) Len() (uint64, error) {
	m, err := s.loadMeta()
	if err != nil {
		return 0, err
	}
	return m.length, nil
}

// IsEmpty reports whether Len() == 0.
func (s *Sequence[T]) IsEmpty() (bool, error) {
	n, err := s.Len()
	return n == 0, err
}

// Get reads the value at index i, or CodeOutOfRange if i >= Len().
func (s *Sequence[T]) Get(i uint64) (T, error) {
	var zero T
	m, err := s.loadMeta()
	if err != nil {
		return zero, err
	}
	if i >= m.length {
		return zero, withIndex(newError(CodeOutOfRange, "index out of range"), int64(i))
	}
	return s.readSlot(i)
}

func (s *Sequence[T]) readSlot(i uint64) (T, error) {
	var zero T
	key := entrySlotKey(s.a, s.prefix, i)
	b, ok, err := s.a.Read(key)
	if err != nil {
		return zero, withCause(newError(CodeHostError, "read slot"), err)
	}
	if !ok {
		return zero, withIndex(newError(CodeOutOfRange, "slot missing (corrupt index)"), int64(i))
	}
	v, err := s.codec.Decode(b)
	if err != nil {
		return zero, withCause(withIndex(newError(CodeDecode, "decode slot"), int64(i)), err)
	}
	return v, nil
}

func (s *Sequence[T]) writeSlot(i uint64, v T) error {
	b, err := s.codec.Encode(v)
	if err != nil {
		return withCause(withIndex(newError(CodeEncode, "encode slot"), int64(i)), err)
	}
	key := entrySlotKey(s.a, s.prefix, i)
	if _, err := s.a.Write(key, b); err != nil {
		return withCause(newError(CodeHostError, "write slot"), err)
	}
	return nil
}

// Set overwrites the value at index i. CodeOutOfRange if i >= Len().
func (s *Sequence[T]) Set(i uint64, v T) error {
	m, err := s.loadMeta()
	if err != nil {
		return err
	}
	if i >= m.length {
		return withIndex(newError(CodeOutOfRange, "index out of range"), int64(i))
	}
	if err := s.writeSlot(i, v); err != nil {
		return err
	}
	m.generation++
	return storeMeta(s.a, s.prefix, m)
}

// Append writes v at index len(), then increments len. O(1).
func (s *Sequence[T]) Append(v T) error {
	m, err := s.loadMeta()
	if err != nil {
		return err
	}
	if err := s.writeSlot(m.length, v); err != nil {
		return err
	}
	m.length++
	m.generation++
	return storeMeta(s.a, s.prefix, m)
}

// Extend appends every item in items, in order. This is an explicit bulk
// convenience (supplemented feature) - never used
// internally by any other operation.
func (s *Sequence[T]) Extend(items []T) error {
	for _, v := range items {
		if err := s.Append(v); err != nil {
			return err
		}
	}
	return nil
}

// Pop removes and returns the last element, or CodeEmpty if len() == 0.
func (s *Sequence[T]) Pop() (T, error) {
	var zero T
	m, err := s.loadMeta()
	if err != nil {
		return zero, err
	}
	if m.length == 0 {
		return zero, newError(CodeEmpty, "pop on empty sequence")
	}
	lastIdx := m.length - 1
	v, err := s.readSlot(lastIdx)
	if err != nil {
		return zero, err
	}
	key := entrySlotKey(s.a, s.prefix, lastIdx)
	if _, _, err := s.a.Remove(key); err != nil {
		return zero, withCause(newError(CodeHostError, "remove slot"), err)
	}
	m.length--
	m.generation++
	if err := storeMeta(s.a, s.prefix, m); err != nil {
		return zero, err
	}
	return v, nil
}

// SwapRemove removes the element at index i in O(1) by overwriting slot i
// with the last slot's value, then removing the (now-duplicate) last slot.
// Changes observable order. If i == len-1 this behaves exactly like Pop.
func (s *Sequence[T]) SwapRemove(i uint64) (T, error) {
	var zero T
	m, err := s.loadMeta()
	if err != nil {
		return zero, err
	}
	if i >= m.length {
		return zero, withIndex(newError(CodeOutOfRange, "index out of range"), int64(i))
	}
	removed, err := s.readSlot(i)
	if err != nil {
		return zero, err
	}
	lastIdx := m.length - 1
	if i != lastIdx {
		last, err := s.readSlot(lastIdx)
		if err != nil {
			return zero, err
		}
		if err := s.writeSlot(i, last); err != nil {
			return zero, err
		}
	}
	lastKey := entrySlotKey(s.a, s.prefix, lastIdx)
	if _, _, err := s.a.Remove(lastKey); err != nil {
		return zero, withCause(newError(CodeHostError, "remove slot"), err)
	}
	m.length--
	m.generation++
	if err := storeMeta(s.a, s.prefix, m); err != nil {
		return zero, err
	}
	return removed, nil
}

// Clear removes every slot and resets length to 0. O(len) host calls.
func (s *Sequence[T]) Clear() error {
	m, err := s.loadMeta()
	if err != nil {
		return err
	}
	for i := uint64(0); i < m.length; i++ {
		key := entrySlotKey(s.a, s.prefix, i)
		if _, _, err := s.a.Remove(key); err != nil {
			return withCause(newError(CodeHostError, "remove slot"), err)
		}
	}
	m.length = 0
	m.generation++
	return storeMeta(s.a, s.prefix, m)
}

// ToSlice materializes the entire sequence in memory. Explicit-ask bulk
// helper (supplemented feature) - never used internally.
func (s *Sequence[T]) ToSlice() ([]T, error) {
	it, err := s.Iter()
	if err != nil {
		return nil, err
	}
	return it.ToSlice()
}

// Iter returns a lazy, restartable cursor over values in index order.
func (s *Sequence[T]) Iter() (*Iterator[T], error) {
	m, err := s.loadMeta()
	if err != nil {
		return nil, err
	}
	liveGen := func() (uint64, error) {
		cur, err := s.loadMeta()
		if err != nil {
			return 0, err
		}
		return cur.generation, nil
	}
	return newIterator(m.generation, m.length, liveGen, s.readSlot), nil
}
