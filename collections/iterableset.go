package collections

import (
	"bytes"

	"github.com/r-near/near-sdk-go/codec"
	"github.com/r-near/near-sdk-go/store"
)

// --------------------------------------------------------------------------
// Iterable Set
// --------------------------------------------------------------------------

// IterableSet has the same shape as IterableMap with a presence marker as
// the value. Values() returns set members in Key Index order.
//
// Thread-safety: see Sequence.
type IterableSet[K any] struct {
	a          *store.Adapter
	prefix     []byte
	keyCodec   codec.Codec[K]
	keyIndex   *Sequence[K]
	useReverse bool
}

// NewIterableSet returns a handle over prefix. Constructing a handle never
// touches storage. See WithReverseIndex for the removal-strategy option.
func NewIterableSet[K any](a *store.Adapter, prefix []byte, kc codec.Codec[K], opts ...IterableMapOption) (*IterableSet[K], error) {
	if err := store.CheckPrefix(prefix); err != nil {
		return nil, withKey(newError(CodeEncode, "prefix contains a reserved separator"), string(prefix))
	}
	var o iterableOptions
	for _, opt := range opts {
		opt(&o)
	}
	// The index prefix carries the reserved IndexSep by construction, so it
	// is not passed through NewSequence's caller-prefix check.
	keyIndex := &Sequence[K]{a: a, prefix: indexPrefix(prefix), codec: kc}
	return &IterableSet[K]{a: a, prefix: prefix, keyCodec: kc, keyIndex: keyIndex, useReverse: o.reverseIndex}, nil
}

func (is *IterableSet[K]) loadMeta() (meta, error) {
	m, existed, err := loadMetaExists(is.a, is.prefix, KindIterableSet)
	if err != nil {
		return meta{}, err
	}
	if existed {
		if m.hasReverseIndex() != is.useReverse {
			return meta{}, withKey(newError(CodeKindMismatch, "removal strategy does not match the stored instance"), string(is.prefix))
		}
	} else {
		m.setReverseIndex(is.useReverse)
	}
	return m, nil
}

func (is *IterableSet[K]) liveGen() (uint64, error) {
	m, err := is.loadMeta()
	if err != nil {
		return 0, err
	}
	return m.generation, nil
}

// Len returns the current number of members.
func (is *IterableSet[K]) Len() (uint64, error) {
	m, err := is.loadMeta()
	if err != nil {
		return 0, err
	}
	return m.length, nil
}

// IsEmpty reports whether Len() == 0.
func (is *IterableSet[K]) IsEmpty() (bool, error) {
	n, err := is.Len()
	return n == 0, err
}

func (is *IterableSet[K]) entryKey(k K) ([]byte, []byte, error) {
	enc, err := is.keyCodec.Encode(k)
	if err != nil {
		return nil, nil, withCause(withKey(newError(CodeEncode, "encode key"), k), err)
	}
	return entryKeyBytes(is.a, is.prefix, enc), enc, nil
}

// Contains reports whether k is a member.
func (is *IterableSet[K]) Contains(k K) (bool, error) {
	key, _, err := is.entryKey(k)
	if err != nil {
		return false, err
	}
	ok, err := is.a.Has(key)
	if err != nil {
		return false, withCause(newError(CodeHostError, "has entry"), err)
	}
	return ok, nil
}

func (is *IterableSet[K]) reverseKey(enc []byte) []byte {
	return reverseEntryKey(is.a, is.prefix, enc)
}

func (is *IterableSet[K]) reverseGet(enc []byte) (uint64, bool, error) {
	b, ok, err := is.a.Read(is.reverseKey(enc))
	if err != nil {
		return 0, false, withCause(newError(CodeHostError, "read reverse index"), err)
	}
	if !ok {
		return 0, false, nil
	}
	return decodeUint64(b), true, nil
}

func (is *IterableSet[K]) reverseSet(enc []byte, pos uint64) error {
	if _, err := is.a.Write(is.reverseKey(enc), appendUint64(nil, pos)); err != nil {
		return withCause(newError(CodeHostError, "write reverse index"), err)
	}
	return nil
}

func (is *IterableSet[K]) reverseRemove(enc []byte) error {
	if _, _, err := is.a.Remove(is.reverseKey(enc)); err != nil {
		return withCause(newError(CodeHostError, "remove reverse index"), err)
	}
	return nil
}

func (is *IterableSet[K]) positionOf(enc []byte, length uint64) (uint64, bool, error) {
	if is.useReverse {
		return is.reverseGet(enc)
	}
	for i := uint64(0); i < length; i++ {
		cand, err := is.keyIndex.readSlot(i)
		if err != nil {
			return 0, false, err
		}
		candEnc, err := is.keyCodec.Encode(cand)
		if err != nil {
			return 0, false, withCause(withKey(newError(CodeEncode, "encode key"), cand), err)
		}
		if bytes.Equal(candEnc, enc) {
			return i, true, nil
		}
	}
	return 0, false, nil
}

// Add inserts k. If newly present, it is appended to the Key Index
// (amortized O(1)).
func (is *IterableSet[K]) Add(k K) error {
	key, enc, err := is.entryKey(k)
	if err != nil {
		return err
	}
	h, err := is.loadMeta()
	if err != nil {
		return err
	}
	priorPresent, err := is.a.Has(key)
	if err != nil {
		return withCause(newError(CodeHostError, "has entry"), err)
	}
	if !priorPresent {
		pos, err := is.keyIndex.Len()
		if err != nil {
			return err
		}
		if err := is.keyIndex.Append(k); err != nil {
			return err
		}
		if is.useReverse {
			if err := is.reverseSet(enc, pos); err != nil {
				return err
			}
		}
		h.length++
	}
	if _, err := is.a.Write(key, presenceMarker); err != nil {
		return withCause(newError(CodeHostError, "write entry"), err)
	}
	h.generation++
	return storeMeta(is.a, is.prefix, h)
}

// Remove deletes k, returning (true, nil) if it was a member and
// (false, nil) if it was absent. Removal swaps with the last Key Index
// slot, so iteration order is not preserved across removals.
func (is *IterableSet[K]) Remove(k K) (bool, error) {
	key, enc, err := is.entryKey(k)
	if err != nil {
		return false, err
	}
	_, ok, err := is.a.Remove(key)
	if err != nil {
		return false, withCause(newError(CodeHostError, "remove entry"), err)
	}
	if !ok {
		return false, nil
	}

	h, err := is.loadMeta()
	if err != nil {
		return false, err
	}
	pos, found, err := is.positionOf(enc, h.length)
	if err != nil {
		return false, err
	}
	if !found {
		return false, withKey(newError(CodeDecode, "member present but missing from key index (corrupt)"), k)
	}
	lastIdx := h.length - 1
	if _, err := is.keyIndex.SwapRemove(pos); err != nil {
		return false, err
	}
	if pos != lastIdx {
		moved, err := is.keyIndex.readSlot(pos)
		if err != nil {
			return false, err
		}
		if is.useReverse {
			movedEnc, err := is.keyCodec.Encode(moved)
			if err != nil {
				return false, withCause(withKey(newError(CodeEncode, "encode key"), moved), err)
			}
			if err := is.reverseSet(movedEnc, pos); err != nil {
				return false, err
			}
		}
	}
	if is.useReverse {
		if err := is.reverseRemove(enc); err != nil {
			return false, err
		}
	}
	h.length--
	h.generation++
	if err := storeMeta(is.a, is.prefix, h); err != nil {
		return false, err
	}
	return true, nil
}

// Clear removes every member and the Key Index (and reverse index, if
// used). O(len) host calls.
func (is *IterableSet[K]) Clear() error {
	h, err := is.loadMeta()
	if err != nil {
		return err
	}
	for i := uint64(0); i < h.length; i++ {
		k, err := is.keyIndex.readSlot(i)
		if err != nil {
			return err
		}
		key, enc, err := is.entryKey(k)
		if err != nil {
			return err
		}
		if _, _, err := is.a.Remove(key); err != nil {
			return withCause(newError(CodeHostError, "remove entry"), err)
		}
		if is.useReverse {
			if err := is.reverseRemove(enc); err != nil {
				return err
			}
		}
	}
	if err := is.keyIndex.Clear(); err != nil {
		return err
	}
	h.length = 0
	h.generation++
	return storeMeta(is.a, is.prefix, h)
}

// Values returns a lazy cursor over members in Key Index order.
func (is *IterableSet[K]) Values() (*Iterator[K], error) {
	h, err := is.loadMeta()
	if err != nil {
		return nil, err
	}
	return newIterator(h.generation, h.length, is.liveGen, is.keyIndex.readSlot), nil
}
