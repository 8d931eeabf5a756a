package collections

import (
	"bytes"

	"github.com/r-near/near-sdk-go/codec"
	"github.com/r-near/near-sdk-go/store"
)

// Entry is one (key, value) pair yielded by an IterableMap/OrderedMap
// Entries() iterator.
type Entry[K, V any] struct {
	Key   K
	Value V
}

// --------------------------------------------------------------------------
// Iterable Map
// --------------------------------------------------------------------------

// IterableMapOption configures an IterableMap at construction.
type IterableMapOption func(*iterableOptions)

type iterableOptions struct {
	reverseIndex bool
}

// WithReverseIndex selects the O(1)-removal variant: an auxiliary
// key->position map at prefix‖REVERSE_SEP‖ENTRY_SEP‖encoded-key, at the
// cost of extra storage and write traffic on every Set/Remove. Without it,
// Remove falls back to an O(n) linear scan of the Key Index.
//
// This choice is fixed the first time a prefix's header is written and
// must be reused thereafter: reopening an existing prefix
// with the other strategy is CodeKindMismatch.
func WithReverseIndex() IterableMapOption {
	return func(o *iterableOptions) { o.reverseIndex = true }
}

// IterableMap extends LookupMap's semantics with Keys/Values/Entries
// enumeration and a deep Clear, backed by a companion Key Index Sequence
// at prefix‖INDEX_SEP.
//
// Thread-safety: see Sequence.
type IterableMap[K, V any] struct {
	a          *store.Adapter
	prefix     []byte
	keyCodec   codec.Codec[K]
	valCodec   codec.Codec[V]
	keyIndex   *Sequence[K]
	useReverse bool
}

// NewIterableMap returns a handle over prefix. Constructing a handle never
// touches storage.
func NewIterableMap[K, V any](a *store.Adapter, prefix []byte, kc codec.Codec[K], vc codec.Codec[V], opts ...IterableMapOption) (*IterableMap[K, V], error) {
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
	return &IterableMap[K, V]{a: a, prefix: prefix, keyCodec: kc, valCodec: vc, keyIndex: keyIndex, useReverse: o.reverseIndex}, nil
}

func (im *IterableMap[K, V]) loadMeta() (meta, error) {
	m, existed, err := loadMetaExists(im.a, im.prefix, KindIterableMap)
	if err != nil {
		return meta{}, err
	}
	if existed {
		if m.hasReverseIndex() != im.useReverse {
			return meta{}, withKey(newError(CodeKindMismatch, "removal strategy does not match the stored instance"), string(im.prefix))
		}
	} else {
		m.setReverseIndex(im.useReverse)
	}
	return m, nil
}

func (im *IterableMap[K, V]) liveGen() (uint64, error) {
	m, err := im.loadMeta()
	if err != nil {
		return 0, err
	}
	return m.generation, nil
}

// Len returns the current number of entries.
func (im *IterableMap[K, V]) Len() (uint64, error) {
	m, err := im.loadMeta()
	if err != nil {
		return 0, err
	}
	return m.length, nil
}

// IsEmpty reports whether Len() == 0.
func (im *IterableMap[K, V]) IsEmpty() (bool, error) {
	n, err := im.Len()
	return n == 0, err
}

func (im *IterableMap[K, V]) entryKey(k K) ([]byte, []byte, error) {
	enc, err := im.keyCodec.Encode(k)
	if err != nil {
		return nil, nil, withCause(withKey(newError(CodeEncode, "encode key"), k), err)
	}
	return entryKeyBytes(im.a, im.prefix, enc), enc, nil
}

// Get returns the value at k, or ok=false if k is absent.
func (im *IterableMap[K, V]) Get(k K) (V, bool, error) {
	var zero V
	key, _, err := im.entryKey(k)
	if err != nil {
		return zero, false, err
	}
	b, ok, err := im.a.Read(key)
	if err != nil {
		return zero, false, withCause(newError(CodeHostError, "read entry"), err)
	}
	if !ok {
		return zero, false, nil
	}
	v, err := im.valCodec.Decode(b)
	if err != nil {
		return zero, false, withCause(withKey(newError(CodeDecode, "decode entry"), k), err)
	}
	return v, true, nil
}

// Contains reports whether k is present.
func (im *IterableMap[K, V]) Contains(k K) (bool, error) {
	key, _, err := im.entryKey(k)
	if err != nil {
		return false, err
	}
	ok, err := im.a.Has(key)
	if err != nil {
		return false, withCause(newError(CodeHostError, "has entry"), err)
	}
	return ok, nil
}

// --------------------------------------------------------------------------
// Reverse index (only touched when useReverse is true)
// --------------------------------------------------------------------------

func (im *IterableMap[K, V]) reverseKey(enc []byte) []byte {
	return reverseEntryKey(im.a, im.prefix, enc)
}

func (im *IterableMap[K, V]) reverseGet(enc []byte) (uint64, bool, error) {
	b, ok, err := im.a.Read(im.reverseKey(enc))
	if err != nil {
		return 0, false, withCause(newError(CodeHostError, "read reverse index"), err)
	}
	if !ok {
		return 0, false, nil
	}
	return decodeUint64(b), true, nil
}

func (im *IterableMap[K, V]) reverseSet(enc []byte, pos uint64) error {
	if _, err := im.a.Write(im.reverseKey(enc), appendUint64(nil, pos)); err != nil {
		return withCause(newError(CodeHostError, "write reverse index"), err)
	}
	return nil
}

func (im *IterableMap[K, V]) reverseRemove(enc []byte) error {
	if _, _, err := im.a.Remove(im.reverseKey(enc)); err != nil {
		return withCause(newError(CodeHostError, "remove reverse index"), err)
	}
	return nil
}

// positionOf locates k's slot in the Key Index: O(1) via the reverse index
// if useReverse, O(n) linear scan otherwise.
func (im *IterableMap[K, V]) positionOf(k K, enc []byte, length uint64) (uint64, bool, error) {
	if im.useReverse {
		return im.reverseGet(enc)
	}
	for i := uint64(0); i < length; i++ {
		cand, err := im.keyIndex.readSlot(i)
		if err != nil {
			return 0, false, err
		}
		candEnc, err := im.keyCodec.Encode(cand)
		if err != nil {
			return 0, false, withCause(withKey(newError(CodeEncode, "encode key"), cand), err)
		}
		if bytes.Equal(candEnc, enc) {
			return i, true, nil
		}
	}
	return 0, false, nil
}

// --------------------------------------------------------------------------
// Mutation
// --------------------------------------------------------------------------

// Set writes v at k. If k is newly present, it is appended to the Key
// Index (amortized O(1)); if already present, only the value is
// overwritten (O(1)).
func (im *IterableMap[K, V]) Set(k K, v V) error {
	key, enc, err := im.entryKey(k)
	if err != nil {
		return err
	}
	encVal, err := im.valCodec.Encode(v)
	if err != nil {
		return withCause(withKey(newError(CodeEncode, "encode value"), k), err)
	}
	h, err := im.loadMeta()
	if err != nil {
		return err
	}
	priorPresent, err := im.a.Has(key)
	if err != nil {
		return withCause(newError(CodeHostError, "has entry"), err)
	}
	if !priorPresent {
		pos, err := im.keyIndex.Len()
		if err != nil {
			return err
		}
		if err := im.keyIndex.Append(k); err != nil {
			return err
		}
		if im.useReverse {
			if err := im.reverseSet(enc, pos); err != nil {
				return err
			}
		}
		h.length++
	}
	if _, err := im.a.Write(key, encVal); err != nil {
		return withCause(newError(CodeHostError, "write entry"), err)
	}
	h.generation++
	return storeMeta(im.a, im.prefix, h)
}

// Remove deletes k, returning (value, true, nil) if it was present and
// (zero, false, nil) if it was absent. Removal swaps with the last Key
// Index slot (Sequence.SwapRemove), so iteration order is not preserved
// across removals.
func (im *IterableMap[K, V]) Remove(k K) (V, bool, error) {
	var zero V
	key, enc, err := im.entryKey(k)
	if err != nil {
		return zero, false, err
	}
	b, ok, err := im.a.Remove(key)
	if err != nil {
		return zero, false, withCause(newError(CodeHostError, "remove entry"), err)
	}
	if !ok {
		return zero, false, nil
	}
	v, err := im.valCodec.Decode(b)
	if err != nil {
		return zero, false, withCause(withKey(newError(CodeDecode, "decode entry"), k), err)
	}

	h, err := im.loadMeta()
	if err != nil {
		return zero, false, err
	}
	pos, found, err := im.positionOf(k, enc, h.length)
	if err != nil {
		return zero, false, err
	}
	if !found {
		return zero, false, withKey(newError(CodeDecode, "key present in payload but missing from key index (corrupt)"), k)
	}
	lastIdx := h.length - 1
	if _, err := im.keyIndex.SwapRemove(pos); err != nil {
		return zero, false, err
	}
	if pos != lastIdx {
		moved, err := im.keyIndex.readSlot(pos)
		if err != nil {
			return zero, false, err
		}
		if im.useReverse {
			movedEnc, err := im.keyCodec.Encode(moved)
			if err != nil {
				return zero, false, withCause(withKey(newError(CodeEncode, "encode key"), moved), err)
			}
			if err := im.reverseSet(movedEnc, pos); err != nil {
				return zero, false, err
			}
		}
	}
	if im.useReverse {
		if err := im.reverseRemove(enc); err != nil {
			return zero, false, err
		}
	}
	h.length--
	h.generation++
	if err := storeMeta(im.a, im.prefix, h); err != nil {
		return zero, false, err
	}
	return v, true, nil
}

// Clear removes every entry and the Key Index (and reverse index, if
// used). O(len) host calls.
func (im *IterableMap[K, V]) Clear() error {
	h, err := im.loadMeta()
	if err != nil {
		return err
	}
	for i := uint64(0); i < h.length; i++ {
		k, err := im.keyIndex.readSlot(i)
		if err != nil {
			return err
		}
		key, enc, err := im.entryKey(k)
		if err != nil {
			return err
		}
		if _, _, err := im.a.Remove(key); err != nil {
			return withCause(newError(CodeHostError, "remove entry"), err)
		}
		if im.useReverse {
			if err := im.reverseRemove(enc); err != nil {
				return err
			}
		}
	}
	if err := im.keyIndex.Clear(); err != nil {
		return err
	}
	h.length = 0
	h.generation++
	return storeMeta(im.a, im.prefix, h)
}

// --------------------------------------------------------------------------
// Enumeration
// --------------------------------------------------------------------------

// Keys returns a lazy cursor over member keys in Key Index order
// (insertion order, disturbed by swap-remove on prior removals).
func (im *IterableMap[K, V]) Keys() (*Iterator[K], error) {
	h, err := im.loadMeta()
	if err != nil {
		return nil, err
	}
	return newIterator(h.generation, h.length, im.liveGen, im.keyIndex.readSlot), nil
}

// Values returns a lazy cursor over member values in Key Index order.
func (im *IterableMap[K, V]) Values() (*Iterator[V], error) {
	h, err := im.loadMeta()
	if err != nil {
		return nil, err
	}
	return newIterator(h.generation, h.length, im.liveGen, im.valueAt), nil
}

// Entries returns a lazy cursor over (key, value) pairs in Key Index order.
func (im *IterableMap[K, V]) Entries() (*Iterator[Entry[K, V]], error) {
	h, err := im.loadMeta()
	if err != nil {
		return nil, err
	}
	return newIterator(h.generation, h.length, im.liveGen, im.entryAt), nil
}

func (im *IterableMap[K, V]) valueAt(i uint64) (V, error) {
	var zero V
	k, err := im.keyIndex.readSlot(i)
	if err != nil {
		return zero, err
	}
	v, ok, err := im.Get(k)
	if err != nil {
		return zero, err
	}
	if !ok {
		return zero, withKey(newError(CodeDecode, "key in index missing from payload (corrupt)"), k)
	}
	return v, nil
}

func (im *IterableMap[K, V]) entryAt(i uint64) (Entry[K, V], error) {
	k, err := im.keyIndex.readSlot(i)
	if err != nil {
		return Entry[K, V]{}, err
	}
	v, ok, err := im.Get(k)
	if err != nil {
		return Entry[K, V]{}, err
	}
	if !ok {
		return Entry[K, V]{}, withKey(newError(CodeDecode, "key in index missing from payload (corrupt)"), k)
	}
	return Entry[K, V]{Key: k, Value: v}, nil
}
