package collections

import (
	"bytes"

	"github.com/r-near/near-sdk-go/codec"
	"github.com/r-near/near-sdk-go/store"
)

// --------------------------------------------------------------------------
// Bound
// --------------------------------------------------------------------------

// BoundKind discriminates a Range endpoint.
type BoundKind uint8

const (
	Unbounded BoundKind = iota
	Inclusive
	Exclusive
)

// Bound is one endpoint of a Range query.
type Bound[K any] struct {
	Kind BoundKind
	Key  K
}

// Incl builds an Inclusive bound at k.
func Incl[K any](k K) Bound[K] { return Bound[K]{Kind: Inclusive, Key: k} }

// Excl builds an Exclusive bound at k.
func Excl[K any](k K) Bound[K] { return Bound[K]{Kind: Exclusive, Key: k} }

// Unb builds an Unbounded bound.
func Unb[K any]() Bound[K] { return Bound[K]{Kind: Unbounded} }

// --------------------------------------------------------------------------
// Ordered Map
// --------------------------------------------------------------------------

// OrderedMap is a key-sorted map: all IterableMap operations, plus
// MinKey/MaxKey/Floor/Ceiling/Range. The Key Index is a Sequence kept in
// sorted order by the lexicographic byte order of the encoded key -
// insertion performs a binary search (O(log n) reads) then an
// insert-at-position, which for an append-only Sequence requires shifting
// subsequent slots (O(n) writes). This is the "shifting variant" this library permits over a more complex skip-list/B-tree structure.
//
// The ordering predicate is therefore entirely a function of the Codec
// chosen for K: codec.String/codec.Bytes give lexicographic ordering,
// codec.OrderedUint64/codec.OrderedInt64 give numeric ordering, by virtue
// of what byte sequence each one produces. OrderedMap itself always
// compares raw encoded bytes.
//
// Thread-safety: see Sequence.
type OrderedMap[K, V any] struct {
	a        *store.Adapter
	prefix   []byte
	keyCodec codec.Codec[K]
	valCodec codec.Codec[V]
	keyIndex *Sequence[K]
}

// NewOrderedMap returns a handle over prefix. Constructing a handle never
// touches storage.
func NewOrderedMap[K, V any](a *store.Adapter, prefix []byte, kc codec.Codec[K], vc codec.Codec[V]) (*OrderedMap[K, V], error) {
	if err := store.CheckPrefix(prefix); err != nil {
		return nil, withKey(newError(CodeEncode, "prefix contains a reserved separator"), string(prefix))
	}
	// The index prefix carries the reserved IndexSep by construction, so it
	// is not passed through NewSequence's caller-prefix check.
	keyIndex := &Sequence[K]{a: a, prefix: indexPrefix(prefix), codec: kc}
	return &OrderedMap[K, V]{a: a, prefix: prefix, keyCodec: kc, valCodec: vc, keyIndex: keyIndex}, nil
}

func (om *OrderedMap[K, V]) loadMeta() (meta, error) {
	return loadMeta(om.a, om.prefix, KindOrderedMap)
}

func (om *OrderedMap[K, V]) liveGen() (uint64, error) {
	m, err := om.loadMeta()
	if err != nil {
		return 0, err
	}
	return m.generation, nil
}

// Len returns the current number of entries.
func (om *OrderedMap[K, V]) Len() (uint64, error) {
	m, err := om.loadMeta()
	if err != nil {
		return 0, err
	}
	return m.length, nil
}

// IsEmpty reports whether Len() == 0.
func (om *OrderedMap[K, V]) IsEmpty() (bool, error) {
	n, err := om.Len()
	return n == 0, err
}

func (om *OrderedMap[K, V]) entryKey(k K) ([]byte, []byte, error) {
	enc, err := om.keyCodec.Encode(k)
	if err != nil {
		return nil, nil, withCause(withKey(newError(CodeEncode, "encode key"), k), err)
	}
	return entryKeyBytes(om.a, om.prefix, enc), enc, nil
}

// Get returns the value at k, or ok=false if k is absent.
func (om *OrderedMap[K, V]) Get(k K) (V, bool, error) {
	var zero V
	key, _, err := om.entryKey(k)
	if err != nil {
		return zero, false, err
	}
	b, ok, err := om.a.Read(key)
	if err != nil {
		return zero, false, withCause(newError(CodeHostError, "read entry"), err)
	}
	if !ok {
		return zero, false, nil
	}
	v, err := om.valCodec.Decode(b)
	if err != nil {
		return zero, false, withCause(withKey(newError(CodeDecode, "decode entry"), k), err)
	}
	return v, true, nil
}

// Contains reports whether k is present.
func (om *OrderedMap[K, V]) Contains(k K) (bool, error) {
	key, _, err := om.entryKey(k)
	if err != nil {
		return false, err
	}
	ok, err := om.a.Has(key)
	if err != nil {
		return false, withCause(newError(CodeHostError, "has entry"), err)
	}
	return ok, nil
}

// lowerBound returns the index of the first stored key whose encoding is
// >= encTarget (length if none), plus whether that index is an exact
// match. O(log n) reads.
func (om *OrderedMap[K, V]) lowerBound(encTarget []byte, length uint64) (uint64, bool, error) {
	lo, hi := uint64(0), length
	exact := false
	for lo < hi {
		mid := lo + (hi-lo)/2
		k, err := om.keyIndex.readSlot(mid)
		if err != nil {
			return 0, false, err
		}
		enc, err := om.keyCodec.Encode(k)
		if err != nil {
			return 0, false, withCause(withKey(newError(CodeEncode, "encode key"), k), err)
		}
		switch bytes.Compare(enc, encTarget) {
		case 0:
			return mid, true, nil
		case -1:
			lo = mid + 1
		default:
			hi = mid
		}
	}
	if lo < length {
		k, err := om.keyIndex.readSlot(lo)
		if err != nil {
			return 0, false, err
		}
		enc, err := om.keyCodec.Encode(k)
		if err != nil {
			return 0, false, withCause(withKey(newError(CodeEncode, "encode key"), k), err)
		}
		exact = bytes.Equal(enc, encTarget)
	}
	return lo, exact, nil
}

// Set writes v at k, inserting k into the sorted Key Index at its binary-
// search position if newly present (O(log n) reads + O(n) shift writes),
// or only overwriting the value if already present (O(1)).
func (om *OrderedMap[K, V]) Set(k K, v V) error {
	key, enc, err := om.entryKey(k)
	if err != nil {
		return err
	}
	encVal, err := om.valCodec.Encode(v)
	if err != nil {
		return withCause(withKey(newError(CodeEncode, "encode value"), k), err)
	}
	h, err := om.loadMeta()
	if err != nil {
		return err
	}
	priorPresent, err := om.a.Has(key)
	if err != nil {
		return withCause(newError(CodeHostError, "has entry"), err)
	}
	if !priorPresent {
		pos, exact, err := om.lowerBound(enc, h.length)
		if err != nil {
			return err
		}
		if exact {
			return withKey(newError(CodeDecode, "key index out of sync with payload (corrupt)"), k)
		}
		if err := om.insertKeyAt(pos, k, h.length); err != nil {
			return err
		}
		h.length++
	}
	if _, err := om.a.Write(key, encVal); err != nil {
		return withCause(newError(CodeHostError, "write entry"), err)
	}
	h.generation++
	return storeMeta(om.a, om.prefix, h)
}

// insertKeyAt shifts keyIndex[pos:length] right by one slot and writes k
// at pos. O(n) writes.
func (om *OrderedMap[K, V]) insertKeyAt(pos uint64, k K, length uint64) error {
	var zero K
	if err := om.keyIndex.Append(zero); err != nil {
		return err
	}
	for i := length; i > pos; i-- {
		v, err := om.keyIndex.Get(i - 1)
		if err != nil {
			return err
		}
		if err := om.keyIndex.Set(i, v); err != nil {
			return err
		}
	}
	return om.keyIndex.Set(pos, k)
}

// removeKeyAt shifts keyIndex[pos+1:length] left by one slot and drops the
// final (now-duplicate) slot. O(n) writes.
func (om *OrderedMap[K, V]) removeKeyAt(pos uint64, length uint64) error {
	for i := pos; i+1 < length; i++ {
		v, err := om.keyIndex.Get(i + 1)
		if err != nil {
			return err
		}
		if err := om.keyIndex.Set(i, v); err != nil {
			return err
		}
	}
	_, err := om.keyIndex.Pop()
	return err
}

// Remove deletes k, returning (value, true, nil) if it was present and
// (zero, false, nil) if it was absent.
func (om *OrderedMap[K, V]) Remove(k K) (V, bool, error) {
	var zero V
	key, enc, err := om.entryKey(k)
	if err != nil {
		return zero, false, err
	}
	b, ok, err := om.a.Remove(key)
	if err != nil {
		return zero, false, withCause(newError(CodeHostError, "remove entry"), err)
	}
	if !ok {
		return zero, false, nil
	}
	v, err := om.valCodec.Decode(b)
	if err != nil {
		return zero, false, withCause(withKey(newError(CodeDecode, "decode entry"), k), err)
	}

	h, err := om.loadMeta()
	if err != nil {
		return zero, false, err
	}
	pos, exact, err := om.lowerBound(enc, h.length)
	if err != nil {
		return zero, false, err
	}
	if !exact {
		return zero, false, withKey(newError(CodeDecode, "key present in payload but missing from key index (corrupt)"), k)
	}
	if err := om.removeKeyAt(pos, h.length); err != nil {
		return zero, false, err
	}
	h.length--
	h.generation++
	if err := storeMeta(om.a, om.prefix, h); err != nil {
		return zero, false, err
	}
	return v, true, nil
}

// Clear removes every entry and the Key Index. O(len) host calls.
func (om *OrderedMap[K, V]) Clear() error {
	h, err := om.loadMeta()
	if err != nil {
		return err
	}
	for i := uint64(0); i < h.length; i++ {
		k, err := om.keyIndex.readSlot(i)
		if err != nil {
			return err
		}
		key, _, err := om.entryKey(k)
		if err != nil {
			return err
		}
		if _, _, err := om.a.Remove(key); err != nil {
			return withCause(newError(CodeHostError, "remove entry"), err)
		}
	}
	if err := om.keyIndex.Clear(); err != nil {
		return err
	}
	h.length = 0
	h.generation++
	return storeMeta(om.a, om.prefix, h)
}

// --------------------------------------------------------------------------
// Ordered queries
// --------------------------------------------------------------------------

// MinKey returns the least stored key, or CodeEmpty if the map is empty.
func (om *OrderedMap[K, V]) MinKey() (K, error) {
	var zero K
	h, err := om.loadMeta()
	if err != nil {
		return zero, err
	}
	if h.length == 0 {
		return zero, newError(CodeEmpty, "min on empty ordered map")
	}
	return om.keyIndex.readSlot(0)
}

// MaxKey returns the greatest stored key, or CodeEmpty if the map is empty.
func (om *OrderedMap[K, V]) MaxKey() (K, error) {
	var zero K
	h, err := om.loadMeta()
	if err != nil {
		return zero, err
	}
	if h.length == 0 {
		return zero, newError(CodeEmpty, "max on empty ordered map")
	}
	return om.keyIndex.readSlot(h.length - 1)
}

// Floor returns the greatest stored key <= k, or ok=false if none exists
// (including on an empty map).
func (om *OrderedMap[K, V]) Floor(k K) (K, bool, error) {
	var zero K
	enc, err := om.keyCodec.Encode(k)
	if err != nil {
		return zero, false, withCause(withKey(newError(CodeEncode, "encode key"), k), err)
	}
	h, err := om.loadMeta()
	if err != nil {
		return zero, false, err
	}
	pos, exact, err := om.lowerBound(enc, h.length)
	if err != nil {
		return zero, false, err
	}
	if exact {
		return k, true, nil
	}
	if pos == 0 {
		return zero, false, nil
	}
	v, err := om.keyIndex.readSlot(pos - 1)
	if err != nil {
		return zero, false, err
	}
	return v, true, nil
}

// Ceiling returns the least stored key >= k, or ok=false if none exists.
func (om *OrderedMap[K, V]) Ceiling(k K) (K, bool, error) {
	var zero K
	enc, err := om.keyCodec.Encode(k)
	if err != nil {
		return zero, false, withCause(withKey(newError(CodeEncode, "encode key"), k), err)
	}
	h, err := om.loadMeta()
	if err != nil {
		return zero, false, err
	}
	pos, _, err := om.lowerBound(enc, h.length)
	if err != nil {
		return zero, false, err
	}
	if pos >= h.length {
		return zero, false, nil
	}
	v, err := om.keyIndex.readSlot(pos)
	if err != nil {
		return zero, false, err
	}
	return v, true, nil
}

// Range returns a lazy cursor over keys between from and to, in ascending
// order; each endpoint is included, excluded or open as its Bound's Kind
// says. Out-of-order bounds (from after to)
// yield an empty cursor, never an error. Range(Unbounded, Unbounded)
// equals Keys().
func (om *OrderedMap[K, V]) Range(from, to Bound[K]) (*Iterator[K], error) {
	h, err := om.loadMeta()
	if err != nil {
		return nil, err
	}

	start, err := om.boundStart(from, h.length)
	if err != nil {
		return nil, err
	}
	end, err := om.boundEnd(to, h.length)
	if err != nil {
		return nil, err
	}

	var length uint64
	if end > start {
		length = end - start
	}
	fetch := func(i uint64) (K, error) { return om.keyIndex.readSlot(start + i) }
	return newIterator(h.generation, length, om.liveGen, fetch), nil
}

func (om *OrderedMap[K, V]) boundStart(b Bound[K], total uint64) (uint64, error) {
	if b.Kind == Unbounded {
		return 0, nil
	}
	enc, err := om.keyCodec.Encode(b.Key)
	if err != nil {
		return 0, withCause(withKey(newError(CodeEncode, "encode key"), b.Key), err)
	}
	pos, exact, err := om.lowerBound(enc, total)
	if err != nil {
		return 0, err
	}
	if b.Kind == Exclusive && exact {
		pos++
	}
	return pos, nil
}

func (om *OrderedMap[K, V]) boundEnd(b Bound[K], total uint64) (uint64, error) {
	if b.Kind == Unbounded {
		return total, nil
	}
	enc, err := om.keyCodec.Encode(b.Key)
	if err != nil {
		return 0, withCause(withKey(newError(CodeEncode, "encode key"), b.Key), err)
	}
	pos, exact, err := om.lowerBound(enc, total)
	if err != nil {
		return 0, err
	}
	if b.Kind == Inclusive && exact {
		pos++
	}
	return pos, nil
}

// Keys returns a lazy cursor over all keys in ascending order.
func (om *OrderedMap[K, V]) Keys() (*Iterator[K], error) {
	return om.Range(Unb[K](), Unb[K]())
}

// Values returns a lazy cursor over values in key-ascending order.
func (om *OrderedMap[K, V]) Values() (*Iterator[V], error) {
	h, err := om.loadMeta()
	if err != nil {
		return nil, err
	}
	return newIterator(h.generation, h.length, om.liveGen, om.valueAt), nil
}

// Entries returns a lazy cursor over (key, value) pairs in key-ascending
// order - the original's TreeMap.items() equivalent (supplemented
// feature).
func (om *OrderedMap[K, V]) Entries() (*Iterator[Entry[K, V]], error) {
	h, err := om.loadMeta()
	if err != nil {
		return nil, err
	}
	return newIterator(h.generation, h.length, om.liveGen, om.entryAt), nil
}

func (om *OrderedMap[K, V]) valueAt(i uint64) (V, error) {
	var zero V
	k, err := om.keyIndex.readSlot(i)
	if err != nil {
		return zero, err
	}
	v, ok, err := om.Get(k)
	if err != nil {
		return zero, err
	}
	if !ok {
		return zero, withKey(newError(CodeDecode, "key in index missing from payload (corrupt)"), k)
	}
	return v, nil
}

func (om *OrderedMap[K, V]) entryAt(i uint64) (Entry[K, V], error) {
	k, err := om.keyIndex.readSlot(i)
	if err != nil {
		return Entry[K, V]{}, err
	}
	v, ok, err := om.Get(k)
	if err != nil {
		return Entry[K, V]{}, err
	}
	if !ok {
		return Entry[K, V]{}, withKey(newError(CodeDecode, "key in index missing from payload (corrupt)"), k)
	}
	return Entry[K, V]{Key: k, Value: v}, nil
}
