package collections

import (
	"encoding/binary"

	"github.com/r-near/near-sdk-go/store"
)

// --------------------------------------------------------------------------
// Metadata Header
// --------------------------------------------------------------------------
//
// Every collection keeps a 19-byte record at prefix‖MetaSep:
//
//	length:u64-be, kind:u8, generation:u64-be, codecVersion:u16-be
//
// written with a fixed-width big-endian layout, the same framing
// discipline every fixed-header binary format on this storage layer uses.

// Kind tags a prefix's collection type. Stored once at first write and
// immutable thereafter - reopening a prefix with a
// different Kind is CodeKindMismatch.
type Kind uint8

const (
	KindSequence Kind = iota
	KindLookupMap
	KindLookupSet
	KindIterableMap
	KindIterableSet
	KindOrderedMap
)

func (k Kind) String() string {
	switch k {
	case KindSequence:
		return "Sequence"
	case KindLookupMap:
		return "LookupMap"
	case KindLookupSet:
		return "LookupSet"
	case KindIterableMap:
		return "IterableMap"
	case KindIterableSet:
		return "IterableSet"
	case KindOrderedMap:
		return "OrderedMap"
	default:
		return "Unknown"
	}
}

const metaHeaderSize = 8 + 1 + 8 + 2

// reverseIndexBit records whether an Iterable kind was created with a
// reverse index, packed into the high bit of the codecVersion field so the
// header stays 19 bytes. Fixed at first write.
const reverseIndexBit uint16 = 1 << 15

type meta struct {
	length       uint64
	kind         Kind
	generation   uint64
	codecVersion uint16
}

func (m meta) hasReverseIndex() bool { return m.codecVersion&reverseIndexBit != 0 }

func (m *meta) setReverseIndex(on bool) {
	if on {
		m.codecVersion |= reverseIndexBit
	} else {
		m.codecVersion &^= reverseIndexBit
	}
}

func encodeMeta(m meta) []byte {
	b := make([]byte, metaHeaderSize)
	binary.BigEndian.PutUint64(b[0:8], m.length)
	b[8] = byte(m.kind)
	binary.BigEndian.PutUint64(b[9:17], m.generation)
	binary.BigEndian.PutUint16(b[17:19], m.codecVersion)
	return b
}

func decodeMeta(b []byte) (meta, error) {
	if len(b) != metaHeaderSize {
		return meta{}, newErrorf(CodeDecode, "metadata header: expected %d bytes, got %d", metaHeaderSize, len(b))
	}
	return meta{
		length:       binary.BigEndian.Uint64(b[0:8]),
		kind:         Kind(b[8]),
		generation:   binary.BigEndian.Uint64(b[9:17]),
		codecVersion: binary.BigEndian.Uint16(b[17:19]),
	}, nil
}

// loadMeta reads the header at prefix‖MetaSep, returning a fresh
// zero-length header of kind wantKind if this prefix has never been
// written.
// A header present under a different kind is CodeKindMismatch.
func loadMeta(a *store.Adapter, prefix []byte, wantKind Kind) (meta, error) {
	m, _, err := loadMetaExists(a, prefix, wantKind)
	return m, err
}

// loadMetaExists is loadMeta plus whether a header was actually found, for
// callers (IterableMap/IterableSet) that need to distinguish "never
// written" from "written with these exact zero values" in order to fix the
// removal strategy on first write rather than re-check it every time.
func loadMetaExists(a *store.Adapter, prefix []byte, wantKind Kind) (meta, bool, error) {
	key := a.Compose(prefix, store.MetaSep)
	b, ok, err := a.Read(key)
	if err != nil {
		return meta{}, false, withCause(newErrorf(CodeHostError, "read metadata"), err)
	}
	if !ok {
		return meta{length: 0, kind: wantKind}, false, nil
	}
	m, err := decodeMeta(b)
	if err != nil {
		return meta{}, false, err
	}
	if m.kind != wantKind {
		return meta{}, false, withKey(newErrorf(CodeKindMismatch, "prefix holds a %s, not a %s", m.kind, wantKind), string(prefix))
	}
	return m, true, nil
}

// storeMeta writes m at prefix‖MetaSep.
func storeMeta(a *store.Adapter, prefix []byte, m meta) error {
	key := a.Compose(prefix, store.MetaSep)
	if _, err := a.Write(key, encodeMeta(m)); err != nil {
		return withCause(newErrorf(CodeHostError, "write metadata"), err)
	}
	return nil
}
