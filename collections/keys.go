package collections

import (
	"encoding/binary"

	"github.com/r-near/near-sdk-go/store"
)

// --------------------------------------------------------------------------
// Key composition helpers
// --------------------------------------------------------------------------
//
// These are thin wrappers around store.Adapter.Compose that encode the
// exact wire layout every collection kind shares. Nothing here touches
// storage.

func entrySlotKey(a *store.Adapter, prefix []byte, index uint64) []byte {
	suffix := make([]byte, 0, len(store.EntrySep)+8)
	suffix = append(suffix, store.EntrySep...)
	suffix = appendUint64(suffix, index)
	return a.Compose(prefix, suffix)
}

func entryKeyBytes(a *store.Adapter, prefix []byte, encodedKey []byte) []byte {
	suffix := make([]byte, 0, len(store.EntrySep)+len(encodedKey))
	suffix = append(suffix, store.EntrySep...)
	suffix = append(suffix, encodedKey...)
	return a.Compose(prefix, suffix)
}

// indexPrefix is the Key Index's own prefix: P‖INDEX_SEP. Constructing a
// Sequence at this prefix gives exactly the P‖INDEX_SEP‖META_SEP and
// P‖INDEX_SEP‖ENTRY_SEP‖… layout.
func indexPrefix(prefix []byte) []byte {
	out := make([]byte, 0, len(prefix)+len(store.IndexSep))
	out = append(out, prefix...)
	out = append(out, store.IndexSep...)
	return out
}

// reverseEntryKey addresses the optional key→position map: P‖REVERSE_SEP‖ENTRY_SEP‖encoded-key.
func reverseEntryKey(a *store.Adapter, prefix []byte, encodedKey []byte) []byte {
	suffix := make([]byte, 0, len(store.ReverseSep)+len(store.EntrySep)+len(encodedKey))
	suffix = append(suffix, store.ReverseSep...)
	suffix = append(suffix, store.EntrySep...)
	suffix = append(suffix, encodedKey...)
	return a.Compose(prefix, suffix)
}

func appendUint64(buf []byte, v uint64) []byte {
	var tmp [8]byte
	binary.BigEndian.PutUint64(tmp[:], v)
	return append(buf, tmp[:]...)
}

func decodeUint64(b []byte) uint64 {
	return binary.BigEndian.Uint64(b)
}
