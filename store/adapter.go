package store

import (
	"bytes"
	"errors"
)

// --------------------------------------------------------------------------
// Reserved Separators
// --------------------------------------------------------------------------

// These four byte strings are reserved by the library and must never
// appear inside a caller-supplied prefix segment. They are distinct from
// each other so that META_SEP, ENTRY_SEP, INDEX_SEP, and REVERSE_SEP can
// all be suffixed onto the same parent prefix without ambiguity.
var (
	MetaSep    = []byte(":m:")
	EntrySep   = []byte(":e:")
	IndexSep   = []byte(":i:")
	ReverseSep = []byte(":r:")
)

var reserved = [][]byte{MetaSep, EntrySep, IndexSep, ReverseSep}

// ErrReservedByte is returned by CheckPrefix when a caller-supplied segment
// contains one of the library's reserved separators. Compose itself does
// not validate; collection constructors and collections.Child call
// CheckPrefix and report a failure as a CodeEncode error.
var ErrReservedByte = errors.New("store: prefix segment contains a reserved separator")

// --------------------------------------------------------------------------
// Adapter
// --------------------------------------------------------------------------

// Adapter is the only type in the library that calls a Host directly.
// Higher layers compose typed (prefix, suffix) pairs through it and never
// see a Host or a raw key.
type Adapter struct {
	host Host
}

// NewAdapter wraps a Host for use by the collections package.
func NewAdapter(h Host) *Adapter {
	return &Adapter{host: h}
}

// Compose concatenates prefix and suffix into a full storage key.
// It is injective for any (prefix, suffix) pair in which neither prefix
// nor a library-reserved separator inside suffix was supplied by the
// caller in violation of the reserved-byte discipline: given that
// discipline, two different (prefix, suffix) pairs never alias the same
// full key.
func (a *Adapter) Compose(prefix, suffix []byte) []byte {
	full := make([]byte, 0, len(prefix)+len(suffix))
	full = append(full, prefix...)
	full = append(full, suffix...)
	return full
}

// CheckPrefix returns ErrReservedByte if prefix contains any of the
// library's reserved separator bytes. Collection constructors call this
// once, at construction, so that a caller-supplied prefix can never later
// collide with a META_SEP/ENTRY_SEP/INDEX_SEP/REVERSE_SEP suffix composed
// on top of it.
func CheckPrefix(prefix []byte) error {
	for _, sep := range reserved {
		if bytes.Contains(prefix, sep) {
			return ErrReservedByte
		}
	}
	return nil
}

// Read reads full (a fully composed key) from the underlying Host.
func (a *Adapter) Read(full []byte) ([]byte, bool, error) {
	v, ok, err := a.host.Read(full)
	if err != nil {
		return nil, false, &HostError{Op: "Read", Key: full, Err: err}
	}
	return v, ok, nil
}

// Write writes value at full (a fully composed key).
func (a *Adapter) Write(full, value []byte) (bool, error) {
	prior, err := a.host.Write(full, value)
	if err != nil {
		return false, &HostError{Op: "Write", Key: full, Err: err}
	}
	return prior, nil
}

// Remove removes full (a fully composed key).
func (a *Adapter) Remove(full []byte) ([]byte, bool, error) {
	v, ok, err := a.host.Remove(full)
	if err != nil {
		return nil, false, &HostError{Op: "Remove", Key: full, Err: err}
	}
	return v, ok, nil
}

// Has reports whether full (a fully composed key) is present.
func (a *Adapter) Has(full []byte) (bool, error) {
	ok, err := a.host.Has(full)
	if err != nil {
		return false, &HostError{Op: "Has", Key: full, Err: err}
	}
	return ok, nil
}
