// Package memhost implements store.Host over an in-memory concurrent map.
//
// This is the fake host a test harness swaps in for the real one: the
// collections test suite and the cmd/demo CLI both drive the exact same
// collections code against this in-memory host that a real blockchain
// runtime would drive in production.
package memhost

import (
	"github.com/puzpuzpuz/xsync/v3"

	"github.com/r-near/near-sdk-go/internal/log"
)

// Host is an in-memory store.Host backed by a github.com/puzpuzpuz/xsync/v3
// concurrent map. It is safe for concurrent use by multiple goroutines,
// which makes it useful both for single-threaded property tests and for
// the cltest concurrent-host smoke test.
type Host struct {
	data  *xsync.MapOf[string, []byte]
	debug *log.Logger // nil unless WithDebug is used
}

// Option configures a Host at construction.
type Option func(*Host)

// WithDebug logs every host call at DEBUG level through the package's
// internal logger. Used only by cmd/demo; the collections package never
// triggers this path on its own, matching the library's own no-logging contract.
func WithDebug() Option {
	return func(h *Host) {
		h.debug = log.New("memhost")
		h.debug.SetLevel(log.LevelDebug)
	}
}

// New creates an empty in-memory host.
func New(opts ...Option) *Host {
	h := &Host{data: xsync.NewMapOf[string, []byte]()}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Host) Read(key []byte) ([]byte, bool, error) {
	v, ok := h.data.Load(string(key))
	if h.debug != nil {
		h.debug.Debugf("Read(%q) -> ok=%v", key, ok)
	}
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, true, nil
}

func (h *Host) Write(key, value []byte) (bool, error) {
	stored := make([]byte, len(value))
	copy(stored, value)
	_, prior := h.data.LoadAndStore(string(key), stored)
	if h.debug != nil {
		h.debug.Debugf("Write(%q, %d bytes) -> priorPresent=%v", key, len(value), prior)
	}
	return prior, nil
}

func (h *Host) Remove(key []byte) ([]byte, bool, error) {
	v, ok := h.data.LoadAndDelete(string(key))
	if h.debug != nil {
		h.debug.Debugf("Remove(%q) -> ok=%v", key, ok)
	}
	if !ok {
		return nil, false, nil
	}
	return v, true, nil
}

func (h *Host) Has(key []byte) (bool, error) {
	_, ok := h.data.Load(string(key))
	if h.debug != nil {
		h.debug.Debugf("Has(%q) -> %v", key, ok)
	}
	return ok, nil
}

// Len reports the number of keys currently stored. Useful in tests that
// assert on orphaned storage after a LookupMap/LookupSet Clear .
func (h *Host) Len() int {
	return h.data.Size()
}

// Keys returns a snapshot of all keys currently stored, for test
// assertions that need to inspect storage directly rather than through a
// collection handle.
func (h *Host) Keys() []string {
	keys := make([]string, 0, h.data.Size())
	h.data.Range(func(k string, _ []byte) bool {
		keys = append(keys, k)
		return true
	})
	return keys
}
