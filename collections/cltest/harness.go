package cltest

import (
	"github.com/r-near/near-sdk-go/store"
)

// HostFactory creates a fresh, empty store.Host for a single test.
type HostFactory func() store.Host

func newAdapter(factory HostFactory) *store.Adapter {
	return store.NewAdapter(factory())
}

// hostProbe wraps a store.Host and tracks the set of keys currently
// present, so tests can assert on orphaned storage (e.g. LookupMap.Clear)
// without depending on any particular Host implementation exposing its
// own key listing.
type hostProbe struct {
	store.Host
	keys map[string]struct{}
}

func newHostProbe(h store.Host) *hostProbe {
	return &hostProbe{Host: h, keys: make(map[string]struct{})}
}

func (p *hostProbe) Write(key, value []byte) (bool, error) {
	prior, err := p.Host.Write(key, value)
	if err == nil {
		p.keys[string(key)] = struct{}{}
	}
	return prior, err
}

func (p *hostProbe) Remove(key []byte) ([]byte, bool, error) {
	v, ok, err := p.Host.Remove(key)
	if err == nil {
		delete(p.keys, string(key))
	}
	return v, ok, err
}

func (p *hostProbe) len() int {
	return len(p.keys)
}

func newProbedAdapter(factory HostFactory) (*store.Adapter, *hostProbe) {
	probe := newHostProbe(factory())
	return store.NewAdapter(probe), probe
}
