// Package store is the sole gateway to host storage.
//
// Every persistent collection in the collections package reaches the
// outside world through exactly one Host implementation, composed with a
// small set of reserved separator bytes by Adapter. This concentrates the
// only four operations the whole library ever needs - Read, Write, Remove,
// Has - in one place, so swapping a real blockchain host for an in-memory
// fake (store/memhost) during tests exercises the identical code path in
// collections.
//
// Key Components:
//
//   - Host: the interface a runtime (or a test double) must satisfy.
//   - Adapter: composes a collection's prefix with a reserved suffix into a
//     full key and forwards calls to a Host.
//   - CheckPrefix: rejects caller-supplied prefixes that contain the
//     library's reserved separator bytes.
//   - Instrumented: wraps any Host with VictoriaMetrics counters, for
//     callers who want to observe call volume and payload size without
//     touching collections at all.
//
// Related Packages:
//
// store/memhost provides a concurrent in-memory Host backed by
// github.com/puzpuzpuz/xsync/v3, used by the collections test suite and by
// the cmd/demo CLI.
package store
