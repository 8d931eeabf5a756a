// Package codec converts caller-supplied values and logical keys into a
// deterministic byte representation and back, for storage by the
// collections package.
//
// Encoding of logical keys must be canonical: equal logical keys must
// always produce byte-equal encodings, and encoding of integer keys used
// with an OrderedMap must preserve the caller-requested ordering so that
// lexicographic byte comparison matches the caller's intended order.
//
// Key Components:
//
//   - Codec[T]: the generic two-method interface every collection handle
//     carries as a constructor argument, so each handle is typed rather
//     than carrying a dynamically-typed value codec.
//   - Binary: the library's default self-describing compact binary form
//     (a tag byte followed by length-prefixed fields), generalized via
//     reflection to a closed universe of supported kinds.
//   - JSON, Gob: thin adapters over encoding/json and encoding/gob, for
//     callers who already standardize on one of those formats elsewhere.
//   - Msgpack: wraps github.com/vmihailenco/msgpack/v5 for arbitrary
//     struct values the closed-kind Binary codec cannot express.
//   - String, Bytes: canonical identity codecs for the common key types.
//   - OrderedUint64, OrderedInt64: order-preserving numeric key encodings.
package codec
