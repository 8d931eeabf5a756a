// Package collections implements persistent, on-chain collection data
// structures (Sequence, LookupMap, LookupSet, IterableMap, IterableSet,
// OrderedMap) over a store.Adapter. Every operation is incremental: no
// method materializes an entire collection in memory unless its name says
// so (Extend, ToSlice, DrainKnownKeys).
//
// Key Components:
//
//   - Error / Code: the sum-typed error model, a discriminant plus a
//     wrapped cause.
//   - Metadata header (meta.go): length, kind, generation, codec version.
//   - Sequence, LookupMap, LookupSet, IterableMap, IterableSet, OrderedMap:
//     the six collection kinds.
//   - Iterator[T] (iterator.go): the generation-checked explicit cursor
//     shared by every iterable kind.
//   - Child (prefix.go): hierarchical prefix composition.
//
// Related Packages:
//
//   - store: the Host/Adapter this package is the sole caller of.
//   - codec: the Codec[T] values collection constructors take.
//   - collections/cltest: the reusable property-test harness.
package collections

import (
	"fmt"
)

// --------------------------------------------------------------------------
// Error Model
// --------------------------------------------------------------------------

// Code discriminates the kind of failure an Error carries, one variant
// per failure mode a collection method can hit.
type Code uint8

const (
	CodeOutOfRange Code = iota
	CodeEmpty
	CodeKeyAbsent
	CodeKindMismatch
	CodeEncode
	CodeDecode
	CodeInvalidated
	CodeHostError
)

func (c Code) String() string {
	switch c {
	case CodeOutOfRange:
		return "OutOfRange"
	case CodeEmpty:
		return "Empty"
	case CodeKeyAbsent:
		return "KeyAbsent"
	case CodeKindMismatch:
		return "KindMismatch"
	case CodeEncode:
		return "Encode"
	case CodeDecode:
		return "Decode"
	case CodeInvalidated:
		return "Invalidated"
	case CodeHostError:
		return "HostError"
	default:
		return "Unknown"
	}
}

// Error is the single error type every collection method returns: a Code
// discriminant plus enough context (the offending key or index) to
// diagnose without string parsing.
type Error struct {
	Code  Code
	Msg   string
	Key   any   // offending key, if applicable
	Index int64 // offending index, -1 if not applicable
	err   error // wrapped cause, for Unwrap (host/codec failures)
}

func (e *Error) Error() string {
	switch {
	case e.Key != nil:
		return fmt.Sprintf("collections: %s: %s (key=%v)", e.Code, e.Msg, e.Key)
	case e.Index >= 0:
		return fmt.Sprintf("collections: %s: %s (index=%d)", e.Code, e.Msg, e.Index)
	default:
		return fmt.Sprintf("collections: %s: %s", e.Code, e.Msg)
	}
}

// Unwrap exposes the wrapped store/codec error, if any, for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

func newError(code Code, msg string) *Error {
	return &Error{Code: code, Msg: msg, Index: -1}
}

func newErrorf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Msg: fmt.Sprintf(format, args...), Index: -1}
}

func withKey(e *Error, key any) *Error {
	e.Key = key
	return e
}

func withIndex(e *Error, index int64) *Error {
	e.Index = index
	return e
}

func withCause(e *Error, cause error) *Error {
	e.err = cause
	return e
}

// --------------------------------------------------------------------------
// Sentinels
// --------------------------------------------------------------------------
//
// errors.Is(err, collections.ErrOutOfRange) works against any *Error with
// the matching Code, via Error's participation in errors.Is through a
// dedicated Is method - simpler callers can switch on (*Error).Code
// directly instead.

var (
	ErrOutOfRange   = sentinel(CodeOutOfRange)
	ErrEmpty        = sentinel(CodeEmpty)
	ErrKeyAbsent    = sentinel(CodeKeyAbsent)
	ErrKindMismatch = sentinel(CodeKindMismatch)
	ErrEncode       = sentinel(CodeEncode)
	ErrDecode       = sentinel(CodeDecode)
	ErrInvalidated  = sentinel(CodeInvalidated)
	ErrHostError    = sentinel(CodeHostError)
)

type sentinelError struct{ code Code }

func sentinel(code Code) error { return &sentinelError{code: code} }

func (s *sentinelError) Error() string { return "collections: " + s.code.String() }

// Is lets errors.Is(someError, collections.ErrOutOfRange) succeed whenever
// someError is an *Error (or wraps one) with a matching Code.
func (e *Error) Is(target error) bool {
	s, ok := target.(*sentinelError)
	if !ok {
		return false
	}
	return e.Code == s.code
}
