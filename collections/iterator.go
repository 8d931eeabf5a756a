package collections

// --------------------------------------------------------------------------
// Iterator
// --------------------------------------------------------------------------
//
// Iterator is an explicit cursor object capturing (captured-length,
// captured-generation, next-index) instead of a generator or coroutine.
// Each Next() call re-checks the live generation (a metadata read) before
// reading the element through fetch, so a caller cannot
// observe storage mutated since the iterator was created without first
// getting CodeInvalidated.

// Iterator is a finite, restartable, lazy cursor over a collection's
// elements. It is not safe to share across goroutines; create one per
// reading goroutine.
type Iterator[T any] struct {
	liveGen   func() (uint64, error)
	startGen  uint64
	length    uint64
	nextIndex uint64
	fetch     func(index uint64) (T, error)
	done      bool
}

func newIterator[T any](startGen uint64, length uint64, liveGen func() (uint64, error), fetch func(uint64) (T, error)) *Iterator[T] {
	return &Iterator[T]{
		liveGen:  liveGen,
		startGen: startGen,
		length:   length,
		fetch:    fetch,
	}
}

// Next advances the cursor. It returns (value, true, nil) on success,
// (zero, false, nil) once the captured length is exhausted, and
// (zero, false, err) with err wrapping CodeInvalidated if the collection
// was mutated since the iterator was created or since the previous Next
// call.
func (it *Iterator[T]) Next() (T, bool, error) {
	var zero T
	if it.done || it.nextIndex >= it.length {
		return zero, false, nil
	}
	gen, err := it.liveGen()
	if err != nil {
		return zero, false, err
	}
	if gen != it.startGen {
		it.done = true
		return zero, false, newError(CodeInvalidated, "collection mutated since iterator was created")
	}
	v, err := it.fetch(it.nextIndex)
	if err != nil {
		it.done = true
		return zero, false, err
	}
	it.nextIndex++
	return v, true, nil
}

// ToSlice drains the iterator into a slice, stopping (and returning the
// error) at the first failure including CodeInvalidated. This materializes
// the remainder of the collection in memory - an explicit-ask operation,
// called internally only by Sequence.ToSlice.
func (it *Iterator[T]) ToSlice() ([]T, error) {
	out := make([]T, 0, it.length-it.nextIndex)
	for {
		v, ok, err := it.Next()
		if err != nil {
			return out, err
		}
		if !ok {
			return out, nil
		}
		out = append(out, v)
	}
}
