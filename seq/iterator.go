package seq

import (
	"iter"

	"github.com/kbukum/seqkit/errors"
)

// Iterator is a cursor over a sequence of values. Every source and combinator
// in this package implements it.
//
// An iterator starts Unstarted. MoveNext advances it; while it returns true
// the iterator is Enumerating and Current holds the element just reached.
// Once MoveNext returns false the iterator is Exhausted and stays so until
// Reset.
//
// The terminal methods (Count, TryLast, CopyTo) consume the iterator from its
// current position. Sources backed by a contiguous buffer, and combinators
// directly over one, answer them with bulk memory operations; the results
// and the resulting iterator state are the same as pulling element by element.
type Iterator[T any] interface {
	// MoveNext advances to the next element and reports whether there was one.
	MoveNext() bool
	// Current returns the element reached by the last successful MoveNext.
	// It panics with an INVALID_STATE error outside the Enumerating state.
	Current() T
	// Reset returns the iterator to Unstarted and drops transient state such
	// as dedup sets or inner iterators. Calling it repeatedly is harmless.
	Reset()
	// Close releases the iterator and every node it owns. It is idempotent.
	Close() error
	// Clone returns an Unstarted iterator over the same sequence that shares no
	// mutable state with the receiver.
	Clone() Iterator[T]

	// TryNonEnumeratedCount returns the number of remaining elements if it can
	// be computed in O(1) without advancing.
	TryNonEnumeratedCount() (int, bool)
	// Count consumes the iterator and returns how many elements remained.
	Count() int
	// TryLast consumes the iterator and returns the final element, if any.
	TryLast() (T, bool)
	// CopyTo copies up to len(dst) remaining elements into dst and returns the
	// number copied. It consumes exactly the elements it copies.
	CopyTo(dst []T) int
	// TryTakeRange returns a node over the sub-range r of an Unstarted
	// iterator when that can be done without traversal. On success the
	// returned node takes over the receiver's upstream and the receiver must
	// not be used again.
	TryTakeRange(r Range) (Iterator[T], bool)
}

// SizeHinter is implemented by iterators that can estimate how many elements
// they will yield. The estimate only sizes buffers; it is never trusted for
// correctness.
type SizeHinter interface {
	SizeHint() int
}

// bulkAppender is implemented by nodes that can append their remaining
// elements to a Builder faster than by MoveNext/Current pairs.
type bulkAppender[T any] interface {
	appendTo(b *Builder[T])
}

// fastPather reports whether a node's terminal operations will run directly
// over contiguous memory.
type fastPather interface {
	fastPath() bool
}

// state tracks where an iterator is in its Unstarted -> Enumerating ->
// Exhausted lifecycle.
type state uint8

const (
	unstarted state = iota
	enumerating
	exhausted
)

func (s state) mustEnumerate() {
	if s != enumerating {
		panicNotEnumerating()
	}
}

func panicNotEnumerating() {
	panic(errors.InvalidState("Current called outside enumeration"))
}

// cursor is the Current/state bookkeeping shared by the combinators.
type cursor[T any] struct {
	cur T
	st  state
}

// Current implements Iterator.
func (c *cursor[T]) Current() T {
	c.st.mustEnumerate()
	return c.cur
}

// set makes v Current and reports true, for use as a MoveNext result.
func (c *cursor[T]) set(v T) bool {
	c.cur = v
	c.st = enumerating
	return true
}

// done marks the node exhausted and reports false.
func (c *cursor[T]) done() bool {
	var zero T
	c.cur = zero
	c.st = exhausted
	return false
}

func (c *cursor[T]) rewind() {
	var zero T
	c.cur = zero
	c.st = unstarted
}

func (c *cursor[T]) isDone() bool { return c.st == exhausted }

// TryAsContiguous is the capability check used by every fast path. It
// succeeds only when the dynamic type of it is exactly *Contiguous[T]; types
// that wrap or embed a Contiguous do not qualify, because the fast path reads
// the node's buffer directly.
func TryAsContiguous[T any](it Iterator[T]) (View[T], bool) {
	c, ok := it.(*Contiguous[T])
	if !ok || c == nil {
		return View[T]{}, false
	}
	return c.View(), true
}

func asContiguous[T any](it Iterator[T]) (*Contiguous[T], bool) {
	c, ok := it.(*Contiguous[T])
	return c, ok && c != nil
}

func isFast[T any](it Iterator[T]) bool {
	if _, ok := asContiguous(it); ok {
		return true
	}
	if fp, ok := it.(fastPather); ok {
		return fp.fastPath()
	}
	return false
}

// sizeHint returns a best-effort element count for it, or 0 when nothing is
// known.
func sizeHint[T any](it Iterator[T]) int {
	if n, ok := it.TryNonEnumeratedCount(); ok {
		return n
	}
	if h, ok := it.(SizeHinter); ok {
		if n := h.SizeHint(); n > 0 {
			return n
		}
	}
	return 0
}

// Values adapts it to a range-over-func sequence. Breaking out of the loop
// leaves it positioned on the last element yielded.
//
//	for v := range seq.Values(it) { ... }
func Values[T any](it Iterator[T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		for it.MoveNext() {
			if !yield(it.Current()) {
				return
			}
		}
	}
}

// closeAll closes each iterator and returns the first error.
func closeAll[T any](its ...Iterator[T]) error {
	var firstErr error
	for _, it := range its {
		if it == nil {
			continue
		}
		if err := it.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

var (
	_ Iterator[int]   = (*Contiguous[int])(nil)
	_ Iterator[int]   = (*SingleItem[int])(nil)
	_ Iterator[int]   = (*External[int])(nil)
	_ Iterator[int]   = (*FilterIter[int])(nil)
	_ Iterator[int]   = (*MapIter[string, int])(nil)
	_ Iterator[int]   = (*RangeIter[int])(nil)
	_ Iterator[int]   = (*ConcatIter[int])(nil)
	_ Iterator[int]   = (*DistinctIter[int, int])(nil)
	_ Iterator[int]   = (*FlatMapIter[string, int])(nil)
	_ Iterator[int]   = (*SliceFlatMapIter[string, int])(nil)
	_ Iterator[int]   = (*OfTypeIter[any, int])(nil)
	_ Iterator[[]int] = (*ChunkIter[int])(nil)

	_ bulkAppender[int] = (*FilterIter[int])(nil)
	_ bulkAppender[int] = (*ConcatIter[int])(nil)
	_ SizeHinter        = (*MapIter[string, int])(nil)
)
