package seq

import (
	"math"

	"github.com/kbukum/seqkit/errors"
	"github.com/kbukum/seqkit/logger"
)

// RangeIter yields the upstream elements at positions [start, end). It is
// used when the upstream cannot narrow itself in O(1).
type RangeIter[T any] struct {
	cursor[T]
	src Iterator[T]
	// start and end are absolute upstream positions; end may be math.MaxInt
	// for a bound that clamps at exhaustion.
	start, end int
	// pos counts upstream elements consumed so far.
	pos    int
	closed bool
}

func newRangeIter[T any](src Iterator[T], start, end int) *RangeIter[T] {
	return &RangeIter[T]{src: src, start: start, end: end}
}

// MoveNext implements Iterator.
func (r *RangeIter[T]) MoveNext() bool {
	if r.isDone() {
		return false
	}
	for r.pos < r.start {
		if !r.src.MoveNext() {
			return r.done()
		}
		r.pos++
	}
	if r.pos >= r.end || !r.src.MoveNext() {
		return r.done()
	}
	r.pos++
	return r.set(r.src.Current())
}

// Reset implements Iterator.
func (r *RangeIter[T]) Reset() {
	r.src.Reset()
	r.pos = 0
	r.rewind()
}

// Close implements Iterator.
func (r *RangeIter[T]) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	r.done()
	return r.src.Close()
}

// Clone implements Iterator.
func (r *RangeIter[T]) Clone() Iterator[T] { return newRangeIter(r.src.Clone(), r.start, r.end) }

// window maps the range onto the next avail upstream elements.
func (r *RangeIter[T]) window(avail int) (lo, hi int) {
	lo = min(max(r.start-r.pos, 0), avail)
	hi = min(max(r.end-r.pos, lo), avail)
	return lo, hi
}

// TryNonEnumeratedCount implements Iterator.
func (r *RangeIter[T]) TryNonEnumeratedCount() (int, bool) {
	if r.isDone() {
		return 0, true
	}
	n, ok := r.src.TryNonEnumeratedCount()
	if !ok {
		return 0, false
	}
	lo, hi := r.window(n)
	return hi - lo, true
}

// Count implements Iterator.
func (r *RangeIter[T]) Count() int {
	if n, ok := r.TryNonEnumeratedCount(); ok {
		r.done()
		return n
	}
	return countNaive[T](r)
}

// TryLast implements Iterator.
func (r *RangeIter[T]) TryLast() (T, bool) {
	if r.isDone() {
		var zero T
		return zero, false
	}
	c, ok := asContiguous(r.src)
	if !ok {
		return tryLastNaive[T](r)
	}
	rest := c.rest()
	lo, hi := r.window(len(rest))
	c.exhaust()
	r.done()
	if hi == lo {
		var zero T
		return zero, false
	}
	return rest[hi-1], true
}

// CopyTo implements Iterator.
func (r *RangeIter[T]) CopyTo(dst []T) int {
	if len(dst) == 0 || r.isDone() {
		return 0
	}
	c, ok := asContiguous(r.src)
	if !ok {
		return copyToNaive[T](r, dst)
	}
	rest := c.rest()
	lo, hi := r.window(len(rest))
	n := copy(dst, rest[lo:hi])
	if n == len(dst) {
		c.consume(lo + n)
		r.pos += lo + n
		r.set(dst[n-1])
		return n
	}
	c.exhaust()
	r.done()
	return n
}

// TryTakeRange implements Iterator. It composes the sub-range with this one
// and hands it to the upstream, or wraps the upstream in a narrower RangeIter.
func (r *RangeIter[T]) TryTakeRange(sub Range) (Iterator[T], bool) {
	if r.st != unstarted || r.pos != 0 {
		return nil, false
	}
	n, ok := r.TryNonEnumeratedCount()
	if !ok {
		return nil, false
	}
	lo, hi, err := sub.Resolve(n)
	if err != nil {
		return nil, false
	}
	start, end := r.start+lo, r.start+hi
	if it, ok := r.src.TryTakeRange(Span(At(start), At(end))); ok {
		return it, true
	}
	return newRangeIter(r.src, start, end), true
}

func (r *RangeIter[T]) appendTo(b *Builder[T]) {
	if r.isDone() {
		return
	}
	c, ok := asContiguous(r.src)
	if !ok {
		appendNaive[T](r, b)
		return
	}
	rest := c.rest()
	lo, hi := r.window(len(rest))
	b.AddRange(rest[lo:hi])
	c.exhaust()
	r.done()
}

// SizeHint implements SizeHinter.
func (r *RangeIter[T]) SizeHint() int {
	if n, ok := r.TryNonEnumeratedCount(); ok {
		return n
	}
	lo, hi := r.window(sizeHint(r.src))
	return hi - lo
}

func (r *RangeIter[T]) fastPath() bool {
	_, ok := asContiguous(r.src)
	return ok
}

// --- Constructors ---

// Slice returns the elements of src within rng.
//
// When src knows its remaining count in O(1) the bounds are resolved at once,
// and sources that can narrow themselves (a contiguous buffer, or a Map over
// one) return a narrowed node that keeps the fast path. A range starting at
// the current position with an absolute end is served lazily. Any other
// range over a source of unknown length drains the remaining elements of src
// into a buffer, resolves against their count and returns a contiguous
// source over the selected part. src is closed once drained.
func Slice[T any](src Iterator[T], rng Range) (Iterator[T], error) {
	if n, ok := src.TryNonEnumeratedCount(); ok {
		start, end, err := rng.Resolve(n)
		if err != nil {
			return nil, err
		}
		if it, ok := src.TryTakeRange(Span(At(start), At(end))); ok {
			return it, nil
		}
		return newRangeIter(src, start, end), nil
	}

	if !rng.needsLength() {
		start, end, err := rng.Resolve(math.MaxInt)
		if err != nil {
			return nil, err
		}
		return newRangeIter(src, start, end), nil
	}

	rest, err := bufferRest(src)
	if err != nil {
		return nil, err
	}
	log := logger.Get(logger.ComponentSeq).GetLogger()
	log.Debug().
		Str("range", rng.String()).
		Int(logger.FieldCount, len(rest)).
		Msg("resolved range by buffering upstream")

	start, end, err := rng.Resolve(len(rest))
	if err != nil {
		return nil, err
	}
	return Of(rest[start:end]), nil
}

// bufferRest drains the remaining elements of src into a new slice and
// closes src.
func bufferRest[T any](src Iterator[T]) ([]T, error) {
	b := NewBuilder[T](nil)
	defer b.Dispose()
	b.AddIterator(src)
	rest := b.ToSlice()
	if err := src.Close(); err != nil {
		return nil, err
	}
	return rest, nil
}

// Take returns the first n elements of src, or all of them if there are fewer.
func Take[T any](src Iterator[T], n int) (Iterator[T], error) {
	if n < 0 {
		return nil, negativeCount("Take", n)
	}
	return Slice(src, Span(At(0), At(n)))
}

// Skip returns src without its first n elements. Skipping past the end fails
// with INVALID_RANGE.
func Skip[T any](src Iterator[T], n int) (Iterator[T], error) {
	if n < 0 {
		return nil, negativeCount("Skip", n)
	}
	return Slice(src, Span(At(n), FromEnd(0)))
}

// TakeLast returns the last n elements of src.
func TakeLast[T any](src Iterator[T], n int) (Iterator[T], error) {
	if n < 0 {
		return nil, negativeCount("TakeLast", n)
	}
	return Slice(src, Span(FromEnd(n), FromEnd(0)))
}

// SkipLast returns src without its last n elements.
func SkipLast[T any](src Iterator[T], n int) (Iterator[T], error) {
	if n < 0 {
		return nil, negativeCount("SkipLast", n)
	}
	return Slice(src, Span(At(0), FromEnd(n)))
}

func negativeCount(op string, n int) error {
	return errors.InvalidRange("negative count").
		WithDetail("operation", op).
		WithDetail("count", n)
}
