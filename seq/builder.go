package seq

import (
	"github.com/kbukum/seqkit/logger"
	"github.com/kbukum/seqkit/pool"
)

// Builder accumulates elements of unknown total count without the
// copy-on-grow cost of a single growing slice. Its first segment is
// caller-supplied scratch space; later segments are rented from the shared
// pool with doubling capacity. ToSlice produces one contiguous result in a
// single pass over the segments.
//
// The zero value is an empty builder without scratch. Call Dispose (usually
// deferred) to return rented segments to the pool.
type Builder[T any] struct {
	scratch []T
	// finished holds the filled part of every segment before current.
	finished [][]T
	// rented holds every segment obtained from the pool, for Dispose.
	rented  [][]T
	current []T
	pool    *pool.ArrayPool[T]

	countInFinished int
	countInCurrent  int
}

// NewBuilder returns a builder that fills scratch before renting.
func NewBuilder[T any](scratch []T) *Builder[T] {
	scratch = scratch[:cap(scratch)]
	return &Builder[T]{scratch: scratch, current: scratch}
}

// Add appends v.
func (b *Builder[T]) Add(v T) {
	if b.countInCurrent == len(b.current) {
		b.expand(1)
	}
	b.current[b.countInCurrent] = v
	b.countInCurrent++
}

// AddRange appends items, filling the current segment before expanding.
func (b *Builder[T]) AddRange(items []T) {
	for len(items) > 0 {
		n := copy(b.current[b.countInCurrent:], items)
		b.countInCurrent += n
		items = items[n:]
		if len(items) > 0 {
			b.expand(len(items))
		}
	}
}

// AddIterator appends every remaining element of it, leaving it exhausted.
// A contiguous source is copied in bulk.
func (b *Builder[T]) AddIterator(it Iterator[T]) {
	if c, ok := asContiguous(it); ok {
		b.AddRange(c.rest())
		c.exhaust()
		return
	}
	if ba, ok := it.(bulkAppender[T]); ok {
		ba.appendTo(b)
		return
	}
	appendNaive(it, b)
}

// Grow makes room for at least n more elements without further expansion.
func (b *Builder[T]) Grow(n int) {
	if n > len(b.current)-b.countInCurrent {
		b.expand(n)
	}
}

// expand finishes the current segment and rents a new one of at least
// minLen elements, doubling the previous size and capped at the configured
// maximum segment length.
func (b *Builder[T]) expand(minLen int) {
	if b.countInCurrent > 0 {
		b.finished = append(b.finished, b.current[:b.countInCurrent])
		b.countInFinished += b.countInCurrent
	}
	cfg := pool.Current()
	size := max(minLen, 2*len(b.current), cfg.MinSegmentLen)
	size = max(min(size, cfg.MaxSegmentLen), 1)

	if b.pool == nil {
		b.pool = pool.For[T]()
	}
	seg := b.pool.Rent(size)
	b.rented = append(b.rented, seg)
	b.current = seg
	b.countInCurrent = 0

	recorder().RecordSegmentRent(len(seg))
	log := logger.Get(logger.ComponentSeq).GetLogger()
	log.Trace().
		Int(logger.FieldSize, len(seg)).
		Int(logger.FieldCount, b.countInFinished).
		Msg("builder segment rented")
}

// Count returns the number of elements added.
func (b *Builder[T]) Count() int { return b.countInFinished + b.countInCurrent }

// CopyTo copies the accumulated elements into dst in order and returns the
// number copied.
func (b *Builder[T]) CopyTo(dst []T) int {
	n := 0
	b.forEachSegment(func(seg []T) bool {
		n += copy(dst[n:], seg)
		return n < len(dst)
	})
	return n
}

// forEachSegment calls fn with the filled part of each segment in order until
// fn returns false.
func (b *Builder[T]) forEachSegment(fn func(seg []T) bool) {
	for _, seg := range b.finished {
		if !fn(seg) {
			return
		}
	}
	if b.countInCurrent > 0 {
		fn(b.current[:b.countInCurrent])
	}
}

// ToSlice returns the elements as one new slice. The result is never nil.
func (b *Builder[T]) ToSlice() []T {
	out := make([]T, b.Count())
	b.CopyTo(out)
	return out
}

// ToList returns the elements as a new mutable List.
func (b *Builder[T]) ToList() *List[T] { return NewList(b.ToSlice()) }

// ToReadOnlyList returns the elements as a new read-only List.
func (b *Builder[T]) ToReadOnlyList() *List[T] { return b.ToList().AsReadOnly() }

// Dispose clears and returns every rented segment and empties the builder.
// The builder may be reused afterwards; calling Dispose again is harmless.
func (b *Builder[T]) Dispose() {
	for _, seg := range b.rented {
		b.pool.Return(seg)
	}
	clear(b.scratch)
	clear(b.finished)
	clear(b.rented)
	b.finished = b.finished[:0]
	b.rented = b.rented[:0]
	b.current = b.scratch
	b.countInFinished = 0
	b.countInCurrent = 0
}
