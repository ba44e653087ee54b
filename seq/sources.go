package seq

import (
	"iter"
)

// Contiguous is the privileged source: a cursor over a borrowed, read-only
// buffer. Terminal operations on it, and on combinators directly over it,
// run as direct memory operations.
type Contiguous[T any] struct {
	buf []T
	// idx is the element Current returns; -1 before the first MoveNext and
	// len(buf) once exhausted.
	idx int
}

// Of returns a contiguous source over buf. The caller keeps ownership of buf
// and must not modify it while the source is in use.
func Of[T any](buf []T) *Contiguous[T] {
	return &Contiguous[T]{buf: buf[:len(buf):len(buf)], idx: -1}
}

// MoveNext implements Iterator.
func (c *Contiguous[T]) MoveNext() bool {
	if c.idx+1 < len(c.buf) {
		c.idx++
		return true
	}
	c.idx = len(c.buf)
	return false
}

// Current implements Iterator.
func (c *Contiguous[T]) Current() T {
	if c.idx < 0 || c.idx >= len(c.buf) {
		panicNotEnumerating()
	}
	return c.buf[c.idx]
}

// Reset implements Iterator.
func (c *Contiguous[T]) Reset() { c.idx = -1 }

// Close implements Iterator. The borrowed buffer is released.
func (c *Contiguous[T]) Close() error {
	c.buf = nil
	c.idx = 0
	return nil
}

// Clone implements Iterator.
func (c *Contiguous[T]) Clone() Iterator[T] { return Of(c.buf) }

// View returns the elements not yet reached by MoveNext.
func (c *Contiguous[T]) View() View[T] { return View[T]{items: c.rest()} }

// TryNonEnumeratedCount implements Iterator.
func (c *Contiguous[T]) TryNonEnumeratedCount() (int, bool) { return len(c.rest()), true }

// Count implements Iterator.
func (c *Contiguous[T]) Count() int {
	n := len(c.rest())
	c.exhaust()
	return n
}

// TryLast implements Iterator.
func (c *Contiguous[T]) TryLast() (T, bool) {
	rest := c.rest()
	c.exhaust()
	if len(rest) == 0 {
		var zero T
		return zero, false
	}
	return rest[len(rest)-1], true
}

// CopyTo implements Iterator.
func (c *Contiguous[T]) CopyTo(dst []T) int {
	if len(dst) == 0 {
		return 0
	}
	n := copy(dst, c.rest())
	c.settle(n, len(dst))
	return n
}

// TryTakeRange implements Iterator. It always succeeds for a valid range.
func (c *Contiguous[T]) TryTakeRange(r Range) (Iterator[T], bool) {
	rest := c.rest()
	start, end, err := r.Resolve(len(rest))
	if err != nil {
		return nil, false
	}
	return Of(rest[start:end]), true
}

func (c *Contiguous[T]) appendTo(b *Builder[T]) {
	b.AddRange(c.rest())
	c.exhaust()
}

// rest returns the elements after the cursor.
func (c *Contiguous[T]) rest() []T {
	if c.idx+1 >= len(c.buf) {
		return nil
	}
	return c.buf[c.idx+1:]
}

// consume advances the cursor over n elements as n successful MoveNext calls
// would, leaving the last of them as Current.
func (c *Contiguous[T]) consume(n int) {
	c.idx = min(c.idx+n, len(c.buf))
}

// exhaust moves the cursor past the end, as a failed MoveNext would.
func (c *Contiguous[T]) exhaust() { c.idx = len(c.buf) }

// settle positions the cursor after a bulk copy of n elements into a
// destination of length want: a short copy means MoveNext ran dry.
func (c *Contiguous[T]) settle(n, want int) {
	if n < want {
		c.exhaust()
		return
	}
	c.consume(n)
}

// reset points the cursor at a new buffer, Unstarted.
func (c *Contiguous[T]) reset(buf []T) {
	c.buf = buf
	c.idx = -1
}

// SingleItem is a source of zero or one element.
type SingleItem[T any] struct {
	value T
	has   bool
	st    state
}

// Single returns a source yielding exactly v.
func Single[T any](v T) *SingleItem[T] { return &SingleItem[T]{value: v, has: true} }

// Empty returns a source yielding nothing.
func Empty[T any]() *SingleItem[T] { return &SingleItem[T]{} }

// MoveNext implements Iterator.
func (s *SingleItem[T]) MoveNext() bool {
	if s.st == unstarted && s.has {
		s.st = enumerating
		return true
	}
	s.st = exhausted
	return false
}

// Current implements Iterator.
func (s *SingleItem[T]) Current() T {
	s.st.mustEnumerate()
	return s.value
}

// Reset implements Iterator.
func (s *SingleItem[T]) Reset() { s.st = unstarted }

// Close implements Iterator.
func (s *SingleItem[T]) Close() error {
	s.st = exhausted
	return nil
}

// Clone implements Iterator.
func (s *SingleItem[T]) Clone() Iterator[T] { return &SingleItem[T]{value: s.value, has: s.has} }

func (s *SingleItem[T]) remaining() int {
	if s.st == unstarted && s.has {
		return 1
	}
	return 0
}

// TryNonEnumeratedCount implements Iterator.
func (s *SingleItem[T]) TryNonEnumeratedCount() (int, bool) { return s.remaining(), true }

// Count implements Iterator.
func (s *SingleItem[T]) Count() int {
	n := s.remaining()
	s.st = exhausted
	return n
}

// TryLast implements Iterator.
func (s *SingleItem[T]) TryLast() (T, bool) {
	n := s.remaining()
	s.st = exhausted
	if n == 0 {
		var zero T
		return zero, false
	}
	return s.value, true
}

// CopyTo implements Iterator.
func (s *SingleItem[T]) CopyTo(dst []T) int {
	if len(dst) == 0 {
		return 0
	}
	if s.remaining() == 0 {
		s.st = exhausted
		return 0
	}
	dst[0] = s.value
	if len(dst) == 1 {
		s.st = enumerating
	} else {
		s.st = exhausted
	}
	return 1
}

// TryTakeRange implements Iterator.
func (s *SingleItem[T]) TryTakeRange(r Range) (Iterator[T], bool) {
	if s.st != unstarted {
		return nil, false
	}
	start, end, err := r.Resolve(s.remaining())
	if err != nil {
		return nil, false
	}
	if end-start == 1 {
		return Single(s.value), true
	}
	return Empty[T](), true
}

// External adapts a Go range-over-func sequence to Iterator. It is the
// fallback for any foreign iteration protocol; none of its terminal
// operations have a fast path.
type External[T any] struct {
	seq  iter.Seq[T]
	next func() (T, bool)
	stop func()
	cur  T
	st   state
}

// FromSeq wraps s. The sequence is pulled lazily and must be re-iterable for
// Reset and Clone to start it over.
func FromSeq[T any](s iter.Seq[T]) *External[T] {
	return &External[T]{seq: s}
}

// FromSlices returns an External over the concatenation of parts without
// copying them. Unlike Of it never takes a fast path.
func FromSlices[T any](parts ...[]T) *External[T] {
	return FromSeq(func(yield func(T) bool) {
		for _, p := range parts {
			for _, v := range p {
				if !yield(v) {
					return
				}
			}
		}
	})
}

// MoveNext implements Iterator.
func (e *External[T]) MoveNext() bool {
	if e.st == exhausted {
		return false
	}
	if e.next == nil {
		e.next, e.stop = iter.Pull(e.seq)
	}
	v, ok := e.next()
	if !ok {
		e.release()
		e.st = exhausted
		return false
	}
	e.cur = v
	e.st = enumerating
	return true
}

// Current implements Iterator.
func (e *External[T]) Current() T {
	e.st.mustEnumerate()
	return e.cur
}

// Reset implements Iterator.
func (e *External[T]) Reset() {
	e.release()
	e.st = unstarted
}

// Close implements Iterator.
func (e *External[T]) Close() error {
	e.release()
	e.st = exhausted
	return nil
}

func (e *External[T]) release() {
	if e.stop != nil {
		e.stop()
	}
	e.next, e.stop = nil, nil
	var zero T
	e.cur = zero
}

// Clone implements Iterator.
func (e *External[T]) Clone() Iterator[T] { return FromSeq(e.seq) }

// TryNonEnumeratedCount implements Iterator.
func (e *External[T]) TryNonEnumeratedCount() (int, bool) {
	if e.st == exhausted {
		return 0, true
	}
	return 0, false
}

// Count implements Iterator.
func (e *External[T]) Count() int { return countNaive[T](e) }

// TryLast implements Iterator.
func (e *External[T]) TryLast() (T, bool) { return tryLastNaive[T](e) }

// CopyTo implements Iterator.
func (e *External[T]) CopyTo(dst []T) int { return copyToNaive[T](e, dst) }

// TryTakeRange implements Iterator.
func (e *External[T]) TryTakeRange(Range) (Iterator[T], bool) { return nil, false }
